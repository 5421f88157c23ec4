package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/identity/internal/auth/domain"
	"github.com/allisson/identity/internal/metrics"
)

// authServiceWithMetrics decorates AuthService with metrics instrumentation.
type authServiceWithMetrics struct {
	next    AuthService
	metrics metrics.BusinessMetrics
}

// NewAuthServiceWithMetrics wraps an AuthService with metrics recording.
func NewAuthServiceWithMetrics(service AuthService, m metrics.BusinessMetrics) AuthService {
	return &authServiceWithMetrics{
		next:    service,
		metrics: m,
	}
}

// AuthenticateIdentity records metrics for identity authentication operations.
func (a *authServiceWithMetrics) AuthenticateIdentity(
	ctx context.Context,
	identifier, password string,
) (*Token, error) {
	start := time.Now()
	token, err := a.next.AuthenticateIdentity(ctx, identifier, password)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "auth", "authenticate_identity", status)
	a.metrics.RecordDuration(ctx, "auth", "authenticate_identity", time.Since(start), status)

	return token, err
}

// AuthenticateAPIKey records metrics for API key authentication operations.
func (a *authServiceWithMetrics) AuthenticateAPIKey(ctx context.Context, keyID uuid.UUID) (*Token, error) {
	start := time.Now()
	token, err := a.next.AuthenticateAPIKey(ctx, keyID)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "auth", "authenticate_api_key", status)
	a.metrics.RecordDuration(ctx, "auth", "authenticate_api_key", time.Since(start), status)

	return token, err
}

// Refresh records metrics for token refresh operations.
func (a *authServiceWithMetrics) Refresh(ctx context.Context, tokenString string) (*Token, error) {
	start := time.Now()
	token, err := a.next.Refresh(ctx, tokenString)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "auth", "token_refresh", status)
	a.metrics.RecordDuration(ctx, "auth", "token_refresh", time.Since(start), status)

	return token, err
}

// Verify records metrics for token verification operations.
func (a *authServiceWithMetrics) Verify(ctx context.Context, tokenString string) (*domain.Claims, error) {
	start := time.Now()
	claims, err := a.next.Verify(ctx, tokenString)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "auth", "token_verify", status)
	a.metrics.RecordDuration(ctx, "auth", "token_verify", time.Since(start), status)

	return claims, err
}
