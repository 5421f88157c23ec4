package dto

import "time"

// TokenResponse carries an issued access token and its expiry.
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// NewTokenResponse builds a TokenResponse for a signed bearer token.
func NewTokenResponse(accessToken string, expiresAt time.Time) TokenResponse {
	return TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	}
}
