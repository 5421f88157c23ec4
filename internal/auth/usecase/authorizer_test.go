package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/allisson/identity/internal/auth/domain"
)

func TestAuthorizer_Authorize(t *testing.T) {
	authorizer := NewDefaultAuthorizer()
	requirement := Requirement{Permission: domain.PermissionDomainsCreate}

	tests := []struct {
		name       string
		claims     *domain.Claims
		authorized bool
	}{
		{
			name:       "no roles or permissions",
			claims:     &domain.Claims{},
			authorized: false,
		},
		{
			name:       "matching permission",
			claims:     &domain.Claims{Permissions: []string{domain.PermissionDomainsCreate}},
			authorized: true,
		},
		{
			name:       "different permission",
			claims:     &domain.Claims{Permissions: []string{domain.PermissionDomainsGet}},
			authorized: false,
		},
		{
			name:       "administrator role without permissions",
			claims:     &domain.Claims{Roles: []string{domain.AdministratorRole}},
			authorized: true,
		},
		{
			name:       "administrator role and matching permission",
			claims:     &domain.Claims{Roles: []string{domain.AdministratorRole}, Permissions: []string{domain.PermissionDomainsCreate}},
			authorized: true,
		},
		{
			name:       "non-administrator role",
			claims:     &domain.Claims{Roles: []string{"billing.viewer"}},
			authorized: false,
		},
		{
			name:       "bare admin role name is not the administrator role",
			claims:     &domain.Claims{Roles: []string{"admin"}},
			authorized: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.authorized, authorizer.Authorize(tt.claims, requirement))
		})
	}
}

func TestAuthorizer_AllCheckersRun(t *testing.T) {
	// Approval by an earlier checker must not short-circuit later ones.
	firstRan, secondRan := false, false
	authorizer := NewAuthorizer(
		func(*domain.Claims, Requirement) bool { firstRan = true; return true },
		func(*domain.Claims, Requirement) bool { secondRan = true; return false },
	)

	assert.True(t, authorizer.Authorize(&domain.Claims{}, Requirement{}))
	assert.True(t, firstRan)
	assert.True(t, secondRan)
}

func TestAuthorizer_NoCheckers(t *testing.T) {
	authorizer := NewAuthorizer()
	assert.False(t, authorizer.Authorize(&domain.Claims{Roles: []string{domain.AdministratorRole}}, Requirement{}))
}
