// Package domain defines the authorization model: token claims, the reserved
// administrative names, and the permission catalog.
package domain

// Reserved names for the built-in administrative domain and role. The
// qualified administrator role grants every permission.
const (
	DomainName            = "mis"
	AdministratorRoleName = "admin"
	AdministratorRole     = DomainName + "." + AdministratorRoleName
)

// JWT claim keys for roles and permissions.
const (
	ClaimRoles       = "roles"
	ClaimPermissions = "permissions"
)

// Claims is the authorization-relevant content of an access token.
type Claims struct {
	// Subject identifies the principal: an identity ID or an API key ID.
	Subject string
	// Name is the human-readable principal name (identity identifier or API
	// key name).
	Name string
	// Roles holds qualified role names, e.g. "billing.viewer" or "mis.admin".
	Roles []string
	// Permissions holds permission names granted to the principal.
	Permissions []string
}

// HasRole reports whether the claims carry the given qualified role name.
func (c *Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasPermission reports whether the claims carry the given permission name.
func (c *Claims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}
