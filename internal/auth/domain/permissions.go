package domain

// Fine-grained endpoint permissions. Granting one of these to an API key
// authorizes the matching endpoint; identities get them only through the
// administrator role.
const (
	PermissionAPIKeysGet            = "api-keys.get"
	PermissionAPIKeysCreate         = "api-keys.create"
	PermissionAPIKeysUpdate         = "api-keys.update"
	PermissionAPIKeysDelete         = "api-keys.delete"
	PermissionAPIKeysGetPermissions = "api-keys.get-permissions"
	PermissionAPIKeysSetPermissions = "api-keys.set-permissions"

	PermissionDomainsGet    = "domains.get"
	PermissionDomainsCreate = "domains.create"
	PermissionDomainsUpdate = "domains.update"
	PermissionDomainsDelete = "domains.delete"

	PermissionIdentitiesGet      = "identities.get"
	PermissionIdentitiesCreate   = "identities.create"
	PermissionIdentitiesUpdate   = "identities.update"
	PermissionIdentitiesDelete   = "identities.delete"
	PermissionIdentitiesGetRoles = "identities.get-roles"
	PermissionIdentitiesSetRoles = "identities.set-roles"

	PermissionRolesGet    = "roles.get"
	PermissionRolesCreate = "roles.create"
	PermissionRolesUpdate = "roles.update"
	PermissionRolesDelete = "roles.delete"
)

// allPermissions lists every permission in declaration order.
var allPermissions = []string{
	PermissionAPIKeysGet,
	PermissionAPIKeysCreate,
	PermissionAPIKeysUpdate,
	PermissionAPIKeysDelete,
	PermissionAPIKeysGetPermissions,
	PermissionAPIKeysSetPermissions,
	PermissionDomainsGet,
	PermissionDomainsCreate,
	PermissionDomainsUpdate,
	PermissionDomainsDelete,
	PermissionIdentitiesGet,
	PermissionIdentitiesCreate,
	PermissionIdentitiesUpdate,
	PermissionIdentitiesDelete,
	PermissionIdentitiesGetRoles,
	PermissionIdentitiesSetRoles,
	PermissionRolesGet,
	PermissionRolesCreate,
	PermissionRolesUpdate,
	PermissionRolesDelete,
}

// permissionSet supports O(1) catalog membership checks.
var permissionSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(allPermissions))
	for _, p := range allPermissions {
		set[p] = struct{}{}
	}
	return set
}()

// Permissions returns the full permission catalog in declaration order. The
// returned slice is a copy.
func Permissions() []string {
	out := make([]string, len(allPermissions))
	copy(out, allPermissions)
	return out
}

// IsPermission reports whether name is a known permission.
func IsPermission(name string) bool {
	_, ok := permissionSet[name]
	return ok
}

// ValidatePermissions checks every name against the catalog and fails on the
// first unknown one.
func ValidatePermissions(names []string) error {
	for _, name := range names {
		if !IsPermission(name) {
			return NewPermissionNotFoundError(name)
		}
	}
	return nil
}
