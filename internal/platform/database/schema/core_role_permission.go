package schema

// CoreRolePermissionTable represents the 'core.role_permission' table
type CoreRolePermissionTable struct {
	Table    string
	RoleID   string
	Resource string
	Action   string
}

// CoreRolePermission is the schema definition for core.role_permission
var CoreRolePermission = CoreRolePermissionTable{
	Table:    "core.role_permission",
	RoleID:   "roleid",
	Resource: "resource",
	Action:   "action",
}
