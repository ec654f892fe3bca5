package schema

// CoreUserRoleTable represents the 'core.user_role' table
type CoreUserRoleTable struct {
	Table     string
	UserID    string
	RoleID    string
	CreatedAt string
}

// CoreUserRole is the schema definition for core.user_role
var CoreUserRole = CoreUserRoleTable{
	Table:     "core.user_role",
	UserID:    "userid",
	RoleID:    "roleid",
	CreatedAt: "createdat",
}
