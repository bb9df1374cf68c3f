package rbac

// Simple default policy. Expand as needed.
var RolePermissions = map[string][]string{
	"professor": {
		"question:generate",
		"question:create",
		"question:view-own",
		"question:list-own",
		"question:export",
		"material:upload",
		"material:view",
		"user:change_password",
	},
	"admin": {
		"*", // everything
	},
}
