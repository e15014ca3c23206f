package constants

// Roles recognized in JWT claims. Token issuance lives in a separate identity
// service; this backend only checks the role it is handed.
const (
	RoleSuperAdmin = "superadmin"
	RoleAdmin      = "admin"
	RoleStaff      = "staff"
	RoleTeacher    = "teacher"
	RoleGuardian   = "guardian"
)

// AdminAndAbove are the roles allowed on /api/a routes.
var AdminAndAbove = []string{RoleSuperAdmin, RoleAdmin}

// StaffAndAbove may record payments and run day-to-day operations.
var StaffAndAbove = []string{RoleSuperAdmin, RoleAdmin, RoleStaff}
