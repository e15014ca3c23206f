// file: internals/route/details/academy_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	BranchRoute "akademiku_backend/internals/features/academy/branches/route"
	GuardianRoute "akademiku_backend/internals/features/academy/guardians/route"
	ScheduleRoute "akademiku_backend/internals/features/academy/schedules/route"
	StudentRoute "akademiku_backend/internals/features/academy/students/route"
)

func AcademyStaffRoutes(r fiber.Router, db *gorm.DB) {
	BranchRoute.BranchAdminRoutes(r, db)
	GuardianRoute.GuardianAdminRoutes(r, db)
	StudentRoute.StudentAdminRoutes(r, db)
	ScheduleRoute.ClassScheduleAdminRoutes(r, db)
}
