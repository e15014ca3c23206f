// file: internals/route/index.go
package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"akademiku_backend/internals/constants"
	"akademiku_backend/internals/middlewares/auth"
	routeDetails "akademiku_backend/internals/route/details"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// ===================== STAFF (/api/a) =====================
	// Day-to-day operations: academy CRUD + the payment lifecycle.
	log.Println("[INFO] Setting up STAFF group (Auth + RoleCheck)...")
	staff := app.Group("/api/a",
		auth.AuthMiddleware(),
		auth.RequireRoles(constants.StaffAndAbove...),
	)

	// ===================== ADMIN (/api/a) =====================
	// Runtime settings are admin-only; paid-payment cancellation is gated
	// inside the payment controller.
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		auth.AuthMiddleware(),
		auth.RequireRoles(constants.AdminAndAbove...),
	)

	// ===================== MOUNT ROUTES =====================
	log.Println("[INFO] Mounting Academy routes...")
	routeDetails.AcademyStaffRoutes(staff, db)

	log.Println("[INFO] Mounting Finance routes...")
	routeDetails.FinanceStaffRoutes(staff, db)
	routeDetails.FinanceAdminRoutes(admin, db)
}
