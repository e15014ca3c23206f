// file: internals/features/academy/guardians/route/guardian_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	guardianController "akademiku_backend/internals/features/academy/guardians/controller"
)

/*
Admin routes: guardians CRUD.
Mount: GuardianAdminRoutes(app.Group("/api/a"), db)
*/
func GuardianAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := guardianController.NewGuardianController(db)

	g := r.Group("/guardians")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.GetByID)
	g.Post("/", ctl.Create)
	g.Put("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
}
