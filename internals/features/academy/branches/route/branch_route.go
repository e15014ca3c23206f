// file: internals/features/academy/branches/route/branch_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	branchController "akademiku_backend/internals/features/academy/branches/controller"
)

/*
Admin routes: branches CRUD.
Mount: BranchAdminRoutes(app.Group("/api/a"), db)
*/
func BranchAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := branchController.NewBranchController(db)

	br := r.Group("/branches")
	br.Get("/", ctl.List)
	br.Get("/:id", ctl.GetByID)
	br.Post("/", ctl.Create)
	br.Put("/:id", ctl.Update)
	br.Delete("/:id", ctl.Delete)
}
