// file: internals/features/academy/students/route/student_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	studentController "akademiku_backend/internals/features/academy/students/controller"
)

/*
Admin routes: students CRUD.
Mount: StudentAdminRoutes(app.Group("/api/a"), db)
*/
func StudentAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := studentController.NewStudentController(db)

	st := r.Group("/students")
	st.Get("/", ctl.List)
	st.Get("/:id", ctl.GetByID)
	st.Post("/", ctl.Create)
	st.Put("/:id", ctl.Update)
	st.Delete("/:id", ctl.Delete)
}
