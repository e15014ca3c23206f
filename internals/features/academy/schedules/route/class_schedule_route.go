// file: internals/features/academy/schedules/route/class_schedule_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	scheduleController "akademiku_backend/internals/features/academy/schedules/controller"
)

/*
Admin routes: class schedules CRUD + enrollment bookkeeping.
Mount: ClassScheduleAdminRoutes(app.Group("/api/a"), db)
*/
func ClassScheduleAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := scheduleController.NewClassScheduleController(db)

	cs := r.Group("/class-schedules")
	cs.Get("/", ctl.List)
	cs.Get("/:id", ctl.GetByID)
	cs.Post("/", ctl.Create)
	cs.Put("/:id", ctl.Update)
	cs.Post("/:id/enroll", ctl.Enroll)
	cs.Post("/:id/unenroll", ctl.Unenroll)
	cs.Delete("/:id", ctl.Delete)
}
