// file: internals/features/finance/settings/route/app_setting_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	settingController "akademiku_backend/internals/features/finance/settings/controller"
)

/*
Admin routes: runtime settings (grace period, late fee percentage, ...).
Mount: AppSettingAdminRoutes(app.Group("/api/a"), db)
*/
func AppSettingAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := settingController.NewAppSettingController(db)

	st := r.Group("/settings")
	st.Get("/", ctl.List)
	st.Get("/:key", ctl.GetByKey)
	st.Put("/", ctl.Upsert)
}
