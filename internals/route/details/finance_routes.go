// file: internals/route/details/finance_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	PaymentRoute "akademiku_backend/internals/features/finance/payments/route"
	SettingRoute "akademiku_backend/internals/features/finance/settings/route"
)

func FinanceStaffRoutes(r fiber.Router, db *gorm.DB) {
	PaymentRoute.PaymentStaffRoutes(r, db)
}

func FinanceAdminRoutes(r fiber.Router, db *gorm.DB) {
	SettingRoute.AppSettingAdminRoutes(r, db)
}
