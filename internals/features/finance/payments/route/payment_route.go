// file: internals/features/finance/payments/route/payment_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	paymentController "akademiku_backend/internals/features/finance/payments/controller"
	"akademiku_backend/internals/middlewares"
)

/*
Staff routes: payment lifecycle (create, list, mark-paid, cancel, receipt).
Mount: PaymentStaffRoutes(app.Group("/api/a"), db)
*/
func PaymentStaffRoutes(r fiber.Router, db *gorm.DB) {
	ctl := paymentController.NewPaymentController(db)

	pay := r.Group("/payments")

	// Reads
	pay.Get("/", ctl.List)
	pay.Get("/pending", ctl.ListPending)
	pay.Get("/overdue", ctl.ListOverdue)
	pay.Get("/stats", ctl.Stats)
	pay.Get("/:id", ctl.GetByID)
	pay.Get("/:id/late-fee", ctl.PreviewLateFee)

	// Mutations get a tighter rate limit than the global one.
	mut := pay.Group("/", middlewares.PaymentMutationRateLimiter())
	mut.Post("/", ctl.Create)
	mut.Post("/:id/mark-paid", ctl.MarkAsPaid)
	mut.Post("/:id/cancel", ctl.Cancel)
	mut.Post("/:id/receipt-file", ctl.UploadReceiptFile)
	mut.Delete("/:id", ctl.Delete)
}
