// file: internals/features/finance/payments/controller/payment_controller_test.go
package controller

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The controller has a nil Service here on purpose: an invalid query must be
// rejected before any service call, so reaching the service would panic and
// fail the test.
func newListTestApp(t *testing.T, handler func(h *PaymentController) fiber.Handler) *fiber.App {
	t.Helper()
	h := &PaymentController{Validate: validator.New()}
	app := fiber.New()
	app.Get("/payments", handler(h))
	return app
}

func TestList_InvalidQueryReturns422(t *testing.T) {
	handlers := map[string]func(h *PaymentController) fiber.Handler{
		"list":    func(h *PaymentController) fiber.Handler { return h.List },
		"pending": func(h *PaymentController) fiber.Handler { return h.ListPending },
		"overdue": func(h *PaymentController) fiber.Handler { return h.ListOverdue },
	}

	for name, pick := range handlers {
		t.Run(name, func(t *testing.T) {
			app := newListTestApp(t, pick)

			resp, err := app.Test(httptest.NewRequest("GET", "/payments?month=13", nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Contains(t, string(body), "month")
		})
	}
}

func TestList_OutOfRangeYearReturns422(t *testing.T) {
	app := newListTestApp(t, func(h *PaymentController) fiber.Handler { return h.List })

	resp, err := app.Test(httptest.NewRequest("GET", "/payments?year=1999", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}
