// file: internals/features/finance/payments/controller/payment_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"akademiku_backend/internals/configs"
	"akademiku_backend/internals/constants"
	dto "akademiku_backend/internals/features/finance/payments/dto"
	model "akademiku_backend/internals/features/finance/payments/model"
	repository "akademiku_backend/internals/features/finance/payments/repository"
	service "akademiku_backend/internals/features/finance/payments/service"
	settingsService "akademiku_backend/internals/features/finance/settings/service"
	helper "akademiku_backend/internals/helpers"
)

type PaymentController struct {
	DB       *gorm.DB
	Service  *service.LifecycleService
	Settings *settingsService.Provider
	Validate *validator.Validate
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	provider := settingsService.NewProvider(db)
	repo := repository.NewPaymentRepository(db)
	return &PaymentController{
		DB:       db,
		Service:  service.NewLifecycleService(repo, provider, nil),
		Settings: provider,
		Validate: validator.New(),
	}
}

func (h *PaymentController) receiptBaseURL() string {
	return h.Settings.GetString(service.KeyReceiptBaseURL, configs.ReceiptBaseURL)
}

// mapServiceError translates the engine's error taxonomy onto HTTP.
func mapServiceError(c *fiber.Ctx, err error) error {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return helper.JsonValidationError(c, ve.Fields)
	case errors.Is(err, service.ErrNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Payment not found")
	case errors.Is(err, service.ErrMissingField):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidState):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrConflictRetryable):
		return helper.JsonError(c, fiber.StatusConflict, "Concurrent update, please retry")
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
}

func paymentIDParam(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid payment id")
	}
	return id, nil
}

/* ======================= CREATE ======================= */
// POST /api/a/payments
func (h *PaymentController) Create(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrorMap(err))
	}

	p, err := h.Service.Create(c.UserContext(), req.ToModel(), actorID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return helper.JsonCreated(c, "Payment created", dto.FromModel(*p, time.Now(), h.receiptBaseURL()))
}

/* ======================= GET BY ID ======================= */
// GET /api/a/payments/:id
func (h *PaymentController) GetByID(c *fiber.Ctx) error {
	id, err := paymentIDParam(c)
	if err != nil {
		return err
	}
	p, err := h.Service.Get(c.UserContext(), id)
	if err != nil {
		return mapServiceError(c, err)
	}
	return helper.JsonOK(c, "OK", dto.FromModel(*p, time.Now(), h.receiptBaseURL()))
}

/* ======================= LIST ======================= */
// GET /api/a/payments?student_id=&branch_id=&type=&status=&month=&year=&due_from=&due_to=&page=&per_page=
func (h *PaymentController) List(c *fiber.Ctx) error {
	f, paging, err := h.listFilter(c)
	if err != nil {
		return renderQueryError(c, err)
	}
	rows, total, err := h.Service.List(c.UserContext(), f)
	if err != nil {
		return mapServiceError(c, err)
	}
	resp := dto.FromModels(rows, total, time.Now(), h.receiptBaseURL())
	return helper.JsonList(c, "OK", resp.Items, helper.BuildPagination(total, paging.Page, paging.PerPage))
}

// GET /api/a/payments/pending
func (h *PaymentController) ListPending(c *fiber.Ctx) error {
	f, paging, err := h.listFilter(c)
	if err != nil {
		return renderQueryError(c, err)
	}
	rows, total, err := h.Service.ListPending(c.UserContext(), f)
	if err != nil {
		return mapServiceError(c, err)
	}
	resp := dto.FromModels(rows, total, time.Now(), h.receiptBaseURL())
	return helper.JsonList(c, "OK", resp.Items, helper.BuildPagination(total, paging.Page, paging.PerPage))
}

// GET /api/a/payments/overdue
func (h *PaymentController) ListOverdue(c *fiber.Ctx) error {
	f, paging, err := h.listFilter(c)
	if err != nil {
		return renderQueryError(c, err)
	}
	rows, total, err := h.Service.ListOverdue(c.UserContext(), f)
	if err != nil {
		return mapServiceError(c, err)
	}
	resp := dto.FromModels(rows, total, time.Now(), h.receiptBaseURL())
	return helper.JsonList(c, "OK", resp.Items, helper.BuildPagination(total, paging.Page, paging.PerPage))
}

/* ======================= STATS ======================= */
// GET /api/a/payments/stats?branch_id=&student_id=&type=&month=&year=
func (h *PaymentController) Stats(c *fiber.Ctx) error {
	var q dto.ListPaymentQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query")
	}
	if err := h.Validate.Struct(q); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrorMap(err))
	}

	buckets, err := h.Service.StatsByStatus(c.UserContext(), service.StatsFilter{
		BranchID:    q.BranchID,
		StudentID:   q.StudentID,
		Type:        q.Type,
		PeriodMonth: q.Month,
		PeriodYear:  q.Year,
		DueFrom:     q.DueFrom,
		DueTo:       q.DueTo,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return helper.JsonOK(c, "OK", buckets)
}

/* ======================= PREVIEW LATE FEE ======================= */
// GET /api/a/payments/:id/late-fee
func (h *PaymentController) PreviewLateFee(c *fiber.Ctx) error {
	id, err := paymentIDParam(c)
	if err != nil {
		return err
	}
	fee, err := h.Service.PreviewLateFee(c.UserContext(), id)
	if err != nil {
		return mapServiceError(c, err)
	}
	return helper.JsonOK(c, "OK", fee)
}

/* ======================= MARK AS PAID ======================= */
// POST /api/a/payments/:id/mark-paid
func (h *PaymentController) MarkAsPaid(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := paymentIDParam(c)
	if err != nil {
		return err
	}

	var req dto.MarkPaidRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrorMap(err))
	}

	p, fee, err := h.Service.MarkAsPaid(c.UserContext(), id, service.MarkPaidInput{
		PaidDate:  req.PaymentPaidDate,
		Method:    req.PaymentMethod,
		Reference: req.PaymentReference,
	}, actorID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return helper.JsonUpdated(c, "Payment marked as paid", fiber.Map{
		"payment":  dto.FromModel(*p, time.Now(), h.receiptBaseURL()),
		"late_fee": fee,
	})
}

/* ======================= CANCEL ======================= */
// POST /api/a/payments/:id/cancel
// Cancelling an already-paid payment needs an admin role; the state machine
// itself permits the edge.
func (h *PaymentController) Cancel(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := paymentIDParam(c)
	if err != nil {
		return err
	}

	var req dto.CancelPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}

	current, err := h.Service.Get(c.UserContext(), id)
	if err != nil {
		return mapServiceError(c, err)
	}
	if current.PaymentStatus == model.PaymentStatusPaid {
		role, _ := helper.GetRoleFromToken(c)
		if role != constants.RoleAdmin && role != constants.RoleSuperAdmin {
			return helper.JsonError(c, fiber.StatusForbidden, "Only admins may cancel a paid payment")
		}
	}

	p, err := h.Service.Cancel(c.UserContext(), id, actorID, req.Reason)
	if err != nil {
		return mapServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Payment cancelled", dto.FromModel(*p, time.Now(), h.receiptBaseURL()))
}

/* ======================= RECEIPT FILE UPLOAD ======================= */
// POST /api/a/payments/:id/receipt-file  (multipart field "file")
func (h *PaymentController) UploadReceiptFile(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := paymentIDParam(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Missing receipt file")
	}
	if !helper.IsSupportedImage(fileHeader.Filename) {
		return fiber.NewError(fiber.StatusBadRequest, "Unsupported image type, use jpg/png/webp")
	}

	converted, err := helper.ConvertImageToWebP(fileHeader)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Failed to process receipt image")
	}

	fileName := fmt.Sprintf("receipt-%s-%d.webp", id, time.Now().Unix())
	if err := os.MkdirAll(configs.UploadDir, 0o755); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to prepare upload dir")
	}
	if err := os.WriteFile(filepath.Join(configs.UploadDir, fileName), converted, 0o644); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to store receipt image")
	}

	meta := model.ReceiptFile{
		FileName:     fileName,
		OriginalName: fileHeader.Filename,
		MimeType:     "image/webp",
		Size:         int64(len(converted)),
		URL:          "receipts/" + fileName,
		UploadedAt:   time.Now(),
		UploadedBy:   actorID,
	}
	raw, err := json.Marshal(meta)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to encode receipt metadata")
	}

	p, err := h.Service.AttachReceiptFile(c.UserContext(), id, raw, actorID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Receipt file attached", dto.FromModel(*p, time.Now(), h.receiptBaseURL()))
}

/* ======================= DELETE (SOFT) ======================= */
// DELETE /api/a/payments/:id
func (h *PaymentController) Delete(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := paymentIDParam(c)
	if err != nil {
		return err
	}
	if err := h.Service.Deactivate(c.UserContext(), id, actorID); err != nil {
		return mapServiceError(c, err)
	}
	return helper.JsonDeleted(c, "Payment deactivated", fiber.Map{"payment_id": id})
}

/* ======================== internals ======================== */

// renderQueryError turns a listFilter failure into the right response:
// validator errors get the 422 field map, everything else passes through.
func renderQueryError(c *fiber.Ctx, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return helper.JsonValidationError(c, helper.ValidatorErrorMap(err))
	}
	return err
}

// listFilter parses and validates the list query params. Validation failures
// come back as the raw validator error; the handler renders them via
// renderQueryError.
func (h *PaymentController) listFilter(c *fiber.Ctx) (service.ListFilter, helper.Paging, error) {
	var q dto.ListPaymentQuery
	if err := c.QueryParser(&q); err != nil {
		return service.ListFilter{}, helper.Paging{}, fiber.NewError(fiber.StatusBadRequest, "Invalid query")
	}
	if err := h.Validate.Struct(q); err != nil {
		return service.ListFilter{}, helper.Paging{}, err
	}

	paging := helper.ResolvePaging(c, 20, 100)
	return service.ListFilter{
		StudentID:   q.StudentID,
		GuardianID:  q.GuardianID,
		BranchID:    q.BranchID,
		Type:        q.Type,
		Status:      q.Status,
		PeriodMonth: q.Month,
		PeriodYear:  q.Year,
		DueFrom:     q.DueFrom,
		DueTo:       q.DueTo,
		Limit:       paging.Limit,
		Offset:      paging.Offset,
	}, paging, nil
}
