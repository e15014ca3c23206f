// file: internals/features/academy/branches/controller/branch_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "akademiku_backend/internals/features/academy/branches/dto"
	model "akademiku_backend/internals/features/academy/branches/model"
	helper "akademiku_backend/internals/helpers"
)

type BranchController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewBranchController(db *gorm.DB) *BranchController {
	return &BranchController{DB: db, Validate: validator.New()}
}

/* ======================= CREATE ======================= */
// POST /api/a/branches
func (h *BranchController) Create(c *fiber.Ctx) error {
	var req dto.CreateBranchRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrorMap(err))
	}

	m := req.ToModel()
	if err := h.DB.WithContext(c.UserContext()).Create(m).Error; err != nil {
		if isDuplicateErr(err) {
			return fiber.NewError(fiber.StatusConflict, "Branch code already exists")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create branch")
	}
	return helper.JsonCreated(c, "Branch created", dto.FromModel(*m))
}

/* ======================= LIST ======================= */
// GET /api/a/branches?search=&active=&page=&per_page=
func (h *BranchController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := h.DB.WithContext(c.UserContext()).Model(&model.Branch{})
	if s := strings.TrimSpace(c.Query("search")); s != "" {
		like := "%" + s + "%"
		q = q.Where("branch_name ILIKE ? OR branch_code ILIKE ?", like, like)
	}
	if v := strings.TrimSpace(c.Query("active")); v != "" {
		q = q.Where("branch_is_active = ?", v == "true")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var list []model.Branch
	if err := q.Order("branch_code ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&list).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "OK", dto.FromModels(list), helper.BuildPagination(total, paging.Page, paging.PerPage))
}

/* ======================= GET BY ID ======================= */
// GET /api/a/branches/:id
func (h *BranchController) GetByID(c *fiber.Ctx) error {
	b, err := h.find(c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "OK", dto.FromModel(*b))
}

/* ======================= UPDATE ======================= */
// PUT /api/a/branches/:id
func (h *BranchController) Update(c *fiber.Ctx) error {
	b, err := h.find(c)
	if err != nil {
		return err
	}

	var req dto.UpdateBranchRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrorMap(err))
	}

	req.ApplyTo(b)
	if err := h.DB.WithContext(c.UserContext()).Save(b).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update branch")
	}
	return helper.JsonUpdated(c, "Branch updated", dto.FromModel(*b))
}

/* ======================= DELETE (SOFT) ======================= */
// DELETE /api/a/branches/:id
func (h *BranchController) Delete(c *fiber.Ctx) error {
	b, err := h.find(c)
	if err != nil {
		return err
	}
	if err := h.DB.WithContext(c.UserContext()).Delete(b).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete branch")
	}
	return helper.JsonDeleted(c, "Branch deleted", fiber.Map{"branch_id": b.BranchID})
}

/* ======================== internals ======================== */

func (h *BranchController) find(c *fiber.Ctx) (*model.Branch, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid branch id")
	}
	var b model.Branch
	if err := h.DB.WithContext(c.UserContext()).
		Where("branch_id = ?", id).
		First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Branch not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return &b, nil
}

func isDuplicateErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
