// file: internals/features/academy/guardians/controller/guardian_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "akademiku_backend/internals/features/academy/guardians/dto"
	model "akademiku_backend/internals/features/academy/guardians/model"
	helper "akademiku_backend/internals/helpers"
)

type GuardianController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewGuardianController(db *gorm.DB) *GuardianController {
	return &GuardianController{DB: db, Validate: validator.New()}
}

/* ======================= CREATE ======================= */
// POST /api/a/guardians
func (h *GuardianController) Create(c *fiber.Ctx) error {
	var req dto.CreateGuardianRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrorMap(err))
	}

	m := req.ToModel()
	if err := h.DB.WithContext(c.UserContext()).Create(m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create guardian")
	}
	return helper.JsonCreated(c, "Guardian created", dto.FromModel(*m))
}

/* ======================= LIST ======================= */
// GET /api/a/guardians?search=&active=&page=&per_page=
func (h *GuardianController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := h.DB.WithContext(c.UserContext()).Model(&model.Guardian{})
	if s := strings.TrimSpace(c.Query("search")); s != "" {
		like := "%" + s + "%"
		q = q.Where("guardian_name ILIKE ? OR guardian_phone ILIKE ?", like, like)
	}
	if v := strings.TrimSpace(c.Query("active")); v != "" {
		q = q.Where("guardian_is_active = ?", v == "true")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var list []model.Guardian
	if err := q.Order("guardian_name ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&list).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "OK", dto.FromModels(list), helper.BuildPagination(total, paging.Page, paging.PerPage))
}

/* ======================= GET BY ID ======================= */
// GET /api/a/guardians/:id
func (h *GuardianController) GetByID(c *fiber.Ctx) error {
	g, err := h.find(c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "OK", dto.FromModel(*g))
}

/* ======================= UPDATE ======================= */
// PUT /api/a/guardians/:id
func (h *GuardianController) Update(c *fiber.Ctx) error {
	g, err := h.find(c)
	if err != nil {
		return err
	}

	var req dto.UpdateGuardianRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrorMap(err))
	}

	req.ApplyTo(g)
	if err := h.DB.WithContext(c.UserContext()).Save(g).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update guardian")
	}
	return helper.JsonUpdated(c, "Guardian updated", dto.FromModel(*g))
}

/* ======================= DELETE (SOFT) ======================= */
// DELETE /api/a/guardians/:id
func (h *GuardianController) Delete(c *fiber.Ctx) error {
	g, err := h.find(c)
	if err != nil {
		return err
	}
	if err := h.DB.WithContext(c.UserContext()).Delete(g).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete guardian")
	}
	return helper.JsonDeleted(c, "Guardian deleted", fiber.Map{"guardian_id": g.GuardianID})
}

/* ======================== internals ======================== */

func (h *GuardianController) find(c *fiber.Ctx) (*model.Guardian, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid guardian id")
	}
	var g model.Guardian
	if err := h.DB.WithContext(c.UserContext()).
		Where("guardian_id = ?", id).
		First(&g).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Guardian not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return &g, nil
}
