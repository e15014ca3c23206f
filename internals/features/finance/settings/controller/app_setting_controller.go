// file: internals/features/finance/settings/controller/app_setting_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dto "akademiku_backend/internals/features/finance/settings/dto"
	model "akademiku_backend/internals/features/finance/settings/model"
	helper "akademiku_backend/internals/helpers"
)

type AppSettingController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewAppSettingController(db *gorm.DB) *AppSettingController {
	return &AppSettingController{DB: db, Validate: validator.New()}
}

/* ======================= UPSERT ======================= */
// PUT /api/a/settings
func (h *AppSettingController) Upsert(c *fiber.Ctx) error {
	var req dto.UpsertAppSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrorMap(err))
	}

	m := req.ToModel()
	if err := h.DB.WithContext(c.UserContext()).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "setting_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"setting_value", "setting_description", "setting_updated_at"}),
		}).
		Create(m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save setting")
	}

	var saved model.AppSetting
	if err := h.DB.WithContext(c.UserContext()).
		Where("setting_key = ?", req.SettingKey).
		First(&saved).Error; err != nil {
		return helper.JsonUpdated(c, "Setting saved", dto.FromModel(*m))
	}
	return helper.JsonUpdated(c, "Setting saved", dto.FromModel(saved))
}

/* ======================= GET BY KEY ======================= */
// GET /api/a/settings/:key
func (h *AppSettingController) GetByKey(c *fiber.Ctx) error {
	key := strings.TrimSpace(c.Params("key"))
	if key == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Key must not be empty")
	}

	var row model.AppSetting
	if err := h.DB.WithContext(c.UserContext()).
		Where("setting_key = ?", key).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Setting not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "OK", dto.FromModel(row))
}

/* ======================= LIST ======================= */
// GET /api/a/settings
func (h *AppSettingController) List(c *fiber.Ctx) error {
	var list []model.AppSetting
	if err := h.DB.WithContext(c.UserContext()).
		Order("setting_key ASC").
		Find(&list).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "OK", dto.FromModels(list))
}
