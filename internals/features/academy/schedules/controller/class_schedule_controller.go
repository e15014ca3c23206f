// file: internals/features/academy/schedules/controller/class_schedule_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	branchModel "akademiku_backend/internals/features/academy/branches/model"
	dto "akademiku_backend/internals/features/academy/schedules/dto"
	model "akademiku_backend/internals/features/academy/schedules/model"
	helper "akademiku_backend/internals/helpers"
)

type ClassScheduleController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewClassScheduleController(db *gorm.DB) *ClassScheduleController {
	return &ClassScheduleController{DB: db, Validate: validator.New()}
}

/* ======================= CREATE ======================= */
// POST /api/a/class-schedules
func (h *ClassScheduleController) Create(c *fiber.Ctx) error {
	var req dto.CreateClassScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrorMap(err))
	}

	var n int64
	if err := h.DB.WithContext(c.UserContext()).
		Model(&branchModel.Branch{}).
		Where("branch_id = ? AND branch_is_active = TRUE", req.ScheduleBranchID).
		Count(&n).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if n == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Branch not found or inactive")
	}

	m := req.ToModel()
	if err := h.DB.WithContext(c.UserContext()).Create(m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create class schedule")
	}
	return helper.JsonCreated(c, "Class schedule created", dto.FromModel(*m))
}

/* ======================= LIST ======================= */
// GET /api/a/class-schedules?branch_id=&weekday=&active=&page=&per_page=
func (h *ClassScheduleController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := h.DB.WithContext(c.UserContext()).Model(&model.ClassSchedule{})
	if v := strings.TrimSpace(c.Query("branch_id")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid branch_id")
		}
		q = q.Where("schedule_branch_id = ?", id)
	}
	if v := strings.TrimSpace(c.Query("weekday")); v != "" {
		q = q.Where("schedule_weekday = ?", v)
	}
	if v := strings.TrimSpace(c.Query("active")); v != "" {
		q = q.Where("schedule_is_active = ?", v == "true")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var list []model.ClassSchedule
	if err := q.Order("schedule_weekday ASC, schedule_start_time ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&list).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "OK", dto.FromModels(list), helper.BuildPagination(total, paging.Page, paging.PerPage))
}

/* ======================= GET BY ID ======================= */
// GET /api/a/class-schedules/:id
func (h *ClassScheduleController) GetByID(c *fiber.Ctx) error {
	s, err := h.find(c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "OK", dto.FromModel(*s))
}

/* ======================= UPDATE ======================= */
// PUT /api/a/class-schedules/:id
func (h *ClassScheduleController) Update(c *fiber.Ctx) error {
	s, err := h.find(c)
	if err != nil {
		return err
	}

	var req dto.UpdateClassScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrorMap(err))
	}
	if req.ScheduleCapacity != nil && *req.ScheduleCapacity < s.ScheduleEnrolledCount {
		return fiber.NewError(fiber.StatusConflict, "Capacity below current enrolled count")
	}

	req.ApplyTo(s)
	if err := h.DB.WithContext(c.UserContext()).Save(s).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update class schedule")
	}
	return helper.JsonUpdated(c, "Class schedule updated", dto.FromModel(*s))
}

/* ======================= ENROLL / UNENROLL ======================= */
// POST /api/a/class-schedules/:id/enroll
// Atomic guarded increment: fails with 409 when the class is full.
func (h *ClassScheduleController) Enroll(c *fiber.Ctx) error {
	s, err := h.find(c)
	if err != nil {
		return err
	}
	if !s.ScheduleIsActive {
		return fiber.NewError(fiber.StatusConflict, "Class schedule is inactive")
	}

	res := h.DB.WithContext(c.UserContext()).
		Model(&model.ClassSchedule{}).
		Where("schedule_id = ? AND schedule_enrolled_count < schedule_capacity", s.ScheduleID).
		UpdateColumn("schedule_enrolled_count", gorm.Expr("schedule_enrolled_count + 1"))
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusConflict, "Class is full")
	}

	s.ScheduleEnrolledCount++
	return helper.JsonUpdated(c, "Enrolled", dto.FromModel(*s))
}

// POST /api/a/class-schedules/:id/unenroll
func (h *ClassScheduleController) Unenroll(c *fiber.Ctx) error {
	s, err := h.find(c)
	if err != nil {
		return err
	}

	res := h.DB.WithContext(c.UserContext()).
		Model(&model.ClassSchedule{}).
		Where("schedule_id = ? AND schedule_enrolled_count > 0", s.ScheduleID).
		UpdateColumn("schedule_enrolled_count", gorm.Expr("schedule_enrolled_count - 1"))
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusConflict, "No enrolled students to remove")
	}

	s.ScheduleEnrolledCount--
	return helper.JsonUpdated(c, "Unenrolled", dto.FromModel(*s))
}

/* ======================= DELETE (SOFT) ======================= */
// DELETE /api/a/class-schedules/:id
func (h *ClassScheduleController) Delete(c *fiber.Ctx) error {
	s, err := h.find(c)
	if err != nil {
		return err
	}
	if err := h.DB.WithContext(c.UserContext()).Delete(s).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete class schedule")
	}
	return helper.JsonDeleted(c, "Class schedule deleted", fiber.Map{"schedule_id": s.ScheduleID})
}

/* ======================== internals ======================== */

func (h *ClassScheduleController) find(c *fiber.Ctx) (*model.ClassSchedule, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid schedule id")
	}
	var s model.ClassSchedule
	if err := h.DB.WithContext(c.UserContext()).
		Where("schedule_id = ?", id).
		First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Class schedule not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return &s, nil
}
