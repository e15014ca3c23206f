// file: internals/features/academy/students/controller/student_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	branchModel "akademiku_backend/internals/features/academy/branches/model"
	guardianModel "akademiku_backend/internals/features/academy/guardians/model"
	dto "akademiku_backend/internals/features/academy/students/dto"
	model "akademiku_backend/internals/features/academy/students/model"
	helper "akademiku_backend/internals/helpers"
)

type StudentController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{DB: db, Validate: validator.New()}
}

/* ======================= CREATE ======================= */
// POST /api/a/students
func (h *StudentController) Create(c *fiber.Ctx) error {
	var req dto.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrorMap(err))
	}

	if err := h.checkRefs(c, req.StudentBranchID, req.StudentGuardianID); err != nil {
		return err
	}

	m := req.ToModel()
	if err := h.DB.WithContext(c.UserContext()).Create(m).Error; err != nil {
		if isDuplicateErr(err) {
			return fiber.NewError(fiber.StatusConflict, "Student number already exists")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create student")
	}
	return helper.JsonCreated(c, "Student created", dto.FromModel(*m))
}

/* ======================= LIST ======================= */
// GET /api/a/students?branch_id=&guardian_id=&search=&active=&page=&per_page=
func (h *StudentController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := h.DB.WithContext(c.UserContext()).Model(&model.Student{})
	if v := strings.TrimSpace(c.Query("branch_id")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid branch_id")
		}
		q = q.Where("student_branch_id = ?", id)
	}
	if v := strings.TrimSpace(c.Query("guardian_id")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid guardian_id")
		}
		q = q.Where("student_guardian_id = ?", id)
	}
	if s := strings.TrimSpace(c.Query("search")); s != "" {
		like := "%" + s + "%"
		q = q.Where("student_name ILIKE ? OR student_number ILIKE ?", like, like)
	}
	if v := strings.TrimSpace(c.Query("active")); v != "" {
		q = q.Where("student_is_active = ?", v == "true")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var list []model.Student
	if err := q.Order("student_name ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&list).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "OK", dto.FromModels(list), helper.BuildPagination(total, paging.Page, paging.PerPage))
}

/* ======================= GET BY ID ======================= */
// GET /api/a/students/:id
func (h *StudentController) GetByID(c *fiber.Ctx) error {
	s, err := h.find(c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "OK", dto.FromModel(*s))
}

/* ======================= UPDATE ======================= */
// PUT /api/a/students/:id
func (h *StudentController) Update(c *fiber.Ctx) error {
	s, err := h.find(c)
	if err != nil {
		return err
	}

	var req dto.UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidatorErrorMap(err))
	}

	if req.StudentBranchID != nil || req.StudentGuardianID != nil {
		branchID := s.StudentBranchID
		if req.StudentBranchID != nil {
			branchID = *req.StudentBranchID
		}
		guardianID := s.StudentGuardianID
		if req.StudentGuardianID != nil {
			guardianID = req.StudentGuardianID
		}
		if err := h.checkRefs(c, branchID, guardianID); err != nil {
			return err
		}
	}

	req.ApplyTo(s)
	if err := h.DB.WithContext(c.UserContext()).Save(s).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update student")
	}
	return helper.JsonUpdated(c, "Student updated", dto.FromModel(*s))
}

/* ======================= DELETE (SOFT) ======================= */
// DELETE /api/a/students/:id
func (h *StudentController) Delete(c *fiber.Ctx) error {
	s, err := h.find(c)
	if err != nil {
		return err
	}
	if err := h.DB.WithContext(c.UserContext()).Delete(s).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete student")
	}
	return helper.JsonDeleted(c, "Student deleted", fiber.Map{"student_id": s.StudentID})
}

/* ======================== internals ======================== */

func (h *StudentController) find(c *fiber.Ctx) (*model.Student, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid student id")
	}
	var s model.Student
	if err := h.DB.WithContext(c.UserContext()).
		Where("student_id = ?", id).
		First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return &s, nil
}

func (h *StudentController) checkRefs(c *fiber.Ctx, branchID uuid.UUID, guardianID *uuid.UUID) error {
	var n int64
	if err := h.DB.WithContext(c.UserContext()).
		Model(&branchModel.Branch{}).
		Where("branch_id = ? AND branch_is_active = TRUE", branchID).
		Count(&n).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if n == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Branch not found or inactive")
	}

	if guardianID != nil {
		if err := h.DB.WithContext(c.UserContext()).
			Model(&guardianModel.Guardian{}).
			Where("guardian_id = ? AND guardian_is_active = TRUE", *guardianID).
			Count(&n).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if n == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Guardian not found or inactive")
		}
	}
	return nil
}

func isDuplicateErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
