// file: internals/features/academy/students/dto/student_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	m "akademiku_backend/internals/features/academy/students/model"
)

/* =============== REQUESTS =============== */

type CreateStudentRequest struct {
	StudentBranchID   uuid.UUID  `json:"student_branch_id"   validate:"required"`
	StudentGuardianID *uuid.UUID `json:"student_guardian_id" validate:"omitempty"`

	StudentNumber string `json:"student_number" validate:"required,min=3,max=30"`
	StudentName   string `json:"student_name"   validate:"required,min=2,max=120"`

	StudentBirthDate  *time.Time `json:"student_birth_date"  validate:"omitempty"`
	StudentPhone      *string    `json:"student_phone"       validate:"omitempty,max=30"`
	StudentEnrolledAt *time.Time `json:"student_enrolled_at" validate:"omitempty"`
}

func (r CreateStudentRequest) ToModel() *m.Student {
	return &m.Student{
		StudentBranchID:   r.StudentBranchID,
		StudentGuardianID: r.StudentGuardianID,
		StudentNumber:     r.StudentNumber,
		StudentName:       r.StudentName,
		StudentBirthDate:  r.StudentBirthDate,
		StudentPhone:      r.StudentPhone,
		StudentEnrolledAt: r.StudentEnrolledAt,
		StudentIsActive:   true,
	}
}

type UpdateStudentRequest struct {
	StudentBranchID   *uuid.UUID `json:"student_branch_id"   validate:"omitempty"`
	StudentGuardianID *uuid.UUID `json:"student_guardian_id" validate:"omitempty"`
	StudentName       *string    `json:"student_name"        validate:"omitempty,min=2,max=120"`
	StudentBirthDate  *time.Time `json:"student_birth_date"  validate:"omitempty"`
	StudentPhone      *string    `json:"student_phone"       validate:"omitempty,max=30"`
	StudentEnrolledAt *time.Time `json:"student_enrolled_at" validate:"omitempty"`
	StudentIsActive   *bool      `json:"student_is_active"   validate:"omitempty"`
}

func (r UpdateStudentRequest) ApplyTo(s *m.Student) {
	if r.StudentBranchID != nil {
		s.StudentBranchID = *r.StudentBranchID
	}
	if r.StudentGuardianID != nil {
		s.StudentGuardianID = r.StudentGuardianID
	}
	if r.StudentName != nil {
		s.StudentName = *r.StudentName
	}
	if r.StudentBirthDate != nil {
		s.StudentBirthDate = r.StudentBirthDate
	}
	if r.StudentPhone != nil {
		s.StudentPhone = r.StudentPhone
	}
	if r.StudentEnrolledAt != nil {
		s.StudentEnrolledAt = r.StudentEnrolledAt
	}
	if r.StudentIsActive != nil {
		s.StudentIsActive = *r.StudentIsActive
	}
}

/* =============== RESPONSES =============== */

type StudentResponse struct {
	StudentID         uuid.UUID  `json:"student_id"`
	StudentBranchID   uuid.UUID  `json:"student_branch_id"`
	StudentGuardianID *uuid.UUID `json:"student_guardian_id,omitempty"`
	StudentNumber     string     `json:"student_number"`
	StudentName       string     `json:"student_name"`
	StudentBirthDate  *time.Time `json:"student_birth_date,omitempty"`
	StudentPhone      *string    `json:"student_phone,omitempty"`
	StudentEnrolledAt *time.Time `json:"student_enrolled_at,omitempty"`
	StudentIsActive   bool       `json:"student_is_active"`
	StudentCreatedAt  time.Time  `json:"student_created_at"`
	StudentUpdatedAt  time.Time  `json:"student_updated_at"`
}

func FromModel(s m.Student) StudentResponse {
	return StudentResponse{
		StudentID:         s.StudentID,
		StudentBranchID:   s.StudentBranchID,
		StudentGuardianID: s.StudentGuardianID,
		StudentNumber:     s.StudentNumber,
		StudentName:       s.StudentName,
		StudentBirthDate:  s.StudentBirthDate,
		StudentPhone:      s.StudentPhone,
		StudentEnrolledAt: s.StudentEnrolledAt,
		StudentIsActive:   s.StudentIsActive,
		StudentCreatedAt:  s.StudentCreatedAt,
		StudentUpdatedAt:  s.StudentUpdatedAt,
	}
}

func FromModels(list []m.Student) []StudentResponse {
	out := make([]StudentResponse, 0, len(list))
	for _, it := range list {
		out = append(out, FromModel(it))
	}
	return out
}
