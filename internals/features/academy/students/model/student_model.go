// file: internals/features/academy/students/model/student_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Student struct {
	StudentID uuid.UUID `json:"student_id" gorm:"column:student_id;type:uuid;default:gen_random_uuid();primaryKey"`

	StudentBranchID   uuid.UUID  `json:"student_branch_id"   gorm:"column:student_branch_id;type:uuid;not null;index"`
	StudentGuardianID *uuid.UUID `json:"student_guardian_id" gorm:"column:student_guardian_id;type:uuid;index"`

	StudentNumber string `json:"student_number" gorm:"column:student_number;type:varchar(30);not null;uniqueIndex"`
	StudentName   string `json:"student_name"   gorm:"column:student_name;type:varchar(120);not null"`

	StudentBirthDate  *time.Time `json:"student_birth_date"  gorm:"column:student_birth_date;type:date"`
	StudentPhone      *string    `json:"student_phone"       gorm:"column:student_phone;type:varchar(30)"`
	StudentEnrolledAt *time.Time `json:"student_enrolled_at" gorm:"column:student_enrolled_at;type:date"`

	StudentIsActive bool `json:"student_is_active" gorm:"column:student_is_active;not null;default:true"`

	StudentCreatedAt time.Time      `json:"student_created_at" gorm:"column:student_created_at;type:timestamptz;not null;autoCreateTime"`
	StudentUpdatedAt time.Time      `json:"student_updated_at" gorm:"column:student_updated_at;type:timestamptz;not null;autoUpdateTime"`
	StudentDeletedAt gorm.DeletedAt `json:"-"                  gorm:"column:student_deleted_at;index"`
}

func (Student) TableName() string { return "students" }
