// file: internals/features/academy/schedules/model/class_schedule_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClassSchedule struct {
	ScheduleID uuid.UUID `json:"schedule_id" gorm:"column:schedule_id;type:uuid;default:gen_random_uuid();primaryKey"`

	ScheduleBranchID uuid.UUID `json:"schedule_branch_id" gorm:"column:schedule_branch_id;type:uuid;not null;index"`

	ScheduleClassName string `json:"schedule_class_name" gorm:"column:schedule_class_name;type:varchar(120);not null"`
	ScheduleTeacher   *string `json:"schedule_teacher"   gorm:"column:schedule_teacher;type:varchar(120)"`

	// 0 = Sunday ... 6 = Saturday
	ScheduleWeekday   int    `json:"schedule_weekday"    gorm:"column:schedule_weekday;type:smallint;not null"`
	ScheduleStartTime string `json:"schedule_start_time" gorm:"column:schedule_start_time;type:varchar(5);not null"`
	ScheduleEndTime   string `json:"schedule_end_time"   gorm:"column:schedule_end_time;type:varchar(5);not null"`

	ScheduleCapacity      int `json:"schedule_capacity"       gorm:"column:schedule_capacity;not null;default:0"`
	ScheduleEnrolledCount int `json:"schedule_enrolled_count" gorm:"column:schedule_enrolled_count;not null;default:0"`

	ScheduleIsActive bool `json:"schedule_is_active" gorm:"column:schedule_is_active;not null;default:true"`

	ScheduleCreatedAt time.Time      `json:"schedule_created_at" gorm:"column:schedule_created_at;type:timestamptz;not null;autoCreateTime"`
	ScheduleUpdatedAt time.Time      `json:"schedule_updated_at" gorm:"column:schedule_updated_at;type:timestamptz;not null;autoUpdateTime"`
	ScheduleDeletedAt gorm.DeletedAt `json:"-"                   gorm:"column:schedule_deleted_at;index"`
}

func (ClassSchedule) TableName() string { return "class_schedules" }
