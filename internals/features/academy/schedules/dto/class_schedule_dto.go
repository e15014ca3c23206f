// file: internals/features/academy/schedules/dto/class_schedule_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	m "akademiku_backend/internals/features/academy/schedules/model"
)

/* =============== REQUESTS =============== */

type CreateClassScheduleRequest struct {
	ScheduleBranchID  uuid.UUID `json:"schedule_branch_id"  validate:"required"`
	ScheduleClassName string    `json:"schedule_class_name" validate:"required,min=2,max=120"`
	ScheduleTeacher   *string   `json:"schedule_teacher"    validate:"omitempty,max=120"`

	ScheduleWeekday   int    `json:"schedule_weekday"    validate:"min=0,max=6"`
	ScheduleStartTime string `json:"schedule_start_time" validate:"required,len=5"`
	ScheduleEndTime   string `json:"schedule_end_time"   validate:"required,len=5"`

	ScheduleCapacity int `json:"schedule_capacity" validate:"min=0,max=1000"`
}

func (r CreateClassScheduleRequest) ToModel() *m.ClassSchedule {
	return &m.ClassSchedule{
		ScheduleBranchID:  r.ScheduleBranchID,
		ScheduleClassName: r.ScheduleClassName,
		ScheduleTeacher:   r.ScheduleTeacher,
		ScheduleWeekday:   r.ScheduleWeekday,
		ScheduleStartTime: r.ScheduleStartTime,
		ScheduleEndTime:   r.ScheduleEndTime,
		ScheduleCapacity:  r.ScheduleCapacity,
		ScheduleIsActive:  true,
	}
}

type UpdateClassScheduleRequest struct {
	ScheduleClassName *string `json:"schedule_class_name" validate:"omitempty,min=2,max=120"`
	ScheduleTeacher   *string `json:"schedule_teacher"    validate:"omitempty,max=120"`
	ScheduleWeekday   *int    `json:"schedule_weekday"    validate:"omitempty,min=0,max=6"`
	ScheduleStartTime *string `json:"schedule_start_time" validate:"omitempty,len=5"`
	ScheduleEndTime   *string `json:"schedule_end_time"   validate:"omitempty,len=5"`
	ScheduleCapacity  *int    `json:"schedule_capacity"   validate:"omitempty,min=0,max=1000"`
	ScheduleIsActive  *bool   `json:"schedule_is_active"  validate:"omitempty"`
}

func (r UpdateClassScheduleRequest) ApplyTo(s *m.ClassSchedule) {
	if r.ScheduleClassName != nil {
		s.ScheduleClassName = *r.ScheduleClassName
	}
	if r.ScheduleTeacher != nil {
		s.ScheduleTeacher = r.ScheduleTeacher
	}
	if r.ScheduleWeekday != nil {
		s.ScheduleWeekday = *r.ScheduleWeekday
	}
	if r.ScheduleStartTime != nil {
		s.ScheduleStartTime = *r.ScheduleStartTime
	}
	if r.ScheduleEndTime != nil {
		s.ScheduleEndTime = *r.ScheduleEndTime
	}
	if r.ScheduleCapacity != nil {
		s.ScheduleCapacity = *r.ScheduleCapacity
	}
	if r.ScheduleIsActive != nil {
		s.ScheduleIsActive = *r.ScheduleIsActive
	}
}

/* =============== RESPONSES =============== */

type ClassScheduleResponse struct {
	ScheduleID            uuid.UUID `json:"schedule_id"`
	ScheduleBranchID      uuid.UUID `json:"schedule_branch_id"`
	ScheduleClassName     string    `json:"schedule_class_name"`
	ScheduleTeacher       *string   `json:"schedule_teacher,omitempty"`
	ScheduleWeekday       int       `json:"schedule_weekday"`
	ScheduleStartTime     string    `json:"schedule_start_time"`
	ScheduleEndTime       string    `json:"schedule_end_time"`
	ScheduleCapacity      int       `json:"schedule_capacity"`
	ScheduleEnrolledCount int       `json:"schedule_enrolled_count"`
	ScheduleSeatsLeft     int       `json:"schedule_seats_left"`
	ScheduleIsActive      bool      `json:"schedule_is_active"`
	ScheduleCreatedAt     time.Time `json:"schedule_created_at"`
	ScheduleUpdatedAt     time.Time `json:"schedule_updated_at"`
}

func FromModel(s m.ClassSchedule) ClassScheduleResponse {
	seats := s.ScheduleCapacity - s.ScheduleEnrolledCount
	if seats < 0 {
		seats = 0
	}
	return ClassScheduleResponse{
		ScheduleID:            s.ScheduleID,
		ScheduleBranchID:      s.ScheduleBranchID,
		ScheduleClassName:     s.ScheduleClassName,
		ScheduleTeacher:       s.ScheduleTeacher,
		ScheduleWeekday:       s.ScheduleWeekday,
		ScheduleStartTime:     s.ScheduleStartTime,
		ScheduleEndTime:       s.ScheduleEndTime,
		ScheduleCapacity:      s.ScheduleCapacity,
		ScheduleEnrolledCount: s.ScheduleEnrolledCount,
		ScheduleSeatsLeft:     seats,
		ScheduleIsActive:      s.ScheduleIsActive,
		ScheduleCreatedAt:     s.ScheduleCreatedAt,
		ScheduleUpdatedAt:     s.ScheduleUpdatedAt,
	}
}

func FromModels(list []m.ClassSchedule) []ClassScheduleResponse {
	out := make([]ClassScheduleResponse, 0, len(list))
	for _, it := range list {
		out = append(out, FromModel(it))
	}
	return out
}
