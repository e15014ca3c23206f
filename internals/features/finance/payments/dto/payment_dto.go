// file: internals/features/finance/payments/dto/payment_dto.go
package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	m "akademiku_backend/internals/features/finance/payments/model"
)

/* =============== REQUESTS =============== */

// Create
type CreatePaymentRequest struct {
	PaymentStudentID  uuid.UUID  `json:"payment_student_id"  validate:"required"`
	PaymentGuardianID *uuid.UUID `json:"payment_guardian_id" validate:"omitempty"`
	PaymentBranchID   uuid.UUID  `json:"payment_branch_id"   validate:"required"`

	PaymentType        m.PaymentType `json:"payment_type"        validate:"required,oneof=tuition enrollment_fee uniform exam_fee equipment other"`
	PaymentDescription *string       `json:"payment_description" validate:"omitempty"`

	PaymentAmount   float64 `json:"payment_amount"   validate:"gte=0"`
	PaymentDiscount float64 `json:"payment_discount" validate:"gte=0"`

	PaymentDueDate time.Time `json:"payment_due_date" validate:"required"`

	PaymentPeriodMonth *int16 `json:"payment_period_month" validate:"omitempty,min=1,max=12"`
	PaymentPeriodYear  *int16 `json:"payment_period_year"  validate:"omitempty,gte=2020,lte=2100"`

	PaymentNotes *string `json:"payment_notes" validate:"omitempty"`
}

func (r CreatePaymentRequest) ToModel() *m.Payment {
	return &m.Payment{
		PaymentStudentID:   r.PaymentStudentID,
		PaymentGuardianID:  r.PaymentGuardianID,
		PaymentBranchID:    r.PaymentBranchID,
		PaymentType:        r.PaymentType,
		PaymentDescription: r.PaymentDescription,
		PaymentAmount:      r.PaymentAmount,
		PaymentDiscount:    r.PaymentDiscount,
		PaymentDueDate:     r.PaymentDueDate,
		PaymentPeriodMonth: r.PaymentPeriodMonth,
		PaymentPeriodYear:  r.PaymentPeriodYear,
		PaymentNotes:       r.PaymentNotes,
		PaymentIsActive:    true,
	}
}

// Mark as paid
type MarkPaidRequest struct {
	PaymentPaidDate  *time.Time      `json:"payment_paid_date" validate:"omitempty"`
	PaymentMethod    m.PaymentMethod `json:"payment_method"    validate:"omitempty,oneof=cash card transfer check deposit"`
	PaymentReference *string         `json:"payment_reference" validate:"omitempty,max=120"`
}

// Cancel
type CancelPaymentRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

// List / query params
type ListPaymentQuery struct {
	StudentID  *uuid.UUID `query:"student_id"  validate:"omitempty"`
	GuardianID *uuid.UUID `query:"guardian_id" validate:"omitempty"`
	BranchID   *uuid.UUID `query:"branch_id"   validate:"omitempty"`

	Type   *m.PaymentType   `query:"type"   validate:"omitempty,oneof=tuition enrollment_fee uniform exam_fee equipment other"`
	Status *m.PaymentStatus `query:"status" validate:"omitempty,oneof=pending paid overdue cancelled"`

	Month *int `query:"month" validate:"omitempty,min=1,max=12"`
	Year  *int `query:"year"  validate:"omitempty,gte=2020,lte=2100"`

	DueFrom *time.Time `query:"due_from" validate:"omitempty"`
	DueTo   *time.Time `query:"due_to"   validate:"omitempty"`
}

/* =============== RESPONSES =============== */

// PaymentResponse is the public view: the stored record plus derived fields.
type PaymentResponse struct {
	PaymentID uuid.UUID `json:"payment_id"`

	PaymentStudentID  uuid.UUID  `json:"payment_student_id"`
	PaymentGuardianID *uuid.UUID `json:"payment_guardian_id,omitempty"`
	PaymentBranchID   uuid.UUID  `json:"payment_branch_id"`

	PaymentType        m.PaymentType `json:"payment_type"`
	PaymentDescription *string       `json:"payment_description,omitempty"`

	PaymentAmount        float64 `json:"payment_amount"`
	PaymentDiscount      float64 `json:"payment_discount"`
	PaymentTotal         float64 `json:"payment_total"`
	PaymentLateFeeAmount float64 `json:"payment_late_fee_amount"`

	PaymentDueDate  time.Time  `json:"payment_due_date"`
	PaymentPaidDate *time.Time `json:"payment_paid_date,omitempty"`

	PaymentPeriodMonth *int16  `json:"payment_period_month,omitempty"`
	PaymentPeriodYear  *int16  `json:"payment_period_year,omitempty"`
	PeriodName         *string `json:"period_name,omitempty"`

	PaymentStatus    m.PaymentStatus  `json:"payment_status"`
	PaymentMethod    *m.PaymentMethod `json:"payment_method,omitempty"`
	PaymentReference *string          `json:"payment_reference,omitempty"`

	PaymentReceiptNumber *string        `json:"payment_receipt_number,omitempty"`
	ReceiptFile          *m.ReceiptFile `json:"receipt_file,omitempty"`

	PaymentNotes *string `json:"payment_notes,omitempty"`

	IsOverdue   bool `json:"is_overdue"`
	DaysOverdue int  `json:"days_overdue"`

	PaymentIsActive bool `json:"payment_is_active"`

	PaymentCreatedBy      uuid.UUID  `json:"payment_created_by"`
	PaymentLastModifiedBy *uuid.UUID `json:"payment_last_modified_by,omitempty"`
	PaymentPaidBy         *uuid.UUID `json:"payment_paid_by,omitempty"`

	PaymentCreatedAt time.Time `json:"payment_created_at"`
	PaymentUpdatedAt time.Time `json:"payment_updated_at"`
}

type PaymentListResponse struct {
	Items []PaymentResponse `json:"items"`
	Total int64             `json:"total"`
}

/* =============== MAPPERS =============== */

// FromModel projects the stored record into the public view. Derived fields
// use the supplied clock; receiptBaseURL resolves relative receipt file URLs.
func FromModel(p m.Payment, now time.Time, receiptBaseURL string) PaymentResponse {
	resp := PaymentResponse{
		PaymentID:             p.PaymentID,
		PaymentStudentID:      p.PaymentStudentID,
		PaymentGuardianID:     p.PaymentGuardianID,
		PaymentBranchID:       p.PaymentBranchID,
		PaymentType:           p.PaymentType,
		PaymentDescription:    p.PaymentDescription,
		PaymentAmount:         p.PaymentAmount,
		PaymentDiscount:       p.PaymentDiscount,
		PaymentTotal:          p.PaymentTotal,
		PaymentLateFeeAmount:  p.PaymentLateFeeAmount,
		PaymentDueDate:        p.PaymentDueDate,
		PaymentPaidDate:       p.PaymentPaidDate,
		PaymentPeriodMonth:    p.PaymentPeriodMonth,
		PaymentPeriodYear:     p.PaymentPeriodYear,
		PaymentStatus:         p.PaymentStatus,
		PaymentMethod:         p.PaymentMethod,
		PaymentReference:      p.PaymentReference,
		PaymentReceiptNumber:  p.PaymentReceiptNumber,
		PaymentNotes:          p.PaymentNotes,
		PaymentIsActive:       p.PaymentIsActive,
		PaymentCreatedBy:      p.PaymentCreatedBy,
		PaymentLastModifiedBy: p.PaymentLastModifiedBy,
		PaymentPaidBy:         p.PaymentPaidBy,
		PaymentCreatedAt:      p.PaymentCreatedAt,
		PaymentUpdatedAt:      p.PaymentUpdatedAt,
	}

	// overdue is a derived flag: paid/cancelled are never overdue
	if p.PaymentStatus != m.PaymentStatusPaid && p.PaymentStatus != m.PaymentStatusCancelled {
		if now.After(p.PaymentDueDate) {
			resp.IsOverdue = true
			resp.DaysOverdue = daysBetween(p.PaymentDueDate, now)
		}
	}

	// period label only carries meaning for tuition
	if p.PaymentType == m.PaymentTypeTuition && p.PaymentPeriodMonth != nil && p.PaymentPeriodYear != nil {
		name := fmt.Sprintf("%s %d", time.Month(*p.PaymentPeriodMonth).String(), *p.PaymentPeriodYear)
		resp.PeriodName = &name
	}

	if len(p.PaymentReceiptFile) > 0 {
		var rf m.ReceiptFile
		if err := json.Unmarshal(p.PaymentReceiptFile, &rf); err == nil {
			rf.URL = resolveReceiptURL(rf.URL, receiptBaseURL)
			resp.ReceiptFile = &rf
		}
	}

	return resp
}

func FromModels(list []m.Payment, total int64, now time.Time, receiptBaseURL string) PaymentListResponse {
	out := make([]PaymentResponse, 0, len(list))
	for _, it := range list {
		out = append(out, FromModel(it, now, receiptBaseURL))
	}
	return PaymentListResponse{Items: out, Total: total}
}

func daysBetween(from, to time.Time) int {
	fromMidnight := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	toMidnight := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location())
	d := int(toMidnight.Sub(fromMidnight).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}

// resolveReceiptURL prefixes relative paths with the configured base URL and
// passes absolute URLs through unchanged.
func resolveReceiptURL(url, base string) string {
	if url == "" || strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	if base == "" {
		return url
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(url, "/")
}
