// file: internals/features/finance/payments/model/payment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* ================================
   ENUM mirror (must match the DB)
================================ */

type PaymentType string
type PaymentStatus string
type PaymentMethod string

const (
	PaymentTypeTuition       PaymentType = "tuition"
	PaymentTypeEnrollmentFee PaymentType = "enrollment_fee"
	PaymentTypeUniform       PaymentType = "uniform"
	PaymentTypeExamFee       PaymentType = "exam_fee"
	PaymentTypeEquipment     PaymentType = "equipment"
	PaymentTypeOther         PaymentType = "other"
)

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusOverdue   PaymentStatus = "overdue"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodCheck    PaymentMethod = "check"
	PaymentMethodDeposit  PaymentMethod = "deposit"
)

func ValidPaymentType(t PaymentType) bool {
	switch t {
	case PaymentTypeTuition, PaymentTypeEnrollmentFee, PaymentTypeUniform,
		PaymentTypeExamFee, PaymentTypeEquipment, PaymentTypeOther:
		return true
	}
	return false
}

func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer,
		PaymentMethodCheck, PaymentMethodDeposit:
		return true
	}
	return false
}

// DefaultDescriptions fill payment_description when the request leaves it empty.
var DefaultDescriptions = map[PaymentType]string{
	PaymentTypeTuition:       "Monthly tuition payment",
	PaymentTypeEnrollmentFee: "Enrollment fee payment",
	PaymentTypeUniform:       "Uniform payment",
	PaymentTypeExamFee:       "Exam fee payment",
	PaymentTypeEquipment:     "Equipment payment",
	PaymentTypeOther:         "Payment",
}

/* ================================
   MODEL: payments
================================ */

type Payment struct {
	PaymentID uuid.UUID `json:"payment_id" gorm:"column:payment_id;type:uuid;default:gen_random_uuid();primaryKey"`

	// References
	PaymentStudentID  uuid.UUID  `json:"payment_student_id"  gorm:"column:payment_student_id;type:uuid;not null;index"`
	PaymentGuardianID *uuid.UUID `json:"payment_guardian_id" gorm:"column:payment_guardian_id;type:uuid;index"`
	PaymentBranchID   uuid.UUID  `json:"payment_branch_id"   gorm:"column:payment_branch_id;type:uuid;not null;index"`

	// Classification
	PaymentType        PaymentType `json:"payment_type"        gorm:"column:payment_type;type:varchar(20);not null;default:'tuition';index"`
	PaymentDescription *string     `json:"payment_description" gorm:"column:payment_description;type:text"`

	// Monetary (2 decimal places)
	PaymentAmount        float64 `json:"payment_amount"          gorm:"column:payment_amount;type:numeric(12,2);not null;check:payment_amount>=0"`
	PaymentDiscount      float64 `json:"payment_discount"        gorm:"column:payment_discount;type:numeric(12,2);not null;default:0;check:payment_discount>=0"`
	PaymentTotal         float64 `json:"payment_total"           gorm:"column:payment_total;type:numeric(12,2);not null"`
	PaymentLateFeeAmount float64 `json:"payment_late_fee_amount" gorm:"column:payment_late_fee_amount;type:numeric(12,2);not null;default:0"`

	// Temporal
	PaymentDueDate  time.Time  `json:"payment_due_date"  gorm:"column:payment_due_date;type:date;not null;index"`
	PaymentPaidDate *time.Time `json:"payment_paid_date" gorm:"column:payment_paid_date;type:timestamptz"`

	// Period (mandatory for tuition only)
	PaymentPeriodMonth *int16 `json:"payment_period_month" gorm:"column:payment_period_month;type:smallint"` // 1..12
	PaymentPeriodYear  *int16 `json:"payment_period_year"  gorm:"column:payment_period_year;type:smallint"`  // 2020..2100

	// Status & method
	PaymentStatus    PaymentStatus  `json:"payment_status"    gorm:"column:payment_status;type:varchar(20);not null;default:'pending';index"`
	PaymentMethod    *PaymentMethod `json:"payment_method"    gorm:"column:payment_method;type:varchar(20)"`
	PaymentReference *string        `json:"payment_reference" gorm:"column:payment_reference;type:varchar(120)"`

	// Receipt (sparse, unique; assigned once at first paid transition)
	PaymentReceiptNumber *string        `json:"payment_receipt_number" gorm:"column:payment_receipt_number;type:varchar(20);uniqueIndex"`
	PaymentReceiptFile   datatypes.JSON `json:"payment_receipt_file"   gorm:"column:payment_receipt_file;type:jsonb"`

	PaymentNotes *string `json:"payment_notes" gorm:"column:payment_notes;type:text"`

	// Soft-delete flag, separate axis from payment_status
	PaymentIsActive bool `json:"payment_is_active" gorm:"column:payment_is_active;not null;default:true;index"`

	// Optimistic concurrency
	PaymentVersion int `json:"payment_version" gorm:"column:payment_version;not null;default:1"`

	// Audit
	PaymentCreatedBy      uuid.UUID  `json:"payment_created_by"       gorm:"column:payment_created_by;type:uuid;not null"`
	PaymentLastModifiedBy *uuid.UUID `json:"payment_last_modified_by" gorm:"column:payment_last_modified_by;type:uuid"`
	PaymentPaidBy         *uuid.UUID `json:"payment_paid_by"          gorm:"column:payment_paid_by;type:uuid"`

	PaymentCreatedAt time.Time      `json:"payment_created_at" gorm:"column:payment_created_at;type:timestamptz;not null;autoCreateTime"`
	PaymentUpdatedAt time.Time      `json:"payment_updated_at" gorm:"column:payment_updated_at;type:timestamptz;not null;autoUpdateTime"`
	PaymentDeletedAt gorm.DeletedAt `json:"-"                  gorm:"column:payment_deleted_at;index"`
}

func (Payment) TableName() string { return "payments" }

// ReceiptFile is the JSONB sub-record filled by the receipt upload handler.
type ReceiptFile struct {
	FileName     string    `json:"file_name"`
	OriginalName string    `json:"original_name"`
	MimeType     string    `json:"mime_type"`
	Size         int64     `json:"size"`
	URL          string    `json:"url"` // relative unless already absolute
	UploadedAt   time.Time `json:"uploaded_at"`
	UploadedBy   uuid.UUID `json:"uploaded_by"`
}
