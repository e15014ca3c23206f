// file: internals/features/finance/payments/repository/payment_repository.go
package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	branchModel "akademiku_backend/internals/features/academy/branches/model"
	guardianModel "akademiku_backend/internals/features/academy/guardians/model"
	studentModel "akademiku_backend/internals/features/academy/students/model"
	model "akademiku_backend/internals/features/finance/payments/model"
	service "akademiku_backend/internals/features/finance/payments/service"
)

// PaymentRepository is the GORM-backed implementation of service.Repository.
type PaymentRepository struct {
	DB *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

var _ service.Repository = (*PaymentRepository)(nil)

func (r *PaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	var p model.Payment
	if err := r.DB.WithContext(ctx).
		Where("payment_id = ?", id).
		First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) Create(ctx context.Context, p *model.Payment) error {
	if p.PaymentVersion == 0 {
		p.PaymentVersion = 1
	}
	return r.DB.WithContext(ctx).Create(p).Error
}

// Save persists a mutated payment conditionally on payment_version and bumps
// the version. RowsAffected == 0 means a concurrent writer won; the engine
// retries from a fresh read.
func (r *PaymentRepository) Save(ctx context.Context, p *model.Payment) error {
	currentVersion := p.PaymentVersion
	res := r.DB.WithContext(ctx).
		Model(&model.Payment{}).
		Where("payment_id = ? AND payment_version = ?", p.PaymentID, currentVersion).
		Updates(map[string]interface{}{
			"payment_type":             p.PaymentType,
			"payment_description":      p.PaymentDescription,
			"payment_amount":           p.PaymentAmount,
			"payment_discount":         p.PaymentDiscount,
			"payment_total":            p.PaymentTotal,
			"payment_late_fee_amount":  p.PaymentLateFeeAmount,
			"payment_due_date":         p.PaymentDueDate,
			"payment_paid_date":        p.PaymentPaidDate,
			"payment_period_month":     p.PaymentPeriodMonth,
			"payment_period_year":      p.PaymentPeriodYear,
			"payment_status":           p.PaymentStatus,
			"payment_method":           p.PaymentMethod,
			"payment_reference":        p.PaymentReference,
			"payment_receipt_number":   p.PaymentReceiptNumber,
			"payment_receipt_file":     p.PaymentReceiptFile,
			"payment_notes":            p.PaymentNotes,
			"payment_is_active":        p.PaymentIsActive,
			"payment_last_modified_by": p.PaymentLastModifiedBy,
			"payment_paid_by":          p.PaymentPaidBy,
			"payment_version":          currentVersion + 1,
		})
	if res.Error != nil {
		if isDuplicateErr(res.Error) {
			// the only unique index on payments is the receipt number
			return service.ErrDuplicateReceipt
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return service.ErrConflictRetryable
	}
	p.PaymentVersion = currentVersion + 1
	return nil
}

func (r *PaymentRepository) CountReceiptPrefix(ctx context.Context, prefix string) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&model.Payment{}).
		Where("payment_receipt_number LIKE ?", prefix+"%").
		Count(&n).Error
	return n, err
}

func (r *PaymentRepository) List(ctx context.Context, f service.ListFilter) ([]model.Payment, int64, error) {
	base := r.applyFilter(r.DB.WithContext(ctx).Model(&model.Payment{}), f)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}

	var rows []model.Payment
	if err := base.
		Order("payment_due_date DESC, payment_created_at DESC").
		Limit(limit).
		Offset(f.Offset).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *PaymentRepository) AggregateByStatus(ctx context.Context, f service.StatsFilter) ([]service.StatusBucket, error) {
	q := r.DB.WithContext(ctx).
		Model(&model.Payment{}).
		Where("payment_is_active = ?", true)

	if f.BranchID != nil {
		q = q.Where("payment_branch_id = ?", *f.BranchID)
	}
	if f.StudentID != nil {
		q = q.Where("payment_student_id = ?", *f.StudentID)
	}
	if f.Type != nil {
		q = q.Where("payment_type = ?", *f.Type)
	}
	if f.PeriodMonth != nil {
		q = q.Where("payment_period_month = ?", *f.PeriodMonth)
	}
	if f.PeriodYear != nil {
		q = q.Where("payment_period_year = ?", *f.PeriodYear)
	}
	if f.DueFrom != nil {
		q = q.Where("payment_due_date >= ?", *f.DueFrom)
	}
	if f.DueTo != nil {
		q = q.Where("payment_due_date <= ?", *f.DueTo)
	}

	var buckets []service.StatusBucket
	if err := q.
		Select("payment_status AS status, COUNT(*) AS count, COALESCE(SUM(payment_total),0) AS total_amount").
		Group("payment_status").
		Scan(&buckets).Error; err != nil {
		return nil, err
	}
	return buckets, nil
}

/* ======================== reference checks ======================== */

func (r *PaymentRepository) StudentActive(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&studentModel.Student{}).
		Where("student_id = ? AND student_is_active = ?", id, true).
		Count(&n).Error
	return n > 0, err
}

func (r *PaymentRepository) GuardianActive(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&guardianModel.Guardian{}).
		Where("guardian_id = ? AND guardian_is_active = ?", id, true).
		Count(&n).Error
	return n > 0, err
}

func (r *PaymentRepository) BranchActive(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&branchModel.Branch{}).
		Where("branch_id = ? AND branch_is_active = ?", id, true).
		Count(&n).Error
	return n > 0, err
}

/* ======================== internals ======================== */

func (r *PaymentRepository) applyFilter(q *gorm.DB, f service.ListFilter) *gorm.DB {
	q = q.Where("payment_is_active = ?", true)

	if f.StudentID != nil {
		q = q.Where("payment_student_id = ?", *f.StudentID)
	}
	if f.GuardianID != nil {
		q = q.Where("payment_guardian_id = ?", *f.GuardianID)
	}
	if f.BranchID != nil {
		q = q.Where("payment_branch_id = ?", *f.BranchID)
	}
	if f.Type != nil {
		q = q.Where("payment_type = ?", *f.Type)
	}
	if f.PeriodMonth != nil {
		q = q.Where("payment_period_month = ?", *f.PeriodMonth)
	}
	if f.PeriodYear != nil {
		q = q.Where("payment_period_year = ?", *f.PeriodYear)
	}
	if f.DueFrom != nil {
		q = q.Where("payment_due_date >= ?", *f.DueFrom)
	}
	if f.DueTo != nil {
		q = q.Where("payment_due_date <= ?", *f.DueTo)
	}

	switch {
	case f.OverdueAsOf != nil:
		// lazy reclassification: stored pending already past due is overdue
		q = q.Where("(payment_status = ? OR (payment_status = ? AND payment_due_date < ?))",
			model.PaymentStatusOverdue, model.PaymentStatusPending, dateOnly(*f.OverdueAsOf))
	case f.PendingAsOf != nil:
		q = q.Where("payment_status = ? AND payment_due_date >= ?",
			model.PaymentStatusPending, dateOnly(*f.PendingAsOf))
	default:
		if f.Status != nil {
			q = q.Where("payment_status = ?", *f.Status)
		}
	}
	return q
}

func dateOnly(t time.Time) string {
	return t.Format("2006-01-02")
}

func isDuplicateErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
