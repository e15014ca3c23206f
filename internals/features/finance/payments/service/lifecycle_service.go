// file: internals/features/finance/payments/service/lifecycle_service.go
package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	model "akademiku_backend/internals/features/finance/payments/model"
)

/* =========================================================
   Collaborator interfaces (injected, mockable)
========================================================= */

// Repository is the durable storage surface the lifecycle engine relies on.
// Save must be conditional on payment_version and return ErrConflictRetryable
// when the version check fails, and ErrDuplicateReceipt when the receipt
// unique index rejects the row.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Payment, error)
	Create(ctx context.Context, p *model.Payment) error
	Save(ctx context.Context, p *model.Payment) error
	CountReceiptPrefix(ctx context.Context, prefix string) (int64, error)
	List(ctx context.Context, f ListFilter) ([]model.Payment, int64, error)
	AggregateByStatus(ctx context.Context, f StatsFilter) ([]StatusBucket, error)

	// reference checks against the academy tables
	StudentActive(ctx context.Context, id uuid.UUID) (bool, error)
	GuardianActive(ctx context.Context, id uuid.UUID) (bool, error)
	BranchActive(ctx context.Context, id uuid.UUID) (bool, error)
}

// SettingsProvider mirrors the fail-open settings service: lookups never error,
// they fall back to the given default.
type SettingsProvider interface {
	GetInt(key string, def int) int
	GetFloat(key string, def float64) float64
	GetBool(key string, def bool) bool
	GetString(key string, def string) string
}

/* =========================================================
   Filters & aggregates
========================================================= */

type ListFilter struct {
	StudentID  *uuid.UUID
	GuardianID *uuid.UUID
	BranchID   *uuid.UUID
	Type       *model.PaymentType
	Status     *model.PaymentStatus

	PeriodMonth *int
	PeriodYear  *int

	DueFrom *time.Time
	DueTo   *time.Time

	// OverdueAsOf widens a status filter to (status = overdue) OR
	// (status = pending AND due_date < asOf). Overdue reclassification is
	// lazy, so stored pending rows past due count as overdue.
	OverdueAsOf *time.Time
	// PendingAsOf narrows to pending rows whose due date has not passed yet.
	PendingAsOf *time.Time

	Limit  int
	Offset int
}

type StatsFilter struct {
	BranchID    *uuid.UUID
	StudentID   *uuid.UUID
	Type        *model.PaymentType
	PeriodMonth *int
	PeriodYear  *int
	DueFrom     *time.Time
	DueTo       *time.Time
}

// StatusBucket is one row of statsByStatus: count + summed total per status.
type StatusBucket struct {
	Status      model.PaymentStatus `json:"status"`
	Count       int64               `json:"count"`
	TotalAmount float64             `json:"total_amount"`
}

/* =========================================================
   Lifecycle engine
========================================================= */

// LifecycleService owns the payment status state machine:
//
//	pending  → paid | overdue | cancelled
//	overdue  → paid | cancelled
//	paid     → cancelled   (route layer gates this behind admin role)
//	cancelled → ∅
type LifecycleService struct {
	repo     Repository
	settings SettingsProvider
	now      func() time.Time
}

func NewLifecycleService(repo Repository, settings SettingsProvider, now func() time.Time) *LifecycleService {
	if now == nil {
		now = time.Now
	}
	return &LifecycleService{repo: repo, settings: settings, now: now}
}

func (s *LifecycleService) lateFeeConfig() LateFeeConfig {
	return LateFeeConfig{
		GracePeriodDays: s.settings.GetInt(KeyGracePeriodDays, DefaultGracePeriodDays),
		FeePercentage:   s.settings.GetFloat(KeyLateFeePercentage, DefaultLateFeePercentage),
	}
}

/* ======================= CREATE ======================= */

// Create validates and persists a new payment draft. Status starts pending;
// a draft already past due comes out overdue right away.
func (s *LifecycleService) Create(ctx context.Context, p *model.Payment, actorID uuid.UUID) (*model.Payment, error) {
	p.PaymentCreatedBy = actorID
	if p.PaymentStatus == "" {
		p.PaymentStatus = model.PaymentStatusPending
	}
	if err := s.validateAndNormalize(ctx, p, true); err != nil {
		return nil, err
	}
	s.RecomputeStatus(p)
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

/* ======================= MARK AS PAID ======================= */

type MarkPaidInput struct {
	PaidDate  *time.Time
	Method    model.PaymentMethod
	Reference *string
}

// MarkAsPaid transitions pending/overdue → paid: computes the late fee, folds
// it into the total, assigns paid audit fields and mints the receipt number.
// A losing concurrent writer retries once from a fresh read.
func (s *LifecycleService) MarkAsPaid(ctx context.Context, id uuid.UUID, in MarkPaidInput, actorID uuid.UUID) (*model.Payment, *LateFeeBreakdown, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		p, err := s.loadActive(ctx, id)
		if err != nil {
			return nil, nil, err
		}

		switch p.PaymentStatus {
		case model.PaymentStatusPaid:
			return nil, nil, invalidState("payment is already paid")
		case model.PaymentStatusCancelled:
			return nil, nil, invalidState("payment is cancelled")
		}

		if in.Method == "" {
			return nil, nil, missingField("payment_method")
		}
		if !model.ValidPaymentMethod(in.Method) {
			ve := newValidationError()
			ve.add("payment_method", "must be one of cash, card, transfer, check, deposit")
			return nil, nil, ve
		}

		if s.settings.GetBool(KeyReceiptRequired, false) && len(p.PaymentReceiptFile) == 0 {
			return nil, nil, missingField("receipt_file")
		}

		now := s.now()
		paidDate := now
		if in.PaidDate != nil {
			paidDate = *in.PaidDate
		}
		if paidDate.After(now) {
			ve := newValidationError()
			ve.add("paid_date", "must not be in the future")
			return nil, nil, ve
		}

		fee := ComputeLateFee(p.PaymentAmount, p.PaymentDueDate, now, s.lateFeeConfig())
		p.PaymentLateFeeAmount = 0
		if fee.Applies {
			p.PaymentLateFeeAmount = fee.FeeAmount
		}
		p.PaymentTotal = Round2(p.PaymentAmount - p.PaymentDiscount + p.PaymentLateFeeAmount)

		method := in.Method
		p.PaymentStatus = model.PaymentStatusPaid
		p.PaymentMethod = &method
		p.PaymentReference = in.Reference
		p.PaymentPaidDate = &paidDate
		p.PaymentPaidBy = &actorID
		p.PaymentLastModifiedBy = &actorID

		if err := s.saveWithReceipt(ctx, p); err != nil {
			if errors.Is(err, ErrConflictRetryable) {
				lastErr = err
				continue
			}
			return nil, nil, err
		}
		return p, &fee, nil
	}
	return nil, nil, lastErr
}

// saveWithReceipt mints the receipt number (once, only if absent) and saves.
// On a receipt unique-index collision the number is discarded and recomputed
// from a fresh count; the storage layer stays the final arbiter.
func (s *LifecycleService) saveWithReceipt(ctx context.Context, p *model.Payment) error {
	const maxReceiptAttempts = 3
	minted := false
	for attempt := 0; attempt < maxReceiptAttempts; attempt++ {
		if p.PaymentReceiptNumber == nil {
			num, err := s.nextReceiptNumber(ctx)
			if err != nil {
				return err
			}
			p.PaymentReceiptNumber = &num
			minted = true
		}
		err := s.repo.Save(ctx, p)
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrDuplicateReceipt) && minted {
			p.PaymentReceiptNumber = nil
			continue
		}
		return err
	}
	return ErrConflictRetryable
}

/* ======================= CANCEL ======================= */

// Cancel moves any non-cancelled payment to cancelled and appends the reason
// to notes (pipe-separated, prior notes preserved). Cancelling a paid payment
// is allowed at this level; the route layer restricts it to admins.
func (s *LifecycleService) Cancel(ctx context.Context, id uuid.UUID, actorID uuid.UUID, reason string) (*model.Payment, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, missingField("reason")
	}

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		p, err := s.loadActive(ctx, id)
		if err != nil {
			return nil, err
		}
		if p.PaymentStatus == model.PaymentStatusCancelled {
			return nil, invalidState("payment is already cancelled")
		}

		note := "Cancelled: " + reason
		if p.PaymentNotes != nil && strings.TrimSpace(*p.PaymentNotes) != "" {
			note = strings.TrimSpace(*p.PaymentNotes) + " | " + note
		}
		p.PaymentNotes = &note
		p.PaymentStatus = model.PaymentStatusCancelled
		p.PaymentLastModifiedBy = &actorID

		if err := s.repo.Save(ctx, p); err != nil {
			if errors.Is(err, ErrConflictRetryable) {
				lastErr = err
				continue
			}
			return nil, err
		}
		return p, nil
	}
	return nil, lastErr
}

/* ======================= QUERIES ======================= */

// Get returns one active payment with lazy overdue reclassification applied
// in memory. The flip is persisted on the next mutating save.
func (s *LifecycleService) Get(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	return s.loadActive(ctx, id)
}

// PreviewLateFee computes the fee a mark-paid would charge right now.
func (s *LifecycleService) PreviewLateFee(ctx context.Context, id uuid.UUID) (*LateFeeBreakdown, error) {
	p, err := s.loadActive(ctx, id)
	if err != nil {
		return nil, err
	}
	fee := ComputeLateFee(p.PaymentAmount, p.PaymentDueDate, s.now(), s.lateFeeConfig())
	return &fee, nil
}

func (s *LifecycleService) List(ctx context.Context, f ListFilter) ([]model.Payment, int64, error) {
	rows, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	for i := range rows {
		s.RecomputeStatus(&rows[i])
	}
	return rows, total, nil
}

// ListPending: stored pending whose due date has not passed yet.
func (s *LifecycleService) ListPending(ctx context.Context, f ListFilter) ([]model.Payment, int64, error) {
	now := s.now()
	f.PendingAsOf = &now
	status := model.PaymentStatusPending
	f.Status = &status
	return s.List(ctx, f)
}

// ListOverdue: stored overdue plus pending rows already past due. The
// reclassification is lazy, so the query must see through it.
func (s *LifecycleService) ListOverdue(ctx context.Context, f ListFilter) ([]model.Payment, int64, error) {
	now := s.now()
	f.OverdueAsOf = &now
	f.Status = nil
	return s.List(ctx, f)
}

// StatsByStatus aggregates count + total amount per stored status. Lazy
// reclassification means a pending-past-due row still counts as pending here;
// callers needing eagerly-accurate overdue counts poll ListOverdue.
func (s *LifecycleService) StatsByStatus(ctx context.Context, f StatsFilter) ([]StatusBucket, error) {
	return s.repo.AggregateByStatus(ctx, f)
}

/* ======================= SOFT DELETE ======================= */

// Deactivate flips payment_is_active off. Orthogonal to the status machine.
func (s *LifecycleService) Deactivate(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		p, err := s.loadActive(ctx, id)
		if err != nil {
			return err
		}
		p.PaymentIsActive = false
		p.PaymentLastModifiedBy = &actorID
		if err := s.repo.Save(ctx, p); err != nil {
			if errors.Is(err, ErrConflictRetryable) {
				lastErr = err
				continue
			}
			return err
		}
		return nil
	}
	return lastErr
}

/* ======================= ATTACH RECEIPT FILE ======================= */

// AttachReceiptFile stores the uploaded receipt metadata on the payment.
// Blocked on cancelled payments (terminal state).
func (s *LifecycleService) AttachReceiptFile(ctx context.Context, id uuid.UUID, file []byte, actorID uuid.UUID) (*model.Payment, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		p, err := s.loadActive(ctx, id)
		if err != nil {
			return nil, err
		}
		if p.PaymentStatus == model.PaymentStatusCancelled {
			return nil, invalidState("payment is cancelled")
		}
		p.PaymentReceiptFile = file
		p.PaymentLastModifiedBy = &actorID
		if err := s.repo.Save(ctx, p); err != nil {
			if errors.Is(err, ErrConflictRetryable) {
				lastErr = err
				continue
			}
			return nil, err
		}
		return p, nil
	}
	return nil, lastErr
}

/* ======================= STATUS RECOMPUTE ======================= */

// RecomputeStatus flips pending → overdue once the due date (midnight
// normalized) is strictly before today. Idempotent; touches nothing else.
func (s *LifecycleService) RecomputeStatus(p *model.Payment) bool {
	if p.PaymentStatus != model.PaymentStatusPending {
		return false
	}
	if midnight(p.PaymentDueDate).Before(midnight(s.now())) {
		p.PaymentStatus = model.PaymentStatusOverdue
		return true
	}
	return false
}

/* ======================= INTERNALS ======================= */

func (s *LifecycleService) loadActive(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || !p.PaymentIsActive {
		return nil, ErrNotFound
	}
	s.RecomputeStatus(p)
	return p, nil
}

// validateAndNormalize enforces the field invariants and recomputes the
// derived total. Never trusts payment_total from input.
func (s *LifecycleService) validateAndNormalize(ctx context.Context, p *model.Payment, checkRefs bool) error {
	ve := newValidationError()

	if !model.ValidPaymentType(p.PaymentType) {
		ve.add("payment_type", "unknown payment type")
	}
	if p.PaymentAmount < 0 {
		ve.add("payment_amount", "must not be negative")
	} else if !twoDecimals(p.PaymentAmount) {
		ve.add("payment_amount", "must have at most 2 decimal places")
	}
	if p.PaymentDiscount < 0 {
		ve.add("payment_discount", "must not be negative")
	} else if !twoDecimals(p.PaymentDiscount) {
		ve.add("payment_discount", "must have at most 2 decimal places")
	}
	if p.PaymentDiscount > p.PaymentAmount {
		ve.add("payment_discount", "must not exceed the amount")
	}
	if p.PaymentDueDate.IsZero() {
		ve.add("payment_due_date", "is required")
	}
	if p.PaymentCreatedBy == uuid.Nil {
		ve.add("payment_created_by", "is required")
	}

	// period rules: mandatory for tuition, range-checked whenever present
	if p.PaymentType == model.PaymentTypeTuition {
		if p.PaymentPeriodMonth == nil || p.PaymentPeriodYear == nil {
			ve.add("payment_period", "month and year are required for tuition payments")
		}
	}
	if p.PaymentPeriodMonth != nil && (*p.PaymentPeriodMonth < 1 || *p.PaymentPeriodMonth > 12) {
		ve.add("payment_period_month", "must be between 1 and 12")
	}
	if p.PaymentPeriodYear != nil && (*p.PaymentPeriodYear < 2020 || *p.PaymentPeriodYear > 2100) {
		ve.add("payment_period_year", "must be between 2020 and 2100")
	}

	if p.PaymentMethod != nil && !model.ValidPaymentMethod(*p.PaymentMethod) {
		ve.add("payment_method", "unknown payment method")
	}
	if p.PaymentPaidDate != nil && p.PaymentPaidDate.After(s.now()) {
		ve.add("payment_paid_date", "must not be in the future")
	}

	if checkRefs {
		if p.PaymentStudentID == uuid.Nil {
			ve.add("payment_student_id", "is required")
		} else if ok, err := s.repo.StudentActive(ctx, p.PaymentStudentID); err != nil {
			return err
		} else if !ok {
			ve.add("payment_student_id", "does not reference an active student")
		}

		if p.PaymentBranchID == uuid.Nil {
			ve.add("payment_branch_id", "is required")
		} else if ok, err := s.repo.BranchActive(ctx, p.PaymentBranchID); err != nil {
			return err
		} else if !ok {
			ve.add("payment_branch_id", "does not reference an active branch")
		}

		if p.PaymentGuardianID != nil {
			if ok, err := s.repo.GuardianActive(ctx, *p.PaymentGuardianID); err != nil {
				return err
			} else if !ok {
				ve.add("payment_guardian_id", "does not reference an active guardian")
			}
		}
	}

	if !ve.empty() {
		return ve
	}

	// normalization
	if p.PaymentDescription == nil || strings.TrimSpace(*p.PaymentDescription) == "" {
		desc := model.DefaultDescriptions[p.PaymentType]
		p.PaymentDescription = &desc
	}
	if p.PaymentType != model.PaymentTypeTuition {
		// period carries no meaning outside tuition
		p.PaymentPeriodMonth = nil
		p.PaymentPeriodYear = nil
	}
	p.PaymentTotal = Round2(p.PaymentAmount - p.PaymentDiscount + p.PaymentLateFeeAmount)
	return nil
}

func twoDecimals(v float64) bool {
	scaled := v * 100
	return math.Abs(scaled-math.Round(scaled)) < 1e-6
}
