// file: internals/features/finance/payments/service/lifecycle_service_test.go
package service

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "akademiku_backend/internals/features/finance/payments/model"
)

/* =========================================================
   Fakes
========================================================= */

type fakeRepo struct {
	byID     map[uuid.UUID]*model.Payment
	receipts map[string]struct{}

	// failure injection
	saveConflicts int // next N Save calls fail with ErrConflictRetryable
	// receipt numbers held by a concurrent writer whose row is not visible
	// to CountReceiptPrefix until the collision surfaces
	uncommittedReceipts map[string]struct{}

	inactiveStudents  map[uuid.UUID]struct{}
	inactiveGuardians map[uuid.UUID]struct{}
	inactiveBranches  map[uuid.UUID]struct{}

	saveCalls int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byID:                map[uuid.UUID]*model.Payment{},
		receipts:            map[string]struct{}{},
		uncommittedReceipts: map[string]struct{}{},
		inactiveStudents:    map[uuid.UUID]struct{}{},
		inactiveGuardians:   map[uuid.UUID]struct{}{},
		inactiveBranches:    map[uuid.UUID]struct{}{},
	}
}

func (r *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Payment, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeRepo) Create(_ context.Context, p *model.Payment) error {
	if p.PaymentID == uuid.Nil {
		p.PaymentID = uuid.New()
	}
	if p.PaymentVersion == 0 {
		p.PaymentVersion = 1
	}
	cp := *p
	r.byID[p.PaymentID] = &cp
	return nil
}

func (r *fakeRepo) Save(_ context.Context, p *model.Payment) error {
	r.saveCalls++
	if r.saveConflicts > 0 {
		r.saveConflicts--
		return ErrConflictRetryable
	}
	if p.PaymentReceiptNumber != nil {
		num := *p.PaymentReceiptNumber
		if _, held := r.uncommittedReceipts[num]; held {
			// the competitor commits; its row becomes visible to counts
			delete(r.uncommittedReceipts, num)
			r.receipts[num] = struct{}{}
			return ErrDuplicateReceipt
		}
		if _, taken := r.receipts[num]; taken {
			stored := r.byID[p.PaymentID]
			if stored == nil || stored.PaymentReceiptNumber == nil ||
				*stored.PaymentReceiptNumber != num {
				return ErrDuplicateReceipt
			}
		}
		r.receipts[num] = struct{}{}
	}
	p.PaymentVersion++
	cp := *p
	r.byID[p.PaymentID] = &cp
	return nil
}

func (r *fakeRepo) CountReceiptPrefix(_ context.Context, prefix string) (int64, error) {
	var n int64
	for num := range r.receipts {
		if strings.HasPrefix(num, prefix) {
			n++
		}
	}
	return n, nil
}

func (r *fakeRepo) List(_ context.Context, _ ListFilter) ([]model.Payment, int64, error) {
	out := make([]model.Payment, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeRepo) AggregateByStatus(_ context.Context, _ StatsFilter) ([]StatusBucket, error) {
	counts := map[model.PaymentStatus]*StatusBucket{}
	for _, p := range r.byID {
		b, ok := counts[p.PaymentStatus]
		if !ok {
			b = &StatusBucket{Status: p.PaymentStatus}
			counts[p.PaymentStatus] = b
		}
		b.Count++
		b.TotalAmount += p.PaymentTotal
	}
	out := make([]StatusBucket, 0, len(counts))
	for _, b := range counts {
		out = append(out, *b)
	}
	return out, nil
}

func (r *fakeRepo) StudentActive(_ context.Context, id uuid.UUID) (bool, error) {
	_, inactive := r.inactiveStudents[id]
	return !inactive, nil
}

func (r *fakeRepo) GuardianActive(_ context.Context, id uuid.UUID) (bool, error) {
	_, inactive := r.inactiveGuardians[id]
	return !inactive, nil
}

func (r *fakeRepo) BranchActive(_ context.Context, id uuid.UUID) (bool, error) {
	_, inactive := r.inactiveBranches[id]
	return !inactive, nil
}

type fakeSettings struct {
	ints    map[string]int
	floats  map[string]float64
	bools   map[string]bool
	strings map[string]string
}

func (f *fakeSettings) GetInt(key string, def int) int {
	if v, ok := f.ints[key]; ok {
		return v
	}
	return def
}

func (f *fakeSettings) GetFloat(key string, def float64) float64 {
	if v, ok := f.floats[key]; ok {
		return v
	}
	return def
}

func (f *fakeSettings) GetBool(key string, def bool) bool {
	if v, ok := f.bools[key]; ok {
		return v
	}
	return def
}

func (f *fakeSettings) GetString(key string, def string) string {
	if v, ok := f.strings[key]; ok {
		return v
	}
	return def
}

/* =========================================================
   Harness
========================================================= */

var testNow = time.Date(2026, 8, 15, 10, 30, 0, 0, time.UTC)

func newTestService(repo *fakeRepo, settings *fakeSettings) *LifecycleService {
	if settings == nil {
		settings = &fakeSettings{}
	}
	return NewLifecycleService(repo, settings, func() time.Time { return testNow })
}

func i16(v int16) *int16 { return &v }

func draftPayment(due time.Time) *model.Payment {
	return &model.Payment{
		PaymentStudentID:   uuid.New(),
		PaymentBranchID:    uuid.New(),
		PaymentType:        model.PaymentTypeTuition,
		PaymentAmount:      1000,
		PaymentDueDate:     due,
		PaymentPeriodMonth: i16(8),
		PaymentPeriodYear:  i16(2026),
		PaymentIsActive:    true,
	}
}

func mustCreate(t *testing.T, svc *LifecycleService, p *model.Payment) *model.Payment {
	t.Helper()
	created, err := svc.Create(context.Background(), p, uuid.New())
	require.NoError(t, err)
	return created
}

/* =========================================================
   Create
========================================================= */

func TestCreate_Defaults(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)

	p := mustCreate(t, svc, draftPayment(testNow.AddDate(0, 0, 10)))

	assert.Equal(t, model.PaymentStatusPending, p.PaymentStatus)
	assert.Equal(t, 1000.0, p.PaymentTotal)
	require.NotNil(t, p.PaymentDescription)
	assert.Equal(t, "Monthly tuition payment", *p.PaymentDescription)
	assert.True(t, p.PaymentIsActive)
}

func TestCreate_PastDueStartsOverdue(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)

	p := mustCreate(t, svc, draftPayment(testNow.AddDate(0, 0, -3)))
	assert.Equal(t, model.PaymentStatusOverdue, p.PaymentStatus)
}

func TestCreate_DiscountFoldedIntoTotal(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)

	draft := draftPayment(testNow.AddDate(0, 0, 10))
	draft.PaymentDiscount = 150.50

	p := mustCreate(t, svc, draft)
	assert.Equal(t, 849.50, p.PaymentTotal)
}

func TestCreate_ValidationFailures(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)

	t.Run("discount exceeds amount", func(t *testing.T) {
		draft := draftPayment(testNow.AddDate(0, 0, 10))
		draft.PaymentDiscount = 2000
		_, err := svc.Create(context.Background(), draft, uuid.New())
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.Fields, "payment_discount")
	})

	t.Run("tuition without period", func(t *testing.T) {
		draft := draftPayment(testNow.AddDate(0, 0, 10))
		draft.PaymentPeriodMonth = nil
		draft.PaymentPeriodYear = nil
		_, err := svc.Create(context.Background(), draft, uuid.New())
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.Fields, "payment_period")
	})

	t.Run("unknown type", func(t *testing.T) {
		draft := draftPayment(testNow.AddDate(0, 0, 10))
		draft.PaymentType = "bribery"
		_, err := svc.Create(context.Background(), draft, uuid.New())
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.Fields, "payment_type")
	})

	t.Run("more than two decimals", func(t *testing.T) {
		draft := draftPayment(testNow.AddDate(0, 0, 10))
		draft.PaymentAmount = 10.999
		_, err := svc.Create(context.Background(), draft, uuid.New())
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.Fields, "payment_amount")
	})
}

func TestCreate_PeriodClearedForNonTuition(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)

	draft := draftPayment(testNow.AddDate(0, 0, 10))
	draft.PaymentType = model.PaymentTypeUniform

	p := mustCreate(t, svc, draft)
	assert.Nil(t, p.PaymentPeriodMonth)
	assert.Nil(t, p.PaymentPeriodYear)
}

func TestCreate_InactiveStudentRejected(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)

	draft := draftPayment(testNow.AddDate(0, 0, 10))
	repo.inactiveStudents[draft.PaymentStudentID] = struct{}{}

	_, err := svc.Create(context.Background(), draft, uuid.New())
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "payment_student_id")
}

/* =========================================================
   Mark as paid
========================================================= */

var receiptPattern = regexp.MustCompile(`^REC-\d{6}-\d{5}$`)

func TestMarkAsPaid_OnTime(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)
	p := mustCreate(t, svc, draftPayment(testNow.AddDate(0, 0, 10)))

	actor := uuid.New()
	paid, fee, err := svc.MarkAsPaid(context.Background(), p.PaymentID, MarkPaidInput{
		Method: model.PaymentMethodCash,
	}, actor)
	require.NoError(t, err)

	assert.Equal(t, model.PaymentStatusPaid, paid.PaymentStatus)
	assert.False(t, fee.Applies)
	assert.Equal(t, 1000.0, paid.PaymentTotal)
	require.NotNil(t, paid.PaymentPaidDate)
	assert.True(t, paid.PaymentPaidDate.Equal(testNow))
	require.NotNil(t, paid.PaymentPaidBy)
	assert.Equal(t, actor, *paid.PaymentPaidBy)
	require.NotNil(t, paid.PaymentReceiptNumber)
	assert.Regexp(t, receiptPattern, *paid.PaymentReceiptNumber)
	assert.Equal(t, "REC-202608-00001", *paid.PaymentReceiptNumber)
}

func TestMarkAsPaid_LateAddsFee(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)
	// due 20 days ago, default grace 5 and 10% → 100 fee on 1000
	p := mustCreate(t, svc, draftPayment(testNow.AddDate(0, 0, -20)))

	paid, fee, err := svc.MarkAsPaid(context.Background(), p.PaymentID, MarkPaidInput{
		Method: model.PaymentMethodTransfer,
	}, uuid.New())
	require.NoError(t, err)

	assert.True(t, fee.Applies)
	assert.Equal(t, 20, fee.DaysLate)
	assert.Equal(t, 100.0, fee.FeeAmount)
	assert.Equal(t, 100.0, paid.PaymentLateFeeAmount)
	assert.Equal(t, 1100.0, paid.PaymentTotal)
}

func TestMarkAsPaid_CustomGraceAndPercentage(t *testing.T) {
	repo := newFakeRepo()
	settings := &fakeSettings{
		ints:   map[string]int{KeyGracePeriodDays: 30},
		floats: map[string]float64{KeyLateFeePercentage: 2.5},
	}
	svc := newTestService(repo, settings)
	p := mustCreate(t, svc, draftPayment(testNow.AddDate(0, 0, -20)))

	_, fee, err := svc.MarkAsPaid(context.Background(), p.PaymentID, MarkPaidInput{
		Method: model.PaymentMethodCash,
	}, uuid.New())
	require.NoError(t, err)

	// 20 days late is inside the widened 30-day grace window
	assert.False(t, fee.Applies)
	assert.Equal(t, 30, fee.GracePeriodDays)
	assert.Equal(t, 2.5, fee.FeePercentage)
}

func TestMarkAsPaid_AlreadyPaid(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)
	p := mustCreate(t, svc, draftPayment(testNow.AddDate(0, 0, 10)))

	_, _, err := svc.MarkAsPaid(context.Background(), p.PaymentID, MarkPaidInput{Method: model.PaymentMethodCash}, uuid.New())
	require.NoError(t, err)

	_, _, err = svc.MarkAsPaid(context.Background(), p.PaymentID, MarkPaidInput{Method: model.PaymentMethodCash}, uuid.New())
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestMarkAsPaid_Cancelled(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)
	p := mustCreate(t, svc, draftPayment(testNow.AddDate(0, 0, 10)))

	_, err := svc.Cancel(context.Background(), p.PaymentID, uuid.New(), "entered twice")
	require.NoError(t, err)

	_, _, err = svc.MarkAsPaid(context.Background(), p.PaymentID, MarkPaidInput{Method: model.PaymentMethodCash}, uuid.New())
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestMarkAsPaid_MissingMethod(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)
	p := mustCreate(t, svc, draftPayment(testNow.AddDate(0, 0, 10)))

	_, _, err := svc.MarkAsPaid(context.Background(), p.PaymentID, MarkPaidInput{}, uuid.New())
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestMarkAsPaid_FuturePaidDateRejected(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)
	p := mustCreate(t, svc, draftPayment(testNow.AddDate(0, 0, 10)))

	future := testNow.AddDate(0, 0, 1)
	_, _, err := svc.MarkAsPaid(context.Background(), p.PaymentID, MarkPaidInput{
		Method:   model.PaymentMethodCash,
		PaidDate: &future,
	}, uuid.New())

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "paid_date")
}

func TestMarkAsPaid_ReceiptRequiredSetting(t *testing.T) {
	repo := newFakeRepo()
	settings := &fakeSettings{bools: map[string]bool{KeyReceiptRequired: true}}
	svc := newTestService(repo, settings)
	p := mustCreate(t, svc, draftPayment(testNow.AddDate(0, 0, 10)))

	_, _, err := svc.MarkAsPaid(context.Background(), p.PaymentID, MarkPaidInput{Method: model.PaymentMethodCash}, uuid.New())
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = svc.AttachReceiptFile(context.Background(), p.PaymentID, []byte(`{"file_name":"r.webp"}`), uuid.New())
	require.NoError(t, err)

	_, _, err = svc.MarkAsPaid(context.Background(), p.PaymentID, MarkPaidInput{Method: model.PaymentMethodCash}, uuid.New())
	assert.NoError(t, err)
}

func TestMarkAsPaid_ReceiptSequenceIncrements(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)

	first := mustCreate(t, svc, draftPayment(testNow.AddDate(0, 0, 10)))
	second := mustCreate(t, svc, draftPayment(testNow.AddDate(0, 0, 10)))

	p1, _, err := svc.MarkAsPaid(context.Background(), first.PaymentID, MarkPaidInput{Method: model.PaymentMethodCash}, uuid.New())
	require.NoError(t, err)
	p2, _, err := svc.MarkAsPaid(context.Background(), second.PaymentID, MarkPaidInput{Method: model.PaymentMethodCash}, uuid.New())
	require.NoError(t, err)

	assert.Equal(t, "REC-202608-00001", *p1.PaymentReceiptNumber)
	assert.Equal(t, "REC-202608-00002", *p2.PaymentReceiptNumber)
}

func TestMarkAsPaid_ReceiptCollisionRetries(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)
	p := mustCreate(t, svc, draftPayment(testNow.AddDate(0, 0, 10)))

	// a concurrent writer holds the first sequence but is invisible to the
	// count until its row commits, so both mint -00001; the unique index
	// rejects ours and the retry recounts to -00002
	repo.uncommittedReceipts["REC-202608-00001"] = struct{}{}

	paid, _, err := svc.MarkAsPaid(context.Background(), p.PaymentID, MarkPaidInput{Method: model.PaymentMethodCash}, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, "REC-202608-00002", *paid.PaymentReceiptNumber)
}

func TestMarkAsPaid_VersionConflictRetries(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)
	p := mustCreate(t, svc, draftPayment(testNow.AddDate(0, 0, 10)))

	repo.saveConflicts = 1
	paid, _, err := svc.MarkAsPaid(context.Background(), p.PaymentID, MarkPaidInput{Method: model.PaymentMethodCash}, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPaid, paid.PaymentStatus)

	repo.saveConflicts = 5
	other := mustCreate(t, svc, draftPayment(testNow.AddDate(0, 0, 10)))
	_, _, err = svc.MarkAsPaid(context.Background(), other.PaymentID, MarkPaidInput{Method: model.PaymentMethodCash}, uuid.New())
	assert.ErrorIs(t, err, ErrConflictRetryable)
}

/* =========================================================
   Cancel
========================================================= */

func TestCancel_RequiresReason(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)
	p := mustCreate(t, svc, draftPayment(testNow.AddDate(0, 0, 10)))

	_, err := svc.Cancel(context.Background(), p.PaymentID, uuid.New(), "   ")
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestCancel_AppendsReasonToNotes(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)

	draft := draftPayment(testNow.AddDate(0, 0, 10))
	prior := "scholarship case"
	draft.PaymentNotes = &prior
	p := mustCreate(t, svc, draft)

	cancelled, err := svc.Cancel(context.Background(), p.PaymentID, uuid.New(), "duplicate entry")
	require.NoError(t, err)

	assert.Equal(t, model.PaymentStatusCancelled, cancelled.PaymentStatus)
	require.NotNil(t, cancelled.PaymentNotes)
	assert.Equal(t, "scholarship case | Cancelled: duplicate entry", *cancelled.PaymentNotes)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)
	p := mustCreate(t, svc, draftPayment(testNow.AddDate(0, 0, 10)))

	_, err := svc.Cancel(context.Background(), p.PaymentID, uuid.New(), "first")
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), p.PaymentID, uuid.New(), "second")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestCancel_PaidPaymentAllowedAtThisLevel(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)
	p := mustCreate(t, svc, draftPayment(testNow.AddDate(0, 0, 10)))

	_, _, err := svc.MarkAsPaid(context.Background(), p.PaymentID, MarkPaidInput{Method: model.PaymentMethodCash}, uuid.New())
	require.NoError(t, err)

	cancelled, err := svc.Cancel(context.Background(), p.PaymentID, uuid.New(), "refunded")
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusCancelled, cancelled.PaymentStatus)
}

/* =========================================================
   Status recompute & queries
========================================================= */

func TestRecomputeStatus(t *testing.T) {
	svc := newTestService(newFakeRepo(), nil)

	p := &model.Payment{PaymentStatus: model.PaymentStatusPending, PaymentDueDate: testNow.AddDate(0, 0, -1)}
	assert.True(t, svc.RecomputeStatus(p))
	assert.Equal(t, model.PaymentStatusOverdue, p.PaymentStatus)

	// due today is not overdue yet
	p = &model.Payment{PaymentStatus: model.PaymentStatusPending, PaymentDueDate: testNow}
	assert.False(t, svc.RecomputeStatus(p))
	assert.Equal(t, model.PaymentStatusPending, p.PaymentStatus)

	// terminal and paid rows never flip
	p = &model.Payment{PaymentStatus: model.PaymentStatusPaid, PaymentDueDate: testNow.AddDate(0, 0, -30)}
	assert.False(t, svc.RecomputeStatus(p))
}

func TestGet_AppliesLazyReclassification(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)
	p := mustCreate(t, svc, draftPayment(testNow.AddDate(0, 0, 1)))

	// stored as pending; the clock moving past due flips the read
	stored := repo.byID[p.PaymentID]
	stored.PaymentDueDate = testNow.AddDate(0, 0, -2)

	got, err := svc.Get(context.Background(), p.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusOverdue, got.PaymentStatus)

	// the stored row is untouched until the next mutating save
	assert.Equal(t, model.PaymentStatusPending, repo.byID[p.PaymentID].PaymentStatus)
}

func TestPreviewLateFee(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)
	p := mustCreate(t, svc, draftPayment(testNow.AddDate(0, 0, -20)))

	fee, err := svc.PreviewLateFee(context.Background(), p.PaymentID)
	require.NoError(t, err)
	assert.True(t, fee.Applies)
	assert.Equal(t, 100.0, fee.FeeAmount)

	// previewing does not mutate the stored row
	assert.Zero(t, repo.byID[p.PaymentID].PaymentLateFeeAmount)
}

/* =========================================================
   Soft delete & receipt attach
========================================================= */

func TestDeactivate_HidesPayment(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)
	p := mustCreate(t, svc, draftPayment(testNow.AddDate(0, 0, 10)))

	require.NoError(t, svc.Deactivate(context.Background(), p.PaymentID, uuid.New()))

	_, err := svc.Get(context.Background(), p.PaymentID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAttachReceiptFile_BlockedWhenCancelled(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)
	p := mustCreate(t, svc, draftPayment(testNow.AddDate(0, 0, 10)))

	_, err := svc.Cancel(context.Background(), p.PaymentID, uuid.New(), "void")
	require.NoError(t, err)

	_, err = svc.AttachReceiptFile(context.Background(), p.PaymentID, []byte(`{}`), uuid.New())
	assert.ErrorIs(t, err, ErrInvalidState)
}
