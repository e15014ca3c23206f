// file: internals/features/finance/payments/dto/payment_dto_test.go
package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	m "akademiku_backend/internals/features/finance/payments/model"
)

var viewNow = time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)

func i16(v int16) *int16 { return &v }

func TestFromModel_PeriodName(t *testing.T) {
	p := m.Payment{
		PaymentType:        m.PaymentTypeTuition,
		PaymentPeriodMonth: i16(8),
		PaymentPeriodYear:  i16(2026),
		PaymentDueDate:     viewNow.AddDate(0, 0, 10),
		PaymentStatus:      m.PaymentStatusPending,
	}

	resp := FromModel(p, viewNow, "")
	require.NotNil(t, resp.PeriodName)
	assert.Equal(t, "August 2026", *resp.PeriodName)

	// non-tuition payments carry no period label
	p.PaymentType = m.PaymentTypeUniform
	resp = FromModel(p, viewNow, "")
	assert.Nil(t, resp.PeriodName)
}

func TestFromModel_OverdueDerivation(t *testing.T) {
	p := m.Payment{
		PaymentType:    m.PaymentTypeOther,
		PaymentDueDate: viewNow.AddDate(0, 0, -7),
		PaymentStatus:  m.PaymentStatusPending,
	}

	resp := FromModel(p, viewNow, "")
	assert.True(t, resp.IsOverdue)
	assert.Equal(t, 7, resp.DaysOverdue)

	// paid rows are never presented as overdue, whatever the due date
	p.PaymentStatus = m.PaymentStatusPaid
	resp = FromModel(p, viewNow, "")
	assert.False(t, resp.IsOverdue)
	assert.Zero(t, resp.DaysOverdue)

	// not yet due
	p.PaymentStatus = m.PaymentStatusPending
	p.PaymentDueDate = viewNow.AddDate(0, 0, 3)
	resp = FromModel(p, viewNow, "")
	assert.False(t, resp.IsOverdue)
}

func TestFromModel_ReceiptFileURL(t *testing.T) {
	p := m.Payment{
		PaymentType:        m.PaymentTypeOther,
		PaymentDueDate:     viewNow.AddDate(0, 0, 10),
		PaymentStatus:      m.PaymentStatusPaid,
		PaymentReceiptFile: datatypes.JSON(`{"file_name":"r.webp","url":"receipts/r.webp"}`),
	}

	resp := FromModel(p, viewNow, "https://cdn.example.com/")
	require.NotNil(t, resp.ReceiptFile)
	assert.Equal(t, "https://cdn.example.com/receipts/r.webp", resp.ReceiptFile.URL)

	// absolute URLs pass through untouched
	p.PaymentReceiptFile = datatypes.JSON(`{"url":"https://elsewhere.example.com/r.webp"}`)
	resp = FromModel(p, viewNow, "https://cdn.example.com/")
	require.NotNil(t, resp.ReceiptFile)
	assert.Equal(t, "https://elsewhere.example.com/r.webp", resp.ReceiptFile.URL)

	// no base configured: relative path stays relative
	p.PaymentReceiptFile = datatypes.JSON(`{"url":"receipts/r.webp"}`)
	resp = FromModel(p, viewNow, "")
	require.NotNil(t, resp.ReceiptFile)
	assert.Equal(t, "receipts/r.webp", resp.ReceiptFile.URL)
}

func TestFromModel_MalformedReceiptFileIgnored(t *testing.T) {
	p := m.Payment{
		PaymentType:        m.PaymentTypeOther,
		PaymentDueDate:     viewNow.AddDate(0, 0, 10),
		PaymentStatus:      m.PaymentStatusPaid,
		PaymentReceiptFile: datatypes.JSON(`not json`),
	}

	resp := FromModel(p, viewNow, "")
	assert.Nil(t, resp.ReceiptFile)
}
