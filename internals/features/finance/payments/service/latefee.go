// file: internals/features/finance/payments/service/latefee.go
package service

import (
	"log"
	"math"
	"time"
)

// Defaults used when the settings store is unreachable or holds garbage.
const (
	DefaultGracePeriodDays   = 5
	DefaultLateFeePercentage = 10.0
)

// Settings keys read by the payment core.
const (
	KeyGracePeriodDays   = "payment_grace_period_days"
	KeyLateFeePercentage = "payment_late_fee_percentage"
	KeyReceiptRequired   = "payment_receipt_required"
	KeyReceiptBaseURL    = "receipt_base_url"
)

type LateFeeConfig struct {
	GracePeriodDays int
	FeePercentage   float64
}

// LateFeeBreakdown is returned by the fee preview and by mark-paid.
type LateFeeBreakdown struct {
	Applies         bool    `json:"applies"`
	DaysLate        int     `json:"days_late"`
	GracePeriodDays int     `json:"grace_period_days"`
	FeePercentage   float64 `json:"fee_percentage"`
	FeeAmount       float64 `json:"fee_amount"`
}

// ComputeLateFee decides whether a late fee applies and how much.
// Day counting compares midnight-normalized dates so the result does not
// depend on time-of-day. Fail-open: any bad input degrades to "no fee",
// since a configuration outage must never block payment recording.
func ComputeLateFee(amount float64, dueDate, now time.Time, cfg LateFeeConfig) LateFeeBreakdown {
	if cfg.GracePeriodDays < 0 {
		log.Printf("[WARN] late fee: negative grace period %d, using default %d", cfg.GracePeriodDays, DefaultGracePeriodDays)
		cfg.GracePeriodDays = DefaultGracePeriodDays
	}
	if cfg.FeePercentage < 0 {
		log.Printf("[WARN] late fee: negative percentage %.2f, using default %.2f", cfg.FeePercentage, DefaultLateFeePercentage)
		cfg.FeePercentage = DefaultLateFeePercentage
	}

	noFee := LateFeeBreakdown{
		GracePeriodDays: cfg.GracePeriodDays,
		FeePercentage:   cfg.FeePercentage,
	}

	if dueDate.IsZero() || amount < 0 {
		log.Printf("[WARN] late fee: malformed input (due zero=%v amount=%.2f), skipping fee", dueDate.IsZero(), amount)
		return noFee
	}

	daysLate := int(midnight(now).Sub(midnight(dueDate)).Hours() / 24)
	noFee.DaysLate = daysLate

	if daysLate <= cfg.GracePeriodDays {
		return noFee
	}

	fee := noFee
	fee.Applies = true
	fee.FeeAmount = Round2(amount * cfg.FeePercentage / 100)
	return fee
}

// Round2 rounds to 2 decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// midnight strips the time-of-day in the timestamp's own location.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
