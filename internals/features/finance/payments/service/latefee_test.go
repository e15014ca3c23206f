// file: internals/features/finance/payments/service/latefee_test.go
package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeLateFee_WithinGracePeriod(t *testing.T) {
	cfg := LateFeeConfig{GracePeriodDays: 5, FeePercentage: 10}

	// exactly at the grace boundary: no fee yet
	fee := ComputeLateFee(1000, date(2026, 1, 1), date(2026, 1, 6), cfg)
	assert.False(t, fee.Applies)
	assert.Equal(t, 5, fee.DaysLate)
	assert.Zero(t, fee.FeeAmount)

	// one day past the grace boundary: fee kicks in
	fee = ComputeLateFee(1000, date(2026, 1, 1), date(2026, 1, 7), cfg)
	assert.True(t, fee.Applies)
	assert.Equal(t, 6, fee.DaysLate)
	assert.Equal(t, 100.0, fee.FeeAmount)
}

func TestComputeLateFee_TwentyDaysLate(t *testing.T) {
	cfg := LateFeeConfig{GracePeriodDays: 5, FeePercentage: 10}

	fee := ComputeLateFee(1000, date(2026, 1, 1), date(2026, 1, 21), cfg)
	assert.True(t, fee.Applies)
	assert.Equal(t, 20, fee.DaysLate)
	assert.Equal(t, 100.0, fee.FeeAmount)
}

func TestComputeLateFee_IgnoresTimeOfDay(t *testing.T) {
	cfg := LateFeeConfig{GracePeriodDays: 0, FeePercentage: 10}

	due := time.Date(2026, 1, 1, 23, 59, 0, 0, time.UTC)
	now := time.Date(2026, 1, 2, 0, 1, 0, 0, time.UTC)

	fee := ComputeLateFee(1000, due, now, cfg)
	assert.Equal(t, 1, fee.DaysLate)
	assert.True(t, fee.Applies)
}

func TestComputeLateFee_NotDueYet(t *testing.T) {
	cfg := LateFeeConfig{GracePeriodDays: 5, FeePercentage: 10}

	fee := ComputeLateFee(1000, date(2026, 2, 1), date(2026, 1, 21), cfg)
	assert.False(t, fee.Applies)
	assert.Negative(t, fee.DaysLate)
	assert.Zero(t, fee.FeeAmount)
}

func TestComputeLateFee_Rounding(t *testing.T) {
	cfg := LateFeeConfig{GracePeriodDays: 0, FeePercentage: 10}

	// 333.35 * 10% = 33.335 → rounds half away from zero to 33.34
	fee := ComputeLateFee(333.35, date(2026, 1, 1), date(2026, 1, 10), cfg)
	assert.Equal(t, 33.34, fee.FeeAmount)

	// 999.99 * 10% = 99.999 → 100.00
	fee = ComputeLateFee(999.99, date(2026, 1, 1), date(2026, 1, 10), cfg)
	assert.Equal(t, 100.0, fee.FeeAmount)
}

func TestComputeLateFee_FailOpen(t *testing.T) {
	cfg := LateFeeConfig{GracePeriodDays: 5, FeePercentage: 10}

	// zero due date: never a fee
	fee := ComputeLateFee(1000, time.Time{}, date(2026, 1, 21), cfg)
	assert.False(t, fee.Applies)

	// negative amount: never a fee
	fee = ComputeLateFee(-50, date(2026, 1, 1), date(2026, 1, 21), cfg)
	assert.False(t, fee.Applies)
}

func TestComputeLateFee_SanitizesNegativeConfig(t *testing.T) {
	cfg := LateFeeConfig{GracePeriodDays: -3, FeePercentage: -10}

	fee := ComputeLateFee(1000, date(2026, 1, 1), date(2026, 1, 21), cfg)
	assert.Equal(t, DefaultGracePeriodDays, fee.GracePeriodDays)
	assert.Equal(t, DefaultLateFeePercentage, fee.FeePercentage)
	assert.True(t, fee.Applies)
	assert.Equal(t, 100.0, fee.FeeAmount)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 33.33, Round2(33.334))
	assert.Equal(t, 100.0, Round2(99.999))
	assert.Equal(t, -100.0, Round2(-99.999))
	assert.Equal(t, 50.0, Round2(50))
}
