// file: internals/features/finance/payments/service/receipt.go
package service

import (
	"context"
	"fmt"
	"time"
)

// Receipt numbers look like REC-202608-00042: scoped by the calendar
// year+month of the paid transition, 5-digit zero-padded sequence.
const receiptSequenceDigits = 5

func receiptPrefixFor(now time.Time) string {
	return fmt.Sprintf("REC-%s", now.Format("200601"))
}

// nextReceiptNumber computes count-of-prefix + 1. The count is advisory only:
// two concurrent mark-paid calls in the same month can compute the same
// sequence, so the unique index on payment_receipt_number stays the final
// arbiter and the caller retries on conflict with a fresh count.
func (s *LifecycleService) nextReceiptNumber(ctx context.Context) (string, error) {
	prefix := receiptPrefixFor(s.now())
	n, err := s.repo.CountReceiptPrefix(ctx, prefix)
	if err != nil {
		return "", fmt.Errorf("count receipts for %s: %w", prefix, err)
	}
	return fmt.Sprintf("%s-%0*d", prefix, receiptSequenceDigits, n+1), nil
}
