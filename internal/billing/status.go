package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the stored lifecycle state of an invoice's ledger.
// Overdue is never stored — it is a display overlay derived at read time.
type PaymentStatus string

const (
	StatusUnpaid  PaymentStatus = "unpaid"
	StatusPartial PaymentStatus = "partial"
	StatusPaid    PaymentStatus = "paid"
	StatusOverdue PaymentStatus = "overdue"
)

// DeriveStatus re-evaluates the payment status from scratch. It is the
// only way status changes: every ledger mutation calls it, and "paid"
// is not terminal — deleting a payment walks the invoice back.
func DeriveStatus(grandTotal, amountPaid decimal.Decimal) PaymentStatus {
	switch {
	case amountPaid.LessThanOrEqual(decimal.Zero):
		return StatusUnpaid
	case amountPaid.GreaterThanOrEqual(grandTotal):
		return StatusPaid
	default:
		return StatusPartial
	}
}

// DisplayStatus overlays the derived overdue state: an unpaid or partial
// invoice past its due date shows as overdue without a stored transition.
func DisplayStatus(status PaymentStatus, dueDate, now time.Time) PaymentStatus {
	if (status == StatusUnpaid || status == StatusPartial) && now.After(dueDate) {
		return StatusOverdue
	}
	return status
}

// CheckRetotal guards item/discount edits on an invoice that already has
// payments: if the recomputed grand total would fall below the amount
// already collected, the edit is rejected rather than leaving the ledger
// overpaid.
func CheckRetotal(newGrandTotal, amountPaid decimal.Decimal) error {
	if amountPaid.GreaterThan(newGrandTotal) {
		return ErrTotalBelowPaid
	}
	return nil
}
