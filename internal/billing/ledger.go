package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment is one event in an invoice's payment ledger. Amounts are
// immutable after creation — correcting a mistake means deleting the
// event and recording a new one, never editing in place.
type Payment struct {
	ID        uuid.UUID
	Amount    decimal.Decimal
	Method    string
	Date      time.Time
	Reference string
}

// LedgerState is the derived payment position of an invoice. It is
// always recomputed from the full payment list, never adjusted
// incrementally, so a past drift can never survive the next mutation.
type LedgerState struct {
	AmountPaid decimal.Decimal
	BalanceDue decimal.Decimal
	Status     PaymentStatus
}

// ComputeLedger derives the payment position from the full ledger.
// Summation is order-independent; insertion order matters only for
// payment-history display.
func ComputeLedger(grandTotal decimal.Decimal, payments []Payment) LedgerState {
	amountPaid := decimal.Zero
	for _, p := range payments {
		amountPaid = amountPaid.Add(p.Amount)
	}
	amountPaid = round2(amountPaid)

	return LedgerState{
		AmountPaid: amountPaid,
		BalanceDue: round2(grandTotal.Sub(amountPaid)),
		Status:     DeriveStatus(grandTotal, amountPaid),
	}
}

// ApplyPayment validates and appends a payment, returning the extended
// ledger and its recomputed state. A payment larger than the current
// balance due is rejected outright — the engine never clamps it down,
// because a silently shrunk payment would mask a caller bug and produce
// a ledger that disagrees with the money actually received.
func ApplyPayment(grandTotal decimal.Decimal, payments []Payment, p Payment) ([]Payment, LedgerState, error) {
	if p.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, LedgerState{}, ErrInvalidAmount
	}

	current := ComputeLedger(grandTotal, payments)
	if p.Amount.GreaterThan(current.BalanceDue) {
		return nil, LedgerState{}, ErrOverpayment
	}

	updated := make([]Payment, 0, len(payments)+1)
	updated = append(updated, payments...)
	updated = append(updated, p)
	return updated, ComputeLedger(grandTotal, updated), nil
}

// RemovePayment deletes the payment with the given id and recomputes the
// ledger from what remains — not by subtracting the deleted amount, so
// the result is correct even if the stored state had drifted. Deletion
// is irreversible; there is no soft delete or undo.
func RemovePayment(grandTotal decimal.Decimal, payments []Payment, paymentID uuid.UUID) ([]Payment, LedgerState, error) {
	remaining := make([]Payment, 0, len(payments))
	found := false
	for _, p := range payments {
		if p.ID == paymentID {
			found = true
			continue
		}
		remaining = append(remaining, p)
	}
	if !found {
		return nil, LedgerState{}, ErrPaymentNotFound
	}

	return remaining, ComputeLedger(grandTotal, remaining), nil
}
