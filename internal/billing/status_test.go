package billing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/4ugusta/chaibooks-backend/internal/billing"
)

func TestDeriveStatus(t *testing.T) {
	grand := dec("1180.00")

	assert.Equal(t, billing.StatusUnpaid, billing.DeriveStatus(grand, dec("0")))
	assert.Equal(t, billing.StatusPartial, billing.DeriveStatus(grand, dec("0.01")))
	assert.Equal(t, billing.StatusPartial, billing.DeriveStatus(grand, dec("1179.99")))
	assert.Equal(t, billing.StatusPaid, billing.DeriveStatus(grand, dec("1180.00")))
}

func TestDeriveStatus_ZeroTotalInvoiceStartsUnpaid(t *testing.T) {
	// A fully discounted invoice still starts unpaid: with no payments
	// recorded, balanceDue equals the (zero) grand total.
	assert.Equal(t, billing.StatusUnpaid, billing.DeriveStatus(dec("0"), dec("0")))
}

func TestDisplayStatus_OverdueOverlay(t *testing.T) {
	due := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	before := due.AddDate(0, 0, -1)
	after := due.AddDate(0, 0, 1)

	t.Run("unpaid_past_due_shows_overdue", func(t *testing.T) {
		assert.Equal(t, billing.StatusOverdue, billing.DisplayStatus(billing.StatusUnpaid, due, after))
	})

	t.Run("partial_past_due_shows_overdue", func(t *testing.T) {
		assert.Equal(t, billing.StatusOverdue, billing.DisplayStatus(billing.StatusPartial, due, after))
	})

	t.Run("paid_never_overdue", func(t *testing.T) {
		assert.Equal(t, billing.StatusPaid, billing.DisplayStatus(billing.StatusPaid, due, after))
	})

	t.Run("before_due_date_unchanged", func(t *testing.T) {
		assert.Equal(t, billing.StatusUnpaid, billing.DisplayStatus(billing.StatusUnpaid, due, before))
		assert.Equal(t, billing.StatusPartial, billing.DisplayStatus(billing.StatusPartial, due, before))
	})
}

func TestDisplayStatus_DerivedNotStored(t *testing.T) {
	// The overlay is a pure function of the clock: the same invoice reads
	// overdue after the due date and plain unpaid before it, with no
	// transition in between.
	due := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, billing.StatusUnpaid, billing.DisplayStatus(billing.StatusUnpaid, due, due))
	assert.Equal(t, billing.StatusOverdue, billing.DisplayStatus(billing.StatusUnpaid, due, due.Add(time.Second)))
}

func TestCheckRetotal(t *testing.T) {
	t.Run("edit_allowed_when_paid_within_new_total", func(t *testing.T) {
		assert.NoError(t, billing.CheckRetotal(dec("1200"), dec("1180")))
		assert.NoError(t, billing.CheckRetotal(dec("1180"), dec("1180")))
	})

	t.Run("edit_rejected_when_new_total_below_paid", func(t *testing.T) {
		err := billing.CheckRetotal(dec("1000"), dec("1180"))
		assert.ErrorIs(t, err, billing.ErrTotalBelowPaid)

		var iv *billing.InvariantViolation
		assert.ErrorAs(t, err, &iv)
	})
}
