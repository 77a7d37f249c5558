package billing_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/4ugusta/chaibooks-backend/internal/billing"
)

func payment(amount string) billing.Payment {
	return billing.Payment{
		ID:     uuid.New(),
		Amount: dec(amount),
		Method: "cash",
		Date:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestComputeLedger_EmptyLedgerIsUnpaid(t *testing.T) {
	state := billing.ComputeLedger(dec("1180.00"), nil)

	assert.True(t, state.AmountPaid.IsZero())
	assert.True(t, state.BalanceDue.Equal(dec("1180.00")))
	assert.Equal(t, billing.StatusUnpaid, state.Status)
}

func TestApplyPayment_FullPaymentSettles(t *testing.T) {
	ledger, state, err := billing.ApplyPayment(dec("1180.00"), nil, payment("1180.00"))
	require.NoError(t, err)

	require.Len(t, ledger, 1)
	assert.True(t, state.AmountPaid.Equal(dec("1180.00")))
	assert.True(t, state.BalanceDue.IsZero())
	assert.Equal(t, billing.StatusPaid, state.Status)
}

func TestApplyPayment_PartialThenExact(t *testing.T) {
	grand := dec("1180.00")

	ledger, state, err := billing.ApplyPayment(grand, nil, payment("500"))
	require.NoError(t, err)
	assert.Equal(t, billing.StatusPartial, state.Status)
	assert.True(t, state.BalanceDue.Equal(dec("680.00")))

	ledger, state, err = billing.ApplyPayment(grand, ledger, payment("680"))
	require.NoError(t, err)
	assert.Equal(t, billing.StatusPaid, state.Status)
	assert.True(t, state.BalanceDue.IsZero())
	assert.Len(t, ledger, 2)
}

func TestApplyPayment_RejectsInvalidAmount(t *testing.T) {
	for _, amount := range []string{"0", "-50"} {
		_, _, err := billing.ApplyPayment(dec("1000"), nil, payment(amount))
		assert.ErrorIs(t, err, billing.ErrInvalidAmount, "amount %s", amount)
	}
}

func TestApplyPayment_RejectsOverpayment(t *testing.T) {
	// One paisa over the balance due fails and leaves the ledger alone.
	grand := dec("1050.00")
	ledger, _, err := billing.ApplyPayment(grand, nil, payment("1051.00"))
	assert.ErrorIs(t, err, billing.ErrOverpayment)
	assert.Nil(t, ledger)

	var iv *billing.InvariantViolation
	assert.ErrorAs(t, err, &iv)

	existing, state, err := billing.ApplyPayment(grand, nil, payment("1000"))
	require.NoError(t, err)
	_, _, err = billing.ApplyPayment(grand, existing, payment("50.01"))
	assert.ErrorIs(t, err, billing.ErrOverpayment)

	// The failed attempt must not have changed anything.
	recheck := billing.ComputeLedger(grand, existing)
	assert.True(t, recheck.AmountPaid.Equal(state.AmountPaid))
	assert.True(t, recheck.BalanceDue.Equal(dec("50.00")))
}

func TestRemovePayment_ReopensInvoice(t *testing.T) {
	grand := dec("1180.00")
	p := payment("1180.00")

	ledger, state, err := billing.ApplyPayment(grand, nil, p)
	require.NoError(t, err)
	require.Equal(t, billing.StatusPaid, state.Status)

	ledger, state, err = billing.RemovePayment(grand, ledger, p.ID)
	require.NoError(t, err)

	assert.Empty(t, ledger)
	assert.True(t, state.AmountPaid.IsZero())
	assert.True(t, state.BalanceDue.Equal(grand))
	assert.Equal(t, billing.StatusUnpaid, state.Status)
}

func TestRemovePayment_UnknownIDFails(t *testing.T) {
	ledger, _, err := billing.ApplyPayment(dec("1000"), nil, payment("400"))
	require.NoError(t, err)

	_, _, err = billing.RemovePayment(dec("1000"), ledger, uuid.New())
	assert.ErrorIs(t, err, billing.ErrPaymentNotFound)

	var nf *billing.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestLedger_ConsistentAfterEverySequenceStep(t *testing.T) {
	// Mixed record/delete sequence: after every successful operation,
	// amountPaid equals the sum of the remaining events and balanceDue
	// equals grandTotal − amountPaid.
	grand := dec("1000.00")
	var ledger []billing.Payment

	check := func(state billing.LedgerState) {
		t.Helper()
		sum := decimal.Zero
		for _, p := range ledger {
			sum = sum.Add(p.Amount)
		}
		assert.True(t, state.AmountPaid.Equal(sum.Round(2)))
		assert.True(t, state.BalanceDue.Equal(grand.Sub(state.AmountPaid).Round(2)))
	}

	p1, p2, p3 := payment("250.25"), payment("99.99"), payment("400")

	var state billing.LedgerState
	var err error
	for _, p := range []billing.Payment{p1, p2, p3} {
		ledger, state, err = billing.ApplyPayment(grand, ledger, p)
		require.NoError(t, err)
		check(state)
	}
	assert.Equal(t, billing.StatusPartial, state.Status)

	ledger, state, err = billing.RemovePayment(grand, ledger, p2.ID)
	require.NoError(t, err)
	check(state)
	assert.True(t, state.AmountPaid.Equal(dec("650.25")))

	ledger, state, err = billing.ApplyPayment(grand, ledger, payment("349.75"))
	require.NoError(t, err)
	check(state)
	assert.Equal(t, billing.StatusPaid, state.Status)
}

func TestLedger_InsertionOrderPreservedForDisplay(t *testing.T) {
	grand := dec("300.00")
	p1, p2, p3 := payment("100"), payment("100"), payment("100")

	var ledger []billing.Payment
	var err error
	for _, p := range []billing.Payment{p1, p2, p3} {
		ledger, _, err = billing.ApplyPayment(grand, ledger, p)
		require.NoError(t, err)
	}

	require.Len(t, ledger, 3)
	assert.Equal(t, p1.ID, ledger[0].ID)
	assert.Equal(t, p2.ID, ledger[1].ID)
	assert.Equal(t, p3.ID, ledger[2].ID)
}
