package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/4ugusta/chaibooks-backend/internal/billing"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestResolveInterState(t *testing.T) {
	t.Run("same_state_is_intra", func(t *testing.T) {
		assert.False(t, billing.ResolveInterState("Maharashtra", "Maharashtra"))
	})

	t.Run("different_state_is_inter", func(t *testing.T) {
		assert.True(t, billing.ResolveInterState("Maharashtra", "Karnataka"))
	})

	t.Run("case_insensitive", func(t *testing.T) {
		assert.False(t, billing.ResolveInterState("Maharashtra", "MAHARASHTRA"))
		assert.False(t, billing.ResolveInterState("maharashtra", "Maharashtra"))
	})

	t.Run("whitespace_trimmed", func(t *testing.T) {
		assert.False(t, billing.ResolveInterState("Maharashtra", "  Maharashtra "))
	})
}

func TestValidTaxRate(t *testing.T) {
	for _, rate := range []string{"0", "5", "12", "18", "28"} {
		assert.True(t, billing.ValidTaxRate(dec(rate)), "rate %s should be legal", rate)
	}
	for _, rate := range []string{"-5", "3", "10", "17.5", "100"} {
		assert.False(t, billing.ValidTaxRate(dec(rate)), "rate %s should be rejected", rate)
	}
}

func TestSplitTax_InterState(t *testing.T) {
	split, err := billing.SplitTax(dec("1000"), dec("5"), true)
	require.NoError(t, err)

	assert.True(t, split.IGST.Equal(dec("50.00")), "igst = %s", split.IGST)
	assert.True(t, split.CGST.IsZero())
	assert.True(t, split.SGST.IsZero())
}

func TestSplitTax_IntraState(t *testing.T) {
	split, err := billing.SplitTax(dec("1000"), dec("18"), false)
	require.NoError(t, err)

	assert.True(t, split.CGST.Equal(dec("90.00")), "cgst = %s", split.CGST)
	assert.True(t, split.SGST.Equal(dec("90.00")), "sgst = %s", split.SGST)
	assert.True(t, split.IGST.IsZero())
}

func TestSplitTax_HalvesRoundIndependently(t *testing.T) {
	// 33.30 × 5% = 1.665 total; each half is 0.8325 → 0.83. The halves
	// sum to 1.66, one paisa under a single rounding of the full rate.
	split, err := billing.SplitTax(dec("33.30"), dec("5"), false)
	require.NoError(t, err)

	assert.True(t, split.CGST.Equal(dec("0.83")), "cgst = %s", split.CGST)
	assert.True(t, split.SGST.Equal(dec("0.83")), "sgst = %s", split.SGST)
	assert.True(t, split.Total().Equal(dec("1.66")))

	full, err := billing.SplitTax(dec("33.30"), dec("5"), true)
	require.NoError(t, err)
	assert.True(t, full.IGST.Equal(dec("1.67")), "igst = %s", full.IGST)
}

func TestSplitTax_RejectsUnknownRate(t *testing.T) {
	_, err := billing.SplitTax(dec("1000"), dec("10"), false)
	assert.ErrorIs(t, err, billing.ErrInvalidTaxRate)

	var verr *billing.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestSplitTax_ZeroRate(t *testing.T) {
	for _, inter := range []bool{true, false} {
		split, err := billing.SplitTax(dec("1000"), dec("0"), inter)
		require.NoError(t, err)
		assert.True(t, split.Total().IsZero())
	}
}

func TestSplitTax_MutuallyExclusive(t *testing.T) {
	rates := []string{"0", "5", "12", "18", "28"}
	for _, rate := range rates {
		for _, inter := range []bool{true, false} {
			split, err := billing.SplitTax(dec("437.50"), dec(rate), inter)
			require.NoError(t, err)

			hasCentral := split.CGST.IsPositive() || split.SGST.IsPositive()
			hasIntegrated := split.IGST.IsPositive()
			assert.False(t, hasCentral && hasIntegrated,
				"rate %s inter=%v produced both CGST/SGST and IGST", rate, inter)
			if split.Total().IsPositive() {
				assert.True(t, hasCentral || hasIntegrated)
			}
		}
	}
}
