package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/4ugusta/chaibooks-backend/internal/billing"
)

func TestComputeLine_RejectsBadInput(t *testing.T) {
	t.Run("zero_quantity", func(t *testing.T) {
		_, err := billing.ComputeLine(dec("0"), dec("100"), dec("18"), false)
		assert.ErrorIs(t, err, billing.ErrInvalidQuantity)
	})

	t.Run("negative_quantity", func(t *testing.T) {
		_, err := billing.ComputeLine(dec("-2"), dec("100"), dec("18"), false)
		assert.ErrorIs(t, err, billing.ErrInvalidQuantity)
	})

	t.Run("negative_rate", func(t *testing.T) {
		_, err := billing.ComputeLine(dec("2"), dec("-100"), dec("18"), false)
		assert.ErrorIs(t, err, billing.ErrInvalidRate)
	})

	t.Run("illegal_tax_rate", func(t *testing.T) {
		_, err := billing.ComputeLine(dec("2"), dec("100"), dec("7"), false)
		assert.ErrorIs(t, err, billing.ErrInvalidTaxRate)
	})
}

func TestComputeLine_ZeroUnitRateAllowed(t *testing.T) {
	// Free-of-charge lines are legitimate (samples, replacements).
	lc, err := billing.ComputeLine(dec("3"), dec("0"), dec("18"), false)
	require.NoError(t, err)
	assert.True(t, lc.TaxableAmount.IsZero())
	assert.True(t, lc.LineTotal.IsZero())
}

func TestComputeLine_IntraState(t *testing.T) {
	lc, err := billing.ComputeLine(dec("2"), dec("500"), dec("18"), false)
	require.NoError(t, err)

	assert.True(t, lc.TaxableAmount.Equal(dec("1000")), "taxable = %s", lc.TaxableAmount)
	assert.True(t, lc.CGST.Equal(dec("90")), "cgst = %s", lc.CGST)
	assert.True(t, lc.SGST.Equal(dec("90")), "sgst = %s", lc.SGST)
	assert.True(t, lc.IGST.IsZero())
	assert.True(t, lc.LineTotal.Equal(dec("1180")), "line total = %s", lc.LineTotal)
}

func TestComputeLine_InterState(t *testing.T) {
	lc, err := billing.ComputeLine(dec("1"), dec("1000"), dec("5"), true)
	require.NoError(t, err)

	assert.True(t, lc.TaxableAmount.Equal(dec("1000")))
	assert.True(t, lc.IGST.Equal(dec("50")), "igst = %s", lc.IGST)
	assert.True(t, lc.CGST.IsZero())
	assert.True(t, lc.SGST.IsZero())
	assert.True(t, lc.LineTotal.Equal(dec("1050")))
}

func TestComputeLine_TotalBalancesToTheCent(t *testing.T) {
	// lineTotal == taxable + cgst + sgst + igst for every slab in both
	// jurisdiction modes, on an awkward quantity/rate pair.
	rates := []string{"0", "5", "12", "18", "28"}
	for _, rate := range rates {
		for _, inter := range []bool{true, false} {
			lc, err := billing.ComputeLine(dec("3.5"), dec("33.33"), dec(rate), inter)
			require.NoError(t, err)

			sum := lc.TaxableAmount.Add(lc.CGST).Add(lc.SGST).Add(lc.IGST)
			assert.True(t, lc.LineTotal.Equal(sum),
				"rate %s inter=%v: total %s != components %s", rate, inter, lc.LineTotal, sum)

			rounded := lc.Rounded()
			roundedSum := rounded.TaxableAmount.Add(rounded.CGST).Add(rounded.SGST).Add(rounded.IGST)
			diff := rounded.LineTotal.Sub(roundedSum).Abs()
			assert.True(t, diff.LessThanOrEqual(dec("0.02")),
				"rate %s inter=%v: rounded drift %s", rate, inter, diff)
		}
	}
}

func TestComputeLine_FractionalQuantity(t *testing.T) {
	// 2.5 kg at 99.99/kg keeps full precision before rounding.
	lc, err := billing.ComputeLine(dec("2.5"), dec("99.99"), dec("5"), true)
	require.NoError(t, err)

	assert.True(t, lc.TaxableAmount.Equal(dec("249.975")), "taxable = %s", lc.TaxableAmount)
	assert.True(t, lc.Rounded().TaxableAmount.Equal(dec("249.98")))
	assert.True(t, lc.Rounded().IGST.Equal(dec("12.50")), "igst = %s", lc.Rounded().IGST)
}
