package billing

import "github.com/shopspring/decimal"

// LineComputation is the full-precision result of pricing one invoice
// line. Components are kept unrounded so the totalizer can aggregate
// them without accumulating per-line rounding drift; Rounded produces
// the two-decimal values cached on the invoice for display and audit.
type LineComputation struct {
	TaxableAmount decimal.Decimal
	CGST          decimal.Decimal
	SGST          decimal.Decimal
	IGST          decimal.Decimal
	LineTotal     decimal.Decimal
}

// ComputeLine prices a single line: taxable amount from quantity and
// unit rate, tax components from the resolver, and the line total.
func ComputeLine(quantity, unitRate, taxRatePercent decimal.Decimal, interState bool) (LineComputation, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return LineComputation{}, ErrInvalidQuantity
	}
	if unitRate.IsNegative() {
		return LineComputation{}, ErrInvalidRate
	}

	taxable := quantity.Mul(unitRate)
	split, err := splitTaxExact(taxable, taxRatePercent, interState)
	if err != nil {
		return LineComputation{}, err
	}

	return LineComputation{
		TaxableAmount: taxable,
		CGST:          split.CGST,
		SGST:          split.SGST,
		IGST:          split.IGST,
		LineTotal:     taxable.Add(split.Total()),
	}, nil
}

// Rounded returns the line with every component rounded to two decimals.
func (lc LineComputation) Rounded() LineComputation {
	return LineComputation{
		TaxableAmount: round2(lc.TaxableAmount),
		CGST:          round2(lc.CGST),
		SGST:          round2(lc.SGST),
		IGST:          round2(lc.IGST),
		LineTotal:     round2(lc.LineTotal),
	}
}
