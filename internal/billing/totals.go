package billing

import "github.com/shopspring/decimal"

// InvoiceTotals is the aggregated, rounded money summary of an invoice.
// Every field is rounded exactly once, from unrounded per-line sums.
type InvoiceTotals struct {
	Subtotal   decimal.Decimal
	CGST       decimal.Decimal
	SGST       decimal.Decimal
	IGST       decimal.Decimal
	TaxTotal   decimal.Decimal
	Discount   decimal.Decimal
	GrandTotal decimal.Decimal
}

// Totalize aggregates priced lines into invoice totals and applies the
// discount. It recomputes everything from the lines — totals are never
// patched incrementally after an item or discount change.
func Totalize(lines []LineComputation, discount decimal.Decimal, interState bool) (InvoiceTotals, error) {
	var subtotal, cgst, sgst, igst decimal.Decimal
	for _, line := range lines {
		subtotal = subtotal.Add(line.TaxableAmount)
		cgst = cgst.Add(line.CGST)
		sgst = sgst.Add(line.SGST)
		igst = igst.Add(line.IGST)
	}

	totals := InvoiceTotals{
		Subtotal: round2(subtotal),
		CGST:     round2(cgst),
		SGST:     round2(sgst),
		IGST:     round2(igst),
		Discount: round2(discount),
	}
	totals.TaxTotal = totals.CGST.Add(totals.SGST).Add(totals.IGST)

	// Mutual exclusivity holds by construction through the resolver, but
	// lines computed under mixed interState flags would silently produce
	// an invoice no tax office accepts.
	if totals.IGST.IsPositive() && (totals.CGST.IsPositive() || totals.SGST.IsPositive()) {
		return InvoiceTotals{}, ErrAmbiguousSplit
	}
	if interState && (totals.CGST.IsPositive() || totals.SGST.IsPositive()) {
		return InvoiceTotals{}, ErrAmbiguousSplit
	}
	if !interState && totals.IGST.IsPositive() {
		return InvoiceTotals{}, ErrAmbiguousSplit
	}

	if discount.IsNegative() || discount.GreaterThan(totals.Subtotal.Add(totals.TaxTotal)) {
		return InvoiceTotals{}, ErrInvalidDiscount
	}

	totals.GrandTotal = round2(totals.Subtotal.Add(totals.TaxTotal).Sub(totals.Discount))
	return totals, nil
}
