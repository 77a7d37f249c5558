// Package billing is the pure computation core of the invoicing engine:
// GST resolution and splitting, line-item math, invoice totals, and the
// payment ledger. Nothing in this package touches the database or the
// network; every function is a deterministic mapping from inputs to
// outputs plus an explicit error.
package billing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// LegalTaxRates are the GST slabs an item may carry, in percent.
var LegalTaxRates = []decimal.Decimal{
	decimal.NewFromInt(0),
	decimal.NewFromInt(5),
	decimal.NewFromInt(12),
	decimal.NewFromInt(18),
	decimal.NewFromInt(28),
}

var (
	oneHundred = decimal.NewFromInt(100)
	twoHundred = decimal.NewFromInt(200)
)

// ValidTaxRate reports whether rate is one of the enumerated GST slabs.
func ValidTaxRate(rate decimal.Decimal) bool {
	for _, legal := range LegalTaxRates {
		if rate.Equal(legal) {
			return true
		}
	}
	return false
}

// ResolveInterState decides whether a transaction between the seller's
// and buyer's states is inter-state (IGST) or intra-state (CGST+SGST).
// Comparison is a case-insensitive exact match on the canonical state
// name. The result is decided once at invoice creation and frozen; a
// later change to the customer's state never re-classifies an issued
// invoice.
func ResolveInterState(sellerState, buyerState string) bool {
	seller := strings.ToLower(strings.TrimSpace(sellerState))
	buyer := strings.ToLower(strings.TrimSpace(buyerState))
	return seller != buyer
}

// TaxSplit holds the jurisdiction-specific components of one tax amount.
// Exactly one of {CGST+SGST} or {IGST} is non-zero whenever tax is due.
type TaxSplit struct {
	CGST decimal.Decimal
	SGST decimal.Decimal
	IGST decimal.Decimal
}

// Total returns CGST + SGST + IGST.
func (t TaxSplit) Total() decimal.Decimal {
	return t.CGST.Add(t.SGST).Add(t.IGST)
}

// SplitTax splits a taxable amount at ratePercent into rounded
// jurisdiction components. Intra-state CGST and SGST are each computed
// as taxable×rate/200 and rounded independently — their sum can differ
// by one paisa from a single rounding of the full rate. That is the
// split tax authorities expect on the invoice, so it is kept exactly.
func SplitTax(taxable, ratePercent decimal.Decimal, interState bool) (TaxSplit, error) {
	split, err := splitTaxExact(taxable, ratePercent, interState)
	if err != nil {
		return TaxSplit{}, err
	}
	return TaxSplit{
		CGST: round2(split.CGST),
		SGST: round2(split.SGST),
		IGST: round2(split.IGST),
	}, nil
}

// splitTaxExact is SplitTax without the output rounding. The totalizer
// aggregates these full-precision components and rounds once, so repeated
// per-line rounding never drifts the invoice totals.
func splitTaxExact(taxable, ratePercent decimal.Decimal, interState bool) (TaxSplit, error) {
	if !ValidTaxRate(ratePercent) {
		return TaxSplit{}, ErrInvalidTaxRate
	}

	if interState {
		return TaxSplit{
			CGST: decimal.Zero,
			SGST: decimal.Zero,
			IGST: taxable.Mul(ratePercent).Div(oneHundred),
		}, nil
	}

	half := taxable.Mul(ratePercent).Div(twoHundred)
	return TaxSplit{CGST: half, SGST: half, IGST: decimal.Zero}, nil
}

// round2 applies the engine-wide money rounding: two decimal places,
// half up.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
