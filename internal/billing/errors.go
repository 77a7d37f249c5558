package billing

// ValidationError reports input that fails basic shape checks (bad
// quantity, rate, discount, amount). The caller sent something malformed.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// InvariantViolation reports an operation that would break a guaranteed
// invariant of the invoice (overpayment, negative grand total, ambiguous
// tax split). The input was well-formed but the resulting state is not
// allowed to exist.
type InvariantViolation struct {
	Reason string
}

func (e *InvariantViolation) Error() string { return e.Reason }

// NotFoundError reports a reference to a payment or line that does not
// exist on the invoice.
type NotFoundError struct {
	Reason string
}

func (e *NotFoundError) Error() string { return e.Reason }

// Sentinel failures. Pointer identity makes these usable with errors.Is
// while errors.As still matches on category.
var (
	ErrInvalidQuantity = &ValidationError{Reason: "quantity must be greater than zero"}
	ErrInvalidRate     = &ValidationError{Reason: "unit rate must not be negative"}
	ErrInvalidTaxRate  = &ValidationError{Reason: "tax rate is not a recognised GST slab"}
	ErrInvalidDiscount = &ValidationError{Reason: "discount must be between zero and the taxed total"}
	ErrInvalidAmount   = &ValidationError{Reason: "payment amount must be greater than zero"}

	ErrOverpayment    = &InvariantViolation{Reason: "payment amount exceeds balance due"}
	ErrTotalBelowPaid = &InvariantViolation{Reason: "recomputed grand total is below the amount already paid"}
	ErrAmbiguousSplit = &InvariantViolation{Reason: "tax split must be either CGST+SGST or IGST, never both"}

	ErrPaymentNotFound = &NotFoundError{Reason: "payment not found on this invoice"}
)
