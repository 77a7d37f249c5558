package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceType enum constants
const (
	InvoiceTypeSale     = "sale"
	InvoiceTypePurchase = "purchase"
)

// PaymentMethod enum constants
const (
	PaymentMethodCash         = "cash"
	PaymentMethodUPI          = "upi"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodCheque       = "cheque"
	PaymentMethodCard         = "card"
)

// Invoice is a tax invoice with its cached totals and payment ledger.
// Subtotal, the tax split, grand total, amount paid, balance due, and
// payment status are derived fields — the billing engine recomputes all
// of them from lines and payments on every mutation; they are stored
// only so readers and reports never re-derive (and re-round) them.
type Invoice struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	InvoiceNumber string          `gorm:"type:varchar(30);uniqueIndex;not null" json:"invoice_number"`
	InvoiceType   string          `gorm:"type:varchar(20);not null;index" json:"invoice_type"` // sale, purchase
	CustomerID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"customer_id"`
	Customer      *Customer       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	InvoiceDate   time.Time       `gorm:"type:date;not null" json:"invoice_date"`
	DueDate       time.Time       `gorm:"type:date;not null" json:"due_date"`
	IsInterState  bool            `gorm:"not null" json:"is_inter_state"` // Frozen at creation from seller/buyer states
	Items         []InvoiceItem   `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items"`
	Discount      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"discount"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"subtotal"`
	CGSTTotal     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"cgst_total"`
	SGSTTotal     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"sgst_total"`
	IGSTTotal     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"igst_total"`
	GrandTotal    decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"grand_total"`
	AmountInWords string          `gorm:"type:text" json:"amount_in_words"`
	PaymentStatus string          `gorm:"type:varchar(20);not null;default:'unpaid';index" json:"payment_status"` // unpaid, partial, paid
	Payments      []PaymentEvent  `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"payments"`
	AmountPaid    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"amount_paid"`
	BalanceDue    decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"balance_due"`

	// E-Way Bill transport details — carried through for the external
	// renderer, never computed here.
	EWayBillNumber   string `gorm:"type:varchar(12)" json:"eway_bill_number"`
	EWayBillVehicle  string `gorm:"type:varchar(20)" json:"eway_bill_vehicle"`
	EWayBillDistance int    `gorm:"type:int;default:0" json:"eway_bill_distance"`

	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedBy uuid.UUID `gorm:"type:uuid" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InvoiceItem is one line on an invoice. Unit rate, GST rate, HSN code,
// and unit are snapshots taken from the catalog when the line was added.
// The money columns cache the engine's rounded per-line computation for
// audit and display; the engine re-derives totals from quantity × rate,
// never from these caches.
type InvoiceItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"invoice_id"`
	ItemID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"item_id"`
	Item        *Item           `gorm:"foreignKey:ItemID" json:"item,omitempty"`
	Description string          `gorm:"type:text" json:"description"`
	HSNCode     string          `gorm:"type:varchar(8)" json:"hsn_code"`
	Unit        string          `gorm:"type:varchar(20)" json:"unit"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,3);not null" json:"quantity"`
	UnitRate    decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"unit_rate"`
	TaxRate     decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"tax_rate"`

	TaxableAmount decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"taxable_amount"`
	CGST          decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"cgst"`
	SGST          decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"sgst"`
	IGST          decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"igst"`
	LineTotal     decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"line_total"`

	SortOrder int       `gorm:"type:int;not null;default:0" json:"sort_order"` // Display order only
	CreatedAt time.Time `json:"created_at"`
}

// PaymentEvent is one entry in an invoice's payment ledger. It is owned
// exclusively by its invoice and its amount is immutable once created —
// corrections are a delete plus a new event, never an in-place edit.
type PaymentEvent struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	InvoiceID uuid.UUID       `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	Method    string          `gorm:"type:varchar(20);not null" json:"method"` // cash, upi, bank_transfer, cheque, card
	PaidOn    time.Time       `gorm:"type:date;not null" json:"paid_on"`
	Reference string          `gorm:"type:varchar(255)" json:"reference"`
	CreatedAt time.Time       `gorm:"index" json:"created_at"` // Insertion order for payment-history display
}
