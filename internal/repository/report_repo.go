package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PeriodSummaryRow aggregates stored invoice totals per calendar period.
// Amounts are summed from already-rounded columns, never recomputed.
type PeriodSummaryRow struct {
	Period       string          `gorm:"column:period"`
	InvoiceCount int             `gorm:"column:invoice_count"`
	Subtotal     decimal.Decimal `gorm:"column:subtotal"`
	CGST         decimal.Decimal `gorm:"column:cgst"`
	SGST         decimal.Decimal `gorm:"column:sgst"`
	IGST         decimal.Decimal `gorm:"column:igst"`
	GrandTotal   decimal.Decimal `gorm:"column:grand_total"`
	AmountPaid   decimal.Decimal `gorm:"column:amount_paid"`
}

type GSTSummaryRow struct {
	Type      string          `gorm:"column:invoice_type"`
	Taxable   decimal.Decimal `gorm:"column:taxable"`
	CGST      decimal.Decimal `gorm:"column:cgst"`
	SGST      decimal.Decimal `gorm:"column:sgst"`
	IGST      decimal.Decimal `gorm:"column:igst"`
	TaxTotal  decimal.Decimal `gorm:"column:tax_total"`
	GrossTurn decimal.Decimal `gorm:"column:gross_turnover"`
}

type CustomerOutstandingRow struct {
	CustomerID   uuid.UUID       `gorm:"column:customer_id"`
	CustomerName string          `gorm:"column:customer_name"`
	InvoiceCount int             `gorm:"column:invoice_count"`
	TotalBilled  decimal.Decimal `gorm:"column:total_billed"`
	TotalPaid    decimal.Decimal `gorm:"column:total_paid"`
	BalanceDue   decimal.Decimal `gorm:"column:balance_due"`
}

type TopItemRow struct {
	ItemName      string          `gorm:"column:item_name"`
	HSNCode       string          `gorm:"column:hsn_code"`
	TotalQuantity decimal.Decimal `gorm:"column:total_quantity"`
	TotalValue    decimal.Decimal `gorm:"column:total_value"`
}

type ReportRepository interface {
	GetPeriodSummary(ctx context.Context, invoiceType, groupBy string, start, end time.Time) ([]PeriodSummaryRow, error)
	GetGSTSummary(ctx context.Context, start, end time.Time) ([]GSTSummaryRow, error)
	GetCustomerOutstanding(ctx context.Context, limit int) ([]CustomerOutstandingRow, error)
	GetTopItems(ctx context.Context, invoiceType string, start, end time.Time, limit int) ([]TopItemRow, error)
	SumTotals(ctx context.Context, invoiceType string, start, end time.Time) (grand, paid decimal.Decimal, count int64, err error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) GetPeriodSummary(ctx context.Context, invoiceType, groupBy string, start, end time.Time) ([]PeriodSummaryRow, error) {
	query := `
		SELECT
			TO_CHAR(DATE_TRUNC($1, i.invoice_date), 'YYYY-MM-DD') AS period,
			COUNT(i.id) AS invoice_count,
			COALESCE(SUM(i.subtotal), 0) AS subtotal,
			COALESCE(SUM(i.cgst_total), 0) AS cgst,
			COALESCE(SUM(i.sgst_total), 0) AS sgst,
			COALESCE(SUM(i.igst_total), 0) AS igst,
			COALESCE(SUM(i.grand_total), 0) AS grand_total,
			COALESCE(SUM(i.amount_paid), 0) AS amount_paid
		FROM invoices i
		WHERE i.invoice_type = $2
		  AND i.invoice_date >= $3
		  AND i.invoice_date <= $4
		GROUP BY DATE_TRUNC($1, i.invoice_date)
		ORDER BY period
	`

	var rows []PeriodSummaryRow
	if err := r.db.WithContext(ctx).Raw(query, groupBy, invoiceType, start, end).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query period summary: %w", err)
	}
	return rows, nil
}

func (r *reportRepository) GetGSTSummary(ctx context.Context, start, end time.Time) ([]GSTSummaryRow, error) {
	query := `
		SELECT
			i.invoice_type AS invoice_type,
			COALESCE(SUM(i.subtotal), 0) AS taxable,
			COALESCE(SUM(i.cgst_total), 0) AS cgst,
			COALESCE(SUM(i.sgst_total), 0) AS sgst,
			COALESCE(SUM(i.igst_total), 0) AS igst,
			COALESCE(SUM(i.cgst_total + i.sgst_total + i.igst_total), 0) AS tax_total,
			COALESCE(SUM(i.grand_total), 0) AS gross_turnover
		FROM invoices i
		WHERE i.invoice_date >= $1
		  AND i.invoice_date <= $2
		GROUP BY i.invoice_type
		ORDER BY i.invoice_type
	`

	var rows []GSTSummaryRow
	if err := r.db.WithContext(ctx).Raw(query, start, end).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query gst summary: %w", err)
	}
	return rows, nil
}

func (r *reportRepository) GetCustomerOutstanding(ctx context.Context, limit int) ([]CustomerOutstandingRow, error) {
	var rows []CustomerOutstandingRow
	if err := r.db.WithContext(ctx).Table("invoices").
		Select("customers.id as customer_id, customers.name as customer_name, COUNT(invoices.id) as invoice_count, SUM(invoices.grand_total) as total_billed, SUM(invoices.amount_paid) as total_paid, SUM(invoices.balance_due) as balance_due").
		Joins("JOIN customers ON customers.id = invoices.customer_id").
		Where("invoices.invoice_type = ? AND invoices.balance_due > 0", "sale").
		Group("customers.id, customers.name").
		Order("balance_due DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query customer outstanding: %w", err)
	}
	return rows, nil
}

func (r *reportRepository) GetTopItems(ctx context.Context, invoiceType string, start, end time.Time, limit int) ([]TopItemRow, error) {
	var rows []TopItemRow
	if err := r.db.WithContext(ctx).Table("invoice_items").
		Select("invoice_items.description as item_name, invoice_items.hsn_code as hsn_code, SUM(invoice_items.quantity) as total_quantity, SUM(invoice_items.line_total) as total_value").
		Joins("JOIN invoices ON invoices.id = invoice_items.invoice_id").
		Where("invoices.invoice_type = ? AND invoices.invoice_date >= ? AND invoices.invoice_date <= ?", invoiceType, start, end).
		Group("invoice_items.description, invoice_items.hsn_code").
		Order("total_value DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query top items: %w", err)
	}
	return rows, nil
}

func (r *reportRepository) SumTotals(ctx context.Context, invoiceType string, start, end time.Time) (decimal.Decimal, decimal.Decimal, int64, error) {
	var result struct {
		Grand decimal.Decimal `gorm:"column:grand"`
		Paid  decimal.Decimal `gorm:"column:paid"`
		Count int64           `gorm:"column:count"`
	}
	if err := r.db.WithContext(ctx).Table("invoices").
		Select("COALESCE(SUM(grand_total), 0) as grand, COALESCE(SUM(amount_paid), 0) as paid, COUNT(id) as count").
		Where("invoice_type = ? AND invoice_date >= ? AND invoice_date <= ?", invoiceType, start, end).
		Scan(&result).Error; err != nil {
		return decimal.Zero, decimal.Zero, 0, fmt.Errorf("failed to sum invoice totals: %w", err)
	}
	return result.Grand, result.Paid, result.Count, nil
}
