package service

import (
	"context"
	"fmt"
	"time"

	"github.com/4ugusta/chaibooks-backend/internal/model"
	"github.com/4ugusta/chaibooks-backend/internal/repository"
)

// --- DTOs ---

type PeriodSummaryResponse struct {
	Period       string `json:"period"`
	InvoiceCount int    `json:"invoice_count"`
	Subtotal     string `json:"subtotal"`
	CGST         string `json:"cgst"`
	SGST         string `json:"sgst"`
	IGST         string `json:"igst"`
	GrandTotal   string `json:"grand_total"`
	AmountPaid   string `json:"amount_paid"`
}

type GSTReportResponse struct {
	// Output tax is collected on sales, input tax is paid on purchases.
	// NetLiability = output − input; negative means a carry-forward credit.
	OutputTaxable string `json:"output_taxable"`
	OutputCGST    string `json:"output_cgst"`
	OutputSGST    string `json:"output_sgst"`
	OutputIGST    string `json:"output_igst"`
	OutputTax     string `json:"output_tax"`
	InputTaxable  string `json:"input_taxable"`
	InputCGST     string `json:"input_cgst"`
	InputSGST     string `json:"input_sgst"`
	InputIGST     string `json:"input_igst"`
	InputTax      string `json:"input_tax"`
	NetLiability  string `json:"net_liability"`
}

type ProfitLossResponse struct {
	SalesTotal    string `json:"sales_total"`    // Taxable turnover, GST excluded
	PurchaseTotal string `json:"purchase_total"` // Taxable spend, GST excluded
	GrossProfit   string `json:"gross_profit"`
}

type CustomerOutstandingResponse struct {
	CustomerID   string `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	InvoiceCount int    `json:"invoice_count"`
	TotalBilled  string `json:"total_billed"`
	TotalPaid    string `json:"total_paid"`
	BalanceDue   string `json:"balance_due"`
}

type TopItemResponse struct {
	ItemName      string `json:"item_name"`
	HSNCode       string `json:"hsn_code"`
	TotalQuantity string `json:"total_quantity"`
	TotalValue    string `json:"total_value"`
}

type DashboardResponse struct {
	CustomerCount int64  `json:"customer_count"`
	ItemCount     int64  `json:"item_count"`
	LowStockCount int    `json:"low_stock_count"`
	MonthSales    string `json:"month_sales"`
	MonthReceived string `json:"month_received"`
	MonthPurchase string `json:"month_purchase"`
	MonthInvoices int64  `json:"month_invoices"`

	TopDebtors []CustomerOutstandingResponse `json:"top_debtors"`
}

// --- Interface ---

type ReportService interface {
	GetPeriodSummary(ctx context.Context, invoiceType, groupBy, startDate, endDate string) ([]PeriodSummaryResponse, error)
	GetGSTReport(ctx context.Context, startDate, endDate string) (GSTReportResponse, error)
	GetProfitLoss(ctx context.Context, startDate, endDate string) (ProfitLossResponse, error)
	GetCustomerOutstanding(ctx context.Context, limit int) ([]CustomerOutstandingResponse, error)
	GetTopItems(ctx context.Context, invoiceType, startDate, endDate string, limit int) ([]TopItemResponse, error)
	GetDashboard(ctx context.Context) (DashboardResponse, error)
}

type reportService struct {
	reportRepo   repository.ReportRepository
	customerRepo repository.CustomerRepository
	itemRepo     repository.ItemRepository
}

func NewReportService(
	reportRepo repository.ReportRepository,
	customerRepo repository.CustomerRepository,
	itemRepo repository.ItemRepository,
) ReportService {
	return &reportService{
		reportRepo:   reportRepo,
		customerRepo: customerRepo,
		itemRepo:     itemRepo,
	}
}

// --- Implementation ---

func (s *reportService) GetPeriodSummary(ctx context.Context, invoiceType, groupBy, startDate, endDate string) ([]PeriodSummaryResponse, error) {
	if invoiceType != model.InvoiceTypeSale && invoiceType != model.InvoiceTypePurchase {
		return nil, fmt.Errorf("invalid invoice type %q", invoiceType)
	}
	if groupBy != "day" && groupBy != "week" && groupBy != "month" {
		return nil, fmt.Errorf("group_by must be day, week, or month")
	}

	start, end, err := parseReportRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	rows, err := s.reportRepo.GetPeriodSummary(ctx, invoiceType, groupBy, start, end)
	if err != nil {
		return nil, err
	}

	result := make([]PeriodSummaryResponse, 0, len(rows))
	for _, row := range rows {
		result = append(result, PeriodSummaryResponse{
			Period:       row.Period,
			InvoiceCount: row.InvoiceCount,
			Subtotal:     row.Subtotal.StringFixed(2),
			CGST:         row.CGST.StringFixed(2),
			SGST:         row.SGST.StringFixed(2),
			IGST:         row.IGST.StringFixed(2),
			GrandTotal:   row.GrandTotal.StringFixed(2),
			AmountPaid:   row.AmountPaid.StringFixed(2),
		})
	}
	return result, nil
}

func (s *reportService) GetGSTReport(ctx context.Context, startDate, endDate string) (GSTReportResponse, error) {
	start, end, err := parseReportRange(startDate, endDate)
	if err != nil {
		return GSTReportResponse{}, err
	}

	rows, err := s.reportRepo.GetGSTSummary(ctx, start, end)
	if err != nil {
		return GSTReportResponse{}, err
	}

	var sales, purchases repository.GSTSummaryRow
	for _, row := range rows {
		switch row.Type {
		case model.InvoiceTypeSale:
			sales = row
		case model.InvoiceTypePurchase:
			purchases = row
		}
	}

	net := sales.TaxTotal.Sub(purchases.TaxTotal)

	return GSTReportResponse{
		OutputTaxable: sales.Taxable.StringFixed(2),
		OutputCGST:    sales.CGST.StringFixed(2),
		OutputSGST:    sales.SGST.StringFixed(2),
		OutputIGST:    sales.IGST.StringFixed(2),
		OutputTax:     sales.TaxTotal.StringFixed(2),
		InputTaxable:  purchases.Taxable.StringFixed(2),
		InputCGST:     purchases.CGST.StringFixed(2),
		InputSGST:     purchases.SGST.StringFixed(2),
		InputIGST:     purchases.IGST.StringFixed(2),
		InputTax:      purchases.TaxTotal.StringFixed(2),
		NetLiability:  net.StringFixed(2),
	}, nil
}

func (s *reportService) GetProfitLoss(ctx context.Context, startDate, endDate string) (ProfitLossResponse, error) {
	start, end, err := parseReportRange(startDate, endDate)
	if err != nil {
		return ProfitLossResponse{}, err
	}

	rows, err := s.reportRepo.GetGSTSummary(ctx, start, end)
	if err != nil {
		return ProfitLossResponse{}, err
	}

	var sales, purchases repository.GSTSummaryRow
	for _, row := range rows {
		switch row.Type {
		case model.InvoiceTypeSale:
			sales = row
		case model.InvoiceTypePurchase:
			purchases = row
		}
	}

	return ProfitLossResponse{
		SalesTotal:    sales.Taxable.StringFixed(2),
		PurchaseTotal: purchases.Taxable.StringFixed(2),
		GrossProfit:   sales.Taxable.Sub(purchases.Taxable).StringFixed(2),
	}, nil
}

func (s *reportService) GetCustomerOutstanding(ctx context.Context, limit int) ([]CustomerOutstandingResponse, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.reportRepo.GetCustomerOutstanding(ctx, limit)
	if err != nil {
		return nil, err
	}
	return toOutstandingResponses(rows), nil
}

func (s *reportService) GetTopItems(ctx context.Context, invoiceType, startDate, endDate string, limit int) ([]TopItemResponse, error) {
	if invoiceType == "" {
		invoiceType = model.InvoiceTypeSale
	}
	if invoiceType != model.InvoiceTypeSale && invoiceType != model.InvoiceTypePurchase {
		return nil, fmt.Errorf("invalid invoice type %q", invoiceType)
	}
	if limit <= 0 {
		limit = 10
	}

	start, end, err := parseReportRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	rows, err := s.reportRepo.GetTopItems(ctx, invoiceType, start, end, limit)
	if err != nil {
		return nil, err
	}

	result := make([]TopItemResponse, 0, len(rows))
	for _, row := range rows {
		result = append(result, TopItemResponse{
			ItemName:      row.ItemName,
			HSNCode:       row.HSNCode,
			TotalQuantity: row.TotalQuantity.String(),
			TotalValue:    row.TotalValue.StringFixed(2),
		})
	}
	return result, nil
}

func (s *reportService) GetDashboard(ctx context.Context) (DashboardResponse, error) {
	customerCount, err := s.customerRepo.Count(ctx)
	if err != nil {
		return DashboardResponse{}, err
	}
	itemCount, err := s.itemRepo.Count(ctx)
	if err != nil {
		return DashboardResponse{}, err
	}
	lowStock, err := s.itemRepo.ListLowStock(ctx)
	if err != nil {
		return DashboardResponse{}, err
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	salesGrand, salesPaid, salesCount, err := s.reportRepo.SumTotals(ctx, model.InvoiceTypeSale, monthStart, now)
	if err != nil {
		return DashboardResponse{}, err
	}
	purchaseGrand, _, _, err := s.reportRepo.SumTotals(ctx, model.InvoiceTypePurchase, monthStart, now)
	if err != nil {
		return DashboardResponse{}, err
	}

	debtors, err := s.reportRepo.GetCustomerOutstanding(ctx, 5)
	if err != nil {
		return DashboardResponse{}, err
	}

	return DashboardResponse{
		CustomerCount: customerCount,
		ItemCount:     itemCount,
		LowStockCount: len(lowStock),
		MonthSales:    salesGrand.StringFixed(2),
		MonthReceived: salesPaid.StringFixed(2),
		MonthPurchase: purchaseGrand.StringFixed(2),
		MonthInvoices: salesCount,
		TopDebtors:    toOutstandingResponses(debtors),
	}, nil
}

// --- Helpers ---

// parseReportRange defaults to the current financial year (April 1 to
// today) when no range is given.
func parseReportRange(startDate, endDate string) (time.Time, time.Time, error) {
	now := time.Now()

	start := time.Date(now.Year(), time.April, 1, 0, 0, 0, 0, now.Location())
	if now.Month() < time.April {
		start = start.AddDate(-1, 0, 0)
	}
	end := now

	var err error
	if startDate != "" {
		start, err = time.Parse("2006-01-02", startDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid start_date: %w", err)
		}
	}
	if endDate != "" {
		end, err = time.Parse("2006-01-02", endDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end_date: %w", err)
		}
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end_date precedes start_date")
	}

	return start, end, nil
}

func toOutstandingResponses(rows []repository.CustomerOutstandingRow) []CustomerOutstandingResponse {
	result := make([]CustomerOutstandingResponse, 0, len(rows))
	for _, row := range rows {
		result = append(result, CustomerOutstandingResponse{
			CustomerID:   row.CustomerID.String(),
			CustomerName: row.CustomerName,
			InvoiceCount: row.InvoiceCount,
			TotalBilled:  row.TotalBilled.StringFixed(2),
			TotalPaid:    row.TotalPaid.StringFixed(2),
			BalanceDue:   row.BalanceDue.StringFixed(2),
		})
	}
	return result
}
