package service

import (
	"context"
	"fmt"
	"time"

	"github.com/4ugusta/chaibooks-backend/internal/billing"
	"github.com/4ugusta/chaibooks-backend/internal/model"
	"github.com/4ugusta/chaibooks-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type InvoiceLineRequest struct {
	ItemID      string `json:"item_id" binding:"required"`
	Description string `json:"description"` // Defaults to the catalog name
	Quantity    string `json:"quantity" binding:"required"`
	UnitRate    string `json:"unit_rate"` // Defaults to the catalog price for the invoice type
	TaxRate     string `json:"tax_rate"`  // Defaults to the catalog GST rate
}

type CreateInvoiceRequest struct {
	InvoiceType string               `json:"invoice_type" binding:"required,oneof=sale purchase"`
	CustomerID  string               `json:"customer_id" binding:"required"`
	InvoiceDate string               `json:"invoice_date" binding:"required"` // YYYY-MM-DD
	DueDate     string               `json:"due_date"`                        // YYYY-MM-DD, defaults to invoice date + 30 days
	Discount    string               `json:"discount"`
	Items       []InvoiceLineRequest `json:"items" binding:"required,min=1,dive"`
	Notes       string               `json:"notes"`

	EWayBillNumber   string `json:"eway_bill_number"`
	EWayBillVehicle  string `json:"eway_bill_vehicle"`
	EWayBillDistance int    `json:"eway_bill_distance"`
}

type UpdateInvoiceRequest struct {
	InvoiceDate *string              `json:"invoice_date"`
	DueDate     *string              `json:"due_date"`
	Discount    *string              `json:"discount"`
	Items       []InvoiceLineRequest `json:"items" binding:"omitempty,min=1,dive"`
	Notes       *string              `json:"notes"`

	EWayBillNumber   *string `json:"eway_bill_number"`
	EWayBillVehicle  *string `json:"eway_bill_vehicle"`
	EWayBillDistance *int    `json:"eway_bill_distance"`
}

type InvoiceFilter struct {
	Type       string // sale, purchase or empty for all
	Status     string // unpaid, partial, paid or empty for all
	CustomerID string
	Search     string // partial match on invoice_number
	FromDate   string // YYYY-MM-DD
	ToDate     string // YYYY-MM-DD
	Page       int
	Limit      int
}

type InvoiceLineResponse struct {
	ID            string `json:"id"`
	ItemID        string `json:"item_id"`
	Description   string `json:"description"`
	HSNCode       string `json:"hsn_code"`
	Unit          string `json:"unit"`
	Quantity      string `json:"quantity"`
	UnitRate      string `json:"unit_rate"`
	TaxRate       string `json:"tax_rate"`
	TaxableAmount string `json:"taxable_amount"`
	CGST          string `json:"cgst"`
	SGST          string `json:"sgst"`
	IGST          string `json:"igst"`
	LineTotal     string `json:"line_total"`
}

type PaymentEventResponse struct {
	ID        string `json:"id"`
	Amount    string `json:"amount"`
	Method    string `json:"method"`
	PaidOn    string `json:"paid_on"`
	Reference string `json:"reference"`
	CreatedAt string `json:"created_at"`
}

type InvoiceResponse struct {
	ID            string                 `json:"id"`
	InvoiceNumber string                 `json:"invoice_number"`
	InvoiceType   string                 `json:"invoice_type"`
	CustomerID    string                 `json:"customer_id"`
	CustomerName  string                 `json:"customer_name,omitempty"`
	InvoiceDate   string                 `json:"invoice_date"`
	DueDate       string                 `json:"due_date"`
	IsInterState  bool                   `json:"is_inter_state"`
	Items         []InvoiceLineResponse  `json:"items,omitempty"`
	Discount      string                 `json:"discount"`
	Subtotal      string                 `json:"subtotal"`
	CGSTTotal     string                 `json:"cgst_total"`
	SGSTTotal     string                 `json:"sgst_total"`
	IGSTTotal     string                 `json:"igst_total"`
	TaxTotal      string                 `json:"tax_total"`
	GrandTotal    string                 `json:"grand_total"`
	AmountInWords string                 `json:"amount_in_words"`
	PaymentStatus string                 `json:"payment_status"`
	AmountPaid    string                 `json:"amount_paid"`
	BalanceDue    string                 `json:"balance_due"`
	Payments      []PaymentEventResponse `json:"payments,omitempty"`

	EWayBillNumber   string `json:"eway_bill_number,omitempty"`
	EWayBillVehicle  string `json:"eway_bill_vehicle,omitempty"`
	EWayBillDistance int    `json:"eway_bill_distance,omitempty"`

	Notes     string `json:"notes,omitempty"`
	CreatedAt string `json:"created_at"`
}

// --- Interface ---

type InvoiceService interface {
	CreateInvoice(ctx context.Context, req CreateInvoiceRequest, userID uuid.UUID) (InvoiceResponse, error)
	UpdateInvoice(ctx context.Context, id string, req UpdateInvoiceRequest, userID uuid.UUID) (InvoiceResponse, error)
	GetInvoiceByID(ctx context.Context, id string) (InvoiceResponse, error)
	ListInvoices(ctx context.Context, filter InvoiceFilter) ([]InvoiceResponse, int64, error)
	// DeleteInvoice removes the invoice and its payment ledger. confirmed
	// must be true when payments exist; otherwise the call is rejected
	// with a count of what would be lost.
	DeleteInvoice(ctx context.Context, id string, confirmed bool, userID uuid.UUID) error
}

type invoiceService struct {
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	itemRepo     repository.ItemRepository
	userRepo     repository.UserRepository
	txManager    repository.TransactionManager
	audit        AuditService
	notifier     Notifier
	homeState    string // Seller jurisdiction fallback when the profile has none
}

func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	itemRepo repository.ItemRepository,
	userRepo repository.UserRepository,
	txManager repository.TransactionManager,
	audit AuditService,
	notifier Notifier,
	homeState string,
) InvoiceService {
	return &invoiceService{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		itemRepo:     itemRepo,
		userRepo:     userRepo,
		txManager:    txManager,
		audit:        audit,
		notifier:     notifier,
		homeState:    homeState,
	}
}

// --- Implementation ---

func (s *invoiceService) CreateInvoice(ctx context.Context, req CreateInvoiceRequest, userID uuid.UUID) (InvoiceResponse, error) {
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("invalid customer_id: %w", err)
	}

	invoiceDate, err := time.Parse("2006-01-02", req.InvoiceDate)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("invalid invoice_date: %w", err)
	}

	dueDate := invoiceDate.AddDate(0, 0, 30)
	if req.DueDate != "" {
		dueDate, err = time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			return InvoiceResponse{}, fmt.Errorf("invalid due_date: %w", err)
		}
	}
	if dueDate.Before(invoiceDate) {
		return InvoiceResponse{}, fmt.Errorf("due_date cannot precede invoice_date")
	}

	discount := decimal.Zero
	if req.Discount != "" {
		discount, err = decimal.NewFromString(req.Discount)
		if err != nil {
			return InvoiceResponse{}, fmt.Errorf("invalid discount: %w", err)
		}
	}

	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("customer not found: %w", err)
	}
	if !customer.IsActive {
		return InvoiceResponse{}, fmt.Errorf("customer %s is inactive", customer.Name)
	}

	interState := billing.ResolveInterState(s.sellerState(ctx, userID), customer.State)

	var invoice *model.Invoice
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		lines, computations, buildErr := s.buildLines(txCtx, req.InvoiceType, req.Items, interState)
		if buildErr != nil {
			return buildErr
		}

		totals, totalErr := billing.Totalize(computations, discount, interState)
		if totalErr != nil {
			return totalErr
		}

		number, numErr := s.generateInvoiceNumber(txCtx, req.InvoiceType, invoiceDate)
		if numErr != nil {
			return fmt.Errorf("failed to generate invoice number: %w", numErr)
		}

		invoice = &model.Invoice{
			InvoiceNumber: number,
			InvoiceType:   req.InvoiceType,
			CustomerID:    customerID,
			InvoiceDate:   invoiceDate,
			DueDate:       dueDate,
			IsInterState:  interState,
			Items:         lines,
			Discount:      totals.Discount,
			Subtotal:      totals.Subtotal,
			CGSTTotal:     totals.CGST,
			SGSTTotal:     totals.SGST,
			IGSTTotal:     totals.IGST,
			GrandTotal:    totals.GrandTotal,
			AmountInWords: billing.AmountInWords(totals.GrandTotal),
			PaymentStatus: string(billing.StatusUnpaid),
			AmountPaid:    decimal.Zero,
			BalanceDue:    totals.GrandTotal,

			EWayBillNumber:   req.EWayBillNumber,
			EWayBillVehicle:  req.EWayBillVehicle,
			EWayBillDistance: req.EWayBillDistance,

			Notes:     req.Notes,
			CreatedBy: userID,
		}

		if createErr := s.invoiceRepo.Create(txCtx, invoice); createErr != nil {
			return fmt.Errorf("failed to create invoice: %w", createErr)
		}

		return s.applyStock(txCtx, req.InvoiceType, lines, false)
	})
	if err != nil {
		return InvoiceResponse{}, err
	}

	s.audit.Record(ctx, &userID, model.ActionCreateInvoice, invoice.InvoiceNumber, customer.Name, map[string]string{
		"grand_total": invoice.GrandTotal.StringFixed(2),
		"type":        invoice.InvoiceType,
	})
	s.notifier.Notify("invoice.created", map[string]string{
		"id":             invoice.ID.String(),
		"invoice_number": invoice.InvoiceNumber,
	})

	reloaded, err := s.invoiceRepo.FindByID(ctx, invoice.ID)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("failed to reload invoice: %w", err)
	}
	return toInvoiceResponse(reloaded, time.Now()), nil
}

func (s *invoiceService) UpdateInvoice(ctx context.Context, id string, req UpdateInvoiceRequest, userID uuid.UUID) (InvoiceResponse, error) {
	invoiceID, err := uuid.Parse(id)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("invalid invoice id: %w", err)
	}

	var invoice *model.Invoice
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var findErr error
		invoice, findErr = s.invoiceRepo.FindByIDForUpdate(txCtx, invoiceID)
		if findErr != nil {
			return fmt.Errorf("invoice not found: %w", findErr)
		}

		if req.InvoiceDate != nil {
			parsed, parseErr := time.Parse("2006-01-02", *req.InvoiceDate)
			if parseErr != nil {
				return fmt.Errorf("invalid invoice_date: %w", parseErr)
			}
			invoice.InvoiceDate = parsed
		}
		if req.DueDate != nil {
			parsed, parseErr := time.Parse("2006-01-02", *req.DueDate)
			if parseErr != nil {
				return fmt.Errorf("invalid due_date: %w", parseErr)
			}
			invoice.DueDate = parsed
		}
		if invoice.DueDate.Before(invoice.InvoiceDate) {
			return fmt.Errorf("due_date cannot precede invoice_date")
		}
		if req.Notes != nil {
			invoice.Notes = *req.Notes
		}
		if req.EWayBillNumber != nil {
			invoice.EWayBillNumber = *req.EWayBillNumber
		}
		if req.EWayBillVehicle != nil {
			invoice.EWayBillVehicle = *req.EWayBillVehicle
		}
		if req.EWayBillDistance != nil {
			invoice.EWayBillDistance = *req.EWayBillDistance
		}

		discount := invoice.Discount
		if req.Discount != nil {
			discount, err = decimal.NewFromString(*req.Discount)
			if err != nil {
				return fmt.Errorf("invalid discount: %w", err)
			}
		}

		linesChanged := req.Items != nil
		if linesChanged || req.Discount != nil {
			newLines := invoice.Items
			if linesChanged {
				// Reverse the stock movement of the old lines before the
				// new ones are applied.
				if stockErr := s.applyStock(txCtx, invoice.InvoiceType, invoice.Items, true); stockErr != nil {
					return stockErr
				}

				var computations []billing.LineComputation
				var buildErr error
				newLines, computations, buildErr = s.buildLines(txCtx, invoice.InvoiceType, req.Items, invoice.IsInterState)
				if buildErr != nil {
					return buildErr
				}

				totals, totalErr := billing.Totalize(computations, discount, invoice.IsInterState)
				if totalErr != nil {
					return totalErr
				}
				if retotalErr := s.applyTotals(invoice, totals); retotalErr != nil {
					return retotalErr
				}

				if stockErr := s.applyStock(txCtx, invoice.InvoiceType, newLines, false); stockErr != nil {
					return stockErr
				}
				for i := range newLines {
					newLines[i].InvoiceID = invoice.ID
				}
				if replaceErr := s.invoiceRepo.ReplaceItems(txCtx, invoice.ID, newLines); replaceErr != nil {
					return fmt.Errorf("failed to replace invoice lines: %w", replaceErr)
				}
				invoice.Items = newLines
			} else {
				// Discount-only change: recompute from the stored line
				// snapshots without touching stock.
				computations, rebuildErr := rebuildComputations(invoice.Items, invoice.IsInterState)
				if rebuildErr != nil {
					return rebuildErr
				}
				totals, totalErr := billing.Totalize(computations, discount, invoice.IsInterState)
				if totalErr != nil {
					return totalErr
				}
				if retotalErr := s.applyTotals(invoice, totals); retotalErr != nil {
					return retotalErr
				}
			}
		}

		if updateErr := s.invoiceRepo.Update(txCtx, invoice); updateErr != nil {
			return fmt.Errorf("failed to update invoice: %w", updateErr)
		}
		return nil
	})
	if err != nil {
		return InvoiceResponse{}, err
	}

	s.audit.Record(ctx, &userID, model.ActionUpdateInvoice, invoice.InvoiceNumber, "", map[string]string{
		"grand_total": invoice.GrandTotal.StringFixed(2),
	})
	s.notifier.Notify("invoice.updated", map[string]string{
		"id":             invoice.ID.String(),
		"invoice_number": invoice.InvoiceNumber,
	})

	reloaded, err := s.invoiceRepo.FindByID(ctx, invoice.ID)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("failed to reload invoice: %w", err)
	}
	return toInvoiceResponse(reloaded, time.Now()), nil
}

func (s *invoiceService) GetInvoiceByID(ctx context.Context, id string) (InvoiceResponse, error) {
	invoiceID, err := uuid.Parse(id)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("invalid invoice id: %w", err)
	}

	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("invoice not found: %w", err)
	}

	return toInvoiceResponse(invoice, time.Now()), nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, filter InvoiceFilter) ([]InvoiceResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	now := time.Now()

	repoFilter := repository.InvoiceListFilter{
		Type:   filter.Type,
		Search: filter.Search,
	}

	// Overdue is derived, never stored: the filter translates to a SQL
	// predicate on the stored statuses and the due date, so the count
	// and the page rows agree.
	if filter.Status == string(billing.StatusOverdue) {
		repoFilter.OverdueAsOf = &now
	} else {
		repoFilter.Status = filter.Status
	}

	if filter.CustomerID != "" {
		customerID, err := uuid.Parse(filter.CustomerID)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid customer_id: %w", err)
		}
		repoFilter.CustomerID = &customerID
	}
	if filter.FromDate != "" {
		from, err := time.Parse("2006-01-02", filter.FromDate)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid from_date: %w", err)
		}
		repoFilter.FromDate = &from
	}
	if filter.ToDate != "" {
		to, err := time.Parse("2006-01-02", filter.ToDate)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid to_date: %w", err)
		}
		repoFilter.ToDate = &to
	}

	invoices, total, err := s.invoiceRepo.List(ctx, repoFilter, filter.Page, filter.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch invoices: %w", err)
	}

	result := make([]InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		result = append(result, toInvoiceResponse(&invoices[i], now))
	}
	return result, total, nil
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, id string, confirmed bool, userID uuid.UUID) error {
	invoiceID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid invoice id: %w", err)
	}

	var number string
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		invoice, findErr := s.invoiceRepo.FindByIDForUpdate(txCtx, invoiceID)
		if findErr != nil {
			return fmt.Errorf("invoice not found: %w", findErr)
		}
		number = invoice.InvoiceNumber

		if len(invoice.Payments) > 0 && !confirmed {
			return fmt.Errorf("invoice %s has %d recorded payment(s); deleting it erases them — retry with confirm=true",
				invoice.InvoiceNumber, len(invoice.Payments))
		}

		if stockErr := s.applyStock(txCtx, invoice.InvoiceType, invoice.Items, true); stockErr != nil {
			return stockErr
		}

		if delErr := s.invoiceRepo.Delete(txCtx, invoiceID); delErr != nil {
			return fmt.Errorf("failed to delete invoice: %w", delErr)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.audit.Record(ctx, &userID, model.ActionDeleteInvoice, number, "", nil)
	s.notifier.Notify("invoice.deleted", map[string]string{"invoice_number": number})

	return nil
}

// --- Helpers ---

func (s *invoiceService) sellerState(ctx context.Context, userID uuid.UUID) string {
	if user, err := s.userRepo.FindByID(ctx, userID); err == nil && user.BusinessState != "" {
		return user.BusinessState
	}
	return s.homeState
}

// buildLines snapshots the catalog onto invoice lines and runs the
// per-line computation. The returned computations are unrounded; the
// line models carry the rounded caches.
func (s *invoiceService) buildLines(ctx context.Context, invoiceType string, reqs []InvoiceLineRequest, interState bool) ([]model.InvoiceItem, []billing.LineComputation, error) {
	lines := make([]model.InvoiceItem, 0, len(reqs))
	computations := make([]billing.LineComputation, 0, len(reqs))

	for i, lineReq := range reqs {
		itemID, err := uuid.Parse(lineReq.ItemID)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: invalid item_id: %w", i+1, err)
		}

		item, err := s.itemRepo.FindByID(ctx, itemID)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: item not found: %w", i+1, err)
		}
		if !item.IsActive {
			return nil, nil, fmt.Errorf("line %d: item %s is inactive", i+1, item.Name)
		}

		quantity, err := decimal.NewFromString(lineReq.Quantity)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: invalid quantity: %w", i+1, err)
		}

		unitRate := item.SellingPrice
		if invoiceType == model.InvoiceTypePurchase {
			unitRate = item.PurchasePrice
		}
		if lineReq.UnitRate != "" {
			unitRate, err = decimal.NewFromString(lineReq.UnitRate)
			if err != nil {
				return nil, nil, fmt.Errorf("line %d: invalid unit_rate: %w", i+1, err)
			}
		}

		taxRate := item.GSTRate
		if lineReq.TaxRate != "" {
			taxRate, err = decimal.NewFromString(lineReq.TaxRate)
			if err != nil {
				return nil, nil, fmt.Errorf("line %d: invalid tax_rate: %w", i+1, err)
			}
		}

		computation, err := billing.ComputeLine(quantity, unitRate, taxRate, interState)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", i+1, err)
		}

		description := lineReq.Description
		if description == "" {
			description = item.Name
		}

		rounded := computation.Rounded()
		lines = append(lines, model.InvoiceItem{
			ItemID:        item.ID,
			Description:   description,
			HSNCode:       item.HSNCode,
			Unit:          item.Unit,
			Quantity:      quantity,
			UnitRate:      unitRate,
			TaxRate:       taxRate,
			TaxableAmount: rounded.TaxableAmount,
			CGST:          rounded.CGST,
			SGST:          rounded.SGST,
			IGST:          rounded.IGST,
			LineTotal:     rounded.LineTotal,
			SortOrder:     i,
		})
		computations = append(computations, computation)
	}

	return lines, computations, nil
}

// rebuildComputations re-derives exact line computations from stored
// snapshots (quantity, unit rate, tax rate), never from the cached
// rounded columns.
func rebuildComputations(lines []model.InvoiceItem, interState bool) ([]billing.LineComputation, error) {
	computations := make([]billing.LineComputation, 0, len(lines))
	for i := range lines {
		computation, err := billing.ComputeLine(lines[i].Quantity, lines[i].UnitRate, lines[i].TaxRate, interState)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		computations = append(computations, computation)
	}
	return computations, nil
}

// applyTotals writes new totals onto the invoice after checking them
// against the ledger, and recomputes the derived payment state.
func (s *invoiceService) applyTotals(invoice *model.Invoice, totals billing.InvoiceTotals) error {
	if err := billing.CheckRetotal(totals.GrandTotal, invoice.AmountPaid); err != nil {
		return err
	}

	invoice.Discount = totals.Discount
	invoice.Subtotal = totals.Subtotal
	invoice.CGSTTotal = totals.CGST
	invoice.SGSTTotal = totals.SGST
	invoice.IGSTTotal = totals.IGST
	invoice.GrandTotal = totals.GrandTotal
	invoice.AmountInWords = billing.AmountInWords(totals.GrandTotal)
	invoice.BalanceDue = totals.GrandTotal.Sub(invoice.AmountPaid)
	invoice.PaymentStatus = string(billing.DeriveStatus(totals.GrandTotal, invoice.AmountPaid))
	return nil
}

// applyStock moves inventory for the invoice lines: sales consume stock,
// purchases replenish it. reverse undoes a previous application.
func (s *invoiceService) applyStock(ctx context.Context, invoiceType string, lines []model.InvoiceItem, reverse bool) error {
	for i := range lines {
		delta := lines[i].Quantity
		if invoiceType == model.InvoiceTypeSale {
			delta = delta.Neg()
		}
		if reverse {
			delta = delta.Neg()
		}

		item, err := s.itemRepo.FindByIDForUpdate(ctx, lines[i].ItemID)
		if err != nil {
			return fmt.Errorf("failed to lock item for stock update: %w", err)
		}

		// Stock may legitimately go negative on backdated sales; the low
		// stock report surfaces it rather than blocking the invoice.
		newQuantity := item.StockQuantity.Add(delta)
		if err := s.itemRepo.UpdateStock(ctx, lines[i].ItemID, newQuantity); err != nil {
			return fmt.Errorf("failed to update stock: %w", err)
		}
	}
	return nil
}

func (s *invoiceService) generateInvoiceNumber(ctx context.Context, invoiceType string, invoiceDate time.Time) (string, error) {
	prefix := "INV-" + invoiceDate.Format("20060102") + "-"
	if invoiceType == model.InvoiceTypePurchase {
		prefix = "PUR-" + invoiceDate.Format("20060102") + "-"
	}

	count, err := s.invoiceRepo.CountByPrefix(ctx, prefix)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s%05d", prefix, count+1), nil
}

// --- Mapping ---

func toInvoiceResponse(inv *model.Invoice, now time.Time) InvoiceResponse {
	taxTotal := inv.CGSTTotal.Add(inv.SGSTTotal).Add(inv.IGSTTotal)

	displayStatus := billing.DisplayStatus(billing.PaymentStatus(inv.PaymentStatus), inv.DueDate, now)

	resp := InvoiceResponse{
		ID:            inv.ID.String(),
		InvoiceNumber: inv.InvoiceNumber,
		InvoiceType:   inv.InvoiceType,
		CustomerID:    inv.CustomerID.String(),
		InvoiceDate:   inv.InvoiceDate.Format("2006-01-02"),
		DueDate:       inv.DueDate.Format("2006-01-02"),
		IsInterState:  inv.IsInterState,
		Discount:      inv.Discount.StringFixed(2),
		Subtotal:      inv.Subtotal.StringFixed(2),
		CGSTTotal:     inv.CGSTTotal.StringFixed(2),
		SGSTTotal:     inv.SGSTTotal.StringFixed(2),
		IGSTTotal:     inv.IGSTTotal.StringFixed(2),
		TaxTotal:      taxTotal.StringFixed(2),
		GrandTotal:    inv.GrandTotal.StringFixed(2),
		AmountInWords: inv.AmountInWords,
		PaymentStatus: string(displayStatus),
		AmountPaid:    inv.AmountPaid.StringFixed(2),
		BalanceDue:    inv.BalanceDue.StringFixed(2),

		EWayBillNumber:   inv.EWayBillNumber,
		EWayBillVehicle:  inv.EWayBillVehicle,
		EWayBillDistance: inv.EWayBillDistance,

		Notes:     inv.Notes,
		CreatedAt: inv.CreatedAt.Format(time.RFC3339),
	}

	if inv.Customer != nil {
		resp.CustomerName = inv.Customer.Name
	}

	for i := range inv.Items {
		line := &inv.Items[i]
		resp.Items = append(resp.Items, InvoiceLineResponse{
			ID:            line.ID.String(),
			ItemID:        line.ItemID.String(),
			Description:   line.Description,
			HSNCode:       line.HSNCode,
			Unit:          line.Unit,
			Quantity:      line.Quantity.String(),
			UnitRate:      line.UnitRate.StringFixed(2),
			TaxRate:       line.TaxRate.StringFixed(2),
			TaxableAmount: line.TaxableAmount.StringFixed(2),
			CGST:          line.CGST.StringFixed(2),
			SGST:          line.SGST.StringFixed(2),
			IGST:          line.IGST.StringFixed(2),
			LineTotal:     line.LineTotal.StringFixed(2),
		})
	}

	for i := range inv.Payments {
		event := &inv.Payments[i]
		resp.Payments = append(resp.Payments, PaymentEventResponse{
			ID:        event.ID.String(),
			Amount:    event.Amount.StringFixed(2),
			Method:    event.Method,
			PaidOn:    event.PaidOn.Format("2006-01-02"),
			Reference: event.Reference,
			CreatedAt: event.CreatedAt.Format(time.RFC3339),
		})
	}

	return resp
}
