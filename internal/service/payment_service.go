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

type RecordPaymentRequest struct {
	Amount    string `json:"amount" binding:"required"`
	Method    string `json:"method" binding:"required,oneof=cash upi bank_transfer cheque card"`
	PaidOn    string `json:"paid_on"` // YYYY-MM-DD, defaults to today
	Reference string `json:"reference"`
}

// --- Interface ---

// PaymentService mutates an invoice's payment ledger. Every mutation
// locks the invoice row, replays the full ledger through the billing
// engine, and persists the recomputed derived fields in one transaction.
type PaymentService interface {
	RecordPayment(ctx context.Context, invoiceID string, req RecordPaymentRequest, userID uuid.UUID) (InvoiceResponse, error)
	DeletePayment(ctx context.Context, invoiceID, paymentID string, userID uuid.UUID) (InvoiceResponse, error)
}

type paymentService struct {
	invoiceRepo repository.InvoiceRepository
	txManager   repository.TransactionManager
	audit       AuditService
	notifier    Notifier
}

func NewPaymentService(
	invoiceRepo repository.InvoiceRepository,
	txManager repository.TransactionManager,
	audit AuditService,
	notifier Notifier,
) PaymentService {
	return &paymentService{
		invoiceRepo: invoiceRepo,
		txManager:   txManager,
		audit:       audit,
		notifier:    notifier,
	}
}

// --- Implementation ---

func (s *paymentService) RecordPayment(ctx context.Context, invoiceID string, req RecordPaymentRequest, userID uuid.UUID) (InvoiceResponse, error) {
	id, err := uuid.Parse(invoiceID)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("invalid invoice id: %w", err)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("invalid amount: %w", err)
	}

	paidOn := time.Now()
	if req.PaidOn != "" {
		paidOn, err = time.Parse("2006-01-02", req.PaidOn)
		if err != nil {
			return InvoiceResponse{}, fmt.Errorf("invalid paid_on: %w", err)
		}
	}

	var invoice *model.Invoice
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var findErr error
		invoice, findErr = s.invoiceRepo.FindByIDForUpdate(txCtx, id)
		if findErr != nil {
			return fmt.Errorf("invoice not found: %w", findErr)
		}

		event := model.PaymentEvent{
			InvoiceID: invoice.ID,
			Amount:    amount,
			Method:    req.Method,
			PaidOn:    paidOn,
			Reference: req.Reference,
		}

		// The candidate payment has no identity yet; the database assigns
		// it on insert, so only the persisted ledger ever carries IDs.
		ledger := toLedgerPayments(invoice.Payments)
		_, state, applyErr := billing.ApplyPayment(invoice.GrandTotal, ledger, billing.Payment{
			Amount: amount,
			Method: req.Method,
			Date:   paidOn,
		})
		if applyErr != nil {
			return applyErr
		}

		if createErr := s.invoiceRepo.CreatePayment(txCtx, &event); createErr != nil {
			return fmt.Errorf("failed to record payment: %w", createErr)
		}

		applyLedgerState(invoice, state)
		if updateErr := s.invoiceRepo.Update(txCtx, invoice); updateErr != nil {
			return fmt.Errorf("failed to update invoice ledger: %w", updateErr)
		}
		return nil
	})
	if err != nil {
		return InvoiceResponse{}, err
	}

	s.audit.Record(ctx, &userID, model.ActionRecordPayment, invoice.InvoiceNumber, "", map[string]string{
		"amount": amount.StringFixed(2),
		"method": req.Method,
	})
	s.notifier.Notify("payment.recorded", map[string]string{
		"invoice_number": invoice.InvoiceNumber,
		"amount":         amount.StringFixed(2),
		"status":         invoice.PaymentStatus,
	})

	reloaded, err := s.invoiceRepo.FindByID(ctx, invoice.ID)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("failed to reload invoice: %w", err)
	}
	return toInvoiceResponse(reloaded, time.Now()), nil
}

func (s *paymentService) DeletePayment(ctx context.Context, invoiceID, paymentID string, userID uuid.UUID) (InvoiceResponse, error) {
	id, err := uuid.Parse(invoiceID)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("invalid invoice id: %w", err)
	}
	pid, err := uuid.Parse(paymentID)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("invalid payment id: %w", err)
	}

	var invoice *model.Invoice
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var findErr error
		invoice, findErr = s.invoiceRepo.FindByIDForUpdate(txCtx, id)
		if findErr != nil {
			return fmt.Errorf("invoice not found: %w", findErr)
		}

		ledger := toLedgerPayments(invoice.Payments)
		_, state, removeErr := billing.RemovePayment(invoice.GrandTotal, ledger, pid)
		if removeErr != nil {
			return removeErr
		}

		if delErr := s.invoiceRepo.DeletePayment(txCtx, pid); delErr != nil {
			return fmt.Errorf("failed to delete payment: %w", delErr)
		}

		applyLedgerState(invoice, state)
		if updateErr := s.invoiceRepo.Update(txCtx, invoice); updateErr != nil {
			return fmt.Errorf("failed to update invoice ledger: %w", updateErr)
		}
		return nil
	})
	if err != nil {
		return InvoiceResponse{}, err
	}

	s.audit.Record(ctx, &userID, model.ActionDeletePayment, invoice.InvoiceNumber, "", map[string]string{
		"payment_id": paymentID,
	})
	s.notifier.Notify("payment.deleted", map[string]string{
		"invoice_number": invoice.InvoiceNumber,
		"status":         invoice.PaymentStatus,
	})

	reloaded, err := s.invoiceRepo.FindByID(ctx, invoice.ID)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("failed to reload invoice: %w", err)
	}
	return toInvoiceResponse(reloaded, time.Now()), nil
}

// --- Helpers ---

func toLedgerPayments(events []model.PaymentEvent) []billing.Payment {
	payments := make([]billing.Payment, 0, len(events))
	for i := range events {
		payments = append(payments, billing.Payment{
			ID:        events[i].ID,
			Amount:    events[i].Amount,
			Method:    events[i].Method,
			Date:      events[i].PaidOn,
			Reference: events[i].Reference,
		})
	}
	return payments
}

func applyLedgerState(invoice *model.Invoice, state billing.LedgerState) {
	invoice.AmountPaid = state.AmountPaid
	invoice.BalanceDue = state.BalanceDue
	invoice.PaymentStatus = string(state.Status)
}
