package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/4ugusta/chaibooks-backend/internal/billing"
	"github.com/4ugusta/chaibooks-backend/internal/model"
	"github.com/4ugusta/chaibooks-backend/internal/repository"
	"github.com/4ugusta/chaibooks-backend/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeInvoiceRepo keeps a single invoice in memory so the payment flow
// can run without a database.
type fakeInvoiceRepo struct {
	invoice        *model.Invoice
	lastListFilter repository.InvoiceListFilter
}

func (f *fakeInvoiceRepo) Create(ctx context.Context, invoice *model.Invoice) error { return nil }

func (f *fakeInvoiceRepo) Update(ctx context.Context, invoice *model.Invoice) error {
	f.invoice = invoice
	return nil
}

func (f *fakeInvoiceRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakeInvoiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	return f.invoice, nil
}

func (f *fakeInvoiceRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	return f.invoice, nil
}

func (f *fakeInvoiceRepo) List(ctx context.Context, filter repository.InvoiceListFilter, page, limit int) ([]model.Invoice, int64, error) {
	f.lastListFilter = filter
	if f.invoice == nil {
		return nil, 0, nil
	}
	return []model.Invoice{*f.invoice}, 1, nil
}

func (f *fakeInvoiceRepo) CountByPrefix(ctx context.Context, prefix string) (int64, error) {
	return 0, nil
}

func (f *fakeInvoiceRepo) ReplaceItems(ctx context.Context, invoiceID uuid.UUID, items []model.InvoiceItem) error {
	return nil
}

func (f *fakeInvoiceRepo) CreatePayment(ctx context.Context, payment *model.PaymentEvent) error {
	payment.ID = uuid.New()
	f.invoice.Payments = append(f.invoice.Payments, *payment)
	return nil
}

func (f *fakeInvoiceRepo) DeletePayment(ctx context.Context, paymentID uuid.UUID) error {
	remaining := f.invoice.Payments[:0]
	for _, p := range f.invoice.Payments {
		if p.ID != paymentID {
			remaining = append(remaining, p)
		}
	}
	f.invoice.Payments = remaining
	return nil
}

func (f *fakeInvoiceRepo) FindPaymentsByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]model.PaymentEvent, error) {
	return f.invoice.Payments, nil
}

// fakeTxManager runs the callback without a real transaction.
type fakeTxManager struct{}

func (fakeTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

// fakeAudit discards audit entries.
type fakeAudit struct{}

func (fakeAudit) Record(ctx context.Context, userID *uuid.UUID, action, entityID, entityName string, details any) {
}

func (fakeAudit) GetAuditLogs(ctx context.Context, action string, page, limit int) ([]service.AuditLogResponse, int64, error) {
	return nil, 0, nil
}

func newTestInvoice(grandTotal string) *model.Invoice {
	total := decimal.RequireFromString(grandTotal)
	return &model.Invoice{
		ID:            uuid.New(),
		InvoiceNumber: "INV-20260901-00001",
		InvoiceType:   model.InvoiceTypeSale,
		CustomerID:    uuid.New(),
		InvoiceDate:   time.Now(),
		DueDate:       time.Now().AddDate(0, 1, 0), // keep the overdue overlay out of these tests
		GrandTotal:    total,
		AmountPaid:    decimal.Zero,
		BalanceDue:    total,
		PaymentStatus: string(billing.StatusUnpaid),
	}
}

func newPaymentService(repo *fakeInvoiceRepo) service.PaymentService {
	return service.NewPaymentService(repo, fakeTxManager{}, fakeAudit{}, service.NopNotifier())
}

func TestRecordPayment_PartialThenSettled(t *testing.T) {
	repo := &fakeInvoiceRepo{invoice: newTestInvoice("1180.00")}
	svc := newPaymentService(repo)
	userID := uuid.New()

	resp, err := svc.RecordPayment(context.Background(), repo.invoice.ID.String(), service.RecordPaymentRequest{
		Amount: "1000.00",
		Method: model.PaymentMethodUPI,
		PaidOn: "2026-09-01",
	}, userID)
	require.NoError(t, err)
	assert.Equal(t, "1000.00", resp.AmountPaid)
	assert.Equal(t, "180.00", resp.BalanceDue)
	assert.Equal(t, string(billing.StatusPartial), resp.PaymentStatus)

	resp, err = svc.RecordPayment(context.Background(), repo.invoice.ID.String(), service.RecordPaymentRequest{
		Amount: "180.00",
		Method: model.PaymentMethodCash,
	}, userID)
	require.NoError(t, err)
	assert.Equal(t, "1180.00", resp.AmountPaid)
	assert.Equal(t, "0.00", resp.BalanceDue)
	assert.Equal(t, string(billing.StatusPaid), resp.PaymentStatus)
	assert.Len(t, resp.Payments, 2)
	for _, p := range resp.Payments {
		assert.NotEqual(t, uuid.Nil.String(), p.ID, "ledger identity comes from persistence")
	}
}

func TestRecordPayment_OverpaymentRejected(t *testing.T) {
	repo := &fakeInvoiceRepo{invoice: newTestInvoice("1050.00")}
	svc := newPaymentService(repo)

	_, err := svc.RecordPayment(context.Background(), repo.invoice.ID.String(), service.RecordPaymentRequest{
		Amount: "1051.00",
		Method: model.PaymentMethodCash,
	}, uuid.New())
	require.ErrorIs(t, err, billing.ErrOverpayment)

	assert.Empty(t, repo.invoice.Payments, "rejected payment must not be persisted")
	assert.True(t, repo.invoice.AmountPaid.IsZero())
	assert.Equal(t, string(billing.StatusUnpaid), repo.invoice.PaymentStatus)
}

func TestDeletePayment_ReopensBalance(t *testing.T) {
	repo := &fakeInvoiceRepo{invoice: newTestInvoice("500.00")}
	svc := newPaymentService(repo)
	userID := uuid.New()

	resp, err := svc.RecordPayment(context.Background(), repo.invoice.ID.String(), service.RecordPaymentRequest{
		Amount: "500.00",
		Method: model.PaymentMethodCheque,
	}, userID)
	require.NoError(t, err)
	require.Equal(t, string(billing.StatusPaid), resp.PaymentStatus)

	paymentID := resp.Payments[0].ID
	resp, err = svc.DeletePayment(context.Background(), repo.invoice.ID.String(), paymentID, userID)
	require.NoError(t, err)
	assert.Equal(t, "0.00", resp.AmountPaid)
	assert.Equal(t, "500.00", resp.BalanceDue)
	assert.Equal(t, string(billing.StatusUnpaid), resp.PaymentStatus)
	assert.Empty(t, resp.Payments)
}

func TestDeletePayment_UnknownIDFails(t *testing.T) {
	repo := &fakeInvoiceRepo{invoice: newTestInvoice("500.00")}
	svc := newPaymentService(repo)

	_, err := svc.DeletePayment(context.Background(), repo.invoice.ID.String(), uuid.NewString(), uuid.New())
	require.ErrorIs(t, err, billing.ErrPaymentNotFound)
}
