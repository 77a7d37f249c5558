package repository

import (
	"context"
	"time"

	"github.com/4ugusta/chaibooks-backend/internal/billing"
	"github.com/4ugusta/chaibooks-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InvoiceListFilter narrows List results. Zero values mean "no filter".
// OverdueAsOf selects unpaid/partial invoices whose due date has passed;
// it filters in SQL so pagination counts stay consistent with the rows.
type InvoiceListFilter struct {
	Type        string
	Status      string
	CustomerID  *uuid.UUID
	Search      string
	FromDate    *time.Time
	ToDate      *time.Time
	OverdueAsOf *time.Time
}

type InvoiceRepository interface {
	Create(ctx context.Context, invoice *model.Invoice) error
	Update(ctx context.Context, invoice *model.Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Invoice, error)
	List(ctx context.Context, filter InvoiceListFilter, page, limit int) ([]model.Invoice, int64, error)
	CountByPrefix(ctx context.Context, prefix string) (int64, error)
	ReplaceItems(ctx context.Context, invoiceID uuid.UUID, items []model.InvoiceItem) error
	CreatePayment(ctx context.Context, payment *model.PaymentEvent) error
	DeletePayment(ctx context.Context, paymentID uuid.UUID) error
	FindPaymentsByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]model.PaymentEvent, error)
}

type invoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *model.Invoice) error {
	return GetDB(ctx, r.db).Create(invoice).Error
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *model.Invoice) error {
	return GetDB(ctx, r.db).Omit("Items", "Payments", "Customer").Save(invoice).Error
}

// Delete removes the invoice together with its line items and payment events.
// Callers must obtain explicit confirmation before invoking this.
func (r *invoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)
	if err := db.Where("invoice_id = ?", id).Delete(&model.InvoiceItem{}).Error; err != nil {
		return err
	}
	if err := db.Where("invoice_id = ?", id).Delete(&model.PaymentEvent{}).Error; err != nil {
		return err
	}
	return db.Where("id = ?", id).Delete(&model.Invoice{}).Error
}

func (r *invoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	var invoice model.Invoice
	if err := GetDB(ctx, r.db).
		Preload("Customer").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&invoice, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

// FindByIDForUpdate locks the invoice row for the duration of the enclosing
// transaction. Relations are loaded after the lock is held so the ledger seen
// by the caller cannot change underneath it.
func (r *invoiceRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	db := GetDB(ctx, r.db)

	var invoice model.Invoice
	if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&invoice).Error; err != nil {
		return nil, err
	}

	if err := db.Where("invoice_id = ?", id).Order("sort_order ASC").Find(&invoice.Items).Error; err != nil {
		return nil, err
	}
	if err := db.Where("invoice_id = ?", id).Order("created_at ASC").Find(&invoice.Payments).Error; err != nil {
		return nil, err
	}

	return &invoice, nil
}

func (r *invoiceRepository) List(ctx context.Context, filter InvoiceListFilter, page, limit int) ([]model.Invoice, int64, error) {
	var invoices []model.Invoice
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Invoice{})
	if filter.Type != "" {
		query = query.Where("invoice_type = ?", filter.Type)
	}
	if filter.Status != "" {
		query = query.Where("payment_status = ?", filter.Status)
	}
	if filter.OverdueAsOf != nil {
		query = query.Where("payment_status IN ? AND due_date < ?",
			[]string{string(billing.StatusUnpaid), string(billing.StatusPartial)}, *filter.OverdueAsOf)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.Search != "" {
		query = query.Where("invoice_number ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.FromDate != nil {
		query = query.Where("invoice_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("invoice_date <= ?", *filter.ToDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Preload("Customer").
		Order("invoice_date DESC, created_at DESC").
		Offset(offset).Limit(limit).Find(&invoices).Error; err != nil {
		return nil, 0, err
	}

	return invoices, total, nil
}

func (r *invoiceRepository) CountByPrefix(ctx context.Context, prefix string) (int64, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(&model.Invoice{}).
		Where("invoice_number LIKE ?", prefix+"%").Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *invoiceRepository) ReplaceItems(ctx context.Context, invoiceID uuid.UUID, items []model.InvoiceItem) error {
	db := GetDB(ctx, r.db)
	if err := db.Where("invoice_id = ?", invoiceID).Delete(&model.InvoiceItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return db.Create(&items).Error
}

func (r *invoiceRepository) CreatePayment(ctx context.Context, payment *model.PaymentEvent) error {
	return GetDB(ctx, r.db).Create(payment).Error
}

func (r *invoiceRepository) DeletePayment(ctx context.Context, paymentID uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", paymentID).Delete(&model.PaymentEvent{}).Error
}

func (r *invoiceRepository) FindPaymentsByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]model.PaymentEvent, error) {
	var payments []model.PaymentEvent
	if err := GetDB(ctx, r.db).Where("invoice_id = ?", invoiceID).
		Order("created_at ASC").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}
