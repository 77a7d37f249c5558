package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/4ugusta/chaibooks-backend/internal/billing"
	"github.com/4ugusta/chaibooks-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInvoiceService(repo *fakeInvoiceRepo) service.InvoiceService {
	return service.NewInvoiceService(repo, nil, nil, nil, fakeTxManager{}, fakeAudit{}, service.NopNotifier(), "Maharashtra")
}

func TestListInvoices_OverdueFilterIsAQueryPredicate(t *testing.T) {
	repo := &fakeInvoiceRepo{invoice: newTestInvoice("750.00")}
	repo.invoice.InvoiceDate = time.Now().AddDate(0, -2, 0)
	repo.invoice.DueDate = time.Now().AddDate(0, -1, 0)
	svc := newInvoiceService(repo)

	invoices, total, err := svc.ListInvoices(context.Background(), service.InvoiceFilter{
		Status: string(billing.StatusOverdue),
	})
	require.NoError(t, err)

	// Overdue is never a stored status: the repository receives a due-date
	// predicate instead, and the count matches the rows it returns.
	assert.Empty(t, repo.lastListFilter.Status)
	require.NotNil(t, repo.lastListFilter.OverdueAsOf)
	assert.WithinDuration(t, time.Now(), *repo.lastListFilter.OverdueAsOf, time.Minute)

	assert.EqualValues(t, 1, total)
	require.Len(t, invoices, 1)
	assert.Equal(t, string(billing.StatusOverdue), invoices[0].PaymentStatus)
}

func TestListInvoices_StoredStatusPassedThrough(t *testing.T) {
	repo := &fakeInvoiceRepo{invoice: newTestInvoice("750.00")}
	svc := newInvoiceService(repo)

	_, _, err := svc.ListInvoices(context.Background(), service.InvoiceFilter{
		Status: string(billing.StatusPartial),
	})
	require.NoError(t, err)

	assert.Equal(t, string(billing.StatusPartial), repo.lastListFilter.Status)
	assert.Nil(t, repo.lastListFilter.OverdueAsOf)
}
