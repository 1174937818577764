package finance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/erp/saleflow/internal/domain/catalog"
	"github.com/erp/saleflow/internal/domain/finance"
	"github.com/erp/saleflow/internal/domain/shared"
	"github.com/erp/saleflow/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoicingService_PrepareInvoice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	product := f.product(t, "DESK", 100, catalog.InvoicePolicyOrder)

	t.Run("default sale journal without type", func(t *testing.T) {
		order := f.confirmedOrder(t, 1, product)

		header, err := f.invoicing.PrepareInvoice(ctx, order)
		require.NoError(t, err)
		assert.Equal(t, f.journal.ID, header.JournalID)
		assert.Nil(t, header.PayNowJournalID)
	})

	t.Run("journal and pay-now journal from the type", func(t *testing.T) {
		journalID, bankID := uuid.New(), uuid.New()
		orderType, err := trade.NewSaleOrderType(f.tenantID, "Counter sale")
		require.NoError(t, err)
		orderType.SetJournal(&journalID)
		require.NoError(t, orderType.SetPaymentAutomation(true, &bankID))
		require.NoError(t, f.typeRepo.Save(ctx, orderType))

		order, err := trade.NewSalesOrder(f.tenantID, "SO-TYPE", uuid.New(), "Customer", "EUR")
		require.NoError(t, err)
		require.NoError(t, order.SetType(&orderType.ID))

		header, err := f.invoicing.PrepareInvoice(ctx, order)
		require.NoError(t, err)
		assert.Equal(t, journalID, header.JournalID)
		require.NotNil(t, header.PayNowJournalID)
		assert.Equal(t, bankID, *header.PayNowJournalID)
	})
}

func TestInvoicingService_PrepareInvoice_NoJournal(t *testing.T) {
	f := newFixture(t)
	order, err := trade.NewSalesOrder(uuid.New(), "SO-OTHER", uuid.New(), "Customer", "EUR")
	require.NoError(t, err)

	_, err = f.invoicing.PrepareInvoice(context.Background(), order)
	assert.True(t, shared.IsDomainError(err, "NO_SALE_JOURNAL"))
}

func TestInvoicingService_CreateInvoices(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	vat := f.tax(t, "VAT 21%", finance.TaxAmountPercent, 21)
	desk := f.product(t, "DESK", 50, catalog.InvoicePolicyOrder, vat.ID)
	chair := f.product(t, "CHAIR", 30, catalog.InvoicePolicyDelivery)
	order := f.confirmedOrder(t, 2, desk, chair)

	invoices, err := f.invoicing.CreateInvoices(ctx, []*trade.SalesOrder{order}, false)
	require.NoError(t, err)
	require.Len(t, invoices, 1)

	invoice := invoices[0]
	require.Len(t, invoice.Lines, 1, "undelivered lines are not invoiced")
	assert.Equal(t, "Product DESK", invoice.Lines[0].Name)
	assert.Equal(t, "100", invoice.AmountUntaxed.String())
	assert.Equal(t, "21", invoice.AmountTax.String())
	assert.Equal(t, "121", invoice.AmountTotal.String())
	assert.Equal(t, f.journal.ID, invoice.JournalID)
	assert.Equal(t, order.OrderNumber, invoice.Origin)
	assert.Contains(t, f.publisher.types(), finance.EventTypeInvoiceCreated)

	reloaded := f.reload(t, order.ID)
	assert.Equal(t, "2", reloaded.Lines[0].QtyInvoiced.String())
	assert.True(t, reloaded.Lines[1].QtyInvoiced.IsZero())
	assert.False(t, reloaded.HasQtyToInvoice())

	stored, err := f.invoiceRepo.FindByOrder(ctx, f.tenantID, order.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)

	again, err := f.invoicing.CreateInvoices(ctx, []*trade.SalesOrder{reloaded}, false)
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestInvoicingService_OpenInvoice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.confirmedOrder(t, 1, f.product(t, "DESK", 100, catalog.InvoicePolicyOrder))

	invoices, err := f.invoicing.CreateInvoices(ctx, []*trade.SalesOrder{order}, false)
	require.NoError(t, err)
	require.Len(t, invoices, 1)

	response, err := f.invoicing.Open(ctx, f.tenantID, invoices[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "open", response.Status)
	assert.Equal(t, fmt.Sprintf("INV/%d/0001", time.Now().Year()), response.Number)
	assert.Contains(t, f.publisher.types(), finance.EventTypeInvoiceOpened)

	_, err = f.invoicing.Open(ctx, f.tenantID, invoices[0].ID)
	assert.True(t, shared.IsDomainError(err, "INVALID_STATE"))
}

func TestInvoicingService_OpenInvoice_PayNow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.confirmedOrder(t, 1, f.product(t, "DESK", 100, catalog.InvoicePolicyOrder))

	invoices, err := f.invoicing.CreateInvoices(ctx, []*trade.SalesOrder{order}, false)
	require.NoError(t, err)
	bankID := uuid.New()
	invoices[0].SetPayNowJournal(&bankID)

	require.NoError(t, f.invoicing.OpenInvoice(ctx, invoices[0]))
	assert.Equal(t, finance.InvoiceStatusPaid, invoices[0].Status)

	stored, err := f.invoiceRepo.FindByIDForTenant(ctx, f.tenantID, invoices[0].ID)
	require.NoError(t, err)
	assert.Equal(t, finance.InvoiceStatusPaid, stored.Status)
	assert.Contains(t, f.publisher.types(), finance.EventTypeInvoicePaid)
}
