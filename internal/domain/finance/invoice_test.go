package finance

import (
	"testing"

	"github.com/erp/saleflow/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInvoice(t *testing.T) *Invoice {
	invoice, err := NewInvoice(uuid.New(), uuid.New(), "SO-2026-00001", uuid.New(), "Customer", "EUR", uuid.New())
	require.NoError(t, err)
	return invoice
}

func addTestLine(t *testing.T, invoice *Invoice, qty, price int64, taxes ...Tax) {
	result := ComputeAll(taxes, decimal.NewFromInt(price), eur, decimal.NewFromInt(qty))
	require.NoError(t, invoice.AddLine(nil, uuid.New(), "Line", decimal.NewFromInt(qty), decimal.NewFromInt(price), nil, result))
}

func TestNewInvoice(t *testing.T) {
	_, err := NewInvoice(uuid.New(), uuid.Nil, "SO", uuid.New(), "C", "EUR", uuid.New())
	assert.True(t, shared.IsDomainError(err, "INVALID_ORDER"))

	_, err = NewInvoice(uuid.New(), uuid.New(), "SO", uuid.New(), "C", "EUR", uuid.Nil)
	assert.True(t, shared.IsDomainError(err, "INVALID_JOURNAL"))

	invoice := newTestInvoice(t)
	assert.Equal(t, InvoiceStatusDraft, invoice.Status)
	assert.True(t, invoice.IsEmpty())
}

func TestInvoice_AddLine(t *testing.T) {
	invoice := newTestInvoice(t)
	vat := newTestTax(t, "VAT 21%", TaxAmountPercent, 21, false)

	addTestLine(t, invoice, 2, 50, vat)
	addTestLine(t, invoice, -1, 30)

	assert.Equal(t, "70", invoice.AmountUntaxed.String())
	assert.Equal(t, "21", invoice.AmountTax.String())
	assert.Equal(t, "91", invoice.AmountTotal.String())
	assert.Equal(t, 20, invoice.Lines[1].Sequence)

	err := invoice.AddLine(nil, uuid.New(), "Zero", decimal.Zero, decimal.NewFromInt(1), nil, TaxResult{})
	assert.True(t, shared.IsDomainError(err, "INVALID_QUANTITY"))
}

func TestInvoice_Open(t *testing.T) {
	t.Run("rejects empty invoice", func(t *testing.T) {
		invoice := newTestInvoice(t)
		err := invoice.Open("INV/2026/0001")
		assert.True(t, shared.IsDomainError(err, "EMPTY_INVOICE"))
	})

	t.Run("rejects negative total", func(t *testing.T) {
		invoice := newTestInvoice(t)
		addTestLine(t, invoice, 1, 10)
		addTestLine(t, invoice, -1, 30)

		err := invoice.Open("INV/2026/0001")
		assert.True(t, shared.IsDomainError(err, "INVALID_AMOUNT"))
		assert.Equal(t, InvoiceStatusDraft, invoice.Status)
	})

	t.Run("opens and numbers the invoice", func(t *testing.T) {
		invoice := newTestInvoice(t)
		addTestLine(t, invoice, 1, 10)

		require.NoError(t, invoice.Open("INV/2026/0001"))
		assert.Equal(t, InvoiceStatusOpen, invoice.Status)
		assert.Equal(t, "INV/2026/0001", invoice.Number)
		assert.NotNil(t, invoice.OpenedAt)
		require.Len(t, invoice.GetDomainEvents(), 1)
		assert.Equal(t, EventTypeInvoiceOpened, invoice.GetDomainEvents()[0].EventType())

		err := invoice.Open("INV/2026/0002")
		assert.True(t, shared.IsDomainError(err, "INVALID_STATE"))

		err = invoice.AddLine(nil, uuid.New(), "Late", decimal.NewFromInt(1), decimal.NewFromInt(1), nil, TaxResult{})
		assert.True(t, shared.IsDomainError(err, "INVALID_STATE"))
	})
}

func TestInvoice_MarkPaid(t *testing.T) {
	invoice := newTestInvoice(t)
	addTestLine(t, invoice, 1, 10)

	err := invoice.MarkPaid()
	assert.True(t, shared.IsDomainError(err, "INVALID_STATE"))

	journalID := uuid.New()
	invoice.SetPayNowJournal(&journalID)
	require.NoError(t, invoice.Open("INV/2026/0001"))
	require.NoError(t, invoice.MarkPaid())
	assert.Equal(t, InvoiceStatusPaid, invoice.Status)
	assert.NotNil(t, invoice.PaidAt)

	err = invoice.Cancel()
	assert.True(t, shared.IsDomainError(err, "INVALID_STATE"))
}

func TestCurrency_Round(t *testing.T) {
	jpy, err := NewCurrency("JPY", "Yen", "¥", 0)
	require.NoError(t, err)
	assert.Equal(t, "13", jpy.Round(decimal.NewFromFloat(12.5)).String())
	assert.True(t, eur.IsZero(decimal.NewFromFloat(0.004)))

	_, err = NewCurrency("EURO", "Euro", "€", 2)
	assert.True(t, shared.IsDomainError(err, "INVALID_CURRENCY"))
}
