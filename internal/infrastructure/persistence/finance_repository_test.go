package persistence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/erp/saleflow/internal/domain/finance"
	"github.com/erp/saleflow/internal/domain/shared"
	"github.com/erp/saleflow/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormTaxRepository_FindByIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTaxRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	vat, err := finance.NewTax(tenantID, "VAT 21%", finance.TaxAmountPercent, decimal.NewFromInt(21))
	require.NoError(t, err)
	vat.Sequence = 1
	fee, err := finance.NewTax(tenantID, "Eco fee", finance.TaxAmountFixed, decimal.NewFromInt(1))
	require.NoError(t, err)
	fee.Sequence = 2
	group, err := finance.NewTax(tenantID, "VAT + eco", finance.TaxAmountGroup, decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, group.SetChildren([]finance.Tax{*fee, *vat}))

	for _, tax := range []*finance.Tax{vat, fee, group} {
		require.NoError(t, repo.Save(ctx, tax))
	}

	taxes, err := repo.FindByIDs(ctx, tenantID, []uuid.UUID{group.ID, uuid.New(), vat.ID})
	require.NoError(t, err)
	require.Len(t, taxes, 2)
	assert.Equal(t, group.ID, taxes[0].ID)
	assert.Equal(t, vat.ID, taxes[1].ID)
	require.Len(t, taxes[0].Children, 2)
	assert.Equal(t, vat.ID, taxes[0].Children[0].ID)
	assert.Equal(t, fee.ID, taxes[0].Children[1].ID)

	other, err := repo.FindByIDs(ctx, uuid.New(), []uuid.UUID{vat.ID})
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestGormInvoiceRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()
	orderID := uuid.New()

	journal, err := finance.NewJournal(tenantID, "Customer Invoices", "INV", finance.JournalTypeSale)
	require.NoError(t, err)

	number, err := repo.GenerateNumber(ctx, tenantID, journal)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("INV/%d/0001", time.Now().Year()), number)

	invoice, err := finance.NewInvoice(tenantID, orderID, "SO-2026-00001", uuid.New(), "Acme", "EUR", journal.ID)
	require.NoError(t, err)
	currency := finance.Currency{Code: "EUR", DecimalPlaces: 2}
	for _, price := range []int64{40, 10} {
		result := finance.ComputeAll(nil, decimal.NewFromInt(price), currency, decimal.NewFromInt(1))
		require.NoError(t, invoice.AddLine(nil, uuid.New(), "Line", decimal.NewFromInt(1), decimal.NewFromInt(price), nil, result))
	}
	require.NoError(t, invoice.Open(number))
	require.NoError(t, repo.Save(ctx, invoice))

	found, err := repo.FindByIDForTenant(ctx, tenantID, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, finance.InvoiceStatusOpen, found.Status)
	assert.Equal(t, number, found.Number)
	require.Len(t, found.Lines, 2)
	assert.True(t, found.Lines[0].UnitPrice.Equal(decimal.NewFromInt(40)))
	assert.True(t, found.AmountTotal.Equal(decimal.NewFromInt(50)))

	byOrder, err := repo.FindByOrder(ctx, tenantID, orderID)
	require.NoError(t, err)
	assert.Len(t, byOrder, 1)

	next, err := repo.GenerateNumber(ctx, tenantID, journal)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("INV/%d/0002", time.Now().Year()), next)

	_, err = repo.FindByIDForTenant(ctx, uuid.New(), invoice.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormJournalRepository_FindDefault(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormJournalRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	_, err := repo.FindDefault(ctx, tenantID, finance.JournalTypeSale)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	first, err := finance.NewJournal(tenantID, "Customer Invoices", "INV", finance.JournalTypeSale)
	require.NoError(t, err)
	first.CreatedAt = time.Now().Add(-time.Hour)
	second, err := finance.NewJournal(tenantID, "Export Invoices", "EXP", finance.JournalTypeSale)
	require.NoError(t, err)
	bank, err := finance.NewJournal(tenantID, "Bank", "BNK", finance.JournalTypeBank)
	require.NoError(t, err)
	bank.CreatedAt = time.Now().Add(-2 * time.Hour)
	for _, journal := range []*finance.Journal{first, second, bank} {
		require.NoError(t, repo.Save(ctx, journal))
	}

	found, err := repo.FindDefault(ctx, tenantID, finance.JournalTypeSale)
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)

	first.Active = false
	require.NoError(t, repo.Save(ctx, first))
	found, err = repo.FindDefault(ctx, tenantID, finance.JournalTypeSale)
	require.NoError(t, err)
	assert.Equal(t, second.ID, found.ID)
}

func TestGormCurrencyRepository_FindByCode(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCurrencyRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.CurrencyModel{Code: "JPY", Name: "Yen", Symbol: "¥", DecimalPlaces: 0}).Error)

	currency, err := repo.FindByCode(ctx, "JPY")
	require.NoError(t, err)
	assert.Equal(t, int32(0), currency.DecimalPlaces)

	_, err = repo.FindByCode(ctx, "XXX")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
