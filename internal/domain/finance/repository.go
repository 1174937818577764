package finance

import (
	"context"

	"github.com/google/uuid"
)

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	// FindByIDForTenant finds an invoice with its lines
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Invoice, error)

	// FindByOrder finds the invoices created from an order, oldest first
	FindByOrder(ctx context.Context, tenantID, orderID uuid.UUID) ([]Invoice, error)

	// Save creates or updates an invoice and its lines
	Save(ctx context.Context, invoice *Invoice) error

	// GenerateNumber generates the next invoice number of a journal
	GenerateNumber(ctx context.Context, tenantID uuid.UUID, journal *Journal) (string, error)
}

// TaxRepository defines the interface for tax persistence
type TaxRepository interface {
	// FindByIDs finds taxes with the children of group taxes loaded, keeping the order of ids
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]Tax, error)

	// Save creates or updates a tax
	Save(ctx context.Context, tax *Tax) error
}

// CurrencyRepository defines the interface for currency lookup
type CurrencyRepository interface {
	FindByCode(ctx context.Context, code string) (*Currency, error)
}

// JournalRepository defines the interface for journal persistence
type JournalRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Journal, error)

	// FindDefault returns the first active journal of a type
	FindDefault(ctx context.Context, tenantID uuid.UUID, journalType JournalType) (*Journal, error)

	Save(ctx context.Context, journal *Journal) error
}
