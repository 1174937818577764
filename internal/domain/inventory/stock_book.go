package inventory

import (
	"strings"
	"time"

	"github.com/erp/saleflow/internal/domain/shared"
	"github.com/google/uuid"
)

// StockBook is a voucher book that numbers delivery slips.
// When VoucherRequired is set, a voucher must be printed for every picking that uses it.
type StockBook struct {
	shared.TenantAggregateRoot
	Name            string
	VoucherRequired bool
	Active          bool
}

// NewStockBook creates an active stock book
func NewStockBook(tenantID uuid.UUID, name string, voucherRequired bool) (*StockBook, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Stock book name cannot be empty")
	}
	return &StockBook{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		VoucherRequired:     voucherRequired,
		Active:              true,
	}, nil
}

// SetVoucherRequired toggles voucher printing
func (b *StockBook) SetVoucherRequired(required bool) {
	b.VoucherRequired = required
	b.UpdatedAt = time.Now()
}
