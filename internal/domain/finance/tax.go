package finance

import (
	"sort"
	"strings"
	"time"

	"github.com/erp/saleflow/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TaxAmountType defines how a tax amount is computed
type TaxAmountType string

const (
	// TaxAmountPercent is a percentage of the price
	TaxAmountPercent TaxAmountType = "percent"
	// TaxAmountFixed is a fixed amount per unit
	TaxAmountFixed TaxAmountType = "fixed"
	// TaxAmountDivision is a percentage of the price tax included
	TaxAmountDivision TaxAmountType = "division"
	// TaxAmountGroup applies its children taxes
	TaxAmountGroup TaxAmountType = "group"
)

// IsValid checks if the amount type is known
func (t TaxAmountType) IsValid() bool {
	switch t {
	case TaxAmountPercent, TaxAmountFixed, TaxAmountDivision, TaxAmountGroup:
		return true
	}
	return false
}

var hundred = decimal.NewFromInt(100)

// Tax is a sales tax
type Tax struct {
	shared.TenantAggregateRoot
	Name         string
	AmountType   TaxAmountType
	Amount       decimal.Decimal
	PriceInclude bool
	Sequence     int
	Active       bool
	ChildIDs     []uuid.UUID
	Children     []Tax // loaded children of a group tax
}

// NewTax creates an active tax
func NewTax(tenantID uuid.UUID, name string, amountType TaxAmountType, amount decimal.Decimal) (*Tax, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Tax name cannot be empty")
	}
	if !amountType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TAX_TYPE", "Tax type must be percent, fixed, division or group")
	}
	if amountType == TaxAmountDivision && amount.GreaterThanOrEqual(hundred) {
		return nil, shared.NewDomainError("INVALID_TAX_AMOUNT", "A division tax must be lower than 100%")
	}
	return &Tax{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                strings.TrimSpace(name),
		AmountType:          amountType,
		Amount:              amount,
		Sequence:            1,
		Active:              true,
	}, nil
}

// SetPriceInclude marks the tax as included in the unit price
func (t *Tax) SetPriceInclude(include bool) {
	t.PriceInclude = include
	t.UpdatedAt = time.Now()
}

// SetChildren sets the taxes applied by a group tax
func (t *Tax) SetChildren(children []Tax) error {
	if t.AmountType != TaxAmountGroup {
		return shared.NewDomainError("INVALID_TAX_TYPE", "Only group taxes have children")
	}
	t.Children = make([]Tax, 0, len(children))
	t.ChildIDs = make([]uuid.UUID, 0, len(children))
	for _, child := range children {
		if child.AmountType == TaxAmountGroup {
			return shared.NewDomainError("INVALID_TAX_TYPE", "Nested group taxes are not allowed")
		}
		t.Children = append(t.Children, child)
		t.ChildIDs = append(t.ChildIDs, child.ID)
	}
	t.UpdatedAt = time.Now()
	return nil
}

// TaxLine is the amount one tax adds to a price
type TaxLine struct {
	TaxID  uuid.UUID       `json:"tax_id"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
	Base   decimal.Decimal `json:"base"`
}

// TaxResult is the outcome of applying taxes to a price
type TaxResult struct {
	TotalExcluded decimal.Decimal `json:"total_excluded"`
	TotalIncluded decimal.Decimal `json:"total_included"`
	Taxes         []TaxLine       `json:"taxes"`
}

// TaxAmount returns the sum of all tax lines
func (r TaxResult) TaxAmount() decimal.Decimal {
	total := decimal.Zero
	for _, line := range r.Taxes {
		total = total.Add(line.Amount)
	}
	return total
}

// FlattenTaxes replaces group taxes by their children, ordered by sequence
func FlattenTaxes(taxes []Tax) []Tax {
	flat := make([]Tax, 0, len(taxes))
	for _, tax := range taxes {
		if tax.AmountType == TaxAmountGroup {
			flat = append(flat, tax.Children...)
			continue
		}
		flat = append(flat, tax)
	}
	sort.SliceStable(flat, func(i, j int) bool {
		return flat[i].Sequence < flat[j].Sequence
	})
	return flat
}

// ComputeAll applies taxes to quantity units at priceUnit.
// Price-included taxes are removed from the base first; every amount is rounded to the currency.
func ComputeAll(taxes []Tax, priceUnit decimal.Decimal, currency Currency, quantity decimal.Decimal) TaxResult {
	flat := FlattenTaxes(taxes)
	totalIncludedPrice := currency.Round(priceUnit.Mul(quantity))
	base := totalIncludedPrice

	includedPercent := decimal.Zero
	for i := len(flat) - 1; i >= 0; i-- {
		tax := flat[i]
		if !tax.PriceInclude {
			continue
		}
		switch tax.AmountType {
		case TaxAmountPercent:
			includedPercent = includedPercent.Add(tax.Amount)
		case TaxAmountDivision:
			base = base.Mul(decimal.NewFromInt(1).Sub(tax.Amount.Div(hundred)))
		case TaxAmountFixed:
			base = base.Sub(tax.Amount.Mul(quantity))
		}
	}
	if !includedPercent.IsZero() {
		base = base.Div(decimal.NewFromInt(1).Add(includedPercent.Div(hundred)))
	}

	totalExcluded := currency.Round(base)
	result := TaxResult{
		TotalExcluded: totalExcluded,
		Taxes:         make([]TaxLine, 0, len(flat)),
	}

	taxTotal := decimal.Zero
	for _, tax := range flat {
		var amount decimal.Decimal
		switch tax.AmountType {
		case TaxAmountPercent:
			amount = base.Mul(tax.Amount).Div(hundred)
		case TaxAmountDivision:
			amount = base.Div(decimal.NewFromInt(1).Sub(tax.Amount.Div(hundred))).Sub(base)
		case TaxAmountFixed:
			amount = tax.Amount.Mul(quantity)
		default:
			continue
		}
		amount = currency.Round(amount)
		taxTotal = taxTotal.Add(amount)
		result.Taxes = append(result.Taxes, TaxLine{
			TaxID:  tax.ID,
			Name:   tax.Name,
			Amount: amount,
			Base:   totalExcluded,
		})
	}
	result.TotalIncluded = totalExcluded.Add(taxTotal)

	return result
}

// AllPercent reports whether every tax is a percentage tax
func AllPercent(taxes []Tax) bool {
	for _, tax := range taxes {
		if tax.AmountType != TaxAmountPercent {
			return false
		}
	}
	return true
}
