package finance

import (
	"github.com/erp/saleflow/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Currency is an ISO 4217 currency and its accounting precision
type Currency struct {
	Code          string
	Name          string
	Symbol        string
	DecimalPlaces int32
}

// NewCurrency creates a currency
func NewCurrency(code, name, symbol string, decimalPlaces int32) (*Currency, error) {
	if len(code) != 3 {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency code must have 3 letters")
	}
	if decimalPlaces < 0 || decimalPlaces > 6 {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency decimal places must be between 0 and 6")
	}
	return &Currency{Code: code, Name: name, Symbol: symbol, DecimalPlaces: decimalPlaces}, nil
}

// Round rounds an amount to the currency precision
func (c Currency) Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(c.DecimalPlaces)
}

// IsZero reports whether the amount rounds to zero in this currency
func (c Currency) IsZero(amount decimal.Decimal) bool {
	return c.Round(amount).IsZero()
}
