package finance

import (
	"fmt"
	"time"

	"github.com/erp/saleflow/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the status of a customer invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusOpen      InvoiceStatus = "open"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusCancelled InvoiceStatus = "cancel"
)

// InvoiceLine is a line of a customer invoice
type InvoiceLine struct {
	ID            uuid.UUID
	InvoiceID     uuid.UUID
	SaleLineID    *uuid.UUID
	ProductID     uuid.UUID
	Name          string
	Quantity      decimal.Decimal
	UnitPrice     decimal.Decimal
	TaxIDs        []uuid.UUID
	PriceSubtotal decimal.Decimal
	PriceTax      decimal.Decimal
	PriceTotal    decimal.Decimal
	Sequence      int
}

// Invoice is a customer invoice created from sales orders
type Invoice struct {
	shared.TenantAggregateRoot
	OrderID         uuid.UUID
	Origin          string
	Number          string
	CustomerID      uuid.UUID
	CustomerName    string
	CurrencyCode    string
	Status          InvoiceStatus
	JournalID       uuid.UUID
	PayNowJournalID *uuid.UUID
	Lines           []InvoiceLine
	AmountUntaxed   decimal.Decimal
	AmountTax       decimal.Decimal
	AmountTotal     decimal.Decimal
	OpenedAt        *time.Time
	PaidAt          *time.Time
}

// NewInvoice creates a draft invoice for an order
func NewInvoice(tenantID, orderID uuid.UUID, origin string, customerID uuid.UUID, customerName, currencyCode string, journalID uuid.UUID) (*Invoice, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Invoice needs a source order")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if journalID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_JOURNAL", "Invoice needs a sale journal")
	}
	if len(currencyCode) != 3 {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency code must have 3 letters")
	}

	invoice := &Invoice{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		OrderID:             orderID,
		Origin:              origin,
		CustomerID:          customerID,
		CustomerName:        customerName,
		CurrencyCode:        currencyCode,
		Status:              InvoiceStatusDraft,
		JournalID:           journalID,
		Lines:               make([]InvoiceLine, 0),
		AmountUntaxed:       decimal.Zero,
		AmountTax:           decimal.Zero,
		AmountTotal:         decimal.Zero,
	}
	return invoice, nil
}

// SetPayNowJournal makes the invoice paid on that journal as soon as it is validated
func (i *Invoice) SetPayNowJournal(journalID *uuid.UUID) {
	if journalID == nil || *journalID == uuid.Nil {
		i.PayNowJournalID = nil
		return
	}
	id := *journalID
	i.PayNowJournalID = &id
}

// AddLine adds a line. taxes is the result of applying the line taxes to quantity units at unitPrice.
func (i *Invoice) AddLine(saleLineID *uuid.UUID, productID uuid.UUID, name string, quantity, unitPrice decimal.Decimal, taxIDs []uuid.UUID, taxes TaxResult) error {
	if i.Status != InvoiceStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Lines can only be added to draft invoices")
	}
	if quantity.IsZero() {
		return shared.NewDomainError("INVALID_QUANTITY", "Invoice line quantity cannot be zero")
	}

	i.Lines = append(i.Lines, InvoiceLine{
		ID:            uuid.New(),
		InvoiceID:     i.ID,
		SaleLineID:    saleLineID,
		ProductID:     productID,
		Name:          name,
		Quantity:      quantity,
		UnitPrice:     unitPrice,
		TaxIDs:        append([]uuid.UUID(nil), taxIDs...),
		PriceSubtotal: taxes.TotalExcluded,
		PriceTax:      taxes.TaxAmount(),
		PriceTotal:    taxes.TotalIncluded,
		Sequence:      (len(i.Lines) + 1) * 10,
	})
	i.recalculateTotals()
	i.UpdatedAt = time.Now()
	return nil
}

// IsEmpty reports whether the invoice has no lines
func (i *Invoice) IsEmpty() bool {
	return len(i.Lines) == 0
}

// Open validates a draft invoice and gives it its number
func (i *Invoice) Open(number string) error {
	if i.Status != InvoiceStatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot validate invoice in %s status", i.Status))
	}
	if i.IsEmpty() {
		return shared.NewDomainError("EMPTY_INVOICE", "Cannot validate an invoice without lines")
	}
	if i.AmountTotal.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "You cannot validate an invoice with a negative total amount. You should create a credit note instead.")
	}
	if number == "" {
		return shared.NewDomainError("INVALID_NUMBER", "Invoice number cannot be empty")
	}

	now := time.Now()
	i.Number = number
	i.Status = InvoiceStatusOpen
	i.OpenedAt = &now
	i.UpdatedAt = now
	i.IncrementVersion()

	i.AddDomainEvent(NewInvoiceOpenedEvent(i))

	return nil
}

// MarkPaid settles an open invoice
func (i *Invoice) MarkPaid() error {
	if i.Status != InvoiceStatusOpen {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot pay invoice in %s status", i.Status))
	}
	now := time.Now()
	i.Status = InvoiceStatusPaid
	i.PaidAt = &now
	i.UpdatedAt = now
	i.IncrementVersion()

	i.AddDomainEvent(NewInvoicePaidEvent(i))

	return nil
}

// Cancel cancels a draft or open invoice
func (i *Invoice) Cancel() error {
	if i.Status != InvoiceStatusDraft && i.Status != InvoiceStatusOpen {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel invoice in %s status", i.Status))
	}
	i.Status = InvoiceStatusCancelled
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

func (i *Invoice) recalculateTotals() {
	untaxed, tax := decimal.Zero, decimal.Zero
	for _, line := range i.Lines {
		untaxed = untaxed.Add(line.PriceSubtotal)
		tax = tax.Add(line.PriceTax)
	}
	i.AmountUntaxed = untaxed
	i.AmountTax = tax
	i.AmountTotal = untaxed.Add(tax)
}

var _ shared.AggregateRoot = (*Invoice)(nil)
