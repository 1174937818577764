package trade

import (
	"strings"
	"time"

	"github.com/erp/saleflow/internal/domain/shared"
	"github.com/google/uuid"
)

// InvoicingAutomation selects what happens to invoices when an order of a type is confirmed
type InvoicingAutomation string

const (
	InvoicingAutomationNone        InvoicingAutomation = "none"
	InvoicingAutomationCreate      InvoicingAutomation = "create_invoice"
	InvoicingAutomationValidate    InvoicingAutomation = "validate_invoice"
	InvoicingAutomationTryValidate InvoicingAutomation = "try_validate_invoice"
)

// IsValid checks if the value is known. Empty is accepted and means none.
func (a InvoicingAutomation) IsValid() bool {
	switch a {
	case "", InvoicingAutomationNone, InvoicingAutomationCreate, InvoicingAutomationValidate, InvoicingAutomationTryValidate:
		return true
	}
	return false
}

// Enabled reports whether invoices are created automatically
func (a InvoicingAutomation) Enabled() bool {
	return a != "" && a != InvoicingAutomationNone
}

// PickingAutomation selects what happens to delivery pickings when an order of a type is confirmed
type PickingAutomation string

const (
	PickingAutomationNone            PickingAutomation = "none"
	PickingAutomationValidate        PickingAutomation = "validate"
	PickingAutomationValidateNoForce PickingAutomation = "validate_no_force"
)

// IsValid checks if the value is known. Empty is accepted and means none.
func (a PickingAutomation) IsValid() bool {
	switch a {
	case "", PickingAutomationNone, PickingAutomationValidate, PickingAutomationValidateNoForce:
		return true
	}
	return false
}

// Enabled reports whether pickings are validated automatically
func (a PickingAutomation) Enabled() bool {
	return a != "" && a != PickingAutomationNone
}

// SaleOrderType groups the automation settings applied to the orders that use it
type SaleOrderType struct {
	shared.TenantAggregateRoot
	Name                  string
	InvoicingAutomation   InvoicingAutomation
	PickingAutomation     PickingAutomation
	BookID                *uuid.UUID
	JournalID             *uuid.UUID
	PaymentAutomation     bool
	PaymentJournalID      *uuid.UUID
	SetDoneOnConfirmation bool
}

// NewSaleOrderType creates a sale order type with automation disabled
func NewSaleOrderType(tenantID uuid.UUID, name string) (*SaleOrderType, error) {
	if err := validateTypeName(name); err != nil {
		return nil, err
	}
	return &SaleOrderType{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                strings.TrimSpace(name),
		InvoicingAutomation: InvoicingAutomationNone,
		PickingAutomation:   PickingAutomationNone,
	}, nil
}

// Rename changes the type name
func (t *SaleOrderType) Rename(name string) error {
	if err := validateTypeName(name); err != nil {
		return err
	}
	t.Name = strings.TrimSpace(name)
	t.UpdatedAt = time.Now()
	return nil
}

// SetInvoicingAutomation sets the invoicing automation mode
func (t *SaleOrderType) SetInvoicingAutomation(mode InvoicingAutomation) error {
	if !mode.IsValid() {
		return shared.NewDomainError("INVALID_INVOICING_AUTOMATION", "Unknown invoicing automation: "+string(mode))
	}
	if mode == "" {
		mode = InvoicingAutomationNone
	}
	t.InvoicingAutomation = mode
	t.UpdatedAt = time.Now()
	return nil
}

// SetPickingAutomation sets the picking automation mode
func (t *SaleOrderType) SetPickingAutomation(mode PickingAutomation) error {
	if !mode.IsValid() {
		return shared.NewDomainError("INVALID_PICKING_AUTOMATION", "Unknown picking automation: "+string(mode))
	}
	if mode == "" {
		mode = PickingAutomationNone
	}
	t.PickingAutomation = mode
	t.UpdatedAt = time.Now()
	return nil
}

// SetBook sets the stock book written on the pickings of this type. Nil clears it.
func (t *SaleOrderType) SetBook(bookID *uuid.UUID) {
	t.BookID = nilIfEmpty(bookID)
	t.UpdatedAt = time.Now()
}

// SetJournal sets the sale journal used for invoices. Nil clears it.
func (t *SaleOrderType) SetJournal(journalID *uuid.UUID) {
	t.JournalID = nilIfEmpty(journalID)
	t.UpdatedAt = time.Now()
}

// SetPaymentAutomation configures immediate payment of invoices on the given journal
func (t *SaleOrderType) SetPaymentAutomation(enabled bool, journalID *uuid.UUID) error {
	journalID = nilIfEmpty(journalID)
	if enabled && journalID == nil {
		return shared.NewDomainError("INVALID_PAYMENT_JOURNAL", "Payment automation requires a payment journal")
	}
	t.PaymentAutomation = enabled
	t.PaymentJournalID = journalID
	t.UpdatedAt = time.Now()
	return nil
}

// SetDoneOnConfirm makes confirmed orders of this type lock immediately
func (t *SaleOrderType) SetDoneOnConfirm(done bool) {
	t.SetDoneOnConfirmation = done
	t.UpdatedAt = time.Now()
}

// InvoiceDefaults are the header values an order type contributes to its invoices
type InvoiceDefaults struct {
	JournalID       *uuid.UUID
	PayNowJournalID *uuid.UUID
}

// InvoiceDefaults returns the journal and the pay-now journal for invoices of this type
func (t *SaleOrderType) InvoiceDefaults() InvoiceDefaults {
	var defaults InvoiceDefaults
	if t.JournalID != nil {
		id := *t.JournalID
		defaults.JournalID = &id
	}
	if t.PaymentAutomation && t.PaymentJournalID != nil {
		id := *t.PaymentJournalID
		defaults.PayNowJournalID = &id
	}
	return defaults
}

func validateTypeName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Sale order type name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Sale order type name cannot exceed 100 characters")
	}
	return nil
}

func nilIfEmpty(id *uuid.UUID) *uuid.UUID {
	if id == nil || *id == uuid.Nil {
		return nil
	}
	v := *id
	return &v
}
