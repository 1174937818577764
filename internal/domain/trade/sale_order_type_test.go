package trade

import (
	"testing"

	"github.com/erp/saleflow/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSaleOrderType(t *testing.T) {
	orderType, err := NewSaleOrderType(uuid.New(), "  Counter sale ")
	require.NoError(t, err)
	assert.Equal(t, "Counter sale", orderType.Name)
	assert.False(t, orderType.InvoicingAutomation.Enabled())
	assert.False(t, orderType.PickingAutomation.Enabled())

	_, err = NewSaleOrderType(uuid.New(), "")
	assert.True(t, shared.IsDomainError(err, "INVALID_NAME"))
}

func TestSaleOrderType_Automation(t *testing.T) {
	orderType, err := NewSaleOrderType(uuid.New(), "Retail")
	require.NoError(t, err)

	require.NoError(t, orderType.SetInvoicingAutomation(InvoicingAutomationTryValidate))
	assert.True(t, orderType.InvoicingAutomation.Enabled())

	require.NoError(t, orderType.SetInvoicingAutomation(""))
	assert.Equal(t, InvoicingAutomationNone, orderType.InvoicingAutomation)

	err = orderType.SetInvoicingAutomation("post_invoice")
	assert.True(t, shared.IsDomainError(err, "INVALID_INVOICING_AUTOMATION"))

	require.NoError(t, orderType.SetPickingAutomation(PickingAutomationValidateNoForce))
	assert.True(t, orderType.PickingAutomation.Enabled())

	err = orderType.SetPickingAutomation("ship")
	assert.True(t, shared.IsDomainError(err, "INVALID_PICKING_AUTOMATION"))
}

func TestSaleOrderType_InvoiceDefaults(t *testing.T) {
	journalID := uuid.New()
	paymentJournalID := uuid.New()

	orderType, err := NewSaleOrderType(uuid.New(), "Retail")
	require.NoError(t, err)

	defaults := orderType.InvoiceDefaults()
	assert.Nil(t, defaults.JournalID)
	assert.Nil(t, defaults.PayNowJournalID)

	orderType.SetJournal(&journalID)
	require.NoError(t, orderType.SetPaymentAutomation(true, &paymentJournalID))

	defaults = orderType.InvoiceDefaults()
	require.NotNil(t, defaults.JournalID)
	assert.Equal(t, journalID, *defaults.JournalID)
	require.NotNil(t, defaults.PayNowJournalID)
	assert.Equal(t, paymentJournalID, *defaults.PayNowJournalID)

	require.NoError(t, orderType.SetPaymentAutomation(false, &paymentJournalID))
	assert.Nil(t, orderType.InvoiceDefaults().PayNowJournalID)

	err = orderType.SetPaymentAutomation(true, nil)
	assert.True(t, shared.IsDomainError(err, "INVALID_PAYMENT_JOURNAL"))

	nilID := uuid.Nil
	orderType.SetJournal(&nilID)
	assert.Nil(t, orderType.JournalID)
}
