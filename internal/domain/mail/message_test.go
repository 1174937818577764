package mail

import (
	"testing"

	"github.com/erp/saleflow/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	resID := uuid.New()

	message, err := NewMessage(uuid.New(), ResModelSalesOrder, resID, "  Delivered  ", "")
	require.NoError(t, err)
	assert.Equal(t, "Delivered", message.Body)
	assert.Equal(t, LevelInfo, message.Level)

	_, err = NewMessage(uuid.New(), ResModelSalesOrder, uuid.Nil, "x", LevelWarning)
	assert.True(t, shared.IsDomainError(err, "INVALID_RESOURCE"))

	_, err = NewMessage(uuid.New(), ResModelInvoice, resID, " ", LevelWarning)
	assert.True(t, shared.IsDomainError(err, "INVALID_BODY"))
}
