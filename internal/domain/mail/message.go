package mail

import (
	"context"
	"strings"
	"time"

	"github.com/erp/saleflow/internal/domain/shared"
	"github.com/google/uuid"
)

// Resource models messages can be attached to
const (
	ResModelSalesOrder = "sale.order"
	ResModelInvoice    = "account.invoice"
	ResModelPicking    = "stock.picking"
)

// Level qualifies a message
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
)

// Message is a note posted in the chatter of a record
type Message struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	ResModel  string
	ResID     uuid.UUID
	Body      string
	Level     Level
	CreatedAt time.Time
}

// NewMessage creates a message for a record
func NewMessage(tenantID uuid.UUID, resModel string, resID uuid.UUID, body string, level Level) (*Message, error) {
	if resModel == "" || resID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RESOURCE", "Message needs a target record")
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, shared.NewDomainError("INVALID_BODY", "Message body cannot be empty")
	}
	if level == "" {
		level = LevelInfo
	}
	return &Message{
		ID:        uuid.New(),
		TenantID:  tenantID,
		ResModel:  resModel,
		ResID:     resID,
		Body:      body,
		Level:     level,
		CreatedAt: time.Now(),
	}, nil
}

// MessageRepository defines the interface for message persistence
type MessageRepository interface {
	Save(ctx context.Context, message *Message) error
	// FindByResource returns the messages of a record, newest first
	FindByResource(ctx context.Context, tenantID uuid.UUID, resModel string, resID uuid.UUID) ([]Message, error)
}
