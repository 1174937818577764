package event

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/erp/saleflow/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// orderEvent mimics a sales order event with one payload field
type orderEvent struct {
	shared.BaseDomainEvent
	OrderName string `json:"order_name"`
}

func newOrderEvent(eventType string, tenantID uuid.UUID) *orderEvent {
	return &orderEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "SalesOrder", uuid.New(), tenantID),
		OrderName:       "S00042",
	}
}

// recordingHandler keeps every event it sees and answers with err
type recordingHandler struct {
	eventTypes []string
	err        error

	mu     sync.Mutex
	events []shared.DomainEvent
}

func newRecordingHandler(eventTypes ...string) *recordingHandler {
	return &recordingHandler{eventTypes: eventTypes}
}

func (h *recordingHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	h.mu.Lock()
	h.events = append(h.events, event)
	h.mu.Unlock()
	return h.err
}

func (h *recordingHandler) EventTypes() []string { return h.eventTypes }

func (h *recordingHandler) received() []shared.DomainEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]shared.DomainEvent, len(h.events))
	copy(out, h.events)
	return out
}

func outboxDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&shared.OutboxEntry{}))
	return db
}
