package mail

import (
	"context"
	"time"

	"github.com/erp/saleflow/internal/domain/mail"
	"github.com/google/uuid"
)

// MessageResponse represents a chatter message in API responses
type MessageResponse struct {
	ID        uuid.UUID `json:"id"`
	ResModel  string    `json:"res_model"`
	ResID     uuid.UUID `json:"res_id"`
	Body      string    `json:"body"`
	Level     string    `json:"level"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatterService posts and lists the messages attached to records
type ChatterService struct {
	messageRepo mail.MessageRepository
}

// NewChatterService creates a new ChatterService
func NewChatterService(messageRepo mail.MessageRepository) *ChatterService {
	return &ChatterService{messageRepo: messageRepo}
}

// Post attaches a message to a record. It joins the transaction carried by ctx.
func (s *ChatterService) Post(ctx context.Context, tenantID uuid.UUID, resModel string, resID uuid.UUID, body string, level mail.Level) error {
	message, err := mail.NewMessage(tenantID, resModel, resID, body, level)
	if err != nil {
		return err
	}
	return s.messageRepo.Save(ctx, message)
}

// List returns the messages of a record, newest first
func (s *ChatterService) List(ctx context.Context, tenantID uuid.UUID, resModel string, resID uuid.UUID) ([]MessageResponse, error) {
	messages, err := s.messageRepo.FindByResource(ctx, tenantID, resModel, resID)
	if err != nil {
		return nil, err
	}
	responses := make([]MessageResponse, len(messages))
	for i, m := range messages {
		responses[i] = MessageResponse{
			ID:        m.ID,
			ResModel:  m.ResModel,
			ResID:     m.ResID,
			Body:      m.Body,
			Level:     string(m.Level),
			CreatedAt: m.CreatedAt,
		}
	}
	return responses, nil
}
