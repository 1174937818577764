package models

import (
	"time"

	"github.com/erp/saleflow/internal/domain/mail"
	"github.com/google/uuid"
)

// MessageModel is the persistence model for chatter messages.
type MessageModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key"`
	TenantID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	ResModel  string     `gorm:"type:varchar(50);not null;index:idx_message_resource,priority:1"`
	ResID     uuid.UUID  `gorm:"type:uuid;not null;index:idx_message_resource,priority:2"`
	Body      string     `gorm:"type:text;not null"`
	Level     mail.Level `gorm:"type:varchar(20);not null"`
	CreatedAt time.Time  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (MessageModel) TableName() string {
	return "mail_messages"
}

// ToDomain converts the persistence model to a domain Message.
func (m *MessageModel) ToDomain() mail.Message {
	return mail.Message{
		ID:        m.ID,
		TenantID:  m.TenantID,
		ResModel:  m.ResModel,
		ResID:     m.ResID,
		Body:      m.Body,
		Level:     m.Level,
		CreatedAt: m.CreatedAt,
	}
}

// MessageModelFromDomain creates a persistence model from a domain Message.
func MessageModelFromDomain(msg *mail.Message) *MessageModel {
	return &MessageModel{
		ID:        msg.ID,
		TenantID:  msg.TenantID,
		ResModel:  msg.ResModel,
		ResID:     msg.ResID,
		Body:      msg.Body,
		Level:     msg.Level,
		CreatedAt: msg.CreatedAt,
	}
}
