package persistence

import (
	"context"

	"github.com/erp/saleflow/internal/domain/mail"
	"github.com/erp/saleflow/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMessageRepository implements mail.MessageRepository using GORM
type GormMessageRepository struct {
	db *gorm.DB
}

// NewGormMessageRepository creates a new GormMessageRepository
func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

// Save stores a message
func (r *GormMessageRepository) Save(ctx context.Context, message *mail.Message) error {
	return Conn(ctx, r.db).Create(models.MessageModelFromDomain(message)).Error
}

// FindByResource returns the messages of a record, newest first
func (r *GormMessageRepository) FindByResource(ctx context.Context, tenantID uuid.UUID, resModel string, resID uuid.UUID) ([]mail.Message, error) {
	var rows []models.MessageModel
	if err := Conn(ctx, r.db).
		Where("tenant_id = ? AND res_model = ? AND res_id = ?", tenantID, resModel, resID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	messages := make([]mail.Message, len(rows))
	for i := range rows {
		messages[i] = rows[i].ToDomain()
	}
	return messages, nil
}

var _ mail.MessageRepository = (*GormMessageRepository)(nil)
