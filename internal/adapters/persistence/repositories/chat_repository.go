package repositories

import (
	"context"

	"github.com/YashKambaria/Farmer-Helping-Team/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// chatRepository implements ChatRepository interface
type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates a new chat repository
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

// Create appends a chat message
func (r *chatRepository) Create(ctx context.Context, msg *models.ChatMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// GetByID gets a chat message by ID
func (r *chatRepository) GetByID(ctx context.Context, id uint) (*models.ChatMessage, error) {
	var msg models.ChatMessage
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&msg).Error
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// ListByUser lists a user's messages in insertion order
func (r *chatRepository) ListByUser(ctx context.Context, userID uint) ([]*models.ChatMessage, error) {
	var msgs []*models.ChatMessage
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}
