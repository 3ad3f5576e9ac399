package repositories

import (
	"context"

	"github.com/YashKambaria/Farmer-Helping-Team/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// bankRepository implements BankRepository interface
type bankRepository struct {
	db *gorm.DB
}

// NewBankRepository creates a new bank repository
func NewBankRepository(db *gorm.DB) BankRepository {
	return &bankRepository{db: db}
}

// Create creates a new bank
func (r *bankRepository) Create(ctx context.Context, bank *models.Bank) error {
	return r.db.WithContext(ctx).Create(bank).Error
}

// GetByUserID gets a bank by owning user ID
func (r *bankRepository) GetByUserID(ctx context.Context, userID uint) (*models.Bank, error) {
	var bank models.Bank
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&bank).Error
	if err != nil {
		return nil, err
	}
	return &bank, nil
}

// Update updates a bank
func (r *bankRepository) Update(ctx context.Context, bank *models.Bank) error {
	return r.db.WithContext(ctx).Save(bank).Error
}
