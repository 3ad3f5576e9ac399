package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/YashKambaria/Farmer-Helping-Team/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// farmerRepository implements FarmerRepository interface
type farmerRepository struct {
	db *gorm.DB
}

// NewFarmerRepository creates a new farmer repository
func NewFarmerRepository(db *gorm.DB) FarmerRepository {
	return &farmerRepository{db: db}
}

// Create creates a new farmer profile
func (r *farmerRepository) Create(ctx context.Context, farmer *models.FarmerProfile) error {
	return r.db.WithContext(ctx).Create(farmer).Error
}

// GetByID gets a farmer profile by ID
func (r *farmerRepository) GetByID(ctx context.Context, id uint) (*models.FarmerProfile, error) {
	var farmer models.FarmerProfile
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&farmer).Error
	if err != nil {
		return nil, err
	}
	return &farmer, nil
}

// GetByUserID gets a farmer profile by owning user ID
func (r *farmerRepository) GetByUserID(ctx context.Context, userID uint) (*models.FarmerProfile, error) {
	var farmer models.FarmerProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&farmer).Error
	if err != nil {
		return nil, err
	}
	return &farmer, nil
}

// Update updates a farmer profile
func (r *farmerRepository) Update(ctx context.Context, farmer *models.FarmerProfile) error {
	return r.db.WithContext(ctx).Save(farmer).Error
}

// UpdateScore stores a freshly calculated credit score
func (r *farmerRepository) UpdateScore(ctx context.Context, id uint, score float64) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&models.FarmerProfile{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"credit_score":     score,
			"score_updated_at": &now,
		}).Error
}

// Search lists farmers matching a case-insensitive substring across
// name, region and crop types. Empty query returns all farmers.
// A non-positive limit disables paging.
func (r *farmerRepository) Search(ctx context.Context, query string, offset, limit int) ([]*models.FarmerProfile, int64, error) {
	var farmers []*models.FarmerProfile
	var total int64

	tx := r.db.WithContext(ctx).Model(&models.FarmerProfile{})

	query = strings.TrimSpace(query)
	if query != "" {
		pattern := "%" + strings.ToLower(query) + "%"
		tx = tx.Where(
			"LOWER(name) LIKE ? OR LOWER(region) LIKE ? OR LOWER(crop_types) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit > 0 {
		tx = tx.Offset(offset).Limit(limit)
	}

	if err := tx.Order("name ASC").Find(&farmers).Error; err != nil {
		return nil, 0, err
	}
	return farmers, total, nil
}
