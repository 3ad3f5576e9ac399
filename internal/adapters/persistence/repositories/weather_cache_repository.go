package repositories

import (
	"context"

	"github.com/YashKambaria/Farmer-Helping-Team/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// weatherCacheRepository implements WeatherCacheRepository interface
type weatherCacheRepository struct {
	db *gorm.DB
}

// NewWeatherCacheRepository creates a new weather cache repository
func NewWeatherCacheRepository(db *gorm.DB) WeatherCacheRepository {
	return &weatherCacheRepository{db: db}
}

// Get returns the cache entry for a city and calendar day
func (r *weatherCacheRepository) Get(ctx context.Context, city, day string) (*models.WeatherCacheEntry, error) {
	var entry models.WeatherCacheEntry
	err := r.db.WithContext(ctx).
		Where("city = ?", city).
		Where("day = ?", day).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Put upserts the cache entry for (city, day)
func (r *weatherCacheRepository) Put(ctx context.Context, entry *models.WeatherCacheEntry) error {
	// Replace any stale entry for the city so only one row per city survives
	if err := r.db.WithContext(ctx).
		Where("city = ?", entry.City).
		Delete(&models.WeatherCacheEntry{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(entry).Error
}

// PurgeBefore deletes entries fetched on a day earlier than the given day
func (r *weatherCacheRepository) PurgeBefore(ctx context.Context, day string) error {
	return r.db.WithContext(ctx).
		Where("day < ?", day).
		Delete(&models.WeatherCacheEntry{}).Error
}
