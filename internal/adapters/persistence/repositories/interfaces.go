package repositories

import (
	"context"

	"github.com/YashKambaria/Farmer-Helping-Team/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}

// FarmerRepository defines farmer profile repository interface
type FarmerRepository interface {
	Create(ctx context.Context, farmer *models.FarmerProfile) error
	GetByID(ctx context.Context, id uint) (*models.FarmerProfile, error)
	GetByUserID(ctx context.Context, userID uint) (*models.FarmerProfile, error)
	Update(ctx context.Context, farmer *models.FarmerProfile) error
	UpdateScore(ctx context.Context, id uint, score float64) error
	Search(ctx context.Context, query string, offset, limit int) ([]*models.FarmerProfile, int64, error)
}

// BankRepository defines bank repository interface
type BankRepository interface {
	Create(ctx context.Context, bank *models.Bank) error
	GetByUserID(ctx context.Context, userID uint) (*models.Bank, error)
	Update(ctx context.Context, bank *models.Bank) error
}

// LoanRepository defines loan record repository interface
type LoanRepository interface {
	Create(ctx context.Context, loan *models.LoanRecord) error
	GetByID(ctx context.Context, id uint) (*models.LoanRecord, error)
	ListByBank(ctx context.Context, bankID uint, query string) ([]*models.LoanRecord, error)
}

// ChatRepository defines chat message repository interface
type ChatRepository interface {
	Create(ctx context.Context, msg *models.ChatMessage) error
	GetByID(ctx context.Context, id uint) (*models.ChatMessage, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.ChatMessage, error)
}

// WeatherCacheRepository defines weather cache repository interface
type WeatherCacheRepository interface {
	Get(ctx context.Context, city, day string) (*models.WeatherCacheEntry, error)
	Put(ctx context.Context, entry *models.WeatherCacheEntry) error
	PurgeBefore(ctx context.Context, day string) error
}
