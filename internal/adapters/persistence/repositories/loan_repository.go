package repositories

import (
	"context"
	"strings"

	"github.com/YashKambaria/Farmer-Helping-Team/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// loanRepository implements LoanRepository interface
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *gorm.DB) LoanRepository {
	return &loanRepository{db: db}
}

// Create creates a new loan record
func (r *loanRepository) Create(ctx context.Context, loan *models.LoanRecord) error {
	return r.db.WithContext(ctx).Create(loan).Error
}

// GetByID gets a loan record by ID
func (r *loanRepository) GetByID(ctx context.Context, id uint) (*models.LoanRecord, error) {
	var loan models.LoanRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&loan).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// ListByBank lists a bank's loan records matching a case-insensitive
// substring across farmer name, purpose and region. Empty query returns all.
func (r *loanRepository) ListByBank(ctx context.Context, bankID uint, query string) ([]*models.LoanRecord, error) {
	var loans []*models.LoanRecord

	tx := r.db.WithContext(ctx).
		Model(&models.LoanRecord{}).
		Where("bank_id = ?", bankID)

	query = strings.TrimSpace(query)
	if query != "" {
		pattern := "%" + strings.ToLower(query) + "%"
		tx = tx.Where(
			"LOWER(farmer_name) LIKE ? OR LOWER(purpose) LIKE ? OR LOWER(farmer_region) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	if err := tx.Order("created_at DESC").Find(&loans).Error; err != nil {
		return nil, err
	}
	return loans, nil
}
