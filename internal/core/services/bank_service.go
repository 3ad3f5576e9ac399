package services

import (
	"context"
	"log"
	"time"

	"github.com/YashKambaria/Farmer-Helping-Team/internal/adapters/persistence/models"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/adapters/persistence/repositories"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/core/domain"
)

// BankService handles the bank review side: farmer listing, loan records
// and loan approval
type BankService struct {
	bankRepo   repositories.BankRepository
	farmerRepo repositories.FarmerRepository
	loanRepo   repositories.LoanRepository
	userRepo   repositories.UserRepository
	notifier   *NotificationService
}

// NewBankService creates a new bank service
func NewBankService(
	bankRepo repositories.BankRepository,
	farmerRepo repositories.FarmerRepository,
	loanRepo repositories.LoanRepository,
	userRepo repositories.UserRepository,
	notifier *NotificationService,
) *BankService {
	return &BankService{
		bankRepo:   bankRepo,
		farmerRepo: farmerRepo,
		loanRepo:   loanRepo,
		userRepo:   userRepo,
		notifier:   notifier,
	}
}

// ApproveLoanInput represents loan approval input
type ApproveLoanInput struct {
	FarmerID uint    `json:"farmer_id"`
	Amount   float64 `json:"amount"`
	Purpose  string  `json:"purpose"`
}

// GetBank returns the bank owned by a user
func (s *BankService) GetBank(ctx context.Context, userID uint) (*models.Bank, error) {
	bank, err := s.bankRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, domain.ErrBankNotFound
	}
	return bank, nil
}

// SearchFarmers lists farmers matching the query (empty query lists all)
func (s *BankService) SearchFarmers(ctx context.Context, query string, offset, limit int) ([]*models.FarmerResponse, int64, error) {
	farmers, total, err := s.farmerRepo.Search(ctx, query, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*models.FarmerResponse, 0, len(farmers))
	for _, f := range farmers {
		responses = append(responses, f.ToResponse())
	}
	return responses, total, nil
}

// ListLoans lists the bank's loan records matching the query
func (s *BankService) ListLoans(ctx context.Context, userID uint, query string) ([]*models.LoanRecord, error) {
	bank, err := s.bankRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, domain.ErrBankNotFound
	}
	return s.loanRepo.ListByBank(ctx, bank.ID, query)
}

// ApproveLoan creates an approved loan record with a snapshot of the
// farmer at approval time, then emails the farmer
func (s *BankService) ApproveLoan(ctx context.Context, userID uint, input *ApproveLoanInput) (*models.LoanRecord, error) {
	bank, err := s.bankRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, domain.ErrBankNotFound
	}

	farmer, err := s.farmerRepo.GetByID(ctx, input.FarmerID)
	if err != nil {
		return nil, domain.ErrProfileNotFound
	}

	now := time.Now()
	loan := &models.LoanRecord{
		BankID:       bank.ID,
		FarmerID:     farmer.ID,
		Amount:       input.Amount,
		Purpose:      input.Purpose,
		Status:       models.LoanStatusApproved,
		ApprovedDate: &now,
		FarmerName:   farmer.Name,
		FarmerRegion: farmer.Region,
		FarmerCrop:   farmer.CropTypes,
		FarmerScore:  farmer.CreditScore,
	}

	if err := s.loanRepo.Create(ctx, loan); err != nil {
		return nil, err
	}

	log.Printf("✅ Loan approved: bank %d -> farmer %d (%.2f)", bank.ID, farmer.ID, input.Amount)

	// Email alert is best-effort, approval already committed
	if farmerUser, err := s.userRepo.GetByID(ctx, farmer.UserID); err == nil {
		s.notifier.NotifyLoanApproved(farmerUser.Email, farmer.Name, bank.Name, input.Amount, input.Purpose)
	}

	return loan, nil
}
