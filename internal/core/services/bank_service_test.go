package services

import (
	"context"
	"testing"

	"github.com/YashKambaria/Farmer-Helping-Team/internal/adapters/persistence/models"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/config"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeLoanRepo struct {
	loans  []*models.LoanRecord
	nextID uint
}

func (f *fakeLoanRepo) Create(_ context.Context, loan *models.LoanRecord) error {
	f.nextID++
	loan.ID = f.nextID
	f.loans = append(f.loans, loan)
	return nil
}

func (f *fakeLoanRepo) GetByID(_ context.Context, id uint) (*models.LoanRecord, error) {
	for _, loan := range f.loans {
		if loan.ID == id {
			return loan, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLoanRepo) ListByBank(_ context.Context, bankID uint, _ string) ([]*models.LoanRecord, error) {
	var out []*models.LoanRecord
	for _, loan := range f.loans {
		if loan.BankID == bankID {
			out = append(out, loan)
		}
	}
	return out, nil
}

func newBankTestService() (*BankService, *fakeLoanRepo) {
	score := 78.0
	bankRepo := newFakeBankRepo(&models.Bank{ID: 1, UserID: 20, Name: "Agricultural Development Bank"})
	farmerRepo := newFakeFarmerRepo(&models.FarmerProfile{
		ID: 1, UserID: 10, Name: "Ramesh Patel", Region: "Gujarat",
		CropTypes: "Cotton", CreditScore: &score,
	})
	userRepo := newFakeUserRepo(&models.User{ID: 10, Email: "ramesh@example.com"})
	loanRepo := &fakeLoanRepo{}
	notifier := NewNotificationService(&config.Config{})

	return NewBankService(bankRepo, farmerRepo, loanRepo, userRepo, notifier), loanRepo
}

func TestApproveLoanSnapshotsFarmer(t *testing.T) {
	svc, loanRepo := newBankTestService()

	loan, err := svc.ApproveLoan(context.Background(), 20, &ApproveLoanInput{
		FarmerID: 1,
		Amount:   50000,
		Purpose:  "Drip irrigation setup",
	})
	require.NoError(t, err)

	assert.Equal(t, models.LoanStatusApproved, loan.Status)
	assert.NotNil(t, loan.ApprovedDate)
	assert.Equal(t, "Ramesh Patel", loan.FarmerName)
	assert.Equal(t, "Gujarat", loan.FarmerRegion)
	assert.Equal(t, "Cotton", loan.FarmerCrop)
	require.NotNil(t, loan.FarmerScore)
	assert.Equal(t, 78.0, *loan.FarmerScore)

	assert.Len(t, loanRepo.loans, 1)
}

func TestApproveLoanUnknownFarmer(t *testing.T) {
	svc, _ := newBankTestService()

	_, err := svc.ApproveLoan(context.Background(), 20, &ApproveLoanInput{
		FarmerID: 99,
		Amount:   50000,
	})
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestApproveLoanRequiresBankAccount(t *testing.T) {
	svc, _ := newBankTestService()

	_, err := svc.ApproveLoan(context.Background(), 77, &ApproveLoanInput{
		FarmerID: 1,
		Amount:   50000,
	})
	assert.ErrorIs(t, err, domain.ErrBankNotFound)
}

func TestListLoansScopedToBank(t *testing.T) {
	svc, loanRepo := newBankTestService()
	loanRepo.Create(context.Background(), &models.LoanRecord{BankID: 1, FarmerName: "A"})
	loanRepo.Create(context.Background(), &models.LoanRecord{BankID: 2, FarmerName: "B"})

	loans, err := svc.ListLoans(context.Background(), 20, "")
	require.NoError(t, err)
	require.Len(t, loans, 1)
	assert.Equal(t, "A", loans[0].FarmerName)
}

func TestSearchFarmersReturnsResponses(t *testing.T) {
	svc, _ := newBankTestService()

	farmers, total, err := svc.SearchFarmers(context.Background(), "", 0, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, farmers, 1)

	// DTO derives the 0-850 display scale from the stored 0-100 score
	require.NotNil(t, farmers[0].CreditScore850)
	assert.Equal(t, 663, *farmers[0].CreditScore850)
}
