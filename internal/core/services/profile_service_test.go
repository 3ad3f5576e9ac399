package services

import (
	"context"
	"testing"

	"github.com/YashKambaria/Farmer-Helping-Team/internal/adapters/persistence/models"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeBankRepo struct {
	banks map[uint]*models.Bank
}

func newFakeBankRepo(banks ...*models.Bank) *fakeBankRepo {
	repo := &fakeBankRepo{banks: make(map[uint]*models.Bank)}
	for _, b := range banks {
		repo.banks[b.ID] = b
	}
	return repo
}

func (f *fakeBankRepo) Create(_ context.Context, bank *models.Bank) error {
	f.banks[bank.ID] = bank
	return nil
}

func (f *fakeBankRepo) GetByUserID(_ context.Context, userID uint) (*models.Bank, error) {
	for _, b := range f.banks {
		if b.UserID == userID {
			return b, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBankRepo) Update(_ context.Context, bank *models.Bank) error {
	f.banks[bank.ID] = bank
	return nil
}

func strPtr(s string) *string { return &s }

func floatPtr(v float64) *float64 { return &v }

func newProfileTestService() (*ProfileService, *fakeUserRepo, *fakeFarmerRepo) {
	userRepo := newFakeUserRepo(&models.User{
		ID:            10,
		Username:      "ramesh",
		Email:         "ramesh@example.com",
		Phone:         "+911234567890",
		Role:          "FARMER",
		EmailVerified: true,
		PhoneVerified: true,
	})
	farmerRepo := newFakeFarmerRepo(&models.FarmerProfile{
		ID: 1, UserID: 10, Name: "Ramesh Patel", Region: "Gujarat",
	})
	return NewProfileService(userRepo, farmerRepo, newFakeBankRepo()), userRepo, farmerRepo
}

func TestGetProfileReturnsFarmer(t *testing.T) {
	svc, _, _ := newProfileTestService()

	profile, err := svc.GetProfile(context.Background(), 10)
	require.NoError(t, err)
	require.NotNil(t, profile.Farmer)
	assert.Nil(t, profile.Bank)
	assert.Equal(t, "Ramesh Patel", profile.Farmer.Name)
	assert.Equal(t, "ramesh", profile.User.Username)
}

func TestUpdateProfileEmailChangeResetsVerification(t *testing.T) {
	svc, userRepo, _ := newProfileTestService()

	_, err := svc.UpdateProfile(context.Background(), 10, &UpdateProfileInput{
		Email: strPtr("new@example.com"),
	})
	require.NoError(t, err)

	user, _ := userRepo.GetByID(context.Background(), 10)
	assert.Equal(t, "new@example.com", user.Email)
	assert.False(t, user.EmailVerified)
	// Phone untouched, stays verified
	assert.True(t, user.PhoneVerified)
}

func TestUpdateProfilePhoneChangeResetsVerification(t *testing.T) {
	svc, userRepo, _ := newProfileTestService()

	_, err := svc.UpdateProfile(context.Background(), 10, &UpdateProfileInput{
		Phone: strPtr("+919999999999"),
	})
	require.NoError(t, err)

	user, _ := userRepo.GetByID(context.Background(), 10)
	assert.False(t, user.PhoneVerified)
	assert.True(t, user.EmailVerified)
}

func TestUpdateProfileSameEmailKeepsVerification(t *testing.T) {
	svc, userRepo, _ := newProfileTestService()

	_, err := svc.UpdateProfile(context.Background(), 10, &UpdateProfileInput{
		Email: strPtr("ramesh@example.com"),
	})
	require.NoError(t, err)

	user, _ := userRepo.GetByID(context.Background(), 10)
	assert.True(t, user.EmailVerified)
}

func TestUpdateProfileRejectsTakenEmail(t *testing.T) {
	svc, userRepo, _ := newProfileTestService()
	userRepo.Create(context.Background(), &models.User{
		ID: 11, Username: "sunita", Email: "sunita@example.com",
	})

	_, err := svc.UpdateProfile(context.Background(), 10, &UpdateProfileInput{
		Email: strPtr("sunita@example.com"),
	})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestUpdateProfileFarmFields(t *testing.T) {
	svc, _, farmerRepo := newProfileTestService()

	profile, err := svc.UpdateProfile(context.Background(), 10, &UpdateProfileInput{
		Region:   strPtr("Punjab"),
		LandSize: floatPtr(4.2),
		SoilPH:   floatPtr(6.8),
	})
	require.NoError(t, err)
	assert.Equal(t, "Punjab", profile.Farmer.Region)
	assert.Equal(t, 4.2, profile.Farmer.LandSize)

	farmer, _ := farmerRepo.GetByID(context.Background(), 1)
	assert.Equal(t, 6.8, farmer.SoilPH)
	// Untouched fields keep their values
	assert.Equal(t, "Ramesh Patel", farmer.Name)
}

func TestChangePassword(t *testing.T) {
	svc, userRepo, _ := newProfileTestService()

	hashed, err := password.Hash("old-password-1")
	require.NoError(t, err)
	user, _ := userRepo.GetByID(context.Background(), 10)
	user.Password = hashed

	err = svc.ChangePassword(context.Background(), 10, &ChangePasswordInput{
		OldPassword: "wrong",
		NewPassword: "new-password-1",
	})
	assert.ErrorIs(t, err, ErrOldPasswordWrong)

	err = svc.ChangePassword(context.Background(), 10, &ChangePasswordInput{
		OldPassword: "old-password-1",
		NewPassword: "new-password-1",
	})
	require.NoError(t, err)

	user, _ = userRepo.GetByID(context.Background(), 10)
	assert.True(t, password.Verify("new-password-1", user.Password))
}
