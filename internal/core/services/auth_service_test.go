package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/YashKambaria/Farmer-Helping-Team/internal/adapters/persistence/models"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRefreshTokenRepo struct {
	tokens map[string]*models.RefreshToken
	nextID uint
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: make(map[string]*models.RefreshToken)}
}

func (f *fakeRefreshTokenRepo) Create(_ context.Context, token *models.RefreshToken) error {
	f.nextID++
	token.ID = f.nextID
	f.tokens[token.TokenHash] = token
	return nil
}

func (f *fakeRefreshTokenRepo) GetByTokenHash(_ context.Context, tokenHash string) (*models.RefreshToken, error) {
	token, ok := f.tokens[tokenHash]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return token, nil
}

func (f *fakeRefreshTokenRepo) Revoke(_ context.Context, id uint) error {
	now := time.Now()
	for _, token := range f.tokens {
		if token.ID == id {
			token.RevokedAt = &now
		}
	}
	return nil
}

func (f *fakeRefreshTokenRepo) RevokeByTokenHash(_ context.Context, tokenHash string) error {
	if token, ok := f.tokens[tokenHash]; ok && token.RevokedAt == nil {
		now := time.Now()
		token.RevokedAt = &now
	}
	return nil
}

func (f *fakeRefreshTokenRepo) RevokeAllByUserID(_ context.Context, userID uint) error {
	now := time.Now()
	for _, token := range f.tokens {
		if token.UserID == userID && token.RevokedAt == nil {
			token.RevokedAt = &now
		}
	}
	return nil
}

func (f *fakeRefreshTokenRepo) DeleteExpired(_ context.Context) error {
	for hash, token := range f.tokens {
		if token.IsExpired() {
			delete(f.tokens, hash)
		}
	}
	return nil
}

func newAuthTestService() (*AuthService, *fakeUserRepo, *fakeRefreshTokenRepo, *fakeFarmerRepo, *fakeBankRepo) {
	userRepo := newFakeUserRepo()
	tokenRepo := newFakeRefreshTokenRepo()
	farmerRepo := newFakeFarmerRepo()
	bankRepo := newFakeBankRepo()

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-access-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}

	return NewAuthService(userRepo, tokenRepo, farmerRepo, bankRepo, cfg), userRepo, tokenRepo, farmerRepo, bankRepo
}

func registerInput(role string) *RegisterInput {
	return &RegisterInput{
		Username:        "ramesh",
		Email:           "ramesh@example.com",
		Phone:           "+911234567890",
		Password:        "secret-pass-1",
		ConfirmPassword: "secret-pass-1",
		Role:            role,
		Name:            "Ramesh Patel",
		Region:          "Gujarat",
	}
}

func TestRegisterFarmerCreatesProfile(t *testing.T) {
	svc, _, _, farmerRepo, _ := newAuthTestService()

	result, err := svc.Register(context.Background(), registerInput("FARMER"))
	require.NoError(t, err)
	assert.Equal(t, "FARMER", result.UserType)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)

	farmer, err := farmerRepo.GetByUserID(context.Background(), result.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ramesh Patel", farmer.Name)
	assert.Equal(t, "Gujarat", farmer.Region)
}

func TestRegisterBankCreatesBank(t *testing.T) {
	svc, _, _, _, bankRepo := newAuthTestService()

	input := registerInput("BANK")
	input.BankName = "Agricultural Development Bank"
	input.BankBranch = "Ahmedabad"

	result, err := svc.Register(context.Background(), input)
	require.NoError(t, err)

	bank, err := bankRepo.GetByUserID(context.Background(), result.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Agricultural Development Bank", bank.Name)
	assert.Equal(t, "Ahmedabad", bank.Branch)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc, _, _, _, _ := newAuthTestService()

	_, err := svc.Register(context.Background(), registerInput("ADMIN"))
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestRegisterRejectsPasswordMismatch(t *testing.T) {
	svc, _, _, _, _ := newAuthTestService()

	input := registerInput("FARMER")
	input.ConfirmPassword = "different"

	_, err := svc.Register(context.Background(), input)
	assert.ErrorIs(t, err, ErrPasswordMismatch)
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	svc, _, _, _, _ := newAuthTestService()

	_, err := svc.Register(context.Background(), registerInput("FARMER"))
	require.NoError(t, err)

	dup := registerInput("FARMER")
	dup.Email = "other@example.com"
	_, err = svc.Register(context.Background(), dup)
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestRegisterRollsBackUserWhenProfileFails(t *testing.T) {
	svc, userRepo, _, farmerRepo, _ := newAuthTestService()
	farmerRepo.createErr = errors.New("insert failed")

	_, err := svc.Register(context.Background(), registerInput("FARMER"))
	require.Error(t, err)

	// No orphaned user survives the failed profile insert
	_, err = userRepo.GetByUsername(context.Background(), "ramesh")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// The username is free again, so the signup can be retried
	farmerRepo.createErr = nil
	_, err = svc.Register(context.Background(), registerInput("FARMER"))
	require.NoError(t, err)
}

func TestLogin(t *testing.T) {
	svc, _, _, _, _ := newAuthTestService()

	_, err := svc.Register(context.Background(), registerInput("FARMER"))
	require.NoError(t, err)

	result, err := svc.Login(context.Background(), &LoginInput{
		Username: "ramesh",
		Password: "secret-pass-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "ramesh", result.User.Username)

	_, err = svc.Login(context.Background(), &LoginInput{
		Username: "ramesh",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &LoginInput{
		Username: "nobody",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshTokenRotation(t *testing.T) {
	svc, _, _, _, _ := newAuthTestService()

	registered, err := svc.Register(context.Background(), registerInput("FARMER"))
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), registered.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, registered.RefreshToken, refreshed.RefreshToken)

	// The rotated-out token is dead
	_, err = svc.RefreshToken(context.Background(), registered.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)

	// The new one still works
	_, err = svc.RefreshToken(context.Background(), refreshed.RefreshToken)
	require.NoError(t, err)
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, _, _, _, _ := newAuthTestService()

	registered, err := svc.Register(context.Background(), registerInput("FARMER"))
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), registered.RefreshToken))

	_, err = svc.RefreshToken(context.Background(), registered.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}
