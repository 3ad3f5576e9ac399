package services

import (
	"context"
	"errors"

	"github.com/YashKambaria/Farmer-Helping-Team/internal/adapters/persistence/models"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/adapters/persistence/repositories"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/core/domain"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/pkg/password"

	"gorm.io/gorm"
)

// Profile errors
var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrOldPasswordWrong   = errors.New("old password is incorrect")
)

// ProfileService handles profile reads and edits for both roles
type ProfileService struct {
	userRepo   repositories.UserRepository
	farmerRepo repositories.FarmerRepository
	bankRepo   repositories.BankRepository
}

// NewProfileService creates a new profile service
func NewProfileService(
	userRepo repositories.UserRepository,
	farmerRepo repositories.FarmerRepository,
	bankRepo repositories.BankRepository,
) *ProfileService {
	return &ProfileService{
		userRepo:   userRepo,
		farmerRepo: farmerRepo,
		bankRepo:   bankRepo,
	}
}

// ProfileResponse bundles the account with its role profile
type ProfileResponse struct {
	User   *models.UserResponse   `json:"user"`
	Farmer *models.FarmerResponse `json:"farmer,omitempty"`
	Bank   *models.Bank           `json:"bank,omitempty"`
}

// UpdateProfileInput represents profile update input.
// Nil pointers mean "leave unchanged".
type UpdateProfileInput struct {
	Email              *string  `json:"email"`
	Phone              *string  `json:"phone"`
	Name               *string  `json:"name"`
	Country            *string  `json:"country"`
	Region             *string  `json:"region"`
	LandSize           *float64 `json:"land_size"`
	SoilType           *string  `json:"soil_type"`
	CropTypes          *string  `json:"crop_types"`
	PastYield          *float64 `json:"past_yield"`
	AnnualIncome       *float64 `json:"annual_income"`
	SoilPH             *float64 `json:"soil_ph"`
	NitrogenLevel      *float64 `json:"nitrogen_level"`
	OrganicMatterLevel *float64 `json:"organic_matter_level"`
	LandQualityScore   *float64 `json:"land_quality_score"`
	PastRainfall       *float64 `json:"past_rainfall"`
	AvgTemperature     *float64 `json:"avg_temperature"`
}

// ChangePasswordInput represents change password input
type ChangePasswordInput struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// GetProfile returns the account plus its farmer or bank profile
func (s *ProfileService) GetProfile(ctx context.Context, userID uint) (*ProfileResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	resp := &ProfileResponse{User: user.ToResponse()}

	switch user.Role {
	case "FARMER":
		farmer, err := s.farmerRepo.GetByUserID(ctx, userID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
		} else {
			resp.Farmer = farmer.ToResponse()
		}
	case "BANK":
		bank, err := s.bankRepo.GetByUserID(ctx, userID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
		} else {
			resp.Bank = bank
		}
	}

	return resp, nil
}

// UpdateProfile updates contact and (for farmers) agronomic fields.
// Changing a contact field resets its verified flag; the user must pass
// OTP verification again for the new value.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uint, input *UpdateProfileInput) (*ProfileResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	// 1. Contact fields on the account
	if input.Email != nil && *input.Email != user.Email {
		exists, err := s.userRepo.ExistsByEmail(ctx, *input.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrEmailAlreadyExists
		}
		user.Email = *input.Email
		user.EmailVerified = false
	}
	if input.Phone != nil && *input.Phone != user.Phone {
		user.Phone = *input.Phone
		user.PhoneVerified = false
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	// 2. Role profile fields
	if user.Role == "FARMER" {
		farmer, err := s.farmerRepo.GetByUserID(ctx, userID)
		if err != nil {
			return nil, domain.ErrProfileNotFound
		}

		applyFarmerUpdates(farmer, input)

		if err := s.farmerRepo.Update(ctx, farmer); err != nil {
			return nil, err
		}
	}

	return s.GetProfile(ctx, userID)
}

// ChangePassword verifies the old password and stores the new hash
func (s *ProfileService) ChangePassword(ctx context.Context, userID uint, input *ChangePasswordInput) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return ErrUserNotFound
	}

	if !password.Verify(input.OldPassword, user.Password) {
		return ErrOldPasswordWrong
	}

	hashed, err := password.Hash(input.NewPassword)
	if err != nil {
		return err
	}

	user.Password = hashed
	return s.userRepo.Update(ctx, user)
}

func applyFarmerUpdates(farmer *models.FarmerProfile, input *UpdateProfileInput) {
	if input.Name != nil {
		farmer.Name = *input.Name
	}
	if input.Country != nil {
		farmer.Country = *input.Country
	}
	if input.Region != nil {
		farmer.Region = *input.Region
	}
	if input.LandSize != nil {
		farmer.LandSize = *input.LandSize
	}
	if input.SoilType != nil {
		farmer.SoilType = *input.SoilType
	}
	if input.CropTypes != nil {
		farmer.CropTypes = *input.CropTypes
	}
	if input.PastYield != nil {
		farmer.PastYield = *input.PastYield
	}
	if input.AnnualIncome != nil {
		farmer.AnnualIncome = *input.AnnualIncome
	}
	if input.SoilPH != nil {
		farmer.SoilPH = *input.SoilPH
	}
	if input.NitrogenLevel != nil {
		farmer.NitrogenLevel = *input.NitrogenLevel
	}
	if input.OrganicMatterLevel != nil {
		farmer.OrganicMatterLevel = *input.OrganicMatterLevel
	}
	if input.LandQualityScore != nil {
		farmer.LandQualityScore = *input.LandQualityScore
	}
	if input.PastRainfall != nil {
		farmer.PastRainfall = *input.PastRainfall
	}
	if input.AvgTemperature != nil {
		farmer.AvgTemperature = *input.AvgTemperature
	}
}
