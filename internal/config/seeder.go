package config

import (
	"log"
	"time"

	"github.com/YashKambaria/Farmer-Helping-Team/internal/adapters/persistence/models"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedDemoBank(); err != nil {
		log.Printf("⚠️ Bank seeder skipped: %v", err)
	}
	if err := s.seedDemoFarmers(); err != nil {
		log.Printf("⚠️ Farmer seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedDemoBank seeds the demo bank account for development/testing
func (s *Seeder) seedDemoBank() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", "BANK").Count(&count)
	if count > 0 {
		return nil // Bank already exists
	}

	hashedPassword, err := password.Hash("bank123456")
	if err != nil {
		return err
	}

	user := &models.User{
		Username: "adb_bank",
		Email:    "credit@adb.example.com",
		Password: hashedPassword,
		Role:     "BANK",
		IsActive: true,
	}
	if err := s.db.Create(user).Error; err != nil {
		return err
	}

	bank := &models.Bank{
		UserID:       user.ID,
		Name:         "Agricultural Development Bank",
		Branch:       "Central",
		Region:       "Gujarat",
		ContactEmail: user.Email,
	}
	if err := s.db.Create(bank).Error; err != nil {
		return err
	}

	log.Printf("✅ Demo bank created: %s", bank.Name)
	return nil
}

// seedDemoFarmers seeds sample farmer profiles and approved loans so the
// review dashboard has data before any real signups happen
func (s *Seeder) seedDemoFarmers() error {
	var count int64
	s.db.Model(&models.FarmerProfile{}).Count(&count)
	if count > 0 {
		return nil // Farmers already seeded
	}

	var bank models.Bank
	if err := s.db.First(&bank).Error; err != nil {
		return err
	}

	type demoFarmer struct {
		username string
		name     string
		region   string
		crop     string
		landSize float64
		income   float64
		yield    float64
		score    float64
		amount   float64
		purpose  string
	}

	demos := []demoFarmer{
		{"ramesh_p", "Ramesh Patel", "Gujarat", "Cotton", 5.2, 320000, 2.1, 78, 150000, "Drip irrigation system"},
		{"sunita_d", "Sunita Devi", "Punjab", "Wheat", 3.8, 280000, 3.4, 82, 120000, "Seed and fertilizer purchase"},
		{"arjun_r", "Arjun Reddy", "Telangana", "Rice", 4.5, 250000, 2.8, 71, 180000, "Harvester rental"},
	}

	approved := time.Now().AddDate(0, -1, 0)

	for _, d := range demos {
		hashedPassword, err := password.Hash("farmer123456")
		if err != nil {
			return err
		}

		user := &models.User{
			Username: d.username,
			Email:    d.username + "@example.com",
			Password: hashedPassword,
			Role:     "FARMER",
			IsActive: true,
		}
		if err := s.db.Create(user).Error; err != nil {
			return err
		}

		score := d.score
		farmer := &models.FarmerProfile{
			UserID:       user.ID,
			Name:         d.name,
			Country:      "India",
			Region:       d.region,
			LandSize:     d.landSize,
			SoilType:     "Loamy",
			CropTypes:    d.crop,
			PastYield:    d.yield,
			AnnualIncome: d.income,
			CreditScore:  &score,
		}
		if err := s.db.Create(farmer).Error; err != nil {
			return err
		}

		loan := &models.LoanRecord{
			BankID:       bank.ID,
			FarmerID:     farmer.ID,
			Amount:       d.amount,
			Purpose:      d.purpose,
			Status:       models.LoanStatusApproved,
			ApprovedDate: &approved,
			FarmerName:   farmer.Name,
			FarmerRegion: farmer.Region,
			FarmerCrop:   farmer.CropTypes,
			FarmerScore:  &score,
		}
		if err := s.db.Create(loan).Error; err != nil {
			return err
		}
	}

	log.Printf("✅ Seeded %d demo farmers with approved loans", len(demos))
	return nil
}
