package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Auth & User Tables
// ============================================================

// User represents users table
type User struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Username      string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email         string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Phone         string         `gorm:"size:20" json:"phone"`
	Password      string         `gorm:"size:255;not null" json:"-"`
	Role          string         `gorm:"size:20;default:'FARMER'" json:"role"`
	EmailVerified bool           `gorm:"default:false" json:"email_verified"`
	PhoneVerified bool           `gorm:"default:false" json:"phone_verified"`
	IsActive      bool           `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID            uint      `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Role          string    `json:"role"`
	EmailVerified bool      `json:"email_verified"`
	PhoneVerified bool      `json:"phone_verified"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		Phone:         u.Phone,
		Role:          u.Role,
		EmailVerified: u.EmailVerified,
		PhoneVerified: u.PhoneVerified,
		IsActive:      u.IsActive,
		CreatedAt:     u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Farmer & Bank Tables
// ============================================================

// FarmerProfile represents farmer_profiles table
type FarmerProfile struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	UserID             uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	Name               string         `gorm:"size:100;not null" json:"name"`
	Country            string         `gorm:"size:100" json:"country"`
	Region             string         `gorm:"size:100;index" json:"region"`
	LandSize           float64        `gorm:"type:decimal(10,2);default:0" json:"land_size"`
	SoilType           string         `gorm:"size:50" json:"soil_type"`
	CropTypes          string         `gorm:"size:200" json:"crop_types"`
	PastYield          float64        `gorm:"type:decimal(10,2);default:0" json:"past_yield"`
	AnnualIncome       float64        `gorm:"type:decimal(15,2);default:0" json:"annual_income"`
	SoilPH             float64        `gorm:"type:decimal(4,2);default:0" json:"soil_ph"`
	NitrogenLevel      float64        `gorm:"type:decimal(6,2);default:0" json:"nitrogen_level"`
	OrganicMatterLevel float64        `gorm:"type:decimal(6,2);default:0" json:"organic_matter_level"`
	LandQualityScore   float64        `gorm:"type:decimal(4,1);default:0" json:"land_quality_score"`
	PastRainfall       float64        `gorm:"type:decimal(8,2);default:0" json:"past_rainfall"`
	AvgTemperature     float64        `gorm:"type:decimal(5,2);default:0" json:"avg_temperature"`
	CreditScore        *float64       `gorm:"type:decimal(5,2)" json:"credit_score"`
	ScoreUpdatedAt     *time.Time     `json:"score_updated_at"`
	CreatedAt          time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (FarmerProfile) TableName() string {
	return "farmer_profiles"
}

// FarmerResponse DTO
type FarmerResponse struct {
	ID                 uint       `json:"id"`
	UserID             uint       `json:"user_id"`
	Name               string     `json:"name"`
	Country            string     `json:"country"`
	Region             string     `json:"region"`
	LandSize           float64    `json:"land_size"`
	SoilType           string     `json:"soil_type"`
	CropTypes          string     `json:"crop_types"`
	PastYield          float64    `json:"past_yield"`
	AnnualIncome       float64    `json:"annual_income"`
	SoilPH             float64    `json:"soil_ph"`
	NitrogenLevel      float64    `json:"nitrogen_level"`
	OrganicMatterLevel float64    `json:"organic_matter_level"`
	LandQualityScore   float64    `json:"land_quality_score"`
	PastRainfall       float64    `json:"past_rainfall"`
	AvgTemperature     float64    `json:"avg_temperature"`
	CreditScore        *float64   `json:"credit_score"`
	CreditScore850     *int       `json:"credit_score_850"`
	ScoreUpdatedAt     *time.Time `json:"score_updated_at"`
}

func (f *FarmerProfile) ToResponse() *FarmerResponse {
	resp := &FarmerResponse{
		ID:                 f.ID,
		UserID:             f.UserID,
		Name:               f.Name,
		Country:            f.Country,
		Region:             f.Region,
		LandSize:           f.LandSize,
		SoilType:           f.SoilType,
		CropTypes:          f.CropTypes,
		PastYield:          f.PastYield,
		AnnualIncome:       f.AnnualIncome,
		SoilPH:             f.SoilPH,
		NitrogenLevel:      f.NitrogenLevel,
		OrganicMatterLevel: f.OrganicMatterLevel,
		LandQualityScore:   f.LandQualityScore,
		PastRainfall:       f.PastRainfall,
		AvgTemperature:     f.AvgTemperature,
		CreditScore:        f.CreditScore,
		ScoreUpdatedAt:     f.ScoreUpdatedAt,
	}

	// Single authoritative value is the 0-100 model score.
	// The 0-850 field is derived for screens that display the consumer scale.
	if f.CreditScore != nil {
		scaled := int(*f.CreditScore*8.5 + 0.5)
		resp.CreditScore850 = &scaled
	}

	return resp
}

// Bank represents banks table
type Bank struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UserID       uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	Name         string         `gorm:"size:100;not null" json:"name"`
	Branch       string         `gorm:"size:100" json:"branch"`
	Region       string         `gorm:"size:100" json:"region"`
	ContactEmail string         `gorm:"size:100" json:"contact_email"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (Bank) TableName() string {
	return "banks"
}

// ============================================================
// Loan Table
// ============================================================

// LoanRecord represents loan_records table.
// Farmer fields are snapshotted at approval time so the review screen
// stays stable even if the profile changes later.
type LoanRecord struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	BankID       uint           `gorm:"index;not null" json:"bank_id"`
	FarmerID     uint           `gorm:"index;not null" json:"farmer_id"`
	Amount       float64        `gorm:"type:decimal(15,2);not null" json:"amount"`
	Purpose      string         `gorm:"size:200" json:"purpose"`
	Status       string         `gorm:"size:20;default:'APPROVED'" json:"status"`
	ApprovedDate *time.Time     `json:"approved_date"`
	FarmerName   string         `gorm:"size:100" json:"farmer_name"`
	FarmerRegion string         `gorm:"size:100" json:"farmer_region"`
	FarmerCrop   string         `gorm:"size:200" json:"farmer_crop"`
	FarmerScore  *float64       `gorm:"type:decimal(5,2)" json:"farmer_score"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Bank   *Bank          `gorm:"foreignKey:BankID" json:"bank,omitempty"`
	Farmer *FarmerProfile `gorm:"foreignKey:FarmerID" json:"farmer,omitempty"`
}

func (LoanRecord) TableName() string {
	return "loan_records"
}

// Loan status
const (
	LoanStatusPending  = "PENDING"
	LoanStatusApproved = "APPROVED"
	LoanStatusRejected = "REJECTED"
)

// ============================================================
// Chat Table
// ============================================================

// ChatMessage represents chat_messages table (append-only)
type ChatMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Sender    string    `gorm:"size:10;not null" json:"sender"`
	IsError   bool      `gorm:"default:false" json:"is_error"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}

// ============================================================
// Weather Cache Table
// ============================================================

// WeatherCacheEntry represents weather_cache table.
// Day is the calendar day of the fetch (YYYY-MM-DD); entries from a
// previous day are stale regardless of elapsed time.
type WeatherCacheEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	City      string    `gorm:"size:100;not null;index:idx_city_day,unique" json:"city"`
	Day       string    `gorm:"size:10;not null;index:idx_city_day,unique" json:"day"`
	Forecast  string    `gorm:"type:text;not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (WeatherCacheEntry) TableName() string {
	return "weather_cache"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&FarmerProfile{},
		&Bank{},
		&LoanRecord{},
		&ChatMessage{},
		&WeatherCacheEntry{},
	)
}
