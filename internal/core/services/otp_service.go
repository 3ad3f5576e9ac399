package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/YashKambaria/Farmer-Helping-Team/internal/adapters/persistence/repositories"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/config"
	"github.com/YashKambaria/Farmer-Helping-Team/internal/core/domain"

	"github.com/redis/go-redis/v9"
)

// ============================================================
// OTP Service - email/phone verification codes
// ============================================================

// OTPPurpose identifies which contact field is being verified
type OTPPurpose string

const (
	OTPPurposeEmail OTPPurpose = "email"
	OTPPurposePhone OTPPurpose = "phone"
)

// OTPService issues and verifies one-time codes, backed by Redis.
// Codes expire by TTL, attempts are counted atomically, and resends
// are throttled per user+purpose.
type OTPService struct {
	redisClient *redis.Client
	userRepo    repositories.UserRepository
	notifier    Notifier
	cfg         config.OTPConfig
}

// NewOTPService creates a new OTP service
func NewOTPService(redisClient *redis.Client, userRepo repositories.UserRepository, notifier Notifier, cfg config.OTPConfig) *OTPService {
	return &OTPService{
		redisClient: redisClient,
		userRepo:    userRepo,
		notifier:    notifier,
		cfg:         cfg,
	}
}

func (s *OTPService) codeKey(purpose OTPPurpose, userID uint) string {
	return fmt.Sprintf("otp:%s:%d", purpose, userID)
}

func (s *OTPService) attemptsKey(purpose OTPPurpose, userID uint) string {
	return fmt.Sprintf("otp:att:%s:%d", purpose, userID)
}

func (s *OTPService) resendKey(purpose OTPPurpose, userID uint) string {
	return fmt.Sprintf("otp:res:%s:%d", purpose, userID)
}

// Send generates a code, stores it with TTL and delivers it over the
// channel matching the purpose (SMS for phone, email otherwise)
func (s *OTPService) Send(ctx context.Context, userID uint, purpose OTPPurpose) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return ErrUserNotFound
	}

	// Resend throttle
	ttl, err := s.redisClient.TTL(ctx, s.resendKey(purpose, userID)).Result()
	if err != nil {
		return fmt.Errorf("failed to check resend throttle: %w", err)
	}
	if ttl > 0 {
		return domain.ErrOTPThrottled
	}

	code, err := generateSecureOTP(s.cfg.Length)
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}

	codeTTL := time.Duration(s.cfg.TTLMinutes) * time.Minute

	if err := s.redisClient.Set(ctx, s.codeKey(purpose, userID), code, codeTTL).Err(); err != nil {
		return fmt.Errorf("failed to store OTP: %w", err)
	}
	if err := s.redisClient.Set(ctx, s.attemptsKey(purpose, userID), 0, codeTTL).Err(); err != nil {
		return fmt.Errorf("failed to init attempts counter: %w", err)
	}
	if err := s.redisClient.Set(ctx, s.resendKey(purpose, userID), 1,
		time.Duration(s.cfg.ResendSeconds)*time.Second).Err(); err != nil {
		return fmt.Errorf("failed to set resend throttle: %w", err)
	}

	message := fmt.Sprintf("Your FarmCredit verification code is %s. Valid for %d minutes.", code, s.cfg.TTLMinutes)

	var sendErr error
	if purpose == OTPPurposePhone {
		sendErr = s.notifier.SendSMS(user.Phone, message)
	} else {
		sendErr = s.notifier.SendEmail(user.Email, "FarmCredit verification code", message)
	}
	if sendErr != nil {
		// Clean up so the user can retry immediately after a delivery failure
		s.redisClient.Del(ctx, s.codeKey(purpose, userID), s.attemptsKey(purpose, userID), s.resendKey(purpose, userID))
		return fmt.Errorf("failed to deliver OTP: %w", sendErr)
	}

	return nil
}

// Verify checks the submitted code. On success the matching verified
// flag is set on the user and the code is deleted.
func (s *OTPService) Verify(ctx context.Context, userID uint, purpose OTPPurpose, code string) error {
	attempts, err := s.redisClient.Incr(ctx, s.attemptsKey(purpose, userID)).Result()
	if err != nil {
		return fmt.Errorf("failed to count attempt: %w", err)
	}

	if attempts > int64(s.cfg.MaxAttempts) {
		s.redisClient.Del(ctx, s.codeKey(purpose, userID), s.attemptsKey(purpose, userID))
		return domain.ErrOTPMaxAttempts
	}

	stored, err := s.redisClient.Get(ctx, s.codeKey(purpose, userID)).Result()
	if errors.Is(err, redis.Nil) {
		// The Incr above recreated the counter without a TTL once the
		// code expired, drop it instead of stranding it
		s.redisClient.Del(ctx, s.attemptsKey(purpose, userID))
		return domain.ErrOTPNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load OTP: %w", err)
	}

	if stored != code {
		return domain.ErrOTPInvalid
	}

	// Success - consume the code and mark the contact verified
	s.redisClient.Del(ctx, s.codeKey(purpose, userID), s.attemptsKey(purpose, userID))

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return ErrUserNotFound
	}

	if purpose == OTPPurposePhone {
		user.PhoneVerified = true
	} else {
		user.EmailVerified = true
	}

	return s.userRepo.Update(ctx, user)
}

// generateSecureOTP generates a cryptographically secure random OTP
func generateSecureOTP(length int) (string, error) {
	result := ""
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		result += fmt.Sprintf("%d", n.Int64())
	}
	return result, nil
}
