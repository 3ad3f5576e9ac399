package services

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/YashKambaria/Farmer-Helping-Team/internal/config"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Notifier delivers OTP codes and alerts to users
type Notifier interface {
	SendSMS(to, message string) error
	SendEmail(to, subject, body string) error
}

// NotificationService sends SMS via Twilio and email via SMTP
type NotificationService struct {
	cfg          *config.Config
	twilioClient *twilio.RestClient
	smsEnabled   bool
	emailEnabled bool
}

// NewNotificationService creates a new notification service.
// Channels without credentials are disabled, sends become no-ops with a log line.
func NewNotificationService(cfg *config.Config) *NotificationService {
	svc := &NotificationService{
		cfg:          cfg,
		smsEnabled:   cfg.Twilio.AccountSID != "" && cfg.Twilio.AuthToken != "",
		emailEnabled: cfg.SMTP.Host != "",
	}

	if svc.smsEnabled {
		svc.twilioClient = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.Twilio.AccountSID,
			Password: cfg.Twilio.AuthToken,
		})
	}

	return svc
}

// SendSMS sends a text message via Twilio
func (s *NotificationService) SendSMS(to, message string) error {
	if !s.smsEnabled {
		log.Printf("⚠️ SMS disabled, skipping message to %s", to)
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.cfg.Twilio.FromNumber)
	params.SetBody(message)

	if _, err := s.twilioClient.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}

	return nil
}

// SendEmail sends a plain-text email via SMTP
func (s *NotificationService) SendEmail(to, subject, body string) error {
	if !s.emailEnabled {
		log.Printf("⚠️ Email disabled, skipping message to %s", to)
		return nil
	}

	addr := s.cfg.SMTP.Host + ":" + s.cfg.SMTP.Port
	auth := smtp.PlainAuth("", s.cfg.SMTP.Username, s.cfg.SMTP.Password, s.cfg.SMTP.Host)

	msg := []byte("From: " + s.cfg.SMTP.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" +
		body + "\r\n")

	if err := smtp.SendMail(addr, auth, s.cfg.SMTP.From, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// NotifyLoanApproved emails the farmer that a loan was approved
func (s *NotificationService) NotifyLoanApproved(farmerEmail, farmerName, bankName string, amount float64, purpose string) {
	subject := "Loan approved by " + bankName
	body := fmt.Sprintf(
		"Dear %s,\n\nYour loan of %.2f for %q has been approved by %s.\nThe amount will be disbursed to your registered account.\n\nFarmCredit",
		farmerName, amount, purpose, bankName,
	)

	if err := s.SendEmail(farmerEmail, subject, body); err != nil {
		log.Printf("⚠️ Loan approval email failed for %s: %v", farmerEmail, err)
	}
}
