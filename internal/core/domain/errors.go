package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInternalServer     = errors.New("internal server error")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// User errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrInvalidPassword   = errors.New("invalid password")
	ErrProfileNotFound   = errors.New("farmer profile not found")
	ErrBankNotFound      = errors.New("bank not found")
)

// OTP errors
var (
	ErrOTPNotFound    = errors.New("otp not found or expired")
	ErrOTPInvalid     = errors.New("otp code is invalid")
	ErrOTPMaxAttempts = errors.New("otp max attempts exceeded")
	ErrOTPThrottled   = errors.New("otp requested too soon")
)

// Weather errors
var (
	ErrCityRequired    = errors.New("city is required")
	ErrUpstreamWeather = errors.New("weather provider unavailable")
)

// Scoring errors
var (
	ErrScoreUnavailable = errors.New("credit score service unavailable")
	ErrScoreNotReady    = errors.New("credit score has not been calculated yet")
)

// Chat errors
var (
	ErrChatMessageNotFound = errors.New("chat message not found")
	ErrChatUpstream        = errors.New("chat assistant unavailable")
)

// Loan errors
var (
	ErrLoanNotFound = errors.New("loan not found")
)
