package password

import (
	"database/sql"
	"time"
)

// User is the credential-store subset this flow reads and writes.
type User struct {
	ID             int64          `db:"id"`
	Name           string         `db:"name"`
	Email          string         `db:"email"`
	Password       string         `db:"password"`
	ResetOTP       sql.NullString `db:"reset_otp"`
	ResetOTPExpiry sql.NullTime   `db:"reset_otp_expiry"`
	IsOTPVerified  bool           `db:"is_otp_verified"`
}

// ForgotPasswordRequest represents the forgot password request
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// VerifyOTPRequest represents the OTP verification request
type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// ResetPasswordRequest represents the password reset request
type ResetPasswordRequest struct {
	Email           string `json:"email"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Defaults for the OTP flow; all overridable via config.
const (
	DefaultOTPExpiry    = 5 * time.Minute
	DefaultRequestLimit = 5
	DefaultLockDuration = 15 * time.Minute
)

// GenericOTPMessage is returned by the forgot-password endpoint whether or
// not the account exists or an OTP was actually issued. Identical responses
// keep the endpoint from acting as an account-existence oracle.
const GenericOTPMessage = "If this email is registered, an OTP has been sent."
