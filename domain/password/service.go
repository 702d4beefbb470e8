package password

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"

	"github.com/gcit-apps/be-suggestion-box/pkg"
	"github.com/gcit-apps/be-suggestion-box/pkg/apperrors"
	"github.com/gcit-apps/be-suggestion-box/pkg/logger"
	"github.com/gcit-apps/be-suggestion-box/utils"
)

// Service orchestrates the forgot-password flow: request throttling, OTP
// issuance, verification and the final password reset. Collaborators are
// injected so the whole state machine is testable without a database.
//
// Concurrent requests for the same email are not serialized here; the user
// record is the only shared state and the last write wins on the OTP fields.
type Service struct {
	store    UserStore
	mailer   pkg.Mailer
	throttle Throttle
	log      logger.Logger

	otpExpiry time.Duration
	otpCost   int

	now      func() time.Time
	dispatch func(func())
}

// NewService wires a Service with configured expiry and hash cost
// (OTP_EXPIRY, OTP_BCRYPT_COST).
func NewService(store UserStore, mailer pkg.Mailer, throttle Throttle) *Service {
	otpExpiry := viper.GetDuration("OTP_EXPIRY")
	if otpExpiry == 0 {
		otpExpiry = DefaultOTPExpiry
	}

	otpCost := viper.GetInt("OTP_BCRYPT_COST")
	if otpCost == 0 {
		otpCost = bcrypt.DefaultCost
	}

	return &Service{
		store:     store,
		mailer:    mailer,
		throttle:  throttle,
		log:       logger.Get().WithComponent("password"),
		otpExpiry: otpExpiry,
		otpCost:   otpCost,
		now:       time.Now,
		dispatch:  func(f func()) { go f() },
	}
}

// RequestOTP handles a forgot-password request. A nil return means the
// caller must answer with the generic success-shaped message: unknown
// emails, suppressed re-issues and actual issuance are indistinguishable to
// the client.
func (s *Service) RequestOTP(email string) *apperrors.AppError {
	email = utils.NormalizeEmail(email)
	if email == "" {
		return apperrors.NewBadRequest(apperrors.ErrCodeValidationFailed, "Invalid request")
	}

	now := s.now()

	if s.throttle.Locked(email, now) {
		return apperrors.NewTooManyRequests(
			apperrors.ErrCodeRateLimitExceeded,
			"Too many OTP requests. Try again later.",
		)
	}

	user, err := s.store.FindByEmail(email)
	if err != nil {
		if err == ErrUserNotFound {
			// Don't reveal whether the account exists.
			return nil
		}
		s.log.Error("Failed to fetch user for OTP request", err, logger.Email(email))
		return apperrors.NewInternal(apperrors.ErrCodeDatabaseError, "Server error. Please try again later.", err)
	}

	// An unexpired OTP is already outstanding: don't resend, don't count.
	if user.ResetOTPExpiry.Valid && user.ResetOTPExpiry.Time.After(now) {
		return nil
	}

	if s.throttle.Hit(email, now) {
		return apperrors.NewTooManyRequests(
			apperrors.ErrCodeRateLimitExceeded,
			"Too many OTP requests. Try again later.",
		)
	}

	code, err := generateOTP()
	if err != nil {
		s.log.Error("Failed to generate OTP", err, logger.Email(email))
		return apperrors.NewInternal(apperrors.ErrCodeUnexpectedError, "Server error. Please try again later.", err)
	}

	otpHash, err := utils.HashPasswordCost(code, s.otpCost)
	if err != nil {
		s.log.Error("Failed to hash OTP", err, logger.Email(email))
		return apperrors.NewInternal(apperrors.ErrCodeUnexpectedError, "Server error. Please try again later.", err)
	}

	if err := s.store.SetOTP(user.ID, otpHash, now.Add(s.otpExpiry)); err != nil {
		s.log.Error("Failed to persist OTP", err, logger.UserID(user.ID))
		return apperrors.NewInternal(apperrors.ErrCodeDatabaseError, "Server error. Please try again later.", err)
	}

	// Fire-and-forget: the response never waits on, or reveals, delivery.
	toEmail := user.Email
	toName := user.Name
	s.dispatch(func() {
		if err := s.mailer.Send(toEmail, "Password Reset OTP", otpEmailBody(toName, code, s.otpExpiry)); err != nil {
			s.log.Error("Failed to send OTP email", err,
				logger.Email(toEmail),
				logger.Operation("forgot_password"),
			)
		}
	})

	s.log.Info("OTP issued", logger.UserID(user.ID))
	return nil
}

// VerifyOTP confirms a presented code against the outstanding OTP hash. On
// success only the verified flag is set; the hash and expiry stay in place
// for the reset step to validate the window.
func (s *Service) VerifyOTP(email, otp string) *apperrors.AppError {
	email = utils.NormalizeEmail(email)
	if email == "" || otp == "" {
		return apperrors.NewBadRequest(apperrors.ErrCodeValidationFailed, "Email and OTP are required")
	}

	user, err := s.store.FindByEmail(email)
	if err != nil {
		if err == ErrUserNotFound {
			return apperrors.NewBadRequest(apperrors.ErrCodeOTPInvalid, "Invalid OTP or email")
		}
		s.log.Error("Failed to fetch user for OTP verification", err, logger.Email(email))
		return apperrors.NewInternal(apperrors.ErrCodeDatabaseError, "Server error", err)
	}

	if !user.ResetOTP.Valid || !user.ResetOTPExpiry.Valid || user.ResetOTPExpiry.Time.Before(s.now()) {
		return apperrors.NewBadRequest(apperrors.ErrCodeOTPExpired, "OTP expired or not generated")
	}

	if !utils.CheckPasswordHash(otp, user.ResetOTP.String) {
		return apperrors.NewBadRequest(apperrors.ErrCodeOTPInvalid, "Invalid OTP")
	}

	if err := s.store.MarkOTPVerified(user.ID); err != nil {
		s.log.Error("Failed to mark OTP verified", err, logger.UserID(user.ID))
		return apperrors.NewInternal(apperrors.ErrCodeDatabaseError, "Server error", err)
	}

	s.log.Info("OTP verified", logger.UserID(user.ID))
	return nil
}

// ResetPassword commits a new password once the OTP was verified and the
// original expiry window has not elapsed, then clears the OTP state.
func (s *Service) ResetPassword(email, newPassword, confirmPassword string) *apperrors.AppError {
	email = utils.NormalizeEmail(email)
	if email == "" || newPassword == "" || confirmPassword == "" {
		return apperrors.NewBadRequest(apperrors.ErrCodeValidationFailed, "All fields are required")
	}

	if newPassword != confirmPassword {
		return apperrors.NewBadRequest(apperrors.ErrCodeValidationFailed, "Passwords do not match")
	}

	user, err := s.store.FindByEmail(email)
	if err != nil {
		if err == ErrUserNotFound {
			return apperrors.NewBadRequest(apperrors.ErrCodeValidationFailed, "Invalid request")
		}
		s.log.Error("Failed to fetch user for password reset", err, logger.Email(email))
		return apperrors.NewInternal(apperrors.ErrCodeDatabaseError, "Server error", err)
	}

	// A verified flag alone is not enough: the original OTP window must
	// still be open, otherwise a verified-but-stale OTP could be replayed.
	if !user.IsOTPVerified || !user.ResetOTPExpiry.Valid || user.ResetOTPExpiry.Time.Before(s.now()) {
		return apperrors.NewBadRequest(apperrors.ErrCodeOTPNotVerified, "OTP not verified or has expired")
	}

	passwordHash, err := utils.HashPassword(newPassword)
	if err != nil {
		s.log.Error("Failed to hash new password", err, logger.UserID(user.ID))
		return apperrors.NewInternal(apperrors.ErrCodeUnexpectedError, "Server error", err)
	}

	if err := s.store.CompleteReset(user.ID, passwordHash); err != nil {
		s.log.Error("Failed to complete password reset", err, logger.UserID(user.ID))
		return apperrors.NewInternal(apperrors.ErrCodeDatabaseError, "Server error", err)
	}

	s.log.Info("Password reset completed", logger.UserID(user.ID))
	return nil
}

// generateOTP draws a 6-digit code uniformly from [100000, 999999].
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func otpEmailBody(name, code string, expiry time.Duration) string {
	if name == "" {
		name = "user"
	}
	return fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 15px; background-color: #f9f9f9;">
			<div style="max-width: 500px; margin: auto; background: white; border-radius: 8px; padding: 20px; border: 1px solid #ddd;">
				<h2 style="color: #006600;">Password Reset OTP</h2>
				<p>Dear %s,</p>
				<p>You requested to reset your password for the suggestion box system. Use the OTP below:</p>
				<h1 style="color: #333; text-align:center; letter-spacing: 5px;">%s</h1>
				<p>This OTP will expire in <strong>%d minutes</strong>.</p>
				<p style="margin-top: 20px;">Best Regards,<br><strong>Suggestion Box System</strong></p>
			</div>
		</div>
	`, name, code, int(expiry.Minutes()))
}
