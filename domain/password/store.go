package password

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

// ErrUserNotFound is returned by a UserStore when no record matches.
var ErrUserNotFound = errors.New("user not found")

// UserStore is the credential-store boundary of the OTP flow. Each write
// method updates its fields in a single statement so no other writer can
// observe a partial update of the OTP triple.
type UserStore interface {
	FindByEmail(email string) (*User, error)
	// SetOTP persists a fresh OTP hash and expiry and clears the verified flag.
	SetOTP(userID int64, otpHash string, expiry time.Time) error
	MarkOTPVerified(userID int64) error
	// CompleteReset stores the new password hash and clears the OTP hash,
	// expiry and verified flag together.
	CompleteReset(userID int64, passwordHash string) error
}

// SQLUserStore implements UserStore over the users table.
type SQLUserStore struct {
	db *sqlx.DB
}

func NewSQLUserStore(db *sqlx.DB) *SQLUserStore {
	return &SQLUserStore{db: db}
}

func (s *SQLUserStore) FindByEmail(email string) (*User, error) {
	var user User
	err := s.db.Get(&user, `
		SELECT id, name, email, password, reset_otp, reset_otp_expiry, is_otp_verified
		FROM users
		WHERE email = $1
	`, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *SQLUserStore) SetOTP(userID int64, otpHash string, expiry time.Time) error {
	_, err := s.db.Exec(`
		UPDATE users
		SET reset_otp = $1, reset_otp_expiry = $2, is_otp_verified = FALSE, updated_at = NOW()
		WHERE id = $3
	`, otpHash, expiry, userID)
	return err
}

func (s *SQLUserStore) MarkOTPVerified(userID int64) error {
	_, err := s.db.Exec(`
		UPDATE users
		SET is_otp_verified = TRUE, updated_at = NOW()
		WHERE id = $1
	`, userID)
	return err
}

func (s *SQLUserStore) CompleteReset(userID int64, passwordHash string) error {
	_, err := s.db.Exec(`
		UPDATE users
		SET password = $1, reset_otp = NULL, reset_otp_expiry = NULL, is_otp_verified = FALSE, updated_at = NOW()
		WHERE id = $2
	`, passwordHash, userID)
	return err
}
