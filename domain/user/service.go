package user

import (
	"database/sql"

	"github.com/gcit-apps/be-suggestion-box/config"
	"github.com/gcit-apps/be-suggestion-box/utils"
)

// CreateUser inserts an account with a hashed password and returns its ID.
// Used by startup seeding and the seeder script; the HTTP handlers in
// domain/auth carry their own insert paths with request validation.
func CreateUser(name, email, password, role string) (int64, error) {
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return 0, err
	}

	var id int64
	err = config.DB.Get(&id, `
		INSERT INTO users (name, email, password, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, name, utils.NormalizeEmail(email), hashed, role)
	return id, err
}

// EnsureUser creates the account if the email is not yet registered and
// returns the existing or new ID.
func EnsureUser(name, email, password, role string) (int64, error) {
	var id int64
	err := config.DB.Get(&id, `SELECT id FROM users WHERE email = $1`, utils.NormalizeEmail(email))
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, err
	}
	return CreateUser(name, email, password, role)
}
