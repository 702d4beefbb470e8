package user

import "time"

// User is the account profile as exposed to its owner. The password hash
// never leaves the database layer.
type User struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Role      string    `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// UpdateProfileRequest represents the profile update request
type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
