package feedback

import (
	"database/sql"
	"time"
)

// Feedback is a suggestion submitted by a student. UserID is NULL for
// anonymous submissions so the author cannot be recovered from the row.
type Feedback struct {
	ID          int64         `db:"id" json:"id"`
	UserID      sql.NullInt64 `db:"user_id" json:"-"`
	IsAnonymous bool          `db:"is_anonymous" json:"isAnonymous"`
	Category    string        `db:"category" json:"category"`
	Message     string        `db:"message" json:"message"`
	Status      string        `db:"status" json:"status"`
	CreatedAt   time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time     `db:"updated_at" json:"updatedAt"`
}

// AdminFeedback is the admin listing row: feedback joined with its author,
// or "Anonymous" placeholders when the submission was anonymous.
type AdminFeedback struct {
	ID          int64     `db:"id" json:"id"`
	IsAnonymous bool      `db:"is_anonymous" json:"isAnonymous"`
	Category    string    `db:"category" json:"category"`
	Message     string    `db:"message" json:"message"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
	UserName    string    `db:"user_name" json:"userName"`
	UserEmail   string    `db:"user_email" json:"userEmail"`
}

// CreateFeedbackRequest represents the feedback submission request
type CreateFeedbackRequest struct {
	Message     string `json:"message"`
	Category    string `json:"category"`
	IsAnonymous bool   `json:"isAnonymous"`
}

// UpdateStatusRequest represents the admin status update request
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Feedback categories
const (
	CategoryAcademics  = "academics"
	CategoryFacilities = "facilities"
	CategoryEvents     = "events"
	CategoryOther      = "other"
)

// Triage statuses
const (
	StatusPending     = "pending"
	StatusUnderReview = "under_review"
	StatusAddressed   = "addressed"
)

// ValidCategory reports whether the submitted category is one of the known
// values. An empty category is valid and falls back to "other".
func ValidCategory(category string) bool {
	switch category {
	case "", CategoryAcademics, CategoryFacilities, CategoryEvents, CategoryOther:
		return true
	}
	return false
}

// ValidStatus reports whether the value is a known triage status.
func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusUnderReview, StatusAddressed:
		return true
	}
	return false
}
