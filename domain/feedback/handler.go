package feedback

import (
	"database/sql"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/microcosm-cc/bluemonday"
	"github.com/spf13/viper"

	"github.com/gcit-apps/be-suggestion-box/config"
	"github.com/gcit-apps/be-suggestion-box/pkg"
	"github.com/gcit-apps/be-suggestion-box/pkg/apperrors"
	"github.com/gcit-apps/be-suggestion-box/pkg/logger"
)

var mailer pkg.Mailer

// sanitizer strips all markup from user-submitted text before it is embedded
// in notification emails.
var sanitizer = bluemonday.StrictPolicy()

// InitMailer wires the mailer used for admin notifications. Called once at
// startup before routes are registered.
func InitMailer(m pkg.Mailer) {
	mailer = m
}

// CreateFeedbackHandler handles a new feedback submission. Anonymous
// submissions are stored without the author's user ID.
func CreateFeedbackHandler(c echo.Context) error {
	log := logger.Get().WithComponent("feedback")
	requestID := logger.GetRequestIDFromContext(c)
	log = log.WithRequestID(requestID)

	userID, ok := c.Get("user_id").(int64)
	if !ok {
		return apperrors.RespondWithError(c, apperrors.NewUnauthorized(
			apperrors.ErrCodeTokenInvalid,
			"Invalid token.",
		))
	}

	req := new(CreateFeedbackRequest)
	if err := c.Bind(req); err != nil {
		log.Warn("Invalid feedback request payload", logger.Err(err))
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid request payload.",
		))
	}

	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Message is required",
		))
	}

	if !ValidCategory(req.Category) {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid category",
		))
	}
	category := req.Category
	if category == "" {
		category = CategoryOther
	}

	storedUserID := sql.NullInt64{Int64: userID, Valid: !req.IsAnonymous}

	var fb Feedback
	err := config.DB.Get(&fb, `
		INSERT INTO feedback (user_id, is_anonymous, category, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, is_anonymous, category, message, status, created_at, updated_at
	`, storedUserID, req.IsAnonymous, category, req.Message)
	if err != nil {
		log.Error("Failed to create feedback", err, logger.UserID(userID))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	// Fire-and-forget: submission never waits on, or fails with, the
	// notification email.
	go notifyAdmins(fb)

	log.Info("Feedback submitted", logger.FeedbackID(fb.ID),
		logger.String("category", category),
		logger.Bool("anonymous", req.IsAnonymous),
	)

	return c.JSON(http.StatusCreated, fb)
}

// notifyAdmins emails the configured admin addresses about a new submission.
// The message body is sanitized so submitted markup never reaches an inbox.
func notifyAdmins(fb Feedback) {
	log := logger.Get().WithComponent("feedback")

	recipients := viper.GetString("ADMIN_NOTIFICATION_EMAILS")
	if recipients == "" {
		recipients = viper.GetString("DEFAULT_ADMIN_EMAIL")
	}
	if recipients == "" {
		return
	}

	author := "Anonymous"
	if !fb.IsAnonymous {
		author = fmt.Sprintf("user #%d", fb.UserID.Int64)
	}

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 15px;">
			<h2 style="color: #006600;">New Suggestion Received</h2>
			<p><strong>From:</strong> %s</p>
			<p><strong>Category:</strong> %s</p>
			<blockquote style="border-left: 3px solid #ccc; padding-left: 10px;">%s</blockquote>
			<p>Log in to the admin dashboard to review it.</p>
		</div>
	`, author, fb.Category, sanitizer.Sanitize(fb.Message))

	for _, to := range strings.Split(recipients, ",") {
		to = strings.TrimSpace(to)
		if to == "" {
			continue
		}
		if err := mailer.Send(to, "New Suggestion Submitted", body); err != nil {
			log.Error("Failed to send admin notification", err,
				logger.Email(to),
				logger.FeedbackID(fb.ID),
			)
		}
	}
}

// GetMyFeedbackHandler lists the caller's own submissions, newest first.
// Anonymous submissions carry no author and are not included.
func GetMyFeedbackHandler(c echo.Context) error {
	log := logger.Get().WithComponent("feedback")
	requestID := logger.GetRequestIDFromContext(c)
	log = log.WithRequestID(requestID)

	userID, ok := c.Get("user_id").(int64)
	if !ok {
		return apperrors.RespondWithError(c, apperrors.NewUnauthorized(
			apperrors.ErrCodeTokenInvalid,
			"Invalid token.",
		))
	}

	feedbacks := []Feedback{}
	err := config.DB.Select(&feedbacks, `
		SELECT id, user_id, is_anonymous, category, message, status, created_at, updated_at
		FROM feedback
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		log.Error("Failed to fetch user feedback", err, logger.UserID(userID))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	return c.JSON(http.StatusOK, feedbacks)
}

// GetAllFeedbackHandler lists every submission for admins, joined with the
// author where the submission is not anonymous. Supports optional status and
// category query filters.
func GetAllFeedbackHandler(c echo.Context) error {
	log := logger.Get().WithComponent("feedback")
	requestID := logger.GetRequestIDFromContext(c)
	log = log.WithRequestID(requestID)

	query := `
		SELECT f.id, f.is_anonymous, f.category, f.message, f.status, f.created_at, f.updated_at,
			CASE WHEN f.is_anonymous OR u.id IS NULL THEN 'Anonymous' ELSE u.name END AS user_name,
			CASE WHEN f.is_anonymous OR u.id IS NULL THEN '' ELSE u.email END AS user_email
		FROM feedback f
		LEFT JOIN users u ON u.id = f.user_id
	`
	conditions := []string{}
	args := []interface{}{}

	if status := c.QueryParam("status"); status != "" {
		if !ValidStatus(status) {
			return apperrors.RespondWithError(c, apperrors.NewBadRequest(
				apperrors.ErrCodeValidationFailed,
				"Invalid status",
			))
		}
		args = append(args, status)
		conditions = append(conditions, fmt.Sprintf("f.status = $%d", len(args)))
	}
	if category := c.QueryParam("category"); category != "" {
		if !ValidCategory(category) {
			return apperrors.RespondWithError(c, apperrors.NewBadRequest(
				apperrors.ErrCodeValidationFailed,
				"Invalid category",
			))
		}
		args = append(args, category)
		conditions = append(conditions, fmt.Sprintf("f.category = $%d", len(args)))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY f.created_at DESC"

	feedbacks := []AdminFeedback{}
	if err := config.DB.Select(&feedbacks, query, args...); err != nil {
		log.Error("Failed to fetch all feedback", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	return c.JSON(http.StatusOK, feedbacks)
}

// UpdateFeedbackStatusHandler moves a submission through the triage states.
// An empty status keeps the current one.
func UpdateFeedbackStatusHandler(c echo.Context) error {
	log := logger.Get().WithComponent("feedback")
	requestID := logger.GetRequestIDFromContext(c)
	log = log.WithRequestID(requestID)

	feedbackID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodeFeedbackNotFound,
			"Feedback not found",
		))
	}

	req := new(UpdateStatusRequest)
	if err := c.Bind(req); err != nil {
		log.Warn("Invalid status update payload", logger.Err(err))
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid request payload.",
		))
	}

	if req.Status != "" && !ValidStatus(req.Status) {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid status",
		))
	}

	var fb Feedback
	err = config.DB.Get(&fb, `
		UPDATE feedback
		SET status = COALESCE(NULLIF($1, ''), status), updated_at = NOW()
		WHERE id = $2
		RETURNING id, user_id, is_anonymous, category, message, status, created_at, updated_at
	`, req.Status, feedbackID)
	if err != nil {
		if err == sql.ErrNoRows {
			return apperrors.RespondWithError(c, apperrors.NewNotFound(
				apperrors.ErrCodeFeedbackNotFound,
				"Feedback not found",
			))
		}
		log.Error("Failed to update feedback status", err, logger.FeedbackID(feedbackID))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	log.Info("Feedback status updated", logger.FeedbackID(fb.ID), logger.String("status", fb.Status))

	return c.JSON(http.StatusOK, fb)
}
