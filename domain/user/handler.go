package user

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gcit-apps/be-suggestion-box/config"
	"github.com/gcit-apps/be-suggestion-box/pkg/apperrors"
	"github.com/gcit-apps/be-suggestion-box/pkg/logger"
	"github.com/gcit-apps/be-suggestion-box/utils"
)

// GetMeHandler returns the caller's profile.
func GetMeHandler(c echo.Context) error {
	log := logger.Get().WithComponent("user")
	requestID := logger.GetRequestIDFromContext(c)
	log = log.WithRequestID(requestID)

	userID, ok := c.Get("user_id").(int64)
	if !ok {
		return apperrors.RespondWithError(c, apperrors.NewUnauthorized(
			apperrors.ErrCodeTokenInvalid,
			"Invalid token.",
		))
	}

	var u User
	err := config.DB.Get(&u, `
		SELECT id, name, email, role, created_at, updated_at
		FROM users
		WHERE id = $1
	`, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return apperrors.RespondWithError(c, apperrors.NewNotFound(
				apperrors.ErrCodeUserNotFound,
				"User not found",
			))
		}
		log.Error("Failed to fetch profile", err, logger.UserID(userID))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	return c.JSON(http.StatusOK, u)
}

// UpdateProfileHandler updates the caller's name and email. Email changes
// must not collide with another account.
func UpdateProfileHandler(c echo.Context) error {
	log := logger.Get().WithComponent("user")
	requestID := logger.GetRequestIDFromContext(c)
	log = log.WithRequestID(requestID)

	userID, ok := c.Get("user_id").(int64)
	if !ok {
		return apperrors.RespondWithError(c, apperrors.NewUnauthorized(
			apperrors.ErrCodeTokenInvalid,
			"Invalid token.",
		))
	}

	req := new(UpdateProfileRequest)
	if err := c.Bind(req); err != nil {
		log.Warn("Invalid profile update payload", logger.Err(err))
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid request payload.",
		))
	}

	req.Name = strings.TrimSpace(req.Name)
	email := utils.NormalizeEmail(req.Email)
	if req.Name == "" || email == "" {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Name and email are required",
		))
	}

	var taken bool
	err := config.DB.Get(&taken, `
		SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND id != $2)
	`, email, userID)
	if err != nil {
		log.Error("Failed to check email availability", err, logger.UserID(userID))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}
	if taken {
		return apperrors.RespondWithError(c, apperrors.NewConflict(
			apperrors.ErrCodeResourceExists,
			"Email already in use",
		))
	}

	var u User
	err = config.DB.Get(&u, `
		UPDATE users
		SET name = $1, email = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING id, name, email, role, created_at, updated_at
	`, req.Name, email, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return apperrors.RespondWithError(c, apperrors.NewNotFound(
				apperrors.ErrCodeUserNotFound,
				"User not found",
			))
		}
		log.Error("Failed to update profile", err, logger.UserID(userID))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	log.Info("Profile updated", logger.UserID(userID))

	return c.JSON(http.StatusOK, u)
}
