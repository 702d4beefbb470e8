package auth

import (
	"database/sql"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gcit-apps/be-suggestion-box/config"
	"github.com/gcit-apps/be-suggestion-box/pkg/apperrors"
	"github.com/gcit-apps/be-suggestion-box/pkg/logger"
	"github.com/gcit-apps/be-suggestion-box/utils"
)

// User struct for database queries
type User struct {
	ID       int64  `db:"id"`
	Name     string `db:"name"`
	Email    string `db:"email"`
	Password string `db:"password"`
	Role     string `db:"role"`
}

// RegisterHandler handles student self-registration. Accounts created here
// always get the student role; admins are created through CreateAdminHandler.
func RegisterHandler(c echo.Context) error {
	log := logger.Get().WithComponent("auth")
	requestID := logger.GetRequestIDFromContext(c)
	log = log.WithRequestID(requestID)

	req := new(RegisterRequest)
	if err := c.Bind(req); err != nil {
		log.Warn("Invalid register request payload", logger.Err(err))
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid request payload.",
		))
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Name, email and password are required",
		))
	}

	email := utils.NormalizeEmail(req.Email)

	var exists bool
	err := config.DB.Get(&exists, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email)
	if err != nil {
		log.Error("Failed to check existing email", err, logger.Email(email))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}
	if exists {
		return apperrors.RespondWithError(c, apperrors.NewConflict(
			apperrors.ErrCodeResourceExists,
			"Email already registered",
		))
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Error("Failed to hash password", err, logger.Email(email))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeUnexpectedError,
			"Internal server error.",
			err,
		))
	}

	var userID int64
	err = config.DB.Get(&userID, `
		INSERT INTO users (name, email, password, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, req.Name, email, hashedPassword, RoleStudent)
	if err != nil {
		log.Error("Failed to create user", err, logger.Email(email))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	token, err := utils.GenerateToken(userID, email, RoleStudent)
	if err != nil {
		log.Error("Failed to generate token", err, logger.UserID(userID))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeTokenGeneration,
			"Internal server error.",
			err,
		))
	}

	log.Info("User registered", logger.UserID(userID), logger.Email(email))

	return c.JSON(http.StatusCreated, AuthResponse{
		ID:    userID,
		Name:  req.Name,
		Email: email,
		Role:  RoleStudent,
		Token: token,
	})
}

// LoginHandler handles user login
func LoginHandler(c echo.Context) error {
	log := logger.Get().WithComponent("auth")
	requestID := logger.GetRequestIDFromContext(c)
	log = log.WithRequestID(requestID)

	req := new(LoginRequest)
	if err := c.Bind(req); err != nil {
		log.Warn("Invalid login request payload", logger.Err(err))
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid request payload.",
		))
	}

	if req.Email == "" || req.Password == "" {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Email and password are required",
		))
	}

	email := utils.NormalizeEmail(req.Email)

	var user User
	err := config.DB.Get(&user, `
		SELECT id, name, email, password, role
		FROM users
		WHERE email = $1
	`, email)
	if err != nil {
		if err == sql.ErrNoRows {
			// Same response as a wrong password so the endpoint doesn't leak
			// which accounts exist.
			return apperrors.RespondWithError(c, apperrors.NewUnauthorized(
				apperrors.ErrCodeInvalidCredentials,
				"Invalid email or password",
			))
		}
		log.Error("Failed to fetch user for login", err, logger.Email(email))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		log.Warn("Failed login attempt", logger.Email(email))
		return apperrors.RespondWithError(c, apperrors.NewUnauthorized(
			apperrors.ErrCodeInvalidCredentials,
			"Invalid email or password",
		))
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		log.Error("Failed to generate token", err, logger.UserID(user.ID))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeTokenGeneration,
			"Internal server error.",
			err,
		))
	}

	log.Info("User logged in", logger.UserID(user.ID))

	return c.JSON(http.StatusOK, AuthResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
		Token: token,
	})
}

// CreateAdminHandler creates a new admin account. Reachable only through the
// admin-guarded route group.
func CreateAdminHandler(c echo.Context) error {
	log := logger.Get().WithComponent("auth")
	requestID := logger.GetRequestIDFromContext(c)
	log = log.WithRequestID(requestID)

	req := new(CreateAdminRequest)
	if err := c.Bind(req); err != nil {
		log.Warn("Invalid create admin request payload", logger.Err(err))
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid request payload.",
		))
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Name, email and password are required",
		))
	}

	email := utils.NormalizeEmail(req.Email)

	var exists bool
	err := config.DB.Get(&exists, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email)
	if err != nil {
		log.Error("Failed to check existing email", err, logger.Email(email))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}
	if exists {
		return apperrors.RespondWithError(c, apperrors.NewConflict(
			apperrors.ErrCodeResourceExists,
			"Email already registered",
		))
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Error("Failed to hash password", err, logger.Email(email))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeUnexpectedError,
			"Internal server error.",
			err,
		))
	}

	var userID int64
	err = config.DB.Get(&userID, `
		INSERT INTO users (name, email, password, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, req.Name, email, hashedPassword, RoleAdmin)
	if err != nil {
		log.Error("Failed to create admin", err, logger.Email(email))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	adminEmail, _ := c.Get("email").(string)
	log.Info("Admin account created", logger.UserID(userID), logger.Email(email),
		logger.Field{Key: "created_by", Value: adminEmail})

	return apperrors.RespondWithCreated(c, map[string]interface{}{
		"message": "Admin created successfully",
		"id":      userID,
		"name":    req.Name,
		"email":   email,
		"role":    RoleAdmin,
	})
}

// ChangePasswordHandler lets an authenticated user rotate their password
// after proving the current one.
func ChangePasswordHandler(c echo.Context) error {
	log := logger.Get().WithComponent("auth")
	requestID := logger.GetRequestIDFromContext(c)
	log = log.WithRequestID(requestID)

	userID, ok := c.Get("user_id").(int64)
	if !ok {
		return apperrors.RespondWithError(c, apperrors.NewUnauthorized(
			apperrors.ErrCodeTokenInvalid,
			"Invalid token.",
		))
	}

	req := new(ChangePasswordRequest)
	if err := c.Bind(req); err != nil {
		log.Warn("Invalid change password request payload", logger.Err(err))
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid request payload.",
		))
	}

	if req.CurrentPassword == "" || req.NewPassword == "" || req.ConfirmNewPassword == "" {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"All fields are required",
		))
	}

	if req.NewPassword != req.ConfirmNewPassword {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"New passwords do not match",
		))
	}

	var storedHash string
	err := config.DB.Get(&storedHash, `SELECT password FROM users WHERE id = $1`, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return apperrors.RespondWithError(c, apperrors.NewNotFound(
				apperrors.ErrCodeUserNotFound,
				"User not found",
			))
		}
		log.Error("Failed to fetch user for password change", err, logger.UserID(userID))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	if !utils.CheckPasswordHash(req.CurrentPassword, storedHash) {
		log.Warn("Password change with wrong current password", logger.UserID(userID))
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidCredentials,
			"Current password is incorrect",
		))
	}

	newHash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		log.Error("Failed to hash new password", err, logger.UserID(userID))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeUnexpectedError,
			"Internal server error.",
			err,
		))
	}

	_, err = config.DB.Exec(`
		UPDATE users
		SET password = $1, updated_at = NOW()
		WHERE id = $2
	`, newHash, userID)
	if err != nil {
		log.Error("Failed to update password", err, logger.UserID(userID))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	log.Info("Password changed", logger.UserID(userID))

	return c.JSON(http.StatusOK, map[string]string{"message": "Password changed successfully"})
}
