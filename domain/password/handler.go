package password

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gcit-apps/be-suggestion-box/pkg/apperrors"
)

var svc *Service

// InitService wires the package-level service used by the handlers. Called
// once at startup before routes are registered.
func InitService(s *Service) {
	svc = s
}

// ForgotPasswordHandler handles the forgot password request
func ForgotPasswordHandler(c echo.Context) error {
	req := new(ForgotPasswordRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid request payload.",
		))
	}

	if appErr := svc.RequestOTP(req.Email); appErr != nil {
		return apperrors.RespondWithError(c, appErr)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": GenericOTPMessage})
}

// VerifyOTPHandler handles the OTP verification request
func VerifyOTPHandler(c echo.Context) error {
	req := new(VerifyOTPRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid request payload.",
		))
	}

	if appErr := svc.VerifyOTP(req.Email, req.OTP); appErr != nil {
		return apperrors.RespondWithError(c, appErr)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "OTP verified successfully"})
}

// ResetPasswordHandler handles the password reset request
func ResetPasswordHandler(c echo.Context) error {
	req := new(ResetPasswordRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid request payload.",
		))
	}

	if appErr := svc.ResetPassword(req.Email, req.NewPassword, req.ConfirmPassword); appErr != nil {
		return apperrors.RespondWithError(c, appErr)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Password reset successfully"})
}
