package apperrors

// Error codes - organized by domain

// Authentication errors (AUTH_*)
const (
	ErrCodeInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	ErrCodeTokenExpired       = "AUTH_TOKEN_EXPIRED"
	ErrCodeTokenInvalid       = "AUTH_TOKEN_INVALID"
	ErrCodeTokenMalformed     = "AUTH_TOKEN_MALFORMED"
	ErrCodeTokenGeneration    = "AUTH_TOKEN_GENERATION_FAILED"
)

// Authorization errors (AUTHZ_*)
const (
	ErrCodeForbidden   = "AUTHZ_FORBIDDEN"
	ErrCodeInvalidRole = "AUTHZ_INVALID_ROLE"
)

// Validation errors (VALIDATION_*)
const (
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeInvalidEmail     = "VALIDATION_INVALID_EMAIL"
	ErrCodeInvalidPassword  = "VALIDATION_INVALID_PASSWORD"
	ErrCodeMissingField     = "VALIDATION_MISSING_FIELD"
)

// Resource errors (RESOURCE_*)
const (
	ErrCodeUserNotFound     = "RESOURCE_USER_NOT_FOUND"
	ErrCodeFeedbackNotFound = "RESOURCE_FEEDBACK_NOT_FOUND"
	ErrCodeCategoryNotFound = "RESOURCE_CATEGORY_NOT_FOUND"
	ErrCodeResourceExists   = "RESOURCE_ALREADY_EXISTS"
)

// OTP / password reset errors (OTP_*)
const (
	ErrCodeOTPInvalid     = "OTP_INVALID"
	ErrCodeOTPExpired     = "OTP_EXPIRED"
	ErrCodeOTPNotVerified = "OTP_NOT_VERIFIED"
)

// Rate limiting errors (RATE_*)
const (
	ErrCodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
)

// Internal errors (INTERNAL_*)
const (
	ErrCodeDatabaseError   = "INTERNAL_DATABASE_ERROR"
	ErrCodeEmailSendFailed = "INTERNAL_EMAIL_SEND_FAILED"
	ErrCodeExportFailed    = "INTERNAL_EXPORT_FAILED"
	ErrCodeUnexpectedError = "INTERNAL_UNEXPECTED_ERROR"
)
