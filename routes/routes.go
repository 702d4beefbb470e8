package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/gcit-apps/be-suggestion-box/config"
	"github.com/gcit-apps/be-suggestion-box/domain/auth"
	"github.com/gcit-apps/be-suggestion-box/domain/category"
	"github.com/gcit-apps/be-suggestion-box/domain/feedback"
	"github.com/gcit-apps/be-suggestion-box/domain/health"
	"github.com/gcit-apps/be-suggestion-box/domain/password"
	"github.com/gcit-apps/be-suggestion-box/domain/user"
	"github.com/gcit-apps/be-suggestion-box/middleware"
	"github.com/gcit-apps/be-suggestion-box/pkg"
)

func RegisterRoutes(e *echo.Echo) {
	mailer := pkg.NewMailer()
	feedback.InitMailer(mailer)
	password.InitService(password.NewService(
		password.NewSQLUserStore(config.DB),
		mailer,
		password.NewThrottle(config.RedisClient),
	))

	// Health probes
	e.GET("/", health.RootHandler)
	e.GET("/api/health", health.HealthHandler)

	// Auth routes
	authGroup := e.Group("/api/auth")
	authGroup.POST("/register", auth.RegisterHandler)
	authGroup.POST("/login", auth.LoginHandler)
	authGroup.POST("/forgot-password", password.ForgotPasswordHandler)
	authGroup.POST("/verify-otp", password.VerifyOTPHandler)
	authGroup.POST("/reset-password", password.ResetPasswordHandler)
	authGroup.POST("/change-password", auth.ChangePasswordHandler, middleware.JWTMiddleware)
	authGroup.POST("/create-admin", auth.CreateAdminHandler, middleware.JWTMiddleware, middleware.RoleMiddleware(auth.RoleAdmin))
	authGroup.GET("/health", health.DetailedHealthHandler, middleware.JWTMiddleware, middleware.RoleMiddleware(auth.RoleAdmin))

	// Feedback routes (protected)
	feedbackGroup := e.Group("/api/feedback", middleware.JWTMiddleware)
	feedbackGroup.POST("", feedback.CreateFeedbackHandler)
	feedbackGroup.GET("/my", feedback.GetMyFeedbackHandler)
	feedbackGroup.GET("", feedback.GetAllFeedbackHandler, middleware.RoleMiddleware(auth.RoleAdmin))
	feedbackGroup.PATCH("/:id/status", feedback.UpdateFeedbackStatusHandler, middleware.RoleMiddleware(auth.RoleAdmin))
	feedbackGroup.GET("/export/csv", feedback.ExportFeedbackCSVHandler, middleware.RoleMiddleware(auth.RoleAdmin))
	feedbackGroup.GET("/export/pdf", feedback.ExportFeedbackPDFHandler, middleware.RoleMiddleware(auth.RoleAdmin))

	// Category routes (protected)
	categoryGroup := e.Group("/api/categories", middleware.JWTMiddleware)
	categoryGroup.GET("", category.GetActiveCategoriesHandler)
	categoryGroup.GET("/all", category.GetAllCategoriesHandler, middleware.RoleMiddleware(auth.RoleAdmin))
	categoryGroup.POST("", category.CreateCategoryHandler, middleware.RoleMiddleware(auth.RoleAdmin))
	categoryGroup.PUT("/:id", category.UpdateCategoryHandler, middleware.RoleMiddleware(auth.RoleAdmin))
	categoryGroup.DELETE("/:id", category.DeleteCategoryHandler, middleware.RoleMiddleware(auth.RoleAdmin))

	// User routes (protected)
	userGroup := e.Group("/api/users", middleware.JWTMiddleware)
	userGroup.GET("/me", user.GetMeHandler)
	userGroup.PUT("/profile", user.UpdateProfileHandler)
}
