package main

import (
	"strings"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"

	"github.com/gcit-apps/be-suggestion-box/config"
	"github.com/gcit-apps/be-suggestion-box/domain/auth"
	"github.com/gcit-apps/be-suggestion-box/domain/user"
	"github.com/gcit-apps/be-suggestion-box/pkg/apperrors"
	"github.com/gcit-apps/be-suggestion-box/pkg/logger"
	"github.com/gcit-apps/be-suggestion-box/routes"
)

func main() {
	config.InitConfig()

	logger.Init(logger.Config{
		Level:       logger.Level(viper.GetString("LOG_LEVEL")),
		Environment: viper.GetString("ENVIRONMENT"),
		ServiceName: "suggestion-box",
	})
	log := logger.Get().WithComponent("main")

	config.InitDB()
	defer config.CloseDB()
	config.MigrateDB()
	config.InitRedis()

	seedDefaultAdmin()

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = apperrors.HTTPErrorHandler(logger.Get())

	e.Use(logger.RequestLoggerMiddleware(logger.Get()))
	e.Use(logger.RecoveryMiddleware(logger.Get()))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     corsOrigins(),
		AllowMethods:     []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		ExposeHeaders:    []string{echo.HeaderContentLength, echo.HeaderContentDisposition},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	routes.RegisterRoutes(e)

	port := viper.GetString("PORT")
	if port == "" {
		port = "5000"
	}

	log.Info("Starting server", logger.String("port", port))
	e.Logger.Fatal(e.Start(":" + port))
}

func corsOrigins() []string {
	raw := viper.GetString("CORS_ALLOWED_ORIGINS")
	if raw == "" {
		return []string{"http://localhost:3000"}
	}

	origins := []string{}
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// seedDefaultAdmin makes sure at least one admin account exists so the
// dashboard is reachable on a fresh deployment.
func seedDefaultAdmin() {
	log := logger.Get().WithComponent("main")

	email := viper.GetString("DEFAULT_ADMIN_EMAIL")
	adminPassword := viper.GetString("DEFAULT_ADMIN_PASSWORD")
	if email == "" || adminPassword == "" {
		log.Warn("Default admin not configured, skipping seed")
		return
	}

	id, err := user.EnsureUser("Administrator", email, adminPassword, auth.RoleAdmin)
	if err != nil {
		log.Fatal("Failed to seed default admin", err, logger.Email(email))
	}
	log.Info("Default admin ready", logger.UserID(id))
}
