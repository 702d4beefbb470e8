package health

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gcit-apps/be-suggestion-box/config"
)

var startTime = time.Now()

// RootHandler answers the bare root probe.
func RootHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"service": "suggestion-box",
		"status":  "ok",
	})
}

// HealthHandler is the public liveness probe.
func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// DetailedHealthHandler is the admin probe: uptime plus dependency checks.
func DetailedHealthHandler(c echo.Context) error {
	status := "ok"
	dbStatus := "ok"
	if err := config.DB.PingContext(c.Request().Context()); err != nil {
		status = "degraded"
		dbStatus = err.Error()
	}

	redisStatus := "disabled"
	if config.RedisClient != nil {
		redisStatus = "ok"
		if err := config.RedisClient.Ping(c.Request().Context()).Err(); err != nil {
			status = "degraded"
			redisStatus = err.Error()
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":   status,
		"uptime":   time.Since(startTime).Round(time.Second).String(),
		"database": dbStatus,
		"redis":    redisStatus,
		"time":     time.Now().UTC().Format(time.RFC3339),
	})
}
