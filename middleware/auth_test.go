package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/spf13/viper"

	"github.com/gcit-apps/be-suggestion-box/utils"
)

func runJWTMiddleware(t *testing.T, authHeader string) (*httptest.ResponseRecorder, echo.Context, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	handler := JWTMiddleware(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return rec, c, reached
}

func TestJWTMiddlewareMissingHeader(t *testing.T) {
	rec, _, reached := runJWTMiddleware(t, "")
	if reached {
		t.Fatal("handler must not run without a token")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestJWTMiddlewareMalformedToken(t *testing.T) {
	rec, _, reached := runJWTMiddleware(t, "Bearer not.enough")
	if reached {
		t.Fatal("handler must not run with a malformed token")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestJWTMiddlewareWrongSecret(t *testing.T) {
	viper.Set("JWT_SECRET", "other-secret")
	token, err := utils.GenerateToken(7, "a@b.com", "student")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	viper.Set("JWT_SECRET", "test-secret")
	defer viper.Set("JWT_SECRET", "")

	rec, _, reached := runJWTMiddleware(t, "Bearer "+token)
	if reached {
		t.Fatal("handler must not run with a token signed under another secret")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestJWTMiddlewareValidToken(t *testing.T) {
	viper.Set("JWT_SECRET", "test-secret")
	defer viper.Set("JWT_SECRET", "")

	token, err := utils.GenerateToken(7, "a@b.com", "student")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	rec, c, reached := runJWTMiddleware(t, "Bearer "+token)
	if !reached {
		t.Fatalf("handler did not run, status %d", rec.Code)
	}
	if got, _ := c.Get("user_id").(int64); got != 7 {
		t.Fatalf("user_id = %v", c.Get("user_id"))
	}
	if c.Get("email") != "a@b.com" || c.Get("role") != "student" {
		t.Fatalf("claims not set: email=%v role=%v", c.Get("email"), c.Get("role"))
	}
}

func TestRoleMiddleware(t *testing.T) {
	e := echo.New()

	run := func(role interface{}) (*httptest.ResponseRecorder, bool) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if role != nil {
			c.Set("role", role)
		}

		reached := false
		handler := RoleMiddleware("admin")(func(c echo.Context) error {
			reached = true
			return c.NoContent(http.StatusOK)
		})
		if err := handler(c); err != nil {
			t.Fatalf("middleware returned error: %v", err)
		}
		return rec, reached
	}

	if rec, reached := run("student"); reached || rec.Code != http.StatusForbidden {
		t.Fatalf("student must be denied, status %d", rec.Code)
	}
	if rec, reached := run(nil); reached || rec.Code != http.StatusForbidden {
		t.Fatalf("missing role must be denied, status %d", rec.Code)
	}
	if _, reached := run("admin"); !reached {
		t.Fatal("admin must pass")
	}
}
