package routes

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestRegisterRoutesTable(t *testing.T) {
	e := echo.New()
	RegisterRoutes(e)

	registered := map[string]bool{}
	for _, r := range e.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	// The method and path of every route is part of the API contract the
	// frontend depends on.
	want := []string{
		http.MethodGet + " /",
		http.MethodGet + " /api/health",
		http.MethodPost + " /api/auth/register",
		http.MethodPost + " /api/auth/login",
		http.MethodPost + " /api/auth/forgot-password",
		http.MethodPost + " /api/auth/verify-otp",
		http.MethodPost + " /api/auth/reset-password",
		http.MethodPost + " /api/auth/change-password",
		http.MethodPost + " /api/auth/create-admin",
		http.MethodGet + " /api/auth/health",
		http.MethodPost + " /api/feedback",
		http.MethodGet + " /api/feedback/my",
		http.MethodGet + " /api/feedback",
		http.MethodPatch + " /api/feedback/:id/status",
		http.MethodGet + " /api/feedback/export/csv",
		http.MethodGet + " /api/feedback/export/pdf",
		http.MethodGet + " /api/categories",
		http.MethodGet + " /api/categories/all",
		http.MethodPost + " /api/categories",
		http.MethodPut + " /api/categories/:id",
		http.MethodDelete + " /api/categories/:id",
		http.MethodGet + " /api/users/me",
		http.MethodPut + " /api/users/profile",
	}
	for _, route := range want {
		if !registered[route] {
			t.Errorf("route %q is not registered", route)
		}
	}

	// Methods the frontend never uses must not shadow the real ones.
	for _, route := range []string{
		http.MethodPut + " /api/auth/change-password",
		http.MethodPut + " /api/feedback/:id/status",
		http.MethodPut + " /api/users/me",
	} {
		if registered[route] {
			t.Errorf("route %q should not be registered", route)
		}
	}
}
