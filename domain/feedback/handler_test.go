package feedback

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestUpdateFeedbackStatusHandlerBadID(t *testing.T) {
	e := echo.New()

	// A non-numeric id is indistinguishable from a missing record.
	for _, id := range []string{"abc", "1; DROP TABLE feedback", ""} {
		req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"status":"addressed"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(id)

		if err := UpdateFeedbackStatusHandler(c); err != nil {
			t.Fatalf("id %q: handler returned error: %v", id, err)
		}
		if rec.Code != http.StatusNotFound {
			t.Fatalf("id %q: status = %d, want 404", id, rec.Code)
		}
	}
}
