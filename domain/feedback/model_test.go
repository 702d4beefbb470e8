package feedback

import (
	"strings"
	"testing"
)

func TestValidCategory(t *testing.T) {
	for _, category := range []string{"", CategoryAcademics, CategoryFacilities, CategoryEvents, CategoryOther} {
		if !ValidCategory(category) {
			t.Errorf("category %q should be valid", category)
		}
	}
	for _, category := range []string{"sports", "ACADEMICS", "misc"} {
		if ValidCategory(category) {
			t.Errorf("category %q should be rejected", category)
		}
	}
}

func TestValidStatus(t *testing.T) {
	for _, status := range []string{StatusPending, StatusUnderReview, StatusAddressed} {
		if !ValidStatus(status) {
			t.Errorf("status %q should be valid", status)
		}
	}
	for _, status := range []string{"", "done", "PENDING"} {
		if ValidStatus(status) {
			t.Errorf("status %q should be rejected", status)
		}
	}
}

func TestSanitizerStripsMarkup(t *testing.T) {
	out := sanitizer.Sanitize(`<script>alert(1)</script>Fix the <b>wifi</b>`)
	if strings.Contains(out, "<") {
		t.Fatalf("markup survived sanitization: %q", out)
	}
	if !strings.Contains(out, "Fix the") || !strings.Contains(out, "wifi") {
		t.Fatalf("text content lost in sanitization: %q", out)
	}
}
