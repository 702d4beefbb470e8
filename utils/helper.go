package utils

import "strings"

// NormalizeEmail trims whitespace and lowercases an email address.
// Every email comparison in the system goes through this first.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
