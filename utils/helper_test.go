package utils

import "testing"

func TestNormalizeEmail(t *testing.T) {
	cases := map[string]string{
		"  A@B.Com ":        "a@b.com",
		"tashi@college.edu": "tashi@college.edu",
		"\tUPPER@CASE.EDU":  "upper@case.edu",
		"   ":               "",
	}
	for in, want := range cases {
		if got := NormalizeEmail(in); got != want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", in, got, want)
		}
	}
}
