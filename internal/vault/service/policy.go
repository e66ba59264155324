package service

import (
	"strings"
	"unicode"
	"unicode/utf16"
)

const (
	MinPasswordLength = 12
	passwordSpecials  = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`
)

// PolicyResult is the outcome of ValidatePassword.
type PolicyResult struct {
	OK     bool
	Reason string
}

// ValidatePassword applies the composition rules in order and reports the
// first one that fails.
func ValidatePassword(candidate string) PolicyResult {
	switch {
	case passwordLength(candidate) < MinPasswordLength:
		return PolicyResult{Reason: "Password must be at least 12 characters long"}
	case !strings.ContainsFunc(candidate, isASCIIUpper):
		return PolicyResult{Reason: "Password must contain at least one uppercase letter"}
	case !strings.ContainsFunc(candidate, isASCIILower):
		return PolicyResult{Reason: "Password must contain at least one lowercase letter"}
	case !strings.ContainsFunc(candidate, isASCIIDigit):
		return PolicyResult{Reason: "Password must contain at least one number"}
	case !strings.ContainsAny(candidate, passwordSpecials):
		return PolicyResult{Reason: "Password must contain at least one special character"}
	case hasRun(candidate, 3):
		return PolicyResult{Reason: "Password cannot contain repeated characters"}
	}
	return PolicyResult{OK: true}
}

// passwordLength counts UTF-16 code units, the way browsers measure the
// field, so characters outside the BMP count twice.
func passwordLength(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

func isASCIIUpper(r rune) bool { return r <= unicode.MaxASCII && unicode.IsUpper(r) }
func isASCIILower(r rune) bool { return r <= unicode.MaxASCII && unicode.IsLower(r) }
func isASCIIDigit(r rune) bool { return r >= '0' && r <= '9' }

// hasRun reports whether s has n or more identical runes in a row.
func hasRun(s string, n int) bool {
	var prev rune
	count := 0
	for i, r := range []rune(s) {
		if i > 0 && r == prev {
			count++
		} else {
			count = 1
		}
		if count >= n {
			return true
		}
		prev = r
	}
	return false
}
