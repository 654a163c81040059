package utils

import (
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SpecialCharacters is the set accepted by the password strength policy.
const SpecialCharacters = "!@#$%^&*"

// IsValidEmail checks basic email format
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidatePasswordStrength returns the ordered list of unmet rules.
// A password is valid when the list is empty: 8+ chars, at least one
// uppercase, lowercase, digit and special character.
func ValidatePasswordStrength(password string) []string {
	var errs []string

	if len(password) < 8 {
		errs = append(errs, "password must be at least 8 characters")
	}
	if !strings.ContainsFunc(password, func(r rune) bool { return r >= 'A' && r <= 'Z' }) {
		errs = append(errs, "password must contain at least one uppercase letter")
	}
	if !strings.ContainsFunc(password, func(r rune) bool { return r >= 'a' && r <= 'z' }) {
		errs = append(errs, "password must contain at least one lowercase letter")
	}
	if !strings.ContainsFunc(password, func(r rune) bool { return r >= '0' && r <= '9' }) {
		errs = append(errs, "password must contain at least one number")
	}
	if !strings.ContainsAny(password, SpecialCharacters) {
		errs = append(errs, "password must contain at least one special character (!@#$%^&*)")
	}

	return errs
}
