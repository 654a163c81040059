package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErrs int
		first    string
	}{
		{"valid", "Abcdef1!", 0, ""},
		{"valid long", "SuperSecret123$", 0, ""},
		{"too short", "Ab1!", 1, "password must be at least 8 characters"},
		{"no uppercase", "abcdef1!", 1, "password must contain at least one uppercase letter"},
		{"no lowercase", "ABCDEF1!", 1, "password must contain at least one lowercase letter"},
		{"no digit", "Abcdefg!", 1, "password must contain at least one number"},
		{"no special", "Abcdefg1", 1, "password must contain at least one special character (!@#$%^&*)"},
		{"empty", "", 5, "password must be at least 8 characters"},
		{"only digits", "12345678", 3, "password must contain at least one uppercase letter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidatePasswordStrength(tt.password)
			assert.Len(t, errs, tt.wantErrs)
			if tt.wantErrs > 0 {
				// callers surface only the first unmet rule
				assert.Equal(t, tt.first, errs[0])
			}
		})
	}
}

func TestValidatePasswordStrengthSpecialSet(t *testing.T) {
	for _, ch := range SpecialCharacters {
		assert.Empty(t, ValidatePasswordStrength("Abcdef1"+string(ch)))
	}
	// characters outside the fixed set do not count as special
	assert.NotEmpty(t, ValidatePasswordStrength("Abcdef1?"))
	assert.NotEmpty(t, ValidatePasswordStrength("Abcdef1-"))
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "user.name@example.com", "x+tag@sub.domain.org"}
	for _, email := range valid {
		assert.True(t, IsValidEmail(email), email)
	}

	invalid := []string{"", "plain", "no@tld", "spaces in@example.com", "@example.com", "a@"}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), email)
	}
}

func TestGenerateRID(t *testing.T) {
	rid := GenerateRID(PrefixOrder)
	assert.Contains(t, rid, "ord-")

	// must be unique across calls
	assert.NotEqual(t, GenerateRID(PrefixUser), GenerateRID(PrefixUser))
}
