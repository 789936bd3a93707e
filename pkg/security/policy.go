package security

import "strings"

const passwordSpecials = "!@#$%^&*"

// ValidatePasswordPolicy enforces the signup password rules: 8-16 characters
// with at least one uppercase letter and one of !@#$%^&*. Returns a
// human-readable reason when the password is rejected.
func ValidatePasswordPolicy(password string) (bool, string) {
	length := len(password)
	if length < 8 || length > 16 {
		return false, "password must be 8-16 characters"
	}

	var hasUpper, hasSpecial bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case strings.ContainsRune(passwordSpecials, r):
			hasSpecial = true
		}
	}

	if !hasUpper {
		return false, "password must contain at least one uppercase letter"
	}
	if !hasSpecial {
		return false, "password must contain at least one special character (!@#$%^&*)"
	}
	return true, ""
}
