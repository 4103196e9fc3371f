package service

import (
	"fmt"
	"regexp"
	"unicode"
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{3,50}$`)

// CheckPasswordStrength enforces the password policy: at least 8
// characters with at least one digit, one uppercase and one lowercase
// letter. The same rule applies at registration and password change.
func CheckPasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: must be at least 8 characters long", ErrWeakPassword)
	}

	var hasDigit, hasUpper, hasLower bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		}
	}

	if !hasDigit {
		return fmt.Errorf("%w: must contain at least one digit", ErrWeakPassword)
	}
	if !hasUpper {
		return fmt.Errorf("%w: must contain at least one uppercase letter", ErrWeakPassword)
	}
	if !hasLower {
		return fmt.Errorf("%w: must contain at least one lowercase letter", ErrWeakPassword)
	}
	return nil
}

func ValidUsername(username string) bool {
	return usernameRe.MatchString(username)
}
