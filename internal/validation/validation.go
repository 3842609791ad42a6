// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"unicode"
	"unicode/utf8"

	"commusics/internal/models"
)

// ValidatePassword checks if a password meets security requirements
func ValidatePassword(password string) error {
	if len(password) < 12 {
		return fmt.Errorf("password must be at least 12 characters long")
	}

	if len(password) > 128 {
		return fmt.Errorf("password must not exceed 128 characters")
	}

	hasUpper := false
	for _, r := range password {
		if unicode.IsUpper(r) {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}

	hasLower := false
	for _, r := range password {
		if unicode.IsLower(r) {
			hasLower = true
			break
		}
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}

	hasDigit := regexp.MustCompile(`[0-9]`).MatchString(password)
	if !hasDigit {
		return fmt.Errorf("password must contain at least one digit")
	}

	hasSpecial := regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>\/?]`).MatchString(password)
	if !hasSpecial {
		return fmt.Errorf("password must contain at least one special character (!@#$%%^&*)")
	}

	return nil
}

// ValidateHandle checks if a user handle meets requirements
func ValidateHandle(handle string) error {
	if len(handle) < 3 {
		return fmt.Errorf("handle must be at least 3 characters long")
	}

	if len(handle) > 30 {
		return fmt.Errorf("handle must not exceed 30 characters")
	}

	// Only allow alphanumeric, underscores, and hyphens
	if !regexp.MustCompile(`^[a-zA-Z0-9_-]+$`).MatchString(handle) {
		return fmt.Errorf("handle can only contain letters, numbers, underscores, and hyphens")
	}

	if handle[0] == '_' || handle[0] == '-' || handle[len(handle)-1] == '_' || handle[len(handle)-1] == '-' {
		return fmt.Errorf("handle cannot start or end with underscore or hyphen")
	}

	return nil
}

// ValidateNickname checks the display name shown next to the handle.
func ValidateNickname(nickname string) error {
	if nickname == "" {
		return fmt.Errorf("nickname is required")
	}
	if utf8.RuneCountInString(nickname) > 50 {
		return fmt.Errorf("nickname must not exceed 50 characters")
	}
	return nil
}

// ValidateEmail checks basic email format
func ValidateEmail(email string) error {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}

	if len(email) > 254 {
		return fmt.Errorf("email must not exceed 254 characters")
	}

	return nil
}

// ValidatePostContent checks a post body. Length is counted in runes,
// not bytes.
func ValidatePostContent(content string) error {
	if content == "" {
		return fmt.Errorf("content is required")
	}
	if utf8.RuneCountInString(content) > models.MaxPostContentLen {
		return fmt.Errorf("content must not exceed %d characters", models.MaxPostContentLen)
	}
	return nil
}
