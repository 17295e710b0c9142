package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	usernameRegex = regexp.MustCompile(`^[a-z0-9_]{3,20}$`)
	pinRegex      = regexp.MustCompile(`^[0-9]{4}$`)
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidatePassword checks if a tutor password meets requirements
func ValidatePassword(password string) error {
	if password == "" {
		return ValidationError{Field: "password", Message: "password is required"}
	}
	if len(password) < 8 {
		return ValidationError{Field: "password", Message: "password must be at least 8 characters"}
	}
	return nil
}

// ValidateName checks if a display name is valid
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	if len(name) < 2 {
		return ValidationError{Field: "name", Message: "name must be at least 2 characters"}
	}
	return nil
}

// ValidateUsername checks an apprentice username: 3-20 characters,
// lowercase letters, digits and underscore only.
func ValidateUsername(username string) error {
	if username == "" {
		return ValidationError{Field: "username", Message: "username is required"}
	}
	if !usernameRegex.MatchString(username) {
		return ValidationError{Field: "username", Message: "username must be 3-20 characters using only lowercase letters, numbers and _"}
	}
	return nil
}

// ValidatePIN checks an apprentice PIN: exactly 4 digits
func ValidatePIN(pin string) error {
	if pin == "" {
		return ValidationError{Field: "pin", Message: "pin is required"}
	}
	if !pinRegex.MatchString(pin) {
		return ValidationError{Field: "pin", Message: "pin must be exactly 4 digits"}
	}
	return nil
}

// ValidateAge checks an apprentice age
func ValidateAge(age int) error {
	if age < 1 || age > 99 {
		return ValidationError{Field: "age", Message: "age must be between 1 and 99"}
	}
	return nil
}
