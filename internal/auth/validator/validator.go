// Package validator holds the password policy for staff accounts.
package validator

import (
	"unicode"

	"framtt_backend/platform/validator"

	playground "github.com/go-playground/validator/v10"
)

// PasswordPolicy describes the password requirements for error messages.
const PasswordPolicy = "Password must be at least 8 characters and include: uppercase letter, lowercase letter, number, and special character"

// RegisterPasswordRules adds the "strongpassword" tag to val.
func RegisterPasswordRules(val *validator.Validator) error {
	return val.RegisterValidation("strongpassword", func(fl playground.FieldLevel) bool {
		return IsStrongPassword(fl.Field().String())
	})
}

// IsStrongPassword checks for at least 8 characters with an uppercase and a
// lowercase letter, a digit and a special character.
func IsStrongPassword(password string) bool {
	if len(password) < 8 {
		return false
	}

	var (
		hasUpper   bool
		hasLower   bool
		hasDigit   bool
		hasSpecial bool
	)

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasDigit = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}

	return hasUpper && hasLower && hasDigit && hasSpecial
}
