package util

import "strings"

const passwordSymbols = "!@#$%^&*()-_=+[]{}<>?"

const minPasswordLength = 10

// IsStrongPassword reports whether the password has at least 10 characters
// and carries a lowercase letter, an uppercase letter, a digit and a symbol
// from the fixed set.
func IsStrongPassword(password string) bool {
	if len(password) < minPasswordLength {
		return false
	}
	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, char := range password {
		switch {
		case char >= 'a' && char <= 'z':
			hasLower = true
		case char >= 'A' && char <= 'Z':
			hasUpper = true
		case char >= '0' && char <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, char):
			hasSymbol = true
		}
	}
	return hasLower && hasUpper && hasDigit && hasSymbol
}
