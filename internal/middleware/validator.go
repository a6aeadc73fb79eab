package middleware

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

// Input validation and sanitization utilities

var (
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
	otpPattern   = regexp.MustCompile(`^[0-9]{6}$`)
)

// ValidateEmail accepts a bare address, no display name.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(addr.Address[strings.LastIndex(addr.Address, "@"):], ".") {
		return fmt.Errorf("email is not a valid address")
	}
	return nil
}

// ValidatePhone expects a 10 digit mobile number without country code
func ValidatePhone(phone string) error {
	if phone == "" {
		return fmt.Errorf("phone cannot be empty")
	}
	if !phonePattern.MatchString(phone) {
		return fmt.Errorf("phone must be 10 digits")
	}
	return nil
}

// NormalizePhone strips spaces, dashes and a leading +91 or 0.
func NormalizePhone(phone string) string {
	phone = strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' || r == '(' || r == ')' {
			return -1
		}
		return r
	}, phone)
	phone = strings.TrimPrefix(phone, "+91")
	if len(phone) == 11 && strings.HasPrefix(phone, "0") {
		phone = phone[1:]
	}
	return phone
}

// ValidateOTP checks the 6 digit code format
func ValidateOTP(code string) error {
	if !otpPattern.MatchString(code) {
		return fmt.Errorf("otp must be 6 digits")
	}
	return nil
}

// ValidateName requires a non-empty name of sane length
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if len(name) > 120 {
		return fmt.Errorf("name is too long")
	}
	return nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	// Remove control characters
	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

// ValidateLimit validates pagination limit
func ValidateLimit(limit int) int {
	if limit <= 0 {
		return 20 // default
	}
	if limit > 100 {
		return 100 // max limit
	}
	return limit
}
