package client

import (
	"regexp"
	"strings"
)

// emailPattern is the loose local@domain.tld shape; the server never
// validates email at all, so anything stricter would reject stored data.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

// PhoneDigits reduces a phone number to its digits, stripping formatting
// punctuation such as "(11) 99999-8888".
func PhoneDigits(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	return digits.String()
}

// ValidateContact performs the client-side pre-flight checks: name and phone
// are required, the phone must reduce to exactly 10 or 11 digits, and an
// email, when present, must have the local@domain.tld shape. These checks
// only avoid obviously-bad round trips; the server is the actual authority.
func ValidateContact(c Contact) error {
	if strings.TrimSpace(c.Name) == "" {
		return &OpError{Op: "validate", Sentinel: ErrValidation, Message: "name is required"}
	}
	if strings.TrimSpace(c.Phone) == "" {
		return &OpError{Op: "validate", Sentinel: ErrValidation, Message: "phone is required"}
	}
	if digits := PhoneDigits(c.Phone); len(digits) != 10 && len(digits) != 11 {
		return &OpError{Op: "validate", Sentinel: ErrValidation, Message: "phone must have 10 or 11 digits"}
	}
	if c.Email != "" && !emailPattern.MatchString(c.Email) {
		return &OpError{Op: "validate", Sentinel: ErrValidation, Message: "email must look like local@domain.tld"}
	}
	return nil
}
