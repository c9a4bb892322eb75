// Package validate holds the input checks run on form fields before a tool
// call is built. Every check is pure: it either returns nil or an *Error
// carrying a message suitable for showing to the workflow author.
package validate

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	rePhone = regexp.MustCompile(`^\+?[1-9]\d{6,14}$`)
	reURL   = regexp.MustCompile(`^https?://.+`)
)

// Error is a human-readable validation failure.
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

// Errorf builds an *Error from a format string.
func Errorf(format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// PhoneNumber checks an E.164-like number. Spaces and hyphens are ignored.
// An empty string means "not provided" and passes.
func PhoneNumber(phone string) error {
	if phone == "" {
		return nil
	}
	if !rePhone.MatchString(Normalize(phone)) {
		return Errorf("Invalid phone number format: %q. Use international format like +15551234567", phone)
	}
	return nil
}

// Normalize strips the separators users commonly type into phone numbers.
func Normalize(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for _, r := range phone {
		if r == ' ' || r == '-' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// URL checks that url is empty or starts with http:// or https://.
func URL(url, label string) error {
	if url == "" || reURL.MatchString(url) {
		return nil
	}
	return Errorf("Invalid %s: %q. URL must start with http:// or https://", label, url)
}

// JSON parses text and returns the decoded value. A parse failure is
// reported as an *Error rather than a decoder error so callers can surface it
// per item.
func JSON(text, label string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, Errorf(`Invalid JSON in %s. Please check your JSON syntax. Example: {"key": "value"}`, label)
	}
	return v, nil
}
