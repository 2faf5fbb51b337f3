package validation

import (
	"errors"
	"strings"
	"unicode"

	"github.com/agroshield/claim-validation-service/internal/models"
)

// ErrLocationEmpty is returned when location is empty or whitespace-only after trim.
var ErrLocationEmpty = errors.New("location is required")

// ErrLocationTooLong is returned when location length exceeds the maximum.
var ErrLocationTooLong = errors.New("location too long")

// ErrLocationInvalidChars is returned when location contains disallowed characters.
var ErrLocationInvalidChars = errors.New("location contains invalid characters")

// ValidateLocation trims the input, enforces the maximum length (in runes),
// and restricts to allowed characters: letters (Unicode), digits, space,
// comma, hyphen. Returns the trimmed string or an error suitable for 400
// INVALID_LOCATION responses.
func ValidateLocation(input string, maxLen int) (string, error) {
	s := strings.TrimSpace(input)
	r := []rune(s)
	if len(r) == 0 {
		return "", ErrLocationEmpty
	}
	if maxLen > 0 && len(r) > maxLen {
		return "", ErrLocationTooLong
	}
	for _, c := range r {
		if !isAllowedLocationRune(c) {
			return "", ErrLocationInvalidChars
		}
	}
	return s, nil
}

func isAllowedLocationRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsNumber(r) {
		return true
	}
	switch r {
	case ' ', ',', '-':
		return true
	}
	return false
}

// MissingClaimFields reports which required claim fields are absent. A claim
// with any missing field must be rejected before any provider traffic.
func MissingClaimFields(c models.Claim) []string {
	var missing []string
	if strings.TrimSpace(c.Location) == "" {
		missing = append(missing, "location")
	}
	if c.Date.IsZero() {
		missing = append(missing, "date")
	}
	if c.EventType == "" {
		missing = append(missing, "event type")
	}
	if c.Severity == "" {
		missing = append(missing, "severity")
	}
	return missing
}
