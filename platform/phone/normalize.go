// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const defaultRegion = "IN"

var indianMobile = regexp.MustCompile(`^(?:\+91|0)?[6-9]\d{9}$`)

// Normalize keeps digits and a single leading plus sign, dropping spaces,
// dashes, brackets and any other separator. Normalize is idempotent.
func Normalize(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for _, r := range strings.TrimSpace(input) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && b.Len() == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsIndianMobile reports whether a normalized number is an Indian mobile:
// optional +91 or 0 prefix, a leading 6-9, then nine more digits.
func IsIndianMobile(normalized string) bool {
	return indianMobile.MatchString(normalized)
}

// NormalizeE164 formats a phone number to E.164. If parsing fails, it returns the normalized input.
func NormalizeE164(input string) string {
	normalized := Normalize(input)
	if normalized == "" {
		return normalized
	}

	number, err := phonenumbers.Parse(normalized, defaultRegion)
	if err != nil {
		return normalized
	}

	if !phonenumbers.IsValidNumber(number) {
		return normalized
	}

	return phonenumbers.Format(number, phonenumbers.E164)
}
