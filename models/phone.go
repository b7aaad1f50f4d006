package models

import (
	"fmt"
	"strings"
)

// NormalizePhone canonicalizes a phone number to E.164 form: separators
// stripped, a single leading +, 8 to 15 digits. Clients are keyed on the
// result, so two spellings of the same number resolve to one client.
func NormalizePhone(raw string) (string, error) {
	var digits strings.Builder
	for i, r := range strings.TrimSpace(raw) {
		switch {
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		case r == '+' && i == 0:
		case r == ' ' || r == '-' || r == '.' || r == '(' || r == ')':
		default:
			return "", fmt.Errorf("invalid phone number %q", raw)
		}
	}
	if n := digits.Len(); n < 8 || n > 15 {
		return "", fmt.Errorf("invalid phone number %q: expected 8-15 digits", raw)
	}
	return "+" + digits.String(), nil
}
