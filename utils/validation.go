// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

var phoneRegexp = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

// ValidatePhone checks that a phone number looks like an international
// number: optional + prefix, then digits. Spaces, dashes and parentheses
// are stripped first.
func ValidatePhone(phone string) bool {
	cleaned := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(phone)
	return phoneRegexp.MatchString(cleaned)
}
