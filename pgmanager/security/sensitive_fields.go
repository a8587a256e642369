package security

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
)

// RedactedValue replaces sensitive values in any diagnostic output.
const RedactedValue = "***"

var defaultSensitiveFields = []string{
	"password",
	"sslpassword",
	"passwd",
	"pwd",
	"token",
	"secret",
	"key",
	"auth",
	"credential",
	"credentials",
	"apikey",
	"api_key",
	"access_token",
	"refresh_token",
	"private_key",
	"client_secret",
}

// shortSensitiveTokens are too generic for substring matching and only match
// as a whole token, so "sslkey" (a file path) is not treated as a secret.
var shortSensitiveTokens = map[string]bool{
	"key":  true,
	"auth": true,
	"pwd":  true,
}

var tokenSplitRegex = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// normalizeFieldName converts camelCase keys into underscore-delimited
// lowercase tokens ("sslPassword" becomes "ssl_password").
func normalizeFieldName(fieldName string) string {
	var b strings.Builder

	runes := []rune(fieldName)

	for i, r := range runes {
		if i > 0 {
			prev := runes[i-1]

			var next rune
			if i+1 < len(runes) {
				next = runes[i+1]
			}

			if unicode.IsUpper(r) &&
				(unicode.IsLower(prev) || unicode.IsDigit(prev) ||
					(unicode.IsUpper(prev) && next != 0 && unicode.IsLower(next))) {
				b.WriteByte('_')
			}
		}

		b.WriteRune(r)
	}

	return strings.ToLower(b.String())
}

// IsSensitiveField reports whether a parameter key names a credential.
// Matching is case-insensitive; short tokens require an exact token match and
// longer patterns require word boundaries.
func IsSensitiveField(fieldName string) bool {
	lower := strings.ToLower(strings.TrimSpace(fieldName))
	if lower == "" {
		return false
	}

	if slices.Contains(defaultSensitiveFields, lower) {
		return true
	}

	normalized := normalizeFieldName(strings.TrimSpace(fieldName))
	tokens := tokenSplitRegex.Split(normalized, -1)

	for _, sensitive := range defaultSensitiveFields {
		if shortSensitiveTokens[sensitive] {
			if slices.Contains(tokens, sensitive) {
				return true
			}

			continue
		}

		if matchesWordBoundary(normalized, sensitive) {
			return true
		}
	}

	return false
}

// Redact returns value unchanged unless key is sensitive.
func Redact(key, value string) string {
	if IsSensitiveField(key) {
		return RedactedValue
	}

	return value
}

func matchesWordBoundary(field, pattern string) bool {
	idx := strings.Index(field, pattern)

	for idx != -1 {
		end := idx + len(pattern)

		startOk := idx == 0 || !isAlphanumeric(field[idx-1])
		endOk := end == len(field) || !isAlphanumeric(field[end])

		if startOk && endOk {
			return true
		}

		next := strings.Index(field[end:], pattern)
		if next == -1 {
			return false
		}

		idx = end + next
	}

	return false
}

func isAlphanumeric(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
