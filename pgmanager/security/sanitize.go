package security

import "regexp"

var (
	urlCredentialsPattern = regexp.MustCompile(`://[^@\s/]+@`)
	// quoted keyword/value pairs: password='a b' (with \' escapes)
	quotedPasswordPattern = regexp.MustCompile(`(?i)\b((?:ssl)?password\s*=\s*)'(?:[^'\\]|\\.)*'`)
	plainPasswordPattern  = regexp.MustCompile(`(?i)\b((?:ssl)?password\s*=\s*)([^\s&'][^\s&]*)`)
)

// SanitizeText masks credentials embedded in free text such as driver error
// messages: URL userinfo and password/sslpassword keyword values.
func SanitizeText(s string) string {
	sanitized := urlCredentialsPattern.ReplaceAllString(s, "://"+RedactedValue+"@")
	sanitized = quotedPasswordPattern.ReplaceAllString(sanitized, "${1}"+RedactedValue)
	sanitized = plainPasswordPattern.ReplaceAllString(sanitized, "${1}"+RedactedValue)

	return sanitized
}
