package postgres

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/LerianStudio/lib-pgmanager/pgmanager/config"
	"github.com/LerianStudio/lib-pgmanager/pgmanager/security"
)

var valueEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// ConnString serializes params into a libpq keyword/value connection string,
// one space-separated key=value token per parameter in the given order.
// Values are single-quoted only when the grammar requires it.
func ConnString(params []config.Param) (string, error) {
	for _, p := range params {
		if err := validateKey(p.Key); err != nil {
			return "", err
		}
	}

	return render(params, false), nil
}

// RedactedConnString is ConnString with every sensitive value replaced by
// security.RedactedValue. It is the only form that may be logged.
func RedactedConnString(params []config.Param) string {
	return render(params, true)
}

func render(params []config.Param, redact bool) string {
	tokens := make([]string, 0, len(params))

	for _, p := range params {
		value := quoteValue(p.Value)
		if redact {
			value = security.Redact(p.Key, value)
		}

		tokens = append(tokens, p.Key+"="+value)
	}

	return strings.Join(tokens, " ")
}

func quoteValue(value string) string {
	if value != "" && !strings.ContainsFunc(value, needsQuoting) {
		return value
	}

	return "'" + valueEscaper.Replace(value) + "'"
}

func needsQuoting(r rune) bool {
	return unicode.IsSpace(r) || r == '\'' || r == '\\'
}

// validateKey rejects keys that would corrupt the keyword/value grammar.
// Unknown keywords are not rejected; the server decides what it accepts.
func validateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidParameterKey)
	}

	if strings.ContainsFunc(key, func(r rune) bool { return needsQuoting(r) || r == '=' }) {
		return fmt.Errorf("%w: %q", ErrInvalidParameterKey, key)
	}

	return nil
}
