package zap

import "strings"

// controlCharReplacer escapes control characters that can be used for log
// injection (CWE-117) when the console encoder is in use.
var controlCharReplacer = strings.NewReplacer(
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

func sanitizeString(s string) string {
	return controlCharReplacer.Replace(s)
}
