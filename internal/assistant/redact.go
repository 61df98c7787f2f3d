package assistant

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// MaxList caps how many records of one category go into a LIST context.
	MaxList = 5
	// MaxTextLength is the rune budget for one free-text field before it is embedded.
	MaxTextLength = 400

	RedactedEmail  = "[REDACTED_EMAIL]"
	RedactedNumber = "[REDACTED_NUMBER]"

	ellipsis = "…"
)

var (
	emailPattern     = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	longDigitPattern = regexp.MustCompile(`\d{7,}`)

	escaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`)
)

// Redact replaces e-mail addresses and digit runs of seven or more with placeholders,
// then truncates to MaxTextLength. Redact(Redact(x)) == Redact(x).
func Redact(text string) string {
	if text == "" {
		return ""
	}
	out := emailPattern.ReplaceAllString(text, RedactedEmail)
	out = longDigitPattern.ReplaceAllString(out, RedactedNumber)
	return Truncate(out, MaxTextLength)
}

// Escape makes text safe inside a double-quoted field.
func Escape(text string) string {
	return escaper.Replace(text)
}

// Truncate keeps the first max runes and appends an ellipsis when anything was cut.
// The result is at most max+1 runes and truncating it again is a no-op.
func Truncate(text string, max int) string {
	if max < 0 || utf8.RuneCountInString(text) <= max {
		return text
	}
	r := []rune(text)
	return string(r[:max]) + ellipsis
}
