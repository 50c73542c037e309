package store

import (
	"regexp"
	"strings"
)

// LikeRegexp translates a SQL LIKE pattern into an anchored regular expression.
// % matches any run of characters, _ matches one character and \ escapes the next one.
// Case folding is left to the caller.
func LikeRegexp(pattern string) string {
	var b strings.Builder
	b.WriteString("^")
	escaped := false
	for _, r := range pattern {
		switch {
		case escaped:
			b.WriteString(regexp.QuoteMeta(string(r)))
			escaped = false
		case r == '\\':
			escaped = true
		case r == '%':
			b.WriteString(".*")
		case r == '_':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	return b.String()
}
