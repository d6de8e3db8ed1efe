// Package quoting provides identifier and literal escaping primitives shared
// by the dialect adapters.
package quoting

import "strings"

// DoubleQuote quotes a SQL identifier using double quotes (PostgreSQL, SQLite, ANSI SQL).
// Internal double quotes are escaped by doubling them.
func DoubleQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Backtick quotes a SQL identifier using backticks (MySQL).
// Internal backticks are escaped by doubling them.
func Backtick(s string) string {
	return "`" + strings.ReplaceAll(s, "`", "``") + "`"
}

// EscapeString escapes a string literal for MySQL by doubling single quotes
// and escaping backslashes.
//
// SECURITY: inline literals are for debugging output only. MySQL with
// multi-byte character sets (GBK, SJIS) can still be attacked through
// escaped literals; bind parameters avoid this class of attack entirely.
func EscapeString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "'", "''")
}

// EscapeStandardString escapes a standard-conforming string literal, where
// backslash has no special meaning and only single quotes are doubled.
func EscapeStandardString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// SanitizeComment neutralises comment terminators so that text placed
// inside /* ... */ cannot break out of the comment.
func SanitizeComment(s string) string {
	s = strings.ReplaceAll(s, "*/", "* /")
	return strings.ReplaceAll(s, "/*", "/ *")
}
