package export

import (
	"fmt"
	"strings"
)

// The consuming system requires CRLF on every line, including the last,
// regardless of host platform.
const lineTerminator = "\r\n"

// EscapeField applies RFC 4180 quote-on-demand escaping: a field is quoted
// if and only if it contains a comma, double quote, carriage return, or line
// feed, with embedded quotes doubled.
func EscapeField(value string) string {
	if !strings.ContainsAny(value, ",\"\r\n") {
		return value
	}
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

// HeaderLine returns the fixed header row. The column names contain no
// special characters, so they are emitted unescaped.
func HeaderLine() string {
	return strings.Join(Columns, ",") + lineTerminator
}

// serializeRow renders ordered field values into one terminated CSV line.
func serializeRow(values []string) string {
	escaped := make([]string, len(values))
	for i, v := range values {
		escaped[i] = EscapeField(v)
	}
	return strings.Join(escaped, ",") + lineTerminator
}

// validateRow checks the column count of a fully serialized row by counting
// delimiters outside quoted regions. A well-formed row has exactly
// len(Columns)-1 of them. This guards against a schema edit silently
// breaking column alignment downstream.
func validateRow(line string) error {
	delimiters := 0
	inQuotes := false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			inQuotes = !inQuotes
		case ',':
			if !inQuotes {
				delimiters++
			}
		}
	}

	if want := len(Columns) - 1; delimiters != want {
		return fmt.Errorf("row has %d field delimiters, want %d", delimiters, want)
	}
	return nil
}
