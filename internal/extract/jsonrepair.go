package extract

import (
	"regexp"
	"strings"
)

// Lenient recovery for near-JSON text. The site occasionally inlines state
// that a strict parser rejects: single-quoted strings, bare object keys,
// trailing commas. RepairJSON is only ever invoked after a strict parse
// has already failed.

var (
	unquotedKeyRe   = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)\s*:`)
	trailingCommaRe = regexp.MustCompile(`,(\s*[}\]])`)
)

// RepairJSON applies best-effort fixes so a strict parse can be retried:
// single-quoted strings become double-quoted, bare object keys are quoted,
// and trailing commas before } or ] are removed. String contents are left
// untouched.
func RepairJSON(s string) string {
	s = normalizeQuotes(s)
	return mapOutsideStrings(s, func(segment string) string {
		segment = unquotedKeyRe.ReplaceAllString(segment, `$1"$2":`)
		segment = trailingCommaRe.ReplaceAllString(segment, "$1")
		return segment
	})
}

// normalizeQuotes rewrites single-quoted strings as double-quoted ones,
// escaping any double quotes they contain and unescaping \' sequences.
func normalizeQuotes(s string) string {
	var out strings.Builder
	out.Grow(len(s))

	inDouble := false
	inSingle := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if escaped {
			if inSingle && c == '\'' {
				// \' inside a single-quoted string needs no escape once
				// the delimiters become double quotes.
				out.WriteByte('\'')
			} else {
				out.WriteByte('\\')
				out.WriteByte(c)
			}
			escaped = false
			continue
		}

		switch {
		case c == '\\' && (inDouble || inSingle):
			escaped = true
		case c == '"' && inSingle:
			out.WriteString(`\"`)
		case c == '"':
			inDouble = !inDouble
			out.WriteByte(c)
		case c == '\'' && !inDouble:
			inSingle = !inSingle
			out.WriteByte('"')
		default:
			out.WriteByte(c)
		}
	}

	return out.String()
}

// mapOutsideStrings applies fn to every region of s that lies outside a
// double-quoted string literal.
func mapOutsideStrings(s string, fn func(string) string) string {
	var out strings.Builder
	out.Grow(len(s))

	inString := false
	escaped := false
	start := 0

	for i := 0; i < len(s); i++ {
		c := s[i]

		if inString {
			out.WriteByte(c)
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
				start = i + 1
			}
			continue
		}

		if c == '"' {
			out.WriteString(fn(s[start:i]))
			out.WriteByte(c)
			inString = true
		}
	}

	if !inString {
		out.WriteString(fn(s[start:]))
	}

	return out.String()
}
