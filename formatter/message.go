package formatter

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Message renders format with its arguments substituted through the
// hardened formatter. The %m directive expands to the description of
// sysErr (strerror style, capitalized) and consumes no argument; %n
// directives are neutralized to literal text. All remaining directives
// are interpreted by fmt.Sprintf.
func Message(sysErr error, format string, args ...any) string {
	fixed := formatFix(format, sysErr)
	if len(args) == 0 && !strings.Contains(fixed, "%") {
		return fixed
	}
	return fmt.Sprintf(fixed, args...)
}

// formatFix rewrites %m and %n before the template reaches fmt. The
// returned string is still a fmt template, so expanded text has its
// '%' bytes doubled.
func formatFix(format string, sysErr error) string {
	if !strings.ContainsRune(format, '%') {
		return format
	}

	var b strings.Builder
	b.Grow(len(format) + 32)

	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' || i+1 >= len(format) {
			b.WriteByte(c)
			continue
		}

		// Scan past flags, width and precision to find the verb.
		j := i + 1
		for j < len(format) && strings.IndexByte("+-# 0123456789.", format[j]) >= 0 {
			j++
		}
		if j >= len(format) {
			b.WriteString(format[i:])
			break
		}

		switch format[j] {
		case 'm':
			b.WriteString(escapePercent(sysErrText(sysErr)))
			i = j
		case 'n':
			// Neutralized: the directive survives as literal text only.
			b.WriteString("%%")
			b.WriteString(format[i+1 : j+1])
			i = j
		case '%':
			b.WriteString(format[i : j+1])
			i = j
		default:
			b.WriteString(format[i : j+1])
			i = j
		}
	}

	return b.String()
}

// sysErrText returns the strerror-style description of err: first rune
// capitalized, "Unknown error" when no error has been captured.
func sysErrText(err error) string {
	if err == nil {
		return "Unknown error"
	}
	text := err.Error()
	if text == "" {
		return "Unknown error"
	}
	r, size := utf8.DecodeRuneInString(text)
	if unicode.IsUpper(r) {
		return text
	}
	return string(unicode.ToUpper(r)) + text[size:]
}

func escapePercent(s string) string {
	if !strings.ContainsRune(s, '%') {
		return s
	}
	return strings.ReplaceAll(s, "%", "%%")
}
