package dialect

import (
	"fmt"
	"strings"
	"unicode/utf16"
)

// quoteC writes a C/C++ narrow string literal. Everything outside
// printable ASCII becomes a three-digit octal escape so the literal holds
// the word's exact bytes whatever the compiler's source charset.
func quoteC(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"' || c == '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case c == '?':
			// keeps trigraph sequences from forming
			b.WriteString(`\?`)
		case c < 0x20 || c >= 0x7f:
			fmt.Fprintf(&b, `\%03o`, c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// quoteCpp writes a std::string literal. The s suffix keeps the byte
// length, so a word holding NUL is not cut short by the const char*
// constructor.
func quoteCpp(s string) string {
	return quoteC(s) + "s"
}

// quoteRust writes a Rust string literal; source files are UTF-8.
func quoteRust(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '"' || r == '\\':
			b.WriteRune('\\')
			b.WriteRune(r)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\u{%x}`, r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// quoteCSharp writes a C# regular string literal in pure ASCII.
func quoteCSharp(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '"' || r == '\\':
			b.WriteRune('\\')
			b.WriteRune(r)
		case r >= 0x20 && r < 0x7f:
			b.WriteRune(r)
		case r > 0xffff:
			fmt.Fprintf(&b, `\U%08x`, r)
		default:
			fmt.Fprintf(&b, `\u%04x`, r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// quotePowerShell writes a PowerShell string expression in pure ASCII.
// Printable ASCII goes in single quotes (which do not interpolate); any
// other character is appended as a [char] cast, so Windows PowerShell
// reading the script in the ANSI code page still sees the exact word.
func quotePowerShell(s string) string {
	plain := true
	for _, r := range s {
		if r < 0x20 || r >= 0x7f {
			plain = false
			break
		}
	}
	if plain {
		return "'" + strings.ReplaceAll(s, "'", "''") + "'"
	}

	parts := []string{"''"}
	var run strings.Builder
	flush := func() {
		if run.Len() > 0 {
			parts = append(parts, "'"+strings.ReplaceAll(run.String(), "'", "''")+"'")
			run.Reset()
		}
	}
	for _, u := range utf16.Encode([]rune(s)) {
		if u >= 0x20 && u < 0x7f {
			run.WriteRune(rune(u))
			continue
		}
		flush()
		parts = append(parts, fmt.Sprintf("[char]0x%04x", u))
	}
	flush()
	return "(" + strings.Join(parts, " + ") + ")"
}

// quoteVBScript writes a VBScript string expression in pure ASCII, using
// ChrW for anything outside printable ASCII.
func quoteVBScript(s string) string {
	if s == "" {
		return `""`
	}

	var parts []string
	var run strings.Builder
	flush := func() {
		if run.Len() > 0 {
			parts = append(parts, `"`+strings.ReplaceAll(run.String(), `"`, `""`)+`"`)
			run.Reset()
		}
	}
	for _, u := range utf16.Encode([]rune(s)) {
		if u >= 0x20 && u < 0x7f {
			run.WriteRune(rune(u))
			continue
		}
		flush()
		parts = append(parts, fmt.Sprintf("ChrW(%d)", u))
	}
	flush()
	return strings.Join(parts, " & ")
}
