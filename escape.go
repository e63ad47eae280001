package clrregex

import (
	"strings"

	"github.com/coregx/clrregex/internal/syntax"
)

// Escape returns s with every regex metacharacter replaced by its escaped
// form, so the result matches s literally. The escaped set is the fixed
// .NET one: \ * + ? | { [ ( ) ^ $ . # and whitespace.
func Escape(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '\t':
			sb.WriteString(`\t`)
		case '\n':
			sb.WriteString(`\n`)
		case '\f':
			sb.WriteString(`\f`)
		case '\r':
			sb.WriteString(`\r`)
		case '\v':
			sb.WriteString(`\v`)
		case ' ', '#', '$', '(', ')', '*', '+', '.', '?', '[', '\\', '^', '{', '|':
			sb.WriteRune('\\')
			sb.WriteRune(r)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Unescape reverses Escape: every backslash escape in s is replaced by the
// character it denotes, using the same single-character escape grammar as
// patterns (\xHH, \uHHHH, \cX, \0-led octal, mnemonics). An invalid or
// trailing escape is a *SyntaxError.
func Unescape(s string) (string, error) {
	sc := syntax.NewScanner(s)
	var sb strings.Builder
	for !sc.EOF() {
		r, _ := sc.RuneAt(0)
		if r != '\\' {
			sb.WriteRune(r)
			sc.SetPos(sc.Pos() + 1)
			continue
		}
		sc.SetPos(sc.Pos() + 1)
		ch, err := syntax.ScanCharEscape(sc)
		if err != nil {
			if pe, ok := err.(*syntax.ParseError); ok {
				return "", &SyntaxError{Pattern: s, Pos: pe.Pos, Err: err}
			}
			return "", err
		}
		sb.WriteRune(ch)
	}
	return sb.String(), nil
}
