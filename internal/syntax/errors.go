// Package syntax implements the .NET-compatible pattern parser: the scanner,
// group table, flags stack, expression-tree node variants, and the
// recursive-descent parser that translates pattern surface syntax into a
// directly-executable expression tree.
package syntax

import "fmt"

// ParseError reports a syntax error encountered while parsing a pattern.
// It always carries the rune position in the pattern where the error was
// detected.
type ParseError struct {
	Pattern string
	Pos     int
	Msg     string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at position %d in pattern %q: %s", e.Pos, e.Pattern, e.Msg)
}

// newParseError builds a ParseError rooted at the scanner's current position.
func newParseError(s *Scanner, msg string) *ParseError {
	return &ParseError{Pattern: s.pattern, Pos: s.pos, Msg: msg}
}

func newParseErrorf(s *Scanner, format string, args ...any) *ParseError {
	return newParseError(s, fmt.Sprintf(format, args...))
}
