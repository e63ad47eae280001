package syntax

import "regexp"

// Scanner is a position-tracked cursor over a pattern string. Every query is
// anchored to the current position: regex-shaped peeks match there only,
// never further along.
//
// Scanner works over runes rather than bytes: pattern surface syntax is
// ASCII, but literal text embedded in the pattern (including inside
// classes) may be any Unicode scalar value.
type Scanner struct {
	pattern string
	runes   []rune
	pos     int

	// token holds the text of the most recent successful Peek/Consume.
	token string
	// match holds submatch text for the most recent regex-shaped Peek/Consume,
	// indexed the same as regexp.FindStringSubmatch.
	match []string
}

// NewScanner creates a scanner positioned at the start of pattern.
func NewScanner(pattern string) *Scanner {
	return &Scanner{pattern: pattern, runes: []rune(pattern)}
}

// Pos returns the current rune offset into the pattern.
func (s *Scanner) Pos() int { return s.pos }

// SetPos rewinds or advances the cursor to an absolute rune offset.
func (s *Scanner) SetPos(p int) { s.pos = p }

// Token returns the text matched by the most recent successful Peek/Consume.
func (s *Scanner) Token() string { return s.token }

// Match returns the submatch groups of the most recent regex-shaped
// Peek/Consume, or nil if the last match was a literal peek.
func (s *Scanner) Match() []string { return s.match }

// EOF reports whether the cursor has reached the end of the pattern.
func (s *Scanner) EOF() bool { return s.pos >= len(s.runes) }

// Remaining returns the unconsumed tail of the pattern as a string.
func (s *Scanner) Remaining() string { return string(s.runes[s.pos:]) }

// PeekRune tests whether the rune at offset ahead from the cursor equals r,
// without consuming. ahead=0 tests the rune directly under the cursor.
func (s *Scanner) PeekRune(ahead int, r rune) bool {
	i := s.pos + ahead
	return i >= 0 && i < len(s.runes) && s.runes[i] == r
}

// RuneAt returns the rune at offset ahead from the cursor and whether it
// exists.
func (s *Scanner) RuneAt(ahead int) (rune, bool) {
	i := s.pos + ahead
	if i < 0 || i >= len(s.runes) {
		return 0, false
	}
	return s.runes[i], true
}

// PeekLiteral tests whether lit occurs at the cursor, storing it as Token on
// success. It does not advance the cursor.
func (s *Scanner) PeekLiteral(lit string) bool {
	lr := []rune(lit)
	if s.pos+len(lr) > len(s.runes) {
		return false
	}
	for i, r := range lr {
		if s.runes[s.pos+i] != r {
			return false
		}
	}
	s.token = lit
	s.match = nil
	return true
}

// ConsumeLiteral peeks lit and advances the cursor past it on success.
func (s *Scanner) ConsumeLiteral(lit string) bool {
	if !s.PeekLiteral(lit) {
		return false
	}
	s.pos += len([]rune(lit))
	return true
}

// ExpectLiteral consumes lit or raises a ParseError citing desc.
func (s *Scanner) ExpectLiteral(lit, desc string) error {
	if !s.ConsumeLiteral(lit) {
		return newParseErrorf(s, "expected %s", desc)
	}
	return nil
}

// UnexpectLiteral raises a ParseError if lit matches at the cursor.
func (s *Scanner) UnexpectLiteral(lit, desc string) error {
	if s.PeekLiteral(lit) {
		return newParseErrorf(s, "unexpected %s", desc)
	}
	return nil
}

// PeekRegexp anchors re against the remaining pattern text and reports
// whether it matches starting exactly at the cursor. On success Token and
// Match are populated from the match.
func (s *Scanner) PeekRegexp(re *regexp.Regexp) bool {
	loc := re.FindStringSubmatchIndex(s.Remaining())
	if loc == nil || loc[0] != 0 {
		return false
	}
	rest := s.Remaining()
	s.token = rest[loc[0]:loc[1]]
	groups := make([]string, len(loc)/2)
	for i := range groups {
		a, b := loc[2*i], loc[2*i+1]
		if a < 0 {
			continue
		}
		groups[i] = rest[a:b]
	}
	s.match = groups
	return true
}

// ConsumeRegexp peeks re and advances past the matched token on success.
func (s *Scanner) ConsumeRegexp(re *regexp.Regexp) bool {
	if !s.PeekRegexp(re) {
		return false
	}
	s.pos += len([]rune(s.token))
	return true
}

// ExpectRegexp consumes re or raises a ParseError citing desc.
func (s *Scanner) ExpectRegexp(re *regexp.Regexp, desc string) error {
	if !s.ConsumeRegexp(re) {
		return newParseErrorf(s, "expected %s", desc)
	}
	return nil
}
