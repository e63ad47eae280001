package clrregex

import "strings"

// MatchEvaluator computes the replacement text for one match, for the
// ReplaceFunc variants.
type MatchEvaluator func(*Match) string

// Result substitutes this match into template and returns the produced
// text. Template syntax:
//
//	$$         a literal $
//	$n, ${n}   the value of group n; an unknown number is literal text
//	${name}    the value of the named group; unknown names are literal
//	$&         the whole match
//	$_         the whole input
//	$`         the input preceding the match
//	$'         the input following the match
//	$+         the last successful group in collapsed enumeration order
//
// Any other $x is the literal two characters. For a $ followed by a digit
// run, the longest prefix naming an existing group wins and the remaining
// digits are literal.
//
// Result returns ErrEmptyMatch when called on EmptyMatch.
func (m *Match) Result(template string) (string, error) {
	if m.re == nil || !m.Success {
		return "", ErrEmptyMatch
	}
	return m.expand(template), nil
}

func (m *Match) expand(template string) string {
	t := []rune(template)
	var sb strings.Builder
	for i := 0; i < len(t); i++ {
		r := t[i]
		if r != '$' || i+1 >= len(t) {
			sb.WriteRune(r)
			continue
		}
		switch next := t[i+1]; {
		case next == '$':
			sb.WriteRune('$')
			i++
		case next == '&':
			sb.WriteString(m.Value)
			i++
		case next == '_':
			sb.WriteString(string(m.input))
			i++
		case next == '`':
			sb.WriteString(string(m.input[:m.Index]))
			i++
		case next == '\'':
			sb.WriteString(string(m.input[m.Index+m.Length:]))
			i++
		case next == '+':
			sb.WriteString(m.lastGroup().Value)
			i++
		case next == '{':
			j := i + 2
			for j < len(t) && t[j] != '}' {
				j++
			}
			if j < len(t) && j > i+2 {
				if g, ok := m.byName[string(t[i+2:j])]; ok {
					sb.WriteString(g.Value)
					i = j
					continue
				}
			}
			sb.WriteRune('$')
		case next >= '0' && next <= '9':
			j := i + 1
			for j < len(t) && t[j] >= '0' && t[j] <= '9' {
				j++
			}
			digits := string(t[i+1 : j])
			matched := 0
			var g *Group
			for n := len(digits); n >= 1; n-- {
				if gg, ok := m.byName[digits[:n]]; ok {
					g, matched = gg, n
					break
				}
			}
			if g == nil {
				sb.WriteRune('$')
				continue
			}
			sb.WriteString(g.Value)
			sb.WriteString(digits[matched:])
			i = j - 1
		default:
			sb.WriteRune('$')
		}
	}
	return sb.String()
}

// lastGroup resolves $+: the last group in collapsed enumeration order
// that succeeded, or the whole-match group when none did.
func (m *Match) lastGroup() *Group {
	last := m.groups[0]
	for _, g := range m.groups[1:] {
		if g.Success {
			last = g
		}
	}
	return last
}

// Replace substitutes every match in input with the template replacement
// (see Match.Result for the template syntax).
func (re *Regexp) Replace(input, replacement string) (string, error) {
	return re.replaceCore(input, -1, -1, func(m *Match) string { return m.expand(replacement) })
}

// ReplaceN substitutes at most count matches, scanning from start. count
// -1 substitutes them all; any other negative count is ErrCountOutOfRange.
// start -1 means the direction's default edge.
func (re *Regexp) ReplaceN(input, replacement string, count, start int) (string, error) {
	return re.replaceCore(input, count, start, func(m *Match) string { return m.expand(replacement) })
}

// ReplaceFunc substitutes every match in input with the text eval returns
// for it.
func (re *Regexp) ReplaceFunc(input string, eval MatchEvaluator) (string, error) {
	return re.replaceCore(input, -1, -1, eval)
}

// ReplaceFuncN substitutes at most count matches, scanning from start,
// with the text eval returns for each.
func (re *Regexp) ReplaceFuncN(input string, eval MatchEvaluator, count, start int) (string, error) {
	return re.replaceCore(input, count, start, eval)
}

// replaceCore collects up to count matches and splices replacements into
// input in textual order. Right-to-left engines find matches from the
// right, so the collected sequence is reversed before splicing; the output
// is identical either way, only which matches survive a count limit
// differs. start < 0 means the direction's default edge.
func (re *Regexp) replaceCore(input string, count, start int, eval MatchEvaluator) (string, error) {
	if count < -1 {
		return "", ErrCountOutOfRange
	}
	if count == 0 {
		return input, nil
	}
	runes := []rune(input)
	if start < 0 {
		start = re.defaultStart(runes)
	}
	if start > len(runes) {
		return "", ErrIndexOutOfRange
	}
	ms, err := re.collectMatches(runes, start, count)
	if err != nil {
		return "", err
	}
	if len(ms) == 0 {
		return input, nil
	}
	if re.opts.RightToLeft {
		reverseMatches(ms)
	}
	var sb strings.Builder
	pos := 0
	for _, m := range ms {
		sb.WriteString(string(runes[pos:m.Index]))
		sb.WriteString(eval(m))
		pos = m.Index + m.Length
	}
	sb.WriteString(string(runes[pos:]))
	return sb.String(), nil
}

// Split cuts input around every match and returns the pieces.
//
// Example:
//
//	re := clrregex.MustCompile(`,`)
//	parts, _ := re.Split("a,b,c") // ["a" "b" "c"]
func (re *Regexp) Split(input string) ([]string, error) {
	return re.splitCore(input, -1, -1)
}

// SplitN cuts input at the spans of the first count-1 matches, producing
// at most count pieces, scanning from start. count -1 means no limit;
// count 0 produces no pieces at all; any other negative count is
// ErrCountOutOfRange. start -1 means the direction's default edge.
func (re *Regexp) SplitN(input string, count, start int) ([]string, error) {
	return re.splitCore(input, count, start)
}

func (re *Regexp) splitCore(input string, count, start int) ([]string, error) {
	if count < -1 {
		return nil, ErrCountOutOfRange
	}
	if count == 0 {
		return []string{}, nil
	}
	runes := []rune(input)
	if start < 0 {
		start = re.defaultStart(runes)
	}
	if start > len(runes) {
		return nil, ErrIndexOutOfRange
	}
	limit := -1
	if count > 0 {
		limit = count - 1
	}
	ms, err := re.collectMatches(runes, start, limit)
	if err != nil {
		return nil, err
	}
	// Pieces come out left-to-right regardless of direction: matches found
	// right-to-left are put back in ascending order before cutting, so the
	// count limit alone differs by direction (it keeps the rightmost
	// separators), exactly as in .NET.
	if re.opts.RightToLeft {
		reverseMatches(ms)
	}
	pieces := make([]string, 0, len(ms)+1)
	pos := 0
	for _, m := range ms {
		pieces = append(pieces, string(runes[pos:m.Index]))
		pos = m.Index + m.Length
	}
	pieces = append(pieces, string(runes[pos:]))
	return pieces, nil
}

func reverseMatches(ms []*Match) {
	for i, j := 0, len(ms)-1; i < j; i, j = i+1, j-1 {
		ms[i], ms[j] = ms[j], ms[i]
	}
}
