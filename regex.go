// Package clrregex implements a .NET-compatible regular expression engine.
//
// The dialect is that of System.Text.RegularExpressions, not RE2, PCRE, or
// JavaScript, including the features that set .NET apart:
//   - balancing groups: (?<Y-X>p) pops one capture stack and pushes the
//     span between onto another
//   - multi-capture histories: every iteration of a repeated group is
//     remembered, not only the last
//   - variable-length lookbehind
//   - conditional alternation: (?(cond)yes|no)
//   - right-to-left evaluation
//   - named and numbered groups sharing one namespace
//
// Matching is an explicit backtracking tree walk over the parsed pattern.
// There is deliberately no automaton compilation: balancing groups,
// back-references, and variable-length lookbehind have no finite-state
// equivalent. Patterns with a mandatory literal get a prefilter that
// rejects impossible windows before the backtracker runs at all.
//
// Basic usage:
//
//	re, err := clrregex.Compile(`(?<word>\w+)`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	m, _ := re.Match("hello world")
//	fmt.Println(m.Value) // "hello"
//
// Advanced usage:
//
//	opts := clrregex.Options{Flags: "i", RightToLeft: true}
//	re, err := clrregex.CompileWithOptions(`a\d+`, opts)
//
// Indices reported by Match, Group, and Capture are rune offsets into the
// subject string, so one column of a non-ASCII subject is one index unit.
package clrregex

import (
	"errors"

	"github.com/coregx/clrregex/internal/exec"
	"github.com/coregx/clrregex/internal/syntax"
	"github.com/coregx/clrregex/literal"
	"github.com/coregx/clrregex/prefilter"
)

// Regexp is a compiled regular expression. It is immutable after
// construction and safe to share across goroutines: every matching call
// builds its own private state.
type Regexp struct {
	pattern   string
	opts      Options
	engine    *exec.Engine
	groups    *syntax.GroupTable
	collapsed []syntax.GroupID
	names     []string // group names in collapsed order
}

// Compile compiles pattern with default options (left-to-right, no flags).
//
// Returns a *SyntaxError describing position and cause if the pattern is
// invalid.
func Compile(pattern string) (*Regexp, error) {
	return CompileWithOptions(pattern, Options{})
}

// CompileWithOptions compiles pattern under opts.
//
// Example:
//
//	re, err := clrregex.CompileWithOptions(`^item$`, clrregex.Options{Flags: "im"})
func CompileWithOptions(pattern string, opts Options) (*Regexp, error) {
	sopts, err := opts.syntaxOptions()
	if err != nil {
		return nil, err
	}
	root, groups, err := syntax.Parse(pattern, sopts)
	if err != nil {
		var pe *syntax.ParseError
		if errors.As(err, &pe) {
			return nil, &SyntaxError{Pattern: pattern, Pos: pe.Pos, Err: err}
		}
		return nil, err
	}

	pf := buildPrefilter(root, opts.RightToLeft)
	eng := exec.New(root, groups, opts.RightToLeft, pf, opts.MaxSteps)

	re := &Regexp{
		pattern:   pattern,
		opts:      opts,
		engine:    eng,
		groups:    groups,
		collapsed: groups.CollapsedOrder(),
	}
	re.names = make([]string, len(re.collapsed))
	for i, id := range re.collapsed {
		re.names[i] = groups.Name(id)
	}
	return re, nil
}

// MustCompile compiles pattern and panics if it fails. Useful for patterns
// known to be valid at program start.
//
// Example:
//
//	var wordRe = clrregex.MustCompile(`\w+`)
func MustCompile(pattern string) *Regexp {
	re, err := Compile(pattern)
	if err != nil {
		panic("clrregex: Compile(" + pattern + "): " + err.Error())
	}
	return re
}

// buildPrefilter extracts the pattern's mandatory literal prefix (or the
// per-branch literals of a pure-literal alternation) and compiles the
// cheapest fast-reject filter over them. Right-to-left trees are skipped:
// their sequences are stored reversed, so a prefix walk would produce the
// literal's text back to front.
func buildPrefilter(root syntax.Node, rightToLeft bool) prefilter.Prefilter {
	if rightToLeft {
		return nil
	}
	seq := literal.FromNode(root)
	if seq.IsEmpty() {
		seq = literal.FromAlternation(root)
	}
	if seq.IsEmpty() {
		return nil
	}
	seq.Minimize()
	return prefilter.NewBuilder(seq, nil).Build()
}

// String returns the source text the expression was compiled from.
func (re *Regexp) String() string { return re.pattern }

// RightToLeft reports whether the expression evaluates right-to-left.
func (re *Regexp) RightToLeft() bool { return re.opts.RightToLeft }

// GroupCount returns the number of capture groups, including the implicit
// whole-match group "0".
func (re *Regexp) GroupCount() int { return len(re.collapsed) }

// GroupNames returns every group name in .NET's collapsed enumeration
// order: group "0" first; then, for positions 1, 2, ..., the decimal-named
// group with that number if there is one, otherwise the next purely-named
// group in declaration order; then whatever remains of either kind.
func (re *Regexp) GroupNames() []string {
	out := make([]string, len(re.names))
	copy(out, re.names)
	return out
}

// GroupNumberFromName returns the position of the named group in the
// collapsed enumeration order, or -1 if no such group exists.
func (re *Regexp) GroupNumberFromName(name string) int {
	for i, n := range re.names {
		if n == name {
			return i
		}
	}
	return -1
}

// GroupNameFromNumber returns the name of the group at position n of the
// collapsed enumeration order, or "" if n is out of range.
func (re *Regexp) GroupNameFromNumber(n int) string {
	if n < 0 || n >= len(re.names) {
		return ""
	}
	return re.names[n]
}

// defaultStart is where a scan begins when the caller gives no explicit
// start: the left edge for left-to-right, the right edge for right-to-left.
func (re *Regexp) defaultStart(input []rune) int {
	if re.opts.RightToLeft {
		return len(input)
	}
	return 0
}

// run performs one search over window [left, right] starting at cursor and
// assembles the public Match. prevEnd seeds the \G anchor.
func (re *Regexp) run(input []rune, left, right, cursor, prevEnd int) (*Match, error) {
	res, ok, err := re.engine.Search(input, left, right, cursor, prevEnd)
	if err != nil {
		return EmptyMatch, ErrStepLimitExceeded
	}
	if !ok {
		return EmptyMatch, nil
	}
	dir := 1
	if re.opts.RightToLeft {
		dir = -1
	}
	return re.newMatch(input, left, right, res, dir), nil
}

// window computes the matching window for a start-only scan: [start, end of
// input] for left-to-right, [start of input, start] for right-to-left.
func (re *Regexp) window(input []rune, start int) (left, right int) {
	if re.opts.RightToLeft {
		return 0, start
	}
	return start, len(input)
}

// Match returns the first match in input, or EmptyMatch if there is none.
//
// Example:
//
//	re := clrregex.MustCompile(`\d+`)
//	m, _ := re.Match("age: 42")
//	fmt.Println(m.Value, m.Index) // "42" 5
func (re *Regexp) Match(input string) (*Match, error) {
	runes := []rune(input)
	return re.matchAt(runes, re.defaultStart(runes))
}

// MatchAt returns the first match at or after start (at or before start
// for right-to-left expressions). start is a rune offset.
func (re *Regexp) MatchAt(input string, start int) (*Match, error) {
	runes := []rune(input)
	if start < 0 || start > len(runes) {
		return EmptyMatch, ErrIndexOutOfRange
	}
	return re.matchAt(runes, start)
}

func (re *Regexp) matchAt(runes []rune, start int) (*Match, error) {
	left, right := re.window(runes, start)
	return re.run(runes, left, right, start, start)
}

// MatchWindow restricts matching to the length runes beginning at start
// (ending at start, for right-to-left expressions). Boundary-sensitive
// anchors such as ^, $, \A, and \b operate on the window, not the whole
// input.
func (re *Regexp) MatchWindow(input string, start, length int) (*Match, error) {
	runes := []rune(input)
	if start < 0 || start > len(runes) || length < 0 {
		return EmptyMatch, ErrIndexOutOfRange
	}
	left, right := start, start+length
	if re.opts.RightToLeft {
		left, right = start-length, start
	}
	if left < 0 || right > len(runes) {
		return EmptyMatch, ErrIndexOutOfRange
	}
	return re.run(runes, left, right, start, start)
}

// IsMatch reports whether input contains any match.
func (re *Regexp) IsMatch(input string) (bool, error) {
	m, err := re.Match(input)
	return m.Success, err
}

// IsMatchAt reports whether input contains a match at or after start (at
// or before, for right-to-left expressions).
func (re *Regexp) IsMatchAt(input string, start int) (bool, error) {
	m, err := re.MatchAt(input, start)
	return m.Success, err
}

// Matches returns every non-overlapping match in input, in evaluation
// order: ascending index for left-to-right, descending for right-to-left.
// The result is nil when there are no matches.
func (re *Regexp) Matches(input string) ([]*Match, error) {
	runes := []rune(input)
	return re.collectMatches(runes, re.defaultStart(runes), -1)
}

// MatchesAt returns every non-overlapping match at or after start (at or
// before, for right-to-left expressions).
func (re *Regexp) MatchesAt(input string, start int) ([]*Match, error) {
	runes := []rune(input)
	if start < 0 || start > len(runes) {
		return nil, ErrIndexOutOfRange
	}
	return re.collectMatches(runes, start, -1)
}

// collectMatches walks the match sequence from start, stopping after limit
// matches (limit < 0 collects them all).
func (re *Regexp) collectMatches(runes []rune, start, limit int) ([]*Match, error) {
	if limit == 0 {
		return nil, nil
	}
	var out []*Match
	m, err := re.matchAt(runes, start)
	for err == nil && m.Success {
		out = append(out, m)
		if limit > 0 && len(out) == limit {
			break
		}
		m, err = m.NextMatch()
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}
