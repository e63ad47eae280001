package clrregex

import (
	"github.com/coregx/clrregex/internal/exec"
	"github.com/coregx/clrregex/internal/syntax"
)

// Capture is one recorded span of the subject: a rune-offset index, a rune
// length, and the captured text. Index is always the lower boundary of the
// span, even for right-to-left expressions.
type Capture struct {
	Index  int
	Length int
	Value  string
}

// Group is the state of one capture group within a Match. Its embedded
// Capture reports the group's most recent (top-of-stack) capture; Captures
// holds the full history, oldest first, one entry per successful iteration
// of the group. Success is false and the embedded Capture is zero when the
// group took part in no iteration at all.
type Group struct {
	Capture
	Name     string
	Success  bool
	Captures []Capture
}

// Match is one successful match. Its embedded Group is the implicit
// whole-match group "0". A failed search returns EmptyMatch, never nil.
type Match struct {
	Group

	re          *Regexp
	input       []rune
	left, right int
	nextStart   int
	prevEnd     int
	groups      []*Group
	byName      map[string]*Group
}

// EmptyMatch is the result of every unsuccessful search: Success is false
// and all groups are absent. It is a sentinel; callers may compare against
// it directly.
var EmptyMatch = &Match{Group: Group{Name: "0"}}

// newMatch assembles the public Match from an engine Result. Groups are
// materialized for every group the pattern declares, successful or not, in
// collapsed enumeration order.
func (re *Regexp) newMatch(input []rune, left, right int, res *exec.Result, dir int) *Match {
	m := &Match{
		re:    re,
		input: input,
		left:  left,
		right: right,
	}
	whole := Capture{Index: res.Start, Length: res.End - res.Start, Value: string(input[res.Start:res.End])}
	m.Group = Group{Capture: whole, Name: "0", Success: true, Captures: []Capture{whole}}

	m.groups = make([]*Group, 0, len(re.collapsed))
	m.byName = make(map[string]*Group, len(re.collapsed))
	for _, id := range re.collapsed {
		var g *Group
		if id == syntax.GroupID(0) {
			g = &m.Group
		} else {
			g = &Group{Name: re.groups.Name(id)}
			for _, cv := range res.Group(id) {
				g.Captures = append(g.Captures, Capture{Index: cv.Start, Length: cv.End - cv.Start, Value: cv.Text})
			}
			if n := len(g.Captures); n > 0 {
				g.Success = true
				g.Capture = g.Captures[n-1]
			}
		}
		m.groups = append(m.groups, g)
		m.byName[g.Name] = g
	}

	// The next scan resumes where the cursor stopped; a zero-width match
	// additionally steps one position so the walk cannot stall.
	end := res.End
	if dir < 0 {
		end = res.Start
	}
	m.prevEnd = end
	m.nextStart = end
	if res.Start == res.End {
		m.nextStart += dir
	}
	return m
}

// Groups returns every group of the match in collapsed enumeration order,
// group "0" first. Groups that did not participate are present with
// Success == false.
func (m *Match) Groups() []*Group {
	out := make([]*Group, len(m.groups))
	copy(out, m.groups)
	return out
}

// GroupByName returns the named group (names of numbered groups are their
// decimal spelling, e.g. "1"), or nil if the pattern declares no such
// group.
func (m *Match) GroupByName(name string) *Group {
	return m.byName[name]
}

// GroupByNumber returns the group at position n of the collapsed
// enumeration order, or nil if out of range.
func (m *Match) GroupByNumber(n int) *Group {
	if n < 0 || n >= len(m.groups) {
		return nil
	}
	return m.groups[n]
}

// NextMatch returns the next match after this one in the same walk, or
// EmptyMatch when the input is exhausted. Calling NextMatch on EmptyMatch
// returns EmptyMatch.
func (m *Match) NextMatch() (*Match, error) {
	if !m.Success || m.re == nil {
		return EmptyMatch, nil
	}
	return m.re.run(m.input, m.left, m.right, m.nextStart, m.prevEnd)
}
