package exec

import "github.com/coregx/clrregex/internal/syntax"

// Result is one successful match produced by Engine.Search: the whole-match
// span plus, for every group that captured at least once, its full capture
// history in temporal order.
type Result struct {
	Start, End int // rune indices into the subject, Start <= End always
	Captures   map[syntax.GroupID][]syntax.CaptureValue
}

// Group returns the capture history recorded for id, oldest first, or nil
// if the group never captured in this match.
func (r *Result) Group(id syntax.GroupID) []syntax.CaptureValue {
	return r.Captures[id]
}
