// Package exec implements the backtracking search loop that drives a
// compiled expression tree (internal/syntax.Node) against a subject string,
// assembling successful attempts into Results.
//
// There is exactly one execution strategy: tree-walking backtrack. The
// compiled form is the expression tree itself, never an automaton, because
// .NET constructs (balancing groups, variable-length lookbehind,
// back-references) have no finite-state equivalent.
package exec

import (
	"github.com/coregx/clrregex/internal/syntax"
	"github.com/coregx/clrregex/prefilter"
)

// Engine drives one compiled expression tree. It is immutable after
// construction and safe to share across goroutines: every Search call
// builds its own syntax.State.
type Engine struct {
	root        syntax.Node
	groups      *syntax.GroupTable
	rightToLeft bool
	prefilter   prefilter.Prefilter
	maxSteps    int
}

// New builds an Engine over an already-parsed, already-inverted expression
// tree. pf may be nil (no fast-reject layer available for this pattern).
// maxSteps is the optional backtracking-step budget (0 = unbounded).
func New(root syntax.Node, groups *syntax.GroupTable, rightToLeft bool, pf prefilter.Prefilter, maxSteps int) *Engine {
	return &Engine{root: root, groups: groups, rightToLeft: rightToLeft, prefilter: pf, maxSteps: maxSteps}
}

// Groups returns the group table the engine's tree was compiled against.
func (e *Engine) Groups() *syntax.GroupTable { return e.groups }

// RightToLeft reports whether this engine evaluates right-to-left.
func (e *Engine) RightToLeft() bool { return e.rightToLeft }

// scanWindow is the per-Search view the prefilter operates on. The
// prefilter indexes by byte offset and the engine indexes by rune, so the
// remaining window is re-encoded once per Search call; when the encoded
// window turns out to be pure ASCII the two offset spaces coincide and the
// prefilter can additionally fast-forward the cursor between attempts.
type scanWindow struct {
	bytes []byte
	base  int // rune index of bytes[0]
	ascii bool
	tr    *prefilter.Tracker
}

// openWindow encodes the not-yet-scanned part of the matching window and
// answers whether any candidate position exists in it at all. A definite
// "no" lets Search skip the entire cursor scan without invoking Node.Match
// once. ok=false means "cannot match"; a nil window with ok=true means "no
// prefilter available, scan everything".
func (e *Engine) openWindow(input []rune, lo, hi, dir int) (*scanWindow, bool) {
	if e.prefilter == nil {
		return nil, true
	}
	if lo < 0 {
		lo = 0
	}
	if hi > len(input) {
		hi = len(input)
	}
	if lo >= hi {
		// An empty window cannot contain the pattern's mandatory literal.
		return nil, false
	}
	w := &scanWindow{bytes: []byte(string(input[lo:hi])), base: lo}
	if e.prefilter.Find(w.bytes, 0) == -1 {
		return nil, false
	}
	w.ascii = len(w.bytes) == hi-lo
	if dir > 0 && w.ascii {
		w.tr = prefilter.NewTracker(e.prefilter)
	}
	return w, true
}

// fastForward skips the cursor ahead to the next candidate position, when
// the window supports it. done=true means no candidate remains anywhere in
// the window and the whole Search can stop.
func (w *scanWindow) fastForward(cursor int) (next int, done bool) {
	if w == nil || w.tr == nil || !w.tr.IsActive() {
		return cursor, false
	}
	off := cursor - w.base
	if off < 0 || off > len(w.bytes) {
		return cursor, false
	}
	pos := w.tr.Find(w.bytes, off)
	if pos == -1 {
		// The tracker may have just retired itself; only a live "no
		// candidate" answer is authoritative.
		return cursor, w.tr.IsActive()
	}
	return w.base + pos, false
}

func (w *scanWindow) confirm() {
	if w != nil && w.tr != nil {
		w.tr.ConfirmMatch()
	}
}

// Search evaluates the root expression at the current cursor; on success it
// assembles a Result and returns; on failure it advances the cursor by one
// in direction and retries, stopping once the cursor passes the window
// bound.
//
// left and right delimit the matching window [left, right] (RTL callers
// pass the conventional high/low bounds the same way; direction alone
// determines which way the cursor walks). cursor is the position to start
// scanning from and previousMatchEnd feeds the \G anchor.
//
// Search returns (nil, false, nil) for "no match in window", and a non-nil
// error only when the backtracking-step budget was exceeded mid-attempt.
func (e *Engine) Search(input []rune, left, right, cursor, previousMatchEnd int) (*Result, bool, error) {
	dir := 1
	if e.rightToLeft {
		dir = -1
	}

	lo, hi := left, right
	if dir > 0 {
		lo = cursor
	} else {
		hi = cursor
	}
	window, ok := e.openWindow(input, lo, hi, dir)
	if !ok {
		return nil, false, nil
	}

	for {
		if dir > 0 {
			next, done := window.fastForward(cursor)
			if done {
				return nil, false, nil
			}
			cursor = next
		}
		if dir > 0 && cursor > right {
			return nil, false, nil
		}
		if dir < 0 && cursor < left {
			return nil, false, nil
		}

		res, matched, err := e.attempt(input, left, right, cursor, dir, previousMatchEnd)
		if err != nil {
			return nil, false, err
		}
		if matched {
			window.confirm()
			return res, true, nil
		}
		cursor += dir
	}
}

// attempt runs the root expression exactly once, starting at cursor.
func (e *Engine) attempt(input []rune, left, right, cursor, dir, previousMatchEnd int) (res *Result, matched bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(syntax.StepLimitExceeded); ok {
				err = syntax.StepLimitExceeded{}
				return
			}
			panic(r)
		}
	}()

	st := syntax.NewState(input, e.groups, left, right, dir)
	st.Index = cursor
	st.PreviousMatchEnd = previousMatchEnd
	st.MaxSteps = e.maxSteps

	start := cursor
	if _, ok := e.root.Match(st); !ok {
		return nil, false, nil
	}

	lo, hi := start, st.Index
	if lo > hi {
		lo, hi = hi, lo
	}
	return &Result{Start: lo, End: hi, Captures: snapshot(st, e.groups)}, true, nil
}

func snapshot(st *syntax.State, groups *syntax.GroupTable) map[syntax.GroupID][]syntax.CaptureValue {
	out := make(map[syntax.GroupID][]syntax.CaptureValue)
	for _, id := range groups.All() {
		if caps := st.AllCaptures(id); len(caps) > 0 {
			out[id] = caps
		}
	}
	return out
}
