package syntax

// ConditionalNode implements `(?(cond)yes|no)`. cond is either a capture
// group presence test or an anchor (an explicit lookaround, or an implicit
// lookahead built from literal text). Only one side is ever matched, and
// backtracking stays on that side; if it exhausts, the conditional fails
// rather than switching sides. A missing `no` branch is represented by an
// empty Sequence, which matches trivially.
type ConditionalNode struct {
	IsGroupCond bool
	Group       GroupID
	CondExpr    Node // nil when IsGroupCond
	Yes, No     Node
}

type condToken struct {
	took  bool
	inner Token
}

func (n *ConditionalNode) evalCond(s *State) bool {
	if n.IsGroupCond {
		return s.HasCapture(n.Group)
	}
	t, ok := n.CondExpr.Match(s)
	if ok {
		n.CondExpr.Discard(s, t)
	}
	return ok
}

func (n *ConditionalNode) branch(took bool) Node {
	if took {
		return n.Yes
	}
	return n.No
}

func (n *ConditionalNode) Match(s *State) (Token, bool) {
	s.Tick()
	took := n.evalCond(s)
	t, ok := n.branch(took).Match(s)
	if !ok {
		return nil, false
	}
	return condToken{took: took, inner: t}, true
}

func (n *ConditionalNode) Backtrack(s *State, t Token) (Token, bool) {
	ct := t.(condToken)
	nt, ok := n.branch(ct.took).Backtrack(s, ct.inner)
	if !ok {
		return nil, false
	}
	return condToken{took: ct.took, inner: nt}, true
}

func (n *ConditionalNode) Discard(s *State, t Token) {
	ct := t.(condToken)
	n.branch(ct.took).Discard(s, ct.inner)
}

// Invert inverts both branches; if the condition is an anchor (lookaround
// or implicit literal lookahead), its direction is swapped too.
func (n *ConditionalNode) Invert() {
	n.Yes.Invert()
	n.No.Invert()
	if !n.IsGroupCond {
		n.CondExpr.Invert()
	}
}
