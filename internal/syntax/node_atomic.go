package syntax

// AtomicNode implements `(?>p)`: once p matches, backtracking never
// revisits it: the node discards its inner match and fails outright
//.
type AtomicNode struct {
	Child Node
}

type atomicToken struct {
	inner Token
}

func (n *AtomicNode) Match(s *State) (Token, bool) {
	s.Tick()
	t, ok := n.Child.Match(s)
	if !ok {
		return nil, false
	}
	return atomicToken{inner: t}, true
}

func (n *AtomicNode) Backtrack(s *State, t Token) (Token, bool) {
	at := t.(atomicToken)
	n.Child.Discard(s, at.inner)
	return nil, false
}

func (n *AtomicNode) Discard(s *State, t Token) {
	at := t.(atomicToken)
	n.Child.Discard(s, at.inner)
}

func (n *AtomicNode) Invert() {
	n.Child.Invert()
}
