package syntax

import "sort"

// BalancingNode implements `(?<-X>pat)` and `(?<Y-X>pat)`. Matching requires
// X to already have a capture; on success it pops X's top capture, and if Y
// is present pushes onto Y a capture spanning the text between the popped
// X capture and the current position.
type BalancingNode struct {
	X, Y  GroupID // Y == NoGroup when absent
	Child Node
}

type balToken struct {
	inner      Token
	matchStart int
	poppedX    CaptureValue
	pushedY    bool
}

func (n *BalancingNode) pushY(s *State, matchStart, cursor int, xcap CaptureValue) bool {
	if n.Y == NoGroup {
		return false
	}
	bounds := []int{xcap.Start, xcap.End, matchStart, cursor}
	sort.Ints(bounds)
	s.PushCapture(n.Y, bounds[1], bounds[2])
	return true
}

func (n *BalancingNode) Match(s *State) (Token, bool) {
	s.Tick()
	if !s.HasCapture(n.X) {
		return nil, false
	}
	matchStart := s.Index
	t, ok := n.Child.Match(s)
	if !ok {
		return nil, false
	}
	cursor := s.Index
	xcap, _ := s.TopCapture(n.X)
	s.PopCapture(n.X)
	pushedY := n.pushY(s, matchStart, cursor, xcap)
	return balToken{inner: t, matchStart: matchStart, poppedX: xcap, pushedY: pushedY}, true
}

func (n *BalancingNode) Backtrack(s *State, t Token) (Token, bool) {
	bt := t.(balToken)
	if bt.pushedY {
		s.PopCapture(n.Y)
	}
	s.RestoreCapture(n.X, bt.poppedX)
	nt, ok := n.Child.Backtrack(s, bt.inner)
	if !ok {
		return nil, false
	}
	cursor := s.Index
	xcap, _ := s.TopCapture(n.X)
	s.PopCapture(n.X)
	pushedY := n.pushY(s, bt.matchStart, cursor, xcap)
	return balToken{inner: nt, matchStart: bt.matchStart, poppedX: xcap, pushedY: pushedY}, true
}

func (n *BalancingNode) Discard(s *State, t Token) {
	bt := t.(balToken)
	if bt.pushedY {
		s.PopCapture(n.Y)
	}
	s.RestoreCapture(n.X, bt.poppedX)
	n.Child.Discard(s, bt.inner)
}

func (n *BalancingNode) Invert() {
	n.Child.Invert()
}
