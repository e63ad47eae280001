package syntax

// ReferenceNode is a back-reference (`\n`, `\k<name>`, `\k'name'`): it
// consumes input equal to its group's current top capture, case-folded
// under `i`. It fails if the group has no capture yet or the characters
// differ. Direction is handled transparently through State.PeekText, which
// already honors State.Direction, so RTL back-references compare against
// the reversed window automatically.
type ReferenceNode struct {
	Group      GroupID
	IgnoreCase bool
}

type refToken struct {
	length int
}

func textEqualFold(a, b string, ignoreCase bool) bool {
	ar, br := []rune(a), []rune(b)
	if len(ar) != len(br) {
		return false
	}
	for i := range ar {
		if ar[i] == br[i] {
			continue
		}
		if !ignoreCase {
			return false
		}
		_, au, al := foldRune(ar[i])
		if br[i] != au && br[i] != al {
			return false
		}
	}
	return true
}

func (n *ReferenceNode) Match(s *State) (Token, bool) {
	s.Tick()
	cap, ok := s.TopCapture(n.Group)
	if !ok {
		return nil, false
	}
	want := []rune(cap.Text)
	got, ok := s.PeekText(len(want))
	if !ok || !textEqualFold(got, cap.Text, n.IgnoreCase) {
		return nil, false
	}
	s.AdvanceN(len(want))
	return refToken{length: len(want)}, true
}

// Backtrack always fails: a reference match has exactly one candidate.
func (n *ReferenceNode) Backtrack(s *State, t Token) (Token, bool) {
	rt := t.(refToken)
	s.AdvanceN(-rt.length)
	return nil, false
}

func (n *ReferenceNode) Discard(s *State, t Token) {
	rt := t.(refToken)
	s.AdvanceN(-rt.length)
}

// Invert is a no-op: consumption and comparison already go through
// direction-aware State helpers.
func (n *ReferenceNode) Invert() {}
