package syntax

// This file builds the fixed table of built-in anchors as instances of the
// single AnchorNode shape. Each constructor is used
// directly by the parser; lookaround constructors additionally take the
// user's inner expression.

func anyCharNode() Node   { return &CharNode{Class: DotAllClass} }
func dotCharNode() Node   { return &CharNode{Class: DotClass} }
func wordCharNode() Node  { return &CharNode{Class: WordClass} }
func literalCharNode(r rune) Node { return &CharNode{Class: LiteralClass(r)} }

func notLeft(s *State, left, right bool) bool  { return !left }
func notRight(s *State, left, right bool) bool { return !right }

// StringStart builds `^` without the `m` flag, or `\A`: matches only at the
// very start of the window.
func StringStart() *AnchorNode {
	return &AnchorNode{Left: anyCharNode(), Condition: notLeft}
}

// LineStart builds `^` with the `m` flag: matches at the start of the
// window or right after a `\n`.
func LineStart() *AnchorNode {
	return &AnchorNode{Left: dotCharNode(), Condition: notLeft}
}

// StringEnd builds `$` without `m`, or `\Z`: matches at the end of the
// window or right before a single trailing `\n`.
func StringEnd() *AnchorNode {
	right := &Sequence{Children: []Node{literalCharNode('\n'), anyCharNode()}}
	return &AnchorNode{
		Right:     &Alternation{Left: dotCharNode(), Right: right},
		Condition: notRight,
	}
}

// LineEnd builds `$` with the `m` flag: matches at the end of the window or
// right before any `\n`.
func LineEnd() *AnchorNode {
	return &AnchorNode{Right: dotCharNode(), Condition: notRight}
}

// AbsoluteEnd builds `\z`: matches only at the very end of the window, not
// even before a trailing newline.
func AbsoluteEnd() *AnchorNode {
	return &AnchorNode{Right: anyCharNode(), Condition: notRight}
}

// ContiguousMatch builds `\G`: matches only where the previous match in the
// current Matches() walk ended.
func ContiguousMatch() *AnchorNode {
	return &AnchorNode{Condition: func(s *State, _, _ bool) bool {
		return s.Index == s.PreviousMatchEnd
	}}
}

// WordBoundary builds `\b` (negate=false) or `\B` (negate=true).
func WordBoundary(negate bool) *AnchorNode {
	cond := func(s *State, left, right bool) bool { return left != right }
	if negate {
		cond = func(s *State, left, right bool) bool { return left == right }
	}
	return &AnchorNode{Left: wordCharNode(), Right: wordCharNode(), Condition: cond}
}

// Lookahead builds `(?=p)` (negate=false) or `(?!p)` (negate=true).
func Lookahead(negate bool, p Node) *AnchorNode {
	return &AnchorNode{
		Right: p,
		Condition: func(s *State, _, right bool) bool {
			return right != negate
		},
	}
}

// Lookbehind builds `(?<=p)` (negate=false) or `(?<!p)` (negate=true). p is
// inverted once at construction so it runs backward from the cursor,
// permitting variable-length lookbehind.
func Lookbehind(negate bool, p Node) *AnchorNode {
	p.Invert()
	return &AnchorNode{
		Left: p,
		Condition: func(s *State, left, _ bool) bool {
			return left != negate
		},
	}
}
