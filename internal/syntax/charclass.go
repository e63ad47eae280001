package syntax

import "unicode"

// CharClass is a composable predicate over a single rune. Character classes
// in .NET patterns are built by union (`[abc]`), range (`a-z`), negation
// (`[^...]`), and subtraction (`[a-z-[aeiou]]`); CharClass mirrors that
// algebra directly as closures rather than a bitset, since patterns may
// reference arbitrary Unicode scalar values.
type CharClass struct {
	test func(r rune) bool
	// lit holds the single rune this class matches, when it was built by
	// LiteralClass. It exists only so literal-extraction (the literal
	// package) can recover mandatory literal text from a compiled tree
	// without re-implementing rune matching; it plays no role in Test.
	lit   rune
	isLit bool
}

// Test reports whether r is in the class.
func (c *CharClass) Test(r rune) bool {
	if c == nil {
		return false
	}
	return c.test(r)
}

// NewCharClass wraps an arbitrary predicate.
func NewCharClass(fn func(rune) bool) *CharClass {
	return &CharClass{test: fn}
}

// LiteralClass matches exactly one rune.
func LiteralClass(r rune) *CharClass {
	return &CharClass{test: func(x rune) bool { return x == r }, lit: r, isLit: true}
}

// AsLiteral reports the single rune c matches and true, if c was built by
// LiteralClass (or is nil... never: nil classes aren't literals). Used by
// the literal package to extract mandatory literal text from a compiled
// tree without duplicating character-matching logic.
func (c *CharClass) AsLiteral() (rune, bool) {
	if c == nil || !c.isLit {
		return 0, false
	}
	return c.lit, true
}

// RangeClass matches runes in [lo, hi] inclusive.
func RangeClass(lo, hi rune) *CharClass {
	return &CharClass{test: func(x rune) bool { return x >= lo && x <= hi }}
}

// UnionClass matches any rune accepted by at least one of cs.
func UnionClass(cs ...*CharClass) *CharClass {
	return &CharClass{test: func(x rune) bool {
		for _, c := range cs {
			if c.Test(x) {
				return true
			}
		}
		return false
	}}
}

// NegateClass matches any rune not accepted by c.
func NegateClass(c *CharClass) *CharClass {
	return &CharClass{test: func(x rune) bool { return !c.Test(x) }}
}

// SubtractClass matches runes accepted by base but not by sub, implementing
// the `-[set]` class-subtraction suffix.
func SubtractClass(base, sub *CharClass) *CharClass {
	return &CharClass{test: func(x rune) bool { return base.Test(x) && !sub.Test(x) }}
}

// Named classes.
var (
	DigitClass      = RangeClass('0', '9')
	WhitespaceClass = NewCharClass(func(r rune) bool {
		switch r {
		case ' ', '\t', '\r', '\n', '\f', '\v', '\u0085':
			return true
		}
		return false
	})
	WordClass = UnionClass(RangeClass('0', '9'), RangeClass('a', 'z'), RangeClass('A', 'Z'), LiteralClass('_'))
	// DotClass matches any rune except newline; DotAllClass (flag `s`) matches
	// any rune including newline.
	DotClass    = NewCharClass(func(r rune) bool { return r != '\n' })
	DotAllClass = NewCharClass(func(r rune) bool { return true })
)

var NonDigitClass = NegateClass(DigitClass)
var NonWordClass = NegateClass(WordClass)
var NonWhitespaceClass = NegateClass(WhitespaceClass)

// foldRune returns r, its upper-case fold, and its lower-case fold.
func foldRune(r rune) (orig, upper, lower rune) {
	return r, unicode.ToUpper(r), unicode.ToLower(r)
}
