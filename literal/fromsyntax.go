package literal

import "github.com/coregx/clrregex/internal/syntax"

// FromNode extracts the mandatory literal prefix of a compiled expression
// tree: the run of single characters that every match of n is guaranteed to
// consume first, stopping at the first construct that isn't a certain,
// case-sensitive single character (an alternation, a repetition that can
// match zero times, an anchor, a back-reference, and so on).
//
// The returned Seq holds at most one Literal, marked incomplete: matching
// this literal does not by itself guarantee a full match, it only marks a
// position where one could begin.
func FromNode(n syntax.Node) *Seq {
	lit, _ := literalRun(n)
	if len(lit) == 0 {
		return NewSeq()
	}
	return NewSeq(NewLiteral(lit, false))
}

// FromAlternation extracts one literal per branch of an alternation tree
// that is, recursively, nothing but alternations of exact literal runs (e.g.
// `cat|dog|bird`). An exact run may pass through capturing, non-capturing
// and atomic groups and fixed-count repetitions, as in `(ca)t|a{2}`. This is
// the shape a mandatory multi-literal prefilter (see the prefilter package's
// Aho-Corasick path) needs: at least one of these literals MUST occur for
// the pattern to match at all. Returns an empty Seq if any branch contains
// anything else (a variable-count repetition, a character class wider than
// one rune, an anchor, ...).
func FromAlternation(n syntax.Node) *Seq {
	var lits [][]byte
	if !collectAlternationLiterals(n, &lits) {
		return NewSeq()
	}
	out := make([]Literal, len(lits))
	for i, b := range lits {
		out[i] = NewLiteral(b, true)
	}
	return NewSeq(out...)
}

func collectAlternationLiterals(n syntax.Node, out *[][]byte) bool {
	switch v := n.(type) {
	case *syntax.Alternation:
		return collectAlternationLiterals(v.Left, out) && collectAlternationLiterals(v.Right, out)
	default:
		lit, exact := literalRun(n)
		if !exact || len(lit) == 0 {
			return false
		}
		*out = append(*out, lit)
		return true
	}
}

// literalRun returns the mandatory literal byte run at the start of n, and
// whether n matches that run EXACTLY (nothing more, nothing variable) --
// exact=true lets a Sequence parent keep accumulating past n into its next
// sibling; exact=false means n consumed (at least) this much but parents
// must stop extending the run here.
func literalRun(n syntax.Node) ([]byte, bool) {
	switch v := n.(type) {
	case *syntax.CharNode:
		if v.IgnoreCase {
			return nil, false
		}
		r, ok := v.Class.AsLiteral()
		if !ok {
			return nil, false
		}
		return []byte(string(r)), true
	case *syntax.Sequence:
		var buf []byte
		for _, c := range v.Children {
			b, exact := literalRun(c)
			buf = append(buf, b...)
			if !exact {
				return buf, false
			}
		}
		return buf, true
	case *syntax.GroupNode:
		return literalRun(v.Child)
	case *syntax.AtomicNode:
		return literalRun(v.Child)
	case *syntax.Repetition:
		if v.Min < 1 {
			return nil, false
		}
		b, exact := literalRun(v.Child)
		if len(b) == 0 {
			return nil, false
		}
		if exact && v.Min == v.Max {
			buf := make([]byte, 0, len(b)*v.Min)
			for i := 0; i < v.Min; i++ {
				buf = append(buf, b...)
			}
			return buf, true
		}
		// At least one copy is mandatory, but the repetition may extend
		// further or the node wasn't a fixed count: the single copy is a
		// safe mandatory prefix, but parents must stop here.
		return b, false
	default:
		return nil, false
	}
}
