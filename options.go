package clrregex

import (
	"fmt"

	"github.com/coregx/clrregex/internal/syntax"
)

// Options configures pattern compilation. The zero value is a valid
// default: no flags, left-to-right, unbounded backtracking.
type Options struct {
	// Flags is the compile-time flag string, any combination of:
	//
	//	i  case-insensitive matching
	//	m  multi-line mode: ^ and $ match at line boundaries
	//	n  explicit capture: bare (...) groups do not capture
	//	s  single-line mode: . matches \n too
	//	x  ignore unescaped pattern whitespace and #-to-newline comments
	//
	// Letters are case-insensitive and duplicates are coalesced. Any other
	// letter is a compile error.
	Flags string

	// RightToLeft evaluates the pattern walking the cursor from high to
	// low index. Lookaheads point backward and lookbehinds forward.
	RightToLeft bool

	// MaxSteps bounds the number of node evaluations a single match
	// attempt may perform before matching fails with
	// ErrStepLimitExceeded. 0 means unbounded. This is the only guard
	// against pathological backtracking such as (a+)+b on a long run of
	// a's; leave it 0 only for trusted patterns.
	MaxSteps int
}

// DefaultOptions returns the default compilation options. Callers can
// customize the result and pass it to CompileWithOptions.
func DefaultOptions() Options {
	return Options{}
}

// syntaxOptions translates the flag string into the parser's option set.
func (o Options) syntaxOptions() (syntax.Options, error) {
	out := syntax.Options{RightToLeft: o.RightToLeft}
	for _, c := range o.Flags {
		switch {
		case c == 'i' || c == 'I':
			out.IgnoreCase = true
		case c == 'm' || c == 'M':
			out.Multiline = true
		case c == 'n' || c == 'N':
			out.ExplicitCapture = true
		case c == 's' || c == 'S':
			out.Singleline = true
		case c == 'x' || c == 'X':
			out.IgnorePatternWhitespace = true
		default:
			return syntax.Options{}, fmt.Errorf("clrregex: unknown flag %q", string(c))
		}
	}
	return out, nil
}
