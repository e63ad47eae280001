// Package prefilter provides fast candidate filtering for regex search using
// extracted mandatory literal sequences.
//
// A prefilter is used to quickly reject positions in the haystack that cannot
// possibly match the full pattern. Because the core engine is a backtracking
// tree-walker rather than an automaton, a prefilter here answers a single
// question before the backtracker is ever invoked at a given start position:
// "could a literal this pattern requires possibly occur at or after here?" A
// definite "no" lets Engine.Search skip straight to "no match" without
// calling Node.Match once.
//
// The package selects the cheapest strategy that fits the extracted literals:
//   - Single byte → a bytes.IndexByte-backed prefilter
//   - Single substring → a bytes.Index-backed prefilter
//   - Multiple literals → an Aho-Corasick automaton (github.com/coregx/ahocorasick)
//
// Example usage:
//
//	seq := literal.NewSeq(literal.NewLiteral([]byte("hello"), false))
//	pf := prefilter.NewBuilder(seq, nil).Build()
//	if pf != nil {
//	    pos := pf.Find([]byte("foo hello bar"), 0)
//	    // pos == 4
//	}
package prefilter

import (
	"bytes"

	"github.com/coregx/ahocorasick"
	"github.com/coregx/clrregex/literal"
)

// Prefilter is used to quickly find candidate match positions before running
// the full regex engine.
type Prefilter interface {
	// Find returns the index of the first candidate match starting at or
	// after start, or -1 if no candidate is found. A candidate does not
	// guarantee a full match unless IsComplete is true.
	Find(haystack []byte, start int) int

	// IsComplete reports whether a prefilter match guarantees a full match
	// of the compiled pattern (true only when the pattern IS the literal,
	// e.g. a pattern with no metacharacters at all).
	IsComplete() bool

	// LiteralLen returns the byte length of the matched literal when
	// IsComplete is true, 0 otherwise.
	LiteralLen() int

	// HeapBytes returns approximate heap memory used by this prefilter, for
	// profiling and memory budgeting.
	HeapBytes() int
}

// Builder constructs the cheapest effective prefilter from extracted literal
// sequences. Either sequence may be nil or empty.
type Builder struct {
	prefixes *literal.Seq
	suffixes *literal.Seq
}

// NewBuilder creates a prefilter builder from extracted literal sequences.
// Prefixes are preferred over suffixes because forward search is more
// natural; suffixes are only used when prefixes are empty.
func NewBuilder(prefixes, suffixes *literal.Seq) *Builder {
	return &Builder{prefixes: prefixes, suffixes: suffixes}
}

// Build returns the best prefilter for the given literals, or nil when both
// sequences are empty, a literal is empty, or the Aho-Corasick automaton
// cannot be built. The number of literals is not limited.
func (b *Builder) Build() Prefilter {
	return selectPrefilter(b.prefixes, b.suffixes)
}

func selectPrefilter(prefixes, suffixes *literal.Seq) Prefilter {
	seq := prefixes
	if seq == nil || seq.IsEmpty() {
		seq = suffixes
	}
	if seq == nil || seq.IsEmpty() {
		return nil
	}

	if seq.Len() == 1 {
		lit := seq.Get(0)
		if len(lit.Bytes) == 0 {
			return nil
		}
		if len(lit.Bytes) == 1 {
			return newBytePrefilter(lit.Bytes[0], lit.Complete)
		}
		return newSubstringPrefilter(lit.Bytes, lit.Complete)
	}

	return newAhoCorasickPrefilter(seq)
}

// bytePrefilter wraps bytes.IndexByte, the cheapest possible prefilter for a
// pattern whose mandatory literal is a single byte.
type bytePrefilter struct {
	needle   byte
	complete bool
}

func newBytePrefilter(needle byte, complete bool) Prefilter {
	return &bytePrefilter{needle: needle, complete: complete}
}

func (p *bytePrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := bytes.IndexByte(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

func (p *bytePrefilter) IsComplete() bool { return p.complete }

func (p *bytePrefilter) LiteralLen() int {
	if p.complete {
		return 1
	}
	return 0
}

func (p *bytePrefilter) HeapBytes() int { return 0 }

// substringPrefilter wraps bytes.Index for a single multi-byte mandatory
// literal.
type substringPrefilter struct {
	needle   []byte
	complete bool
}

func newSubstringPrefilter(needle []byte, complete bool) Prefilter {
	cp := make([]byte, len(needle))
	copy(cp, needle)
	return &substringPrefilter{needle: cp, complete: complete}
}

func (p *substringPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := bytes.Index(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

func (p *substringPrefilter) IsComplete() bool { return p.complete }

func (p *substringPrefilter) LiteralLen() int {
	if p.complete {
		return len(p.needle)
	}
	return 0
}

func (p *substringPrefilter) HeapBytes() int { return len(p.needle) }

// ahoCorasickPrefilter wraps an ahocorasick.Automaton for patterns whose
// mandatory literals come from an alternation of two or more branches (e.g.
// `cat|dog|bird`): any one of them occurring is a necessary condition for a
// match, so the automaton's multi-pattern scan is a correct existence check.
type ahoCorasickPrefilter struct {
	auto *ahocorasick.Automaton
}

func newAhoCorasickPrefilter(seq *literal.Seq) Prefilter {
	builder := ahocorasick.NewBuilder()
	for i := 0; i < seq.Len(); i++ {
		lit := seq.Get(i)
		if len(lit.Bytes) == 0 {
			return nil
		}
		builder.AddPattern(lit.Bytes)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return &ahoCorasickPrefilter{auto: auto}
}

func (p *ahoCorasickPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start > len(haystack) {
		return -1
	}
	m := p.auto.Find(haystack, start)
	if m == nil {
		return -1
	}
	return m.Start
}

func (p *ahoCorasickPrefilter) IsComplete() bool { return false }

func (p *ahoCorasickPrefilter) LiteralLen() int { return 0 }

func (p *ahoCorasickPrefilter) HeapBytes() int { return 0 }
