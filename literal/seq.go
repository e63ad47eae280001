// Package literal represents the mandatory literal text extracted from
// compiled patterns.
//
// A pattern like `abc\d+` can only ever match where "abc" occurs, and an
// alternation like `cat|dog` only where one of its branches occurs. The
// prefilter package turns these extracted literals into fast candidate
// scans that run before the backtracking engine is invoked at all.
package literal

import (
	"bytes"
	"sort"
)

// Literal is one extracted byte sequence. Complete reports whether
// matching the literal alone already constitutes a full pattern match
// (the pattern has no metacharacters beyond the literal); when false the
// literal only marks where a match could begin.
type Literal struct {
	Bytes    []byte
	Complete bool
}

// NewLiteral builds a Literal over b.
func NewLiteral(b []byte, complete bool) Literal {
	return Literal{Bytes: b, Complete: complete}
}

// Len returns the literal's length in bytes.
func (l Literal) Len() int { return len(l.Bytes) }

func (l Literal) String() string {
	complete := "false"
	if l.Complete {
		complete = "true"
	}
	return "literal{" + string(l.Bytes) + ", complete=" + complete + "}"
}

// Seq is a set of alternative literals, at least one of which must occur
// in any subject the originating pattern matches.
type Seq struct {
	literals []Literal
}

// NewSeq builds a sequence from lits.
func NewSeq(lits ...Literal) *Seq {
	return &Seq{literals: lits}
}

// Len returns the number of literals. A nil sequence is empty.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// Get returns the literal at index i. Panics when out of bounds.
func (s *Seq) Get(i int) Literal { return s.literals[i] }

// IsEmpty reports whether the sequence holds no literals.
func (s *Seq) IsEmpty() bool { return s == nil || len(s.literals) == 0 }

// Minimize drops literals another literal already covers: if a kept
// literal is a prefix of a longer one, any occurrence of the longer
// implies an occurrence of the shorter, so the longer adds nothing to a
// candidate scan. Shorter literals are preferred as the survivors.
func (s *Seq) Minimize() {
	if s.IsEmpty() {
		return
	}
	sort.SliceStable(s.literals, func(i, j int) bool {
		return len(s.literals[i].Bytes) < len(s.literals[j].Bytes)
	})
	kept := s.literals[:0]
	for _, lit := range s.literals {
		covered := false
		for _, k := range kept {
			if isPrefix(k.Bytes, lit.Bytes) {
				covered = true
				break
			}
		}
		if !covered {
			kept = append(kept, lit)
		}
	}
	s.literals = kept
}

func isPrefix(prefix, s []byte) bool {
	return len(prefix) <= len(s) && bytes.Equal(prefix, s[:len(prefix)])
}
