package prefilter

import (
	"testing"

	"github.com/coregx/clrregex/literal"
)

func TestSelectPrefilter_Empty(t *testing.T) {
	pf := selectPrefilter(literal.NewSeq(), literal.NewSeq())
	if pf != nil {
		t.Fatalf("expected nil for empty sequences, got %T", pf)
	}
	pf = selectPrefilter(nil, nil)
	if pf != nil {
		t.Fatalf("expected nil for nil sequences, got %T", pf)
	}
}

func TestSelectPrefilter_SingleByte(t *testing.T) {
	seq := literal.NewSeq(literal.NewLiteral([]byte("a"), true))
	pf := selectPrefilter(seq, nil)
	bp, ok := pf.(*bytePrefilter)
	if !ok {
		t.Fatalf("expected *bytePrefilter, got %T", pf)
	}
	if !bp.IsComplete() {
		t.Errorf("IsComplete() = false, want true")
	}
	if bp.LiteralLen() != 1 {
		t.Errorf("LiteralLen() = %d, want 1", bp.LiteralLen())
	}
	if pos := bp.Find([]byte("xxxaxxx"), 0); pos != 3 {
		t.Errorf("Find() = %d, want 3", pos)
	}
	if pos := bp.Find([]byte("xxxxxxx"), 0); pos != -1 {
		t.Errorf("Find() = %d, want -1", pos)
	}
}

func TestSelectPrefilter_SingleSubstring(t *testing.T) {
	seq := literal.NewSeq(literal.NewLiteral([]byte("hello"), false))
	pf := selectPrefilter(seq, nil)
	sp, ok := pf.(*substringPrefilter)
	if !ok {
		t.Fatalf("expected *substringPrefilter, got %T", pf)
	}
	if sp.IsComplete() {
		t.Errorf("IsComplete() = true, want false")
	}
	if sp.LiteralLen() != 0 {
		t.Errorf("LiteralLen() = %d, want 0 (incomplete literal)", sp.LiteralLen())
	}
	if pos := sp.Find([]byte("say hello world"), 0); pos != 4 {
		t.Errorf("Find() = %d, want 4", pos)
	}
	if pos := sp.Find([]byte("nothing here"), 0); pos != -1 {
		t.Errorf("Find() = %d, want -1", pos)
	}
}

func TestSelectPrefilter_SuffixFallback(t *testing.T) {
	suffixes := literal.NewSeq(literal.NewLiteral([]byte("world"), false))
	pf := selectPrefilter(literal.NewSeq(), suffixes)
	if pf == nil {
		t.Fatal("expected a prefilter built from suffixes, got nil")
	}
	if pos := pf.Find([]byte("hello world"), 0); pos != 6 {
		t.Errorf("Find() = %d, want 6", pos)
	}
}

func TestSelectPrefilter_MultipleLiterals(t *testing.T) {
	seq := literal.NewSeq(
		literal.NewLiteral([]byte("foo"), true),
		literal.NewLiteral([]byte("bar"), true),
		literal.NewLiteral([]byte("baz"), true),
	)
	pf := selectPrefilter(seq, nil)
	ac, ok := pf.(*ahoCorasickPrefilter)
	if !ok {
		t.Fatalf("expected *ahoCorasickPrefilter, got %T", pf)
	}
	if pos := ac.Find([]byte("xx bar yy"), 0); pos != 3 {
		t.Errorf("Find() = %d, want 3", pos)
	}
	if pos := ac.Find([]byte("no match here"), 0); pos != -1 {
		t.Errorf("Find() = %d, want -1", pos)
	}
	if ac.IsComplete() {
		t.Errorf("IsComplete() = true, want false (alternation existence only)")
	}
}

func TestBuilder_Integration(t *testing.T) {
	prefixes := literal.NewSeq(literal.NewLiteral([]byte("needle"), true))
	builder := NewBuilder(prefixes, nil)
	pf := builder.Build()
	if pf == nil {
		t.Fatal("expected non-nil prefilter")
	}
	haystack := []byte("find the needle in the haystack")
	pos := pf.Find(haystack, 0)
	if pos != 9 {
		t.Errorf("Find() = %d, want 9", pos)
	}
}

func TestPrefilter_BoundsChecks(t *testing.T) {
	seq := literal.NewSeq(literal.NewLiteral([]byte("a"), true))
	pf := selectPrefilter(seq, nil)
	if pos := pf.Find([]byte("abc"), -1); pos != -1 {
		t.Errorf("Find() with negative start = %d, want -1", pos)
	}
	if pos := pf.Find([]byte("abc"), 10); pos != -1 {
		t.Errorf("Find() with out-of-range start = %d, want -1", pos)
	}
}
