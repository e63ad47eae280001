package exec

import (
	"strings"
	"testing"

	"github.com/coregx/clrregex/internal/syntax"
	"github.com/coregx/clrregex/literal"
	"github.com/coregx/clrregex/prefilter"
)

func compile(t *testing.T, pattern string, opts syntax.Options, pf prefilter.Prefilter, maxSteps int) *Engine {
	t.Helper()
	root, groups, err := syntax.Parse(pattern, opts)
	if err != nil {
		t.Fatalf("Parse(%q): %v", pattern, err)
	}
	return New(root, groups, opts.RightToLeft, pf, maxSteps)
}

func prefilterFor(t *testing.T, pattern string) prefilter.Prefilter {
	t.Helper()
	root, _, err := syntax.Parse(pattern, syntax.Options{})
	if err != nil {
		t.Fatal(err)
	}
	seq := literal.FromNode(root)
	if seq.IsEmpty() {
		seq = literal.FromAlternation(root)
	}
	return prefilter.NewBuilder(seq, nil).Build()
}

func TestSearchScansForward(t *testing.T) {
	e := compile(t, "ab", syntax.Options{}, nil, 0)
	input := []rune("xxabyy")
	res, ok, err := e.Search(input, 0, len(input), 0, 0)
	if err != nil || !ok {
		t.Fatalf("Search: ok=%v err=%v", ok, err)
	}
	if res.Start != 2 || res.End != 4 {
		t.Errorf("span = [%d,%d), want [2,4)", res.Start, res.End)
	}
}

func TestSearchScansBackward(t *testing.T) {
	e := compile(t, "a", syntax.Options{RightToLeft: true}, nil, 0)
	input := []rune("abca")
	res, ok, err := e.Search(input, 0, len(input), len(input), len(input))
	if err != nil || !ok {
		t.Fatalf("Search: ok=%v err=%v", ok, err)
	}
	if res.Start != 3 || res.End != 4 {
		t.Errorf("rtl span = [%d,%d), want [3,4)", res.Start, res.End)
	}
}

func TestSearchRespectsWindow(t *testing.T) {
	e := compile(t, "a", syntax.Options{}, nil, 0)
	input := []rune("abca")
	res, ok, err := e.Search(input, 1, 3, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Errorf("found %v outside window [1,3]", res)
	}
}

func TestSearchCaptureHistory(t *testing.T) {
	e := compile(t, "(?<g>ab)+", syntax.Options{}, nil, 0)
	input := []rune("ababab")
	res, ok, err := e.Search(input, 0, len(input), 0, 0)
	if err != nil || !ok {
		t.Fatal("no match")
	}
	id, _ := e.Groups().Resolve("g")
	caps := res.Group(id)
	if len(caps) != 3 {
		t.Fatalf("captures = %v, want 3 entries", caps)
	}
	for i, c := range caps {
		if c.Text != "ab" || c.Start != i*2 {
			t.Errorf("capture %d = %q at %d", i, c.Text, c.Start)
		}
	}
}

func TestSearchWithPrefilter(t *testing.T) {
	pf := prefilterFor(t, "needle")
	if pf == nil {
		t.Fatal("no prefilter extracted for a literal pattern")
	}
	e := compile(t, "needle", syntax.Options{}, pf, 0)

	input := []rune("hay needle hay")
	res, ok, err := e.Search(input, 0, len(input), 0, 0)
	if err != nil || !ok || res.Start != 4 {
		t.Fatalf("prefiltered search: ok=%v start=%v err=%v", ok, res, err)
	}

	if _, ok, _ := e.Search([]rune("nothing here"), 0, 12, 0, 0); ok {
		t.Error("prefilter admitted an impossible subject")
	}

	// Multi-byte runes shift byte offsets away from rune offsets; the
	// prefilter must degrade to an existence check, not misplace matches.
	input = []rune("ß needle")
	res, ok, err = e.Search(input, 0, len(input), 0, 0)
	if err != nil || !ok || res.Start != 2 {
		t.Fatalf("non-ASCII prefiltered search: ok=%v res=%v err=%v", ok, res, err)
	}
}

func TestSearchStepLimit(t *testing.T) {
	e := compile(t, "(a+)+$", syntax.Options{}, nil, 2000)
	input := []rune(strings.Repeat("a", 40) + "b")
	_, ok, err := e.Search(input, 0, len(input), 0, 0)
	if ok {
		t.Fatal("matched impossible pattern")
	}
	if err == nil {
		t.Fatal("step budget was not enforced")
	}
}
