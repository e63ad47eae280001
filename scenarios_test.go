package clrregex

import "testing"

func captureValues(g *Group) []string {
	out := make([]string, len(g.Captures))
	for i, c := range g.Captures {
		out[i] = c.Value
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// TestMultiCaptureHistory verifies that every iteration of a repeated group
// is remembered, with backtracked iterations popped.
func TestMultiCaptureHistory(t *testing.T) {
	re := MustCompile(`(a(b)*)*(b)`)
	m, err := re.Match("aabbbaab")
	if err != nil {
		t.Fatal(err)
	}
	if !m.Success || m.Index != 0 || m.Length != 8 {
		t.Fatalf("Match = %q at %d+%d, want whole input", m.Value, m.Index, m.Length)
	}
	if got := captureValues(m.GroupByName("1")); !equalStrings(got, []string{"a", "abbb", "a", "a"}) {
		t.Errorf("group 1 captures = %v", got)
	}
	if got := captureValues(m.GroupByName("2")); !equalStrings(got, []string{"b", "b", "b"}) {
		t.Errorf("group 2 captures = %v", got)
	}
	if got := captureValues(m.GroupByName("3")); !equalStrings(got, []string{"b"}) {
		t.Errorf("group 3 captures = %v", got)
	}
}

// TestBalancingGroup verifies push/pop behavior of (?<-X>...).
func TestBalancingGroup(t *testing.T) {
	re := MustCompile(`(?<A>a)+(?<-A>b)+`)

	m, err := re.Match("aaab")
	if err != nil {
		t.Fatal(err)
	}
	if m.Value != "aaab" {
		t.Fatalf("Match = %q, want aaab", m.Value)
	}
	// Three pushes, one pop: two captures survive.
	if got := captureValues(m.GroupByName("A")); !equalStrings(got, []string{"a", "a"}) {
		t.Errorf("A captures = %v", got)
	}

	m, err = re.Match("aaabbb")
	if err != nil {
		t.Fatal(err)
	}
	if m.Value != "aaabbb" {
		t.Fatalf("Match = %q, want aaabbb", m.Value)
	}
	// Every push popped: the group ends the match empty-handed.
	if a := m.GroupByName("A"); a.Success || len(a.Captures) != 0 {
		t.Errorf("A = success=%v captures=%v, want no captures", a.Success, a.Captures)
	}

	// A fourth b has nothing left to pop, so the repetition stops at three.
	m, err = re.Match("aaabbbb")
	if err != nil {
		t.Fatal(err)
	}
	if m.Value != "aaabbb" {
		t.Errorf("Match = %q, want aaabbb", m.Value)
	}
}

// TestBalancingGroupCapturesBetween verifies (?<Y-X>...) pushes the span
// between the popped X capture and the current position onto Y.
func TestBalancingGroupCapturesBetween(t *testing.T) {
	re := MustCompile(`(?<A>a)x+(?<B-A>b)`)
	m, err := re.Match("axxb")
	if err != nil {
		t.Fatal(err)
	}
	if m.Value != "axxb" {
		t.Fatalf("Match = %q", m.Value)
	}
	b := m.GroupByName("B")
	if !b.Success || b.Value != "xx" || b.Index != 1 {
		t.Errorf("B = %q at %d, want \"xx\" at 1", b.Value, b.Index)
	}
	if a := m.GroupByName("A"); a.Success {
		t.Errorf("A still has captures: %v", a.Captures)
	}
}

// TestConditionalOnCapture verifies (?(name)yes|no) branch selection.
func TestConditionalOnCapture(t *testing.T) {
	re := MustCompile(`\b(?<a>a)?(?(a)a*|\w+)`)
	ms, err := re.Matches("aaabbb bbbaaa")
	if err != nil {
		t.Fatal(err)
	}
	if len(ms) != 2 {
		t.Fatalf("got %d matches, want 2", len(ms))
	}
	if ms[0].Value != "aaa" || ms[0].Index != 0 {
		t.Errorf("first match = %q at %d, want \"aaa\" at 0", ms[0].Value, ms[0].Index)
	}
	if ms[1].Value != "bbbaaa" || ms[1].Index != 7 {
		t.Errorf("second match = %q at %d, want \"bbbaaa\" at 7", ms[1].Value, ms[1].Index)
	}
}

// TestVariableLengthLookbehind exercises the inverted-inner-expression
// lookbehind, which .NET allows to be unbounded.
func TestVariableLengthLookbehind(t *testing.T) {
	re := MustCompile(`(?<=ab+)c`)
	ms, err := re.Matches("aabbcc")
	if err != nil {
		t.Fatal(err)
	}
	if len(ms) != 1 || ms[0].Value != "c" || ms[0].Index != 4 {
		t.Fatalf("Matches = %v, want one \"c\" at 4", ms)
	}
}

// TestRightToLeftBackreference runs a pattern whose back-reference precedes
// its group textually, which only resolves right-to-left.
func TestRightToLeftBackreference(t *testing.T) {
	re, err := CompileWithOptions(`\1?(a)`, Options{RightToLeft: true})
	if err != nil {
		t.Fatal(err)
	}
	ms, err := re.Matches("aaa")
	if err != nil {
		t.Fatal(err)
	}
	if len(ms) != 2 {
		t.Fatalf("got %d matches, want 2", len(ms))
	}
	if ms[0].Value != "aa" || ms[0].Index != 1 {
		t.Errorf("first match = %q at %d, want \"aa\" at 1", ms[0].Value, ms[0].Index)
	}
	if g := ms[0].GroupByName("1"); g.Value != "a" {
		t.Errorf("group 1 = %q, want \"a\"", g.Value)
	}
	if ms[1].Value != "a" || ms[1].Index != 0 {
		t.Errorf("second match = %q at %d, want \"a\" at 0", ms[1].Value, ms[1].Index)
	}
}

// TestLastGroupCollapsedOrder verifies $+ resolves through the collapsed
// group ordering: a named group fills each position no decimal-named group
// takes, so A precedes 2 and B comes last.
func TestLastGroupCollapsedOrder(t *testing.T) {
	re := MustCompile(`(?<A>a)(?<2>b)(?<B>c)`)
	if got := re.GroupNames(); !equalStrings(got, []string{"0", "A", "2", "B"}) {
		t.Fatalf("GroupNames = %v", got)
	}
	m, err := re.Match("abc")
	if err != nil {
		t.Fatal(err)
	}
	out, err := m.Result("$+")
	if err != nil {
		t.Fatal(err)
	}
	if out != "c" {
		t.Errorf("Result($+) = %q, want \"c\"", out)
	}
}

// TestMatchInvariants spot-checks the documented Match/Group invariants on
// a pattern with optional and repeated groups.
func TestMatchInvariants(t *testing.T) {
	re := MustCompile(`(\w)+-(\d)?`)
	m, err := re.Match("abc-")
	if err != nil {
		t.Fatal(err)
	}
	input := []rune("abc-")
	if m.Value != string(input[m.Index:m.Index+m.Length]) {
		t.Errorf("m.Value %q != input slice", m.Value)
	}
	for _, g := range m.Groups() {
		if !g.Success {
			continue
		}
		last := g.Captures[len(g.Captures)-1]
		if g.Value != last.Value || g.Index != last.Index {
			t.Errorf("group %q: top %q@%d != last capture %q@%d", g.Name, g.Value, g.Index, last.Value, last.Index)
		}
	}
	if g := m.GroupByName("2"); g.Success {
		t.Errorf("optional unmatched group reported success")
	}
}

// TestMatchesNonOverlapping verifies index monotonicity in both directions
// and the one-step advance after zero-width matches.
func TestMatchesNonOverlapping(t *testing.T) {
	re := MustCompile(`a*`)
	ms, err := re.Matches("aab")
	if err != nil {
		t.Fatal(err)
	}
	var got [][2]int
	for _, m := range ms {
		got = append(got, [2]int{m.Index, m.Length})
	}
	want := [][2]int{{0, 2}, {2, 0}, {3, 0}}
	if len(got) != len(want) {
		t.Fatalf("spans = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("spans = %v, want %v", got, want)
		}
	}

	rtl, err := CompileWithOptions(`a+`, Options{RightToLeft: true})
	if err != nil {
		t.Fatal(err)
	}
	ms, err = rtl.Matches("aabaa")
	if err != nil {
		t.Fatal(err)
	}
	if len(ms) != 2 || ms[0].Index != 3 || ms[1].Index != 0 {
		t.Fatalf("rtl matches = %v", ms)
	}
	for i := 1; i < len(ms); i++ {
		if ms[i].Index > ms[i-1].Index {
			t.Errorf("rtl match indices increased: %d then %d", ms[i-1].Index, ms[i].Index)
		}
	}
}
