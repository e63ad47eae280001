package prefilter_test

import (
	"fmt"

	"github.com/coregx/clrregex/literal"
	"github.com/coregx/clrregex/prefilter"
)

// ExampleBuilder demonstrates building a prefilter from an already-extracted
// literal sequence (as produced by literal.FromNode against a compiled
// expression tree).
func ExampleBuilder() {
	prefixes := literal.NewSeq(literal.NewLiteral([]byte("hello"), true))

	builder := prefilter.NewBuilder(prefixes, nil)
	pf := builder.Build()

	if pf != nil {
		haystack := []byte("foo hello world")
		pos := pf.Find(haystack, 0)
		fmt.Printf("Found candidate at position %d\n", pos)
	}

	// Output:
	// Found candidate at position 4
}

// ExampleBuilder_singleByte demonstrates prefilter selection for single byte
// literals.
func ExampleBuilder_singleByte() {
	prefixes := literal.NewSeq(literal.NewLiteral([]byte("a"), true))

	builder := prefilter.NewBuilder(prefixes, nil)
	pf := builder.Build()

	haystack := []byte("xxxayyy")
	pos := pf.Find(haystack, 0)
	fmt.Printf("Found 'a' at position %d\n", pos)
	fmt.Printf("Heap usage: %d bytes\n", pf.HeapBytes())

	// Output:
	// Found 'a' at position 3
	// Heap usage: 0 bytes
}

// ExampleBuilder_substring demonstrates prefilter selection for a multi-byte
// literal.
func ExampleBuilder_substring() {
	prefixes := literal.NewSeq(literal.NewLiteral([]byte("pattern"), false))

	builder := prefilter.NewBuilder(prefixes, nil)
	pf := builder.Build()

	haystack := []byte("test pattern matching")
	pos := pf.Find(haystack, 0)
	fmt.Printf("Found 'pattern' at position %d\n", pos)
	fmt.Printf("Heap usage: %d bytes\n", pf.HeapBytes())

	// Output:
	// Found 'pattern' at position 5
	// Heap usage: 7 bytes
}

// ExampleBuilder_noPrefilter demonstrates patterns with no extractable
// mandatory literal (e.g. `.*`).
func ExampleBuilder_noPrefilter() {
	builder := prefilter.NewBuilder(literal.NewSeq(), nil)
	pf := builder.Build()

	if pf == nil {
		fmt.Println("No prefilter available, must use full regex engine")
	}

	// Output:
	// No prefilter available, must use full regex engine
}

// ExampleBuilder_alternation demonstrates a prefilter built from an
// alternation's mandatory literal set.
func ExampleBuilder_alternation() {
	prefixes := literal.NewSeq(
		literal.NewLiteral([]byte("foo"), true),
		literal.NewLiteral([]byte("bar"), true),
	)

	builder := prefilter.NewBuilder(prefixes, nil)
	pf := builder.Build()

	if pf != nil {
		haystack := []byte("test foobar end")
		pos := pf.Find(haystack, 0)
		fmt.Printf("Found candidate at position %d\n", pos)
		fmt.Printf("Complete match: %v\n", pf.IsComplete())
	}

	// Output:
	// Found candidate at position 5
	// Complete match: false
}

// ExampleBuilder_withSuffixes demonstrates falling back to a suffix sequence
// when no prefix literal exists.
func ExampleBuilder_withSuffixes() {
	prefixes := literal.NewSeq()
	suffixes := literal.NewSeq(literal.NewLiteral([]byte("world"), false))

	builder := prefilter.NewBuilder(prefixes, suffixes)
	pf := builder.Build()

	if pf != nil {
		haystack := []byte("hello world")
		pos := pf.Find(haystack, 0)
		fmt.Printf("Found suffix at position %d\n", pos)
	}

	// Output:
	// Found suffix at position 6
}

// ExamplePrefilter_Find demonstrates walking all occurrences with Find.
func ExamplePrefilter_Find() {
	prefixes := literal.NewSeq(literal.NewLiteral([]byte("test"), true))
	builder := prefilter.NewBuilder(prefixes, nil)
	pf := builder.Build()

	haystack := []byte("first test, second test, third test")

	start := 0
	count := 0
	for {
		pos := pf.Find(haystack, start)
		if pos == -1 {
			break
		}
		count++
		fmt.Printf("Match %d at position %d\n", count, pos)
		start = pos + 1
	}

	// Output:
	// Match 1 at position 6
	// Match 2 at position 19
	// Match 3 at position 31
}

// ExamplePrefilter_IsComplete demonstrates the distinction between a
// prefilter that guarantees a match and one that only narrows candidates.
func ExamplePrefilter_IsComplete() {
	pfComplete := prefilter.NewBuilder(literal.NewSeq(literal.NewLiteral([]byte("exact"), true)), nil).Build()
	pfIncomplete := prefilter.NewBuilder(literal.NewSeq(literal.NewLiteral([]byte("prefix"), false)), nil).Build()

	fmt.Printf("Complete pattern needs verification: %v\n", !pfComplete.IsComplete())
	fmt.Printf("Incomplete pattern needs verification: %v\n", !pfIncomplete.IsComplete())

	// Output:
	// Complete pattern needs verification: false
	// Incomplete pattern needs verification: true
}
