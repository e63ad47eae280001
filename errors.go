package clrregex

import (
	"errors"
	"fmt"
)

// Runtime errors. Parse failures are reported through *SyntaxError instead;
// an unmatched pattern is not an error at all, it is EmptyMatch.
var (
	// ErrStepLimitExceeded is returned when a match attempt runs past
	// Options.MaxSteps node evaluations.
	ErrStepLimitExceeded = errors.New("clrregex: backtracking step limit exceeded")

	// ErrCountOutOfRange is returned by replace and split operations when
	// count is negative and not the documented -1.
	ErrCountOutOfRange = errors.New("clrregex: count must be -1 or nonnegative")

	// ErrEmptyMatch is returned by Match.Result on EmptyMatch.
	ErrEmptyMatch = errors.New("clrregex: no match to build a result from")

	// ErrIndexOutOfRange is returned when a start index or window does not
	// lie within the input.
	ErrIndexOutOfRange = errors.New("clrregex: start index out of range")
)

// SyntaxError is a pattern compile failure. Pos is the rune offset into
// Pattern where the error was detected.
type SyntaxError struct {
	Pattern string
	Pos     int
	Err     error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("clrregex: %v", e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }
