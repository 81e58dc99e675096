package jsonrepair

import "fmt"

// UnparsableError indicates that every repair strategy failed.
// Snippet carries the first 300 characters of the (fence-stripped)
// offending text for diagnostics.
type UnparsableError struct {
	Snippet string
}

func (e *UnparsableError) Error() string {
	return fmt.Sprintf("cannot extract valid JSON from LLM response (first %d chars): %s", len(e.Snippet), e.Snippet)
}
