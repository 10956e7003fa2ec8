package tagger

import "fmt"

// ErrorKind classifies contained tagger failures.
type ErrorKind int

const (
	// KindConfig is a malformed descriptor: bad id or enablement declaration.
	KindConfig ErrorKind = iota
	// KindEvaluation is a failure evaluating the enablement condition.
	KindEvaluation
	// KindConstruction is a failure building the processor.
	KindConstruction
	// KindProcessing is a panic raised by the processor while producing a tag.
	KindProcessing
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindEvaluation:
		return "evaluation"
	case KindConstruction:
		return "construction"
	case KindProcessing:
		return "processing"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is a failure contained at the descriptor boundary.
type Error struct {
	TaggerID string
	Kind     ErrorKind
	Err      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("tagger %q: %s error: %v", e.TaggerID, e.Kind, e.Err)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }
