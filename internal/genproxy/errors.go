package genproxy

import "fmt"

// Reason classifies why a generation call failed.
type Reason string

const (
	ReasonTimeout   Reason = "timeout"
	ReasonNetwork   Reason = "network"
	ReasonEmpty     Reason = "empty"
	ReasonMalformed Reason = "malformed"
)

// Error is the typed failure of one generation call. The orchestration layer
// decides by explicit case analysis whether it is fatal (strict policy) or
// substitutable (permissive policy); nothing upstream catches it blindly.
type Error struct {
	Stage  string // palm, tongue, dream, wealth, qi_advice
	Reason Reason
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generation %s (%s): %v", e.Stage, e.Reason, e.Err)
	}
	return fmt.Sprintf("generation %s (%s)", e.Stage, e.Reason)
}

func (e *Error) Unwrap() error { return e.Err }
