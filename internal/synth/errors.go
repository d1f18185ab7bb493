package synth

import (
	"errors"
	"fmt"
)

// Classification errors. Each is fatal for the run.
var (
	ErrMultipleVerbs         = errors.New("more than one HTTP verb decorator")
	ErrNonLiteralArgument    = errors.New("decorator argument is not a string literal")
	ErrUnresolvedPlaceholder = errors.New("unresolved path placeholder")
	ErrPlaceholderModifier   = errors.New("optional or repeated path placeholder is not supported")
	ErrMultipleBodies        = errors.New("more than one body parameter")
	ErrNotController         = errors.New("class has no @Controller decorator")
)

// Error locates a classification error in the source
type Error struct {
	Controller string
	Method     string // empty for controller-level errors
	Err        error
}

func (e *Error) Error() string {
	if e.Method == "" {
		return fmt.Sprintf("%s: %v", e.Controller, e.Err)
	}
	return fmt.Sprintf("%s.%s: %v", e.Controller, e.Method, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
