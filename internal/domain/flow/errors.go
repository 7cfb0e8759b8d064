package flow

import "errors"

var (
	// ErrInvalidTransition is returned when a trigger is not permitted in
	// the current step.
	ErrInvalidTransition = errors.New("invalid flow transition")

	// ErrInvalidStep is the panic value when a machine is built or
	// configured with a step that is not part of the authorization flow.
	ErrInvalidStep = errors.New("invalid flow step")
)
