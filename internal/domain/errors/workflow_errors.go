package errors

import (
	"fmt"
)

// WorkflowError represents a rejected state transition in the task or
// clearance workflow. The Type constants let handlers map it to an HTTP
// status and tests assert on the failure kind.
type WorkflowError struct {
	Type    string
	Message string
	Actor   string
	Cause   error
}

func (e *WorkflowError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (actor: %s) - %v", e.Type, e.Message, e.Actor, e.Cause)
	}
	return fmt.Sprintf("%s: %s (actor: %s)", e.Type, e.Message, e.Actor)
}

func (e *WorkflowError) Unwrap() error {
	return e.Cause
}

// Workflow error types
const (
	ErrTypeNotAuthorized    = "NOT_AUTHORIZED"
	ErrTypeInvalidState     = "INVALID_STATE"
	ErrTypeDuplicatePending = "DUPLICATE_PENDING_CLEARANCE"
	ErrTypeValidation       = "VALIDATION_FAILED"
)

// NewNotAuthorizedError is returned when the actor's role does not permit
// the attempted action.
func NewNotAuthorizedError(actor, action string) *WorkflowError {
	return &WorkflowError{
		Type:    ErrTypeNotAuthorized,
		Message: fmt.Sprintf("role does not permit %s", action),
		Actor:   actor,
	}
}

// NewInvalidStateError is returned when an entity is not in a state that
// allows the requested transition.
func NewInvalidStateError(actor, detail string) *WorkflowError {
	return &WorkflowError{
		Type:    ErrTypeInvalidState,
		Message: detail,
		Actor:   actor,
	}
}

// NewDuplicatePendingError is returned when a second pending clearance
// request is attempted for the same task.
func NewDuplicatePendingError(actor string, taskID int64) *WorkflowError {
	return &WorkflowError{
		Type:    ErrTypeDuplicatePending,
		Message: fmt.Sprintf("task %d already has a pending clearance request", taskID),
		Actor:   actor,
	}
}

// NewValidationError is returned for input rejected before any write.
func NewValidationError(actor, detail string) *WorkflowError {
	return &WorkflowError{
		Type:    ErrTypeValidation,
		Message: detail,
		Actor:   actor,
	}
}
