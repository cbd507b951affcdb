package variables

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for error type checking
var (
	// ErrVariableNotFound indicates the store has no variable with the requested ID
	ErrVariableNotFound = errors.New("variable not found")

	// ErrUnresolvedReference indicates an alias points at a variable the store cannot supply
	ErrUnresolvedReference = errors.New("unresolved reference")

	// ErrCircularReference indicates aliases form a cycle
	ErrCircularReference = errors.New("circular reference detected")

	// ErrInvalidValue indicates a mode value could not be decoded
	ErrInvalidValue = errors.New("invalid variable value")
)

// NotFoundError represents a lookup of an unknown variable ID
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("variable not found: %s", e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrVariableNotFound
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(id string) error {
	return &NotFoundError{ID: id}
}

// UnresolvedReferenceError represents an alias whose target cannot be looked up
type UnresolvedReferenceError struct {
	VariableID string
	ModeID     string
	TargetID   string
	Cause      error
}

func (e *UnresolvedReferenceError) Error() string {
	msg := fmt.Sprintf("variable %s references %s in mode %s, which cannot be resolved", e.VariableID, e.TargetID, e.ModeID)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap exposes both the sentinel and the underlying store error
func (e *UnresolvedReferenceError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrUnresolvedReference}
	}
	return []error{ErrUnresolvedReference, e.Cause}
}

// NewUnresolvedReferenceError creates a new unresolved reference error
func NewUnresolvedReferenceError(variableID, modeID, targetID string, cause error) error {
	return &UnresolvedReferenceError{
		VariableID: variableID,
		ModeID:     modeID,
		TargetID:   targetID,
		Cause:      cause,
	}
}

// CircularReferenceError represents an alias cycle
type CircularReferenceError struct {
	Cycle []string
}

func (e *CircularReferenceError) Error() string {
	return fmt.Sprintf("circular alias reference: %s", strings.Join(e.Cycle, " -> "))
}

func (e *CircularReferenceError) Unwrap() error {
	return ErrCircularReference
}

// NewCircularReferenceError creates a new circular reference error
func NewCircularReferenceError(cycle []string) error {
	return &CircularReferenceError{Cycle: cycle}
}
