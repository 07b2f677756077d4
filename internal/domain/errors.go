package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnresolvedReference is returned when a link names an element that does not exist
	ErrUnresolvedReference = errors.New("unresolved element reference")
	// ErrInvariantViolation is returned when a mutation cannot keep the store consistent
	ErrInvariantViolation = errors.New("invariant violation")
	// ErrDuplicateElement is returned when a document repeats an element id
	ErrDuplicateElement = errors.New("duplicate element id")
	// ErrSessionNotFound is returned when no layout session has the given id
	ErrSessionNotFound = errors.New("session not found")
)

// ReferenceError describes a link endpoint that could not be resolved
type ReferenceError struct {
	LinkIndex int
	Endpoint  string // "source" or "target"
	ElementID int
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("link %d: %s element %d does not exist", e.LinkIndex, e.Endpoint, e.ElementID)
}

func (e *ReferenceError) Unwrap() error {
	return ErrUnresolvedReference
}

// InvariantError describes a rejected mutation
type InvariantError struct {
	ElementID int
	Reason    string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("element %d: %s", e.ElementID, e.Reason)
}

func (e *InvariantError) Unwrap() error {
	return ErrInvariantViolation
}
