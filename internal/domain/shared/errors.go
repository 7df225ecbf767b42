package shared

import "fmt"

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// InvalidStateError is returned when an operation is attempted in a state that does not allow it.
// Callers treat it as a soft failure: nothing was mutated.
type InvalidStateError struct {
	*DomainError
	Operation string
	State     string
}

func NewInvalidStateError(operation, state string) *InvalidStateError {
	return &InvalidStateError{
		DomainError: NewDomainError(fmt.Sprintf("cannot %s while %s", operation, state)),
		Operation:   operation,
		State:       state,
	}
}

// NotFoundError is returned when a referenced entity (drone, sighting, game) does not exist
type NotFoundError struct {
	*DomainError
	Entity string
	ID     string
}

func NewNotFoundError(entity, id string) *NotFoundError {
	return &NotFoundError{
		DomainError: NewDomainError(fmt.Sprintf("%s not found: %s", entity, id)),
		Entity:      entity,
		ID:          id,
	}
}

type InsufficientFundsError struct {
	*DomainError
	Required  float64
	Available float64
}

func NewInsufficientFundsError(required, available float64) *InsufficientFundsError {
	return &InsufficientFundsError{
		DomainError: NewDomainError(fmt.Sprintf("insufficient funds: need %.2f, have %.2f", required, available)),
		Required:    required,
		Available:   available,
	}
}
