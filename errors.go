package loom

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for registry operations.
var (
	// ErrModelNotFound is returned when a requested model descriptor
	// does not exist in the registry.
	ErrModelNotFound = errors.New("loom: model not found")

	// ErrDuplicateModel is returned when a model descriptor is registered
	// under a name that is already taken.
	ErrDuplicateModel = errors.New("loom: duplicate model")

	// ErrRegistryFrozen is returned when registering on a registry builder
	// that was already built.
	ErrRegistryFrozen = errors.New("loom: registry is frozen")
)

// ModelNotFoundError represents an error when a model descriptor is not found.
type ModelNotFoundError struct {
	name string
}

// Error returns the error string.
func (e *ModelNotFoundError) Error() string {
	return fmt.Sprintf("loom: model %q not found", e.name)
}

// Is reports whether the target error matches ModelNotFoundError.
// This allows errors.Is(err, ErrModelNotFound) to return true.
func (e *ModelNotFoundError) Is(err error) bool {
	return err == ErrModelNotFound
}

// Name returns the model name that was looked up.
func (e *ModelNotFoundError) Name() string {
	return e.name
}

// NewModelNotFoundError returns a new ModelNotFoundError for the given model name.
func NewModelNotFoundError(name string) *ModelNotFoundError {
	return &ModelNotFoundError{name: name}
}

// IsModelNotFound returns true if the error is a ModelNotFoundError.
func IsModelNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *ModelNotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrModelNotFound)
}

// DuplicateModelError represents an error when two model descriptors are
// registered under the same name.
type DuplicateModelError struct {
	name string
}

// Error returns the error string.
func (e *DuplicateModelError) Error() string {
	return fmt.Sprintf("loom: model %q is already registered", e.name)
}

// Is reports whether the target error matches DuplicateModelError.
func (e *DuplicateModelError) Is(err error) bool {
	return err == ErrDuplicateModel
}

// Name returns the conflicting model name.
func (e *DuplicateModelError) Name() string {
	return e.name
}

// NewDuplicateModelError returns a new DuplicateModelError for the given model name.
func NewDuplicateModelError(name string) *DuplicateModelError {
	return &DuplicateModelError{name: name}
}

// IsDuplicateModel returns true if the error is a DuplicateModelError.
func IsDuplicateModel(err error) bool {
	if err == nil {
		return false
	}
	var e *DuplicateModelError
	return errors.As(err, &e) || errors.Is(err, ErrDuplicateModel)
}
