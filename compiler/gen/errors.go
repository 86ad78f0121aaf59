// Package gen compiles a frozen model registry into a single
// dialect-specific schema document.
package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrInvalidModel indicates a structurally malformed model descriptor.
	ErrInvalidModel = errors.New("loom: invalid model")
	// ErrRelationIntegrity indicates a relation pointing outside the registry.
	ErrRelationIntegrity = errors.New("loom: relation integrity violation")
	// ErrGenerationFailed indicates a per-model generation failure.
	ErrGenerationFailed = errors.New("loom: generation failed")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("loom: missing configuration")
)

// StructuralError represents a structurally malformed model: no primary
// key, a field without a name or type, a relation missing its parts.
// Structural errors are collected across all models and abort the run
// before any output is written.
type StructuralError struct {
	Model   string // model name ("" when the name itself is missing)
	Field   string // field or relation name, if applicable
	Message string
}

// Error implements the error interface.
func (e *StructuralError) Error() string {
	var b strings.Builder
	b.WriteString("loom: structural error")
	if e.Model != "" {
		b.WriteString(" on model ")
		b.WriteString(e.Model)
	}
	if e.Field != "" {
		b.WriteString(" field ")
		b.WriteString(e.Field)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for StructuralError.
func (e *StructuralError) Is(target error) bool {
	return target == ErrInvalidModel
}

// NewStructuralError creates a new StructuralError.
func NewStructuralError(model, field, message string) *StructuralError {
	return &StructuralError{Model: model, Field: field, Message: message}
}

// RelationIntegrityError represents a relation whose target model is not
// present in the registry. Handled like a structural error: fatal,
// collected, aborts before any write.
type RelationIntegrityError struct {
	Model    string
	Relation string
	Target   string
}

// Error implements the error interface.
func (e *RelationIntegrityError) Error() string {
	return fmt.Sprintf("loom: relation %q on model %s points to unregistered model %q",
		e.Relation, e.Model, e.Target)
}

// Is reports whether the target matches the sentinel error for RelationIntegrityError.
func (e *RelationIntegrityError) Is(target error) bool {
	return target == ErrRelationIntegrity
}

// NewRelationIntegrityError creates a new RelationIntegrityError.
func NewRelationIntegrityError(model, relation, target string) *RelationIntegrityError {
	return &RelationIntegrityError{Model: model, Relation: relation, Target: target}
}

// GenerationError represents an unexpected failure while generating one
// specific model. Unlike structural errors it is recovered: the model is
// skipped with a warning and the run continues.
type GenerationError struct {
	Model   string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("loom: generation error")
	if e.Model != "" {
		b.WriteString(" on model ")
		b.WriteString(e.Model)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(model, message string, cause error) *GenerationError {
	return &GenerationError{Model: model, Message: message, Cause: cause}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("loom: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("loom: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{Option: option, Value: value, Message: message}
}

// IsStructuralError reports whether the error is (or wraps) a StructuralError.
func IsStructuralError(err error) bool {
	var e *StructuralError
	return errors.As(err, &e)
}

// IsRelationIntegrityError reports whether the error is (or wraps) a RelationIntegrityError.
func IsRelationIntegrityError(err error) bool {
	var e *RelationIntegrityError
	return errors.As(err, &e)
}

// IsGenerationError reports whether the error is (or wraps) a GenerationError.
func IsGenerationError(err error) bool {
	var e *GenerationError
	return errors.As(err, &e)
}

// IsConfigError reports whether the error is (or wraps) a ConfigError.
func IsConfigError(err error) bool {
	var e *ConfigError
	return errors.As(err, &e)
}
