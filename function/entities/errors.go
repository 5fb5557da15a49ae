package entities

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error patterns.
// These allow both errors.Is() checks and errors.As() for detailed information.
var (
	// ErrFunctionNotFound is returned when a name is registered in neither
	// partition, or a host has no member of that name.
	ErrFunctionNotFound = errors.New("function not found")

	// ErrSourceUnavailable is returned when a user-defined type has no
	// retrievable declaration text.
	ErrSourceUnavailable = errors.New("type source unavailable")

	// ErrInvalidArguments is returned for a malformed call to a multi-arity
	// lookup helper.
	ErrInvalidArguments = errors.New("invalid arguments")

	// ErrInvalidDeclaration is returned when a function declaration is
	// inconsistent with itself or with its callable.
	ErrInvalidDeclaration = errors.New("invalid function declaration")
)

// FunctionNotFoundError indicates a lookup miss.
type FunctionNotFoundError struct {
	Name string
	// Host is set when the lookup went through an instance.
	Host string
}

func (e *FunctionNotFoundError) Error() string {
	if e.Host != "" {
		return fmt.Sprintf("function not found: %s has no member %q", e.Host, e.Name)
	}
	return fmt.Sprintf("function not found: %q is not registered", e.Name)
}

// Is implements error matching for errors.Is() checks.
// This allows: errors.Is(err, entities.ErrFunctionNotFound)
func (e *FunctionNotFoundError) Is(target error) bool {
	return target == ErrFunctionNotFound
}

// SourceUnavailableError indicates that a type's declaration could not be
// retrieved. Function and Parameter are filled in by the extractor so the
// host can say which part of which contract failed.
type SourceUnavailableError struct {
	Function  string
	Parameter string
	Type      string
	Err       error
}

func (e *SourceUnavailableError) Error() string {
	msg := fmt.Sprintf("source unavailable for type %s", e.Type)
	if e.Parameter != "" {
		msg = fmt.Sprintf("cannot generate a backend contract for parameter %s of type %s", e.Parameter, e.Type)
		if e.Function != "" {
			msg = fmt.Sprintf("%s: %s", e.Function, msg)
		}
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is implements error matching for errors.Is() checks.
func (e *SourceUnavailableError) Is(target error) bool {
	return target == ErrSourceUnavailable
}

func (e *SourceUnavailableError) Unwrap() error {
	return e.Err
}

// InvalidArgumentsError describes a programming error in a lookup call.
type InvalidArgumentsError struct {
	Operation string
	Reason    string
}

func (e *InvalidArgumentsError) Error() string {
	return fmt.Sprintf("invalid arguments to %s: %s", e.Operation, e.Reason)
}

// Is implements error matching for errors.Is() checks.
func (e *InvalidArgumentsError) Is(target error) bool {
	return target == ErrInvalidArguments
}

// DeclarationError describes why a declaration was rejected.
type DeclarationError struct {
	Name   string
	Field  string
	Reason string
}

func (e *DeclarationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid declaration of %q: %s: %s", e.Name, e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid declaration of %q: %s", e.Name, e.Reason)
}

// Is implements error matching for errors.Is() checks.
func (e *DeclarationError) Is(target error) bool {
	return target == ErrInvalidDeclaration
}
