package errors

import "fmt"

// ErrorCode represents an Autotag error code.
type ErrorCode string

const (
	ErrInvalidRequest   ErrorCode = "INVALID_REQUEST"   // 400
	ErrUnknownType      ErrorCode = "UNKNOWN_TYPE"      // 400
	ErrInvalidSchema    ErrorCode = "INVALID_SCHEMA"    // 400
	ErrUnknownExtractor ErrorCode = "UNKNOWN_EXTRACTOR" // 400
	ErrNotFound         ErrorCode = "NOT_FOUND"         // 404
	ErrConflict         ErrorCode = "CONFLICT"          // 409
	ErrInternal         ErrorCode = "INTERNAL"          // 500
)

// AutotagError represents a structured error with code, status, and details.
type AutotagError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *AutotagError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *AutotagError {
	return &AutotagError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewUnknownType creates a 400 error for record types absent from the schema.
func NewUnknownType(name string) *AutotagError {
	return &AutotagError{
		Code:    ErrUnknownType,
		Status:  400,
		Message: fmt.Sprintf("record type not declared: %s", name),
		Details: map[string]any{"type": name},
	}
}

// NewInvalidSchema creates a 400 error for malformed type declarations.
func NewInvalidSchema(typeName, field, msg string) *AutotagError {
	return &AutotagError{
		Code:    ErrInvalidSchema,
		Status:  400,
		Message: fmt.Sprintf("invalid schema for %s.%s: %s", typeName, field, msg),
		Details: map[string]any{"type": typeName, "field": field},
	}
}

// NewUnknownExtractor creates a 400 error for unregistered extractor names.
func NewUnknownExtractor(typeName, field, extractor string) *AutotagError {
	return &AutotagError{
		Code:    ErrUnknownExtractor,
		Status:  400,
		Message: fmt.Sprintf("field %s.%s references unknown extractor %q", typeName, field, extractor),
		Details: map[string]any{"type": typeName, "field": field, "extractor": extractor},
	}
}

// NewNotFound creates a 404 error for when a record cannot be found.
func NewNotFound(identifier string) *AutotagError {
	return &AutotagError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("record not found: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewConflict creates a 409 error for general conflicts.
func NewConflict(msg string) *AutotagError {
	return &AutotagError{
		Code:    ErrConflict,
		Status:  409,
		Message: msg,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *AutotagError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &AutotagError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is an AutotagError with the given code.
func Is(err error, code ErrorCode) bool {
	if aErr, ok := err.(*AutotagError); ok {
		return aErr.Code == code
	}
	return false
}
