package shared

import (
	"errors"
	"fmt"
)

// Error codes shared by every domain package. The HTTP layer maps them to status codes.
const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeNotFound            = "NOT_FOUND"
	CodeInvalidState        = "INVALID_STATE"
	CodeInsufficientStock   = "INSUFFICIENT_STOCK"
	CodeReturnExceedsIssued = "RETURN_EXCEEDS_ISSUED"
	CodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
	CodeConfiguration       = "CONFIGURATION_ERROR"
	CodeDuplicateRequest    = "DUPLICATE_REQUEST"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target is a DomainError with the same code, so that
// errors.Is(err, shared.ErrInsufficientStock) matches any insufficient-stock error.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Sentinels for errors.Is matching
var (
	ErrValidation          = NewDomainError(CodeValidation, "Validation failed")
	ErrNotFound            = NewDomainError(CodeNotFound, "Resource not found")
	ErrInvalidState        = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
	ErrInsufficientStock   = NewDomainError(CodeInsufficientStock, "Insufficient stock available")
	ErrReturnExceedsIssued = NewDomainError(CodeReturnExceedsIssued, "Return quantity exceeds issued quantity")
	ErrConcurrencyConflict = NewDomainError(CodeConcurrencyConflict, "Resource was modified by another process")
	ErrConfiguration       = NewDomainError(CodeConfiguration, "Invalid master data configuration")
	ErrDuplicateRequest    = NewDomainError(CodeDuplicateRequest, "Request has already been processed")
)

// NewValidationError creates a validation error with a formatted message
func NewValidationError(format string, args ...any) *DomainError {
	return NewDomainError(CodeValidation, fmt.Sprintf(format, args...))
}

// NewInvalidStateError creates an invalid state error with a formatted message
func NewInvalidStateError(format string, args ...any) *DomainError {
	return NewDomainError(CodeInvalidState, fmt.Sprintf(format, args...))
}

// NewConfigurationError creates a configuration error with a formatted message
func NewConfigurationError(format string, args ...any) *DomainError {
	return NewDomainError(CodeConfiguration, fmt.Sprintf(format, args...))
}

// NewNotFoundError creates a not found error naming the missing resource
func NewNotFoundError(resource string, id any) *DomainError {
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s %v not found", resource, id))
}

// NewInsufficientStockError names the material that could not supply any quantity
func NewInsufficientStockError(materialID any) *DomainError {
	return NewDomainError(CodeInsufficientStock,
		fmt.Sprintf("No stock available for material %v or any of its alternatives", materialID))
}

// NewReturnExceedsIssuedError reports a return larger than the returnable balance
func NewReturnExceedsIssuedError(requested, returnable fmt.Stringer) *DomainError {
	return NewDomainError(CodeReturnExceedsIssued,
		fmt.Sprintf("Return quantity %s exceeds returnable balance %s", requested, returnable))
}

// IsCode reports whether err is (or wraps) a DomainError carrying code
func IsCode(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}
