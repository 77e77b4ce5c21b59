package errors

import (
	stderrors "errors"
	"fmt"
)

// Application error types organized by category for better error handling

type ErrorType int

// Domain/Business Logic Errors - errors related to business rules and validation
const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeValidation
	ErrorTypeNotFound
	ErrorTypeUnsupportedRange
	ErrorTypeInsufficientData

	// Infrastructure Errors - errors related to external systems and services
	ErrorTypeStorage
	ErrorTypeProviderUnavailable

	// System/Configuration Errors - errors related to system setup and configuration
	ErrorTypeConfiguration
)

// String returns the string representation of error type
func (e ErrorType) String() string {
	switch e {
	case ErrorTypeValidation:
		return "VALIDATION_ERROR"
	case ErrorTypeNotFound:
		return "NOT_FOUND_ERROR"
	case ErrorTypeUnsupportedRange:
		return "UNSUPPORTED_RANGE_ERROR"
	case ErrorTypeInsufficientData:
		return "INSUFFICIENT_DATA_ERROR"
	case ErrorTypeStorage:
		return "STORAGE_ERROR"
	case ErrorTypeProviderUnavailable:
		return "PROVIDER_UNAVAILABLE_ERROR"
	case ErrorTypeConfiguration:
		return "CONFIGURATION_ERROR"
	default:
		return "UNKNOWN_ERROR"
	}
}

// Short aliases used across adapters
const (
	ValidationError          = ErrorTypeValidation
	NotFoundError            = ErrorTypeNotFound
	UnsupportedRangeError    = ErrorTypeUnsupportedRange
	InsufficientDataError    = ErrorTypeInsufficientData
	StorageError             = ErrorTypeStorage
	ProviderUnavailableError = ErrorTypeProviderUnavailable
	ConfigurationError       = ErrorTypeConfiguration
)

type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type.String(), e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type.String(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
	}
}

func Wrap(errorType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// Domain/Business Logic Error Constructors
func NewValidationError(message string) *AppError {
	return New(ValidationError, message)
}

func NewNotFoundError(message string) *AppError {
	return New(NotFoundError, message)
}

func NewUnsupportedRangeError(message string) *AppError {
	return New(UnsupportedRangeError, message)
}

func NewInsufficientDataError(message string) *AppError {
	return New(InsufficientDataError, message)
}

// Infrastructure Error Constructors
func NewStorageError(message string, cause error) *AppError {
	return Wrap(StorageError, message, cause)
}

func NewProviderUnavailableError(message string, cause error) *AppError {
	return Wrap(ProviderUnavailableError, message, cause)
}

// System/Configuration Error Constructors
func NewConfigurationError(message string, cause error) *AppError {
	return Wrap(ConfigurationError, message, cause)
}

// TypeOf returns the type of the outermost AppError in the chain, or ErrorTypeUnknown.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeUnknown
}

// Helper functions for error type checking
func IsValidationError(err error) bool {
	return TypeOf(err) == ValidationError
}

func IsNotFoundError(err error) bool {
	return TypeOf(err) == NotFoundError
}

func IsUnsupportedRangeError(err error) bool {
	return TypeOf(err) == UnsupportedRangeError
}

func IsInsufficientDataError(err error) bool {
	return TypeOf(err) == InsufficientDataError
}

func IsStorageError(err error) bool {
	return TypeOf(err) == StorageError
}

func IsProviderUnavailableError(err error) bool {
	return TypeOf(err) == ProviderUnavailableError
}

func IsConfigurationError(err error) bool {
	return TypeOf(err) == ConfigurationError
}
