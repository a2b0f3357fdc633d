package errors

import (
	"fmt"
	"net/http"
)

// ErrorType defines the category of the error
type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeGeneration   ErrorType = "GENERATION_ERROR"
	ErrorTypeIncomplete   ErrorType = "INCOMPLETE_GENERATION_ERROR"
	ErrorTypeStorage      ErrorType = "STORAGE_ERROR"
	ErrorTypeRateLimit    ErrorType = "RATE_LIMIT_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND_ERROR"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED_ERROR"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

// AppError represents a structured error for the application
type AppError struct {
	Type          ErrorType `json:"type"`
	Message       string    `json:"message"`
	StatusCode    int       `json:"statusCode"`
	ErrorCode     string    `json:"errorCode"`
	IsOperational bool      `json:"isOperational"`
	Recovery      string    `json:"recoverySuggestion,omitempty"`
	Err           error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is / errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Code returns the application-specific error code
func (e *AppError) Code() string {
	return e.ErrorCode
}

// RecoverySuggestion returns the suggestion on how to recover from the error
func (e *AppError) RecoverySuggestion() string {
	return e.Recovery
}

// IsRetryable determines if the operation that caused the error should be retried
func (e *AppError) IsRetryable() bool {
	switch e.Type {
	case ErrorTypeRateLimit:
		return true
	case ErrorTypeGeneration, ErrorTypeStorage:
		// Provider and store faults are only worth retrying when the
		// upstream reported a server-side problem
		return e.StatusCode >= 500
	default:
		return false
	}
}

// NewValidationError creates a new validation error (400)
func NewValidationError(message string, errorCode string, suggestion string) *AppError {
	return &AppError{
		Type:          ErrorTypeValidation,
		Message:       message,
		StatusCode:    http.StatusBadRequest,
		ErrorCode:     errorCode,
		IsOperational: true,
		Recovery:      suggestion,
	}
}

// NewNotFoundError creates a new not found error (404)
func NewNotFoundError(message string, errorCode string, suggestion string) *AppError {
	return &AppError{
		Type:          ErrorTypeNotFound,
		Message:       message,
		StatusCode:    http.StatusNotFound,
		ErrorCode:     errorCode,
		IsOperational: true,
		Recovery:      suggestion,
	}
}

// NewUnauthorizedError creates a new unauthorized error (401)
func NewUnauthorizedError(message string, errorCode string) *AppError {
	return &AppError{
		Type:          ErrorTypeUnauthorized,
		Message:       message,
		StatusCode:    http.StatusUnauthorized,
		ErrorCode:     errorCode,
		IsOperational: true,
	}
}

// NewRateLimitError creates a new rate limit error (429)
func NewRateLimitError(message string, errorCode string, suggestion string) *AppError {
	return &AppError{
		Type:          ErrorTypeRateLimit,
		Message:       message,
		StatusCode:    http.StatusTooManyRequests,
		ErrorCode:     errorCode,
		IsOperational: true,
		Recovery:      suggestion,
	}
}

// NewGenerationError creates a new recipe generation error (500).
// Used when the AI provider fails to produce any usable response.
func NewGenerationError(message string, errorCode string, err error) *AppError {
	return &AppError{
		Type:          ErrorTypeGeneration,
		Message:       message,
		StatusCode:    http.StatusInternalServerError,
		ErrorCode:     errorCode,
		IsOperational: true,
		Recovery:      "Try again with more specific ingredients or wait for the service to be available.",
		Err:           err,
	}
}

// NewIncompleteGenerationError creates an error for a structurally valid but
// semantically empty AI response (a recipe missing one of its required fields).
func NewIncompleteGenerationError(missingField string) *AppError {
	return &AppError{
		Type:          ErrorTypeIncomplete,
		Message:       fmt.Sprintf("AI returned an incomplete recipe: missing %s", missingField),
		StatusCode:    http.StatusBadGateway,
		ErrorCode:     "INCOMPLETE_GENERATION",
		IsOperational: true,
		Recovery:      "Retry the generation with more specific ingredients.",
	}
}

// NewStorageError creates a new persistence error (500)
func NewStorageError(message string, errorCode string, err error) *AppError {
	return &AppError{
		Type:          ErrorTypeStorage,
		Message:       message,
		StatusCode:    http.StatusInternalServerError,
		ErrorCode:     errorCode,
		IsOperational: true,
		Recovery:      "The recipe was already shown to the user; saving can be retried later.",
		Err:           err,
	}
}
