package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	err := &AppError{
		Message: "something went wrong",
	}
	if err.Error() != "something went wrong" {
		t.Errorf("expected 'something went wrong', got %v", err.Error())
	}

	wrappedErr := errors.New("underlying error")
	errWithWrap := &AppError{
		Message: "failed operation",
		Err:     wrappedErr,
	}
	expected := "failed operation: underlying error"
	if errWithWrap.Error() != expected {
		t.Errorf("expected %q, got %q", expected, errWithWrap.Error())
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewStorageError("insert failed", "SAVE_FAILED", cause)
	if !errors.Is(err, cause) {
		t.Errorf("expected errors.Is to find the wrapped cause")
	}
}

func TestAppError_Code(t *testing.T) {
	err := &AppError{
		ErrorCode: "ERR_CODE_123",
	}
	if err.Code() != "ERR_CODE_123" {
		t.Errorf("expected ERR_CODE_123, got %v", err.Code())
	}
}

func TestAppError_IsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want bool
	}{
		{
			name: "rate limit is retryable",
			err: &AppError{
				Type:       ErrorTypeRateLimit,
				StatusCode: http.StatusTooManyRequests,
			},
			want: true,
		},
		{
			name: "generation 500 is retryable",
			err: &AppError{
				Type:       ErrorTypeGeneration,
				StatusCode: http.StatusInternalServerError,
			},
			want: true,
		},
		{
			name: "generation 400 is not retryable",
			err: &AppError{
				Type:       ErrorTypeGeneration,
				StatusCode: http.StatusBadRequest,
			},
			want: false,
		},
		{
			name: "storage 500 is retryable",
			err: &AppError{
				Type:       ErrorTypeStorage,
				StatusCode: http.StatusInternalServerError,
			},
			want: true,
		},
		{
			name: "validation is not retryable",
			err: &AppError{
				Type:       ErrorTypeValidation,
				StatusCode: http.StatusBadRequest,
			},
			want: false,
		},
		{
			name: "incomplete generation is not retryable",
			err:  NewIncompleteGenerationError("instructions"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.IsRetryable(); got != tt.want {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewIncompleteGenerationError(t *testing.T) {
	err := NewIncompleteGenerationError("instructions")
	if err.Type != ErrorTypeIncomplete {
		t.Errorf("expected type %v, got %v", ErrorTypeIncomplete, err.Type)
	}
	if err.StatusCode != http.StatusBadGateway {
		t.Errorf("expected status %d, got %d", http.StatusBadGateway, err.StatusCode)
	}
	if err.ErrorCode != "INCOMPLETE_GENERATION" {
		t.Errorf("unexpected error code %q", err.ErrorCode)
	}
}
