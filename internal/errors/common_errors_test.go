package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType_Constants(t *testing.T) {
	tests := []struct {
		name     string
		errType  ErrorType
		expected string
	}{
		{
			name:     "missing data error type",
			errType:  ErrTypeMissingData,
			expected: "MISSING_DATA",
		},
		{
			name:     "schema error type",
			errType:  ErrTypeSchema,
			expected: "SCHEMA",
		},
		{
			name:     "conversion error type",
			errType:  ErrTypeConversion,
			expected: "CONVERSION",
		},
		{
			name:     "parsing error type",
			errType:  ErrTypeParsing,
			expected: "PARSING",
		},
		{
			name:     "storage error type",
			errType:  ErrTypeStorage,
			expected: "STORAGE",
		},
		{
			name:     "validation error type",
			errType:  ErrTypeValidation,
			expected: "VALIDATION",
		},
		{
			name:     "not found error type",
			errType:  ErrTypeNotFound,
			expected: "NOT_FOUND",
		},
		{
			name:     "config error type",
			errType:  ErrTypeConfig,
			expected: "CONFIG",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.errType))
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name        string
		appError    *AppError
		wantMessage string
	}{
		{
			name: "error without cause",
			appError: &AppError{
				Type:    ErrTypeMissingData,
				Message: "no rows for year 2023",
				Cause:   nil,
			},
			wantMessage: "[MISSING_DATA] no rows for year 2023",
		},
		{
			name: "error with cause",
			appError: &AppError{
				Type:    ErrTypeConversion,
				Message: "parquet conversion failed",
				Cause:   fmt.Errorf("duckdb: excel extension not loaded"),
			},
			wantMessage: "[CONVERSION] parquet conversion failed: duckdb: excel extension not loaded",
		},
		{
			name: "error with wrapped cause",
			appError: &AppError{
				Type:    ErrTypeStorage,
				Message: "cannot write cache",
				Cause:   errors.New("disk full"),
			},
			wantMessage: "[STORAGE] cannot write cache: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMessage, tt.appError.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := NewConversionError("conversion failed", cause)

	require.ErrorIs(t, err, cause)
	assert.Equal(t, cause, err.Unwrap())

	var appErr *AppError
	require.ErrorAs(t, fmt.Errorf("wrapped: %w", err), &appErr)
	assert.Equal(t, ErrTypeConversion, appErr.Type)
}

func TestAppError_WithContext(t *testing.T) {
	err := NewSchemaError("missing columns", []string{"e_status", "e_fakulti"})
	err.WithContext("year", 2024)

	assert.Equal(t, []string{"e_status", "e_fakulti"}, err.Context["columns"])
	assert.Equal(t, 2024, err.Context["year"])
}

func TestIsType(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		errType ErrorType
		want    bool
	}{
		{
			name:    "matching type",
			err:     NewMissingDataError("empty selection", nil),
			errType: ErrTypeMissingData,
			want:    true,
		},
		{
			name:    "wrapped matching type",
			err:     fmt.Errorf("service: %w", NewSchemaError("bad schema", nil)),
			errType: ErrTypeSchema,
			want:    true,
		},
		{
			name:    "different type",
			err:     NewMissingDataError("empty selection", nil),
			errType: ErrTypeSchema,
			want:    false,
		},
		{
			name:    "plain error",
			err:     errors.New("plain"),
			errType: ErrTypeMissingData,
			want:    false,
		},
		{
			name:    "nil error",
			err:     nil,
			errType: ErrTypeMissingData,
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsType(tt.err, tt.errType))
		})
	}
}

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		wantType ErrorType
	}{
		{
			name:     "missing data",
			err:      NewMissingDataError("no data", nil),
			wantType: ErrTypeMissingData,
		},
		{
			name:     "schema",
			err:      NewSchemaError("bad schema", nil),
			wantType: ErrTypeSchema,
		},
		{
			name:     "conversion",
			err:      NewConversionError("failed", nil),
			wantType: ErrTypeConversion,
		},
		{
			name:     "parsing",
			err:      NewParsingError("failed", nil),
			wantType: ErrTypeParsing,
		},
		{
			name:     "storage",
			err:      NewStorageError("failed", nil),
			wantType: ErrTypeStorage,
		},
		{
			name:     "validation",
			err:      NewAppValidationError("invalid"),
			wantType: ErrTypeValidation,
		},
		{
			name:     "not found",
			err:      NewNotFoundError("faculty"),
			wantType: ErrTypeNotFound,
		},
		{
			name:     "config",
			err:      NewConfigError("bad config", nil),
			wantType: ErrTypeConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotNil(t, tt.err)
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.NotNil(t, tt.err.Context)
		})
	}
}

func TestNewNotFoundError_Message(t *testing.T) {
	err := NewNotFoundError("faculty FJX")
	assert.Equal(t, "[NOT_FOUND] faculty FJX not found", err.Error())
}
