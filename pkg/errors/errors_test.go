package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestEngineError(t *testing.T) {
	tests := []struct {
		name       string
		category   ErrorCategory
		code       ErrorCode
		message    string
		cause      error
		expectCode int
	}{
		{
			name:       "file error",
			category:   CategoryFile,
			code:       CodeFileNotFound,
			message:    "file not found",
			cause:      errors.New("no such file"),
			expectCode: 2,
		},
		{
			name:       "parse error",
			category:   CategoryParse,
			code:       CodeInvalidFormat,
			message:    "invalid format",
			cause:      nil,
			expectCode: 3,
		},
		{
			name:       "validation error",
			category:   CategoryValidation,
			code:       CodeOutOfRange,
			message:    "value out of range",
			cause:      nil,
			expectCode: 3,
		},
		{
			name:       "configuration error",
			category:   CategoryConfiguration,
			code:       CodeInvalidConfig,
			message:    "invalid config",
			cause:      errors.New("missing field"),
			expectCode: 4,
		},
		{
			name:       "computation error",
			category:   CategoryComputation,
			code:       CodeInvalidOperation,
			message:    "unsupported operation",
			cause:      nil,
			expectCode: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err *EngineError
			if tt.cause != nil {
				err = Wrap(tt.cause, tt.category, tt.code, tt.message)
			} else {
				err = New(tt.category, tt.code, tt.message)
			}

			if err.Category != tt.category {
				t.Errorf("expected category %s, got %s", tt.category, err.Category)
			}
			if err.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, err.Code)
			}
			if err.Message != tt.message {
				t.Errorf("expected message %s, got %s", tt.message, err.Message)
			}

			if err.GetExitCode() != tt.expectCode {
				t.Errorf("expected exit code %d, got %d", tt.expectCode, err.GetExitCode())
			}

			if err.Error() != tt.message {
				t.Errorf("expected error string %s, got %s", tt.message, err.Error())
			}

			if tt.cause != nil && err.Unwrap() != tt.cause {
				t.Errorf("expected to unwrap to %v, got %v", tt.cause, err.Unwrap())
			}
		})
	}
}

func TestEngineErrorWithContext(t *testing.T) {
	err := New(CategoryFile, CodeFileNotFound, "test error").
		WithContext("file", "/path/to/file").
		WithContext("line", 42).
		WithSuggestion("check file path")

	if err.Context["file"] != "/path/to/file" {
		t.Errorf("expected file context '/path/to/file', got %v", err.Context["file"])
	}
	if err.Context["line"] != 42 {
		t.Errorf("expected line context 42, got %v", err.Context["line"])
	}

	if err.Suggestion != "check file path" {
		t.Errorf("expected suggestion 'check file path', got %s", err.Suggestion)
	}
	if !strings.Contains(err.Error(), "suggestion: check file path") {
		t.Errorf("expected suggestion in error string, got %s", err.Error())
	}
}

func TestWrap_NilError(t *testing.T) {
	if err := Wrap(nil, CategoryFile, CodeFileNotFound, "ignored"); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestFileError(t *testing.T) {
	err := FileError(CodeFileNotFound, "/missing.csv", errors.New("no such file"))

	if err.Category != CategoryFile {
		t.Errorf("expected file category, got %s", err.Category)
	}
	if err.Context["file_path"] != "/missing.csv" {
		t.Errorf("expected file_path context, got %v", err.Context["file_path"])
	}
	if err.Suggestion == "" {
		t.Error("expected a suggestion")
	}
}

func TestParseError(t *testing.T) {
	err := ParseError(CodeInvalidData, "expenses.csv", 7, "amount", "abc", errors.New("bad token"))

	if err.Category != CategoryParse {
		t.Errorf("expected parse category, got %s", err.Category)
	}
	if !strings.Contains(err.Message, "line 7") {
		t.Errorf("expected line in message, got %s", err.Message)
	}
	if err.Context["field"] != "amount" || err.Context["value"] != "abc" {
		t.Errorf("expected field context, got %v", err.Context)
	}
}

func TestValidationError(t *testing.T) {
	err := ValidationError(CodeOutOfRange, "wage", "99999999", nil)

	if err.Category != CategoryValidation {
		t.Errorf("expected validation category, got %s", err.Category)
	}
	if !strings.Contains(err.Message, "wage") {
		t.Errorf("expected field in message, got %s", err.Message)
	}
	if err.GetExitCode() != 3 {
		t.Errorf("expected exit code 3, got %d", err.GetExitCode())
	}
}

func TestIsEngineError(t *testing.T) {
	if !IsEngineError(New(CategoryInternal, CodeUnexpectedError, "boom")) {
		t.Error("expected true for EngineError")
	}
	if IsEngineError(errors.New("plain")) {
		t.Error("expected false for plain error")
	}
}

func TestAsEngineError(t *testing.T) {
	inner := New(CategoryParse, CodeInvalidFormat, "bad json")
	extracted, ok := AsEngineError(inner)
	if !ok || extracted != inner {
		t.Errorf("expected to extract the same error, got %v, %v", extracted, ok)
	}

	if _, ok := AsEngineError(errors.New("plain")); ok {
		t.Error("expected false for plain error")
	}
}

func TestWrapIfNeeded(t *testing.T) {
	inner := New(CategoryParse, CodeInvalidFormat, "bad json")
	if got := WrapIfNeeded(inner, CategoryInternal, CodeUnexpectedError, "outer"); got != inner {
		t.Errorf("expected existing EngineError passed through, got %v", got)
	}

	plain := errors.New("plain")
	wrapped := WrapIfNeeded(plain, CategoryInternal, CodeUnexpectedError, "outer")
	if wrapped == nil || wrapped.Cause != plain {
		t.Errorf("expected plain error wrapped, got %v", wrapped)
	}

	if got := WrapIfNeeded(nil, CategoryInternal, CodeUnexpectedError, "outer"); got != nil {
		t.Errorf("expected nil for nil input, got %v", got)
	}
}
