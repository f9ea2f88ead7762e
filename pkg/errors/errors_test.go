package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/McKayRansom/auto-factorio/pkg/grid"
	"github.com/McKayRansom/auto-factorio/pkg/problem"
	"github.com/McKayRansom/auto-factorio/pkg/route"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "test message: %s", "value")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_INPUT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInternal, cause, "failed to route")

	if err.Code != ErrCodeInternal {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInternal)
	}

	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{"matching code", New(ErrCodeInvalidInput, "test"), ErrCodeInvalidInput, true},
		{"different code", New(ErrCodeInvalidInput, "test"), ErrCodeNotFound, false},
		{"wrapped", fmt.Errorf("outer: %w", New(ErrCodeNotFound, "test")), ErrCodeNotFound, true},
		{"plain error", errors.New("plain"), ErrCodeInternal, false},
		{"nil", nil, ErrCodeInternal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeUnroutable, "x")); got != ErrCodeUnroutable {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeUnroutable)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"structured", New(ErrCodeInvalidInput, "bad value"), "bad value"},
		{"with cause", Wrap(ErrCodeInternal, errors.New("disk full"), "save failed"), "save failed: disk full"},
		{"plain", errors.New("plain error"), "plain error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestFromRouting(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
	}{
		{"out of bounds", fmt.Errorf("net 0: %w", grid.ErrOutOfBounds), ErrCodeOutOfBounds},
		{"invalid problem", fmt.Errorf("%w: no nets", problem.ErrInvalid), ErrCodeInvalidProblem},
		{"empty netlist", route.ErrEmptyNetlist, ErrCodeInvalidProblem},
		{"all failed", fmt.Errorf("%w: %w", route.ErrAllOrderingsFailed, route.ErrUnroutableNet), ErrCodeUnroutable},
		{"invalid start", route.ErrInvalidStartPoint, ErrCodeUnroutable},
		{"retrace", route.ErrRetraceInconsistency, ErrCodeRetraceInconsistency},
		{"all failed on retrace", fmt.Errorf("%w (3 attempts): %w", route.ErrAllOrderingsFailed, route.ErrRetraceInconsistency), ErrCodeUnroutable},
		{"deadline", fmt.Errorf("route stopped in attempt 2: %w", context.DeadlineExceeded), ErrCodeTimeout},
		{"canceled", fmt.Errorf("net 1: %w", context.Canceled), ErrCodeTimeout},
		{"unknown", errors.New("boom"), ErrCodeInternal},
		{"already coded", New(ErrCodeNotFound, "job"), ErrCodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromRouting(tt.err)
			if got := GetCode(err); got != tt.code {
				t.Errorf("FromRouting() code = %v, want %v", got, tt.code)
			}
			if !errors.Is(err, tt.err) {
				t.Error("FromRouting() lost the cause")
			}
		})
	}
	if FromRouting(nil) != nil {
		t.Error("FromRouting(nil) != nil")
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := map[Code]int{
		ErrCodeInvalidProblem:       http.StatusBadRequest,
		ErrCodeOutOfBounds:          http.StatusBadRequest,
		ErrCodeNotFound:             http.StatusNotFound,
		ErrCodeUnroutable:           http.StatusUnprocessableEntity,
		ErrCodeTimeout:              http.StatusGatewayTimeout,
		ErrCodeRetraceInconsistency: http.StatusInternalServerError,
		ErrCodeInternal:             http.StatusInternalServerError,
	}
	for code, want := range tests {
		if got := HTTPStatus(code); got != want {
			t.Errorf("HTTPStatus(%s) = %d, want %d", code, got, want)
		}
	}
}

func TestValidateJobID(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"3f2a1c9e-8d4b-4f6a-9c1e-2b7d5a8e0f13", false},
		{"", true},
		{"not-a-uuid", true},
		{"../../etc/passwd", true},
	}
	for _, tt := range tests {
		err := ValidateJobID(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateJobID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if err != nil && !Is(err, ErrCodeInvalidInput) {
			t.Errorf("ValidateJobID(%q) returned wrong code: %v", tt.input, err)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	got, err := ValidateFormats("text, JSON,svg,text")
	if err != nil {
		t.Fatalf("ValidateFormats: %v", err)
	}
	want := []string{"text", "json", "svg"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("ValidateFormats() = %v, want %v", got, want)
	}

	for _, bad := range []string{"", " , ", "png", "text,pdf"} {
		if _, err := ValidateFormats(bad); !Is(err, ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormats(%q) error = %v", bad, err)
		}
	}
}

func TestValidateOrderingAndAttempts(t *testing.T) {
	for _, name := range Orderings {
		if err := ValidateOrdering(name); err != nil {
			t.Errorf("ValidateOrdering(%q) = %v", name, err)
		}
	}
	if err := ValidateOrdering("random"); !Is(err, ErrCodeInvalidInput) {
		t.Errorf("ValidateOrdering(random) = %v", err)
	}
	if err := ValidateAttempts(0); err != nil {
		t.Errorf("ValidateAttempts(0) = %v", err)
	}
	if err := ValidateAttempts(-2); !Is(err, ErrCodeInvalidInput) {
		t.Errorf("ValidateAttempts(-2) = %v", err)
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidProblem,
		ErrCodeInvalidFormat,
		ErrCodeOutOfBounds,
		ErrCodeUnroutable,
		ErrCodeRetraceInconsistency,
		ErrCodeNotFound,
		ErrCodeTimeout,
		ErrCodeInternal,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
