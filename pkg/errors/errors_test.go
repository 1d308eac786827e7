package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestErrorText(t *testing.T) {
	cause := errors.New("connection refused")
	tests := []struct {
		name string
		err  *Error
		want string
		msg  string
	}{
		{"plain", New(ErrCodeUnknownNode, "no person %q", "p9"), `UNKNOWN_NODE: no person "p9"`, `no person "p9"`},
		{"wrapped", Wrap(ErrCodeNetwork, cause, "fetch sheet %s", "abc"), "NETWORK_ERROR: fetch sheet abc: connection refused", "fetch sheet abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
			if got := UserMessage(tt.err); got != tt.msg {
				t.Errorf("UserMessage() = %q, want %q", got, tt.msg)
			}
		})
	}

	w := Wrap(ErrCodeNetwork, cause, "fetch")
	if !errors.Is(w, cause) || errors.Unwrap(w) != cause {
		t.Error("wrapped error does not unwrap to its cause")
	}
	if got := UserMessage(cause); got != "connection refused" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

func TestCodeLookup(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		kind Kind
	}{
		{"input", New(ErrCodeInvalidRecord, "bad gender"), ErrCodeInvalidRecord, KindInput},
		{"not found", New(ErrCodeSessionNotFound, "s1"), ErrCodeSessionNotFound, KindNotFound},
		{"structure", fmt.Errorf("build: %w", New(ErrCodeCycle, "a -> b -> a")), ErrCodeCycle, KindStructure},
		{"network", New(ErrCodeTimeout, "sheet"), ErrCodeTimeout, KindNetwork},
		{"outermost wins", Wrap(ErrCodeNetwork, New(ErrCodeInvalidInput, "inner"), "outer"), ErrCodeNetwork, KindNetwork},
		{"internal", New(ErrCodeInternal, "boom"), ErrCodeInternal, KindInternal},
		{"plain", errors.New("boom"), "", KindInternal},
		{"nil", nil, "", KindInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.code {
				t.Errorf("GetCode() = %q, want %q", got, tt.code)
			}
			if got := KindOf(tt.err); got != tt.kind {
				t.Errorf("KindOf() = %d, want %d", got, tt.kind)
			}
			if tt.code != "" && !Is(tt.err, tt.code) {
				t.Errorf("Is(%q) = false", tt.code)
			}
			if Is(tt.err, ErrCodeFileNotFound) {
				t.Error("Is(FILE_NOT_FOUND) = true")
			}
		})
	}
}

func TestIsStructural(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"cycle", New(ErrCodeCycle, "a -> b -> a"), true},
		{"self parent", New(ErrCodeSelfParent, "a"), true},
		{"data defect", New(ErrCodeInvalidRecord, "bad gender"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsStructural(tt.err); got != tt.want {
				t.Errorf("IsStructural() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, ExitOK},
		{"interrupted", fmt.Errorf("load: %w", context.Canceled), ExitInterrupted},
		{"cycle", New(ErrCodeCycle, "a -> a"), ExitStructure},
		{"missing file", New(ErrCodeFileNotFound, "family.csv"), ExitFailure},
		{"plain", errors.New("boom"), ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
