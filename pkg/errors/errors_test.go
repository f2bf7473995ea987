package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "new",
			err:  New(ErrCodeInvalidGeometry, "width %v leaves no plot area", 40.0),
			want: "INVALID_GEOMETRY: width 40 leaves no plot area",
		},
		{
			name: "wrapped",
			err:  Wrap(ErrCodeNetwork, errors.New("connection refused"), "fetch %s", "states"),
			want: "NETWORK_ERROR: fetch states: connection refused",
		},
		{
			name: "rate limited with retry after",
			err:  &RateLimitedError{RetryAfter: 60},
			want: "rate limited: retry after 60 seconds",
		},
		{
			name: "rate limited",
			err:  &RateLimitedError{},
			want: "rate limited",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := Wrap(ErrCodeInvalidDataset, cause, "decode license-age")

	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false")
	}
	if err.Message != "decode license-age" {
		t.Errorf("Message = %q", err.Message)
	}
}

func TestGetCodeAndIs(t *testing.T) {
	rl := &RateLimitedError{RetryAfter: 5}
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"error", New(ErrCodeInvalidChart, "licensees is not an upset dataset"), ErrCodeInvalidChart},
		{"fmt wrapped", fmt.Errorf("stacked: %w", New(ErrCodeInvalidInput, "no records")), ErrCodeInvalidInput},
		{"outermost wins", Wrap(ErrCodeNetwork, New(ErrCodeInvalidInput, "inner"), "outer"), ErrCodeNetwork},
		{"bare rate limited", rl, ErrCodeRateLimited},
		{"rate limited under network", Wrap(ErrCodeNetwork, rl, "fetch"), ErrCodeNetwork},
		{"plain", errors.New("plain"), ""},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.want {
				t.Errorf("GetCode() = %q, want %q", got, tt.want)
			}
			if tt.want != "" && !Is(tt.err, tt.want) {
				t.Errorf("Is(err, %q) = false", tt.want)
			}
			if Is(tt.err, ErrCodeUnsupported) {
				t.Error("Is(err, UNSUPPORTED) = true")
			}
		})
	}
}

func TestIsNil(t *testing.T) {
	if Is(nil, "") {
		t.Error(`Is(nil, "") = true`)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeNotFound, "dataset %q not found", "states")); got != `dataset "states" not found` {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(errors.New("plain error")); got != "plain error" {
		t.Errorf("UserMessage() = %q", got)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"geometry", New(ErrCodeInvalidGeometry, "width 0"), ExitInvalid},
		{"wrapped chart", fmt.Errorf("run: %w", New(ErrCodeInvalidChart, "x")), ExitInvalid},
		{"dataset", New(ErrCodeNotFound, "states"), ExitNotFound},
		{"file", New(ErrCodeFileNotFound, "a.json"), ExitNotFound},
		{"rate limited", &RateLimitedError{RetryAfter: 5}, ExitNetwork},
		{"timeout", Wrap(ErrCodeTimeout, errors.New("deadline"), "fetch"), ExitNetwork},
		{"plain", errors.New("boom"), ExitFailure},
		{"internal", New(ErrCodeInternal, "bug"), ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
