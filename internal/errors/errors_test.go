package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ParseError, "cannot parse main.py", nil)
	want := "[PARSE_ERROR] cannot parse main.py"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}

	cause := errors.New("unexpected token")
	err = New(ParseError, "cannot parse main.py", cause)
	want = "[PARSE_ERROR] cannot parse main.py: unexpected token"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := New(InternalError, "wrapper", cause)

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap did not return the cause")
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"lens error", New(UnsupportedLanguage, "no backend", nil), UnsupportedLanguage},
		{"wrapped lens error", fmt.Errorf("outer: %w", New(InvalidFilterSyntax, "bad term", nil)), InvalidFilterSyntax},
		{"plain error", errors.New("plain"), InternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := New(ElementNotFound, "no such element", nil)
	if !Is(err, ElementNotFound) {
		t.Error("expected Is to match ElementNotFound")
	}
	if Is(err, ParseError) {
		t.Error("did not expect Is to match ParseError")
	}
}

func TestWithDetails(t *testing.T) {
	err := Newf(InvalidRegexPattern, "bad pattern %q", "[").WithDetails(map[string]string{"pattern": "["})
	if err.Details == nil {
		t.Error("expected details to be set")
	}
	if err.Code != InvalidRegexPattern {
		t.Errorf("expected code INVALID_REGEX_PATTERN, got %s", err.Code)
	}
}
