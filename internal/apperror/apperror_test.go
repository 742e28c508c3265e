package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindMatching(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name     string
		err      error
		sentinel error
		kind     Kind
	}{
		{"persistence", Persistence("repo.Create", cause), ErrPersistence, KindPersistence},
		{"configuration", Configuration("config.Validate", cause), ErrConfiguration, KindConfiguration},
		{"connection", Connection("database.Pool", cause), ErrConnection, KindConnection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("outer: %w", tt.err)
			if !errors.Is(wrapped, tt.sentinel) {
				t.Fatalf("errors.Is(%v, %v) = false", wrapped, tt.sentinel)
			}
			if !errors.Is(wrapped, cause) {
				t.Fatal("cause lost in chain")
			}
			if got := KindOf(wrapped); got != tt.kind {
				t.Fatalf("KindOf = %s, want %s", got, tt.kind)
			}
			for _, other := range []error{ErrPersistence, ErrConfiguration, ErrConnection} {
				if other != tt.sentinel && errors.Is(tt.err, other) {
					t.Fatalf("%v unexpectedly matches %v", tt.err, other)
				}
			}
		})
	}
}

func TestDetailSentinelsSurviveWrapping(t *testing.T) {
	err := Persistence("students.Create", fmt.Errorf("%w: students_email_key", ErrDuplicate))
	if !errors.Is(err, ErrDuplicate) {
		t.Fatal("ErrDuplicate not found")
	}
	if !errors.Is(err, ErrPersistence) {
		t.Fatal("ErrPersistence not found")
	}
	if KindOf(errors.New("plain")) != 0 {
		t.Fatal("plain error must have no kind")
	}
}

func TestErrorString(t *testing.T) {
	err := Persistence("courses.Update", errors.New("timeout"))
	if got, want := err.Error(), "courses.Update: persistence: timeout"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}
