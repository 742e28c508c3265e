// Package apperror defines the error kinds shared by the persistence core.
//
// A not-found lookup is never an error; repositories report it through their
// boolean result. Everything that reaches callers as an error carries a Kind.
package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an error by how callers are expected to react to it.
type Kind uint8

const (
	// KindPersistence is a failed statement on an established connection.
	// It is local to the operation and does not invalidate the connection.
	KindPersistence Kind = iota + 1
	// KindConfiguration is a missing or malformed connection setting. Fatal at startup.
	KindConfiguration
	// KindConnection is an unreachable database or rejected credentials. Not retried.
	KindConnection
)

func (k Kind) String() string {
	switch k {
	case KindPersistence:
		return "persistence"
	case KindConfiguration:
		return "configuration"
	case KindConnection:
		return "connection"
	default:
		return "unknown"
	}
}

// Kind sentinels, matched through errors.Is against any *Error of that kind.
var (
	ErrPersistence   = errors.New("persistence error")
	ErrConfiguration = errors.New("configuration error")
	ErrConnection    = errors.New("connection error")
)

// Detail sentinels wrapped inside persistence errors.
var (
	ErrDuplicate  = errors.New("duplicate value violates a unique constraint")
	ErrForeignKey = errors.New("referenced row does not exist or is still referenced")
	ErrNoIdentity = errors.New("store returned no generated key")
)

// Error is an error with a kind and the operation that produced it.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel of e's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrPersistence:
		return e.Kind == KindPersistence
	case ErrConfiguration:
		return e.Kind == KindConfiguration
	case ErrConnection:
		return e.Kind == KindConnection
	}
	return false
}

func Persistence(op string, err error) error {
	return &Error{Kind: KindPersistence, Op: op, Err: err}
}

func Configuration(op string, err error) error {
	return &Error{Kind: KindConfiguration, Op: op, Err: err}
}

func Connection(op string, err error) error {
	return &Error{Kind: KindConnection, Op: op, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
