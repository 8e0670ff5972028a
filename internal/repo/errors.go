package repo

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a data store failure.
type ErrorKind int

const (
	// Unavailable is a transport or connection failure reaching the store.
	Unavailable ErrorKind = iota + 1
	// QueryInvalid is a malformed collection, field or operator reference.
	QueryInvalid
	// MalformedRow is a row whose shape does not match the entity it is decoded into.
	MalformedRow
)

func (k ErrorKind) String() string {
	switch k {
	case Unavailable:
		return "unavailable"
	case QueryInvalid:
		return "query invalid"
	case MalformedRow:
		return "malformed row"
	default:
		return "unknown"
	}
}

var (
	ErrUnavailable  = errors.New("store unavailable")
	ErrQueryInvalid = errors.New("invalid query")
	ErrMalformedRow = errors.New("malformed row")
)

// StoreError is returned by every Store operation that fails.
type StoreError struct {
	Kind       ErrorKind
	Op         string
	Collection Collection
	Err        error
}

func (e *StoreError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %s", e.Op, e.Collection, e.Kind)
	}
	return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Collection, e.Kind, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Is lets callers match on the kind sentinels, e.g. errors.Is(err, ErrUnavailable).
func (e *StoreError) Is(target error) bool {
	switch target {
	case ErrUnavailable:
		return e.Kind == Unavailable
	case ErrQueryInvalid:
		return e.Kind == QueryInvalid
	case ErrMalformedRow:
		return e.Kind == MalformedRow
	}
	return false
}

func invalidQuery(op string, c Collection, format string, args ...any) error {
	return &StoreError{Kind: QueryInvalid, Op: op, Collection: c, Err: fmt.Errorf(format, args...)}
}

func malformed(c Collection, field string, err error) error {
	return &StoreError{Kind: MalformedRow, Op: "decode", Collection: c, Err: fmt.Errorf("field %q: %w", field, err)}
}
