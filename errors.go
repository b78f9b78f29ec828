package styles

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrIndexOutOfRange reports a table access outside 0..Size()-1.
	ErrIndexOutOfRange = errors.New("styles: index out of range")
	// ErrPropertyUnresolved reports that no chain level defines a property and
	// no default was supplied.
	ErrPropertyUnresolved = errors.New("styles: property unresolved")
	// ErrMalformedStyleRecord reports a record whose structural key cannot be
	// computed.
	ErrMalformedStyleRecord = errors.New("styles: malformed style record")
)

// IndexError captures the table and bounds involved in a failed lookup.
type IndexError struct {
	Table string
	Index int
	Size  int
}

func (e *IndexError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("styles: %s index %d out of range [0,%d)", tableLabel(e.Table), e.Index, e.Size)
}

// Is reports ErrIndexOutOfRange so callers can match on the sentinel.
func (e *IndexError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}

// ResolveError captures the chain that failed to define a property.
type ResolveError struct {
	Property string
	Levels   []string
}

func (e *ResolveError) Error() string {
	if e == nil {
		return "<nil>"
	}
	property := e.Property
	if property == "" {
		property = "<unnamed>"
	}
	return fmt.Sprintf("styles: property %q unresolved after probing [%s]", property, strings.Join(e.Levels, ", "))
}

func (e *ResolveError) Unwrap() error {
	return ErrPropertyUnresolved
}

// RecordError wraps the reason a record's structural key could not be built.
type RecordError struct {
	Table string
	Kind  string
	Err   error
}

func (e *RecordError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Table == "" {
		return fmt.Sprintf("styles: malformed %s record: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("styles: malformed %s record for %s: %v", e.Kind, e.Table, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *RecordError) Unwrap() []error {
	if e == nil {
		return nil
	}
	if e.Err == nil {
		return []error{ErrMalformedStyleRecord}
	}
	return []error{ErrMalformedStyleRecord, e.Err}
}

func malformed(kind string, format string, args ...any) error {
	return &RecordError{Kind: kind, Err: fmt.Errorf(format, args...)}
}

func withTable(err error, table string) error {
	var recErr *RecordError
	if errors.As(err, &recErr) && recErr.Table == "" {
		recErr.Table = table
	}
	return err
}

func tableLabel(table string) string {
	if table == "" {
		return "table"
	}
	return table
}
