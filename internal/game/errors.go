package game

import (
	"errors"
	"fmt"
)

// ValidationError rejects malformed input; battle state is unchanged.
type ValidationError struct{ Reason string }

func (e *ValidationError) Error() string { return "validation: " + e.Reason }

// IllegalStateError rejects an operation the battle's state does not allow.
type IllegalStateError struct{ Reason string }

func (e *IllegalStateError) Error() string { return "illegal state: " + e.Reason }

// NotFoundError reports an unknown identifier.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found: " + e.ID }

// PersistenceError wraps a store failure. The computed result it guarded is
// provisional and must not be delivered.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *PersistenceError) Unwrap() error { return e.Err }

// ErrBattleNotFound is matched by errors.Is against any battle NotFoundError.
var ErrBattleNotFound = errors.New("battle not found")

func (e *NotFoundError) Is(target error) bool {
	return target == ErrBattleNotFound && e.Resource == "battle"
}

func Invalidf(format string, args ...interface{}) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

func Illegalf(format string, args ...interface{}) error {
	return &IllegalStateError{Reason: fmt.Sprintf(format, args...)}
}

func NotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}

// IsValidation, IsIllegalState, IsNotFound and IsPersistence classify errors
// for transport layers.
func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

func IsIllegalState(err error) bool {
	var e *IllegalStateError
	return errors.As(err, &e)
}

func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

func IsPersistence(err error) bool {
	var e *PersistenceError
	return errors.As(err, &e)
}
