package spaced_repetition

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/example/vocabreview/pkg/models"
)

var (
	// ErrInvalidInput is matched by every InvalidInputError
	ErrInvalidInput = errors.New("invalid review input")
	// ErrPersistence is matched by every PersistenceError
	ErrPersistence = errors.New("review record persistence failed")
)

// InvalidInputError reports a caller bug: a rating or state outside its allowed range
type InvalidInputError struct {
	Field string
	Value interface{}
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Value)
}

func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}

// PersistenceError wraps a failed upsert. It is safe to retry after re-reading the record.
type PersistenceError struct {
	Key models.RecordKey
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist review of %s/%s/%s/%s: %v",
		e.Key.UserID, e.Key.Level, e.Key.LessonType, e.Key.ItemID, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrPersistence) match without losing the store error
func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}
