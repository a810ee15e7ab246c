package fixed

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange matches every *OutOfRangeError.
	ErrOutOfRange = errors.New("index out of range")
	// ErrKeyNotFound matches every *KeyNotFoundError.
	ErrKeyNotFound = errors.New("key not found")
	// ErrNotList matches a *ShapeError raised by a list lookup on a scalar entry.
	ErrNotList = errors.New("value is not a list")
	// ErrNotScalar matches a *ShapeError raised by a scalar lookup on a list entry.
	ErrNotScalar = errors.New("value is a list")
)

// OutOfRangeError indicates an index outside [0, Size).
type OutOfRangeError struct {
	Index int
	Size  int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("index %d out of range [0, %d)", e.Index, e.Size)
}

func (e *OutOfRangeError) Is(target error) bool { return target == ErrOutOfRange }

// NewOutOfRangeError creates an OutOfRangeError for index in a container of size.
func NewOutOfRangeError(index, size int) *OutOfRangeError {
	return &OutOfRangeError{Index: index, Size: size}
}

// KeyNotFoundError indicates that no map entry matched Key.
type KeyNotFoundError struct {
	Key any
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("key not found: %v", e.Key)
}

func (e *KeyNotFoundError) Is(target error) bool { return target == ErrKeyNotFound }

// NewKeyNotFoundError creates a KeyNotFoundError for key.
func NewKeyNotFoundError(key any) *KeyNotFoundError {
	return &KeyNotFoundError{Key: key}
}

// ShapeError indicates that the entry bound to Key holds a scalar where a
// list was requested (WantList) or a list where a scalar was requested.
type ShapeError struct {
	Key      any
	WantList bool
}

func (e *ShapeError) Error() string {
	if e.WantList {
		return fmt.Sprintf("value at key %v is not a list", e.Key)
	}
	return fmt.Sprintf("value at key %v is a list", e.Key)
}

func (e *ShapeError) Is(target error) bool {
	if e.WantList {
		return target == ErrNotList
	}
	return target == ErrNotScalar
}
