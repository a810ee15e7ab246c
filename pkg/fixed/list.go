package fixed

import "iter"

// Sequence is the index-to-value contract shared by List and TextList.
type Sequence[T any] interface {
	Size() int
	At(i int) (T, error)
}

// List is an immutable ordered sequence of values of one type.
type List[T any] struct {
	values []T
}

// NewList creates a List holding a copy of values.
func NewList[T any](values ...T) List[T] {
	copied := make([]T, len(values))
	copy(copied, values)
	return List[T]{values: copied}
}

// Size returns the number of elements.
func (l List[T]) Size() int {
	return len(l.values)
}

// At returns the element at index i.
func (l List[T]) At(i int) (T, error) {
	if i < 0 || i >= len(l.values) {
		var zero T
		return zero, NewOutOfRangeError(i, len(l.values))
	}
	return l.values[i], nil
}

// Values returns a copy of the elements.
func (l List[T]) Values() []T {
	out := make([]T, len(l.values))
	copy(out, l.values)
	return out
}

// All ranges over index/value pairs in order.
func (l List[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, v := range l.values {
			if !yield(i, v) {
				return
			}
		}
	}
}
