// Package fixed provides immutable containers whose contents are fully known
// when they are built: an ordered List, a TextList of strings, a
// heterogeneous HList reached through visitation, and a Map whose values are
// either scalars or nested lists.
//
// Every container copies its inputs at construction and exposes read-only
// accessors, so a value may be shared between goroutines without locking.
// Failed queries return typed errors:
//   - *OutOfRangeError for an index outside [0, Size())
//   - *KeyNotFoundError when no Map entry matches a key
//   - *ShapeError when a Map entry holds the other value shape
package fixed
