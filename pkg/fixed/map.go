package fixed

// Entry binds a key to either a scalar value or a list of values.
type Entry[K comparable, V any] struct {
	Key   K
	value V
	list  Sequence[V]
}

// Scalar creates an entry binding key to a single value.
func Scalar[K comparable, V any](key K, value V) Entry[K, V] {
	return Entry[K, V]{Key: key, value: value}
}

// Nested creates an entry binding key to a list. A nil list is treated as
// an empty one.
func Nested[K comparable, V any](key K, list Sequence[V]) Entry[K, V] {
	if list == nil {
		list = NewList[V]()
	}
	return Entry[K, V]{Key: key, list: list}
}

// IsList reports whether the entry holds a list.
func (e Entry[K, V]) IsList() bool {
	return e.list != nil
}

// Map is an immutable set of entries resolved by linear scan. Duplicate keys
// are allowed; lookups always resolve to the first declared entry.
type Map[K comparable, V any] struct {
	entries []Entry[K, V]
}

// NewMap creates a Map from entries in declaration order.
func NewMap[K comparable, V any](entries ...Entry[K, V]) Map[K, V] {
	copied := make([]Entry[K, V], len(entries))
	copy(copied, entries)
	return Map[K, V]{entries: copied}
}

// Size returns the number of entries, duplicates included.
func (m Map[K, V]) Size() int {
	return len(m.entries)
}

func (m Map[K, V]) find(key K) (Entry[K, V], error) {
	for _, e := range m.entries {
		if e.Key == key {
			return e, nil
		}
	}
	return Entry[K, V]{}, NewKeyNotFoundError(key)
}

// Get returns the scalar value bound to key.
func (m Map[K, V]) Get(key K) (V, error) {
	e, err := m.find(key)
	if err != nil {
		var zero V
		return zero, err
	}
	if e.IsList() {
		var zero V
		return zero, &ShapeError{Key: key, WantList: false}
	}
	return e.value, nil
}

// SizeOf returns the length of the list bound to key.
func (m Map[K, V]) SizeOf(key K) (int, error) {
	e, err := m.find(key)
	if err != nil {
		return 0, err
	}
	if !e.IsList() {
		return 0, &ShapeError{Key: key, WantList: true}
	}
	return e.list.Size(), nil
}

// GetAt returns element i of the list bound to key. Index errors come from
// the nested list unchanged.
func (m Map[K, V]) GetAt(key K, i int) (V, error) {
	e, err := m.find(key)
	if err != nil {
		var zero V
		return zero, err
	}
	if !e.IsList() {
		var zero V
		return zero, &ShapeError{Key: key, WantList: true}
	}
	return e.list.At(i)
}

// Has reports whether any entry matches key.
func (m Map[K, V]) Has(key K) bool {
	_, err := m.find(key)
	return err == nil
}

// Keys returns the keys in declaration order, duplicates included.
func (m Map[K, V]) Keys() []K {
	keys := make([]K, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Key
	}
	return keys
}
