package fixed

// HList is an immutable sequence of elements that may have different
// concrete types behind the shared capability E. Elements are reached only
// through visitation.
type HList[E any] struct {
	elems []E
}

// NewHList creates an HList holding a copy of elems.
func NewHList[E any](elems ...E) HList[E] {
	copied := make([]E, len(elems))
	copy(copied, elems)
	return HList[E]{elems: copied}
}

// Size returns the number of elements.
func (h HList[E]) Size() int {
	return len(h.elems)
}

// Visit calls op once for every element in index order.
func (h HList[E]) Visit(op func(E)) {
	for _, e := range h.elems {
		op(e)
	}
}

// VisitAt calls op once on the element at index i. op is not called when i
// is out of range.
func (h HList[E]) VisitAt(i int, op func(E)) error {
	if i < 0 || i >= len(h.elems) {
		return NewOutOfRangeError(i, len(h.elems))
	}
	op(h.elems[i])
	return nil
}

// VisitErr calls op for every element in index order and stops at the first
// error, which it returns.
func (h HList[E]) VisitErr(op func(int, E) error) error {
	for i, e := range h.elems {
		if err := op(i, e); err != nil {
			return err
		}
	}
	return nil
}
