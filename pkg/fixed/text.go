package fixed

// TextList is an immutable ordered sequence of strings.
type TextList struct {
	items []string
}

// NewTextList creates a TextList holding a copy of values.
func NewTextList(values ...string) TextList {
	items := make([]string, len(values))
	copy(items, values)
	return TextList{items: items}
}

// Size returns the number of items.
func (l TextList) Size() int {
	return len(l.items)
}

// At scans the items with a running counter and returns the one at
// position i.
func (l TextList) At(i int) (string, error) {
	n := 0
	for _, s := range l.items {
		if n == i {
			return s, nil
		}
		n++
	}
	return "", NewOutOfRangeError(i, len(l.items))
}

// Count returns how many items equal s.
func (l TextList) Count(s string) int {
	count := 0
	for _, item := range l.items {
		if item == s {
			count++
		}
	}
	return count
}

// Values returns a copy of the items.
func (l TextList) Values() []string {
	out := make([]string, len(l.items))
	copy(out, l.items)
	return out
}
