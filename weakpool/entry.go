package weakpool

// Entry pairs a tracked object with its decoration.
//
// Decorated is false when the object was added without a decoration, which is
// different from a decoration that happens to be the zero value of D.
type Entry[T any, D any] struct {
	Object     *T
	Decoration D
	Decorated  bool
}

// NewEntry returns a decorated entry.
func NewEntry[T any, D any](object *T, decoration D) Entry[T, D] {
	return Entry[T, D]{
		Object:     object,
		Decoration: decoration,
		Decorated:  true,
	}
}
