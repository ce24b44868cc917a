package weakpool

import "weak"

// handle is the unit registered with the reclamation queue. weak.Make returns
// equal pointers for the same object, so the reverse index is keyed by the
// address of the handle instead.
type handle[T any] struct {
	ptr weak.Pointer[T]
}

type slot[T any, D any] struct {
	handle     *handle[T]
	decoration D
	decorated  bool
}

// group keeps its slots in add order. A reclaimed slot is set to nil in place
// so positions stored in the reverse index stay valid.
type group[T any, D any] struct {
	slots []*slot[T, D]
	live  int
}

// record locates a live slot: index[h] points at group.slots[position].
type record[ID comparable, T any, D any] struct {
	id       ID
	group    *group[T, D]
	position int
}
