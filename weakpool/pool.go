package weakpool

import (
	"fmt"
	"runtime"
	"sync"
	"weak"
)

// DefaultInitialCapacity is the map size hint used by New.
const DefaultInitialCapacity = 1000

// Pool holds weak references to objects of type T grouped by identifiers of
// type ID, each one optionally decorated with a value of type D.
//
// All methods are safe for concurrent use. T must not be a zero-sized type.
// Small pointer-free values such as *int or *[2]byte may be served by the
// runtime's tiny allocator, which can keep them alive long after they are
// unreachable; their entries may never be reclaimed. Give T at least one
// pointer field or make it 16 bytes or larger.
type Pool[ID comparable, T any, D any] struct {
	mutex  *sync.Mutex
	groups map[ID]*group[T, D]
	index  map[*handle[T]]*record[ID, T, D]
	dead   *reclaimQueue[T]

	live      int
	slots     int
	reclaimed int64
}

// New returns an empty pool sized for DefaultInitialCapacity identifiers.
func New[ID comparable, T any, D any]() *Pool[ID, T, D] {
	return NewWithCapacity[ID, T, D](DefaultInitialCapacity)
}

// NewWithCapacity returns an empty pool. initialCapacity is only a hint.
func NewWithCapacity[ID comparable, T any, D any](initialCapacity int) *Pool[ID, T, D] {
	if initialCapacity <= 0 {
		initialCapacity = DefaultInitialCapacity
	}
	return &Pool[ID, T, D]{
		mutex:  &sync.Mutex{},
		groups: make(map[ID]*group[T, D], initialCapacity),
		index:  make(map[*handle[T]]*record[ID, T, D], initialCapacity),
		dead:   newReclaimQueue[T](),
	}
}

// Add registers object under id without decoration.
func (p *Pool[ID, T, D]) Add(id ID, object *T) error {
	var zero D
	return p.add(id, object, zero, false)
}

// AddDecorated registers object under id with the given decoration.
func (p *Pool[ID, T, D]) AddDecorated(id ID, object *T, decoration D) error {
	return p.add(id, object, decoration, true)
}

// AddEntry registers e.Object under id, keeping e.Decorated as given.
func (p *Pool[ID, T, D]) AddEntry(id ID, e Entry[T, D]) error {
	return p.add(id, e.Object, e.Decoration, e.Decorated)
}

// add is a no-op when object is already live in the group: identity, not
// equality, decides. The first decoration wins.
func (p *Pool[ID, T, D]) add(id ID, object *T, decoration D, decorated bool) error {
	if object == nil {
		return ErrNilObject
	}

	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.reclaimDead()

	ptr := weak.Make(object)

	g, exists := p.groups[id]
	if exists {
		for _, s := range g.slots {
			if s != nil && s.handle.ptr == ptr {
				return nil
			}
		}
	}

	h := &handle[T]{ptr: ptr}
	runtime.AddCleanup(object, p.dead.Enqueue, h)

	if !exists {
		g = &group[T, D]{}
		p.groups[id] = g
	}

	g.slots = append(g.slots, &slot[T, D]{
		handle:     h,
		decoration: decoration,
		decorated:  decorated,
	})
	g.live++
	p.live++
	p.slots++

	p.index[h] = &record[ID, T, D]{
		id:       id,
		group:    g,
		position: len(g.slots) - 1,
	}

	return nil
}

// Get returns the live entries of id in add order. Unknown identifiers and
// fully reclaimed ones both return an empty slice.
func (p *Pool[ID, T, D]) Get(id ID) []Entry[T, D] {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.reclaimDead()

	return p.get(id)
}

func (p *Pool[ID, T, D]) get(id ID) []Entry[T, D] {
	g, exists := p.groups[id]
	if !exists {
		return []Entry[T, D]{}
	}

	result := make([]Entry[T, D], 0, g.live)
	for _, s := range g.slots {
		if s == nil {
			continue
		}
		// Collected but its cleanup has not been swept yet.
		object := s.handle.ptr.Value()
		if object == nil {
			continue
		}
		result = append(result, Entry[T, D]{
			Object:     object,
			Decoration: s.decoration,
			Decorated:  s.decorated,
		})
	}

	return result
}

// Objects is Get without decorations.
func (p *Pool[ID, T, D]) Objects(id ID) []*T {
	entries := p.Get(id)
	result := make([]*T, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.Object)
	}
	return result
}

// First returns the first live object of id, or nil.
func (p *Pool[ID, T, D]) First(id ID) *T {
	entries := p.Get(id)
	if len(entries) == 0 {
		return nil
	}
	return entries[0].Object
}

// GroupCount returns the number of identifiers with at least one live entry.
func (p *Pool[ID, T, D]) GroupCount() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.reclaimDead()

	return len(p.groups)
}

// LiveCount returns the number of live entries across all identifiers.
func (p *Pool[ID, T, D]) LiveCount() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.reclaimDead()

	return p.live
}

// Size is LiveCount.
func (p *Pool[ID, T, D]) Size() int {
	return p.LiveCount()
}

// IDs returns the identifiers with at least one live entry, in no particular
// order.
func (p *Pool[ID, T, D]) IDs() []ID {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.reclaimDead()

	ids := make([]ID, 0, len(p.groups))
	for id := range p.groups {
		ids = append(ids, id)
	}
	return ids
}

func (p *Pool[ID, T, D]) String() string {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.reclaimDead()

	return fmt.Sprintf("weakpool[groups=%d live=%d]", len(p.groups), p.live)
}
