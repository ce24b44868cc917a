package weakpool

import (
	"runtime"
	"testing"

	"github.com/fulldump/biff"
	"github.com/google/go-cmp/cmp"
)

func TestPool_Scenario(t *testing.T) {

	pool := New[string, item, any]()

	x := &item{N: 1}
	y := &item{N: 2}
	z := &item{N: 3}
	biff.AssertNil(pool.Add("x", x))
	biff.AssertNil(pool.Add("y", y))
	biff.AssertNil(pool.Add("z", z))

	product := func(ids ...string) int {
		result := 1
		for _, id := range ids {
			result *= pool.Get(id)[0].Object.N
		}
		return result
	}

	biff.AssertEqual(product("x", "y", "z"), 6)

	y = nil
	biff.AssertTrue(collectUntil(func() bool {
		return len(pool.Get("y")) == 0
	}))

	biff.AssertEqual(product("x", "z"), 3)
	biff.AssertFalse(pool.Get("x")[0].Decorated)
	biff.AssertNil(pool.Get("x")[0].Decoration)

	runtime.KeepAlive(x)
	runtime.KeepAlive(z)
}

func TestPool_Lifecycle(t *testing.T) {

	pool := New[string, item, *string]()

	info := func(s string) *string { return &s }

	o11, i11 := &item{Name: "hello"}, info("info of o1_1")
	o12, i12 := &item{Name: "world"}, info("info of o1_2")
	o2, i2 := &item{Name: "foo-bar"}, info("info of o2")

	biff.AssertNil(pool.AddDecorated("o1", o11, i11))
	biff.AssertNil(pool.AddDecorated("o1", o12, i12))
	biff.AssertNil(pool.AddDecorated("o2", o2, i2))

	biff.AssertEqual(pool.GroupCount(), 2)
	biff.AssertEqual(pool.LiveCount(), 3)
	biff.AssertEqual(len(pool.Get("o1")), 2)
	biff.AssertEqual(len(pool.Get("o2")), 1)
	biff.AssertEqual(len(pool.Get("bla")), 0)

	biff.AssertTrue(pool.Get("o1")[0].Decoration == i11)
	biff.AssertTrue(pool.Get("o1")[1].Decoration == i12)
	biff.AssertTrue(pool.Get("o2")[0].Decoration == i2)

	o11 = nil
	biff.AssertTrue(collectUntil(func() bool {
		return pool.LiveCount() == 2
	}))
	biff.AssertEqual(pool.GroupCount(), 2)
	biff.AssertEqual(len(pool.Get("o1")), 1)
	biff.AssertEqual(len(pool.Get("o2")), 1)
	biff.AssertTrue(pool.Get("o1")[0].Decoration == i12)
	biff.AssertTrue(pool.Get("o2")[0].Decoration == i2)
	runtime.KeepAlive(o12)
	runtime.KeepAlive(o2)

	o2 = nil
	biff.AssertTrue(collectUntil(func() bool {
		return pool.LiveCount() == 1
	}))
	biff.AssertEqual(pool.GroupCount(), 1)
	biff.AssertEqual(len(pool.Get("o1")), 1)
	biff.AssertEqual(len(pool.Get("o2")), 0)
	biff.AssertTrue(pool.Get("o1")[0].Decoration == i12)
	runtime.KeepAlive(o12)

	o12 = nil
	biff.AssertTrue(collectUntil(func() bool {
		return pool.LiveCount() == 0
	}))
	biff.AssertEqual(pool.GroupCount(), 0)
	biff.AssertEqual(len(pool.Get("o1")), 0)
	biff.AssertEqual(len(pool.Get("o2")), 0)

	stats := pool.Stats()
	biff.AssertEqual(stats.Slots, 0)
	biff.AssertEqual(stats.Reclaimed, int64(3))
}

func TestPool_Order(t *testing.T) {

	pool := New[string, item, int]()

	items := []*item{}
	for i := 0; i < 10; i++ {
		it := &item{N: i}
		items = append(items, it)
		biff.AssertNil(pool.AddDecorated("g", it, i*10))
	}

	want := []Entry[item, int]{}
	for i, it := range items {
		want = append(want, NewEntry(it, i*10))
	}

	if diff := cmp.Diff(want, pool.Get("g")); diff != "" {
		t.Errorf("Get() mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(items, pool.Objects("g")); diff != "" {
		t.Errorf("Objects() mismatch (-want +got):\n%s", diff)
	}
}

func TestPool_OrderSurvivesTombstones(t *testing.T) {

	pool := New[string, item, int]()

	first := &item{N: 1}
	middle := &item{N: 2}
	last := &item{N: 3}
	biff.AssertNil(pool.AddDecorated("g", first, 1))
	biff.AssertNil(pool.AddDecorated("g", middle, 2))
	biff.AssertNil(pool.AddDecorated("g", last, 3))

	middle = nil
	biff.AssertTrue(collectUntil(func() bool {
		return pool.LiveCount() == 2
	}))

	// A slot added after the tombstone goes at the end.
	after := &item{N: 4}
	biff.AssertNil(pool.AddDecorated("g", after, 4))

	decorations := []int{}
	for _, e := range pool.Get("g") {
		decorations = append(decorations, e.Decoration)
	}
	biff.AssertEqual(decorations, []int{1, 3, 4})

	stats := pool.Stats()
	biff.AssertEqual(stats.Slots, 4)
	biff.AssertEqual(stats.Tombstones, 1)

	runtime.KeepAlive(first)
	runtime.KeepAlive(last)
	runtime.KeepAlive(after)
}

func TestPool_Dedup(t *testing.T) {

	biff.Alternative("Dedup", func(a *biff.A) {

		pool := New[string, item, string]()

		a.Alternative("Same object is added once", func(a *biff.A) {
			o := &item{N: 1}
			biff.AssertNil(pool.AddDecorated("id", o, "d1"))
			biff.AssertNil(pool.AddDecorated("id", o, "d2"))

			entries := pool.Get("id")
			biff.AssertEqual(len(entries), 1)
			biff.AssertEqual(entries[0].Decoration, "d1")
			biff.AssertEqual(pool.LiveCount(), 1)
		})

		a.Alternative("Equal objects are kept apart", func(a *biff.A) {
			o1 := &item{N: 1, Name: "same"}
			o2 := &item{N: 1, Name: "same"}
			biff.AssertEqual(*o1, *o2)

			biff.AssertNil(pool.Add("id", o1))
			biff.AssertNil(pool.Add("id", o2))

			entries := pool.Get("id")
			biff.AssertEqual(len(entries), 2)
			biff.AssertTrue(entries[0].Object == o1)
			biff.AssertTrue(entries[1].Object == o2)
		})

		a.Alternative("Same object under two identifiers", func(a *biff.A) {
			o := &item{N: 1}
			biff.AssertNil(pool.Add("a", o))
			biff.AssertNil(pool.Add("b", o))

			biff.AssertEqual(pool.GroupCount(), 2)
			biff.AssertEqual(pool.LiveCount(), 2)
			biff.AssertTrue(pool.First("a") == pool.First("b"))
		})
	})
}

func TestPool_SharedObjectReclaimedEverywhere(t *testing.T) {

	pool := New[string, item, any]()

	o := &item{N: 1}
	biff.AssertNil(pool.Add("a", o))
	biff.AssertNil(pool.Add("b", o))
	biff.AssertEqual(pool.LiveCount(), 2)

	o = nil
	biff.AssertTrue(collectUntil(func() bool {
		return pool.LiveCount() == 0
	}))
	biff.AssertEqual(pool.GroupCount(), 0)
}

func TestPool_NilObject(t *testing.T) {

	pool := New[string, item, string]()

	biff.AssertEqual(pool.Add("id", nil), ErrNilObject)
	biff.AssertEqual(pool.AddDecorated("id", nil, "d"), ErrNilObject)
	biff.AssertEqual(pool.AddEntry("id", Entry[item, string]{}), ErrNilObject)

	biff.AssertEqual(pool.GroupCount(), 0)
	biff.AssertEqual(pool.LiveCount(), 0)
}

func TestPool_Decorations(t *testing.T) {

	biff.Alternative("Decorations", func(a *biff.A) {

		pool := New[string, item, int]()
		o := &item{N: 1}

		a.Alternative("Absent", func(a *biff.A) {
			biff.AssertNil(pool.Add("id", o))
			e := pool.Get("id")[0]
			biff.AssertFalse(e.Decorated)
			biff.AssertEqual(e.Decoration, 0)
		})

		a.Alternative("Present zero value", func(a *biff.A) {
			biff.AssertNil(pool.AddDecorated("id", o, 0))
			e := pool.Get("id")[0]
			biff.AssertTrue(e.Decorated)
			biff.AssertEqual(e.Decoration, 0)
		})

		a.Alternative("From entry", func(a *biff.A) {
			biff.AssertNil(pool.AddEntry("id", NewEntry(o, 7)))
			e := pool.Get("id")[0]
			biff.AssertTrue(e.Decorated)
			biff.AssertEqual(e.Decoration, 7)
			biff.AssertTrue(e.Object == o)
		})
	})
}

func TestPool_Conveniences(t *testing.T) {

	pool := New[string, item, string]()

	biff.AssertNil(pool.First("missing"))
	biff.AssertEqual(len(pool.Objects("missing")), 0)
	biff.AssertNotNil(pool.Get("missing"))

	o1 := &item{N: 1}
	o2 := &item{N: 2}
	biff.AssertNil(pool.AddDecorated("id", o1, "one"))
	biff.AssertNil(pool.AddDecorated("id", o2, "two"))

	biff.AssertTrue(pool.First("id") == o1)
	biff.AssertEqual(pool.Objects("id"), []*item{o1, o2})
	biff.AssertEqual(pool.Size(), 2)
	biff.AssertEqual(pool.IDs(), []string{"id"})
	biff.AssertEqual(pool.String(), "weakpool[groups=1 live=2]")
}

func TestPool_CountConsistency(t *testing.T) {

	pool := NewWithCapacity[int, item, int](16)

	keep := []*item{}
	for i := 0; i < 300; i++ {
		o := &item{N: i}
		biff.AssertNil(pool.AddDecorated(i%7, o, i))
		if i%3 != 0 {
			keep = append(keep, o)
		}
	}

	biff.AssertTrue(collectUntil(func() bool {
		return pool.LiveCount() == len(keep)
	}))

	sum := 0
	nonEmpty := 0
	for id := 0; id < 7; id++ {
		n := len(pool.Get(id))
		sum += n
		if n > 0 {
			nonEmpty++
		}
	}
	biff.AssertEqual(pool.LiveCount(), sum)
	biff.AssertEqual(pool.GroupCount(), nonEmpty)
	biff.AssertEqual(len(pool.IDs()), nonEmpty)

	runtime.KeepAlive(keep)
}

func TestPool_ReaddAfterPrune(t *testing.T) {

	pool := New[string, item, string]()

	o := &item{N: 1}
	biff.AssertNil(pool.AddDecorated("id", o, "old"))

	o = nil
	biff.AssertTrue(collectUntil(func() bool {
		return pool.GroupCount() == 0
	}))

	fresh := &item{N: 2}
	biff.AssertNil(pool.AddDecorated("id", fresh, "new"))

	entries := pool.Get("id")
	biff.AssertEqual(len(entries), 1)
	biff.AssertEqual(entries[0].Decoration, "new")
	biff.AssertEqual(pool.Stats().Slots, 1)

	runtime.KeepAlive(fresh)
}

func TestPool_UnknownTokenIsIgnored(t *testing.T) {

	pool := New[string, item, string]()

	o := &item{N: 1}
	biff.AssertNil(pool.Add("id", o))

	pool.dead.Enqueue(&handle[item]{})

	stats := pool.Stats()
	biff.AssertEqual(stats.Pending, 1)
	biff.AssertEqual(stats.Reclaimed, int64(0))
	biff.AssertEqual(stats.Live, 1)
	biff.AssertEqual(pool.dead.Len(), 0)

	runtime.KeepAlive(o)
}

func TestPool_PointerFreeValue(t *testing.T) {

	type block [4]int64

	pool := New[string, block, any]()

	kept := &block{1}
	dropped := &block{2}
	biff.AssertNil(pool.Add("g", kept))
	biff.AssertNil(pool.Add("g", dropped))

	dropped = nil
	biff.AssertTrue(collectUntil(func() bool {
		return pool.LiveCount() == 1
	}))
	biff.AssertTrue(pool.First("g") == kept)

	runtime.KeepAlive(kept)
}
