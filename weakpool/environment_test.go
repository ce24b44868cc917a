package weakpool

import (
	"runtime"
	"time"
)

// item is big enough and has pointers, so it never lands in the tiny
// allocator where cleanups are not guaranteed to run.
type item struct {
	N    int
	Name string
}

// collectUntil forces collection cycles until cond holds. Cleanups run on a
// runtime goroutine after the cycle, hence the polling.
func collectUntil(cond func() bool) bool {
	for i := 0; i < 200; i++ {
		runtime.GC()
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return false
}
