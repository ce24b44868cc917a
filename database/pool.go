package database

import (
	"time"

	"github.com/fulldump/weakpool/weakpool"
)

// Pool is a named weak pool of Objects decorated with JSON documents.
type Pool struct {
	Name      string
	Capacity  int
	CreatedAt time.Time
	Entries   *weakpool.Pool[string, Object, map[string]any]
}

func newPool(name string, capacity int) *Pool {
	return &Pool{
		Name:      name,
		Capacity:  capacity,
		CreatedAt: time.Now().UTC(),
		Entries:   weakpool.NewWithCapacity[string, Object, map[string]any](capacity),
	}
}
