package service

import (
	"github.com/fulldump/weakpool/database"
	"github.com/fulldump/weakpool/weakpool"
)

var (
	ErrorPoolNotFound      = database.ErrPoolNotFound
	ErrorPoolAlreadyExists = database.ErrPoolAlreadyExists
	ErrorObjectNotFound    = database.ErrObjectNotFound
	ErrorInvalidGroup      = database.ErrInvalidGroup
)

type Servicer interface { // todo: review naming
	CreatePool(name string, capacity int) (*PoolSummary, error)
	GetPool(name string) (*PoolSummary, error)
	ListPools() ([]*PoolSummary, error)
	DropPool(name string) error

	Add(poolName string, input *AddInput) (*database.Object, error)
	Get(poolName, group string) ([]*Entry, error)
	Find(poolName string, params *FindParams) ([]*Entry, error)
	Stats(poolName string) (*weakpool.Stats, error)

	GetObject(id string) (*database.Object, error)
	Release(id string) (*database.Object, error)
	Collect()
}

type PoolSummary struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Groups   int    `json:"groups"`
	Live     int    `json:"live"`
}

type AddInput struct {
	Group      string         `json:"group"`
	Payload    map[string]any `json:"payload"`
	Decoration map[string]any `json:"decoration"`
}

// Entry is the public view of a live pool entry.
type Entry struct {
	ID         string         `json:"id"`
	Group      string         `json:"group"`
	Payload    map[string]any `json:"payload"`
	Decoration map[string]any `json:"decoration,omitzero"` // absent when added without one, {} when empty
	Pinned     bool           `json:"pinned"`
}

// FindParams selects entries of Group whose decoration matches Filter
// (connor syntax). Limit 0 means no limit.
type FindParams struct {
	Group  string         `json:"group"`
	Filter map[string]any `json:"filter"`
	Skip   int64          `json:"skip"`
	Limit  int64          `json:"limit"`
}
