package service

import (
	"fmt"

	"github.com/SierraSoftworks/connor"

	"github.com/fulldump/weakpool/database"
	"github.com/fulldump/weakpool/weakpool"
)

type Service struct {
	db *database.Database
}

func NewService(db *database.Database) *Service {
	return &Service{
		db: db,
	}
}

func summary(p *database.Pool) *PoolSummary {
	stats := p.Entries.Stats()
	return &PoolSummary{
		Name:     p.Name,
		Capacity: p.Capacity,
		Groups:   stats.Groups,
		Live:     stats.Live,
	}
}

func (s *Service) CreatePool(name string, capacity int) (*PoolSummary, error) {
	p, err := s.db.CreatePool(name, capacity)
	if err != nil {
		return nil, err
	}
	return summary(p), nil
}

func (s *Service) GetPool(name string) (*PoolSummary, error) {
	p, err := s.db.GetPool(name)
	if err != nil {
		return nil, err
	}
	return summary(p), nil
}

func (s *Service) ListPools() ([]*PoolSummary, error) {
	result := []*PoolSummary{}
	for _, p := range s.db.ListPools() {
		result = append(result, summary(p))
	}
	return result, nil
}

func (s *Service) DropPool(name string) error {
	return s.db.DropPool(name)
}

func (s *Service) Add(poolName string, input *AddInput) (*database.Object, error) {
	return s.db.Pin(poolName, input.Group, input.Payload, input.Decoration)
}

func (s *Service) entries(poolName, group string) ([]weakpool.Entry[database.Object, map[string]any], error) {
	if group == "" {
		return nil, ErrorInvalidGroup
	}
	p, err := s.db.GetPool(poolName)
	if err != nil {
		return nil, err
	}
	return p.Entries.Get(group), nil
}

func (s *Service) newEntry(e weakpool.Entry[database.Object, map[string]any]) *Entry {
	_, pinned := s.db.Pinned(e.Object.ID)
	return &Entry{
		ID:         e.Object.ID,
		Group:      e.Object.Group,
		Payload:    e.Object.Payload,
		Decoration: e.Decoration,
		Pinned:     pinned,
	}
}

func (s *Service) Get(poolName, group string) ([]*Entry, error) {
	entries, err := s.entries(poolName, group)
	if err != nil {
		return nil, err
	}

	result := make([]*Entry, 0, len(entries))
	for _, e := range entries {
		result = append(result, s.newEntry(e))
	}
	return result, nil
}

func (s *Service) Find(poolName string, params *FindParams) ([]*Entry, error) {
	entries, err := s.entries(poolName, params.Group)
	if err != nil {
		return nil, err
	}

	hasFilter := len(params.Filter) > 0

	result := []*Entry{}
	skip := params.Skip
	limit := params.Limit
	for _, e := range entries {

		if params.Limit > 0 && limit == 0 {
			break
		}

		if hasFilter {
			// undecorated entries never match a filter
			if !e.Decorated {
				continue
			}
			match, err := connor.Match(params.Filter, e.Decoration)
			if err != nil {
				return nil, fmt.Errorf("match: %w", err)
			}
			if !match {
				continue
			}
		}

		if skip > 0 {
			skip--
			continue
		}

		limit--
		result = append(result, s.newEntry(e))
	}

	return result, nil
}

func (s *Service) Stats(poolName string) (*weakpool.Stats, error) {
	p, err := s.db.GetPool(poolName)
	if err != nil {
		return nil, err
	}
	stats := p.Entries.Stats()
	return &stats, nil
}

func (s *Service) GetObject(id string) (*database.Object, error) {
	o, found := s.db.Pinned(id)
	if !found {
		return nil, ErrorObjectNotFound
	}
	return o, nil
}

func (s *Service) Release(id string) (*database.Object, error) {
	return s.db.Release(id)
}

func (s *Service) Collect() {
	s.db.Collect()
}
