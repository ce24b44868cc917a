package weakpool

// Stats is a point-in-time view of a pool.
type Stats struct {
	Groups     int   `json:"groups"`
	Live       int   `json:"live"`
	Slots      int   `json:"slots"`
	Tombstones int   `json:"tombstones"`
	Pending    int   `json:"pending"`   // tokens found queued before the sweep
	Reclaimed  int64 `json:"reclaimed"` // entries swept since creation
}

// Stats sweeps and reports counters. Pending is sampled before the sweep.
func (p *Pool[ID, T, D]) Stats() Stats {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	pending := p.dead.Len()
	p.reclaimDead()

	return Stats{
		Groups:     len(p.groups),
		Live:       p.live,
		Slots:      p.slots,
		Tombstones: p.slots - p.live,
		Pending:    pending,
		Reclaimed:  p.reclaimed,
	}
}
