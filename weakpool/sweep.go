package weakpool

// reclaimDead drains the reclamation queue. Must be called with the mutex held.
//
// A handle without a record is skipped: it belongs to a group that was
// already pruned or was delivered twice.
func (p *Pool[ID, T, D]) reclaimDead() {
	for {
		h, ok := p.dead.Dequeue()
		if !ok {
			return
		}
		r, exists := p.index[h]
		if !exists {
			continue
		}
		delete(p.index, h)
		p.reclaimed++

		g := r.group
		g.slots[r.position] = nil
		g.live--
		p.live--

		if g.live > 0 {
			continue
		}

		p.slots -= len(g.slots)
		if p.groups[r.id] == g {
			delete(p.groups, r.id)
		}
	}
}
