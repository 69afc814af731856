// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package zudd

// gcpoint is a snapshot of the arena taken at the start of a garbage
// collection.
type gcpoint struct {
	nodes     int // Number of slots in the arena
	freenodes int // Number of free slots before the collection
	reclaimed int // Number of nodes returned to the free list
}

// *************************************************************************

// GC reclaims every branch node whose reference count is zero, that is the
// nodes with no parent and no external reference (see Ref). Reclaimed nodes
// decrement the count of their children, which may in turn be reclaimed by
// the same pass. Nodes that survive never move. GC also invalidates the
// operation cache. It returns the number of reclaimed nodes.
//
// GC is never triggered implicitly: results of MakeBranch or of the family
// operations that are not referenced stay valid until the next call to GC.
func (m *Manager) GC() (int, error) {
	if m.insession.Load() {
		return 0, m.seterror(ErrSessionOpen, "in call to GC")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gbc(), nil
}

// gbc sweeps the subtables from the top level down. A node only has parents
// at levels above its own, so when a level is swept all its dead nodes are
// already known.
func (m *Manager) gbc() int {
	point := gcpoint{nodes: len(m.nodes), freenodes: m.freenum}
	m.log.Debug("starting GC", "nodes", point.nodes, "free", point.freenodes)
	m.logTable()
	var dead []int32
	for level := range m.subtables {
		st := &m.subtables[level]
		dead = dead[:0]
		st.each(m.nodes, func(n int32) bool {
			if m.nodes[n].ref == 0 {
				dead = append(dead, n)
			}
			return true
		})
		for _, n := range dead {
			st.remove(m.nodes, n)
			m.decref(m.nodes[n].then)
			m.decref(m.nodes[n].els)
			m.nodes[n] = node{scratch: m.freepos, tag: tagFree}
			m.freepos = n
			m.freenum++
		}
		point.reclaimed += len(dead)
	}
	m.cache.reset()
	m.gcruns++
	m.gchistory = append(m.gchistory, point)
	gcRuns.Inc()
	gcReclaimed.Add(float64(point.reclaimed))
	m.log.Debug("end GC", "reclaimed", point.reclaimed, "free", m.freenum)
	return point.reclaimed
}
