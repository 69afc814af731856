// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package zudd

import (
	"github.com/google/uuid"
)

// Numbering is a numbering session. While it is open, the nodes reachable
// from its roots are taken out of the subtables and carry a dense id in their
// scratch field, so that a serializer can refer to nodes by id without any
// side table. The session holds the manager exclusively until End is called:
// every other mutating or traversing operation returns ErrSessionOpen.
//
// A Numbering is meant to be used by a single goroutine. This goroutine must
// use the accessors of the Numbering: the Manager accessors wait for the end
// of the session, like those of any other goroutine.
type Numbering struct {
	m       *Manager
	id      uuid.UUID
	roots   []Edge
	order   []int32 // Numbered nodes, by increasing id
	highest int
	closed  bool
}

// BeginNumbering opens a numbering session on the nodes reachable from roots.
// Nodes are first detached from their subtables (children before parents),
// then given consecutive ids in post-order, then-child first, starting at
// TerminalID + 1. Terminals are not detached; their id is TerminalID.
func (m *Manager) BeginNumbering(roots ...Edge) (*Numbering, error) {
	if m.insession.Load() {
		return nil, m.seterror(ErrSessionOpen, "in call to BeginNumbering")
	}
	m.mu.Lock()
	for _, r := range roots {
		if err := m.checkedge(r); err != nil {
			m.mu.Unlock()
			return nil, m.seterror(ErrInvalidEdge, "in call to BeginNumbering: %v", err)
		}
	}
	m.insession.Store(true)
	s := &Numbering{
		m:     m,
		id:    uuid.New(),
		roots: append([]Edge(nil), roots...),
	}
	m.detach(s.roots)
	s.order = m.number(s.roots)
	s.highest = TerminalID + len(s.order)
	sessionsOpened.Inc()
	sessionNodes.Observe(float64(len(s.order)))
	m.log.Debug("numbering session opened", "session", s.id, "roots", len(roots), "highest", s.highest)
	return s, nil
}

// detach removes every branch node reachable from roots from its subtable.
// Nodes already detached are left alone.
func (m *Manager) detach(roots []Edge) {
	skip := func(e Edge) bool {
		return m.nodes[e.index()].tag != tagLinked
	}
	m.postorder(roots, m.regularchildren, skip, func(e Edge) error {
		n := e.index()
		m.subtables[m.nodes[n].level].remove(m.nodes, n)
		m.nodes[n].tag = tagDetached
		return nil
	})
}

// number gives an id to every detached node reachable from roots and returns
// the numbered nodes by increasing id.
func (m *Manager) number(roots []Edge) []int32 {
	var order []int32
	skip := func(e Edge) bool {
		return m.nodes[e.index()].tag != tagDetached
	}
	m.postorder(roots, m.regularchildren, skip, func(e Edge) error {
		n := e.index()
		order = append(order, n)
		m.nodes[n].scratch = int32(TerminalID + len(order))
		m.nodes[n].tag = tagNumbered
		return nil
	})
	return order
}

// restore puts every numbered or detached node reachable from roots back at
// its sorted position in its chain.
func (m *Manager) restore(roots []Edge) {
	skip := func(e Edge) bool {
		t := m.nodes[e.index()].tag
		return t != tagNumbered && t != tagDetached
	}
	m.postorder(roots, m.regularchildren, skip, func(e Edge) error {
		n := e.index()
		m.subtables[m.nodes[n].level].insert(m.nodes, n)
		return nil
	})
}

// End closes the session. Every detached node is put back in its subtable
// and the manager is released. Calling End twice returns ErrSessionClosed.
func (s *Numbering) End() error {
	if s.closed {
		return s.m.seterror(ErrSessionClosed, "in call to End")
	}
	s.closed = true
	m := s.m
	m.restore(s.roots)
	m.insession.Store(false)
	m.mu.Unlock()
	m.log.Debug("numbering session closed", "session", s.id, "nodes", len(s.order))
	return nil
}

// Highest returns the largest id given in the session, or TerminalID when the
// roots are all terminals.
func (s *Numbering) Highest() int {
	return s.highest
}

// Roots returns the roots of the session.
func (s *Numbering) Roots() []Edge {
	return append([]Edge(nil), s.roots...)
}

// ID returns the id of the node of e. The polarity of e is ignored.
func (s *Numbering) ID(e Edge) (int, error) {
	if s.closed {
		return 0, ErrSessionClosed
	}
	if err := s.m.checkedge(e.Regular()); err != nil {
		return 0, err
	}
	if e.IsTerminal() {
		return TerminalID, nil
	}
	n := &s.m.nodes[e.index()]
	if n.tag != tagNumbered {
		return 0, ErrNotNumbered
	}
	return int(n.scratch), nil
}

// checkedge validates e for the session accessors, which run in the goroutine
// holding the session and read the arena without locking.
func (s *Numbering) checkedge(name string, e Edge) error {
	if s.closed {
		return s.m.seterror(ErrSessionClosed, "in call to %s", name)
	}
	if err := s.m.checkedge(e); err != nil {
		return s.m.seterror(ErrInvalidEdge, "in call to %s: %v", name, err)
	}
	return nil
}

// Level returns the level of the node of e, or -1 on error.
func (s *Numbering) Level(e Edge) int {
	if s.checkedge("Level", e) != nil {
		return -1
	}
	return int(s.m.level(e))
}

// Then returns the then-child of e, as Manager.Then.
func (s *Numbering) Then(e Edge) Edge {
	if s.checkedge("Then", e) != nil {
		return s.m.Zero()
	}
	return s.m.then(e)
}

// Else returns the else-child of e, as Manager.Else.
func (s *Numbering) Else(e Edge) Edge {
	if s.checkedge("Else", e) != nil {
		return s.m.Zero()
	}
	return s.m.els(e)
}

// Walk calls f on each numbered node by increasing id, which is a post-order
// of the roots. It stops at the first error.
func (s *Numbering) Walk(f func(id int, e Edge) error) error {
	if s.closed {
		return ErrSessionClosed
	}
	for k, n := range s.order {
		if err := f(TerminalID+1+k, mkedge(n, false)); err != nil {
			return err
		}
	}
	return nil
}
