// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package zudd

//go:generate mockgen -source emit.go -destination emit_mocks.go -package zudd

// Child describes an edge from a node given to an Emitter. Children are
// always emitted before their parents.
type Child struct {
	ID         int  // Session id of the target; TerminalID for a terminal
	Complement bool // The edge is complemented (BDD only)
	Terminal   bool // The target is a terminal
	One        bool // For a terminal, the edge denotes One
}

// Emitter receives the nodes of a numbering session in post-order. It is the
// extension point used by the printers and by external serializers.
type Emitter interface {
	// Node is called once per branch node, by increasing id.
	Node(id, level, variable int, then, els Child) error
}

func (s *Numbering) child(e Edge) Child {
	if e.IsTerminal() {
		return Child{
			ID:         TerminalID,
			Complement: e.IsComplement(),
			Terminal:   true,
			One:        e == s.m.One(),
		}
	}
	return Child{
		ID:         int(s.m.nodes[e.index()].scratch),
		Complement: e.IsComplement(),
	}
}

// Emit opens a numbering session on roots, sends every node to em and closes
// the session, even if em fails. It returns the highest id and the roots as
// seen from the session.
func (m *Manager) Emit(em Emitter, roots ...Edge) (highest int, res []Child, err error) {
	s, err := m.BeginNumbering(roots...)
	if err != nil {
		return 0, nil, err
	}
	defer func() {
		if cerr := s.End(); err == nil {
			err = cerr
		}
	}()
	err = s.Walk(func(id int, e Edge) error {
		n := &m.nodes[e.index()]
		return em.Node(id, int(n.level), int(m.invperm[n.level]), s.child(n.then), s.child(n.els))
	})
	if err != nil {
		return 0, nil, err
	}
	res = make([]Child, len(roots))
	for k, r := range roots {
		res[k] = s.child(r)
	}
	return s.Highest(), res, nil
}
