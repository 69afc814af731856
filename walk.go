// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package zudd

// frame is an entry of the explicit stack used by postorder. A frame is
// expanded once its children have been pushed.
type frame struct {
	e        Edge
	expanded bool
}

// postorder visits the edges reachable from roots, children before parents
// and then-child before else-child. Edges for which skip returns true are not
// entered; skip must return true for terminals and for every edge already
// visited. The walk uses an explicit stack, so its depth is not limited by the
// goroutine stack. It stops at the first error returned by visit.
func (m *Manager) postorder(roots []Edge, children func(Edge) (Edge, Edge), skip func(Edge) bool, visit func(Edge) error) error {
	stack := make([]frame, 0, 2*len(m.subtables)+2)
	for _, r := range roots {
		stack = append(stack[:0], frame{e: r})
		for len(stack) > 0 {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if skip(f.e) {
				continue
			}
			if f.expanded {
				if err := visit(f.e); err != nil {
					return err
				}
				continue
			}
			then, els := children(f.e)
			stack = append(stack, frame{e: f.e, expanded: true}, frame{e: els}, frame{e: then})
		}
	}
	return nil
}

// cofactors returns the children of e, with the polarity of e propagated.
func (m *Manager) cofactors(e Edge) (Edge, Edge) {
	return m.then(e), m.els(e)
}

// regularchildren returns the nodes of the children of e, without polarity.
func (m *Manager) regularchildren(e Edge) (Edge, Edge) {
	n := &m.nodes[e.index()]
	return n.then.Regular(), n.els.Regular()
}
