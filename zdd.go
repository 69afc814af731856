// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package zudd

import (
	"slices"
)

// zddop checks the operands of a family operation and takes the write lock.
// It returns the function releasing the lock.
func (m *Manager) zddop(name string, operands ...Edge) (func(), error) {
	if m.kind != ZDD {
		return nil, m.seterror(ErrKind, "%s requires a ZDD manager", name)
	}
	if m.insession.Load() {
		return nil, m.seterror(ErrSessionOpen, "in call to %s", name)
	}
	m.mu.Lock()
	for _, e := range operands {
		if err := m.checkedge(e); err != nil {
			m.mu.Unlock()
			return nil, m.seterror(ErrInvalidEdge, "in call to %s: %v", name, err)
		}
	}
	return m.mu.Unlock, nil
}

func (m *Manager) varlevel(name string, v int) (int32, error) {
	if v < 0 || v >= m.varnum {
		return 0, m.seterror(ErrLevel, "unknown variable %d in call to %s", v, name)
	}
	return m.perm[v], nil
}

// ************************************************************

// Union returns the family of sets in p or in q.
func (m *Manager) Union(p, q Edge) (Edge, error) {
	unlock, err := m.zddop("Union", p, q)
	if err != nil {
		return m.Zero(), err
	}
	defer unlock()
	return m.union(p, q)
}

func (m *Manager) union(p, q Edge) (Edge, error) {
	switch {
	case p == m.Zero():
		return q, nil
	case q == m.Zero(), p == q:
		return p, nil
	}
	if q < p {
		p, q = q, p
	}
	if res, ok := m.cache.lookup(cacheUnion, p, q); ok {
		return res, nil
	}
	ptop, qtop := m.level(p), m.level(q)
	var res Edge
	var err error
	switch {
	case ptop < qtop:
		var e Edge
		if e, err = m.union(m.els(p), q); err == nil {
			res, err = m.makebranch(ptop, m.then(p), e)
		}
	case ptop > qtop:
		var e Edge
		if e, err = m.union(p, m.els(q)); err == nil {
			res, err = m.makebranch(qtop, m.then(q), e)
		}
	default:
		res, err = m.combine(ptop, p, q, m.union)
	}
	if err != nil {
		return m.Zero(), err
	}
	return m.cache.store(cacheUnion, p, q, res), nil
}

// combine applies op on the then-children and on the else-children of two
// nodes at the same level.
func (m *Manager) combine(level int32, p, q Edge, op func(Edge, Edge) (Edge, error)) (Edge, error) {
	t, err := op(m.then(p), m.then(q))
	if err != nil {
		return m.Zero(), err
	}
	e, err := op(m.els(p), m.els(q))
	if err != nil {
		return m.Zero(), err
	}
	return m.makebranch(level, t, e)
}

// Intersect returns the family of sets in both p and q.
func (m *Manager) Intersect(p, q Edge) (Edge, error) {
	unlock, err := m.zddop("Intersect", p, q)
	if err != nil {
		return m.Zero(), err
	}
	defer unlock()
	return m.intersect(p, q)
}

func (m *Manager) intersect(p, q Edge) (Edge, error) {
	switch {
	case p == m.Zero(), q == m.Zero():
		return m.Zero(), nil
	case p == q:
		return p, nil
	}
	if q < p {
		p, q = q, p
	}
	if res, ok := m.cache.lookup(cacheIntersect, p, q); ok {
		return res, nil
	}
	ptop, qtop := m.level(p), m.level(q)
	var res Edge
	var err error
	switch {
	case ptop < qtop:
		res, err = m.intersect(m.els(p), q)
	case ptop > qtop:
		res, err = m.intersect(p, m.els(q))
	default:
		res, err = m.combine(ptop, p, q, m.intersect)
	}
	if err != nil {
		return m.Zero(), err
	}
	return m.cache.store(cacheIntersect, p, q, res), nil
}

// Diff returns the family of sets in p but not in q.
func (m *Manager) Diff(p, q Edge) (Edge, error) {
	unlock, err := m.zddop("Diff", p, q)
	if err != nil {
		return m.Zero(), err
	}
	defer unlock()
	return m.diff(p, q)
}

func (m *Manager) diff(p, q Edge) (Edge, error) {
	switch {
	case p == m.Zero(), p == q:
		return m.Zero(), nil
	case q == m.Zero():
		return p, nil
	}
	if res, ok := m.cache.lookup(cacheDiff, p, q); ok {
		return res, nil
	}
	ptop, qtop := m.level(p), m.level(q)
	var res Edge
	var err error
	switch {
	case ptop < qtop:
		var e Edge
		if e, err = m.diff(m.els(p), q); err == nil {
			res, err = m.makebranch(ptop, m.then(p), e)
		}
	case ptop > qtop:
		res, err = m.diff(p, m.els(q))
	default:
		res, err = m.combine(ptop, p, q, m.diff)
	}
	if err != nil {
		return m.Zero(), err
	}
	return m.cache.store(cacheDiff, p, q, res), nil
}

// ************************************************************

// Change toggles variable v in every set of p.
func (m *Manager) Change(p Edge, v int) (Edge, error) {
	unlock, err := m.zddop("Change", p)
	if err != nil {
		return m.Zero(), err
	}
	defer unlock()
	level, err := m.varlevel("Change", v)
	if err != nil {
		return m.Zero(), err
	}
	return m.change(p, level)
}

func (m *Manager) change(p Edge, level int32) (Edge, error) {
	if p == m.Zero() {
		return p, nil
	}
	if res, ok := m.cache.lookup(cacheChange, p, Edge(level)); ok {
		return res, nil
	}
	var res Edge
	var err error
	switch top := m.level(p); {
	case top > level:
		res, err = m.makebranch(level, p, m.Zero())
	case top == level:
		res, err = m.makebranch(level, m.els(p), m.then(p))
	default:
		var t, e Edge
		if t, err = m.change(m.then(p), level); err != nil {
			break
		}
		if e, err = m.change(m.els(p), level); err != nil {
			break
		}
		res, err = m.makebranch(top, t, e)
	}
	if err != nil {
		return m.Zero(), err
	}
	return m.cache.store(cacheChange, p, Edge(level), res), nil
}

// Subset1 returns the sets of p that contain variable v, with v removed.
func (m *Manager) Subset1(p Edge, v int) (Edge, error) {
	unlock, err := m.zddop("Subset1", p)
	if err != nil {
		return m.Zero(), err
	}
	defer unlock()
	level, err := m.varlevel("Subset1", v)
	if err != nil {
		return m.Zero(), err
	}
	return m.subset(cacheSubset1, p, level)
}

// Subset0 returns the sets of p that do not contain variable v.
func (m *Manager) Subset0(p Edge, v int) (Edge, error) {
	unlock, err := m.zddop("Subset0", p)
	if err != nil {
		return m.Zero(), err
	}
	defer unlock()
	level, err := m.varlevel("Subset0", v)
	if err != nil {
		return m.Zero(), err
	}
	return m.subset(cacheSubset0, p, level)
}

// subset implements Subset1 and Subset0, selected by op.
func (m *Manager) subset(op cacheop, p Edge, level int32) (Edge, error) {
	top := m.level(p)
	switch {
	case top > level:
		if op == cacheSubset1 {
			return m.Zero(), nil
		}
		return p, nil
	case top == level:
		if op == cacheSubset1 {
			return m.then(p), nil
		}
		return m.els(p), nil
	}
	if res, ok := m.cache.lookup(op, p, Edge(level)); ok {
		return res, nil
	}
	t, err := m.subset(op, m.then(p), level)
	if err != nil {
		return m.Zero(), err
	}
	e, err := m.subset(op, m.els(p), level)
	if err != nil {
		return m.Zero(), err
	}
	res, err := m.makebranch(top, t, e)
	if err != nil {
		return m.Zero(), err
	}
	return m.cache.store(op, p, Edge(level), res), nil
}

// ************************************************************

// Single returns the family with the single set vars. Duplicated variables are
// ignored, and Single() returns Base.
func (m *Manager) Single(vars ...int) (Edge, error) {
	unlock, err := m.zddop("Single")
	if err != nil {
		return m.Zero(), err
	}
	defer unlock()
	return m.single(vars)
}

func (m *Manager) single(vars []int) (Edge, error) {
	levels := make([]int32, 0, len(vars))
	for _, v := range vars {
		l, err := m.varlevel("Single", v)
		if err != nil {
			return m.Zero(), err
		}
		levels = append(levels, l)
	}
	slices.Sort(levels)
	levels = slices.Compact(levels)
	res := m.One()
	for k := len(levels) - 1; k >= 0; k-- {
		var err error
		if res, err = m.makebranch(levels[k], res, m.Zero()); err != nil {
			return m.Zero(), err
		}
	}
	return res, nil
}

// Family returns the family made of the given sets of variables.
func (m *Manager) Family(sets ...[]int) (Edge, error) {
	unlock, err := m.zddop("Family")
	if err != nil {
		return m.Zero(), err
	}
	defer unlock()
	res := m.Zero()
	for _, vars := range sets {
		s, err := m.single(vars)
		if err != nil {
			return m.Zero(), err
		}
		if res, err = m.union(res, s); err != nil {
			return m.Zero(), err
		}
	}
	return res, nil
}

// Allsets iterates through all the sets of the family p. The function f
// receives the variables of each set, in level order. The slice is reused
// between calls and must be copied if retained. Allsets stops at the first
// error returned by f.
//
// The following is an example of a callback handler that collects the sets
// with a single element.
//
//	var singletons []int
//	m.Allsets(p, func(vars []int) error {
//		if len(vars) == 1 {
//			singletons = append(singletons, vars[0])
//		}
//		return nil
//	})
func (m *Manager) Allsets(p Edge, f func([]int) error) error {
	if m.kind != ZDD {
		return m.seterror(ErrKind, "Allsets requires a ZDD manager")
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkedge(p); err != nil {
		return m.seterror(ErrInvalidEdge, "in call to Allsets: %v", err)
	}
	return m.allsets(p, make([]int, 0, m.varnum), f)
}

func (m *Manager) allsets(p Edge, set []int, f func([]int) error) error {
	switch p {
	case m.Zero():
		return nil
	case m.One():
		return f(set)
	}
	if err := m.allsets(m.els(p), set, f); err != nil {
		return err
	}
	v := int(m.invperm[m.level(p)])
	return m.allsets(m.then(p), append(set, v), f)
}
