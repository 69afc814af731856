// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package zudd

import (
	"fmt"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
)

// Manager owns the nodes of a family of decision diagrams. It keeps one
// subtable per level and guarantees that no two live nodes at the same level
// have the same pair of children, so that every function (or family of sets)
// has a single representative.
//
// A Manager has a single-writer discipline. MakeBranch, the family operations,
// GC and numbering sessions are exclusive; counting and the accessors can run
// concurrently with each other. An accessor called while a numbering session
// is open waits until the session ends.
type Manager struct {
	mu        sync.RWMutex
	insession atomic.Bool  // Set while a numbering session holds mu
	nodes     []node       // Arena; terminals at 0 and 1, sentinel at 2
	subtables []subtable   // Unique table of each level
	perm      []int32      // Level of each variable
	invperm   []int32      // Variable at each level
	varset    []Edge       // Result of IthVar for each variable
	freepos   int32        // First free slot, 0 if none
	freenum   int          // Number of free slots
	produced  int          // Total number of nodes ever produced
	memolive  atomic.Int64 // Memo entries currently allocated by traversals
	cache     opcache      // Cache for the family operations
	gcruns    int          // Number of garbage collections
	gchistory []gcpoint    // Snapshot of the arena at each GC
	log       *slog.Logger
	errmu     sync.Mutex
	error     // Sticky error status, guarded by errmu
	configs   // Configurable parameters
}

// New returns a Manager with varnum variables. Options are configuration
// functions such as Nodesize, Maxnodesize, Memolimit or WithKind.
//
// The initial arena always holds the terminals and the nodes returned by
// IthVar, so a smaller Nodesize is raised to this minimum. With a Maxnodesize
// the initial arena is clamped to the limit, and New returns ErrOutOfMemory
// when the limit is below the minimum.
func New(varnum int, options ...Option) (*Manager, error) {
	if varnum < 0 || varnum > _MAXVAR {
		return nil, fmt.Errorf("%w: bad number of variables (%d)", ErrLevel, varnum)
	}
	c := makeconfigs(varnum)
	for _, f := range options {
		f(c)
	}
	minsize := varnum + int(firstIndex)
	c.nodesize = max(c.nodesize, minsize)
	if c.maxnodesize > 0 {
		if c.maxnodesize < minsize {
			return nil, fmt.Errorf("%w: Maxnodesize (%d) below the %d slots needed for %d variables", ErrOutOfMemory, c.maxnodesize, minsize, varnum)
		}
		c.nodesize = min(c.nodesize, c.maxnodesize)
	}
	m := &Manager{configs: *c, log: c.logger}
	if err := m.setorder(c.order); err != nil {
		return nil, err
	}
	m.nodes = make([]node, c.nodesize)
	for k := range m.nodes {
		m.nodes[k] = node{scratch: int32(k + 1), tag: tagFree}
	}
	m.nodes[len(m.nodes)-1].scratch = 0
	level := int32(varnum)
	m.nodes[zeroIndex] = node{level: level, then: mkedge(zeroIndex, false), els: mkedge(zeroIndex, false), ref: _MAXREFCOUNT, tag: tagTerminal}
	m.nodes[oneIndex] = node{level: level, then: mkedge(oneIndex, false), els: mkedge(oneIndex, false), ref: _MAXREFCOUNT, tag: tagTerminal}
	m.nodes[sentinelIndex] = node{level: level, ref: _MAXREFCOUNT, tag: tagTerminal}
	m.freepos = firstIndex
	m.freenum = len(m.nodes) - int(firstIndex)
	if m.freenum == 0 {
		m.freepos = 0
	}
	m.subtables = make([]subtable, varnum)
	for k := range m.subtables {
		m.subtables[k] = makesubtable(_MINBUCKETS)
	}
	m.cache.init(c.cachesize)
	m.varset = make([]Edge, varnum)
	for v := 0; v < varnum; v++ {
		e, err := m.makebranch(m.perm[v], m.One(), m.Zero())
		if err != nil {
			return nil, fmt.Errorf("cannot allocate variable %d: %w", v, err)
		}
		m.nodes[e.index()].ref = _MAXREFCOUNT
		m.varset[v] = e
	}
	m.log.Debug("manager created", "varnum", varnum, "kind", c.kind, "nodesize", len(m.nodes))
	return m, nil
}

func (m *Manager) setorder(order []int) error {
	m.perm = make([]int32, m.varnum)
	m.invperm = make([]int32, m.varnum)
	if order == nil {
		for v := range m.perm {
			m.perm[v] = int32(v)
			m.invperm[v] = int32(v)
		}
		return nil
	}
	if len(order) != m.varnum {
		return fmt.Errorf("%w: order has %d entries for %d variables", ErrLevel, len(order), m.varnum)
	}
	for k := range m.invperm {
		m.invperm[k] = -1
	}
	for v, l := range order {
		if l < 0 || l >= m.varnum || m.invperm[l] != -1 {
			return fmt.Errorf("%w: order is not a permutation (variable %d at level %d)", ErrLevel, v, l)
		}
		m.perm[v] = int32(l)
		m.invperm[l] = int32(v)
	}
	return nil
}

// ************************************************************

// Varnum returns the number of variables.
func (m *Manager) Varnum() int {
	return m.varnum
}

// Kind returns the reduction rule of the manager.
func (m *Manager) Kind() Kind {
	return m.kind
}

// Zero returns the empty family (ZDD) or the constant false (BDD).
func (m *Manager) Zero() Edge {
	if m.kind == BDD {
		return mkedge(oneIndex, true)
	}
	return mkedge(zeroIndex, false)
}

// One returns the constant true (BDD) or the base family {∅} (ZDD).
func (m *Manager) One() Edge {
	return mkedge(oneIndex, false)
}

// Base is a synonym for One, closer to the vocabulary of families of sets.
func (m *Manager) Base() Edge {
	return m.One()
}

// IthVar returns the node of variable i with a then-child One and an
// else-child Zero. For a ZDD this is the family {{i}}; for a BDD it is the
// function x_i. The result does not need to be referenced.
func (m *Manager) IthVar(i int) (Edge, error) {
	if i < 0 || i >= m.varnum {
		return m.Zero(), m.seterror(ErrLevel, "unknown variable %d in call to IthVar", i)
	}
	return m.varset[i], nil
}

func (m *Manager) checkedge(e Edge) error {
	n := e.index()
	if int(n) >= len(m.nodes) || n == sentinelIndex {
		return fmt.Errorf("%w: %s", ErrInvalidEdge, e)
	}
	if m.kind == ZDD && e.IsComplement() {
		return fmt.Errorf("%w: %s", ErrComplement, e)
	}
	if m.kind == BDD && n == zeroIndex {
		return fmt.Errorf("%w: %s (use Zero())", ErrInvalidEdge, e)
	}
	if m.nodes[n].tag == tagFree {
		return fmt.Errorf("%w: %s is not a live node", ErrInvalidEdge, e)
	}
	return nil
}

// Level returns the level of the node of e; terminals are at level Varnum.
func (m *Manager) Level(e Edge) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkedge(e); err != nil {
		m.seterror(ErrInvalidEdge, "in call to Level: %v", err)
		return -1
	}
	return int(m.nodes[e.index()].level)
}

// Var returns the variable of the node of e, or -1 for a terminal.
func (m *Manager) Var(e Edge) int {
	l := m.Level(e)
	if l < 0 || l >= m.varnum {
		return -1
	}
	return int(m.invperm[l])
}

// Then returns the then-child (high branch) of e. The polarity of e is
// propagated to the child. A terminal is its own child.
func (m *Manager) Then(e Edge) Edge {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkedge(e); err != nil {
		m.seterror(ErrInvalidEdge, "in call to Then: %v", err)
		return m.Zero()
	}
	return m.then(e)
}

// Else returns the else-child (low branch) of e. The polarity of e is
// propagated to the child. A terminal is its own child.
func (m *Manager) Else(e Edge) Edge {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkedge(e); err != nil {
		m.seterror(ErrInvalidEdge, "in call to Else: %v", err)
		return m.Zero()
	}
	return m.els(e)
}

func (m *Manager) then(e Edge) Edge {
	return m.nodes[e.index()].then ^ (e & 1)
}

func (m *Manager) els(e Edge) Edge {
	return m.nodes[e.index()].els ^ (e & 1)
}

func (m *Manager) level(e Edge) int32 {
	return m.nodes[e.index()].level
}

// Size returns the number of live branch nodes in the subtables.
func (m *Manager) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := 0
	for k := range m.subtables {
		res += m.subtables[k].keys
	}
	return res
}

// ************************************************************

// MakeBranch returns the unique node at level with children then and els,
// creating it if needed. The kind's reduction rule is applied first, so the
// result may be one of the children. For a BDD, a complemented then-child is
// normalised by complementing the result. The new node starts with a
// reference count of zero; use Ref to protect it from GC.
//
// MakeBranch returns ErrOutOfMemory, and leaves the subtables unchanged, if
// the arena cannot grow. It returns ErrSessionOpen during a numbering session.
func (m *Manager) MakeBranch(level int, then, els Edge) (Edge, error) {
	if m.insession.Load() {
		return m.Zero(), m.seterror(ErrSessionOpen, "in call to MakeBranch")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if level < 0 || level >= m.varnum {
		return m.Zero(), m.seterror(ErrLevel, "level %d in call to MakeBranch", level)
	}
	for _, e := range [2]Edge{then, els} {
		if err := m.checkedge(e); err != nil {
			return m.Zero(), m.seterror(ErrInvalidEdge, "in call to MakeBranch: %v", err)
		}
		if m.level(e) <= int32(level) {
			return m.Zero(), m.seterror(ErrOrder, "child %s at level %d under level %d", e, m.level(e), level)
		}
	}
	return m.makebranch(int32(level), then, els)
}

// makebranch is MakeBranch without locking and argument checks.
func (m *Manager) makebranch(level int32, then, els Edge) (Edge, error) {
	switch m.kind {
	case ZDD:
		if then == m.Zero() {
			return els, nil
		}
	case BDD:
		if then == els {
			return then, nil
		}
		if then.IsComplement() {
			res, err := m.makebranch(level, then.Not(), els.Not())
			return res.Not(), err
		}
	}
	if n, ok := m.subtables[level].lookup(m.nodes, then, els); ok {
		uniqueLookups.WithLabelValues("hit").Inc()
		return mkedge(n, false), nil
	}
	uniqueLookups.WithLabelValues("miss").Inc()
	// allocation may reallocate the arena, so nothing is linked before it
	// succeeds
	n, err := m.allocnode()
	if err != nil {
		return m.Zero(), err
	}
	m.nodes[n] = node{level: level, then: then, els: els}
	m.incref(then)
	m.incref(els)
	st := &m.subtables[level]
	st.insert(m.nodes, n)
	if st.grow(m.nodes) {
		m.log.Debug("subtable resized", "level", level, "buckets", len(st.nodelist), "keys", st.keys)
	}
	m.produced++
	nodesProduced.Inc()
	return mkedge(n, false), nil
}

func (m *Manager) allocnode() (int32, error) {
	if m.freepos == 0 {
		if err := m.noderesize(); err != nil {
			return -1, m.seterror(ErrOutOfMemory, "cannot grow node arena beyond %d slots", len(m.nodes))
		}
	}
	n := m.freepos
	m.freepos = m.nodes[n].scratch
	m.freenum--
	return n, nil
}

// noderesize grows the arena. Nodes never move: their index is their identity.
func (m *Manager) noderesize() error {
	oldsize := len(m.nodes)
	if m.maxnodesize > 0 && oldsize >= m.maxnodesize {
		return ErrOutOfMemory
	}
	nodesize := oldsize << 1
	if oldsize > (math.MaxInt32 >> 1) {
		nodesize = math.MaxInt32
	}
	if m.maxnodeincrease > 0 && nodesize > oldsize+m.maxnodeincrease {
		nodesize = oldsize + m.maxnodeincrease
	}
	if m.maxnodesize > 0 && nodesize > m.maxnodesize {
		nodesize = m.maxnodesize
	}
	if nodesize <= oldsize {
		return ErrOutOfMemory
	}
	m.nodes = append(m.nodes, make([]node, nodesize-oldsize)...)
	for n := oldsize; n < nodesize; n++ {
		m.nodes[n] = node{scratch: int32(n + 1), tag: tagFree}
	}
	m.nodes[nodesize-1].scratch = m.freepos
	m.freepos = int32(oldsize)
	m.freenum += nodesize - oldsize
	arenaResizes.Inc()
	m.log.Debug("arena resized", "from", oldsize, "to", nodesize)
	return nil
}

// ************************************************************

func (m *Manager) incref(e Edge) {
	if n := &m.nodes[e.index()]; n.ref < _MAXREFCOUNT {
		n.ref++
	}
}

func (m *Manager) decref(e Edge) {
	if n := &m.nodes[e.index()]; n.ref > 0 && n.ref < _MAXREFCOUNT {
		n.ref--
	}
}

// Ref increases the reference count of the node of e and returns e so that
// calls can be chained. Referenced nodes survive GC.
func (m *Manager) Ref(e Edge) Edge {
	if m.insession.Load() {
		m.seterror(ErrSessionOpen, "in call to Ref")
		return e
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkedge(e); err != nil {
		m.seterror(ErrInvalidEdge, "in call to Ref: %v", err)
		return e
	}
	m.incref(e)
	return e
}

// Deref decreases the reference count of the node of e and returns e. A node
// whose count drops to zero is reclaimed by the next GC.
func (m *Manager) Deref(e Edge) Edge {
	if m.insession.Load() {
		m.seterror(ErrSessionOpen, "in call to Deref")
		return e
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkedge(e); err != nil {
		m.seterror(ErrInvalidEdge, "in call to Deref: %v", err)
		return e
	}
	m.decref(e)
	return e
}
