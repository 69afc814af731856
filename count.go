// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package zudd

import (
	"math/big"
	"sync/atomic"

	"golang.org/x/exp/constraints"
)

// memo is the transient table of a traversal. It maps each visited edge to its
// result. It belongs to a single call and must be released before the call
// returns, whatever the outcome.
type memo[T any] struct {
	entries map[Edge]T
	limit   int           // Maximal number of entries, 0 if no limit
	live    *atomic.Int64 // Entries allocated by all the memos of the manager
}

func newmemo[T any](m *Manager) *memo[T] {
	return &memo[T]{
		entries: make(map[Edge]T),
		limit:   m.memolimit,
		live:    &m.memolive,
	}
}

func (mt *memo[T]) lookup(e Edge) (T, bool) {
	v, ok := mt.entries[e]
	return v, ok
}

// insert fails with ErrOutOfMemory when the table is full. In this case the
// table is left as it was.
func (mt *memo[T]) insert(e Edge, v T) error {
	if mt.limit > 0 && len(mt.entries) >= mt.limit {
		return ErrOutOfMemory
	}
	mt.entries[e] = v
	mt.live.Add(1)
	return nil
}

func (mt *memo[T]) release() {
	mt.live.Add(-int64(len(mt.entries)))
	clear(mt.entries)
	mt.entries = nil
}

// ************************************************************

// traverse computes the aggregate of root: zero for the empty terminal, one for
// the unit terminal and combine(then, else) for a branch. Each distinct edge
// is combined exactly once, whatever the number of paths reaching it. The
// first memo failure stops the walk and is returned as is.
func traverse[T any](m *Manager, root Edge, mt *memo[T], zero, one T, combine func(t, e T) T) (T, error) {
	weight := func(e Edge) T {
		if e.IsTerminal() {
			if e == m.One() {
				return one
			}
			return zero
		}
		v, _ := mt.lookup(e)
		return v
	}
	skip := func(e Edge) bool {
		if e.IsTerminal() {
			return true
		}
		_, ok := mt.lookup(e)
		return ok
	}
	err := m.postorder([]Edge{root}, m.cofactors, skip, func(e Edge) error {
		then, els := m.cofactors(e)
		return mt.insert(e, combine(weight(then), weight(els)))
	})
	if err != nil {
		return zero, err
	}
	return weight(root), nil
}

// count runs traverse with a fresh memo under the read lock. The memo is
// always released, including when the traversal fails.
func count[T any](m *Manager, e Edge, name string, zero, one T, combine func(t, e T) T) (T, error) {
	if m.insession.Load() {
		return zero, m.seterror(ErrSessionOpen, "in call to %s", name)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkedge(e); err != nil {
		return zero, m.seterror(ErrInvalidEdge, "in call to %s: %v", name, err)
	}
	mt := newmemo[T](m)
	defer mt.release()
	res, err := traverse(m, e, mt, zero, one, combine)
	if err != nil {
		memoFailures.WithLabelValues(name).Inc()
		return zero, m.seterror(err, "memo table full after %d entries in call to %s", len(mt.entries), name)
	}
	return res, nil
}

type number interface {
	constraints.Integer | constraints.Float
}

func sum[T number](a, b T) T {
	return a + b
}

// Count returns the number of paths from e to the One terminal. For a ZDD this
// is the number of sets in the family. The addition does not check for
// overflow; use CountDouble or CountBig for large families. Count returns
// CountOutOfMemory, and sets the error status of m, if the memo table cannot
// grow (see Memolimit) or if the operation is not allowed.
func (m *Manager) Count(e Edge) int {
	res, err := count(m, e, "Count", 0, 1, sum[int])
	if err != nil {
		return CountOutOfMemory
	}
	return res
}

// CountDouble is like Count with floating-point arithmetic. On failure it
// returns CountDoubleOutOfMemory. This value is also a valid float, so a
// result equal to it is ambiguous; Errored tells the two cases apart.
func (m *Manager) CountDouble(e Edge) float64 {
	res, err := count(m, e, "CountDouble", 0.0, 1.0, sum[float64])
	if err != nil {
		return CountDoubleOutOfMemory
	}
	return res
}

// CountBig is like Count with arbitrary-precision arithmetic and an explicit
// error result.
func (m *Manager) CountBig(e Edge) (*big.Int, error) {
	add := func(a, b *big.Int) *big.Int {
		return new(big.Int).Add(a, b)
	}
	res, err := count(m, e, "CountBig", big.NewInt(0), big.NewInt(1), add)
	if err != nil {
		return big.NewInt(0), err
	}
	return new(big.Int).Set(res), nil
}
