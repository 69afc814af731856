// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package zudd

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// live returns the number of nodes in the subtables. Unlike Size it does not
// wait for the end of a numbering session.
func live(m *Manager) int {
	res := 0
	for k := range m.subtables {
		res += m.subtables[k].keys
	}
	return res
}

func TestNumberingPostOrder(t *testing.T) {
	m, _ := New(3)
	chain := diamond(t, m, 3)
	size := m.Size()

	s, err := m.BeginNumbering(chain[0])
	require.NoError(t, err)
	require.Equal(t, 4, s.Highest())
	for k, e := range chain {
		id, err := s.ID(e)
		require.NoError(t, err)
		require.Equal(t, 4-k, id)
	}
	id, err := s.ID(m.One())
	require.NoError(t, err)
	require.Equal(t, TerminalID, id)
	id, err = s.ID(m.Zero())
	require.NoError(t, err)
	require.Equal(t, TerminalID, id)

	// detached nodes are no longer in the subtables
	require.Equal(t, size-3, live(m))
	for k, e := range chain {
		require.Equal(t, k, s.Level(e))
	}
	require.NoError(t, s.End())
	require.Equal(t, size, m.Size())
	require.NoError(t, m.Check())

	// restored nodes are found again
	for l := 2; l >= 0; l-- {
		below := m.One()
		if l < 2 {
			below = chain[l+1]
		}
		e, err := m.MakeBranch(l, below, below)
		require.NoError(t, err)
		require.Equal(t, chain[l], e)
	}
	require.Equal(t, size, m.Size())
}

func TestNumberingThenFirst(t *testing.T) {
	m, _ := New(3)
	x1, _ := m.IthVar(1)
	x2, _ := m.IthVar(2)
	root, err := m.MakeBranch(0, x1, x2)
	require.NoError(t, err)

	s, err := m.BeginNumbering(root)
	require.NoError(t, err)
	defer s.End()
	var ids []int
	var visited []Edge
	require.NoError(t, s.Walk(func(id int, e Edge) error {
		ids = append(ids, id)
		visited = append(visited, e)
		return nil
	}))
	require.Equal(t, []int{2, 3, 4}, ids)
	require.Equal(t, []Edge{x1, x2, root}, visited)
	require.Equal(t, x1, s.Then(root))
	require.Equal(t, x2, s.Else(root))
}

func TestNumberingSharedRoots(t *testing.T) {
	m, _ := New(4)
	chain := diamond(t, m, 4)
	x0, _ := m.IthVar(0)
	other, err := m.MakeBranch(0, chain[2], m.Zero())
	require.NoError(t, err)

	s, err := m.BeginNumbering(chain[1], other, chain[1], x0, m.One())
	require.NoError(t, err)
	// chain[1..3], other and x0
	require.Equal(t, TerminalID+5, s.Highest())
	seen := make(map[int]bool)
	require.NoError(t, s.Walk(func(id int, e Edge) error {
		require.False(t, seen[id])
		seen[id] = true
		for _, c := range []Edge{s.Then(e), s.Else(e)} {
			cid, err := s.ID(c)
			require.NoError(t, err)
			require.Less(t, cid, id)
		}
		return nil
	}))
	require.Len(t, seen, 5)
	require.Len(t, s.Roots(), 5)
	require.NoError(t, s.End())
	require.NoError(t, m.Check())
}

func TestNumberingTerminalRoots(t *testing.T) {
	m, _ := New(2)
	s, err := m.BeginNumbering(m.Zero(), m.One())
	require.NoError(t, err)
	require.Equal(t, TerminalID, s.Highest())
	require.NoError(t, s.End())

	s, err = m.BeginNumbering()
	require.NoError(t, err)
	require.Equal(t, TerminalID, s.Highest())
	require.NoError(t, s.End())
	require.NoError(t, m.Check())
}

func TestNumberingProtocol(t *testing.T) {
	m, _ := New(3)
	chain := diamond(t, m, 3)
	x0, _ := m.IthVar(0)

	s, err := m.BeginNumbering(chain[1])
	require.NoError(t, err)

	_, err = m.MakeBranch(0, m.One(), m.One())
	require.ErrorIs(t, err, ErrSessionOpen)
	_, err = m.BeginNumbering(chain[0])
	require.ErrorIs(t, err, ErrSessionOpen)
	_, err = m.GC()
	require.ErrorIs(t, err, ErrSessionOpen)
	_, err = m.Union(chain[0], x0)
	require.ErrorIs(t, err, ErrSessionOpen)
	require.Equal(t, CountOutOfMemory, m.Count(chain[0]))
	_, err = m.CountBig(chain[0])
	require.ErrorIs(t, err, ErrSessionOpen)
	m.Ref(chain[0])
	require.ErrorIs(t, m.Err(), ErrSessionOpen)
	require.ErrorIs(t, m.Check(), ErrSessionOpen)

	// nodes outside the session keep their position
	_, err = s.ID(chain[0])
	require.ErrorIs(t, err, ErrNotNumbered)
	_, err = s.ID(x0)
	require.ErrorIs(t, err, ErrNotNumbered)

	require.NoError(t, s.End())
	require.ErrorIs(t, s.End(), ErrSessionClosed)
	_, err = s.ID(chain[1])
	require.ErrorIs(t, err, ErrSessionClosed)
	require.ErrorIs(t, s.Walk(func(int, Edge) error { return nil }), ErrSessionClosed)
	require.Equal(t, -1, s.Level(chain[1]))
	require.Equal(t, m.Zero(), s.Then(chain[1]))

	m.ClearError()
	_, err = m.MakeBranch(0, m.One(), m.One())
	require.NoError(t, err)
	require.NoError(t, m.Check())
}

func TestNumberingInvalidRoot(t *testing.T) {
	m, _ := New(2)
	x0, _ := m.IthVar(0)
	_, err := m.BeginNumbering(x0, x0.Not())
	require.ErrorIs(t, err, ErrInvalidEdge)
	// the manager is not held after a failed call
	_, err = m.MakeBranch(0, m.One(), m.One())
	require.NoError(t, err)
}

func TestNumberingRandomRoundTrip(t *testing.T) {
	const varnum = 8
	r := rand.New(rand.NewSource(42))
	m, _ := New(varnum)
	for round := 0; round < 20; round++ {
		var roots []Edge
		for k := 0; k < 1+r.Intn(4); k++ {
			var sets [][]int
			for j := 0; j < 1+r.Intn(12); j++ {
				var set []int
				for v := 0; v < varnum; v++ {
					if r.Intn(3) == 0 {
						set = append(set, v)
					}
				}
				sets = append(sets, set)
			}
			f, err := m.Family(sets...)
			require.NoError(t, err)
			roots = append(roots, f)
		}
		counts := make([]int, len(roots))
		for k, f := range roots {
			counts[k] = m.Count(f)
		}
		size := m.Size()

		s, err := m.BeginNumbering(roots...)
		require.NoError(t, err)
		require.Equal(t, TerminalID+size-live(m), s.Highest())
		require.NoError(t, s.End())

		require.Equal(t, size, m.Size())
		require.NoError(t, m.Check())
		for k, f := range roots {
			require.Equal(t, counts[k], m.Count(f))
		}
	}
}

// Readers on other goroutines wait for the end of a session instead of
// reading nodes while they are detached and restored. Run with -race.
func TestNumberingConcurrentReader(t *testing.T) {
	m, _ := New(6)
	x5, _ := m.IthVar(5)
	root, err := m.MakeBranch(0, x5, x5)
	require.NoError(t, err)

	done := make(chan struct{})
	var g errgroup.Group
	g.Go(func() error {
		for {
			select {
			case <-done:
				return nil
			default:
			}
			if then := m.Then(x5); then != m.One() {
				return fmt.Errorf("then-child of %s read as %s", x5, then)
			}
			if l := m.Level(root); l != 0 {
				return fmt.Errorf("level of %s read as %d", root, l)
			}
		}
	})
	for k := 0; k < 500; k++ {
		s, err := m.BeginNumbering(root)
		require.NoError(t, err)
		require.Equal(t, x5, s.Then(root))
		require.Equal(t, 5, s.Level(x5))
		require.NoError(t, s.End())
	}
	close(done)
	require.NoError(t, g.Wait())
	require.False(t, m.Errored())
	require.NoError(t, m.Check())
}
