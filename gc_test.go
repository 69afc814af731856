// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package zudd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGCReclaimsUnreferenced(t *testing.T) {
	m, _ := New(4)
	size := m.Size()
	chain := diamond(t, m, 4)
	require.Equal(t, size+4, m.Size())

	// only the top of the chain has no parent, but the whole chain goes
	n, err := m.GC()
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, size, m.Size())
	require.NoError(t, m.Check())
	require.ErrorIs(t, m.checkedge(chain[0]), ErrInvalidEdge)

	// IthVar nodes are never reclaimed
	for v := 0; v < 4; v++ {
		x, _ := m.IthVar(v)
		require.NoError(t, m.checkedge(x))
	}
}

func TestGCKeepsReferenced(t *testing.T) {
	m, _ := New(4)
	size := m.Size()
	chain := diamond(t, m, 4)
	m.Ref(chain[1])
	n, err := m.GC()
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, size+3, m.Size())
	require.Equal(t, 8, m.Count(chain[1]))
	require.NoError(t, m.Check())

	m.Deref(chain[1])
	n, err = m.GC()
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, size, m.Size())
	require.NoError(t, m.Check())
}

func TestGCReusesSlots(t *testing.T) {
	// 3 fixed slots, 3 variables and room for 3 more nodes
	m, _ := New(3, Maxnodesize(9))
	x2, _ := m.IthVar(2)
	created := 0
	var err error
	for _, level := range []int{1, 0} {
		for _, els := range []Edge{m.One(), x2, m.Zero()} {
			if _, err = m.MakeBranch(level, x2, els); err != nil {
				break
			}
			created++
		}
	}
	require.ErrorIs(t, err, ErrOutOfMemory)
	require.Equal(t, 3, created)
	m.ClearError()

	n, err := m.GC()
	require.NoError(t, err)
	require.Equal(t, 3, n)
	e, err := m.MakeBranch(0, x2, x2)
	require.NoError(t, err)
	require.Equal(t, 2, m.Count(e))
	require.NoError(t, m.Check())
}

func TestGCResetsCache(t *testing.T) {
	m, _ := New(3)
	p, _ := m.Family([]int{0}, []int{1})
	q, _ := m.Family([]int{2})
	u, err := m.Union(p, q)
	require.NoError(t, err)
	require.Equal(t, 3, m.Count(u))

	_, err = m.GC()
	require.NoError(t, err)
	for _, entry := range m.cache.table {
		require.Equal(t, cacheNone, entry.op)
	}
	require.Contains(t, m.Stats(), "# of GC:    1")
}
