// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package zudd

import (
	"math/big"
	"testing"
)

// nqueens computes solutions for the N-Queen chess problem and returns the
// family of all solutions. It uses NxN variables corresponding to the squares
// in the chess board like:
//
//	0  1  2  3
//	4  5  6  7
//	8  9 10 11
//	12 13 14 15
//
// The family is built row by row: a queen is added at square (i, j) to every
// partial solution of the previous rows that has no queen in the same column
// or on the same diagonals.
func nqueens(N int) (*Manager, Edge, error) {
	m, err := New(N*N, Nodesize(N*N*256), Cachesize(N*N*64))
	if err != nil {
		return nil, 0, err
	}
	X := func(i, j int) int {
		return i*N + j
	}
	queens := m.Base()
	for i := 0; i < N; i++ {
		row := m.Zero()
		for j := 0; j < N; j++ {
			s := queens
			for k := 0; k < i; k++ {
				for _, c := range []int{j, j - (i - k), j + (i - k)} {
					if c < 0 || c >= N {
						continue
					}
					if s, err = m.Subset0(s, X(k, c)); err != nil {
						return nil, m.Zero(), err
					}
				}
			}
			if s, err = m.Change(s, X(i, j)); err != nil {
				return nil, m.Zero(), err
			}
			if row, err = m.Union(row, s); err != nil {
				return nil, m.Zero(), err
			}
		}
		m.Ref(row)
		m.Deref(queens)
		if _, err := m.GC(); err != nil {
			return nil, m.Zero(), err
		}
		queens = row
	}
	return m, queens, nil
}

func TestNQueens(t *testing.T) {
	var nqueensTests = []struct {
		N        int
		expected int64
	}{
		{1, 1},
		{4, 2},
		{5, 10},
		{6, 4},
		{8, 92},
	}
	for _, tt := range nqueensTests {
		m, queens, err := nqueens(tt.N)
		if err != nil {
			t.Fatalf("NQueens(%d): %s", tt.N, err)
		}
		actual, err := m.CountBig(queens)
		if err != nil {
			t.Fatalf("NQueens(%d): %s", tt.N, err)
		}
		if actual.Cmp(big.NewInt(tt.expected)) != 0 {
			t.Errorf("Error in NQueens(%d), expected %d, actual %s", tt.N, tt.expected, actual)
		}
		if actual := m.Count(queens); actual != int(tt.expected) {
			t.Errorf("Error in Count for NQueens(%d), expected %d, actual %d", tt.N, tt.expected, actual)
		}
		if err := m.Check(); err != nil {
			t.Errorf("NQueens(%d): %s", tt.N, err)
		}
	}
}

func BenchmarkNQueens(b *testing.B) {
	for n := 0; n < b.N; n++ {
		nqueens(8)
	}
}
