// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package zudd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrintAut(t *testing.T) {
	m, _ := New(2)
	chain := diamond(t, m, 2)
	var buf bytes.Buffer
	require.NoError(t, m.PrintAut(&buf, chain[0]))
	expected := "des(3,8,4)\n" +
		"(0, \"S.`Zero`\", 0)\n" +
		"(1, \"S.`One`\", 1)\n" +
		"(2, \"S.`1`\", 2)\n" +
		"(2, \"E.`0`\", 1)\n" +
		"(2, \"E.`1`\", 1)\n" +
		"(3, \"S.`0`\", 3)\n" +
		"(3, \"E.`0`\", 2)\n" +
		"(3, \"E.`1`\", 2)\n"
	require.Equal(t, expected, buf.String())
	require.NoError(t, m.Check())
}

func TestPrintAutComplementedRoot(t *testing.T) {
	m, _ := New(2, WithKind(BDD))
	x1, _ := m.IthVar(1)
	var buf bytes.Buffer
	require.ErrorIs(t, m.PrintAut(&buf, x1.Not()), ErrComplement)
	require.Empty(t, buf.String())
	m.ClearError()

	// complemented edges below the initial state are labelled
	require.NoError(t, m.PrintAut(&buf, x1, x1.Not()))
	require.True(t, strings.HasPrefix(buf.String(), "des(2,5,3)\n"))
	buf.Reset()
	require.NoError(t, m.PrintAut(&buf, m.Zero()))
	require.True(t, strings.HasPrefix(buf.String(), "des(0,2,2)\n"))
	require.NoError(t, m.Check())
	require.False(t, m.Errored())
}

func TestPrintDot(t *testing.T) {
	m, _ := New(2)
	chain := diamond(t, m, 2)
	x1, _ := m.IthVar(1)
	var buf bytes.Buffer
	require.NoError(t, m.PrintDot(&buf, chain[0], x1))
	out := buf.String()
	require.True(t, strings.HasPrefix(out, "digraph G {\n"))
	require.True(t, strings.HasSuffix(out, "}\n"))
	require.Contains(t, out, "3 -> 2 [style=filled];")
	require.Contains(t, out, "3 -> 2 [style=dotted];")
	require.Contains(t, out, "r0 -> 3 [style=bold];")
	require.Contains(t, out, "r1 -> 4 [style=bold];")
	// arcs to Zero are not drawn
	require.NotContains(t, out, "4 -> 1 [style=dotted];")
	require.Contains(t, out, "4 -> 1 [style=filled];")
}

func TestPrintNodes(t *testing.T) {
	m, _ := New(2, WithKind(BDD))
	x1, _ := m.IthVar(1)
	e, err := m.MakeBranch(0, x1, x1.Not())
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, m.PrintNodes(&buf, e))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	require.Contains(t, lines[0], "x1 ?")
	require.Contains(t, lines[1], "~2")
	require.True(t, strings.HasPrefix(lines[2], "root 0:"))
}

func TestPrintErrors(t *testing.T) {
	m, _ := New(2)
	x0, _ := m.IthVar(0)
	var buf bytes.Buffer
	require.ErrorIs(t, m.PrintDot(&buf, x0.Not()), ErrInvalidEdge)
	require.ErrorIs(t, m.PrintAut(&buf, x0.Not()), ErrInvalidEdge)
	require.ErrorIs(t, m.PrintNodes(&buf, x0.Not()), ErrInvalidEdge)
	// the manager is usable afterwards
	_, err := m.MakeBranch(0, m.One(), m.One())
	require.NoError(t, err)
}

func TestStatsAndPrint(t *testing.T) {
	m, _ := New(2)
	chain := diamond(t, m, 2)
	stats := m.Stats()
	require.Contains(t, stats, "Kind:       ZDD")
	require.Contains(t, stats, "Varnum:     2")
	require.Contains(t, stats, "Produced:   4")
	require.Equal(t, "Zero", m.Print(m.Zero()))
	require.Equal(t, "One", m.Print(m.One()))
	require.Equal(t, "("+chain[0].String()+"[0] ? "+chain[1].String()+" : "+chain[1].String()+")", m.Print(chain[0]))
	require.True(t, strings.HasPrefix(m.Print(chain[0].Not()), "Error"))
}
