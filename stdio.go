// Copyright 2021. Silvano DAL ZILIO.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package zudd

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Stats returns information about the manager.
func (m *Manager) Stats() string {
	if m.insession.Load() {
		return "numbering session in progress"
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var sb strings.Builder
	fmt.Fprintf(&sb, "Kind:       %s\n", m.kind)
	fmt.Fprintf(&sb, "Varnum:     %d\n", m.varnum)
	fmt.Fprintf(&sb, "Allocated:  %d\n", len(m.nodes))
	fmt.Fprintf(&sb, "Produced:   %d\n", m.produced)
	r := (float64(m.freenum) / float64(len(m.nodes))) * 100
	fmt.Fprintf(&sb, "Free:       %d  (%.3g %%)\n", m.freenum, r)
	fmt.Fprintf(&sb, "Used:       %d  (%.3g %%)\n", len(m.nodes)-m.freenum, (100.0 - r))
	fmt.Fprintf(&sb, "Cache:      %d hits, %d misses\n", m.cache.hit, m.cache.miss)
	reclaimed := 0
	for _, g := range m.gchistory {
		reclaimed += g.reclaimed
	}
	fmt.Fprintf(&sb, "# of GC:    %d\n", m.gcruns)
	fmt.Fprintf(&sb, "Reclaimed:  %d", reclaimed)
	return sb.String()
}

// Print returns a one-line description of the node of e.
func (m *Manager) Print(e Edge) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkedge(e); err != nil {
		return fmt.Sprintf("Error (%s)", err)
	}
	switch e {
	case m.Zero():
		return "Zero"
	case m.One():
		return "One"
	}
	n := &m.nodes[e.index()]
	return fmt.Sprintf("(%s[%d] ? %s : %s)", e, n.level, m.then(e), m.els(e))
}

// ******************************************************************************************************

// childname is the name of the target of c in the printers. Terminals are 0
// and 1, which never collide with the ids of branch nodes.
func childname(c Child) string {
	switch {
	case c.Terminal && c.One:
		return "1"
	case c.Terminal:
		return "0"
	case c.Complement:
		return fmt.Sprintf("~%d", c.ID)
	}
	return fmt.Sprintf("%d", c.ID)
}

// nodesPrinter lists one node per line.
type nodesPrinter struct {
	tw *tabwriter.Writer
}

func (p nodesPrinter) Node(id, level, variable int, then, els Child) error {
	_, err := fmt.Fprintf(p.tw, "%d\t[%d\t] x%d ? \t%s\t : %s\n", id, level, variable, childname(then), childname(els))
	return err
}

// PrintNodes outputs a textual representation of the nodes reachable from
// roots, children first.
func (m *Manager) PrintNodes(w io.Writer, roots ...Edge) error {
	tw := tabwriter.NewWriter(w, 0, 0, 0, ' ', 0)
	_, res, err := m.Emit(nodesPrinter{tw}, roots...)
	if err != nil {
		return err
	}
	for k, c := range res {
		fmt.Fprintf(tw, "root %d:\t%s\n", k, childname(c))
	}
	return tw.Flush()
}

// ******************************************************************************************************

// Example of AUT output for `nd` with properties on states
//
// des(2,5,3)
// (0, "S.`Zero`", 0)
// (1, "S.`One`", 1)
// (2, "S.`0`", 2)
// (2, "E.`0`", 0)
// (2, "E.`1`", 1)

// PrintAut prints a textual, graph-like, description of the nodes reachable
// from roots using the AUT format. The file can be displayed using the nd
// tool. The initial state is the first root. A state has no polarity, so the
// first root cannot be a complemented edge to a branch node.
func (m *Manager) PrintAut(w io.Writer, roots ...Edge) (err error) {
	s, err := m.BeginNumbering(roots...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.End(); err == nil {
			err = cerr
		}
	}()
	if len(roots) > 0 && roots[0].IsComplement() && !roots[0].IsTerminal() {
		return m.seterror(ErrComplement, "initial state %s in call to PrintAut", roots[0])
	}
	bw := bufio.NewWriter(w)
	state := func(c Child) int {
		if c.Terminal && !c.One {
			return 0
		}
		return c.ID
	}
	arc := func(c Child, label string) string {
		if c.Complement && !c.Terminal {
			return "~" + label
		}
		return label
	}
	initial := 0
	if len(roots) > 0 {
		initial = state(s.child(roots[0]))
	}
	highest := s.Highest()
	fmt.Fprintf(bw, "des(%d,%d,%d)\n", initial, 3*highest-1, highest+1)
	fmt.Fprintln(bw, "(0, \"S."+"`"+"Zero"+"`"+"\", 0)")
	fmt.Fprintln(bw, "(1, \"S."+"`"+"One"+"`"+"\", 1)")
	err = s.Walk(func(id int, e Edge) error {
		n := &m.nodes[e.index()]
		then, els := s.child(n.then), s.child(n.els)
		fmt.Fprintf(bw, "(%d, \"S."+"`"+"%d"+"`"+"\", %[1]d)\n", id, m.invperm[n.level])
		fmt.Fprintf(bw, "(%d, \"E."+"`"+"%s"+"`"+"\", %d)\n", id, arc(els, "0"), state(els))
		_, err := fmt.Fprintf(bw, "(%d, \"E."+"`"+"%s"+"`"+"\", %d)\n", id, arc(then, "1"), state(then))
		return err
	})
	if err != nil {
		return err
	}
	return bw.Flush()
}

// ******************************************************************************************************

// dotPrinter outputs a GraphViz DOT file. We do not draw arcs that go to the
// Zero terminal of a ZDD.
type dotPrinter struct {
	w *bufio.Writer
}

func (p dotPrinter) arc(src string, c Child, style string) {
	if c.Terminal && !c.One && !c.Complement {
		return
	}
	if c.Complement {
		style += ", arrowhead=odot"
	}
	target := c.ID
	if c.Terminal {
		target = 1
	}
	fmt.Fprintf(p.w, "%s -> %d [style=%s];\n", src, target, style)
}

func (p dotPrinter) Node(id, level, variable int, then, els Child) error {
	_, err := fmt.Fprintf(p.w, "%d %s\n", id, dotlabel(id, variable))
	src := fmt.Sprintf("%d", id)
	p.arc(src, els, "dotted")
	p.arc(src, then, "filled")
	return err
}

// PrintDot prints a graph-like description of the nodes reachable from roots
// using the DOT format.
func (m *Manager) PrintDot(w io.Writer, roots ...Edge) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph G {")
	fmt.Fprintln(bw, "1 [shape=box, label=\"1\", style=filled, shape=box, height=0.3, width=0.3];")
	_, res, err := m.Emit(dotPrinter{bw}, roots...)
	if err != nil {
		return err
	}
	for k, c := range res {
		fmt.Fprintf(bw, "r%d [shape=plaintext, label=\"root %d\"];\n", k, k)
		dotPrinter{bw}.arc(fmt.Sprintf("r%d", k), c, "bold")
	}
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}

func dotlabel(a int, b int) string {
	return fmt.Sprintf(`[label=<
	<FONT POINT-SIZE="20">%d</FONT>
	<FONT POINT-SIZE="10">[%d]</FONT>
>];`, b, a)
}
