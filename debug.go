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
	"context"
	"fmt"
	"log/slog"
)

// Check verifies the internal consistency of the manager: every live branch
// node is in exactly one chain, in the right subtable and bucket, chains are
// sorted without duplicates, children are below their parents and the
// reduction rule holds. It returns nil or an error describing the first
// problem found. Check is meant for tests and debugging; it visits the whole
// arena.
func (m *Manager) Check() error {
	if m.insession.Load() {
		return ErrSessionOpen
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := make([]bool, len(m.nodes))
	for level := range m.subtables {
		st := &m.subtables[level]
		count := 0
		for pos, head := range st.nodelist {
			prev := int32(-1)
			for n := head; n != sentinelIndex; n = m.nodes[n].scratch {
				if err := m.checknode(int32(level), pos, n, prev); err != nil {
					return err
				}
				if seen[n] {
					return fmt.Errorf("node %d appears twice in the subtables", n)
				}
				seen[n] = true
				prev = n
				count++
			}
		}
		if count != st.keys {
			return fmt.Errorf("level %d has %d nodes in its chains but counts %d keys", level, count, st.keys)
		}
	}
	free := 0
	for k := firstIndex; int(k) < len(m.nodes); k++ {
		switch m.nodes[k].tag {
		case tagFree:
			free++
		case tagLinked:
			if !seen[k] {
				return fmt.Errorf("node %d is linked but not in its chain", k)
			}
		default:
			return fmt.Errorf("node %d is %s outside of a numbering session", k, m.nodes[k].tag)
		}
	}
	if free != m.freenum {
		return fmt.Errorf("found %d free nodes, expected %d", free, m.freenum)
	}
	return nil
}

func (m *Manager) checknode(level int32, pos int, n, prev int32) error {
	nd := &m.nodes[n]
	switch {
	case nd.tag != tagLinked:
		return fmt.Errorf("node %d in a chain of level %d is %s", n, level, nd.tag)
	case nd.level != level:
		return fmt.Errorf("node %d has level %d but is in subtable %d", n, nd.level, level)
	case bucket(nd.then, nd.els, len(m.subtables[level].nodelist)) != pos:
		return fmt.Errorf("node %d is in the wrong bucket", n)
	case prev >= 0 && !sortsBefore(m.nodes[prev].then, m.nodes[prev].els, nd.then, nd.els):
		return fmt.Errorf("chain at level %d is not sorted (%d before %d)", level, prev, n)
	}
	for _, c := range [2]Edge{nd.then, nd.els} {
		if int(c.index()) >= len(m.nodes) || c.index() == sentinelIndex || m.nodes[c.index()].tag == tagFree {
			return fmt.Errorf("node %d has a dangling child %s", n, c)
		}
		if m.nodes[c.index()].level <= level {
			return fmt.Errorf("node %d at level %d has child %s at level %d", n, level, c, m.nodes[c.index()].level)
		}
	}
	switch m.kind {
	case ZDD:
		if nd.then == m.Zero() || nd.then.IsComplement() || nd.els.IsComplement() {
			return fmt.Errorf("node %d breaks the zero-suppressed rule", n)
		}
	case BDD:
		if nd.then == nd.els || nd.then.IsComplement() {
			return fmt.Errorf("node %d breaks the BDD reduction rule", n)
		}
	}
	return nil
}

// logTable dumps the arena at debug level.
func (m *Manager) logTable() {
	if !m.log.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	for k, n := range m.nodes {
		m.log.Debug("node", "index", k, "level", n.level, "then", n.then, "else", n.els, "ref", n.ref, "tag", n.tag, "scratch", n.scratch)
	}
}
