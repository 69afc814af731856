// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package zudd

// subtable is the unique table of one level. Each bucket is the head of a
// chain linked through the scratch field of the nodes and terminated by the
// sentinel. Chains are sorted in decreasing order of (then, else), which
// bounds the cost of a failed lookup and gives a deterministic position when
// a node is put back by a numbering session.
type subtable struct {
	nodelist []int32 // Chain heads; sentinelIndex for an empty bucket
	keys     int     // Number of nodes in the chains
}

func makesubtable(size int) subtable {
	st := subtable{nodelist: make([]int32, primeGte(size))}
	for k := range st.nodelist {
		st.nodelist[k] = sentinelIndex
	}
	return st
}

// sortsBefore reports whether a node with children (t1, e1) must appear before
// a node with children (t2, e2) in a chain.
func sortsBefore(t1, e1, t2, e2 Edge) bool {
	return t1 > t2 || (t1 == t2 && e1 > e2)
}

// find walks the chain for (then, els) and stops at the first node that does
// not sort before (then, els). It returns this node, or the sentinel, together
// with its predecessor (-1 when it is the head of the chain).
func (st *subtable) find(nodes []node, pos int, then, els Edge) (prev, looking int32) {
	prev = -1
	looking = st.nodelist[pos]
	for looking != sentinelIndex {
		n := &nodes[looking]
		if !sortsBefore(n.then, n.els, then, els) {
			return prev, looking
		}
		prev = looking
		looking = n.scratch
	}
	return prev, looking
}

// lookup returns the node with children (then, els), if any.
func (st *subtable) lookup(nodes []node, then, els Edge) (int32, bool) {
	_, looking := st.find(nodes, bucket(then, els, len(st.nodelist)), then, els)
	if looking != sentinelIndex && nodes[looking].then == then && nodes[looking].els == els {
		return looking, true
	}
	return -1, false
}

// insert splices node n at its sorted position. The node must not already be
// in the chain.
func (st *subtable) insert(nodes []node, n int32) {
	pos := bucket(nodes[n].then, nodes[n].els, len(st.nodelist))
	prev, looking := st.find(nodes, pos, nodes[n].then, nodes[n].els)
	nodes[n].scratch = looking
	nodes[n].tag = tagLinked
	if prev < 0 {
		st.nodelist[pos] = n
	} else {
		nodes[prev].scratch = n
	}
	st.keys++
}

// remove unlinks node n from its chain, leaving the rest of the chain
// sentinel-terminated. It returns false if n was not found.
func (st *subtable) remove(nodes []node, n int32) bool {
	pos := bucket(nodes[n].then, nodes[n].els, len(st.nodelist))
	prev := int32(-1)
	for looking := st.nodelist[pos]; looking != sentinelIndex; looking = nodes[looking].scratch {
		if looking == n {
			if prev < 0 {
				st.nodelist[pos] = nodes[n].scratch
			} else {
				nodes[prev].scratch = nodes[n].scratch
			}
			nodes[n].scratch = 0
			st.keys--
			return true
		}
		prev = looking
	}
	return false
}

// grow doubles the number of buckets when chains become too long. All the
// nodes are reinserted at their sorted position in the new buckets.
func (st *subtable) grow(nodes []node) bool {
	if st.keys <= len(st.nodelist)*_MAXCHAIN {
		return false
	}
	old := st.nodelist
	*st = makesubtable(2 * len(old))
	for _, head := range old {
		for n := head; n != sentinelIndex; {
			next := nodes[n].scratch
			st.insert(nodes, n)
			n = next
		}
	}
	return true
}

// each calls f on every node of the subtable. The function f must not modify
// the chains.
func (st *subtable) each(nodes []node, f func(n int32) bool) {
	for _, head := range st.nodelist {
		for n := head; n != sentinelIndex; n = nodes[n].scratch {
			if !f(n) {
				return
			}
		}
	}
}
