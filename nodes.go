// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package zudd

import "fmt"

// Edge is a reference to a node of a Manager. The lowest bit is the
// complement (polarity) flag, the remaining bits are the index of the node in
// the arena. Two edges are equal if and only if they denote the same function.
type Edge uint32

func mkedge(n int32, complement bool) Edge {
	if complement {
		return Edge(n)<<1 | 1
	}
	return Edge(n) << 1
}

// Regular strips the polarity of e. The result is the canonical address of
// the node, used for every table and hash operation.
func (e Edge) Regular() Edge {
	return e &^ 1
}

// IsComplement reports whether e carries the complement flag.
func (e Edge) IsComplement() bool {
	return e&1 != 0
}

// Not toggles the polarity of e. It is only meaningful for BDD managers.
func (e Edge) Not() Edge {
	return e ^ 1
}

// IsTerminal reports whether e points to one of the two terminal nodes.
func (e Edge) IsTerminal() bool {
	return e.index() < sentinelIndex
}

func (e Edge) index() int32 {
	return int32(e >> 1)
}

func (e Edge) String() string {
	if e.IsComplement() {
		return fmt.Sprintf("~%d", e.index())
	}
	return fmt.Sprintf("%d", e.index())
}

// ************************************************************

// scratchTag selects the interpretation of the scratch field of a node.
type scratchTag uint8

const (
	tagFree     scratchTag = iota // scratch is the next free slot
	tagLinked                     // scratch is the next node in the hash chain
	tagDetached                   // removed from its chain, not yet numbered
	tagNumbered                   // scratch is the session id
	tagTerminal                   // terminals and the sentinel
)

var tagnames = [...]string{
	tagFree:     "free",
	tagLinked:   "linked",
	tagDetached: "detached",
	tagNumbered: "numbered",
	tagTerminal: "terminal",
}

func (t scratchTag) String() string {
	return tagnames[t]
}

type node struct {
	level   int32      // Level of the variable; varnum for terminals
	then    Edge       // Then (high) child
	els     Edge       // Else (low) child
	ref     int32      // Parents plus external references
	scratch int32      // Chain link, free link or session id, see tag
	tag     scratchTag // Current meaning of scratch
}
