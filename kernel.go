// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package zudd

import (
	"errors"
)

// _MAXVAR is the maximal number of levels in a Manager. Levels are stored on
// an int32 and the constants use the value varnum, so we keep one spare value.
const _MAXVAR int = 0x1FFFFF

// _MAXREFCOUNT is the saturation value of the reference counter. Terminals and
// the nodes returned by IthVar are stuck at this value and never reclaimed.
const _MAXREFCOUNT int32 = 0x3FFFFFFF

// _DEFAULTMAXNODEINC is the default value for the maximal increase in the
// number of nodes when the arena grows. It is approx. one million nodes.
const _DEFAULTMAXNODEINC int = 1 << 20

// _MAXCHAIN is the average chain length above which a subtable doubles its
// number of buckets.
const _MAXCHAIN int = 4

// _MINBUCKETS is the initial number of buckets of a subtable.
const _MINBUCKETS int = 7

// Fixed positions in the node arena. The sentinel terminates every hash chain
// and is never a real value.
const (
	zeroIndex     int32 = 0
	oneIndex      int32 = 1
	sentinelIndex int32 = 2
	firstIndex    int32 = 3
)

// TerminalID is the identity reserved for the two terminal nodes during a
// numbering session. Branch nodes are numbered from TerminalID + 1.
const TerminalID int = 1

// CountOutOfMemory is the value returned by Count when the memo table could
// not be extended.
const CountOutOfMemory int = -1

// CountDoubleOutOfMemory is the value returned by CountDouble when the memo
// table could not be extended. A genuine result equal to this value cannot be
// distinguished from a failure; check Errored when it matters.
const CountDoubleOutOfMemory float64 = float64(CountOutOfMemory)

var (
	// ErrOutOfMemory is reported when the node arena reached Maxnodesize or a
	// memo table reached Memolimit.
	ErrOutOfMemory = errors.New("out of memory")

	// ErrSessionOpen is returned by operations attempted while a numbering
	// session holds the manager.
	ErrSessionOpen = errors.New("numbering session in progress")

	// ErrSessionClosed is returned when using a numbering session after End.
	ErrSessionClosed = errors.New("numbering session already ended")

	// ErrNotNumbered is returned when reading the id of a node that was not
	// reached from the roots of the session.
	ErrNotNumbered = errors.New("node is not numbered in this session")

	// ErrComplement is returned when a complemented edge is used where the
	// diagram kind forbids it.
	ErrComplement = errors.New("complemented edge not allowed")

	// ErrLevel is returned for levels or variables outside [0..Varnum).
	ErrLevel = errors.New("level out of range")

	// ErrOrder is returned when a child is not strictly below its parent.
	ErrOrder = errors.New("child level not below parent level")

	// ErrKind is returned by operations that only exist for one diagram kind.
	ErrKind = errors.New("operation not supported by this diagram kind")

	// ErrInvalidEdge is returned for edges that do not reference a live node.
	ErrInvalidEdge = errors.New("invalid edge")
)
