// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package zudd

import (
	"log/slog"
)

// Kind selects the reduction rule of a Manager.
type Kind int

const (
	// ZDD managers use the zero-suppressed rule: a node whose then-child is
	// the zero terminal is skipped. Complemented edges are not allowed.
	ZDD Kind = iota
	// BDD managers use the classical rule: a node with equal children is
	// skipped. Complemented edges are allowed on the else-child.
	BDD
)

func (k Kind) String() string {
	if k == BDD {
		return "BDD"
	}
	return "ZDD"
}

// configs is used to store the values of different parameters of the Manager
type configs struct {
	varnum          int          // number of variables
	kind            Kind         // reduction rule
	nodesize        int          // initial number of slots in the arena
	cachesize       int          // number of entries in the operation cache
	maxnodesize     int          // Maximum total number of nodes (0 if no limit)
	maxnodeincrease int          // Maximum number of slots added at each growth (0 if no limit)
	memolimit       int          // Maximum number of entries in a traversal memo (0 if no limit)
	order           []int        // level of each variable; nil for the identity
	logger          *slog.Logger // destination of the manager logs
}

// Option is a configuration function used as a parameter in New.
type Option func(*configs)

func makeconfigs(varnum int) *configs {
	c := &configs{varnum: varnum}
	c.maxnodeincrease = _DEFAULTMAXNODEINC
	c.nodesize = 2*varnum + int(firstIndex)
	c.cachesize = 10000
	c.logger = slog.Default()
	return c
}

// Nodesize is a configuration option (function). Used as a parameter in New it
// sets a preferred initial size for the node arena. The arena grows during
// computation. Values below the number of slots needed for the terminals and
// the nodes returned by IthVar are raised to this minimum; values above
// Maxnodesize are lowered to the limit.
func Nodesize(size int) func(*configs) {
	return func(c *configs) {
		c.nodesize = size
	}
}

// Maxnodesize is a configuration option (function). Used as a parameter in New
// it sets a limit to the number of slots in the node arena. MakeBranch returns
// ErrOutOfMemory when a new node would exceed this limit, and New fails if the
// limit cannot hold the terminals and the variables. The default value (0)
// means that there is no limit.
func Maxnodesize(size int) func(*configs) {
	return func(c *configs) {
		c.maxnodesize = size
	}
}

// Maxnodeincrease is a configuration option (function). Used as a parameter in
// New it sets a limit on the increase in size of the arena. Below this limit
// we double the size of the arena each time it is full. Set the value to zero
// to avoid imposing a limit.
func Maxnodeincrease(size int) func(*configs) {
	return func(c *configs) {
		c.maxnodeincrease = size
	}
}

// Cachesize is a configuration option (function). Used as a parameter in New it
// sets the number of entries in the operation cache used by Union, Intersect,
// etc. The value is rounded up to a prime. The default is 10 000.
func Cachesize(size int) func(*configs) {
	return func(c *configs) {
		if size > 0 {
			c.cachesize = size
		}
	}
}

// Memolimit is a configuration option (function). Used as a parameter in New it
// caps the number of entries of the transient memo table built by each call to
// Count, CountDouble or CountBig. Reaching the cap is reported as an
// out-of-memory condition. The default (0) means no limit.
func Memolimit(entries int) func(*configs) {
	return func(c *configs) {
		c.memolimit = entries
	}
}

// WithKind is a configuration option (function) selecting the reduction rule.
// The default is ZDD.
func WithKind(k Kind) func(*configs) {
	return func(c *configs) {
		c.kind = k
	}
}

// WithOrder is a configuration option (function). Used as a parameter in New it
// sets the level of each variable: order[v] is the level of variable v. The
// slice must be a permutation of [0..varnum).
func WithOrder(order []int) func(*configs) {
	return func(c *configs) {
		c.order = append([]int(nil), order...)
	}
}

// WithLogger is a configuration option (function) setting the structured
// logger used by the manager. The default is slog.Default().
func WithLogger(l *slog.Logger) func(*configs) {
	return func(c *configs) {
		if l != nil {
			c.logger = l
		}
	}
}
