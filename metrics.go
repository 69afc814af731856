// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package zudd

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are shared by all the managers of a process.
var (
	uniqueLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "zudd_unique_lookups_total",
		Help: "Lookups in the unique table by result",
	}, []string{"result"})

	nodesProduced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "zudd_nodes_produced_total",
		Help: "Branch nodes created by MakeBranch",
	})

	arenaResizes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "zudd_arena_resizes_total",
		Help: "Number of times a node arena was grown",
	})

	gcRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "zudd_gc_runs_total",
		Help: "Number of garbage collections",
	})

	gcReclaimed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "zudd_gc_reclaimed_nodes_total",
		Help: "Nodes returned to the free list by garbage collection",
	})

	sessionsOpened = promauto.NewCounter(prometheus.CounterOpts{
		Name: "zudd_numbering_sessions_total",
		Help: "Numbering sessions opened",
	})

	sessionNodes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "zudd_numbering_session_nodes",
		Help:    "Number of nodes detached by a numbering session",
		Buckets: prometheus.ExponentialBuckets(1, 4, 12),
	})

	memoFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "zudd_memo_failures_total",
		Help: "Traversals aborted because the memo table could not grow",
	}, []string{"traversal"})
)
