// Package metrics exposes Prometheus instrumentation for the ledger engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LedgerCommits counts committed ledger operations by kind.
	LedgerCommits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "isletme_ledger_commits_total",
		Help: "Committed ledger operations.",
	}, []string{"operation"})

	// LedgerCommitFailures counts operations that failed before or during commit.
	LedgerCommitFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "isletme_ledger_commit_failures_total",
		Help: "Failed ledger operations.",
	}, []string{"operation"})

	// DebtRecomputes counts full recomputations of the debt view.
	DebtRecomputes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "isletme_debt_recomputes_total",
		Help: "Full debt view recomputations.",
	})
)
