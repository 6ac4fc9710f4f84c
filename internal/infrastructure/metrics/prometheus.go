// Package metrics provides Prometheus metrics for observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "vidshare"

var (
	// CacheOperationsTotal tracks cache operations.
	// Labels:
	//   - operation: get, set, delete, delete_prefix
	//   - status: hit, miss, success, error
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_operations_total",
			Help:      "Total number of cache operations",
		},
		[]string{"operation", "status"},
	)

	// UpstreamRequestsTotal tracks calls against the external file host.
	// Labels:
	//   - operation: resolve, probe
	//   - status: ok, error
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Total number of file host requests",
		},
		[]string{"operation", "status"},
	)

	// RenewalVideosTotal tracks per-video outcomes of renewal sweeps.
	// Labels:
	//   - outcome: skipped (probe passed), renewed, failed
	RenewalVideosTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renewal_videos_total",
			Help:      "Total number of videos visited by link renewal sweeps",
		},
		[]string{"outcome"},
	)

	// RenewalRunsTotal tracks whole-sweep outcomes.
	// Labels:
	//   - status: ok, error
	RenewalRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renewal_runs_total",
			Help:      "Total number of link renewal sweeps",
		},
		[]string{"status"},
	)

	// SearchRequestsTotal tracks search queries by mode.
	// Labels:
	//   - mode: words, tags
	SearchRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_requests_total",
			Help:      "Total number of search queries",
		},
		[]string{"mode"},
	)

	// SingleflightRequestsTotal tracks singleflight behavior on cached reads.
	// Labels:
	//   - result: initiated (new execution), shared (reused result)
	SingleflightRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "singleflight_requests_total",
			Help:      "Total number of singleflight requests",
		},
		[]string{"result"},
	)
)

// Cache operation status constants.
const (
	CacheStatusHit     = "hit"
	CacheStatusMiss    = "miss"
	CacheStatusSuccess = "success"
	CacheStatusError   = "error"
)

// Cache operation type constants.
const (
	CacheOpGet          = "get"
	CacheOpSet          = "set"
	CacheOpDelete       = "delete"
	CacheOpDeletePrefix = "delete_prefix"
)

// Upstream operation constants.
const (
	UpstreamOpResolve = "resolve"
	UpstreamOpProbe   = "probe"

	UpstreamStatusOK    = "ok"
	UpstreamStatusError = "error"
)

// Renewal outcome constants.
const (
	RenewalOutcomeSkipped = "skipped"
	RenewalOutcomeRenewed = "renewed"
	RenewalOutcomeFailed  = "failed"

	RenewalRunOK    = "ok"
	RenewalRunError = "error"
)

// Search mode constants.
const (
	SearchModeWords = "words"
	SearchModeTags  = "tags"
)

// Singleflight result constants.
const (
	SingleflightInitiated = "initiated"
	SingleflightShared    = "shared"
)
