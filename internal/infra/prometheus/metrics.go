package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Application counters, registered on the default registry the /metrics
// server exposes.
var (
	// ViewsRecorded counts stored view events, labeled by kind
	// ("linktree" or "article").
	ViewsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "linktrove_views_recorded_total",
		Help: "Number of view events stored.",
	}, []string{"kind"})

	// DuplicateViewsSuppressed counts article views skipped by the
	// calendar-day dedup window.
	DuplicateViewsSuppressed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "linktrove_duplicate_views_suppressed_total",
		Help: "Number of article view events suppressed as same-day duplicates.",
	})

	// ClicksRecorded counts stored link click events.
	ClicksRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "linktrove_clicks_recorded_total",
		Help: "Number of link click events stored.",
	})

	// SlugConflictRetries counts insert attempts that hit the slug unique
	// constraint and were retried with the next suffix.
	SlugConflictRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "linktrove_slug_conflict_retries_total",
		Help: "Number of slug allocations retried after a unique-constraint conflict.",
	})
)
