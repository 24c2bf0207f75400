package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var listingPageCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "preen_listing_pages_fetched",
	Help: "Number of listing pages fetched, by listing kind",
}, []string{"kind"})

var profileFetchCount = promauto.NewCounter(prometheus.CounterOpts{
	Name: "preen_profile_fetches",
	Help: "Number of profile reads (API calls)",
})

var profileCacheHits = promauto.NewCounter(prometheus.CounterOpts{
	Name: "preen_profile_cache_hits",
	Help: "Number of profile reads served from cache",
})

var actionCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "preen_actions",
	Help: "Number of candidates processed, by action and outcome",
}, []string{"action", "outcome"})

var runDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name: "preen_run_duration_sec",
	Help: "Total duration of reconciliation runs",
}, []string{"mode"})
