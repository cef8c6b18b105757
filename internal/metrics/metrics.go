package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DirectoryListings counts directory listings by the source that served them:
// store, cache (last-known-good) or seed (synthetic fallback).
var DirectoryListings = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "healthsync_directory_listings_total",
	Help: "Organization directory listings served, by data source.",
}, []string{"source"})

// RosterRequests counts roster requests by outcome
var RosterRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "healthsync_roster_requests_total",
	Help: "Organization roster requests, by outcome.",
}, []string{"outcome"})

// RosterDuration observes end-to-end roster request latency
var RosterDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "healthsync_roster_request_duration_seconds",
	Help:    "End-to-end latency of roster requests.",
	Buckets: prometheus.DefBuckets,
})
