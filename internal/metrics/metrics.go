// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Meeting sources
const (
	SourceManual = "manual"
	SourceSync   = "sync"
)

var (
	// HTTPRequests counts requests by route pattern, method and status code
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fieldwork_http_requests_total",
		Help: "Total HTTP requests by route, method and status",
	}, []string{"route", "method", "status"})

	// HTTPDuration tracks request latency by route pattern
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fieldwork_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
	}, []string{"route", "method"})

	// MeetingsCreated counts meetings by how they were created
	MeetingsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fieldwork_meetings_created_total",
		Help: "Total meetings created by source",
	}, []string{"source"})

	// MeetingsRemoved counts meetings deleted because their outreach changed
	// or went away
	MeetingsRemoved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fieldwork_meetings_removed_total",
		Help: "Total meetings removed alongside their outreach",
	})

	// NotificationsFailed counts scheduling emails that could not be sent
	NotificationsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fieldwork_notifications_failed_total",
		Help: "Total notification emails that failed by kind",
	}, []string{"kind"})
)
