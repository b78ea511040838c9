// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Save outcomes
const (
	SaveOK     = "ok"
	SaveFailed = "failed"
)

// HTTPRequests counts handled requests by method, matched route and status.
var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "freelance_http_requests_total",
	Help: "HTTP requests handled, by method, route and status code.",
}, []string{"method", "route", "status"})

// HTTPLatency tracks request latency by method and matched route.
var HTTPLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "freelance_http_request_duration_seconds",
	Help:    "HTTP request latency.",
	Buckets: prometheus.DefBuckets,
}, []string{"method", "route"})

// AuthRejections counts requests refused by the bearer-token gate.
var AuthRejections = promauto.NewCounter(prometheus.CounterOpts{
	Name: "freelance_auth_rejections_total",
	Help: "Mutating requests rejected for a missing or unknown bearer token.",
})

// DocumentSaves counts whole-document persists by outcome.
var DocumentSaves = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "freelance_document_saves_total",
	Help: "Whole-document saves, by outcome.",
}, []string{"backend", "result"})

// DocumentRecords reports the number of records held per collection.
var DocumentRecords = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Name: "freelance_document_records",
	Help: "Records currently stored, by collection.",
}, []string{"collection"})
