// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package metrics exposes Prometheus collectors for inbound requests and
// upstream calls.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry owns every collector of one gateway process.
type Registry struct {
	registry *prometheus.Registry

	httpInFlight        prometheus.Gauge
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	upstreamCallsTotal   *prometheus.CounterVec
	upstreamCallDuration *prometheus.HistogramVec
}

// New creates a Registry with Go runtime and process collectors attached.
func New() *Registry {
	reg := &Registry{
		registry: prometheus.NewRegistry(),

		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_in_flight_requests",
			Help: "In-flight HTTP requests.",
		}),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),

		upstreamCallsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "upstream_calls_total",
			Help: "Calls forwarded to the upstream CMS.",
		}, []string{"method", "endpoint", "outcome"}),
		upstreamCallDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "upstream_call_duration_seconds",
			Help:    "Upstream CMS call latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "endpoint", "outcome"}),
	}

	reg.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		reg.httpInFlight,
		reg.httpRequestsTotal,
		reg.httpRequestDuration,
		reg.upstreamCallsTotal,
		reg.upstreamCallDuration,
	)

	return reg
}

// Gatherer exposes the underlying registry, mainly for tests.
func (reg *Registry) Gatherer() prometheus.Gatherer {
	return reg.registry
}

// Handler serves the Prometheus exposition format.
func (reg *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(reg.registry, promhttp.HandlerOpts{})
}

// Instrument measures in-flight count, totals and latency of inbound requests.
// The route label is the matched chi pattern so IDs do not explode cardinality.
func (reg *Registry) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		reg.httpInFlight.Inc()
		defer reg.httpInFlight.Dec()

		start := time.Now()
		recorder := &statusWriter{ResponseWriter: writer, code: http.StatusOK}
		next.ServeHTTP(recorder, request)

		route := request.URL.Path
		if routeContext := chi.RouteContext(request.Context()); routeContext != nil {
			if pattern := routeContext.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		status := strconv.Itoa(recorder.code)
		reg.httpRequestDuration.WithLabelValues(request.Method, route, status).Observe(time.Since(start).Seconds())
		reg.httpRequestsTotal.WithLabelValues(request.Method, route, status).Inc()
	})
}

// ObserveUpstream records one upstream call. A zero status means the call
// never produced a response.
func (reg *Registry) ObserveUpstream(method, path string, status int, elapsed time.Duration) {
	endpoint := CanonicalPath(path)
	outcome := Outcome(status)
	reg.upstreamCallsTotal.WithLabelValues(method, endpoint, outcome).Inc()
	reg.upstreamCallDuration.WithLabelValues(method, endpoint, outcome).Observe(elapsed.Seconds())
}

// Outcome buckets an upstream status into a low-cardinality label.
func Outcome(status int) string {
	switch {
	case status == 0:
		return "network_error"
	case status < 400:
		return "2xx"
	case status < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

// CanonicalPath replaces identifier segments of an upstream path with ":id".
//
//	/funeral-homes/12   -> /funeral-homes/:id
//	/upload/files/7     -> /upload/files/:id
//	/auth/local         -> /auth/local
func CanonicalPath(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "/"
	}

	segments := strings.Split(path, "/")
	for i, segment := range segments {
		if i >= 2 && isIdentifier(segment) {
			segments[i] = ":id"
		}
	}
	return strings.Join(segments, "/")
}

// isIdentifier matches numeric ids and upstream document ids, which are long
// lowercase alphanumerics with at least one digit.
func isIdentifier(segment string) bool {
	if segment == "" || segment == "me" {
		return false
	}

	hasDigit := false
	for _, r := range segment {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case r >= 'a' && r <= 'z':
		default:
			return false
		}
	}
	return hasDigit
}

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}
