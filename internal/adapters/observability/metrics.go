package observability

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"review_dashboard/internal/domain"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "reviews", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "reviews", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	ExternalRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "reviews", Name: "upstream_requests_total", Help: "Outbound requests to review providers."},
		[]string{"service", "endpoint", "status"}, // status: HTTP code or LabelErr kind
	)
	ExternalLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "reviews", Name: "upstream_request_duration_seconds",
			Help:    "Outbound request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "endpoint"},
	)
	ApprovalEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "reviews", Name: "approval_events_total", Help: "Approval store hits/misses/sets/dels."},
		[]string{"store", "event"}, // event: hit|miss|set|del
	)
	Normalized = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "reviews", Name: "normalized_total", Help: "Reviews normalized per source."},
		[]string{"source", "mode"}, // mode: live|mock
	)
)

// Serve starts a side listener for /metrics when addr is set.
func Serve(addr string, reg *prometheus.Registry) {
	if addr == "" {
		return // disabled
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", MetricsHandler(reg))

	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, ExternalRequests, ExternalLatency, ApprovalEvents, Normalized)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveExternal(service, endpoint string, status int, dur time.Duration) {
	ExternalRequests.WithLabelValues(service, endpoint, strconv.Itoa(status)).Inc()
	ExternalLatency.WithLabelValues(service, endpoint).Observe(dur.Seconds())
}

// ObserveExternalErr records a call that never got a response; the status
// label carries the failure kind instead of a code.
func ObserveExternalErr(service, endpoint string, err error, dur time.Duration) {
	ExternalRequests.WithLabelValues(service, endpoint, LabelErr(err)).Inc()
	ExternalLatency.WithLabelValues(service, endpoint).Observe(dur.Seconds())
}

func ObserveApproval(store, event string) {
	ApprovalEvents.WithLabelValues(store, event).Inc()
}

func ObserveNormalized(source, mode string, n int) {
	Normalized.WithLabelValues(source, mode).Add(float64(n))
}

// LabelErr turns an error into a low-cardinality label value.
func LabelErr(err error) string {
	if err == nil {
		return "none"
	}
	var ue *domain.UpstreamError
	if errors.As(err, &ue) {
		switch ue.Kind {
		case domain.ErrUpstreamUnreachable:
			return "unreachable"
		case domain.ErrUpstreamStatus:
			return "http_status"
		case domain.ErrUpstreamSemantic:
			return "semantic"
		case domain.ErrUpstreamMalformed:
			return "malformed"
		}
	}
	return fmt.Sprintf("%T", err)
}
