package http

import (
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/oauthd/pkg/httpx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "oauthd"

// Metrics holds the flow counters. Each Router owns its registry so tests
// can build as many routers as they like.
type Metrics struct {
	registry *prometheus.Registry

	codesIssued       prometheus.Counter
	tokensIssued      prometheus.Counter
	rejectedExchanges prometheus.Counter
	requests          *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		codesIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "authorization_codes_issued_total",
			Help:      "Authorization codes handed out by the authorize endpoint.",
		}),
		tokensIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "access_tokens_issued_total",
			Help:      "Authorization codes exchanged for an access token.",
		}),
		rejectedExchanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "token_exchanges_rejected_total",
			Help:      "Token requests refused for a bad client, secret or code.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern and status.",
		}, []string{"route", "status"}),
	}

	m.registry.MustRegister(
		m.codesIssued,
		m.tokensIssued,
		m.rejectedExchanges,
		m.requests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware counts requests by the pattern ServeMux matched. It must wrap
// the mux directly, since the mux records the pattern on the request it is
// handed.
func (m *Metrics) Middleware() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			route := r.Pattern
			if route == "" || route == "/" {
				route = "unmatched"
			}
			m.requests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (s *statusRecorder) WriteHeader(code int) {
	if !s.wroteHeader {
		s.status = code
		s.wroteHeader = true
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Unwrap() http.ResponseWriter { return s.ResponseWriter }
