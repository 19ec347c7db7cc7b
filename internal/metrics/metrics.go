package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "talentgate",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests received",
	}, []string{"service", "method", "path", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "talentgate",
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"service", "method", "path", "status"})

	httpInFlight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "talentgate",
		Name:      "http_in_flight_requests",
		Help:      "Current number of in-flight HTTP requests",
	}, []string{"service"})

	generationBatches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "talentgate",
		Name:      "generation_batches_total",
		Help:      "Generation batches by item kind and outcome",
	}, []string{"kind", "outcome"})

	fallbackItems = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "talentgate",
		Name:      "fallback_items_total",
		Help:      "Items filled in from the fallback library, by kind",
	}, []string{"kind"})

	rejectedSubmissions = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "talentgate",
		Name:      "rejected_submissions_total",
		Help:      "Code submissions rejected by the authenticity filter",
	})

	evaluations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "talentgate",
		Name:      "evaluations_total",
		Help:      "Per-task evaluations by outcome",
	}, []string{"outcome"})
)

// ObserveGenerationBatch records one generation batch. Kind is "questions"
// or "tasks"; outcome is "accepted", "partial", or "failed".
func ObserveGenerationBatch(kind, outcome string) {
	generationBatches.WithLabelValues(kind, outcome).Inc()
}

// ObserveFallbackItems records how many items the fallback library supplied.
func ObserveFallbackItems(kind string, count int) {
	if count > 0 {
		fallbackItems.WithLabelValues(kind).Add(float64(count))
	}
}

// ObserveRejectedSubmission records one submission stopped by the
// authenticity filter.
func ObserveRejectedSubmission() {
	rejectedSubmissions.Inc()
}

// ObserveEvaluation records one per-task evaluation. Outcome is "scored" or
// "degraded".
func ObserveEvaluation(outcome string) {
	evaluations.WithLabelValues(outcome).Inc()
}

type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

func (r *responseRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *responseRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if h, ok := r.ResponseWriter.(http.Hijacker); ok {
		return h.Hijack()
	}
	return nil, nil, fmt.Errorf("metrics: underlying ResponseWriter does not support hijacking")
}

// Middleware records request metrics with Prometheus labels.
func Middleware(service string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			httpInFlight.WithLabelValues(service).Inc()
			defer httpInFlight.WithLabelValues(service).Dec()

			next.ServeHTTP(rec, r)

			labels := prometheus.Labels{
				"service": service,
				"method":  r.Method,
				"path":    r.URL.Path,
				"status":  strconv.Itoa(rec.status),
			}
			httpRequests.With(labels).Inc()
			httpLatency.With(labels).Observe(time.Since(start).Seconds())
		})
	}
}

// Handler exposes the default Prometheus metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
