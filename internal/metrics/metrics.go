// Package metrics exposes assessment counters and HTTP latency to Prometheus.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"holland-test/internal/domain"
)

const namespace = "holland"

// Recorder implements service.Metrics on a Prometheus registry.
type Recorder struct {
	sessions    prometheus.Counter
	submitted   *prometheus.CounterVec
	defaulted   *prometheus.CounterVec
	served      *prometheus.CounterVec
	rejected    *prometheus.CounterVec
	httpLatency *prometheus.HistogramVec
}

// NewRecorder registers every collector on reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		sessions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_started_total",
			Help:      "Assessment sessions opened.",
		}),
		submitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "traits_submitted_total",
			Help:      "Trait collectors submitted, by trait.",
		}, []string{"trait"}),
		defaulted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "responses_defaulted_total",
			Help:      "Statements submitted without an explicit answer, by trait.",
		}, []string{"trait"}),
		served: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "results_served_total",
			Help:      "Reports and distributions returned.",
		}, []string{"kind", "partial"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "results_rejected_total",
			Help:      "Result requests rejected because the aggregate was not usable.",
		}, []string{"kind"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	for _, c := range []prometheus.Collector{r.sessions, r.submitted, r.defaulted, r.served, r.rejected, r.httpLatency} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Recorder) SessionStarted() {
	r.sessions.Inc()
}

func (r *Recorder) TraitSubmitted(code domain.TraitCode, defaulted int) {
	r.submitted.WithLabelValues(string(code)).Inc()
	if defaulted > 0 {
		r.defaulted.WithLabelValues(string(code)).Add(float64(defaulted))
	}
}

func (r *Recorder) ResultServed(kind string, partial bool) {
	r.served.WithLabelValues(kind, strconv.FormatBool(partial)).Inc()
}

func (r *Recorder) ResultRejected(kind string) {
	r.rejected.WithLabelValues(kind).Inc()
}

// GinMiddleware observes request latency labelled by route template.
func (r *Recorder) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		r.httpLatency.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
