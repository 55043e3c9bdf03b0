package fangs

import (
	"net/http/httptest"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yourusername/ohkami/core"
)

// Metrics records a request counter and a latency histogram per
// method/route-pattern/status, grounded on the teacher's Prometheus wiring
// in shockwave/buffer_pool_prometheus.go (promauto-registered Vec metrics,
// WithLabelValues per observation) adapted from a buffer pool's periodic
// snapshot to a per-request fang.
type Metrics struct {
	pattern string

	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewMetrics builds a Metrics fang. pattern labels every metric this fang
// records (e.g. the route pattern it's mounted under, or "" for a root-level
// fang covering every route); reg defaults to prometheus.DefaultRegisterer.
func NewMetrics(pattern string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		pattern: pattern,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ohkami",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total requests handled, labeled by method, route pattern, and status.",
		}, []string{"method", "pattern", "status"}),
		latency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ohkami",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Request latency in seconds, labeled by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "pattern"}),
	}
}

type metricsStart time.Time

func (f *Metrics) Fore(req *core.Request) *core.Response {
	core.Insert(req.Bag(), metricsStart(time.Now()))
	return nil
}

func (f *Metrics) Back(req *core.Request, res *core.Response) {
	method := req.Method.String()
	f.requests.WithLabelValues(method, f.pattern, strconv.Itoa(res.Status)).Inc()
	if start, ok := core.Get[metricsStart](req.Bag()); ok {
		f.latency.WithLabelValues(method, f.pattern).Observe(time.Since(time.Time(start)).Seconds())
	}
}

// MetricsHandler renders the default Prometheus registry in the exposition
// format, for mounting as an ordinary GET route (e.g. o.GET("/metrics",
// fangs.MetricsHandler())). It bridges promhttp.Handler, which is an
// http.Handler, onto this core's Handler shape via httptest.NewRecorder
// rather than reimplementing exposition-format rendering by hand.
func MetricsHandler() core.Handler {
	inner := promhttp.Handler()
	return func(req *core.Request) *core.Response {
		rec := httptest.NewRecorder()
		httpReq := httptest.NewRequest("GET", req.Path(), nil)
		inner.ServeHTTP(rec, httpReq)

		res := core.Status(rec.Code)
		for name, values := range rec.Header() {
			if name == "Content-Type" || name == "Content-Length" {
				continue
			}
			for _, v := range values {
				res.AppendHeader(name, v)
			}
		}
		return res.WithPayload(rec.Header().Get("Content-Type"), rec.Body.Bytes())
	}
}
