package api

import (
	"bufio"
	"net"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics of the API
type Metrics struct {
	Requests      *prometheus.CounterVec
	Variants      prometheus.Counter
	ResolveErrors prometheus.Counter
}

// NewMetrics creates and registers the API metrics on registry
func NewMetrics(registry prometheus.Registerer) *Metrics {
	factory := promauto.With(registry)
	return &Metrics{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dnstwister_api_requests_total",
			Help: "Total number of API requests by route and status code",
		}, []string{"route", "code"}),
		Variants: factory.NewCounter(prometheus.CounterOpts{
			Name: "dnstwister_variants_generated_total",
			Help: "Total number of domain variants generated",
		}),
		ResolveErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "dnstwister_resolve_errors_total",
			Help: "Total number of failed IP resolutions",
		}),
	}
}

type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

// Hijack lets the stream endpoint take over the connection
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response does not support hijacking")
	}
	r.code = http.StatusSwitchingProtocols
	return h.Hijack()
}

func (m *Metrics) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(rec, r)
		route := "unknown"
		if cr := mux.CurrentRoute(r); cr != nil && cr.GetName() != "" {
			route = cr.GetName()
		}
		m.Requests.WithLabelValues(route, strconv.Itoa(rec.code)).Inc()
	})
}
