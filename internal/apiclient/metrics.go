package apiclient

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type operationKey struct{}

func withOperation(ctx context.Context, op string) context.Context {
	return context.WithValue(ctx, operationKey{}, op)
}

func operationFrom(ctx context.Context) string {
	if op, ok := ctx.Value(operationKey{}).(string); ok {
		return op
	}
	return "unknown"
}

// Metrics счётчики запросов к бэкенду.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics регистрирует метрики клиента в reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "admin_console",
			Subsystem: "api_client",
			Name:      "requests_total",
			Help:      "Requests sent to the backend API.",
		}, []string{"operation", "method", "status"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "admin_console",
			Subsystem: "api_client",
			Name:      "request_duration_seconds",
			Help:      "Backend API request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "method"}),
	}
}

// Middleware считает запросы по операции, методу и статусу ответа.
func (m *Metrics) Middleware() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()
			op := operationFrom(r.Context())

			resp, err := next.RoundTrip(r)

			status := "error"
			if err == nil {
				status = strconv.Itoa(resp.StatusCode)
			}
			m.requests.WithLabelValues(op, r.Method, status).Inc()
			m.duration.WithLabelValues(op, r.Method).Observe(time.Since(start).Seconds())
			return resp, err
		})
	}
}
