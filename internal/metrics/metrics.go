package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Total HTTP requests partitioned by method, route, and status code
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "route", "status"},
	)

	// Request duration in seconds partitioned by method, route, and status code
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	httpInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "Number of HTTP requests currently being served",
		},
	)

	// ClicksTracked counts attribution attempts by outcome ("ok" or "error").
	ClicksTracked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracking_clicks_total",
			Help: "Redirect clicks processed by the attribution engine",
		},
		[]string{"result"},
	)

	// GeoLookups counts geolocation lookups by provider and outcome ("ok", "error", "cached", "skipped").
	GeoLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracking_geo_lookups_total",
			Help: "IP geolocation lookups",
		},
		[]string{"provider", "result"},
	)

	// ConversionEvents counts accepted conversion events by type.
	ConversionEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracking_conversion_events_total",
			Help: "Conversion events recorded",
		},
		[]string{"event_type"},
	)

	// NewsRefreshes counts feed refresh passes by outcome.
	NewsRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "news_refresh_runs_total",
			Help: "News feed refresh passes",
		},
		[]string{"result"},
	)

	// WeatherResponses counts weather answers by origin ("provider", "cache", "stale", "error").
	WeatherResponses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weather_responses_total",
			Help: "Weather responses by origin",
		},
		[]string{"origin"},
	)
)

// Middleware records request count, latency and in-flight gauge. The route
// label uses the matched chi pattern to keep cardinality low.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		labels := prometheus.Labels{
			"method": r.Method,
			"route":  route,
			"status": strconv.Itoa(status),
		}
		httpRequestsTotal.With(labels).Inc()
		httpRequestDuration.With(labels).Observe(time.Since(start).Seconds())
	})
}
