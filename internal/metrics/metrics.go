package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gatemap_requests_total",
		Help: "Total number of API requests by route",
	}, []string{"route"})
	RequestDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gatemap_request_duration_ms",
		Help:    "API request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	}, []string{"route"})
	SelectedGates = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "gatemap_selected_gates",
		Help:    "Number of gates returned per filter selection",
		Buckets: []float64{0, 1, 5, 10, 50, 100, 500, 1000},
	})
	EmptyResultsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gatemap_empty_results_total",
		Help: "Total number of selections with no markers",
	})
	RedisHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gatemap_redis_hits_total",
		Help: "Total redis cache hits",
	})
	RedisMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gatemap_redis_misses_total",
		Help: "Total redis cache misses",
	})
	BoundaryFetchTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gatemap_boundary_fetch_total",
		Help: "Boundary geometry fetches by status",
	}, []string{"status"})
	BoundaryFetchDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "gatemap_boundary_fetch_duration_ms",
		Help:    "Boundary geometry fetch duration in milliseconds",
		Buckets: []float64{10, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
	})
	LocateCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gatemap_locate_cache_hits_total",
		Help: "Point-in-province lookups served from the local cache",
	})
)

func init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDurationMs)
	prometheus.MustRegister(SelectedGates)
	prometheus.MustRegister(EmptyResultsTotal)
	prometheus.MustRegister(RedisHitsTotal)
	prometheus.MustRegister(RedisMissesTotal)
	prometheus.MustRegister(BoundaryFetchTotal)
	prometheus.MustRegister(BoundaryFetchDurationMs)
	prometheus.MustRegister(LocateCacheHitsTotal)
}

// 文档注释：返回 Prometheus 指标处理器，在主入口挂载到 API 前缀下的 /metrics
func Handler() http.Handler { return promhttp.Handler() }
