// file: internal/metrics/metrics.go
// version: 1.1.0
// guid: 9f8e7d6c-5b4a-3210-9fed-cba876543210

package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	explorePasses = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mediatheque_explorer",
		Name:      "explore_passes_total",
		Help:      "Total number of exploration filter/sort passes by category",
	}, []string{"category"})
	exploreDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "mediatheque_explorer",
		Name:      "explore_pass_duration_seconds",
		Help:      "Histogram of exploration pass durations in seconds by category",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // ~1ms up to a few seconds
	}, []string{"category"})
	similarQueries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mediatheque_explorer",
		Name:      "similarity_queries_total",
		Help:      "Total number of similarity rankings by category and kind (similar, recommended)",
	}, []string{"category", "kind"})
	cacheHits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mediatheque_explorer",
		Name:      "response_cache_hits_total",
		Help:      "Total number of memoized responses served by category",
	}, []string{"category"})
	cacheMisses = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mediatheque_explorer",
		Name:      "response_cache_misses_total",
		Help:      "Total number of responses computed from scratch by category",
	}, []string{"category"})

	worksGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "mediatheque_explorer",
		Name:      "works_total",
		Help:      "Current total number of works in the catalog by category",
	}, []string{"category"})
	weightsReloads = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "mediatheque_explorer",
		Name:      "genre_weight_reloads_total",
		Help:      "Total number of genre weight table reloads from the overrides file",
	})
)

// Register initializes metrics with the global Prometheus registry (idempotent)
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(explorePasses, exploreDuration, similarQueries,
			cacheHits, cacheMisses, worksGauge, weightsReloads)
	})
}

// Exploration pipeline
func IncExplorePass(category string) { explorePasses.WithLabelValues(category).Inc() }
func ObserveExploreDuration(category string, d time.Duration) {
	exploreDuration.WithLabelValues(category).Observe(d.Seconds())
}

// Similarity and recommendations
func IncSimilarQuery(category, kind string) { similarQueries.WithLabelValues(category, kind).Inc() }

// Response cache
func IncCacheHit(category string)  { cacheHits.WithLabelValues(category).Inc() }
func IncCacheMiss(category string) { cacheMisses.WithLabelValues(category).Inc() }

// Gauges and reload counters
func SetWorks(category string, n int) { worksGauge.WithLabelValues(category).Set(float64(n)) }
func IncWeightsReload()               { weightsReloads.Inc() }
