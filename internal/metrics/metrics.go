// Package metrics はPrometheus形式のメトリクスを定義し、収集用のGinミドルウェアを提供する。
package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// クエリ結果の分類。
const (
	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

var (
	// RequestTotal はメソッド・ルート・ステータス別のHTTPリクエスト数。
	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodfinder_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
	// RequestDuration はHTTPリクエストの処理時間。
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "foodfinder_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	// StoreQueries は操作・結果別のストアクエリ数。
	StoreQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodfinder_store_queries_total",
			Help: "Total number of catalog store queries by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)
)

// ObserveQuery はストアクエリ1回分の結果を記録する。
func ObserveQuery(operation, outcome string) {
	StoreQueries.WithLabelValues(operation, outcome).Inc()
}

// Handler は/metricsエンドポイント用のハンドラを返す。
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
