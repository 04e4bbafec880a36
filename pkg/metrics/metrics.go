package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP 请求延迟（秒）
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// 数据库查询延迟（秒）
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"operation", "table"},
	)

	// 慢查询计数
	SlowQueryCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "db_slow_query_count",
			Help: "Total number of queries slower than the configured threshold",
		},
	)

	// 集合加载/变更结果
	StoreOperationCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_operation_count",
			Help: "Collection store operations by table, operation and result kind",
		},
		[]string{"table", "operation", "result"}, // result: ok, invalid, not_found, unavailable, ...
	)

	// 变更事件发布计数
	OutboxPublishCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outbox_publish_count",
			Help: "Change events published from the outbox",
		},
		[]string{"routing_key", "status"}, // status: sent, failed
	)

	// 登录尝试计数
	AuthAttemptCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempt_count",
			Help: "Sign-in attempts by result",
		},
		[]string{"result"},
	)
)

// RecordHTTPRequestDuration 记录 HTTP 请求延迟
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordDBQueryDuration 记录数据库查询延迟
func RecordDBQueryDuration(operation, table string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}

// IncrementSlowQuery 记录一次慢查询
func IncrementSlowQuery(_ string, _ time.Duration) {
	SlowQueryCount.Inc()
}

// IncrementStoreOperation 记录一次集合操作及其结果
func IncrementStoreOperation(table, operation, result string) {
	StoreOperationCount.WithLabelValues(table, operation, result).Inc()
}

// IncrementOutboxPublish 记录一次事件发布
func IncrementOutboxPublish(routingKey, status string) {
	OutboxPublishCount.WithLabelValues(routingKey, status).Inc()
}

// IncrementAuthAttempt 记录一次登录尝试
func IncrementAuthAttempt(result string) {
	AuthAttemptCount.WithLabelValues(result).Inc()
}
