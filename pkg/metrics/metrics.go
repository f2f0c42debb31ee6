// Package metrics 提供基于Prometheus的指标收集
//
// # 核心概念
//
// **Counter（计数器）**：只增不减的累计值
//   - 示例：HTTP请求总数、出库单总数、库存移动总数
//
// **Gauge（仪表盘）**：可增可减的瞬时值
//   - 示例：执行中的请求数
//
// **Histogram（直方图）**：观测值的分布
//   - 示例：HTTP请求耗时（自动计算P50、P90、P99）
//
// # 本服务的业务指标
//
// 转移单创建、出库单创建会递增租户用量计数器，
// 套餐限额系统通过抓取/metrics消费这些计数（用量上报钩子）。
// 每条库存移动记录也会计数，便于对账系统核对审计流完整性。
//
// # 使用示例
//
//	// 1. 初始化Metrics
//	metrics.InitMetrics()
//
//	// 2. 在HTTP服务中暴露/metrics端点
//	http.Handle("/metrics", promhttp.Handler())
//	go http.ListenAndServe(":9090", nil)
//
//	// 3. 在业务代码中记录指标
//	metrics.OrdersCreatedTotal.WithLabelValues(tenant).Inc()
//
// # 指标命名规范
//
// 1. **Counter**: 以`_total`结尾（wms_orders_created_total）
// 2. **Histogram**: 以单位结尾（http_request_duration_seconds）
// 3. **标签避免高基数**：租户数量有限可以做标签，商品ID不可以
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initialized 标记是否已初始化（防止重复注册）
	initialized bool

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（/api/v1/transfers）、status（200/500）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration *prometheus.HistogramVec

	// 业务用量指标（按租户打标签，供套餐限额系统消费）

	// OrdersCreatedTotal 出库单创建总数（Counter）
	OrdersCreatedTotal *prometheus.CounterVec

	// ReceiptsConfirmedTotal 入库单确认总数（Counter）
	ReceiptsConfirmedTotal *prometheus.CounterVec

	// TransfersExecutedTotal 仓间转移执行总数（Counter）
	TransfersExecutedTotal *prometheus.CounterVec

	// MovementsRecordedTotal 库存移动记录总数（Counter）
	// 标签：tenant、type（INBOUND_RECEIPT/OUTBOUND_SHIPMENT/INTERNAL_TRANSFER/ADJUSTMENT）
	MovementsRecordedTotal *prometheus.CounterVec

	// 消息队列指标

	// MessagesPublishedTotal 审计消息发布总数（Counter）
	// 标签：exchange、routing_key
	MessagesPublishedTotal *prometheus.CounterVec
)

// InitMetrics 初始化所有Prometheus指标
//
// 必须在程序启动时调用一次，用于注册所有指标到全局Registry
//
// 设计要点：
// 1. 使用promauto.New*自动注册到默认Registry
// 2. Counter使用*Vec支持标签（多维度统计）
// 3. 重复调用直接返回，防止duplicate registration panic
func InitMetrics() {
	if initialized {
		return
	}
	initialized = true

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wms_http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wms_http_request_duration_seconds",
			Help:    "HTTP请求耗时分布",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	OrdersCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wms_orders_created_total",
			Help: "出库单创建总数（租户用量）",
		},
		[]string{"tenant"},
	)

	ReceiptsConfirmedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wms_receipts_confirmed_total",
			Help: "入库单确认总数（租户用量）",
		},
		[]string{"tenant"},
	)

	TransfersExecutedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wms_transfers_executed_total",
			Help: "仓间转移执行总数（租户用量）",
		},
		[]string{"tenant"},
	)

	MovementsRecordedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wms_movements_recorded_total",
			Help: "库存移动记录总数",
		},
		[]string{"tenant", "type"},
	)

	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wms_messages_published_total",
			Help: "审计消息发布总数",
		},
		[]string{"exchange", "routing_key"},
	)
}

// TenantLabel 租户ID转标签值
func TenantLabel(tenantID uint) string {
	return strconv.FormatUint(uint64(tenantID), 10)
}
