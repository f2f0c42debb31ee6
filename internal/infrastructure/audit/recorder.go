// Package audit 审计流/用量计数的基础设施实现
package audit

import (
	"context"
	"log"

	"github.com/xiebiao/wms/internal/domain/stock"
	"github.com/xiebiao/wms/pkg/metrics"
	"github.com/xiebiao/wms/pkg/mq"
)

// MovementPublisher 移动记录审计流实现(RabbitMQ+Prometheus)
// 设计说明:
// 1. 在事务提交之后调用:发布失败只记日志,绝不回滚已提交的业务
//    (审计流是尽力而为的外发,报表系统自有对账手段)
// 2. 路由键按移动类型派生(movement.inbound_receipt等),
//    下游按类型订阅
type MovementPublisher struct {
	publisher *mq.Publisher
	exchange  string
}

// NewMovementPublisher 创建移动记录发布器
func NewMovementPublisher(publisher *mq.Publisher, exchange string) *MovementPublisher {
	return &MovementPublisher{publisher: publisher, exchange: exchange}
}

// movementMessage 审计消息载荷
type movementMessage struct {
	MovementID     uint   `json:"movement_id"`
	TenantID       uint   `json:"tenant_id"`
	Type           string `json:"type"`
	ProductID      uint   `json:"product_id"`
	BatchID        *uint  `json:"batch_id,omitempty"`
	FromLocationID *uint  `json:"from_location_id,omitempty"`
	ToLocationID   *uint  `json:"to_location_id,omitempty"`
	UnitOfMeasure  string `json:"unit_of_measure"`
	Quantity       string `json:"quantity"`
	ReferenceType  string `json:"reference_type"`
	ReferenceID    uint   `json:"reference_id"`
	CreatedAt      string `json:"created_at"`
}

// MovementsCommitted 发布一批已提交的移动记录
func (p *MovementPublisher) MovementsCommitted(ctx context.Context, movements []*stock.Movement) {
	for _, m := range movements {
		routingKey := mq.RoutingKey(string(m.Type))
		msg := movementMessage{
			MovementID:     m.ID,
			TenantID:       m.TenantID,
			Type:           string(m.Type),
			ProductID:      m.ProductID,
			BatchID:        m.BatchID,
			FromLocationID: m.FromLocationID,
			ToLocationID:   m.ToLocationID,
			UnitOfMeasure:  m.UnitOfMeasure,
			Quantity:       m.Quantity.String(),
			ReferenceType:  m.ReferenceType,
			ReferenceID:    m.ReferenceID,
			CreatedAt:      m.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
		if err := p.publisher.Publish(routingKey, msg); err != nil {
			log.Printf("[WARN] 审计消息发布失败 movement_id=%d routing_key=%s: %v", m.ID, routingKey, err)
			continue
		}
		metrics.MessagesPublishedTotal.WithLabelValues(p.exchange, routingKey).Inc()
		metrics.MovementsRecordedTotal.WithLabelValues(metrics.TenantLabel(m.TenantID), string(m.Type)).Inc()
	}
}

// PrometheusUsageCounter 租户用量计数实现(Prometheus)
// 套餐限额系统从指标端抓取,不走同步调用
type PrometheusUsageCounter struct{}

// NewPrometheusUsageCounter 创建用量计数器
func NewPrometheusUsageCounter() *PrometheusUsageCounter {
	return &PrometheusUsageCounter{}
}

// OrderCreated 出库单创建计数
func (PrometheusUsageCounter) OrderCreated(tenantID uint) {
	metrics.OrdersCreatedTotal.WithLabelValues(metrics.TenantLabel(tenantID)).Inc()
}

// ReceiptConfirmed 入库单确认计数
func (PrometheusUsageCounter) ReceiptConfirmed(tenantID uint) {
	metrics.ReceiptsConfirmedTotal.WithLabelValues(metrics.TenantLabel(tenantID)).Inc()
}

// TransferExecuted 转移执行计数
func (PrometheusUsageCounter) TransferExecuted(tenantID uint) {
	metrics.TransfersExecutedTotal.WithLabelValues(metrics.TenantLabel(tenantID)).Inc()
}
