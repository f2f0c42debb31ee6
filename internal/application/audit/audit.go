// Package audit 定义台账对外暴露的协作接口
//
// 设计说明:
// 1. 移动记录审计流:每一笔台账变动产生一条移动记录,事务提交后
//    发布给报表/追溯系统(MQ实现);发布失败不影响已提交的业务
// 2. 用量计数钩子:创建出库单/执行转移时递增租户用量计数,
//    供套餐限额系统消费(Prometheus实现)
// 3. 两个接口都允许注入Nop实现:用例测试不关心外发
package audit

import (
	"context"

	"github.com/xiebiao/wms/internal/domain/stock"
)

// Recorder 移动记录审计流
type Recorder interface {
	// MovementsCommitted 通知一批移动记录已随事务提交
	MovementsCommitted(ctx context.Context, movements []*stock.Movement)
}

// UsageCounter 租户用量计数钩子
type UsageCounter interface {
	// OrderCreated 出库单创建计数
	OrderCreated(tenantID uint)

	// ReceiptConfirmed 入库单确认计数
	ReceiptConfirmed(tenantID uint)

	// TransferExecuted 转移执行计数
	TransferExecuted(tenantID uint)
}

// NopRecorder 空审计流(测试用)
type NopRecorder struct{}

// MovementsCommitted 不做任何事
func (NopRecorder) MovementsCommitted(ctx context.Context, movements []*stock.Movement) {}

// NopUsageCounter 空用量计数(测试用)
type NopUsageCounter struct{}

// OrderCreated 不做任何事
func (NopUsageCounter) OrderCreated(tenantID uint) {}

// ReceiptConfirmed 不做任何事
func (NopUsageCounter) ReceiptConfirmed(tenantID uint) {}

// TransferExecuted 不做任何事
func (NopUsageCounter) TransferExecuted(tenantID uint) {}
