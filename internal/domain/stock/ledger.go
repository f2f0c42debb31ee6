package stock

import (
	"context"

	"github.com/shopspring/decimal"
)

// Ledger 库存台账领域服务
// 设计说明:
// 1. 台账是唯一权威的数量表,上游五个工作流(收货、分配、拣货、
//    转移、调整)只通过这三个操作改写分区数量
// 2. 所有操作必须在调用方开启的事务内执行(事务DB通过context传入
//    仓储),台账服务自身不开启事务,工作单元由应用层显式持有
// 3. Move是"减+加"的原子组合:同一事务内先锁减来源分区,
//    再加目标分区,任一步失败整体回滚
type Ledger struct {
	partitions Repository
}

// NewLedger 创建台账服务
func NewLedger(partitions Repository) *Ledger {
	return &Ledger{partitions: partitions}
}

// Increase 增加分区数量(分区不存在时创建)
// 业务规则:qty必须>0,否则返回ErrInvalidQuantity
func (l *Ledger) Increase(ctx context.Context, tenantID uint, key PartitionKey, qty decimal.Decimal) (*Partition, error) {
	if !qty.IsPositive() {
		return nil, ErrInvalidQuantity
	}
	if !key.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	p, err := l.partitions.LockOrCreateByKey(ctx, tenantID, key)
	if err != nil {
		return nil, err
	}

	if err := p.Add(qty); err != nil {
		return nil, err
	}

	if err := l.partitions.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Decrease 减少分区数量
// 业务规则:
// 1. qty必须>0
// 2. 分区不存在或数量不足时返回ErrInsufficientStock(减后不能为负)
func (l *Ledger) Decrease(ctx context.Context, tenantID uint, key PartitionKey, qty decimal.Decimal) (*Partition, error) {
	if !qty.IsPositive() {
		return nil, ErrInvalidQuantity
	}

	p, err := l.partitions.LockByKey(ctx, tenantID, key)
	if err != nil {
		if err == ErrPartitionNotFound {
			return nil, ErrInsufficientStock
		}
		return nil, err
	}

	if err := p.Subtract(qty); err != nil {
		return nil, err
	}

	if err := l.partitions.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Move 在两个分区之间搬运数量(原子的减+加)
// 同仓位状态切换(AVAILABLE→RESERVED)和跨仓库转移都走这一个操作,
// 商品总量在Move前后不变(守恒不变量)
func (l *Ledger) Move(ctx context.Context, tenantID uint, from, to PartitionKey, qty decimal.Decimal) error {
	if !qty.IsPositive() {
		return ErrInvalidQuantity
	}
	if from.Equal(to) {
		return ErrSamePartition
	}

	if _, err := l.Decrease(ctx, tenantID, from, qty); err != nil {
		return err
	}
	if _, err := l.Increase(ctx, tenantID, to, qty); err != nil {
		return err
	}
	return nil
}
