package stock

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status 库存状态
// 设计说明:
// 1. 状态是分区键的一部分:同一商品在同一库位上,AVAILABLE与RESERVED
//    是两条独立的台账行,分配/拣货只在分区之间搬运数量
// 2. 使用string类型而非int:分区键字段要求自描述,审计流直接可读
type Status string

const (
	StatusAvailable         Status = "AVAILABLE"           // 可用
	StatusReserved          Status = "RESERVED"            // 已预留(待拣货)
	StatusPicking           Status = "PICKING"             // 拣货中
	StatusInTransitInternal Status = "IN_TRANSIT_INTERNAL" // 仓间在途
	StatusQuarantine        Status = "QUARANTINE"          // 质检隔离
	StatusScrap             Status = "SCRAP"               // 报废
	StatusBlocked           Status = "BLOCKED"             // 冻结
)

// Valid 校验状态取值
func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusReserved, StatusPicking,
		StatusInTransitInternal, StatusQuarantine, StatusScrap, StatusBlocked:
		return true
	}
	return false
}

// PartitionKey 分区键
// 设计说明:
// 1. 五个字段全部参与相等性判断,BatchID=nil与具体批次ID是两个
//    不同的分区(nil不是通配符)
// 2. 键字段全部强类型,不允许"可选字段袋"式的动态载荷
type PartitionKey struct {
	ProductID     uint   // 商品ID
	BatchID       *uint  // 批次ID(无批次管理的商品为nil)
	LocationID    uint   // 库位ID
	UnitOfMeasure string // 计量单位
	Status        Status // 库存状态
}

// Equal 分区键相等性判断(五字段精确匹配,含nil批次)
func (k PartitionKey) Equal(other PartitionKey) bool {
	if k.ProductID != other.ProductID ||
		k.LocationID != other.LocationID ||
		k.UnitOfMeasure != other.UnitOfMeasure ||
		k.Status != other.Status {
		return false
	}
	if k.BatchID == nil && other.BatchID == nil {
		return true
	}
	if k.BatchID == nil || other.BatchID == nil {
		return false
	}
	return *k.BatchID == *other.BatchID
}

// WithStatus 返回仅状态不同的新键(分配/拣货在状态之间搬运数量时使用)
func (k PartitionKey) WithStatus(status Status) PartitionKey {
	k.Status = status
	return k
}

// Partition 库存分区(台账行,聚合根)
// 设计说明:
// 1. Quantity使用decimal.Decimal:数量在大量并发加减后必须精确守恒,
//    浮点数会破坏守恒不变量
// 2. 不变量:Quantity >= 0 恒成立;数量为0的分区保留为零行(不删除),
//    便于对账审计
// 3. 商品在所有分区上的数量总和只会因收货、调整、仓间转移而变化,
//    分配与拣货只在分区之间搬运
type Partition struct {
	ID        uint
	TenantID  uint // 租户ID(所有台账读写必须按租户隔离)
	Key       PartitionKey
	Quantity  decimal.Decimal
	CreatedAt time.Time // FIFO分配顺序依据
	UpdatedAt time.Time
}

// NewPartition 创建新分区(工厂方法,数量从0开始)
func NewPartition(tenantID uint, key PartitionKey) *Partition {
	now := time.Now()
	return &Partition{
		TenantID:  tenantID,
		Key:       key,
		Quantity:  decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Add 增加数量(领域行为)
// 业务规则:增量必须>0
func (p *Partition) Add(qty decimal.Decimal) error {
	if !qty.IsPositive() {
		return ErrInvalidQuantity
	}
	p.Quantity = p.Quantity.Add(qty)
	p.UpdatedAt = time.Now()
	return nil
}

// Subtract 减少数量(领域行为)
// 业务规则:减量必须>0,且减后数量不能为负
func (p *Partition) Subtract(qty decimal.Decimal) error {
	if !qty.IsPositive() {
		return ErrInvalidQuantity
	}
	if p.Quantity.LessThan(qty) {
		return ErrInsufficientStock
	}
	p.Quantity = p.Quantity.Sub(qty)
	p.UpdatedAt = time.Now()
	return nil
}
