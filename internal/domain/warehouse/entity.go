package warehouse

import (
	"time"

	"github.com/shopspring/decimal"
)

// Warehouse 仓库实体
type Warehouse struct {
	ID        uint
	TenantID  uint
	Code      string
	Name      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Location 库位实体
// 设计说明:
// 1. SlotCapacity为nil表示不限容量;转移执行器开启容量检查时,
//    目标库位上该商品的存量+转入量不得超过容量
// 2. 转移执行器选择"最早创建的活跃库位"作为默认收发库位,
//    排序依据是ID(自增,创建序确定)
type Location struct {
	ID           uint
	TenantID     uint
	WarehouseID  uint
	Code         string
	Zone         string // 库区(收货区/存储区/发货区)
	SlotCapacity *decimal.Decimal
	IsActive     bool
	CreatedAt    time.Time
}

// TolerancePolicy 收货容差策略
// 设计说明:
// 1. 解析是层级式的:商品+仓库 → 仓库 → 商品 → 租户默认,最具体者生效
// 2. MaxUnderReceiptPct为nil表示不做欠收校验
type TolerancePolicy struct {
	ID                 uint
	TenantID           uint
	WarehouseID        *uint // nil表示对所有仓库生效
	ProductID          *uint // nil表示对所有商品生效
	MaxOverReceiptPct  decimal.Decimal
	MaxUnderReceiptPct *decimal.Decimal
	CreatedAt          time.Time
}

// Specificity 策略的具体程度(越大越具体,解析时取最大)
// 顺序:商品+仓库(3) > 仅仓库(2) > 仅商品(1) > 租户默认(0)
func (p *TolerancePolicy) Specificity() int {
	s := 0
	if p.WarehouseID != nil {
		s += 2
	}
	if p.ProductID != nil {
		s++
	}
	return s
}

// OutboundRule 租户级出库规则
// RequireFullAllocation=true时,释放订单必须全量分配成功,
// 否则整单失败、不提交任何部分预留
type OutboundRule struct {
	ID                    uint
	TenantID              uint
	RequireFullAllocation bool
}
