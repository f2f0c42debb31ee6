package outbound

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus 出库单状态
// 状态流转:DRAFT → RELEASED → {PARTIALLY_ALLOCATED|FULLY_ALLOCATED}
//          → PICKING → {PARTIALLY_PICKED|PICKED}
type OrderStatus int

const (
	OrderStatusDraft              OrderStatus = 1 // 草稿
	OrderStatusReleased           OrderStatus = 2 // 已释放(未分配到库存)
	OrderStatusPartiallyAllocated OrderStatus = 3 // 部分分配
	OrderStatusFullyAllocated     OrderStatus = 4 // 全量分配
	OrderStatusPicking            OrderStatus = 5 // 拣货中
	OrderStatusPartiallyPicked    OrderStatus = 6 // 部分拣货
	OrderStatusPicked             OrderStatus = 7 // 拣货完成
)

// String 实现Stringer接口
func (s OrderStatus) String() string {
	switch s {
	case OrderStatusDraft:
		return "DRAFT"
	case OrderStatusReleased:
		return "RELEASED"
	case OrderStatusPartiallyAllocated:
		return "PARTIALLY_ALLOCATED"
	case OrderStatusFullyAllocated:
		return "FULLY_ALLOCATED"
	case OrderStatusPicking:
		return "PICKING"
	case OrderStatusPartiallyPicked:
		return "PARTIALLY_PICKED"
	case OrderStatusPicked:
		return "PICKED"
	default:
		return "UNKNOWN"
	}
}

// Order 出库单实体(聚合根)
type Order struct {
	ID          uint
	TenantID    uint
	WarehouseID uint
	Status      OrderStatus
	Lines       []OrderLine
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OrderLine 出库单行
// 不变量:PickedQty <= AllocatedQty <= RequestedQty
type OrderLine struct {
	ID            uint
	OrderID       uint
	ProductID     uint
	RequestedQty  decimal.Decimal
	AllocatedQty  decimal.Decimal
	PickedQty     decimal.Decimal
	UnitOfMeasure string
}

// NewOrder 创建出库单(工厂方法,初始状态DRAFT)
func NewOrder(tenantID, warehouseID uint) *Order {
	now := time.Now()
	return &Order{
		TenantID:    tenantID,
		WarehouseID: warehouseID,
		Status:      OrderStatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// AddLine 添加出库单行(领域行为)
// 业务规则:只有DRAFT状态可以加行;请求数量必须>0
func (o *Order) AddLine(productID uint, requestedQty decimal.Decimal, uom string) error {
	if o.Status != OrderStatusDraft {
		return ErrInvalidState
	}
	if !requestedQty.IsPositive() {
		return ErrInvalidQuantity
	}
	o.Lines = append(o.Lines, OrderLine{
		OrderID:       o.ID,
		ProductID:     productID,
		RequestedQty:  requestedQty,
		AllocatedQty:  decimal.Zero,
		PickedQty:     decimal.Zero,
		UnitOfMeasure: uom,
	})
	o.UpdatedAt = time.Now()
	return nil
}

// CanRelease 是否允许释放(运行分配引擎)
// 业务规则:只有DRAFT且至少有一行的订单可以释放
func (o *Order) CanRelease() bool {
	return o.Status == OrderStatusDraft && len(o.Lines) > 0
}

// CanCreatePickingTask 是否允许创建拣货任务
func (o *Order) CanCreatePickingTask() bool {
	return o.Status == OrderStatusFullyAllocated || o.Status == OrderStatusPartiallyAllocated
}

// RecomputeAllocationStatus 分配后重算状态
// 全部行分配满→FULLY_ALLOCATED;任一行有分配→PARTIALLY_ALLOCATED;
// 否则停留在RELEASED
func (o *Order) RecomputeAllocationStatus() {
	allFull := len(o.Lines) > 0
	anyAllocated := false
	for i := range o.Lines {
		if o.Lines[i].AllocatedQty.IsPositive() {
			anyAllocated = true
		}
		if !o.Lines[i].AllocatedQty.Equal(o.Lines[i].RequestedQty) {
			allFull = false
		}
	}
	switch {
	case allFull:
		o.Status = OrderStatusFullyAllocated
	case anyAllocated:
		o.Status = OrderStatusPartiallyAllocated
	default:
		o.Status = OrderStatusReleased
	}
	o.UpdatedAt = time.Now()
}

// RecomputePickStatus 拣货确认后重算状态
// 全部行拣满(按分配量)→PICKED;任一行有拣货→PARTIALLY_PICKED;否则不变
func (o *Order) RecomputePickStatus() {
	allPicked := len(o.Lines) > 0
	anyPicked := false
	for i := range o.Lines {
		if o.Lines[i].PickedQty.IsPositive() {
			anyPicked = true
		}
		if o.Lines[i].PickedQty.LessThan(o.Lines[i].AllocatedQty) {
			allPicked = false
		}
	}
	switch {
	case allPicked && anyPicked:
		o.Status = OrderStatusPicked
	case anyPicked:
		o.Status = OrderStatusPartiallyPicked
	}
	o.UpdatedAt = time.Now()
}

// Remaining 行的待分配数量(请求-已分配)
func (l *OrderLine) Remaining() decimal.Decimal {
	return l.RequestedQty.Sub(l.AllocatedQty)
}

// ApplyAllocation 累加已分配数量
// 业务规则:分配后不得超过请求数量
func (l *OrderLine) ApplyAllocation(qty decimal.Decimal) error {
	if !qty.IsPositive() {
		return ErrInvalidQuantity
	}
	newAllocated := l.AllocatedQty.Add(qty)
	if newAllocated.GreaterThan(l.RequestedQty) {
		return ErrOverAllocation
	}
	l.AllocatedQty = newAllocated
	return nil
}

// ApplyPick 累加已拣数量
// 业务规则:拣后不得超过已分配数量
func (l *OrderLine) ApplyPick(qty decimal.Decimal) error {
	if !qty.IsPositive() {
		return ErrInvalidQuantity
	}
	newPicked := l.PickedQty.Add(qty)
	if newPicked.GreaterThan(l.AllocatedQty) {
		return ErrOverPick
	}
	l.PickedQty = newPicked
	return nil
}
