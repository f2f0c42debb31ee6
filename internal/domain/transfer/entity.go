package transfer

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus 转移单状态
// 状态流转:CREATED → APPROVED → COMPLETED
type OrderStatus int

const (
	OrderStatusCreated   OrderStatus = 1 // 已创建
	OrderStatusApproved  OrderStatus = 2 // 已审批
	OrderStatusCompleted OrderStatus = 3 // 已完成
)

// String 实现Stringer接口
func (s OrderStatus) String() string {
	switch s {
	case OrderStatusCreated:
		return "CREATED"
	case OrderStatusApproved:
		return "APPROVED"
	case OrderStatusCompleted:
		return "COMPLETED"
	default:
		return "UNKNOWN"
	}
}

// Order 仓间转移单实体(聚合根)
// 设计说明:
// 1. 执行转移是唯一一条同时减一个仓库台账、加另一个仓库台账的路径
// 2. 任一行来源可用量不足时整单失败,不做部分转移提交
type Order struct {
	ID                     uint
	TenantID               uint
	SourceWarehouseID      uint
	DestinationWarehouseID uint
	Status                 OrderStatus
	Lines                  []OrderLine
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// OrderLine 转移单行
type OrderLine struct {
	ID            uint
	TransferID    uint
	ProductID     uint
	Quantity      decimal.Decimal
	UnitOfMeasure string
}

// NewOrder 创建转移单(工厂方法,初始状态CREATED)
func NewOrder(tenantID, sourceWarehouseID, destinationWarehouseID uint) *Order {
	now := time.Now()
	return &Order{
		TenantID:               tenantID,
		SourceWarehouseID:      sourceWarehouseID,
		DestinationWarehouseID: destinationWarehouseID,
		Status:                 OrderStatusCreated,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
}

// AddLine 添加转移单行
// 业务规则:只有CREATED状态允许加行;数量必须>0
func (o *Order) AddLine(productID uint, qty decimal.Decimal, uom string) error {
	if o.Status != OrderStatusCreated {
		return ErrInvalidState
	}
	if !qty.IsPositive() {
		return ErrInvalidQuantity
	}
	o.Lines = append(o.Lines, OrderLine{
		TransferID:    o.ID,
		ProductID:     productID,
		Quantity:      qty,
		UnitOfMeasure: uom,
	})
	o.UpdatedAt = time.Now()
	return nil
}

// Approve 审批转移单
func (o *Order) Approve() error {
	if o.Status != OrderStatusCreated {
		return ErrInvalidState
	}
	o.Status = OrderStatusApproved
	o.UpdatedAt = time.Now()
	return nil
}

// Complete 完成转移单
func (o *Order) Complete() error {
	if o.Status != OrderStatusApproved {
		return ErrInvalidState
	}
	o.Status = OrderStatusCompleted
	o.UpdatedAt = time.Now()
	return nil
}
