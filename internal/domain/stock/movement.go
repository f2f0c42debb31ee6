package stock

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType 库存移动类型
type MovementType string

const (
	MovementInboundReceipt   MovementType = "INBOUND_RECEIPT"   // 收货入账(只有目标库位)
	MovementOutboundShipment MovementType = "OUTBOUND_SHIPMENT" // 拣货出账(只有来源库位)
	MovementInternalTransfer MovementType = "INTERNAL_TRANSFER" // 仓间转移(来源+目标)
	MovementAdjustment       MovementType = "ADJUSTMENT"        // 人工调整(来源或目标二选一)
)

// Movement 库存移动记录(审计流)
// 设计说明:
// 1. 每一笔台账变动产生一条移动记录,对外发布给报表/追溯系统
// 2. 不同移动类型的库位字段不同:入库只有目标,出库只有来源,
//    转移两者都有,用工厂方法收紧变体,不做"全可选"结构
// 3. 移动记录只追加不修改(审计数据不可变)
type Movement struct {
	ID             uint
	TenantID       uint
	Type           MovementType
	ProductID      uint
	BatchID        *uint
	FromLocationID *uint // 来源库位(入库移动为nil)
	ToLocationID   *uint // 目标库位(出库移动为nil)
	UnitOfMeasure  string
	Quantity       decimal.Decimal
	ReferenceType  string // 关联单据类型(RECEIPT/ORDER/TRANSFER/ADJUSTMENT)
	ReferenceID    uint   // 关联单据ID
	CreatedAt      time.Time
}

// NewInboundMovement 收货入账移动(只有目标库位)
func NewInboundMovement(tenantID, productID uint, batchID *uint, toLocationID uint, uom string, qty decimal.Decimal, receiptID uint) *Movement {
	return &Movement{
		TenantID:      tenantID,
		Type:          MovementInboundReceipt,
		ProductID:     productID,
		BatchID:       batchID,
		ToLocationID:  &toLocationID,
		UnitOfMeasure: uom,
		Quantity:      qty,
		ReferenceType: "RECEIPT",
		ReferenceID:   receiptID,
		CreatedAt:     time.Now(),
	}
}

// NewOutboundMovement 拣货出账移动(只有来源库位,库存离开台账)
func NewOutboundMovement(tenantID, productID uint, batchID *uint, fromLocationID uint, uom string, qty decimal.Decimal, orderID uint) *Movement {
	return &Movement{
		TenantID:       tenantID,
		Type:           MovementOutboundShipment,
		ProductID:      productID,
		BatchID:        batchID,
		FromLocationID: &fromLocationID,
		UnitOfMeasure:  uom,
		Quantity:       qty,
		ReferenceType:  "ORDER",
		ReferenceID:    orderID,
		CreatedAt:      time.Now(),
	}
}

// NewTransferMovement 仓间转移移动(来源+目标)
func NewTransferMovement(tenantID, productID uint, batchID *uint, fromLocationID, toLocationID uint, uom string, qty decimal.Decimal, transferID uint) *Movement {
	return &Movement{
		TenantID:       tenantID,
		Type:           MovementInternalTransfer,
		ProductID:      productID,
		BatchID:        batchID,
		FromLocationID: &fromLocationID,
		ToLocationID:   &toLocationID,
		UnitOfMeasure:  uom,
		Quantity:       qty,
		ReferenceType:  "TRANSFER",
		ReferenceID:    transferID,
		CreatedAt:      time.Now(),
	}
}

// NewAdjustmentMovement 人工调整移动
// increase=true时只有目标库位(调增),否则只有来源库位(调减)
func NewAdjustmentMovement(tenantID, productID uint, batchID *uint, locationID uint, uom string, qty decimal.Decimal, increase bool, adjustmentID uint) *Movement {
	m := &Movement{
		TenantID:      tenantID,
		Type:          MovementAdjustment,
		ProductID:     productID,
		BatchID:       batchID,
		UnitOfMeasure: uom,
		Quantity:      qty,
		ReferenceType: "ADJUSTMENT",
		ReferenceID:   adjustmentID,
		CreatedAt:     time.Now(),
	}
	if increase {
		m.ToLocationID = &locationID
	} else {
		m.FromLocationID = &locationID
	}
	return m
}
