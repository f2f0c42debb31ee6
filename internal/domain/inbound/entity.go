package inbound

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptStatus 入库单状态
type ReceiptStatus int

const (
	ReceiptStatusDraft             ReceiptStatus = 1 // 草稿
	ReceiptStatusPartiallyReceived ReceiptStatus = 2 // 部分收货
	ReceiptStatusReceived          ReceiptStatus = 3 // 收货完成
)

// String 实现Stringer接口
func (s ReceiptStatus) String() string {
	switch s {
	case ReceiptStatusDraft:
		return "DRAFT"
	case ReceiptStatusPartiallyReceived:
		return "PARTIALLY_RECEIVED"
	case ReceiptStatusReceived:
		return "RECEIVED"
	default:
		return "UNKNOWN"
	}
}

// Receipt 入库单实体(聚合根)
// 设计说明:
// 1. Receipt是聚合根,ReceiptLine是子实体
// 2. 状态由行的收货进度推导:全部行收满→RECEIVED,否则→PARTIALLY_RECEIVED
// 3. 只有DRAFT/PARTIALLY_RECEIVED状态的入库单可以再次确认收货
type Receipt struct {
	ID          uint
	TenantID    uint
	WarehouseID uint
	ExternalRef string // 外部单据号(采购单/ASN)
	Status      ReceiptStatus
	Lines       []ReceiptLine
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ReceiptLine 入库单行
// 设计说明:
// 1. ExpectedQty创建后不可变;ReceivedQty只增不减
// 2. 行上的BatchCode/ExpiryDate是创建时的预报值,确认收货时
//    可以按行覆盖
type ReceiptLine struct {
	ID            uint
	ReceiptID     uint
	ProductID     uint
	ExpectedQty   decimal.Decimal
	ReceivedQty   decimal.Decimal
	UnitOfMeasure string
	BatchCode     *string
	ExpiryDate    *time.Time
}

// NewReceipt 创建入库单(工厂方法,初始状态DRAFT)
func NewReceipt(tenantID, warehouseID uint, externalRef string) *Receipt {
	now := time.Now()
	return &Receipt{
		TenantID:    tenantID,
		WarehouseID: warehouseID,
		ExternalRef: externalRef,
		Status:      ReceiptStatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// AddLine 添加入库单行(领域行为)
// 业务规则:只有DRAFT状态可以加行;预期数量必须>0
func (r *Receipt) AddLine(productID uint, expectedQty decimal.Decimal, uom string, batchCode *string, expiryDate *time.Time) (*ReceiptLine, error) {
	if r.Status != ReceiptStatusDraft {
		return nil, ErrInvalidState
	}
	if !expectedQty.IsPositive() {
		return nil, ErrInvalidQuantity
	}
	line := ReceiptLine{
		ReceiptID:     r.ID,
		ProductID:     productID,
		ExpectedQty:   expectedQty,
		ReceivedQty:   decimal.Zero,
		UnitOfMeasure: uom,
		BatchCode:     batchCode,
		ExpiryDate:    expiryDate,
	}
	r.Lines = append(r.Lines, line)
	r.UpdatedAt = time.Now()
	return &r.Lines[len(r.Lines)-1], nil
}

// CanConfirm 是否允许确认收货
func (r *Receipt) CanConfirm() bool {
	return r.Status == ReceiptStatusDraft || r.Status == ReceiptStatusPartiallyReceived
}

// RecomputeStatus 根据行收货进度重算状态
// RECEIVED当且仅当每一行的已收量>=预期量
func (r *Receipt) RecomputeStatus() {
	allReceived := true
	anyReceived := false
	for i := range r.Lines {
		if r.Lines[i].ReceivedQty.GreaterThanOrEqual(r.Lines[i].ExpectedQty) {
			anyReceived = true
		} else {
			allReceived = false
			if r.Lines[i].ReceivedQty.IsPositive() {
				anyReceived = true
			}
		}
	}
	switch {
	case len(r.Lines) > 0 && allReceived:
		r.Status = ReceiptStatusReceived
	case anyReceived:
		r.Status = ReceiptStatusPartiallyReceived
	default:
		r.Status = ReceiptStatusDraft
	}
	r.UpdatedAt = time.Now()
}

// Pending 行的待收数量(预期-已收,不会为负)
func (l *ReceiptLine) Pending() decimal.Decimal {
	pending := l.ExpectedQty.Sub(l.ReceivedQty)
	if pending.IsNegative() {
		return decimal.Zero
	}
	return pending
}

// MaxReceivable 行的最大可收总量(预期×(1+超收容差%/100))
func (l *ReceiptLine) MaxReceivable(maxOverReceiptPct decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Add(maxOverReceiptPct.Div(decimal.NewFromInt(100)))
	return l.ExpectedQty.Mul(factor)
}

// ApplyReceive 累加已收数量(只增不减)
func (l *ReceiptLine) ApplyReceive(qty decimal.Decimal) error {
	if !qty.IsPositive() {
		return ErrInvalidQuantity
	}
	l.ReceivedQty = l.ReceivedQty.Add(qty)
	return nil
}
