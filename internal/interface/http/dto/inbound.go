package dto

import "github.com/shopspring/decimal"

// CreateReceiptLineRequest HTTP入库单行
// 说明：数量使用decimal（JSON数字或字符串均可），避免浮点误差
type CreateReceiptLineRequest struct {
	ProductID     uint            `json:"product_id" binding:"required" example:"1"`
	ExpectedQty   decimal.Decimal `json:"expected_qty" binding:"required" swaggertype:"string" example:"100"`
	UnitOfMeasure string          `json:"unit_of_measure" binding:"max=32" example:"EA"` // 为空时使用商品默认计量单位
	BatchCode     *string         `json:"batch_code" binding:"omitempty,max=64" example:"LOT-2026-001"`
	ExpiryDate    *string         `json:"expiry_date" binding:"omitempty" example:"2026-12-31"` // 格式：2006-01-02
}

// CreateReceiptRequest HTTP创建入库单请求
type CreateReceiptRequest struct {
	WarehouseID uint                       `json:"warehouse_id" binding:"required" example:"1"`
	ExternalRef string                     `json:"external_ref" binding:"max=64" example:"PO-20260901-001"` // 外部单据号(采购单/ASN)
	Lines       []CreateReceiptLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// AddReceiptLineRequest HTTP追加入库单行请求
type AddReceiptLineRequest struct {
	ProductID     uint            `json:"product_id" binding:"required" example:"2"`
	ExpectedQty   decimal.Decimal `json:"expected_qty" binding:"required" swaggertype:"string" example:"50"`
	UnitOfMeasure string          `json:"unit_of_measure" binding:"max=32" example:"EA"`
	BatchCode     *string         `json:"batch_code" binding:"omitempty,max=64" example:"LOT-2026-002"`
	ExpiryDate    *string         `json:"expiry_date" binding:"omitempty" example:"2027-06-30"`
}

// ConfirmLineOverride HTTP确认收货行覆盖
// 说明：只对实收与预期不一致的行提交覆盖，未覆盖的行按预期量全收
type ConfirmLineOverride struct {
	LineID      uint             `json:"line_id" binding:"required" example:"1"`
	ReceivedQty *decimal.Decimal `json:"received_qty" binding:"omitempty" swaggertype:"string" example:"95"`
	BatchCode   *string          `json:"batch_code" binding:"omitempty,max=64" example:"LOT-2026-001A"`
	ExpiryDate  *string          `json:"expiry_date" binding:"omitempty" example:"2026-12-31"`
}

// ConfirmReceiptRequest HTTP确认收货请求
type ConfirmReceiptRequest struct {
	DestinationLocationID uint                  `json:"destination_location_id" binding:"required" example:"10"`
	Overrides             []ConfirmLineOverride `json:"overrides" binding:"omitempty,dive"`
}
