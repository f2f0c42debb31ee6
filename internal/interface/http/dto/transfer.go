package dto

import "github.com/shopspring/decimal"

// TransferLineRequest HTTP转移单行
type TransferLineRequest struct {
	ProductID uint            `json:"product_id" binding:"required" example:"1"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required" swaggertype:"string" example:"20"`
}

// ExecuteTransferRequest HTTP执行仓间转移请求
// 说明：转移是同步执行的，请求成功即库存已落到目标仓
type ExecuteTransferRequest struct {
	SourceWarehouseID      uint                  `json:"source_warehouse_id" binding:"required" example:"1"`
	DestinationWarehouseID uint                  `json:"destination_warehouse_id" binding:"required" example:"2"`
	EnforceCapacity        bool                  `json:"enforce_capacity" example:"false"` // 开启目标库位容量检查
	Lines                  []TransferLineRequest `json:"lines" binding:"required,min=1,dive"`
}
