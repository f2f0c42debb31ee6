package dto

import "github.com/shopspring/decimal"

// AdjustStockRequest HTTP库存调整请求
// 说明：盘点差异等场景使用，direction指明调增还是调减
type AdjustStockRequest struct {
	LocationID    uint            `json:"location_id" binding:"required" example:"10"`
	ProductID     uint            `json:"product_id" binding:"required" example:"1"`
	BatchID       *uint           `json:"batch_id" binding:"omitempty" example:"3"`
	UnitOfMeasure string          `json:"unit_of_measure" binding:"max=32" example:"EA"` // 为空时使用商品默认计量单位
	Quantity      decimal.Decimal `json:"quantity" binding:"required" swaggertype:"string" example:"5"`
	Direction     string          `json:"direction" binding:"required,oneof=INCREASE DECREASE" example:"INCREASE"`
	ReferenceID   uint            `json:"reference_id" binding:"required" example:"2001"` // 盘点单号等外部依据
}

// StockQueryRequest HTTP库存查询请求（Query参数）
type StockQueryRequest struct {
	ProductID   uint `form:"product_id" binding:"required" example:"1"`
	WarehouseID uint `form:"warehouse_id" binding:"omitempty" example:"1"` // 指定时返回该仓可用量汇总
}
