package dto

import "github.com/shopspring/decimal"

// CreateOrderLineRequest HTTP出库单行
type CreateOrderLineRequest struct {
	ProductID     uint            `json:"product_id" binding:"required" example:"1"`
	RequestedQty  decimal.Decimal `json:"requested_qty" binding:"required" swaggertype:"string" example:"30"`
	UnitOfMeasure string          `json:"unit_of_measure" binding:"max=32" example:"EA"` // 为空时使用商品默认计量单位
}

// CreateOrderRequest HTTP创建出库单请求
type CreateOrderRequest struct {
	WarehouseID uint                     `json:"warehouse_id" binding:"required" example:"1"`
	Lines       []CreateOrderLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// CreatePickingTaskRequest HTTP创建拣货任务请求
type CreatePickingTaskRequest struct {
	OrderID  uint  `json:"order_id" binding:"required" example:"1"`
	PickerID *uint `json:"picker_id" binding:"omitempty" example:"7"` // 指定拣货员，可空
}

// ConfirmPickLine HTTP拣货确认行
type ConfirmPickLine struct {
	TaskLineID     uint            `json:"task_line_id" binding:"required" example:"1"`
	QuantityPicked decimal.Decimal `json:"quantity_picked" binding:"required" swaggertype:"string" example:"30"`
}

// ConfirmPickingRequest HTTP拣货确认请求
// 说明：支持部分确认，同一任务可分多次提交不同的行
type ConfirmPickingRequest struct {
	Lines []ConfirmPickLine `json:"lines" binding:"required,min=1,dive"`
}
