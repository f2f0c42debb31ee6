package dto

// EvaluateReplenishRequest HTTP补货评估请求
// 说明：warehouse_id/product_id为0时评估该租户的全部启用策略
type EvaluateReplenishRequest struct {
	WarehouseID uint `json:"warehouse_id" binding:"omitempty" example:"2"`
	ProductID   uint `json:"product_id" binding:"omitempty" example:"1"`
	Force       bool `json:"force" example:"false"` // 为true时缺口为0也生成建议（人工核对用）
}
