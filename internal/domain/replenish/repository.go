package replenish

import (
	"context"

	"github.com/shopspring/decimal"
)

// PolicyRepository 补货策略仓储接口
type PolicyRepository interface {
	// FindByID 根据ID查找策略
	FindByID(ctx context.Context, tenantID, id uint) (*Policy, error)

	// ListActive 查询活跃策略(可按仓库/商品过滤,0表示不过滤)
	ListActive(ctx context.Context, tenantID, warehouseID, productID uint) ([]*Policy, error)
}

// SuggestionRepository 补货建议仓储接口
type SuggestionRepository interface {
	// Create 持久化建议
	Create(ctx context.Context, s *Suggestion) error

	// FindByID 根据ID查找建议
	FindByID(ctx context.Context, tenantID, id uint) (*Suggestion, error)

	// Save 保存建议状态变更
	Save(ctx context.Context, s *Suggestion) error
}

// ConsumptionProvider 日均消耗提供方
// 设计说明:
// 1. 日均消耗=回看窗口内出库移动数量/窗口天数,聚合查询代价高,
//    实现带短TTL缓存(Redis),避免每次评估都打数据库
// 2. 接口定义在domain层,Redis实现与直查实现都在infrastructure层
type ConsumptionProvider interface {
	// AvgDailyConsumption 商品在仓库内的日均消耗量
	AvgDailyConsumption(ctx context.Context, tenantID, warehouseID, productID uint) (decimal.Decimal, error)
}
