package transfer

import (
	"context"
)

// Repository 转移单仓储接口
type Repository interface {
	// Create 创建转移单(含行)
	Create(ctx context.Context, o *Order) error

	// FindByID 根据ID查找转移单(含行)
	FindByID(ctx context.Context, tenantID, id uint) (*Order, error)

	// Save 保存转移单变更
	Save(ctx context.Context, o *Order) error
}
