package inbound

import (
	"context"
)

// Repository 入库单仓储接口
type Repository interface {
	// Create 创建入库单(含行)
	Create(ctx context.Context, r *Receipt) error

	// FindByID 根据ID查找入库单(含行)
	FindByID(ctx context.Context, tenantID, id uint) (*Receipt, error)

	// LockByID 悲观锁查询入库单(确认收货时防止并发重复确认)
	LockByID(ctx context.Context, tenantID, id uint) (*Receipt, error)

	// Save 保存入库单头及行的变更
	Save(ctx context.Context, r *Receipt) error
}
