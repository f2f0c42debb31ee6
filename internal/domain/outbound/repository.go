package outbound

import (
	"context"
)

// Repository 出库单仓储接口
type Repository interface {
	// Create 创建出库单(含行)
	Create(ctx context.Context, o *Order) error

	// FindByID 根据ID查找出库单(含行)
	FindByID(ctx context.Context, tenantID, id uint) (*Order, error)

	// LockByID 悲观锁查询出库单(释放/拣货确认时防止并发状态竞争)
	LockByID(ctx context.Context, tenantID, id uint) (*Order, error)

	// Save 保存出库单头及行的变更
	Save(ctx context.Context, o *Order) error
}

// TaskRepository 拣货任务仓储接口
type TaskRepository interface {
	// Create 创建拣货任务(含行)
	Create(ctx context.Context, t *PickingTask) error

	// FindByID 根据ID查找拣货任务(含行)
	FindByID(ctx context.Context, tenantID, id uint) (*PickingTask, error)

	// LockByID 悲观锁查询拣货任务(确认拣货时防止并发确认)
	LockByID(ctx context.Context, tenantID, id uint) (*PickingTask, error)

	// Save 保存任务头及行的变更
	Save(ctx context.Context, t *PickingTask) error
}
