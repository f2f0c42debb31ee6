package outbound

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/wms/internal/application/uow"
	"github.com/xiebiao/wms/internal/domain/outbound"
	"github.com/xiebiao/wms/internal/domain/stock"
)

// CreatePickingTaskUseCase 创建拣货任务用例
// 设计说明:
// 1. 一个出库单一个任务;每条任务行绑定一个RESERVED分区
//    (商品+批次+来源库位),应拣量复制自分区的预留量
// 2. 创建时指定拣货员则任务直接进入ASSIGNED
type CreatePickingTaskUseCase struct {
	orderRepo     outbound.Repository
	taskRepo      outbound.TaskRepository
	partitionRepo stock.Repository
	txManager     uow.TxManager
}

// NewCreatePickingTaskUseCase 创建拣货任务用例
func NewCreatePickingTaskUseCase(
	orderRepo outbound.Repository,
	taskRepo outbound.TaskRepository,
	partitionRepo stock.Repository,
	txManager uow.TxManager,
) *CreatePickingTaskUseCase {
	return &CreatePickingTaskUseCase{
		orderRepo:     orderRepo,
		taskRepo:      taskRepo,
		partitionRepo: partitionRepo,
		txManager:     txManager,
	}
}

// CreatePickingTaskRequest 创建拣货任务请求DTO
type CreatePickingTaskRequest struct {
	TenantID uint
	OrderID  uint
	PickerID *uint
}

// CreatePickingTaskResponse 创建拣货任务响应DTO
type CreatePickingTaskResponse struct {
	TaskID    uint   `json:"task_id"`
	Status    string `json:"status"`
	LineCount int    `json:"line_count"`
}

// Execute 执行创建拣货任务
// 业务规则:只有FULLY_ALLOCATED/PARTIALLY_ALLOCATED的订单可以建任务
func (uc *CreatePickingTaskUseCase) Execute(ctx context.Context, req CreatePickingTaskRequest) (*CreatePickingTaskResponse, error) {
	var task *outbound.PickingTask
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		order, err := uc.orderRepo.LockByID(txCtx, req.TenantID, req.OrderID)
		if err != nil {
			return err
		}
		if !order.CanCreatePickingTask() {
			return outbound.ErrInvalidState
		}

		task = outbound.NewPickingTask(req.TenantID, order.ID, req.PickerID)

		// 同一商品出现在多行时,任务行归属到该商品的第一行
		lineOfProduct := make(map[uint]uint)
		for i := range order.Lines {
			if _, ok := lineOfProduct[order.Lines[i].ProductID]; !ok {
				lineOfProduct[order.Lines[i].ProductID] = order.Lines[i].ID
			}
		}

		seen := make(map[uint]bool)
		for i := range order.Lines {
			productID := order.Lines[i].ProductID
			if seen[productID] {
				continue
			}
			seen[productID] = true

			partitions, err := uc.partitionRepo.LockByProductStatus(
				txCtx, req.TenantID, order.WarehouseID, productID, stock.StatusReserved)
			if err != nil {
				return err
			}
			for _, p := range partitions {
				if !p.Quantity.IsPositive() {
					continue
				}
				task.Lines = append(task.Lines, outbound.PickingTaskLine{
					OrderLineID:    lineOfProduct[productID],
					ProductID:      productID,
					BatchID:        p.Key.BatchID,
					FromLocationID: p.Key.LocationID,
					UnitOfMeasure:  p.Key.UnitOfMeasure,
					QuantityToPick: p.Quantity,
					QuantityPicked: decimal.Zero,
				})
			}
		}

		return uc.taskRepo.Create(txCtx, task)
	})
	if err != nil {
		return nil, err
	}

	return &CreatePickingTaskResponse{
		TaskID:    task.ID,
		Status:    task.Status.String(),
		LineCount: len(task.Lines),
	}, nil
}
