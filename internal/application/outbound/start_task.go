package outbound

import (
	"context"

	"github.com/xiebiao/wms/internal/application/uow"
	"github.com/xiebiao/wms/internal/domain/outbound"
)

// StartTaskUseCase 开始拣货任务用例
type StartTaskUseCase struct {
	taskRepo  outbound.TaskRepository
	txManager uow.TxManager
}

// NewStartTaskUseCase 创建开始拣货任务用例
func NewStartTaskUseCase(taskRepo outbound.TaskRepository, txManager uow.TxManager) *StartTaskUseCase {
	return &StartTaskUseCase{taskRepo: taskRepo, txManager: txManager}
}

// StartTaskRequest 开始任务请求DTO
type StartTaskRequest struct {
	TenantID uint
	TaskID   uint
}

// StartTaskResponse 开始任务响应DTO
type StartTaskResponse struct {
	TaskID uint   `json:"task_id"`
	Status string `json:"status"`
}

// Execute 执行开始任务
// 业务规则:只有CREATED/ASSIGNED状态的任务可以开始
func (uc *StartTaskUseCase) Execute(ctx context.Context, req StartTaskRequest) (*StartTaskResponse, error) {
	var task *outbound.PickingTask
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		var err error
		task, err = uc.taskRepo.LockByID(txCtx, req.TenantID, req.TaskID)
		if err != nil {
			return err
		}
		if err := task.Start(); err != nil {
			return err
		}
		return uc.taskRepo.Save(txCtx, task)
	})
	if err != nil {
		return nil, err
	}
	return &StartTaskResponse{TaskID: task.ID, Status: task.Status.String()}, nil
}
