package outbound

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/wms/internal/application/audit"
	"github.com/xiebiao/wms/internal/application/uow"
	"github.com/xiebiao/wms/internal/domain/outbound"
	"github.com/xiebiao/wms/internal/domain/stock"
)

// ConfirmPickingUseCase 确认拣货用例
// 设计说明:
// 1. 拣货即出库:确认时从RESERVED分区直接出账,库存离开台账
//    (打包/发运是下游系统的事,不在台账上)
// 2. RESERVED分区持有量少于确认量是台账与任务失同步的信号,
//    按一致性错误处理,与普通业务拒绝区分
// 3. 任一行失败整个事务回滚,不存在部分行已出账的中间态
type ConfirmPickingUseCase struct {
	taskRepo      outbound.TaskRepository
	orderRepo     outbound.Repository
	partitionRepo stock.Repository
	ledger        *stock.Ledger
	movementRepo  stock.MovementRepository
	txManager     uow.TxManager
	recorder      audit.Recorder
}

// NewConfirmPickingUseCase 创建确认拣货用例
func NewConfirmPickingUseCase(
	taskRepo outbound.TaskRepository,
	orderRepo outbound.Repository,
	partitionRepo stock.Repository,
	ledger *stock.Ledger,
	movementRepo stock.MovementRepository,
	txManager uow.TxManager,
	recorder audit.Recorder,
) *ConfirmPickingUseCase {
	return &ConfirmPickingUseCase{
		taskRepo:      taskRepo,
		orderRepo:     orderRepo,
		partitionRepo: partitionRepo,
		ledger:        ledger,
		movementRepo:  movementRepo,
		txManager:     txManager,
		recorder:      recorder,
	}
}

// ConfirmPickLine 行级拣货确认
type ConfirmPickLine struct {
	TaskLineID     uint
	QuantityPicked decimal.Decimal
}

// ConfirmPickingRequest 确认拣货请求DTO
type ConfirmPickingRequest struct {
	TenantID uint
	TaskID   uint
	Lines    []ConfirmPickLine
}

// ConfirmPickingResponse 确认拣货响应DTO
type ConfirmPickingResponse struct {
	TaskID      uint   `json:"task_id"`
	TaskStatus  string `json:"task_status"`
	OrderID     uint   `json:"order_id"`
	OrderStatus string `json:"order_status"`
}

// Execute 执行确认拣货
// 算法(逐行,同一事务):
//  1. 校验确认量不超过行的剩余应拣量(OverPick)
//  2. 锁定对应RESERVED分区并校验持有量(InsufficientReservation)
//  3. 台账RESERVED分区出账,任务行/订单行累加已拣量
//  4. 追加OUTBOUND_SHIPMENT移动记录(只有来源库位)
func (uc *ConfirmPickingUseCase) Execute(ctx context.Context, req ConfirmPickingRequest) (*ConfirmPickingResponse, error) {
	seen := make(map[uint]bool, len(req.Lines))
	for _, l := range req.Lines {
		if seen[l.TaskLineID] {
			return nil, outbound.ErrDuplicateLineID
		}
		seen[l.TaskLineID] = true
	}

	var (
		task      *outbound.PickingTask
		order     *outbound.Order
		movements []*stock.Movement
	)
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		var err error
		task, err = uc.taskRepo.LockByID(txCtx, req.TenantID, req.TaskID)
		if err != nil {
			return err
		}
		if !task.CanConfirm() {
			return outbound.ErrInvalidState
		}
		order, err = uc.orderRepo.LockByID(txCtx, req.TenantID, task.OrderID)
		if err != nil {
			return err
		}

		taskLineByID := make(map[uint]*outbound.PickingTaskLine, len(task.Lines))
		for i := range task.Lines {
			taskLineByID[task.Lines[i].ID] = &task.Lines[i]
		}
		orderLineByID := make(map[uint]*outbound.OrderLine, len(order.Lines))
		for i := range order.Lines {
			orderLineByID[order.Lines[i].ID] = &order.Lines[i]
		}

		for _, reqLine := range req.Lines {
			taskLine, ok := taskLineByID[reqLine.TaskLineID]
			if !ok {
				return outbound.ErrTaskLineNotFound
			}

			// 1. 超拣校验(数量不变地失败)
			if !reqLine.QuantityPicked.IsPositive() {
				return outbound.ErrInvalidQuantity
			}
			if reqLine.QuantityPicked.GreaterThan(taskLine.RemainingToPick()) {
				return outbound.ErrOverPick
			}

			// 2. 预留分区持有量校验:少于确认量说明台账与任务失同步
			key := stock.PartitionKey{
				ProductID:     taskLine.ProductID,
				BatchID:       taskLine.BatchID,
				LocationID:    taskLine.FromLocationID,
				UnitOfMeasure: taskLine.UnitOfMeasure,
				Status:        stock.StatusReserved,
			}
			partition, err := uc.partitionRepo.LockByKey(txCtx, req.TenantID, key)
			if err != nil {
				// 分区消失等同于预留量不足,其余错误(如数据库故障)原样上抛
				if errors.Is(err, stock.ErrPartitionNotFound) {
					return stock.ErrInsufficientReservation
				}
				return err
			}
			if partition.Quantity.LessThan(reqLine.QuantityPicked) {
				return stock.ErrInsufficientReservation
			}

			// 3. 出账+进度累加
			if _, err := uc.ledger.Decrease(txCtx, req.TenantID, key, reqLine.QuantityPicked); err != nil {
				return err
			}
			if err := taskLine.ApplyPick(reqLine.QuantityPicked); err != nil {
				return err
			}
			orderLine, ok := orderLineByID[taskLine.OrderLineID]
			if !ok {
				return outbound.ErrTaskLineNotFound
			}
			if err := orderLine.ApplyPick(reqLine.QuantityPicked); err != nil {
				return err
			}

			// 4. 移动记录
			m := stock.NewOutboundMovement(req.TenantID, taskLine.ProductID, taskLine.BatchID,
				taskLine.FromLocationID, taskLine.UnitOfMeasure, reqLine.QuantityPicked, order.ID)
			if err := uc.movementRepo.Create(txCtx, m); err != nil {
				return err
			}
			movements = append(movements, m)
		}

		task.RecomputeStatus()
		order.RecomputePickStatus()
		if err := uc.taskRepo.Save(txCtx, task); err != nil {
			return err
		}
		return uc.orderRepo.Save(txCtx, order)
	})
	if err != nil {
		return nil, err
	}

	uc.recorder.MovementsCommitted(ctx, movements)

	return &ConfirmPickingResponse{
		TaskID:      task.ID,
		TaskStatus:  task.Status.String(),
		OrderID:     order.ID,
		OrderStatus: order.Status.String(),
	}, nil
}
