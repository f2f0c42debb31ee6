package outbound

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaskStatus 拣货任务状态
// 状态流转:CREATED|ASSIGNED → IN_PROGRESS → COMPLETED
type TaskStatus int

const (
	TaskStatusCreated    TaskStatus = 1 // 已创建(未指派拣货员)
	TaskStatusAssigned   TaskStatus = 2 // 已指派
	TaskStatusInProgress TaskStatus = 3 // 拣货中
	TaskStatusCompleted  TaskStatus = 4 // 已完成
)

// String 实现Stringer接口
func (s TaskStatus) String() string {
	switch s {
	case TaskStatusCreated:
		return "CREATED"
	case TaskStatusAssigned:
		return "ASSIGNED"
	case TaskStatusInProgress:
		return "IN_PROGRESS"
	case TaskStatusCompleted:
		return "COMPLETED"
	default:
		return "UNKNOWN"
	}
}

// PickingTask 拣货任务实体(聚合根)
// 设计说明:
// 1. 一个出库单一个任务;每条任务行绑定一个具体的RESERVED分区
//    (商品+批次+来源库位),QuantityToPick复制自预留量
// 2. 只有IN_PROGRESS的任务接受拣货确认
type PickingTask struct {
	ID        uint
	TenantID  uint
	OrderID   uint
	PickerID  *uint // 拣货员(可选,创建时指定则任务直接进入ASSIGNED)
	Status    TaskStatus
	Lines     []PickingTaskLine
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PickingTaskLine 拣货任务行
// 不变量:QuantityPicked <= QuantityToPick
type PickingTaskLine struct {
	ID             uint
	TaskID         uint
	OrderLineID    uint
	ProductID      uint
	BatchID        *uint
	FromLocationID uint
	UnitOfMeasure  string
	QuantityToPick decimal.Decimal
	QuantityPicked decimal.Decimal
}

// NewPickingTask 创建拣货任务(工厂方法)
// 指定拣货员时初始状态为ASSIGNED,否则为CREATED
func NewPickingTask(tenantID, orderID uint, pickerID *uint) *PickingTask {
	now := time.Now()
	status := TaskStatusCreated
	if pickerID != nil {
		status = TaskStatusAssigned
	}
	return &PickingTask{
		TenantID:  tenantID,
		OrderID:   orderID,
		PickerID:  pickerID,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Start 开始拣货(领域行为)
// 业务规则:只有CREATED/ASSIGNED状态可以开始
func (t *PickingTask) Start() error {
	if t.Status != TaskStatusCreated && t.Status != TaskStatusAssigned {
		return ErrInvalidState
	}
	t.Status = TaskStatusInProgress
	t.UpdatedAt = time.Now()
	return nil
}

// CanConfirm 是否接受拣货确认
func (t *PickingTask) CanConfirm() bool {
	return t.Status == TaskStatusInProgress
}

// RecomputeStatus 拣货确认后重算状态
// 每一行的已拣量都等于应拣量时任务完成
func (t *PickingTask) RecomputeStatus() {
	for i := range t.Lines {
		if !t.Lines[i].QuantityPicked.Equal(t.Lines[i].QuantityToPick) {
			return
		}
	}
	t.Status = TaskStatusCompleted
	t.UpdatedAt = time.Now()
}

// RemainingToPick 行的剩余应拣数量
func (l *PickingTaskLine) RemainingToPick() decimal.Decimal {
	return l.QuantityToPick.Sub(l.QuantityPicked)
}

// ApplyPick 累加已拣数量(领域行为)
// 业务规则:拣后不得超过应拣量,超出返回ErrOverPick且数量不变
func (l *PickingTaskLine) ApplyPick(qty decimal.Decimal) error {
	if !qty.IsPositive() {
		return ErrInvalidQuantity
	}
	if qty.GreaterThan(l.RemainingToPick()) {
		return ErrOverPick
	}
	l.QuantityPicked = l.QuantityPicked.Add(qty)
	return nil
}
