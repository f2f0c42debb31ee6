package memory

import (
	"context"
	"sync"

	"github.com/xiebiao/wms/internal/domain/inbound"
	"github.com/xiebiao/wms/internal/domain/outbound"
	"github.com/xiebiao/wms/internal/domain/transfer"
)

// ReceiptRepository 入库单内存仓储
type ReceiptRepository struct {
	mu         sync.Mutex
	receipts   map[uint]*inbound.Receipt
	nextID     uint
	nextLineID uint
}

// NewReceiptRepository 创建入库单内存仓储
func NewReceiptRepository() *ReceiptRepository {
	return &ReceiptRepository{receipts: make(map[uint]*inbound.Receipt), nextID: 1, nextLineID: 1}
}

// Create 创建入库单,为头和行分配ID
func (r *ReceiptRepository) Create(ctx context.Context, receipt *inbound.Receipt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	receipt.ID = r.nextID
	r.nextID++
	for i := range receipt.Lines {
		receipt.Lines[i].ID = r.nextLineID
		receipt.Lines[i].ReceiptID = receipt.ID
		r.nextLineID++
	}
	r.receipts[receipt.ID] = receipt
	return nil
}

// FindByID 根据ID查找入库单
func (r *ReceiptRepository) FindByID(ctx context.Context, tenantID, id uint) (*inbound.Receipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	receipt, ok := r.receipts[id]
	if !ok || receipt.TenantID != tenantID {
		return nil, inbound.ErrReceiptNotFound
	}
	return receipt, nil
}

// LockByID 内存实现中与FindByID等价
func (r *ReceiptRepository) LockByID(ctx context.Context, tenantID, id uint) (*inbound.Receipt, error) {
	return r.FindByID(ctx, tenantID, id)
}

// Save 保存入库单变更,为新增行补分配ID
func (r *ReceiptRepository) Save(ctx context.Context, receipt *inbound.Receipt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range receipt.Lines {
		if receipt.Lines[i].ID == 0 {
			receipt.Lines[i].ID = r.nextLineID
			receipt.Lines[i].ReceiptID = receipt.ID
			r.nextLineID++
		}
	}
	r.receipts[receipt.ID] = receipt
	return nil
}

// Snapshot 拍入库单深拷贝快照(头+行)
func (r *ReceiptRepository) Snapshot() func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	saved := make(map[uint]*inbound.Receipt, len(r.receipts))
	for id, receipt := range r.receipts {
		cp := *receipt
		cp.Lines = append([]inbound.ReceiptLine(nil), receipt.Lines...)
		saved[id] = &cp
	}
	nextID, nextLineID := r.nextID, r.nextLineID
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.receipts = saved
		r.nextID, r.nextLineID = nextID, nextLineID
	}
}

// OrderRepository 出库单内存仓储
type OrderRepository struct {
	mu         sync.Mutex
	orders     map[uint]*outbound.Order
	nextID     uint
	nextLineID uint
}

// NewOrderRepository 创建出库单内存仓储
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{orders: make(map[uint]*outbound.Order), nextID: 1, nextLineID: 1}
}

// Create 创建出库单,为头和行分配ID
func (r *OrderRepository) Create(ctx context.Context, o *outbound.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o.ID = r.nextID
	r.nextID++
	for i := range o.Lines {
		o.Lines[i].ID = r.nextLineID
		o.Lines[i].OrderID = o.ID
		r.nextLineID++
	}
	r.orders[o.ID] = o
	return nil
}

// FindByID 根据ID查找出库单
func (r *OrderRepository) FindByID(ctx context.Context, tenantID, id uint) (*outbound.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || o.TenantID != tenantID {
		return nil, outbound.ErrOrderNotFound
	}
	return o, nil
}

// LockByID 内存实现中与FindByID等价
func (r *OrderRepository) LockByID(ctx context.Context, tenantID, id uint) (*outbound.Order, error) {
	return r.FindByID(ctx, tenantID, id)
}

// Save 保存出库单变更
func (r *OrderRepository) Save(ctx context.Context, o *outbound.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range o.Lines {
		if o.Lines[i].ID == 0 {
			o.Lines[i].ID = r.nextLineID
			o.Lines[i].OrderID = o.ID
			r.nextLineID++
		}
	}
	r.orders[o.ID] = o
	return nil
}

// Snapshot 拍出库单深拷贝快照(头+行)
func (r *OrderRepository) Snapshot() func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	saved := make(map[uint]*outbound.Order, len(r.orders))
	for id, o := range r.orders {
		cp := *o
		cp.Lines = append([]outbound.OrderLine(nil), o.Lines...)
		saved[id] = &cp
	}
	nextID, nextLineID := r.nextID, r.nextLineID
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.orders = saved
		r.nextID, r.nextLineID = nextID, nextLineID
	}
}

// PickingTaskRepository 拣货任务内存仓储
type PickingTaskRepository struct {
	mu         sync.Mutex
	tasks      map[uint]*outbound.PickingTask
	nextID     uint
	nextLineID uint
}

// NewPickingTaskRepository 创建拣货任务内存仓储
func NewPickingTaskRepository() *PickingTaskRepository {
	return &PickingTaskRepository{tasks: make(map[uint]*outbound.PickingTask), nextID: 1, nextLineID: 1}
}

// Create 创建拣货任务,为头和行分配ID
func (r *PickingTaskRepository) Create(ctx context.Context, t *outbound.PickingTask) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t.ID = r.nextID
	r.nextID++
	for i := range t.Lines {
		t.Lines[i].ID = r.nextLineID
		t.Lines[i].TaskID = t.ID
		r.nextLineID++
	}
	r.tasks[t.ID] = t
	return nil
}

// FindByID 根据ID查找拣货任务
func (r *PickingTaskRepository) FindByID(ctx context.Context, tenantID, id uint) (*outbound.PickingTask, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok || t.TenantID != tenantID {
		return nil, outbound.ErrTaskNotFound
	}
	return t, nil
}

// LockByID 内存实现中与FindByID等价
func (r *PickingTaskRepository) LockByID(ctx context.Context, tenantID, id uint) (*outbound.PickingTask, error) {
	return r.FindByID(ctx, tenantID, id)
}

// Save 保存任务变更
func (r *PickingTaskRepository) Save(ctx context.Context, t *outbound.PickingTask) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[t.ID] = t
	return nil
}

// Snapshot 拍拣货任务深拷贝快照(头+行)
func (r *PickingTaskRepository) Snapshot() func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	saved := make(map[uint]*outbound.PickingTask, len(r.tasks))
	for id, task := range r.tasks {
		cp := *task
		cp.Lines = append([]outbound.PickingTaskLine(nil), task.Lines...)
		saved[id] = &cp
	}
	nextID, nextLineID := r.nextID, r.nextLineID
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.tasks = saved
		r.nextID, r.nextLineID = nextID, nextLineID
	}
}

// TransferRepository 转移单内存仓储
type TransferRepository struct {
	mu         sync.Mutex
	orders     map[uint]*transfer.Order
	nextID     uint
	nextLineID uint
}

// NewTransferRepository 创建转移单内存仓储
func NewTransferRepository() *TransferRepository {
	return &TransferRepository{orders: make(map[uint]*transfer.Order), nextID: 1, nextLineID: 1}
}

// Create 创建转移单,为头和行分配ID
func (r *TransferRepository) Create(ctx context.Context, o *transfer.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o.ID = r.nextID
	r.nextID++
	for i := range o.Lines {
		o.Lines[i].ID = r.nextLineID
		o.Lines[i].TransferID = o.ID
		r.nextLineID++
	}
	r.orders[o.ID] = o
	return nil
}

// FindByID 根据ID查找转移单
func (r *TransferRepository) FindByID(ctx context.Context, tenantID, id uint) (*transfer.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || o.TenantID != tenantID {
		return nil, transfer.ErrTransferNotFound
	}
	return o, nil
}

// Save 保存转移单变更
func (r *TransferRepository) Save(ctx context.Context, o *transfer.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.ID] = o
	return nil
}

// Snapshot 拍转移单深拷贝快照(头+行)
func (r *TransferRepository) Snapshot() func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	saved := make(map[uint]*transfer.Order, len(r.orders))
	for id, o := range r.orders {
		cp := *o
		cp.Lines = append([]transfer.OrderLine(nil), o.Lines...)
		saved[id] = &cp
	}
	nextID, nextLineID := r.nextID, r.nextLineID
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.orders = saved
		r.nextID, r.nextLineID = nextID, nextLineID
	}
}
