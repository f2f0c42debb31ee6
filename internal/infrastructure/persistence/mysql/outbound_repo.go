package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/wms/internal/domain/outbound"
	apperrors "github.com/xiebiao/wms/pkg/errors"
)

// orderRepository 出库单仓储实现(MySQL)
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建出库单仓储
func NewOrderRepository(db *gorm.DB) outbound.Repository {
	return &orderRepository{db: db}
}

// Create 创建出库单(含行)
func (r *orderRepository) Create(ctx context.Context, o *outbound.Order) error {
	model := toOutboundOrderModel(o)
	db := getDB(ctx, r.db)
	if err := db.Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建出库单失败")
	}

	o.ID = model.ID
	for i := range o.Lines {
		o.Lines[i].ID = model.Lines[i].ID
		o.Lines[i].OrderID = model.ID
	}
	return nil
}

// FindByID 根据ID查找出库单(含行)
func (r *orderRepository) FindByID(ctx context.Context, tenantID, id uint) (*outbound.Order, error) {
	return r.findByID(ctx, tenantID, id, false)
}

// LockByID 悲观锁查询出库单(释放/拣货确认时防止并发状态竞争)
func (r *orderRepository) LockByID(ctx context.Context, tenantID, id uint) (*outbound.Order, error) {
	return r.findByID(ctx, tenantID, id, true)
}

func (r *orderRepository) findByID(ctx context.Context, tenantID, id uint, lock bool) (*outbound.Order, error) {
	var model OutboundOrderModel
	db := getDB(ctx, r.db)
	if lock {
		db = db.Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "outbound_orders"}})
	}
	err := db.Preload("Lines").Where("tenant_id = ?", tenantID).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, outbound.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询出库单失败")
	}
	return toOutboundOrderEntity(&model), nil
}

// Save 保存出库单头及行的变更
func (r *orderRepository) Save(ctx context.Context, o *outbound.Order) error {
	model := toOutboundOrderModel(o)
	db := getDB(ctx, r.db)
	if err := db.Session(&gorm.Session{FullSaveAssociations: true}).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "保存出库单失败")
	}
	for i := range o.Lines {
		o.Lines[i].ID = model.Lines[i].ID
		o.Lines[i].OrderID = model.ID
	}
	return nil
}

// toOutboundOrderModel 领域实体 → GORM模型
func toOutboundOrderModel(o *outbound.Order) *OutboundOrderModel {
	model := &OutboundOrderModel{
		ID:          o.ID,
		TenantID:    o.TenantID,
		WarehouseID: o.WarehouseID,
		Status:      int(o.Status),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
	for i := range o.Lines {
		model.Lines = append(model.Lines, OutboundOrderLineModel{
			ID:            o.Lines[i].ID,
			OrderID:       o.ID,
			ProductID:     o.Lines[i].ProductID,
			RequestedQty:  o.Lines[i].RequestedQty,
			AllocatedQty:  o.Lines[i].AllocatedQty,
			PickedQty:     o.Lines[i].PickedQty,
			UnitOfMeasure: o.Lines[i].UnitOfMeasure,
		})
	}
	return model
}

// toOutboundOrderEntity GORM模型 → 领域实体
func toOutboundOrderEntity(m *OutboundOrderModel) *outbound.Order {
	o := &outbound.Order{
		ID:          m.ID,
		TenantID:    m.TenantID,
		WarehouseID: m.WarehouseID,
		Status:      outbound.OrderStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	for i := range m.Lines {
		o.Lines = append(o.Lines, outbound.OrderLine{
			ID:            m.Lines[i].ID,
			OrderID:       m.Lines[i].OrderID,
			ProductID:     m.Lines[i].ProductID,
			RequestedQty:  m.Lines[i].RequestedQty,
			AllocatedQty:  m.Lines[i].AllocatedQty,
			PickedQty:     m.Lines[i].PickedQty,
			UnitOfMeasure: m.Lines[i].UnitOfMeasure,
		})
	}
	return o
}

// pickingTaskRepository 拣货任务仓储实现(MySQL)
type pickingTaskRepository struct {
	db *gorm.DB
}

// NewPickingTaskRepository 创建拣货任务仓储
func NewPickingTaskRepository(db *gorm.DB) outbound.TaskRepository {
	return &pickingTaskRepository{db: db}
}

// Create 创建拣货任务(含行)
func (r *pickingTaskRepository) Create(ctx context.Context, t *outbound.PickingTask) error {
	model := toPickingTaskModel(t)
	db := getDB(ctx, r.db)
	if err := db.Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建拣货任务失败")
	}

	t.ID = model.ID
	for i := range t.Lines {
		t.Lines[i].ID = model.Lines[i].ID
		t.Lines[i].TaskID = model.ID
	}
	return nil
}

// FindByID 根据ID查找拣货任务(含行)
func (r *pickingTaskRepository) FindByID(ctx context.Context, tenantID, id uint) (*outbound.PickingTask, error) {
	return r.findByID(ctx, tenantID, id, false)
}

// LockByID 悲观锁查询拣货任务(防止并发确认)
func (r *pickingTaskRepository) LockByID(ctx context.Context, tenantID, id uint) (*outbound.PickingTask, error) {
	return r.findByID(ctx, tenantID, id, true)
}

func (r *pickingTaskRepository) findByID(ctx context.Context, tenantID, id uint, lock bool) (*outbound.PickingTask, error) {
	var model PickingTaskModel
	db := getDB(ctx, r.db)
	if lock {
		db = db.Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "picking_tasks"}})
	}
	err := db.Preload("Lines").Where("tenant_id = ?", tenantID).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, outbound.ErrTaskNotFound
		}
		return nil, apperrors.Wrap(err, "查询拣货任务失败")
	}
	return toPickingTaskEntity(&model), nil
}

// Save 保存任务头及行的变更
func (r *pickingTaskRepository) Save(ctx context.Context, t *outbound.PickingTask) error {
	model := toPickingTaskModel(t)
	db := getDB(ctx, r.db)
	if err := db.Session(&gorm.Session{FullSaveAssociations: true}).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "保存拣货任务失败")
	}
	for i := range t.Lines {
		t.Lines[i].ID = model.Lines[i].ID
		t.Lines[i].TaskID = model.ID
	}
	return nil
}

// toPickingTaskModel 领域实体 → GORM模型
func toPickingTaskModel(t *outbound.PickingTask) *PickingTaskModel {
	model := &PickingTaskModel{
		ID:        t.ID,
		TenantID:  t.TenantID,
		OrderID:   t.OrderID,
		PickerID:  t.PickerID,
		Status:    int(t.Status),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
	for i := range t.Lines {
		model.Lines = append(model.Lines, PickingTaskLineModel{
			ID:             t.Lines[i].ID,
			TaskID:         t.ID,
			OrderLineID:    t.Lines[i].OrderLineID,
			ProductID:      t.Lines[i].ProductID,
			BatchID:        t.Lines[i].BatchID,
			FromLocationID: t.Lines[i].FromLocationID,
			UnitOfMeasure:  t.Lines[i].UnitOfMeasure,
			QuantityToPick: t.Lines[i].QuantityToPick,
			QuantityPicked: t.Lines[i].QuantityPicked,
		})
	}
	return model
}

// toPickingTaskEntity GORM模型 → 领域实体
func toPickingTaskEntity(m *PickingTaskModel) *outbound.PickingTask {
	t := &outbound.PickingTask{
		ID:        m.ID,
		TenantID:  m.TenantID,
		OrderID:   m.OrderID,
		PickerID:  m.PickerID,
		Status:    outbound.TaskStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	for i := range m.Lines {
		t.Lines = append(t.Lines, outbound.PickingTaskLine{
			ID:             m.Lines[i].ID,
			TaskID:         m.Lines[i].TaskID,
			OrderLineID:    m.Lines[i].OrderLineID,
			ProductID:      m.Lines[i].ProductID,
			BatchID:        m.Lines[i].BatchID,
			FromLocationID: m.Lines[i].FromLocationID,
			UnitOfMeasure:  m.Lines[i].UnitOfMeasure,
			QuantityToPick: m.Lines[i].QuantityToPick,
			QuantityPicked: m.Lines[i].QuantityPicked,
		})
	}
	return t
}
