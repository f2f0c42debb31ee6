package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/wms/internal/domain/transfer"
	apperrors "github.com/xiebiao/wms/pkg/errors"
)

// transferRepository 转移单仓储实现(MySQL)
// 转移单创建即执行,在同一事务内走完状态机,无需悲观锁查询
type transferRepository struct {
	db *gorm.DB
}

// NewTransferRepository 创建转移单仓储
func NewTransferRepository(db *gorm.DB) transfer.Repository {
	return &transferRepository{db: db}
}

// Create 创建转移单(含行)
func (r *transferRepository) Create(ctx context.Context, o *transfer.Order) error {
	model := toTransferModel(o)
	db := getDB(ctx, r.db)
	if err := db.Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建转移单失败")
	}

	o.ID = model.ID
	for i := range o.Lines {
		o.Lines[i].ID = model.Lines[i].ID
		o.Lines[i].TransferID = model.ID
	}
	return nil
}

// FindByID 根据ID查找转移单(含行)
func (r *transferRepository) FindByID(ctx context.Context, tenantID, id uint) (*transfer.Order, error) {
	var model TransferOrderModel
	db := getDB(ctx, r.db)
	err := db.Preload("Lines").Where("tenant_id = ?", tenantID).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, transfer.ErrTransferNotFound
		}
		return nil, apperrors.Wrap(err, "查询转移单失败")
	}
	return toTransferEntity(&model), nil
}

// Save 保存转移单变更
func (r *transferRepository) Save(ctx context.Context, o *transfer.Order) error {
	model := toTransferModel(o)
	db := getDB(ctx, r.db)
	if err := db.Session(&gorm.Session{FullSaveAssociations: true}).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "保存转移单失败")
	}
	return nil
}

// toTransferModel 领域实体 → GORM模型
func toTransferModel(o *transfer.Order) *TransferOrderModel {
	model := &TransferOrderModel{
		ID:                     o.ID,
		TenantID:               o.TenantID,
		SourceWarehouseID:      o.SourceWarehouseID,
		DestinationWarehouseID: o.DestinationWarehouseID,
		Status:                 int(o.Status),
		CreatedAt:              o.CreatedAt,
		UpdatedAt:              o.UpdatedAt,
	}
	for i := range o.Lines {
		model.Lines = append(model.Lines, TransferOrderLineModel{
			ID:            o.Lines[i].ID,
			TransferID:    o.ID,
			ProductID:     o.Lines[i].ProductID,
			Quantity:      o.Lines[i].Quantity,
			UnitOfMeasure: o.Lines[i].UnitOfMeasure,
		})
	}
	return model
}

// toTransferEntity GORM模型 → 领域实体
func toTransferEntity(m *TransferOrderModel) *transfer.Order {
	o := &transfer.Order{
		ID:                     m.ID,
		TenantID:               m.TenantID,
		SourceWarehouseID:      m.SourceWarehouseID,
		DestinationWarehouseID: m.DestinationWarehouseID,
		Status:                 transfer.OrderStatus(m.Status),
		CreatedAt:              m.CreatedAt,
		UpdatedAt:              m.UpdatedAt,
	}
	for i := range m.Lines {
		o.Lines = append(o.Lines, transfer.OrderLine{
			ID:            m.Lines[i].ID,
			TransferID:    m.Lines[i].TransferID,
			ProductID:     m.Lines[i].ProductID,
			Quantity:      m.Lines[i].Quantity,
			UnitOfMeasure: m.Lines[i].UnitOfMeasure,
		})
	}
	return o
}
