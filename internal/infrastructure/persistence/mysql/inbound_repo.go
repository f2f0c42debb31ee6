package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/wms/internal/domain/inbound"
	apperrors "github.com/xiebiao/wms/pkg/errors"
)

// receiptRepository 入库单仓储实现(MySQL)
// Receipt和ReceiptLine是聚合关系,一起保存;
// 查询时用Preload预加载行,避免N+1问题
type receiptRepository struct {
	db *gorm.DB
}

// NewReceiptRepository 创建入库单仓储
func NewReceiptRepository(db *gorm.DB) inbound.Repository {
	return &receiptRepository{db: db}
}

// Create 创建入库单(含行)
func (r *receiptRepository) Create(ctx context.Context, receipt *inbound.Receipt) error {
	model := toReceiptModel(receipt)
	db := getDB(ctx, r.db)
	if err := db.Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建入库单失败")
	}

	receipt.ID = model.ID
	for i := range receipt.Lines {
		receipt.Lines[i].ID = model.Lines[i].ID
		receipt.Lines[i].ReceiptID = model.ID
	}
	return nil
}

// FindByID 根据ID查找入库单(含行)
func (r *receiptRepository) FindByID(ctx context.Context, tenantID, id uint) (*inbound.Receipt, error) {
	return r.findByID(ctx, tenantID, id, false)
}

// LockByID 悲观锁查询入库单(防止并发重复确认)
func (r *receiptRepository) LockByID(ctx context.Context, tenantID, id uint) (*inbound.Receipt, error) {
	return r.findByID(ctx, tenantID, id, true)
}

func (r *receiptRepository) findByID(ctx context.Context, tenantID, id uint, lock bool) (*inbound.Receipt, error) {
	var model ReceiptModel
	db := getDB(ctx, r.db)
	if lock {
		db = db.Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "inbound_receipts"}})
	}
	err := db.Preload("Lines").Where("tenant_id = ?", tenantID).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, inbound.ErrReceiptNotFound
		}
		return nil, apperrors.Wrap(err, "查询入库单失败")
	}
	return toReceiptEntity(&model), nil
}

// Save 保存入库单头及行的变更
func (r *receiptRepository) Save(ctx context.Context, receipt *inbound.Receipt) error {
	model := toReceiptModel(receipt)
	db := getDB(ctx, r.db)
	if err := db.Session(&gorm.Session{FullSaveAssociations: true}).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "保存入库单失败")
	}
	for i := range receipt.Lines {
		receipt.Lines[i].ID = model.Lines[i].ID
		receipt.Lines[i].ReceiptID = model.ID
	}
	return nil
}

// toReceiptModel 领域实体 → GORM模型
func toReceiptModel(r *inbound.Receipt) *ReceiptModel {
	model := &ReceiptModel{
		ID:          r.ID,
		TenantID:    r.TenantID,
		WarehouseID: r.WarehouseID,
		ExternalRef: r.ExternalRef,
		Status:      int(r.Status),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	for i := range r.Lines {
		model.Lines = append(model.Lines, ReceiptLineModel{
			ID:            r.Lines[i].ID,
			ReceiptID:     r.ID,
			ProductID:     r.Lines[i].ProductID,
			ExpectedQty:   r.Lines[i].ExpectedQty,
			ReceivedQty:   r.Lines[i].ReceivedQty,
			UnitOfMeasure: r.Lines[i].UnitOfMeasure,
			BatchCode:     r.Lines[i].BatchCode,
			ExpiryDate:    r.Lines[i].ExpiryDate,
		})
	}
	return model
}

// toReceiptEntity GORM模型 → 领域实体
func toReceiptEntity(m *ReceiptModel) *inbound.Receipt {
	receipt := &inbound.Receipt{
		ID:          m.ID,
		TenantID:    m.TenantID,
		WarehouseID: m.WarehouseID,
		ExternalRef: m.ExternalRef,
		Status:      inbound.ReceiptStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	for i := range m.Lines {
		receipt.Lines = append(receipt.Lines, inbound.ReceiptLine{
			ID:            m.Lines[i].ID,
			ReceiptID:     m.Lines[i].ReceiptID,
			ProductID:     m.Lines[i].ProductID,
			ExpectedQty:   m.Lines[i].ExpectedQty,
			ReceivedQty:   m.Lines[i].ReceivedQty,
			UnitOfMeasure: m.Lines[i].UnitOfMeasure,
			BatchCode:     m.Lines[i].BatchCode,
			ExpiryDate:    m.Lines[i].ExpiryDate,
		})
	}
	return receipt
}
