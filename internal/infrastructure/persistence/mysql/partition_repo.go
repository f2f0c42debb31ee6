package mysql

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/wms/internal/domain/stock"
	apperrors "github.com/xiebiao/wms/pkg/errors"
)

// partitionRepository 库存分区仓储实现(MySQL)
// 设计说明:
// 1. Lock*方法执行SELECT FOR UPDATE:在REPEATABLE READ下显式行锁
//    串行化并发写者,两次并发分配不可能超预留同一分区
// 2. 五字段分区键的nil批次用IS NULL匹配,不是通配符
// 3. 必须在事务中调用Lock*(getDB从context取事务DB)
type partitionRepository struct {
	db *gorm.DB
}

// NewPartitionRepository 创建库存分区仓储
func NewPartitionRepository(db *gorm.DB) stock.Repository {
	return &partitionRepository{db: db}
}

// keyScope 分区键查询条件
func keyScope(db *gorm.DB, tenantID uint, key stock.PartitionKey) *gorm.DB {
	db = db.Where("tenant_id = ? AND product_id = ? AND location_id = ? AND unit_of_measure = ? AND status = ?",
		tenantID, key.ProductID, key.LocationID, key.UnitOfMeasure, string(key.Status))
	if key.BatchID == nil {
		return db.Where("batch_id IS NULL")
	}
	return db.Where("batch_id = ?", *key.BatchID)
}

// LockByKey 悲观锁查询分区
func (r *partitionRepository) LockByKey(ctx context.Context, tenantID uint, key stock.PartitionKey) (*stock.Partition, error) {
	var model PartitionModel
	db := getDB(ctx, r.db)
	err := keyScope(db.Clauses(clause.Locking{Strength: "UPDATE"}), tenantID, key).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, stock.ErrPartitionNotFound
		}
		return nil, apperrors.Wrap(err, "锁定库存分区失败")
	}
	return toPartitionEntity(&model), nil
}

// LockOrCreateByKey 悲观锁查询分区,不存在时创建零行
// 并发同时创建同一分区时,后到者拿到唯一索引冲突后重新锁定已有行
func (r *partitionRepository) LockOrCreateByKey(ctx context.Context, tenantID uint, key stock.PartitionKey) (*stock.Partition, error) {
	p, err := r.LockByKey(ctx, tenantID, key)
	if err == nil {
		return p, nil
	}
	if err != stock.ErrPartitionNotFound {
		return nil, err
	}

	model := &PartitionModel{
		TenantID:      tenantID,
		ProductID:     key.ProductID,
		BatchID:       key.BatchID,
		LocationID:    key.LocationID,
		UnitOfMeasure: key.UnitOfMeasure,
		Status:        string(key.Status),
		Quantity:      decimal.Zero,
	}
	db := getDB(ctx, r.db)
	if err := db.Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return r.LockByKey(ctx, tenantID, key)
		}
		return nil, apperrors.Wrap(err, "创建库存分区失败")
	}
	return toPartitionEntity(model), nil
}

// LockByProductStatus 锁定商品在仓库内指定状态的全部分区
// 仓库过滤经由库位表关联
func (r *partitionRepository) LockByProductStatus(ctx context.Context, tenantID, warehouseID, productID uint, status stock.Status) ([]*stock.Partition, error) {
	var models []PartitionModel
	db := getDB(ctx, r.db)
	err := db.Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "stock_partitions"}}).
		Joins("JOIN locations ON locations.id = stock_partitions.location_id").
		Where("stock_partitions.tenant_id = ? AND stock_partitions.product_id = ? AND stock_partitions.status = ? AND locations.warehouse_id = ?",
			tenantID, productID, string(status), warehouseID).
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "锁定商品分区失败")
	}

	partitions := make([]*stock.Partition, 0, len(models))
	for i := range models {
		partitions = append(partitions, toPartitionEntity(&models[i]))
	}
	return partitions, nil
}

// Save 保存分区数量变更
func (r *partitionRepository) Save(ctx context.Context, p *stock.Partition) error {
	db := getDB(ctx, r.db)
	err := db.Model(&PartitionModel{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"quantity":   p.Quantity,
			"updated_at": p.UpdatedAt,
		}).Error
	if err != nil {
		return apperrors.Wrap(err, "保存库存分区失败")
	}
	return nil
}

// ListByProduct 商品的全部分区(只读查询面,含零行)
func (r *partitionRepository) ListByProduct(ctx context.Context, tenantID, productID uint) ([]*stock.Partition, error) {
	var models []PartitionModel
	db := getDB(ctx, r.db)
	err := db.Where("tenant_id = ? AND product_id = ?", tenantID, productID).
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询商品分区失败")
	}

	partitions := make([]*stock.Partition, 0, len(models))
	for i := range models {
		partitions = append(partitions, toPartitionEntity(&models[i]))
	}
	return partitions, nil
}

// SumByProductAndWarehouse 汇总商品在仓库内指定状态的数量
func (r *partitionRepository) SumByProductAndWarehouse(ctx context.Context, tenantID, warehouseID, productID uint, status stock.Status) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	db := getDB(ctx, r.db)
	err := db.Model(&PartitionModel{}).
		Select("COALESCE(SUM(stock_partitions.quantity), 0) AS total").
		Joins("JOIN locations ON locations.id = stock_partitions.location_id").
		Where("stock_partitions.tenant_id = ? AND stock_partitions.product_id = ? AND stock_partitions.status = ? AND locations.warehouse_id = ?",
			tenantID, productID, string(status), warehouseID).
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, apperrors.Wrap(err, "汇总库存数量失败")
	}
	return result.Total, nil
}

// toPartitionEntity GORM模型 → 领域实体
func toPartitionEntity(m *PartitionModel) *stock.Partition {
	return &stock.Partition{
		ID:       m.ID,
		TenantID: m.TenantID,
		Key: stock.PartitionKey{
			ProductID:     m.ProductID,
			BatchID:       m.BatchID,
			LocationID:    m.LocationID,
			UnitOfMeasure: m.UnitOfMeasure,
			Status:        stock.Status(m.Status),
		},
		Quantity:  m.Quantity,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
