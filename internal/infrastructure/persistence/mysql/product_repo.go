package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/wms/internal/domain/product"
	apperrors "github.com/xiebiao/wms/pkg/errors"
)

// productRepository 商品仓储实现(MySQL)
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储
func NewProductRepository(db *gorm.DB) product.Repository {
	return &productRepository{db: db}
}

// FindByID 根据ID查找商品
func (r *productRepository) FindByID(ctx context.Context, tenantID, id uint) (*product.Product, error) {
	var model ProductModel
	db := getDB(ctx, r.db)
	err := db.Where("tenant_id = ?", tenantID).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, product.ErrProductNotFound
		}
		return nil, apperrors.Wrap(err, "查询商品失败")
	}
	return toProductEntity(&model), nil
}

// FindBySKU 根据SKU查找商品
func (r *productRepository) FindBySKU(ctx context.Context, tenantID uint, sku string) (*product.Product, error) {
	var model ProductModel
	db := getDB(ctx, r.db)
	err := db.Where("tenant_id = ? AND sku = ?", tenantID, sku).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, product.ErrProductNotFound
		}
		return nil, apperrors.Wrap(err, "查询商品失败")
	}
	return toProductEntity(&model), nil
}

// toProductEntity GORM模型 → 领域实体
func toProductEntity(m *ProductModel) *product.Product {
	return &product.Product{
		ID:                   m.ID,
		TenantID:             m.TenantID,
		SKU:                  m.SKU,
		Name:                 m.Name,
		DefaultUnitOfMeasure: m.DefaultUnitOfMeasure,
		RequiresBatch:        m.RequiresBatch,
		RequiresExpiryDate:   m.RequiresExpiryDate,
		IsActive:             m.IsActive,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

// batchRepository 批次仓储实现(MySQL)
type batchRepository struct {
	db *gorm.DB
}

// NewBatchRepository 创建批次仓储
func NewBatchRepository(db *gorm.DB) product.BatchRepository {
	return &batchRepository{db: db}
}

// FindByID 根据ID查找批次
func (r *batchRepository) FindByID(ctx context.Context, tenantID, id uint) (*product.Batch, error) {
	var model BatchModel
	db := getDB(ctx, r.db)
	err := db.Where("tenant_id = ?", tenantID).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, product.ErrBatchNotFound
		}
		return nil, apperrors.Wrap(err, "查询批次失败")
	}
	return toBatchEntity(&model), nil
}

// ResolveOrCreate 按(商品,批次号)解析批次,不存在时创建
// 幂等性依赖(tenant,product,batch_code)唯一索引兜底:
// 并发创建同一批次时,后到者拿到冲突后改走查找
func (r *batchRepository) ResolveOrCreate(ctx context.Context, tenantID, productID uint, batchCode string, expiryDate *time.Time) (*product.Batch, error) {
	db := getDB(ctx, r.db)

	var model BatchModel
	err := db.Where("tenant_id = ? AND product_id = ? AND batch_code = ?", tenantID, productID, batchCode).
		First(&model).Error
	if err == nil {
		return toBatchEntity(&model), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(err, "查询批次失败")
	}

	model = BatchModel{
		TenantID:   tenantID,
		ProductID:  productID,
		BatchCode:  batchCode,
		ExpiryDate: expiryDate,
	}
	if err := db.Create(&model).Error; err != nil {
		if isDuplicateError(err) {
			return r.ResolveOrCreate(ctx, tenantID, productID, batchCode, expiryDate)
		}
		return nil, apperrors.Wrap(err, "创建批次失败")
	}
	return toBatchEntity(&model), nil
}

// toBatchEntity GORM模型 → 领域实体
func toBatchEntity(m *BatchModel) *product.Batch {
	return &product.Batch{
		ID:         m.ID,
		TenantID:   m.TenantID,
		ProductID:  m.ProductID,
		BatchCode:  m.BatchCode,
		ExpiryDate: m.ExpiryDate,
		CreatedAt:  m.CreatedAt,
	}
}
