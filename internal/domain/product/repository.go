package product

import (
	"context"
	"time"
)

// Repository 商品仓储接口
type Repository interface {
	// FindByID 根据ID查找商品
	FindByID(ctx context.Context, tenantID, id uint) (*Product, error)

	// FindBySKU 根据SKU查找商品
	FindBySKU(ctx context.Context, tenantID uint, sku string) (*Product, error)
}

// BatchRepository 批次仓储接口
type BatchRepository interface {
	// FindByID 根据ID查找批次
	FindByID(ctx context.Context, tenantID, id uint) (*Batch, error)

	// ResolveOrCreate 按(商品,批次号)解析批次,不存在时创建
	// 幂等:同一商品+批次号在并发/重复收货下也绝不产生两条批次行
	// (实现依赖(tenant,product,batch_code)唯一索引兜底)
	ResolveOrCreate(ctx context.Context, tenantID, productID uint, batchCode string, expiryDate *time.Time) (*Batch, error)
}
