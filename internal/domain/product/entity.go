package product

import (
	"time"
)

// Product 商品实体(聚合根)
// 设计说明:
// 1. RequiresBatch/RequiresExpiryDate是收货时的校验门槛,
//    不是台账运行时约束(台账允许nil批次分区存在)
// 2. RequiresExpiryDate决定分配排序策略:需要效期的商品走FEFO,
//    否则走FIFO
type Product struct {
	ID                   uint
	TenantID             uint
	SKU                  string // 商品编码(租户内唯一)
	Name                 string
	DefaultUnitOfMeasure string // 默认计量单位
	RequiresBatch        bool   // 收货时必须提供批次号
	RequiresExpiryDate   bool   // 收货时必须提供效期(隐含需要批次)
	IsActive             bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Batch 批次实体
// 设计说明:
// 1. 在首次收到某商品的新批次号时惰性创建,之后按(商品,批次号)查找,
//    绝不重复创建(幂等解析)
// 2. ExpiryDate可空:只要求批次管理不要求效期的商品,批次无效期
type Batch struct {
	ID         uint
	TenantID   uint
	ProductID  uint
	BatchCode  string
	ExpiryDate *time.Time
	CreatedAt  time.Time
}

// NewBatch 创建新批次(工厂方法)
func NewBatch(tenantID, productID uint, batchCode string, expiryDate *time.Time) *Batch {
	return &Batch{
		TenantID:   tenantID,
		ProductID:  productID,
		BatchCode:  batchCode,
		ExpiryDate: expiryDate,
		CreatedAt:  time.Now(),
	}
}
