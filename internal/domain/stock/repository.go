package stock

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Repository 库存分区仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 所有方法显式接收tenantID:跨租户读写必须在仓储层就不可能发生
// 3. Lock*方法执行SELECT FOR UPDATE:台账写入依赖
//    可重复读隔离级别+显式行锁串行化并发写者(防止并发超分配)
type Repository interface {
	// LockByKey 悲观锁查询分区(五字段精确匹配,含nil批次)
	// 分区不存在时返回ErrPartitionNotFound
	LockByKey(ctx context.Context, tenantID uint, key PartitionKey) (*Partition, error)

	// LockOrCreateByKey 悲观锁查询分区,不存在时创建零行
	// 收货入账与转移目标端使用
	LockOrCreateByKey(ctx context.Context, tenantID uint, key PartitionKey) (*Partition, error)

	// LockByProductStatus 锁定商品在指定仓库内某状态的全部分区
	// 分配引擎锁AVAILABLE,拣货任务创建锁RESERVED;
	// 先锁后排序,防止两次并发释放超预留同一分区
	LockByProductStatus(ctx context.Context, tenantID, warehouseID, productID uint, status Status) ([]*Partition, error)

	// Save 保存分区数量变更
	Save(ctx context.Context, p *Partition) error

	// ListByProduct 查询商品在所有状态下的分区(只读查询面)
	ListByProduct(ctx context.Context, tenantID, productID uint) ([]*Partition, error)

	// SumByProductAndWarehouse 汇总商品在仓库内指定状态的数量
	// 补货计算的当前库存、转移容量检查使用
	SumByProductAndWarehouse(ctx context.Context, tenantID, warehouseID, productID uint, status Status) (decimal.Decimal, error)
}

// MovementRepository 库存移动记录仓储接口
type MovementRepository interface {
	// Create 追加一条移动记录(审计数据只追加不修改)
	Create(ctx context.Context, m *Movement) error

	// SumOutboundSince 汇总商品在仓库内自某时刻起的出库移动数量
	// 补货计算的日均消耗使用(30天回看窗口)
	SumOutboundSince(ctx context.Context, tenantID, warehouseID, productID uint, since time.Time) (decimal.Decimal, error)
}
