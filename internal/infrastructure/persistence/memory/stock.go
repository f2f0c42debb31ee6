package memory

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/wms/internal/domain/stock"
)

// PartitionRepository 库存分区内存仓储
// 按仓库过滤需要库位→仓库映射,由注入的WarehouseRepository提供
type PartitionRepository struct {
	mu         sync.Mutex
	partitions []*stock.Partition
	nextID     uint
	locations  *WarehouseRepository
}

// NewPartitionRepository 创建库存分区内存仓储
func NewPartitionRepository(locations *WarehouseRepository) *PartitionRepository {
	return &PartitionRepository{nextID: 1, locations: locations}
}

func (r *PartitionRepository) find(tenantID uint, key stock.PartitionKey) *stock.Partition {
	for _, p := range r.partitions {
		if p.TenantID == tenantID && p.Key.Equal(key) {
			return p
		}
	}
	return nil
}

// LockByKey 按五字段键查找分区
func (r *PartitionRepository) LockByKey(ctx context.Context, tenantID uint, key stock.PartitionKey) (*stock.Partition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.find(tenantID, key)
	if p == nil {
		return nil, stock.ErrPartitionNotFound
	}
	return p, nil
}

// LockOrCreateByKey 按键查找分区,不存在时创建零行
func (r *PartitionRepository) LockOrCreateByKey(ctx context.Context, tenantID uint, key stock.PartitionKey) (*stock.Partition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p := r.find(tenantID, key); p != nil {
		return p, nil
	}
	p := stock.NewPartition(tenantID, key)
	p.ID = r.nextID
	r.nextID++
	r.partitions = append(r.partitions, p)
	return p, nil
}

// LockByProductStatus 商品在仓库内指定状态的全部分区
func (r *PartitionRepository) LockByProductStatus(ctx context.Context, tenantID, warehouseID, productID uint, status stock.Status) ([]*stock.Partition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*stock.Partition
	for _, p := range r.partitions {
		if p.TenantID != tenantID || p.Key.ProductID != productID || p.Key.Status != status {
			continue
		}
		if r.locations.warehouseOf(p.Key.LocationID) != warehouseID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// Save 内存实现中分区是共享指针,这里仅保证分区已登记
func (r *PartitionRepository) Save(ctx context.Context, p *stock.Partition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.partitions {
		if existing == p {
			return nil
		}
	}
	if p.ID == 0 {
		p.ID = r.nextID
		r.nextID++
	}
	r.partitions = append(r.partitions, p)
	return nil
}

// ListByProduct 商品的全部分区
func (r *PartitionRepository) ListByProduct(ctx context.Context, tenantID, productID uint) ([]*stock.Partition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*stock.Partition
	for _, p := range r.partitions {
		if p.TenantID == tenantID && p.Key.ProductID == productID {
			out = append(out, p)
		}
	}
	return out, nil
}

// SumByProductAndWarehouse 商品在仓库内指定状态的数量合计
func (r *PartitionRepository) SumByProductAndWarehouse(ctx context.Context, tenantID, warehouseID, productID uint, status stock.Status) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sum := decimal.Zero
	for _, p := range r.partitions {
		if p.TenantID != tenantID || p.Key.ProductID != productID || p.Key.Status != status {
			continue
		}
		if r.locations.warehouseOf(p.Key.LocationID) != warehouseID {
			continue
		}
		sum = sum.Add(p.Quantity)
	}
	return sum, nil
}

// Snapshot 拍分区深拷贝快照,返回的闭包恢复到快照时刻
// 分区实体在用例内被原地改写,所以必须逐个复制结构体
func (r *PartitionRepository) Snapshot() func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	saved := make([]*stock.Partition, len(r.partitions))
	for i, p := range r.partitions {
		cp := *p
		saved[i] = &cp
	}
	nextID := r.nextID
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.partitions = saved
		r.nextID = nextID
	}
}

// MovementRepository 库存移动记录内存仓储
type MovementRepository struct {
	mu        sync.Mutex
	movements []*stock.Movement
	nextID    uint
	locations *WarehouseRepository
}

// NewMovementRepository 创建移动记录内存仓储
func NewMovementRepository(locations *WarehouseRepository) *MovementRepository {
	return &MovementRepository{nextID: 1, locations: locations}
}

// Create 追加移动记录
func (r *MovementRepository) Create(ctx context.Context, m *stock.Movement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = r.nextID
	r.nextID++
	r.movements = append(r.movements, m)
	return nil
}

// All 全部移动记录(测试断言用)
func (r *MovementRepository) All() []*stock.Movement {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*stock.Movement, len(r.movements))
	copy(out, r.movements)
	return out
}

// Snapshot 拍移动记录快照
// 移动记录只追加不修改,浅拷贝切片头即可
func (r *MovementRepository) Snapshot() func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	saved := make([]*stock.Movement, len(r.movements))
	copy(saved, r.movements)
	nextID := r.nextID
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.movements = saved
		r.nextID = nextID
	}
}

// SumOutboundSince 自某时刻起的出库移动数量合计
func (r *MovementRepository) SumOutboundSince(ctx context.Context, tenantID, warehouseID, productID uint, since time.Time) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sum := decimal.Zero
	for _, m := range r.movements {
		if m.TenantID != tenantID || m.ProductID != productID || m.Type != stock.MovementOutboundShipment {
			continue
		}
		if m.CreatedAt.Before(since) {
			continue
		}
		if m.FromLocationID == nil || r.locations.warehouseOf(*m.FromLocationID) != warehouseID {
			continue
		}
		sum = sum.Add(m.Quantity)
	}
	return sum, nil
}
