package memory

import (
	"context"
	"sync"
	"time"

	"github.com/xiebiao/wms/internal/domain/product"
	"github.com/xiebiao/wms/internal/domain/warehouse"
)

// ProductRepository 商品内存仓储
type ProductRepository struct {
	mu       sync.Mutex
	products map[uint]*product.Product
}

// NewProductRepository 创建商品内存仓储
func NewProductRepository() *ProductRepository {
	return &ProductRepository{products: make(map[uint]*product.Product)}
}

// Add 登记商品(测试装配用)
func (r *ProductRepository) Add(p *product.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = p
}

// FindByID 根据ID查找商品
func (r *ProductRepository) FindByID(ctx context.Context, tenantID, id uint) (*product.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok || p.TenantID != tenantID {
		return nil, product.ErrProductNotFound
	}
	return p, nil
}

// FindBySKU 根据SKU查找商品
func (r *ProductRepository) FindBySKU(ctx context.Context, tenantID uint, sku string) (*product.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.TenantID == tenantID && p.SKU == sku {
			return p, nil
		}
	}
	return nil, product.ErrProductNotFound
}

// BatchRepository 批次内存仓储
type BatchRepository struct {
	mu      sync.Mutex
	batches []*product.Batch
	nextID  uint
}

// NewBatchRepository 创建批次内存仓储
func NewBatchRepository() *BatchRepository {
	return &BatchRepository{nextID: 1}
}

// FindByID 根据ID查找批次
func (r *BatchRepository) FindByID(ctx context.Context, tenantID, id uint) (*product.Batch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.batches {
		if b.TenantID == tenantID && b.ID == id {
			return b, nil
		}
	}
	return nil, product.ErrBatchNotFound
}

// ResolveOrCreate 按(商品,批次号)解析批次,不存在时创建
func (r *BatchRepository) ResolveOrCreate(ctx context.Context, tenantID, productID uint, batchCode string, expiryDate *time.Time) (*product.Batch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.batches {
		if b.TenantID == tenantID && b.ProductID == productID && b.BatchCode == batchCode {
			return b, nil
		}
	}
	b := &product.Batch{
		ID:         r.nextID,
		TenantID:   tenantID,
		ProductID:  productID,
		BatchCode:  batchCode,
		ExpiryDate: expiryDate,
		CreatedAt:  time.Now(),
	}
	r.nextID++
	r.batches = append(r.batches, b)
	return b, nil
}

// Snapshot 拍批次快照
// 批次创建后不可变,浅拷贝切片头即可;回滚丢弃事务内懒解析出的批次
func (r *BatchRepository) Snapshot() func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	saved := make([]*product.Batch, len(r.batches))
	copy(saved, r.batches)
	nextID := r.nextID
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.batches = saved
		r.nextID = nextID
	}
}

// Count 批次总数(幂等解析的测试断言用)
func (r *BatchRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.batches)
}

// WarehouseRepository 仓库/库位内存仓储
type WarehouseRepository struct {
	mu         sync.Mutex
	warehouses map[uint]*warehouse.Warehouse
	locations  map[uint]*warehouse.Location
}

// NewWarehouseRepository 创建仓库内存仓储
func NewWarehouseRepository() *WarehouseRepository {
	return &WarehouseRepository{
		warehouses: make(map[uint]*warehouse.Warehouse),
		locations:  make(map[uint]*warehouse.Location),
	}
}

// AddWarehouse 登记仓库(测试装配用)
func (r *WarehouseRepository) AddWarehouse(w *warehouse.Warehouse) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warehouses[w.ID] = w
}

// AddLocation 登记库位(测试装配用)
func (r *WarehouseRepository) AddLocation(l *warehouse.Location) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locations[l.ID] = l
}

// warehouseOf 库位所属仓库(未知库位返回0)
func (r *WarehouseRepository) warehouseOf(locationID uint) uint {
	if l, ok := r.locations[locationID]; ok {
		return l.WarehouseID
	}
	return 0
}

// FindByID 根据ID查找仓库
func (r *WarehouseRepository) FindByID(ctx context.Context, tenantID, id uint) (*warehouse.Warehouse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.warehouses[id]
	if !ok || w.TenantID != tenantID {
		return nil, warehouse.ErrWarehouseNotFound
	}
	return w, nil
}

// FindLocation 根据ID查找库位
func (r *WarehouseRepository) FindLocation(ctx context.Context, tenantID, locationID uint) (*warehouse.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.locations[locationID]
	if !ok || l.TenantID != tenantID {
		return nil, warehouse.ErrLocationNotFound
	}
	return l, nil
}

// FirstActiveLocation 仓库内ID最小的活跃库位
func (r *WarehouseRepository) FirstActiveLocation(ctx context.Context, tenantID, warehouseID uint) (*warehouse.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var best *warehouse.Location
	for _, l := range r.locations {
		if l.TenantID != tenantID || l.WarehouseID != warehouseID || !l.IsActive {
			continue
		}
		if best == nil || l.ID < best.ID {
			best = l
		}
	}
	if best == nil {
		return nil, warehouse.ErrNoActiveLocation
	}
	return best, nil
}

// PolicyRepository 容差/出库规则内存仓储
type PolicyRepository struct {
	mu         sync.Mutex
	tolerances []*warehouse.TolerancePolicy
	rules      map[uint]*warehouse.OutboundRule
}

// NewPolicyRepository 创建策略内存仓储
func NewPolicyRepository() *PolicyRepository {
	return &PolicyRepository{rules: make(map[uint]*warehouse.OutboundRule)}
}

// AddTolerance 登记容差策略(测试装配用)
func (r *PolicyRepository) AddTolerance(p *warehouse.TolerancePolicy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tolerances = append(r.tolerances, p)
}

// SetOutboundRule 登记租户出库规则(测试装配用)
func (r *PolicyRepository) SetOutboundRule(rule *warehouse.OutboundRule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[rule.TenantID] = rule
}

// ResolveTolerance 层级解析容差策略,最具体者生效
func (r *PolicyRepository) ResolveTolerance(ctx context.Context, tenantID, warehouseID, productID uint) (*warehouse.TolerancePolicy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var best *warehouse.TolerancePolicy
	for _, p := range r.tolerances {
		if p.TenantID != tenantID {
			continue
		}
		if p.WarehouseID != nil && *p.WarehouseID != warehouseID {
			continue
		}
		if p.ProductID != nil && *p.ProductID != productID {
			continue
		}
		if best == nil || p.Specificity() > best.Specificity() {
			best = p
		}
	}
	return best, nil
}

// FindOutboundRule 租户级出库规则,没有时返回nil
func (r *PolicyRepository) FindOutboundRule(ctx context.Context, tenantID uint) (*warehouse.OutboundRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rules[tenantID], nil
}
