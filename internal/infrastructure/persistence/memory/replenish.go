package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/wms/internal/domain/replenish"
)

// ReplenishPolicyRepository 补货策略内存仓储
type ReplenishPolicyRepository struct {
	mu       sync.Mutex
	policies map[uint]*replenish.Policy
}

// NewReplenishPolicyRepository 创建补货策略内存仓储
func NewReplenishPolicyRepository() *ReplenishPolicyRepository {
	return &ReplenishPolicyRepository{policies: make(map[uint]*replenish.Policy)}
}

// Add 登记策略(测试装配用)
func (r *ReplenishPolicyRepository) Add(p *replenish.Policy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.policies[p.ID] = p
}

// FindByID 根据ID查找策略
func (r *ReplenishPolicyRepository) FindByID(ctx context.Context, tenantID, id uint) (*replenish.Policy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.policies[id]
	if !ok || p.TenantID != tenantID {
		return nil, replenish.ErrPolicyNotFound
	}
	return p, nil
}

// ListActive 查询活跃策略,可按仓库/商品过滤(0表示不过滤)
func (r *ReplenishPolicyRepository) ListActive(ctx context.Context, tenantID, warehouseID, productID uint) ([]*replenish.Policy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*replenish.Policy
	for _, p := range r.policies {
		if p.TenantID != tenantID || !p.IsActive {
			continue
		}
		if warehouseID != 0 && p.WarehouseID != warehouseID {
			continue
		}
		if productID != 0 && p.ProductID != productID {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// SuggestionRepository 补货建议内存仓储
type SuggestionRepository struct {
	mu          sync.Mutex
	suggestions map[uint]*replenish.Suggestion
	nextID      uint
}

// NewSuggestionRepository 创建补货建议内存仓储
func NewSuggestionRepository() *SuggestionRepository {
	return &SuggestionRepository{suggestions: make(map[uint]*replenish.Suggestion), nextID: 1}
}

// Create 持久化建议
func (r *SuggestionRepository) Create(ctx context.Context, s *replenish.Suggestion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.ID = r.nextID
	r.nextID++
	r.suggestions[s.ID] = s
	return nil
}

// FindByID 根据ID查找建议
func (r *SuggestionRepository) FindByID(ctx context.Context, tenantID, id uint) (*replenish.Suggestion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.suggestions[id]
	if !ok || s.TenantID != tenantID {
		return nil, replenish.ErrSuggestionNotFound
	}
	return s, nil
}

// Save 保存建议状态变更
func (r *SuggestionRepository) Save(ctx context.Context, s *replenish.Suggestion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.suggestions[s.ID] = s
	return nil
}

// FixedConsumption 固定值日均消耗(测试用)
type FixedConsumption struct {
	Value decimal.Decimal
}

// AvgDailyConsumption 返回固定值
func (f *FixedConsumption) AvgDailyConsumption(ctx context.Context, tenantID, warehouseID, productID uint) (decimal.Decimal, error) {
	return f.Value, nil
}
