package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/wms/internal/domain/replenish"
	apperrors "github.com/xiebiao/wms/pkg/errors"
)

// replenishPolicyRepository 补货策略仓储实现(MySQL)
type replenishPolicyRepository struct {
	db *gorm.DB
}

// NewReplenishPolicyRepository 创建补货策略仓储
func NewReplenishPolicyRepository(db *gorm.DB) replenish.PolicyRepository {
	return &replenishPolicyRepository{db: db}
}

// FindByID 根据ID查找策略
func (r *replenishPolicyRepository) FindByID(ctx context.Context, tenantID, id uint) (*replenish.Policy, error) {
	var model ReplenishPolicyModel
	db := getDB(ctx, r.db)
	err := db.Where("tenant_id = ?", tenantID).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, replenish.ErrPolicyNotFound
		}
		return nil, apperrors.Wrap(err, "查询补货策略失败")
	}
	return toPolicyEntity(&model), nil
}

// ListActive 查询活跃策略(warehouseID/productID为0时不过滤)
func (r *replenishPolicyRepository) ListActive(ctx context.Context, tenantID, warehouseID, productID uint) ([]*replenish.Policy, error) {
	db := getDB(ctx, r.db).
		Where("tenant_id = ? AND is_active = ?", tenantID, true)
	if warehouseID != 0 {
		db = db.Where("warehouse_id = ?", warehouseID)
	}
	if productID != 0 {
		db = db.Where("product_id = ?", productID)
	}

	var models []ReplenishPolicyModel
	if err := db.Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询补货策略失败")
	}

	policies := make([]*replenish.Policy, 0, len(models))
	for i := range models {
		policies = append(policies, toPolicyEntity(&models[i]))
	}
	return policies, nil
}

// toPolicyEntity GORM模型 → 领域实体
func toPolicyEntity(m *ReplenishPolicyModel) *replenish.Policy {
	return &replenish.Policy{
		ID:                m.ID,
		TenantID:          m.TenantID,
		WarehouseID:       m.WarehouseID,
		ProductID:         m.ProductID,
		Method:            replenish.Method(m.Method),
		FixedQty:          m.FixedQty,
		MinQty:            m.MinQty,
		MaxQty:            m.MaxQty,
		EOQQty:            m.EOQQty,
		DaysOfSupply:      m.DaysOfSupply,
		SourceWarehouseID: m.SourceWarehouseID,
		IsActive:          m.IsActive,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// suggestionRepository 补货建议仓储实现(MySQL)
type suggestionRepository struct {
	db *gorm.DB
}

// NewSuggestionRepository 创建补货建议仓储
func NewSuggestionRepository(db *gorm.DB) replenish.SuggestionRepository {
	return &suggestionRepository{db: db}
}

// Create 持久化建议
func (r *suggestionRepository) Create(ctx context.Context, s *replenish.Suggestion) error {
	model := toSuggestionModel(s)
	db := getDB(ctx, r.db)
	if err := db.Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建补货建议失败")
	}
	s.ID = model.ID
	return nil
}

// FindByID 根据ID查找建议
func (r *suggestionRepository) FindByID(ctx context.Context, tenantID, id uint) (*replenish.Suggestion, error) {
	var model ReplenishSuggestionModel
	db := getDB(ctx, r.db)
	err := db.Where("tenant_id = ?", tenantID).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, replenish.ErrSuggestionNotFound
		}
		return nil, apperrors.Wrap(err, "查询补货建议失败")
	}
	return toSuggestionEntity(&model), nil
}

// Save 保存建议状态变更
func (r *suggestionRepository) Save(ctx context.Context, s *replenish.Suggestion) error {
	model := toSuggestionModel(s)
	db := getDB(ctx, r.db)
	if err := db.Save(model).Error; err != nil {
		return apperrors.Wrap(err, "保存补货建议失败")
	}
	return nil
}

// toSuggestionModel 领域实体 → GORM模型
func toSuggestionModel(s *replenish.Suggestion) *ReplenishSuggestionModel {
	return &ReplenishSuggestionModel{
		ID:           s.ID,
		TenantID:     s.TenantID,
		WarehouseID:  s.WarehouseID,
		ProductID:    s.ProductID,
		PolicyID:     s.PolicyID,
		SuggestedQty: s.SuggestedQty,
		CurrentStock: s.CurrentStock,
		Status:       int(s.Status),
		TransferID:   s.TransferID,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// toSuggestionEntity GORM模型 → 领域实体
func toSuggestionEntity(m *ReplenishSuggestionModel) *replenish.Suggestion {
	return &replenish.Suggestion{
		ID:           m.ID,
		TenantID:     m.TenantID,
		WarehouseID:  m.WarehouseID,
		ProductID:    m.ProductID,
		PolicyID:     m.PolicyID,
		SuggestedQty: m.SuggestedQty,
		CurrentStock: m.CurrentStock,
		Status:       replenish.SuggestionStatus(m.Status),
		TransferID:   m.TransferID,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
