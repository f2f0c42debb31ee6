package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/wms/internal/domain/warehouse"
	apperrors "github.com/xiebiao/wms/pkg/errors"
)

// warehouseRepository 仓库/库位仓储实现(MySQL)
type warehouseRepository struct {
	db *gorm.DB
}

// NewWarehouseRepository 创建仓库仓储
func NewWarehouseRepository(db *gorm.DB) warehouse.Repository {
	return &warehouseRepository{db: db}
}

// FindByID 根据ID查找仓库
func (r *warehouseRepository) FindByID(ctx context.Context, tenantID, id uint) (*warehouse.Warehouse, error) {
	var model WarehouseModel
	db := getDB(ctx, r.db)
	err := db.Where("tenant_id = ?", tenantID).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, warehouse.ErrWarehouseNotFound
		}
		return nil, apperrors.Wrap(err, "查询仓库失败")
	}
	return &warehouse.Warehouse{
		ID:        model.ID,
		TenantID:  model.TenantID,
		Code:      model.Code,
		Name:      model.Name,
		IsActive:  model.IsActive,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}, nil
}

// FindLocation 根据ID查找库位
func (r *warehouseRepository) FindLocation(ctx context.Context, tenantID, locationID uint) (*warehouse.Location, error) {
	var model LocationModel
	db := getDB(ctx, r.db)
	err := db.Where("tenant_id = ?", tenantID).First(&model, locationID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, warehouse.ErrLocationNotFound
		}
		return nil, apperrors.Wrap(err, "查询库位失败")
	}
	return toLocationEntity(&model), nil
}

// FirstActiveLocation 仓库内ID最小的活跃库位
// 转移执行器的确定性默认库位选择
func (r *warehouseRepository) FirstActiveLocation(ctx context.Context, tenantID, warehouseID uint) (*warehouse.Location, error) {
	var model LocationModel
	db := getDB(ctx, r.db)
	err := db.Where("tenant_id = ? AND warehouse_id = ? AND is_active = ?", tenantID, warehouseID, true).
		Order("id ASC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, warehouse.ErrNoActiveLocation
		}
		return nil, apperrors.Wrap(err, "查询活跃库位失败")
	}
	return toLocationEntity(&model), nil
}

// toLocationEntity GORM模型 → 领域实体
func toLocationEntity(m *LocationModel) *warehouse.Location {
	return &warehouse.Location{
		ID:           m.ID,
		TenantID:     m.TenantID,
		WarehouseID:  m.WarehouseID,
		Code:         m.Code,
		Zone:         m.Zone,
		SlotCapacity: m.SlotCapacity,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
	}
}

// policyRepository 容差/出库规则仓储实现(MySQL)
// 配置由租户开通系统维护,本服务只读
type policyRepository struct {
	db *gorm.DB
}

// NewPolicyRepository 创建策略仓储
func NewPolicyRepository(db *gorm.DB) warehouse.PolicyRepository {
	return &policyRepository{db: db}
}

// ResolveTolerance 层级解析收货容差策略
// 取出租户内所有命中的策略,在内存中按具体程度挑最大
// (策略行数很小,没必要把优先级编进SQL)
func (r *policyRepository) ResolveTolerance(ctx context.Context, tenantID, warehouseID, productID uint) (*warehouse.TolerancePolicy, error) {
	var models []TolerancePolicyModel
	db := getDB(ctx, r.db)
	err := db.Where("tenant_id = ? AND (warehouse_id IS NULL OR warehouse_id = ?) AND (product_id IS NULL OR product_id = ?)",
		tenantID, warehouseID, productID).
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询容差策略失败")
	}

	var best *warehouse.TolerancePolicy
	for i := range models {
		p := &warehouse.TolerancePolicy{
			ID:                 models[i].ID,
			TenantID:           models[i].TenantID,
			WarehouseID:        models[i].WarehouseID,
			ProductID:          models[i].ProductID,
			MaxOverReceiptPct:  models[i].MaxOverReceiptPct,
			MaxUnderReceiptPct: models[i].MaxUnderReceiptPct,
			CreatedAt:          models[i].CreatedAt,
		}
		if best == nil || p.Specificity() > best.Specificity() {
			best = p
		}
	}
	return best, nil
}

// FindOutboundRule 查询租户级出库规则(无规则时返回nil)
func (r *policyRepository) FindOutboundRule(ctx context.Context, tenantID uint) (*warehouse.OutboundRule, error) {
	var model OutboundRuleModel
	db := getDB(ctx, r.db)
	err := db.Where("tenant_id = ?", tenantID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(err, "查询出库规则失败")
	}
	return &warehouse.OutboundRule{
		ID:                    model.ID,
		TenantID:              model.TenantID,
		RequireFullAllocation: model.RequireFullAllocation,
	}, nil
}
