package mysql

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/xiebiao/wms/internal/domain/stock"
	apperrors "github.com/xiebiao/wms/pkg/errors"
)

// movementRepository 库存移动记录仓储实现(MySQL)
// 移动记录只追加不修改,没有Update/Delete方法
type movementRepository struct {
	db *gorm.DB
}

// NewMovementRepository 创建移动记录仓储
func NewMovementRepository(db *gorm.DB) stock.MovementRepository {
	return &movementRepository{db: db}
}

// Create 追加一条移动记录
func (r *movementRepository) Create(ctx context.Context, m *stock.Movement) error {
	model := &MovementModel{
		TenantID:       m.TenantID,
		Type:           string(m.Type),
		ProductID:      m.ProductID,
		BatchID:        m.BatchID,
		FromLocationID: m.FromLocationID,
		ToLocationID:   m.ToLocationID,
		UnitOfMeasure:  m.UnitOfMeasure,
		Quantity:       m.Quantity,
		ReferenceType:  m.ReferenceType,
		ReferenceID:    m.ReferenceID,
		CreatedAt:      m.CreatedAt,
	}
	db := getDB(ctx, r.db)
	if err := db.Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建移动记录失败")
	}
	m.ID = model.ID
	return nil
}

// SumOutboundSince 汇总商品在仓库内自某时刻起的出库移动数量
// 出库移动只有来源库位,仓库过滤经由来源库位关联
func (r *movementRepository) SumOutboundSince(ctx context.Context, tenantID, warehouseID, productID uint, since time.Time) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	db := getDB(ctx, r.db)
	err := db.Model(&MovementModel{}).
		Select("COALESCE(SUM(stock_movements.quantity), 0) AS total").
		Joins("JOIN locations ON locations.id = stock_movements.from_location_id").
		Where("stock_movements.tenant_id = ? AND stock_movements.product_id = ? AND stock_movements.type = ? AND stock_movements.created_at >= ? AND locations.warehouse_id = ?",
			tenantID, productID, string(stock.MovementOutboundShipment), since, warehouseID).
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, apperrors.Wrap(err, "汇总出库移动失败")
	}
	return result.Total, nil
}
