package stock

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/wms/internal/domain/stock"
)

// QueryUseCase 库存只读查询用例
type QueryUseCase struct {
	partitionRepo stock.Repository
}

// NewQueryUseCase 创建库存查询用例
func NewQueryUseCase(partitionRepo stock.Repository) *QueryUseCase {
	return &QueryUseCase{partitionRepo: partitionRepo}
}

// PartitionView 分区视图
type PartitionView struct {
	PartitionID   uint            `json:"partition_id"`
	ProductID     uint            `json:"product_id"`
	BatchID       *uint           `json:"batch_id,omitempty"`
	LocationID    uint            `json:"location_id"`
	UnitOfMeasure string          `json:"unit_of_measure"`
	Status        string          `json:"status"`
	Quantity      decimal.Decimal `json:"quantity"`
}

// ListByProduct 商品的全部分区(含零行,便于对账)
func (uc *QueryUseCase) ListByProduct(ctx context.Context, tenantID, productID uint) ([]PartitionView, error) {
	partitions, err := uc.partitionRepo.ListByProduct(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	views := make([]PartitionView, 0, len(partitions))
	for _, p := range partitions {
		views = append(views, PartitionView{
			PartitionID:   p.ID,
			ProductID:     p.Key.ProductID,
			BatchID:       p.Key.BatchID,
			LocationID:    p.Key.LocationID,
			UnitOfMeasure: p.Key.UnitOfMeasure,
			Status:        string(p.Key.Status),
			Quantity:      p.Quantity,
		})
	}
	return views, nil
}

// AvailableInWarehouse 商品在仓库内的可用数量合计
func (uc *QueryUseCase) AvailableInWarehouse(ctx context.Context, tenantID, warehouseID, productID uint) (decimal.Decimal, error) {
	return uc.partitionRepo.SumByProductAndWarehouse(ctx, tenantID, warehouseID, productID, stock.StatusAvailable)
}
