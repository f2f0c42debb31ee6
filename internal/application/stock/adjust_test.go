package stock_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/wms/internal/application/audit"
	appstock "github.com/xiebiao/wms/internal/application/stock"
	"github.com/xiebiao/wms/internal/domain/product"
	"github.com/xiebiao/wms/internal/domain/stock"
	"github.com/xiebiao/wms/internal/domain/warehouse"
	"github.com/xiebiao/wms/internal/infrastructure/persistence/memory"
)

const tenantID = uint(1)

type stockFixture struct {
	partitions *memory.PartitionRepository
	movements  *memory.MovementRepository
	ledger     *stock.Ledger
	adjust     *appstock.AdjustStockUseCase
	query      *appstock.QueryUseCase
}

func newStockFixture(t *testing.T) *stockFixture {
	t.Helper()

	warehouses := memory.NewWarehouseRepository()
	warehouses.AddWarehouse(&warehouse.Warehouse{ID: 1, TenantID: tenantID, Code: "WH1", IsActive: true})
	warehouses.AddLocation(&warehouse.Location{ID: 10, TenantID: tenantID, WarehouseID: 1, Code: "A-01", IsActive: true})

	products := memory.NewProductRepository()
	products.Add(&product.Product{ID: 1, TenantID: tenantID, SKU: "SKU-1", DefaultUnitOfMeasure: "EA", IsActive: true})

	f := &stockFixture{
		partitions: memory.NewPartitionRepository(warehouses),
		movements:  memory.NewMovementRepository(warehouses),
	}
	f.ledger = stock.NewLedger(f.partitions)
	f.adjust = appstock.NewAdjustStockUseCase(
		products, warehouses, f.ledger, f.movements,
		memory.NewTxManager(f.partitions, f.movements), audit.NopRecorder{})
	f.query = appstock.NewQueryUseCase(f.partitions)
	return f
}

// TestAdjustStock 测试人工调整库存
func TestAdjustStock(t *testing.T) {
	ctx := context.Background()

	t.Run("盘盈调增建立分区并记录移动", func(t *testing.T) {
		f := newStockFixture(t)

		resp, err := f.adjust.Execute(ctx, appstock.AdjustStockRequest{
			TenantID:    tenantID,
			LocationID:  10,
			ProductID:   1,
			Quantity:    decimal.NewFromInt(25),
			Increase:    true,
			ReferenceID: 501,
		})
		require.NoError(t, err)
		assert.True(t, resp.Quantity.Equal(decimal.NewFromInt(25)))

		movements := f.movements.All()
		require.Len(t, movements, 1)
		assert.Equal(t, stock.MovementAdjustment, movements[0].Type)
		assert.Equal(t, uint(10), *movements[0].ToLocationID, "调增只有目标库位")
		assert.Nil(t, movements[0].FromLocationID)
	})

	t.Run("盘亏调减", func(t *testing.T) {
		f := newStockFixture(t)
		_, err := f.adjust.Execute(ctx, appstock.AdjustStockRequest{
			TenantID: tenantID, LocationID: 10, ProductID: 1,
			Quantity: decimal.NewFromInt(25), Increase: true,
		})
		require.NoError(t, err)

		resp, err := f.adjust.Execute(ctx, appstock.AdjustStockRequest{
			TenantID: tenantID, LocationID: 10, ProductID: 1,
			Quantity: decimal.NewFromInt(10), Increase: false,
		})
		require.NoError(t, err)
		assert.True(t, resp.Quantity.Equal(decimal.NewFromInt(15)))

		movements := f.movements.All()
		require.Len(t, movements, 2)
		assert.Equal(t, uint(10), *movements[1].FromLocationID, "调减只有来源库位")
		assert.Nil(t, movements[1].ToLocationID)
	})

	t.Run("调减超出余额失败且不留移动记录", func(t *testing.T) {
		f := newStockFixture(t)
		_, err := f.adjust.Execute(ctx, appstock.AdjustStockRequest{
			TenantID: tenantID, LocationID: 10, ProductID: 1,
			Quantity: decimal.NewFromInt(5), Increase: true,
		})
		require.NoError(t, err)

		_, err = f.adjust.Execute(ctx, appstock.AdjustStockRequest{
			TenantID: tenantID, LocationID: 10, ProductID: 1,
			Quantity: decimal.NewFromInt(8), Increase: false,
		})
		assert.ErrorIs(t, err, stock.ErrInsufficientStock)
		assert.Len(t, f.movements.All(), 1)
	})

	t.Run("未知库位拒绝", func(t *testing.T) {
		f := newStockFixture(t)
		_, err := f.adjust.Execute(ctx, appstock.AdjustStockRequest{
			TenantID: tenantID, LocationID: 99, ProductID: 1,
			Quantity: decimal.NewFromInt(5), Increase: true,
		})
		assert.ErrorIs(t, err, warehouse.ErrLocationNotFound)
	})
}

// TestQueryStock 测试库存查询视图
func TestQueryStock(t *testing.T) {
	ctx := context.Background()
	f := newStockFixture(t)

	_, err := f.ledger.Increase(ctx, tenantID, stock.PartitionKey{
		ProductID: 1, LocationID: 10, UnitOfMeasure: "EA", Status: stock.StatusAvailable,
	}, decimal.NewFromInt(30))
	require.NoError(t, err)
	_, err = f.ledger.Increase(ctx, tenantID, stock.PartitionKey{
		ProductID: 1, LocationID: 10, UnitOfMeasure: "EA", Status: stock.StatusReserved,
	}, decimal.NewFromInt(12))
	require.NoError(t, err)

	t.Run("按商品列出全部分区", func(t *testing.T) {
		views, err := f.query.ListByProduct(ctx, tenantID, 1)
		require.NoError(t, err)
		require.Len(t, views, 2)

		byStatus := make(map[string]decimal.Decimal)
		for _, v := range views {
			byStatus[v.Status] = v.Quantity
		}
		assert.True(t, byStatus["AVAILABLE"].Equal(decimal.NewFromInt(30)))
		assert.True(t, byStatus["RESERVED"].Equal(decimal.NewFromInt(12)))
	})

	t.Run("仓库可用量只含AVAILABLE", func(t *testing.T) {
		available, err := f.query.AvailableInWarehouse(ctx, tenantID, 1, 1)
		require.NoError(t, err)
		assert.True(t, available.Equal(decimal.NewFromInt(30)))
	})

	t.Run("其他租户看不到分区", func(t *testing.T) {
		views, err := f.query.ListByProduct(ctx, 2, 1)
		require.NoError(t, err)
		assert.Empty(t, views)
	})
}
