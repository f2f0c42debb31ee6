package outbound_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/wms/internal/application/audit"
	appoutbound "github.com/xiebiao/wms/internal/application/outbound"
	"github.com/xiebiao/wms/internal/domain/outbound"
	"github.com/xiebiao/wms/internal/domain/product"
	"github.com/xiebiao/wms/internal/domain/stock"
	"github.com/xiebiao/wms/internal/domain/warehouse"
	"github.com/xiebiao/wms/internal/infrastructure/persistence/memory"
)

const tenantID = uint(1)

// outboundFixture 出库/拣货用例测试夹具
// 仓库1(库位10为存储位);商品1按效期FEFO,商品2普通FIFO
type outboundFixture struct {
	products   *memory.ProductRepository
	batches    *memory.BatchRepository
	warehouses *memory.WarehouseRepository
	policies   *memory.PolicyRepository
	partitions *memory.PartitionRepository
	movements  *memory.MovementRepository
	orders     *memory.OrderRepository
	tasks      *memory.PickingTaskRepository
	ledger     *stock.Ledger

	createOrder *appoutbound.CreateOrderUseCase
	release     *appoutbound.ReleaseOrderUseCase
	createTask  *appoutbound.CreatePickingTaskUseCase
	startTask   *appoutbound.StartTaskUseCase
	confirmPick *appoutbound.ConfirmPickingUseCase
}

func newOutboundFixture(t *testing.T) *outboundFixture {
	t.Helper()

	f := &outboundFixture{
		products:   memory.NewProductRepository(),
		batches:    memory.NewBatchRepository(),
		warehouses: memory.NewWarehouseRepository(),
		policies:   memory.NewPolicyRepository(),
		orders:     memory.NewOrderRepository(),
		tasks:      memory.NewPickingTaskRepository(),
	}
	f.partitions = memory.NewPartitionRepository(f.warehouses)
	f.movements = memory.NewMovementRepository(f.warehouses)
	f.ledger = stock.NewLedger(f.partitions)

	f.warehouses.AddWarehouse(&warehouse.Warehouse{ID: 1, TenantID: tenantID, Code: "WH1", IsActive: true})
	f.warehouses.AddLocation(&warehouse.Location{ID: 10, TenantID: tenantID, WarehouseID: 1, Code: "A-01", IsActive: true})

	f.products.Add(&product.Product{ID: 1, TenantID: tenantID, SKU: "SKU-1", DefaultUnitOfMeasure: "EA", RequiresBatch: true, RequiresExpiryDate: true, IsActive: true})
	f.products.Add(&product.Product{ID: 2, TenantID: tenantID, SKU: "SKU-2", DefaultUnitOfMeasure: "EA", IsActive: true})

	tx := memory.NewTxManager(f.orders, f.tasks, f.partitions, f.movements)
	f.createOrder = appoutbound.NewCreateOrderUseCase(f.orders, f.products, f.warehouses, audit.NopUsageCounter{})
	f.release = appoutbound.NewReleaseOrderUseCase(f.orders, f.products, f.batches, f.partitions, f.policies, f.ledger, tx)
	f.createTask = appoutbound.NewCreatePickingTaskUseCase(f.orders, f.tasks, f.partitions, tx)
	f.startTask = appoutbound.NewStartTaskUseCase(f.tasks, tx)
	f.confirmPick = appoutbound.NewConfirmPickingUseCase(f.tasks, f.orders, f.partitions, f.ledger, f.movements, tx, audit.NopRecorder{})
	return f
}

// seedBatchStock 为商品建一个带批次的AVAILABLE分区
func (f *outboundFixture) seedBatchStock(t *testing.T, productID uint, batchCode string, expiryInDays int, qty int64) *uint {
	t.Helper()
	ctx := context.Background()
	expiry := time.Now().AddDate(0, 0, expiryInDays)
	batch, err := f.batches.ResolveOrCreate(ctx, tenantID, productID, batchCode, &expiry)
	require.NoError(t, err)

	_, err = f.ledger.Increase(ctx, tenantID, stock.PartitionKey{
		ProductID:     productID,
		BatchID:       &batch.ID,
		LocationID:    10,
		UnitOfMeasure: "EA",
		Status:        stock.StatusAvailable,
	}, decimal.NewFromInt(qty))
	require.NoError(t, err)
	return &batch.ID
}

// seedPlainStock 为无批次商品建AVAILABLE分区
func (f *outboundFixture) seedPlainStock(t *testing.T, productID uint, qty int64) {
	t.Helper()
	_, err := f.ledger.Increase(context.Background(), tenantID, stock.PartitionKey{
		ProductID:     productID,
		LocationID:    10,
		UnitOfMeasure: "EA",
		Status:        stock.StatusAvailable,
	}, decimal.NewFromInt(qty))
	require.NoError(t, err)
}

// newOrder 创建一张单行订单并返回订单ID(未释放)
func (f *outboundFixture) newOrder(t *testing.T, productID uint, qty int64) uint {
	t.Helper()
	resp, err := f.createOrder.Execute(context.Background(), appoutbound.CreateOrderRequest{
		TenantID:    tenantID,
		WarehouseID: 1,
		Lines: []appoutbound.CreateOrderLineRequest{
			{ProductID: productID, RequestedQty: decimal.NewFromInt(qty)},
		},
	})
	require.NoError(t, err)
	return resp.OrderID
}

func (f *outboundFixture) partitionQty(t *testing.T, key stock.PartitionKey) decimal.Decimal {
	t.Helper()
	p, err := f.partitions.LockByKey(context.Background(), tenantID, key)
	if err != nil {
		return decimal.Zero
	}
	return p.Quantity
}

func (f *outboundFixture) totalByProduct(t *testing.T, productID uint) decimal.Decimal {
	t.Helper()
	partitions, err := f.partitions.ListByProduct(context.Background(), tenantID, productID)
	require.NoError(t, err)
	total := decimal.Zero
	for _, p := range partitions {
		total = total.Add(p.Quantity)
	}
	return total
}

// TestReleaseOrderFEFO 测试FEFO分配确定性
// 批次A(10天后到期,20件)与批次B(40天后到期,20件),请求30:
// A全部预留,B预留10、余10
func TestReleaseOrderFEFO(t *testing.T) {
	ctx := context.Background()
	f := newOutboundFixture(t)

	batchA := f.seedBatchStock(t, 1, "BATCH-A", 10, 20)
	batchB := f.seedBatchStock(t, 1, "BATCH-B", 40, 20)
	orderID := f.newOrder(t, 1, 30)

	resp, err := f.release.Execute(ctx, appoutbound.ReleaseOrderRequest{TenantID: tenantID, OrderID: orderID})
	require.NoError(t, err)

	assert.Equal(t, "FULLY_ALLOCATED", resp.Status)
	require.Len(t, resp.Lines, 1)
	assert.True(t, resp.Lines[0].AllocatedQty.Equal(decimal.NewFromInt(30)))

	keyA := stock.PartitionKey{ProductID: 1, BatchID: batchA, LocationID: 10, UnitOfMeasure: "EA", Status: stock.StatusAvailable}
	keyB := stock.PartitionKey{ProductID: 1, BatchID: batchB, LocationID: 10, UnitOfMeasure: "EA", Status: stock.StatusAvailable}

	assert.True(t, f.partitionQty(t, keyA).IsZero(), "最近效期的批次A应该被优先取空")
	assert.True(t, f.partitionQty(t, keyB).Equal(decimal.NewFromInt(10)), "批次B只取10")
	assert.True(t, f.partitionQty(t, keyA.WithStatus(stock.StatusReserved)).Equal(decimal.NewFromInt(20)))
	assert.True(t, f.partitionQty(t, keyB.WithStatus(stock.StatusReserved)).Equal(decimal.NewFromInt(10)))

	// 守恒:分配不改变商品总量
	assert.True(t, f.totalByProduct(t, 1).Equal(decimal.NewFromInt(40)))

	// 分配不产生移动记录(状态间搬运不是出入库)
	assert.Empty(t, f.movements.All())

	t.Run("已分配满的订单不能重复释放", func(t *testing.T) {
		_, err := f.release.Execute(ctx, appoutbound.ReleaseOrderRequest{TenantID: tenantID, OrderID: orderID})
		assert.ErrorIs(t, err, outbound.ErrInvalidState)
	})
}

// TestReleaseOrderPartial 测试部分分配与整单分配规则
func TestReleaseOrderPartial(t *testing.T) {
	ctx := context.Background()

	t.Run("默认允许部分分配", func(t *testing.T) {
		f := newOutboundFixture(t)
		f.seedPlainStock(t, 2, 20)
		orderID := f.newOrder(t, 2, 30)

		resp, err := f.release.Execute(ctx, appoutbound.ReleaseOrderRequest{TenantID: tenantID, OrderID: orderID})
		require.NoError(t, err)

		assert.Equal(t, "PARTIALLY_ALLOCATED", resp.Status)
		assert.True(t, resp.Lines[0].AllocatedQty.Equal(decimal.NewFromInt(20)))
	})

	t.Run("整单分配规则下不足即整单失败", func(t *testing.T) {
		f := newOutboundFixture(t)
		f.policies.SetOutboundRule(&warehouse.OutboundRule{ID: 1, TenantID: tenantID, RequireFullAllocation: true})
		f.seedPlainStock(t, 2, 20)
		orderID := f.newOrder(t, 2, 30)

		_, err := f.release.Execute(ctx, appoutbound.ReleaseOrderRequest{TenantID: tenantID, OrderID: orderID})
		assert.ErrorIs(t, err, outbound.ErrInsufficientStock)

		// 可行性先行:失败时不留下任何部分预留
		key := stock.PartitionKey{ProductID: 2, LocationID: 10, UnitOfMeasure: "EA", Status: stock.StatusReserved}
		assert.True(t, f.partitionQty(t, key).IsZero())
	})

	t.Run("整单分配规则下库存充足正常分配", func(t *testing.T) {
		f := newOutboundFixture(t)
		f.policies.SetOutboundRule(&warehouse.OutboundRule{ID: 1, TenantID: tenantID, RequireFullAllocation: true})
		f.seedPlainStock(t, 2, 30)
		orderID := f.newOrder(t, 2, 30)

		resp, err := f.release.Execute(ctx, appoutbound.ReleaseOrderRequest{TenantID: tenantID, OrderID: orderID})
		require.NoError(t, err)
		assert.Equal(t, "FULLY_ALLOCATED", resp.Status)
	})
}
