package inbound_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinbound "github.com/xiebiao/wms/internal/application/inbound"
	"github.com/xiebiao/wms/internal/application/audit"
	"github.com/xiebiao/wms/internal/domain/inbound"
	"github.com/xiebiao/wms/internal/domain/product"
	"github.com/xiebiao/wms/internal/domain/stock"
	"github.com/xiebiao/wms/internal/domain/warehouse"
	"github.com/xiebiao/wms/internal/infrastructure/persistence/memory"
)

const tenantID = uint(1)

// inboundFixture 入库用例测试夹具
// 仓库1(库位10)、仓库2(库位20);商品1普通、商品2需要批次、商品3需要效期
type inboundFixture struct {
	products   *memory.ProductRepository
	batches    *memory.BatchRepository
	warehouses *memory.WarehouseRepository
	policies   *memory.PolicyRepository
	partitions *memory.PartitionRepository
	movements  *memory.MovementRepository
	receipts   *memory.ReceiptRepository

	create  *appinbound.CreateReceiptUseCase
	confirm *appinbound.ConfirmReceiptUseCase
}

func newInboundFixture(t *testing.T) *inboundFixture {
	t.Helper()

	f := &inboundFixture{
		products:   memory.NewProductRepository(),
		batches:    memory.NewBatchRepository(),
		warehouses: memory.NewWarehouseRepository(),
		policies:   memory.NewPolicyRepository(),
		receipts:   memory.NewReceiptRepository(),
	}
	f.partitions = memory.NewPartitionRepository(f.warehouses)
	f.movements = memory.NewMovementRepository(f.warehouses)

	f.warehouses.AddWarehouse(&warehouse.Warehouse{ID: 1, TenantID: tenantID, Code: "WH1", IsActive: true})
	f.warehouses.AddWarehouse(&warehouse.Warehouse{ID: 2, TenantID: tenantID, Code: "WH2", IsActive: true})
	f.warehouses.AddLocation(&warehouse.Location{ID: 10, TenantID: tenantID, WarehouseID: 1, Code: "A-01", IsActive: true})
	f.warehouses.AddLocation(&warehouse.Location{ID: 20, TenantID: tenantID, WarehouseID: 2, Code: "B-01", IsActive: true})

	f.products.Add(&product.Product{ID: 1, TenantID: tenantID, SKU: "SKU-1", DefaultUnitOfMeasure: "EA", IsActive: true})
	f.products.Add(&product.Product{ID: 2, TenantID: tenantID, SKU: "SKU-2", DefaultUnitOfMeasure: "EA", RequiresBatch: true, IsActive: true})
	f.products.Add(&product.Product{ID: 3, TenantID: tenantID, SKU: "SKU-3", DefaultUnitOfMeasure: "EA", RequiresBatch: true, RequiresExpiryDate: true, IsActive: true})

	ledger := stock.NewLedger(f.partitions)
	tx := memory.NewTxManager(f.receipts, f.batches, f.partitions, f.movements)

	f.create = appinbound.NewCreateReceiptUseCase(f.receipts, f.products, f.warehouses)
	f.confirm = appinbound.NewConfirmReceiptUseCase(
		f.receipts, f.products, f.batches, f.warehouses, f.policies,
		ledger, f.movements, tx, audit.NopRecorder{}, audit.NopUsageCounter{},
	)
	return f
}

// createReceipt 建一张单行入库单并返回单据ID
func (f *inboundFixture) createReceipt(t *testing.T, productID uint, expectedQty int64, batchCode *string) uint {
	t.Helper()
	resp, err := f.create.Execute(context.Background(), appinbound.CreateReceiptRequest{
		TenantID:    tenantID,
		WarehouseID: 1,
		ExternalRef: "PO-TEST",
		Lines: []appinbound.CreateReceiptLineRequest{
			{ProductID: productID, ExpectedQty: decimal.NewFromInt(expectedQty), BatchCode: batchCode},
		},
	})
	require.NoError(t, err)
	return resp.ReceiptID
}

func (f *inboundFixture) availableQty(t *testing.T, productID uint) decimal.Decimal {
	t.Helper()
	total, err := f.partitions.SumByProductAndWarehouse(context.Background(), tenantID, 1, productID, stock.StatusAvailable)
	require.NoError(t, err)
	return total
}

// TestConfirmReceipt 测试确认收货主流程
func TestConfirmReceipt(t *testing.T) {
	ctx := context.Background()

	t.Run("全量收货", func(t *testing.T) {
		f := newInboundFixture(t)
		receiptID := f.createReceipt(t, 1, 100, nil)

		resp, err := f.confirm.Execute(ctx, appinbound.ConfirmReceiptRequest{
			TenantID:              tenantID,
			ReceiptID:             receiptID,
			DestinationLocationID: 10,
		})
		require.NoError(t, err)

		assert.Equal(t, "RECEIVED", resp.Status)
		assert.True(t, f.availableQty(t, 1).Equal(decimal.NewFromInt(100)), "台账AVAILABLE应该入账100")

		movements := f.movements.All()
		require.Len(t, movements, 1)
		assert.Equal(t, stock.MovementInboundReceipt, movements[0].Type)
		assert.Equal(t, uint(10), *movements[0].ToLocationID)
		assert.Nil(t, movements[0].FromLocationID, "入库移动没有来源库位")
	})

	t.Run("收货完成的单据不能再确认", func(t *testing.T) {
		f := newInboundFixture(t)
		receiptID := f.createReceipt(t, 1, 100, nil)

		_, err := f.confirm.Execute(ctx, appinbound.ConfirmReceiptRequest{
			TenantID: tenantID, ReceiptID: receiptID, DestinationLocationID: 10,
		})
		require.NoError(t, err)

		_, err = f.confirm.Execute(ctx, appinbound.ConfirmReceiptRequest{
			TenantID: tenantID, ReceiptID: receiptID, DestinationLocationID: 10,
		})
		assert.ErrorIs(t, err, inbound.ErrInvalidState)
	})

	t.Run("目的库位必须属于单据所在仓库", func(t *testing.T) {
		f := newInboundFixture(t)
		receiptID := f.createReceipt(t, 1, 100, nil)

		_, err := f.confirm.Execute(ctx, appinbound.ConfirmReceiptRequest{
			TenantID: tenantID, ReceiptID: receiptID, DestinationLocationID: 20,
		})
		assert.ErrorIs(t, err, warehouse.ErrCrossWarehouse)
		assert.True(t, f.availableQty(t, 1).IsZero(), "失败的确认不应该入账")
	})
}

// TestConfirmReceiptAtomicity 测试多行确认的整单回滚
// 行1(普通商品)先入账,行2(要求批次)校验失败,整个事务必须回滚
func TestConfirmReceiptAtomicity(t *testing.T) {
	ctx := context.Background()
	f := newInboundFixture(t)

	resp, err := f.create.Execute(ctx, appinbound.CreateReceiptRequest{
		TenantID:    tenantID,
		WarehouseID: 1,
		Lines: []appinbound.CreateReceiptLineRequest{
			{ProductID: 1, ExpectedQty: decimal.NewFromInt(100)},
			{ProductID: 2, ExpectedQty: decimal.NewFromInt(50)},
		},
	})
	require.NoError(t, err)

	_, err = f.confirm.Execute(ctx, appinbound.ConfirmReceiptRequest{
		TenantID: tenantID, ReceiptID: resp.ReceiptID, DestinationLocationID: 10,
	})
	require.ErrorIs(t, err, product.ErrMissingBatchCode)

	assert.True(t, f.availableQty(t, 1).IsZero(), "行1的入账必须随事务回滚")
	assert.Empty(t, f.movements.All())

	receipt, err := f.receipts.FindByID(ctx, tenantID, resp.ReceiptID)
	require.NoError(t, err)
	assert.Equal(t, "DRAFT", receipt.Status.String())
	assert.True(t, receipt.Lines[0].ReceivedQty.IsZero(), "行1的已收量必须回滚")

	t.Run("补上批次号后重新确认成功", func(t *testing.T) {
		code := "LOT-RETRY"
		received := decimal.NewFromInt(50)
		_, err := f.confirm.Execute(ctx, appinbound.ConfirmReceiptRequest{
			TenantID:              tenantID,
			ReceiptID:             resp.ReceiptID,
			DestinationLocationID: 10,
			Overrides: []appinbound.ConfirmLineOverride{
				{LineID: receipt.Lines[1].ID, ReceivedQty: &received, BatchCode: &code},
			},
		})
		require.NoError(t, err)
		assert.True(t, f.availableQty(t, 1).Equal(decimal.NewFromInt(100)))
		assert.True(t, f.availableQty(t, 2).Equal(decimal.NewFromInt(50)))
	})
}

// TestConfirmReceiptTolerance 测试收货容差边界
// 预期100、超收容差10%:恰好110成功,111失败
func TestConfirmReceiptTolerance(t *testing.T) {
	ctx := context.Background()
	overPct := decimal.NewFromInt(10)

	confirmWithQty := func(t *testing.T, f *inboundFixture, receiptID uint, qty int64) error {
		t.Helper()
		receipt, err := f.receipts.FindByID(ctx, tenantID, receiptID)
		require.NoError(t, err)
		received := decimal.NewFromInt(qty)
		_, err = f.confirm.Execute(ctx, appinbound.ConfirmReceiptRequest{
			TenantID:              tenantID,
			ReceiptID:             receiptID,
			DestinationLocationID: 10,
			Overrides: []appinbound.ConfirmLineOverride{
				{LineID: receipt.Lines[0].ID, ReceivedQty: &received},
			},
		})
		return err
	}

	t.Run("恰好上限110成功", func(t *testing.T) {
		f := newInboundFixture(t)
		f.policies.AddTolerance(&warehouse.TolerancePolicy{ID: 1, TenantID: tenantID, MaxOverReceiptPct: overPct})
		receiptID := f.createReceipt(t, 1, 100, nil)

		require.NoError(t, confirmWithQty(t, f, receiptID, 110))
		assert.True(t, f.availableQty(t, 1).Equal(decimal.NewFromInt(110)))
	})

	t.Run("超上限111失败且台账不变", func(t *testing.T) {
		f := newInboundFixture(t)
		f.policies.AddTolerance(&warehouse.TolerancePolicy{ID: 1, TenantID: tenantID, MaxOverReceiptPct: overPct})
		receiptID := f.createReceipt(t, 1, 100, nil)

		err := confirmWithQty(t, f, receiptID, 111)
		assert.ErrorIs(t, err, inbound.ErrToleranceExceeded)
		assert.True(t, f.availableQty(t, 1).IsZero())
		assert.Empty(t, f.movements.All())
	})

	t.Run("显式短收超出欠收容差失败", func(t *testing.T) {
		f := newInboundFixture(t)
		underPct := decimal.NewFromInt(5)
		f.policies.AddTolerance(&warehouse.TolerancePolicy{
			ID: 1, TenantID: tenantID, MaxOverReceiptPct: overPct, MaxUnderReceiptPct: &underPct,
		})

		// 短收5%以内允许:95/100
		receiptID := f.createReceipt(t, 1, 100, nil)
		require.NoError(t, confirmWithQty(t, f, receiptID, 95))

		// 短收超过5%拒绝:90/100
		receiptID = f.createReceipt(t, 1, 100, nil)
		err := confirmWithQty(t, f, receiptID, 90)
		assert.ErrorIs(t, err, inbound.ErrToleranceExceeded)
	})
}

// TestConfirmReceiptBatch 测试批次/效期要求与惰性批次解析
func TestConfirmReceiptBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("要求批次的商品缺批次号失败", func(t *testing.T) {
		f := newInboundFixture(t)
		receiptID := f.createReceipt(t, 2, 50, nil)

		_, err := f.confirm.Execute(ctx, appinbound.ConfirmReceiptRequest{
			TenantID: tenantID, ReceiptID: receiptID, DestinationLocationID: 10,
		})
		assert.ErrorIs(t, err, product.ErrMissingBatchCode)
	})

	t.Run("要求效期的商品缺效期失败", func(t *testing.T) {
		f := newInboundFixture(t)
		code := "LOT-001"
		receiptID := f.createReceipt(t, 3, 50, &code)

		_, err := f.confirm.Execute(ctx, appinbound.ConfirmReceiptRequest{
			TenantID: tenantID, ReceiptID: receiptID, DestinationLocationID: 10,
		})
		assert.ErrorIs(t, err, product.ErrMissingExpiryDate)
	})

	t.Run("同批次号的两行只创建一个批次", func(t *testing.T) {
		f := newInboundFixture(t)
		code := "LOT-SHARED"
		resp, err := f.create.Execute(ctx, appinbound.CreateReceiptRequest{
			TenantID:    tenantID,
			WarehouseID: 1,
			Lines: []appinbound.CreateReceiptLineRequest{
				{ProductID: 2, ExpectedQty: decimal.NewFromInt(30), BatchCode: &code},
				{ProductID: 2, ExpectedQty: decimal.NewFromInt(40), BatchCode: &code},
			},
		})
		require.NoError(t, err)

		confirmed, err := f.confirm.Execute(ctx, appinbound.ConfirmReceiptRequest{
			TenantID: tenantID, ReceiptID: resp.ReceiptID, DestinationLocationID: 10,
		})
		require.NoError(t, err)

		assert.Equal(t, 1, f.batches.Count(), "批次解析必须幂等")
		require.Len(t, confirmed.Lines, 2)
		assert.Equal(t, *confirmed.Lines[0].BatchID, *confirmed.Lines[1].BatchID)
		assert.True(t, f.availableQty(t, 2).Equal(decimal.NewFromInt(70)))
	})

	t.Run("覆盖项提供的批次与效期生效", func(t *testing.T) {
		f := newInboundFixture(t)
		receiptID := f.createReceipt(t, 3, 50, nil)
		receipt, err := f.receipts.FindByID(ctx, tenantID, receiptID)
		require.NoError(t, err)

		code := "LOT-OVR"
		expiry := time.Now().AddDate(1, 0, 0)
		_, err = f.confirm.Execute(ctx, appinbound.ConfirmReceiptRequest{
			TenantID:              tenantID,
			ReceiptID:             receiptID,
			DestinationLocationID: 10,
			Overrides: []appinbound.ConfirmLineOverride{
				{LineID: receipt.Lines[0].ID, BatchCode: &code, ExpiryDate: &expiry},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, f.batches.Count())
	})
}
