package stock_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/wms/internal/domain/stock"
	"github.com/xiebiao/wms/internal/infrastructure/persistence/memory"
)

func newLedger() (*stock.Ledger, *memory.PartitionRepository) {
	repo := memory.NewPartitionRepository(memory.NewWarehouseRepository())
	return stock.NewLedger(repo), repo
}

func availKey(productID, locationID uint) stock.PartitionKey {
	return stock.PartitionKey{
		ProductID:     productID,
		LocationID:    locationID,
		UnitOfMeasure: "EA",
		Status:        stock.StatusAvailable,
	}
}

// TestLedgerIncrease 测试台账入账
func TestLedgerIncrease(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newLedger()
	key := availKey(1, 100)

	t.Run("分区不存在时创建", func(t *testing.T) {
		p, err := ledger.Increase(ctx, 1, key, decimal.NewFromInt(100))
		require.NoError(t, err)
		assert.True(t, p.Quantity.Equal(decimal.NewFromInt(100)))
		assert.NotZero(t, p.ID)
	})

	t.Run("分区已存在时累加", func(t *testing.T) {
		p, err := ledger.Increase(ctx, 1, key, decimal.NewFromInt(10))
		require.NoError(t, err)
		assert.True(t, p.Quantity.Equal(decimal.NewFromInt(110)))
	})

	t.Run("数量必须为正", func(t *testing.T) {
		_, err := ledger.Increase(ctx, 1, key, decimal.Zero)
		assert.ErrorIs(t, err, stock.ErrInvalidQuantity)
	})

	t.Run("非法状态被拒绝", func(t *testing.T) {
		bad := key
		bad.Status = stock.Status("SHIPPED")
		_, err := ledger.Increase(ctx, 1, bad, decimal.NewFromInt(1))
		assert.ErrorIs(t, err, stock.ErrInvalidStatus)
	})
}

// TestLedgerDecrease 测试台账出账
func TestLedgerDecrease(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newLedger()
	key := availKey(1, 100)

	_, err := ledger.Increase(ctx, 1, key, decimal.NewFromInt(30))
	require.NoError(t, err)

	t.Run("数量不足时原子失败", func(t *testing.T) {
		_, err := ledger.Decrease(ctx, 1, key, decimal.NewFromInt(31))
		assert.ErrorIs(t, err, stock.ErrInsufficientStock)

		p, err := ledger.Increase(ctx, 1, key, decimal.NewFromInt(1))
		require.NoError(t, err)
		assert.True(t, p.Quantity.Equal(decimal.NewFromInt(31)), "失败的出账不应该留下部分扣减")
	})

	t.Run("分区不存在视为库存不足", func(t *testing.T) {
		_, err := ledger.Decrease(ctx, 1, availKey(99, 100), decimal.NewFromInt(1))
		assert.ErrorIs(t, err, stock.ErrInsufficientStock)
	})

	t.Run("减到0后零行保留", func(t *testing.T) {
		p, err := ledger.Decrease(ctx, 1, key, decimal.NewFromInt(31))
		require.NoError(t, err)
		assert.True(t, p.Quantity.IsZero())
	})
}

// TestLedgerMove 测试分区间搬运(守恒不变量)
func TestLedgerMove(t *testing.T) {
	ctx := context.Background()
	ledger, repo := newLedger()
	from := availKey(1, 100)
	to := from.WithStatus(stock.StatusReserved)

	_, err := ledger.Increase(ctx, 1, from, decimal.NewFromInt(50))
	require.NoError(t, err)

	t.Run("搬运前后总量不变", func(t *testing.T) {
		require.NoError(t, ledger.Move(ctx, 1, from, to, decimal.NewFromInt(20)))

		partitions, err := repo.ListByProduct(ctx, 1, 1)
		require.NoError(t, err)
		total := decimal.Zero
		for _, p := range partitions {
			total = total.Add(p.Quantity)
		}
		assert.True(t, total.Equal(decimal.NewFromInt(50)), "Move不改变商品总量")
	})

	t.Run("来源不足时目标分区不变", func(t *testing.T) {
		err := ledger.Move(ctx, 1, from, to, decimal.NewFromInt(31))
		assert.ErrorIs(t, err, stock.ErrInsufficientStock)

		p, err := repo.LockByKey(ctx, 1, to)
		require.NoError(t, err)
		assert.True(t, p.Quantity.Equal(decimal.NewFromInt(20)))
	})

	t.Run("来源与目标相同被拒绝", func(t *testing.T) {
		err := ledger.Move(ctx, 1, from, from, decimal.NewFromInt(1))
		assert.ErrorIs(t, err, stock.ErrSamePartition)
	})
}
