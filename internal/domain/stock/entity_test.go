package stock

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint { return &v }

// TestPartitionKeyEqual 测试分区键相等性
// 五字段全部参与比较,nil批次与具体批次是两个不同的分区
func TestPartitionKeyEqual(t *testing.T) {
	base := PartitionKey{
		ProductID:     1,
		BatchID:       uintPtr(10),
		LocationID:    100,
		UnitOfMeasure: "EA",
		Status:        StatusAvailable,
	}

	t.Run("五字段完全相同则相等", func(t *testing.T) {
		other := base
		other.BatchID = uintPtr(10) // 不同指针,相同值
		assert.True(t, base.Equal(other), "相同键值应该相等")
	})

	t.Run("nil批次与具体批次不相等", func(t *testing.T) {
		other := base
		other.BatchID = nil
		assert.False(t, base.Equal(other), "nil不是通配符")
	})

	t.Run("双方批次均为nil则相等", func(t *testing.T) {
		a, b := base, base
		a.BatchID, b.BatchID = nil, nil
		assert.True(t, a.Equal(b))
	})

	t.Run("任一字段不同则不相等", func(t *testing.T) {
		cases := []PartitionKey{
			{ProductID: 2, BatchID: uintPtr(10), LocationID: 100, UnitOfMeasure: "EA", Status: StatusAvailable},
			{ProductID: 1, BatchID: uintPtr(11), LocationID: 100, UnitOfMeasure: "EA", Status: StatusAvailable},
			{ProductID: 1, BatchID: uintPtr(10), LocationID: 101, UnitOfMeasure: "EA", Status: StatusAvailable},
			{ProductID: 1, BatchID: uintPtr(10), LocationID: 100, UnitOfMeasure: "BOX", Status: StatusAvailable},
			{ProductID: 1, BatchID: uintPtr(10), LocationID: 100, UnitOfMeasure: "EA", Status: StatusReserved},
		}
		for _, c := range cases {
			assert.False(t, base.Equal(c), "字段不同的键不应该相等: %+v", c)
		}
	})

	t.Run("WithStatus只改状态", func(t *testing.T) {
		reserved := base.WithStatus(StatusReserved)
		assert.Equal(t, StatusReserved, reserved.Status)
		assert.Equal(t, base.ProductID, reserved.ProductID)
		assert.Equal(t, base.LocationID, reserved.LocationID)
		assert.Equal(t, StatusAvailable, base.Status, "原键不应该被修改")
	})
}

// TestPartitionQuantity 测试分区数量的领域行为
func TestPartitionQuantity(t *testing.T) {
	key := PartitionKey{ProductID: 1, LocationID: 100, UnitOfMeasure: "EA", Status: StatusAvailable}

	t.Run("新分区数量为0", func(t *testing.T) {
		p := NewPartition(1, key)
		assert.True(t, p.Quantity.IsZero())
	})

	t.Run("增量必须为正", func(t *testing.T) {
		p := NewPartition(1, key)
		assert.ErrorIs(t, p.Add(decimal.Zero), ErrInvalidQuantity)
		assert.ErrorIs(t, p.Add(decimal.NewFromInt(-1)), ErrInvalidQuantity)
	})

	t.Run("减后不能为负", func(t *testing.T) {
		p := NewPartition(1, key)
		require.NoError(t, p.Add(decimal.NewFromInt(5)))

		err := p.Subtract(decimal.NewFromInt(6))
		assert.ErrorIs(t, err, ErrInsufficientStock)
		assert.True(t, p.Quantity.Equal(decimal.NewFromInt(5)), "失败后数量应该保持不变")

		require.NoError(t, p.Subtract(decimal.NewFromInt(5)))
		assert.True(t, p.Quantity.IsZero(), "允许减到0(零行保留)")
	})

	t.Run("小数数量精确累加", func(t *testing.T) {
		p := NewPartition(1, key)
		step := decimal.RequireFromString("0.1")
		for i := 0; i < 10; i++ {
			require.NoError(t, p.Add(step))
		}
		assert.True(t, p.Quantity.Equal(decimal.NewFromInt(1)), "0.1累加10次必须精确等于1")
	})
}

// TestStatusValid 测试库存状态取值校验
func TestStatusValid(t *testing.T) {
	valid := []Status{
		StatusAvailable, StatusReserved, StatusPicking,
		StatusInTransitInternal, StatusQuarantine, StatusScrap, StatusBlocked,
	}
	for _, s := range valid {
		assert.True(t, s.Valid(), "%s应该是合法状态", s)
	}
	assert.False(t, Status("SHIPPED").Valid())
	assert.False(t, Status("").Valid())
}
