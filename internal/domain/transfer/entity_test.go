package transfer

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTransferOrderStateMachine 测试转移单状态流转
// CREATED → APPROVED → COMPLETED,不允许跳级
func TestTransferOrderStateMachine(t *testing.T) {
	o := NewOrder(1, 1, 2)
	assert.Equal(t, OrderStatusCreated, o.Status)

	t.Run("未审批不能完成", func(t *testing.T) {
		assert.ErrorIs(t, o.Complete(), ErrInvalidState)
	})

	t.Run("正常流转", func(t *testing.T) {
		require.NoError(t, o.Approve())
		assert.Equal(t, OrderStatusApproved, o.Status)

		assert.ErrorIs(t, o.Approve(), ErrInvalidState, "重复审批应该失败")

		require.NoError(t, o.Complete())
		assert.Equal(t, OrderStatusCompleted, o.Status)
	})
}

// TestTransferOrderAddLine 测试转移单加行规则
func TestTransferOrderAddLine(t *testing.T) {
	o := NewOrder(1, 1, 2)

	t.Run("数量必须为正", func(t *testing.T) {
		assert.ErrorIs(t, o.AddLine(1, decimal.Zero, "EA"), ErrInvalidQuantity)
	})

	t.Run("CREATED状态允许加行", func(t *testing.T) {
		require.NoError(t, o.AddLine(1, decimal.NewFromInt(20), "EA"))
		assert.Len(t, o.Lines, 1)
	})

	t.Run("审批后拒绝加行", func(t *testing.T) {
		require.NoError(t, o.Approve())
		assert.ErrorIs(t, o.AddLine(2, decimal.NewFromInt(5), "EA"), ErrInvalidState)
	})
}
