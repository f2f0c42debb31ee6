package inbound

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestReceiptAddLine 测试入库单加行规则
func TestReceiptAddLine(t *testing.T) {
	r := NewReceipt(1, 1, "PO-001")
	assert.Equal(t, ReceiptStatusDraft, r.Status)

	t.Run("数量必须为正", func(t *testing.T) {
		_, err := r.AddLine(1, decimal.Zero, "EA", nil, nil)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("草稿状态允许加行", func(t *testing.T) {
		line, err := r.AddLine(1, decimal.NewFromInt(100), "EA", nil, nil)
		require.NoError(t, err)
		assert.True(t, line.ExpectedQty.Equal(decimal.NewFromInt(100)))
		assert.Len(t, r.Lines, 1)
	})

	t.Run("非草稿状态拒绝加行", func(t *testing.T) {
		require.NoError(t, r.Lines[0].ApplyReceive(decimal.NewFromInt(100)))
		r.RecomputeStatus()
		require.Equal(t, ReceiptStatusReceived, r.Status)

		_, err := r.AddLine(2, decimal.NewFromInt(10), "EA", nil, nil)
		assert.ErrorIs(t, err, ErrInvalidState)
	})
}

// TestReceiptRecomputeStatus 测试收货状态推进
// RECEIVED当且仅当每一行的已收量>=预期量
func TestReceiptRecomputeStatus(t *testing.T) {
	r := NewReceipt(1, 1, "PO-002")
	_, err := r.AddLine(1, decimal.NewFromInt(100), "EA", nil, nil)
	require.NoError(t, err)
	_, err = r.AddLine(2, decimal.NewFromInt(50), "EA", nil, nil)
	require.NoError(t, err)

	t.Run("部分行收货则PARTIALLY_RECEIVED", func(t *testing.T) {
		require.NoError(t, r.Lines[0].ApplyReceive(decimal.NewFromInt(100)))
		r.RecomputeStatus()
		assert.Equal(t, ReceiptStatusPartiallyReceived, r.Status)
		assert.True(t, r.CanConfirm(), "部分收货的单据允许继续确认")
	})

	t.Run("全部行收满则RECEIVED", func(t *testing.T) {
		require.NoError(t, r.Lines[1].ApplyReceive(decimal.NewFromInt(50)))
		r.RecomputeStatus()
		assert.Equal(t, ReceiptStatusReceived, r.Status)
		assert.False(t, r.CanConfirm(), "收货完成的单据不允许再确认")
	})
}

// TestReceiptLineTolerance 测试行级容差上限
func TestReceiptLineTolerance(t *testing.T) {
	line := ReceiptLine{ExpectedQty: decimal.NewFromInt(100)}

	// 超收容差10%:上限恰好是110
	limit := line.MaxReceivable(decimal.NewFromInt(10))
	assert.True(t, limit.Equal(decimal.NewFromInt(110)))

	t.Run("待收量不为负", func(t *testing.T) {
		over := ReceiptLine{
			ExpectedQty: decimal.NewFromInt(100),
			ReceivedQty: decimal.NewFromInt(110),
		}
		assert.True(t, over.Pending().IsZero(), "超收后的待收量取0而不是负数")
	})
}
