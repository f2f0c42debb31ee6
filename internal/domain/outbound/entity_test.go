package outbound

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOrderStateMachine 测试出库单状态机
// DRAFT → {RELEASED|PARTIALLY_ALLOCATED|FULLY_ALLOCATED} → PICKED
func TestOrderStateMachine(t *testing.T) {
	o := NewOrder(1, 1)
	require.NoError(t, o.AddLine(1, decimal.NewFromInt(30), "EA"))
	require.NoError(t, o.AddLine(2, decimal.NewFromInt(10), "EA"))

	t.Run("没有行的订单不能释放", func(t *testing.T) {
		empty := NewOrder(1, 1)
		assert.False(t, empty.CanRelease())
		assert.True(t, o.CanRelease())
	})

	t.Run("无任何分配时停留在RELEASED", func(t *testing.T) {
		o.RecomputeAllocationStatus()
		assert.Equal(t, OrderStatusReleased, o.Status)
		assert.False(t, o.CanCreatePickingTask())
	})

	t.Run("部分行分配则PARTIALLY_ALLOCATED", func(t *testing.T) {
		require.NoError(t, o.Lines[0].ApplyAllocation(decimal.NewFromInt(30)))
		o.RecomputeAllocationStatus()
		assert.Equal(t, OrderStatusPartiallyAllocated, o.Status)
		assert.True(t, o.CanCreatePickingTask(), "部分分配也允许先生成拣货任务")
	})

	t.Run("全部行分配满则FULLY_ALLOCATED", func(t *testing.T) {
		require.NoError(t, o.Lines[1].ApplyAllocation(decimal.NewFromInt(10)))
		o.RecomputeAllocationStatus()
		assert.Equal(t, OrderStatusFullyAllocated, o.Status)
	})

	t.Run("拣满全部分配量则PICKED", func(t *testing.T) {
		require.NoError(t, o.Lines[0].ApplyPick(decimal.NewFromInt(30)))
		o.RecomputePickStatus()
		assert.Equal(t, OrderStatusPartiallyPicked, o.Status)

		require.NoError(t, o.Lines[1].ApplyPick(decimal.NewFromInt(10)))
		o.RecomputePickStatus()
		assert.Equal(t, OrderStatusPicked, o.Status)
	})
}

// TestOrderLineInvariant 测试行不变量 PickedQty <= AllocatedQty <= RequestedQty
func TestOrderLineInvariant(t *testing.T) {
	line := OrderLine{RequestedQty: decimal.NewFromInt(30)}

	t.Run("分配不得超过请求量", func(t *testing.T) {
		require.NoError(t, line.ApplyAllocation(decimal.NewFromInt(20)))
		err := line.ApplyAllocation(decimal.NewFromInt(11))
		assert.ErrorIs(t, err, ErrOverAllocation)
		assert.True(t, line.AllocatedQty.Equal(decimal.NewFromInt(20)), "失败后分配量不变")
	})

	t.Run("已分配满的行Remaining为0", func(t *testing.T) {
		require.NoError(t, line.ApplyAllocation(decimal.NewFromInt(10)))
		assert.True(t, line.Remaining().IsZero())
	})

	t.Run("拣货不得超过分配量", func(t *testing.T) {
		require.NoError(t, line.ApplyPick(decimal.NewFromInt(30)))
		err := line.ApplyPick(decimal.NewFromInt(1))
		assert.ErrorIs(t, err, ErrOverPick)
	})
}

// TestPickingTask 测试拣货任务状态机与应拣上限
func TestPickingTask(t *testing.T) {
	t.Run("指定拣货员时直接ASSIGNED", func(t *testing.T) {
		pickerID := uint(7)
		task := NewPickingTask(1, 1, &pickerID)
		assert.Equal(t, TaskStatusAssigned, task.Status)

		noPicker := NewPickingTask(1, 1, nil)
		assert.Equal(t, TaskStatusCreated, noPicker.Status)
	})

	t.Run("只有开始后的任务接受确认", func(t *testing.T) {
		task := NewPickingTask(1, 1, nil)
		assert.False(t, task.CanConfirm())

		require.NoError(t, task.Start())
		assert.Equal(t, TaskStatusInProgress, task.Status)
		assert.True(t, task.CanConfirm())

		assert.ErrorIs(t, task.Start(), ErrInvalidState, "重复开始应该失败")
	})

	t.Run("应拣上限与完成判定", func(t *testing.T) {
		task := NewPickingTask(1, 1, nil)
		require.NoError(t, task.Start())
		task.Lines = []PickingTaskLine{{QuantityToPick: decimal.NewFromInt(10)}}
		line := &task.Lines[0]

		require.NoError(t, line.ApplyPick(decimal.NewFromInt(4)))

		// 4+7=11>10,拒绝且数量不变
		err := line.ApplyPick(decimal.NewFromInt(7))
		assert.ErrorIs(t, err, ErrOverPick)
		assert.True(t, line.QuantityPicked.Equal(decimal.NewFromInt(4)))

		task.RecomputeStatus()
		assert.Equal(t, TaskStatusInProgress, task.Status, "未拣满任务保持进行中")

		require.NoError(t, line.ApplyPick(decimal.NewFromInt(6)))
		task.RecomputeStatus()
		assert.Equal(t, TaskStatusCompleted, task.Status)
	})
}
