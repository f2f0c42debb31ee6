package outbound_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/wms/internal/application/audit"
	appoutbound "github.com/xiebiao/wms/internal/application/outbound"
	"github.com/xiebiao/wms/internal/domain/outbound"
	"github.com/xiebiao/wms/internal/domain/stock"
	"github.com/xiebiao/wms/internal/infrastructure/persistence/memory"
	apperrors "github.com/xiebiao/wms/pkg/errors"
)

// faultyPartitionRepo 注入LockByKey故障的分区仓储
type faultyPartitionRepo struct {
	*memory.PartitionRepository
	lockErr error
}

func (r *faultyPartitionRepo) LockByKey(ctx context.Context, tenantID uint, key stock.PartitionKey) (*stock.Partition, error) {
	return nil, r.lockErr
}

// preparePickingTask 建单→释放→建任务→开始,返回任务ID与首行ID
func preparePickingTask(t *testing.T, f *outboundFixture, productID uint, qty int64) (uint, uint) {
	t.Helper()
	ctx := context.Background()

	orderID := f.newOrder(t, productID, qty)
	_, err := f.release.Execute(ctx, appoutbound.ReleaseOrderRequest{TenantID: tenantID, OrderID: orderID})
	require.NoError(t, err)

	taskResp, err := f.createTask.Execute(ctx, appoutbound.CreatePickingTaskRequest{TenantID: tenantID, OrderID: orderID})
	require.NoError(t, err)
	require.Equal(t, "CREATED", taskResp.Status)
	require.Equal(t, 1, taskResp.LineCount)

	_, err = f.startTask.Execute(ctx, appoutbound.StartTaskRequest{TenantID: tenantID, TaskID: taskResp.TaskID})
	require.NoError(t, err)

	task, err := f.tasks.FindByID(ctx, tenantID, taskResp.TaskID)
	require.NoError(t, err)
	return task.ID, task.Lines[0].ID
}

// TestConfirmPicking 测试分次拣货确认
// 应拣10:先拣4(进行中),再报7触发超拣且数量不变,改报6后任务完成
func TestConfirmPicking(t *testing.T) {
	ctx := context.Background()
	f := newOutboundFixture(t)
	f.seedPlainStock(t, 2, 10)
	taskID, lineID := preparePickingTask(t, f, 2, 10)

	reservedKey := stock.PartitionKey{ProductID: 2, LocationID: 10, UnitOfMeasure: "EA", Status: stock.StatusReserved}

	t.Run("第一次拣4任务进行中", func(t *testing.T) {
		resp, err := f.confirmPick.Execute(ctx, appoutbound.ConfirmPickingRequest{
			TenantID: tenantID,
			TaskID:   taskID,
			Lines:    []appoutbound.ConfirmPickLine{{TaskLineID: lineID, QuantityPicked: decimal.NewFromInt(4)}},
		})
		require.NoError(t, err)
		assert.Equal(t, "IN_PROGRESS", resp.TaskStatus)
		assert.Equal(t, "PARTIALLY_PICKED", resp.OrderStatus)
		assert.True(t, f.partitionQty(t, reservedKey).Equal(decimal.NewFromInt(6)), "预留分区应出账4")
	})

	t.Run("剩余6时报7超拣失败且数量不变", func(t *testing.T) {
		_, err := f.confirmPick.Execute(ctx, appoutbound.ConfirmPickingRequest{
			TenantID: tenantID,
			TaskID:   taskID,
			Lines:    []appoutbound.ConfirmPickLine{{TaskLineID: lineID, QuantityPicked: decimal.NewFromInt(7)}},
		})
		assert.ErrorIs(t, err, outbound.ErrOverPick)

		task, ferr := f.tasks.FindByID(ctx, tenantID, taskID)
		require.NoError(t, ferr)
		assert.True(t, task.Lines[0].QuantityPicked.Equal(decimal.NewFromInt(4)), "失败不改变已拣量")
		assert.True(t, f.partitionQty(t, reservedKey).Equal(decimal.NewFromInt(6)), "失败不碰台账")
	})

	t.Run("改报6后任务完成订单已拣", func(t *testing.T) {
		resp, err := f.confirmPick.Execute(ctx, appoutbound.ConfirmPickingRequest{
			TenantID: tenantID,
			TaskID:   taskID,
			Lines:    []appoutbound.ConfirmPickLine{{TaskLineID: lineID, QuantityPicked: decimal.NewFromInt(6)}},
		})
		require.NoError(t, err)
		assert.Equal(t, "COMPLETED", resp.TaskStatus)
		assert.Equal(t, "PICKED", resp.OrderStatus)
		assert.True(t, f.partitionQty(t, reservedKey).IsZero(), "预留分区应被取空")
	})

	t.Run("生成出库移动记录", func(t *testing.T) {
		movements := f.movements.All()
		require.Len(t, movements, 2)
		total := decimal.Zero
		for _, m := range movements {
			assert.Equal(t, stock.MovementOutboundShipment, m.Type)
			assert.Equal(t, uint(10), *m.FromLocationID)
			assert.Nil(t, m.ToLocationID, "出库只有来源库位")
			total = total.Add(m.Quantity)
		}
		assert.True(t, total.Equal(decimal.NewFromInt(10)))
	})

	t.Run("已完成的任务不能再确认", func(t *testing.T) {
		_, err := f.confirmPick.Execute(ctx, appoutbound.ConfirmPickingRequest{
			TenantID: tenantID,
			TaskID:   taskID,
			Lines:    []appoutbound.ConfirmPickLine{{TaskLineID: lineID, QuantityPicked: decimal.NewFromInt(1)}},
		})
		assert.ErrorIs(t, err, outbound.ErrInvalidState)
	})
}

// TestConfirmPickingAtomicity 测试多行确认的整单回滚
// 行1有效拣货先出账,行2超拣失败,整个事务必须回滚
func TestConfirmPickingAtomicity(t *testing.T) {
	ctx := context.Background()
	f := newOutboundFixture(t)
	f.seedPlainStock(t, 2, 10)
	batchA := f.seedBatchStock(t, 1, "BATCH-A", 10, 20)

	resp, err := f.createOrder.Execute(ctx, appoutbound.CreateOrderRequest{
		TenantID:    tenantID,
		WarehouseID: 1,
		Lines: []appoutbound.CreateOrderLineRequest{
			{ProductID: 2, RequestedQty: decimal.NewFromInt(10)},
			{ProductID: 1, RequestedQty: decimal.NewFromInt(20)},
		},
	})
	require.NoError(t, err)
	_, err = f.release.Execute(ctx, appoutbound.ReleaseOrderRequest{TenantID: tenantID, OrderID: resp.OrderID})
	require.NoError(t, err)

	taskResp, err := f.createTask.Execute(ctx, appoutbound.CreatePickingTaskRequest{TenantID: tenantID, OrderID: resp.OrderID})
	require.NoError(t, err)
	require.Equal(t, 2, taskResp.LineCount)
	_, err = f.startTask.Execute(ctx, appoutbound.StartTaskRequest{TenantID: tenantID, TaskID: taskResp.TaskID})
	require.NoError(t, err)

	task, err := f.tasks.FindByID(ctx, tenantID, taskResp.TaskID)
	require.NoError(t, err)

	_, err = f.confirmPick.Execute(ctx, appoutbound.ConfirmPickingRequest{
		TenantID: tenantID,
		TaskID:   task.ID,
		Lines: []appoutbound.ConfirmPickLine{
			{TaskLineID: task.Lines[0].ID, QuantityPicked: decimal.NewFromInt(5)},
			{TaskLineID: task.Lines[1].ID, QuantityPicked: decimal.NewFromInt(25)},
		},
	})
	require.ErrorIs(t, err, outbound.ErrOverPick)

	reservedPlain := stock.PartitionKey{ProductID: 2, LocationID: 10, UnitOfMeasure: "EA", Status: stock.StatusReserved}
	reservedBatch := stock.PartitionKey{ProductID: 1, BatchID: batchA, LocationID: 10, UnitOfMeasure: "EA", Status: stock.StatusReserved}
	assert.True(t, f.partitionQty(t, reservedPlain).Equal(decimal.NewFromInt(10)), "行1的出账必须随事务回滚")
	assert.True(t, f.partitionQty(t, reservedBatch).Equal(decimal.NewFromInt(20)))
	assert.Empty(t, f.movements.All())

	reloaded, err := f.tasks.FindByID(ctx, tenantID, task.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.Lines[0].QuantityPicked.IsZero(), "行1的已拣量必须回滚")
	assert.Equal(t, "IN_PROGRESS", reloaded.Status.String())

	order, err := f.orders.FindByID(ctx, tenantID, resp.OrderID)
	require.NoError(t, err)
	assert.True(t, order.Lines[0].PickedQty.IsZero())
}

// TestConfirmPickingValidation 测试拣货确认的参数与状态校验
func TestConfirmPickingValidation(t *testing.T) {
	ctx := context.Background()

	t.Run("未开始的任务不能确认", func(t *testing.T) {
		f := newOutboundFixture(t)
		f.seedPlainStock(t, 2, 10)
		orderID := f.newOrder(t, 2, 10)
		_, err := f.release.Execute(ctx, appoutbound.ReleaseOrderRequest{TenantID: tenantID, OrderID: orderID})
		require.NoError(t, err)
		taskResp, err := f.createTask.Execute(ctx, appoutbound.CreatePickingTaskRequest{TenantID: tenantID, OrderID: orderID})
		require.NoError(t, err)

		task, err := f.tasks.FindByID(ctx, tenantID, taskResp.TaskID)
		require.NoError(t, err)
		_, err = f.confirmPick.Execute(ctx, appoutbound.ConfirmPickingRequest{
			TenantID: tenantID,
			TaskID:   task.ID,
			Lines:    []appoutbound.ConfirmPickLine{{TaskLineID: task.Lines[0].ID, QuantityPicked: decimal.NewFromInt(1)}},
		})
		assert.ErrorIs(t, err, outbound.ErrInvalidState)
	})

	t.Run("重复行ID整单拒绝", func(t *testing.T) {
		f := newOutboundFixture(t)
		f.seedPlainStock(t, 2, 10)
		taskID, lineID := preparePickingTask(t, f, 2, 10)

		_, err := f.confirmPick.Execute(ctx, appoutbound.ConfirmPickingRequest{
			TenantID: tenantID,
			TaskID:   taskID,
			Lines: []appoutbound.ConfirmPickLine{
				{TaskLineID: lineID, QuantityPicked: decimal.NewFromInt(2)},
				{TaskLineID: lineID, QuantityPicked: decimal.NewFromInt(3)},
			},
		})
		assert.ErrorIs(t, err, outbound.ErrDuplicateLineID)
	})

	t.Run("零数量拒绝", func(t *testing.T) {
		f := newOutboundFixture(t)
		f.seedPlainStock(t, 2, 10)
		taskID, lineID := preparePickingTask(t, f, 2, 10)

		_, err := f.confirmPick.Execute(ctx, appoutbound.ConfirmPickingRequest{
			TenantID: tenantID,
			TaskID:   taskID,
			Lines:    []appoutbound.ConfirmPickLine{{TaskLineID: lineID, QuantityPicked: decimal.Zero}},
		})
		assert.ErrorIs(t, err, outbound.ErrInvalidQuantity)
	})

	t.Run("预留分区缺失按一致性错误处理", func(t *testing.T) {
		f := newOutboundFixture(t)
		f.seedPlainStock(t, 2, 10)
		taskID, lineID := preparePickingTask(t, f, 2, 10)

		confirm := appoutbound.NewConfirmPickingUseCase(
			f.tasks, f.orders,
			&faultyPartitionRepo{PartitionRepository: f.partitions, lockErr: stock.ErrPartitionNotFound},
			f.ledger, f.movements,
			memory.NewTxManager(f.tasks, f.orders, f.partitions, f.movements), audit.NopRecorder{})

		_, err := confirm.Execute(ctx, appoutbound.ConfirmPickingRequest{
			TenantID: tenantID,
			TaskID:   taskID,
			Lines:    []appoutbound.ConfirmPickLine{{TaskLineID: lineID, QuantityPicked: decimal.NewFromInt(1)}},
		})
		assert.ErrorIs(t, err, stock.ErrInsufficientReservation)
	})

	t.Run("台账基础设施故障原样上抛", func(t *testing.T) {
		f := newOutboundFixture(t)
		f.seedPlainStock(t, 2, 10)
		taskID, lineID := preparePickingTask(t, f, 2, 10)

		confirm := appoutbound.NewConfirmPickingUseCase(
			f.tasks, f.orders,
			&faultyPartitionRepo{PartitionRepository: f.partitions, lockErr: apperrors.ErrDatabaseError},
			f.ledger, f.movements,
			memory.NewTxManager(f.tasks, f.orders, f.partitions, f.movements), audit.NopRecorder{})

		_, err := confirm.Execute(ctx, appoutbound.ConfirmPickingRequest{
			TenantID: tenantID,
			TaskID:   taskID,
			Lines:    []appoutbound.ConfirmPickLine{{TaskLineID: lineID, QuantityPicked: decimal.NewFromInt(1)}},
		})
		assert.ErrorIs(t, err, apperrors.ErrDatabaseError)
		assert.NotErrorIs(t, err, stock.ErrInsufficientReservation, "数据库故障不能伪装成一致性错误")
	})

	t.Run("指定拣货员时任务直接ASSIGNED", func(t *testing.T) {
		f := newOutboundFixture(t)
		f.seedPlainStock(t, 2, 10)
		orderID := f.newOrder(t, 2, 10)
		_, err := f.release.Execute(ctx, appoutbound.ReleaseOrderRequest{TenantID: tenantID, OrderID: orderID})
		require.NoError(t, err)

		picker := uint(7)
		taskResp, err := f.createTask.Execute(ctx, appoutbound.CreatePickingTaskRequest{
			TenantID: tenantID, OrderID: orderID, PickerID: &picker,
		})
		require.NoError(t, err)
		assert.Equal(t, "ASSIGNED", taskResp.Status)
	})

	t.Run("未分配的草稿订单不能建任务", func(t *testing.T) {
		f := newOutboundFixture(t)
		orderID := f.newOrder(t, 2, 10)
		_, err := f.createTask.Execute(ctx, appoutbound.CreatePickingTaskRequest{TenantID: tenantID, OrderID: orderID})
		assert.ErrorIs(t, err, outbound.ErrInvalidState)
	})
}
