// Package transfer 仓间转移用例层
package transfer

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/wms/internal/application/audit"
	"github.com/xiebiao/wms/internal/application/uow"
	"github.com/xiebiao/wms/internal/domain/product"
	"github.com/xiebiao/wms/internal/domain/stock"
	"github.com/xiebiao/wms/internal/domain/transfer"
	"github.com/xiebiao/wms/internal/domain/warehouse"
)

// ExecuteTransferUseCase 执行仓间转移用例
// 设计说明:
// 1. 创建即执行:转移单在同一事务内走完CREATED→APPROVED→COMPLETED,
//    没有人工审批环节(审批流是上游系统的事)
// 2. 默认库位选择是确定性的:两侧各取仓库内ID最小的活跃库位
// 3. 先对全部行做可行性检查(来源足量、目标容量),any失败整单失败,
//    不存在部分行已转移的中间态
type ExecuteTransferUseCase struct {
	transferRepo  transfer.Repository
	warehouseRepo warehouse.Repository
	productRepo   product.Repository
	partitionRepo stock.Repository
	ledger        *stock.Ledger
	movementRepo  stock.MovementRepository
	txManager     uow.TxManager
	recorder      audit.Recorder
	usage         audit.UsageCounter
}

// NewExecuteTransferUseCase 创建执行转移用例
func NewExecuteTransferUseCase(
	transferRepo transfer.Repository,
	warehouseRepo warehouse.Repository,
	productRepo product.Repository,
	partitionRepo stock.Repository,
	ledger *stock.Ledger,
	movementRepo stock.MovementRepository,
	txManager uow.TxManager,
	recorder audit.Recorder,
	usage audit.UsageCounter,
) *ExecuteTransferUseCase {
	return &ExecuteTransferUseCase{
		transferRepo:  transferRepo,
		warehouseRepo: warehouseRepo,
		productRepo:   productRepo,
		partitionRepo: partitionRepo,
		ledger:        ledger,
		movementRepo:  movementRepo,
		txManager:     txManager,
		recorder:      recorder,
		usage:         usage,
	}
}

// ExecuteTransferLine 转移行请求
type ExecuteTransferLine struct {
	ProductID uint
	Quantity  decimal.Decimal
}

// ExecuteTransferRequest 执行转移请求DTO
type ExecuteTransferRequest struct {
	TenantID               uint
	SourceWarehouseID      uint
	DestinationWarehouseID uint
	Lines                  []ExecuteTransferLine
	EnforceCapacity        bool // 开启目标库位容量检查
}

// ExecuteTransferResponse 执行转移响应DTO
type ExecuteTransferResponse struct {
	TransferID uint   `json:"transfer_id"`
	Status     string `json:"status"`
	LineCount  int    `json:"line_count"`
}

// transferPlan 单行转移计划(可行性检查阶段产出)
type transferPlan struct {
	source   *stock.Partition
	destKey  stock.PartitionKey
	quantity decimal.Decimal
}

// Execute 执行转移
func (uc *ExecuteTransferUseCase) Execute(ctx context.Context, req ExecuteTransferRequest) (*ExecuteTransferResponse, error) {
	if req.SourceWarehouseID == req.DestinationWarehouseID {
		return nil, transfer.ErrSameWarehouse
	}
	if len(req.Lines) == 0 {
		return nil, transfer.ErrNoLines
	}

	var (
		order     *transfer.Order
		movements []*stock.Movement
	)
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		if _, err := uc.warehouseRepo.FindByID(txCtx, req.TenantID, req.SourceWarehouseID); err != nil {
			return err
		}
		if _, err := uc.warehouseRepo.FindByID(txCtx, req.TenantID, req.DestinationWarehouseID); err != nil {
			return err
		}

		srcLoc, err := uc.warehouseRepo.FirstActiveLocation(txCtx, req.TenantID, req.SourceWarehouseID)
		if err != nil {
			return err
		}
		dstLoc, err := uc.warehouseRepo.FirstActiveLocation(txCtx, req.TenantID, req.DestinationWarehouseID)
		if err != nil {
			return err
		}

		order = transfer.NewOrder(req.TenantID, req.SourceWarehouseID, req.DestinationWarehouseID)

		// 第一阶段:全部行的可行性检查,产出执行计划
		// 多行可能落在同一来源分区,按分区累计计划取走量再与持有量比较,
		// 确保失败发生在任何Move之前
		plans := make([]transferPlan, 0, len(req.Lines))
		drawn := make(map[uint]decimal.Decimal)
		arriving := make(map[uint]decimal.Decimal)
		for _, line := range req.Lines {
			p, err := uc.productRepo.FindByID(txCtx, req.TenantID, line.ProductID)
			if err != nil {
				return err
			}
			if err := order.AddLine(line.ProductID, line.Quantity, p.DefaultUnitOfMeasure); err != nil {
				return err
			}

			source, err := uc.pickSourcePartition(txCtx, req.TenantID, req.SourceWarehouseID, srcLoc.ID, line.ProductID)
			if err != nil {
				return err
			}
			if source == nil {
				return stock.ErrInsufficientStock
			}
			need := drawn[source.ID].Add(line.Quantity)
			if source.Quantity.LessThan(need) {
				return stock.ErrInsufficientStock
			}
			drawn[source.ID] = need

			destKey := source.Key
			destKey.LocationID = dstLoc.ID
			if req.EnforceCapacity && dstLoc.SlotCapacity != nil {
				held, err := uc.partitionRepo.SumByProductAndWarehouse(
					txCtx, req.TenantID, req.DestinationWarehouseID, line.ProductID, stock.StatusAvailable)
				if err != nil {
					return err
				}
				incoming := arriving[line.ProductID].Add(line.Quantity)
				if held.Add(incoming).GreaterThan(*dstLoc.SlotCapacity) {
					return warehouse.ErrCapacityExceeded
				}
				arriving[line.ProductID] = incoming
			}
			plans = append(plans, transferPlan{source: source, destKey: destKey, quantity: line.Quantity})
		}

		if err := uc.transferRepo.Create(txCtx, order); err != nil {
			return err
		}

		// 第二阶段:按计划搬运,每行一次原子Move+一条移动记录
		for _, plan := range plans {
			if err := uc.ledger.Move(txCtx, req.TenantID, plan.source.Key, plan.destKey, plan.quantity); err != nil {
				return err
			}
			m := stock.NewTransferMovement(req.TenantID, plan.source.Key.ProductID, plan.source.Key.BatchID,
				plan.source.Key.LocationID, plan.destKey.LocationID, plan.source.Key.UnitOfMeasure,
				plan.quantity, order.ID)
			if err := uc.movementRepo.Create(txCtx, m); err != nil {
				return err
			}
			movements = append(movements, m)
		}

		if err := order.Approve(); err != nil {
			return err
		}
		if err := order.Complete(); err != nil {
			return err
		}
		return uc.transferRepo.Save(txCtx, order)
	})
	if err != nil {
		return nil, err
	}

	uc.recorder.MovementsCommitted(ctx, movements)
	uc.usage.TransferExecuted(req.TenantID)

	return &ExecuteTransferResponse{
		TransferID: order.ID,
		Status:     order.Status.String(),
		LineCount:  len(order.Lines),
	}, nil
}

// pickSourcePartition 确定性选择来源分区
// 取来源库位上该商品的AVAILABLE分区:无批次分区优先,其余按分区ID升序
func (uc *ExecuteTransferUseCase) pickSourcePartition(ctx context.Context, tenantID, warehouseID, locationID, productID uint) (*stock.Partition, error) {
	partitions, err := uc.partitionRepo.LockByProductStatus(ctx, tenantID, warehouseID, productID, stock.StatusAvailable)
	if err != nil {
		return nil, err
	}
	var best *stock.Partition
	for _, p := range partitions {
		if p.Key.LocationID != locationID {
			continue
		}
		if best == nil {
			best = p
			continue
		}
		if p.Key.BatchID == nil && best.Key.BatchID != nil {
			best = p
			continue
		}
		if (p.Key.BatchID == nil) == (best.Key.BatchID == nil) && p.ID < best.ID {
			best = p
		}
	}
	return best, nil
}
