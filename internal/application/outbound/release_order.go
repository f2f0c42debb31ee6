package outbound

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/wms/internal/application/uow"
	"github.com/xiebiao/wms/internal/domain/outbound"
	"github.com/xiebiao/wms/internal/domain/product"
	"github.com/xiebiao/wms/internal/domain/stock"
	"github.com/xiebiao/wms/internal/domain/warehouse"
)

// ReleaseOrderUseCase 释放出库单用例(分配引擎)
// 设计说明:
// 1. 释放=对DRAFT订单逐行运行分配:把AVAILABLE分区的数量搬运到
//    同键RESERVED分区,直到行分配满或可用分区耗尽
// 2. 分配顺序是确定性的:需要效期的商品按最近效期优先(FEFO),
//    其余按分区创建时间(FIFO);同序时按分区ID升序
// 3. 先锁定商品的全部AVAILABLE分区再排序,两次并发释放
//    不可能超预留同一分区
// 4. 租户出库规则要求全量分配时,整单可行性不足即失败,
//    不提交任何部分预留
type ReleaseOrderUseCase struct {
	orderRepo     outbound.Repository
	productRepo   product.Repository
	batchRepo     product.BatchRepository
	partitionRepo stock.Repository
	policyRepo    warehouse.PolicyRepository
	ledger        *stock.Ledger
	txManager     uow.TxManager
}

// NewReleaseOrderUseCase 创建释放出库单用例
func NewReleaseOrderUseCase(
	orderRepo outbound.Repository,
	productRepo product.Repository,
	batchRepo product.BatchRepository,
	partitionRepo stock.Repository,
	policyRepo warehouse.PolicyRepository,
	ledger *stock.Ledger,
	txManager uow.TxManager,
) *ReleaseOrderUseCase {
	return &ReleaseOrderUseCase{
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		batchRepo:     batchRepo,
		partitionRepo: partitionRepo,
		policyRepo:    policyRepo,
		ledger:        ledger,
		txManager:     txManager,
	}
}

// ReleaseOrderRequest 释放请求DTO
type ReleaseOrderRequest struct {
	TenantID uint
	OrderID  uint
}

// ReleaseOrderLineResult 行级分配结果
type ReleaseOrderLineResult struct {
	LineID       uint            `json:"line_id"`
	AllocatedQty decimal.Decimal `json:"allocated_qty"`
	RequestedQty decimal.Decimal `json:"requested_qty"`
}

// ReleaseOrderResponse 释放响应DTO
type ReleaseOrderResponse struct {
	OrderID uint                     `json:"order_id"`
	Status  string                   `json:"status"`
	Lines   []ReleaseOrderLineResult `json:"lines"`
}

// Execute 执行释放(分配)
func (uc *ReleaseOrderUseCase) Execute(ctx context.Context, req ReleaseOrderRequest) (*ReleaseOrderResponse, error) {
	var order *outbound.Order
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		var err error
		order, err = uc.orderRepo.LockByID(txCtx, req.TenantID, req.OrderID)
		if err != nil {
			return err
		}
		if !order.CanRelease() {
			return outbound.ErrInvalidState
		}

		rule, err := uc.policyRepo.FindOutboundRule(txCtx, req.TenantID)
		if err != nil {
			return err
		}

		// 全量分配规则:先做整单可行性检查,不可行就不碰台账
		if rule != nil && rule.RequireFullAllocation {
			if err := uc.checkFullAllocation(txCtx, order); err != nil {
				return err
			}
		}

		for i := range order.Lines {
			line := &order.Lines[i]
			remaining := line.Remaining()
			if !remaining.IsPositive() {
				continue
			}

			partitions, err := uc.partitionRepo.LockByProductStatus(
				txCtx, req.TenantID, order.WarehouseID, line.ProductID, stock.StatusAvailable)
			if err != nil {
				return err
			}

			p, err := uc.productRepo.FindByID(txCtx, req.TenantID, line.ProductID)
			if err != nil {
				return err
			}
			if err := uc.sortForAllocation(txCtx, req.TenantID, partitions, p.RequiresExpiryDate); err != nil {
				return err
			}

			allocated := decimal.Zero
			for _, partition := range partitions {
				if remaining.IsZero() {
					break
				}
				if !partition.Quantity.IsPositive() {
					continue
				}
				take := decimal.Min(partition.Quantity, remaining)
				// AVAILABLE→RESERVED:同商品/批次/库位,仅状态不同
				if err := uc.ledger.Move(txCtx, req.TenantID,
					partition.Key, partition.Key.WithStatus(stock.StatusReserved), take); err != nil {
					return err
				}
				allocated = allocated.Add(take)
				remaining = remaining.Sub(take)
			}

			if allocated.IsPositive() {
				if err := line.ApplyAllocation(allocated); err != nil {
					return err
				}
			}
		}

		order.RecomputeAllocationStatus()
		if rule != nil && rule.RequireFullAllocation && order.Status != outbound.OrderStatusFullyAllocated {
			return outbound.ErrInsufficientStock
		}
		return uc.orderRepo.Save(txCtx, order)
	})
	if err != nil {
		return nil, err
	}

	resp := &ReleaseOrderResponse{OrderID: order.ID, Status: order.Status.String()}
	for i := range order.Lines {
		resp.Lines = append(resp.Lines, ReleaseOrderLineResult{
			LineID:       order.Lines[i].ID,
			AllocatedQty: order.Lines[i].AllocatedQty,
			RequestedQty: order.Lines[i].RequestedQty,
		})
	}
	return resp, nil
}

// checkFullAllocation 整单可行性检查
// 同一商品可能出现在多行:按商品汇总待分配量与可用量比较
func (uc *ReleaseOrderUseCase) checkFullAllocation(ctx context.Context, order *outbound.Order) error {
	required := make(map[uint]decimal.Decimal)
	for i := range order.Lines {
		remaining := order.Lines[i].Remaining()
		if remaining.IsPositive() {
			required[order.Lines[i].ProductID] = required[order.Lines[i].ProductID].Add(remaining)
		}
	}
	for productID, need := range required {
		partitions, err := uc.partitionRepo.LockByProductStatus(
			ctx, order.TenantID, order.WarehouseID, productID, stock.StatusAvailable)
		if err != nil {
			return err
		}
		available := decimal.Zero
		for _, p := range partitions {
			available = available.Add(p.Quantity)
		}
		if available.LessThan(need) {
			return outbound.ErrInsufficientStock
		}
	}
	return nil
}

// sortForAllocation 分配顺序排序
// FEFO:按批次效期升序,无效期的分区排在最后;FIFO:按分区创建时间升序;
// 两种顺序都以分区ID升序作为最终平局决胜,保证可重现
func (uc *ReleaseOrderUseCase) sortForAllocation(ctx context.Context, tenantID uint, partitions []*stock.Partition, fefo bool) error {
	if !fefo {
		sort.Slice(partitions, func(i, j int) bool {
			if !partitions[i].CreatedAt.Equal(partitions[j].CreatedAt) {
				return partitions[i].CreatedAt.Before(partitions[j].CreatedAt)
			}
			return partitions[i].ID < partitions[j].ID
		})
		return nil
	}

	expiries := make(map[uint]*time.Time)
	for _, p := range partitions {
		if p.Key.BatchID == nil {
			continue
		}
		if _, ok := expiries[*p.Key.BatchID]; ok {
			continue
		}
		batch, err := uc.batchRepo.FindByID(ctx, tenantID, *p.Key.BatchID)
		if err != nil {
			return err
		}
		expiries[*p.Key.BatchID] = batch.ExpiryDate
	}

	expiryOf := func(p *stock.Partition) *time.Time {
		if p.Key.BatchID == nil {
			return nil
		}
		return expiries[*p.Key.BatchID]
	}
	sort.Slice(partitions, func(i, j int) bool {
		ei, ej := expiryOf(partitions[i]), expiryOf(partitions[j])
		switch {
		case ei == nil && ej == nil:
			return partitions[i].ID < partitions[j].ID
		case ei == nil:
			return false
		case ej == nil:
			return true
		case !ei.Equal(*ej):
			return ei.Before(*ej)
		default:
			return partitions[i].ID < partitions[j].ID
		}
	})
	return nil
}
