package inbound

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/wms/internal/application/audit"
	"github.com/xiebiao/wms/internal/application/uow"
	"github.com/xiebiao/wms/internal/domain/inbound"
	"github.com/xiebiao/wms/internal/domain/product"
	"github.com/xiebiao/wms/internal/domain/stock"
	"github.com/xiebiao/wms/internal/domain/warehouse"
)

// ConfirmReceiptUseCase 确认收货用例
// 设计说明:这是入库侧的核心用例,一次确认在同一事务内完成
// 行级容差校验、批次惰性解析、台账入账和单据状态推进;
// 任何一行失败整个事务回滚,不存在部分行已入账的中间态
type ConfirmReceiptUseCase struct {
	receiptRepo   inbound.Repository
	productRepo   product.Repository
	batchRepo     product.BatchRepository
	warehouseRepo warehouse.Repository
	policyRepo    warehouse.PolicyRepository
	ledger        *stock.Ledger
	movementRepo  stock.MovementRepository
	txManager     uow.TxManager
	recorder      audit.Recorder
	usage         audit.UsageCounter
}

// NewConfirmReceiptUseCase 创建确认收货用例
func NewConfirmReceiptUseCase(
	receiptRepo inbound.Repository,
	productRepo product.Repository,
	batchRepo product.BatchRepository,
	warehouseRepo warehouse.Repository,
	policyRepo warehouse.PolicyRepository,
	ledger *stock.Ledger,
	movementRepo stock.MovementRepository,
	txManager uow.TxManager,
	recorder audit.Recorder,
	usage audit.UsageCounter,
) *ConfirmReceiptUseCase {
	return &ConfirmReceiptUseCase{
		receiptRepo:   receiptRepo,
		productRepo:   productRepo,
		batchRepo:     batchRepo,
		warehouseRepo: warehouseRepo,
		policyRepo:    policyRepo,
		ledger:        ledger,
		movementRepo:  movementRepo,
		txManager:     txManager,
		recorder:      recorder,
		usage:         usage,
	}
}

// ConfirmLineOverride 行级收货覆盖
// ReceivedQty为nil时默认收满该行的待收数量
type ConfirmLineOverride struct {
	LineID      uint
	ReceivedQty *decimal.Decimal
	BatchCode   *string
	ExpiryDate  *time.Time
}

// ConfirmReceiptRequest 确认收货请求DTO
type ConfirmReceiptRequest struct {
	TenantID              uint
	ReceiptID             uint
	DestinationLocationID uint
	Overrides             []ConfirmLineOverride
}

// ConfirmReceiptResponse 确认收货响应DTO
type ConfirmReceiptResponse struct {
	ReceiptID uint                 `json:"receipt_id"`
	Status    string               `json:"status"`
	Lines     []ConfirmedLineBrief `json:"lines"`
}

// ConfirmedLineBrief 行级确认结果
type ConfirmedLineBrief struct {
	LineID      uint            `json:"line_id"`
	ReceivedQty decimal.Decimal `json:"received_qty"`
	BatchID     *uint           `json:"batch_id,omitempty"`
}

// Execute 执行确认收货
// 算法(逐行,同一事务):
//  1. 解析本次收货量:覆盖值或该行待收量,必须>0
//  2. 按商品要求校验批次号/效期
//  3. 惰性解析批次行(按商品+批次号幂等查找或创建)
//  4. 容差校验:累计已收不得超过预期×(1+超收容差%);
//     显式短收时欠收缺口不得超过预期×欠收容差%
//  5. 台账AVAILABLE分区入账,追加INBOUND_RECEIPT移动记录
func (uc *ConfirmReceiptUseCase) Execute(ctx context.Context, req ConfirmReceiptRequest) (*ConfirmReceiptResponse, error) {
	// 覆盖项按行ID去重校验
	overrides := make(map[uint]ConfirmLineOverride, len(req.Overrides))
	for _, o := range req.Overrides {
		if _, dup := overrides[o.LineID]; dup {
			return nil, inbound.ErrDuplicateLineID
		}
		overrides[o.LineID] = o
	}

	var (
		receipt   *inbound.Receipt
		movements []*stock.Movement
		briefs    []ConfirmedLineBrief
	)
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 锁定入库单,防止并发重复确认
		var err error
		receipt, err = uc.receiptRepo.LockByID(txCtx, req.TenantID, req.ReceiptID)
		if err != nil {
			return err
		}
		if !receipt.CanConfirm() {
			return inbound.ErrInvalidState
		}

		// 目的库位必须属于入库单所在仓库
		loc, err := uc.warehouseRepo.FindLocation(txCtx, req.TenantID, req.DestinationLocationID)
		if err != nil {
			return err
		}
		if loc.WarehouseID != receipt.WarehouseID {
			return warehouse.ErrCrossWarehouse
		}

		// 覆盖项必须指向入库单上的行
		lineByID := make(map[uint]*inbound.ReceiptLine, len(receipt.Lines))
		for i := range receipt.Lines {
			lineByID[receipt.Lines[i].ID] = &receipt.Lines[i]
		}
		for id := range overrides {
			if _, ok := lineByID[id]; !ok {
				return inbound.ErrLineNotFound
			}
		}

		for i := range receipt.Lines {
			line := &receipt.Lines[i]
			override, hasOverride := overrides[line.ID]

			// 1. 解析本次收货量
			receiveQty := line.Pending()
			if hasOverride && override.ReceivedQty != nil {
				receiveQty = *override.ReceivedQty
			}
			if !hasOverride && receiveQty.IsZero() {
				// 未覆盖且已收满的行跳过
				continue
			}
			if !receiveQty.IsPositive() {
				return inbound.ErrInvalidQuantity
			}

			// 2. 批次/效期要求校验(覆盖值优先于预报值)
			batchCode := line.BatchCode
			if hasOverride && override.BatchCode != nil {
				batchCode = override.BatchCode
			}
			expiryDate := line.ExpiryDate
			if hasOverride && override.ExpiryDate != nil {
				expiryDate = override.ExpiryDate
			}

			p, err := uc.productRepo.FindByID(txCtx, req.TenantID, line.ProductID)
			if err != nil {
				return err
			}
			if (p.RequiresBatch || p.RequiresExpiryDate) && batchCode == nil {
				return product.ErrMissingBatchCode
			}
			if p.RequiresExpiryDate && expiryDate == nil {
				return product.ErrMissingExpiryDate
			}

			// 3. 惰性解析批次
			var batchID *uint
			if batchCode != nil {
				batch, err := uc.batchRepo.ResolveOrCreate(txCtx, req.TenantID, line.ProductID, *batchCode, expiryDate)
				if err != nil {
					return err
				}
				batchID = &batch.ID
			}

			// 4. 容差校验(层级解析,最具体的策略生效)
			policy, err := uc.policyRepo.ResolveTolerance(txCtx, req.TenantID, receipt.WarehouseID, line.ProductID)
			if err != nil {
				return err
			}
			newTotal := line.ReceivedQty.Add(receiveQty)
			if policy != nil {
				if newTotal.GreaterThan(line.MaxReceivable(policy.MaxOverReceiptPct)) {
					return inbound.ErrToleranceExceeded
				}
				// 显式短收:缺口超出欠收容差时拒绝
				if policy.MaxUnderReceiptPct != nil && newTotal.LessThan(line.ExpectedQty) &&
					hasOverride && override.ReceivedQty != nil {
					shortfall := line.ExpectedQty.Sub(newTotal)
					maxShortfall := line.ExpectedQty.Mul(policy.MaxUnderReceiptPct.Div(decimal.NewFromInt(100)))
					if shortfall.GreaterThan(maxShortfall) {
						return inbound.ErrToleranceExceeded
					}
				}
			}

			// 5. 台账入账+移动记录
			key := stock.PartitionKey{
				ProductID:     line.ProductID,
				BatchID:       batchID,
				LocationID:    req.DestinationLocationID,
				UnitOfMeasure: line.UnitOfMeasure,
				Status:        stock.StatusAvailable,
			}
			if _, err := uc.ledger.Increase(txCtx, req.TenantID, key, receiveQty); err != nil {
				return err
			}
			if err := line.ApplyReceive(receiveQty); err != nil {
				return err
			}

			m := stock.NewInboundMovement(req.TenantID, line.ProductID, batchID,
				req.DestinationLocationID, line.UnitOfMeasure, receiveQty, receipt.ID)
			if err := uc.movementRepo.Create(txCtx, m); err != nil {
				return err
			}
			movements = append(movements, m)
			briefs = append(briefs, ConfirmedLineBrief{LineID: line.ID, ReceivedQty: line.ReceivedQty, BatchID: batchID})
		}

		receipt.RecomputeStatus()
		return uc.receiptRepo.Save(txCtx, receipt)
	})
	if err != nil {
		return nil, err
	}

	// 事务提交后外发审计流(发布失败不影响已提交的业务)
	uc.recorder.MovementsCommitted(ctx, movements)
	uc.usage.ReceiptConfirmed(req.TenantID)

	return &ConfirmReceiptResponse{
		ReceiptID: receipt.ID,
		Status:    receipt.Status.String(),
		Lines:     briefs,
	}, nil
}
