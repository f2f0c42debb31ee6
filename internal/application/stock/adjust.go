// Package stock 库存用例层(人工调整、只读查询)
package stock

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/wms/internal/application/audit"
	"github.com/xiebiao/wms/internal/application/uow"
	"github.com/xiebiao/wms/internal/domain/product"
	"github.com/xiebiao/wms/internal/domain/stock"
	"github.com/xiebiao/wms/internal/domain/warehouse"
)

// AdjustStockUseCase 人工调整库存用例
// 盘盈调增、盘亏调减;每次调整追加一条ADJUSTMENT移动记录
type AdjustStockUseCase struct {
	productRepo   product.Repository
	warehouseRepo warehouse.Repository
	ledger        *stock.Ledger
	movementRepo  stock.MovementRepository
	txManager     uow.TxManager
	recorder      audit.Recorder
}

// NewAdjustStockUseCase 创建调整库存用例
func NewAdjustStockUseCase(
	productRepo product.Repository,
	warehouseRepo warehouse.Repository,
	ledger *stock.Ledger,
	movementRepo stock.MovementRepository,
	txManager uow.TxManager,
	recorder audit.Recorder,
) *AdjustStockUseCase {
	return &AdjustStockUseCase{
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		ledger:        ledger,
		movementRepo:  movementRepo,
		txManager:     txManager,
		recorder:      recorder,
	}
}

// AdjustStockRequest 调整请求DTO
type AdjustStockRequest struct {
	TenantID      uint
	LocationID    uint
	ProductID     uint
	BatchID       *uint
	UnitOfMeasure string // 为空时使用商品默认计量单位
	Quantity      decimal.Decimal
	Increase      bool // true调增,false调减
	ReferenceID   uint // 盘点单号等外部依据
}

// AdjustStockResponse 调整响应DTO
type AdjustStockResponse struct {
	PartitionID uint            `json:"partition_id"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// Execute 执行调整
func (uc *AdjustStockUseCase) Execute(ctx context.Context, req AdjustStockRequest) (*AdjustStockResponse, error) {
	var (
		partition *stock.Partition
		movement  *stock.Movement
	)
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		if _, err := uc.warehouseRepo.FindLocation(txCtx, req.TenantID, req.LocationID); err != nil {
			return err
		}
		p, err := uc.productRepo.FindByID(txCtx, req.TenantID, req.ProductID)
		if err != nil {
			return err
		}

		uom := req.UnitOfMeasure
		if uom == "" {
			uom = p.DefaultUnitOfMeasure
		}
		key := stock.PartitionKey{
			ProductID:     req.ProductID,
			BatchID:       req.BatchID,
			LocationID:    req.LocationID,
			UnitOfMeasure: uom,
			Status:        stock.StatusAvailable,
		}

		if req.Increase {
			partition, err = uc.ledger.Increase(txCtx, req.TenantID, key, req.Quantity)
		} else {
			partition, err = uc.ledger.Decrease(txCtx, req.TenantID, key, req.Quantity)
		}
		if err != nil {
			return err
		}

		movement = stock.NewAdjustmentMovement(req.TenantID, req.ProductID, req.BatchID,
			req.LocationID, uom, req.Quantity, req.Increase, req.ReferenceID)
		return uc.movementRepo.Create(txCtx, movement)
	})
	if err != nil {
		return nil, err
	}

	uc.recorder.MovementsCommitted(ctx, []*stock.Movement{movement})

	return &AdjustStockResponse{PartitionID: partition.ID, Quantity: partition.Quantity}, nil
}
