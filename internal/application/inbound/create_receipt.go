// Package inbound 入库用例层
package inbound

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/wms/internal/domain/inbound"
	"github.com/xiebiao/wms/internal/domain/product"
	"github.com/xiebiao/wms/internal/domain/warehouse"
)

// CreateReceiptUseCase 创建入库单用例
type CreateReceiptUseCase struct {
	receiptRepo   inbound.Repository
	productRepo   product.Repository
	warehouseRepo warehouse.Repository
}

// NewCreateReceiptUseCase 创建入库单用例
func NewCreateReceiptUseCase(
	receiptRepo inbound.Repository,
	productRepo product.Repository,
	warehouseRepo warehouse.Repository,
) *CreateReceiptUseCase {
	return &CreateReceiptUseCase{
		receiptRepo:   receiptRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// CreateReceiptLineRequest 入库单行请求
type CreateReceiptLineRequest struct {
	ProductID     uint
	ExpectedQty   decimal.Decimal
	UnitOfMeasure string // 为空时使用商品默认计量单位
	BatchCode     *string
	ExpiryDate    *time.Time
}

// CreateReceiptRequest 创建入库单请求DTO
type CreateReceiptRequest struct {
	TenantID    uint
	WarehouseID uint
	ExternalRef string // 外部单据号(采购单/ASN)
	Lines       []CreateReceiptLineRequest
}

// CreateReceiptResponse 创建入库单响应DTO
type CreateReceiptResponse struct {
	ReceiptID uint   `json:"receipt_id"`
	Status    string `json:"status"`
	LineCount int    `json:"line_count"`
}

// Execute 执行创建入库单
// 业务规则:
// 1. 仓库必须存在且属于当前租户
// 2. 每行商品必须存在且启用;预期数量>0
func (uc *CreateReceiptUseCase) Execute(ctx context.Context, req CreateReceiptRequest) (*CreateReceiptResponse, error) {
	if _, err := uc.warehouseRepo.FindByID(ctx, req.TenantID, req.WarehouseID); err != nil {
		return nil, err
	}

	receipt := inbound.NewReceipt(req.TenantID, req.WarehouseID, req.ExternalRef)
	for _, line := range req.Lines {
		p, err := uc.productRepo.FindByID(ctx, req.TenantID, line.ProductID)
		if err != nil {
			return nil, err
		}
		if !p.IsActive {
			return nil, product.ErrProductInactive
		}

		uom := line.UnitOfMeasure
		if uom == "" {
			uom = p.DefaultUnitOfMeasure
		}
		if _, err := receipt.AddLine(line.ProductID, line.ExpectedQty, uom, line.BatchCode, line.ExpiryDate); err != nil {
			return nil, err
		}
	}

	if err := uc.receiptRepo.Create(ctx, receipt); err != nil {
		return nil, err
	}

	return &CreateReceiptResponse{
		ReceiptID: receipt.ID,
		Status:    receipt.Status.String(),
		LineCount: len(receipt.Lines),
	}, nil
}
