package inbound

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/wms/internal/domain/inbound"
	"github.com/xiebiao/wms/internal/domain/product"
)

// AddLineUseCase 入库单加行用例
type AddLineUseCase struct {
	receiptRepo inbound.Repository
	productRepo product.Repository
}

// NewAddLineUseCase 创建入库单加行用例
func NewAddLineUseCase(receiptRepo inbound.Repository, productRepo product.Repository) *AddLineUseCase {
	return &AddLineUseCase{receiptRepo: receiptRepo, productRepo: productRepo}
}

// AddLineRequest 加行请求DTO
type AddLineRequest struct {
	TenantID      uint
	ReceiptID     uint
	ProductID     uint
	ExpectedQty   decimal.Decimal
	UnitOfMeasure string
	BatchCode     *string
	ExpiryDate    *time.Time
}

// AddLineResponse 加行响应DTO
type AddLineResponse struct {
	LineID uint   `json:"line_id"`
	Status string `json:"status"`
}

// Execute 执行加行
// 业务规则:只有DRAFT状态的入库单可以加行
func (uc *AddLineUseCase) Execute(ctx context.Context, req AddLineRequest) (*AddLineResponse, error) {
	receipt, err := uc.receiptRepo.FindByID(ctx, req.TenantID, req.ReceiptID)
	if err != nil {
		return nil, err
	}

	p, err := uc.productRepo.FindByID(ctx, req.TenantID, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, product.ErrProductInactive
	}

	uom := req.UnitOfMeasure
	if uom == "" {
		uom = p.DefaultUnitOfMeasure
	}
	line, err := receipt.AddLine(req.ProductID, req.ExpectedQty, uom, req.BatchCode, req.ExpiryDate)
	if err != nil {
		return nil, err
	}

	if err := uc.receiptRepo.Save(ctx, receipt); err != nil {
		return nil, err
	}

	return &AddLineResponse{LineID: line.ID, Status: receipt.Status.String()}, nil
}
