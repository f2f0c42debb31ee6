// Package outbound 出库用例层(下单、分配、拣货编排)
package outbound

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/wms/internal/application/audit"
	"github.com/xiebiao/wms/internal/domain/outbound"
	"github.com/xiebiao/wms/internal/domain/product"
	"github.com/xiebiao/wms/internal/domain/warehouse"
)

// CreateOrderUseCase 创建出库单用例
type CreateOrderUseCase struct {
	orderRepo     outbound.Repository
	productRepo   product.Repository
	warehouseRepo warehouse.Repository
	usage         audit.UsageCounter
}

// NewCreateOrderUseCase 创建出库单用例
func NewCreateOrderUseCase(
	orderRepo outbound.Repository,
	productRepo product.Repository,
	warehouseRepo warehouse.Repository,
	usage audit.UsageCounter,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		usage:         usage,
	}
}

// CreateOrderLineRequest 出库单行请求
type CreateOrderLineRequest struct {
	ProductID     uint
	RequestedQty  decimal.Decimal
	UnitOfMeasure string // 为空时使用商品默认计量单位
}

// CreateOrderRequest 创建出库单请求DTO
type CreateOrderRequest struct {
	TenantID    uint
	WarehouseID uint
	Lines       []CreateOrderLineRequest
}

// CreateOrderResponse 创建出库单响应DTO
type CreateOrderResponse struct {
	OrderID   uint   `json:"order_id"`
	Status    string `json:"status"`
	LineCount int    `json:"line_count"`
}

// Execute 执行创建出库单
func (uc *CreateOrderUseCase) Execute(ctx context.Context, req CreateOrderRequest) (*CreateOrderResponse, error) {
	if len(req.Lines) == 0 {
		return nil, outbound.ErrNoLines
	}
	if _, err := uc.warehouseRepo.FindByID(ctx, req.TenantID, req.WarehouseID); err != nil {
		return nil, err
	}

	order := outbound.NewOrder(req.TenantID, req.WarehouseID)
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
		if err := order.AddLine(line.ProductID, line.RequestedQty, uom); err != nil {
			return nil, err
		}
	}

	if err := uc.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	// 用量计数钩子(套餐限额系统消费)
	uc.usage.OrderCreated(req.TenantID)

	return &CreateOrderResponse{
		OrderID:   order.ID,
		Status:    order.Status.String(),
		LineCount: len(order.Lines),
	}, nil
}
