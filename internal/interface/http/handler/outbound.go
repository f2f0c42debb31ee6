package handler

import (
	"github.com/gin-gonic/gin"

	appoutbound "github.com/xiebiao/wms/internal/application/outbound"
	"github.com/xiebiao/wms/internal/interface/http/dto"
	"github.com/xiebiao/wms/internal/interface/http/middleware"
	"github.com/xiebiao/wms/pkg/response"
)

// OutboundHandler 出库HTTP处理器
// 覆盖出库单创建、释放（库存分配）两个环节，拣货在PickingHandler中
type OutboundHandler struct {
	createOrderUseCase  *appoutbound.CreateOrderUseCase
	releaseOrderUseCase *appoutbound.ReleaseOrderUseCase
}

// NewOutboundHandler 创建出库处理器
func NewOutboundHandler(
	createOrderUseCase *appoutbound.CreateOrderUseCase,
	releaseOrderUseCase *appoutbound.ReleaseOrderUseCase,
) *OutboundHandler {
	return &OutboundHandler{
		createOrderUseCase:  createOrderUseCase,
		releaseOrderUseCase: releaseOrderUseCase,
	}
}

// CreateOrder 创建出库单
// @Summary      创建出库单
// @Description  登记出库需求，此时不占用库存，释放时才分配
// @Tags         出库模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateOrderRequest true "出库单信息"
// @Success      200 {object} response.Response{data=appoutbound.CreateOrderResponse} "创建成功"
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "仓库或商品不存在"
// @Router       /outbound/orders [post]
func (h *OutboundHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	lines := make([]appoutbound.CreateOrderLineRequest, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = appoutbound.CreateOrderLineRequest{
			ProductID:     l.ProductID,
			RequestedQty:  l.RequestedQty,
			UnitOfMeasure: l.UnitOfMeasure,
		}
	}

	result, err := h.createOrderUseCase.Execute(c.Request.Context(), appoutbound.CreateOrderRequest{
		TenantID:    middleware.MustGetTenantID(c),
		WarehouseID: req.WarehouseID,
		Lines:       lines,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ReleaseOrder 释放出库单（库存分配）
// @Summary      释放出库单
// @Description  按FEFO/FIFO策略将可用库存转入预留，使用悲观锁防止并发超配
// @Tags         出库模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "出库单ID"
// @Success      200 {object} response.Response{data=appoutbound.ReleaseOrderResponse} "分配结果(可能部分分配)"
// @Failure      40001 {object} response.Response "库存不足(整单分配规则开启时)"
// @Failure      40200 {object} response.Response "单据状态不允许释放"
// @Router       /outbound/orders/{id}/release [post]
func (h *OutboundHandler) ReleaseOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.releaseOrderUseCase.Execute(c.Request.Context(), appoutbound.ReleaseOrderRequest{
		TenantID: middleware.MustGetTenantID(c),
		OrderID:  orderID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
