package handler

import (
	"github.com/gin-gonic/gin"

	appinbound "github.com/xiebiao/wms/internal/application/inbound"
	"github.com/xiebiao/wms/internal/interface/http/dto"
	"github.com/xiebiao/wms/internal/interface/http/middleware"
	"github.com/xiebiao/wms/pkg/response"
)

// InboundHandler 入库HTTP处理器
type InboundHandler struct {
	createReceiptUseCase  *appinbound.CreateReceiptUseCase
	addLineUseCase        *appinbound.AddLineUseCase
	confirmReceiptUseCase *appinbound.ConfirmReceiptUseCase
}

// NewInboundHandler 创建入库处理器
func NewInboundHandler(
	createReceiptUseCase *appinbound.CreateReceiptUseCase,
	addLineUseCase *appinbound.AddLineUseCase,
	confirmReceiptUseCase *appinbound.ConfirmReceiptUseCase,
) *InboundHandler {
	return &InboundHandler{
		createReceiptUseCase:  createReceiptUseCase,
		addLineUseCase:        addLineUseCase,
		confirmReceiptUseCase: confirmReceiptUseCase,
	}
}

// CreateReceipt 创建入库单
// @Summary      创建入库单
// @Description  按采购单/ASN登记预期到货，单据创建后处于DRAFT状态
// @Tags         入库模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateReceiptRequest true "入库单信息"
// @Success      200 {object} response.Response{data=appinbound.CreateReceiptResponse} "创建成功"
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "仓库或商品不存在"
// @Router       /inbound/receipts [post]
func (h *InboundHandler) CreateReceipt(c *gin.Context) {
	var req dto.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	tenantID := middleware.MustGetTenantID(c)

	lines := make([]appinbound.CreateReceiptLineRequest, len(req.Lines))
	for i, l := range req.Lines {
		expiry, err := parseDate(l.ExpiryDate)
		if err != nil {
			response.ErrorWithCode(c, 40900, "参数错误: 效期格式应为"+dateLayout)
			return
		}
		lines[i] = appinbound.CreateReceiptLineRequest{
			ProductID:     l.ProductID,
			ExpectedQty:   l.ExpectedQty,
			UnitOfMeasure: l.UnitOfMeasure,
			BatchCode:     l.BatchCode,
			ExpiryDate:    expiry,
		}
	}

	result, err := h.createReceiptUseCase.Execute(c.Request.Context(), appinbound.CreateReceiptRequest{
		TenantID:    tenantID,
		WarehouseID: req.WarehouseID,
		ExternalRef: req.ExternalRef,
		Lines:       lines,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// AddLine 追加入库单行
// @Summary      追加入库单行
// @Description  向DRAFT状态的入库单追加一行预期到货
// @Tags         入库模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "入库单ID"
// @Param        request body dto.AddReceiptLineRequest true "行信息"
// @Success      200 {object} response.Response{data=appinbound.AddLineResponse} "追加成功"
// @Failure      40200 {object} response.Response "单据状态不允许追加"
// @Router       /inbound/receipts/{id}/lines [post]
func (h *InboundHandler) AddLine(c *gin.Context) {
	receiptID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.AddReceiptLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	expiry, err := parseDate(req.ExpiryDate)
	if err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: 效期格式应为"+dateLayout)
		return
	}

	result, err := h.addLineUseCase.Execute(c.Request.Context(), appinbound.AddLineRequest{
		TenantID:      middleware.MustGetTenantID(c),
		ReceiptID:     receiptID,
		ProductID:     req.ProductID,
		ExpectedQty:   req.ExpectedQty,
		UnitOfMeasure: req.UnitOfMeasure,
		BatchCode:     req.BatchCode,
		ExpiryDate:    expiry,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ConfirmReceipt 确认收货
// @Summary      确认收货
// @Description  将实收量计入库存台账，差异行通过overrides提交，容差校验在同一事务内完成
// @Tags         入库模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "入库单ID"
// @Param        request body dto.ConfirmReceiptRequest true "收货信息"
// @Success      200 {object} response.Response{data=appinbound.ConfirmReceiptResponse} "收货成功"
// @Failure      40002 {object} response.Response "超出收货容差"
// @Failure      40201 {object} response.Response "目标库位不属于单据所在仓库"
// @Router       /inbound/receipts/{id}/confirm [post]
func (h *InboundHandler) ConfirmReceipt(c *gin.Context) {
	receiptID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ConfirmReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	overrides := make([]appinbound.ConfirmLineOverride, len(req.Overrides))
	for i, o := range req.Overrides {
		expiry, err := parseDate(o.ExpiryDate)
		if err != nil {
			response.ErrorWithCode(c, 40900, "参数错误: 效期格式应为"+dateLayout)
			return
		}
		overrides[i] = appinbound.ConfirmLineOverride{
			LineID:      o.LineID,
			ReceivedQty: o.ReceivedQty,
			BatchCode:   o.BatchCode,
			ExpiryDate:  expiry,
		}
	}

	result, err := h.confirmReceiptUseCase.Execute(c.Request.Context(), appinbound.ConfirmReceiptRequest{
		TenantID:              middleware.MustGetTenantID(c),
		ReceiptID:             receiptID,
		DestinationLocationID: req.DestinationLocationID,
		Overrides:             overrides,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
