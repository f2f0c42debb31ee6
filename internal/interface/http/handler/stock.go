package handler

import (
	"github.com/gin-gonic/gin"

	appstock "github.com/xiebiao/wms/internal/application/stock"
	"github.com/xiebiao/wms/internal/interface/http/dto"
	"github.com/xiebiao/wms/internal/interface/http/middleware"
	"github.com/xiebiao/wms/pkg/response"
)

// StockHandler 库存HTTP处理器
type StockHandler struct {
	queryUseCase  *appstock.QueryUseCase
	adjustUseCase *appstock.AdjustStockUseCase
}

// NewStockHandler 创建库存处理器
func NewStockHandler(
	queryUseCase *appstock.QueryUseCase,
	adjustUseCase *appstock.AdjustStockUseCase,
) *StockHandler {
	return &StockHandler{
		queryUseCase:  queryUseCase,
		adjustUseCase: adjustUseCase,
	}
}

// QueryStock 查询库存分区
// @Summary      查询库存分区
// @Description  按商品列出各分区余量；指定warehouse_id时额外返回该仓可用量汇总
// @Tags         库存模块
// @Produce      json
// @Security     BearerAuth
// @Param        product_id query int true "商品ID"
// @Param        warehouse_id query int false "仓库ID"
// @Success      200 {object} response.Response "分区明细"
// @Router       /stock [get]
func (h *StockHandler) QueryStock(c *gin.Context) {
	var req dto.StockQueryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	tenantID := middleware.MustGetTenantID(c)

	partitions, err := h.queryUseCase.ListByProduct(c.Request.Context(), tenantID, req.ProductID)
	if err != nil {
		response.Error(c, err)
		return
	}

	data := gin.H{"partitions": partitions}
	if req.WarehouseID != 0 {
		available, err := h.queryUseCase.AvailableInWarehouse(c.Request.Context(), tenantID, req.WarehouseID, req.ProductID)
		if err != nil {
			response.Error(c, err)
			return
		}
		data["warehouse_id"] = req.WarehouseID
		data["available"] = available
	}

	response.Success(c, data)
}

// AdjustStock 库存调整
// @Summary      库存调整
// @Description  盘点差异等场景的手工调增/调减，生成ADJUSTMENT移动记录
// @Tags         库存模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AdjustStockRequest true "调整信息"
// @Success      200 {object} response.Response{data=appstock.AdjustStockResponse} "调整成功"
// @Failure      40001 {object} response.Response "调减量超过分区余量"
// @Router       /stock/adjustments [post]
func (h *StockHandler) AdjustStock(c *gin.Context) {
	var req dto.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.adjustUseCase.Execute(c.Request.Context(), appstock.AdjustStockRequest{
		TenantID:      middleware.MustGetTenantID(c),
		LocationID:    req.LocationID,
		ProductID:     req.ProductID,
		BatchID:       req.BatchID,
		UnitOfMeasure: req.UnitOfMeasure,
		Quantity:      req.Quantity,
		Increase:      req.Direction == "INCREASE",
		ReferenceID:   req.ReferenceID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
