package handler

import (
	"github.com/gin-gonic/gin"

	apptransfer "github.com/xiebiao/wms/internal/application/transfer"
	"github.com/xiebiao/wms/internal/interface/http/dto"
	"github.com/xiebiao/wms/internal/interface/http/middleware"
	"github.com/xiebiao/wms/pkg/response"
)

// TransferHandler 仓间转移HTTP处理器
type TransferHandler struct {
	executeTransferUseCase *apptransfer.ExecuteTransferUseCase
}

// NewTransferHandler 创建转移处理器
func NewTransferHandler(executeTransferUseCase *apptransfer.ExecuteTransferUseCase) *TransferHandler {
	return &TransferHandler{
		executeTransferUseCase: executeTransferUseCase,
	}
}

// ExecuteTransfer 执行仓间转移
// @Summary      执行仓间转移
// @Description  两阶段执行：先校验全部行(源仓余量、目标容量)，再在同一事务内移动库存，任一行失败整单回滚
// @Tags         转移模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.ExecuteTransferRequest true "转移单信息"
// @Success      200 {object} response.Response{data=apptransfer.ExecuteTransferResponse} "转移完成"
// @Failure      40001 {object} response.Response "源仓库存不足"
// @Failure      40004 {object} response.Response "超出目标库位容量"
// @Router       /transfers [post]
func (h *TransferHandler) ExecuteTransfer(c *gin.Context) {
	var req dto.ExecuteTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	lines := make([]apptransfer.ExecuteTransferLine, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = apptransfer.ExecuteTransferLine{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
		}
	}

	result, err := h.executeTransferUseCase.Execute(c.Request.Context(), apptransfer.ExecuteTransferRequest{
		TenantID:               middleware.MustGetTenantID(c),
		SourceWarehouseID:      req.SourceWarehouseID,
		DestinationWarehouseID: req.DestinationWarehouseID,
		EnforceCapacity:        req.EnforceCapacity,
		Lines:                  lines,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
