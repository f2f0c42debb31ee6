package handler

import (
	"github.com/gin-gonic/gin"

	appoutbound "github.com/xiebiao/wms/internal/application/outbound"
	"github.com/xiebiao/wms/internal/interface/http/dto"
	"github.com/xiebiao/wms/internal/interface/http/middleware"
	"github.com/xiebiao/wms/pkg/response"
)

// PickingHandler 拣货HTTP处理器
type PickingHandler struct {
	createTaskUseCase     *appoutbound.CreatePickingTaskUseCase
	startTaskUseCase      *appoutbound.StartTaskUseCase
	confirmPickingUseCase *appoutbound.ConfirmPickingUseCase
}

// NewPickingHandler 创建拣货处理器
func NewPickingHandler(
	createTaskUseCase *appoutbound.CreatePickingTaskUseCase,
	startTaskUseCase *appoutbound.StartTaskUseCase,
	confirmPickingUseCase *appoutbound.ConfirmPickingUseCase,
) *PickingHandler {
	return &PickingHandler{
		createTaskUseCase:     createTaskUseCase,
		startTaskUseCase:      startTaskUseCase,
		confirmPickingUseCase: confirmPickingUseCase,
	}
}

// CreateTask 创建拣货任务
// @Summary      创建拣货任务
// @Description  按出库单的预留分区生成拣货行，一个预留分区对应一行
// @Tags         拣货模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreatePickingTaskRequest true "任务信息"
// @Success      200 {object} response.Response{data=appoutbound.CreatePickingTaskResponse} "创建成功"
// @Failure      40200 {object} response.Response "出库单未分配,无法生成任务"
// @Router       /picking/tasks [post]
func (h *PickingHandler) CreateTask(c *gin.Context) {
	var req dto.CreatePickingTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.createTaskUseCase.Execute(c.Request.Context(), appoutbound.CreatePickingTaskRequest{
		TenantID: middleware.MustGetTenantID(c),
		OrderID:  req.OrderID,
		PickerID: req.PickerID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// StartTask 开始拣货
// @Summary      开始拣货
// @Description  将任务从PENDING置为IN_PROGRESS
// @Tags         拣货模块
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "任务ID"
// @Success      200 {object} response.Response{data=appoutbound.StartTaskResponse} "开始成功"
// @Failure      40200 {object} response.Response "任务状态不允许开始"
// @Router       /picking/tasks/{id}/start [post]
func (h *PickingHandler) StartTask(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.startTaskUseCase.Execute(c.Request.Context(), appoutbound.StartTaskRequest{
		TenantID: middleware.MustGetTenantID(c),
		TaskID:   taskID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ConfirmPicking 确认拣货
// @Summary      确认拣货
// @Description  按行提交实拣量，预留库存随之扣减并生成出库移动记录
// @Tags         拣货模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "任务ID"
// @Param        request body dto.ConfirmPickingRequest true "实拣明细"
// @Success      200 {object} response.Response{data=appoutbound.ConfirmPickingResponse} "确认成功"
// @Failure      40003 {object} response.Response "拣货量超出应拣量"
// @Failure      50100 {object} response.Response "预留量与台账不符"
// @Router       /picking/tasks/{id}/confirm [post]
func (h *PickingHandler) ConfirmPicking(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ConfirmPickingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	lines := make([]appoutbound.ConfirmPickLine, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = appoutbound.ConfirmPickLine{
			TaskLineID:     l.TaskLineID,
			QuantityPicked: l.QuantityPicked,
		}
	}

	result, err := h.confirmPickingUseCase.Execute(c.Request.Context(), appoutbound.ConfirmPickingRequest{
		TenantID: middleware.MustGetTenantID(c),
		TaskID:   taskID,
		Lines:    lines,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
