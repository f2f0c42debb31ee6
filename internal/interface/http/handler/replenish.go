package handler

import (
	"github.com/gin-gonic/gin"

	appreplenish "github.com/xiebiao/wms/internal/application/replenish"
	"github.com/xiebiao/wms/internal/interface/http/dto"
	"github.com/xiebiao/wms/internal/interface/http/middleware"
	"github.com/xiebiao/wms/pkg/response"
)

// ReplenishHandler 补货HTTP处理器
type ReplenishHandler struct {
	evaluateUseCase  *appreplenish.EvaluateUseCase
	lifecycleUseCase *appreplenish.SuggestionLifecycleUseCase
}

// NewReplenishHandler 创建补货处理器
func NewReplenishHandler(
	evaluateUseCase *appreplenish.EvaluateUseCase,
	lifecycleUseCase *appreplenish.SuggestionLifecycleUseCase,
) *ReplenishHandler {
	return &ReplenishHandler{
		evaluateUseCase:  evaluateUseCase,
		lifecycleUseCase: lifecycleUseCase,
	}
}

// Evaluate 补货评估
// @Summary      补货评估
// @Description  按启用的补货策略(FIXED/MIN_MAX/EOQ/DOS)计算缺口并生成建议
// @Tags         补货模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.EvaluateReplenishRequest true "评估范围"
// @Success      200 {object} response.Response{data=appreplenish.EvaluateResponse} "评估结果"
// @Router       /replenishment/evaluate [post]
func (h *ReplenishHandler) Evaluate(c *gin.Context) {
	var req dto.EvaluateReplenishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.evaluateUseCase.Execute(c.Request.Context(), appreplenish.EvaluateRequest{
		TenantID:    middleware.MustGetTenantID(c),
		WarehouseID: req.WarehouseID,
		ProductID:   req.ProductID,
		Force:       req.Force,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ApproveSuggestion 审批通过补货建议
// @Summary      审批通过补货建议
// @Tags         补货模块
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "建议ID"
// @Success      200 {object} response.Response{data=appreplenish.SuggestionResponse} "审批成功"
// @Failure      40200 {object} response.Response "建议状态不允许审批"
// @Router       /replenishment/suggestions/{id}/approve [post]
func (h *ReplenishHandler) ApproveSuggestion(c *gin.Context) {
	suggestionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.lifecycleUseCase.Approve(c.Request.Context(), middleware.MustGetTenantID(c), suggestionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// RejectSuggestion 驳回补货建议
// @Summary      驳回补货建议
// @Tags         补货模块
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "建议ID"
// @Success      200 {object} response.Response{data=appreplenish.SuggestionResponse} "驳回成功"
// @Failure      40200 {object} response.Response "建议状态不允许驳回"
// @Router       /replenishment/suggestions/{id}/reject [post]
func (h *ReplenishHandler) RejectSuggestion(c *gin.Context) {
	suggestionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.lifecycleUseCase.Reject(c.Request.Context(), middleware.MustGetTenantID(c), suggestionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ExecuteSuggestion 执行补货建议
// @Summary      执行补货建议
// @Description  按策略的来源仓发起仓间转移，成功后建议置为EXECUTED并关联转移单
// @Tags         补货模块
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "建议ID"
// @Success      200 {object} response.Response{data=appreplenish.SuggestionResponse} "执行成功"
// @Failure      40001 {object} response.Response "来源仓库存不足"
// @Failure      40200 {object} response.Response "建议未审批,不能执行"
// @Router       /replenishment/suggestions/{id}/execute [post]
func (h *ReplenishHandler) ExecuteSuggestion(c *gin.Context) {
	suggestionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.lifecycleUseCase.Execute(c.Request.Context(), middleware.MustGetTenantID(c), suggestionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
