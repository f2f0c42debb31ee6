// Package replenish 补货用例层
package replenish

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/wms/internal/domain/replenish"
	"github.com/xiebiao/wms/internal/domain/stock"
)

// EvaluateUseCase 补货评估用例
// 设计说明:
// 1. 对命中的每条活跃策略跑一遍纯函数计算,正数建议落库等待审批
// 2. 建议量为0时默认丢弃;force=true时0建议也落库(运营盘点场景)
// 3. 日均消耗走带TTL缓存的提供方,评估不会反复打聚合查询
type EvaluateUseCase struct {
	policyRepo     replenish.PolicyRepository
	suggestionRepo replenish.SuggestionRepository
	partitionRepo  stock.Repository
	consumption    replenish.ConsumptionProvider
}

// NewEvaluateUseCase 创建补货评估用例
func NewEvaluateUseCase(
	policyRepo replenish.PolicyRepository,
	suggestionRepo replenish.SuggestionRepository,
	partitionRepo stock.Repository,
	consumption replenish.ConsumptionProvider,
) *EvaluateUseCase {
	return &EvaluateUseCase{
		policyRepo:     policyRepo,
		suggestionRepo: suggestionRepo,
		partitionRepo:  partitionRepo,
		consumption:    consumption,
	}
}

// EvaluateRequest 补货评估请求DTO
// WarehouseID/ProductID为0时不过滤
type EvaluateRequest struct {
	TenantID    uint
	WarehouseID uint
	ProductID   uint
	Force       bool
}

// SuggestionBrief 建议概要
type SuggestionBrief struct {
	SuggestionID uint            `json:"suggestion_id"`
	PolicyID     uint            `json:"policy_id"`
	WarehouseID  uint            `json:"warehouse_id"`
	ProductID    uint            `json:"product_id"`
	SuggestedQty decimal.Decimal `json:"suggested_qty"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	Status       string          `json:"status"`
}

// EvaluateResponse 补货评估响应DTO
type EvaluateResponse struct {
	Evaluated   int               `json:"evaluated"`
	Suggestions []SuggestionBrief `json:"suggestions"`
}

// Execute 执行补货评估
func (uc *EvaluateUseCase) Execute(ctx context.Context, req EvaluateRequest) (*EvaluateResponse, error) {
	policies, err := uc.policyRepo.ListActive(ctx, req.TenantID, req.WarehouseID, req.ProductID)
	if err != nil {
		return nil, err
	}

	resp := &EvaluateResponse{Evaluated: len(policies)}
	for _, policy := range policies {
		currentStock, err := uc.partitionRepo.SumByProductAndWarehouse(
			ctx, req.TenantID, policy.WarehouseID, policy.ProductID, stock.StatusAvailable)
		if err != nil {
			return nil, err
		}

		avg := decimal.Zero
		if policy.Method == replenish.MethodDOS {
			avg, err = uc.consumption.AvgDailyConsumption(ctx, req.TenantID, policy.WarehouseID, policy.ProductID)
			if err != nil {
				return nil, err
			}
		}

		qty := replenish.Suggest(policy, currentStock, avg)
		if qty.IsNegative() {
			continue
		}
		if qty.IsZero() && !req.Force {
			continue
		}

		suggestion := replenish.NewSuggestion(policy, qty, currentStock)
		if err := uc.suggestionRepo.Create(ctx, suggestion); err != nil {
			return nil, err
		}
		resp.Suggestions = append(resp.Suggestions, SuggestionBrief{
			SuggestionID: suggestion.ID,
			PolicyID:     policy.ID,
			WarehouseID:  policy.WarehouseID,
			ProductID:    policy.ProductID,
			SuggestedQty: qty,
			CurrentStock: currentStock,
			Status:       suggestion.Status.String(),
		})
	}
	return resp, nil
}
