package replenish

import (
	"context"

	transferapp "github.com/xiebiao/wms/internal/application/transfer"
	"github.com/xiebiao/wms/internal/domain/replenish"
)

// SuggestionLifecycleUseCase 补货建议生命周期用例
// 状态流转:PENDING → APPROVED|REJECTED;APPROVED → EXECUTED
// 执行=按策略的来源仓库创建一张转移单并关联到建议
type SuggestionLifecycleUseCase struct {
	suggestionRepo replenish.SuggestionRepository
	policyRepo     replenish.PolicyRepository
	executor       *transferapp.ExecuteTransferUseCase
}

// NewSuggestionLifecycleUseCase 创建建议生命周期用例
func NewSuggestionLifecycleUseCase(
	suggestionRepo replenish.SuggestionRepository,
	policyRepo replenish.PolicyRepository,
	executor *transferapp.ExecuteTransferUseCase,
) *SuggestionLifecycleUseCase {
	return &SuggestionLifecycleUseCase{
		suggestionRepo: suggestionRepo,
		policyRepo:     policyRepo,
		executor:       executor,
	}
}

// SuggestionResponse 建议状态响应DTO
type SuggestionResponse struct {
	SuggestionID uint   `json:"suggestion_id"`
	Status       string `json:"status"`
	TransferID   *uint  `json:"transfer_id,omitempty"`
}

// Approve 审批通过
func (uc *SuggestionLifecycleUseCase) Approve(ctx context.Context, tenantID, suggestionID uint) (*SuggestionResponse, error) {
	s, err := uc.suggestionRepo.FindByID(ctx, tenantID, suggestionID)
	if err != nil {
		return nil, err
	}
	if err := s.Approve(); err != nil {
		return nil, err
	}
	if err := uc.suggestionRepo.Save(ctx, s); err != nil {
		return nil, err
	}
	return &SuggestionResponse{SuggestionID: s.ID, Status: s.Status.String()}, nil
}

// Reject 驳回
func (uc *SuggestionLifecycleUseCase) Reject(ctx context.Context, tenantID, suggestionID uint) (*SuggestionResponse, error) {
	s, err := uc.suggestionRepo.FindByID(ctx, tenantID, suggestionID)
	if err != nil {
		return nil, err
	}
	if err := s.Reject(); err != nil {
		return nil, err
	}
	if err := uc.suggestionRepo.Save(ctx, s); err != nil {
		return nil, err
	}
	return &SuggestionResponse{SuggestionID: s.ID, Status: s.Status.String()}, nil
}

// Execute 执行已审批的建议:从来源仓库向目标仓库发起转移
func (uc *SuggestionLifecycleUseCase) Execute(ctx context.Context, tenantID, suggestionID uint) (*SuggestionResponse, error) {
	s, err := uc.suggestionRepo.FindByID(ctx, tenantID, suggestionID)
	if err != nil {
		return nil, err
	}
	if s.Status != replenish.SuggestionStatusApproved {
		return nil, replenish.ErrInvalidState
	}

	policy, err := uc.policyRepo.FindByID(ctx, tenantID, s.PolicyID)
	if err != nil {
		return nil, err
	}

	result, err := uc.executor.Execute(ctx, transferapp.ExecuteTransferRequest{
		TenantID:               tenantID,
		SourceWarehouseID:      policy.SourceWarehouseID,
		DestinationWarehouseID: s.WarehouseID,
		Lines: []transferapp.ExecuteTransferLine{
			{ProductID: s.ProductID, Quantity: s.SuggestedQty},
		},
	})
	if err != nil {
		return nil, err
	}

	if err := s.MarkExecuted(result.TransferID); err != nil {
		return nil, err
	}
	if err := uc.suggestionRepo.Save(ctx, s); err != nil {
		return nil, err
	}
	return &SuggestionResponse{SuggestionID: s.ID, Status: s.Status.String(), TransferID: s.TransferID}, nil
}
