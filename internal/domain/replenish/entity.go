package replenish

import (
	"time"

	"github.com/shopspring/decimal"
)

// Method 补货计算方法
type Method string

const (
	MethodFixed  Method = "FIXED"   // 固定补货量
	MethodMinMax Method = "MIN_MAX" // 最小/最大水位
	MethodEOQ    Method = "EOQ"     // 经济订货批量(外部预计算)
	MethodDOS    Method = "DOS"     // 按供应天数
)

// Valid 校验方法取值
func (m Method) Valid() bool {
	switch m {
	case MethodFixed, MethodMinMax, MethodEOQ, MethodDOS:
		return true
	}
	return false
}

// Policy 补货策略(按仓库+商品维度配置)
// 方法专属参数只在对应方法下有意义,其余字段忽略
type Policy struct {
	ID           uint
	TenantID     uint
	WarehouseID  uint
	ProductID    uint
	Method       Method
	FixedQty     decimal.Decimal // FIXED:每次补货量
	MinQty       decimal.Decimal // MIN_MAX:触发水位
	MaxQty       decimal.Decimal // MIN_MAX:目标水位
	EOQQty       decimal.Decimal // EOQ:预计算批量
	DaysOfSupply int             // DOS:目标供应天数
	// SourceWarehouseID 补货来源仓库(建议执行时转移的来源)
	SourceWarehouseID uint
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// SuggestionStatus 补货建议状态
// 状态流转:PENDING → APPROVED|REJECTED;APPROVED → EXECUTED
type SuggestionStatus int

const (
	SuggestionStatusPending  SuggestionStatus = 1 // 待审批
	SuggestionStatusApproved SuggestionStatus = 2 // 已审批
	SuggestionStatusRejected SuggestionStatus = 3 // 已驳回
	SuggestionStatusExecuted SuggestionStatus = 4 // 已执行(转移单已创建)
)

// String 实现Stringer接口
func (s SuggestionStatus) String() string {
	switch s {
	case SuggestionStatusPending:
		return "PENDING"
	case SuggestionStatusApproved:
		return "APPROVED"
	case SuggestionStatusRejected:
		return "REJECTED"
	case SuggestionStatusExecuted:
		return "EXECUTED"
	default:
		return "UNKNOWN"
	}
}

// Suggestion 补货建议(派生数据)
type Suggestion struct {
	ID           uint
	TenantID     uint
	WarehouseID  uint
	ProductID    uint
	PolicyID     uint
	SuggestedQty decimal.Decimal
	CurrentStock decimal.Decimal // 计算时的库存快照(便于审批时复核)
	Status       SuggestionStatus
	TransferID   *uint // 执行后关联的转移单
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewSuggestion 创建补货建议(工厂方法,初始状态PENDING)
func NewSuggestion(policy *Policy, suggestedQty, currentStock decimal.Decimal) *Suggestion {
	now := time.Now()
	return &Suggestion{
		TenantID:     policy.TenantID,
		WarehouseID:  policy.WarehouseID,
		ProductID:    policy.ProductID,
		PolicyID:     policy.ID,
		SuggestedQty: suggestedQty,
		CurrentStock: currentStock,
		Status:       SuggestionStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Approve 审批通过
func (s *Suggestion) Approve() error {
	if s.Status != SuggestionStatusPending {
		return ErrInvalidState
	}
	s.Status = SuggestionStatusApproved
	s.UpdatedAt = time.Now()
	return nil
}

// Reject 驳回
func (s *Suggestion) Reject() error {
	if s.Status != SuggestionStatusPending {
		return ErrInvalidState
	}
	s.Status = SuggestionStatusRejected
	s.UpdatedAt = time.Now()
	return nil
}

// MarkExecuted 标记已执行并关联转移单
func (s *Suggestion) MarkExecuted(transferID uint) error {
	if s.Status != SuggestionStatusApproved {
		return ErrInvalidState
	}
	s.Status = SuggestionStatusExecuted
	s.TransferID = &transferID
	s.UpdatedAt = time.Now()
	return nil
}
