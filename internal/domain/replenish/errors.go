package replenish

import (
	apperrors "github.com/xiebiao/wms/pkg/errors"
)

// 补货领域错误定义
var (
	// ErrPolicyNotFound 补货策略不存在
	ErrPolicyNotFound = apperrors.New(apperrors.ErrCodePolicyNotFound, "补货策略不存在")

	// ErrSuggestionNotFound 补货建议不存在
	ErrSuggestionNotFound = apperrors.New(apperrors.ErrCodeSuggestionNotFound, "补货建议不存在")

	// ErrInvalidState 建议状态不允许此操作
	ErrInvalidState = apperrors.New(apperrors.ErrCodeInvalidState, "建议状态不允许此操作")
)
