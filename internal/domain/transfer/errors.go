package transfer

import (
	apperrors "github.com/xiebiao/wms/pkg/errors"
)

// 仓间转移领域错误定义
var (
	// ErrTransferNotFound 转移单不存在
	ErrTransferNotFound = apperrors.New(apperrors.ErrCodeNotFound, "转移单不存在")

	// ErrInvalidState 转移单状态不允许此操作
	ErrInvalidState = apperrors.New(apperrors.ErrCodeInvalidState, "转移单状态不允许此操作")

	// ErrInvalidQuantity 数量必须大于0
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidQuantity, "数量必须大于0")

	// ErrSameWarehouse 来源仓库与目标仓库相同
	ErrSameWarehouse = apperrors.New(apperrors.ErrCodeInvalidParams, "来源仓库与目标仓库不能相同")

	// ErrNoLines 转移单没有行
	ErrNoLines = apperrors.New(apperrors.ErrCodeInvalidParams, "转移单至少需要一行")
)
