package inbound

import (
	apperrors "github.com/xiebiao/wms/pkg/errors"
)

// 入库领域错误定义
var (
	// ErrReceiptNotFound 入库单不存在
	ErrReceiptNotFound = apperrors.New(apperrors.ErrCodeReceiptNotFound, "入库单不存在")

	// ErrLineNotFound 入库单行不存在
	ErrLineNotFound = apperrors.New(apperrors.ErrCodeNotFound, "入库单行不存在")

	// ErrInvalidState 入库单状态不允许此操作
	ErrInvalidState = apperrors.New(apperrors.ErrCodeInvalidState, "入库单状态不允许此操作")

	// ErrInvalidQuantity 数量必须大于0
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidQuantity, "数量必须大于0")

	// ErrToleranceExceeded 超出收货容差
	ErrToleranceExceeded = apperrors.New(apperrors.ErrCodeToleranceExceeded, "超出收货容差")

	// ErrDuplicateLineID 同一请求中行ID重复
	ErrDuplicateLineID = apperrors.New(apperrors.ErrCodeDuplicateLineId, "请求中行ID重复")
)
