package outbound

import (
	apperrors "github.com/xiebiao/wms/pkg/errors"
)

// 出库领域错误定义
var (
	// ErrOrderNotFound 出库单不存在
	ErrOrderNotFound = apperrors.New(apperrors.ErrCodeOrderNotFound, "出库单不存在")

	// ErrTaskNotFound 拣货任务不存在
	ErrTaskNotFound = apperrors.New(apperrors.ErrCodeTaskNotFound, "拣货任务不存在")

	// ErrTaskLineNotFound 拣货任务行不存在
	ErrTaskLineNotFound = apperrors.New(apperrors.ErrCodeNotFound, "拣货任务行不存在")

	// ErrInvalidState 单据状态不允许此操作
	ErrInvalidState = apperrors.New(apperrors.ErrCodeInvalidState, "单据状态不允许此操作")

	// ErrInvalidQuantity 数量必须大于0
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidQuantity, "数量必须大于0")

	// ErrOverAllocation 分配量超出请求量
	ErrOverAllocation = apperrors.New(apperrors.ErrCodeBusinessError, "分配量超出请求量")

	// ErrOverPick 拣货量超出应拣量
	ErrOverPick = apperrors.New(apperrors.ErrCodeOverPick, "拣货量超出应拣量")

	// ErrInsufficientStock 可用库存不足(整单要求全量分配时)
	ErrInsufficientStock = apperrors.New(apperrors.ErrCodeInsufficientStock, "可用库存不足")

	// ErrDuplicateLineID 同一请求中任务行ID重复
	ErrDuplicateLineID = apperrors.New(apperrors.ErrCodeDuplicateLineId, "请求中行ID重复")

	// ErrNoLines 出库单没有行
	ErrNoLines = apperrors.New(apperrors.ErrCodeInvalidParams, "出库单至少需要一行")
)
