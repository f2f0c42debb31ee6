package stock

import (
	apperrors "github.com/xiebiao/wms/pkg/errors"
)

// 库存台账领域错误定义
var (
	// ErrInvalidQuantity 数量必须大于0
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidQuantity, "数量必须大于0")

	// ErrInsufficientStock 分区数量不足
	ErrInsufficientStock = apperrors.New(apperrors.ErrCodeInsufficientStock, "库存不足")

	// ErrPartitionNotFound 分区不存在
	ErrPartitionNotFound = apperrors.New(apperrors.ErrCodeNotFound, "库存分区不存在")

	// ErrInvalidStatus 无效的库存状态
	ErrInvalidStatus = apperrors.New(apperrors.ErrCodeInvalidParams, "无效的库存状态")

	// ErrSamePartition Move的来源分区与目标分区相同
	ErrSamePartition = apperrors.New(apperrors.ErrCodeInvalidParams, "来源分区与目标分区相同")

	// ErrInsufficientReservation 预留分区数量小于拣货确认量
	// 表示台账与拣货任务数据脱钩,属于一致性故障而非普通业务失败,
	// 必须单独打标记录,不允许静默重试
	ErrInsufficientReservation = apperrors.New(apperrors.ErrCodeInsufficientReservation, "预留量与台账不符")
)
