package product

import (
	apperrors "github.com/xiebiao/wms/pkg/errors"
)

// 商品领域错误定义
var (
	// ErrProductNotFound 商品不存在
	ErrProductNotFound = apperrors.New(apperrors.ErrCodeProductNotFound, "商品不存在")

	// ErrProductInactive 商品已停用
	ErrProductInactive = apperrors.New(apperrors.ErrCodeBusinessError, "商品已停用")

	// ErrBatchNotFound 批次不存在
	ErrBatchNotFound = apperrors.New(apperrors.ErrCodeBatchNotFound, "批次不存在")

	// ErrMissingBatchCode 商品要求批次管理但未提供批次号
	ErrMissingBatchCode = apperrors.New(apperrors.ErrCodeMissingBatchCode, "该商品要求提供批次号")

	// ErrMissingExpiryDate 商品要求效期管理但未提供效期
	ErrMissingExpiryDate = apperrors.New(apperrors.ErrCodeMissingExpiryDate, "该商品要求提供效期")
)
