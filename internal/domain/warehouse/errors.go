package warehouse

import (
	apperrors "github.com/xiebiao/wms/pkg/errors"
)

// 仓库领域错误定义
var (
	// ErrWarehouseNotFound 仓库不存在
	ErrWarehouseNotFound = apperrors.New(apperrors.ErrCodeWarehouseNotFound, "仓库不存在")

	// ErrLocationNotFound 库位不存在
	ErrLocationNotFound = apperrors.New(apperrors.ErrCodeLocationNotFound, "库位不存在")

	// ErrNoActiveLocation 仓库内没有活跃库位(转移执行器无法选择默认库位)
	ErrNoActiveLocation = apperrors.New(apperrors.ErrCodeLocationNotFound, "仓库内没有活跃库位")

	// ErrCrossWarehouse 库位不属于单据所在仓库
	ErrCrossWarehouse = apperrors.New(apperrors.ErrCodeCrossWarehouseViolation, "库位不属于该仓库")

	// ErrCapacityExceeded 超出库位容量
	ErrCapacityExceeded = apperrors.New(apperrors.ErrCodeCapacityExceeded, "超出库位容量")
)
