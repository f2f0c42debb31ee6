package warehouse

import (
	"context"
)

// Repository 仓库/库位仓储接口
type Repository interface {
	// FindByID 根据ID查找仓库
	FindByID(ctx context.Context, tenantID, id uint) (*Warehouse, error)

	// FindLocation 根据ID查找库位
	FindLocation(ctx context.Context, tenantID, locationID uint) (*Location, error)

	// FirstActiveLocation 仓库内最早创建的活跃库位
	// 转移执行器的确定性默认库位选择:按ID升序取第一个IsActive的库位
	FirstActiveLocation(ctx context.Context, tenantID, warehouseID uint) (*Location, error)
}

// PolicyRepository 容差/出库规则配置提供方
// 设计说明:配置由租户开通系统维护,本服务只读
type PolicyRepository interface {
	// ResolveTolerance 层级解析收货容差策略
	// 匹配顺序:商品+仓库 → 仅仓库 → 仅商品 → 租户默认,最具体者生效;
	// 没有任何策略时返回nil(不做容差校验以外的默认值由调用方决定)
	ResolveTolerance(ctx context.Context, tenantID, warehouseID, productID uint) (*TolerancePolicy, error)

	// FindOutboundRule 查询租户级出库规则(无规则时返回nil)
	FindOutboundRule(ctx context.Context, tenantID uint) (*OutboundRule, error)
}
