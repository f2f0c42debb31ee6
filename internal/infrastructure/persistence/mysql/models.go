package mysql

import (
	"time"

	"github.com/shopspring/decimal"
)

// 数据模型定义
// 设计说明:
// 1. 这是infrastructure层的GORM模型,domain层实体不依赖GORM
// 2. 所有数量字段使用decimal(18,4):数量在大量并发加减后必须精确守恒
// 3. 所有业务表带tenant_id并进入索引:跨租户读写在存储层就不可能发生

// PartitionModel 库存分区模型(台账行)
// 五字段分区键上有复合唯一索引,batch_id可空
// (MySQL的唯一索引对NULL不去重,nil批次分区的唯一性由
// LockOrCreateByKey的先锁后建保证)
type PartitionModel struct {
	ID            uint            `gorm:"primaryKey"`
	TenantID      uint            `gorm:"uniqueIndex:idx_partition_key;not null;comment:租户ID"`
	ProductID     uint            `gorm:"uniqueIndex:idx_partition_key;index:idx_partition_product;not null;comment:商品ID"`
	BatchID       *uint           `gorm:"uniqueIndex:idx_partition_key;comment:批次ID(可空)"`
	LocationID    uint            `gorm:"uniqueIndex:idx_partition_key;index;not null;comment:库位ID"`
	UnitOfMeasure string          `gorm:"uniqueIndex:idx_partition_key;size:20;not null;comment:计量单位"`
	Status        string          `gorm:"uniqueIndex:idx_partition_key;size:30;not null;comment:库存状态"`
	Quantity      decimal.Decimal `gorm:"type:decimal(18,4);not null;comment:数量"`
	CreatedAt     time.Time       `gorm:"comment:创建时间(FIFO分配顺序依据)"`
	UpdatedAt     time.Time       `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (PartitionModel) TableName() string {
	return "stock_partitions"
}

// MovementModel 库存移动记录模型(审计流,只追加)
type MovementModel struct {
	ID             uint            `gorm:"primaryKey"`
	TenantID       uint            `gorm:"index:idx_movement_lookup;not null;comment:租户ID"`
	Type           string          `gorm:"index:idx_movement_lookup;size:30;not null;comment:移动类型"`
	ProductID      uint            `gorm:"index:idx_movement_lookup;not null;comment:商品ID"`
	BatchID        *uint           `gorm:"comment:批次ID(可空)"`
	FromLocationID *uint           `gorm:"index;comment:来源库位(入库移动为空)"`
	ToLocationID   *uint           `gorm:"index;comment:目标库位(出库移动为空)"`
	UnitOfMeasure  string          `gorm:"size:20;not null;comment:计量单位"`
	Quantity       decimal.Decimal `gorm:"type:decimal(18,4);not null;comment:数量"`
	ReferenceType  string          `gorm:"size:20;not null;comment:关联单据类型"`
	ReferenceID    uint            `gorm:"index;not null;comment:关联单据ID"`
	CreatedAt      time.Time       `gorm:"index:idx_movement_lookup;comment:创建时间"`
}

// TableName 指定表名
func (MovementModel) TableName() string {
	return "stock_movements"
}

// ProductModel 商品模型
type ProductModel struct {
	ID                   uint      `gorm:"primaryKey"`
	TenantID             uint      `gorm:"uniqueIndex:idx_product_sku;not null;comment:租户ID"`
	SKU                  string    `gorm:"uniqueIndex:idx_product_sku;size:64;not null;comment:商品编码"`
	Name                 string    `gorm:"size:200;not null;comment:商品名称"`
	DefaultUnitOfMeasure string    `gorm:"size:20;not null;comment:默认计量单位"`
	RequiresBatch        bool      `gorm:"default:false;comment:收货时必须提供批次号"`
	RequiresExpiryDate   bool      `gorm:"default:false;comment:收货时必须提供效期"`
	IsActive             bool      `gorm:"default:true;comment:是否启用"`
	CreatedAt            time.Time `gorm:"comment:创建时间"`
	UpdatedAt            time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (ProductModel) TableName() string {
	return "products"
}

// BatchModel 批次模型
// (tenant,product,batch_code)唯一索引是幂等解析的兜底
type BatchModel struct {
	ID         uint       `gorm:"primaryKey"`
	TenantID   uint       `gorm:"uniqueIndex:idx_batch_code;not null;comment:租户ID"`
	ProductID  uint       `gorm:"uniqueIndex:idx_batch_code;not null;comment:商品ID"`
	BatchCode  string     `gorm:"uniqueIndex:idx_batch_code;size:64;not null;comment:批次号"`
	ExpiryDate *time.Time `gorm:"index;comment:效期(可空,FEFO排序依据)"`
	CreatedAt  time.Time  `gorm:"comment:创建时间"`
}

// TableName 指定表名
func (BatchModel) TableName() string {
	return "batches"
}

// WarehouseModel 仓库模型
type WarehouseModel struct {
	ID        uint      `gorm:"primaryKey"`
	TenantID  uint      `gorm:"uniqueIndex:idx_warehouse_code;not null;comment:租户ID"`
	Code      string    `gorm:"uniqueIndex:idx_warehouse_code;size:32;not null;comment:仓库编码"`
	Name      string    `gorm:"size:100;not null;comment:仓库名称"`
	IsActive  bool      `gorm:"default:true;comment:是否启用"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (WarehouseModel) TableName() string {
	return "warehouses"
}

// LocationModel 库位模型
type LocationModel struct {
	ID           uint             `gorm:"primaryKey"`
	TenantID     uint             `gorm:"index;not null;comment:租户ID"`
	WarehouseID  uint             `gorm:"index;not null;comment:所属仓库ID"`
	Code         string           `gorm:"size:32;not null;comment:库位编码"`
	Zone         string           `gorm:"size:32;comment:库区"`
	SlotCapacity *decimal.Decimal `gorm:"type:decimal(18,4);comment:容量上限(空表示不限)"`
	IsActive     bool             `gorm:"default:true;comment:是否启用"`
	CreatedAt    time.Time        `gorm:"comment:创建时间"`
}

// TableName 指定表名
func (LocationModel) TableName() string {
	return "locations"
}

// TolerancePolicyModel 收货容差策略模型
type TolerancePolicyModel struct {
	ID                 uint             `gorm:"primaryKey"`
	TenantID           uint             `gorm:"index;not null;comment:租户ID"`
	WarehouseID        *uint            `gorm:"index;comment:仓库ID(空表示全部仓库)"`
	ProductID          *uint            `gorm:"index;comment:商品ID(空表示全部商品)"`
	MaxOverReceiptPct  decimal.Decimal  `gorm:"type:decimal(8,4);not null;comment:最大超收百分比"`
	MaxUnderReceiptPct *decimal.Decimal `gorm:"type:decimal(8,4);comment:最大欠收百分比(空不校验)"`
	CreatedAt          time.Time        `gorm:"comment:创建时间"`
}

// TableName 指定表名
func (TolerancePolicyModel) TableName() string {
	return "tolerance_policies"
}

// OutboundRuleModel 租户级出库规则模型
type OutboundRuleModel struct {
	ID                    uint `gorm:"primaryKey"`
	TenantID              uint `gorm:"uniqueIndex;not null;comment:租户ID"`
	RequireFullAllocation bool `gorm:"default:false;comment:释放必须全量分配"`
}

// TableName 指定表名
func (OutboundRuleModel) TableName() string {
	return "outbound_rules"
}

// ReceiptModel 入库单模型
type ReceiptModel struct {
	ID          uint               `gorm:"primaryKey"`
	TenantID    uint               `gorm:"index;not null;comment:租户ID"`
	WarehouseID uint               `gorm:"index;not null;comment:仓库ID"`
	ExternalRef string             `gorm:"size:64;comment:外部单据号"`
	Status      int                `gorm:"index;type:tinyint;default:1;comment:状态(1草稿2部分收货3收货完成)"`
	Lines       []ReceiptLineModel `gorm:"foreignKey:ReceiptID"`
	CreatedAt   time.Time          `gorm:"comment:创建时间"`
	UpdatedAt   time.Time          `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (ReceiptModel) TableName() string {
	return "inbound_receipts"
}

// ReceiptLineModel 入库单行模型
type ReceiptLineModel struct {
	ID            uint            `gorm:"primaryKey"`
	ReceiptID     uint            `gorm:"index;not null;comment:入库单ID"`
	ProductID     uint            `gorm:"index;not null;comment:商品ID"`
	ExpectedQty   decimal.Decimal `gorm:"type:decimal(18,4);not null;comment:预期数量"`
	ReceivedQty   decimal.Decimal `gorm:"type:decimal(18,4);not null;comment:已收数量"`
	UnitOfMeasure string          `gorm:"size:20;not null;comment:计量单位"`
	BatchCode     *string         `gorm:"size:64;comment:预报批次号"`
	ExpiryDate    *time.Time      `gorm:"comment:预报效期"`
}

// TableName 指定表名
func (ReceiptLineModel) TableName() string {
	return "inbound_receipt_lines"
}

// OutboundOrderModel 出库单模型
type OutboundOrderModel struct {
	ID          uint                     `gorm:"primaryKey"`
	TenantID    uint                     `gorm:"index;not null;comment:租户ID"`
	WarehouseID uint                     `gorm:"index;not null;comment:仓库ID"`
	Status      int                      `gorm:"index;type:tinyint;default:1;comment:状态(1草稿2已释放3部分分配4全量分配5拣货中6部分拣货7拣货完成)"`
	Lines       []OutboundOrderLineModel `gorm:"foreignKey:OrderID"`
	CreatedAt   time.Time                `gorm:"comment:创建时间"`
	UpdatedAt   time.Time                `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (OutboundOrderModel) TableName() string {
	return "outbound_orders"
}

// OutboundOrderLineModel 出库单行模型
// 不变量:picked_qty <= allocated_qty <= requested_qty
type OutboundOrderLineModel struct {
	ID            uint            `gorm:"primaryKey"`
	OrderID       uint            `gorm:"index;not null;comment:出库单ID"`
	ProductID     uint            `gorm:"index;not null;comment:商品ID"`
	RequestedQty  decimal.Decimal `gorm:"type:decimal(18,4);not null;comment:请求数量"`
	AllocatedQty  decimal.Decimal `gorm:"type:decimal(18,4);not null;comment:已分配数量"`
	PickedQty     decimal.Decimal `gorm:"type:decimal(18,4);not null;comment:已拣数量"`
	UnitOfMeasure string          `gorm:"size:20;not null;comment:计量单位"`
}

// TableName 指定表名
func (OutboundOrderLineModel) TableName() string {
	return "outbound_order_lines"
}

// PickingTaskModel 拣货任务模型
type PickingTaskModel struct {
	ID        uint                   `gorm:"primaryKey"`
	TenantID  uint                   `gorm:"index;not null;comment:租户ID"`
	OrderID   uint                   `gorm:"index;not null;comment:出库单ID"`
	PickerID  *uint                  `gorm:"index;comment:拣货员ID(可空)"`
	Status    int                    `gorm:"index;type:tinyint;default:1;comment:状态(1已创建2已指派3拣货中4已完成)"`
	Lines     []PickingTaskLineModel `gorm:"foreignKey:TaskID"`
	CreatedAt time.Time              `gorm:"comment:创建时间"`
	UpdatedAt time.Time              `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (PickingTaskModel) TableName() string {
	return "picking_tasks"
}

// PickingTaskLineModel 拣货任务行模型
type PickingTaskLineModel struct {
	ID             uint            `gorm:"primaryKey"`
	TaskID         uint            `gorm:"index;not null;comment:任务ID"`
	OrderLineID    uint            `gorm:"index;not null;comment:出库单行ID"`
	ProductID      uint            `gorm:"index;not null;comment:商品ID"`
	BatchID        *uint           `gorm:"comment:批次ID(可空)"`
	FromLocationID uint            `gorm:"not null;comment:来源库位ID"`
	UnitOfMeasure  string          `gorm:"size:20;not null;comment:计量单位"`
	QuantityToPick decimal.Decimal `gorm:"type:decimal(18,4);not null;comment:应拣数量"`
	QuantityPicked decimal.Decimal `gorm:"type:decimal(18,4);not null;comment:已拣数量"`
}

// TableName 指定表名
func (PickingTaskLineModel) TableName() string {
	return "picking_task_lines"
}

// TransferOrderModel 转移单模型
type TransferOrderModel struct {
	ID                     uint                     `gorm:"primaryKey"`
	TenantID               uint                     `gorm:"index;not null;comment:租户ID"`
	SourceWarehouseID      uint                     `gorm:"index;not null;comment:来源仓库ID"`
	DestinationWarehouseID uint                     `gorm:"index;not null;comment:目标仓库ID"`
	Status                 int                      `gorm:"index;type:tinyint;default:1;comment:状态(1已创建2已审批3已完成)"`
	Lines                  []TransferOrderLineModel `gorm:"foreignKey:TransferID"`
	CreatedAt              time.Time                `gorm:"comment:创建时间"`
	UpdatedAt              time.Time                `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (TransferOrderModel) TableName() string {
	return "transfer_orders"
}

// TransferOrderLineModel 转移单行模型
type TransferOrderLineModel struct {
	ID            uint            `gorm:"primaryKey"`
	TransferID    uint            `gorm:"index;not null;comment:转移单ID"`
	ProductID     uint            `gorm:"index;not null;comment:商品ID"`
	Quantity      decimal.Decimal `gorm:"type:decimal(18,4);not null;comment:转移数量"`
	UnitOfMeasure string          `gorm:"size:20;not null;comment:计量单位"`
}

// TableName 指定表名
func (TransferOrderLineModel) TableName() string {
	return "transfer_order_lines"
}

// ReplenishPolicyModel 补货策略模型
type ReplenishPolicyModel struct {
	ID                uint            `gorm:"primaryKey"`
	TenantID          uint            `gorm:"uniqueIndex:idx_replenish_policy;not null;comment:租户ID"`
	WarehouseID       uint            `gorm:"uniqueIndex:idx_replenish_policy;not null;comment:仓库ID"`
	ProductID         uint            `gorm:"uniqueIndex:idx_replenish_policy;not null;comment:商品ID"`
	Method            string          `gorm:"size:20;not null;comment:计算方法(FIXED/MIN_MAX/EOQ/DOS)"`
	FixedQty          decimal.Decimal `gorm:"type:decimal(18,4);comment:固定补货量"`
	MinQty            decimal.Decimal `gorm:"type:decimal(18,4);comment:触发水位"`
	MaxQty            decimal.Decimal `gorm:"type:decimal(18,4);comment:目标水位"`
	EOQQty            decimal.Decimal `gorm:"type:decimal(18,4);comment:经济订货批量"`
	DaysOfSupply      int             `gorm:"comment:目标供应天数"`
	SourceWarehouseID uint            `gorm:"not null;comment:补货来源仓库ID"`
	IsActive          bool            `gorm:"index;default:true;comment:是否启用"`
	CreatedAt         time.Time       `gorm:"comment:创建时间"`
	UpdatedAt         time.Time       `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (ReplenishPolicyModel) TableName() string {
	return "replenish_policies"
}

// ReplenishSuggestionModel 补货建议模型
type ReplenishSuggestionModel struct {
	ID           uint            `gorm:"primaryKey"`
	TenantID     uint            `gorm:"index;not null;comment:租户ID"`
	WarehouseID  uint            `gorm:"index;not null;comment:仓库ID"`
	ProductID    uint            `gorm:"index;not null;comment:商品ID"`
	PolicyID     uint            `gorm:"index;not null;comment:策略ID"`
	SuggestedQty decimal.Decimal `gorm:"type:decimal(18,4);not null;comment:建议补货量"`
	CurrentStock decimal.Decimal `gorm:"type:decimal(18,4);not null;comment:计算时库存快照"`
	Status       int             `gorm:"index;type:tinyint;default:1;comment:状态(1待审批2已审批3已驳回4已执行)"`
	TransferID   *uint           `gorm:"comment:执行后关联的转移单ID"`
	CreatedAt    time.Time       `gorm:"comment:创建时间"`
	UpdatedAt    time.Time       `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (ReplenishSuggestionModel) TableName() string {
	return "replenish_suggestions"
}
