package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/wms/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明:
// 1. 使用GORM v2作为ORM框架,配置连接池参数
// 2. 开发环境开启SQL日志,生产环境关闭
// 3. 台账写入依赖REPEATABLE READ(MySQL默认)+显式行锁,
//    不调低会话隔离级别
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// 注意:AutoMigrate只创建表、添加字段,不删除或修改现有字段;
// 生产环境应使用版本化的迁移脚本
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&ProductModel{},
		&BatchModel{},
		&WarehouseModel{},
		&LocationModel{},
		&TolerancePolicyModel{},
		&OutboundRuleModel{},
		&PartitionModel{},
		&MovementModel{},
		&ReceiptModel{},
		&ReceiptLineModel{},
		&OutboundOrderModel{},
		&OutboundOrderLineModel{},
		&PickingTaskModel{},
		&PickingTaskLineModel{},
		&TransferOrderModel{},
		&TransferOrderLineModel{},
		&ReplenishPolicyModel{},
		&ReplenishSuggestionModel{},
	)
}
