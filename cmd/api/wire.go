//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 使用方式：
// Step 1: 修改本文件中的Provider
// Step 2: 运行 `wire gen ./cmd/api`
// Step 3: Wire生成wire_gen.go，main.go可改用InitializeApp()
//
// 核心概念：
// - Provider: 提供依赖的构造函数（如NewPartitionRepository）
// - Injector: 声明最终要构造的目标类型（*gin.Engine）
// - wire.Bind: 将接口绑定到具体实现

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"

	appaudit "github.com/xiebiao/wms/internal/application/audit"
	appinbound "github.com/xiebiao/wms/internal/application/inbound"
	appoutbound "github.com/xiebiao/wms/internal/application/outbound"
	appreplenish "github.com/xiebiao/wms/internal/application/replenish"
	appstock "github.com/xiebiao/wms/internal/application/stock"
	apptransfer "github.com/xiebiao/wms/internal/application/transfer"
	"github.com/xiebiao/wms/internal/application/uow"
	replenishdomain "github.com/xiebiao/wms/internal/domain/replenish"
	"github.com/xiebiao/wms/internal/domain/stock"
	infraaudit "github.com/xiebiao/wms/internal/infrastructure/audit"
	"github.com/xiebiao/wms/internal/infrastructure/config"
	"github.com/xiebiao/wms/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/wms/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/wms/internal/interface/http/handler"
	"github.com/xiebiao/wms/internal/interface/http/middleware"
	"github.com/xiebiao/wms/pkg/jwt"
	"github.com/xiebiao/wms/pkg/mq"
)

// infrastructureSet 基础设施层依赖
var infrastructureSet = wire.NewSet(
	config.Load,     // 加载配置文件
	mysql.NewDB,     // 创建MySQL连接
	redis.NewClient, // 创建Redis连接
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	mysql.NewTxManager,
	wire.Bind(new(uow.TxManager), new(*mysql.TxManager)),
	mysql.NewPartitionRepository,
	mysql.NewMovementRepository,
	mysql.NewProductRepository,
	mysql.NewBatchRepository,
	mysql.NewWarehouseRepository,
	mysql.NewPolicyRepository,
	mysql.NewReceiptRepository,
	mysql.NewOrderRepository,
	mysql.NewPickingTaskRepository,
	mysql.NewTransferRepository,
	mysql.NewReplenishPolicyRepository,
	mysql.NewSuggestionRepository,
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	stock.NewLedger, // 库存台账服务
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appinbound.NewCreateReceiptUseCase,
	appinbound.NewAddLineUseCase,
	appinbound.NewConfirmReceiptUseCase,
	appoutbound.NewCreateOrderUseCase,
	appoutbound.NewReleaseOrderUseCase,
	appoutbound.NewCreatePickingTaskUseCase,
	appoutbound.NewStartTaskUseCase,
	appoutbound.NewConfirmPickingUseCase,
	apptransfer.NewExecuteTransferUseCase,
	appreplenish.NewEvaluateUseCase,
	appreplenish.NewSuggestionLifecycleUseCase,
	appstock.NewQueryUseCase,
	appstock.NewAdjustStockUseCase,
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	provideJWTManager,
	middleware.NewAuthMiddleware,
	handler.NewInboundHandler,
	handler.NewOutboundHandler,
	handler.NewPickingHandler,
	handler.NewTransferHandler,
	handler.NewReplenishHandler,
	handler.NewStockHandler,
)

// provideJWTManager 从配置创建JWT管理器
// config.Config包含多个字段，Wire无法自动提取JWT相关参数
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpire)
}

// provideConsumptionProvider 从Redis缓存创建日均消耗提供者
func provideConsumptionProvider(
	cfg *config.Config,
	client *goredis.Client,
	movements stock.MovementRepository,
) replenishdomain.ConsumptionProvider {
	return redis.NewConsumptionCache(
		client, movements,
		cfg.Replenish.LookbackDays, cfg.Replenish.ConsumptionTTL,
	)
}

// provideRecorder 创建审计流外发实现
// MQ未启用时退化为Nop，库存操作不依赖消息队列可用性
func provideRecorder(cfg *config.Config) (appaudit.Recorder, error) {
	if !cfg.MQ.Enabled {
		return appaudit.NopRecorder{}, nil
	}
	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
	if err != nil {
		return nil, err
	}
	return infraaudit.NewMovementPublisher(publisher, cfg.MQ.Exchange), nil
}

// provideUsageCounter 创建租户用量计数器
func provideUsageCounter() appaudit.UsageCounter {
	return infraaudit.NewPrometheusUsageCounter()
}

// provideGinEngine 创建并配置Gin引擎
func provideGinEngine(
	cfg *config.Config,
	inboundHandler *handler.InboundHandler,
	outboundHandler *handler.OutboundHandler,
	pickingHandler *handler.PickingHandler,
	transferHandler *handler.TransferHandler,
	replenishHandler *handler.ReplenishHandler,
	stockHandler *handler.StockHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.Metrics())

	registerRoutes(r,
		inboundHandler, outboundHandler, pickingHandler,
		transferHandler, replenishHandler, stockHandler,
		authMiddleware,
	)

	return r
}

// InitializeApp 初始化整个应用
// Wire会按依赖关系自动调用所有Provider
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		handlerSet,
		provideConsumptionProvider,
		provideRecorder,
		provideUsageCounter,
		provideGinEngine,
	)
	return nil, nil
}
