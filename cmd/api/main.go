package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	appaudit "github.com/xiebiao/wms/internal/application/audit"
	appinbound "github.com/xiebiao/wms/internal/application/inbound"
	appoutbound "github.com/xiebiao/wms/internal/application/outbound"
	appreplenish "github.com/xiebiao/wms/internal/application/replenish"
	appstock "github.com/xiebiao/wms/internal/application/stock"
	apptransfer "github.com/xiebiao/wms/internal/application/transfer"
	"github.com/xiebiao/wms/internal/domain/stock"
	infraaudit "github.com/xiebiao/wms/internal/infrastructure/audit"
	"github.com/xiebiao/wms/internal/infrastructure/config"
	"github.com/xiebiao/wms/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/wms/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/wms/internal/interface/http/handler"
	"github.com/xiebiao/wms/internal/interface/http/middleware"
	"github.com/xiebiao/wms/pkg/jwt"
	"github.com/xiebiao/wms/pkg/metrics"
	"github.com/xiebiao/wms/pkg/mq"
	"github.com/xiebiao/wms/pkg/response"
	"github.com/xiebiao/wms/pkg/tracing"
)

// main 主程序入口
// 说明：手动依赖注入（wire.go中有等价的Wire配置，运行wire gen可生成wire_gen.go）
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 数据库: %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	fmt.Printf("  - Redis: %s\n", cfg.Redis.Addr())
	fmt.Printf("  - 审计外发: %v\n", cfg.MQ.Enabled)

	// 2. 初始化指标与链路追踪
	metrics.InitMetrics()

	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			log.Fatalf("初始化链路追踪失败: %v", err)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Printf("[WARN] 关闭链路追踪失败: %v", err)
			}
		}()
	}

	// 3. 初始化数据库与Redis连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("初始化Redis失败: %v", err)
	}

	// 4. 依赖注入（手动组装）
	// 依赖链：Repository ← 领域服务 ← UseCase ← Handler

	// 基础设施层
	txManager := mysql.NewTxManager(db)
	partitionRepo := mysql.NewPartitionRepository(db)
	movementRepo := mysql.NewMovementRepository(db)
	productRepo := mysql.NewProductRepository(db)
	batchRepo := mysql.NewBatchRepository(db)
	warehouseRepo := mysql.NewWarehouseRepository(db)
	policyRepo := mysql.NewPolicyRepository(db)
	receiptRepo := mysql.NewReceiptRepository(db)
	orderRepo := mysql.NewOrderRepository(db)
	taskRepo := mysql.NewPickingTaskRepository(db)
	transferRepo := mysql.NewTransferRepository(db)
	replenishPolicyRepo := mysql.NewReplenishPolicyRepository(db)
	suggestionRepo := mysql.NewSuggestionRepository(db)

	consumption := redis.NewConsumptionCache(
		redisClient, movementRepo,
		cfg.Replenish.LookbackDays, cfg.Replenish.ConsumptionTTL,
	)

	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpire)

	// 审计外发：MQ未启用时退化为Nop（指标照常计数）
	var recorder appaudit.Recorder = appaudit.NopRecorder{}
	if cfg.MQ.Enabled {
		publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
		if err != nil {
			log.Fatalf("初始化消息队列失败: %v", err)
		}
		defer publisher.Close()
		recorder = infraaudit.NewMovementPublisher(publisher, cfg.MQ.Exchange)
	}
	usage := infraaudit.NewPrometheusUsageCounter()

	// 领域层
	ledger := stock.NewLedger(partitionRepo)

	// 应用层
	createReceiptUseCase := appinbound.NewCreateReceiptUseCase(receiptRepo, productRepo, warehouseRepo)
	addLineUseCase := appinbound.NewAddLineUseCase(receiptRepo, productRepo)
	confirmReceiptUseCase := appinbound.NewConfirmReceiptUseCase(
		receiptRepo, productRepo, batchRepo, warehouseRepo, policyRepo,
		ledger, movementRepo, txManager, recorder, usage,
	)

	createOrderUseCase := appoutbound.NewCreateOrderUseCase(orderRepo, productRepo, warehouseRepo, usage)
	releaseOrderUseCase := appoutbound.NewReleaseOrderUseCase(
		orderRepo, productRepo, batchRepo, partitionRepo, policyRepo, ledger, txManager,
	)
	createTaskUseCase := appoutbound.NewCreatePickingTaskUseCase(orderRepo, taskRepo, partitionRepo, txManager)
	startTaskUseCase := appoutbound.NewStartTaskUseCase(taskRepo, txManager)
	confirmPickingUseCase := appoutbound.NewConfirmPickingUseCase(
		taskRepo, orderRepo, partitionRepo, ledger, movementRepo, txManager, recorder,
	)

	executeTransferUseCase := apptransfer.NewExecuteTransferUseCase(
		transferRepo, warehouseRepo, productRepo, partitionRepo,
		ledger, movementRepo, txManager, recorder, usage,
	)

	evaluateUseCase := appreplenish.NewEvaluateUseCase(replenishPolicyRepo, suggestionRepo, partitionRepo, consumption)
	lifecycleUseCase := appreplenish.NewSuggestionLifecycleUseCase(suggestionRepo, replenishPolicyRepo, executeTransferUseCase)

	stockQueryUseCase := appstock.NewQueryUseCase(partitionRepo)
	adjustStockUseCase := appstock.NewAdjustStockUseCase(
		productRepo, warehouseRepo, ledger, movementRepo, txManager, recorder,
	)

	// 接口层
	inboundHandler := handler.NewInboundHandler(createReceiptUseCase, addLineUseCase, confirmReceiptUseCase)
	outboundHandler := handler.NewOutboundHandler(createOrderUseCase, releaseOrderUseCase)
	pickingHandler := handler.NewPickingHandler(createTaskUseCase, startTaskUseCase, confirmPickingUseCase)
	transferHandler := handler.NewTransferHandler(executeTransferUseCase)
	replenishHandler := handler.NewReplenishHandler(evaluateUseCase, lifecycleUseCase)
	stockHandler := handler.NewStockHandler(stockQueryUseCase, adjustStockUseCase)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager)

	// 5. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middleware.Metrics())

	// 6. 注册路由
	registerRoutes(r,
		inboundHandler, outboundHandler, pickingHandler,
		transferHandler, replenishHandler, stockHandler,
		authMiddleware,
	)

	// 7. 启动服务
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	fmt.Printf("\n🚀 服务启动成功！\n")
	fmt.Printf("   访问地址: http://localhost%s\n", addr)
	fmt.Printf("   健康检查: http://localhost%s/ping\n", addr)
	fmt.Printf("   指标端点: http://localhost%s/metrics\n", addr)
	fmt.Printf("   接口文档: http://localhost%s/swagger/index.html\n", addr)
	fmt.Printf("\n按Ctrl+C停止服务\n\n")

	if err := r.Run(addr); err != nil {
		log.Fatalf("启动服务失败: %v", err)
	}
}

// registerRoutes 注册路由
// 除健康检查、指标、文档外，全部接口都要求租户Token
func registerRoutes(
	r *gin.Engine,
	inboundHandler *handler.InboundHandler,
	outboundHandler *handler.OutboundHandler,
	pickingHandler *handler.PickingHandler,
	transferHandler *handler.TransferHandler,
	replenishHandler *handler.ReplenishHandler,
	stockHandler *handler.StockHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标端点（套餐限额系统按租户标签抓取用量）
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API路由组（全部需要租户Token）
	v1 := r.Group("/api/v1")
	v1.Use(authMiddleware.RequireAuth())
	{
		// 入库模块
		inboundGroup := v1.Group("/inbound")
		{
			inboundGroup.POST("/receipts", inboundHandler.CreateReceipt)
			inboundGroup.POST("/receipts/:id/lines", inboundHandler.AddLine)
			inboundGroup.POST("/receipts/:id/confirm", inboundHandler.ConfirmReceipt)
		}

		// 出库模块
		outboundGroup := v1.Group("/outbound")
		{
			outboundGroup.POST("/orders", outboundHandler.CreateOrder)
			outboundGroup.POST("/orders/:id/release", outboundHandler.ReleaseOrder)
		}

		// 拣货模块
		pickingGroup := v1.Group("/picking")
		{
			pickingGroup.POST("/tasks", pickingHandler.CreateTask)
			pickingGroup.POST("/tasks/:id/start", pickingHandler.StartTask)
			pickingGroup.POST("/tasks/:id/confirm", pickingHandler.ConfirmPicking)
		}

		// 转移模块
		v1.POST("/transfers", transferHandler.ExecuteTransfer)

		// 补货模块
		replenishGroup := v1.Group("/replenishment")
		{
			replenishGroup.POST("/evaluate", replenishHandler.Evaluate)
			replenishGroup.POST("/suggestions/:id/approve", replenishHandler.ApproveSuggestion)
			replenishGroup.POST("/suggestions/:id/reject", replenishHandler.RejectSuggestion)
			replenishGroup.POST("/suggestions/:id/execute", replenishHandler.ExecuteSuggestion)
		}

		// 库存模块
		stockGroup := v1.Group("/stock")
		{
			stockGroup.GET("", stockHandler.QueryStock)
			stockGroup.POST("/adjustments", stockHandler.AdjustStock)
		}
	}
}
