package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/xiebiao/wms/internal/domain/stock"
)

// ConsumptionCache 带TTL缓存的日均消耗提供方
// 设计说明:
// 1. 日均消耗=回看窗口内出库移动数量合计/窗口天数,
//    聚合查询代价高,短TTL缓存避免每次补货评估都打数据库
// 2. 缓存键按(租户,仓库,商品)维度隔离
// 3. Redis不可用时直接回源计算,缓存只是加速不是依赖
type ConsumptionCache struct {
	client       *redis.Client
	movements    stock.MovementRepository
	lookbackDays int
	ttl          time.Duration
}

// NewConsumptionCache 创建日均消耗缓存
func NewConsumptionCache(client *redis.Client, movements stock.MovementRepository, lookbackDays int, ttl time.Duration) *ConsumptionCache {
	return &ConsumptionCache{
		client:       client,
		movements:    movements,
		lookbackDays: lookbackDays,
		ttl:          ttl,
	}
}

func (c *ConsumptionCache) cacheKey(tenantID, warehouseID, productID uint) string {
	return fmt.Sprintf("wms:consumption:%d:%d:%d", tenantID, warehouseID, productID)
}

// AvgDailyConsumption 商品在仓库内的日均消耗量
func (c *ConsumptionCache) AvgDailyConsumption(ctx context.Context, tenantID, warehouseID, productID uint) (decimal.Decimal, error) {
	key := c.cacheKey(tenantID, warehouseID, productID)

	if cached, err := c.client.Get(ctx, key).Result(); err == nil {
		if avg, parseErr := decimal.NewFromString(cached); parseErr == nil {
			return avg, nil
		}
	}

	since := time.Now().AddDate(0, 0, -c.lookbackDays)
	total, err := c.movements.SumOutboundSince(ctx, tenantID, warehouseID, productID, since)
	if err != nil {
		return decimal.Zero, err
	}
	avg := total.Div(decimal.NewFromInt(int64(c.lookbackDays)))

	// 写缓存失败只记为未命中,不影响计算结果
	c.client.Set(ctx, key, avg.String(), c.ttl)

	return avg, nil
}
