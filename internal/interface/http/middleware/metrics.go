package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/wms/pkg/metrics"
)

// Metrics Prometheus指标采集中间件
// 说明：
// 1. path使用c.FullPath()（路由模板，如/api/v1/outbound/orders/:id/release），
//    避免按具体ID展开导致标签基数爆炸
// 2. 未匹配任何路由时FullPath为空，统一记为unmatched
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method

		metrics.HTTPRequestsTotal.WithLabelValues(
			method, path, strconv.Itoa(c.Writer.Status()),
		).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(
			method, path,
		).Observe(time.Since(start).Seconds())
	}
}
