package mysql

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// getDB 从context提取事务DB,不在事务中时使用仓储自身的连接
func getDB(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok {
		return tx
	}
	return fallback.WithContext(ctx)
}

// isDuplicateError 判断是否为MySQL唯一索引冲突错误
// 批次幂等解析依赖(tenant,product,batch_code)唯一索引兜底:
// 并发创建同一批次时,后到者拿到1062冲突后改走查找
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "Duplicate entry")
}
