package mysql

import (
	"context"

	"gorm.io/gorm"
)

// TxManager 事务管理器
// 设计说明:
// 1. 封装GORM的Transaction方法,实现应用层的uow.TxManager接口
// 2. 事务DB通过context传递,仓储的getDB从context提取,
//    调用链中途绝不隐式开启事务
// 3. 台账写入依赖事务内的SELECT FOR UPDATE行锁串行化并发写者,
//    事务边界就是一次请求的一致性边界
type TxManager struct {
	db *gorm.DB
}

// NewTxManager 创建事务管理器
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Transaction 执行事务
// fn内的所有仓储操作在同一事务中执行;
// fn返回error时自动ROLLBACK,返回nil时自动COMMIT
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txCtx := context.WithValue(ctx, "tx", tx)
		return fn(txCtx)
	})
}
