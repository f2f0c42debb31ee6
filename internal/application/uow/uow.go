// Package uow 定义应用层的工作单元接口
//
// 设计说明:
// 1. 每个改写台账的请求对应一个数据库事务:事务内的每次分区读写
//    都通过context携带的事务DB执行,绝不在调用链中途隐式开启事务
// 2. mysql.TxManager是生产实现;memory.TxManager供用例测试使用
package uow

import (
	"context"
)

// TxManager 工作单元接口
// fn内的所有仓储操作在同一事务中执行;fn返回error时整体回滚
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
