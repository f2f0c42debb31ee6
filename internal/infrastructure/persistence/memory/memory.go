// Package memory 提供内存仓储实现
//
// 设计说明:
// 1. 仅供应用层用例测试使用:不依赖MySQL即可验证台账/分配/拣选等编排逻辑
// 2. 所有实现持有互斥锁,接口语义与mysql包的实现保持一致
//    (LockByKey等"锁定"方法在内存实现中退化为查找)
// 3. 事务回滚用快照模拟:TxManager在fn执行前对登记的仓储拍深拷贝快照,
//    fn返回错误时逆序恢复,与mysql事务的all-or-nothing语义对齐
package memory

import (
	"context"
)

// Snapshotter 支持快照/恢复的仓储
type Snapshotter interface {
	Snapshot() (restore func())
}

// TxManager 内存版工作单元
// 登记的仓储在每次事务开始时拍快照,fn失败时整体恢复;
// 未登记仓储(只读的商品/仓库/策略目录)不参与回滚
type TxManager struct {
	stores []Snapshotter
}

// NewTxManager 创建内存事务管理器
func NewTxManager(stores ...Snapshotter) *TxManager {
	return &TxManager{stores: stores}
}

// Transaction 执行fn,失败时恢复全部登记仓储的快照
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	restores := make([]func(), len(m.stores))
	for i, s := range m.stores {
		restores[i] = s.Snapshot()
	}
	err := fn(ctx)
	if err != nil {
		for i := len(restores) - 1; i >= 0; i-- {
			restores[i]()
		}
	}
	return err
}
