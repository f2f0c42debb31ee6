package replenish

import (
	"github.com/shopspring/decimal"
)

// Suggest 计算建议补货量(纯函数)
// 设计说明:
// 1. 入参全部由调用方取好(当前库存、日均消耗),函数本身不读存储,
//    便于单独测试每种方法的边界
// 2. 结果为0或负数表示无需补货,调用方据此决定是否持久化建议
//
// 各方法的计算规则:
//   - FIXED:   固定返回fixedQty
//   - MIN_MAX: 库存低于minQty时补到maxQty(maxQty-currentStock,下限0),否则0
//   - EOQ:     返回外部预计算的eoqQty
//   - DOS:     目标量=日均消耗×供应天数;返回ceil(目标量-当前库存),下限0
func Suggest(policy *Policy, currentStock, avgDailyConsumption decimal.Decimal) decimal.Decimal {
	switch policy.Method {
	case MethodFixed:
		return policy.FixedQty

	case MethodMinMax:
		if currentStock.LessThan(policy.MinQty) {
			qty := policy.MaxQty.Sub(currentStock)
			if qty.IsNegative() {
				return decimal.Zero
			}
			return qty
		}
		return decimal.Zero

	case MethodEOQ:
		return policy.EOQQty

	case MethodDOS:
		target := avgDailyConsumption.Mul(decimal.NewFromInt(int64(policy.DaysOfSupply)))
		qty := target.Sub(currentStock).Ceil()
		if qty.IsNegative() {
			return decimal.Zero
		}
		return qty

	default:
		return decimal.Zero
	}
}
