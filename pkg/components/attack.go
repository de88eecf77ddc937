package components

import "github.com/decker502/blobarena/pkg/ecs"

// AttackComponent 攻击判定框
// 由玩家攻击生成，第一次结算到命中后即被消耗
type AttackComponent struct {
	Owner  ecs.EntityID // 发起攻击的实体
	Facing int          // 生成时的朝向，决定击退的水平方向
}
