package components

import "github.com/decker502/blobarena/pkg/physics"

// EntityClass 实体类别（封闭集合）
// 碰撞过滤、巡逻AI和战斗判定都归结为对类别的比较
type EntityClass int

const (
	ClassPlatform EntityClass = iota // 平台/地形
	ClassPlayer                      // 玩家角色
	ClassCreature                    // 巡逻怪物
	ClassAttack                      // 攻击判定框
)

// String 返回类别名称（用于日志）
func (c EntityClass) String() string {
	switch c {
	case ClassPlatform:
		return "platform"
	case ClassPlayer:
		return "player"
	case ClassCreature:
		return "creature"
	case ClassAttack:
		return "attack"
	}
	return "unknown"
}

// Group 类别对应的碰撞分组位
func (c EntityClass) Group() physics.Group {
	switch c {
	case ClassPlatform:
		return physics.GroupWorld
	case ClassPlayer:
		return physics.GroupPlayer
	case ClassCreature:
		return physics.GroupCreature
	case ClassAttack:
		return physics.GroupAttack
	}
	return physics.GroupNone
}

// ClassComponent 标记实体类别
type ClassComponent struct {
	Class EntityClass
}
