package physics

// Group 16 位碰撞分组位
type Group uint16

// 每一类实体占用一个互不相交的单比特分组
const (
	GroupWorld    Group = 1 << 0
	GroupPlayer   Group = 1 << 1
	GroupCreature Group = 1 << 2
	GroupAttack   Group = 1 << 3

	GroupNone Group = 0
	GroupAll  Group = 0xFFFF
)

// CollisionGroups 碰撞体的分组配置
//
// Memberships 是“我属于哪些组”，Filter 是“我愿意和哪些组交互”。
// 两个碰撞体只有在双方的 Memberships 都命中对方 Filter 时才会产生接触或重叠事件。
type CollisionGroups struct {
	Memberships Group
	Filter      Group
}

// InteractsWith 判断两组配置是否会相互报告事件
func (g CollisionGroups) InteractsWith(other CollisionGroups) bool {
	return g.Memberships&other.Filter != 0 && other.Memberships&g.Filter != 0
}

// GroupsFor 返回某一类实体的默认分组配置
//
// 参数:
//   - group: 实体所属的单比特分组
//
// 返回:
//   - CollisionGroups: 该类实体碰撞体应使用的配置；未知分组返回零值（不与任何东西交互）
func GroupsFor(group Group) CollisionGroups {
	switch group {
	case GroupWorld:
		return CollisionGroups{Memberships: GroupWorld, Filter: GroupAll}
	case GroupPlayer:
		// 玩家不与攻击判定框交互，避免打到自己
		return CollisionGroups{Memberships: GroupPlayer, Filter: GroupWorld | GroupCreature}
	case GroupCreature:
		return CollisionGroups{Memberships: GroupCreature, Filter: GroupWorld | GroupPlayer | GroupCreature | GroupAttack}
	}
	return CollisionGroups{}
}

// AttackGroups 返回由 owner 分组发出的攻击判定框的分组配置
//
// 过滤掩码排除发起者所在分组、攻击分组本身以及地形，只保留可被击中的目标。
func AttackGroups(owner Group) CollisionGroups {
	return CollisionGroups{
		Memberships: GroupAttack,
		Filter:      GroupAll &^ owner &^ GroupAttack &^ GroupWorld,
	}
}
