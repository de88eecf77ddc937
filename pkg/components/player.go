package components

// PlayerComponent 玩家角色的朝向与攻击冷却状态
type PlayerComponent struct {
	// Facing 朝向：+1 向右，-1 向左；决定攻击生成位置和击退方向
	Facing int
	// NextFireAt 下一次允许攻击的时刻（沙盒时钟，秒）
	NextFireAt float64
}
