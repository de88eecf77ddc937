package components

import "github.com/decker502/blobarena/pkg/physics"

// RigidBodyComponent 实体对求解器中刚体的弱引用
// 刚体状态只存在于求解器里，句柄失效后所有访问都会返回错误
type RigidBodyComponent struct {
	Handle physics.BodyHandle
}

// ColliderComponent 实体对求解器中碰撞体的弱引用
type ColliderComponent struct {
	Handle physics.ColliderHandle
	Groups physics.CollisionGroups // 创建时使用的分组配置
	Sensor bool                    // 是否只检测重叠
}
