package components

import "github.com/decker502/blobarena/pkg/ecs"

// ContactListComponent 本帧与该实体开始实体接触的其他实体
//
// 只有参与碰撞记账的实体才挂载此组件。列表由碰撞收集系统在每帧开始时写入，
// 保证对称（A 列出 B 则 B 列出 A），并在所有消费者读取后清空。
type ContactListComponent struct {
	Entities []ecs.EntityID
}

// IntersectionListComponent 本帧与该实体开始重叠（传感器）的其他实体
// 语义同 ContactListComponent
type IntersectionListComponent struct {
	Entities []ecs.EntityID
}
