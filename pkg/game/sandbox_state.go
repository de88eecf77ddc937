package game

import (
	"github.com/decker502/blobarena/pkg/components"
	"github.com/decker502/blobarena/pkg/ecs"
	"github.com/decker502/blobarena/pkg/physics"
)

// BodyState 一个带刚体实体的只读快照
type BodyState struct {
	Entity    ecs.EntityID
	Class     components.EntityClass
	Position  physics.Vector
	Bounds    physics.AABB
	Health    int
	MaxHealth int
	Visual    components.VisualComponent
}

// Bodies 返回所有刚体仍然有效的实体快照（按实体ID升序）
// 引用已失效的实体被跳过
func (s *Sandbox) Bodies() []BodyState {
	ids := ecs.GetEntitiesWith3[*components.ClassComponent, *components.RigidBodyComponent, *components.ColliderComponent](s.entityManager)
	out := make([]BodyState, 0, len(ids))

	for _, id := range ids {
		class, _ := ecs.GetComponent[*components.ClassComponent](s.entityManager, id)
		body, _ := ecs.GetComponent[*components.RigidBodyComponent](s.entityManager, id)
		col, _ := ecs.GetComponent[*components.ColliderComponent](s.entityManager, id)

		pos, err := s.oracle.Position(body.Handle)
		if err != nil {
			continue
		}
		bounds, err := s.oracle.AABB(col.Handle)
		if err != nil {
			continue
		}

		state := BodyState{Entity: id, Class: class.Class, Position: pos, Bounds: bounds}
		if health, ok := ecs.GetComponent[*components.HealthComponent](s.entityManager, id); ok {
			state.Health = health.CurrentHealth
			state.MaxHealth = health.MaxHealth
		}
		if visual, ok := ecs.GetComponent[*components.VisualComponent](s.entityManager, id); ok {
			state.Visual = *visual
		}
		out = append(out, state)
	}
	return out
}

// CountClass 统计某一类别的存活实体数量
func (s *Sandbox) CountClass(class components.EntityClass) int {
	n := 0
	for _, id := range ecs.GetEntitiesWith1[*components.ClassComponent](s.entityManager) {
		c, _ := ecs.GetComponent[*components.ClassComponent](s.entityManager, id)
		if c.Class == class {
			n++
		}
	}
	return n
}
