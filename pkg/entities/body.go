package entities

import (
	"fmt"

	"github.com/decker502/blobarena/pkg/components"
	"github.com/decker502/blobarena/pkg/ecs"
	"github.com/decker502/blobarena/pkg/physics"
)

// spawnBody 在求解器中创建刚体和碰撞体，成功后才创建实体并挂载物理与类别组件
// 碰撞体创建失败时回收已创建的刚体，不会留下半成品实体
func spawnBody(em *ecs.EntityManager, oracle physics.Oracle, class components.EntityClass, body physics.BodyDef, collider physics.ColliderDef) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if oracle == nil {
		return 0, fmt.Errorf("physics oracle cannot be nil")
	}

	bodyHandle, err := oracle.AddBody(body)
	if err != nil {
		return 0, fmt.Errorf("failed to add %s body: %w", class, err)
	}
	colliderHandle, err := oracle.AddCollider(bodyHandle, collider)
	if err != nil {
		_ = oracle.RemoveBody(bodyHandle)
		return 0, fmt.Errorf("failed to add %s collider: %w", class, err)
	}

	id := em.CreateEntity()
	em.AddComponent(id, &components.ClassComponent{Class: class})
	em.AddComponent(id, &components.RigidBodyComponent{Handle: bodyHandle})
	em.AddComponent(id, &components.ColliderComponent{
		Handle: colliderHandle,
		Groups: collider.Groups,
		Sensor: collider.Sensor,
	})
	return id, nil
}
