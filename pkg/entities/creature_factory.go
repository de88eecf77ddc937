package entities

import (
	"image/color"

	"github.com/decker502/blobarena/pkg/components"
	"github.com/decker502/blobarena/pkg/config"
	"github.com/decker502/blobarena/pkg/ecs"
	"github.com/decker502/blobarena/pkg/physics"
)

// CreatureTint 按编号计算怪物颜色：c = index / count，颜色为 rgb(c, 1-c, 1)
func CreatureTint(index, count int) color.NRGBA {
	c := 0.0
	if count > 0 {
		c = float64(index) / float64(count)
	}
	return color.NRGBA{
		R: uint8(c * 255),
		G: uint8((1 - c) * 255),
		B: 255,
		A: 255,
	}
}

// NewCreature 创建巡逻怪物
// 怪物初始向右巡逻，生命值为 arena.creatureHealth，不透明度随生命值下降
//
// 参数:
//   - em: 实体管理器
//   - oracle: 物理求解器
//   - cfg: 沙盒配置
//   - pos: 出生位置（世界单位）
//   - tint: 基础颜色
func NewCreature(em *ecs.EntityManager, oracle physics.Oracle, cfg *config.SandboxConfig, pos physics.Vector, tint color.NRGBA) (ecs.EntityID, error) {
	size := cfg.ToMeters(cfg.Arena.CreatureSize)
	id, err := spawnBody(em, oracle, components.ClassCreature,
		physics.BodyDef{
			Kind:          physics.BodyDynamic,
			Position:      pos,
			Mass:          cfg.Arena.CreatureMass,
			FixedRotation: true,
		},
		physics.ColliderDef{
			Width:    size,
			Height:   size,
			Friction: cfg.Arena.CreatureFriction,
			Groups:   physics.GroupsFor(physics.GroupCreature),
		})
	if err != nil {
		return 0, err
	}

	em.AddComponent(id, &components.PatrolComponent{Heading: 1})
	em.AddComponent(id, &components.HealthComponent{
		CurrentHealth: cfg.Arena.CreatureHealth,
		MaxHealth:     cfg.Arena.CreatureHealth,
	})
	em.AddComponent(id, &components.ContactListComponent{})
	em.AddComponent(id, &components.IntersectionListComponent{})
	em.AddComponent(id, &components.VisualComponent{Color: tint, Intensity: 1})
	return id, nil
}
