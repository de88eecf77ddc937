package entities

import (
	"fmt"
	"image/color"

	"github.com/decker502/blobarena/pkg/components"
	"github.com/decker502/blobarena/pkg/config"
	"github.com/decker502/blobarena/pkg/ecs"
	"github.com/decker502/blobarena/pkg/physics"
)

// AttackColor 攻击判定框的调试绘制颜色
var AttackColor = color.NRGBA{R: 255, G: 80, B: 40, A: 160}

// NewAttack 创建攻击判定框
//
// 判定框是只检测重叠的运动学刚体，生成在发起者前方 combat.spawnOffset 处，
// 以 combat.speed 沿朝向飞行；碰撞过滤排除发起者所在分组，因此不会命中自己。
//
// 参数:
//   - em: 实体管理器
//   - oracle: 物理求解器
//   - cfg: 沙盒配置
//   - owner: 发起攻击的实体（需要 ClassComponent）
//   - origin: 发起者当前位置（世界单位）
//   - facing: 发起者朝向，+1 或 -1
//
// 返回:
//   - ecs.EntityID: 判定框实体ID
//   - error: 发起者缺少类别或求解器拒绝时返回错误
func NewAttack(em *ecs.EntityManager, oracle physics.Oracle, cfg *config.SandboxConfig, owner ecs.EntityID, origin physics.Vector, facing int) (ecs.EntityID, error) {
	class, ok := ecs.GetComponent[*components.ClassComponent](em, owner)
	if !ok {
		return 0, fmt.Errorf("attack owner %d has no class", owner)
	}
	if facing >= 0 {
		facing = 1
	} else {
		facing = -1
	}
	dir := float64(facing)

	id, err := spawnBody(em, oracle, components.ClassAttack,
		physics.BodyDef{
			Kind:     physics.BodyKinematic,
			Position: origin.Add(physics.Vector{X: dir * cfg.Combat.SpawnOffset}),
			Velocity: physics.Vector{X: dir * cfg.Combat.Speed},
		},
		physics.ColliderDef{
			Width:  cfg.Combat.Width,
			Height: cfg.Combat.Height,
			Sensor: true,
			Groups: physics.AttackGroups(class.Class.Group()),
		})
	if err != nil {
		return 0, err
	}

	em.AddComponent(id, &components.AttackComponent{Owner: owner, Facing: facing})
	em.AddComponent(id, &components.LifetimeComponent{MaxLifetime: cfg.Combat.Lifetime})
	em.AddComponent(id, &components.IntersectionListComponent{})
	em.AddComponent(id, &components.VisualComponent{Color: AttackColor, Intensity: 1})
	return id, nil
}
