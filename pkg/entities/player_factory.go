package entities

import (
	"image/color"

	"github.com/decker502/blobarena/pkg/components"
	"github.com/decker502/blobarena/pkg/config"
	"github.com/decker502/blobarena/pkg/ecs"
	"github.com/decker502/blobarena/pkg/physics"
)

// PlayerColor 玩家的调试绘制颜色
var PlayerColor = color.NRGBA{R: 25, G: 230, B: 255, A: 255}

// NewPlayer 创建玩家角色
// 玩家是可旋转的动态方块，初始朝右，可以立即攻击
//
// 参数:
//   - em: 实体管理器
//   - oracle: 物理求解器
//   - cfg: 沙盒配置（使用 arena.playerSize / arena.playerMass）
//   - pos: 出生位置（世界单位）
func NewPlayer(em *ecs.EntityManager, oracle physics.Oracle, cfg *config.SandboxConfig, pos physics.Vector) (ecs.EntityID, error) {
	size := cfg.ToMeters(cfg.Arena.PlayerSize)
	id, err := spawnBody(em, oracle, components.ClassPlayer,
		physics.BodyDef{Kind: physics.BodyDynamic, Position: pos, Mass: cfg.Arena.PlayerMass},
		physics.ColliderDef{
			Width:    size,
			Height:   size,
			Friction: cfg.Arena.PlatformFriction,
			Groups:   physics.GroupsFor(physics.GroupPlayer),
		})
	if err != nil {
		return 0, err
	}

	em.AddComponent(id, &components.PlayerComponent{Facing: 1})
	em.AddComponent(id, &components.ContactListComponent{})
	em.AddComponent(id, &components.VisualComponent{Color: PlayerColor, Intensity: 1})
	return id, nil
}
