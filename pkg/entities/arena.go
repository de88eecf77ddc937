package entities

import (
	"github.com/decker502/blobarena/pkg/config"
	"github.com/decker502/blobarena/pkg/ecs"
	"github.com/decker502/blobarena/pkg/physics"
)

// Arena 场景布置结果
type Arena struct {
	Player    ecs.EntityID
	Creatures []ecs.EntityID
	Platforms []ecs.EntityID
}

// creatureSpacing 怪物阵列中相邻怪物中心距离与怪物尺寸之比
const creatureSpacing = 1.2

// BuildArena 按配置布置场景：平台、玩家和 N×N 怪物阵列
//
// 配置中的坐标和尺寸为像素，这里统一换算为世界单位。
// 怪物阵列以原点为中心，每行向右错开 0.2 个怪物宽度。
//
// 返回:
//   - *Arena: 创建的实体
//   - error: 任一实体创建失败时返回错误（已创建的实体保留）
func BuildArena(em *ecs.EntityManager, oracle physics.Oracle, cfg *config.SandboxConfig) (*Arena, error) {
	arena := &Arena{}

	for _, block := range cfg.Arena.Platforms {
		id, err := NewPlatform(em, oracle,
			physics.Vector{X: cfg.ToMeters(block.X), Y: cfg.ToMeters(block.Y)},
			cfg.ToMeters(block.Width), cfg.ToMeters(block.Height),
			cfg.Arena.PlatformFriction)
		if err != nil {
			return arena, err
		}
		arena.Platforms = append(arena.Platforms, id)
	}

	player, err := NewPlayer(em, oracle, cfg, physics.Vector{
		X: cfg.ToMeters(cfg.Arena.PlayerSpawn.X),
		Y: cfg.ToMeters(cfg.Arena.PlayerSpawn.Y),
	})
	if err != nil {
		return arena, err
	}
	arena.Player = player

	n := cfg.Arena.CreatureGrid
	size := cfg.Arena.CreatureSize
	step := size * creatureSpacing
	half := float64(n-1) / 2
	for gy := 0; gy < n; gy++ {
		for gx := 0; gx < n; gx++ {
			px := (float64(gx)-half)*step + float64(gy)*0.2*size
			py := (float64(gy) - half) * step
			index := gx + gy*n
			id, err := NewCreature(em, oracle, cfg,
				physics.Vector{X: cfg.ToMeters(px), Y: cfg.ToMeters(py)},
				CreatureTint(index, n*n))
			if err != nil {
				return arena, err
			}
			arena.Creatures = append(arena.Creatures, id)
		}
	}

	return arena, nil
}
