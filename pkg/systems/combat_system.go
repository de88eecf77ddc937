package systems

import (
	"go.uber.org/zap"

	"github.com/decker502/blobarena/pkg/components"
	"github.com/decker502/blobarena/pkg/config"
	"github.com/decker502/blobarena/pkg/ecs"
	"github.com/decker502/blobarena/pkg/physics"
)

// CombatSystem 战斗结算系统
//
// 读取每个攻击判定框本帧的重叠列表，对列表中每个存活的怪物：
// 施加击退冲量（水平方向与攻击朝向一致，竖直方向恒为正）、扣减生命值、
// 按剩余生命比例更新不透明度。列表非空的判定框在结算后立即被消耗。
//
// 生命值扣到 0 以下的怪物不在这里删除，由 HealthSystem 在之后的清理阶段处理，
// 因此同一帧内它仍可能被其他判定框再次命中。
type CombatSystem struct {
	entityManager *ecs.EntityManager
	oracle        physics.Oracle
	config        config.CombatConfig
	logger        *zap.Logger
}

// NewCombatSystem 创建战斗结算系统
func NewCombatSystem(em *ecs.EntityManager, oracle physics.Oracle, cfg config.CombatConfig, logger *zap.Logger) *CombatSystem {
	return &CombatSystem{
		entityManager: em,
		oracle:        oracle,
		config:        cfg,
		logger:        logger.Named("combat"),
	}
}

// Update 结算本帧所有命中
func (s *CombatSystem) Update(deltaTime float64) {
	attacks := ecs.GetEntitiesWith2[*components.AttackComponent, *components.IntersectionListComponent](s.entityManager)

	for _, id := range attacks {
		if s.entityManager.IsMarkedForDestroy(id) {
			continue
		}
		attack, _ := ecs.GetComponent[*components.AttackComponent](s.entityManager, id)
		hits, _ := ecs.GetComponent[*components.IntersectionListComponent](s.entityManager, id)
		if len(hits.Entities) == 0 {
			continue
		}

		for _, target := range hits.Entities {
			s.strike(id, attack, target)
		}

		// 判定框在第一次结算后即被消耗
		s.entityManager.DestroyEntity(id)
	}
}

// strike 结算一次命中，目标不是存活的怪物时忽略
func (s *CombatSystem) strike(attackID ecs.EntityID, attack *components.AttackComponent, target ecs.EntityID) {
	if !s.entityManager.IsAlive(target) {
		return
	}
	class, ok := ecs.GetComponent[*components.ClassComponent](s.entityManager, target)
	if !ok || class.Class != components.ClassCreature {
		return
	}
	health, ok := ecs.GetComponent[*components.HealthComponent](s.entityManager, target)
	if !ok {
		return
	}
	body, ok := ecs.GetComponent[*components.RigidBodyComponent](s.entityManager, target)
	if !ok {
		return
	}

	facing := 1.0
	if attack.Facing < 0 {
		facing = -1.0
	}
	knockback := physics.Vector{X: facing * s.config.Knockback.X, Y: s.config.Knockback.Y}
	if err := s.oracle.ApplyImpulse(body.Handle, knockback); err != nil {
		s.logger.Debug("skipping stale target", zap.Uint64("entity", uint64(target)), zap.Error(err))
		return
	}

	health.CurrentHealth -= s.config.Damage
	if visual, ok := ecs.GetComponent[*components.VisualComponent](s.entityManager, target); ok {
		visual.Intensity = health.Ratio()
	}

	s.logger.Debug("creature hit",
		zap.Uint64("attack", uint64(attackID)),
		zap.Uint64("target", uint64(target)),
		zap.Int("health", health.CurrentHealth),
		zap.Int("maxHealth", health.MaxHealth))
}
