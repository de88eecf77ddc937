package systems

import (
	"go.uber.org/zap"

	"github.com/decker502/blobarena/pkg/components"
	"github.com/decker502/blobarena/pkg/config"
	"github.com/decker502/blobarena/pkg/ecs"
	"github.com/decker502/blobarena/pkg/entities"
	"github.com/decker502/blobarena/pkg/input"
	"github.com/decker502/blobarena/pkg/physics"
)

// AttackTriggerSystem 攻击触发系统
// 攻击键刚按下且冷却结束时，在玩家前方生成攻击判定框；
// 每次成功生成都会重置冷却，无论之后是否命中。
type AttackTriggerSystem struct {
	entityManager *ecs.EntityManager
	oracle        physics.Oracle
	input         input.Oracle
	config        *config.SandboxConfig
	clock         *Clock
	logger        *zap.Logger
}

// NewAttackTriggerSystem 创建攻击触发系统
func NewAttackTriggerSystem(em *ecs.EntityManager, oracle physics.Oracle, in input.Oracle, cfg *config.SandboxConfig, clock *Clock, logger *zap.Logger) *AttackTriggerSystem {
	return &AttackTriggerSystem{
		entityManager: em,
		oracle:        oracle,
		input:         in,
		config:        cfg,
		clock:         clock,
		logger:        logger.Named("attack"),
	}
}

// Update 处理攻击输入
func (s *AttackTriggerSystem) Update(deltaTime float64) {
	if !s.input.JustPressed(input.ActionFire) {
		return
	}

	players := ecs.GetEntitiesWith2[*components.PlayerComponent, *components.RigidBodyComponent](s.entityManager)
	for _, id := range players {
		player, _ := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id)
		body, _ := ecs.GetComponent[*components.RigidBodyComponent](s.entityManager, id)

		if s.clock.Now < player.NextFireAt {
			s.logger.Debug("attack on cooldown",
				zap.Uint64("entity", uint64(id)),
				zap.Float64("remaining", player.NextFireAt-s.clock.Now))
			continue
		}

		pos, err := s.oracle.Position(body.Handle)
		if err != nil {
			s.logger.Debug("skipping player", zap.Uint64("entity", uint64(id)), zap.Error(err))
			continue
		}

		attack, err := entities.NewAttack(s.entityManager, s.oracle, s.config, id, pos, player.Facing)
		if err != nil {
			s.logger.Warn("failed to spawn attack", zap.Uint64("entity", uint64(id)), zap.Error(err))
			continue
		}
		player.NextFireAt = s.clock.Now + s.config.Combat.Cooldown

		s.logger.Debug("attack spawned",
			zap.Uint64("owner", uint64(id)),
			zap.Uint64("attack", uint64(attack)),
			zap.Int("facing", player.Facing))
	}
}
