package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/decker502/blobarena/pkg/config"
	"github.com/decker502/blobarena/pkg/ecs"
	"github.com/decker502/blobarena/pkg/entities"
	"github.com/decker502/blobarena/pkg/input"
	"github.com/decker502/blobarena/pkg/physics"
	"github.com/decker502/blobarena/pkg/systems"
)

// Sandbox 单帧模拟内核
//
// 每次 Update 严格按顺序执行：
//  1. 推进时钟，物理步进
//  2. 收集碰撞事件
//  3. 移动、攻击触发、巡逻、战斗结算
//  4. 生命周期、生命值清理，删除标记的实体并移除刚体
//  5. 清空事件列表
//
// 所有系统在同一个 goroutine 中依次运行，不需要加锁。
type Sandbox struct {
	config        *config.SandboxConfig
	entityManager *ecs.EntityManager
	oracle        physics.Oracle
	input         input.Oracle
	logger        *zap.Logger
	clock         *systems.Clock

	harvest       *systems.CollisionHarvestSystem
	movement      *systems.MovementSystem
	attackTrigger *systems.AttackTriggerSystem
	patrol        *systems.PatrolSystem
	combat        *systems.CombatSystem
	lifetime      *systems.LifetimeSystem
	health        *systems.HealthSystem
	removal       *systems.RemovalSystem
	eventClear    *systems.EventClearSystem

	arena *entities.Arena
}

// NewSandbox 创建模拟内核（不含任何实体，调用 Setup 布置场景）
//
// 参数:
//   - cfg: 沙盒配置
//   - oracle: 物理求解器
//   - in: 输入来源
//   - logger: 日志器，各系统使用其命名子日志器
func NewSandbox(cfg *config.SandboxConfig, oracle physics.Oracle, in input.Oracle, logger *zap.Logger) *Sandbox {
	em := ecs.NewEntityManager()
	clock := &systems.Clock{}
	harvest := systems.NewCollisionHarvestSystem(em, oracle, logger)

	return &Sandbox{
		config:        cfg,
		entityManager: em,
		oracle:        oracle,
		input:         in,
		logger:        logger.Named("sandbox"),
		clock:         clock,
		harvest:       harvest,
		movement:      systems.NewMovementSystem(em, oracle, in, cfg.Movement, logger),
		attackTrigger: systems.NewAttackTriggerSystem(em, oracle, in, cfg, clock, logger),
		patrol:        systems.NewPatrolSystem(em, oracle, harvest.Index(), cfg.Patrol, logger),
		combat:        systems.NewCombatSystem(em, oracle, cfg.Combat, logger),
		lifetime:      systems.NewLifetimeSystem(em),
		health:        systems.NewHealthSystem(em, logger),
		removal:       systems.NewRemovalSystem(em, oracle, logger),
		eventClear:    systems.NewEventClearSystem(em, clock, logger),
	}
}

// Setup 按配置布置场景
func (s *Sandbox) Setup() error {
	arena, err := entities.BuildArena(s.entityManager, s.oracle, s.config)
	if err != nil {
		return fmt.Errorf("failed to build arena: %w", err)
	}
	s.arena = arena
	s.logger.Info("arena ready",
		zap.Int("platforms", len(arena.Platforms)),
		zap.Int("creatures", len(arena.Creatures)),
		zap.Uint64("player", uint64(arena.Player)))
	return nil
}

// Update 执行一帧
func (s *Sandbox) Update(deltaTime float64) {
	s.clock.Advance(deltaTime)
	s.oracle.Step(deltaTime)

	s.harvest.Update(deltaTime)

	s.movement.Update(deltaTime)
	s.attackTrigger.Update(deltaTime)
	s.patrol.Update(deltaTime)
	s.combat.Update(deltaTime)

	s.lifetime.Update(deltaTime)
	s.health.Update(deltaTime)
	if removed := s.removal.Update(deltaTime); removed > 0 {
		s.logger.Debug("entities removed", zap.Int("count", removed), zap.Uint64("frame", s.clock.Frame))
	}

	s.eventClear.Update(deltaTime)

	if ender, ok := s.input.(input.FrameEnder); ok {
		ender.EndFrame()
	}
}

// EntityManager 返回实体管理器（供渲染和调试读取）
func (s *Sandbox) EntityManager() *ecs.EntityManager {
	return s.entityManager
}

// Oracle 返回物理求解器
func (s *Sandbox) Oracle() physics.Oracle {
	return s.oracle
}

// Clock 返回沙盒时钟
func (s *Sandbox) Clock() *systems.Clock {
	return s.clock
}

// Arena 返回 Setup 创建的场景实体，未布置时为 nil
func (s *Sandbox) Arena() *entities.Arena {
	return s.arena
}

// Config 返回沙盒配置
func (s *Sandbox) Config() *config.SandboxConfig {
	return s.config
}
