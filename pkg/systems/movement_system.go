package systems

import (
	"math"

	"go.uber.org/zap"

	"github.com/decker502/blobarena/pkg/components"
	"github.com/decker502/blobarena/pkg/config"
	"github.com/decker502/blobarena/pkg/ecs"
	"github.com/decker502/blobarena/pkg/input"
	"github.com/decker502/blobarena/pkg/physics"
)

// MovementSystem 玩家移动控制系统
//
// 所有力和冲量都乘以 scale = 质量 × forceScale：
//   - 跳跃：先把竖直速度清零，再施加向上冲量，跳跃高度与之前的竖直速度无关
//   - 左右：持续施加水平力（不是冲量），同时更新朝向
//   - 旋转：按住时每帧调整角速度，松开后保持当前角速度
//   - 摩擦：施加与水平速度成正比的反向力，单步内不会使速度反向
type MovementSystem struct {
	entityManager *ecs.EntityManager
	oracle        physics.Oracle
	input         input.Oracle
	config        config.MovementConfig
	logger        *zap.Logger
}

// NewMovementSystem 创建玩家移动系统
func NewMovementSystem(em *ecs.EntityManager, oracle physics.Oracle, in input.Oracle, cfg config.MovementConfig, logger *zap.Logger) *MovementSystem {
	return &MovementSystem{
		entityManager: em,
		oracle:        oracle,
		input:         in,
		config:        cfg,
		logger:        logger.Named("movement"),
	}
}

// Update 根据输入驱动所有玩家刚体
func (s *MovementSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith2[*components.PlayerComponent, *components.RigidBodyComponent](s.entityManager)

	for _, id := range entities {
		player, _ := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id)
		body, _ := ecs.GetComponent[*components.RigidBodyComponent](s.entityManager, id)

		if err := s.drive(player, body.Handle, deltaTime); err != nil {
			s.logger.Debug("skipping player", zap.Uint64("entity", uint64(id)), zap.Error(err))
		}
	}
}

func (s *MovementSystem) drive(player *components.PlayerComponent, h physics.BodyHandle, deltaTime float64) error {
	mass, err := s.oracle.Mass(h)
	if err != nil {
		return err
	}
	vel, err := s.oracle.Velocity(h)
	if err != nil {
		return err
	}
	scale := mass * s.config.ForceScale

	// 1. 跳跃：清零竖直速度后施加冲量
	if s.input.JustPressed(input.ActionJump) {
		if err := s.oracle.SetVelocity(h, physics.Vector{X: vel.X}); err != nil {
			return err
		}
		if err := s.oracle.ApplyImpulse(h, physics.Vector{Y: s.config.JumpImpulse * scale}); err != nil {
			return err
		}
	}

	// 2. 左右：持续力，同时按住两个方向时力相互抵消且朝向不变
	left := s.input.Pressed(input.ActionLeft)
	right := s.input.Pressed(input.ActionRight)
	lateral := 0.0
	if left {
		lateral -= s.config.LateralForce * scale
	}
	if right {
		lateral += s.config.LateralForce * scale
	}
	if left != right {
		if left {
			player.Facing = -1
		} else {
			player.Facing = 1
		}
	}
	if lateral != 0 {
		if err := s.oracle.ApplyForce(h, physics.Vector{X: lateral}); err != nil {
			return err
		}
	}

	// 3. 旋转：逆时针为正
	ccw := s.input.Pressed(input.ActionRotateCCW)
	cw := s.input.Pressed(input.ActionRotateCW)
	if ccw != cw {
		w, err := s.oracle.AngularVelocity(h)
		if err != nil {
			return err
		}
		if ccw {
			w += s.config.RotateStep
		} else {
			w -= s.config.RotateStep
		}
		if err := s.oracle.SetAngularVelocity(h, w); err != nil {
			return err
		}
	}

	// 4. 摩擦：跳跃只改写竖直分量，水平速度沿用开头读取的 vel.X
	friction := frictionForce(vel.X, mass, scale*s.config.Friction, deltaTime)
	if friction != 0 {
		if err := s.oracle.ApplyForce(h, physics.Vector{X: friction}); err != nil {
			return err
		}
	}
	return nil
}

// frictionForce 计算与水平速度 vx 反向、大小为 |vx|×k 的摩擦力
// 力的大小不超过 m|vx|/dt，保证一个积分步内摩擦不会让速度改变符号
func frictionForce(vx, mass, k, deltaTime float64) float64 {
	force := -vx * k
	if deltaTime > 0 {
		limit := mass * math.Abs(vx) / deltaTime
		if math.Abs(force) > limit {
			force = math.Copysign(limit, force)
		}
	}
	return force
}
