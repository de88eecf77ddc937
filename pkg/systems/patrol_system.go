package systems

import (
	"math"

	"go.uber.org/zap"

	"github.com/decker502/blobarena/pkg/components"
	"github.com/decker502/blobarena/pkg/config"
	"github.com/decker502/blobarena/pkg/ecs"
	"github.com/decker502/blobarena/pkg/physics"
)

// PatrolSystem 巡逻AI系统
//
// 只在怪物稳定地站在唯一一个平台上时行动：
//   - 向右时包围盒右缘到达平台右缘（向左时左缘到达左缘），或前方被平台挡住，
//     或停滞时前方被其他怪物挡住：掉头，并施加水平分量与新朝向一致、竖直分量向上的冲量
//   - 不在边缘且水平速度停滞：按当前朝向重新起跳（可配置）
//
// 站在零个或多个平台上、处于空中、引用失效时都不行动。
type PatrolSystem struct {
	entityManager *ecs.EntityManager
	oracle        physics.Oracle
	index         *ColliderIndex
	config        config.PatrolConfig
	logger        *zap.Logger
}

// NewPatrolSystem 创建巡逻AI系统
//
// 参数:
//   - index: 碰撞收集系统维护的碰撞体索引，用于把接触的碰撞体解析为实体
func NewPatrolSystem(em *ecs.EntityManager, oracle physics.Oracle, index *ColliderIndex, cfg config.PatrolConfig, logger *zap.Logger) *PatrolSystem {
	return &PatrolSystem{
		entityManager: em,
		oracle:        oracle,
		index:         index,
		config:        cfg,
		logger:        logger.Named("patrol"),
	}
}

// touchContact 一个与怪物接触的平台或怪物
type touchContact struct {
	entity ecs.EntityID
	class  components.EntityClass
	box    physics.AABB
}

// Update 对所有巡逻怪物执行一次决策
func (s *PatrolSystem) Update(deltaTime float64) {
	creatures := ecs.GetEntitiesWith3[*components.PatrolComponent, *components.RigidBodyComponent, *components.ColliderComponent](s.entityManager)

	for _, id := range creatures {
		patrol, _ := ecs.GetComponent[*components.PatrolComponent](s.entityManager, id)
		body, _ := ecs.GetComponent[*components.RigidBodyComponent](s.entityManager, id)
		col, _ := ecs.GetComponent[*components.ColliderComponent](s.entityManager, id)

		if err := s.think(id, patrol, body.Handle, col.Handle); err != nil {
			s.logger.Debug("skipping creature", zap.Uint64("entity", uint64(id)), zap.Error(err))
		}
	}
}

func (s *PatrolSystem) think(id ecs.EntityID, patrol *components.PatrolComponent, bh physics.BodyHandle, ch physics.ColliderHandle) error {
	box, err := s.oracle.AABB(ch)
	if err != nil {
		return err
	}
	contacts, err := s.touching(ch)
	if err != nil {
		return err
	}

	// 支撑平台：顶面低于怪物中心的平台；其余接触的平台视为侧面障碍
	// 侧面相贴（竖直方向覆盖怪物中心）的其他怪物视为阻挡者
	center := box.Center()
	var supports, obstacles, blockers []touchContact
	for _, c := range contacts {
		switch {
		case c.class == components.ClassCreature:
			if c.box.Min.Y < center.Y && center.Y < c.box.Max.Y {
				blockers = append(blockers, c)
			}
		case c.box.Max.Y <= center.Y:
			supports = append(supports, c)
		default:
			obstacles = append(obstacles, c)
		}
	}
	if len(supports) != 1 {
		return nil
	}

	vel, err := s.oracle.Velocity(bh)
	if err != nil {
		return err
	}
	if math.Abs(vel.Y) > s.config.RestingSpeed {
		return nil
	}

	heading := 1
	if !patrol.HeadingRight() {
		heading = -1
	}
	support := supports[0].box

	reverse := false
	if heading > 0 {
		reverse = box.Max.X >= support.Max.X
	} else {
		reverse = box.Min.X <= support.Min.X
	}
	for _, o := range obstacles {
		if ahead(heading, center, o.box) {
			reverse = true
		}
	}
	// 被怪物挡住且停滞时掉头，否则会在原地反复起跳
	stalled := math.Abs(vel.X) <= s.config.StallSpeed
	for _, b := range blockers {
		if stalled && ahead(heading, center, b.box) {
			reverse = true
		}
	}

	switch {
	case reverse:
		heading = -heading
		patrol.Heading = heading
		s.logger.Debug("creature reversed",
			zap.Uint64("entity", uint64(id)),
			zap.Uint64("platform", uint64(supports[0].entity)),
			zap.Int("heading", heading))
	case s.config.RelaunchWhenStalled && stalled:
		s.logger.Debug("creature relaunched", zap.Uint64("entity", uint64(id)), zap.Int("heading", heading))
	default:
		return nil
	}

	return s.oracle.ApplyImpulse(bh, physics.Vector{
		X: float64(heading) * s.config.HopImpulse.X,
		Y: s.config.HopImpulse.Y,
	})
}

// ahead other 是否位于朝向 heading 的前方
func ahead(heading int, center physics.Vector, other physics.AABB) bool {
	if heading > 0 {
		return other.Min.X >= center.X
	}
	return other.Max.X <= center.X
}

// touching 当前与碰撞体接触的平台和怪物（按实体去重）
func (s *PatrolSystem) touching(ch physics.ColliderHandle) ([]touchContact, error) {
	touching, err := s.oracle.ContactsWith(ch)
	if err != nil {
		return nil, err
	}

	var out []touchContact
	for _, other := range touching {
		entity, ok := s.index.Entity(other)
		if !ok {
			continue
		}
		class, ok := ecs.GetComponent[*components.ClassComponent](s.entityManager, entity)
		if !ok || (class.Class != components.ClassPlatform && class.Class != components.ClassCreature) {
			continue
		}
		if containsContact(out, entity) {
			continue
		}
		box, err := s.oracle.AABB(other)
		if err != nil {
			continue
		}
		out = append(out, touchContact{entity: entity, class: class.Class, box: box})
	}
	return out, nil
}

func containsContact(list []touchContact, id ecs.EntityID) bool {
	for _, p := range list {
		if p.entity == id {
			return true
		}
	}
	return false
}
