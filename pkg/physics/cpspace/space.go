// Package cpspace 基于 Chipmunk2D（github.com/jakecoffman/cp）实现 physics.Oracle
//
// 刚体和碰撞体保存在带代数的稠密表里，对外只暴露句柄。
// 所有被跟踪的形状共享同一个碰撞类型，由一个碰撞处理器统一把
// “开始接触”回调翻译成原始事件队列，传感器形状的回调进入重叠队列。
package cpspace

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/decker502/blobarena/pkg/physics"
)

// trackedCollisionType 所有由本适配器创建的形状都使用该碰撞类型
const trackedCollisionType cp.CollisionType = 1

type bodySlot struct {
	generation uint32
	body       *cp.Body
	kind       physics.BodyKind
	fixedRot   bool
	shapes     []uint32
}

type shapeSlot struct {
	generation uint32
	shape      *cp.Shape
	body       uint32
	sensor     bool
}

// Space Chipmunk 空间的句柄化封装
type Space struct {
	space  *cp.Space
	logger *zap.Logger

	bodies     []bodySlot
	shapes     []shapeSlot
	freeBodies []uint32
	freeShapes []uint32

	contactEvents []physics.ColliderPair
	overlapEvents []physics.ColliderPair

	// stepping 为 true 时处于 Step 内部，拒绝一切修改
	stepping bool
}

var _ physics.Oracle = (*Space)(nil)

// New 创建物理空间
//
// 参数:
//   - gravity: 重力加速度（世界单位，Y 轴向上）
//   - iterations: 求解器迭代次数，<= 0 时使用 Chipmunk 默认值
//   - logger: 日志记录器，为 nil 时不输出
//
// 返回:
//   - *Space: 已注册碰撞处理器的空间
func New(gravity physics.Vector, iterations int, logger *zap.Logger) *Space {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Space{
		space:  cp.NewSpace(),
		logger: logger,
	}
	s.space.SetGravity(toCP(gravity))
	if iterations > 0 {
		s.space.Iterations = uint(iterations)
	}
	handler := s.space.NewCollisionHandler(trackedCollisionType, trackedCollisionType)
	handler.BeginFunc = s.onBegin
	return s
}

// onBegin 在一对形状首次接触时由 Chipmunk 回调（处于 Step 内部）
func (s *Space) onBegin(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
	a, b := arb.Shapes()
	ha, okA := a.UserData.(physics.ColliderHandle)
	hb, okB := b.UserData.(physics.ColliderHandle)
	if !okA || !okB {
		return true
	}
	pair := physics.ColliderPair{A: ha, B: hb}
	if s.isSensor(ha) || s.isSensor(hb) {
		s.overlapEvents = append(s.overlapEvents, pair)
	} else {
		s.contactEvents = append(s.contactEvents, pair)
	}
	return true
}

func (s *Space) isSensor(h physics.ColliderHandle) bool {
	slot, err := s.shapeSlot(h)
	return err == nil && slot.sensor
}

func (s *Space) bodySlot(h physics.BodyHandle) (*bodySlot, error) {
	if h.IsZero() || int(h.Index) >= len(s.bodies) {
		return nil, physics.ErrStaleBody
	}
	slot := &s.bodies[h.Index]
	if slot.body == nil || slot.generation != h.Generation {
		return nil, physics.ErrStaleBody
	}
	return slot, nil
}

func (s *Space) shapeSlot(h physics.ColliderHandle) (*shapeSlot, error) {
	if h.IsZero() || int(h.Index) >= len(s.shapes) {
		return nil, physics.ErrStaleCollider
	}
	slot := &s.shapes[h.Index]
	if slot.shape == nil || slot.generation != h.Generation {
		return nil, physics.ErrStaleCollider
	}
	return slot, nil
}

// mutable 返回可修改的刚体；步进过程中返回 ErrSpaceLocked
func (s *Space) mutable(h physics.BodyHandle) (*cp.Body, error) {
	if s.stepping {
		return nil, physics.ErrSpaceLocked
	}
	slot, err := s.bodySlot(h)
	if err != nil {
		return nil, err
	}
	return slot.body, nil
}

// Step 推进一个时间步，期间触发的开始接触/重叠回调进入原始事件队列
//
// 新加入的运动学刚体上的传感器要到加入后的第二步才报告首次重叠，
// 动态刚体上的传感器在第一步就会报告。攻击判定框因此晚一帧结算。
func (s *Space) Step(dt float64) {
	s.stepping = true
	defer func() { s.stepping = false }()
	s.space.Step(dt)
}

func (s *Space) Position(h physics.BodyHandle) (physics.Vector, error) {
	slot, err := s.bodySlot(h)
	if err != nil {
		return physics.Vector{}, err
	}
	return fromCP(slot.body.Position()), nil
}

func (s *Space) Velocity(h physics.BodyHandle) (physics.Vector, error) {
	slot, err := s.bodySlot(h)
	if err != nil {
		return physics.Vector{}, err
	}
	return fromCP(slot.body.Velocity()), nil
}

func (s *Space) AngularVelocity(h physics.BodyHandle) (float64, error) {
	slot, err := s.bodySlot(h)
	if err != nil {
		return 0, err
	}
	return slot.body.AngularVelocity(), nil
}

func (s *Space) Mass(h physics.BodyHandle) (float64, error) {
	slot, err := s.bodySlot(h)
	if err != nil {
		return 0, err
	}
	return slot.body.Mass(), nil
}

// ApplyForce 在质心施加持续力（Chipmunk 每步结束后清零）
func (s *Space) ApplyForce(h physics.BodyHandle, force physics.Vector) error {
	body, err := s.mutable(h)
	if err != nil {
		return err
	}
	body.ApplyForceAtWorldPoint(toCP(force), body.Position())
	body.Activate()
	return nil
}

// ApplyImpulse 在质心施加瞬时冲量，立即改变速度
func (s *Space) ApplyImpulse(h physics.BodyHandle, impulse physics.Vector) error {
	body, err := s.mutable(h)
	if err != nil {
		return err
	}
	body.ApplyImpulseAtWorldPoint(toCP(impulse), body.Position())
	body.Activate()
	return nil
}

func (s *Space) SetVelocity(h physics.BodyHandle, v physics.Vector) error {
	body, err := s.mutable(h)
	if err != nil {
		return err
	}
	body.SetVelocity(v.X, v.Y)
	body.Activate()
	return nil
}

func (s *Space) SetAngularVelocity(h physics.BodyHandle, w float64) error {
	body, err := s.mutable(h)
	if err != nil {
		return err
	}
	body.SetAngularVelocity(w)
	body.Activate()
	return nil
}

func (s *Space) DrainContactEvents() []physics.ColliderPair {
	out := s.contactEvents
	s.contactEvents = nil
	return out
}

func (s *Space) DrainIntersectionEvents() []physics.ColliderPair {
	out := s.overlapEvents
	s.overlapEvents = nil
	return out
}

// ContactsWith 遍历碰撞体所属刚体的当前仲裁器，收集与该碰撞体实体接触的其他碰撞体
func (s *Space) ContactsWith(h physics.ColliderHandle) ([]physics.ColliderHandle, error) {
	slot, err := s.shapeSlot(h)
	if err != nil {
		return nil, err
	}
	if slot.sensor {
		return nil, nil
	}
	var out []physics.ColliderHandle
	s.bodies[slot.body].body.EachArbiter(func(arb *cp.Arbiter) {
		a, b := arb.Shapes()
		var other *cp.Shape
		switch slot.shape {
		case a:
			other = b
		case b:
			other = a
		default:
			return
		}
		oh, ok := other.UserData.(physics.ColliderHandle)
		if !ok || s.isSensor(oh) {
			return
		}
		out = append(out, oh)
	})
	return out, nil
}

func (s *Space) AABB(h physics.ColliderHandle) (physics.AABB, error) {
	slot, err := s.shapeSlot(h)
	if err != nil {
		return physics.AABB{}, err
	}
	bb := slot.shape.BB()
	return physics.AABB{
		Min: physics.Vector{X: bb.L, Y: bb.B},
		Max: physics.Vector{X: bb.R, Y: bb.T},
	}, nil
}

func (s *Space) HasCollider(h physics.ColliderHandle) bool {
	_, err := s.shapeSlot(h)
	return err == nil
}

// AddBody 创建刚体并加入空间
func (s *Space) AddBody(def physics.BodyDef) (physics.BodyHandle, error) {
	if s.stepping {
		return physics.BodyHandle{}, physics.ErrSpaceLocked
	}
	var body *cp.Body
	switch def.Kind {
	case physics.BodyDynamic:
		if def.Mass <= 0 {
			return physics.BodyHandle{}, fmt.Errorf("dynamic body mass must be > 0, got %v", def.Mass)
		}
		// 转动惯量在添加第一个碰撞体时按形状计算
		body = cp.NewBody(def.Mass, math.Inf(1))
	case physics.BodyStatic:
		body = cp.NewStaticBody()
	case physics.BodyKinematic:
		body = cp.NewKinematicBody()
	default:
		return physics.BodyHandle{}, fmt.Errorf("unknown body kind %d", def.Kind)
	}
	body.SetPosition(toCP(def.Position))
	if def.Kind != physics.BodyStatic {
		body.SetVelocity(def.Velocity.X, def.Velocity.Y)
	}
	s.space.AddBody(body)

	slot := bodySlot{body: body, kind: def.Kind, fixedRot: def.FixedRotation}
	var index uint32
	if n := len(s.freeBodies); n > 0 {
		index = s.freeBodies[n-1]
		s.freeBodies = s.freeBodies[:n-1]
		slot.generation = s.bodies[index].generation + 1
		s.bodies[index] = slot
	} else {
		index = uint32(len(s.bodies))
		slot.generation = 1
		s.bodies = append(s.bodies, slot)
	}
	h := physics.BodyHandle{Index: index, Generation: slot.generation}
	body.UserData = h
	return h, nil
}

// AddCollider 为刚体添加一个矩形碰撞体
// 挂在运动学刚体上的传感器在加入后的第二步才产生重叠事件（见 Step）
func (s *Space) AddCollider(bh physics.BodyHandle, def physics.ColliderDef) (physics.ColliderHandle, error) {
	if s.stepping {
		return physics.ColliderHandle{}, physics.ErrSpaceLocked
	}
	bslot, err := s.bodySlot(bh)
	if err != nil {
		return physics.ColliderHandle{}, err
	}
	if def.Width <= 0 || def.Height <= 0 {
		return physics.ColliderHandle{}, fmt.Errorf("%w: %vx%v", physics.ErrInvalidShape, def.Width, def.Height)
	}

	if bslot.kind == physics.BodyDynamic && !bslot.fixedRot && len(bslot.shapes) == 0 {
		bslot.body.SetMoment(cp.MomentForBox(bslot.body.Mass(), def.Width, def.Height))
	}

	shape := cp.NewBox(bslot.body, def.Width, def.Height, 0)
	shape.SetFriction(def.Friction)
	shape.SetSensor(def.Sensor)
	shape.SetFilter(cp.NewShapeFilter(0, uint(def.Groups.Memberships), uint(def.Groups.Filter)))
	shape.SetCollisionType(trackedCollisionType)

	slot := shapeSlot{shape: shape, body: bh.Index, sensor: def.Sensor}
	var index uint32
	if n := len(s.freeShapes); n > 0 {
		index = s.freeShapes[n-1]
		s.freeShapes = s.freeShapes[:n-1]
		slot.generation = s.shapes[index].generation + 1
		s.shapes[index] = slot
	} else {
		index = uint32(len(s.shapes))
		slot.generation = 1
		s.shapes = append(s.shapes, slot)
	}
	h := physics.ColliderHandle{Index: index, Generation: slot.generation}
	shape.UserData = h
	s.space.AddShape(shape)
	bslot.shapes = append(bslot.shapes, index)
	return h, nil
}

// RemoveBody 移除刚体及其所有形状；尚未取出的原始事件仍可能引用这些句柄，
// 它们会在解析阶段因句柄失效而被丢弃
func (s *Space) RemoveBody(h physics.BodyHandle) error {
	if s.stepping {
		return physics.ErrSpaceLocked
	}
	bslot, err := s.bodySlot(h)
	if err != nil {
		return err
	}
	for _, si := range bslot.shapes {
		sslot := &s.shapes[si]
		s.space.RemoveShape(sslot.shape)
		sslot.shape.UserData = nil
		sslot.shape = nil
		s.freeShapes = append(s.freeShapes, si)
	}
	s.space.RemoveBody(bslot.body)
	bslot.body.UserData = nil
	bslot.body = nil
	bslot.shapes = nil
	s.freeBodies = append(s.freeBodies, h.Index)
	s.logger.Debug("body removed", zap.Uint32("index", h.Index), zap.Uint32("generation", h.Generation))
	return nil
}

func toCP(v physics.Vector) cp.Vector { return cp.Vector{X: v.X, Y: v.Y} }

func fromCP(v cp.Vector) physics.Vector { return physics.Vector{X: v.X, Y: v.Y} }
