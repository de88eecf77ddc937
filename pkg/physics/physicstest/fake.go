// Package physicstest 提供测试用的 physics.Oracle 实现
//
// Fake 使用最简单的显式积分，不做碰撞检测：
// 接触关系、包围盒和原始事件都由测试代码直接指定。
package physicstest

import (
	"fmt"

	"github.com/decker502/blobarena/pkg/physics"
)

// ImpulseRecord 记录一次冲量调用
type ImpulseRecord struct {
	Body    physics.BodyHandle
	Impulse physics.Vector
}

// ForceRecord 记录一次力调用
type ForceRecord struct {
	Body  physics.BodyHandle
	Force physics.Vector
}

type fakeBody struct {
	generation uint32
	alive      bool
	def        physics.BodyDef
	position   physics.Vector
	velocity   physics.Vector
	angular    float64
	force      physics.Vector
	colliders  []uint32
}

type fakeCollider struct {
	generation uint32
	alive      bool
	body       uint32
	def        physics.ColliderDef
	aabb       *physics.AABB
}

// Fake 可脚本化的物理求解器
type Fake struct {
	// Gravity 每步施加在动态刚体上的加速度
	Gravity physics.Vector

	// Impulses / Forces 按调用顺序记录的冲量和力
	Impulses []ImpulseRecord
	Forces   []ForceRecord

	// Steps 已执行的物理步数
	Steps int

	bodies        []fakeBody
	colliders     []fakeCollider
	freeBodies    []uint32
	freeColliders []uint32

	contacts      map[physics.ColliderHandle][]physics.ColliderHandle
	contactEvents []physics.ColliderPair
	overlapEvents []physics.ColliderPair
}

var _ physics.Oracle = (*Fake)(nil)

// NewFake 创建一个空的 Fake 求解器
func NewFake() *Fake {
	return &Fake{
		contacts: make(map[physics.ColliderHandle][]physics.ColliderHandle),
	}
}

func (f *Fake) body(h physics.BodyHandle) (*fakeBody, error) {
	if h.IsZero() || int(h.Index) >= len(f.bodies) {
		return nil, physics.ErrStaleBody
	}
	b := &f.bodies[h.Index]
	if !b.alive || b.generation != h.Generation {
		return nil, physics.ErrStaleBody
	}
	return b, nil
}

func (f *Fake) collider(h physics.ColliderHandle) (*fakeCollider, error) {
	if h.IsZero() || int(h.Index) >= len(f.colliders) {
		return nil, physics.ErrStaleCollider
	}
	c := &f.colliders[h.Index]
	if !c.alive || c.generation != h.Generation {
		return nil, physics.ErrStaleCollider
	}
	return c, nil
}

// Step 显式欧拉积分：先累计力和重力到速度，再用新速度推进位置
func (f *Fake) Step(dt float64) {
	f.Steps++
	for i := range f.bodies {
		b := &f.bodies[i]
		if !b.alive {
			continue
		}
		switch b.def.Kind {
		case physics.BodyDynamic:
			accel := f.Gravity.Add(b.force.Scale(1 / b.def.Mass))
			b.velocity = b.velocity.Add(accel.Scale(dt))
			b.position = b.position.Add(b.velocity.Scale(dt))
		case physics.BodyKinematic:
			b.position = b.position.Add(b.velocity.Scale(dt))
		}
		b.force = physics.Vector{}
	}
}

func (f *Fake) Position(h physics.BodyHandle) (physics.Vector, error) {
	b, err := f.body(h)
	if err != nil {
		return physics.Vector{}, err
	}
	return b.position, nil
}

func (f *Fake) Velocity(h physics.BodyHandle) (physics.Vector, error) {
	b, err := f.body(h)
	if err != nil {
		return physics.Vector{}, err
	}
	return b.velocity, nil
}

func (f *Fake) AngularVelocity(h physics.BodyHandle) (float64, error) {
	b, err := f.body(h)
	if err != nil {
		return 0, err
	}
	return b.angular, nil
}

func (f *Fake) Mass(h physics.BodyHandle) (float64, error) {
	b, err := f.body(h)
	if err != nil {
		return 0, err
	}
	return b.def.Mass, nil
}

func (f *Fake) ApplyForce(h physics.BodyHandle, force physics.Vector) error {
	b, err := f.body(h)
	if err != nil {
		return err
	}
	b.force = b.force.Add(force)
	f.Forces = append(f.Forces, ForceRecord{Body: h, Force: force})
	return nil
}

func (f *Fake) ApplyImpulse(h physics.BodyHandle, impulse physics.Vector) error {
	b, err := f.body(h)
	if err != nil {
		return err
	}
	if b.def.Kind == physics.BodyDynamic {
		b.velocity = b.velocity.Add(impulse.Scale(1 / b.def.Mass))
	}
	f.Impulses = append(f.Impulses, ImpulseRecord{Body: h, Impulse: impulse})
	return nil
}

func (f *Fake) SetVelocity(h physics.BodyHandle, v physics.Vector) error {
	b, err := f.body(h)
	if err != nil {
		return err
	}
	b.velocity = v
	return nil
}

func (f *Fake) SetAngularVelocity(h physics.BodyHandle, w float64) error {
	b, err := f.body(h)
	if err != nil {
		return err
	}
	b.angular = w
	return nil
}

func (f *Fake) DrainContactEvents() []physics.ColliderPair {
	out := f.contactEvents
	f.contactEvents = nil
	return out
}

func (f *Fake) DrainIntersectionEvents() []physics.ColliderPair {
	out := f.overlapEvents
	f.overlapEvents = nil
	return out
}

func (f *Fake) ContactsWith(h physics.ColliderHandle) ([]physics.ColliderHandle, error) {
	if _, err := f.collider(h); err != nil {
		return nil, err
	}
	out := make([]physics.ColliderHandle, 0, len(f.contacts[h]))
	for _, other := range f.contacts[h] {
		if f.HasCollider(other) {
			out = append(out, other)
		}
	}
	return out, nil
}

// AABB 默认以刚体位置为中心、碰撞体宽高为尺寸；SetAABB 可覆盖
func (f *Fake) AABB(h physics.ColliderHandle) (physics.AABB, error) {
	c, err := f.collider(h)
	if err != nil {
		return physics.AABB{}, err
	}
	if c.aabb != nil {
		return *c.aabb, nil
	}
	center := f.bodies[c.body].position
	half := physics.Vector{X: c.def.Width / 2, Y: c.def.Height / 2}
	return physics.AABB{Min: center.Add(half.Scale(-1)), Max: center.Add(half)}, nil
}

func (f *Fake) HasCollider(h physics.ColliderHandle) bool {
	_, err := f.collider(h)
	return err == nil
}

func (f *Fake) AddBody(def physics.BodyDef) (physics.BodyHandle, error) {
	if def.Kind == physics.BodyDynamic && def.Mass <= 0 {
		return physics.BodyHandle{}, fmt.Errorf("dynamic body mass must be > 0, got %v", def.Mass)
	}
	slot := fakeBody{alive: true, def: def, position: def.Position, velocity: def.Velocity}
	var index uint32
	if n := len(f.freeBodies); n > 0 {
		index = f.freeBodies[n-1]
		f.freeBodies = f.freeBodies[:n-1]
		slot.generation = f.bodies[index].generation + 1
		f.bodies[index] = slot
	} else {
		index = uint32(len(f.bodies))
		slot.generation = 1
		f.bodies = append(f.bodies, slot)
	}
	return physics.BodyHandle{Index: index, Generation: slot.generation}, nil
}

func (f *Fake) AddCollider(h physics.BodyHandle, def physics.ColliderDef) (physics.ColliderHandle, error) {
	b, err := f.body(h)
	if err != nil {
		return physics.ColliderHandle{}, err
	}
	if def.Width <= 0 || def.Height <= 0 {
		return physics.ColliderHandle{}, physics.ErrInvalidShape
	}
	slot := fakeCollider{alive: true, body: h.Index, def: def}
	var index uint32
	if n := len(f.freeColliders); n > 0 {
		index = f.freeColliders[n-1]
		f.freeColliders = f.freeColliders[:n-1]
		slot.generation = f.colliders[index].generation + 1
		f.colliders[index] = slot
	} else {
		index = uint32(len(f.colliders))
		slot.generation = 1
		f.colliders = append(f.colliders, slot)
	}
	b.colliders = append(b.colliders, index)
	return physics.ColliderHandle{Index: index, Generation: slot.generation}, nil
}

func (f *Fake) RemoveBody(h physics.BodyHandle) error {
	b, err := f.body(h)
	if err != nil {
		return err
	}
	for _, ci := range b.colliders {
		c := &f.colliders[ci]
		handle := physics.ColliderHandle{Index: ci, Generation: c.generation}
		delete(f.contacts, handle)
		c.alive = false
		f.freeColliders = append(f.freeColliders, ci)
	}
	b.alive = false
	b.colliders = nil
	f.freeBodies = append(f.freeBodies, h.Index)
	return nil
}

// ========================================
// 测试脚本接口
// ========================================

// QueueContact 追加一条“开始接触”原始事件
func (f *Fake) QueueContact(a, b physics.ColliderHandle) {
	f.contactEvents = append(f.contactEvents, physics.ColliderPair{A: a, B: b})
}

// QueueIntersection 追加一条“开始重叠”原始事件
func (f *Fake) QueueIntersection(a, b physics.ColliderHandle) {
	f.overlapEvents = append(f.overlapEvents, physics.ColliderPair{A: a, B: b})
}

// Touch 建立一对双向的当前接触关系（供 ContactsWith 查询）
func (f *Fake) Touch(a, b physics.ColliderHandle) {
	f.contacts[a] = append(f.contacts[a], b)
	f.contacts[b] = append(f.contacts[b], a)
}

// SetAABB 固定某个碰撞体的包围盒
func (f *Fake) SetAABB(h physics.ColliderHandle, box physics.AABB) {
	if c, err := f.collider(h); err == nil {
		c.aabb = &box
	}
}

// SetPosition 直接移动刚体
func (f *Fake) SetPosition(h physics.BodyHandle, p physics.Vector) {
	if b, err := f.body(h); err == nil {
		b.position = p
	}
}

// ColliderDef 返回创建碰撞体时使用的参数
func (f *Fake) ColliderDef(h physics.ColliderHandle) (physics.ColliderDef, bool) {
	c, err := f.collider(h)
	if err != nil {
		return physics.ColliderDef{}, false
	}
	return c.def, true
}

// ImpulsesOn 返回施加在指定刚体上的全部冲量
func (f *Fake) ImpulsesOn(h physics.BodyHandle) []physics.Vector {
	var out []physics.Vector
	for _, r := range f.Impulses {
		if r.Body == h {
			out = append(out, r.Impulse)
		}
	}
	return out
}

// LiveBodies 当前存活的刚体数量
func (f *Fake) LiveBodies() int {
	n := 0
	for i := range f.bodies {
		if f.bodies[i].alive {
			n++
		}
	}
	return n
}
