// Package physics 定义游戏逻辑与刚体求解器之间的边界
//
// 求解器本身（积分、窄相碰撞）被视为黑盒，只通过 Oracle 接口访问。
// 实体只持有 BodyHandle / ColliderHandle 这样的弱引用，
// 求解器是刚体与碰撞体状态的唯一所有者。
package physics

import (
	"errors"
	"math"
)

var (
	// ErrStaleBody 刚体句柄已失效（刚体已被移除或句柄从未有效）
	ErrStaleBody = errors.New("physics: stale body handle")
	// ErrStaleCollider 碰撞体句柄已失效
	ErrStaleCollider = errors.New("physics: stale collider handle")
	// ErrSpaceLocked 求解器正在步进，此时不允许修改刚体状态
	ErrSpaceLocked = errors.New("physics: space is locked during step")
	// ErrInvalidShape 碰撞体尺寸非法（宽或高 <= 0）
	ErrInvalidShape = errors.New("physics: invalid collider shape")
)

// Vector 二维向量（世界单位，Y 轴向上）
type Vector struct {
	X, Y float64
}

// Add 向量相加
func (v Vector) Add(o Vector) Vector { return Vector{X: v.X + o.X, Y: v.Y + o.Y} }

// Scale 向量数乘
func (v Vector) Scale(s float64) Vector { return Vector{X: v.X * s, Y: v.Y * s} }

// IsZero 判断是否为零向量
func (v Vector) IsZero() bool { return v.X == 0 && v.Y == 0 }

// Length 向量长度
func (v Vector) Length() float64 { return math.Hypot(v.X, v.Y) }

// AABB 轴对齐包围盒
type AABB struct {
	Min, Max Vector
}

// Width 包围盒宽度
func (b AABB) Width() float64 { return b.Max.X - b.Min.X }

// Height 包围盒高度
func (b AABB) Height() float64 { return b.Max.Y - b.Min.Y }

// Center 包围盒中心
func (b AABB) Center() Vector {
	return Vector{X: (b.Min.X + b.Max.X) / 2, Y: (b.Min.Y + b.Max.Y) / 2}
}

// BodyHandle 刚体句柄：稠密表下标 + 代数
//
// 代数在刚体移除时递增，旧句柄因此失效；零值永远无效。
type BodyHandle struct {
	Index      uint32
	Generation uint32
}

// IsZero 是否为零值句柄
func (h BodyHandle) IsZero() bool { return h.Generation == 0 }

// ColliderHandle 碰撞体句柄，语义同 BodyHandle
type ColliderHandle struct {
	Index      uint32
	Generation uint32
}

// IsZero 是否为零值句柄
func (h ColliderHandle) IsZero() bool { return h.Generation == 0 }

// ColliderPair 一条原始碰撞事件（两个碰撞体句柄，顺序无意义）
type ColliderPair struct {
	A, B ColliderHandle
}

// BodyKind 刚体类型
type BodyKind int

const (
	// BodyDynamic 受力和重力驱动
	BodyDynamic BodyKind = iota
	// BodyStatic 静止不动（地形）
	BodyStatic
	// BodyKinematic 按速度移动，不受力影响（攻击判定框）
	BodyKinematic
)

// BodyDef 创建刚体的参数
type BodyDef struct {
	Kind     BodyKind
	Position Vector
	Velocity Vector
	// Mass 仅对 BodyDynamic 有效，必须 > 0
	Mass float64
	// FixedRotation 为 true 时刚体不会因接触而旋转
	FixedRotation bool
}

// ColliderDef 创建矩形碰撞体的参数（以刚体位置为中心）
type ColliderDef struct {
	Width, Height float64
	Friction      float64
	// Sensor 为 true 时只报告重叠（intersection），不产生实体碰撞响应
	Sensor bool
	Groups CollisionGroups
}

// Oracle 刚体求解器的全部对外能力
//
// 所有接受句柄的方法在句柄失效时返回 ErrStaleBody / ErrStaleCollider，
// 绝不产生未定义状态。修改类方法总是唤醒刚体。
type Oracle interface {
	// Step 积分一个物理步
	Step(dt float64)

	Position(body BodyHandle) (Vector, error)
	Velocity(body BodyHandle) (Vector, error)
	AngularVelocity(body BodyHandle) (float64, error)
	Mass(body BodyHandle) (float64, error)

	ApplyForce(body BodyHandle, force Vector) error
	ApplyImpulse(body BodyHandle, impulse Vector) error
	SetVelocity(body BodyHandle, velocity Vector) error
	SetAngularVelocity(body BodyHandle, angularVelocity float64) error

	// DrainContactEvents 取出自上次调用以来的“开始接触”事件，每条事件只交付一次
	DrainContactEvents() []ColliderPair
	// DrainIntersectionEvents 取出自上次调用以来的“开始重叠”事件（传感器）
	DrainIntersectionEvents() []ColliderPair
	// ContactsWith 当前与指定碰撞体实体接触的碰撞体（不含传感器重叠）
	ContactsWith(collider ColliderHandle) ([]ColliderHandle, error)
	AABB(collider ColliderHandle) (AABB, error)
	HasCollider(collider ColliderHandle) bool

	AddBody(def BodyDef) (BodyHandle, error)
	AddCollider(body BodyHandle, def ColliderDef) (ColliderHandle, error)
	// RemoveBody 移除刚体及其全部碰撞体，之后相关句柄全部失效
	RemoveBody(body BodyHandle) error
}
