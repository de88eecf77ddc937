package systems

import (
	"go.uber.org/zap"

	"github.com/decker502/blobarena/pkg/components"
	"github.com/decker502/blobarena/pkg/ecs"
	"github.com/decker502/blobarena/pkg/physics"
)

type indexSlot struct {
	generation uint32
	entity     ecs.EntityID
}

// ColliderIndex 碰撞体句柄到实体的映射
//
// 以句柄下标为索引的稠密表，每帧从存活的碰撞体重建；
// 查询时比对代数，已移除的碰撞体不会解析到任何实体。
type ColliderIndex struct {
	slots []indexSlot
	count int
}

func (ix *ColliderIndex) reset() {
	for i := range ix.slots {
		ix.slots[i] = indexSlot{}
	}
	ix.count = 0
}

func (ix *ColliderIndex) put(h physics.ColliderHandle, id ecs.EntityID) {
	if int(h.Index) >= len(ix.slots) {
		grown := make([]indexSlot, h.Index+1)
		copy(grown, ix.slots)
		ix.slots = grown
	}
	ix.slots[h.Index] = indexSlot{generation: h.Generation, entity: id}
	ix.count++
}

// Entity 返回碰撞体所属的实体
func (ix *ColliderIndex) Entity(h physics.ColliderHandle) (ecs.EntityID, bool) {
	if h.IsZero() || int(h.Index) >= len(ix.slots) {
		return 0, false
	}
	slot := ix.slots[h.Index]
	if slot.generation != h.Generation {
		return 0, false
	}
	return slot.entity, true
}

// Len 当前索引中的碰撞体数量
func (ix *ColliderIndex) Len() int {
	return ix.count
}

// CollisionHarvestSystem 碰撞事件收集系统
//
// 每帧物理步进之后、任何玩法系统之前运行：
//  1. 从所有存活的碰撞体重建 ColliderIndex
//  2. 取出求解器的开始接触 / 开始重叠事件
//  3. 双方都能解析到存活实体时，把对方写入各自的 ContactList / IntersectionList
//
// 本帧内它是事件列表的唯一写入者。无法解析的句柄直接丢弃。
type CollisionHarvestSystem struct {
	entityManager *ecs.EntityManager
	oracle        physics.Oracle
	logger        *zap.Logger
	index         ColliderIndex
}

// NewCollisionHarvestSystem 创建碰撞事件收集系统
func NewCollisionHarvestSystem(em *ecs.EntityManager, oracle physics.Oracle, logger *zap.Logger) *CollisionHarvestSystem {
	return &CollisionHarvestSystem{
		entityManager: em,
		oracle:        oracle,
		logger:        logger.Named("harvest"),
	}
}

// Index 本帧的碰撞体索引（只读，供巡逻等系统解析句柄）
func (s *CollisionHarvestSystem) Index() *ColliderIndex {
	return &s.index
}

// Update 重建索引并分发本步的原始碰撞事件
func (s *CollisionHarvestSystem) Update(deltaTime float64) {
	s.rebuildIndex()

	for _, pair := range s.oracle.DrainContactEvents() {
		a, b, ok := s.resolve(pair)
		if !ok {
			continue
		}
		la, lb := s.contactList(a), s.contactList(b)
		la.Entities = append(la.Entities, b)
		lb.Entities = append(lb.Entities, a)
	}

	for _, pair := range s.oracle.DrainIntersectionEvents() {
		a, b, ok := s.resolve(pair)
		if !ok {
			continue
		}
		la, lb := s.intersectionList(a), s.intersectionList(b)
		la.Entities = append(la.Entities, b)
		lb.Entities = append(lb.Entities, a)
	}
}

func (s *CollisionHarvestSystem) rebuildIndex() {
	s.index.reset()
	for _, id := range ecs.GetEntitiesWith1[*components.ColliderComponent](s.entityManager) {
		if s.entityManager.IsMarkedForDestroy(id) {
			continue
		}
		col, _ := ecs.GetComponent[*components.ColliderComponent](s.entityManager, id)
		if !s.oracle.HasCollider(col.Handle) {
			continue
		}
		s.index.put(col.Handle, id)
	}
}

// resolve 把一对句柄解析为两个不同的存活实体
func (s *CollisionHarvestSystem) resolve(pair physics.ColliderPair) (ecs.EntityID, ecs.EntityID, bool) {
	a, okA := s.index.Entity(pair.A)
	b, okB := s.index.Entity(pair.B)
	if !okA || !okB {
		s.logger.Debug("dropping event with unresolved collider",
			zap.Uint32("a", pair.A.Index), zap.Uint32("b", pair.B.Index))
		return 0, 0, false
	}
	if a == b {
		return 0, 0, false
	}
	return a, b, true
}

// contactList 获取实体的接触列表，不存在时创建
func (s *CollisionHarvestSystem) contactList(id ecs.EntityID) *components.ContactListComponent {
	list, ok := ecs.GetComponent[*components.ContactListComponent](s.entityManager, id)
	if !ok {
		list = &components.ContactListComponent{}
		s.entityManager.AddComponent(id, list)
	}
	return list
}

// intersectionList 获取实体的重叠列表，不存在时创建
func (s *CollisionHarvestSystem) intersectionList(id ecs.EntityID) *components.IntersectionListComponent {
	list, ok := ecs.GetComponent[*components.IntersectionListComponent](s.entityManager, id)
	if !ok {
		list = &components.IntersectionListComponent{}
		s.entityManager.AddComponent(id, list)
	}
	return list
}
