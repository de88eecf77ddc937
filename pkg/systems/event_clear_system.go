package systems

import (
	"go.uber.org/zap"

	"github.com/decker502/blobarena/pkg/components"
	"github.com/decker502/blobarena/pkg/ecs"
)

// EventClearSystem 清空所有接触/重叠列表
//
// 每帧必须在所有消费者之后恰好运行一次。同一帧内重复调用不做任何事，
// 但会记录警告，因为这说明调度顺序有误。
type EventClearSystem struct {
	entityManager *ecs.EntityManager
	clock         *Clock
	logger        *zap.Logger
	lastFrame     uint64
	cleared       bool
}

// NewEventClearSystem 创建事件清理系统
func NewEventClearSystem(em *ecs.EntityManager, clock *Clock, logger *zap.Logger) *EventClearSystem {
	return &EventClearSystem{
		entityManager: em,
		clock:         clock,
		logger:        logger.Named("events"),
	}
}

// Update 清空事件列表
// 返回 false 表示本帧已经清理过，本次调用被忽略
func (s *EventClearSystem) Update(deltaTime float64) bool {
	if s.cleared && s.lastFrame == s.clock.Frame {
		s.logger.Warn("event lists cleared twice in one frame", zap.Uint64("frame", s.clock.Frame))
		return false
	}
	s.cleared = true
	s.lastFrame = s.clock.Frame

	for _, id := range ecs.GetEntitiesWith1[*components.ContactListComponent](s.entityManager) {
		list, _ := ecs.GetComponent[*components.ContactListComponent](s.entityManager, id)
		list.Entities = list.Entities[:0]
	}
	for _, id := range ecs.GetEntitiesWith1[*components.IntersectionListComponent](s.entityManager) {
		list, _ := ecs.GetComponent[*components.IntersectionListComponent](s.entityManager, id)
		list.Entities = list.Entities[:0]
	}
	return true
}
