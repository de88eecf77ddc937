package systems

import (
	"go.uber.org/zap"

	"github.com/decker502/blobarena/pkg/components"
	"github.com/decker502/blobarena/pkg/ecs"
	"github.com/decker502/blobarena/pkg/physics"
)

// RemovalSystem 清理本帧标记删除的实体，并从求解器中移除它们的刚体
// 刚体移除后相关的碰撞体句柄全部失效，下一帧的碰撞索引不会再包含它们
type RemovalSystem struct {
	entityManager *ecs.EntityManager
	oracle        physics.Oracle
	logger        *zap.Logger
}

// NewRemovalSystem 创建实体清理系统
func NewRemovalSystem(em *ecs.EntityManager, oracle physics.Oracle, logger *zap.Logger) *RemovalSystem {
	return &RemovalSystem{
		entityManager: em,
		oracle:        oracle,
		logger:        logger.Named("removal"),
	}
}

// Update 删除标记的实体
// 返回本次删除的实体数量
func (s *RemovalSystem) Update(deltaTime float64) int {
	marked := s.entityManager.MarkedEntities()
	if len(marked) == 0 {
		return 0
	}

	bodies := make([]physics.BodyHandle, 0, len(marked))
	for _, id := range marked {
		if body, ok := ecs.GetComponent[*components.RigidBodyComponent](s.entityManager, id); ok {
			bodies = append(bodies, body.Handle)
		}
	}

	removed := s.entityManager.RemoveMarkedEntities()
	for _, h := range bodies {
		if err := s.oracle.RemoveBody(h); err != nil {
			s.logger.Debug("body already gone", zap.Uint32("index", h.Index), zap.Error(err))
		}
	}
	return len(removed)
}
