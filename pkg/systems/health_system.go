package systems

import (
	"go.uber.org/zap"

	"github.com/decker502/blobarena/pkg/components"
	"github.com/decker502/blobarena/pkg/ecs"
)

// HealthSystem 删除生命值耗尽的实体
type HealthSystem struct {
	entityManager *ecs.EntityManager
	logger        *zap.Logger
}

// NewHealthSystem 创建生命值清理系统
func NewHealthSystem(em *ecs.EntityManager, logger *zap.Logger) *HealthSystem {
	return &HealthSystem{
		entityManager: em,
		logger:        logger.Named("health"),
	}
}

// Update 标记所有生命值 <= 0 的实体待删除
func (s *HealthSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.HealthComponent](s.entityManager) {
		health, _ := ecs.GetComponent[*components.HealthComponent](s.entityManager, id)
		if !health.IsDead() || s.entityManager.IsMarkedForDestroy(id) {
			continue
		}
		s.entityManager.DestroyEntity(id)
		s.logger.Info("entity destroyed", zap.Uint64("entity", uint64(id)), zap.Int("health", health.CurrentHealth))
	}
}
