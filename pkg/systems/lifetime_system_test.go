package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/blobarena/pkg/components"
	"github.com/decker502/blobarena/pkg/ecs"
	"github.com/decker502/blobarena/pkg/physics"
)

func TestLifetimeUpdate(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewLifetimeSystem(em)

	id := em.CreateEntity()
	em.AddComponent(id, &components.LifetimeComponent{MaxLifetime: 10.0})

	// 模拟5秒更新
	system.Update(5.0)

	lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](em, id)
	require.True(t, ok)
	assert.Equal(t, 5.0, lifetime.CurrentLifetime)
	assert.False(t, lifetime.IsExpired, "尚未过期")
	assert.False(t, em.IsMarkedForDestroy(id))
}

func TestLifetimeExpiration(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewLifetimeSystem(em)

	id := em.CreateEntity()
	em.AddComponent(id, &components.LifetimeComponent{MaxLifetime: 10.0})

	// 模拟超过最大生命周期
	system.Update(12.0)

	lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](em, id)
	assert.True(t, lifetime.IsExpired)
	assert.True(t, em.IsMarkedForDestroy(id))

	// 过期后不再累计
	system.Update(1.0)
	assert.Equal(t, 12.0, lifetime.CurrentLifetime)

	assert.Equal(t, []ecs.EntityID{id}, em.RemoveMarkedEntities())
	assert.False(t, em.IsAlive(id))
}

func TestLifetimeMultipleUpdates(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewLifetimeSystem(em)

	id := em.CreateEntity()
	em.AddComponent(id, &components.LifetimeComponent{MaxLifetime: 0.3})

	frames := 0
	for !em.IsMarkedForDestroy(id) && frames < 100 {
		system.Update(0.1)
		frames++
	}
	// 0.1 累加三次存在浮点误差，允许第 3 或第 4 帧过期
	assert.GreaterOrEqual(t, frames, 3)
	assert.LessOrEqual(t, frames, 4)
}

func TestAttackDespawnsAfterLifetime(t *testing.T) {
	w := newTestWorld(t)
	player := w.spawnPlayer(t, physics.Vector{})
	attack := w.spawnAttack(t, player, 1)
	attackBody := w.body(attack)

	system := NewLifetimeSystem(w.em)
	elapsed := 0.0
	for elapsed < w.cfg.Combat.Lifetime+testDt {
		system.Update(testDt)
		w.flush()
		elapsed += testDt
	}

	assert.False(t, w.em.IsAlive(attack))
	assert.True(t, w.em.IsAlive(player))
	_, err := w.fake.Position(attackBody)
	assert.ErrorIs(t, err, physics.ErrStaleBody)
}
