package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/decker502/blobarena/pkg/components"
	"github.com/decker502/blobarena/pkg/ecs"
	"github.com/decker502/blobarena/pkg/physics"
)

func TestHealthSystemRemovesDeadEntities(t *testing.T) {
	tests := []struct {
		name       string
		health     int
		wantMarked bool
	}{
		{name: "满血", health: 10, wantMarked: false},
		{name: "残血", health: 1, wantMarked: false},
		{name: "归零", health: 0, wantMarked: true},
		{name: "负数", health: -3, wantMarked: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t)
			creature := w.spawnCreature(t, physics.Vector{})
			health, _ := ecs.GetComponent[*components.HealthComponent](w.em, creature)
			health.CurrentHealth = tt.health

			NewHealthSystem(w.em, w.logger).Update(testDt)

			assert.Equal(t, tt.wantMarked, w.em.IsMarkedForDestroy(creature))
			// 纯删除过程，不修改其他状态
			assert.Equal(t, tt.health, health.CurrentHealth)
			assert.Empty(t, w.fake.Impulses)
		})
	}
}

func TestRemovalSystemReleasesBodies(t *testing.T) {
	w := newTestWorld(t)
	keep := w.spawnCreature(t, physics.Vector{})
	drop := w.spawnCreature(t, physics.Vector{X: 5})
	dropBody := w.body(drop)
	bare := w.em.CreateEntity()

	removal := NewRemovalSystem(w.em, w.fake, w.logger)
	assert.Equal(t, 0, removal.Update(testDt))

	w.em.DestroyEntity(drop)
	w.em.DestroyEntity(bare)
	assert.Equal(t, 2, removal.Update(testDt))

	assert.True(t, w.em.IsAlive(keep))
	assert.False(t, w.em.IsAlive(drop))
	assert.Equal(t, 1, w.fake.LiveBodies())
	_, err := w.fake.Velocity(dropBody)
	assert.ErrorIs(t, err, physics.ErrStaleBody)
}
