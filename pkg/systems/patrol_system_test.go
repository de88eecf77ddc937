package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/blobarena/pkg/components"
	"github.com/decker502/blobarena/pkg/ecs"
	"github.com/decker502/blobarena/pkg/physics"
)

// 平台中心 (0,-10)，宽 20、高 5：x ∈ [-10, 10]，顶面 y = -7.5
// 怪物边长 2.5，站在平台上时中心 y = -6.25
const restingY = -6.25

func TestPatrolDecisions(t *testing.T) {
	tests := []struct {
		name        string
		pos         physics.Vector
		velocity    physics.Vector
		heading     int
		extra       func(t *testing.T, w *testWorld, creature ecs.EntityID)
		noSupport   bool
		wantHeading int
		wantImpulse *physics.Vector
	}{
		{
			name:        "向右走到右缘掉头",
			pos:         physics.Vector{X: 8.75, Y: restingY},
			velocity:    physics.Vector{X: 2},
			heading:     1,
			wantHeading: -1,
			wantImpulse: &physics.Vector{X: -0.3, Y: 1.0},
		},
		{
			name:        "越过右缘仍掉头",
			pos:         physics.Vector{X: 9.5, Y: restingY},
			velocity:    physics.Vector{X: 2},
			heading:     1,
			wantHeading: -1,
			wantImpulse: &physics.Vector{X: -0.3, Y: 1.0},
		},
		{
			name:        "向左走到左缘掉头",
			pos:         physics.Vector{X: -8.75, Y: restingY},
			velocity:    physics.Vector{X: -2},
			heading:     -1,
			wantHeading: 1,
			wantImpulse: &physics.Vector{X: 0.3, Y: 1.0},
		},
		{
			name:        "向左时右缘不触发",
			pos:         physics.Vector{X: 8.75, Y: restingY},
			velocity:    physics.Vector{X: -2},
			heading:     -1,
			wantHeading: -1,
		},
		{
			name:        "平台中间行走不动作",
			pos:         physics.Vector{X: 0, Y: restingY},
			velocity:    physics.Vector{X: 2},
			heading:     1,
			wantHeading: 1,
		},
		{
			name:        "停滞时按原朝向重新起跳",
			pos:         physics.Vector{X: 0, Y: restingY},
			velocity:    physics.Vector{},
			heading:     -1,
			wantHeading: -1,
			wantImpulse: &physics.Vector{X: -0.3, Y: 1.0},
		},
		{
			name:        "空中不动作",
			pos:         physics.Vector{X: 8.75, Y: restingY},
			velocity:    physics.Vector{X: 2, Y: -3},
			heading:     1,
			wantHeading: 1,
		},
		{
			name:        "没有接触平台不动作",
			pos:         physics.Vector{X: 8.75, Y: restingY},
			velocity:    physics.Vector{X: 2},
			heading:     1,
			noSupport:   true,
			wantHeading: 1,
		},
		{
			name:     "同时站在两个平台上不动作",
			pos:      physics.Vector{X: 8.75, Y: restingY},
			velocity: physics.Vector{X: 2},
			heading:  1,
			extra: func(t *testing.T, w *testWorld, creature ecs.EntityID) {
				other := w.spawnPlatform(t, physics.Vector{X: 15, Y: -10}, 10, 5)
				w.fake.Touch(w.collider(creature), w.collider(other))
			},
			wantHeading: 1,
		},
		{
			name:     "前方被墙挡住掉头",
			pos:      physics.Vector{X: 3, Y: restingY},
			velocity: physics.Vector{X: 0.5},
			heading:  1,
			extra: func(t *testing.T, w *testWorld, creature ecs.EntityID) {
				wall := w.spawnPlatform(t, physics.Vector{X: 5, Y: 0}, 1, 20)
				w.fake.Touch(w.collider(creature), w.collider(wall))
			},
			wantHeading: -1,
			wantImpulse: &physics.Vector{X: -0.3, Y: 1.0},
		},
		{
			name:     "接触其他怪物不影响判断",
			pos:      physics.Vector{X: 8.75, Y: restingY},
			velocity: physics.Vector{X: 2},
			heading:  1,
			extra: func(t *testing.T, w *testWorld, creature ecs.EntityID) {
				other := w.spawnCreature(t, physics.Vector{X: 6, Y: restingY})
				w.fake.Touch(w.collider(creature), w.collider(other))
			},
			wantHeading: -1,
			wantImpulse: &physics.Vector{X: -0.3, Y: 1.0},
		},
		{
			name:     "停滞时被前方怪物挡住掉头",
			pos:      physics.Vector{X: 0, Y: restingY},
			velocity: physics.Vector{},
			heading:  1,
			extra: func(t *testing.T, w *testWorld, creature ecs.EntityID) {
				other := w.spawnCreature(t, physics.Vector{X: 2.5, Y: restingY})
				w.fake.Touch(w.collider(creature), w.collider(other))
			},
			wantHeading: -1,
			wantImpulse: &physics.Vector{X: -0.3, Y: 1.0},
		},
		{
			name:     "前方有怪物但仍在行走不动作",
			pos:      physics.Vector{X: 0, Y: restingY},
			velocity: physics.Vector{X: 2},
			heading:  1,
			extra: func(t *testing.T, w *testWorld, creature ecs.EntityID) {
				other := w.spawnCreature(t, physics.Vector{X: 2.5, Y: restingY})
				w.fake.Touch(w.collider(creature), w.collider(other))
			},
			wantHeading: 1,
		},
		{
			name:     "停滞时身后有怪物按原朝向起跳",
			pos:      physics.Vector{X: 0, Y: restingY},
			velocity: physics.Vector{},
			heading:  1,
			extra: func(t *testing.T, w *testWorld, creature ecs.EntityID) {
				other := w.spawnCreature(t, physics.Vector{X: -2.5, Y: restingY})
				w.fake.Touch(w.collider(creature), w.collider(other))
			},
			wantHeading: 1,
			wantImpulse: &physics.Vector{X: 0.3, Y: 1.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t)
			platform := w.spawnPlatform(t, physics.Vector{Y: -10}, 20, 5)
			creature := w.spawnCreature(t, tt.pos)
			require.NoError(t, w.fake.SetVelocity(w.body(creature), tt.velocity))

			patrol, _ := ecs.GetComponent[*components.PatrolComponent](w.em, creature)
			patrol.Heading = tt.heading

			if !tt.noSupport {
				w.fake.Touch(w.collider(creature), w.collider(platform))
			}
			if tt.extra != nil {
				tt.extra(t, w, creature)
			}

			harvest := NewCollisionHarvestSystem(w.em, w.fake, w.logger)
			harvest.Update(testDt)
			NewPatrolSystem(w.em, w.fake, harvest.Index(), w.cfg.Patrol, w.logger).Update(testDt)

			assert.Equal(t, tt.wantHeading, patrol.Heading)
			impulses := w.fake.ImpulsesOn(w.body(creature))
			if tt.wantImpulse == nil {
				assert.Empty(t, impulses)
				return
			}
			require.Len(t, impulses, 1)
			assert.InDelta(t, tt.wantImpulse.X, impulses[0].X, 1e-9)
			assert.InDelta(t, tt.wantImpulse.Y, impulses[0].Y, 1e-9)
		})
	}
}

func TestPatrolRelaunchCanBeDisabled(t *testing.T) {
	w := newTestWorld(t)
	w.cfg.Patrol.RelaunchWhenStalled = false
	platform := w.spawnPlatform(t, physics.Vector{Y: -10}, 20, 5)
	creature := w.spawnCreature(t, physics.Vector{Y: restingY})
	w.fake.Touch(w.collider(creature), w.collider(platform))

	harvest := NewCollisionHarvestSystem(w.em, w.fake, w.logger)
	harvest.Update(testDt)
	NewPatrolSystem(w.em, w.fake, harvest.Index(), w.cfg.Patrol, w.logger).Update(testDt)

	assert.Empty(t, w.fake.ImpulsesOn(w.body(creature)))
}

func TestPatrolSkipsStaleCreature(t *testing.T) {
	w := newTestWorld(t)
	platform := w.spawnPlatform(t, physics.Vector{Y: -10}, 20, 5)
	creature := w.spawnCreature(t, physics.Vector{X: 8.75, Y: restingY})
	w.fake.Touch(w.collider(creature), w.collider(platform))

	harvest := NewCollisionHarvestSystem(w.em, w.fake, w.logger)
	harvest.Update(testDt)
	require.NoError(t, w.fake.RemoveBody(w.body(creature)))

	assert.NotPanics(t, func() {
		NewPatrolSystem(w.em, w.fake, harvest.Index(), w.cfg.Patrol, w.logger).Update(testDt)
	})
	patrol, _ := ecs.GetComponent[*components.PatrolComponent](w.em, creature)
	assert.Equal(t, 1, patrol.Heading)
}
