package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/blobarena/pkg/components"
	"github.com/decker502/blobarena/pkg/config"
	"github.com/decker502/blobarena/pkg/ecs"
	"github.com/decker502/blobarena/pkg/physics"
	"github.com/decker502/blobarena/pkg/physics/physicstest"
)

func TestNewPlatform(t *testing.T) {
	em := ecs.NewEntityManager()
	fake := physicstest.NewFake()

	id, err := NewPlatform(em, fake, physics.Vector{Y: -10}, 100, 5, 0.5)
	require.NoError(t, err)

	class, ok := ecs.GetComponent[*components.ClassComponent](em, id)
	require.True(t, ok)
	assert.Equal(t, components.ClassPlatform, class.Class)

	col, ok := ecs.GetComponent[*components.ColliderComponent](em, id)
	require.True(t, ok)
	def, ok := fake.ColliderDef(col.Handle)
	require.True(t, ok)
	assert.Equal(t, physics.GroupWorld, def.Groups.Memberships)
	assert.False(t, def.Sensor)

	box, err := fake.AABB(col.Handle)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, box.Max.X, 1e-9)
	assert.InDelta(t, -7.5, box.Max.Y, 1e-9)
}

func TestFactoryRejectsInvalidShapeWithoutLeak(t *testing.T) {
	em := ecs.NewEntityManager()
	fake := physicstest.NewFake()

	_, err := NewPlatform(em, fake, physics.Vector{}, 0, 5, 0.5)
	require.Error(t, err)
	assert.ErrorIs(t, err, physics.ErrInvalidShape)
	assert.Equal(t, 0, em.EntityCount(), "失败时不创建实体")
	assert.Equal(t, 0, fake.LiveBodies(), "失败时回收刚体")

	_, err = NewPlatform(nil, fake, physics.Vector{}, 1, 1, 0)
	assert.Error(t, err)
}

func TestNewPlayerAndCreature(t *testing.T) {
	cfg := config.DefaultSandboxConfig()
	em := ecs.NewEntityManager()
	fake := physicstest.NewFake()

	player, err := NewPlayer(em, fake, cfg, physics.Vector{Y: 10})
	require.NoError(t, err)
	pc, ok := ecs.GetComponent[*components.PlayerComponent](em, player)
	require.True(t, ok)
	assert.Equal(t, 1, pc.Facing)
	assert.True(t, ecs.HasComponent[*components.ContactListComponent](em, player))

	body, _ := ecs.GetComponent[*components.RigidBodyComponent](em, player)
	mass, err := fake.Mass(body.Handle)
	require.NoError(t, err)
	assert.Equal(t, 1.0, mass)

	creature, err := NewCreature(em, fake, cfg, physics.Vector{}, CreatureTint(0, 16))
	require.NoError(t, err)
	health, ok := ecs.GetComponent[*components.HealthComponent](em, creature)
	require.True(t, ok)
	assert.Equal(t, 10, health.CurrentHealth)
	assert.Equal(t, 10, health.MaxHealth)
	patrol, ok := ecs.GetComponent[*components.PatrolComponent](em, creature)
	require.True(t, ok)
	assert.True(t, patrol.HeadingRight())
	visual, ok := ecs.GetComponent[*components.VisualComponent](em, creature)
	require.True(t, ok)
	assert.Equal(t, 1.0, visual.Intensity)
}

func TestNewAttack(t *testing.T) {
	tests := []struct {
		name       string
		facing     int
		wantFacing int
	}{
		{name: "向右攻击", facing: 1, wantFacing: 1},
		{name: "向左攻击", facing: -1, wantFacing: -1},
		{name: "朝向归一化", facing: -5, wantFacing: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultSandboxConfig()
			em := ecs.NewEntityManager()
			fake := physicstest.NewFake()
			origin := physics.Vector{X: 3, Y: 2}

			player, err := NewPlayer(em, fake, cfg, origin)
			require.NoError(t, err)

			attack, err := NewAttack(em, fake, cfg, player, origin, tt.facing)
			require.NoError(t, err)

			ac, ok := ecs.GetComponent[*components.AttackComponent](em, attack)
			require.True(t, ok)
			assert.Equal(t, player, ac.Owner)
			assert.Equal(t, tt.wantFacing, ac.Facing)

			lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](em, attack)
			require.True(t, ok)
			assert.Equal(t, cfg.Combat.Lifetime, lifetime.MaxLifetime)
			assert.True(t, ecs.HasComponent[*components.IntersectionListComponent](em, attack))

			body, _ := ecs.GetComponent[*components.RigidBodyComponent](em, attack)
			pos, err := fake.Position(body.Handle)
			require.NoError(t, err)
			assert.InDelta(t, origin.X+float64(tt.wantFacing)*cfg.Combat.SpawnOffset, pos.X, 1e-9)
			vel, err := fake.Velocity(body.Handle)
			require.NoError(t, err)
			assert.InDelta(t, float64(tt.wantFacing)*cfg.Combat.Speed, vel.X, 1e-9)

			col, _ := ecs.GetComponent[*components.ColliderComponent](em, attack)
			def, ok := fake.ColliderDef(col.Handle)
			require.True(t, ok)
			assert.True(t, def.Sensor)
			assert.False(t, def.Groups.InteractsWith(physics.GroupsFor(physics.GroupPlayer)), "判定框不与发起者分组交互")
			assert.True(t, def.Groups.InteractsWith(physics.GroupsFor(physics.GroupCreature)))
		})
	}
}

func TestNewAttackRequiresOwnerClass(t *testing.T) {
	em := ecs.NewEntityManager()
	orphan := em.CreateEntity()
	_, err := NewAttack(em, physicstest.NewFake(), config.DefaultSandboxConfig(), orphan, physics.Vector{}, 1)
	assert.Error(t, err)
}

func TestCreatureTint(t *testing.T) {
	first := CreatureTint(0, 16)
	assert.Equal(t, uint8(0), first.R)
	assert.Equal(t, uint8(255), first.G)
	assert.Equal(t, uint8(255), first.B)

	mid := CreatureTint(8, 16)
	assert.Equal(t, uint8(127), mid.R)
	assert.Equal(t, uint8(127), mid.G)
}

func TestBuildArena(t *testing.T) {
	cfg := config.DefaultSandboxConfig()
	em := ecs.NewEntityManager()
	fake := physicstest.NewFake()

	arena, err := BuildArena(em, fake, cfg)
	require.NoError(t, err)

	assert.Len(t, arena.Platforms, 4)
	assert.Len(t, arena.Creatures, 16)
	assert.NotZero(t, arena.Player)
	assert.Equal(t, 4+1+16, em.EntityCount())
	assert.Equal(t, 4+1+16, fake.LiveBodies())

	// 怪物之间互不重叠
	boxes := make([]physics.AABB, 0, len(arena.Creatures))
	for _, id := range arena.Creatures {
		col, ok := ecs.GetComponent[*components.ColliderComponent](em, id)
		require.True(t, ok)
		box, err := fake.AABB(col.Handle)
		require.NoError(t, err)
		boxes = append(boxes, box)
	}
	for i := range boxes {
		for j := i + 1; j < len(boxes); j++ {
			a, b := boxes[i], boxes[j]
			overlap := a.Min.X < b.Max.X && b.Min.X < a.Max.X && a.Min.Y < b.Max.Y && b.Min.Y < a.Max.Y
			assert.False(t, overlap, "怪物 %d 与 %d 重叠", i, j)
		}
	}

	// 地面（第一个平台）在所有怪物下方
	floorCol, _ := ecs.GetComponent[*components.ColliderComponent](em, arena.Platforms[0])
	floor, err := fake.AABB(floorCol.Handle)
	require.NoError(t, err)
	for _, box := range boxes {
		assert.Greater(t, box.Min.Y, floor.Max.Y)
	}
}
