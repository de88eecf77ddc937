package systems

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/decker502/blobarena/pkg/components"
	"github.com/decker502/blobarena/pkg/config"
	"github.com/decker502/blobarena/pkg/ecs"
	"github.com/decker502/blobarena/pkg/entities"
	"github.com/decker502/blobarena/pkg/physics"
	"github.com/decker502/blobarena/pkg/physics/physicstest"
)

// testWorld 系统测试共用的最小场景：实体管理器 + 可脚本化的物理求解器
type testWorld struct {
	em     *ecs.EntityManager
	fake   *physicstest.Fake
	cfg    *config.SandboxConfig
	clock  *Clock
	logger *zap.Logger
}

func newTestWorld(t *testing.T) *testWorld {
	t.Helper()
	return &testWorld{
		em:     ecs.NewEntityManager(),
		fake:   physicstest.NewFake(),
		cfg:    config.DefaultSandboxConfig(),
		clock:  &Clock{},
		logger: zap.NewNop(),
	}
}

func (w *testWorld) spawnPlatform(t *testing.T, center physics.Vector, width, height float64) ecs.EntityID {
	t.Helper()
	id, err := entities.NewPlatform(w.em, w.fake, center, width, height, 0.5)
	require.NoError(t, err)
	return id
}

func (w *testWorld) spawnPlayer(t *testing.T, pos physics.Vector) ecs.EntityID {
	t.Helper()
	id, err := entities.NewPlayer(w.em, w.fake, w.cfg, pos)
	require.NoError(t, err)
	return id
}

func (w *testWorld) spawnCreature(t *testing.T, pos physics.Vector) ecs.EntityID {
	t.Helper()
	id, err := entities.NewCreature(w.em, w.fake, w.cfg, pos, entities.CreatureTint(0, 1))
	require.NoError(t, err)
	return id
}

func (w *testWorld) spawnAttack(t *testing.T, owner ecs.EntityID, facing int) ecs.EntityID {
	t.Helper()
	pos, err := w.fake.Position(w.body(owner))
	require.NoError(t, err)
	id, err := entities.NewAttack(w.em, w.fake, w.cfg, owner, pos, facing)
	require.NoError(t, err)
	return id
}

func (w *testWorld) body(id ecs.EntityID) physics.BodyHandle {
	body, ok := ecs.GetComponent[*components.RigidBodyComponent](w.em, id)
	if !ok {
		return physics.BodyHandle{}
	}
	return body.Handle
}

func (w *testWorld) collider(id ecs.EntityID) physics.ColliderHandle {
	col, ok := ecs.GetComponent[*components.ColliderComponent](w.em, id)
	if !ok {
		return physics.ColliderHandle{}
	}
	return col.Handle
}

func (w *testWorld) contacts(id ecs.EntityID) []ecs.EntityID {
	list, ok := ecs.GetComponent[*components.ContactListComponent](w.em, id)
	if !ok {
		return nil
	}
	return list.Entities
}

func (w *testWorld) intersections(id ecs.EntityID) []ecs.EntityID {
	list, ok := ecs.GetComponent[*components.IntersectionListComponent](w.em, id)
	if !ok {
		return nil
	}
	return list.Entities
}

func (w *testWorld) velocity(t *testing.T, id ecs.EntityID) physics.Vector {
	t.Helper()
	v, err := w.fake.Velocity(w.body(id))
	require.NoError(t, err)
	return v
}

// flush 执行清理阶段（删除标记实体并移除刚体）
func (w *testWorld) flush() int {
	return NewRemovalSystem(w.em, w.fake, w.logger).Update(0)
}
