package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupsAreDisjointSingleBits(t *testing.T) {
	groups := []Group{GroupWorld, GroupPlayer, GroupCreature, GroupAttack}
	var seen Group
	for _, g := range groups {
		assert.NotZero(t, g)
		assert.Zero(t, g&(g-1), "分组 %b 不是单比特", g)
		assert.Zero(t, seen&g, "分组 %b 与其他分组重叠", g)
		seen |= g
	}
}

func TestInteractsWith(t *testing.T) {
	tests := []struct {
		name string
		a, b CollisionGroups
		want bool
	}{
		{"玩家与地形", GroupsFor(GroupPlayer), GroupsFor(GroupWorld), true},
		{"玩家与怪物", GroupsFor(GroupPlayer), GroupsFor(GroupCreature), true},
		{"怪物与怪物", GroupsFor(GroupCreature), GroupsFor(GroupCreature), true},
		{"玩家攻击与怪物", AttackGroups(GroupPlayer), GroupsFor(GroupCreature), true},
		{"玩家攻击与玩家", AttackGroups(GroupPlayer), GroupsFor(GroupPlayer), false},
		{"玩家攻击与地形", AttackGroups(GroupPlayer), GroupsFor(GroupWorld), false},
		{"攻击与攻击", AttackGroups(GroupPlayer), AttackGroups(GroupPlayer), false},
		{"怪物攻击与怪物", AttackGroups(GroupCreature), GroupsFor(GroupCreature), false},
		{"未知分组", GroupsFor(GroupNone), GroupsFor(GroupWorld), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.InteractsWith(tt.b))
			assert.Equal(t, tt.want, tt.b.InteractsWith(tt.a), "交互判定必须对称")
		})
	}
}

func TestAABBHelpers(t *testing.T) {
	box := AABB{Min: Vector{X: -1, Y: 2}, Max: Vector{X: 3, Y: 4}}
	assert.Equal(t, 4.0, box.Width())
	assert.Equal(t, 2.0, box.Height())
	assert.Equal(t, Vector{X: 1, Y: 3}, box.Center())
	assert.True(t, BodyHandle{}.IsZero())
	assert.False(t, ColliderHandle{Index: 0, Generation: 1}.IsZero())
}
