package entities

import (
	"image/color"

	"github.com/decker502/blobarena/pkg/components"
	"github.com/decker502/blobarena/pkg/ecs"
	"github.com/decker502/blobarena/pkg/physics"
)

// PlatformColor 平台的调试绘制颜色
var PlatformColor = color.NRGBA{R: 0, G: 255, B: 0, A: 51}

// NewPlatform 创建静态矩形平台
//
// 参数:
//   - em: 实体管理器
//   - oracle: 物理求解器
//   - center: 平台中心（世界单位）
//   - width, height: 平台尺寸（世界单位）
//   - friction: 表面摩擦系数
//
// 返回:
//   - ecs.EntityID: 平台实体ID
//   - error: 尺寸非法或求解器拒绝时返回错误
func NewPlatform(em *ecs.EntityManager, oracle physics.Oracle, center physics.Vector, width, height, friction float64) (ecs.EntityID, error) {
	id, err := spawnBody(em, oracle, components.ClassPlatform,
		physics.BodyDef{Kind: physics.BodyStatic, Position: center},
		physics.ColliderDef{
			Width:    width,
			Height:   height,
			Friction: friction,
			Groups:   physics.GroupsFor(physics.GroupWorld),
		})
	if err != nil {
		return 0, err
	}
	em.AddComponent(id, &components.VisualComponent{Color: PlatformColor, Intensity: 1})
	return id, nil
}
