package components

import "image/color"

// VisualComponent 实体的调试绘制信息
type VisualComponent struct {
	Color color.NRGBA // 基础颜色
	// Intensity 不透明度系数 [0, 1]，怪物受伤后按剩余生命比例淡出
	Intensity float64
}

// TintedColor 返回应用了 Intensity 的颜色
func (v *VisualComponent) TintedColor() color.NRGBA {
	c := v.Color
	c.A = uint8(float64(c.A) * clamp01(v.Intensity))
	return c
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
