package systems

// Clock 沙盒时钟
// 由调度器在每帧开始时推进，攻击冷却和事件清理都以它为准
type Clock struct {
	Now   float64 // 累计模拟时间（秒）
	Frame uint64  // 已开始的帧数，第一帧为 1
}

// Advance 开始新的一帧
func (c *Clock) Advance(deltaTime float64) {
	c.Now += deltaTime
	c.Frame++
}
