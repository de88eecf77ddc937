package components

// PatrolComponent 巡逻怪物的朝向状态
// 只由巡逻系统修改
type PatrolComponent struct {
	Heading int // +1 向右，-1 向左
}

// HeadingRight 当前是否向右巡逻
func (p *PatrolComponent) HeadingRight() bool {
	return p.Heading >= 0
}
