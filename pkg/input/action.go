// Package input 定义玩家动作与输入来源之间的边界
//
// 游戏逻辑只通过 Oracle 询问“某个动作是否按住/刚按下”，
// 真实键盘（ebiten）和脚本输入（无窗口运行、测试）都实现该接口。
package input

// Action 玩家动作（封闭集合）
type Action int

const (
	ActionJump Action = iota
	ActionLeft
	ActionRight
	ActionRotateCW
	ActionRotateCCW
	ActionFire

	actionCount
)

// Actions 全部动作，按定义顺序
var Actions = []Action{ActionJump, ActionLeft, ActionRight, ActionRotateCW, ActionRotateCCW, ActionFire}

// String 返回动作名称（与配置文件 keys 节的字段名一致）
func (a Action) String() string {
	switch a {
	case ActionJump:
		return "jump"
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	case ActionRotateCW:
		return "rotateCW"
	case ActionRotateCCW:
		return "rotateCCW"
	case ActionFire:
		return "fire"
	}
	return "unknown"
}

// Oracle 每个动作一个布尔值的输入来源
type Oracle interface {
	// Pressed 动作当前是否按住
	Pressed(a Action) bool
	// JustPressed 动作是否在本帧刚刚按下
	JustPressed(a Action) bool
}

// FrameEnder 需要在帧末推进内部状态的输入来源（如 Script）
type FrameEnder interface {
	EndFrame()
}
