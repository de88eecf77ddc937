package input

// Script 按帧编排的输入来源
//
// Press 让动作在当前帧“刚按下”并保持按住，直到 Release；
// 每帧结束时调用 EndFrame 清除“刚按下”标记。
type Script struct {
	held [actionCount]bool
	just [actionCount]bool
}

var (
	_ Oracle     = (*Script)(nil)
	_ FrameEnder = (*Script)(nil)
)

// NewScript 创建没有任何按键的脚本输入
func NewScript() *Script {
	return &Script{}
}

// Press 按下动作（已按住的动作不会再次产生“刚按下”）
func (s *Script) Press(actions ...Action) {
	for _, a := range actions {
		if !s.held[a] {
			s.just[a] = true
		}
		s.held[a] = true
	}
}

// Tap 在当前帧产生一次“刚按下”，帧末自动松开
func (s *Script) Tap(a Action) {
	s.just[a] = true
}

// Release 松开动作
func (s *Script) Release(actions ...Action) {
	for _, a := range actions {
		s.held[a] = false
		s.just[a] = false
	}
}

func (s *Script) Pressed(a Action) bool {
	return s.held[a] || s.just[a]
}

func (s *Script) JustPressed(a Action) bool {
	return s.just[a]
}

// EndFrame 清除本帧的“刚按下”标记
func (s *Script) EndFrame() {
	s.just = [actionCount]bool{}
}
