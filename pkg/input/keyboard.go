package input

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/blobarena/pkg/config"
)

// Keyboard 基于 ebiten 键盘状态的输入来源
// 只能在 ebiten 游戏循环内查询
type Keyboard struct {
	keys [actionCount]ebiten.Key
}

var _ Oracle = (*Keyboard)(nil)

// ParseKey 将按键名称（如 "ArrowUp"、"Space"、"Z"）解析为 ebiten.Key
func ParseKey(name string) (ebiten.Key, error) {
	var key ebiten.Key
	if err := key.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("unknown key %q: %w", name, err)
	}
	return key, nil
}

// NewKeyboard 根据按键绑定创建键盘输入
//
// 参数:
//   - bindings: 配置中的动作→按键名称映射
//
// 返回:
//   - *Keyboard: 键盘输入来源
//   - error: 任一按键名称无法识别时返回错误
func NewKeyboard(bindings config.KeyBindings) (*Keyboard, error) {
	names := map[Action]string{
		ActionJump:      bindings.Jump,
		ActionLeft:      bindings.Left,
		ActionRight:     bindings.Right,
		ActionRotateCW:  bindings.RotateCW,
		ActionRotateCCW: bindings.RotateCCW,
		ActionFire:      bindings.Fire,
	}

	kb := &Keyboard{}
	for _, action := range Actions {
		key, err := ParseKey(names[action])
		if err != nil {
			return nil, fmt.Errorf("keys.%s: %w", action, err)
		}
		kb.keys[action] = key
	}
	return kb, nil
}

// Key 返回动作绑定的按键
func (k *Keyboard) Key(a Action) ebiten.Key {
	return k.keys[a]
}

func (k *Keyboard) Pressed(a Action) bool {
	return ebiten.IsKeyPressed(k.keys[a])
}

func (k *Keyboard) JustPressed(a Action) bool {
	return inpututil.IsKeyJustPressed(k.keys[a])
}
