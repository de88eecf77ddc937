package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/decker502/blobarena/pkg/embedded"
)

// SandboxConfig 沙盒全部可调参数
//
// 配置文件位置: data/sandbox.yaml
// 未出现在文件中的字段保留 DefaultSandboxConfig 的值。
type SandboxConfig struct {
	Physics  PhysicsConfig  `yaml:"physics"`
	Movement MovementConfig `yaml:"movement"`
	Patrol   PatrolConfig   `yaml:"patrol"`
	Combat   CombatConfig   `yaml:"combat"`
	Arena    ArenaConfig    `yaml:"arena"`
	Keys     KeyBindings    `yaml:"keys"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// Vec2 YAML 中的二维向量
type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// PhysicsConfig 物理空间参数
type PhysicsConfig struct {
	// Gravity 重力加速度（米/秒²，Y 轴向上）
	Gravity Vec2 `yaml:"gravity"`
	// PixelsPerMeter 像素与世界单位的换算比例
	PixelsPerMeter float64 `yaml:"pixelsPerMeter"`
	// TimeStep 固定物理步长（秒）
	TimeStep float64 `yaml:"timeStep"`
	// Iterations 求解器迭代次数，0 表示使用默认值
	Iterations int `yaml:"iterations"`
}

// MovementConfig 玩家移动参数
//
// 所有力和冲量都会乘以 质量 × ForceScale，使不同质量的角色手感一致。
type MovementConfig struct {
	ForceScale   float64 `yaml:"forceScale"`
	LateralForce float64 `yaml:"lateralForce"`
	Friction     float64 `yaml:"friction"`
	JumpImpulse  float64 `yaml:"jumpImpulse"`
	// RotateStep 每帧按住旋转键时角速度的增量（弧度/秒）
	RotateStep float64 `yaml:"rotateStep"`
}

// PatrolConfig 巡逻AI参数
type PatrolConfig struct {
	// HopImpulse 转向时施加的冲量，X 分量的符号由新朝向决定
	HopImpulse Vec2 `yaml:"hopImpulse"`
	// RestingSpeed 竖直速度绝对值不超过该值视为静止（未处于跳跃中）
	RestingSpeed float64 `yaml:"restingSpeed"`
	// RelaunchWhenStalled 停在平台中间时按当前朝向重新起跳
	RelaunchWhenStalled bool `yaml:"relaunchWhenStalled"`
	// StallSpeed 水平速度绝对值不超过该值视为停滞
	StallSpeed float64 `yaml:"stallSpeed"`
}

// CombatConfig 攻击与结算参数
type CombatConfig struct {
	Cooldown    float64 `yaml:"cooldown"`    // 两次攻击最小间隔（秒）
	Lifetime    float64 `yaml:"lifetime"`    // 攻击判定框存在时间（秒）
	SpawnOffset float64 `yaml:"spawnOffset"` // 判定框中心相对玩家沿朝向的偏移（米）
	Width       float64 `yaml:"width"`       // 判定框宽（米）
	Height      float64 `yaml:"height"`      // 判定框高（米）
	Speed       float64 `yaml:"speed"`       // 判定框沿朝向的飞行速度（米/秒）
	Knockback   Vec2    `yaml:"knockback"`   // 击退冲量，X 分量符号由攻击朝向决定，Y 恒为正
	Damage      int     `yaml:"damage"`      // 每次命中扣减的生命值
}

// ArenaConfig 场景布置参数（像素单位，与原型一致）
type ArenaConfig struct {
	PlayerSize  float64 `yaml:"playerSize"`
	PlayerMass  float64 `yaml:"playerMass"`
	PlayerSpawn Vec2    `yaml:"playerSpawn"`

	CreatureGrid     int     `yaml:"creatureGrid"` // 每边怪物数量，总数为其平方
	CreatureSize     float64 `yaml:"creatureSize"`
	CreatureMass     float64 `yaml:"creatureMass"`
	CreatureFriction float64 `yaml:"creatureFriction"`
	CreatureHealth   int     `yaml:"creatureHealth"`

	PlatformFriction float64         `yaml:"platformFriction"`
	Platforms        []PlatformBlock `yaml:"platforms"`
}

// PlatformBlock 一个静态矩形平台（中心坐标与尺寸，像素）
type PlatformBlock struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// KeyBindings 动作到按键名称的映射（按键名称与 ebiten.Key 的文本形式一致）
type KeyBindings struct {
	Jump      string `yaml:"jump"`
	Left      string `yaml:"left"`
	Right     string `yaml:"right"`
	RotateCW  string `yaml:"rotateCW"`
	RotateCCW string `yaml:"rotateCCW"`
	Fire      string `yaml:"fire"`
}

// LoggingConfig 日志参数
type LoggingConfig struct {
	Level       string `yaml:"level"`       // debug / info / warn / error
	Development bool   `yaml:"development"` // 开发模式使用可读的控制台格式
}

// DefaultSandboxConfig 返回默认配置
// 移动参数与场景尺寸沿用原型中的数值
func DefaultSandboxConfig() *SandboxConfig {
	return &SandboxConfig{
		Physics: PhysicsConfig{
			Gravity:        Vec2{X: 0, Y: -100},
			PixelsPerMeter: 20,
			TimeStep:       1.0 / 60.0,
			Iterations:     10,
		},
		Movement: MovementConfig{
			ForceScale:   2,
			LateralForce: 200,
			Friction:     10,
			JumpImpulse:  15,
			RotateStep:   0.2,
		},
		Patrol: PatrolConfig{
			HopImpulse:          Vec2{X: 0.3, Y: 1.0},
			RestingSpeed:        0.05,
			RelaunchWhenStalled: true,
			StallSpeed:          0.05,
		},
		Combat: CombatConfig{
			Cooldown:    0.4,
			Lifetime:    0.3,
			SpawnOffset: 1.0,
			Width:       0.8,
			Height:      0.8,
			Speed:       10,
			Knockback:   Vec2{X: 0.5, Y: 0.5},
			Damage:      1,
		},
		Arena: ArenaConfig{
			PlayerSize:       20,
			PlayerMass:       1,
			PlayerSpawn:      Vec2{X: 0, Y: 200},
			CreatureGrid:     4,
			CreatureSize:     50,
			CreatureMass:     0.1,
			CreatureFriction: 0.2,
			CreatureHealth:   10,
			PlatformFriction: 0.5,
			Platforms: []PlatformBlock{
				{X: 0, Y: -200, Width: 2000, Height: 100},
				{X: 0, Y: 400, Width: 2000, Height: 100},
				{X: -600, Y: 0, Width: 100, Height: 2000},
				{X: 600, Y: 0, Width: 100, Height: 2000},
			},
		},
		Keys: KeyBindings{
			Jump:      "ArrowUp",
			Left:      "ArrowLeft",
			Right:     "ArrowRight",
			RotateCW:  "X",
			RotateCCW: "Z",
			Fire:      "Space",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadSandboxConfig 加载沙盒配置
//
// 从指定路径加载 YAML 格式的配置文件，覆盖在默认配置之上。
//
// 参数:
//   - path: 配置文件路径（如 "data/sandbox.yaml"）
//
// 返回:
//   - *SandboxConfig: 加载并验证后的配置
//   - error: 读取、解析或验证失败时返回错误
func LoadSandboxConfig(path string) (*SandboxConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sandbox config: %w", err)
	}
	return ParseSandboxConfig(data)
}

// LoadSandboxConfigWithFallback 同 LoadSandboxConfig，但磁盘上没有该文件时
// 读取嵌入的同名文件（需先调用 embedded.Init）
func LoadSandboxConfigWithFallback(path string) (*SandboxConfig, error) {
	data, err := embedded.ReadFileWithFallback(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sandbox config: %w", err)
	}
	return ParseSandboxConfig(data)
}

// ParseSandboxConfig 从 YAML 数据解析配置
func ParseSandboxConfig(data []byte) (*SandboxConfig, error) {
	config := DefaultSandboxConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse sandbox config: %w", err)
	}

	// 验证配置
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sandbox config: %w", err)
	}

	return config, nil
}

// Validate 验证配置有效性
//
// 检查：
//   - 时间步长、换算比例、质量、尺寸必须为正
//   - 攻击存活时间、伤害、怪物生命必须为正，冷却不能为负
//   - 击退的竖直分量必须为正（怪物总是被向上弹起）
//   - 所有动作都必须绑定按键
func (c *SandboxConfig) Validate() error {
	if c.Physics.TimeStep <= 0 {
		return fmt.Errorf("physics.timeStep must be > 0, got %v", c.Physics.TimeStep)
	}
	if c.Physics.PixelsPerMeter <= 0 {
		return fmt.Errorf("physics.pixelsPerMeter must be > 0, got %v", c.Physics.PixelsPerMeter)
	}
	if c.Physics.Iterations < 0 {
		return fmt.Errorf("physics.iterations must be >= 0, got %d", c.Physics.Iterations)
	}

	if c.Movement.ForceScale <= 0 {
		return fmt.Errorf("movement.forceScale must be > 0, got %v", c.Movement.ForceScale)
	}
	if c.Movement.Friction < 0 || c.Movement.LateralForce < 0 || c.Movement.JumpImpulse < 0 || c.Movement.RotateStep < 0 {
		return fmt.Errorf("movement magnitudes must be >= 0")
	}

	if c.Patrol.RestingSpeed < 0 || c.Patrol.StallSpeed < 0 {
		return fmt.Errorf("patrol speeds must be >= 0")
	}
	if c.Patrol.HopImpulse.X < 0 {
		return fmt.Errorf("patrol.hopImpulse.x must be >= 0 (sign comes from heading), got %v", c.Patrol.HopImpulse.X)
	}

	if c.Combat.Cooldown < 0 {
		return fmt.Errorf("combat.cooldown must be >= 0, got %v", c.Combat.Cooldown)
	}
	if c.Combat.Lifetime <= 0 {
		return fmt.Errorf("combat.lifetime must be > 0, got %v", c.Combat.Lifetime)
	}
	if c.Combat.Width <= 0 || c.Combat.Height <= 0 {
		return fmt.Errorf("combat hitbox size must be > 0, got %vx%v", c.Combat.Width, c.Combat.Height)
	}
	if c.Combat.Damage <= 0 {
		return fmt.Errorf("combat.damage must be > 0, got %d", c.Combat.Damage)
	}
	if c.Combat.Knockback.Y <= 0 {
		return fmt.Errorf("combat.knockback.y must be > 0, got %v", c.Combat.Knockback.Y)
	}

	if c.Arena.PlayerSize <= 0 || c.Arena.PlayerMass <= 0 {
		return fmt.Errorf("arena player size and mass must be > 0")
	}
	if c.Arena.CreatureGrid < 0 {
		return fmt.Errorf("arena.creatureGrid must be >= 0, got %d", c.Arena.CreatureGrid)
	}
	if c.Arena.CreatureGrid > 0 && (c.Arena.CreatureSize <= 0 || c.Arena.CreatureMass <= 0) {
		return fmt.Errorf("arena creature size and mass must be > 0")
	}
	if c.Arena.CreatureHealth <= 0 {
		return fmt.Errorf("arena.creatureHealth must be > 0, got %d", c.Arena.CreatureHealth)
	}
	for i, p := range c.Arena.Platforms {
		if p.Width <= 0 || p.Height <= 0 {
			return fmt.Errorf("arena.platforms[%d] size must be > 0, got %vx%v", i, p.Width, p.Height)
		}
	}

	bindings := map[string]string{
		"jump":      c.Keys.Jump,
		"left":      c.Keys.Left,
		"right":     c.Keys.Right,
		"rotateCW":  c.Keys.RotateCW,
		"rotateCCW": c.Keys.RotateCCW,
		"fire":      c.Keys.Fire,
	}
	for action, key := range bindings {
		if key == "" {
			return fmt.Errorf("keys.%s is not bound", action)
		}
	}

	return nil
}

// ToMeters 将像素换算为世界单位
func (c *SandboxConfig) ToMeters(pixels float64) float64 {
	return pixels / c.Physics.PixelsPerMeter
}
