// Package app 提供沙盒应用的窗口包装器
//
// 该包把模拟内核接入 ebiten 游戏循环：键盘作为输入来源，
// Chipmunk 空间作为物理求解器，每个 tick 执行一帧，并以包围盒绘制所有实体。
package app

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/decker502/blobarena/pkg/components"
	"github.com/decker502/blobarena/pkg/config"
	"github.com/decker502/blobarena/pkg/game"
	"github.com/decker502/blobarena/pkg/input"
	"github.com/decker502/blobarena/pkg/logging"
	"github.com/decker502/blobarena/pkg/physics"
	"github.com/decker502/blobarena/pkg/physics/cpspace"
)

const (
	// ScreenWidth / ScreenHeight 逻辑屏幕尺寸（像素）
	ScreenWidth  = 1400
	ScreenHeight = 760

	// 世界原点在屏幕上的位置
	originX = ScreenWidth / 2
	originY = 480
)

var backgroundColor = color.RGBA{R: 24, G: 24, B: 32, A: 255}

// Config 定义应用启动配置
type Config struct {
	// ConfigPath 沙盒配置文件路径
	ConfigPath string
	// Verbose 启用详细日志输出（debug 级别，控制台格式）
	Verbose bool
}

// App 沙盒应用，实现 ebiten.Game 接口
type App struct {
	sandbox *game.Sandbox
	config  *config.SandboxConfig
	logger  *zap.Logger

	paused    bool
	stepOnce  bool
	showStats bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 加载配置并创建沙盒应用
func NewApp(cfg Config) (*App, error) {
	// 磁盘上没有配置文件时使用嵌入的默认配置
	sandboxConfig, err := config.LoadSandboxConfigWithFallback(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}
	if cfg.Verbose {
		sandboxConfig.Logging.Level = "debug"
		sandboxConfig.Logging.Development = true
	}

	logger, err := logging.New(sandboxConfig.Logging)
	if err != nil {
		return nil, err
	}

	keyboard, err := input.NewKeyboard(sandboxConfig.Keys)
	if err != nil {
		return nil, fmt.Errorf("按键绑定无效: %w", err)
	}

	gravity := physics.Vector{X: sandboxConfig.Physics.Gravity.X, Y: sandboxConfig.Physics.Gravity.Y}
	space := cpspace.New(gravity, sandboxConfig.Physics.Iterations, logger)

	sandbox := game.NewSandbox(sandboxConfig, space, keyboard, logger)
	if err := sandbox.Setup(); err != nil {
		return nil, err
	}

	logger.Info("sandbox started",
		zap.String("config", cfg.ConfigPath),
		zap.Float64("timeStep", sandboxConfig.Physics.TimeStep))

	return &App{
		sandbox:   sandbox,
		config:    sandboxConfig,
		logger:    logger.Named("app"),
		showStats: true,
	}, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次，执行一帧固定步长的模拟
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	// P 暂停，N 暂停时单步，F1 显示统计
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.paused = !a.paused
		a.logger.Info("pause toggled", zap.Bool("paused", a.paused))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		a.stepOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		a.showStats = !a.showStats
	}

	if a.paused && !a.stepOnce {
		return nil
	}
	a.stepOnce = false

	a.sandbox.Update(a.config.Physics.TimeStep)
	return nil
}

// Draw 以包围盒绘制所有实体
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	ppm := a.config.Physics.PixelsPerMeter
	creatures := 0
	for _, body := range a.sandbox.Bodies() {
		if body.Class == components.ClassCreature {
			creatures++
		}
		x, y, w, h := ScreenRect(body.Bounds, ppm)
		vector.DrawFilledRect(screen, x, y, w, h, body.Visual.TintedColor(), false)
	}

	if a.showStats {
		clock := a.sandbox.Clock()
		status := fmt.Sprintf("frame %d  t=%.1fs  creatures %d  attacks %d",
			clock.Frame, clock.Now, creatures, a.sandbox.CountClass(components.ClassAttack))
		if a.paused {
			status += "  [paused]"
		}
		ebitenutil.DebugPrintAt(screen, status, 10, 10)
	}
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// Logger 返回应用日志器（供 main 在退出时 Sync）
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// ScreenRect 将世界坐标下的包围盒转换为屏幕矩形（左上角与尺寸）
// 世界 Y 轴向上，屏幕 Y 轴向下
func ScreenRect(box physics.AABB, pixelsPerMeter float64) (x, y, w, h float32) {
	x = float32(originX + box.Min.X*pixelsPerMeter)
	y = float32(originY - box.Max.Y*pixelsPerMeter)
	w = float32(box.Width() * pixelsPerMeter)
	h = float32(box.Height() * pixelsPerMeter)
	return x, y, w, h
}
