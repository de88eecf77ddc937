package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/blobarena/data"
	"github.com/decker502/blobarena/pkg/app"
	"github.com/decker502/blobarena/pkg/embedded"
)

var (
	configPath = flag.String("config", "data/sandbox.yaml", "沙盒配置文件路径")
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源，必须在加载配置之前
	embedded.Init(data.FS)

	game, err := app.NewApp(app.Config{
		ConfigPath: *configPath,
		Verbose:    *verbose,
	})
	if err != nil {
		log.Fatalf("启动失败: %v", err)
	}
	defer func() { _ = game.Logger().Sync() }()

	ebiten.SetWindowSize(app.ScreenWidth*3/4, app.ScreenHeight*3/4)
	ebiten.SetWindowTitle("Blob Arena")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	// 启动游戏循环，窗口关闭前反复调用 Update() 和 Draw()
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
