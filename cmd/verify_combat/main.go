// verify_combat 无窗口运行沙盒，用脚本输入驱动玩家攻击，并逐秒打印怪物状态
//
// 用法:
//
//	go run ./cmd/verify_combat -frames 1800 -fire-every 20
//
// 每帧结束后检查：所有事件列表为空、不存在生命值 <= 0 的怪物。
// 检查失败时以非零状态退出。
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/decker502/blobarena/data"
	"github.com/decker502/blobarena/pkg/components"
	"github.com/decker502/blobarena/pkg/config"
	"github.com/decker502/blobarena/pkg/ecs"
	"github.com/decker502/blobarena/pkg/embedded"
	"github.com/decker502/blobarena/pkg/game"
	"github.com/decker502/blobarena/pkg/input"
	"github.com/decker502/blobarena/pkg/logging"
	"github.com/decker502/blobarena/pkg/physics"
	"github.com/decker502/blobarena/pkg/physics/cpspace"
)

var (
	configPath = flag.String("config", "data/sandbox.yaml", "沙盒配置文件路径")
	frames     = flag.Int("frames", 1800, "模拟帧数")
	fireEvery  = flag.Int("fire-every", 20, "每隔多少帧攻击一次")
	turnEvery  = flag.Int("turn-every", 180, "每隔多少帧改变行走方向")
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
)

func main() {
	flag.Parse()

	// 在仓库外运行时使用嵌入的默认配置
	embedded.Init(data.FS)
	cfg, err := config.LoadSandboxConfigWithFallback(*configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	if *verbose {
		cfg.Logging.Level = "debug"
		cfg.Logging.Development = true
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("创建日志器失败: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	gravity := physics.Vector{X: cfg.Physics.Gravity.X, Y: cfg.Physics.Gravity.Y}
	space := cpspace.New(gravity, cfg.Physics.Iterations, logger)
	script := input.NewScript()
	sandbox := game.NewSandbox(cfg, space, script, logger)
	if err := sandbox.Setup(); err != nil {
		log.Fatalf("布置场景失败: %v", err)
	}

	framesPerSecond := int(1/cfg.Physics.TimeStep + 0.5)
	failures := 0

	fmt.Printf("=== verify_combat: %d frames, fire every %d ===\n", *frames, *fireEvery)
	for frame := 0; frame < *frames; frame++ {
		drive(script, frame)
		sandbox.Update(cfg.Physics.TimeStep)

		if msg := checkFrame(sandbox); msg != "" {
			failures++
			fmt.Printf("[FAIL] frame %d: %s\n", frame+1, msg)
		}
		if framesPerSecond > 0 && (frame+1)%framesPerSecond == 0 {
			report(sandbox)
		}
	}

	fmt.Println("=== summary ===")
	report(sandbox)
	if failures > 0 {
		fmt.Printf("%d frame checks failed\n", failures)
		os.Exit(1)
	}
	fmt.Println("all frame checks passed")
}

// drive 按帧编排玩家输入：周期性攻击，并定期掉头行走
func drive(script *input.Script, frame int) {
	if *fireEvery > 0 && frame%*fireEvery == 0 {
		script.Tap(input.ActionFire)
	}
	if *turnEvery <= 0 {
		return
	}
	if (frame / *turnEvery)%2 == 0 {
		script.Release(input.ActionLeft)
		script.Press(input.ActionRight)
	} else {
		script.Release(input.ActionRight)
		script.Press(input.ActionLeft)
	}
	if frame%*turnEvery == 0 {
		script.Tap(input.ActionJump)
	}
}

// checkFrame 检查帧结束时的不变量，返回空字符串表示通过
func checkFrame(sandbox *game.Sandbox) string {
	em := sandbox.EntityManager()
	for _, id := range ecs.GetEntitiesWith1[*components.ContactListComponent](em) {
		list, _ := ecs.GetComponent[*components.ContactListComponent](em, id)
		if len(list.Entities) > 0 {
			return fmt.Sprintf("entity %d contact list not cleared", id)
		}
	}
	for _, id := range ecs.GetEntitiesWith1[*components.IntersectionListComponent](em) {
		list, _ := ecs.GetComponent[*components.IntersectionListComponent](em, id)
		if len(list.Entities) > 0 {
			return fmt.Sprintf("entity %d intersection list not cleared", id)
		}
	}
	for _, id := range ecs.GetEntitiesWith1[*components.HealthComponent](em) {
		health, _ := ecs.GetComponent[*components.HealthComponent](em, id)
		if health.IsDead() {
			return fmt.Sprintf("dead entity %d survived cleanup (health %d)", id, health.CurrentHealth)
		}
	}
	return ""
}

// report 打印当前怪物状态
func report(sandbox *game.Sandbox) {
	clock := sandbox.Clock()
	total, count := 0, 0
	for _, body := range sandbox.Bodies() {
		if body.Class != components.ClassCreature {
			continue
		}
		count++
		total += body.Health
	}
	fmt.Printf("t=%5.1fs frame=%5d creatures=%2d totalHealth=%3d attacks=%d\n",
		clock.Now, clock.Frame, count, total, sandbox.CountClass(components.ClassAttack))
}
