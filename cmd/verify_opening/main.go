// Package main provides an opening sequence verification tool for testing and debugging
// the gift box open transition.
//
// Usage:
//
//	go run ./cmd/verify_opening [flags]
//
// Flags:
//
//	--headless       Drive the sequence with a fake clock and print checkpoints (default true)
//	--mobile         Use the mobile device profile
//	--step <ms>      Fake clock step in headless mode (default 16)
//	--verbose        Enable verbose logging
//
// Controls (windowed mode):
//
//	Space  - Open the box
//	R      - Restart
//	Q      - Quit
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/decker502/giftbox/pkg/components"
	"github.com/decker502/giftbox/pkg/config"
	"github.com/decker502/giftbox/pkg/scenes"
	"github.com/decker502/giftbox/pkg/timeline"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var (
	headlessFlag = flag.Bool("headless", true, "Run without a window and print checkpoints")
	mobileFlag   = flag.Bool("mobile", false, "Use the mobile device profile")
	stepFlag     = flag.Int("step", 16, "Fake clock step in milliseconds (headless)")
	verboseFlag  = flag.Bool("verbose", false, "Enable verbose logging")
)

var errQuit = errors.New("quit")

// idlePointer 无输入的指针
type idlePointer struct{}

func (idlePointer) Position() (int, int) { return -1, -1 }
func (idlePointer) IsPressed() bool      { return false }
func (idlePointer) Wheel() float64       { return 0 }

func deviceClass() config.DeviceClass {
	if *mobileFlag {
		return config.DeviceMobile
	}
	return config.DeviceDesktop
}

func newScene(scheduler *timeline.Scheduler, headless bool) (*scenes.GiftScene, config.DeviceProfile, error) {
	cfg := config.DefaultConfig()
	profile := cfg.Profile(deviceClass())
	sceneCfg := scenes.GiftSceneConfig{
		Profile:         profile,
		Palette:         cfg.Palette,
		Letter:          cfg.Letter,
		FireworkStagger: cfg.Timing.FireworkStagger(),
		Width:           config.GameWindowWidth,
		Height:          config.GameWindowHeight,
		Seed:            1,
	}
	if headless {
		scene, err := scenes.NewGiftScene(sceneCfg, scheduler, nil, nil, idlePointer{}, noCursor{})
		return scene, profile, err
	}
	scene, err := scenes.NewGiftScene(sceneCfg, scheduler, nil, nil, nil, nil)
	return scene, profile, err
}

type noCursor struct{}

func (noCursor) SetCursorShape(ebiten.CursorShapeType) {}

// runHeadless 用假时钟推进打开动画并打印检查点
func runHeadless() error {
	clock := timeline.NewFakeClock()
	scheduler := timeline.NewScheduler(clock)
	scene, profile, err := newScene(scheduler, true)
	if err != nil {
		return err
	}

	step := time.Duration(*stepFlag) * time.Millisecond
	if step <= 0 {
		return fmt.Errorf("step must be positive, got %v", step)
	}

	open := scene.OpenSequence()
	opened := false
	scene.OnOpened = func() { opened = true }

	fmt.Printf("device=%s duration=%v zoom=%v bursts=%d particles=%d\n",
		deviceClass(), profile.OpenDuration(), profile.CameraZoom, profile.FireworkBursts, profile.FireworkParticles)

	start := clock.Now()
	if !open.Trigger() {
		return fmt.Errorf("trigger refused in state %s", open.State())
	}

	checkpoints := []time.Duration{0, 625 * time.Millisecond, 1250 * time.Millisecond, 1875 * time.Millisecond, 2500 * time.Millisecond}
	next := 0
	end := profile.OpenDuration() + time.Duration(profile.FireworkBursts)*400*time.Millisecond + 3*time.Second

	for elapsed := time.Duration(0); elapsed <= end; elapsed = clock.Now() - start {
		for next < len(checkpoints) && elapsed >= checkpoints[next] {
			fmt.Printf("t=%6v state=%-8s progress=%.3f eased=%.3f bursts=%d entities=%d\n",
				elapsed, open.State(), open.Progress(), open.Eased(),
				scene.Fireworks().ActiveBursts(), scene.EntityManager().EntityCount())
			next++
		}
		clock.Advance(step)
		scheduler.Update()
		scene.Update(step.Seconds())
	}

	fmt.Printf("final state=%s opened=%v bursts=%d pending=%d\n",
		open.State(), opened, scene.Fireworks().ActiveBursts(), scheduler.Pending())
	if open.State() != components.OpenStateOpened || !opened {
		return fmt.Errorf("sequence did not complete")
	}
	return nil
}

// verifyGame 窗口模式
type verifyGame struct {
	scheduler *timeline.Scheduler
	ticker    *timeline.Ticker
	scene     *scenes.GiftScene
	openedAt  time.Duration
}

func newVerifyGame() (*verifyGame, error) {
	clock := timeline.NewWallClock()
	scheduler := timeline.NewScheduler(clock)
	scene, _, err := newScene(scheduler, false)
	if err != nil {
		return nil, err
	}
	g := &verifyGame{
		scheduler: scheduler,
		ticker:    timeline.NewTicker(clock, timeline.DefaultMaxDelta),
		scene:     scene,
	}
	scene.OnOpened = func() {
		g.openedAt = clock.Now()
		log.Printf("[VerifyOpening] Opened at %v", g.openedAt)
	}
	scene.ScrollIntoView()
	return g, nil
}

func (g *verifyGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return errQuit
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		log.Println("[VerifyOpening] Restarting...")
		ng, err := newVerifyGame()
		if err != nil {
			return err
		}
		*g = *ng
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.scene.OpenSequence().Trigger()
	}

	dt := g.ticker.Tick()
	g.scheduler.Update()
	g.scene.Update(dt)
	return nil
}

func (g *verifyGame) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
	open := g.scene.OpenSequence()
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"Opening Sequence Verifier\n"+
			"State: %s  Progress: %.3f  Eased: %.3f\n"+
			"Bursts: %d  Entities: %d  Pending: %d\n"+
			"Space: open | R: restart | Q: quit",
		open.State(), open.Progress(), open.Eased(),
		g.scene.Fireworks().ActiveBursts(), g.scene.EntityManager().EntityCount(), g.scheduler.Pending(),
	))
}

func (g *verifyGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

func main() {
	flag.Parse()

	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	if *headlessFlag {
		if err := runHeadless(); err != nil {
			fmt.Fprintf(os.Stderr, "verify failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	g, err := newVerifyGame()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create scene: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Opening Sequence Verifier")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, errQuit) {
		fmt.Fprintf(os.Stderr, "Game error: %v\n", err)
		os.Exit(1)
	}
}
