// Package app 提供应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"time"

	"github.com/decker502/giftbox/pkg/config"
	"github.com/decker502/giftbox/pkg/embedded"
	"github.com/decker502/giftbox/pkg/flow"
	"github.com/decker502/giftbox/pkg/game"
	"github.com/decker502/giftbox/pkg/media"
	"github.com/decker502/giftbox/pkg/scenes"
	"github.com/decker502/giftbox/pkg/timeline"
	"github.com/decker502/giftbox/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// SampleRate 音频采样率
const SampleRate = 48000

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 配置文件路径，为空则使用内嵌的 data/giftbox.yaml
	ConfigPath string
	// MusicPath 覆盖配置中的背景音乐路径
	MusicPath string
	// Device 强制设备档位，为空则自动检测
	Device config.DeviceClass
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	scheduler    *timeline.Scheduler
	ticker       *timeline.Ticker
	reel         *media.IntroReel
	swipe        *scenes.SwipeOverlay
	flow         *flow.PageFlow

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// pointerProbe 把 utils.AnyPointerJustPressed 适配为 flow.InputProbe
type pointerProbe struct{}

func (pointerProbe) AnyPointerJustPressed() bool { return utils.AnyPointerJustPressed() }

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	gcfg, err := loadConfig(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}
	if cfg.MusicPath != "" {
		gcfg.Media.MusicPath = cfg.MusicPath
	}

	device := cfg.Device
	if device == "" {
		device = config.DetectDeviceClass()
	}
	profile := gcfg.Profile(device)
	log.Printf("[App] Device profile %s: %+v", device, profile)

	// 时钟与调度器：所有延迟回调都挂在同一个调度器上
	clock := timeline.NewWallClock()
	scheduler := timeline.NewScheduler(clock)
	ticker := timeline.NewTicker(clock, gcfg.Timing.MaxFrameDelta())
	haptics := media.NewScheduledHaptics(scheduler, media.EbitenVibrate)

	// 初始化音频上下文和资源
	audioContext := audio.NewContext(SampleRate)
	resourceManager := game.NewResourceManager(audioContext)
	audioManager := game.NewAudioManager(resourceManager)
	music := audioManager.LoadMusic(gcfg.Media.MusicPath)
	log.Printf("[App] AudioManager initialized")

	faces, errs := resourceManager.LoadImages(gcfg.Media.FacePhotos)
	for _, e := range errs {
		log.Printf("[App] Warning: face photo skipped: %v", e)
	}

	background := config.MustColor(gcfg.Palette.Background)
	reel := media.NewIntroReel(gcfg.Reel, gcfg.Media.ReelDuration, audioManager)
	cardFace, _ := resourceManager.Font(gcfg.Media.FontPath, 36)
	promptFace, _ := resourceManager.Font(gcfg.Media.FontPath, 24)
	videoScene := scenes.NewVideoScene(reel, faces, background, cardFace, promptFace)

	giftScene, err := scenes.NewGiftScene(scenes.GiftSceneConfig{
		Profile:         profile,
		Palette:         gcfg.Palette,
		Letter:          gcfg.Letter,
		FireworkStagger: gcfg.Timing.FireworkStagger(),
		FaceImages:      faces,
		FontPath:        gcfg.Media.FontPath,
		Width:           config.GameWindowWidth,
		Height:          config.GameWindowHeight,
		Seed:            time.Now().UnixNano(),
	}, scheduler, resourceManager, haptics, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("礼盒场景创建失败: %w", err)
	}

	// 创建场景管理器
	sceneManager := game.NewSceneManager()
	sceneManager.Register(scenes.SectionVideo, videoScene)
	sceneManager.Register(scenes.SectionGift, giftScene)

	swipe := scenes.NewSwipeOverlay(clock, gcfg.Timing.SwipeDuration(), []color.RGBA{
		config.MustColor(gcfg.Palette.BoxBase),
		config.MustColor(gcfg.Palette.Ribbon),
		config.MustColor(gcfg.Palette.BoxLid),
	})

	pageFlow := flow.NewPageFlow(scheduler, gcfg.Timing, flow.Collaborators{
		Video:       reel,
		Music:       music,
		Sections:    scenes.NewSections(sceneManager, giftScene),
		Overlay:     swipe,
		Letter:      giftScene.Letter(),
		CloseButton: giftScene.Letter(),
		Prompt:      videoScene,
		Input:       pointerProbe{},
		Haptics:     haptics,
	})
	giftScene.OnOpened = pageFlow.NotifyGiftOpened
	giftScene.OnReopen = pageFlow.ReopenLetter
	pageFlow.Start()

	return &App{
		sceneManager: sceneManager,
		scheduler:    scheduler,
		ticker:       ticker,
		reel:         reel,
		swipe:        swipe,
		flow:         pageFlow,
	}, nil
}

// loadConfig 读取指定配置文件，未指定时读取内嵌配置
// 内嵌配置缺失时使用内置默认值
func loadConfig(path string) (*config.GiftBoxConfig, error) {
	if path != "" {
		gcfg, err := config.LoadGiftBoxConfig(path)
		if err != nil {
			return nil, fmt.Errorf("配置加载失败: %w", err)
		}
		log.Printf("[Config] Loaded %s", path)
		return gcfg, nil
	}

	data, err := embedded.ReadFileOrDisk(config.DefaultConfigPath)
	if err != nil {
		log.Printf("[Config] Warning: %s unavailable (%v), using built-in defaults", config.DefaultConfigPath, err)
		return config.DefaultConfig(), nil
	}
	gcfg, err := config.ParseGiftBoxConfig(data)
	if err != nil {
		return nil, fmt.Errorf("内嵌配置解析失败: %w", err)
	}
	log.Printf("[Config] Loaded embedded %s", config.DefaultConfigPath)
	return gcfg, nil
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
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
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	deltaTime := a.ticker.Tick()
	a.reel.Update(deltaTime)
	a.scheduler.Update()
	a.flow.Update()
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制画面
// 每帧调用一次，擦除动画覆盖在所有区块之上
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
	a.swipe.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 逻辑屏幕尺寸跟随窗口，尺寸变化时通知各区块
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return config.GameWindowWidth, config.GameWindowHeight
	}
	a.sceneManager.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
