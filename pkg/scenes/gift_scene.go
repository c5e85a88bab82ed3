package scenes

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"math/rand"
	"time"

	"github.com/decker502/giftbox/pkg/components"
	"github.com/decker502/giftbox/pkg/config"
	"github.com/decker502/giftbox/pkg/ecs"
	"github.com/decker502/giftbox/pkg/entities"
	"github.com/decker502/giftbox/pkg/game"
	"github.com/decker502/giftbox/pkg/media"
	"github.com/decker502/giftbox/pkg/stage"
	"github.com/decker502/giftbox/pkg/systems"
	"github.com/decker502/giftbox/pkg/timeline"
	"github.com/decker502/giftbox/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 礼盒区块的界面文字
const (
	InstructionText = "Tap the gift box to open it"
	ReadAgainText   = "Read the letter again"

	instructionFade = 0.5 // 秒
	readAgainWidth  = 240
	readAgainHeight = 44
)

// GiftSceneConfig 礼盒区块参数
type GiftSceneConfig struct {
	Profile         config.DeviceProfile
	Palette         config.PaletteConfig
	Letter          config.LetterConfig
	FireworkStagger time.Duration
	FaceImages      []*ebiten.Image
	FontPath        string
	Width, Height   int
	Seed            int64
}

// GiftScene 三维礼盒区块
//
// 持有 ECS 世界和全部系统，每帧按固定顺序更新：
// 读取指针 → 粒子场 → 烟花 → 界面点击 → 交互 → 打开动画 → 漂浮 → 相机 → 渐变。
// 信件面板由页面流程控制，本场景只负责推进和绘制它。
type GiftScene struct {
	entityManager *ecs.EntityManager
	stage         *stage.Stage
	pointer       *utils.PointerFrame
	tracker       *utils.DragTracker

	box, lid    ecs.EntityID
	instruction ecs.EntityID

	starfield   *systems.StarfieldSystem
	sparkles    *systems.SparkleSystem
	confetti    *systems.ConfettiSystem
	fireworks   *systems.FireworkSystem
	interaction *systems.InteractionSystem
	open        *systems.OpenSequenceSystem
	idleFloat   *systems.IdleFloatSystem
	camera      *systems.CameraSystem
	fade        *systems.FadeSystem
	render      *systems.RenderSystem

	letter    *LetterPanel
	uiFace    *text.GoTextFace
	readAgain image.Rectangle

	width, height int

	// OnOpened 打开动画完成时调用一次
	OnOpened func()
	// OnReopen 点击 "再读一遍" 时调用
	OnReopen func()
}

// NewGiftScene 创建礼盒区块
//
// rm 为 nil 时不加载字体（文字不绘制）；input 为 nil 时使用 Ebitengine 的鼠标和触摸，
// cursor 为 nil 时使用 Ebitengine 的指针形状。
func NewGiftScene(cfg GiftSceneConfig, scheduler *timeline.Scheduler, rm *game.ResourceManager, haptics media.Haptics, input utils.PointerInput, cursor systems.CursorSetter) (*GiftScene, error) {
	if scheduler == nil {
		return nil, fmt.Errorf("scheduler cannot be nil")
	}
	if haptics == nil {
		haptics = media.NoHaptics{}
	}
	if input == nil {
		input = utils.NewEbitenPointer()
	}
	pointer := utils.NewPointerFrame(input)
	if cursor == nil {
		cursor = systems.EbitenCursor{}
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = config.GameWindowWidth, config.GameWindowHeight
	}

	background, err := config.ParseHexColor(cfg.Palette.Background)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	confettiColors, err := config.ParseHexColors(cfg.Palette.Confetti)
	if err != nil {
		return nil, fmt.Errorf("confetti palette: %w", err)
	}
	fireworkColors, err := config.ParseHexColors(cfg.Palette.Fireworks)
	if err != nil {
		return nil, fmt.Errorf("firework palette: %w", err)
	}

	em := ecs.NewEntityManager()
	rng := rand.New(rand.NewSource(cfg.Seed))
	profile := cfg.Profile

	camera := stage.NewCamera(cfg.Width, cfg.Height)
	st := stage.New(camera, stage.Options{
		Background:    background,
		FogNear:       config.FogNear,
		FogFar:        config.FogFar,
		Antialias:     profile.Antialias,
		ShadowQuality: profile.ShadowQuality,
	})

	if _, err := entities.NewStarfieldEntity(em, rng, profile.StarCount, config.MustColor(cfg.Palette.Star)); err != nil {
		return nil, err
	}
	if _, err := entities.NewSparkleFieldEntity(em, rng, profile.SparkleCount, config.MustColor(cfg.Palette.Sparkle)); err != nil {
		return nil, err
	}
	if _, err := entities.NewConfettiFieldEntity(em, rng, profile.ConfettiCount, confettiColors); err != nil {
		return nil, err
	}
	box, lid, err := entities.NewGiftBoxEntities(em, entities.GiftBoxColorsFromPalette(cfg.Palette), cfg.FaceImages)
	if err != nil {
		return nil, err
	}

	s := &GiftScene{
		entityManager: em,
		stage:         st,
		pointer:       pointer,
		tracker:       utils.NewDragTracker(),
		box:           box,
		lid:           lid,
		width:         cfg.Width,
		height:        cfg.Height,
	}

	s.instruction = em.CreateEntity()
	ecs.AddComponent(em, s.instruction, &components.FadeComponent{Duration: instructionFade})

	s.starfield = systems.NewStarfieldSystem(em)
	s.sparkles = systems.NewSparkleSystem(em)
	s.confetti = systems.NewConfettiSystem(em, rng)
	s.fireworks = systems.NewFireworkSystem(em, scheduler, rng, fireworkColors, profile.FireworkBursts, profile.FireworkParticles, cfg.FireworkStagger)
	s.camera = systems.NewCameraSystem(em, camera, nil, pointer)
	s.open = systems.NewOpenSequenceSystem(em, scheduler.Clock(), box, lid, profile, s.camera, s.fireworks, s.confetti, haptics)
	s.interaction = systems.NewInteractionSystemWithInput(em, st, box, lid, s.open, haptics, pointer, cursor)
	s.camera.SetDragSource(s.interaction)
	s.idleFloat = systems.NewIdleFloatSystem(em, box)
	s.fade = systems.NewFadeSystem(em)
	s.render = systems.NewRenderSystem(em, st)

	s.open.OnTrigger = s.hideInstruction
	s.open.OnOpened = func() {
		if s.OnOpened != nil {
			s.OnOpened()
		}
	}

	var titleFace, bodyFace *text.GoTextFace
	if rm != nil {
		titleFace = loadFace(rm, cfg.FontPath, 32)
		bodyFace = loadFace(rm, cfg.FontPath, 20)
		s.uiFace = loadFace(rm, cfg.FontPath, 18)
	}
	s.letter = NewLetterPanel(cfg.Letter, titleFace, bodyFace)
	s.OnResize(cfg.Width, cfg.Height)

	log.Printf("[GiftScene] Created: %d entities, profile stars=%d sparkles=%d confetti=%d",
		em.EntityCount(), profile.StarCount, profile.SparkleCount, profile.ConfettiCount)
	return s, nil
}

func loadFace(rm *game.ResourceManager, path string, size float64) *text.GoTextFace {
	face, err := rm.Font(path, size)
	if err != nil {
		log.Printf("[GiftScene] Warning: font unavailable: %v", err)
		return nil
	}
	return face
}

// Letter 信件面板（实现 flow.Letter 和 flow.CloseButton）
func (s *GiftScene) Letter() *LetterPanel {
	return s.letter
}

// OpenSequence 打开动画系统
func (s *GiftScene) OpenSequence() *systems.OpenSequenceSystem {
	return s.open
}

// Fireworks 烟花系统
func (s *GiftScene) Fireworks() *systems.FireworkSystem {
	return s.fireworks
}

// EntityManager 场景的实体管理器
func (s *GiftScene) EntityManager() *ecs.EntityManager {
	return s.entityManager
}

// ScrollIntoView 区块进入视口：说明文字淡入
func (s *GiftScene) ScrollIntoView() {
	if s.open.State() != components.OpenStateIdle {
		return
	}
	if fade, ok := ecs.GetComponent[*components.FadeComponent](s.entityManager, s.instruction); ok {
		fade.Visible = true
	}
	log.Println("[GiftScene] Scrolled into view")
}

// InstructionAlpha 说明文字当前透明度
func (s *GiftScene) InstructionAlpha() float64 {
	if fade, ok := ecs.GetComponent[*components.FadeComponent](s.entityManager, s.instruction); ok {
		return fade.Alpha
	}
	return 0
}

func (s *GiftScene) hideInstruction() {
	if fade, ok := ecs.GetComponent[*components.FadeComponent](s.entityManager, s.instruction); ok {
		fade.Visible = false
		fade.Alpha = 0
	}
}

// ReadAgainVisible "再读一遍" 按钮是否显示
func (s *GiftScene) ReadAgainVisible() bool {
	return s.OnReopen != nil && s.open.State() == components.OpenStateOpened &&
		s.letter.Revealed() && s.letter.Hidden()
}

// ReadAgainBounds "再读一遍" 按钮区域
func (s *GiftScene) ReadAgainBounds() image.Rectangle {
	return s.readAgain
}

// OnResize 更新相机视口和界面布局
func (s *GiftScene) OnResize(width, height int) {
	s.width, s.height = width, height
	s.stage.Camera.SetViewport(width, height)
	s.letter.Layout(width, height)
	x := (width - readAgainWidth) / 2
	y := height - readAgainHeight - 28
	s.readAgain = image.Rect(x, y, x+readAgainWidth, y+readAgainHeight)
}

// Update 按固定顺序更新所有系统
func (s *GiftScene) Update(deltaTime float64) {
	// 指针每帧只读取一次，界面、交互和相机共享同一份快照
	s.pointer.Poll()

	s.starfield.Update(deltaTime)
	s.sparkles.Update(deltaTime)
	s.confetti.Update(deltaTime)
	s.fireworks.Update(deltaTime)

	s.updateUI()

	s.interaction.Update(deltaTime)
	s.open.Update(deltaTime)
	s.idleFloat.Update(deltaTime)
	s.camera.Update(deltaTime)
	s.fade.Update(deltaTime)

	s.entityManager.RemoveMarkedEntities()
	s.letter.Update(deltaTime)
}

// updateUI 处理信件关闭按钮和 "再读一遍" 按钮的轻点
func (s *GiftScene) updateUI() {
	x, y := s.pointer.Position()
	s.tracker.Update(s.pointer.IsPressed(), x, y)
	if !s.tracker.IsTap() {
		return
	}
	if s.letter.HandleClick(x, y) {
		return
	}
	if s.ReadAgainVisible() && image.Pt(x, y).In(s.readAgain) {
		log.Println("[GiftScene] Read again clicked")
		s.OnReopen()
	}
}

// Draw 绘制三维场景和界面
func (s *GiftScene) Draw(screen *ebiten.Image) {
	s.render.Draw(screen)

	w := float64(screen.Bounds().Dx())
	if alpha := s.InstructionAlpha(); alpha > 0 && s.uiFace != nil {
		drawText(screen, InstructionText, s.uiFace, w/2, 32, text.AlignCenter, color.White, alpha)
	}

	if s.ReadAgainVisible() {
		r := s.readAgain
		vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), color.RGBA{R: 0xe6, G: 0x39, B: 0x46, A: 0xe0}, true)
		if s.uiFace != nil {
			cy := float64(r.Min.Y) + (float64(r.Dy())-s.uiFace.Size)/2
			drawText(screen, ReadAgainText, s.uiFace, float64(r.Min.X)+float64(r.Dx())/2, cy, text.AlignCenter, color.White, 1)
		}
	}

	s.letter.Draw(screen)
}
