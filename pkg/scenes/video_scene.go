package scenes

import (
	"image/color"
	"log"
	"math"

	"github.com/decker502/giftbox/pkg/media"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 播放提示
const (
	PlayPromptText    = "▶ Tap to Play"
	playPromptPulse   = 1.5 // 秒
	photoSlideSeconds = 4.0
	photoOpacity      = 0.35
)

// VideoScene 开场短片区块
//
// 绘制字幕卡、可选的背景照片和播放进度；自动播放被拒绝时显示播放提示。
// 短片本身由 App 推进（Update 只负责动画计时），页面流程只通过 flow.Video 访问它。
type VideoScene struct {
	reel       *media.IntroReel
	photos     []*ebiten.Image
	background color.RGBA
	cardFace   *text.GoTextFace
	promptFace *text.GoTextFace

	promptVisible bool
	elapsed       float64
	width         int
	height        int
}

// NewVideoScene 创建开场区块，photos 可为空，字体为 nil 时不绘制文字
func NewVideoScene(reel *media.IntroReel, photos []*ebiten.Image, background color.RGBA, cardFace, promptFace *text.GoTextFace) *VideoScene {
	return &VideoScene{
		reel:       reel,
		photos:     photos,
		background: background,
		cardFace:   cardFace,
		promptFace: promptFace,
	}
}

// SetPromptVisible 显示或隐藏 "Tap to Play" 提示
func (s *VideoScene) SetPromptVisible(visible bool) {
	if s.promptVisible == visible {
		return
	}
	s.promptVisible = visible
	log.Printf("[VideoScene] Play prompt visible: %v", visible)
}

// PromptVisible 提示是否可见
func (s *VideoScene) PromptVisible() bool {
	return s.promptVisible
}

// PromptAlpha 提示框当前的脉动透明度 [0.6,1]
func (s *VideoScene) PromptAlpha() float64 {
	return 0.8 + 0.2*math.Sin(s.elapsed*2*math.Pi/playPromptPulse)
}

// OnResize 记录逻辑屏幕尺寸
func (s *VideoScene) OnResize(width, height int) {
	s.width, s.height = width, height
}

// Update 推进提示脉动和照片轮换
func (s *VideoScene) Update(deltaTime float64) {
	s.elapsed += deltaTime
}

// Draw 绘制短片画面
func (s *VideoScene) Draw(screen *ebiten.Image) {
	screen.Fill(s.background)
	w := float64(screen.Bounds().Dx())
	h := float64(screen.Bounds().Dy())

	s.drawPhoto(screen, w, h)

	if s.reel != nil {
		card, alpha := s.reel.CurrentCard()
		if s.cardFace != nil {
			drawText(screen, card, s.cardFace, w/2, h/2-s.cardFace.Size/2, text.AlignCenter, color.White, alpha)
		}
		if d := s.reel.Duration(); d > 0 {
			p := math.Min(1, s.reel.CurrentTime()/d)
			vector.DrawFilledRect(screen, 0, float32(h-4), float32(w*p), 4, color.RGBA{R: 0xff, G: 0xd7, A: 0xff}, false)
		}
	}

	if s.promptVisible {
		s.drawPrompt(screen, w, h)
	}
}

func (s *VideoScene) drawPhoto(screen *ebiten.Image, w, h float64) {
	if len(s.photos) == 0 || s.reel == nil {
		return
	}
	idx := int(s.reel.CurrentTime()/photoSlideSeconds) % len(s.photos)
	img := s.photos[idx]
	if img == nil {
		return
	}
	iw := float64(img.Bounds().Dx())
	ih := float64(img.Bounds().Dy())
	if iw == 0 || ih == 0 {
		return
	}
	// 等比铺满
	scale := math.Max(w/iw, h/ih)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate((w-iw*scale)/2, (h-ih*scale)/2)
	op.ColorScale.ScaleAlpha(photoOpacity)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}

func (s *VideoScene) drawPrompt(screen *ebiten.Image, w, h float64) {
	alpha := s.PromptAlpha()
	bw, bh := 240.0, 64.0
	x, y := (w-bw)/2, (h-bh)/2
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(bw), float32(bh), withAlpha(color.RGBA{A: 0xff}, 0.8*alpha), true)
	if s.promptFace != nil {
		drawText(screen, PlayPromptText, s.promptFace, w/2, y+(bh-s.promptFace.Size)/2, text.AlignCenter, color.White, alpha)
	}
}
