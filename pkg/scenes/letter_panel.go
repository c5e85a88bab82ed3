package scenes

import (
	"image"
	"image/color"
	"log"
	"math"

	"github.com/decker502/giftbox/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// LetterFadeDuration 信件淡入淡出时长（秒）
const LetterFadeDuration = 1.2

// 信件面板布局
const (
	letterMaxWidth  = 560
	letterMaxHeight = 420
	letterMargin    = 20
	letterPadding   = 32
	closeButtonSize = 36
	letterLineGap   = 1.6
)

var (
	letterPaper  = color.RGBA{R: 0xff, G: 0xf8, B: 0xf0, A: 0xff}
	letterInk    = color.RGBA{R: 0x3d, G: 0x25, B: 0x3b, A: 0xff}
	letterAccent = color.RGBA{R: 0xe6, G: 0x39, B: 0x46, A: 0xff}
)

// LetterPanel 信件面板
//
// hidden 控制是否参与绘制和点击，visible 控制淡入淡出目标；
// 两者分开设置，先取消隐藏再设为可见才会出现淡入过程。
type LetterPanel struct {
	content   config.LetterConfig
	titleFace *text.GoTextFace
	bodyFace  *text.GoTextFace

	hidden   bool
	visible  bool
	revealed bool    // 至少展示过一次
	fade     float64 // 线性淡入进度 [0,1]
	closeFn  func()

	panel    image.Rectangle
	closeBtn image.Rectangle
}

// NewLetterPanel 创建信件面板，初始为隐藏状态
func NewLetterPanel(content config.LetterConfig, titleFace, bodyFace *text.GoTextFace) *LetterPanel {
	lp := &LetterPanel{
		content:   content,
		titleFace: titleFace,
		bodyFace:  bodyFace,
		hidden:    true,
	}
	lp.Layout(config.GameWindowWidth, config.GameWindowHeight)
	return lp
}

// SetHidden 设置是否隐藏
func (lp *LetterPanel) SetHidden(hidden bool) {
	lp.hidden = hidden
	if hidden {
		lp.fade = 0
	} else {
		lp.revealed = true
	}
}

// SetVisible 设置淡入淡出目标
func (lp *LetterPanel) SetVisible(visible bool) {
	lp.visible = visible
}

// AttachClose 绑定关闭按钮回调
func (lp *LetterPanel) AttachClose(fn func()) {
	lp.closeFn = fn
}

// Hidden 是否隐藏
func (lp *LetterPanel) Hidden() bool { return lp.hidden }

// Revealed 是否曾经展示过
func (lp *LetterPanel) Revealed() bool { return lp.revealed }

// Visible 淡入目标是否为可见
func (lp *LetterPanel) Visible() bool { return lp.visible }

// Alpha 当前绘制透明度（平滑缓动后）
func (lp *LetterPanel) Alpha() float64 {
	if lp.hidden {
		return 0
	}
	t := lp.fade
	return t * t * (3 - 2*t)
}

// Layout 按屏幕尺寸居中面板
func (lp *LetterPanel) Layout(width, height int) {
	w := min(letterMaxWidth, width-2*letterMargin)
	h := min(letterMaxHeight, height-2*letterMargin)
	x := (width - w) / 2
	y := (height - h) / 2
	lp.panel = image.Rect(x, y, x+w, y+h)
	lp.closeBtn = image.Rect(x+w-closeButtonSize-8, y+8, x+w-8, y+8+closeButtonSize)
}

// Bounds 面板区域
func (lp *LetterPanel) Bounds() image.Rectangle { return lp.panel }

// CloseButtonBounds 关闭按钮区域
func (lp *LetterPanel) CloseButtonBounds() image.Rectangle { return lp.closeBtn }

// Update 向目标推进淡入淡出
func (lp *LetterPanel) Update(dt float64) {
	if lp.hidden {
		return
	}
	step := dt / LetterFadeDuration
	if lp.visible {
		lp.fade = math.Min(1, lp.fade+step)
	} else {
		lp.fade = math.Max(0, lp.fade-step)
	}
}

// HandleClick 处理点击，返回点击是否落在面板上
// 关闭按钮只在面板可见时响应
func (lp *LetterPanel) HandleClick(x, y int) bool {
	if lp.hidden || !lp.visible {
		return false
	}
	pt := image.Pt(x, y)
	if pt.In(lp.closeBtn) {
		if lp.closeFn != nil {
			log.Println("[LetterPanel] Close clicked")
			lp.closeFn()
		}
		return true
	}
	return pt.In(lp.panel)
}

// Draw 绘制遮罩、信纸、文字和关闭按钮
func (lp *LetterPanel) Draw(screen *ebiten.Image) {
	alpha := lp.Alpha()
	if alpha <= 0 {
		return
	}

	sw := float32(screen.Bounds().Dx())
	sh := float32(screen.Bounds().Dy())
	vector.DrawFilledRect(screen, 0, 0, sw, sh, withAlpha(color.RGBA{A: 0xff}, 0.5*alpha), false)

	px, py := float32(lp.panel.Min.X), float32(lp.panel.Min.Y)
	pw, ph := float32(lp.panel.Dx()), float32(lp.panel.Dy())
	vector.DrawFilledRect(screen, px, py, pw, ph, withAlpha(letterPaper, alpha), true)
	vector.StrokeRect(screen, px+6, py+6, pw-12, ph-12, 2, withAlpha(letterAccent, alpha), true)

	cx := float64(lp.panel.Min.X) + float64(lp.panel.Dx())/2
	y := float64(lp.panel.Min.Y) + letterPadding
	drawText(screen, lp.content.Title, lp.titleFace, cx, y, text.AlignCenter, letterAccent, alpha)
	if lp.titleFace != nil {
		y += lp.titleFace.Size * letterLineGap
	}

	left := float64(lp.panel.Min.X) + letterPadding
	for _, line := range lp.content.Body {
		drawText(screen, line, lp.bodyFace, left, y, text.AlignStart, letterInk, alpha)
		if lp.bodyFace != nil {
			y += lp.bodyFace.Size * letterLineGap
		}
	}

	right := float64(lp.panel.Max.X) - letterPadding
	drawText(screen, lp.content.Signature, lp.bodyFace, right, y+8, text.AlignEnd, letterAccent, alpha)

	lp.drawCloseButton(screen, alpha)
}

func (lp *LetterPanel) drawCloseButton(screen *ebiten.Image, alpha float64) {
	r := float32(closeButtonSize) / 2
	cx := float32(lp.closeBtn.Min.X) + r
	cy := float32(lp.closeBtn.Min.Y) + r
	vector.DrawFilledCircle(screen, cx, cy, r, withAlpha(letterAccent, alpha), true)

	d := r * 0.4
	white := withAlpha(color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, alpha)
	vector.StrokeLine(screen, cx-d, cy-d, cx+d, cy+d, 3, white, true)
	vector.StrokeLine(screen, cx-d, cy+d, cx+d, cy-d, 3, white, true)
}
