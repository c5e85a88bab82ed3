package scenes

import (
	"image/color"
	"log"
	"time"

	"github.com/decker502/giftbox/pkg/timeline"
	"github.com/decker502/giftbox/pkg/vmath"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// SwipeOverlay 区块切换时的擦除动画
//
// 色带从左侧进入，在动画中点完全覆盖屏幕，然后从右侧离开。
// 区块切换安排在中点，因此切换过程不可见。
type SwipeOverlay struct {
	clock    timeline.Clock
	duration time.Duration
	colors   []color.RGBA

	active  bool
	startAt time.Duration
}

// NewSwipeOverlay 创建擦除动画，colors 为色带颜色（从左到右）
func NewSwipeOverlay(clock timeline.Clock, duration time.Duration, colors []color.RGBA) *SwipeOverlay {
	if len(colors) == 0 {
		colors = []color.RGBA{{R: 0x1a, G: 0x0a, B: 0x2e, A: 0xff}}
	}
	return &SwipeOverlay{
		clock:    clock,
		duration: duration,
		colors:   colors,
	}
}

// StartSwipe 开始擦除动画
func (o *SwipeOverlay) StartSwipe() {
	o.active = true
	o.startAt = o.clock.Now()
	log.Printf("[SwipeOverlay] Swipe started (%v)", o.duration)
}

// Progress 动画进度 [0,1]，未开始为 0
func (o *SwipeOverlay) Progress() float64 {
	if !o.active {
		return 0
	}
	if o.duration <= 0 {
		return 1
	}
	return vmath.Clamp01(float64(o.clock.Now()-o.startAt) / float64(o.duration))
}

// Active 动画是否仍在进行
func (o *SwipeOverlay) Active() bool {
	return o.active && o.Progress() < 1
}

// Offset 色带左边缘相对屏幕左侧的偏移（以屏幕宽度为单位）
// 0 时完全覆盖屏幕，-1 在左侧外，1 在右侧外
func (o *SwipeOverlay) Offset() float64 {
	p := o.Progress()
	// 两段缓动：进入时减速，离开时加速
	if p < 0.5 {
		return -1 + vmath.EaseOutCubic(p*2)
	}
	q := (p - 0.5) * 2
	return q * q * q
}

// Draw 绘制色带
func (o *SwipeOverlay) Draw(screen *ebiten.Image) {
	if !o.Active() {
		return
	}
	w := float64(screen.Bounds().Dx())
	h := float64(screen.Bounds().Dy())
	x := o.Offset() * w

	band := w / float64(len(o.colors))
	for i, c := range o.colors {
		vector.DrawFilledRect(screen, float32(x+float64(i)*band), 0, float32(band+1), float32(h), c, false)
	}
}
