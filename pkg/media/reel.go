package media

import (
	"errors"
	"log"
	"sort"

	"github.com/decker502/giftbox/pkg/config"
)

// ErrAutoplayBlocked 宿主环境尚未允许自动播放（浏览器需要一次用户手势）
var ErrAutoplayBlocked = errors.New("autoplay blocked: waiting for user gesture")

// AutoplayGate 自动播放许可，*audio.Context 的 IsReady 满足该接口
type AutoplayGate interface {
	IsReady() bool
}

// CardFade 字幕卡淡入淡出时长（秒）
const CardFade = 0.6

// IntroReel 开场短片：按时间显示的字幕卡序列
//
// 与视频元素一样对外暴露播放、暂停、当前时间和结束状态，
// 由 Update(dt) 推进播放时间。
type IntroReel struct {
	cards    []config.ReelCard
	duration float64
	gate     AutoplayGate

	current float64
	playing bool
	ended   bool
}

// NewIntroReel 创建开场短片
// gate 为 nil 表示总是允许自动播放
func NewIntroReel(cfg config.ReelConfig, duration float64, gate AutoplayGate) *IntroReel {
	cards := make([]config.ReelCard, len(cfg.Cards))
	copy(cards, cfg.Cards)
	sort.SliceStable(cards, func(i, j int) bool { return cards[i].At < cards[j].At })

	return &IntroReel{
		cards:    cards,
		duration: duration,
		gate:     gate,
	}
}

// Play 开始播放
//
// userGesture 为 false 时遵守自动播放许可，未就绪返回 ErrAutoplayBlocked；
// 用户手势触发的播放总是允许。
func (r *IntroReel) Play(userGesture bool) error {
	if !userGesture && r.gate != nil && !r.gate.IsReady() {
		return ErrAutoplayBlocked
	}
	if r.ended {
		return nil
	}
	r.playing = true
	log.Printf("[IntroReel] Play at %.2fs", r.current)
	return nil
}

// Pause 暂停
func (r *IntroReel) Pause() {
	if r.playing {
		log.Printf("[IntroReel] Pause at %.2fs", r.current)
	}
	r.playing = false
}

// Update 推进播放时间
func (r *IntroReel) Update(dt float64) {
	if !r.playing || dt <= 0 {
		return
	}
	r.current += dt
	if r.duration > 0 && r.current >= r.duration {
		r.current = r.duration
		r.playing = false
		r.ended = true
		log.Printf("[IntroReel] Ended")
	}
}

// CurrentTime 当前播放时间（秒）
func (r *IntroReel) CurrentTime() float64 { return r.current }

// Duration 总时长（秒）
func (r *IntroReel) Duration() float64 { return r.duration }

// IsPlaying 是否在播放
func (r *IntroReel) IsPlaying() bool { return r.playing }

// Ended 是否自然播放结束
func (r *IntroReel) Ended() bool { return r.ended }

// CurrentCard 返回当前字幕卡文本和透明度
func (r *IntroReel) CurrentCard() (string, float64) {
	idx := -1
	for i, c := range r.cards {
		if c.At <= r.current {
			idx = i
		}
	}
	if idx < 0 {
		return "", 0
	}

	start := r.cards[idx].At
	end := r.duration
	if idx+1 < len(r.cards) {
		end = r.cards[idx+1].At
	}

	alpha := 1.0
	if in := r.current - start; in < CardFade {
		alpha = in / CardFade
	}
	if out := end - r.current; end > start && out < CardFade {
		alpha = minFloat(alpha, out/CardFade)
	}
	if alpha < 0 {
		alpha = 0
	}
	return r.cards[idx].Text, alpha
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
