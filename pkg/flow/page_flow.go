// Package flow 实现页面流程：开场视频 → 过渡 → 礼盒 → 信件
//
// 所有延迟步骤都通过 timeline.Scheduler 安排，由同一时钟驱动，
// 因此流程在测试中可以用假时钟精确重放。
package flow

import (
	"errors"
	"log"
	"math"

	"github.com/decker502/giftbox/pkg/config"
	"github.com/decker502/giftbox/pkg/media"
	"github.com/decker502/giftbox/pkg/timeline"
)

// 页面流程状态
const (
	StateIntro          = "intro"
	StateVideoPlaying   = "videoPlaying"
	StateTransitioning  = "transitioning"
	StateGiftVisible    = "giftVisible"
	StateLetterRevealed = "letterRevealed"
	StateLetterHidden   = "letterHidden"
)

// 调度步骤名称
const (
	stepStart  = "flow.start"
	stepFade   = "flow.fade"
	stepSwap   = "flow.swap"
	stepLetter = "flow.letter"
)

// PageFlow 页面流程状态机
type PageFlow struct {
	scheduler *timeline.Scheduler
	timing    config.TimingConfig
	c         Collaborators
	latch     *VideoLatch

	state           string
	started         bool
	isTransitioning bool
	fallbackArmed   bool
	giftOpened      bool
	closeAttached   bool

	// letterGen 每次展示或关闭信件时递增，过期的延迟步骤据此放弃执行
	letterGen int

	// OnStateChange 状态变化回调（可选）
	OnStateChange func(from, to string)
}

// NewPageFlow 创建页面流程
func NewPageFlow(scheduler *timeline.Scheduler, timing config.TimingConfig, c Collaborators) *PageFlow {
	if c.Haptics == nil {
		c.Haptics = media.NoHaptics{}
	}
	return &PageFlow{
		scheduler: scheduler,
		timing:    timing,
		c:         c,
		latch:     NewVideoLatch(timing.VideoThresholdSec),
		state:     StateIntro,
	}
}

// Start 显示视频区块，StartDelay 之后尝试播放
// 重复调用无效
func (f *PageFlow) Start() {
	if f.started {
		return
	}
	f.started = true
	if f.c.Sections != nil {
		f.c.Sections.ShowVideo()
	}
	log.Printf("[PageFlow] Start, video in %v", f.timing.StartDelay())
	f.scheduler.After(f.timing.StartDelay(), stepStart, f.playVideo)
}

func (f *PageFlow) playVideo() {
	if f.c.Video == nil {
		log.Println("[PageFlow] Warning: no video, waiting")
		return
	}
	if err := f.c.Video.Play(false); err != nil {
		if errors.Is(err, media.ErrAutoplayBlocked) {
			log.Println("[PageFlow] Autoplay blocked, waiting for first input")
		} else {
			log.Printf("[PageFlow] Warning: video play failed: %v", err)
		}
		f.armFallback()
		return
	}
	f.onVideoStarted()
}

// armFallback 等待第一次用户输入再播放
func (f *PageFlow) armFallback() {
	f.fallbackArmed = true
	if f.c.Prompt != nil {
		f.c.Prompt.SetPromptVisible(true)
	}
}

func (f *PageFlow) onVideoStarted() {
	f.setState(StateVideoPlaying)
	f.startMusic()
}

func (f *PageFlow) startMusic() {
	if f.c.Music == nil {
		return
	}
	f.c.Music.SetVolume(f.timing.MusicVolume)
	if err := f.c.Music.Play(); err != nil {
		log.Printf("[PageFlow] Warning: music failed to start: %v", err)
	}
}

// Update 每帧调用：处理输入回退并观察视频时间
func (f *PageFlow) Update() {
	if f.fallbackArmed && f.c.Input != nil && f.c.Input.AnyPointerJustPressed() {
		f.fallbackArmed = false
		if f.c.Prompt != nil {
			f.c.Prompt.SetPromptVisible(false)
		}
		log.Println("[PageFlow] User gesture received, starting playback")
		if err := f.c.Video.Play(true); err != nil {
			log.Printf("[PageFlow] Warning: video play failed: %v", err)
		} else {
			f.onVideoStarted()
		}
	}

	if f.c.Video != nil {
		f.ObserveVideo(f.c.Video.CurrentTime(), f.c.Video.Ended())
	}
}

// ObserveVideo 报告视频时间，达到阈值或结束时触发一次过渡
func (f *PageFlow) ObserveVideo(t float64, ended bool) {
	if f.latch.Observe(t, ended) {
		log.Printf("[PageFlow] Video reached %.2fs (ended=%v)", t, ended)
		f.transition()
	}
}

// transition 擦除动画、暂停视频、淡出音乐，SwapDelay 后切换到礼盒区块
func (f *PageFlow) transition() {
	if f.isTransitioning {
		return
	}
	f.isTransitioning = true
	f.setState(StateTransitioning)

	if f.c.Overlay != nil {
		f.c.Overlay.StartSwipe()
	}
	if f.c.Video != nil {
		f.c.Video.Pause()
	}
	f.fadeOutMusic()

	f.scheduler.After(f.timing.SwapDelay(), stepSwap, func() {
		if f.c.Sections != nil {
			f.c.Sections.ShowGift()
			f.c.Sections.ScrollToGift()
		}
		f.c.Haptics.Tap()
		f.setState(StateGiftVisible)
	})
}

// fadeOutMusic 每个 FadeStep 降低 FadeStepVolume，不高于 FadeFloor 时停止并归零
func (f *PageFlow) fadeOutMusic() {
	m := f.c.Music
	if m == nil {
		return
	}
	f.scheduler.Every(f.timing.FadeStep(), stepFade, func() bool {
		v := m.Volume()
		if v > f.timing.FadeFloor {
			m.SetVolume(roundVolume(v - f.timing.FadeStepVolume))
			return true
		}
		m.Pause()
		m.SetVolume(0)
		m.Rewind()
		log.Println("[PageFlow] Music faded out")
		return false
	})
}

// roundVolume 消除浮点累计误差，结果不小于 0
func roundVolume(v float64) float64 {
	return math.Max(0, math.Round(v*1e9)/1e9)
}

// NotifyGiftOpened 礼盒打开完成通知，LetterRevealDelay 后展示信件
// 只响应第一次调用
func (f *PageFlow) NotifyGiftOpened() {
	if f.giftOpened {
		return
	}
	f.giftOpened = true
	log.Printf("[PageFlow] Gift opened, letter in %v", f.timing.LetterRevealDelay())
	f.scheduler.After(f.timing.LetterRevealDelay(), stepLetter, f.revealLetter)
}

// revealLetter 先取消隐藏，LetterVisibleDelay 后再设为可见，触发淡入
func (f *PageFlow) revealLetter() {
	f.letterGen++
	gen := f.letterGen

	if f.c.Letter != nil {
		f.c.Letter.SetHidden(false)
	}
	f.scheduler.After(f.timing.LetterVisibleDelay(), stepLetter, func() {
		if gen != f.letterGen || f.c.Letter == nil {
			return
		}
		f.c.Letter.SetVisible(true)
	})

	if f.c.CloseButton != nil && !f.closeAttached {
		f.closeAttached = true
		f.c.CloseButton.AttachClose(f.CloseLetter)
	}
	f.c.Haptics.Success()
	f.setState(StateLetterRevealed)
}

// CloseLetter 立即淡出信件，LetterHideDelay 后隐藏
func (f *PageFlow) CloseLetter() {
	if f.state != StateLetterRevealed {
		return
	}
	f.letterGen++
	gen := f.letterGen

	if f.c.Letter != nil {
		f.c.Letter.SetVisible(false)
	}
	f.setState(StateLetterHidden)

	f.scheduler.After(f.timing.LetterHideDelay(), stepLetter, func() {
		if gen != f.letterGen || f.c.Letter == nil {
			return
		}
		f.c.Letter.SetHidden(true)
	})
}

// ReopenLetter 关闭后再次展示信件
func (f *PageFlow) ReopenLetter() {
	if f.state != StateLetterHidden {
		return
	}
	f.revealLetter()
}

func (f *PageFlow) setState(to string) {
	if f.state == to {
		return
	}
	from := f.state
	f.state = to
	log.Printf("[PageFlow] State: %s → %s", from, to)
	if f.OnStateChange != nil {
		f.OnStateChange(from, to)
	}
}

// State 当前状态
func (f *PageFlow) State() string {
	return f.state
}

// IsTransitioning 过渡是否已经开始
func (f *PageFlow) IsTransitioning() bool {
	return f.isTransitioning
}

// FallbackArmed 是否在等待用户输入以开始播放
func (f *PageFlow) FallbackArmed() bool {
	return f.fallbackArmed
}
