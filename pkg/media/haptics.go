// Package media 提供开场短片、背景音乐和触觉反馈
package media

import (
	"log"
	"time"

	"github.com/decker502/giftbox/pkg/timeline"
	"github.com/hajimehoshi/ebiten/v2"
)

// Haptics 触觉反馈，不支持的平台上为空操作
type Haptics interface {
	Tap()
	Success()
	Burst()
}

// 振动模式（毫秒）：振动、停顿、振动……
var (
	PatternTap     = []int{15}
	PatternSuccess = []int{10, 30, 10, 50}
	PatternBurst   = []int{50, 20, 100, 20, 150}
)

// Pulse 一次振动
type Pulse struct {
	At       time.Duration
	Duration time.Duration
}

// Pulses 把振动模式展开为带起始时间的振动列表
func Pulses(pattern []int) []Pulse {
	pulses := make([]Pulse, 0, (len(pattern)+1)/2)
	at := time.Duration(0)
	for i, ms := range pattern {
		d := time.Duration(ms) * time.Millisecond
		if i%2 == 0 && d > 0 {
			pulses = append(pulses, Pulse{At: at, Duration: d})
		}
		at += d
	}
	return pulses
}

// VibrateFunc 单次振动的实现
type VibrateFunc func(d time.Duration, magnitude float64)

// EbitenVibrate 通过 ebiten.Vibrate 振动（仅移动端和浏览器生效）
func EbitenVibrate(d time.Duration, magnitude float64) {
	ebiten.Vibrate(&ebiten.VibrateOptions{
		Duration:  d,
		Magnitude: magnitude,
	})
}

// ScheduledHaptics 用调度器把振动模式拆成多次单独振动
type ScheduledHaptics struct {
	scheduler *timeline.Scheduler
	vibrate   VibrateFunc
	magnitude float64
}

// NewScheduledHaptics 创建触觉反馈
// vibrate 为 nil 时使用 EbitenVibrate
func NewScheduledHaptics(scheduler *timeline.Scheduler, vibrate VibrateFunc) *ScheduledHaptics {
	if vibrate == nil {
		vibrate = EbitenVibrate
	}
	return &ScheduledHaptics{
		scheduler: scheduler,
		vibrate:   vibrate,
		magnitude: 1,
	}
}

// Tap 轻触反馈
func (h *ScheduledHaptics) Tap() { h.play("tap", PatternTap) }

// Success 成功反馈
func (h *ScheduledHaptics) Success() { h.play("success", PatternSuccess) }

// Burst 爆发反馈
func (h *ScheduledHaptics) Burst() { h.play("burst", PatternBurst) }

func (h *ScheduledHaptics) play(name string, pattern []int) {
	log.Printf("[Haptics] %s", name)
	for _, p := range Pulses(pattern) {
		p := p
		if p.At == 0 {
			h.vibrate(p.Duration, h.magnitude)
			continue
		}
		h.scheduler.After(p.At, "haptics."+name, func() {
			h.vibrate(p.Duration, h.magnitude)
		})
	}
}

// NoHaptics 空实现
type NoHaptics struct{}

func (NoHaptics) Tap()     {}
func (NoHaptics) Success() {}
func (NoHaptics) Burst()   {}
