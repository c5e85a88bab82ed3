package timeline

import "time"

// DefaultMaxDelta 单帧最大时间步长
//
// 浏览器标签页切到后台再恢复时，两帧之间可能相隔数秒；
// 超过此值的间隔会被截断，避免粒子和动画瞬间跳变。
const DefaultMaxDelta = 100 * time.Millisecond

// Ticker 帧时钟，每次 Tick 返回距上次 Tick 的秒数
type Ticker struct {
	clock    Clock
	last     time.Duration
	started  bool
	MaxDelta time.Duration // <= 0 表示不截断
}

// NewTicker 创建帧时钟
func NewTicker(clock Clock, maxDelta time.Duration) *Ticker {
	return &Ticker{
		clock:    clock,
		MaxDelta: maxDelta,
	}
}

// Tick 返回自上次调用以来经过的秒数
//
// 第一次调用返回 0；结果永不为负，并按 MaxDelta 截断。
func (t *Ticker) Tick() float64 {
	now := t.clock.Now()
	if !t.started {
		t.started = true
		t.last = now
		return 0
	}

	delta := now - t.last
	t.last = now

	if delta < 0 {
		delta = 0
	}
	if t.MaxDelta > 0 && delta > t.MaxDelta {
		delta = t.MaxDelta
	}
	return delta.Seconds()
}
