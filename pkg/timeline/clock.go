// Package timeline 提供帧时钟和基于时钟的延时调度器
//
// 所有"等待 N 毫秒后继续"的步骤都通过 Scheduler 表达，
// 由游戏主循环每帧推进，测试中注入 FakeClock 即可精确控制时间。
package timeline

import "time"

// Clock 单调时钟，返回自某个起点以来经过的时间
type Clock interface {
	Now() time.Duration
}

// WallClock 基于系统单调时钟的实现
type WallClock struct {
	start time.Time
}

// NewWallClock 创建以当前时刻为起点的时钟
func NewWallClock() *WallClock {
	return &WallClock{start: time.Now()}
}

// Now 返回自创建以来经过的时间
func (c *WallClock) Now() time.Duration {
	return time.Since(c.start)
}

// FakeClock 手动推进的时钟（用于测试和离线验证工具）
type FakeClock struct {
	now time.Duration
}

// NewFakeClock 创建起点为 0 的假时钟
func NewFakeClock() *FakeClock {
	return &FakeClock{}
}

// Now 返回当前时间
func (c *FakeClock) Now() time.Duration {
	return c.now
}

// Advance 向前推进 d，负值会被忽略
func (c *FakeClock) Advance(d time.Duration) {
	if d > 0 {
		c.now += d
	}
}

// Set 设置绝对时间，不允许回退
func (c *FakeClock) Set(t time.Duration) {
	if t > c.now {
		c.now = t
	}
}
