package components

import "time"

// 打开动画状态
const (
	OpenStateIdle    = "idle"
	OpenStateOpening = "opening"
	OpenStateOpened  = "opened"
)

// OpenSequenceComponent 礼盒打开动画的状态机
type OpenSequenceComponent struct {
	// State 当前状态：
	// - "idle": 等待点击
	// - "opening": 盒盖上升、翻转、后移
	// - "opened": 终态，不会再被触发
	State string

	StartTime time.Duration
	Duration  time.Duration

	// Progress 单调不减，范围 [0,1]
	Progress float64

	// Eased = 1-(1-Progress)^3
	Eased float64

	// LidStartY 触发瞬间盒盖的高度（包含漂浮偏移）
	LidStartY float64

	// Notified 完成通知是否已发出
	Notified bool
}
