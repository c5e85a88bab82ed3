package flow

// VideoLatch 视频时间锁存器
// 观察到的时间首次达到阈值或视频结束时触发，之后永不再触发。
type VideoLatch struct {
	threshold float64
	fired     bool
}

// NewVideoLatch 创建锁存器
func NewVideoLatch(threshold float64) *VideoLatch {
	return &VideoLatch{threshold: threshold}
}

// Observe 报告一次视频时间，返回本次是否触发
func (l *VideoLatch) Observe(t float64, ended bool) bool {
	if l.fired {
		return false
	}
	if t >= l.threshold || ended {
		l.fired = true
		return true
	}
	return false
}

// Fired 是否已经触发
func (l *VideoLatch) Fired() bool {
	return l.fired
}
