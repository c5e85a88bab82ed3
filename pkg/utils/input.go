// Package utils 提供通用工具函数
package utils

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerInput 指针输入接口（鼠标或触摸）
// 用于依赖注入，支持测试时 mock
type PointerInput interface {
	// Position 当前指针位置，优先返回触摸位置
	Position() (int, int)
	// IsPressed 鼠标左键或任意触摸是否按下
	IsPressed() bool
	// Wheel 本帧滚轮纵向增量
	Wheel() float64
}

// PinchInput 可选的双指缩放输入
type PinchInput interface {
	// Pinch 本帧双指间距变化（像素），张开为正
	Pinch() float64
}

// EbitenPointer Ebitengine 默认实现
type EbitenPointer struct {
	touchIDs               []ebiten.TouchID
	lastTouchX, lastTouchY int
	touching               bool
	pinchDist              float64
}

// NewEbitenPointer 创建默认指针输入
func NewEbitenPointer() *EbitenPointer {
	return &EbitenPointer{}
}

// Position 获取当前指针位置（触摸或鼠标）
// 触摸释放的那一帧内始终返回最后一次触摸位置，同一帧内多次调用结果一致
func (p *EbitenPointer) Position() (int, int) {
	p.touchIDs = ebiten.AppendTouchIDs(p.touchIDs[:0])
	if len(p.touchIDs) > 0 {
		p.lastTouchX, p.lastTouchY = ebiten.TouchPosition(p.touchIDs[0])
		p.touching = true
		return p.lastTouchX, p.lastTouchY
	}
	if p.touching {
		if len(inpututil.AppendJustReleasedTouchIDs(nil)) > 0 {
			return p.lastTouchX, p.lastTouchY
		}
		p.touching = false
	}
	return ebiten.CursorPosition()
}

// IsPressed 检查是否有指针按下（鼠标左键或触摸）
func (p *EbitenPointer) IsPressed() bool {
	if len(ebiten.AppendTouchIDs(nil)) > 0 {
		return true
	}
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

// Wheel 滚轮纵向增量
func (p *EbitenPointer) Wheel() float64 {
	_, dy := ebiten.Wheel()
	return dy
}

// Pinch 双指间距相对上次调用的变化，少于两指时为 0
func (p *EbitenPointer) Pinch() float64 {
	ids := ebiten.AppendTouchIDs(nil)
	if len(ids) < 2 {
		p.pinchDist = 0
		return 0
	}
	x0, y0 := ebiten.TouchPosition(ids[0])
	x1, y1 := ebiten.TouchPosition(ids[1])
	d := math.Hypot(float64(x1-x0), float64(y1-y0))
	if p.pinchDist == 0 {
		p.pinchDist = d
		return 0
	}
	delta := d - p.pinchDist
	p.pinchDist = d
	return delta
}

// PointerFrame 每帧读取一次指针状态，供同一帧内的多个使用者共享
//
// 底层输入的 Position、Pinch 等带有跨帧状态，只能每帧读取一次；
// 其余使用者都读取这里的快照。
type PointerFrame struct {
	source  PointerInput
	x, y    int
	pressed bool
	wheel   float64
	pinch   float64
}

// NewPointerFrame 包装一个指针输入
func NewPointerFrame(source PointerInput) *PointerFrame {
	return &PointerFrame{source: source}
}

// Poll 读取本帧的指针状态（每帧调用一次）
func (f *PointerFrame) Poll() {
	if f.source == nil {
		return
	}
	f.x, f.y = f.source.Position()
	f.pressed = f.source.IsPressed()
	f.wheel = f.source.Wheel()
	f.pinch = 0
	if pi, ok := f.source.(PinchInput); ok {
		f.pinch = pi.Pinch()
	}
}

// Position 本帧指针位置
func (f *PointerFrame) Position() (int, int) { return f.x, f.y }

// IsPressed 本帧是否按下
func (f *PointerFrame) IsPressed() bool { return f.pressed }

// Wheel 本帧滚轮增量
func (f *PointerFrame) Wheel() float64 { return f.wheel }

// Pinch 本帧双指间距变化
func (f *PointerFrame) Pinch() float64 { return f.pinch }

// AnyPointerJustPressed 本帧是否有新的点击、触摸或按键
func AnyPointerJustPressed() bool {
	if len(inpututil.AppendJustPressedTouchIDs(nil)) > 0 {
		return true
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return true
	}
	return len(inpututil.AppendJustPressedKeys(nil)) > 0
}

// ============================================================================
// 拖拽状态跟踪 - 区分轻点和拖动
// ============================================================================

// DragState 拖拽状态
type DragState int

const (
	// DragStateNone 无拖拽
	DragStateNone DragState = iota
	// DragStateStarted 拖拽开始（刚按下）
	DragStateStarted
	// DragStateDragging 拖拽中（按住移动）
	DragStateDragging
	// DragStateEnded 拖拽结束（释放）
	DragStateEnded
)

// TapSlop 按下到释放之间移动不超过此像素数视为轻点
const TapSlop = 8

// DragInfo 拖拽信息
type DragInfo struct {
	// State 当前拖拽状态
	State DragState
	// StartX, StartY 拖拽起始位置（屏幕坐标）
	StartX, StartY int
	// CurrentX, CurrentY 当前位置（屏幕坐标）
	CurrentX, CurrentY int
	// DeltaX, DeltaY 相对上一帧的移动量
	DeltaX, DeltaY int
}

// DragTracker 根据每帧的按下状态和位置推导拖拽状态
type DragTracker struct {
	info DragInfo
}

// NewDragTracker 创建拖拽跟踪器
func NewDragTracker() *DragTracker {
	return &DragTracker{}
}

// Update 更新拖拽状态（每帧调用一次）
func (dt *DragTracker) Update(pressed bool, x, y int) {
	switch dt.info.State {
	case DragStateNone, DragStateEnded:
		if pressed {
			dt.info = DragInfo{
				State:    DragStateStarted,
				StartX:   x,
				StartY:   y,
				CurrentX: x,
				CurrentY: y,
			}
			return
		}
		// 结束状态只持续一帧
		dt.Reset()

	case DragStateStarted, DragStateDragging:
		dt.info.DeltaX = x - dt.info.CurrentX
		dt.info.DeltaY = y - dt.info.CurrentY
		dt.info.CurrentX, dt.info.CurrentY = x, y
		if pressed {
			dt.info.State = DragStateDragging
		} else {
			dt.info.State = DragStateEnded
		}
	}
}

// Reset 重置拖拽状态
func (dt *DragTracker) Reset() {
	dt.info = DragInfo{State: DragStateNone}
}

// GetState 获取当前拖拽状态
func (dt *DragTracker) GetState() DragState {
	return dt.info.State
}

// GetInfo 获取完整拖拽信息
func (dt *DragTracker) GetInfo() DragInfo {
	return dt.info
}

// IsDragging 是否正在拖拽
func (dt *DragTracker) IsDragging() bool {
	return dt.info.State == DragStateDragging
}

// JustEnded 是否刚结束拖拽（本帧）
func (dt *DragTracker) JustEnded() bool {
	return dt.info.State == DragStateEnded
}

// GetDragDistance 获取拖拽距离（从起点到当前位置）
func (dt *DragTracker) GetDragDistance() (dx, dy int) {
	return dt.info.CurrentX - dt.info.StartX, dt.info.CurrentY - dt.info.StartY
}

// IsTap 刚释放且移动距离在 TapSlop 以内
func (dt *DragTracker) IsTap() bool {
	if !dt.JustEnded() {
		return false
	}
	dx, dy := dt.GetDragDistance()
	return dx*dx+dy*dy <= TapSlop*TapSlop
}
