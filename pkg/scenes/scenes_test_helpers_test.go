package scenes

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// mockPointer 可控的指针输入
type mockPointer struct {
	x, y    int
	pressed bool
	wheel   float64
}

func (m *mockPointer) Position() (int, int) { return m.x, m.y }
func (m *mockPointer) IsPressed() bool      { return m.pressed }
func (m *mockPointer) Wheel() float64       { return m.wheel }

// touchPointer 模拟触摸屏：松手那一帧只有第一次读取返回最后触摸点，
// 之后回落到鼠标位置 (0,0)
type touchPointer struct {
	x, y     int
	touching bool
	released bool
}

func (p *touchPointer) Position() (int, int) {
	if p.touching {
		return p.x, p.y
	}
	if p.released {
		p.released = false
		return p.x, p.y
	}
	return 0, 0
}

func (p *touchPointer) IsPressed() bool { return p.touching }
func (p *touchPointer) Wheel() float64  { return 0 }

func (p *touchPointer) press(x, y int) {
	p.x, p.y = x, y
	p.touching = true
}

func (p *touchPointer) release() {
	p.touching = false
	p.released = true
}

// mockCursor 丢弃指针形状设置
type mockCursor struct{}

func (mockCursor) SetCursorShape(ebiten.CursorShapeType) {}

// mockHaptics 记录触觉反馈调用
type mockHaptics struct {
	taps, successes, bursts int
}

func (m *mockHaptics) Tap()     { m.taps++ }
func (m *mockHaptics) Success() { m.successes++ }
func (m *mockHaptics) Burst()   { m.bursts++ }

// mockScene 记录更新次数
type mockScene struct {
	updates int
}

func (m *mockScene) Update(float64)      { m.updates++ }
func (m *mockScene) Draw(*ebiten.Image) {}

func approx(a, b float64) bool {
	d := a - b
	return d < 1e-6 && d > -1e-6
}
