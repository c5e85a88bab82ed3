package utils

import (
	"testing"
)

func TestDragTrackerInitialState(t *testing.T) {
	dt := NewDragTracker()

	if dt.GetState() != DragStateNone {
		t.Errorf("Expected initial state to be DragStateNone, got %v", dt.GetState())
	}
	if dt.IsDragging() {
		t.Error("Expected IsDragging to be false initially")
	}
	if dt.JustEnded() {
		t.Error("Expected JustEnded to be false initially")
	}
}

func TestDragTrackerStateTransitions(t *testing.T) {
	dt := NewDragTracker()

	dt.Update(true, 100, 200)
	if dt.GetState() != DragStateStarted {
		t.Fatalf("Expected DragStateStarted after press, got %v", dt.GetState())
	}

	dt.Update(true, 130, 210)
	if !dt.IsDragging() {
		t.Fatal("Expected IsDragging after holding")
	}
	info := dt.GetInfo()
	if info.DeltaX != 30 || info.DeltaY != 10 {
		t.Errorf("Expected delta (30, 10), got (%d, %d)", info.DeltaX, info.DeltaY)
	}

	dt.Update(false, 150, 280)
	if !dt.JustEnded() {
		t.Fatal("Expected JustEnded after release")
	}
	dx, dy := dt.GetDragDistance()
	if dx != 50 || dy != 80 {
		t.Errorf("Expected distance (50, 80), got (%d, %d)", dx, dy)
	}

	// 结束状态只持续一帧
	dt.Update(false, 150, 280)
	if dt.GetState() != DragStateNone {
		t.Errorf("Expected DragStateNone one frame after release, got %v", dt.GetState())
	}
}

func TestDragTrackerPressRightAfterRelease(t *testing.T) {
	dt := NewDragTracker()
	dt.Update(true, 0, 0)
	dt.Update(false, 0, 0)
	dt.Update(true, 40, 40)

	if dt.GetState() != DragStateStarted {
		t.Errorf("Expected new drag to start, got %v", dt.GetState())
	}
	if info := dt.GetInfo(); info.StartX != 40 || info.StartY != 40 {
		t.Errorf("Expected start (40, 40), got (%d, %d)", info.StartX, info.StartY)
	}
}

func TestDragTrackerIsTap(t *testing.T) {
	tests := []struct {
		name     string
		endX     int
		endY     int
		expected bool
	}{
		{"原地释放", 100, 100, true},
		{"轻微移动", 104, 105, true},
		{"拖动后释放", 140, 100, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dt := NewDragTracker()
			dt.Update(true, 100, 100)
			if dt.IsTap() {
				t.Error("IsTap should be false while pressed")
			}
			dt.Update(false, tt.endX, tt.endY)
			if dt.IsTap() != tt.expected {
				t.Errorf("IsTap: got %v, want %v", dt.IsTap(), tt.expected)
			}
		})
	}
}

func TestDragTrackerReset(t *testing.T) {
	dt := NewDragTracker()
	dt.Update(true, 10, 20)
	dt.Update(true, 30, 40)

	dt.Reset()

	info := dt.GetInfo()
	if info.State != DragStateNone || info.StartX != 0 || info.CurrentY != 0 {
		t.Errorf("Expected zero info after reset, got %+v", info)
	}
}

// releasePointer 模拟触摸输入：释放帧只有第一次 Position 返回最后触摸点
type releasePointer struct {
	x, y     int
	pressed  bool
	released bool
	reads    int
	pinch    float64
}

func (p *releasePointer) Position() (int, int) {
	p.reads++
	if p.pressed {
		return p.x, p.y
	}
	if p.released {
		p.released = false
		return p.x, p.y
	}
	return 0, 0
}

func (p *releasePointer) IsPressed() bool { return p.pressed }
func (p *releasePointer) Wheel() float64  { return 1.5 }
func (p *releasePointer) Pinch() float64  { return p.pinch }

func TestPointerFrameSharesOneRead(t *testing.T) {
	src := &releasePointer{x: 300, y: 200, pressed: true}
	frame := NewPointerFrame(src)
	frame.Poll()

	src.pressed = false
	src.released = true
	frame.Poll()

	for i := 0; i < 3; i++ {
		if x, y := frame.Position(); x != 300 || y != 200 {
			t.Fatalf("read %d: got (%d, %d), want (300, 200)", i, x, y)
		}
	}
	if frame.IsPressed() {
		t.Error("Expected released on the second frame")
	}
	if src.reads != 2 {
		t.Errorf("source reads: got %d, want 2", src.reads)
	}
}

func TestPointerFrameTapThroughTwoTrackers(t *testing.T) {
	src := &releasePointer{x: 480, y: 320, pressed: true}
	frame := NewPointerFrame(src)
	ui, scene := NewDragTracker(), NewDragTracker()

	update := func() {
		frame.Poll()
		for _, tr := range []*DragTracker{ui, scene} {
			x, y := frame.Position()
			tr.Update(frame.IsPressed(), x, y)
		}
	}

	update()
	src.pressed = false
	src.released = true
	update()

	if !ui.IsTap() || !scene.IsTap() {
		t.Errorf("Expected both trackers to see a tap, got ui=%v scene=%v", ui.IsTap(), scene.IsTap())
	}
}

func TestPointerFramePinchAndWheel(t *testing.T) {
	src := &releasePointer{pinch: 12}
	frame := NewPointerFrame(src)
	if frame.Pinch() != 0 || frame.Wheel() != 0 {
		t.Error("Expected zero values before the first Poll")
	}
	frame.Poll()
	if frame.Pinch() != 12 {
		t.Errorf("pinch: got %v, want 12", frame.Pinch())
	}
	if frame.Wheel() != 1.5 {
		t.Errorf("wheel: got %v, want 1.5", frame.Wheel())
	}
}

func TestPointerFrameNilSource(t *testing.T) {
	frame := NewPointerFrame(nil)
	frame.Poll()
	if x, y := frame.Position(); x != 0 || y != 0 || frame.IsPressed() {
		t.Error("Expected zero state for nil source")
	}
}
