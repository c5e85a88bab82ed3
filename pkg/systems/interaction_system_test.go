package systems

import (
	"testing"

	"github.com/decker502/giftbox/pkg/components"
	"github.com/decker502/giftbox/pkg/config"
	"github.com/decker502/giftbox/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	centerX = config.GameWindowWidth / 2
	centerY = config.GameWindowHeight / 2
)

type mockOpener struct {
	calls int
}

func (m *mockOpener) Trigger() bool {
	m.calls++
	return true
}

func newInteraction(ts *testScene, opener Opener) (*InteractionSystem, *mockPointer, *mockCursor) {
	pointer := &mockPointer{x: 5, y: 5}
	cursor := &mockCursor{}
	return NewInteractionSystemWithInput(ts.em, ts.stage, ts.box, ts.lid, opener, ts.haptics, pointer, cursor), pointer, cursor
}

func TestInteractionHover(t *testing.T) {
	ts := newTestScene(desktopProfile())
	sys, pointer, cursor := newInteraction(ts, &mockOpener{})
	ic, _ := ecs.GetComponent[*components.InteractionComponent](ts.em, ts.box)

	sys.Update(0)
	if ic.Hovered {
		t.Fatal("corner should not hover the box")
	}
	if len(cursor.shapes) != 0 {
		t.Errorf("cursor changed without hover: %v", cursor.shapes)
	}

	pointer.x, pointer.y = centerX, centerY
	sys.Update(0)
	if !ic.Hovered {
		t.Fatal("screen centre should hover the box")
	}
	if cursor.last() != ebiten.CursorShapePointer {
		t.Errorf("cursor: got %v, want pointer", cursor.last())
	}

	// 位置不变时不重复设置
	sys.Update(0)
	if len(cursor.shapes) != 1 {
		t.Errorf("cursor set %d times, want 1", len(cursor.shapes))
	}

	pointer.x, pointer.y = 5, 5
	sys.Update(0)
	if ic.Hovered || cursor.last() != ebiten.CursorShapeDefault {
		t.Errorf("leaving the box: hovered=%v cursor=%v", ic.Hovered, cursor.last())
	}
}

func TestInteractionTapTriggers(t *testing.T) {
	ts := newTestScene(desktopProfile())
	opener := &mockOpener{}
	sys, pointer, _ := newInteraction(ts, opener)

	pointer.x, pointer.y = centerX, centerY
	pointer.pressed = true
	sys.Update(0)
	if opener.calls != 0 {
		t.Fatal("press alone should not trigger")
	}

	pointer.x += 3
	pointer.pressed = false
	sys.Update(0)
	if opener.calls != 1 {
		t.Fatalf("tap: got %d triggers, want 1", opener.calls)
	}
	if ts.haptics.taps != 1 {
		t.Errorf("tap haptics: got %d, want 1", ts.haptics.taps)
	}
}

// TestInteractionDragDoesNotTrigger 拖动旋转镜头不会打开礼盒
func TestInteractionDragDoesNotTrigger(t *testing.T) {
	ts := newTestScene(desktopProfile())
	opener := &mockOpener{}
	sys, pointer, _ := newInteraction(ts, opener)

	pointer.x, pointer.y = centerX, centerY
	pointer.pressed = true
	sys.Update(0)

	pointer.x += 20
	sys.Update(0)
	dx, _, dragging := sys.DragDelta()
	if !dragging || dx != 20 {
		t.Errorf("drag delta: got %d dragging=%v, want 20", dx, dragging)
	}

	pointer.x += 20
	sys.Update(0)
	pointer.pressed = false
	sys.Update(0)

	if opener.calls != 0 {
		t.Errorf("drag triggered opening %d times", opener.calls)
	}
	if _, _, dragging := sys.DragDelta(); dragging {
		t.Error("drag should have ended")
	}
}

func TestInteractionMissDoesNotTrigger(t *testing.T) {
	ts := newTestScene(desktopProfile())
	opener := &mockOpener{}
	sys, _, _ := newInteraction(ts, opener)

	if sys.OnClick(5, 5) {
		t.Error("click outside the box should not trigger")
	}
	if opener.calls != 0 || ts.haptics.taps != 0 {
		t.Errorf("got %d triggers and %d taps, want none", opener.calls, ts.haptics.taps)
	}
}

// TestInteractionWithOpenSequence 点击只触发一次，打开后不再响应
func TestInteractionWithOpenSequence(t *testing.T) {
	ts := newTestScene(desktopProfile())
	sys, _, cursor := newInteraction(ts, ts.open)

	if !sys.OnClick(centerX, centerY) {
		t.Fatal("first click should trigger opening")
	}
	if sys.OnClick(centerX, centerY) {
		t.Error("second click while opening should be ignored")
	}
	if ts.haptics.taps != 1 || ts.haptics.bursts != 1 {
		t.Errorf("haptics: taps=%d bursts=%d, want 1/1", ts.haptics.taps, ts.haptics.bursts)
	}

	sys.OnPointerMove(centerX, centerY)
	if cursor.last() == ebiten.CursorShapePointer {
		t.Error("cursor should not show pointer while opening")
	}

	for ts.open.State() != components.OpenStateOpened {
		ts.step()
	}

	ic, _ := ecs.GetComponent[*components.InteractionComponent](ts.em, ts.box)
	ic.Hovered = false
	sys.OnPointerMove(centerX, centerY)
	if ic.Hovered {
		t.Error("hover should be ignored after opening")
	}
	if sys.HitTest(centerX, centerY) {
		t.Error("opened box should not be pickable")
	}
	if sys.OnClick(centerX, centerY) {
		t.Error("click after opening should be ignored")
	}
}
