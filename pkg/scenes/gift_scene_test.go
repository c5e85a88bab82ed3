package scenes

import (
	"testing"
	"time"

	"github.com/decker502/giftbox/pkg/components"
	"github.com/decker502/giftbox/pkg/config"
	"github.com/decker502/giftbox/pkg/timeline"
)

const frame = time.Second / 60

type giftFixture struct {
	clock   *timeline.FakeClock
	sched   *timeline.Scheduler
	pointer *mockPointer
	haptics *mockHaptics
	scene   *GiftScene
}

func newGiftFixture(t *testing.T) *giftFixture {
	t.Helper()
	cfg := config.DefaultConfig()
	clock := timeline.NewFakeClock()
	sched := timeline.NewScheduler(clock)
	pointer := &mockPointer{x: 5, y: 5}
	haptics := &mockHaptics{}

	scene, err := NewGiftScene(GiftSceneConfig{
		Profile:         cfg.Profile(config.DeviceDesktop),
		Palette:         cfg.Palette,
		Letter:          cfg.Letter,
		FireworkStagger: cfg.Timing.FireworkStagger(),
		Width:           config.GameWindowWidth,
		Height:          config.GameWindowHeight,
		Seed:            1,
	}, sched, nil, haptics, pointer, mockCursor{})
	if err != nil {
		t.Fatalf("NewGiftScene: %v", err)
	}
	return &giftFixture{clock: clock, sched: sched, pointer: pointer, haptics: haptics, scene: scene}
}

func (f *giftFixture) step() {
	f.clock.Advance(frame)
	f.sched.Update()
	f.scene.Update(frame.Seconds())
}

func (f *giftFixture) tap(x, y int) {
	f.pointer.x, f.pointer.y = x, y
	f.pointer.pressed = true
	f.step()
	f.pointer.pressed = false
	f.step()
}

func TestGiftSceneInvalidPalette(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Palette.Background = "not-a-colour"
	_, err := NewGiftScene(GiftSceneConfig{
		Profile: cfg.Profile(config.DeviceMobile),
		Palette: cfg.Palette,
	}, timeline.NewScheduler(timeline.NewFakeClock()), nil, nil, &mockPointer{}, mockCursor{})
	if err == nil {
		t.Fatal("expected error for invalid background colour")
	}

	if _, err := NewGiftScene(GiftSceneConfig{Palette: config.DefaultPalette()}, nil, nil, nil, &mockPointer{}, mockCursor{}); err == nil {
		t.Error("expected error for nil scheduler")
	}
}

func TestGiftSceneInstruction(t *testing.T) {
	f := newGiftFixture(t)
	if f.scene.InstructionAlpha() != 0 {
		t.Fatal("instruction hidden until scrolled into view")
	}

	f.scene.ScrollIntoView()
	for i := 0; i < 30; i++ {
		f.step()
	}
	if a := f.scene.InstructionAlpha(); !approx(a, 1) {
		t.Errorf("after 0.5s: got %v, want 1", a)
	}
}

func TestGiftSceneOpenFlow(t *testing.T) {
	f := newGiftFixture(t)
	f.scene.ScrollIntoView()
	f.step()

	opened := 0
	f.scene.OnOpened = func() { opened++ }
	reopened := 0
	f.scene.OnReopen = func() { reopened++ }

	f.tap(config.GameWindowWidth/2, config.GameWindowHeight/2)
	if got := f.scene.OpenSequence().State(); got != components.OpenStateOpening {
		t.Fatalf("state after tap: got %q, want opening", got)
	}
	if f.scene.InstructionAlpha() != 0 {
		t.Error("instruction should hide when opening starts")
	}
	if f.haptics.taps != 1 || f.haptics.bursts != 1 {
		t.Errorf("haptics: taps=%d bursts=%d", f.haptics.taps, f.haptics.bursts)
	}

	// 打开中再次点击不应重复触发
	f.tap(config.GameWindowWidth/2, config.GameWindowHeight/2)
	if f.haptics.bursts != 1 {
		t.Errorf("second tap re-triggered: bursts=%d", f.haptics.bursts)
	}

	for i := 0; i < 200 && f.scene.OpenSequence().State() != components.OpenStateOpened; i++ {
		f.step()
	}
	if opened != 1 {
		t.Fatalf("OnOpened calls: got %d, want 1", opened)
	}
	if f.scene.ReadAgainVisible() {
		t.Error("read again should wait for the letter to be shown once")
	}

	letter := f.scene.Letter()
	letter.SetHidden(false)
	letter.SetVisible(true)
	letter.SetHidden(true)
	if !f.scene.ReadAgainVisible() {
		t.Fatal("read again should show once the letter is hidden again")
	}

	r := f.scene.ReadAgainBounds()
	f.tap((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
	if reopened != 1 {
		t.Errorf("OnReopen calls: got %d, want 1", reopened)
	}
}

func TestGiftSceneResize(t *testing.T) {
	f := newGiftFixture(t)
	f.scene.OnResize(400, 800)
	if f.scene.Letter().Bounds().Dx() != 360 {
		t.Errorf("letter width: got %d, want 360", f.scene.Letter().Bounds().Dx())
	}
	r := f.scene.ReadAgainBounds()
	if r.Max.Y > 800 || r.Min.X < 0 {
		t.Errorf("read again bounds off screen: %v", r)
	}
}

// TestGiftSceneTouchTapOpens 触摸轻点：界面和交互系统在同一帧读取指针
func TestGiftSceneTouchTapOpens(t *testing.T) {
	cfg := config.DefaultConfig()
	clock := timeline.NewFakeClock()
	sched := timeline.NewScheduler(clock)
	touch := &touchPointer{}
	haptics := &mockHaptics{}

	scene, err := NewGiftScene(GiftSceneConfig{
		Profile:         cfg.Profile(config.DeviceMobile),
		Palette:         cfg.Palette,
		Letter:          cfg.Letter,
		FireworkStagger: cfg.Timing.FireworkStagger(),
		Width:           config.GameWindowWidth,
		Height:          config.GameWindowHeight,
		Seed:            1,
	}, sched, nil, haptics, touch, mockCursor{})
	if err != nil {
		t.Fatalf("NewGiftScene: %v", err)
	}
	step := func() {
		clock.Advance(frame)
		sched.Update()
		scene.Update(frame.Seconds())
	}
	step()

	touch.press(config.GameWindowWidth/2, config.GameWindowHeight/2)
	step()
	touch.release()
	step()

	if got := scene.OpenSequence().State(); got != components.OpenStateOpening {
		t.Fatalf("state after touch tap: got %q, want opening", got)
	}
	if haptics.taps != 1 {
		t.Errorf("tap haptics: got %d, want 1", haptics.taps)
	}
}
