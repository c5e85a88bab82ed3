package systems

import (
	"math/rand"
	"time"

	"github.com/decker502/giftbox/pkg/config"
	"github.com/decker502/giftbox/pkg/ecs"
	"github.com/decker502/giftbox/pkg/entities"
	"github.com/decker502/giftbox/pkg/stage"
	"github.com/decker502/giftbox/pkg/timeline"
	"github.com/hajimehoshi/ebiten/v2"
)

// testFrame 测试中使用的帧时长
const testFrame = time.Second / 60

// mockHaptics 记录触觉反馈调用
type mockHaptics struct {
	taps, successes, bursts int
}

func (m *mockHaptics) Tap()     { m.taps++ }
func (m *mockHaptics) Success() { m.successes++ }
func (m *mockHaptics) Burst()   { m.bursts++ }

// mockPointer 可控的指针输入
type mockPointer struct {
	x, y    int
	pressed bool
	wheel   float64
}

func (m *mockPointer) Position() (int, int) { return m.x, m.y }
func (m *mockPointer) IsPressed() bool      { return m.pressed }
func (m *mockPointer) Wheel() float64       { return m.wheel }

// mockCursor 记录指针形状变化
type mockCursor struct {
	shapes []ebiten.CursorShapeType
}

func (m *mockCursor) SetCursorShape(shape ebiten.CursorShapeType) {
	m.shapes = append(m.shapes, shape)
}

func (m *mockCursor) last() ebiten.CursorShapeType {
	if len(m.shapes) == 0 {
		return ebiten.CursorShapeDefault
	}
	return m.shapes[len(m.shapes)-1]
}

// testScene 组装一个最小的礼盒场景
type testScene struct {
	em        *ecs.EntityManager
	clock     *timeline.FakeClock
	scheduler *timeline.Scheduler
	rng       *rand.Rand
	stage     *stage.Stage
	box, lid  ecs.EntityID

	haptics   *mockHaptics
	camera    *CameraSystem
	fireworks *FireworkSystem
	confetti  *ConfettiSystem
	open      *OpenSequenceSystem
}

func newTestScene(profile config.DeviceProfile) *testScene {
	em := ecs.NewEntityManager()
	clock := timeline.NewFakeClock()
	sched := timeline.NewScheduler(clock)
	rng := rand.New(rand.NewSource(1))
	st := stage.New(stage.NewCamera(config.GameWindowWidth, config.GameWindowHeight), stage.Options{})

	box, lid, err := entities.NewGiftBoxEntities(em, entities.GiftBoxColorsFromPalette(config.DefaultPalette()), nil)
	if err != nil {
		panic(err)
	}

	ts := &testScene{
		em:        em,
		clock:     clock,
		scheduler: sched,
		rng:       rng,
		stage:     st,
		box:       box,
		lid:       lid,
		haptics:   &mockHaptics{},
	}
	ts.camera = NewCameraSystem(em, st.Camera, nil, nil)
	ts.fireworks = NewFireworkSystem(em, sched, rng, nil, profile.FireworkBursts, profile.FireworkParticles, 400*time.Millisecond)
	ts.confetti = NewConfettiSystem(em, rng)
	ts.open = NewOpenSequenceSystem(em, clock, box, lid, profile, ts.camera, ts.fireworks, ts.confetti, ts.haptics)
	return ts
}

// step 推进一帧：时钟、调度器、打开动画、烟花
func (ts *testScene) step() {
	ts.clock.Advance(testFrame)
	ts.scheduler.Update()
	dt := testFrame.Seconds()
	ts.open.Update(dt)
	ts.fireworks.Update(dt)
	ts.em.RemoveMarkedEntities()
}

func desktopProfile() config.DeviceProfile {
	return config.DefaultConfig().Profile(config.DeviceDesktop)
}
