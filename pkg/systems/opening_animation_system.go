package systems

import (
	"log"
	"math"
	"time"

	"github.com/decker502/giftbox/pkg/components"
	"github.com/decker502/giftbox/pkg/config"
	"github.com/decker502/giftbox/pkg/ecs"
	"github.com/decker502/giftbox/pkg/media"
	"github.com/decker502/giftbox/pkg/timeline"
	"github.com/decker502/giftbox/pkg/vmath"
)

// Zoomer 打开动画期间接管相机距离
type Zoomer interface {
	SetZoomDistance(d float64)
	ReleaseZoom()
}

// OpenSequenceSystem 礼盒打开动画：idle → opening → opened
//
// 进度由经过的时钟时间除以时长得到（而不是累加 dt），
// 与帧率无关；进入 opened 后触发一次完成通知，此后不可再触发。
type OpenSequenceSystem struct {
	entityManager *ecs.EntityManager
	clock         timeline.Clock
	boxEntity     ecs.EntityID
	lidEntity     ecs.EntityID

	duration   time.Duration
	cameraZoom bool

	zoomer    Zoomer
	fireworks *FireworkSystem
	confetti  *ConfettiSystem
	haptics   media.Haptics

	// OnTrigger 进入 opening 时调用（隐藏说明文字）
	OnTrigger func()
	// OnOpened 进入 opened 时调用一次
	OnOpened func()
}

// NewOpenSequenceSystem 创建打开动画系统
// zoomer、fireworks、confetti、haptics 均可为 nil，对应效果静默缺失。
func NewOpenSequenceSystem(em *ecs.EntityManager, clock timeline.Clock, box, lid ecs.EntityID, profile config.DeviceProfile, zoomer Zoomer, fireworks *FireworkSystem, confetti *ConfettiSystem, haptics media.Haptics) *OpenSequenceSystem {
	if haptics == nil {
		haptics = media.NoHaptics{}
	}
	return &OpenSequenceSystem{
		entityManager: em,
		clock:         clock,
		boxEntity:     box,
		lidEntity:     lid,
		duration:      profile.OpenDuration(),
		cameraZoom:    profile.CameraZoom,
		zoomer:        zoomer,
		fireworks:     fireworks,
		confetti:      confetti,
		haptics:       haptics,
	}
}

func (s *OpenSequenceSystem) sequence() *components.OpenSequenceComponent {
	seq, _ := ecs.GetComponent[*components.OpenSequenceComponent](s.entityManager, s.boxEntity)
	return seq
}

func (s *OpenSequenceSystem) interaction() *components.InteractionComponent {
	ic, _ := ecs.GetComponent[*components.InteractionComponent](s.entityManager, s.boxEntity)
	return ic
}

// Trigger 从 idle 开始打开动画
// 已在打开中或已打开时为空操作，返回 false
func (s *OpenSequenceSystem) Trigger() bool {
	seq := s.sequence()
	ic := s.interaction()
	if seq == nil || ic == nil {
		return false
	}
	if seq.State != components.OpenStateIdle || ic.IsOpening || ic.IsOpened {
		return false
	}

	ic.IsOpening = true
	ic.Hovered = false

	// 停止漂浮
	for _, id := range []ecs.EntityID{s.boxEntity, s.lidEntity} {
		if idle, ok := ecs.GetComponent[*components.IdleFloatComponent](s.entityManager, id); ok {
			idle.Enabled = false
		}
	}

	seq.State = components.OpenStateOpening
	seq.StartTime = s.clock.Now()
	seq.Duration = s.duration
	seq.Progress = 0
	seq.Eased = 0
	if lid, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, s.lidEntity); ok {
		seq.LidStartY = lid.Position.Y
	}
	log.Printf("[OpenSequenceSystem] State: idle → opening (duration %v)", s.duration)

	s.haptics.Burst()
	if s.OnTrigger != nil {
		s.OnTrigger()
	}
	if s.confetti != nil {
		s.confetti.Show()
	}
	if s.fireworks != nil {
		s.fireworks.Launch()
	}
	return true
}

// Update 推进打开动画
func (s *OpenSequenceSystem) Update(dt float64) {
	seq := s.sequence()
	if seq == nil || seq.State != components.OpenStateOpening {
		return
	}

	progress := 1.0
	if seq.Duration > 0 {
		elapsed := s.clock.Now() - seq.StartTime
		progress = vmath.Clamp01(float64(elapsed) / float64(seq.Duration))
	}
	// 单调不减
	seq.Progress = math.Max(seq.Progress, progress)
	seq.Eased = vmath.EaseOutCubic(seq.Progress)

	s.applyPose(seq)

	if seq.Progress >= 1 {
		seq.State = components.OpenStateOpened
		if ic := s.interaction(); ic != nil {
			ic.IsOpened = true
		}
		s.disablePicking()
		if s.cameraZoom && s.zoomer != nil {
			s.zoomer.ReleaseZoom()
		}
		log.Println("[OpenSequenceSystem] State: opening → opened")

		if !seq.Notified {
			seq.Notified = true
			if s.OnOpened != nil {
				s.OnOpened()
			}
		}
	}
}

// applyPose 按缓动进度设置盒盖和相机
func (s *OpenSequenceSystem) applyPose(seq *components.OpenSequenceComponent) {
	if lid, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, s.lidEntity); ok {
		lid.Position.Y = seq.LidStartY + config.LidRiseHeight*seq.Eased
		lid.Rotation.X = -math.Pi / 2 * seq.Eased
		lid.Position.Z = -config.LidSlideBack * seq.Eased
	}
	if s.cameraZoom && s.zoomer != nil {
		s.zoomer.SetZoomDistance(config.CameraStartDistance - config.CameraZoomAmount*seq.Eased)
	}
}

func (s *OpenSequenceSystem) disablePicking() {
	for _, id := range []ecs.EntityID{s.boxEntity, s.lidEntity} {
		if p, ok := ecs.GetComponent[*components.PickableComponent](s.entityManager, id); ok {
			p.IsEnabled = false
		}
	}
}

// State 当前状态
func (s *OpenSequenceSystem) State() string {
	if seq := s.sequence(); seq != nil {
		return seq.State
	}
	return components.OpenStateIdle
}

// Progress 当前进度 [0,1]
func (s *OpenSequenceSystem) Progress() float64 {
	if seq := s.sequence(); seq != nil {
		return seq.Progress
	}
	return 0
}

// Eased 当前缓动进度
func (s *OpenSequenceSystem) Eased() float64 {
	if seq := s.sequence(); seq != nil {
		return seq.Eased
	}
	return 0
}
