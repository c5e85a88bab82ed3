package systems

import (
	"math"

	"github.com/decker502/giftbox/pkg/components"
	"github.com/decker502/giftbox/pkg/ecs"
)

// FadeSystem 推进 FadeComponent 的透明度
// 可见时以 1/Duration 每秒的速度趋近 1，不可见时趋近 0。
type FadeSystem struct {
	entityManager *ecs.EntityManager
}

// NewFadeSystem 创建渐变系统
func NewFadeSystem(em *ecs.EntityManager) *FadeSystem {
	return &FadeSystem{entityManager: em}
}

// Update 更新所有渐变实体
func (s *FadeSystem) Update(dt float64) {
	ids := ecs.GetEntitiesWith1[*components.FadeComponent](s.entityManager)
	for _, id := range ids {
		fade, _ := ecs.GetComponent[*components.FadeComponent](s.entityManager, id)
		StepFade(fade, dt)
	}
}

// StepFade 将单个渐变推进 dt 秒，Duration <= 0 时立即到达目标
func StepFade(fade *components.FadeComponent, dt float64) {
	target := 0.0
	if fade.Visible {
		target = 1
	}
	if fade.Duration <= 0 {
		fade.Alpha = target
		return
	}
	step := dt / fade.Duration
	if fade.Alpha < target {
		fade.Alpha = math.Min(target, fade.Alpha+step)
	} else {
		fade.Alpha = math.Max(target, fade.Alpha-step)
	}
}
