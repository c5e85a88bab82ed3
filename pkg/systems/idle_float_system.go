package systems

import (
	"math"

	"github.com/decker502/giftbox/pkg/components"
	"github.com/decker502/giftbox/pkg/ecs"
)

// 悬停脉动参数
const (
	HoverScale          = 1.05
	HoverPulseAmplitude = 0.02
	HoverPulseRate      = 0.005 // 弧度/毫秒
)

// IdleFloatSystem 礼盒未打开时的漂浮和悬停脉动
type IdleFloatSystem struct {
	entityManager     *ecs.EntityManager
	interactionEntity ecs.EntityID
	elapsed           float64
}

// NewIdleFloatSystem 创建漂浮系统
// interactionEntity 为携带 InteractionComponent 的实体（盒身）
func NewIdleFloatSystem(em *ecs.EntityManager, interactionEntity ecs.EntityID) *IdleFloatSystem {
	return &IdleFloatSystem{
		entityManager:     em,
		interactionEntity: interactionEntity,
	}
}

// Update 更新漂浮高度、缩放和自发光
func (s *IdleFloatSystem) Update(dt float64) {
	s.elapsed += dt

	hovered := false
	if ic, ok := ecs.GetComponent[*components.InteractionComponent](s.entityManager, s.interactionEntity); ok {
		hovered = ic.Hovered
	}

	ids := ecs.GetEntitiesWith2[*components.IdleFloatComponent, *components.TransformComponent](s.entityManager)
	for _, id := range ids {
		idle, _ := ecs.GetComponent[*components.IdleFloatComponent](s.entityManager, id)
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)

		idle.Time += dt
		if !idle.Enabled {
			continue
		}

		transform.Position.Y = math.Sin(idle.Time*idle.Frequency)*idle.Amplitude + idle.Offset
		transform.Scale = HoverPulse(hovered, s.elapsed)

		if mesh, ok := ecs.GetComponent[*components.MeshComponent](s.entityManager, id); ok {
			if hovered {
				mesh.Emissive = mesh.EmissiveHighlight
			} else {
				mesh.Emissive = mesh.EmissiveBase
			}
		}
	}
}

// HoverPulse 悬停时的缩放：1.05 + sin(ms·0.005)·0.02，未悬停为 1
func HoverPulse(hovered bool, seconds float64) float64 {
	if !hovered {
		return 1
	}
	return HoverScale + math.Sin(seconds*1000*HoverPulseRate)*HoverPulseAmplitude
}
