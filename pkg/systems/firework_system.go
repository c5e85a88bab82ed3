package systems

import (
	"image/color"
	"log"
	"math/rand"
	"time"

	"github.com/decker502/giftbox/pkg/components"
	"github.com/decker502/giftbox/pkg/ecs"
	"github.com/decker502/giftbox/pkg/entities"
	"github.com/decker502/giftbox/pkg/timeline"
	"github.com/decker502/giftbox/pkg/vmath"
)

// FireworkSystem 管理烟花的发射、积分和销毁
//
// 烟花是场景中唯一有限生命周期的实体：Life 衰减到 0 时通过
// DestroyEntity 标记，由场景在帧末统一 RemoveMarkedEntities。
type FireworkSystem struct {
	entityManager *ecs.EntityManager
	scheduler     *timeline.Scheduler
	rng           *rand.Rand

	palette   []color.RGBA
	bursts    int
	particles int
	stagger   time.Duration
}

// NewFireworkSystem 创建烟花系统
//
// 参数:
//   - bursts: 每次发射的批次数
//   - particles: 每批粒子数
//   - stagger: 批次间隔
func NewFireworkSystem(em *ecs.EntityManager, scheduler *timeline.Scheduler, rng *rand.Rand, palette []color.RGBA, bursts, particles int, stagger time.Duration) *FireworkSystem {
	if len(palette) == 0 {
		palette = []color.RGBA{{R: 255, G: 255, B: 255, A: 255}}
	}
	return &FireworkSystem{
		entityManager: em,
		scheduler:     scheduler,
		rng:           rng,
		palette:       palette,
		bursts:        bursts,
		particles:     particles,
		stagger:       stagger,
	}
}

// Launch 按间隔安排所有批次，第 i 批在 i·stagger 之后爆发
func (s *FireworkSystem) Launch() {
	log.Printf("[FireworkSystem] Launch %d bursts x %d particles", s.bursts, s.particles)
	for i := 0; i < s.bursts; i++ {
		c := s.palette[i%len(s.palette)]
		s.scheduler.After(time.Duration(i)*s.stagger, "firework", func() {
			s.SpawnBurst(entities.RandomFireworkOrigin(s.rng), c)
		})
	}
}

// SpawnBurst 立即在 origin 处生成一批烟花
func (s *FireworkSystem) SpawnBurst(origin vmath.Vec3, c color.RGBA) ecs.EntityID {
	id, err := entities.NewFireworkEntity(s.entityManager, s.rng, origin, s.particles, c)
	if err != nil {
		log.Printf("[FireworkSystem] Warning: %v", err)
		return 0
	}
	return id
}

// ActiveBursts 返回仍然存活（未被标记销毁）的烟花数
func (s *FireworkSystem) ActiveBursts() int {
	count := 0
	for _, id := range ecs.GetEntitiesWith1[*components.FireworkComponent](s.entityManager) {
		if !s.entityManager.IsMarkedForDestroy(id) {
			count++
		}
	}
	return count
}

// Update 衰减寿命、积分位置并施加重力
func (s *FireworkSystem) Update(dt float64) {
	k := frames(dt)
	ids := ecs.GetEntitiesWith2[*components.FireworkComponent, *components.ParticleBuffer](s.entityManager)
	for _, id := range ids {
		if s.entityManager.IsMarkedForDestroy(id) {
			continue
		}
		fw, _ := ecs.GetComponent[*components.FireworkComponent](s.entityManager, id)
		buf, _ := ecs.GetComponent[*components.ParticleBuffer](s.entityManager, id)

		fw.Life -= dt * fw.DecayRate
		for i := range buf.Positions {
			buf.Positions[i] = buf.Positions[i].Add(buf.Velocities[i].Scale(k))
			buf.Velocities[i].Y -= fw.Gravity * k
		}

		if fw.Life <= 0 {
			s.entityManager.DestroyEntity(id)
		}
	}
}
