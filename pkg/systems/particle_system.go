package systems

import (
	"math/rand"

	"github.com/decker502/giftbox/pkg/components"
	"github.com/decker502/giftbox/pkg/ecs"
	"github.com/decker502/giftbox/pkg/entities"
	"github.com/decker502/giftbox/pkg/vmath"
)

// ReferenceFrameRate 粒子常量以每帧（1/60 秒）为单位，按 dt·60 缩放
const ReferenceFrameRate = 60.0

// frames 把秒数换算为参考帧数
func frames(dt float64) float64 {
	return dt * ReferenceFrameRate
}

// StarfieldSystem 星空整体绕 Y 轴旋转
type StarfieldSystem struct {
	entityManager *ecs.EntityManager
}

// NewStarfieldSystem 创建星空系统
func NewStarfieldSystem(em *ecs.EntityManager) *StarfieldSystem {
	return &StarfieldSystem{entityManager: em}
}

// Update 更新旋转角
func (s *StarfieldSystem) Update(dt float64) {
	ids := ecs.GetEntitiesWith2[*components.StarfieldComponent, *components.TransformComponent](s.entityManager)
	for _, id := range ids {
		star, _ := ecs.GetComponent[*components.StarfieldComponent](s.entityManager, id)
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		transform.Rotation.Y += dt * star.AngularSpeed
	}
}

// SparkleSystem 光点缓慢漂移，越过上限后回到下限
type SparkleSystem struct {
	entityManager *ecs.EntityManager
}

// NewSparkleSystem 创建光点系统
func NewSparkleSystem(em *ecs.EntityManager) *SparkleSystem {
	return &SparkleSystem{entityManager: em}
}

// Update 积分位置并处理循环
func (s *SparkleSystem) Update(dt float64) {
	k := frames(dt)
	ids := ecs.GetEntitiesWith2[*components.SparkleFieldComponent, *components.ParticleBuffer](s.entityManager)
	for _, id := range ids {
		field, _ := ecs.GetComponent[*components.SparkleFieldComponent](s.entityManager, id)
		buf, _ := ecs.GetComponent[*components.ParticleBuffer](s.entityManager, id)

		for i := range buf.Positions {
			p := buf.Positions[i].Add(buf.Velocities[i].Scale(k))
			if p.Y > field.Ceiling {
				p.Y = field.Floor
			}
			buf.Positions[i] = p
		}
	}
}

// ConfettiSystem 彩纸在可见后下落、旋转并循环
type ConfettiSystem struct {
	entityManager *ecs.EntityManager
	rng           *rand.Rand
}

// NewConfettiSystem 创建彩纸系统
func NewConfettiSystem(em *ecs.EntityManager, rng *rand.Rand) *ConfettiSystem {
	return &ConfettiSystem{entityManager: em, rng: rng}
}

// Show 显示所有彩纸
func (s *ConfettiSystem) Show() {
	for _, id := range ecs.GetEntitiesWith1[*components.ConfettiFieldComponent](s.entityManager) {
		field, _ := ecs.GetComponent[*components.ConfettiFieldComponent](s.entityManager, id)
		field.Visible = true
	}
}

// Update 积分位置、旋转和重力；低于地面的彩纸回到原点并重新上抛
func (s *ConfettiSystem) Update(dt float64) {
	k := frames(dt)
	ids := ecs.GetEntitiesWith2[*components.ConfettiFieldComponent, *components.ParticleBuffer](s.entityManager)
	for _, id := range ids {
		field, _ := ecs.GetComponent[*components.ConfettiFieldComponent](s.entityManager, id)
		if !field.Visible {
			continue
		}
		buf, _ := ecs.GetComponent[*components.ParticleBuffer](s.entityManager, id)

		for i := range buf.Positions {
			buf.Positions[i] = buf.Positions[i].Add(buf.Velocities[i].Scale(k))
			// 只绕 X、Y 翻转，Z 分量保留不用
			field.Rotations[i].X += field.Spins[i].X * k
			field.Rotations[i].Y += field.Spins[i].Y * k
			buf.Velocities[i].Y -= field.Gravity * k

			if buf.Positions[i].Y < field.Floor {
				buf.Positions[i] = vmath.Vec3{}
				buf.Velocities[i].Y = entities.RandomConfettiLift(s.rng)
			}
		}
	}
}
