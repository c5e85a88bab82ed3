package entities

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"

	"github.com/decker502/giftbox/pkg/components"
	"github.com/decker502/giftbox/pkg/ecs"
	"github.com/decker502/giftbox/pkg/vmath"
)

// 粒子场常量（速度为每参考帧位移）
const (
	StarMinRadius      = 30.0
	StarMaxRadius      = 50.0
	StarMaxSize        = 2.0
	StarAngularSpeed   = 0.05 // 弧度/秒
	StarPointSize      = 0.1
	StarOpacity        = 0.8
	SparkleMinRadius   = 3.0
	SparkleMaxRadius   = 5.0
	SparkleMinY        = -1.0
	SparkleMaxY        = 2.0
	SparkleDrift       = 0.01 // x/z 速度范围 [-0.01, 0.01)
	SparkleRise        = 0.01 // y 速度范围 [0, 0.01)
	SparkleFloor       = -2.0
	SparkleCeiling     = 5.0
	SparklePointSize   = 0.1
	SparkleOpacity     = 0.8
	ConfettiDrift      = 0.1 // x/z 速度范围 [-0.1, 0.1)
	ConfettiMinLift    = 0.1
	ConfettiMaxLift    = 0.4
	ConfettiMaxSpin    = 0.1
	ConfettiGravity    = 0.005
	ConfettiFloor      = -5.0
	ConfettiWidth      = 0.1
	ConfettiHeight     = 0.15
)

// NewStarfieldEntity 创建远景星空实体
// 星星分布在半径 [30,50) 的球壳上
func NewStarfieldEntity(em *ecs.EntityManager, rng *rand.Rand, count int, c color.RGBA) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if count < 0 {
		return 0, fmt.Errorf("invalid star count %d", count)
	}

	buf := &components.ParticleBuffer{
		Positions:  make([]vmath.Vec3, count),
		Velocities: make([]vmath.Vec3, count),
	}
	sizes := make([]float64, count)
	for i := 0; i < count; i++ {
		r := vmath.RandomRange(rng, StarMinRadius, StarMaxRadius)
		buf.Positions[i] = vmath.RandomSpherical(rng, r)
		sizes[i] = rng.Float64() * StarMaxSize
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.TransformComponent{Scale: 1})
	ecs.AddComponent(em, id, buf)
	ecs.AddComponent(em, id, &components.StarfieldComponent{
		Sizes:        sizes,
		AngularSpeed: StarAngularSpeed,
		Color:        c,
		Opacity:      StarOpacity,
	})
	return id, nil
}

// NewSparkleFieldEntity 创建盒子周围的金色光点实体
func NewSparkleFieldEntity(em *ecs.EntityManager, rng *rand.Rand, count int, c color.RGBA) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if count < 0 {
		return 0, fmt.Errorf("invalid sparkle count %d", count)
	}

	buf := &components.ParticleBuffer{
		Positions:  make([]vmath.Vec3, count),
		Velocities: make([]vmath.Vec3, count),
	}
	for i := 0; i < count; i++ {
		radius := vmath.RandomRange(rng, SparkleMinRadius, SparkleMaxRadius)
		theta := rng.Float64() * math.Pi * 2
		phi := rng.Float64() * math.Pi

		// 水平位置取球面坐标，高度单独采样
		p := vmath.Spherical(radius, theta, phi)
		buf.Positions[i] = vmath.Vec3{
			X: p.X,
			Y: vmath.RandomRange(rng, SparkleMinY, SparkleMaxY),
			Z: p.Y,
		}
		buf.Velocities[i] = vmath.Vec3{
			X: vmath.RandomRange(rng, -SparkleDrift, SparkleDrift),
			Y: rng.Float64() * SparkleRise,
			Z: vmath.RandomRange(rng, -SparkleDrift, SparkleDrift),
		}
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, buf)
	ecs.AddComponent(em, id, &components.SparkleFieldComponent{
		Floor:   SparkleFloor,
		Ceiling: SparkleCeiling,
		Color:   c,
		Opacity: SparkleOpacity,
	})
	return id, nil
}

// NewConfettiFieldEntity 创建彩纸实体（初始隐藏，全部位于原点）
// 颜色按调色板轮流分配
func NewConfettiFieldEntity(em *ecs.EntityManager, rng *rand.Rand, count int, palette []color.RGBA) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if len(palette) == 0 {
		return 0, fmt.Errorf("confetti palette cannot be empty")
	}
	if count < 0 {
		return 0, fmt.Errorf("invalid confetti count %d", count)
	}

	buf := &components.ParticleBuffer{
		Positions:  make([]vmath.Vec3, count),
		Velocities: make([]vmath.Vec3, count),
	}
	field := &components.ConfettiFieldComponent{
		Rotations: make([]vmath.Vec3, count),
		Spins:     make([]vmath.Vec3, count),
		Colors:    make([]color.RGBA, count),
		Gravity:   ConfettiGravity,
		Floor:     ConfettiFloor,
		Width:     ConfettiWidth,
		Height:    ConfettiHeight,
	}
	for i := 0; i < count; i++ {
		buf.Velocities[i] = vmath.Vec3{
			X: vmath.RandomRange(rng, -ConfettiDrift, ConfettiDrift),
			Y: RandomConfettiLift(rng),
			Z: vmath.RandomRange(rng, -ConfettiDrift, ConfettiDrift),
		}
		field.Spins[i] = vmath.Vec3{
			X: rng.Float64() * ConfettiMaxSpin,
			Y: rng.Float64() * ConfettiMaxSpin,
			Z: rng.Float64() * ConfettiMaxSpin,
		}
		field.Colors[i] = palette[i%len(palette)]
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, buf)
	ecs.AddComponent(em, id, field)
	return id, nil
}

// RandomConfettiLift 彩纸的初始/重置上升速度 [0.1, 0.4)
func RandomConfettiLift(rng *rand.Rand) float64 {
	return vmath.RandomRange(rng, ConfettiMinLift, ConfettiMaxLift)
}
