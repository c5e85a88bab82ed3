package entities

import (
	"fmt"
	"image/color"
	"math/rand"

	"github.com/decker502/giftbox/pkg/components"
	"github.com/decker502/giftbox/pkg/ecs"
	"github.com/decker502/giftbox/pkg/vmath"
)

// 烟花常量
const (
	FireworkOriginSpread = 5.0 // x/z ∈ [-5, 5)
	FireworkMinHeight    = 2.0
	FireworkMaxHeight    = 5.0
	FireworkMinSpeed     = 0.1
	FireworkMaxSpeed     = 0.3
	FireworkGravity      = 0.002
	FireworkDecayRate    = 0.5 // 每秒，约 2 秒熄灭
	FireworkPointSize    = 0.15
)

// RandomFireworkOrigin 随机烟花爆炸点
func RandomFireworkOrigin(rng *rand.Rand) vmath.Vec3 {
	return vmath.Vec3{
		X: vmath.RandomRange(rng, -FireworkOriginSpread, FireworkOriginSpread),
		Y: vmath.RandomRange(rng, FireworkMinHeight, FireworkMaxHeight),
		Z: vmath.RandomRange(rng, -FireworkOriginSpread, FireworkOriginSpread),
	}
}

// NewFireworkEntity 创建一次烟花爆发
// 所有粒子从同一点出发，方向在球面上随机，速度 [0.1, 0.3)
//
// 参数:
//   - em: 实体管理器
//   - rng: 随机源
//   - origin: 爆炸点（世界坐标）
//   - count: 粒子数量
//   - c: 烟花颜色
//
// 返回:
//   - ecs.EntityID: 烟花实体ID
//   - error: 参数无效时返回错误
func NewFireworkEntity(em *ecs.EntityManager, rng *rand.Rand, origin vmath.Vec3, count int, c color.RGBA) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if count <= 0 {
		return 0, fmt.Errorf("invalid firework particle count %d", count)
	}

	buf := &components.ParticleBuffer{
		Positions:  make([]vmath.Vec3, count),
		Velocities: make([]vmath.Vec3, count),
	}
	for i := 0; i < count; i++ {
		buf.Positions[i] = origin
		speed := vmath.RandomRange(rng, FireworkMinSpeed, FireworkMaxSpeed)
		buf.Velocities[i] = vmath.RandomSpherical(rng, speed)
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, buf)
	ecs.AddComponent(em, id, &components.FireworkComponent{
		Origin:    origin,
		Life:      1,
		DecayRate: FireworkDecayRate,
		Gravity:   FireworkGravity,
		Color:     c,
		Size:      FireworkPointSize,
	})
	return id, nil
}
