package components

import (
	"image/color"

	"github.com/decker502/giftbox/pkg/vmath"
)

// ParticleBuffer 粒子场独占的位置/速度缓冲区
//
// Positions 与 Velocities 下标一一对应，长度相同。
// 速度单位为"每参考帧"（1/60 秒）的位移。
type ParticleBuffer struct {
	Positions  []vmath.Vec3
	Velocities []vmath.Vec3
}

// Len 返回粒子数量
func (b *ParticleBuffer) Len() int {
	return len(b.Positions)
}

// StarfieldComponent 远景星空
// 粒子静止在球壳上，整体绕 Y 轴匀速旋转（旋转角保存在 TransformComponent）。
type StarfieldComponent struct {
	Sizes        []float64
	AngularSpeed float64 // 弧度/秒
	Color        color.RGBA
	Opacity      float64
}

// SparkleFieldComponent 盒子周围缓慢上升的金色光点
type SparkleFieldComponent struct {
	Floor   float64 // 超过 Ceiling 后回到的高度
	Ceiling float64
	Color   color.RGBA
	Opacity float64
}

// ConfettiFieldComponent 彩纸，打开礼盒前隐藏
type ConfettiFieldComponent struct {
	Visible   bool
	Rotations []vmath.Vec3 // 每片彩纸当前的欧拉角
	Spins     []vmath.Vec3 // 每参考帧旋转增量
	Colors    []color.RGBA
	Gravity   float64 // 每参考帧速度 y 的减少量
	Floor     float64 // 低于此高度回到原点
	Width     float64
	Height    float64
}

// FireworkComponent 一次烟花爆发
//
// Life 从 1 线性衰减，同时作为不透明度；Life <= 0 时实体被销毁。
type FireworkComponent struct {
	Origin    vmath.Vec3
	Life      float64
	DecayRate float64 // 每秒衰减量
	Gravity   float64 // 每参考帧速度 y 的减少量
	Color     color.RGBA
	Size      float64
}
