package vmath

import (
	"math"
	"math/rand"
)

// RandomRange 返回 [min, max) 内的均匀随机数
func RandomRange(rng *rand.Rand, min, max float64) float64 {
	return min + rng.Float64()*(max-min)
}

// Spherical 由半径、方位角 theta 和极角 phi 计算球面坐标
//
// phi 从 +Z 轴量起，与场景中星空和烟花的采样方式一致。
func Spherical(r, theta, phi float64) Vec3 {
	sinPhi, cosPhi := math.Sincos(phi)
	sinTheta, cosTheta := math.Sincos(theta)
	return Vec3{
		X: r * sinPhi * cosTheta,
		Y: r * sinPhi * sinTheta,
		Z: r * cosPhi,
	}
}

// RandomSpherical 在半径 r 的球面上随机取点（theta ∈ [0,2π)，phi ∈ [0,π)）
func RandomSpherical(rng *rand.Rand, r float64) Vec3 {
	theta := rng.Float64() * math.Pi * 2
	phi := rng.Float64() * math.Pi
	return Spherical(r, theta, phi)
}
