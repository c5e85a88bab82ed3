package vmath

import "math"

// Ray 射线，Dir 应为单位向量
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// At 返回射线上参数 t 处的点
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Dir.Scale(t))
}

// AABB 轴对齐包围盒
type AABB struct {
	Min Vec3
	Max Vec3
}

// NewAABB 由中心和半尺寸构造包围盒
func NewAABB(center, halfExtents Vec3) AABB {
	return AABB{
		Min: center.Sub(halfExtents),
		Max: center.Add(halfExtents),
	}
}

// Intersect 射线与包围盒求交（slab 算法）
//
// 返回最近交点的参数 t；射线起点在盒内时 t 为 0。
func (b AABB) Intersect(r Ray) (float64, bool) {
	tMin := 0.0
	tMax := math.Inf(1)

	origin := [3]float64{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float64{r.Dir.X, r.Dir.Y, r.Dir.Z}
	lo := [3]float64{b.Min.X, b.Min.Y, b.Min.Z}
	hi := [3]float64{b.Max.X, b.Max.Y, b.Max.Z}

	for i := 0; i < 3; i++ {
		if math.Abs(dir[i]) < 1e-12 {
			// 平行于该轴的平面，起点必须在 slab 内
			if origin[i] < lo[i] || origin[i] > hi[i] {
				return 0, false
			}
			continue
		}
		inv := 1 / dir[i]
		t1 := (lo[i] - origin[i]) * inv
		t2 := (hi[i] - origin[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}
	return tMin, true
}
