package stage

import (
	"image/color"
	"math"

	"github.com/decker502/giftbox/pkg/vmath"
	"github.com/hajimehoshi/ebiten/v2"
)

// Box 一个可绘制的长方体
type Box struct {
	Center      vmath.Vec3
	HalfExtents vmath.Vec3
	Rotation    vmath.Vec3 // 先 X 后 Y
	Scale       float64

	Color             color.RGBA
	EmissiveColor     color.RGBA
	EmissiveIntensity float64

	// FaceImages 按 +X, -X, +Y, -Y, +Z, -Z 顺序，nil 表示纯色
	FaceImages [6]*ebiten.Image
}

// 角点下标的位：1 表示 +X，2 表示 +Y，4 表示 +Z
//
// 每个面按 左下、右下、右上、左上（从外侧看）排列，用于贴图。
var faceCorners = [6][4]int{
	{5, 1, 3, 7}, // +X
	{0, 4, 6, 2}, // -X
	{6, 7, 3, 2}, // +Y
	{0, 1, 5, 4}, // -Y
	{4, 5, 7, 6}, // +Z
	{1, 0, 2, 3}, // -Z
}

var faceNormals = [6]vmath.Vec3{
	{X: 1}, {X: -1},
	{Y: 1}, {Y: -1},
	{Z: 1}, {Z: -1},
}

func (b Box) scale() float64 {
	if b.Scale == 0 {
		return 1
	}
	return b.Scale
}

func (b Box) transform(local vmath.Vec3) vmath.Vec3 {
	return local.Scale(b.scale()).RotateX(b.Rotation.X).RotateY(b.Rotation.Y).Add(b.Center)
}

// Corners 返回变换后的 8 个角点
func (b Box) Corners() [8]vmath.Vec3 {
	var out [8]vmath.Vec3
	for i := 0; i < 8; i++ {
		local := vmath.Vec3{X: -b.HalfExtents.X, Y: -b.HalfExtents.Y, Z: -b.HalfExtents.Z}
		if i&1 != 0 {
			local.X = b.HalfExtents.X
		}
		if i&2 != 0 {
			local.Y = b.HalfExtents.Y
		}
		if i&4 != 0 {
			local.Z = b.HalfExtents.Z
		}
		out[i] = b.transform(local)
	}
	return out
}

// Bounds 变换后角点的轴对齐包围盒
func (b Box) Bounds() vmath.AABB {
	corners := b.Corners()
	box := vmath.AABB{Min: corners[0], Max: corners[0]}
	for _, c := range corners[1:] {
		box.Min = vmath.Vec3{X: math.Min(box.Min.X, c.X), Y: math.Min(box.Min.Y, c.Y), Z: math.Min(box.Min.Z, c.Z)}
		box.Max = vmath.Vec3{X: math.Max(box.Max.X, c.X), Y: math.Max(box.Max.Y, c.Y), Z: math.Max(box.Max.Z, c.Z)}
	}
	return box
}

// face 一个待绘制的四边形面
type face struct {
	corners [4]vmath.Vec3
	normal  vmath.Vec3
	color   color.RGBA
	image   *ebiten.Image
	depth   float64
}

// visibleFaces 返回朝向相机的面，并计算到相机的距离
func visibleFaces(b Box, eye vmath.Vec3, dst []face) []face {
	corners := b.Corners()
	for i := 0; i < 6; i++ {
		var f face
		center := vmath.Vec3{}
		for k, idx := range faceCorners[i] {
			f.corners[k] = corners[idx]
			center = center.Add(corners[idx])
		}
		center = center.Scale(0.25)

		f.normal = faceNormals[i].RotateX(b.Rotation.X).RotateY(b.Rotation.Y)
		if f.normal.Dot(eye.Sub(center)) <= 0 {
			continue
		}
		f.depth = eye.Sub(center).Length()
		f.color = b.shade(f.normal)
		f.image = b.FaceImages[i]
		dst = append(dst, f)
	}
	return dst
}

// 固定光源（右上前方）
var lightDir = vmath.Vec3{X: 5, Y: 10, Z: 7}.Normalize()

const (
	ambientLight     = 0.4
	directionalLight = 0.8
)

// shade 平面着色：环境光 + 方向光 + 自发光
func (b Box) shade(normal vmath.Vec3) color.RGBA {
	k := ambientLight + directionalLight*math.Max(0, normal.Dot(lightDir))
	e := b.EmissiveIntensity * 0.5

	ch := func(base, emissive uint8) uint8 {
		v := float64(base)*k + float64(emissive)*e
		return uint8(math.Min(255, math.Max(0, v)))
	}
	return color.RGBA{
		R: ch(b.Color.R, b.EmissiveColor.R),
		G: ch(b.Color.G, b.EmissiveColor.G),
		B: ch(b.Color.B, b.EmissiveColor.B),
		A: 255,
	}
}
