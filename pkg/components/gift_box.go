package components

import (
	"image/color"

	"github.com/decker502/giftbox/pkg/vmath"
	"github.com/hajimehoshi/ebiten/v2"
)

// 礼盒部件名称
const (
	GiftPartBox = "box"
	GiftPartLid = "lid"
)

// GiftPartComponent 标记礼盒的组成部件
type GiftPartComponent struct {
	Part string // "box" | "lid"
}

// MeshComponent 轴对齐长方体网格（在 TransformComponent 描述的局部空间中）
type MeshComponent struct {
	HalfExtents vmath.Vec3
	Color       color.RGBA

	// Emissive 自发光颜色与强度，悬停时增强
	EmissiveColor     color.RGBA
	Emissive          float64
	EmissiveBase      float64
	EmissiveHighlight float64

	// FaceImages 按 +X, -X, +Y, -Y, +Z, -Z 顺序的贴图，nil 表示纯色
	FaceImages [6]*ebiten.Image

	// Children 随父网格一起变换的附属网格（如丝带）
	Children []ChildMesh
}

// ChildMesh 附属网格，相对父网格中心偏移
type ChildMesh struct {
	Offset      vmath.Vec3
	HalfExtents vmath.Vec3
	Color       color.RGBA
}

// IdleFloatComponent 礼盒未打开时的上下漂浮
type IdleFloatComponent struct {
	Enabled   bool
	Time      float64 // 累计秒数
	Amplitude float64
	Frequency float64 // 弧度/秒
	Offset    float64 // 相对盒身的高度偏移（盒盖为 1.45）
}
