package stage

import (
	"math"

	"github.com/decker502/giftbox/pkg/config"
	"github.com/decker502/giftbox/pkg/vmath"
)

var worldUp = vmath.Vec3{Y: 1}

// Camera 透视相机
type Camera struct {
	Position vmath.Vec3
	Target   vmath.Vec3

	// FOV 垂直视场角（度）
	FOV  float64
	Near float64
	Far  float64

	// Width / Height 视口像素尺寸
	Width  float64
	Height float64
}

// NewCamera 创建位于初始机位、看向原点的相机
func NewCamera(width, height int) *Camera {
	return &Camera{
		Position: vmath.Vec3{Y: config.CameraStartHeight, Z: config.CameraStartDistance},
		FOV:      config.CameraFOV,
		Near:     0.1,
		Far:      1000,
		Width:    float64(width),
		Height:   float64(height),
	}
}

// SetViewport 更新视口尺寸（窗口大小变化时调用）
func (c *Camera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Width = float64(width)
	c.Height = float64(height)
}

// Aspect 宽高比
func (c *Camera) Aspect() float64 {
	if c.Height == 0 {
		return 1
	}
	return c.Width / c.Height
}

// focal 1/tan(fov/2)
func (c *Camera) focal() float64 {
	return 1 / math.Tan(c.FOV*math.Pi/360)
}

// Basis 返回相机的前、右、上单位向量
func (c *Camera) Basis() (forward, right, up vmath.Vec3) {
	forward = c.Target.Sub(c.Position).Normalize()
	right = forward.Cross(worldUp).Normalize()
	up = right.Cross(forward)
	return forward, right, up
}

// Project 把世界坐标投影到屏幕像素
//
// depth 为沿视线方向的距离；点在近平面之后时 ok 为 false。
func (c *Camera) Project(p vmath.Vec3) (x, y, depth float64, ok bool) {
	forward, right, up := c.Basis()
	d := p.Sub(c.Position)

	depth = d.Dot(forward)
	if depth <= c.Near || depth > c.Far {
		return 0, 0, depth, false
	}

	f := c.focal()
	ndcX := d.Dot(right) * f / (c.Aspect() * depth)
	ndcY := d.Dot(up) * f / depth

	x = (ndcX + 1) / 2 * c.Width
	y = (1 - ndcY) / 2 * c.Height
	return x, y, depth, true
}

// PixelsPerUnit 给定深度处一个世界单位对应的像素数
func (c *Camera) PixelsPerUnit(depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return c.Height / 2 * c.focal() / depth
}

// RayFromScreen 由屏幕像素坐标生成拾取射线
func (c *Camera) RayFromScreen(x, y float64) vmath.Ray {
	forward, right, up := c.Basis()

	ndcX := 2*x/c.Width - 1
	ndcY := 1 - 2*y/c.Height

	f := c.focal()
	dir := forward.
		Add(right.Scale(ndcX * c.Aspect() / f)).
		Add(up.Scale(ndcY / f))

	return vmath.Ray{Origin: c.Position, Dir: dir.Normalize()}
}
