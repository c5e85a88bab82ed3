// Package stage 用 Ebitengine 的三角形绘制实现一个最小的 3D 舞台
//
// 只支持本场景需要的图元：长方体（画家算法排序）、点精灵、平面四边形，
// 以及线性雾和地面阴影。
package stage

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/decker502/giftbox/pkg/vmath"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// 阴影质量
const (
	ShadowNone  = ""
	ShadowBasic = "basic"
	ShadowSoft  = "soft"
)

// Options 舞台渲染参数
type Options struct {
	Background    color.RGBA
	FogNear       float64
	FogFar        float64
	Antialias     bool
	ShadowQuality string
}

// Stage 渲染目标，持有相机和绘制缓冲
type Stage struct {
	Camera *Camera
	opts   Options

	fog colorful.Color

	faces    []face
	vertices []ebiten.Vertex
	indices  []uint16
}

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// New 创建舞台
func New(camera *Camera, opts Options) *Stage {
	fog, _ := colorful.MakeColor(opts.Background)
	return &Stage{
		Camera: camera,
		opts:   opts,
		fog:    fog,
	}
}

// Options 返回渲染参数
func (s *Stage) Options() Options {
	return s.opts
}

// FogFactor 返回给定深度处的雾浓度 [0,1]
func (s *Stage) FogFactor(depth float64) float64 {
	if s.opts.FogFar <= s.opts.FogNear {
		return 0
	}
	return vmath.Clamp01((depth - s.opts.FogNear) / (s.opts.FogFar - s.opts.FogNear))
}

// applyFog 把颜色按深度混合到雾色
func (s *Stage) applyFog(c color.RGBA, depth float64) color.RGBA {
	f := s.FogFactor(depth)
	if f == 0 {
		return c
	}
	base, _ := colorful.MakeColor(c)
	r, g, b := base.BlendRgb(s.fog, f).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: c.A}
}

// Pick 返回射线最先命中的包围盒下标
func (s *Stage) Pick(ray vmath.Ray, targets ...vmath.AABB) (int, float64, bool) {
	best := -1
	bestT := math.Inf(1)
	for i, box := range targets {
		t, ok := box.Intersect(ray)
		if ok && t < bestT {
			best = i
			bestT = t
		}
	}
	if best < 0 {
		return -1, 0, false
	}
	return best, bestT, true
}

// PickScreen 由屏幕坐标拾取
func (s *Stage) PickScreen(x, y float64, targets ...vmath.AABB) (int, bool) {
	i, _, ok := s.Pick(s.Camera.RayFromScreen(x, y), targets...)
	return i, ok
}

// Clear 用背景色填充
func (s *Stage) Clear(dst *ebiten.Image) {
	dst.Fill(s.opts.Background)
}

// DrawBoxes 绘制一组长方体，所有可见面统一按深度从远到近排序
func (s *Stage) DrawBoxes(dst *ebiten.Image, boxes ...Box) {
	s.faces = s.faces[:0]
	for _, b := range boxes {
		s.faces = visibleFaces(b, s.Camera.Position, s.faces)
	}
	sortFaces(s.faces)

	for i := range s.faces {
		s.drawFace(dst, &s.faces[i])
	}
}

// sortFaces 远的面先画
func sortFaces(faces []face) {
	sort.SliceStable(faces, func(i, j int) bool {
		return faces[i].depth > faces[j].depth
	})
}

func (s *Stage) drawFace(dst *ebiten.Image, f *face) {
	var screen [4][2]float32
	for k, p := range f.corners {
		x, y, _, ok := s.Camera.Project(p)
		if !ok {
			return
		}
		screen[k] = [2]float32{float32(x), float32(y)}
	}

	src := whiteSubImage
	var uv [4][2]float32
	tint := s.applyFog(f.color, f.depth)
	if f.image != nil {
		src = f.image
		b := f.image.Bounds()
		w, h := float32(b.Dx()), float32(b.Dy())
		uv = [4][2]float32{{0, h}, {w, h}, {w, 0}, {0, 0}}
		// 贴图只受光照明暗影响
		lum := (float64(tint.R) + float64(tint.G) + float64(tint.B)) / 3 / 255
		l := uint8(math.Min(255, 80+lum*255))
		tint = color.RGBA{R: l, G: l, B: l, A: 255}
	} else {
		uv = [4][2]float32{{1, 1}, {1, 1}, {1, 1}, {1, 1}}
	}

	s.vertices = s.vertices[:0]
	s.indices = s.indices[:0]
	r, g, b, a := rgba32(tint, 1)
	for k := 0; k < 4; k++ {
		s.vertices = append(s.vertices, ebiten.Vertex{
			DstX: screen[k][0], DstY: screen[k][1],
			SrcX: uv[k][0], SrcY: uv[k][1],
			ColorR: r, ColorG: g, ColorB: b, ColorA: a,
		})
	}
	s.indices = append(s.indices, 0, 1, 2, 0, 2, 3)

	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = s.opts.Antialias
	dst.DrawTriangles(s.vertices, s.indices, src, op)
}

// PointStyle 点精灵样式
type PointStyle struct {
	Color    color.RGBA
	Size     float64   // 世界单位直径
	Sizes    []float64 // 非空时逐点乘以 Size
	Opacity  float64
	Additive bool

	// RotationY 整体绕 Y 轴旋转（星空）
	RotationY float64
}

const circleSegments = 8

// DrawPoints 批量绘制点精灵
func (s *Stage) DrawPoints(dst *ebiten.Image, points []vmath.Vec3, style PointStyle) {
	if style.Opacity <= 0 || len(points) == 0 {
		return
	}

	s.vertices = s.vertices[:0]
	s.indices = s.indices[:0]

	flush := func() {
		if len(s.indices) == 0 {
			return
		}
		op := &ebiten.DrawTrianglesOptions{}
		op.AntiAlias = s.opts.Antialias
		if style.Additive {
			op.Blend = ebiten.BlendLighter
		}
		dst.DrawTriangles(s.vertices, s.indices, whiteSubImage, op)
		s.vertices = s.vertices[:0]
		s.indices = s.indices[:0]
	}

	for i, p := range points {
		if style.RotationY != 0 {
			p = p.RotateY(style.RotationY)
		}
		x, y, depth, ok := s.Camera.Project(p)
		if !ok {
			continue
		}

		size := style.Size
		if i < len(style.Sizes) {
			size *= style.Sizes[i]
		}
		radius := math.Max(0.6, size*s.Camera.PixelsPerUnit(depth)/2)

		c := s.applyFog(style.Color, depth)
		r, g, b, a := rgba32(c, style.Opacity)

		if len(s.vertices)+circleSegments+1 > math.MaxUint16 {
			flush()
		}
		base := uint16(len(s.vertices))
		s.vertices = append(s.vertices, ebiten.Vertex{
			DstX: float32(x), DstY: float32(y), SrcX: 1, SrcY: 1,
			ColorR: r, ColorG: g, ColorB: b, ColorA: a,
		})
		for k := 0; k < circleSegments; k++ {
			angle := 2 * math.Pi * float64(k) / circleSegments
			s.vertices = append(s.vertices, ebiten.Vertex{
				DstX:   float32(x + radius*math.Cos(angle)),
				DstY:   float32(y + radius*math.Sin(angle)),
				SrcX:   1,
				SrcY:   1,
				ColorR: r, ColorG: g, ColorB: b, ColorA: a,
			})
			next := uint16((k+1)%circleSegments) + 1
			s.indices = append(s.indices, base, base+uint16(k)+1, base+next)
		}
	}
	flush()
}

// DrawQuads 批量绘制平面四边形（彩纸），colors 与 quads 一一对应
func (s *Stage) DrawQuads(dst *ebiten.Image, quads [][4]vmath.Vec3, colors []color.RGBA, opacity float64) {
	s.vertices = s.vertices[:0]
	s.indices = s.indices[:0]

	for i, q := range quads {
		var pts [4][2]float32
		visible := true
		depth := 0.0
		for k, p := range q {
			x, y, d, ok := s.Camera.Project(p)
			if !ok {
				visible = false
				break
			}
			pts[k] = [2]float32{float32(x), float32(y)}
			depth += d / 4
		}
		if !visible {
			continue
		}
		if len(s.vertices)+4 > math.MaxUint16 {
			break
		}

		c := color.RGBA{A: 255}
		if i < len(colors) {
			c = colors[i]
		}
		r, g, b, a := rgba32(s.applyFog(c, depth), opacity)
		base := uint16(len(s.vertices))
		for k := 0; k < 4; k++ {
			s.vertices = append(s.vertices, ebiten.Vertex{
				DstX: pts[k][0], DstY: pts[k][1], SrcX: 1, SrcY: 1,
				ColorR: r, ColorG: g, ColorB: b, ColorA: a,
			})
		}
		s.indices = append(s.indices, base, base+1, base+2, base, base+2, base+3)
	}

	if len(s.indices) == 0 {
		return
	}
	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = s.opts.Antialias
	dst.DrawTriangles(s.vertices, s.indices, whiteSubImage, op)
}

const shadowSegments = 24

// DrawShadow 在地面 y 处绘制椭圆阴影
//
// basic 为单层硬阴影，soft 为多层渐变阴影，其余取值不绘制。
func (s *Stage) DrawShadow(dst *ebiten.Image, center vmath.Vec3, radius float64) {
	switch s.opts.ShadowQuality {
	case ShadowBasic:
		s.drawDisc(dst, center, radius, 0.45)
	case ShadowSoft:
		for i := 4; i >= 1; i-- {
			s.drawDisc(dst, center, radius*(0.6+0.15*float64(i)), 0.14)
		}
	}
}

func (s *Stage) drawDisc(dst *ebiten.Image, center vmath.Vec3, radius, alpha float64) {
	cx, cy, _, ok := s.Camera.Project(center)
	if !ok {
		return
	}

	s.vertices = s.vertices[:0]
	s.indices = s.indices[:0]
	s.vertices = append(s.vertices, ebiten.Vertex{
		DstX: float32(cx), DstY: float32(cy), SrcX: 1, SrcY: 1, ColorA: float32(alpha),
	})
	for k := 0; k < shadowSegments; k++ {
		angle := 2 * math.Pi * float64(k) / shadowSegments
		p := center.Add(vmath.Vec3{X: radius * math.Cos(angle), Z: radius * math.Sin(angle)})
		x, y, _, ok := s.Camera.Project(p)
		if !ok {
			return
		}
		s.vertices = append(s.vertices, ebiten.Vertex{
			DstX: float32(x), DstY: float32(y), SrcX: 1, SrcY: 1, ColorA: float32(alpha),
		})
		next := uint16((k+1)%shadowSegments) + 1
		s.indices = append(s.indices, 0, uint16(k)+1, next)
	}

	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = s.opts.Antialias
	dst.DrawTriangles(s.vertices, s.indices, whiteSubImage, op)
}

func rgba32(c color.RGBA, opacity float64) (r, g, b, a float32) {
	return float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(float64(c.A) / 255 * opacity)
}
