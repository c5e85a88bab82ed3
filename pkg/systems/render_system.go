package systems

import (
	"image/color"

	"github.com/decker502/giftbox/pkg/components"
	"github.com/decker502/giftbox/pkg/ecs"
	"github.com/decker502/giftbox/pkg/entities"
	"github.com/decker502/giftbox/pkg/stage"
	"github.com/decker502/giftbox/pkg/vmath"
	"github.com/hajimehoshi/ebiten/v2"
)

// ShadowRadius 盒底阴影半径
const ShadowRadius = 2.0

// RenderSystem 按固定顺序绘制场景：星空 → 阴影 → 网格 → 光点 → 彩纸 → 烟花
type RenderSystem struct {
	entityManager *ecs.EntityManager
	stage         *stage.Stage

	boxes []stage.Box
	quads [][4]vmath.Vec3
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager, st *stage.Stage) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
		stage:         st,
	}
}

// Draw 绘制整个 3D 场景
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	if s.stage == nil {
		return
	}
	s.stage.Clear(screen)
	s.drawStars(screen)
	s.drawShadow(screen)
	s.drawMeshes(screen)
	s.drawSparkles(screen)
	s.drawConfetti(screen)
	s.drawFireworks(screen)
}

func (s *RenderSystem) drawStars(screen *ebiten.Image) {
	ids := ecs.GetEntitiesWith3[*components.StarfieldComponent, *components.ParticleBuffer, *components.TransformComponent](s.entityManager)
	for _, id := range ids {
		star, _ := ecs.GetComponent[*components.StarfieldComponent](s.entityManager, id)
		buf, _ := ecs.GetComponent[*components.ParticleBuffer](s.entityManager, id)
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)

		s.stage.DrawPoints(screen, buf.Positions, stage.PointStyle{
			Color:     star.Color,
			Size:      entities.StarPointSize,
			Sizes:     star.Sizes,
			Opacity:   star.Opacity,
			Additive:  true,
			RotationY: transform.Rotation.Y,
		})
	}
}

func (s *RenderSystem) drawShadow(screen *ebiten.Image) {
	for _, id := range ecs.GetEntitiesWith2[*components.GiftPartComponent, *components.TransformComponent](s.entityManager) {
		part, _ := ecs.GetComponent[*components.GiftPartComponent](s.entityManager, id)
		if part.Part != components.GiftPartBox {
			continue
		}
		mesh, ok := ecs.GetComponent[*components.MeshComponent](s.entityManager, id)
		if !ok {
			continue
		}
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		// 阴影固定在静止时的盒底，不随漂浮移动
		ground := vmath.Vec3{X: transform.Position.X, Y: -mesh.HalfExtents.Y - 0.05, Z: transform.Position.Z}
		s.stage.DrawShadow(screen, ground, ShadowRadius)
	}
}

func (s *RenderSystem) drawMeshes(screen *ebiten.Image) {
	s.boxes = s.boxes[:0]
	for _, id := range ecs.GetEntitiesWith2[*components.MeshComponent, *components.TransformComponent](s.entityManager) {
		s.boxes = AppendMeshBoxes(s.entityManager, id, s.boxes)
	}
	s.stage.DrawBoxes(screen, s.boxes...)
}

func (s *RenderSystem) drawSparkles(screen *ebiten.Image) {
	for _, id := range ecs.GetEntitiesWith2[*components.SparkleFieldComponent, *components.ParticleBuffer](s.entityManager) {
		field, _ := ecs.GetComponent[*components.SparkleFieldComponent](s.entityManager, id)
		buf, _ := ecs.GetComponent[*components.ParticleBuffer](s.entityManager, id)
		s.stage.DrawPoints(screen, buf.Positions, stage.PointStyle{
			Color:    field.Color,
			Size:     entities.SparklePointSize,
			Opacity:  field.Opacity,
			Additive: true,
		})
	}
}

func (s *RenderSystem) drawConfetti(screen *ebiten.Image) {
	for _, id := range ecs.GetEntitiesWith2[*components.ConfettiFieldComponent, *components.ParticleBuffer](s.entityManager) {
		field, _ := ecs.GetComponent[*components.ConfettiFieldComponent](s.entityManager, id)
		if !field.Visible {
			continue
		}
		buf, _ := ecs.GetComponent[*components.ParticleBuffer](s.entityManager, id)

		s.quads = s.quads[:0]
		for i, p := range buf.Positions {
			s.quads = append(s.quads, ConfettiQuad(p, field.Rotations[i], field.Width, field.Height))
		}
		s.stage.DrawQuads(screen, s.quads, field.Colors, 1)
	}
}

func (s *RenderSystem) drawFireworks(screen *ebiten.Image) {
	for _, id := range ecs.GetEntitiesWith2[*components.FireworkComponent, *components.ParticleBuffer](s.entityManager) {
		fw, _ := ecs.GetComponent[*components.FireworkComponent](s.entityManager, id)
		buf, _ := ecs.GetComponent[*components.ParticleBuffer](s.entityManager, id)
		s.stage.DrawPoints(screen, buf.Positions, stage.PointStyle{
			Color:    fw.Color,
			Size:     fw.Size,
			Opacity:  fw.Life,
			Additive: true,
		})
	}
}

// ConfettiQuad 计算一片彩纸的四个角点
func ConfettiQuad(center, rotation vmath.Vec3, width, height float64) [4]vmath.Vec3 {
	hw, hh := width/2, height/2
	local := [4]vmath.Vec3{
		{X: -hw, Y: -hh},
		{X: hw, Y: -hh},
		{X: hw, Y: hh},
		{X: -hw, Y: hh},
	}
	var out [4]vmath.Vec3
	for i, l := range local {
		out[i] = l.RotateX(rotation.X).RotateY(rotation.Y).RotateZ(rotation.Z).Add(center)
	}
	return out
}

// MeshBox 由实体的变换和网格组件生成可绘制的长方体
func MeshBox(em *ecs.EntityManager, id ecs.EntityID) (stage.Box, bool) {
	transform, ok := ecs.GetComponent[*components.TransformComponent](em, id)
	if !ok {
		return stage.Box{}, false
	}
	mesh, ok := ecs.GetComponent[*components.MeshComponent](em, id)
	if !ok {
		return stage.Box{}, false
	}
	return stage.Box{
		Center:            transform.Position,
		HalfExtents:       mesh.HalfExtents,
		Rotation:          transform.Rotation,
		Scale:             transform.Scale,
		Color:             mesh.Color,
		EmissiveColor:     mesh.EmissiveColor,
		EmissiveIntensity: mesh.Emissive,
		FaceImages:        mesh.FaceImages,
	}, true
}

// AppendMeshBoxes 追加实体的主网格及其附属网格
func AppendMeshBoxes(em *ecs.EntityManager, id ecs.EntityID, dst []stage.Box) []stage.Box {
	box, ok := MeshBox(em, id)
	if !ok {
		return dst
	}
	dst = append(dst, box)

	mesh, _ := ecs.GetComponent[*components.MeshComponent](em, id)
	scale := box.Scale
	if scale == 0 {
		scale = 1
	}
	for _, child := range mesh.Children {
		offset := child.Offset.Scale(scale).RotateX(box.Rotation.X).RotateY(box.Rotation.Y)
		dst = append(dst, stage.Box{
			Center:            box.Center.Add(offset),
			HalfExtents:       child.HalfExtents,
			Rotation:          box.Rotation,
			Scale:             box.Scale,
			Color:             child.Color,
			EmissiveColor:     color.RGBA{R: child.Color.R, G: child.Color.G, B: child.Color.B, A: 255},
			EmissiveIntensity: 0.2,
		})
	}
	return dst
}
