package entities

import (
	"fmt"
	"image/color"

	"github.com/decker502/giftbox/pkg/components"
	"github.com/decker502/giftbox/pkg/config"
	"github.com/decker502/giftbox/pkg/ecs"
	"github.com/decker502/giftbox/pkg/vmath"
	"github.com/hajimehoshi/ebiten/v2"
)

// 礼盒外观常量
const (
	BoxEmissiveBase      = 0.4
	BoxEmissiveHighlight = 0.8
	LidEmissiveBase      = 0.3
	LidEmissiveHighlight = 0.7
	RibbonHalfWidth      = 0.175
	IdleFloatAmplitude   = 0.1
	IdleFloatFrequency   = 1.5
)

// GiftBoxColors 礼盒配色
type GiftBoxColors struct {
	Base     color.RGBA
	Lid      color.RGBA
	Ribbon   color.RGBA
	Emissive color.RGBA
}

// GiftBoxColorsFromPalette 从配色配置解析礼盒颜色
func GiftBoxColorsFromPalette(p config.PaletteConfig) GiftBoxColors {
	return GiftBoxColors{
		Base:     config.MustColor(p.BoxBase),
		Lid:      config.MustColor(p.BoxLid),
		Ribbon:   config.MustColor(p.Ribbon),
		Emissive: config.MustColor(p.Emissive),
	}
}

// NewGiftBoxEntities 创建盒身和盒盖实体
//
// 盒身携带交互状态和打开动画状态；faceImages 为盒身四个侧面的照片
// （右、左、前、后），缺失的面使用纯色。
func NewGiftBoxEntities(em *ecs.EntityManager, colors GiftBoxColors, faceImages []*ebiten.Image) (box, lid ecs.EntityID, err error) {
	if em == nil {
		return 0, 0, fmt.Errorf("entity manager cannot be nil")
	}

	half := config.BoxSize / 2
	ribbonHalf := half + 0.05

	box = em.CreateEntity()
	ecs.AddComponent(em, box, &components.TransformComponent{Scale: 1})
	boxMesh := &components.MeshComponent{
		HalfExtents:       vmath.Vec3{X: half, Y: half, Z: half},
		Color:             colors.Base,
		EmissiveColor:     colors.Emissive,
		Emissive:          BoxEmissiveBase,
		EmissiveBase:      BoxEmissiveBase,
		EmissiveHighlight: BoxEmissiveHighlight,
		Children: []components.ChildMesh{
			{HalfExtents: vmath.Vec3{X: RibbonHalfWidth, Y: ribbonHalf, Z: ribbonHalf}, Color: colors.Ribbon},
			{HalfExtents: vmath.Vec3{X: ribbonHalf, Y: ribbonHalf, Z: RibbonHalfWidth}, Color: colors.Ribbon},
		},
	}
	// 侧面顺序：+X, -X, +Z, -Z
	sideFaces := []int{0, 1, 4, 5}
	for i, img := range faceImages {
		if i >= len(sideFaces) {
			break
		}
		boxMesh.FaceImages[sideFaces[i]] = img
	}
	ecs.AddComponent(em, box, boxMesh)
	ecs.AddComponent(em, box, &components.GiftPartComponent{Part: components.GiftPartBox})
	ecs.AddComponent(em, box, &components.PickableComponent{IsEnabled: true})
	ecs.AddComponent(em, box, &components.IdleFloatComponent{
		Enabled:   true,
		Amplitude: IdleFloatAmplitude,
		Frequency: IdleFloatFrequency,
	})
	ecs.AddComponent(em, box, &components.InteractionComponent{})
	ecs.AddComponent(em, box, &components.OpenSequenceComponent{State: components.OpenStateIdle})

	lidHalf := vmath.Vec3{X: config.LidWidth / 2, Y: config.LidHeight / 2, Z: config.LidWidth / 2}
	lid = em.CreateEntity()
	ecs.AddComponent(em, lid, &components.TransformComponent{
		Position: vmath.Vec3{Y: config.LidRestY},
		Scale:    1,
	})
	ecs.AddComponent(em, lid, &components.MeshComponent{
		HalfExtents:       lidHalf,
		Color:             colors.Lid,
		EmissiveColor:     colors.Emissive,
		Emissive:          LidEmissiveBase,
		EmissiveBase:      LidEmissiveBase,
		EmissiveHighlight: LidEmissiveHighlight,
		Children: []components.ChildMesh{
			{HalfExtents: vmath.Vec3{X: RibbonHalfWidth, Y: lidHalf.Y + 0.01, Z: lidHalf.Z + 0.01}, Color: colors.Ribbon},
			{HalfExtents: vmath.Vec3{X: lidHalf.X + 0.01, Y: lidHalf.Y + 0.01, Z: RibbonHalfWidth}, Color: colors.Ribbon},
		},
	})
	ecs.AddComponent(em, lid, &components.GiftPartComponent{Part: components.GiftPartLid})
	ecs.AddComponent(em, lid, &components.PickableComponent{IsEnabled: true})
	ecs.AddComponent(em, lid, &components.IdleFloatComponent{
		Enabled:   true,
		Amplitude: IdleFloatAmplitude,
		Frequency: IdleFloatFrequency,
		Offset:    config.LidRestY,
	})

	return box, lid, nil
}
