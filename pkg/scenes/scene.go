package scenes

import (
	"image/color"

	"github.com/decker502/giftbox/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Scene is a type alias for game.Scene to maintain backward compatibility.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

// 区块名称（在 SceneManager 中注册）
const (
	SectionVideo = "video"
	SectionGift  = "gift"
)

// drawText 绘制单行文字，(x, y) 为对齐点的左上/中上/右上
func drawText(screen *ebiten.Image, str string, face *text.GoTextFace, x, y float64, align text.Align, clr color.Color, alpha float64) {
	if face == nil || str == "" || alpha <= 0 {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.PrimaryAlign = align
	op.ColorScale.ScaleWithColor(clr)
	op.ColorScale.ScaleAlpha(float32(alpha))
	text.Draw(screen, str, face, op)
}

// withAlpha 按比例缩放颜色的 alpha（预乘颜色同时缩放 RGB）
func withAlpha(c color.RGBA, alpha float64) color.RGBA {
	if alpha <= 0 {
		return color.RGBA{}
	}
	if alpha > 1 {
		alpha = 1
	}
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: uint8(float64(c.A) * alpha),
	}
}
