package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents one section of the page (intro video, gift).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Resizable 是一个可选接口，窗口尺寸变化时通知场景
//
// 实现此接口的场景在 Layout 报告新的逻辑尺寸时被调用 OnResize()，
// 包括当前未显示的场景，因此切换回来时不需要重新计算布局。
type Resizable interface {
	OnResize(width, height int)
}
