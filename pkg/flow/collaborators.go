package flow

import "github.com/decker502/giftbox/pkg/media"

// Video 开场视频
type Video interface {
	// Play 开始播放；userGesture 为 true 表示由用户输入触发
	Play(userGesture bool) error
	Pause()
	// CurrentTime 当前播放位置（秒）
	CurrentTime() float64
	Ended() bool
}

// Music 背景音乐
type Music interface {
	SetVolume(v float64)
	Volume() float64
	Play() error
	Pause()
	Rewind()
}

// Sections 页面区块切换
type Sections interface {
	ShowVideo()
	ShowGift()
	ScrollToGift()
}

// Overlay 过渡擦除动画
type Overlay interface {
	StartSwipe()
}

// Letter 信件面板
// SetHidden 控制是否参与布局，SetVisible 控制淡入淡出
type Letter interface {
	SetHidden(hidden bool)
	SetVisible(visible bool)
}

// CloseButton 信件关闭按钮
type CloseButton interface {
	AttachClose(fn func())
}

// Prompt "Tap to Play" 提示
type Prompt interface {
	SetPromptVisible(visible bool)
}

// InputProbe 本帧是否有新的用户输入
type InputProbe interface {
	AnyPointerJustPressed() bool
}

// Collaborators 页面流程依赖的外部对象
// 除 Video 外均可为 nil，对应功能静默缺失。
type Collaborators struct {
	Video       Video
	Music       Music
	Sections    Sections
	Overlay     Overlay
	Letter      Letter
	CloseButton CloseButton
	Prompt      Prompt
	Input       InputProbe
	Haptics     media.Haptics
}
