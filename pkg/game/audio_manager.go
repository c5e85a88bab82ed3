package game

import (
	"log"

	"github.com/decker502/giftbox/pkg/media"
)

// AudioManager 音频管理器
// 职责：
//   - 持有全局音频上下文，作为自动播放策略的判断依据
//   - 加载背景音乐，失败时返回空轨道（静默关闭音乐功能）
type AudioManager struct {
	resourceManager *ResourceManager // 资源管理器（用于加载音频）
	music           *media.MusicTrack
}

// NewAudioManager 创建新的音频管理器
func NewAudioManager(rm *ResourceManager) *AudioManager {
	return &AudioManager{resourceManager: rm}
}

// IsReady 音频上下文是否可以发声
//
// 浏览器中需要第一次用户输入后才会就绪，桌面端初始化完成后即就绪。
func (am *AudioManager) IsReady() bool {
	if am.resourceManager == nil {
		return false
	}
	ctx := am.resourceManager.AudioContext()
	return ctx != nil && ctx.IsReady()
}

// LoadMusic 加载背景音乐
// 路径为空或加载失败时返回没有播放器的轨道，Play 返回 media.ErrNoMusic
func (am *AudioManager) LoadMusic(path string) *media.MusicTrack {
	if path == "" || am.resourceManager == nil {
		am.music = media.NewMusicTrack(nil)
		return am.music
	}

	player, err := am.resourceManager.LoadAudio(path)
	if err != nil {
		log.Printf("[AudioManager] Warning: music disabled: %v", err)
		am.music = media.NewMusicTrack(nil)
		return am.music
	}

	log.Printf("[AudioManager] Loaded music: %s", path)
	am.music = media.NewMusicTrack(player)
	return am.music
}

// Music 返回当前背景音乐轨道（未加载时为 nil）
func (am *AudioManager) Music() *media.MusicTrack {
	return am.music
}
