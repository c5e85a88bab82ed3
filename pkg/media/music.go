package media

import (
	"errors"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// ErrNoMusic 未加载背景音乐
var ErrNoMusic = errors.New("no music loaded")

// MusicTrack 背景音乐，音量范围 [0,1]
type MusicTrack struct {
	player *audio.Player
	volume float64
}

// NewMusicTrack 包装一个音频播放器，player 可以为 nil（静音）
func NewMusicTrack(player *audio.Player) *MusicTrack {
	m := &MusicTrack{player: player, volume: 1}
	if player != nil {
		m.volume = player.Volume()
	}
	return m
}

// SetVolume 设置音量，超出范围的值会被截断
func (m *MusicTrack) SetVolume(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	m.volume = v
	if m.player != nil {
		m.player.SetVolume(v)
	}
}

// Volume 当前音量
func (m *MusicTrack) Volume() float64 {
	return m.volume
}

// Play 开始播放
func (m *MusicTrack) Play() error {
	if m.player == nil {
		return ErrNoMusic
	}
	m.player.Play()
	return nil
}

// Pause 暂停
func (m *MusicTrack) Pause() {
	if m.player != nil {
		m.player.Pause()
	}
}

// Rewind 回到开头
func (m *MusicTrack) Rewind() {
	if m.player == nil {
		return
	}
	if err := m.player.SetPosition(0); err != nil {
		log.Printf("[MusicTrack] Warning: %v", fmt.Errorf("rewind failed: %w", err))
	}
}

// IsPlaying 是否在播放
func (m *MusicTrack) IsPlaying() bool {
	return m.player != nil && m.player.IsPlaying()
}
