package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath 内嵌默认配置路径
const DefaultConfigPath = "data/giftbox.yaml"

// GiftBoxConfig 礼盒场景完整配置
//
// 配置文件位置: data/giftbox.yaml
// 未在 YAML 中出现的字段保留 DefaultConfig() 中的默认值。
type GiftBoxConfig struct {
	// Profiles 设备档位，key 为 "desktop" / "mobile"
	Profiles map[DeviceClass]DeviceProfile `yaml:"profiles"`

	// Timing 页面流程与动画的时间常量
	Timing TimingConfig `yaml:"timing"`

	// Palette 颜色配置（十六进制字符串）
	Palette PaletteConfig `yaml:"palette"`

	// Media 可选媒体资源
	Media MediaConfig `yaml:"media"`

	// Letter 信件内容
	Letter LetterConfig `yaml:"letter"`

	// Reel 开场短片的字幕卡
	Reel ReelConfig `yaml:"reel"`
}

// DeviceProfile 设备档位参数，启动时根据设备类型选定一次
type DeviceProfile struct {
	SparkleCount      int    `yaml:"sparkleCount"`
	ConfettiCount     int    `yaml:"confettiCount"`
	StarCount         int    `yaml:"starCount"`
	FireworkBursts    int    `yaml:"fireworkBursts"`
	FireworkParticles int    `yaml:"fireworkParticles"`
	OpenDurationMs    int    `yaml:"openDuration"`
	CameraZoom        bool   `yaml:"cameraZoom"`
	Antialias         bool   `yaml:"antialias"`
	ShadowQuality     string `yaml:"shadowQuality"` // "basic" | "soft"
}

// OpenDuration 打开动画时长
func (p DeviceProfile) OpenDuration() time.Duration {
	return time.Duration(p.OpenDurationMs) * time.Millisecond
}

// TimingConfig 页面流程时间常量
//
// 这些数值与视频素材长度和过渡动画时长相互对应，修改前需确认素材。
type TimingConfig struct {
	StartDelayMs         int     `yaml:"startDelay"`         // 加载后多久开始播放视频
	VideoThresholdSec    float64 `yaml:"videoThreshold"`     // 视频播放到此秒数触发过渡
	SwapDelayMs          int     `yaml:"swapDelay"`          // 过渡开始到切换区块（擦除动画中点）
	SwipeDurationMs      int     `yaml:"swipeDuration"`      // 擦除动画总时长
	LetterRevealDelayMs  int     `yaml:"letterRevealDelay"`  // 礼盒打开后多久展示信件
	LetterVisibleDelayMs int     `yaml:"letterVisibleDelay"` // 取消隐藏后多久添加 visible
	LetterHideDelayMs    int     `yaml:"letterHideDelay"`    // 关闭信件后多久重新隐藏
	FadeStepMs           int     `yaml:"fadeStep"`           // 音乐淡出步进间隔
	FadeStepVolume       float64 `yaml:"fadeStepVolume"`     // 每步降低的音量
	FadeFloor            float64 `yaml:"fadeFloor"`          // 低于此音量直接停止
	MusicVolume          float64 `yaml:"musicVolume"`        // 背景音乐初始音量
	FireworkStaggerMs    int     `yaml:"fireworkStagger"`    // 烟花批次间隔
	MaxFrameDeltaMs      int     `yaml:"maxFrameDelta"`      // 单帧最大时间步长，0 表示不截断
}

// StartDelay 开始播放延迟
func (t TimingConfig) StartDelay() time.Duration { return ms(t.StartDelayMs) }

// SwapDelay 区块切换延迟
func (t TimingConfig) SwapDelay() time.Duration { return ms(t.SwapDelayMs) }

// SwipeDuration 擦除动画时长
func (t TimingConfig) SwipeDuration() time.Duration { return ms(t.SwipeDurationMs) }

// LetterRevealDelay 信件展示延迟
func (t TimingConfig) LetterRevealDelay() time.Duration { return ms(t.LetterRevealDelayMs) }

// LetterVisibleDelay visible 类延迟
func (t TimingConfig) LetterVisibleDelay() time.Duration { return ms(t.LetterVisibleDelayMs) }

// LetterHideDelay 关闭后隐藏延迟
func (t TimingConfig) LetterHideDelay() time.Duration { return ms(t.LetterHideDelayMs) }

// FadeStep 淡出步进间隔
func (t TimingConfig) FadeStep() time.Duration { return ms(t.FadeStepMs) }

// FireworkStagger 烟花批次间隔
func (t TimingConfig) FireworkStagger() time.Duration { return ms(t.FireworkStaggerMs) }

// MaxFrameDelta 单帧最大时间步长
func (t TimingConfig) MaxFrameDelta() time.Duration { return ms(t.MaxFrameDeltaMs) }

// MediaConfig 可选媒体资源，路径为空或文件缺失时对应功能静默关闭
type MediaConfig struct {
	MusicPath    string   `yaml:"music"`
	FacePhotos   []string `yaml:"facePhotos"`
	ReelDuration float64  `yaml:"reelDuration"` // 秒
	// FontPath 可选的 TTF/OTF 字体，留空使用 Go Regular
	FontPath string `yaml:"font"`
}

// LetterConfig 信件内容
type LetterConfig struct {
	Title     string   `yaml:"title"`
	Body      []string `yaml:"body"`
	Signature string   `yaml:"signature"`
}

// ReelConfig 开场短片字幕卡
type ReelConfig struct {
	Cards []ReelCard `yaml:"cards"`
}

// ReelCard 一张字幕卡，从 At 秒开始显示直到下一张
type ReelCard struct {
	At   float64 `yaml:"at"`
	Text string  `yaml:"text"`
}

// DefaultConfig 返回内置默认配置
func DefaultConfig() *GiftBoxConfig {
	return &GiftBoxConfig{
		Profiles: map[DeviceClass]DeviceProfile{
			DeviceDesktop: {
				SparkleCount:      50,
				ConfettiCount:     200,
				StarCount:         400,
				FireworkBursts:    5,
				FireworkParticles: 80,
				OpenDurationMs:    2500,
				CameraZoom:        true,
				Antialias:         true,
				ShadowQuality:     ShadowSoft,
			},
			DeviceMobile: {
				SparkleCount:      25,
				ConfettiCount:     100,
				StarCount:         150,
				FireworkBursts:    3,
				FireworkParticles: 40,
				OpenDurationMs:    2500,
				CameraZoom:        false,
				Antialias:         false,
				ShadowQuality:     ShadowBasic,
			},
		},
		Timing: TimingConfig{
			StartDelayMs:         2500,
			VideoThresholdSec:    16,
			SwapDelayMs:          750,
			SwipeDurationMs:      1500,
			LetterRevealDelayMs:  1000,
			LetterVisibleDelayMs: 50,
			LetterHideDelayMs:    1200,
			FadeStepMs:           30,
			FadeStepVolume:       0.05,
			FadeFloor:            0.05,
			MusicVolume:          0.5,
			FireworkStaggerMs:    400,
			MaxFrameDeltaMs:      100,
		},
		Palette: DefaultPalette(),
		Media: MediaConfig{
			ReelDuration: 18,
		},
		Letter: LetterConfig{
			Title:     "Happy Birthday",
			Body:      []string{"Every year with you is a gift."},
			Signature: "With love",
		},
	}
}

// 阴影质量取值
const (
	ShadowBasic = "basic"
	ShadowSoft  = "soft"
)

// LoadGiftBoxConfig 从文件系统加载配置
//
// 参数:
//   - path: 配置文件路径（如 "data/giftbox.yaml"）
//
// 返回:
//   - *GiftBoxConfig: 加载成功后的配置结构
//   - error: 读取、解析或校验失败时返回错误
func LoadGiftBoxConfig(path string) (*GiftBoxConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read gift box config: %w", err)
	}
	return ParseGiftBoxConfig(data)
}

// ParseGiftBoxConfig 解析 YAML 配置，缺省字段使用默认值
func ParseGiftBoxConfig(data []byte) (*GiftBoxConfig, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse gift box config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid gift box config: %w", err)
	}

	return cfg, nil
}

// Validate 验证配置有效性
func (c *GiftBoxConfig) Validate() error {
	for _, class := range []DeviceClass{DeviceDesktop, DeviceMobile} {
		p, ok := c.Profiles[class]
		if !ok {
			return fmt.Errorf("missing device profile %q", class)
		}
		if err := p.Validate(); err != nil {
			return fmt.Errorf("profile %q: %w", class, err)
		}
	}

	if err := c.Timing.Validate(); err != nil {
		return err
	}

	if err := c.Palette.Validate(); err != nil {
		return err
	}

	if c.Media.ReelDuration <= 0 {
		return fmt.Errorf("reelDuration must be > 0, got %.1f", c.Media.ReelDuration)
	}

	for i, card := range c.Reel.Cards {
		if card.At < 0 {
			return fmt.Errorf("reel card %d: at must be >= 0, got %.1f", i, card.At)
		}
		if i > 0 && card.At < c.Reel.Cards[i-1].At {
			return fmt.Errorf("reel cards must be sorted by time (card %d)", i)
		}
	}

	return nil
}

// Validate 检查设备档位
func (p DeviceProfile) Validate() error {
	if p.SparkleCount < 0 || p.ConfettiCount < 0 || p.StarCount < 0 {
		return fmt.Errorf("particle counts must be >= 0")
	}
	if p.FireworkBursts < 0 || p.FireworkParticles < 0 {
		return fmt.Errorf("firework counts must be >= 0")
	}
	if p.OpenDurationMs <= 0 {
		return fmt.Errorf("openDuration must be > 0, got %d", p.OpenDurationMs)
	}
	if p.ShadowQuality != ShadowBasic && p.ShadowQuality != ShadowSoft {
		return fmt.Errorf("shadowQuality must be %q or %q, got %q", ShadowBasic, ShadowSoft, p.ShadowQuality)
	}
	return nil
}

// Validate 检查时间常量
func (t TimingConfig) Validate() error {
	if t.VideoThresholdSec <= 0 {
		return fmt.Errorf("videoThreshold must be > 0, got %.1f", t.VideoThresholdSec)
	}
	if t.FadeStepMs <= 0 {
		return fmt.Errorf("fadeStep must be > 0, got %d", t.FadeStepMs)
	}
	if t.FadeStepVolume <= 0 || t.FadeStepVolume > 1 {
		return fmt.Errorf("fadeStepVolume must be in (0, 1], got %.2f", t.FadeStepVolume)
	}
	if t.MusicVolume < 0 || t.MusicVolume > 1 {
		return fmt.Errorf("musicVolume must be in [0, 1], got %.2f", t.MusicVolume)
	}
	if t.SwapDelayMs < 0 || t.StartDelayMs < 0 || t.LetterRevealDelayMs < 0 ||
		t.LetterVisibleDelayMs < 0 || t.LetterHideDelayMs < 0 || t.FireworkStaggerMs < 0 {
		return fmt.Errorf("delays must be >= 0")
	}
	if t.SwipeDurationMs < t.SwapDelayMs {
		return fmt.Errorf("swipeDuration (%d) must not be shorter than swapDelay (%d)", t.SwipeDurationMs, t.SwapDelayMs)
	}
	return nil
}

// Profile 返回指定设备类型的档位，未知类型回退到桌面档位
func (c *GiftBoxConfig) Profile(class DeviceClass) DeviceProfile {
	if p, ok := c.Profiles[class]; ok {
		return p
	}
	return c.Profiles[DeviceDesktop]
}

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}
