package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const fullProfilesYAML = `
profiles:
  desktop:
    sparkleCount: 60
    confettiCount: 220
    starCount: 300
    fireworkBursts: 4
    fireworkParticles: 70
    openDuration: 2000
    cameraZoom: true
    antialias: true
    shadowQuality: soft
  mobile:
    sparkleCount: 20
    confettiCount: 80
    starCount: 100
    fireworkBursts: 2
    fireworkParticles: 30
    openDuration: 2000
    cameraZoom: false
    antialias: false
    shadowQuality: basic
`

func TestDefaultConfigValues(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}

	desktop := cfg.Profile(DeviceDesktop)
	if desktop.SparkleCount != 50 || desktop.ConfettiCount != 200 {
		t.Errorf("desktop counts: got %d/%d, want 50/200", desktop.SparkleCount, desktop.ConfettiCount)
	}
	if desktop.OpenDuration() != 2500*time.Millisecond {
		t.Errorf("desktop OpenDuration: got %v, want 2.5s", desktop.OpenDuration())
	}

	mobile := cfg.Profile(DeviceMobile)
	if mobile.SparkleCount != 25 || mobile.ConfettiCount != 100 || mobile.CameraZoom {
		t.Errorf("mobile profile mismatch: %+v", mobile)
	}

	timing := cfg.Timing
	checks := []struct {
		name string
		got  time.Duration
		want time.Duration
	}{
		{"StartDelay", timing.StartDelay(), 2500 * time.Millisecond},
		{"SwapDelay", timing.SwapDelay(), 750 * time.Millisecond},
		{"LetterRevealDelay", timing.LetterRevealDelay(), 1000 * time.Millisecond},
		{"LetterVisibleDelay", timing.LetterVisibleDelay(), 50 * time.Millisecond},
		{"LetterHideDelay", timing.LetterHideDelay(), 1200 * time.Millisecond},
		{"FadeStep", timing.FadeStep(), 30 * time.Millisecond},
		{"FireworkStagger", timing.FireworkStagger(), 400 * time.Millisecond},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s: got %v, want %v", c.name, c.got, c.want)
		}
	}
	if timing.VideoThresholdSec != 16 {
		t.Errorf("VideoThresholdSec: got %v, want 16", timing.VideoThresholdSec)
	}
}

func TestParseGiftBoxConfig(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *GiftBoxConfig)
	}{
		{
			name:        "空文件使用默认值",
			yamlContent: ``,
			validate: func(t *testing.T, cfg *GiftBoxConfig) {
				if cfg.Timing.SwapDelayMs != 750 {
					t.Errorf("SwapDelayMs: got %d, want 750", cfg.Timing.SwapDelayMs)
				}
			},
		},
		{
			name:        "覆盖设备档位",
			yamlContent: fullProfilesYAML,
			validate: func(t *testing.T, cfg *GiftBoxConfig) {
				if got := cfg.Profile(DeviceDesktop).SparkleCount; got != 60 {
					t.Errorf("desktop SparkleCount: got %d, want 60", got)
				}
				if got := cfg.Profile(DeviceMobile).FireworkBursts; got != 2 {
					t.Errorf("mobile FireworkBursts: got %d, want 2", got)
				}
				// 未覆盖的部分保持默认
				if cfg.Timing.LetterHideDelayMs != 1200 {
					t.Errorf("LetterHideDelayMs: got %d, want 1200", cfg.Timing.LetterHideDelayMs)
				}
			},
		},
		{
			name: "覆盖部分时间常量",
			yamlContent: `
timing:
  videoThreshold: 12
  swapDelay: 500
`,
			validate: func(t *testing.T, cfg *GiftBoxConfig) {
				if cfg.Timing.VideoThresholdSec != 12 {
					t.Errorf("VideoThresholdSec: got %v, want 12", cfg.Timing.VideoThresholdSec)
				}
				if cfg.Timing.SwapDelay() != 500*time.Millisecond {
					t.Errorf("SwapDelay: got %v, want 500ms", cfg.Timing.SwapDelay())
				}
				if cfg.Timing.FadeStepMs != 30 {
					t.Errorf("FadeStepMs should keep default 30, got %d", cfg.Timing.FadeStepMs)
				}
			},
		},
		{
			name: "非法阈值",
			yamlContent: `
timing:
  videoThreshold: 0
`,
			wantErr:     true,
			errContains: "videoThreshold",
		},
		{
			name: "擦除动画短于切换延迟",
			yamlContent: `
timing:
  swapDelay: 2000
  swipeDuration: 1000
`,
			wantErr:     true,
			errContains: "swipeDuration",
		},
		{
			name: "非法颜色",
			yamlContent: `
palette:
  boxBase: "red"
`,
			wantErr:     true,
			errContains: "boxBase",
		},
		{
			name: "空五彩纸屑调色板",
			yamlContent: `
palette:
  confetti: []
`,
			wantErr:     true,
			errContains: "confetti",
		},
		{
			name: "字幕卡未排序",
			yamlContent: `
reel:
  cards:
    - at: 5
      text: b
    - at: 1
      text: a
`,
			wantErr:     true,
			errContains: "sorted",
		},
		{
			name:        "YAML 语法错误",
			yamlContent: "timing: [",
			wantErr:     true,
			errContains: "parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseGiftBoxConfig([]byte(tt.yamlContent))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q should contain %q", err.Error(), tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestProfileValidate(t *testing.T) {
	p := DefaultConfig().Profile(DeviceDesktop)
	p.ShadowQuality = "ultra"
	if err := p.Validate(); err == nil {
		t.Error("expected error for unknown shadow quality")
	}

	p = DefaultConfig().Profile(DeviceDesktop)
	p.OpenDurationMs = 0
	if err := p.Validate(); err == nil {
		t.Error("expected error for zero open duration")
	}
}

func TestProfileFallback(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.Profile(DeviceClass("tv")); got.SparkleCount != 50 {
		t.Errorf("unknown class should fall back to desktop, got %+v", got)
	}
}

func TestLoadGiftBoxConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "giftbox.yaml")
	if err := os.WriteFile(path, []byte(fullProfilesYAML), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := LoadGiftBoxConfig(path)
	if err != nil {
		t.Fatalf("LoadGiftBoxConfig: %v", err)
	}
	if cfg.Profile(DeviceMobile).StarCount != 100 {
		t.Errorf("mobile StarCount: got %d, want 100", cfg.Profile(DeviceMobile).StarCount)
	}

	if _, err := LoadGiftBoxConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

// TestShippedConfig 仓库内置的 data/giftbox.yaml 必须有效
func TestShippedConfig(t *testing.T) {
	cfg, err := LoadGiftBoxConfig(filepath.Join("..", "..", DefaultConfigPath))
	if err != nil {
		t.Fatalf("shipped config invalid: %v", err)
	}
	if len(cfg.Reel.Cards) == 0 {
		t.Error("shipped config should contain reel cards")
	}
	if cfg.Timing.VideoThresholdSec != 16 {
		t.Errorf("shipped VideoThresholdSec: got %v, want 16", cfg.Timing.VideoThresholdSec)
	}
}
