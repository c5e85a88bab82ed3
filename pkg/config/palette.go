package config

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// PaletteConfig 场景配色，所有颜色为 "#rrggbb" 格式
type PaletteConfig struct {
	Background  string   `yaml:"background"`
	BoxBase     string   `yaml:"boxBase"`
	BoxLid      string   `yaml:"boxLid"`
	Ribbon      string   `yaml:"ribbon"`
	RibbonShine string   `yaml:"ribbonShine"`
	Emissive    string   `yaml:"emissive"`
	Star        string   `yaml:"star"`
	Sparkle     string   `yaml:"sparkle"`
	Confetti    []string `yaml:"confetti"`
	Fireworks   []string `yaml:"fireworks"`
}

// DefaultPalette 默认配色
func DefaultPalette() PaletteConfig {
	return PaletteConfig{
		Background:  "#1a0a2e",
		BoxBase:     "#e63946",
		BoxLid:      "#c1121f",
		Ribbon:      "#ffd700",
		RibbonShine: "#ffed4e",
		Emissive:    "#ff0044",
		Star:        "#ffffff",
		Sparkle:     "#ffd700",
		Confetti:    []string{"#ff6b9d", "#6bb6ff", "#ffd700", "#ff1744", "#00e676"},
		Fireworks:   []string{"#ff6b9d", "#6bb6ff", "#ffd700", "#ffffff"},
	}
}

// Validate 检查所有颜色可解析且调色板非空
func (p PaletteConfig) Validate() error {
	singles := map[string]string{
		"background":  p.Background,
		"boxBase":     p.BoxBase,
		"boxLid":      p.BoxLid,
		"ribbon":      p.Ribbon,
		"ribbonShine": p.RibbonShine,
		"emissive":    p.Emissive,
		"star":        p.Star,
		"sparkle":     p.Sparkle,
	}
	for name, hex := range singles {
		if _, err := ParseHexColor(hex); err != nil {
			return fmt.Errorf("palette.%s: %w", name, err)
		}
	}

	if len(p.Confetti) == 0 {
		return fmt.Errorf("palette.confetti must not be empty")
	}
	if len(p.Fireworks) == 0 {
		return fmt.Errorf("palette.fireworks must not be empty")
	}
	if _, err := ParseHexColors(p.Confetti); err != nil {
		return fmt.Errorf("palette.confetti: %w", err)
	}
	if _, err := ParseHexColors(p.Fireworks); err != nil {
		return fmt.Errorf("palette.fireworks: %w", err)
	}
	return nil
}

// ParseHexColor 解析 "#rrggbb" 为不透明的 color.RGBA
func ParseHexColor(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// ParseHexColors 批量解析颜色
func ParseHexColors(list []string) ([]color.RGBA, error) {
	out := make([]color.RGBA, 0, len(list))
	for _, hex := range list {
		c, err := ParseHexColor(hex)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// MustColor 解析已通过 Validate 的颜色，失败时返回白色
func MustColor(hex string) color.RGBA {
	c, err := ParseHexColor(hex)
	if err != nil {
		return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	return c
}
