package scenes

import (
	"image/color"
	"testing"

	"github.com/decker502/giftbox/pkg/config"
	"github.com/decker502/giftbox/pkg/media"
)

func TestVideoScenePrompt(t *testing.T) {
	reel := media.NewIntroReel(config.ReelConfig{}, 18, nil)
	s := NewVideoScene(reel, nil, color.RGBA{A: 0xff}, nil, nil)

	if s.PromptVisible() {
		t.Fatal("prompt should start hidden")
	}
	s.SetPromptVisible(true)
	if !s.PromptVisible() {
		t.Fatal("prompt should be visible")
	}

	for i := 0; i < 120; i++ {
		s.Update(1.0 / 60)
		if a := s.PromptAlpha(); a < 0.6-1e-9 || a > 1+1e-9 {
			t.Fatalf("pulse alpha out of range at frame %d: %v", i, a)
		}
	}

	s.SetPromptVisible(false)
	if s.PromptVisible() {
		t.Error("prompt should be hidden")
	}
}
