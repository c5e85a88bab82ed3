package systems

import (
	"math"
	"testing"

	"github.com/decker502/giftbox/pkg/components"
	"github.com/decker502/giftbox/pkg/config"
	"github.com/decker502/giftbox/pkg/ecs"
	"github.com/decker502/giftbox/pkg/entities"
)

func TestIdleFloatHeights(t *testing.T) {
	ts := newTestScene(desktopProfile())
	sys := NewIdleFloatSystem(ts.em, ts.box)

	for i := 0; i < 30; i++ {
		sys.Update(1.0 / 60)
	}

	want := math.Sin(0.5*entities.IdleFloatFrequency) * entities.IdleFloatAmplitude
	box, _ := ecs.GetComponent[*components.TransformComponent](ts.em, ts.box)
	lid, _ := ecs.GetComponent[*components.TransformComponent](ts.em, ts.lid)
	if !approx(box.Position.Y, want) {
		t.Errorf("box y: got %v, want %v", box.Position.Y, want)
	}
	if !approx(lid.Position.Y, want+config.LidRestY) {
		t.Errorf("lid y: got %v, want %v", lid.Position.Y, want+config.LidRestY)
	}
	if box.Scale != 1 {
		t.Errorf("scale without hover: got %v", box.Scale)
	}
}

func TestIdleFloatHover(t *testing.T) {
	ts := newTestScene(desktopProfile())
	sys := NewIdleFloatSystem(ts.em, ts.box)
	ic, _ := ecs.GetComponent[*components.InteractionComponent](ts.em, ts.box)
	ic.Hovered = true

	sys.Update(1.0 / 60)

	box, _ := ecs.GetComponent[*components.TransformComponent](ts.em, ts.box)
	if box.Scale < 1.03 || box.Scale > 1.07 {
		t.Errorf("hover scale: got %v, want within [1.03, 1.07]", box.Scale)
	}
	boxMesh, _ := ecs.GetComponent[*components.MeshComponent](ts.em, ts.box)
	lidMesh, _ := ecs.GetComponent[*components.MeshComponent](ts.em, ts.lid)
	if boxMesh.Emissive != entities.BoxEmissiveHighlight || lidMesh.Emissive != entities.LidEmissiveHighlight {
		t.Errorf("hover emissive: box=%v lid=%v", boxMesh.Emissive, lidMesh.Emissive)
	}

	ic.Hovered = false
	sys.Update(1.0 / 60)
	if boxMesh.Emissive != entities.BoxEmissiveBase || box.Scale != 1 {
		t.Errorf("after hover: emissive=%v scale=%v", boxMesh.Emissive, box.Scale)
	}
}

// TestIdleFloatStopsWhenOpening 打开后漂浮停止，盒盖交给打开动画
func TestIdleFloatStopsWhenOpening(t *testing.T) {
	ts := newTestScene(desktopProfile())
	sys := NewIdleFloatSystem(ts.em, ts.box)
	ts.open.Trigger()

	lid, _ := ecs.GetComponent[*components.TransformComponent](ts.em, ts.lid)
	lid.Position.Y = 3
	sys.Update(1.0 / 60)

	if lid.Position.Y != 3 {
		t.Errorf("disabled float moved lid to %v", lid.Position.Y)
	}
}

func TestHoverPulse(t *testing.T) {
	if HoverPulse(false, 12.3) != 1 {
		t.Error("no hover should give scale 1")
	}
	if !approx(HoverPulse(true, 0), HoverScale) {
		t.Errorf("got %v, want %v", HoverPulse(true, 0), HoverScale)
	}
	peak := math.Pi / 2 / (1000 * HoverPulseRate)
	if !approx(HoverPulse(true, peak), HoverScale+HoverPulseAmplitude) {
		t.Errorf("peak: got %v", HoverPulse(true, peak))
	}
}
