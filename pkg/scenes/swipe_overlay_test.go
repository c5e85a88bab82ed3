package scenes

import (
	"testing"
	"time"

	"github.com/decker502/giftbox/pkg/timeline"
)

func TestSwipeOverlay(t *testing.T) {
	clock := timeline.NewFakeClock()
	o := NewSwipeOverlay(clock, 1500*time.Millisecond, nil)

	if o.Active() || o.Progress() != 0 {
		t.Fatal("overlay should be idle before StartSwipe")
	}

	clock.Advance(time.Second)
	o.StartSwipe()
	if !o.Active() || !approx(o.Offset(), -1) {
		t.Errorf("at start: active=%v offset=%v, want true/-1", o.Active(), o.Offset())
	}

	clock.Advance(750 * time.Millisecond)
	if !approx(o.Offset(), 0) {
		t.Errorf("at midpoint the band covers the screen: offset=%v", o.Offset())
	}

	tests := []struct {
		at   time.Duration
		want bool
	}{
		{1499 * time.Millisecond, true},
		{1500 * time.Millisecond, false},
		{3 * time.Second, false},
	}
	for _, tt := range tests {
		clock.Set(time.Second + tt.at)
		if got := o.Active(); got != tt.want {
			t.Errorf("Active at %v: got %v, want %v", tt.at, got, tt.want)
		}
	}
	if o.Progress() != 1 {
		t.Errorf("progress after end: got %v", o.Progress())
	}
}

func TestSwipeOverlayOffsetMonotonic(t *testing.T) {
	clock := timeline.NewFakeClock()
	o := NewSwipeOverlay(clock, 1500*time.Millisecond, nil)
	o.StartSwipe()

	prev := o.Offset()
	for i := 0; i < 150; i++ {
		clock.Advance(10 * time.Millisecond)
		cur := o.Offset()
		if cur < prev {
			t.Fatalf("offset went backwards at step %d: %v < %v", i, cur, prev)
		}
		prev = cur
	}
	if !approx(prev, 1) {
		t.Errorf("final offset: got %v, want 1", prev)
	}
}
