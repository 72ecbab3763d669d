package gesture

import (
	"math"
	"testing"
	"time"
)

func TestTwoFingerTapEmitsSecondary(t *testing.T) {
	h := newHarness(t, Config{})

	h.rec.Press(1, 10, 10, h.at(0))
	h.rec.Press(2, 20, 10, h.at(10*time.Millisecond))
	h.rec.Release(1, 10, 10, h.at(100*time.Millisecond))
	h.rec.Release(2, 20, 10, h.at(120*time.Millisecond))
	h.settle()

	h.wantKinds(KindSecondary)
	if d := h.got[0]; d.X != 15 || d.Y != 10 {
		t.Errorf("secondary at (%v,%v), want the pair midpoint (15,10)", d.X, d.Y)
	}
}

func TestPinchEmitsCumulativeZoom(t *testing.T) {
	h := newHarness(t, Config{})

	h.rec.Press(1, 10, 10, h.at(0))
	h.rec.Press(2, 20, 10, h.at(10*time.Millisecond))
	h.rec.Move(2, 25, 10, h.at(30*time.Millisecond))
	h.rec.Move(2, 30, 10, h.at(50*time.Millisecond))
	h.rec.Release(2, 30, 10, h.at(500*time.Millisecond))
	h.rec.Release(1, 10, 10, h.at(520*time.Millisecond))
	h.settle()

	if len(h.got) == 0 {
		t.Fatal("no decisions for a pinch")
	}
	for _, d := range h.got {
		if d.Kind != KindZoom {
			t.Fatalf("decision %v during pinch, want zoom only", d.Kind)
		}
	}

	// Baseline distance 10, final distance 20: cumulative scale 2.0.
	last := h.got[len(h.got)-1]
	if math.Abs(last.Scale-2.0) > 1e-9 {
		t.Errorf("final scale = %v, want 2.0", last.Scale)
	}
	if last.Touch != 1 || last.Touch2 != 2 {
		t.Errorf("zoom touches = (%d,%d), want (1,2)", last.Touch, last.Touch2)
	}
	// Scale round-trips to the final distance against the baseline.
	if got := last.Scale * 10; math.Abs(got-20) > 1e-9 {
		t.Errorf("scale * baseline = %v, want the final distance 20", got)
	}
}

func TestTwistEmitsCumulativeRotate(t *testing.T) {
	h := newHarness(t, Config{})

	h.rec.Press(1, 0, 0, h.at(0))
	h.rec.Press(2, 20, 0, h.at(10*time.Millisecond))
	// Same distance, quarter-turn around the first contact.
	h.rec.Move(2, 0, 20, h.at(50*time.Millisecond))
	h.rec.Release(2, 0, 20, h.at(500*time.Millisecond))
	h.rec.Release(1, 0, 0, h.at(520*time.Millisecond))
	h.settle()

	h.wantKinds(KindRotate)
	if got := h.got[0].Angle; math.Abs(got-math.Pi/2) > 1e-9 {
		t.Errorf("angle = %v, want pi/2", got)
	}
}

func TestTwoFingerVerticalTranslateEmitsScroll(t *testing.T) {
	h := newHarness(t, Config{})

	h.rec.Press(1, 0, 0, h.at(0))
	h.rec.Press(2, 100, 0, h.at(10*time.Millisecond))

	// Both contacts translate downward in small alternating steps so
	// the intermediate skew stays inside the zoom and rotate deadzones.
	y1, y2 := 0.0, 0.0
	ts := 20 * time.Millisecond
	for i := 0; i < 8; i++ {
		y1 += 5
		h.rec.Move(1, 0, y1, h.at(ts))
		ts += 10 * time.Millisecond
		y2 += 5
		h.rec.Move(2, 100, y2, h.at(ts))
		ts += 10 * time.Millisecond
	}
	h.rec.Release(1, 0, y1, h.at(ts))
	h.rec.Release(2, 100, y2, h.at(ts+10*time.Millisecond))
	h.settle()

	if len(h.got) == 0 {
		t.Fatal("no decisions for a two-finger translate")
	}
	for _, d := range h.got {
		if d.Kind != KindScroll {
			t.Fatalf("decision %v during vertical translate, want scroll only", d.Kind)
		}
	}
	last := h.got[len(h.got)-1]
	if math.Abs(last.DY-40) > 1e-9 {
		t.Errorf("cumulative dy = %v, want 40", last.DY)
	}
	if last.Velocity <= 0 {
		t.Errorf("velocity = %v, want > 0", last.Velocity)
	}
}

func TestTwoFingerHorizontalTranslateEmitsPan(t *testing.T) {
	h := newHarness(t, Config{})

	h.rec.Press(1, 0, 0, h.at(0))
	h.rec.Press(2, 100, 0, h.at(10*time.Millisecond))

	x1, x2 := 0.0, 100.0
	ts := 20 * time.Millisecond
	for i := 0; i < 10; i++ {
		x1 += 4
		h.rec.Move(1, x1, 0, h.at(ts))
		ts += 10 * time.Millisecond
		x2 += 4
		h.rec.Move(2, x2, 0, h.at(ts))
		ts += 10 * time.Millisecond
	}
	h.rec.Release(1, x1, 0, h.at(ts))
	h.rec.Release(2, x2, 0, h.at(ts+10*time.Millisecond))
	h.settle()

	if len(h.got) == 0 {
		t.Fatal("no decisions for a two-finger translate")
	}
	for _, d := range h.got {
		if d.Kind != KindPan {
			t.Fatalf("decision %v during horizontal translate, want pan only", d.Kind)
		}
	}
	last := h.got[len(h.got)-1]
	if math.Abs(last.DX-40) > 1e-9 {
		t.Errorf("cumulative dx = %v, want 40", last.DX)
	}
}

func TestDegeneratePairSuppressesZoomAndRotate(t *testing.T) {
	h := newHarness(t, Config{})

	// Baseline distance 2, under the minimum separation.
	h.rec.Press(1, 10, 10, h.at(0))
	h.rec.Press(2, 12, 10, h.at(10*time.Millisecond))
	// Large relative distance and angle change, small centroid motion.
	h.rec.Move(2, 30, 10, h.at(40*time.Millisecond))
	h.rec.Release(2, 30, 10, h.at(500*time.Millisecond))
	h.rec.Release(1, 10, 10, h.at(520*time.Millisecond))
	h.settle()

	if len(h.got) != 0 {
		t.Errorf("decisions = %v, want none from a degenerate pair", h.kinds())
	}
}

func TestSecondContactClosesRunningDrag(t *testing.T) {
	h := newHarness(t, Config{})

	h.rec.Press(1, 0, 0, h.at(0))
	h.rec.Move(1, 50, 0, h.at(350*time.Millisecond)) // drag_start
	h.rec.Press(2, 100, 0, h.at(400*time.Millisecond))
	h.rec.Move(2, 150, 0, h.at(450*time.Millisecond)) // zoom from the pair
	h.rec.Release(1, 50, 0, h.at(500*time.Millisecond))
	h.rec.Release(2, 150, 0, h.at(520*time.Millisecond))
	h.settle()

	h.wantKinds(KindDragStart, KindDragEnd, KindZoom)
}

func TestMovedPairLeavesNoSecondaryTap(t *testing.T) {
	h := newHarness(t, Config{})

	h.rec.Press(1, 10, 10, h.at(0))
	h.rec.Press(2, 20, 10, h.at(10*time.Millisecond))
	h.rec.Move(2, 40, 10, h.at(40*time.Millisecond)) // zoom
	h.rec.Release(1, 10, 10, h.at(100*time.Millisecond))
	h.rec.Release(2, 40, 10, h.at(120*time.Millisecond))
	h.settle()

	h.wantKinds(KindZoom)
}

func TestSlowPairReleaseLeavesNoSecondaryTap(t *testing.T) {
	h := newHarness(t, Config{})

	h.rec.Press(1, 10, 10, h.at(0))
	h.rec.Press(2, 20, 10, h.at(10*time.Millisecond))
	// Stationary, but held past the tap window.
	h.rec.Release(1, 10, 10, h.at(400*time.Millisecond))
	h.rec.Release(2, 20, 10, h.at(420*time.Millisecond))
	h.settle()

	if len(h.got) != 0 {
		t.Errorf("decisions = %v, want none from a slow two-finger hold", h.kinds())
	}
}

func TestSurvivorMoveDisqualifiesSecondaryTap(t *testing.T) {
	h := newHarness(t, Config{})

	h.rec.Press(1, 10, 10, h.at(0))
	h.rec.Press(2, 20, 10, h.at(10*time.Millisecond))
	h.rec.Release(1, 10, 10, h.at(50*time.Millisecond))
	// Survivor wanders before releasing.
	h.rec.Move(2, 80, 10, h.at(80*time.Millisecond))
	h.rec.Release(2, 80, 10, h.at(100*time.Millisecond))
	h.settle()

	if len(h.got) != 0 {
		t.Errorf("decisions = %v, want none when the survivor moved", h.kinds())
	}
}
