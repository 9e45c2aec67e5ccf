package vscroll_test

import (
	"testing"

	"github.com/go-vscroll/vscroll"
)

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func closeTo(t *testing.T, got, want, tol float32, what string) {
	t.Helper()
	if absf(got-want) > tol {
		t.Fatalf("%s = %v, want %v (±%v)", what, got, want, tol)
	}
}

func TestSurfaceSize(t *testing.T) {
	e := vscroll.NewScrollEngine()

	tests := []struct {
		name  string
		total vscroll.Vec2
		want  vscroll.Vec2
	}{
		{"below cap", vscroll.Vec2{X: 800, Y: 5000}, vscroll.Vec2{X: 800, Y: 5000}},
		{"at cap", vscroll.Vec2{X: 1_000_000, Y: 1_000_000}, vscroll.Vec2{X: 1_000_000, Y: 1_000_000}},
		{"above cap", vscroll.Vec2{X: 3_000_000, Y: 2_000_000}, vscroll.Vec2{X: 1_000_000, Y: 1_000_000}},
		{"mixed", vscroll.Vec2{X: 500, Y: 8_000_000}, vscroll.Vec2{X: 500, Y: 1_000_000}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.SurfaceSize(tt.total)
			if got != tt.want {
				t.Fatalf("SurfaceSize(%v) = %v, want %v", tt.total, got, tt.want)
			}
		})
	}
}

func TestVirtualOffsetIdentity(t *testing.T) {
	e := vscroll.NewScrollEngine()

	got := e.VirtualOffset(
		vscroll.Vec2{Y: 1000},
		vscroll.Vec2{X: 800, Y: 5000},
		vscroll.Vec2{X: 800, Y: 600},
	)
	if got.Y != 1000 {
		t.Fatalf("virtual top = %v, want exactly 1000", got.Y)
	}
	if got.X != 0 {
		t.Fatalf("virtual left = %v, want 0", got.X)
	}
}

func TestVirtualOffsetIdentityClamps(t *testing.T) {
	e := vscroll.NewScrollEngine()

	// Host offsets beyond the virtual range clamp to it.
	got := e.VirtualOffset(
		vscroll.Vec2{Y: 99_999},
		vscroll.Vec2{X: 800, Y: 5000},
		vscroll.Vec2{X: 800, Y: 600},
	)
	if got.Y != 4400 {
		t.Fatalf("virtual top = %v, want 4400", got.Y)
	}
}

func TestVirtualOffsetPercentage(t *testing.T) {
	e := vscroll.NewScrollEngine()
	total := vscroll.Vec2{X: 800, Y: 2_000_000}
	viewport := vscroll.Vec2{X: 800, Y: 600}

	// maxSurfaceScroll = 1_000_000 - 600 = 999_400;
	// maxVirtualScroll = 2_000_000 - 600 = 1_999_400.
	tests := []struct {
		host float32
		want float32
	}{
		{0, 0},
		{499_700, 999_700}, // 50%
		{999_400, 1_999_400},
	}
	for _, tt := range tests {
		got := e.VirtualOffset(vscroll.Vec2{Y: tt.host}, total, viewport)
		closeTo(t, got.Y, tt.want, 1, "virtual top")
	}
}

func TestVirtualOffsetTinyViewportAboveCap(t *testing.T) {
	// A viewport at least as tall as the surface cap leaves no scrollable
	// surface range; the virtual offset pins to zero.
	e := vscroll.ScrollEngine{MaxSurface: vscroll.Vec2{X: 500, Y: 500}}

	got := e.VirtualOffset(
		vscroll.Vec2{Y: 100},
		vscroll.Vec2{X: 400, Y: 10_000},
		vscroll.Vec2{X: 400, Y: 500},
	)
	if got.Y != 0 {
		t.Fatalf("virtual top = %v, want 0", got.Y)
	}
}

func TestSurfaceOffsetPreservesPosition(t *testing.T) {
	e := vscroll.NewScrollEngine()
	viewport := vscroll.Vec2{X: 800, Y: 600}

	// Unchanged totals: the restored host offset equals the one the
	// virtual offset was derived from.
	for _, total := range []vscroll.Vec2{
		{X: 800, Y: 5000},
		{X: 800, Y: 2_000_000},
	} {
		for _, host := range []float32{0, 1000, 2200} {
			virtual := e.VirtualOffset(vscroll.Vec2{Y: host}, total, viewport)
			restored := e.SurfaceOffset(virtual, total, total, viewport)
			closeTo(t, restored.Y, host, 0.01, "restored host top")
		}
	}
}

func TestSurfaceOffsetAcrossRelayout(t *testing.T) {
	e := vscroll.NewScrollEngine()
	viewport := vscroll.Vec2{X: 800, Y: 600}
	oldTotal := vscroll.Vec2{X: 800, Y: 2600}
	newTotal := vscroll.Vec2{X: 800, Y: 4600}

	// 50% of the old virtual range maps to 50% of the new surface range.
	got := e.SurfaceOffset(vscroll.Vec2{Y: 1000}, oldTotal, newTotal, viewport)
	closeTo(t, got.Y, 2000, 0.01, "host top")
}

func TestSurfaceOffsetDegenerateRange(t *testing.T) {
	e := vscroll.NewScrollEngine()
	viewport := vscroll.Vec2{X: 800, Y: 600}

	// Content no taller than the viewport has no scrollable range at all.
	got := e.SurfaceOffset(vscroll.Vec2{Y: 50}, vscroll.Vec2{Y: 400}, vscroll.Vec2{Y: 400}, viewport)
	if got.Y != 0 {
		t.Fatalf("host top = %v, want 0", got.Y)
	}
}
