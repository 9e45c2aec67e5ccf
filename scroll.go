package vscroll

// Default caps for the bounded scroll surface, per axis. Host environments
// lose scroll precision (or misbehave outright) past a few million units, so
// the surface never advertises more than this; larger virtual extents are
// reached through percentage mapping.
const (
	DefaultMaxSurfaceWidth  float32 = 1_000_000
	DefaultMaxSurfaceHeight float32 = 1_000_000
)

// ScrollEngine maps between a bounded host-native scroll offset and an
// unbounded virtual content offset. All methods are pure; the engine carries
// only the per-axis surface caps.
//
// Below the cap the mapping is the identity: one surface unit is one virtual
// unit. Above it the surface offset is read as a percentage of the surface's
// scrollable range and applied to the virtual scrollable range, preserving
// scroll intent rather than absolute position.
type ScrollEngine struct {
	MaxSurface Vec2
}

// NewScrollEngine returns an engine with the default surface caps.
func NewScrollEngine() ScrollEngine {
	return ScrollEngine{MaxSurface: Vec2{X: DefaultMaxSurfaceWidth, Y: DefaultMaxSurfaceHeight}}
}

// SurfaceSize returns the advertised size of the scroll surface for a given
// total virtual extent: min(total, cap) per axis.
func (e ScrollEngine) SurfaceSize(total Vec2) Vec2 {
	return Vec2{
		X: minf(total.X, e.MaxSurface.X),
		Y: minf(total.Y, e.MaxSurface.Y),
	}
}

// VirtualOffset converts a host scroll offset into a virtual content offset,
// given the total virtual extent and the viewport's client size.
func (e ScrollEngine) VirtualOffset(host, total, viewport Vec2) Vec2 {
	return Vec2{
		X: virtualOffset1(host.X, total.X, viewport.X, e.MaxSurface.X),
		Y: virtualOffset1(host.Y, total.Y, viewport.Y, e.MaxSurface.Y),
	}
}

// SurfaceOffset inverts VirtualOffset for remeasure restoration: it converts
// a virtual offset computed against oldTotal into the equivalent host offset
// on the surface sized for newTotal. The percentage of the old virtual range
// is preserved, so relative scroll position survives a relayout even when
// the absolute extent changes.
func (e ScrollEngine) SurfaceOffset(virtual, oldTotal, newTotal, viewport Vec2) Vec2 {
	return Vec2{
		X: surfaceOffset1(virtual.X, oldTotal.X, newTotal.X, viewport.X, e.MaxSurface.X),
		Y: surfaceOffset1(virtual.Y, oldTotal.Y, newTotal.Y, viewport.Y, e.MaxSurface.Y),
	}
}

// virtualOffset1 is the single-axis forward mapping.
func virtualOffset1(host, total, viewport, surfaceCap float32) float32 {
	maxVirtual := maxf(total-viewport, 0)
	if total <= surfaceCap {
		return clampf(host, 0, maxVirtual)
	}
	maxSurface := surfaceCap - viewport
	if maxSurface <= 0 {
		return 0
	}
	pct := clampf(host/maxSurface, 0, 1)
	return clampf(pct*maxVirtual, 0, maxVirtual)
}

// surfaceOffset1 is the single-axis inverse mapping. The percentage is
// derived from the old virtual offset and old virtual range, then applied to
// the scrollable range of the surface sized for the new total.
func surfaceOffset1(virtual, oldTotal, newTotal, viewport, surfaceCap float32) float32 {
	oldMaxVirtual := maxf(oldTotal-viewport, 0)
	if oldMaxVirtual <= 0 {
		return 0
	}
	pct := clampf(virtual/oldMaxVirtual, 0, 1)
	maxSurface := maxf(minf(newTotal, surfaceCap)-viewport, 0)
	return pct * maxSurface
}
