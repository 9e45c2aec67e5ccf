package vscroll

// Option configures a Manager at construction time.
type Option func(*Manager)

// WithMeasure supplies a measurement collaborator. When set, the manager
// calls fn instead of its built-in off-surface attach/measure/detach
// routine. fn must not call back into the manager.
func WithMeasure(fn MeasureFunc) Option {
	return func(m *Manager) { m.measure = fn }
}

// WithMaxSurfaceSize overrides the per-axis caps on the scroll surface.
// Intended for hosts whose scrollable range degrades earlier (or later) than
// the defaults assume, and for tests that want the percentage-mapped regime
// without building million-unit layouts.
func WithMaxSurfaceSize(w, h float32) Option {
	return func(m *Manager) { m.engine.MaxSurface = Vec2{X: w, Y: h} }
}
