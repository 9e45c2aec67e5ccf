package vscroll

// measureNode runs the measurement collaborator for a node. attached tells
// the built-in routine whether the node is already physically in the
// container (true during a remeasure of a visible item).
func (m *Manager) measureNode(n Node, attached bool) Vec2 {
	if m.measure != nil {
		return m.measure(n)
	}
	return m.offSurfaceMeasure(n, attached)
}

// offSurfaceMeasure is the built-in measurement routine: style the node off
// the visible surface, attach it with the raw host primitive, read its laid
// out size, detach, and restore the original style attributes.
//
// Using the raw primitives here is the reentrancy-safety rule in action: the
// measurement attach/detach is bookkeeping and must never loop back through
// the manager's own intercepted surface, or a mutation callback would
// observe the manager mid-mutation.
//
// Zero or negative measured sizes are accepted as-is and flow into the
// virtual layout unvalidated.
func (m *Manager) offSurfaceMeasure(n Node, attached bool) Vec2 {
	savedPosition := n.Style(StylePosition)
	savedVisibility := n.Style(StyleVisibility)
	savedLeft := n.Style(StyleLeft)
	savedTop := n.Style(StyleTop)

	n.SetStyle(StylePosition, "absolute")
	n.SetStyle(StyleVisibility, "hidden")
	n.SetStyle(StyleLeft, "-10000px")
	n.SetStyle(StyleTop, "-10000px")

	if !attached {
		m.host.AppendChild(n)
	}
	size := n.MeasuredSize()
	if !attached {
		m.host.RemoveChild(n)
	}

	n.SetStyle(StylePosition, savedPosition)
	n.SetStyle(StyleVisibility, savedVisibility)
	n.SetStyle(StyleLeft, savedLeft)
	n.SetStyle(StyleTop, savedTop)

	return size
}
