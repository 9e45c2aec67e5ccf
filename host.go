package vscroll

// Style property names the manager reads and writes on hosts. Length values
// carry a "px" suffix, CSS-style.
const (
	StylePosition   = "position"
	StyleVisibility = "visibility"
	StyleDisplay    = "display"
	StyleLeft       = "left"
	StyleTop        = "top"
	StyleWidth      = "width"
	StyleHeight     = "height"
)

// Node is a single visual item owned by the host environment. The manager
// treats it as opaque apart from its identifier, inline style properties,
// and measured size.
type Node interface {
	// Key returns the host-assigned identifier for this node, or "" if the
	// host did not assign one. When empty, the manager generates a
	// sequential identifier at tracking time.
	Key() string

	// Style returns the current value of an inline style property, or ""
	// when the property is unset.
	Style(prop string) string

	// SetStyle sets an inline style property. An empty value clears the
	// property.
	SetStyle(prop, value string)

	// MeasuredSize reports the node's laid-out size. The result is only
	// meaningful while the node is attached to a container.
	MeasuredSize() Vec2
}

// Container is the scrollable host element the manager installs onto. The
// structural methods here are the raw, non-intercepted primitives: the
// manager calls them for bookkeeping (off-surface measurement, physical
// attach/detach) and they must never route back through the manager.
type Container interface {
	// AppendChild physically attaches a node as the last child.
	AppendChild(n Node)

	// InsertBefore physically attaches a node before ref. A nil ref is
	// equivalent to AppendChild.
	InsertBefore(n, ref Node)

	// RemoveChild physically detaches a node. Detaching a node that is not
	// attached is a host-level no-op.
	RemoveChild(n Node)

	// ScrollPos returns the container's current scroll offsets.
	ScrollPos() Vec2

	// SetScrollPos sets the container's scroll offsets. The host clamps to
	// its scrollable range.
	SetScrollPos(p Vec2)

	// ClientSize returns the container's viewport dimensions.
	ClientSize() Vec2

	// SetContentSize sizes the scroll surface: the element whose extent
	// determines the container's scrollable range.
	SetContentSize(s Vec2)

	// Style and SetStyle access the container's own inline style, used to
	// establish (and later restore) the positioning context for absolutely
	// placed children.
	Style(prop string) string
	SetStyle(prop, value string)

	// OnScroll subscribes to the container's scroll event and returns a
	// cancel function that unsubscribes.
	OnScroll(fn func()) (cancel func())

	// RequestFrame schedules fn to run on the host's next animation-frame
	// equivalent. Used to coalesce visibility refreshes.
	RequestFrame(fn func())
}

// BatchAttacher is an optional Container capability: attaching many nodes in
// a single host relayout. When a container implements it, the visibility
// refresh attaches all newly-visible nodes through one AppendBatch call.
type BatchAttacher interface {
	AppendBatch(ns []Node)
}

// MeasureFunc is a caller-supplied measurement collaborator. Given a node
// that may or may not be attached, it reports the size the node would occupy
// in the layout. When no MeasureFunc is configured the manager measures by
// attaching the node off-surface and reading its MeasuredSize.
type MeasureFunc func(n Node) Vec2
