package vscroll

import (
	"errors"
	"strconv"
)

// trackedItem is the manager's record of one virtualized node. The spatial
// index references it by id; the manager owns the struct.
type trackedItem struct {
	id           string
	node         Node
	rect         Rect
	visible      bool
	savedDisplay string
}

// Manager virtualizes a host container: it intercepts structural mutations,
// measures new items off-surface, stacks them into a virtual layout, and
// keeps only the viewport-intersecting subset physically attached.
//
// All methods must be called from the host's event loop; the manager is
// single-threaded and cooperative. Once installed, the intercepted surface
// (AppendChild, InsertBefore, RemoveChild) is the only supported mutation
// path for the container's children.
type Manager struct {
	host    Container
	measure MeasureFunc // nil = built-in off-surface routine
	engine  ScrollEngine
	index   *SpatialIndex
	items   *orderedStore[*trackedItem]
	byNode  map[Node]*trackedItem

	// Engine state: current virtual scroll offsets and the total virtual
	// extent of the stacked layout.
	virtualScroll Vec2
	totalVirtual  Vec2

	// Single-slot refresh queue: at most one visibility refresh is in
	// flight per host frame, no matter how many events request one.
	refreshQueued bool

	cancelScroll    func()
	positionImposed bool // manager set the container's position style
	nextID          int
	destroyed       bool
}

// New installs a manager onto a host container. If the container has no
// positioning context, "position: relative" is applied (and restored on
// Destroy). The manager subscribes to the container's scroll event and sizes
// the scroll surface for an initially empty layout.
func New(host Container, opts ...Option) (*Manager, error) {
	if host == nil {
		return nil, errors.New("vscroll: nil container")
	}

	m := &Manager{
		host:   host,
		engine: NewScrollEngine(),
		index:  NewSpatialIndex(),
		items:  newOrderedStore[*trackedItem](),
		byNode: make(map[Node]*trackedItem),
	}
	for _, opt := range opts {
		opt(m)
	}

	if host.Style(StylePosition) == "" {
		host.SetStyle(StylePosition, "relative")
		m.positionImposed = true
	}
	host.SetContentSize(m.engine.SurfaceSize(m.totalVirtual))
	m.cancelScroll = host.OnScroll(m.onScroll)
	return m, nil
}

// AppendChild is the intercepted add primitive. The node is measured
// off-surface, appended to the bottom of the virtual stack, and recorded as
// tracked-but-hidden; it becomes physically attached once a visibility
// refresh finds it inside the viewport.
func (m *Manager) AppendChild(n Node) {
	if m.destroyed {
		return
	}
	if n == nil {
		managerLogger.Warn("append: nil node ignored")
		return
	}
	m.track(n)
}

// InsertBefore is the intercepted insert primitive. The vertical-stack
// layout places every new item at the bottom of the virtual extent, so ref
// does not influence virtual placement; it exists for hosts whose flow
// layout cares about child order.
func (m *Manager) InsertBefore(n, ref Node) {
	_ = ref
	if m.destroyed {
		return
	}
	if n == nil {
		managerLogger.Warn("insert: nil node ignored")
		return
	}
	m.track(n)
}

// RemoveChild is the intercepted remove primitive. Tracked nodes are
// untracked and detached; nodes the manager never tracked are passed through
// to the raw host primitive untouched.
func (m *Manager) RemoveChild(n Node) {
	if m.destroyed {
		return
	}
	if n == nil {
		managerLogger.Warn("remove: missing node ignored")
		return
	}
	it, ok := m.byNode[n]
	if !ok {
		// Foreign child the manager has no opinion about.
		m.host.RemoveChild(n)
		return
	}
	m.untrack(it)
}

// track measures a node and records it as Tracked/Hidden.
func (m *Manager) track(n Node) {
	id := n.Key()
	if id == "" {
		m.nextID++
		id = "vs-" + strconv.Itoa(m.nextID)
	}
	if m.items.Has(id) {
		managerLogger.Warn("add: duplicate id ignored", "id", id)
		return
	}

	size := m.measureNode(n, false)

	it := &trackedItem{
		id:           id,
		node:         n,
		savedDisplay: n.Style(StyleDisplay),
	}
	// Vertical-stack policy: new items land at the bottom of the current
	// virtual extent, on the axis origin.
	it.rect = Rect{X: 0, Y: m.totalVirtual.Y, W: size.X, H: size.Y}
	m.totalVirtual.Y += size.Y
	m.totalVirtual.X = maxf(m.totalVirtual.X, size.X)

	m.items.Set(id, it)
	m.byNode[n] = it
	m.index.Insert(IndexEntry{ID: id, Rect: it.rect})

	m.host.SetContentSize(m.engine.SurfaceSize(m.totalVirtual))
	m.scheduleRefresh()

	if verbose() {
		managerLogger.Debug("tracked", "id", id, "y", it.rect.Y, "w", size.X, "h", size.Y)
	}
}

// untrack detaches a tracked item and drops it from the index and the map.
// The virtual extent shrinks to bound the surviving rectangles, but gaps
// left in the stack are not compacted; Remeasure re-stacks from scratch.
func (m *Manager) untrack(it *trackedItem) {
	if it.visible {
		m.host.RemoveChild(it.node)
		it.visible = false
	}
	m.index.Remove(IndexEntry{ID: it.id, Rect: it.rect})
	m.items.Delete(it.id)
	delete(m.byNode, it.node)

	m.recomputeTotals()
	m.host.SetContentSize(m.engine.SurfaceSize(m.totalVirtual))
	m.scheduleRefresh()

	if verbose() {
		managerLogger.Debug("untracked", "id", it.id)
	}
}

// recomputeTotals rebounds the virtual extent as max(y+h) / max(x+w) over
// the surviving items.
func (m *Manager) recomputeTotals() {
	var total Vec2
	m.items.Each(func(_ string, it *trackedItem) {
		p := it.rect.MaxPoint()
		total.X = maxf(total.X, p.X)
		total.Y = maxf(total.Y, p.Y)
	})
	m.totalVirtual = total
}

// onScroll recomputes the virtual offsets from the host's surface offset and
// queues a coalesced visibility refresh.
func (m *Manager) onScroll() {
	if m.destroyed {
		return
	}
	m.virtualScroll = m.engine.VirtualOffset(m.host.ScrollPos(), m.totalVirtual, m.host.ClientSize())
	m.scheduleRefresh()
}

// scheduleRefresh queues at most one visibility refresh per host frame.
// Repeated scroll events and mutations within one frame collapse into a
// single refresh.
func (m *Manager) scheduleRefresh() {
	if m.refreshQueued {
		return
	}
	m.refreshQueued = true
	m.host.RequestFrame(func() {
		m.refreshQueued = false
		if m.destroyed {
			return
		}
		m.refreshVisible()
	})
}

// refreshVisible diffs the viewport query against the currently-attached set
// and attaches, detaches, or repositions accordingly. Newly-visible nodes
// are attached through BatchAttacher when the host supports it, so the host
// relayouts once.
func (m *Manager) refreshVisible() {
	client := m.host.ClientSize()
	viewport := Rect{X: m.virtualScroll.X, Y: m.virtualScroll.Y, W: client.X, H: client.Y}

	hits := m.index.QueryRange(viewport)
	inView := make(map[string]struct{}, len(hits))
	for _, e := range hits {
		inView[e.ID] = struct{}{}
	}

	hostScroll := m.host.ScrollPos()
	var entering []*trackedItem
	m.items.Each(func(id string, it *trackedItem) {
		_, visible := inView[id]
		switch {
		case visible && !it.visible:
			entering = append(entering, it)
		case !visible && it.visible:
			m.host.RemoveChild(it.node)
			it.visible = false
		case visible && it.visible:
			// Still visible, but the surface may have scrolled under the
			// percentage mapping; refresh the on-surface position.
			m.positionNode(it, hostScroll)
		}
	})

	if len(entering) == 0 {
		return
	}
	nodes := make([]Node, len(entering))
	for i, it := range entering {
		m.positionNode(it, hostScroll)
		it.node.SetStyle(StyleDisplay, it.savedDisplay)
		it.visible = true
		nodes[i] = it.node
	}
	if ba, ok := m.host.(BatchAttacher); ok {
		ba.AppendBatch(nodes)
	} else {
		for _, n := range nodes {
			m.host.AppendChild(n)
		}
	}
}

// positionNode writes the item's on-surface pixel position. The offset
// formula (rect - virtualScroll) + hostScroll holds in both the identity and
// the percentage-mapped regime: items render where the viewport expects them
// regardless of how the surface offset relates to the virtual offset.
func (m *Manager) positionNode(it *trackedItem, hostScroll Vec2) {
	it.node.SetStyle(StylePosition, "absolute")
	it.node.SetStyle(StyleLeft, px(it.rect.X-m.virtualScroll.X+hostScroll.X))
	it.node.SetStyle(StyleTop, px(it.rect.Y-m.virtualScroll.Y+hostScroll.Y))
}

// px formats a CSS pixel length.
func px(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', -1, 32) + "px"
}

// Remeasure re-runs measurement for every tracked item, re-stacks the
// vertical layout in tracking order (compacting any removal gaps), rebuilds
// the spatial index, and restores the host scroll offset so the relative
// scroll position is preserved across the relayout.
func (m *Manager) Remeasure() {
	if m.destroyed {
		return
	}
	oldVirtual := m.virtualScroll
	oldTotal := m.totalVirtual

	var total Vec2
	m.items.Each(func(_ string, it *trackedItem) {
		size := m.measureNode(it.node, it.visible)
		it.rect = Rect{X: 0, Y: total.Y, W: size.X, H: size.Y}
		total.Y += size.Y
		total.X = maxf(total.X, size.X)
	})
	m.totalVirtual = total

	m.index.Clear()
	m.items.Each(func(id string, it *trackedItem) {
		m.index.Insert(IndexEntry{ID: id, Rect: it.rect})
	})

	client := m.host.ClientSize()
	m.host.SetContentSize(m.engine.SurfaceSize(total))
	m.host.SetScrollPos(m.engine.SurfaceOffset(oldVirtual, oldTotal, total, client))
	m.virtualScroll = m.engine.VirtualOffset(m.host.ScrollPos(), total, client)
	m.refreshVisible()
}

// Destroy detaches every visible item, clears all state, unsubscribes from
// the scroll event, and restores the container position style if the manager
// imposed one. The manager is unusable afterwards; further calls, including
// a second Destroy and any refresh already queued with the host, are no-ops.
func (m *Manager) Destroy() {
	if m.destroyed {
		return
	}
	m.destroyed = true

	if m.cancelScroll != nil {
		m.cancelScroll()
		m.cancelScroll = nil
	}
	m.items.Each(func(_ string, it *trackedItem) {
		if it.visible {
			m.host.RemoveChild(it.node)
			it.visible = false
		}
	})
	m.items.Clear()
	clear(m.byNode)
	m.index.Clear()
	m.virtualScroll = Vec2{}
	m.totalVirtual = Vec2{}
	m.host.SetContentSize(Vec2{})
	if m.positionImposed {
		m.host.SetStyle(StylePosition, "")
		m.positionImposed = false
	}
}

// Len returns the number of tracked items.
func (m *Manager) Len() int {
	return m.items.Len()
}

// Item returns the virtual rectangle recorded for a tracked id.
func (m *Manager) Item(id string) (Rect, bool) {
	it, ok := m.items.Get(id)
	if !ok {
		return Rect{}, false
	}
	return it.rect, true
}

// VisibleElements returns the host nodes currently attached, in tracking
// order.
func (m *Manager) VisibleElements() []Node {
	var out []Node
	m.items.Each(func(_ string, it *trackedItem) {
		if it.visible {
			out = append(out, it.node)
		}
	})
	return out
}

// ElementsForRect returns the host nodes whose virtual rectangles intersect
// r, visible or not.
func (m *Manager) ElementsForRect(r Rect) []Node {
	return m.entriesToNodes(m.index.QueryRange(r))
}

// ElementsAt returns the host nodes whose virtual rectangles contain the
// point, both edges inclusive.
func (m *Manager) ElementsAt(x, y float32) []Node {
	return m.entriesToNodes(m.index.QueryPoint(x, y))
}

func (m *Manager) entriesToNodes(entries []IndexEntry) []Node {
	out := make([]Node, 0, len(entries))
	for _, e := range entries {
		if it, ok := m.items.Get(e.ID); ok {
			out = append(out, it.node)
		}
	}
	return out
}

// ScrollToItem scrolls the host so the tracked item's rectangle is inside
// the viewport, moving as little as possible per axis. Unknown ids are
// ignored.
func (m *Manager) ScrollToItem(id string) {
	if m.destroyed {
		return
	}
	it, ok := m.items.Get(id)
	if !ok {
		managerLogger.Warn("scroll to item: unknown id", "id", id)
		return
	}

	client := m.host.ClientSize()
	target := Vec2{
		X: scrollAxisTo(m.virtualScroll.X, it.rect.X, it.rect.W, client.X),
		Y: scrollAxisTo(m.virtualScroll.Y, it.rect.Y, it.rect.H, client.Y),
	}
	m.host.SetScrollPos(m.engine.SurfaceOffset(target, m.totalVirtual, m.totalVirtual, client))
	m.virtualScroll = m.engine.VirtualOffset(m.host.ScrollPos(), m.totalVirtual, client)
	m.scheduleRefresh()
}

// scrollAxisTo returns the virtual offset that brings [pos, pos+size) into a
// viewport of the given extent, keeping the current offset when the item is
// already visible.
func scrollAxisTo(current, pos, size, viewport float32) float32 {
	if pos < current {
		return pos
	}
	if pos+size > current+viewport {
		return maxf(pos+size-viewport, 0)
	}
	return current
}
