package vscroll

// SpatialIndex is a 2D alternating-axis search tree over item bounding
// rectangles. Depth-even nodes split on x, depth-odd nodes on y. The tree is
// never rebalanced: ordering is pure insertion order, which keeps removal
// simple at the cost of degenerate O(n) depth under adversarial input. The
// reference vertical-stack layout assigns x=0 to every item, so the x levels
// of a single-column tree collapse toward a linked list; this is a known
// scalability limit, kept because downstream consumers depend on the
// resulting query traversal order.
//
// Nodes live in a contiguous arena addressed by index, with removed slots
// recycled through a free list. This sidesteps the ownership gymnastics of
// the replace-with-subtree-minimum deletion step.
type SpatialIndex struct {
	nodes []indexNode
	free  []int32
	root  int32
	count int
}

// IndexEntry ties an item identifier to its bounding rectangle in virtual
// content coordinates.
type IndexEntry struct {
	ID   string
	Rect Rect
}

// indexNode is one arena slot. axis is fixed to depth mod 2 at creation and
// never changes, even when the entry is replaced during deletion.
type indexNode struct {
	entry IndexEntry
	axis  uint8
	left  int32
	right int32
}

const (
	axisX uint8 = 0
	axisY uint8 = 1

	noNode int32 = -1
)

// NewSpatialIndex returns an empty index.
func NewSpatialIndex() *SpatialIndex {
	return &SpatialIndex{root: noNode}
}

// Len returns the number of entries in the index.
func (t *SpatialIndex) Len() int {
	return t.count
}

// Clear drops every entry and recycles the arena.
func (t *SpatialIndex) Clear() {
	t.nodes = t.nodes[:0]
	t.free = t.free[:0]
	t.root = noNode
	t.count = 0
}

// axisCoord returns the rectangle's coordinate on the given split axis.
func axisCoord(r Rect, axis uint8) float32 {
	if axis == axisX {
		return r.X
	}
	return r.Y
}

// Insert adds an entry, descending by coordinate comparison on each level's
// axis: strictly lesser goes left, ties go right. Always succeeds; duplicate
// identifiers are the caller's concern.
func (t *SpatialIndex) Insert(e IndexEntry) {
	t.root = t.insertAt(t.root, e, 0)
	t.count++
}

func (t *SpatialIndex) insertAt(at int32, e IndexEntry, depth int) int32 {
	if at == noNode {
		return t.alloc(e, uint8(depth%2))
	}
	ax := t.nodes[at].axis
	if axisCoord(e.Rect, ax) < axisCoord(t.nodes[at].entry.Rect, ax) {
		// Re-index after the recursive call: alloc may grow the arena.
		left := t.insertAt(t.nodes[at].left, e, depth+1)
		t.nodes[at].left = left
	} else {
		right := t.insertAt(t.nodes[at].right, e, depth+1)
		t.nodes[at].right = right
	}
	return at
}

// QueryRange returns every entry whose rectangle intersects q (half-open
// edges: touching rectangles do not count). No ordering guarantee.
func (t *SpatialIndex) QueryRange(q Rect) []IndexEntry {
	var out []IndexEntry
	t.queryRangeAt(t.root, q, &out)
	return out
}

func (t *SpatialIndex) queryRangeAt(at int32, q Rect, out *[]IndexEntry) {
	if at == noNode {
		return
	}
	n := t.nodes[at]
	if q.Intersects(n.entry.Rect) {
		*out = append(*out, n.entry)
	}

	// A subtree can only be pruned when the query's bound on this node's
	// axis provably excludes it.
	var qmin, qmax float32
	if n.axis == axisX {
		qmin, qmax = q.X, q.X+q.W
	} else {
		qmin, qmax = q.Y, q.Y+q.H
	}
	c := axisCoord(n.entry.Rect, n.axis)
	if qmin <= c {
		t.queryRangeAt(n.left, q, out)
	}
	if qmax >= c {
		t.queryRangeAt(n.right, q, out)
	}
}

// QueryPoint returns every entry whose rectangle contains the point, both
// edges inclusive. It delegates to QueryRange with a degenerate unit
// rectangle anchored at the point, then filters by inclusive containment.
func (t *SpatialIndex) QueryPoint(x, y float32) []IndexEntry {
	hits := t.QueryRange(Rect{X: x, Y: y, W: 1, H: 1})
	out := hits[:0]
	for _, e := range hits {
		if e.Rect.Contains(Vec2{X: x, Y: y}) {
			out = append(out, e)
		}
	}
	return out
}

// Remove deletes the entry whose ID matches, descending by coordinate
// comparison (ties go right, mirroring Insert) until the identifier matches.
// A matched node with a single child is replaced by that child; a node with
// two children is replaced by the entry holding the minimum coordinate on
// this node's own axis within its right subtree, and that minimum node is in
// turn removed from the right subtree. Removing an absent identifier is a
// logged no-op.
func (t *SpatialIndex) Remove(e IndexEntry) {
	root, removed := t.removeAt(t.root, e)
	t.root = root
	if !removed {
		indexLogger.Warn("spatial index: remove of untracked id", "id", e.ID)
		return
	}
	t.count--
}

func (t *SpatialIndex) removeAt(at int32, e IndexEntry) (int32, bool) {
	if at == noNode {
		return noNode, false
	}
	n := t.nodes[at]

	if n.entry.ID != e.ID {
		ax := n.axis
		if axisCoord(e.Rect, ax) < axisCoord(n.entry.Rect, ax) {
			left, removed := t.removeAt(n.left, e)
			t.nodes[at].left = left
			return at, removed
		}
		right, removed := t.removeAt(n.right, e)
		t.nodes[at].right = right
		return at, removed
	}

	switch {
	case n.left == noNode && n.right == noNode:
		t.release(at)
		return noNode, true
	case n.right == noNode:
		t.release(at)
		return n.left, true
	case n.left == noNode:
		t.release(at)
		return n.right, true
	default:
		// Replace with the minimum entry (on this node's axis) from the
		// right subtree, then remove that entry from the right subtree.
		// The slot keeps its original split axis.
		minEntry := t.nodes[t.findMin(n.right, n.axis)].entry
		right, _ := t.removeAt(n.right, minEntry)
		t.nodes[at].entry = minEntry
		t.nodes[at].right = right
		return at, true
	}
}

// findMin returns the arena index of the node holding the minimum coordinate
// on the given axis within the subtree rooted at `at`. When a node splits on
// the axis being minimized only its left branch can improve the minimum;
// otherwise both children must be compared.
func (t *SpatialIndex) findMin(at int32, axis uint8) int32 {
	n := t.nodes[at]
	if n.axis == axis {
		if n.left == noNode {
			return at
		}
		return t.findMin(n.left, axis)
	}

	best := at
	bestCoord := axisCoord(n.entry.Rect, axis)
	if n.left != noNode {
		if l := t.findMin(n.left, axis); axisCoord(t.nodes[l].entry.Rect, axis) < bestCoord {
			best, bestCoord = l, axisCoord(t.nodes[l].entry.Rect, axis)
		}
	}
	if n.right != noNode {
		if r := t.findMin(n.right, axis); axisCoord(t.nodes[r].entry.Rect, axis) < bestCoord {
			best, bestCoord = r, axisCoord(t.nodes[r].entry.Rect, axis)
		}
	}
	return best
}

// alloc places an entry in a recycled slot when one is available, otherwise
// grows the arena.
func (t *SpatialIndex) alloc(e IndexEntry, axis uint8) int32 {
	node := indexNode{entry: e, axis: axis, left: noNode, right: noNode}
	if n := len(t.free); n > 0 {
		at := t.free[n-1]
		t.free = t.free[:n-1]
		t.nodes[at] = node
		return at
	}
	t.nodes = append(t.nodes, node)
	return int32(len(t.nodes) - 1)
}

// release returns a slot to the free list.
func (t *SpatialIndex) release(at int32) {
	t.nodes[at] = indexNode{left: noNode, right: noNode}
	t.free = append(t.free, at)
}
