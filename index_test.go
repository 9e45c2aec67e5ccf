package vscroll_test

import (
	"sort"
	"testing"

	"github.com/go-vscroll/vscroll"
)

// everything is a query rectangle that covers any coordinate used in these
// tests.
var everything = vscroll.Rect{X: -1e9, Y: -1e9, W: 2e9, H: 2e9}

func ids(entries []vscroll.IndexEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	sort.Strings(out)
	return out
}

func equalIDs(t *testing.T, got []vscroll.IndexEntry, want ...string) {
	t.Helper()
	sort.Strings(want)
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("got ids %v, want %v", gotIDs, want)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("got ids %v, want %v", gotIDs, want)
		}
	}
}

func TestSpatialIndexInsertAndQueryRange(t *testing.T) {
	idx := vscroll.NewSpatialIndex()
	idx.Insert(vscroll.IndexEntry{ID: "a", Rect: vscroll.Rect{X: 0, Y: 0, W: 100, H: 50}})
	idx.Insert(vscroll.IndexEntry{ID: "b", Rect: vscroll.Rect{X: 0, Y: 50, W: 100, H: 50}})
	idx.Insert(vscroll.IndexEntry{ID: "c", Rect: vscroll.Rect{X: 200, Y: 0, W: 100, H: 50}})

	equalIDs(t, idx.QueryRange(vscroll.Rect{X: 0, Y: 0, W: 150, H: 40}), "a")
	equalIDs(t, idx.QueryRange(vscroll.Rect{X: 0, Y: 0, W: 150, H: 60}), "a", "b")
	equalIDs(t, idx.QueryRange(everything), "a", "b", "c")

	// Touching edges are half-open: a query starting exactly at an item's
	// max edge does not intersect it.
	equalIDs(t, idx.QueryRange(vscroll.Rect{X: 100, Y: 0, W: 50, H: 50}))
	equalIDs(t, idx.QueryRange(vscroll.Rect{X: 150, Y: 0, W: 60, H: 50}), "c")
}

func TestSpatialIndexQueryPoint(t *testing.T) {
	idx := vscroll.NewSpatialIndex()
	idx.Insert(vscroll.IndexEntry{ID: "a", Rect: vscroll.Rect{X: 10, Y: 20, W: 30, H: 40}})

	// Min edges are inclusive.
	equalIDs(t, idx.QueryPoint(10, 20), "a")
	// Interior.
	equalIDs(t, idx.QueryPoint(25, 40), "a")
	// Outside.
	equalIDs(t, idx.QueryPoint(9, 20))
	equalIDs(t, idx.QueryPoint(25, 61))
	equalIDs(t, idx.QueryPoint(41, 40))
}

func TestSpatialIndexCompleteness(t *testing.T) {
	// Interleave inserts and removes and verify a catch-all query always
	// returns exactly the live set.
	idx := vscroll.NewSpatialIndex()
	rects := map[string]vscroll.Rect{
		"a": {X: 0, Y: 0, W: 50, H: 50},
		"b": {X: 0, Y: 50, W: 50, H: 50},
		"c": {X: 60, Y: 0, W: 50, H: 50},
		"d": {X: 60, Y: 50, W: 50, H: 50},
		"e": {X: 30, Y: 30, W: 50, H: 50},
		"f": {X: 0, Y: 100, W: 50, H: 50},
	}
	for _, id := range []string{"a", "b", "c", "d", "e", "f"} {
		idx.Insert(vscroll.IndexEntry{ID: id, Rect: rects[id]})
	}
	equalIDs(t, idx.QueryRange(everything), "a", "b", "c", "d", "e", "f")

	idx.Remove(vscroll.IndexEntry{ID: "c", Rect: rects["c"]})
	equalIDs(t, idx.QueryRange(everything), "a", "b", "d", "e", "f")

	// Removing the root exercises the replace-with-minimum path.
	idx.Remove(vscroll.IndexEntry{ID: "a", Rect: rects["a"]})
	equalIDs(t, idx.QueryRange(everything), "b", "d", "e", "f")

	idx.Insert(vscroll.IndexEntry{ID: "g", Rect: vscroll.Rect{X: 5, Y: 5, W: 10, H: 10}})
	equalIDs(t, idx.QueryRange(everything), "b", "d", "e", "f", "g")

	idx.Remove(vscroll.IndexEntry{ID: "b", Rect: rects["b"]})
	idx.Remove(vscroll.IndexEntry{ID: "d", Rect: rects["d"]})
	idx.Remove(vscroll.IndexEntry{ID: "e", Rect: rects["e"]})
	equalIDs(t, idx.QueryRange(everything), "f", "g")

	if idx.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", idx.Len())
	}
}

func TestSpatialIndexRemoveAbsentIsNoOp(t *testing.T) {
	idx := vscroll.NewSpatialIndex()
	idx.Insert(vscroll.IndexEntry{ID: "a", Rect: vscroll.Rect{X: 0, Y: 0, W: 10, H: 10}})

	idx.Remove(vscroll.IndexEntry{ID: "ghost", Rect: vscroll.Rect{X: 0, Y: 0, W: 10, H: 10}})

	if idx.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", idx.Len())
	}
	equalIDs(t, idx.QueryRange(everything), "a")
}

func TestSpatialIndexRemoveReinsert(t *testing.T) {
	// Removing an entry and reinserting the same id/rect is
	// query-equivalent to never having removed it.
	idx := vscroll.NewSpatialIndex()
	r := vscroll.Rect{X: 0, Y: 100, W: 80, H: 20}
	idx.Insert(vscroll.IndexEntry{ID: "a", Rect: vscroll.Rect{X: 0, Y: 0, W: 80, H: 100}})
	idx.Insert(vscroll.IndexEntry{ID: "b", Rect: r})
	idx.Insert(vscroll.IndexEntry{ID: "c", Rect: vscroll.Rect{X: 0, Y: 120, W: 80, H: 100}})

	idx.Remove(vscroll.IndexEntry{ID: "b", Rect: r})
	idx.Insert(vscroll.IndexEntry{ID: "b", Rect: r})

	equalIDs(t, idx.QueryRange(everything), "a", "b", "c")
	equalIDs(t, idx.QueryRange(vscroll.Rect{X: 0, Y: 100, W: 80, H: 10}), "b")
	equalIDs(t, idx.QueryPoint(40, 110), "b")
	if idx.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", idx.Len())
	}
}

func TestSpatialIndexSingleColumnStack(t *testing.T) {
	// The vertical-stack layout assigns x=0 to everything, which degrades
	// even-depth levels into a chain. Queries must stay correct regardless.
	idx := vscroll.NewSpatialIndex()
	want := make([]string, 0, 64)
	for i := 0; i < 64; i++ {
		id := "row" + string(rune('A'+i%26)) + string(rune('0'+i/26))
		want = append(want, id)
		idx.Insert(vscroll.IndexEntry{
			ID:   id,
			Rect: vscroll.Rect{X: 0, Y: float32(i) * 20, W: 300, H: 20},
		})
	}
	equalIDs(t, idx.QueryRange(everything), want...)

	// A one-row-tall viewport hits exactly one item.
	equalIDs(t, idx.QueryRange(vscroll.Rect{X: 0, Y: 205, W: 300, H: 10}), "rowK0")

	// Remove from the middle of the chain and re-query.
	idx.Remove(vscroll.IndexEntry{ID: "rowK0", Rect: vscroll.Rect{X: 0, Y: 200, W: 300, H: 20}})
	equalIDs(t, idx.QueryRange(vscroll.Rect{X: 0, Y: 195, W: 300, H: 30}), "rowJ0", "rowL0")
}

func TestSpatialIndexClear(t *testing.T) {
	idx := vscroll.NewSpatialIndex()
	for i := 0; i < 10; i++ {
		idx.Insert(vscroll.IndexEntry{ID: string(rune('a' + i)), Rect: vscroll.Rect{Y: float32(i * 10), W: 10, H: 10}})
	}
	idx.Clear()
	if idx.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", idx.Len())
	}
	if got := idx.QueryRange(everything); len(got) != 0 {
		t.Fatalf("query after Clear returned %d entries", len(got))
	}
}
