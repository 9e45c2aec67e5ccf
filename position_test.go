package vscroll

import "testing"

type stubNode struct {
	styles map[string]string
}

func (n *stubNode) Key() string                 { return "" }
func (n *stubNode) Style(prop string) string    { return n.styles[prop] }
func (n *stubNode) SetStyle(prop, value string) { n.styles[prop] = value }
func (n *stubNode) MeasuredSize() Vec2          { return Vec2{} }

// The on-surface position is (rect - virtualScroll) + hostScroll on each
// axis, independent of whether the surface is identity- or
// percentage-mapped.
func TestRenderedPositionOffsets(t *testing.T) {
	tests := []struct {
		name       string
		virtual    Vec2
		hostScroll Vec2
		rect       Rect
		wantLeft   string
		wantTop    string
	}{
		{
			name:       "host at origin",
			virtual:    Vec2{X: 30, Y: 200},
			hostScroll: Vec2{},
			rect:       Rect{X: 40, Y: 250, W: 10, H: 10},
			wantLeft:   "10px",
			wantTop:    "50px",
		},
		{
			name:       "host scrolled",
			virtual:    Vec2{X: 50, Y: 100},
			hostScroll: Vec2{X: 10, Y: 20},
			rect:       Rect{X: 150, Y: 250, W: 10, H: 10},
			wantLeft:   "110px",
			wantTop:    "170px",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Manager{virtualScroll: tt.virtual}
			n := &stubNode{styles: make(map[string]string)}
			m.positionNode(&trackedItem{node: n, rect: tt.rect}, tt.hostScroll)

			if got := n.styles[StyleLeft]; got != tt.wantLeft {
				t.Fatalf("left = %q, want %q", got, tt.wantLeft)
			}
			if got := n.styles[StyleTop]; got != tt.wantTop {
				t.Fatalf("top = %q, want %q", got, tt.wantTop)
			}
			if got := n.styles[StylePosition]; got != "absolute" {
				t.Fatalf("position = %q, want absolute", got)
			}
		})
	}
}

func TestPxFormatting(t *testing.T) {
	if got := px(50); got != "50px" {
		t.Fatalf("px(50) = %q", got)
	}
	if got := px(10.5); got != "10.5px" {
		t.Fatalf("px(10.5) = %q", got)
	}
	if got := px(-120); got != "-120px" {
		t.Fatalf("px(-120) = %q", got)
	}
}

func TestOrderedStore(t *testing.T) {
	s := newOrderedStore[int]()
	s.Set("a", 1)
	s.Set("b", 2)
	s.Set("c", 3)
	s.Set("b", 20) // update keeps position

	var order []string
	s.Each(func(id string, v int) { order = append(order, id) })
	if len(order) != 3 || order[0] != "a" || order[1] != "b" || order[2] != "c" {
		t.Fatalf("iteration order = %v", order)
	}
	if v, _ := s.Get("b"); v != 20 {
		t.Fatalf("updated value = %d, want 20", v)
	}

	s.Delete("b")
	s.Delete("missing") // no-op
	order = order[:0]
	s.Each(func(id string, v int) { order = append(order, id) })
	if len(order) != 2 || order[0] != "a" || order[1] != "c" {
		t.Fatalf("order after delete = %v", order)
	}

	s.Clear()
	if s.Len() != 0 {
		t.Fatalf("Len after Clear = %d", s.Len())
	}
}
