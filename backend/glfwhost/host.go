package glfwhost

import (
	"strconv"
	"strings"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-vscroll/vscroll"
)

// Node is a fixed-size colored block managed by a Container. It implements
// vscroll.Node: the intrinsic size doubles as the measured size, since quads
// do not reflow.
type Node struct {
	key    string
	size   vscroll.Vec2
	color  uint32
	styles map[string]string
}

// NewNode creates a node with an intrinsic size and fill color.
func NewNode(key string, w, h float32, color uint32) *Node {
	return &Node{
		key:    key,
		size:   vscroll.Vec2{X: w, Y: h},
		color:  color,
		styles: make(map[string]string),
	}
}

// Key returns the host-assigned identifier.
func (n *Node) Key() string { return n.key }

// Style returns an inline style property.
func (n *Node) Style(prop string) string { return n.styles[prop] }

// SetStyle sets an inline style property; an empty value clears it.
func (n *Node) SetStyle(prop, value string) {
	if value == "" {
		delete(n.styles, prop)
		return
	}
	n.styles[prop] = value
}

// MeasuredSize reports the node's size.
func (n *Node) MeasuredSize() vscroll.Vec2 { return n.size }

// Container adapts a GLFW window to the vscroll host interfaces. The mouse
// wheel drives the scroll offset; the render loop provides the frame
// callback; attached nodes are drawn as quads positioned by their left/top
// styles relative to the scroll surface.
//
// Call Frame once per render-loop iteration with the GL context current.
type Container struct {
	window   *glfw.Window
	renderer *Renderer

	children []*Node
	scroll   vscroll.Vec2
	content  vscroll.Vec2
	styles   map[string]string

	scrollFns []func()
	frames    []func()

	// WheelStep is how many surface units one wheel tick scrolls.
	WheelStep float32
}

// NewContainer wraps a GLFW window. The window's scroll callback is taken
// over; the GL context must be current.
func NewContainer(window *glfw.Window) (*Container, error) {
	w, h := window.GetFramebufferSize()
	renderer, err := NewRenderer(w, h)
	if err != nil {
		return nil, err
	}

	c := &Container{
		window:    window,
		renderer:  renderer,
		styles:    make(map[string]string),
		WheelStep: 40,
	}
	window.SetScrollCallback(c.scrollCallback)
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		c.renderer.Resize(width, height)
	})
	return c, nil
}

func (c *Container) scrollCallback(_ *glfw.Window, xoff, yoff float64) {
	// Wheel-up means scroll towards the top.
	c.SetScrollPos(vscroll.Vec2{
		X: c.scroll.X - float32(xoff)*c.WheelStep,
		Y: c.scroll.Y - float32(yoff)*c.WheelStep,
	})
}

// AppendChild attaches a node as the last child.
func (c *Container) AppendChild(n vscroll.Node) {
	if hn, ok := n.(*Node); ok {
		c.children = append(c.children, hn)
	}
}

// AppendBatch attaches several nodes at once. Quads have no relayout cost,
// but the manager prefers this path when available.
func (c *Container) AppendBatch(ns []vscroll.Node) {
	for _, n := range ns {
		c.AppendChild(n)
	}
}

// InsertBefore attaches a node before ref, or at the end when ref is nil or
// unknown.
func (c *Container) InsertBefore(n, ref vscroll.Node) {
	hn, ok := n.(*Node)
	if !ok {
		return
	}
	for i, child := range c.children {
		if vscroll.Node(child) == ref {
			c.children = append(c.children[:i], append([]*Node{hn}, c.children[i:]...)...)
			return
		}
	}
	c.children = append(c.children, hn)
}

// RemoveChild detaches a node; unknown nodes are ignored.
func (c *Container) RemoveChild(n vscroll.Node) {
	for i, child := range c.children {
		if vscroll.Node(child) == n {
			c.children = append(c.children[:i], c.children[i+1:]...)
			return
		}
	}
}

// ScrollPos returns the current scroll offsets.
func (c *Container) ScrollPos() vscroll.Vec2 { return c.scroll }

// SetScrollPos scrolls the container, clamped to the surface range, and
// fires scroll subscribers when the offset changes.
func (c *Container) SetScrollPos(p vscroll.Vec2) {
	client := c.ClientSize()
	clamped := vscroll.Vec2{
		X: clampScroll(p.X, c.content.X-client.X),
		Y: clampScroll(p.Y, c.content.Y-client.Y),
	}
	if clamped == c.scroll {
		return
	}
	c.scroll = clamped
	for _, fn := range c.scrollFns {
		if fn != nil {
			fn()
		}
	}
}

func clampScroll(v, maxScroll float32) float32 {
	if maxScroll < 0 {
		maxScroll = 0
	}
	if v < 0 {
		return 0
	}
	if v > maxScroll {
		return maxScroll
	}
	return v
}

// ClientSize returns the framebuffer dimensions.
func (c *Container) ClientSize() vscroll.Vec2 {
	w, h := c.window.GetFramebufferSize()
	return vscroll.Vec2{X: float32(w), Y: float32(h)}
}

// SetContentSize sets the scroll surface extent.
func (c *Container) SetContentSize(s vscroll.Vec2) {
	c.content = s
	// Shrinking content can strand the offset past the new range.
	c.SetScrollPos(c.scroll)
}

// Style returns a container style property.
func (c *Container) Style(prop string) string { return c.styles[prop] }

// SetStyle sets a container style property; an empty value clears it.
func (c *Container) SetStyle(prop, value string) {
	if value == "" {
		delete(c.styles, prop)
		return
	}
	c.styles[prop] = value
}

// OnScroll subscribes to scroll events.
func (c *Container) OnScroll(fn func()) (cancel func()) {
	c.scrollFns = append(c.scrollFns, fn)
	i := len(c.scrollFns) - 1
	return func() { c.scrollFns[i] = nil }
}

// RequestFrame schedules fn for the next Frame call. Callbacks scheduled
// from inside a frame run on the following one.
func (c *Container) RequestFrame(fn func()) {
	c.frames = append(c.frames, fn)
}

// Frame runs pending frame callbacks, then draws the attached children.
// Call once per render-loop iteration.
func (c *Container) Frame() {
	pending := c.frames
	c.frames = nil
	for _, fn := range pending {
		fn()
	}
	c.render()
}

// Delete releases the renderer's GPU resources.
func (c *Container) Delete() {
	c.renderer.Delete()
}

func (c *Container) render() {
	quads := make([]Quad, 0, len(c.children))
	for _, n := range c.children {
		if n.Style(vscroll.StyleVisibility) == "hidden" || n.Style(vscroll.StyleDisplay) == "none" {
			continue
		}
		// left/top position the node on the surface; the viewport sees the
		// surface shifted by the scroll offset.
		x := parsePx(n.Style(vscroll.StyleLeft)) - c.scroll.X
		y := parsePx(n.Style(vscroll.StyleTop)) - c.scroll.Y
		quads = append(quads, Quad{
			Rect:  vscroll.Rect{X: x, Y: y, W: n.size.X, H: n.size.Y},
			Color: n.color,
		})
	}
	c.renderer.Draw(quads)
}

// parsePx parses a "px"-suffixed length; anything unparseable reads as 0.
func parsePx(s string) float32 {
	s = strings.TrimSuffix(s, "px")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0
	}
	return float32(v)
}
