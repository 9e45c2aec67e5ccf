// Example demonstrates virtual scrolling over a content extent far beyond
// what a host scrollbar can address: 500,000 rows (12 million virtual units)
// behind a window-sized viewport.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/         # run this example
//
// Scroll with the mouse wheel; Home/End jump to the first/last row. Only the
// handful of rows intersecting the viewport are ever attached.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-vscroll/vscroll"
	"github.com/go-vscroll/vscroll/backend/glfwhost"
)

const (
	windowWidth  = 800
	windowHeight = 600
	windowTitle  = "vscroll example"

	rowCount  = 500_000
	rowHeight = 24
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// Initialize GLFW.
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1) // vsync

	// Initialize OpenGL.
	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	// Create the host container and install the virtual-scroll manager.
	host, err := glfwhost.NewContainer(window)
	if err != nil {
		return fmt.Errorf("host container: %w", err)
	}
	defer host.Delete()

	mgr, err := vscroll.New(host)
	if err != nil {
		return fmt.Errorf("vscroll manager: %w", err)
	}
	defer mgr.Destroy()

	// Route every row through the manager's intercepted surface. Rows are
	// never all attached: each is measured off-surface at add time and only
	// viewport-intersecting rows get quads.
	for i := 0; i < rowCount; i++ {
		key := fmt.Sprintf("row-%d", i)
		mgr.AppendChild(glfwhost.NewNode(key, rowWidth(i), rowHeight, rowColor(i)))
	}

	window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action != glfw.Press && action != glfw.Repeat {
			return
		}
		switch key {
		case glfw.KeyHome:
			mgr.ScrollToItem("row-0")
		case glfw.KeyEnd:
			mgr.ScrollToItem(fmt.Sprintf("row-%d", rowCount-1))
		case glfw.KeyEscape:
			window.SetShouldClose(true)
		}
	})

	// Main loop.
	for !window.ShouldClose() {
		glfw.PollEvents()

		w, h := window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(w), int32(h))
		gl.ClearColor(0.12, 0.12, 0.14, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		// Run queued visibility refreshes and draw the attached rows.
		host.Frame()

		window.SwapBuffers()
	}

	return nil
}

// rowWidth varies row widths so the horizontal structure of the stack is
// visible.
func rowWidth(i int) float32 {
	return 300 + float32(i%7)*40
}

// rowColor alternates row shading, with a brighter band every 50 rows.
func rowColor(i int) uint32 {
	if i%50 == 0 {
		return glfwhost.RGBA(230, 170, 60, 255)
	}
	if i%2 == 0 {
		return glfwhost.RGBA(70, 75, 90, 255)
	}
	return glfwhost.RGBA(55, 60, 72, 255)
}
