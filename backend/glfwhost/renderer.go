// Package glfwhost provides a GLFW + OpenGL 4.1 host environment for the
// vscroll package: a window-backed scroll container whose attached nodes are
// drawn as solid quads.
package glfwhost

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/go-vscroll/vscroll"
)

// Quad is one solid rectangle in window coordinates.
type Quad struct {
	Rect  vscroll.Rect
	Color uint32
}

// quadVertex is the GPU vertex layout: position plus packed RGBA color.
type quadVertex struct {
	Pos   [2]float32
	Color uint32
}

// RGBA packs a color from individual components (0-255) in the byte order
// the vertex attribute expects.
func RGBA(r, g, b, a uint8) uint32 {
	return uint32(a)<<24 | uint32(b)<<16 | uint32(g)<<8 | uint32(r)
}

// Renderer draws quads with OpenGL. It owns one untextured shader and a
// streaming vertex buffer refilled every frame.
type Renderer struct {
	shader   uint32
	vao, vbo uint32
	projLoc  int32
	width    int
	height   int
	verts    []quadVertex
}

const quadVertexShader = `
#version 410 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec4 aColor;

out vec4 Color;

uniform mat4 projection;

void main() {
    gl_Position = projection * vec4(aPos, 0.0, 1.0);
    Color = aColor;
}
` + "\x00"

const quadFragmentShader = `
#version 410 core
in vec4 Color;

out vec4 FragColor;

void main() {
    FragColor = Color;
}
` + "\x00"

// NewRenderer creates a quad renderer for the given viewport size.
func NewRenderer(width, height int) (*Renderer, error) {
	r := &Renderer{width: width, height: height}

	var err error
	r.shader, err = createShaderProgram(quadVertexShader, quadFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader: %w", err)
	}
	r.projLoc = gl.GetUniformLocation(r.shader, gl.Str("projection\x00"))

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	stride := int32(unsafe.Sizeof(quadVertex{}))
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 4, gl.UNSIGNED_BYTE, true, stride, unsafe.Offsetof(quadVertex{}.Color))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	return r, nil
}

// Resize updates the viewport size used for the projection.
func (r *Renderer) Resize(width, height int) {
	r.width = width
	r.height = height
}

// Draw renders the quads for this frame.
func (r *Renderer) Draw(quads []Quad) {
	if len(quads) == 0 {
		return
	}

	r.verts = r.verts[:0]
	for _, q := range quads {
		x0, y0 := q.Rect.X, q.Rect.Y
		x1, y1 := q.Rect.X+q.Rect.W, q.Rect.Y+q.Rect.H
		r.verts = append(r.verts,
			quadVertex{Pos: [2]float32{x0, y0}, Color: q.Color},
			quadVertex{Pos: [2]float32{x1, y0}, Color: q.Color},
			quadVertex{Pos: [2]float32{x1, y1}, Color: q.Color},
			quadVertex{Pos: [2]float32{x0, y0}, Color: q.Color},
			quadVertex{Pos: [2]float32{x1, y1}, Color: q.Color},
			quadVertex{Pos: [2]float32{x0, y1}, Color: q.Color},
		)
	}

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)

	gl.UseProgram(r.shader)
	proj := orthoMatrix(0, float32(r.width), float32(r.height), 0, -1, 1)
	gl.UniformMatrix4fv(r.projLoc, 1, false, &proj[0])

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(r.verts)*int(unsafe.Sizeof(quadVertex{})),
		gl.Ptr(r.verts), gl.STREAM_DRAW)

	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(r.verts)))
	gl.BindVertexArray(0)
}

// Delete releases OpenGL resources.
func (r *Renderer) Delete() {
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.shader != 0 {
		gl.DeleteProgram(r.shader)
	}
}

// createShaderProgram compiles and links a shader program.
func createShaderProgram(vertexSource, fragmentSource string) (uint32, error) {
	vertexShader := gl.CreateShader(gl.VERTEX_SHADER)
	csource, free := gl.Strs(vertexSource)
	gl.ShaderSource(vertexShader, 1, csource, nil)
	free()
	gl.CompileShader(vertexShader)

	var status int32
	gl.GetShaderiv(vertexShader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		return 0, fmt.Errorf("vertex shader compilation failed: %s", shaderLog(vertexShader))
	}

	fragmentShader := gl.CreateShader(gl.FRAGMENT_SHADER)
	csource, free = gl.Strs(fragmentSource)
	gl.ShaderSource(fragmentShader, 1, csource, nil)
	free()
	gl.CompileShader(fragmentShader)

	gl.GetShaderiv(fragmentShader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		return 0, fmt.Errorf("fragment shader compilation failed: %s", shaderLog(fragmentShader))
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetProgramInfoLog(program, logLength, nil, &log[0])
		return 0, fmt.Errorf("shader program linking failed: %s", string(log))
	}

	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	return program, nil
}

// shaderLog fetches a shader's compile log.
func shaderLog(shader uint32) string {
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	log := make([]byte, logLength+1)
	gl.GetShaderInfoLog(shader, logLength, nil, &log[0])
	return string(log)
}

// orthoMatrix creates an orthographic projection matrix.
func orthoMatrix(left, right, bottom, top, near, far float32) [16]float32 {
	return [16]float32{
		2 / (right - left), 0, 0, 0,
		0, 2 / (top - bottom), 0, 0,
		0, 0, -2 / (far - near), 0,
		-(right + left) / (right - left), -(top + bottom) / (top - bottom), -(far + near) / (far - near), 1,
	}
}
