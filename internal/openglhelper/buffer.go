package openglhelper

import (
	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Vertex layout: x, y, z, r, g, b
const floatsPerVertex = 6

const lineVertexShader = `#version 460 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aColor;
uniform mat4 viewProjection;
out vec3 color;
void main() {
	color = aColor;
	gl_Position = viewProjection * vec4(aPos, 1.0);
}`

const lineFragmentShader = `#version 460 core
in vec3 color;
out vec4 FragColor;
void main() {
	FragColor = vec4(color, 1.0);
}`

// LineBatch collects colored line segments and draws them in one call.
// The vertex buffer grows as needed and is refilled every frame.
type LineBatch struct {
	shader   *Shader
	vao      uint32
	vbo      uint32
	capacity int // in floats
	vertices []float32
}

// NewLineBatch creates the line shader and its buffers
func NewLineBatch() (*LineBatch, error) {
	shader, err := NewShader(lineVertexShader, lineFragmentShader)
	if err != nil {
		return nil, err
	}

	b := &LineBatch{shader: shader}
	gl.GenVertexArrays(1, &b.vao)
	gl.GenBuffers(1, &b.vbo)

	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	stride := int32(floatsPerVertex * 4)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)
	gl.BindVertexArray(0)

	return b, nil
}

// Add queues a segment from a to b
func (b *LineBatch) Add(a, c mgl32.Vec3, color mgl32.Vec3) {
	b.vertices = append(b.vertices,
		a[0], a[1], a[2], color[0], color[1], color[2],
		c[0], c[1], c[2], color[0], color[1], color[2],
	)
}

// Len returns the number of queued segments
func (b *LineBatch) Len() int {
	return len(b.vertices) / (2 * floatsPerVertex)
}

// Draw uploads and draws the queued segments, then empties the batch
func (b *LineBatch) Draw(viewProjection mgl32.Mat4) {
	if len(b.vertices) == 0 {
		return
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	if len(b.vertices) > b.capacity {
		b.capacity = 2 * len(b.vertices)
		gl.BufferData(gl.ARRAY_BUFFER, b.capacity*4, nil, gl.DYNAMIC_DRAW)
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(b.vertices)*4, gl.Ptr(b.vertices))

	b.shader.Use()
	b.shader.SetMat4("viewProjection", viewProjection)
	gl.BindVertexArray(b.vao)
	gl.DrawArrays(gl.LINES, 0, int32(len(b.vertices)/floatsPerVertex))
	gl.BindVertexArray(0)

	b.vertices = b.vertices[:0]
}

// Delete releases the GPU resources
func (b *LineBatch) Delete() {
	gl.DeleteBuffers(1, &b.vbo)
	gl.DeleteVertexArrays(1, &b.vao)
	b.shader.Delete()
}
