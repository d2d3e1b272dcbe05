package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is the render camera. Its view is set from outside with
// SetViewMatrixAsLookAt; it owns only the projection.
type Camera struct {
	// Position and orientation
	position mgl32.Vec3
	front    mgl32.Vec3
	up       mgl32.Vec3
	right    mgl32.Vec3
	view     mgl32.Mat4

	// Projection
	fov        float32
	near, far  float32
	projection mgl32.Mat4
	width      int
	height     int
}

// NewCamera creates a camera at the origin looking along +Y with Z up
func NewCamera() *Camera {
	c := &Camera{
		fov:    DefaultFOV,
		near:   DefaultNear,
		far:    DefaultFar,
		width:  800, // Default size
		height: 600,
	}
	c.SetViewMatrixAsLookAt(mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1})
	c.updateProjectionMatrix()
	return c
}

// SetViewMatrixAsLookAt sets the view from an eye point, a point to look at and
// an up vector
func (c *Camera) SetViewMatrixAsLookAt(eye, center, up mgl32.Vec3) {
	c.position = eye
	c.view = mgl32.LookAtV(eye, center, up)

	c.front = center.Sub(eye).Normalize()
	c.right = c.front.Cross(up).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}

// updateProjectionMatrix recalculates the projection matrix
func (c *Camera) updateProjectionMatrix() {
	aspect := float32(c.width) / float32(c.height)
	c.projection = mgl32.Perspective(mgl32.DegToRad(c.fov), aspect, c.near, c.far)
}

// UpdateProjectionMatrix updates the projection matrix with new dimensions
func (c *Camera) UpdateProjectionMatrix(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.width = width
	c.height = height
	c.updateProjectionMatrix()
}

// SetFOV sets the vertical field of view in degrees
func (c *Camera) SetFOV(fov float32) {
	c.fov = mgl32.Clamp(fov, MinFOV, MaxFOV)
	c.updateProjectionMatrix()
}

// FOV returns the vertical field of view in degrees
func (c *Camera) FOV() float32 {
	return c.fov
}

// SetClipPlanes sets the near and far clip distances
func (c *Camera) SetClipPlanes(near, far float32) {
	c.near = near
	c.far = far
	c.updateProjectionMatrix()
}

// ViewMatrix returns the current view matrix
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return c.view
}

// ProjectionMatrix returns the current projection matrix
func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	return c.projection
}

// Position returns the eye position
func (c *Camera) Position() mgl32.Vec3 {
	return c.position
}

// FrontVector returns the camera's front direction vector
func (c *Camera) FrontVector() mgl32.Vec3 {
	return c.front
}

// RightVector returns the camera's right direction vector
func (c *Camera) RightVector() mgl32.Vec3 {
	return c.right
}

// UpVector returns the camera's up direction vector
func (c *Camera) UpVector() mgl32.Vec3 {
	return c.up
}
