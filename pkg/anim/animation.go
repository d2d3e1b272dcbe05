// Package anim drives the tracked actor's skeleton state that the camera cares
// about: upper-body actions, the first person view and attachment nodes.
package anim

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/go-viewcam/pkg/camera"
	"github.com/leterax/go-viewcam/pkg/scene"
)

// Animation implements camera.Animation over a skeleton node tree
type Animation struct {
	skeleton *scene.Node

	viewMode camera.AnimViewMode

	// Upper body state
	upperBodyHeld      bool
	upperBodyRemaining float32

	// First person camera node and its rest position
	cameraNode        *scene.Node
	cameraRest        mgl32.Vec3
	firstPersonOffset mgl32.Vec3
}

// New creates an animation for skeleton. skeleton may be nil.
func New(skeleton *scene.Node) *Animation {
	a := &Animation{skeleton: skeleton}
	if skeleton != nil {
		a.cameraNode = skeleton.Find(camera.CameraNodeName)
		if a.cameraNode != nil {
			a.cameraRest = a.cameraNode.Position()
		}
	}
	return a
}

// UpperBodyReady reports whether no upper-body action is playing
func (a *Animation) UpperBodyReady() bool {
	return !a.upperBodyHeld && a.upperBodyRemaining <= 0
}

// SetUpperBodyBusy holds or releases the upper body until changed again
func (a *Animation) SetUpperBodyBusy(busy bool) {
	a.upperBodyHeld = busy
}

// PlayUpperBody starts a timed upper-body action lasting d seconds. A longer
// action already playing is not shortened.
func (a *Animation) PlayUpperBody(d float32) {
	if d > a.upperBodyRemaining {
		a.upperBodyRemaining = d
	}
}

// Advance moves timed actions forward by dt seconds
func (a *Animation) Advance(dt float32) {
	if a.upperBodyRemaining <= 0 {
		return
	}
	a.upperBodyRemaining -= dt
	if a.upperBodyRemaining < 0 {
		a.upperBodyRemaining = 0
	}
}

// SetViewMode selects which body is animated
func (a *Animation) SetViewMode(mode camera.AnimViewMode) {
	a.viewMode = mode
}

// ViewMode returns the current view mode
func (a *Animation) ViewMode() camera.AnimViewMode {
	return a.viewMode
}

// NamedNode returns the skeleton node called name, or nil
func (a *Animation) NamedNode(name string) camera.Node {
	if a.skeleton == nil {
		return nil
	}
	n := a.skeleton.Find(name)
	if n == nil {
		return nil
	}
	return n
}

// SetFirstPersonOffset moves the first person camera node away from its rest position
func (a *Animation) SetFirstPersonOffset(offset mgl32.Vec3) {
	a.firstPersonOffset = offset
	if a.cameraNode != nil {
		a.cameraNode.SetPosition(a.cameraRest.Add(offset))
	}
}

// FirstPersonOffset returns the current first person offset
func (a *Animation) FirstPersonOffset() mgl32.Vec3 {
	return a.firstPersonOffset
}
