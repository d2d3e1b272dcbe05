package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// TargetID is a handle to an actor or object owned by the world.
// The camera never owns what it points at; it asks World.Exists before every use.
type TargetID uint64

// NoTarget is the empty handle.
const NoTarget TargetID = 0

// Node is a scene node the camera can follow.
type Node interface {
	// WorldTransform returns the node's local-to-world matrix.
	// ok is false when the node is no longer part of a scene.
	WorldTransform() (m mgl32.Mat4, ok bool)
}

// ScaledNode is an actor's base transform node.
type ScaledNode interface {
	Node
	Scale() mgl32.Vec3
}

// AnimViewMode selects which body the animation renders.
type AnimViewMode int

const (
	AnimNormal AnimViewMode = iota
	AnimFirstPerson
)

// String returns the name of the view mode
func (m AnimViewMode) String() string {
	if m == AnimFirstPerson {
		return "first-person"
	}
	return "normal"
}

// Animation is the tracked actor's animation.
type Animation interface {
	// UpperBodyReady reports whether the upper body can be interrupted by a view change.
	UpperBodyReady() bool
	SetViewMode(mode AnimViewMode)
	// NamedNode returns the attachment node with the given name, or nil.
	NamedNode(name string) Node
	SetFirstPersonOffset(offset mgl32.Vec3)
}

// DrawState is what an actor currently holds ready.
type DrawState int

const (
	DrawNothing DrawState = iota
	DrawWeapon
	DrawSpell
)

// World exposes the state of tracked targets.
type World interface {
	Exists(id TargetID) bool
	IsActor(id TargetID) bool
	Speed(id TargetID) float32
	DrawState(id TargetID) DrawState
	IsSwimming(id TargetID) bool
	SetSideMovementAngle(id TargetID, angle float32)
	// BaseNode returns the target's base transform node, or nil.
	BaseNode(id TargetID) ScaledNode
}

// RenderCamera receives the view computed by UpdateCamera.
type RenderCamera interface {
	SetViewMatrixAsLookAt(eye, center, up mgl32.Vec3)
}

// HUD controls crosshair visibility.
type HUD interface {
	IsGuiMode() bool
	ShowCrosshair(show bool)
}
