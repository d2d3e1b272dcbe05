package render

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/go-viewcam/pkg/input"
)

// Key constants for movement and window control
const (
	KeyW        = glfw.KeyW
	KeyA        = glfw.KeyA
	KeyS        = glfw.KeyS
	KeyD        = glfw.KeyD
	KeyRun      = glfw.KeyLeftShift
	KeyEscape   = glfw.KeyEscape
	KeyCapture  = glfw.KeyM
	KeyDrawWeap = glfw.KeyF
	KeySwim     = glfw.KeyG
)

// Action constants for key states
const (
	Press   = glfw.Press
	Release = glfw.Release
)

// Bindings maps keys to viewer actions
var Bindings = map[glfw.Key]input.Action{
	glfw.KeyV:   input.ActionToggleView,
	glfw.KeyC:   input.ActionToggleVanity,
	glfw.KeyP:   input.ActionPreview,
	glfw.KeyQ:   input.ActionLeftShoulder,
	glfw.KeyE:   input.ActionRightShoulder,
	glfw.KeyTab: input.ActionToggleOverShoulder,
	glfw.KeyR:   input.ActionReset,
	glfw.KeyF1:  input.ActionToggleGui,
	glfw.KeyN:   input.ActionNextTarget,
	glfw.KeyK:   input.ActionPause,
}

// Player movement
const (
	WalkSpeed = 150.0 // units per second
	RunSpeed  = 450.0
)

// Colors
var (
	ClearColor     = mgl32.Vec4{0.05, 0.05, 0.1, 1.0} // Dark blue background
	GridColor      = mgl32.Vec3{0.2, 0.2, 0.3}
	ActorColor     = mgl32.Vec3{0.9, 0.6, 0.2}
	TargetColor    = mgl32.Vec3{1.0, 0.2, 0.2}
	ObjectColor    = mgl32.Vec3{0.3, 0.8, 0.4}
	ChunkColor     = mgl32.Vec3{0.3, 0.4, 0.9}
	CrosshairColor = mgl32.Vec3{1, 1, 1}
)
