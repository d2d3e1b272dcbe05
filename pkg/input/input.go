// Package input turns per-frame key and mouse input into camera controller calls.
package input

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/go-viewcam/pkg/camera"
	"github.com/leterax/go-viewcam/pkg/hud"
)

// Action is a bindable viewer command
type Action int

const (
	ActionToggleView Action = iota
	ActionToggleVanity
	ActionPreview
	ActionLeftShoulder
	ActionRightShoulder
	ActionToggleOverShoulder
	ActionReset
	ActionPause
	ActionToggleGui
	ActionNextTarget
)

var actionNames = [...]string{
	ActionToggleView:         "toggle-view",
	ActionToggleVanity:       "toggle-vanity",
	ActionPreview:            "preview",
	ActionLeftShoulder:       "left-shoulder",
	ActionRightShoulder:      "right-shoulder",
	ActionToggleOverShoulder: "toggle-over-shoulder",
	ActionReset:              "reset",
	ActionPause:              "pause",
	ActionToggleGui:          "toggle-gui",
	ActionNextTarget:         "next-target",
}

// String returns the action name
func (a Action) String() string {
	if a >= 0 && int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// Frame is the input gathered since the previous frame
type Frame struct {
	Pressed    []Action
	Released   []Action
	MouseDelta mgl32.Vec2 // pixels, +Y down
	Scroll     float32    // wheel steps, + away from the user
}

// Empty reports whether nothing happened
func (f Frame) Empty() bool {
	return len(f.Pressed) == 0 && len(f.Released) == 0 && f.MouseDelta == (mgl32.Vec2{}) && f.Scroll == 0
}

// Handler applies frames to a controller
type Handler struct {
	ctrl        *camera.Controller
	hud         *hud.HUD
	sensitivity float32
	zoomStep    float32
	paused      bool

	// OnNextTarget is called for ActionNextTarget
	OnNextTarget func()
}

// NewHandler creates a handler. sensitivity is radians per pixel, zoomStep is
// distance units per wheel step.
func NewHandler(ctrl *camera.Controller, h *hud.HUD, sensitivity, zoomStep float32) *Handler {
	return &Handler{ctrl: ctrl, hud: h, sensitivity: sensitivity, zoomStep: zoomStep}
}

// SetSensitivity sets the mouse sensitivity in radians per pixel
func (h *Handler) SetSensitivity(sensitivity float32) {
	h.sensitivity = sensitivity
}

// SetZoomStep sets the distance change per wheel step
func (h *Handler) SetZoomStep(step float32) {
	h.zoomStep = step
}

// Paused reports whether the simulation is paused
func (h *Handler) Paused() bool {
	return h.paused
}

func (h *Handler) guiMode() bool {
	return h.hud != nil && h.hud.IsGuiMode()
}

// Apply runs the frame's actions, then mouse look and zoom
func (h *Handler) Apply(f Frame) {
	for _, a := range f.Pressed {
		h.press(a)
	}
	for _, a := range f.Released {
		if a == ActionPreview {
			h.ctrl.TogglePreviewMode(false)
		}
	}

	if h.guiMode() {
		return
	}

	if f.MouseDelta != (mgl32.Vec2{}) {
		// Looking around ends vanity mode
		if h.ctrl.IsVanityEnabled() {
			h.ctrl.ToggleVanityMode(false)
		}
		h.ctrl.RotateCamera(-f.MouseDelta.Y()*h.sensitivity, -f.MouseDelta.X()*h.sensitivity, true)
	}

	if f.Scroll != 0 {
		h.ctrl.SetBaseCameraDistance(-f.Scroll*h.zoomStep, true)
	}
}

func (h *Handler) press(a Action) {
	switch a {
	case ActionToggleView:
		h.ctrl.ToggleViewMode(false)
	case ActionToggleVanity:
		h.ctrl.ToggleVanityMode(!h.ctrl.IsVanityEnabled())
	case ActionPreview:
		h.ctrl.TogglePreviewMode(true)
	case ActionLeftShoulder:
		h.ctrl.SwitchToLeftShoulder()
	case ActionRightShoulder:
		h.ctrl.SwitchToRightShoulder()
	case ActionToggleOverShoulder:
		if h.ctrl.ThirdPersonMode() == camera.Standard {
			h.ctrl.SetThirdPersonMode(camera.OverShoulder)
		} else {
			h.ctrl.SetThirdPersonMode(camera.Standard)
		}
	case ActionReset:
		h.ctrl.Reset()
	case ActionPause:
		h.paused = !h.paused
	case ActionToggleGui:
		if h.hud != nil {
			h.hud.SetGuiMode(!h.hud.IsGuiMode())
		}
	case ActionNextTarget:
		if h.OnNextTarget != nil {
			h.OnNextTarget()
		}
	}
}
