// Package hud tracks overlay state the camera controller toggles.
package hud

import (
	"github.com/go-gl/mathgl/mgl32"
)

// CrosshairSize is the half length of each crosshair arm in pixels
const CrosshairSize = 8

// Segment is a 2D line segment in pixels, origin top left
type Segment struct {
	A, B mgl32.Vec2
}

// HUD implements camera.HUD
type HUD struct {
	guiMode   bool
	crosshair bool
}

// New creates a HUD with the crosshair hidden
func New() *HUD {
	return &HUD{}
}

// IsGuiMode reports whether a menu has the mouse
func (h *HUD) IsGuiMode() bool {
	return h.guiMode
}

// SetGuiMode enters or leaves menu mode
func (h *HUD) SetGuiMode(gui bool) {
	h.guiMode = gui
}

// ShowCrosshair shows or hides the crosshair
func (h *HUD) ShowCrosshair(show bool) {
	h.crosshair = show
}

// CrosshairVisible reports whether the crosshair is shown
func (h *HUD) CrosshairVisible() bool {
	return h.crosshair
}

// Crosshair returns the crosshair segments for a width x height viewport, or
// nil when hidden
func (h *HUD) Crosshair(width, height int) []Segment {
	if !h.crosshair {
		return nil
	}
	cx, cy := float32(width)/2, float32(height)/2
	return []Segment{
		{A: mgl32.Vec2{cx - CrosshairSize, cy}, B: mgl32.Vec2{cx + CrosshairSize, cy}},
		{A: mgl32.Vec2{cx, cy - CrosshairSize}, B: mgl32.Vec2{cx, cy + CrosshairSize}},
	}
}
