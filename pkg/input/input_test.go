package input

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/go-viewcam/pkg/camera"
	"github.com/leterax/go-viewcam/pkg/hud"
)

func newHandler() (*Handler, *camera.Controller, *hud.HUD) {
	h := hud.New()
	ctrl := camera.NewController(nil, camera.WithHUD(h))
	return NewHandler(ctrl, h, 0.01, 10), ctrl, h
}

func TestViewActions(t *testing.T) {
	handler, ctrl, _ := newHandler()

	handler.Apply(Frame{Pressed: []Action{ActionToggleView}})
	if ctrl.IsFirstPersonView() {
		t.Fatalf("toggle view did not switch to third person")
	}

	handler.Apply(Frame{Pressed: []Action{ActionToggleVanity}})
	if !ctrl.IsVanityEnabled() {
		t.Fatalf("vanity not entered")
	}
	handler.Apply(Frame{Pressed: []Action{ActionToggleVanity}})
	if ctrl.IsVanityEnabled() {
		t.Fatalf("vanity not left")
	}

	handler.Apply(Frame{Pressed: []Action{ActionPreview}})
	if !ctrl.IsPreviewMode() {
		t.Fatalf("preview not entered on press")
	}
	handler.Apply(Frame{Released: []Action{ActionPreview}})
	if ctrl.IsPreviewMode() {
		t.Fatalf("preview not left on release")
	}

	handler.Apply(Frame{Pressed: []Action{ActionToggleOverShoulder, ActionLeftShoulder}})
	if ctrl.ThirdPersonMode() != camera.OverShoulder || ctrl.OffsetType() != camera.LeftShoulder {
		t.Fatalf("mode %s offset %s", ctrl.ThirdPersonMode(), ctrl.OffsetType())
	}
	handler.Apply(Frame{Pressed: []Action{ActionRightShoulder, ActionToggleOverShoulder}})
	if ctrl.ThirdPersonMode() != camera.Standard || ctrl.OffsetType() != camera.RightShoulder {
		t.Fatalf("mode %s offset %s", ctrl.ThirdPersonMode(), ctrl.OffsetType())
	}

	handler.Apply(Frame{Pressed: []Action{ActionReset}})
	if !ctrl.IsFirstPerson() {
		t.Fatalf("reset did not return to first person")
	}
}

func TestMouseLook(t *testing.T) {
	handler, ctrl, _ := newHandler()
	ctrl.ToggleViewMode(true)

	handler.Apply(Frame{MouseDelta: mgl32.Vec2{10, -20}})
	if got := ctrl.Yaw(); got > -0.099 || got < -0.101 {
		t.Fatalf("yaw: got %v, want -0.1", got)
	}
	if got := ctrl.Pitch(); got < 0.199 || got > 0.201 {
		t.Fatalf("pitch: got %v, want 0.2", got)
	}

	ctrl.ToggleVanityMode(true)
	handler.Apply(Frame{MouseDelta: mgl32.Vec2{1, 0}})
	if ctrl.IsVanityEnabled() {
		t.Fatalf("mouse look should end vanity")
	}
}

func TestScrollZoom(t *testing.T) {
	handler, ctrl, _ := newHandler()
	ctrl.ToggleViewMode(true)

	handler.Apply(Frame{Scroll: 2})
	if got := ctrl.BaseCameraDistance(); got != camera.DefaultBaseCameraDistance-20 {
		t.Fatalf("zoom in: got %v", got)
	}
	handler.Apply(Frame{Scroll: -5})
	if got := ctrl.BaseCameraDistance(); got != camera.DefaultBaseCameraDistance+30 {
		t.Fatalf("zoom out: got %v", got)
	}
}

func TestGuiModeBlocksLook(t *testing.T) {
	handler, ctrl, h := newHandler()
	ctrl.ToggleViewMode(true)

	handler.Apply(Frame{Pressed: []Action{ActionToggleGui}, MouseDelta: mgl32.Vec2{50, 50}, Scroll: 3})
	if !h.IsGuiMode() {
		t.Fatalf("gui mode not entered")
	}
	if ctrl.Yaw() != 0 || ctrl.BaseCameraDistance() != camera.DefaultBaseCameraDistance {
		t.Fatalf("input leaked through gui mode")
	}
}

func TestPauseAndNextTarget(t *testing.T) {
	handler, _, _ := newHandler()
	calls := 0
	handler.OnNextTarget = func() { calls++ }

	handler.Apply(Frame{Pressed: []Action{ActionPause, ActionNextTarget}})
	if !handler.Paused() || calls != 1 {
		t.Fatalf("paused=%t calls=%d", handler.Paused(), calls)
	}
	handler.Apply(Frame{Pressed: []Action{ActionPause}})
	if handler.Paused() {
		t.Fatalf("pause not toggled off")
	}
	if !(Frame{}).Empty() || (Frame{Scroll: 1}).Empty() {
		t.Fatalf("Empty misreports")
	}
	if ActionPreview.String() != "preview" || Action(99).String() != "unknown" {
		t.Fatalf("action names wrong")
	}
}
