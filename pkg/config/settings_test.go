package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leterax/go-viewcam/pkg/camera"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default settings invalid: %v", err)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewcam.yaml")
	writeFile(t, path, `
camera:
  base_distance: 250
  third_person_mode: over-shoulder
  over_shoulder_offset: -40
window:
  title: test
`)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Camera.BaseDistance != 250 || s.Camera.OverShoulderOffset != -40 || s.Window.Title != "test" {
		t.Fatalf("file values not applied: %+v", s)
	}
	if s.Camera.Furthest != camera.DefaultFurthest || s.Window.Width != 1280 || !s.Camera.AllowVanity {
		t.Fatalf("defaults lost: %+v", s)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name string
		body string
		want string
	}{
		{"bad_yaml", "camera: [", "config: unmarshal"},
		{"bad_mode", "camera:\n  third_person_mode: sideways\n", "unknown third person mode"},
		{"bad_bounds", "camera:\n  nearest: 100\n  furthest: 50\n", "below camera.nearest"},
		{"bad_window", "window:\n  width: 0\n", "window size"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			path := filepath.Join(dir, c.name+".yaml")
			writeFile(t, path, c.body)
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), c.want) {
				t.Fatalf("got %v, want error containing %q", err, c.want)
			}
		})
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file: got %v", err)
	}
}

func TestParseThirdPersonMode(t *testing.T) {
	cases := map[string]camera.ThirdPersonMode{
		"":              camera.Standard,
		"standard":      camera.Standard,
		"Over-Shoulder": camera.OverShoulder,
		"over_shoulder": camera.OverShoulder,
	}
	for in, want := range cases {
		got, err := ParseThirdPersonMode(in)
		if err != nil || got != want {
			t.Errorf("ParseThirdPersonMode(%q): got %s, %v", in, got, err)
		}
	}
}

func TestCameraOptions(t *testing.T) {
	s := Default()
	s.Camera.BaseDistance = 300
	s.Camera.ThirdPersonMode = "over-shoulder"
	s.Camera.OverShoulderOffset = -25

	ctrl := camera.NewController(nil, s.CameraOptions()...)
	if ctrl.BaseCameraDistance() != 300 {
		t.Fatalf("base distance: got %v", ctrl.BaseCameraDistance())
	}
	if ctrl.ThirdPersonMode() != camera.OverShoulder {
		t.Fatalf("mode: got %s", ctrl.ThirdPersonMode())
	}
	if ctrl.OffsetType() != camera.LeftShoulder {
		t.Fatalf("negative offset should pick the left shoulder, got %s", ctrl.OffsetType())
	}
}

func TestApply(t *testing.T) {
	ctrl := camera.NewController(nil)
	ctrl.ToggleViewMode(true)

	s := Default()
	s.Camera.ThirdPersonMode = "over-shoulder"
	s.Camera.OverShoulderOffset = -10
	s.Camera.AllowVanity = false
	s.Apply(ctrl)

	if ctrl.ThirdPersonMode() != camera.OverShoulder || ctrl.OffsetType() != camera.LeftShoulder {
		t.Fatalf("apply: mode %s offset %s", ctrl.ThirdPersonMode(), ctrl.OffsetType())
	}
	if ctrl.ToggleVanityMode(true) {
		t.Fatalf("vanity allowed after apply")
	}
}
