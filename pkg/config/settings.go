// Package config loads viewer settings from YAML and keeps them in sync with
// the file on disk.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/leterax/go-viewcam/pkg/camera"
	"github.com/leterax/go-viewcam/pkg/paging"
)

// Settings is the whole settings file
type Settings struct {
	Camera CameraSettings `yaml:"camera"`
	Input  InputSettings  `yaml:"input"`
	Paging PagingSettings `yaml:"paging"`
	Window WindowSettings `yaml:"window"`
}

// CameraSettings configures the camera controller
type CameraSettings struct {
	Nearest            float32 `yaml:"nearest"`
	Furthest           float32 `yaml:"furthest"`
	Height             float32 `yaml:"height"`
	BaseDistance       float32 `yaml:"base_distance"`
	MainSlotOffset     float32 `yaml:"main_slot_offset"`
	AltSlotOffset      float32 `yaml:"alt_slot_offset"`
	ThirdPersonMode    string  `yaml:"third_person_mode"`
	OverShoulderOffset float32 `yaml:"over_shoulder_offset"`
	ZoomOutWhenMove    float32 `yaml:"zoom_out_when_move"`
	AllowVanity        bool    `yaml:"allow_vanity"`
	FOV                float32 `yaml:"fov"`
}

// InputSettings configures mouse handling
type InputSettings struct {
	MouseSensitivity float32 `yaml:"mouse_sensitivity"`
	ZoomStep         float32 `yaml:"zoom_step"`
}

// PagingSettings configures object paging
type PagingSettings struct {
	Enabled     bool    `yaml:"enabled"`
	CellSize    float32 `yaml:"cell_size"`
	ChunkSize   float32 `yaml:"chunk_size"`
	MinSize     float32 `yaml:"min_size"`
	MergeFactor float32 `yaml:"merge_factor"`
}

// WindowSettings configures the viewer window
type WindowSettings struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	VSync  bool   `yaml:"vsync"`
}

// Default returns the built-in settings
func Default() Settings {
	return Settings{
		Camera: CameraSettings{
			Nearest:            camera.DefaultNearest,
			Furthest:           camera.DefaultFurthest,
			Height:             camera.DefaultHeight,
			BaseDistance:       camera.DefaultBaseCameraDistance,
			MainSlotOffset:     camera.DefaultSlotOffset,
			AltSlotOffset:      camera.DefaultSlotOffset,
			ThirdPersonMode:    camera.Standard.String(),
			OverShoulderOffset: camera.DefaultOverShoulderOffset,
			ZoomOutWhenMove:    camera.DefaultZoomOutWhenMove,
			AllowVanity:        true,
			FOV:                55,
		},
		Input: InputSettings{
			MouseSensitivity: 0.003,
			ZoomStep:         15,
		},
		Paging: PagingSettings{
			Enabled:     true,
			CellSize:    paging.DefaultCellSize,
			ChunkSize:   1,
			MinSize:     paging.DefaultMinSize,
			MergeFactor: paging.DefaultMergeFactor,
		},
		Window: WindowSettings{
			Width:  1280,
			Height: 720,
			Title:  "viewcam",
			VSync:  true,
		},
	}
}

// Load reads path over the defaults. Keys missing from the file keep their
// default value.
func Load(path string) (Settings, error) {
	s := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("config: load %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("config: validate %s: %w", path, err)
	}
	return s, nil
}

// Validate checks value ranges
func (s Settings) Validate() error {
	var errs []error
	c := s.Camera
	if c.Nearest <= 0 {
		errs = append(errs, fmt.Errorf("camera.nearest must be positive, got %v", c.Nearest))
	}
	if c.Furthest < c.Nearest {
		errs = append(errs, fmt.Errorf("camera.furthest %v is below camera.nearest %v", c.Furthest, c.Nearest))
	}
	if _, err := ParseThirdPersonMode(c.ThirdPersonMode); err != nil {
		errs = append(errs, err)
	}
	if s.Paging.CellSize <= 0 || s.Paging.ChunkSize <= 0 {
		errs = append(errs, fmt.Errorf("paging.cell_size and paging.chunk_size must be positive"))
	}
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d is invalid", s.Window.Width, s.Window.Height))
	}
	return errors.Join(errs...)
}

// ParseThirdPersonMode parses "standard" or "over-shoulder"
func ParseThirdPersonMode(name string) (camera.ThirdPersonMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", camera.Standard.String():
		return camera.Standard, nil
	case camera.OverShoulder.String(), "over_shoulder", "overshoulder":
		return camera.OverShoulder, nil
	}
	return camera.Standard, fmt.Errorf("unknown third person mode %q", name)
}

// CameraOptions turns the camera section into controller options
func (s Settings) CameraOptions() []camera.Option {
	c := s.Camera
	mode, _ := ParseThirdPersonMode(c.ThirdPersonMode)
	return []camera.Option{
		camera.WithDistanceBounds(c.Nearest, c.Furthest),
		camera.WithHeight(c.Height),
		camera.WithBaseCameraDistance(c.BaseDistance),
		camera.WithSlotOffsets(c.MainSlotOffset, c.AltSlotOffset),
		camera.WithThirdPersonMode(mode),
		camera.WithOverShoulderOffset(c.OverShoulderOffset),
		camera.WithZoomOutWhenMoveCoef(c.ZoomOutWhenMove),
	}
}

// Apply pushes the runtime tunable camera values into a live controller.
// The user's zoom and orbit are left alone.
func (s Settings) Apply(ctrl *camera.Controller) {
	c := s.Camera
	mode, _ := ParseThirdPersonMode(c.ThirdPersonMode)

	ctrl.SetDistanceBounds(c.Nearest, c.Furthest)
	ctrl.SetHeight(c.Height)
	ctrl.SetZoomOutWhenMoveCoef(c.ZoomOutWhenMove)
	ctrl.SetThirdPersonMode(mode)
	ctrl.SetOverShoulderHorizontalOffset(c.OverShoulderOffset)
	ctrl.SwitchToDefaultShoulder()
	ctrl.AllowVanityMode(c.AllowVanity)
}
