package camera

import (
	"log"

	"github.com/chewxy/math32"
)

// Option configures a Controller at construction.
type Option func(*Controller)

// WithAnimation binds the animation without processing a view change.
// Use SetAnimation after construction to rebind and reprocess.
func WithAnimation(a Animation) Option {
	return func(c *Controller) {
		c.animation = a
	}
}

// WithHUD binds the crosshair owner.
func WithHUD(h HUD) Option {
	return func(c *Controller) {
		c.hud = h
	}
}

// WithLogger sets the logger used for mode change messages.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// WithDistanceBounds sets the nearest and furthest camera distance.
func WithDistanceBounds(nearest, furthest float32) Option {
	return func(c *Controller) {
		c.nearest = nearest
		c.furthest = furthest
	}
}

// WithHeight sets the eye height above the base node in third person.
func WithHeight(height float32) Option {
	return func(c *Controller) {
		c.height = height
	}
}

// WithBaseCameraDistance sets the initial third person distance.
func WithBaseCameraDistance(dist float32) Option {
	return func(c *Controller) {
		c.baseCameraDistance = dist
	}
}

// WithSlotOffsets sets the initial distance stored in each slot.
func WithSlotOffsets(main, alternate float32) Option {
	return func(c *Controller) {
		c.slots[MainSlot].Offset = main
		c.slots[AlternateSlot].Offset = alternate
	}
}

// WithThirdPersonMode sets the third person sub-mode.
func WithThirdPersonMode(mode ThirdPersonMode) Option {
	return func(c *Controller) {
		c.thirdPersonMode = mode
	}
}

// WithOverShoulderOffset sets the horizontal shoulder offset.
// A negative value makes the left shoulder the default.
func WithOverShoulderOffset(v float32) Option {
	return func(c *Controller) {
		c.overShoulderHorizontalOffset = math32.Abs(v)
		c.defaultShoulderIsRight = v > 0
		c.offsetType = c.defaultShoulder()
	}
}

// WithZoomOutWhenMoveCoef sets how far the camera pulls out at high speed.
func WithZoomOutWhenMoveCoef(coef float32) Option {
	return func(c *Controller) {
		c.zoomOutWhenMoveCoef = coef
	}
}
