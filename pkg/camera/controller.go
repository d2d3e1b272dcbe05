// Package camera derives the render camera from a tracked actor, user rotation
// and zoom, and a set of view modes (first person, third person, over the
// shoulder, vanity and preview).
//
// The Controller is frame driven and not safe for concurrent use: Update, the
// toggles and UpdateCamera are expected on the same goroutine.
package camera

import (
	"log"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Controller owns the view mode state and computes the camera transform.
type Controller struct {
	world     World
	animation Animation
	hud       HUD
	logger    *log.Logger

	// Tracking
	target       TargetID
	trackingNode Node
	heightScale  float32

	// View mode axes
	firstPersonView bool
	previewMode     bool
	vanity          vanityState
	thirdPersonMode ThirdPersonMode
	offsetType      OffsetType

	slots [2]Slot

	// Distance
	nearest            float32
	furthest           float32
	isNearest          bool
	height             float32
	baseCameraDistance float32
	cameraDistance     float32

	// Toggles deferred until the upper body is ready
	vanityToggle         pendingVanity
	viewModeToggleQueued bool

	// Focal point
	overShoulderHorizontalOffset float32
	defaultShoulderIsRight       bool
	focalPointCurrentOffset      mgl32.Vec2
	focalPointTransitionSpeed    float32
	focalPointAdjustment         mgl32.Vec3

	smoothedSpeed       float32
	zoomOutWhenMoveCoef float32
}

// NewController creates a first person camera controller reading actor state from world
func NewController(world World, options ...Option) *Controller {
	c := &Controller{
		world:                        world,
		heightScale:                  1,
		firstPersonView:              true,
		vanity:                       vanityState{allowed: true},
		thirdPersonMode:              Standard,
		offsetType:                   RightShoulder,
		nearest:                      DefaultNearest,
		furthest:                     DefaultFurthest,
		height:                       DefaultHeight,
		baseCameraDistance:           DefaultBaseCameraDistance,
		overShoulderHorizontalOffset: DefaultOverShoulderOffset,
		defaultShoulderIsRight:       true,
		focalPointTransitionSpeed:    defaultTransitionSpeed,
		zoomOutWhenMoveCoef:          DefaultZoomOutWhenMove,
	}
	c.slots[MainSlot].Offset = DefaultSlotOffset
	c.slots[AlternateSlot].Offset = DefaultSlotOffset

	for _, option := range options {
		option(c)
	}

	c.cameraDistance = c.baseCameraDistance
	return c
}

func (c *Controller) logf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}

// upperBodyReady is true when nothing is bound that a view change could interrupt
func (c *Controller) upperBodyReady() bool {
	return c.animation == nil || c.animation.UpperBodyReady()
}

// hasTarget reports whether the tracked target still exists
func (c *Controller) hasTarget() bool {
	return c.target != NoTarget && c.world != nil && c.world.Exists(c.target)
}

// activeSlot returns the slot selected by the current modes
func (c *Controller) activeSlot() SlotKind {
	if c.vanity.enabled || c.previewMode {
		return AlternateSlot
	}
	return MainSlot
}

func (c *Controller) slot() *Slot {
	return &c.slots[c.activeSlot()]
}

// ActiveSlot returns which slot pitch and yaw currently read and write.
func (c *Controller) ActiveSlot() SlotKind {
	return c.activeSlot()
}

// SlotValues returns a copy of the given slot.
func (c *Controller) SlotValues(kind SlotKind) Slot {
	return c.slots[kind]
}

// TrackingTarget returns the tracked target handle
func (c *Controller) TrackingTarget() TargetID {
	return c.target
}

// AttachTo rebinds the tracked target and reprocesses the followed node.
func (c *Controller) AttachTo(id TargetID) {
	c.target = id
	c.ProcessViewChange()
}

// SetAnimation rebinds the animation and reprocesses the followed node.
func (c *Controller) SetAnimation(a Animation) {
	c.animation = a
	c.ProcessViewChange()
}

// SetSneakOffset lowers the first person view by offset.
func (c *Controller) SetSneakOffset(offset float32) {
	if c.animation == nil {
		return
	}
	c.animation.SetFirstPersonOffset(mgl32.Vec3{0, 0, -offset})
}

// Update runs once per frame: it applies deferred toggles when the upper body
// is ready, then (unless paused) advances vanity rotation, focal point smoothing
// and speed smoothing.
func (c *Controller) Update(duration float32, paused bool) {
	if c.upperBodyReady() {
		if c.vanityToggle.queued {
			enable := c.vanityToggle.enable
			c.vanityToggle = pendingVanity{}
			c.logf("camera: applying queued vanity toggle (enable=%t)", enable)
			c.ToggleVanityMode(enable)
		}
		if c.viewModeToggleQueued {
			c.logf("camera: applying queued view mode toggle")
			c.TogglePreviewMode(false)
			c.ToggleViewMode(false)
		}
	}

	if paused {
		return
	}

	if c.hud != nil {
		c.hud.ShowCrosshair(!c.hud.IsGuiMode() && !c.vanity.enabled && !c.previewMode &&
			(c.firstPersonView || c.thirdPersonMode != Standard))
	}

	if c.vanity.enabled {
		c.RotateCamera(0, mgl32.DegToRad(vanityRotationSpeed*duration), true)
	}

	c.updateFocalPointOffset(duration)
	c.updateSmoothedSpeed(duration)
}

// Reset returns to first person with vanity and preview off.
// The view flip is deferred like any other toggle if the upper body is busy.
func (c *Controller) Reset() {
	c.TogglePreviewMode(false)
	c.ToggleVanityMode(false)
	if !c.firstPersonView {
		c.ToggleViewMode(false)
	}
}

// IsFirstPerson reports whether the eye is the tracked node itself
func (c *Controller) IsFirstPerson() bool {
	return c.firstPersonView && !c.vanity.enabled && !c.previewMode
}

// IsFirstPersonView reports the first/third person preference, ignoring vanity and preview
func (c *Controller) IsFirstPersonView() bool {
	return c.firstPersonView
}

// IsVanityOrPreviewModeEnabled reports whether the alternate slot is active
func (c *Controller) IsVanityOrPreviewModeEnabled() bool {
	return c.previewMode || c.vanity.enabled
}

// IsVanityEnabled reports whether vanity mode is on
func (c *Controller) IsVanityEnabled() bool {
	return c.vanity.enabled
}

// IsPreviewMode reports whether preview mode is on
func (c *Controller) IsPreviewMode() bool {
	return c.previewMode
}

// ToggleViewMode switches between first and third person. Unless forced, the
// switch is queued while the upper body is busy and applied by Update.
func (c *Controller) ToggleViewMode(force bool) {
	// Changing the view stops playing animations
	if !force && !c.upperBodyReady() {
		if !c.viewModeToggleQueued {
			c.logf("camera: view mode toggle queued until upper body is ready")
		}
		c.viewModeToggleQueued = true
		return
	}
	c.viewModeToggleQueued = false

	if c.hasTarget() && c.world.IsActor(c.target) {
		c.world.SetSideMovementAngle(c.target, 0)
	}

	c.firstPersonView = !c.firstPersonView
	c.ProcessViewChange()
}

// AllowVanityMode sets whether vanity may be entered; disallowing turns it off first.
func (c *Controller) AllowVanityMode(allow bool) {
	if !allow && c.vanity.enabled {
		c.ToggleVanityMode(false)
	}
	c.vanity.allowed = allow
}

// ToggleVanityMode enters or leaves vanity mode. It returns false when the
// toggle was queued (first person with a busy upper body) or vanity is not
// allowed, and true when the requested state is in effect.
func (c *Controller) ToggleVanityMode(enable bool) bool {
	if c.firstPersonView && !c.upperBodyReady() {
		c.vanityToggle = pendingVanity{queued: true, enable: enable}
		c.logf("camera: vanity toggle (enable=%t) queued until upper body is ready", enable)
		return false
	}
	c.vanityToggle = pendingVanity{}

	if !c.vanity.allowed && enable {
		return false
	}

	if c.vanity.enabled == enable {
		return true
	}
	c.vanity.enabled = enable

	c.ProcessViewChange()

	offset := c.slots[AlternateSlot].Offset
	if c.vanity.enabled {
		c.SetPitch(mgl32.DegToRad(vanityPitchDegrees))
		c.slots[MainSlot].Offset = c.cameraDistance
	} else {
		offset = c.slots[MainSlot].Offset
	}
	c.cameraDistance = offset

	return true
}

// TogglePreviewMode enters or leaves preview mode. A request made in first
// person while the upper body is busy is dropped.
func (c *Controller) TogglePreviewMode(enable bool) {
	if c.firstPersonView && !c.upperBodyReady() {
		return
	}

	if c.previewMode == enable {
		return
	}
	c.previewMode = enable
	c.ProcessViewChange()

	offset := c.cameraDistance
	if c.previewMode {
		c.slots[MainSlot].Offset = offset
		offset = c.slots[AlternateSlot].Offset
	} else {
		c.slots[AlternateSlot].Offset = offset
		offset = c.slots[MainSlot].Offset
	}
	c.cameraDistance = offset
}

// ProcessViewChange re-resolves the followed node after a view, target or
// animation change.
func (c *Controller) ProcessViewChange() {
	c.trackingNode = nil
	c.heightScale = 1

	if c.IsFirstPerson() {
		if c.animation != nil {
			c.animation.SetViewMode(AnimFirstPerson)
			c.trackingNode = c.animation.NamedNode(CameraNodeName)
			if c.trackingNode == nil {
				c.trackingNode = c.animation.NamedNode(HeadNodeName)
			}
		}
	} else {
		if c.animation != nil {
			c.animation.SetViewMode(AnimNormal)
		}
		if c.hasTarget() {
			if base := c.world.BaseNode(c.target); base != nil {
				c.trackingNode = base
				c.heightScale = base.Scale().Z()
			}
		}
	}

	c.logf("camera: view changed (first person=%t, slot=%s)", c.IsFirstPerson(), c.activeSlot())
	c.RotateCamera(c.Pitch(), c.Yaw(), false)
}

// RotateCamera sets pitch and yaw, or adds to them when relative is true.
func (c *Controller) RotateCamera(pitch, yaw float32, relative bool) {
	if relative {
		pitch += c.Pitch()
		yaw += c.Yaw()
	}
	c.SetYaw(yaw)
	c.SetPitch(pitch)
}

// Yaw returns the yaw of the active slot
func (c *Controller) Yaw() float32 {
	return c.slot().Yaw
}

// SetYaw stores angle in the active slot, normalized to (-Pi, Pi]
func (c *Controller) SetYaw(angle float32) {
	c.slot().Yaw = normalizeYaw(angle)
}

// Pitch returns the pitch of the active slot
func (c *Controller) Pitch() float32 {
	return c.slot().Pitch
}

// SetPitch stores angle in the active slot, clamped short of straight up or
// down (half that range in preview mode)
func (c *Controller) SetPitch(angle float32) {
	c.slot().Pitch = mgl32.Clamp(angle, -c.pitchLimit(), c.pitchLimit())
}

func (c *Controller) pitchLimit() float32 {
	limit := float32(math32.Pi/2 - pitchEpsilon)
	if c.previewMode {
		limit /= 2
	}
	return limit
}

// normalizeYaw wraps angle into (-Pi, Pi]. Angles already in range are
// returned unchanged.
func normalizeYaw(angle float32) float32 {
	if angle > -math32.Pi && angle <= math32.Pi {
		return angle
	}
	angle = math32.Mod(angle+math32.Pi, 2*math32.Pi)
	if angle <= 0 {
		angle += 2 * math32.Pi
	}
	angle -= math32.Pi
	if angle <= -math32.Pi {
		return math32.Pi
	}
	return angle
}

// orientation is pitch about X followed by yaw about Z
func (c *Controller) orientation() mgl32.Quat {
	pitch := mgl32.QuatRotate(c.Pitch(), mgl32.Vec3{1, 0, 0})
	yaw := mgl32.QuatRotate(c.Yaw(), mgl32.Vec3{0, 0, 1})
	return yaw.Mul(pitch)
}

// Position returns the focal point and the eye position.
func (c *Controller) Position() (focal, eye mgl32.Vec3) {
	focal = c.FocalPoint()
	eye = focal
	if !c.IsFirstPerson() {
		eye = focal.Add(c.orientation().Rotate(mgl32.Vec3{0, -c.cameraDistance, 0}))
	}
	return focal, eye
}

// UpdateCamera writes the current view into cam. Nothing is written while no
// target is tracked.
func (c *Controller) UpdateCamera(cam RenderCamera) {
	if !c.hasTarget() {
		return
	}

	_, eye := c.Position()

	orient := c.orientation()
	forward := orient.Rotate(mgl32.Vec3{0, 1, 0})
	up := orient.Rotate(mgl32.Vec3{0, 0, 1})

	cam.SetViewMatrixAsLookAt(eye, eye.Add(forward), up)
}
