package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// FocalPoint returns the world point the camera orbits. It is the origin when
// the followed node is missing or detached.
func (c *Controller) FocalPoint() mgl32.Vec3 {
	if c.trackingNode == nil {
		return mgl32.Vec3{}
	}
	world, ok := c.trackingNode.WorldTransform()
	if !ok {
		return mgl32.Vec3{}
	}

	position := world.Col(3).Vec3()
	if !c.IsFirstPerson() {
		position[2] += c.height*c.heightScale - headCorrection
		position = position.Add(c.focalPointOffset()).Add(c.focalPointAdjustment)
	}
	return position
}

// focalPointOffset is the smoothed shoulder offset projected on the current yaw
func (c *Controller) focalPointOffset() mgl32.Vec3 {
	offset := mgl32.Vec3{0, 0, focalPointBaseOffset}
	if c.thirdPersonMode == OverShoulder && !c.previewMode && !c.vanity.enabled {
		sin, cos := math32.Sincos(c.Yaw())
		offset[0] += c.focalPointCurrentOffset.X() * cos
		offset[1] += c.focalPointCurrentOffset.X() * sin
		offset[2] += c.focalPointCurrentOffset.Y()
	}
	return offset
}

// SetFocalPointAdjustment adds a one-shot offset to the focal point, cleared by
// the next RecomputeCameraDistance.
func (c *Controller) SetFocalPointAdjustment(v mgl32.Vec3) {
	c.focalPointAdjustment = v
}

// FocalPointOffset returns the current smoothed shoulder offset (horizontal, vertical)
func (c *Controller) FocalPointOffset() mgl32.Vec2 {
	return c.focalPointCurrentOffset
}

// OffsetType returns the current focal point offset state
func (c *Controller) OffsetType() OffsetType {
	return c.offsetType
}

// ThirdPersonMode returns the third person sub-mode
func (c *Controller) ThirdPersonMode() ThirdPersonMode {
	return c.thirdPersonMode
}

// SetThirdPersonMode sets the third person sub-mode
func (c *Controller) SetThirdPersonMode(mode ThirdPersonMode) {
	c.thirdPersonMode = mode
}

// SetOverShoulderHorizontalOffset sets the shoulder offset magnitude; its sign
// picks the default shoulder.
func (c *Controller) SetOverShoulderHorizontalOffset(v float32) {
	c.overShoulderHorizontalOffset = math32.Abs(v)
	c.defaultShoulderIsRight = v > 0
}

// SwitchToLeftShoulder prefers the left shoulder unless combat or swimming overrides
func (c *Controller) SwitchToLeftShoulder() {
	if c.offsetType == RightShoulder {
		c.offsetType = LeftShoulder
	}
}

// SwitchToRightShoulder prefers the right shoulder unless combat or swimming overrides
func (c *Controller) SwitchToRightShoulder() {
	if c.offsetType == LeftShoulder {
		c.offsetType = RightShoulder
	}
}

// SwitchToDefaultShoulder restores the shoulder chosen by the offset sign
func (c *Controller) SwitchToDefaultShoulder() {
	if c.offsetType.isShoulder() {
		c.offsetType = c.defaultShoulder()
	}
}

func (c *Controller) defaultShoulder() OffsetType {
	if c.defaultShoulderIsRight {
		return RightShoulder
	}
	return LeftShoulder
}

// nextOffsetType picks the offset state by priority: combat, swimming, then
// back to the default shoulder if an override just ended.
func (c *Controller) nextOffsetType() OffsetType {
	if c.hasTarget() {
		if c.world.IsActor(c.target) && c.world.DrawState(c.target) != DrawNothing {
			return Combat
		}
		if c.world.IsSwimming(c.target) {
			return Swimming
		}
	}
	if !c.offsetType.isShoulder() {
		return c.defaultShoulder()
	}
	return c.offsetType
}

func (c *Controller) targetOffset() mgl32.Vec2 {
	switch c.offsetType {
	case RightShoulder:
		return mgl32.Vec2{c.overShoulderHorizontalOffset, shoulderVerticalOffset}
	case LeftShoulder:
		return mgl32.Vec2{-c.overShoulderHorizontalOffset, shoulderVerticalOffset}
	default:
		return mgl32.Vec2{0, raisedVerticalOffset}
	}
}

// updateFocalPointOffset moves the shoulder offset toward its target. The step
// grows as the remaining distance shrinks, so the offset lands on the target in
// finite time.
func (c *Controller) updateFocalPointOffset(duration float32) {
	// No offset in standard mode
	if c.thirdPersonMode == Standard {
		return
	}

	next := c.nextOffsetType()
	if next != c.offsetType {
		if next == Combat || c.offsetType == Combat {
			c.focalPointTransitionSpeed = combatTransitionSpeed
		} else {
			c.focalPointTransitionSpeed = defaultTransitionSpeed
		}
		c.offsetType = next
	}

	target := c.targetOffset()
	delta := target.Sub(c.focalPointCurrentOffset)
	if delta.LenSqr() == 0 {
		c.focalPointTransitionSpeed = defaultTransitionSpeed
		return
	}

	coef := duration * (1 + transitionDistance/delta.Len()) * c.focalPointTransitionSpeed
	if coef >= 1 {
		c.focalPointCurrentOffset = target
		return
	}
	c.focalPointCurrentOffset = c.focalPointCurrentOffset.Add(delta.Mul(coef))
}
