package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// CameraDistance returns the effective eye distance; zero in first person.
func (c *Controller) CameraDistance() float32 {
	if c.IsFirstPerson() {
		return 0
	}
	return c.cameraDistance
}

// BaseCameraDistance returns the user-set third person distance
func (c *Controller) BaseCameraDistance() float32 {
	return c.baseCameraDistance
}

// IsNearest reports whether the last SetBaseCameraDistance hit the nearest bound
func (c *Controller) IsNearest() bool {
	return c.isNearest
}

// SetBaseCameraDistance sets the persistent distance for the current mode, or
// adds to it when adjust is true. In third person the adjustment starts from the
// distance without speed and pitch correction. No-op in first person.
func (c *Controller) SetBaseCameraDistance(dist float32, adjust bool) {
	if c.IsFirstPerson() {
		return
	}

	c.isNearest = false

	if adjust {
		if c.vanity.enabled || c.previewMode {
			dist += c.cameraDistance
		} else {
			dist += math32.Min(c.cameraDistance-c.CameraDistanceCorrection(), c.baseCameraDistance)
		}
	}

	if dist >= c.furthest {
		dist = c.furthest
	} else if dist <= c.nearest {
		dist = c.nearest
		c.isNearest = true
	}

	if c.vanity.enabled || c.previewMode {
		c.slots[AlternateSlot].Offset = dist
	} else if !c.firstPersonView {
		c.baseCameraDistance = dist
	}
	c.RecomputeCameraDistance()
}

// SetCameraDistance sets the effective distance directly, or adds to it when
// adjust is true, clamped to [MinCameraDistance, furthest]. No-op in first person.
func (c *Controller) SetCameraDistance(dist float32, adjust bool) {
	if c.IsFirstPerson() {
		return
	}

	if adjust {
		dist += c.cameraDistance
	}

	if dist >= c.furthest {
		dist = c.furthest
	} else if dist < MinCameraDistance {
		dist = MinCameraDistance
	}
	c.cameraDistance = dist
}

// RecomputeCameraDistance derives the effective distance from the active mode
// and clears the one-shot focal point adjustment.
func (c *Controller) RecomputeCameraDistance() {
	if c.vanity.enabled || c.previewMode {
		c.cameraDistance = c.slots[AlternateSlot].Offset
	} else if !c.firstPersonView {
		c.cameraDistance = c.baseCameraDistance + c.CameraDistanceCorrection()
	}
	c.focalPointAdjustment = mgl32.Vec3{}
}

// CameraDistanceCorrection is the extra distance applied outside standard mode:
// looking down pulls the camera in, moving fast pushes it out.
func (c *Controller) CameraDistanceCorrection() float32 {
	if c.thirdPersonMode == Standard {
		return 0
	}

	pitchCorrection := math32.Max(-c.Pitch(), 0) * pitchCorrectionFactor

	speedSqr := c.smoothedSpeed * c.smoothedSpeed
	speedCorrection := speedSqr / (speedSqr + baseSpeed*baseSpeed) * c.zoomOutWhenMoveCoef

	return pitchCorrection + speedCorrection
}

// SetZoomOutWhenMoveCoef sets how far the camera pulls out at high speed
func (c *Controller) SetZoomOutWhenMoveCoef(coef float32) {
	c.zoomOutWhenMoveCoef = coef
}

// SetDistanceBounds sets the nearest and furthest base distance
func (c *Controller) SetDistanceBounds(nearest, furthest float32) {
	c.nearest = nearest
	c.furthest = furthest
}

// SetHeight sets the eye height above the base node in third person
func (c *Controller) SetHeight(height float32) {
	c.height = height
}

// updateSmoothedSpeed moves the smoothed speed toward the target's speed at a
// bounded rate
func (c *Controller) updateSmoothedSpeed(duration float32) {
	var speed float32
	if c.hasTarget() {
		speed = c.world.Speed(c.target)
	}
	maxDelta := maxSpeedChangeRate * duration
	c.smoothedSpeed += mgl32.Clamp(speed-c.smoothedSpeed, -maxDelta, maxDelta)
}
