package camera

// Distance defaults
const (
	DefaultNearest            = 30.0
	DefaultFurthest           = 800.0
	DefaultHeight             = 124.0
	DefaultBaseCameraDistance = 192.0
	DefaultSlotOffset         = 400.0
	DefaultOverShoulderOffset = 30.0
	DefaultZoomOutWhenMove    = 20.0

	// MinCameraDistance is the floor applied by SetCameraDistance.
	MinCameraDistance = 10.0
)

// Focal point geometry
const (
	// The head collision capsule is a bit taller than the visual head, so the
	// focal point is lowered here and raised again by focalPointBaseOffset.
	headCorrection       = 10.0
	focalPointBaseOffset = 10.0

	shoulderVerticalOffset = -10.0
	raisedVerticalOffset   = 15.0

	defaultTransitionSpeed = 1.0
	combatTransitionSpeed  = 5.0
	transitionDistance     = 5.0
)

// Distance correction
const (
	pitchCorrectionFactor = 50.0
	baseSpeed             = 300.0 // speed at which the zoom out reaches half the coefficient
	maxSpeedChangeRate    = 100.0 // units per second, per second of game time
)

// Orientation
const (
	pitchEpsilon        = 0.000001
	vanityPitchDegrees  = -30.0
	vanityRotationSpeed = 3.0 // degrees per second
)

// Attachment node names looked up on the animation in first person
const (
	CameraNodeName = "Camera"
	HeadNodeName   = "Head"
)
