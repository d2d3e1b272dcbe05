package camera

// Slot holds one set of orbit values.
type Slot struct {
	Yaw    float32
	Pitch  float32
	Offset float32
}

// SlotKind selects one of the two slots.
// Vanity and preview share AlternateSlot so that vanity followed by preview composes.
type SlotKind int

const (
	MainSlot SlotKind = iota
	AlternateSlot
)

// String returns the name of the slot
func (k SlotKind) String() string {
	if k == AlternateSlot {
		return "alternate"
	}
	return "main"
}

// ThirdPersonMode is the third person sub-mode.
type ThirdPersonMode int

const (
	Standard ThirdPersonMode = iota
	OverShoulder
)

// String returns the name of the mode
func (m ThirdPersonMode) String() string {
	switch m {
	case Standard:
		return "standard"
	case OverShoulder:
		return "over-shoulder"
	}
	return "unknown"
}

// OffsetType is the focal point offset state used in over-shoulder mode.
type OffsetType int

const (
	RightShoulder OffsetType = iota
	LeftShoulder
	Combat
	Swimming
)

// String returns the name of the offset type
func (t OffsetType) String() string {
	switch t {
	case RightShoulder:
		return "right-shoulder"
	case LeftShoulder:
		return "left-shoulder"
	case Combat:
		return "combat"
	case Swimming:
		return "swimming"
	}
	return "unknown"
}

func (t OffsetType) isShoulder() bool {
	return t == RightShoulder || t == LeftShoulder
}

type vanityState struct {
	enabled bool
	allowed bool
}

// pendingVanity is a vanity toggle requested while the upper body was busy.
type pendingVanity struct {
	queued bool
	enable bool
}
