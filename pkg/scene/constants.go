package scene

// Camera defaults
const (
	DefaultFOV  float32 = 55.0
	MinFOV      float32 = 30.0
	MaxFOV      float32 = 110.0
	DefaultNear float32 = 1.0
	DefaultFar  float32 = 7000.0
)
