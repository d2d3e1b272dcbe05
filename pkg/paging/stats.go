package paging

import (
	"sync"
)

// Stats receives per-frame counters
type Stats interface {
	SetAttribute(frame uint32, name string, value float64)
}

// FrameStats keeps the latest value of each attribute
type FrameStats struct {
	mutex  sync.Mutex
	frame  uint32
	values map[string]float64
}

// NewFrameStats creates an empty stats sink
func NewFrameStats() *FrameStats {
	return &FrameStats{values: make(map[string]float64)}
}

// SetAttribute records value for name at frame
func (s *FrameStats) SetAttribute(frame uint32, name string, value float64) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.frame = frame
	s.values[name] = value
}

// Attribute returns the last value recorded for name
func (s *FrameStats) Attribute(name string) (float64, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	v, ok := s.values[name]
	return v, ok
}

// Frame returns the frame of the last recorded value
func (s *FrameStats) Frame() uint32 {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.frame
}
