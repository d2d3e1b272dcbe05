// Package world keeps the actors and objects the camera can track.
//
// Handles are generational: a despawned slot is reused with a new generation,
// so a stale handle held by the camera reports Exists() == false instead of
// aliasing the new occupant.
package world

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/go-viewcam/pkg/camera"
	"github.com/leterax/go-viewcam/pkg/scene"
)

// Desc describes a new entity
type Desc struct {
	Name  string
	Actor bool
	Base  *scene.Node
	Speed float32

	// Animation drives the entity's skeleton; nil for entities without one
	Animation camera.Animation
}

// Actor is a snapshot of one entity
type Actor struct {
	ID                camera.TargetID
	Name              string
	IsActor           bool
	Speed             float32
	Draw              camera.DrawState
	Swimming          bool
	SideMovementAngle float32
	Base              *scene.Node
	Animation         camera.Animation
}

type slot struct {
	generation uint32
	alive      bool
	actor      Actor
}

// Registry owns entities and implements camera.World.
// It is safe for concurrent use; network callbacks write from their own goroutine.
type Registry struct {
	slots []slot
	free  []uint32
	count int
	mutex sync.RWMutex
}

var _ camera.World = (*Registry)(nil)

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{}
}

// makeID packs a slot index and generation. Index 0 is stored as 1 so that no
// live handle equals camera.NoTarget.
func makeID(index, generation uint32) camera.TargetID {
	return camera.TargetID(uint64(generation)<<32 | uint64(index+1))
}

func splitID(id camera.TargetID) (index, generation uint32, ok bool) {
	low := uint32(id)
	if low == 0 {
		return 0, 0, false
	}
	return low - 1, uint32(uint64(id) >> 32), true
}

// lookup returns the live slot for id. Callers hold the mutex.
func (r *Registry) lookup(id camera.TargetID) *slot {
	index, generation, ok := splitID(id)
	if !ok || int(index) >= len(r.slots) {
		return nil
	}
	s := &r.slots[index]
	if !s.alive || s.generation != generation {
		return nil
	}
	return s
}

// Spawn adds an entity and returns its handle
func (r *Registry) Spawn(d Desc) camera.TargetID {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	var index uint32
	if n := len(r.free); n > 0 {
		index = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		index = uint32(len(r.slots))
		r.slots = append(r.slots, slot{})
	}

	s := &r.slots[index]
	s.generation++
	s.alive = true
	id := makeID(index, s.generation)
	s.actor = Actor{
		ID:      id,
		Name:    d.Name,
		IsActor: d.Actor,
		Speed:   d.Speed,
		Base:    d.Base,

		Animation: d.Animation,
	}
	r.count++
	return id
}

// Despawn removes an entity. It returns false for unknown or stale handles.
// The base node is detached from the scene.
func (r *Registry) Despawn(id camera.TargetID) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	s := r.lookup(id)
	if s == nil {
		return false
	}
	if s.actor.Base != nil {
		s.actor.Base.Detach()
	}
	s.alive = false
	s.actor = Actor{}
	index, _, _ := splitID(id)
	r.free = append(r.free, index)
	r.count--
	return true
}

// Len returns the number of live entities
func (r *Registry) Len() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.count
}

// Exists reports whether id refers to a live entity
func (r *Registry) Exists(id camera.TargetID) bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.lookup(id) != nil
}

// Actor returns a snapshot of the entity
func (r *Registry) Actor(id camera.TargetID) (Actor, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	s := r.lookup(id)
	if s == nil {
		return Actor{}, false
	}
	return s.actor, true
}

// FindByName returns the first live entity called name
func (r *Registry) FindByName(name string) (camera.TargetID, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	for i := range r.slots {
		if r.slots[i].alive && r.slots[i].actor.Name == name {
			return r.slots[i].actor.ID, true
		}
	}
	return camera.NoTarget, false
}

// Actors returns snapshots of all live entities in slot order
func (r *Registry) Actors() []Actor {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	actors := make([]Actor, 0, r.count)
	for i := range r.slots {
		if r.slots[i].alive {
			actors = append(actors, r.slots[i].actor)
		}
	}
	return actors
}

// Track points ctrl at id together with that entity's animation, so first
// person follows the new target's skeleton. Entities without an animation
// leave first person with no node to follow.
func (r *Registry) Track(ctrl *camera.Controller, id camera.TargetID) {
	var animation camera.Animation
	if a, ok := r.Actor(id); ok {
		animation = a.Animation
	}
	ctrl.SetAnimation(animation)
	ctrl.AttachTo(id)
}

// update runs fn on the live entity under the write lock
func (r *Registry) update(id camera.TargetID, fn func(a *Actor)) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	s := r.lookup(id)
	if s == nil {
		return false
	}
	fn(&s.actor)
	return true
}

// SetName renames the entity
func (r *Registry) SetName(id camera.TargetID, name string) bool {
	return r.update(id, func(a *Actor) { a.Name = name })
}

// SetSpeed sets the entity's current speed
func (r *Registry) SetSpeed(id camera.TargetID, speed float32) bool {
	return r.update(id, func(a *Actor) { a.Speed = speed })
}

// SetDrawState sets what the entity holds ready
func (r *Registry) SetDrawState(id camera.TargetID, state camera.DrawState) bool {
	return r.update(id, func(a *Actor) { a.Draw = state })
}

// SetSwimming sets the entity's swim state
func (r *Registry) SetSwimming(id camera.TargetID, swimming bool) bool {
	return r.update(id, func(a *Actor) { a.Swimming = swimming })
}

// SetBaseNode replaces the entity's base node
func (r *Registry) SetBaseNode(id camera.TargetID, n *scene.Node) bool {
	return r.update(id, func(a *Actor) { a.Base = n })
}

// SetPose moves the base node and turns it about Z
func (r *Registry) SetPose(id camera.TargetID, position mgl32.Vec3, yaw float32) bool {
	return r.update(id, func(a *Actor) {
		if a.Base == nil {
			return
		}
		a.Base.SetPosition(position)
		a.Base.SetRotation(mgl32.QuatRotate(yaw, mgl32.Vec3{0, 0, 1}))
	})
}

// IsActor reports whether the entity is an actor
func (r *Registry) IsActor(id camera.TargetID) bool {
	a, ok := r.Actor(id)
	return ok && a.IsActor
}

// Speed returns the entity's speed, zero for unknown handles
func (r *Registry) Speed(id camera.TargetID) float32 {
	a, _ := r.Actor(id)
	return a.Speed
}

// DrawState returns what the entity holds ready
func (r *Registry) DrawState(id camera.TargetID) camera.DrawState {
	a, _ := r.Actor(id)
	return a.Draw
}

// IsSwimming reports the entity's swim state
func (r *Registry) IsSwimming(id camera.TargetID) bool {
	a, _ := r.Actor(id)
	return a.Swimming
}

// SetSideMovementAngle stores the strafe angle the movement solver reads
func (r *Registry) SetSideMovementAngle(id camera.TargetID, angle float32) {
	r.update(id, func(a *Actor) { a.SideMovementAngle = angle })
}

// BaseNode returns the entity's base node, or nil
func (r *Registry) BaseNode(id camera.TargetID) camera.ScaledNode {
	a, ok := r.Actor(id)
	if !ok || a.Base == nil {
		return nil
	}
	return a.Base
}
