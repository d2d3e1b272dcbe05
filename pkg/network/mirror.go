package network

import (
	"log"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/go-viewcam/pkg/camera"
	"github.com/leterax/go-viewcam/pkg/scene"
	"github.com/leterax/go-viewcam/pkg/world"
)

type eventKind int

const (
	eventAdd eventKind = iota
	eventRemove
	eventUpdate
	eventMetadata
)

// entityEvent is one network callback waiting to be applied
type entityEvent struct {
	kind     eventKind
	entityID uint32
	pose     EntityPose
	name     string
}

// Mirror copies remote entities into a world registry. Network callbacks only
// queue events; Flush applies them on the goroutine that owns the scene.
type Mirror struct {
	registry *world.Registry
	root     *scene.Node

	pending      []entityEvent
	pendingMutex sync.Mutex

	// Owned by the Flush goroutine
	targets map[uint32]camera.TargetID
}

// NewMirror creates a mirror that adds entity base nodes under root
func NewMirror(registry *world.Registry, root *scene.Node) *Mirror {
	return &Mirror{
		registry: registry,
		root:     root,
		targets:  make(map[uint32]camera.TargetID),
	}
}

// Bind installs the mirror's handlers on c
func (m *Mirror) Bind(c *Client) {
	c.OnEntityAdd = m.HandleEntityAdd
	c.OnEntityRemove = m.HandleEntityRemove
	c.OnEntityUpdate = m.HandleEntityUpdate
	c.OnEntityMetadata = m.HandleEntityMetadata
}

func (m *Mirror) queue(e entityEvent) {
	m.pendingMutex.Lock()
	m.pending = append(m.pending, e)
	m.pendingMutex.Unlock()
}

// HandleEntityAdd queues a new remote entity
func (m *Mirror) HandleEntityAdd(entityID uint32, pose EntityPose, name string) {
	m.queue(entityEvent{kind: eventAdd, entityID: entityID, pose: pose, name: name})
}

// HandleEntityRemove queues a removal
func (m *Mirror) HandleEntityRemove(entityID uint32) {
	m.queue(entityEvent{kind: eventRemove, entityID: entityID})
}

// HandleEntityUpdate queues a pose update
func (m *Mirror) HandleEntityUpdate(entityID uint32, pose EntityPose) {
	m.queue(entityEvent{kind: eventUpdate, entityID: entityID, pose: pose})
}

// HandleEntityMetadata queues a rename
func (m *Mirror) HandleEntityMetadata(entityID uint32, name string) {
	m.queue(entityEvent{kind: eventMetadata, entityID: entityID, name: name})
}

// Flush applies queued events in arrival order and returns how many were applied
func (m *Mirror) Flush() int {
	m.pendingMutex.Lock()
	events := m.pending
	m.pending = nil
	m.pendingMutex.Unlock()

	for _, e := range events {
		switch e.kind {
		case eventAdd:
			m.add(e)
		case eventRemove:
			if id, ok := m.targets[e.entityID]; ok {
				m.registry.Despawn(id)
				delete(m.targets, e.entityID)
			}
		case eventUpdate:
			if id, ok := m.targets[e.entityID]; ok {
				m.applyPose(id, e.pose)
			}
		case eventMetadata:
			if id, ok := m.targets[e.entityID]; ok {
				m.registry.SetName(id, e.name)
			}
		}
	}
	return len(events)
}

func (m *Mirror) add(e entityEvent) {
	// A repeated add replaces the previous entity
	if old, ok := m.targets[e.entityID]; ok {
		m.registry.Despawn(old)
	}

	base := scene.NewNode(e.name)
	if m.root != nil {
		m.root.AddChild(base)
	}
	id := m.registry.Spawn(world.Desc{Name: e.name, Actor: e.pose.State.Actor, Base: base})
	m.targets[e.entityID] = id
	m.applyPose(id, e.pose)
	log.Printf("network: entity %d (%s) mirrored as %d", e.entityID, e.name, id)
}

func (m *Mirror) applyPose(id camera.TargetID, pose EntityPose) {
	m.registry.SetPose(id, pose.Position, pose.Yaw)
	m.registry.SetSpeed(id, pose.Speed)
	m.registry.SetSwimming(id, pose.State.Swimming)
	m.registry.SetDrawState(id, pose.State.Draw)
}

// Target returns the registry handle for a remote entity
func (m *Mirror) Target(entityID uint32) (camera.TargetID, bool) {
	id, ok := m.targets[entityID]
	return id, ok
}

// Position returns the current base position of a remote entity
func (m *Mirror) Position(entityID uint32) (mgl32.Vec3, bool) {
	id, ok := m.targets[entityID]
	if !ok {
		return mgl32.Vec3{}, false
	}
	a, ok := m.registry.Actor(id)
	if !ok || a.Base == nil {
		return mgl32.Vec3{}, false
	}
	return a.Base.Position(), true
}
