package paging

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/go-viewcam/pkg/scene"
)

// RefNum identifies a placed object
type RefNum uint32

// Object is a placed object that can be merged into chunks
type Object struct {
	Ref      RefNum
	Name     string
	Position mgl32.Vec3
	Radius   float32
}

// Chunk is a merged group of objects
type Chunk struct {
	ID   ChunkID
	Node *scene.Node

	objects []Object

	mutex    sync.RWMutex
	center   mgl32.Vec3
	radius   float32
	compiled bool
	done     chan struct{}
}

func newChunk(id ChunkID, objects []Object) *Chunk {
	c := &Chunk{
		ID:      id,
		Node:    scene.NewNode("Object Chunk"),
		objects: objects,
		done:    make(chan struct{}),
	}
	for _, o := range objects {
		n := scene.NewNode(o.Name)
		n.SetPosition(o.Position)
		c.Node.AddChild(n)
	}
	return c
}

// Refs returns the objects merged into the chunk
func (c *Chunk) Refs() []RefNum {
	refs := make([]RefNum, len(c.objects))
	for i, o := range c.objects {
		refs[i] = o.Ref
	}
	return refs
}

func (c *Chunk) has(ref RefNum) bool {
	for _, o := range c.objects {
		if o.Ref == ref {
			return true
		}
	}
	return false
}

// compile computes the bounding sphere and marks the chunk compiled
func (c *Chunk) compile() {
	center, radius := boundingSphere(c.objects)

	c.mutex.Lock()
	c.center = center
	c.radius = radius
	if !c.compiled {
		c.compiled = true
		close(c.done)
	}
	c.mutex.Unlock()
}

// Bound returns the bounding sphere. It is zero until the chunk is compiled.
func (c *Chunk) Bound() (center mgl32.Vec3, radius float32) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.center, c.radius
}

// Compiled reports whether the chunk has been compiled
func (c *Chunk) Compiled() bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.compiled
}

// Done is closed once the chunk is compiled
func (c *Chunk) Done() <-chan struct{} {
	return c.done
}

// boundingSphere returns a sphere around the centroid enclosing every object
func boundingSphere(objects []Object) (mgl32.Vec3, float32) {
	if len(objects) == 0 {
		return mgl32.Vec3{}, 0
	}

	var center mgl32.Vec3
	for _, o := range objects {
		center = center.Add(o.Position)
	}
	center = center.Mul(1 / float32(len(objects)))

	var radius float32
	for _, o := range objects {
		if r := o.Position.Sub(center).Len() + o.Radius; r > radius {
			radius = r
		}
	}
	return center, radius
}
