// Package scene holds the transform hierarchy and the render camera that the
// camera controller writes into.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Node is a named transform node with a parent link and children.
// Nodes are not safe for concurrent use; they are owned by the frame loop.
type Node struct {
	name     string
	root     bool
	parent   *Node
	children []*Node

	position mgl32.Vec3
	rotation mgl32.Quat
	scale    mgl32.Vec3
}

// NewRoot creates a root node. Nodes below a root are attached.
func NewRoot(name string) *Node {
	n := NewNode(name)
	n.root = true
	return n
}

// NewNode creates a detached node with an identity transform
func NewNode(name string) *Node {
	return &Node{
		name:     name,
		rotation: mgl32.QuatIdent(),
		scale:    mgl32.Vec3{1, 1, 1},
	}
}

// Name returns the node name
func (n *Node) Name() string {
	return n.name
}

// Parent returns the parent node, or nil
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the direct children
func (n *Node) Children() []*Node {
	return n.children
}

// AddChild moves child under n, detaching it from its previous parent first
func (n *Node) AddChild(child *Node) {
	if child == nil || child == n {
		return
	}
	child.Detach()
	child.parent = n
	n.children = append(n.children, child)
}

// Detach removes n from its parent
func (n *Node) Detach() {
	p := n.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// Position returns the local translation
func (n *Node) Position() mgl32.Vec3 {
	return n.position
}

// SetPosition sets the local translation
func (n *Node) SetPosition(p mgl32.Vec3) {
	n.position = p
}

// Rotation returns the local rotation
func (n *Node) Rotation() mgl32.Quat {
	return n.rotation
}

// SetRotation sets the local rotation
func (n *Node) SetRotation(q mgl32.Quat) {
	n.rotation = q
}

// Scale returns the local scale
func (n *Node) Scale() mgl32.Vec3 {
	return n.scale
}

// SetScale sets the local scale
func (n *Node) SetScale(s mgl32.Vec3) {
	n.scale = s
}

// LocalTransform returns translation * rotation * scale
func (n *Node) LocalTransform() mgl32.Mat4 {
	t := mgl32.Translate3D(n.position.X(), n.position.Y(), n.position.Z())
	s := mgl32.Scale3D(n.scale.X(), n.scale.Y(), n.scale.Z())
	return t.Mul4(n.rotation.Mat4()).Mul4(s)
}

// WorldTransform composes local transforms up to the root. ok is false when
// the chain does not end in a root node.
func (n *Node) WorldTransform() (mgl32.Mat4, bool) {
	m := n.LocalTransform()
	top := n
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalTransform().Mul4(m)
		top = p
	}
	if !top.root {
		return mgl32.Ident4(), false
	}
	return m, true
}

// WorldPosition returns the translation part of the world transform
func (n *Node) WorldPosition() (mgl32.Vec3, bool) {
	m, ok := n.WorldTransform()
	return m.Col(3).Vec3(), ok
}

// Find returns the first node named name in a depth first walk starting at n,
// or nil
func (n *Node) Find(name string) *Node {
	if n.name == name {
		return n
	}
	for _, c := range n.children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// Walk visits n and every descendant depth first
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.Walk(fn)
	}
}
