package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestWorldTransformComposes(t *testing.T) {
	root := NewRoot("root")
	root.SetPosition(mgl32.Vec3{10, 0, 0})

	body := NewNode("body")
	body.SetRotation(mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 0, 1}))
	body.SetScale(mgl32.Vec3{2, 2, 2})
	root.AddChild(body)

	head := NewNode("head")
	head.SetPosition(mgl32.Vec3{1, 0, 0})
	body.AddChild(head)

	pos, ok := head.WorldPosition()
	if !ok {
		t.Fatalf("head should be attached")
	}
	// (1,0,0) scaled by 2, rotated 90 degrees about Z, moved by 10 on X
	want := mgl32.Vec3{10, 2, 0}
	if pos.Sub(want).Len() > 1e-4 {
		t.Fatalf("world position: got %v, want %v", pos, want)
	}
}

func TestWorldTransformDetached(t *testing.T) {
	root := NewRoot("root")
	n := NewNode("child")
	root.AddChild(n)
	if _, ok := n.WorldTransform(); !ok {
		t.Fatalf("child of root should be attached")
	}

	n.Detach()
	if _, ok := n.WorldTransform(); ok {
		t.Fatalf("detached node reported attached")
	}
	if len(root.Children()) != 0 {
		t.Fatalf("detach left the child in its parent")
	}

	orphan := NewNode("orphan")
	if _, ok := orphan.WorldTransform(); ok {
		t.Fatalf("node without a root reported attached")
	}
}

func TestAddChildReparents(t *testing.T) {
	a := NewRoot("a")
	b := NewRoot("b")
	n := NewNode("n")

	a.AddChild(n)
	b.AddChild(n)
	if n.Parent() != b {
		t.Fatalf("parent not updated")
	}
	if len(a.Children()) != 0 || len(b.Children()) != 1 {
		t.Fatalf("children not moved: a=%d b=%d", len(a.Children()), len(b.Children()))
	}

	a.AddChild(a)
	if a.Parent() != nil {
		t.Fatalf("node added to itself")
	}
}

func TestFind(t *testing.T) {
	root := NewRoot("skeleton")
	spine := NewNode("Spine")
	head := NewNode("Head")
	cam := NewNode("Camera")
	root.AddChild(spine)
	spine.AddChild(head)
	head.AddChild(cam)

	cases := []struct {
		name string
		want *Node
	}{
		{"skeleton", root},
		{"Spine", spine},
		{"Head", head},
		{"Camera", cam},
		{"Tail", nil},
	}
	for _, c := range cases {
		if got := root.Find(c.name); got != c.want {
			t.Errorf("Find(%q): got %v, want %v", c.name, got, c.want)
		}
	}

	count := 0
	root.Walk(func(*Node) { count++ })
	if count != 4 {
		t.Fatalf("walk visited %d nodes, want 4", count)
	}
}
