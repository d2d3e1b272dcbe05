package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

type fakeNode struct {
	world    mgl32.Mat4
	attached bool
	scale    mgl32.Vec3
}

func newFakeNode(x, y, z float32) *fakeNode {
	return &fakeNode{world: mgl32.Translate3D(x, y, z), attached: true, scale: mgl32.Vec3{1, 1, 1}}
}

func (n *fakeNode) WorldTransform() (mgl32.Mat4, bool) {
	return n.world, n.attached
}

func (n *fakeNode) Scale() mgl32.Vec3 {
	return n.scale
}

type fakeAnimation struct {
	ready    bool
	mode     AnimViewMode
	nodes    map[string]Node
	fpOffset mgl32.Vec3
}

func (a *fakeAnimation) UpperBodyReady() bool { return a.ready }

func (a *fakeAnimation) SetViewMode(mode AnimViewMode) { a.mode = mode }

func (a *fakeAnimation) NamedNode(name string) Node {
	if n, ok := a.nodes[name]; ok {
		return n
	}
	return nil
}

func (a *fakeAnimation) SetFirstPersonOffset(offset mgl32.Vec3) { a.fpOffset = offset }

type fakeWorld struct {
	exists    map[TargetID]bool
	actor     bool
	speed     float32
	draw      DrawState
	swimming  bool
	sideAngle map[TargetID]float32
	base      ScaledNode
}

func (w *fakeWorld) Exists(id TargetID) bool { return w.exists[id] }
func (w *fakeWorld) IsActor(TargetID) bool { return w.actor }
func (w *fakeWorld) Speed(TargetID) float32 { return w.speed }
func (w *fakeWorld) DrawState(TargetID) DrawState { return w.draw }
func (w *fakeWorld) IsSwimming(TargetID) bool { return w.swimming }
func (w *fakeWorld) BaseNode(TargetID) ScaledNode { return w.base }
func (w *fakeWorld) SetSideMovementAngle(id TargetID, angle float32) {
	w.sideAngle[id] = angle
}

type fakeRenderCamera struct {
	calls           int
	eye, center, up mgl32.Vec3
}

func (c *fakeRenderCamera) SetViewMatrixAsLookAt(eye, center, up mgl32.Vec3) {
	c.calls++
	c.eye, c.center, c.up = eye, center, up
}

type fakeHUD struct {
	gui       bool
	crosshair bool
}

func (h *fakeHUD) IsGuiMode() bool { return h.gui }
func (h *fakeHUD) ShowCrosshair(show bool) { h.crosshair = show }

const testTarget TargetID = 1

type fixture struct {
	ctrl  *Controller
	world *fakeWorld
	anim  *fakeAnimation
	base  *fakeNode
	head  *fakeNode
}

// newFixture returns a first person controller tracking an actor at the origin
func newFixture(options ...Option) *fixture {
	base := newFakeNode(0, 0, 0)
	head := newFakeNode(0, 0, 120)
	w := &fakeWorld{
		exists:    map[TargetID]bool{testTarget: true},
		actor:     true,
		sideAngle: map[TargetID]float32{testTarget: 1.5},
		base:      base,
	}
	a := &fakeAnimation{ready: true, nodes: map[string]Node{HeadNodeName: head}}

	options = append([]Option{WithAnimation(a)}, options...)
	ctrl := NewController(w, options...)
	ctrl.AttachTo(testTarget)
	return &fixture{ctrl: ctrl, world: w, anim: a, base: base, head: head}
}

// thirdPerson switches the fixture to third person
func (f *fixture) thirdPerson() *fixture {
	f.ctrl.ToggleViewMode(true)
	return f
}

func approx(a, b float32) bool {
	return math32.Abs(a-b) <= 1e-4
}

// approxVec compares component-wise with an absolute tolerance
func approxVec(a, b mgl32.Vec3, tol float32) bool {
	for i := range a {
		if math32.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}
