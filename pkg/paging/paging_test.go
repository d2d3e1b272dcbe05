package paging

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

const testCell = 100

func newTestPaging(t *testing.T) *ObjectPaging {
	p := NewObjectPaging(testCell, DefaultMinSize, DefaultMergeFactor)
	t.Cleanup(p.Close)

	p.AddObject(Object{Ref: 1, Name: "rock", Position: mgl32.Vec3{10, 10, 0}, Radius: 5})
	p.AddObject(Object{Ref: 2, Name: "tree", Position: mgl32.Vec3{90, 50, 0}, Radius: 20})
	p.AddObject(Object{Ref: 3, Name: "far_tree", Position: mgl32.Vec3{150, 50, 0}, Radius: 20})
	p.AddObject(Object{Ref: 4, Name: "pebble", Position: mgl32.Vec3{50, 99, 0}, Radius: 0.1})
	return p
}

func hasRefs(c *Chunk, want ...RefNum) bool {
	got := c.Refs()
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestChunkCenter(t *testing.T) {
	cases := []struct {
		cell mgl32.Vec2
		size float32
		want mgl32.Vec2
	}{
		{mgl32.Vec2{0.2, 0.7}, 1, mgl32.Vec2{0.5, 0.5}},
		{mgl32.Vec2{-0.2, 1.5}, 1, mgl32.Vec2{-0.5, 1.5}},
		{mgl32.Vec2{3, -3}, 2, mgl32.Vec2{3, -3}},
	}
	for _, c := range cases {
		if got := ChunkCenter(c.cell, c.size); got != c.want {
			t.Errorf("ChunkCenter(%v, %v): got %v, want %v", c.cell, c.size, got, c.want)
		}
	}

	id := ChunkID{Center: mgl32.Vec2{0.5, 0.5}, Size: 1}
	if !id.Contains(mgl32.Vec2{0, 0}) || id.Contains(mgl32.Vec2{1, 0.5}) {
		t.Fatalf("chunk square should be half-open")
	}
}

func TestCreateChunkSelectsObjects(t *testing.T) {
	p := newTestPaging(t)
	center := mgl32.Vec2{0.5, 0.5}

	c := p.CreateChunk(1, center, false, mgl32.Vec3{}, false)
	if !hasRefs(c, 1, 2, 4) {
		t.Fatalf("near chunk refs: got %v", c.Refs())
	}
	if len(c.Node.Children()) != 3 {
		t.Fatalf("chunk node children: got %d", len(c.Node.Children()))
	}
	if p.CachedChunks() != 0 {
		t.Fatalf("CreateChunk should not cache")
	}

	// The pebble is tiny and far from the view point
	c = p.CreateChunk(1, center, true, mgl32.Vec3{}, false)
	if !hasRefs(c, 1, 2) {
		t.Fatalf("far chunk refs: got %v", c.Refs())
	}
}

func TestGetChunkCaches(t *testing.T) {
	p := newTestPaging(t)
	center := mgl32.Vec2{0.5, 0.5}

	a := p.GetChunk(1, center, 0, 0, false, mgl32.Vec3{}, false)
	b := p.GetChunk(1, center, 0, 0, false, mgl32.Vec3{}, false)
	if a != b {
		t.Fatalf("second request rebuilt the chunk")
	}
	p.GetChunk(2, center, 0, 0, false, mgl32.Vec3{}, false)
	if p.CachedChunks() != 2 {
		t.Fatalf("cached chunks: got %d, want 2", p.CachedChunks())
	}

	stats := NewFrameStats()
	p.ReportStats(7, stats)
	if v, ok := stats.Attribute("Object Chunk"); !ok || v != 2 || stats.Frame() != 7 {
		t.Fatalf("stats: got %v %t frame %d", v, ok, stats.Frame())
	}

	p.Clear()
	if p.CachedChunks() != 0 {
		t.Fatalf("clear left %d chunks", p.CachedChunks())
	}
}

func TestEnableObjectEvicts(t *testing.T) {
	p := newTestPaging(t)
	center := mgl32.Vec2{0.5, 0.5}
	other := mgl32.Vec2{1.5, 0.5}

	p.GetChunk(1, center, 0, 0, false, mgl32.Vec3{}, false)
	p.GetChunk(1, other, 0, 0, false, mgl32.Vec3{}, false)

	p.EnableObject(2, false)
	if p.CachedChunks() != 1 {
		t.Fatalf("only the chunk holding the object should be evicted, cached=%d", p.CachedChunks())
	}
	c := p.GetChunk(1, center, 0, 0, false, mgl32.Vec3{}, false)
	if !hasRefs(c, 1, 4) {
		t.Fatalf("disabled object still merged: %v", c.Refs())
	}

	p.EnableObject(2, true)
	c = p.GetChunk(1, center, 0, 0, false, mgl32.Vec3{}, false)
	if !hasRefs(c, 1, 2, 4) {
		t.Fatalf("re-enabled object missing: %v", c.Refs())
	}
}

func TestCompileWorker(t *testing.T) {
	p := newTestPaging(t)

	c := p.GetChunk(1, mgl32.Vec2{1.5, 0.5}, 0, 0, false, mgl32.Vec3{}, true)
	select {
	case <-c.Done():
	case <-time.After(2 * time.Second):
		t.Fatalf("chunk not compiled")
	}
	if !c.Compiled() {
		t.Fatalf("done closed before compiled was set")
	}
	center, radius := c.Bound()
	if center != (mgl32.Vec3{150, 50, 0}) || radius != 20 {
		t.Fatalf("bound: got %v %v", center, radius)
	}

	p.Close()
	// Requests after close compile in place
	c = p.CreateChunk(1, mgl32.Vec2{0.5, 0.5}, false, mgl32.Vec3{}, true)
	select {
	case <-c.Done():
	default:
		t.Fatalf("chunk requested after close never completes")
	}
}

func TestCloseCompilesQueuedChunks(t *testing.T) {
	// No worker yet, so the chunks stay queued
	p := &ObjectPaging{
		cellSize:      testCell,
		mergeFactor:   DefaultMergeFactor,
		disabled:      make(map[RefNum]struct{}),
		chunks:        make(map[ChunkID]*Chunk),
		compileQueue:  make(chan *Chunk, 4),
		stopWorker:    make(chan struct{}),
		workerStopped: make(chan struct{}),
	}
	p.AddObject(Object{Ref: 1, Position: mgl32.Vec3{10, 10, 0}, Radius: 5})

	var queued []*Chunk
	for i := 0; i < 4; i++ {
		center := mgl32.Vec2{float32(i) + 0.5, 0.5}
		queued = append(queued, p.CreateChunk(1, center, false, mgl32.Vec3{}, true))
	}

	go p.compileWorker()
	p.Close()

	for i, c := range queued {
		select {
		case <-c.Done():
		default:
			t.Fatalf("queued chunk %d left uncompiled after Close", i)
		}
	}
}
