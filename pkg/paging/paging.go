// Package paging merges placed objects into cached chunks around the viewer.
package paging

import (
	"log"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// Defaults for the size cull applied to far chunks
const (
	DefaultMinSize     float32 = 0.01
	DefaultMergeFactor float32 = 0.25
	DefaultCellSize    float32 = 8192
)

// ObjectPaging builds and caches object chunks. A background worker compiles
// chunks requested with compile=true.
type ObjectPaging struct {
	cellSize    float32
	minSize     float32
	mergeFactor float32

	objects      []Object
	objectsMutex sync.RWMutex

	disabled      map[RefNum]struct{}
	disabledMutex sync.RWMutex

	chunks      map[ChunkID]*Chunk
	chunksMutex sync.Mutex

	compileQueue  chan *Chunk
	stopWorker    chan struct{}
	workerStopped chan struct{}
	closeOnce     sync.Once
	closeMutex    sync.RWMutex
	closed        bool
}

// NewObjectPaging creates a pager and starts its compile worker
func NewObjectPaging(cellSize, minSize, mergeFactor float32) *ObjectPaging {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	if mergeFactor <= 0 {
		mergeFactor = DefaultMergeFactor
	}
	p := &ObjectPaging{
		cellSize:      cellSize,
		minSize:       minSize,
		mergeFactor:   mergeFactor,
		disabled:      make(map[RefNum]struct{}),
		chunks:        make(map[ChunkID]*Chunk),
		compileQueue:  make(chan *Chunk, 100), // Buffer for 100 compile jobs
		stopWorker:    make(chan struct{}),
		workerStopped: make(chan struct{}),
	}

	go p.compileWorker()

	return p
}

// CellSize returns the world size of one cell
func (p *ObjectPaging) CellSize() float32 {
	return p.cellSize
}

// AddObject registers a placed object. Cached chunks are not rebuilt.
func (p *ObjectPaging) AddObject(o Object) {
	p.objectsMutex.Lock()
	p.objects = append(p.objects, o)
	p.objectsMutex.Unlock()
}

// GetChunk returns the cached chunk for (size, center) or creates it.
// lod and lodFlags are accepted for the terrain chunk manager contract; object
// chunks have a single level of detail.
func (p *ObjectPaging) GetChunk(size float32, center mgl32.Vec2, lod uint8, lodFlags uint32, far bool, viewPoint mgl32.Vec3, compile bool) *Chunk {
	id := ChunkID{Center: center, Size: size}

	p.chunksMutex.Lock()
	if c, ok := p.chunks[id]; ok {
		p.chunksMutex.Unlock()
		return c
	}
	p.chunksMutex.Unlock()

	c := p.CreateChunk(size, center, far, viewPoint, compile)

	p.chunksMutex.Lock()
	defer p.chunksMutex.Unlock()
	// Another caller may have built the same chunk meanwhile
	if existing, ok := p.chunks[id]; ok {
		return existing
	}
	p.chunks[id] = c
	return c
}

// CreateChunk merges every enabled object inside the chunk square into a new
// chunk without caching it
func (p *ObjectPaging) CreateChunk(size float32, center mgl32.Vec2, far bool, viewPoint mgl32.Vec3, compile bool) *Chunk {
	id := ChunkID{Center: center, Size: size}

	p.objectsMutex.RLock()
	candidates := make([]Object, 0, len(p.objects))
	for _, o := range p.objects {
		if id.Contains(WorldToCell(o.Position, p.cellSize)) {
			candidates = append(candidates, o)
		}
	}
	p.objectsMutex.RUnlock()

	p.disabledMutex.RLock()
	selected := candidates[:0]
	for _, o := range candidates {
		if _, off := p.disabled[o.Ref]; off {
			continue
		}
		if far && p.tooSmall(o, viewPoint) {
			continue
		}
		selected = append(selected, o)
	}
	p.disabledMutex.RUnlock()

	c := newChunk(id, selected)
	if compile {
		p.queueCompile(c)
	}
	return c
}

// tooSmall reports whether o covers too small an angle from viewPoint
func (p *ObjectPaging) tooSmall(o Object, viewPoint mgl32.Vec3) bool {
	dist := o.Position.Sub(viewPoint).Len()
	if dist <= o.Radius {
		return false
	}
	return o.Radius/dist < p.minSize/p.mergeFactor
}

// queueCompile hands c to the worker, or compiles it in place once the pager
// is closed
func (p *ObjectPaging) queueCompile(c *Chunk) {
	p.closeMutex.RLock()
	defer p.closeMutex.RUnlock()

	if p.closed {
		c.compile()
		return
	}
	p.compileQueue <- c
}

// compileWorker compiles chunks in the background
func (p *ObjectPaging) compileWorker() {
	defer close(p.workerStopped)

	for {
		select {
		case <-p.stopWorker:
			p.drainCompileQueue()
			return
		case c := <-p.compileQueue:
			c.compile()
		}
	}
}

// drainCompileQueue compiles whatever was queued before Close
func (p *ObjectPaging) drainCompileQueue() {
	for {
		select {
		case c := <-p.compileQueue:
			c.compile()
		default:
			return
		}
	}
}

// EnableObject enables or disables an object and evicts cached chunks that
// contain it
func (p *ObjectPaging) EnableObject(ref RefNum, enabled bool) {
	p.disabledMutex.Lock()
	if enabled {
		delete(p.disabled, ref)
	} else {
		p.disabled[ref] = struct{}{}
	}
	p.disabledMutex.Unlock()

	p.chunksMutex.Lock()
	defer p.chunksMutex.Unlock()
	for id, c := range p.chunks {
		if c.has(ref) || (enabled && p.mayContain(id, ref)) {
			delete(p.chunks, id)
		}
	}
}

// mayContain reports whether ref lies inside chunk id, for re-enabled objects
// that cached chunks skipped
func (p *ObjectPaging) mayContain(id ChunkID, ref RefNum) bool {
	p.objectsMutex.RLock()
	defer p.objectsMutex.RUnlock()
	for _, o := range p.objects {
		if o.Ref == ref && id.Contains(WorldToCell(o.Position, p.cellSize)) {
			return true
		}
	}
	return false
}

// Clear drops every cached chunk
func (p *ObjectPaging) Clear() {
	p.chunksMutex.Lock()
	p.chunks = make(map[ChunkID]*Chunk)
	p.chunksMutex.Unlock()
}

// CachedChunks returns the number of cached chunks
func (p *ObjectPaging) CachedChunks() int {
	p.chunksMutex.Lock()
	defer p.chunksMutex.Unlock()
	return len(p.chunks)
}

// ReportStats writes the cached chunk count as "Object Chunk"
func (p *ObjectPaging) ReportStats(frame uint32, stats Stats) {
	stats.SetAttribute(frame, "Object Chunk", float64(p.CachedChunks()))
}

// Close stops the compile worker. Chunks still queued are compiled first, and
// later requests compile on the calling goroutine.
func (p *ObjectPaging) Close() {
	p.closeOnce.Do(func() {
		p.closeMutex.Lock()
		p.closed = true
		close(p.stopWorker)
		p.closeMutex.Unlock()
		<-p.workerStopped
		log.Printf("paging: compile worker stopped")
	})
}
