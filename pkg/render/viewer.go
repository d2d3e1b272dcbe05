// Package render runs the viewer window: it feeds input to the camera
// controller, advances the world and draws a debug view of what the camera sees.
package render

import (
	"fmt"
	"log"
	"math/rand"
	"openglhelper"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/go-viewcam/pkg/anim"
	"github.com/leterax/go-viewcam/pkg/camera"
	"github.com/leterax/go-viewcam/pkg/config"
	"github.com/leterax/go-viewcam/pkg/hud"
	"github.com/leterax/go-viewcam/pkg/input"
	"github.com/leterax/go-viewcam/pkg/network"
	"github.com/leterax/go-viewcam/pkg/paging"
	"github.com/leterax/go-viewcam/pkg/scene"
	"github.com/leterax/go-viewcam/pkg/world"
)

// Viewer owns the window, the world and the camera
type Viewer struct {
	window   *openglhelper.Window
	lines    *openglhelper.LineBatch
	settings config.Settings

	root       *scene.Node
	registry   *world.Registry
	animation  *anim.Animation
	hud        *hud.HUD
	controller *camera.Controller
	camera     *scene.Camera
	input      *input.Handler

	paging *paging.ObjectPaging
	chunk  *paging.Chunk
	stats  *paging.FrameStats

	client *network.Client
	mirror *network.Mirror

	player camera.TargetID
	base   *scene.Node

	// Settings reloads, drained on the frame goroutine
	updates <-chan config.Settings
	errs    <-chan error

	// Timing
	lastFrameTime float64
	frame         uint32
	lastSend      float64
}

// NewViewer creates the window and a world with a local player
func NewViewer(settings config.Settings, logger *log.Logger) (*Viewer, error) {
	ws := settings.Window
	window, err := openglhelper.NewWindow(ws.Width, ws.Height, ws.Title, ws.VSync)
	if err != nil {
		return nil, fmt.Errorf("render: create window: %w", err)
	}
	lines, err := openglhelper.NewLineBatch()
	if err != nil {
		window.Close()
		return nil, fmt.Errorf("render: create line batch: %w", err)
	}

	v := &Viewer{
		window:   window,
		lines:    lines,
		settings: settings,
		root:     scene.NewRoot("World"),
		registry: world.NewRegistry(),
		hud:      hud.New(),
		camera:   scene.NewCamera(),
		stats:    paging.NewFrameStats(),
	}
	v.camera.SetFOV(settings.Camera.FOV)
	v.camera.UpdateProjectionMatrix(ws.Width, ws.Height)
	window.OnResize = v.camera.UpdateProjectionMatrix

	v.spawnPlayer()

	options := append(settings.CameraOptions(),
		camera.WithAnimation(v.animation),
		camera.WithHUD(v.hud),
		camera.WithLogger(logger),
	)
	v.controller = camera.NewController(v.registry, options...)
	v.controller.AllowVanityMode(settings.Camera.AllowVanity)
	v.registry.Track(v.controller, v.player)

	v.input = input.NewHandler(v.controller, v.hud, settings.Input.MouseSensitivity, settings.Input.ZoomStep)
	v.input.OnNextTarget = v.nextTarget

	ps := settings.Paging
	if ps.Enabled {
		v.paging = paging.NewObjectPaging(ps.CellSize, ps.MinSize, ps.MergeFactor)
		v.scatterObjects(400)
	}

	window.SetMouseCaptured(true)
	return v, nil
}

// spawnPlayer creates the local actor with a small skeleton
func (v *Viewer) spawnPlayer() {
	v.base = scene.NewNode("Player")
	v.root.AddChild(v.base)

	skeleton := scene.NewNode("Bip01")
	head := scene.NewNode(camera.HeadNodeName)
	head.SetPosition(mgl32.Vec3{0, 0, camera.DefaultHeight - 4})
	eye := scene.NewNode(camera.CameraNodeName)
	eye.SetPosition(mgl32.Vec3{0, 4, 4})
	head.AddChild(eye)
	skeleton.AddChild(head)
	v.base.AddChild(skeleton)

	v.animation = anim.New(skeleton)
	v.player = v.registry.Spawn(world.Desc{Name: "Player", Actor: true, Base: v.base, Animation: v.animation})
}

// scatterObjects places n objects around the origin for the pager
func (v *Viewer) scatterObjects(n int) {
	r := rand.New(rand.NewSource(1))
	spread := v.settings.Paging.CellSize * v.settings.Paging.ChunkSize * 2
	for i := 0; i < n; i++ {
		v.paging.AddObject(paging.Object{
			Ref:      paging.RefNum(i + 1),
			Name:     fmt.Sprintf("Object %d", i+1),
			Position: mgl32.Vec3{(r.Float32()*2 - 1) * spread, (r.Float32()*2 - 1) * spread, 0},
			Radius:   10 + r.Float32()*200,
		})
	}
}

// Connect streams remote entities from the server at address
func (v *Viewer) Connect(address, name string) error {
	client, err := network.NewClient(address)
	if err != nil {
		return err
	}
	client.SetEntityName(name)
	if err := client.SendClientMetadata(); err != nil {
		client.Close()
		return err
	}

	v.client = client
	v.mirror = network.NewMirror(v.registry, v.root)
	v.mirror.Bind(client)

	go func() {
		if err := client.ProcessPackets(); err != nil {
			log.Printf("network: %v", err)
		}
	}()
	return nil
}

// ApplySettings pushes reloaded settings into the running viewer
func (v *Viewer) ApplySettings(s config.Settings) {
	v.settings = s
	s.Apply(v.controller)
	v.input.SetSensitivity(s.Input.MouseSensitivity)
	v.input.SetZoomStep(s.Input.ZoomStep)
	v.camera.SetFOV(s.Camera.FOV)
	log.Printf("render: settings applied")
}

// Watch applies settings from updates between frames
func (v *Viewer) Watch(updates <-chan config.Settings, errs <-chan error) {
	v.updates = updates
	v.errs = errs
}

// drainSettings applies the newest pending reload without blocking
func (v *Viewer) drainSettings() {
	select {
	case s, ok := <-v.updates:
		if ok {
			v.ApplySettings(s)
		}
	case err, ok := <-v.errs:
		if ok {
			log.Printf("config: %v", err)
		}
	default:
	}
}

// nextTarget cycles the camera through live actors
func (v *Viewer) nextTarget() {
	var actors []camera.TargetID
	for _, a := range v.registry.Actors() {
		if a.IsActor {
			actors = append(actors, a.ID)
		}
	}
	if len(actors) == 0 {
		return
	}

	next := actors[0]
	for i, id := range actors {
		if id == v.controller.TrackingTarget() {
			next = actors[(i+1)%len(actors)]
			break
		}
	}
	v.registry.Track(v.controller, next)
	log.Printf("render: tracking %d", next)
}

// frameInput converts window input into viewer actions
func (v *Viewer) frameInput() input.Frame {
	in := v.window.TakeInput()
	f := input.Frame{
		MouseDelta: in.CursorDelta,
		Scroll:     in.Scroll,
	}

	for _, k := range in.Keys {
		if k.Key == KeyEscape && k.Action == Press {
			v.window.SetShouldClose(true)
			continue
		}
		if k.Key == KeyCapture && k.Action == Press {
			v.window.SetMouseCaptured(!v.window.IsMouseCaptured())
			continue
		}
		if k.Key == KeyDrawWeap && k.Action == Press {
			state := camera.DrawWeapon
			if v.registry.DrawState(v.player) != camera.DrawNothing {
				state = camera.DrawNothing
			}
			v.registry.SetDrawState(v.player, state)
			// Drawing plays an upper body animation
			v.animation.PlayUpperBody(0.5)
			continue
		}
		if k.Key == KeySwim && k.Action == Press {
			v.registry.SetSwimming(v.player, !v.registry.IsSwimming(v.player))
			continue
		}

		action, ok := Bindings[k.Key]
		if !ok {
			continue
		}
		if k.Action == Press {
			f.Pressed = append(f.Pressed, action)
		} else if k.Action == Release {
			f.Released = append(f.Released, action)
		}
	}
	return f
}

// movePlayer walks the local player relative to the camera yaw
func (v *Viewer) movePlayer(dt float32) {
	var dir mgl32.Vec2
	if v.window.GetKeyState(KeyW) == Press {
		dir[1]++
	}
	if v.window.GetKeyState(KeyS) == Press {
		dir[1]--
	}
	if v.window.GetKeyState(KeyD) == Press {
		dir[0]++
	}
	if v.window.GetKeyState(KeyA) == Press {
		dir[0]--
	}

	speed := float32(0)
	if dir.LenSqr() > 0 && v.controller.TrackingTarget() == v.player && !v.input.Paused() {
		speed = WalkSpeed
		if v.window.GetKeyState(KeyRun) == Press {
			speed = RunSpeed
		}

		sin, cos := math32.Sincos(v.controller.Yaw())
		dir = dir.Normalize()
		// Forward is +Y rotated by yaw, right is +X rotated by yaw
		step := mgl32.Vec3{
			dir.X()*cos - dir.Y()*sin,
			dir.X()*sin + dir.Y()*cos,
			0,
		}.Mul(speed * dt)
		v.registry.SetPose(v.player, v.base.Position().Add(step), v.controller.Yaw())
	}
	v.registry.SetSpeed(v.player, speed)
}

// requestChunk pages in the object chunk around the eye
func (v *Viewer) requestChunk(eye mgl32.Vec3) {
	if v.paging == nil {
		return
	}
	size := v.settings.Paging.ChunkSize
	center := paging.ChunkCenter(paging.WorldToCell(eye, v.paging.CellSize()), size)
	chunk := v.paging.GetChunk(size, center, 0, 0, false, eye, true)
	if chunk == v.chunk {
		return
	}

	if v.chunk != nil {
		v.chunk.Node.Detach()
	}
	v.root.AddChild(chunk.Node)
	v.chunk = chunk
}

// update advances one frame
func (v *Viewer) update(dt float32) {
	v.drainSettings()
	v.input.Apply(v.frameInput())
	v.movePlayer(dt)

	if v.mirror != nil {
		v.mirror.Flush()
	}

	v.animation.Advance(dt)
	v.controller.Update(dt, v.input.Paused())
	v.controller.RecomputeCameraDistance()
	v.controller.UpdateCamera(v.camera)

	_, eye := v.controller.Position()
	v.requestChunk(eye)

	if v.paging != nil && v.frame%120 == 0 {
		v.paging.ReportStats(v.frame, v.stats)
		if n, ok := v.stats.Attribute("Object Chunk"); ok {
			log.Printf("render: frame %d, %v object chunks cached", v.frame, n)
		}
	}

	if v.client != nil {
		now := v.window.Time()
		if now-v.lastSend > 0.05 {
			v.lastSend = now
			if err := v.client.SendUpdateEntity(eye, v.controller.Yaw(), v.controller.Pitch()); err != nil {
				log.Printf("network: %v", err)
			}
		}
	}
}

// render draws the debug view
func (v *Viewer) render() {
	v.window.Clear(ClearColor)

	// Ground grid
	const extent, step = 4000, 200
	for x := float32(-extent); x <= extent; x += step {
		v.lines.Add(mgl32.Vec3{x, -extent, 0}, mgl32.Vec3{x, extent, 0}, GridColor)
		v.lines.Add(mgl32.Vec3{-extent, x, 0}, mgl32.Vec3{extent, x, 0}, GridColor)
	}

	// Actors as vertical posts, the tracked one highlighted
	for _, a := range v.registry.Actors() {
		if a.Base == nil {
			continue
		}
		if a.ID == v.player && v.controller.IsFirstPerson() {
			continue
		}
		pos, attached := a.Base.WorldPosition()
		if !attached {
			continue
		}
		color := ActorColor
		if a.ID == v.controller.TrackingTarget() {
			color = TargetColor
		}
		v.lines.Add(pos, pos.Add(mgl32.Vec3{0, 0, camera.DefaultHeight * a.Base.Scale().Z()}), color)
	}

	// Paged objects
	if v.chunk != nil {
		for _, n := range v.chunk.Node.Children() {
			p := n.Position()
			v.lines.Add(p, p.Add(mgl32.Vec3{0, 0, 50}), ObjectColor)
		}
		if center, radius := v.chunk.Bound(); radius > 0 {
			v.lines.Add(center.Sub(mgl32.Vec3{radius, 0, 0}), center.Add(mgl32.Vec3{radius, 0, 0}), ChunkColor)
			v.lines.Add(center.Sub(mgl32.Vec3{0, radius, 0}), center.Add(mgl32.Vec3{0, radius, 0}), ChunkColor)
		}
	}

	v.lines.Draw(v.camera.ProjectionMatrix().Mul4(v.camera.ViewMatrix()))

	// Crosshair in screen space
	width, height := v.window.Size()
	for _, s := range v.hud.Crosshair(width, height) {
		v.lines.Add(s.A.Vec3(0), s.B.Vec3(0), CrosshairColor)
	}
	v.lines.Draw(mgl32.Ortho(0, float32(width), float32(height), 0, -1, 1))
}

// Run starts the main loop
func (v *Viewer) Run() {
	v.lastFrameTime = v.window.Time()
	for !v.window.ShouldClose() {
		// Calculate delta time
		currentTime := v.window.Time()
		dt := float32(currentTime - v.lastFrameTime)
		v.lastFrameTime = currentTime

		v.window.PollEvents()
		v.update(dt)
		v.render()
		v.window.SwapBuffers()
		v.frame++
	}

	v.Cleanup()
}

// Cleanup frees all resources
func (v *Viewer) Cleanup() {
	if v.client != nil {
		v.client.Close()
	}
	if v.paging != nil {
		v.paging.Close()
	}
	v.lines.Delete()
	v.window.Close()
}
