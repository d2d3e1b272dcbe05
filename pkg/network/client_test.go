package network

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
	"net"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/go-viewcam/pkg/camera"
)

// packet builds a clientbound packet
type packet []byte

func newPacket(id uint8) packet { return packet{id} }

func (p packet) u32(v uint32) packet { return binary.BigEndian.AppendUint32(p, v) }

func (p packet) f32(v float32) packet { return p.u32(math.Float32bits(v)) }

func (p packet) pose(pose EntityPose) packet {
	p = p.f32(pose.Position.X()).f32(pose.Position.Y()).f32(pose.Position.Z())
	p = p.f32(pose.Yaw).f32(pose.Speed)
	return append(p, pose.State.Encode())
}

func (p packet) name(name string) packet {
	b := make([]byte, NameLength)
	putName(b, name)
	return append(p, b...)
}

func TestEntityStateRoundTrip(t *testing.T) {
	states := []EntityState{
		{},
		{Actor: true},
		{Swimming: true},
		{Actor: true, Swimming: true, Draw: camera.DrawSpell},
		{Actor: true, Draw: camera.DrawWeapon},
	}
	for _, s := range states {
		if got := DecodeEntityState(s.Encode()); got != s {
			t.Errorf("state %+v decoded as %+v", s, got)
		}
	}
}

func TestProcessPackets(t *testing.T) {
	server, conn := net.Pipe()
	client := NewClientConn(conn)

	type added struct {
		id   uint32
		pose EntityPose
		name string
	}
	adds := make(chan added, 1)
	updates := make(chan EntityPose, 1)
	removes := make(chan uint32, 1)
	names := make(chan string, 1)
	client.OnEntityAdd = func(id uint32, pose EntityPose, name string) { adds <- added{id, pose, name} }
	client.OnEntityUpdate = func(id uint32, pose EntityPose) { updates <- pose }
	client.OnEntityRemove = func(id uint32) { removes <- id }
	client.OnEntityMetadata = func(id uint32, name string) { names <- name }

	done := make(chan error, 1)
	go func() { done <- client.ProcessPackets() }()

	pose := EntityPose{
		Position: mgl32.Vec3{1, 2, 3},
		Yaw:      0.5,
		Speed:    120,
		State:    EntityState{Actor: true, Draw: camera.DrawWeapon},
	}
	packets := []packet{
		newPacket(PacketIDIdentification).u32(42),
		newPacket(PacketIDAddEntity).u32(7).pose(pose).name("guard"),
		newPacket(PacketIDUpdateEntity).u32(7).pose(EntityPose{Speed: 10}),
		newPacket(PacketIDUpdateEntityMetadata).u32(7).name("captain"),
		newPacket(PacketIDRemoveEntity).u32(7),
	}
	for _, p := range packets {
		if _, err := server.Write(p); err != nil {
			t.Fatalf("server write: %v", err)
		}
	}

	a := <-adds
	if a.id != 7 || a.pose != pose || a.name != "guard" {
		t.Fatalf("add: got %+v", a)
	}
	if u := <-updates; u.Speed != 10 {
		t.Fatalf("update: got %+v", u)
	}
	if n := <-names; n != "captain" {
		t.Fatalf("metadata: got %q", n)
	}
	if id := <-removes; id != 7 {
		t.Fatalf("remove: got %d", id)
	}

	server.Close()
	select {
	case err := <-done:
		if !errors.Is(err, ErrConnectionClosed) {
			t.Fatalf("ProcessPackets: got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("ProcessPackets did not return")
	}
	if client.EntityID() != 42 {
		t.Fatalf("entity ID: got %d", client.EntityID())
	}
}

func TestUnknownPacket(t *testing.T) {
	server, conn := net.Pipe()
	defer server.Close()
	client := NewClientConn(conn)

	done := make(chan error, 1)
	go func() { done <- client.ProcessPackets() }()
	server.Write([]byte{0xff})

	select {
	case err := <-done:
		if err == nil || errors.Is(err, ErrConnectionClosed) {
			t.Fatalf("expected unknown packet error, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("ProcessPackets did not return")
	}
}

func TestSendPackets(t *testing.T) {
	server, conn := net.Pipe()
	defer server.Close()
	client := NewClientConn(conn)
	client.SetEntityName("viewer")
	client.SetViewDistance(4)

	errs := make(chan error, 2)
	go func() {
		errs <- client.SendClientMetadata()
		errs <- client.SendUpdateEntity(mgl32.Vec3{1, 2, 3}, 0.25, -0.5)
	}()

	meta := make([]byte, 2+NameLength)
	if _, err := io.ReadFull(server, meta); err != nil {
		t.Fatalf("read metadata: %v", err)
	}
	if meta[0] != PacketIDClientMetadata || meta[1] != 4 || string(meta[2:8]) != "viewer" || meta[8] != 0 {
		t.Fatalf("metadata packet: %v", meta[:10])
	}

	update := make([]byte, 1+4*5)
	if _, err := io.ReadFull(server, update); err != nil {
		t.Fatalf("read update: %v", err)
	}
	if update[0] != PacketIDUpdateViewer {
		t.Fatalf("update packet ID: %d", update[0])
	}
	want := []float32{1, 2, 3, 0.25, -0.5}
	for i, w := range want {
		got := math.Float32frombits(binary.BigEndian.Uint32(update[1+4*i:]))
		if got != w {
			t.Fatalf("update field %d: got %v, want %v", i, got, w)
		}
	}

	for i := 0; i < 2; i++ {
		if err := <-errs; err != nil {
			t.Fatalf("send: %v", err)
		}
	}
}
