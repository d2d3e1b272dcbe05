// Package network streams remote entities from a viewer server.
package network

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"net"
	"strings"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/go-viewcam/pkg/camera"
)

const (
	ServerPort = 20000
	NameLength = 64
)

// ClientBound packet IDs
const (
	PacketIDIdentification       uint8 = 0x00
	PacketIDAddEntity            uint8 = 0x01
	PacketIDRemoveEntity         uint8 = 0x02
	PacketIDUpdateEntity         uint8 = 0x03
	PacketIDUpdateEntityMetadata uint8 = 0x04
)

// ServerBound packet IDs
const (
	PacketIDUpdateViewer   uint8 = 0x00
	PacketIDClientMetadata uint8 = 0x01
)

// ErrConnectionClosed is returned by ProcessPackets when the server hangs up
var ErrConnectionClosed = errors.New("network: connection closed by server")

// EntityState is the packed state byte: bit 0 actor, bit 1 swimming, bits 2-3 draw state
type EntityState struct {
	Actor    bool
	Swimming bool
	Draw     camera.DrawState
}

// Encode packs the state into one byte
func (s EntityState) Encode() uint8 {
	var b uint8
	if s.Actor {
		b |= 1
	}
	if s.Swimming {
		b |= 1 << 1
	}
	b |= uint8(s.Draw&0x3) << 2
	return b
}

// DecodeEntityState unpacks a state byte
func DecodeEntityState(b uint8) EntityState {
	return EntityState{
		Actor:    b&1 != 0,
		Swimming: b&(1<<1) != 0,
		Draw:     camera.DrawState((b >> 2) & 0x3),
	}
}

// EntityPose is a remote entity's transform and movement state
type EntityPose struct {
	Position mgl32.Vec3
	Yaw      float32
	Speed    float32
	State    EntityState
}

// wirePose is the fixed size pose layout on the wire
type wirePose struct {
	X, Y, Z, Yaw, Speed float32
	State               uint8
}

func (w wirePose) pose() EntityPose {
	return EntityPose{
		Position: mgl32.Vec3{w.X, w.Y, w.Z},
		Yaw:      w.Yaw,
		Speed:    w.Speed,
		State:    DecodeEntityState(w.State),
	}
}

// Client streams remote entities from the server
type Client struct {
	conn       net.Conn
	writeMutex sync.Mutex
	entityID   uint32
	entityName string
	viewDist   uint8

	OnIdentify       func(entityID uint32)
	OnEntityAdd      func(entityID uint32, pose EntityPose, name string)
	OnEntityRemove   func(entityID uint32)
	OnEntityUpdate   func(entityID uint32, pose EntityPose)
	OnEntityMetadata func(entityID uint32, name string)
}

// NewClient creates a new client connected to the server at the given address
func NewClient(address string) (*Client, error) {
	if !strings.Contains(address, ":") {
		address = fmt.Sprintf("%s:%d", address, ServerPort)
	}

	conn, err := net.Dial("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("network: connect %s: %w", address, err)
	}

	return NewClientConn(conn), nil
}

// NewClientConn wraps an established connection
func NewClientConn(conn net.Conn) *Client {
	return &Client{
		conn:     conn,
		viewDist: 8, // Default view distance in chunks
	}
}

// Close closes the connection to the server
func (c *Client) Close() error {
	return c.conn.Close()
}

// EntityID returns the ID the server assigned to this client
func (c *Client) EntityID() uint32 {
	return c.entityID
}

// SetEntityName sets the name of the client's entity
func (c *Client) SetEntityName(name string) {
	c.entityName = name
}

// SetViewDistance sets the distance, in chunks, the server streams entities for
func (c *Client) SetViewDistance(distance uint8) {
	c.viewDist = distance
}

func (c *Client) write(packet []byte) error {
	c.writeMutex.Lock()
	defer c.writeMutex.Unlock()
	if _, err := c.conn.Write(packet); err != nil {
		return fmt.Errorf("network: write packet 0x%02x: %w", packet[0], err)
	}
	return nil
}

// SendClientMetadata sends the client metadata to the server
func (c *Client) SendClientMetadata() error {
	// Packet structure: id(U8) + viewDistance(U8) + name(U8[64])
	packet := make([]byte, 1+1+NameLength)
	packet[0] = PacketIDClientMetadata
	packet[1] = c.viewDist
	putName(packet[2:], c.entityName)

	return c.write(packet)
}

// SendUpdateEntity sends the viewer's eye position and orientation
func (c *Client) SendUpdateEntity(eye mgl32.Vec3, yaw, pitch float32) error {
	// Packet structure: id(U8) + x(F32) + y(F32) + z(F32) + yaw(F32) + pitch(F32)
	packet := make([]byte, 1, 1+4*5)
	packet[0] = PacketIDUpdateViewer
	for _, f := range []float32{eye.X(), eye.Y(), eye.Z(), yaw, pitch} {
		packet = binary.BigEndian.AppendUint32(packet, math.Float32bits(f))
	}

	return c.write(packet)
}

// ProcessPackets reads packets until the connection fails
func (c *Client) ProcessPackets() error {
	for {
		var packetID uint8
		if err := binary.Read(c.conn, binary.BigEndian, &packetID); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
				return ErrConnectionClosed
			}
			return fmt.Errorf("network: read packet ID: %w", err)
		}

		var err error
		switch packetID {
		case PacketIDIdentification:
			err = c.handleIdentification()
		case PacketIDAddEntity:
			err = c.handleAddEntity()
		case PacketIDRemoveEntity:
			err = c.handleRemoveEntity()
		case PacketIDUpdateEntity:
			err = c.handleUpdateEntity()
		case PacketIDUpdateEntityMetadata:
			err = c.handleUpdateEntityMetadata()
		default:
			err = fmt.Errorf("network: unknown packet ID: %d", packetID)
		}
		if err != nil {
			return err
		}
	}
}

func (c *Client) readID() (uint32, error) {
	var entityID uint32
	if err := binary.Read(c.conn, binary.BigEndian, &entityID); err != nil {
		return 0, fmt.Errorf("network: read entity ID: %w", err)
	}
	return entityID, nil
}

func (c *Client) readPose() (EntityPose, error) {
	var w wirePose
	if err := binary.Read(c.conn, binary.BigEndian, &w); err != nil {
		return EntityPose{}, fmt.Errorf("network: read pose: %w", err)
	}
	return w.pose(), nil
}

func (c *Client) readName() (string, error) {
	nameBytes := make([]byte, NameLength)
	if _, err := io.ReadFull(c.conn, nameBytes); err != nil {
		return "", fmt.Errorf("network: read name: %w", err)
	}

	// Extract null-terminated name
	name := string(nameBytes)
	if idx := strings.IndexByte(name, 0); idx >= 0 {
		name = name[:idx]
	}
	return name, nil
}

func (c *Client) handleIdentification() error {
	entityID, err := c.readID()
	if err != nil {
		return err
	}

	c.entityID = entityID
	if c.OnIdentify != nil {
		c.OnIdentify(entityID)
	}
	return nil
}

func (c *Client) handleAddEntity() error {
	entityID, err := c.readID()
	if err != nil {
		return err
	}
	pose, err := c.readPose()
	if err != nil {
		return err
	}
	name, err := c.readName()
	if err != nil {
		return err
	}

	if c.OnEntityAdd != nil {
		c.OnEntityAdd(entityID, pose, name)
	}
	return nil
}

func (c *Client) handleRemoveEntity() error {
	entityID, err := c.readID()
	if err != nil {
		return err
	}

	if c.OnEntityRemove != nil {
		c.OnEntityRemove(entityID)
	}
	return nil
}

func (c *Client) handleUpdateEntity() error {
	entityID, err := c.readID()
	if err != nil {
		return err
	}
	pose, err := c.readPose()
	if err != nil {
		return err
	}

	if c.OnEntityUpdate != nil {
		c.OnEntityUpdate(entityID, pose)
	}
	return nil
}

func (c *Client) handleUpdateEntityMetadata() error {
	entityID, err := c.readID()
	if err != nil {
		return err
	}
	name, err := c.readName()
	if err != nil {
		return err
	}

	if c.OnEntityMetadata != nil {
		c.OnEntityMetadata(entityID, name)
	}
	return nil
}

// putName copies name into dst, truncating or padding with zeros as needed
func putName(dst []byte, name string) {
	nameBytes := []byte(name)
	if len(nameBytes) > NameLength {
		nameBytes = nameBytes[:NameLength]
	}
	copy(dst, nameBytes)
}
