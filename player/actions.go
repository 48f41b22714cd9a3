package player

import (
	"sync"

	"github.com/voxelbot/headlessclient/protocol"
)

// Packet ids for the play-phase, server-bound actions a Player can issue.
const (
	packetTeleportConfirm    = 0x00
	packetChatCommand        = 0x05
	packetChatMessage        = 0x07
	packetChunkBatchReceived = 0x09
	packetClientCommand      = 0x0a
	packetInteract           = 0x18
	packetKeepAlive          = 0x1a
	packetSetPlayerPosRot    = 0x1d
	packetSwingArm           = 0x36
)

// interactTypeAttack is the interact packet's "type" varint for an attack,
// as opposed to an interact-without-sneaking or interact-at.
const interactTypeAttack = 1

// mainHand is the hand varint used for swing_arm and interact: this client
// never equips or swaps to the off hand.
const mainHand = 0

// clientCommandRespawn is the client_command action id that requests a
// respawn after death.
const clientCommandRespawn = 0

// Actions serializes every outbound play-phase packet a Player can send.
// Every method holds writeMu for the duration of the socket write, the
// single exclusive writer the connection's concurrency model requires.
type Actions struct {
	conn    *protocol.Conn
	writeMu *sync.Mutex
}

// NewActions builds an Actions bound to conn, serialized through writeMu.
// writeMu is shared with anything else writing to the same connection so
// that C->S packets stay globally ordered.
func NewActions(conn *protocol.Conn, writeMu *sync.Mutex) *Actions {
	return &Actions{conn: conn, writeMu: writeMu}
}

func (a *Actions) send(f *protocol.Frame) error {
	a.writeMu.Lock()
	defer a.writeMu.Unlock()
	return a.conn.WriteFrame(f)
}

// Chat sends a public chat message with no signature.
func (a *Actions) Chat(message string) error {
	f := protocol.NewFrame(packetChatMessage,
		protocol.String(message),
		protocol.Long(0),       // timestamp
		protocol.Long(0),       // salt
		protocol.Boolean(false), // has_signature
		protocol.VarInt(0),      // message count
	)
	_, _ = f.Data.Write(make([]byte, 3)) // acknowledged bitset, always zero
	return a.send(f)
}

// Respawn issues the client_command respawn action, used after death.
func (a *Actions) Respawn() error {
	f := protocol.NewFrame(packetClientCommand, protocol.VarInt(clientCommandRespawn))
	return a.send(f)
}

// ConfirmTeleport acknowledges a server-initiated teleport_entity packet.
func (a *Actions) ConfirmTeleport(teleportID int32) error {
	f := protocol.NewFrame(packetTeleportConfirm, protocol.VarInt(teleportID))
	return a.send(f)
}

// AckChunkBatch replies to chunk_batch_finished with the client's desired
// processing rate.
func (a *Actions) AckChunkBatch(chunksPerTick float32) error {
	f := protocol.NewFrame(packetChunkBatchReceived, protocol.Float(chunksPerTick))
	return a.send(f)
}

// EchoKeepAlive replies to a server keep-alive probe with the same id.
func (a *Actions) EchoKeepAlive(id int64) error {
	f := protocol.NewFrame(packetKeepAlive, protocol.Long(id))
	return a.send(f)
}

// Swing swings the main hand, the client-side half of an attack or a bare
// arm animation.
func (a *Actions) Swing() error {
	f := protocol.NewFrame(packetSwingArm, protocol.VarInt(mainHand))
	return a.send(f)
}

// Attack interacts with entityID as an attack: a swing_arm is expected to
// precede it on a real client, but the protocol doesn't require ordering
// between the two packets.
func (a *Actions) Attack(entityID int32) error {
	f := protocol.NewFrame(packetInteract,
		protocol.VarInt(entityID),
		protocol.VarInt(interactTypeAttack),
		protocol.Boolean(false), // sneaking
	)
	return a.send(f)
}

// Move sends an absolute position-and-rotation update.
func (a *Actions) Move(pos Vector3, yaw, pitch float32, onGround bool) error {
	f := protocol.NewFrame(packetSetPlayerPosRot,
		protocol.Double(pos.X), protocol.Double(pos.Y), protocol.Double(pos.Z),
		protocol.Float(yaw), protocol.Float(pitch),
		protocol.Boolean(onGround),
	)
	return a.send(f)
}

// Command sends a raw chat command (without the leading slash).
func (a *Actions) Command(text string) error {
	f := protocol.NewFrame(packetChatCommand,
		protocol.String(text),
		protocol.Long(0),       // timestamp
		protocol.Long(0),       // salt
		protocol.VarInt(0),     // argument signature count
		protocol.VarInt(0),     // message count
	)
	_, _ = f.Data.Write(make([]byte, 3)) // acknowledged bitset
	return a.send(f)
}
