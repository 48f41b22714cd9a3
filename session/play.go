package session

import (
	"log"

	"github.com/voxelbot/headlessclient/chunk"
	"github.com/voxelbot/headlessclient/nbt"
	"github.com/voxelbot/headlessclient/player"
	"github.com/voxelbot/headlessclient/protocol"
	"github.com/voxelbot/headlessclient/registry"
)

// Play (S->C) packet ids this dispatcher recognizes.
const (
	playBundleDelimiter       = 0x00
	playAddEntity             = 0x01
	playBlockUpdate           = 0x09
	playChunkBatchStart       = 0x0d
	playChunkBatchFinished    = 0x0c
	playDisconnect            = 0x1d
	playMoveEntity            = 0x20
	playForgetLevelChunk      = 0x22
	playKeepAlive             = 0x27
	playLevelChunkWithLight   = 0x28
	playEntityLogin           = 0x2c
	playTeleportEntity        = 0x42
	playSetChunkCacheCenter   = 0x58
	playSetHealth             = 0x62
)

// chunksPerTick is this client's requested chunk processing rate, sent in
// reply to every chunk_batch_finished.
const chunksPerTick = 9

// Dispatcher handles every S->C play-phase frame, mutating a Player and
// issuing the replies the protocol requires before the next frame may be
// processed (keep-alive echo, teleport confirm, chunk-batch ack).
type Dispatcher struct {
	Player  *player.Player
	Actions *player.Actions
	Blocks  *registry.Blocks
	Packets *registry.Packets
	Logger  *log.Logger
}

// Dispatch handles one S->C play-phase frame. It returns *Disconnected for
// a server-initiated disconnect, and swallows unrecognized ids after
// logging them, matching the FSM's non-fatal-unknown-packet contract.
func (d *Dispatcher) Dispatch(f *protocol.Frame) error {
	if d.Logger != nil {
		d.Logger.Printf("S->C play: %s", d.Packets.NameOf("play", "clientbound", f.ID))
	}

	switch f.ID {
	case playBundleDelimiter, playChunkBatchStart:
		// No payload to consume.

	case playAddEntity:
		return d.handleAddEntity(f)

	case playBlockUpdate:
		return d.handleBlockUpdate(f)

	case playChunkBatchFinished:
		return d.handleChunkBatchFinished(f)

	case playDisconnect:
		return d.handleDisconnect(f)

	case playMoveEntity:
		return d.handleMoveEntity(f)

	case playForgetLevelChunk:
		return d.handleForgetLevelChunk(f)

	case playKeepAlive:
		return d.handleKeepAlive(f)

	case playLevelChunkWithLight:
		return d.handleLevelChunkWithLight(f)

	case playEntityLogin:
		return d.handleEntityLogin(f)

	case playTeleportEntity:
		return d.handleTeleportEntity(f)

	case playSetChunkCacheCenter:
		return d.handleSetChunkCacheCenter(f)

	case playSetHealth:
		return d.handleSetHealth(f)

	default:
		if d.Logger != nil {
			d.Logger.Printf("play: %v", &UnexpectedPacketInPhase{Phase: "play", ID: f.ID})
		}
	}
	return nil
}

func (d *Dispatcher) handleAddEntity(f *protocol.Frame) error {
	var entityID, entityType protocol.VarInt
	var uuid protocol.UUID
	var x, y, z protocol.Double
	if _, err := entityID.ReadFrom(f); err != nil {
		return err
	}
	if _, err := uuid.ReadFrom(f); err != nil {
		return err
	}
	if _, err := entityType.ReadFrom(f); err != nil {
		return err
	}
	if _, err := x.ReadFrom(f); err != nil {
		return err
	}
	if _, err := y.ReadFrom(f); err != nil {
		return err
	}
	if _, err := z.ReadFrom(f); err != nil {
		return err
	}
	d.Logger.Printf("play: add_entity id=%d type=%d pos=(%.2f,%.2f,%.2f)", entityID, entityType, x, y, z)
	return nil
}

func (d *Dispatcher) handleBlockUpdate(f *protocol.Frame) error {
	var pos protocol.Position
	if _, err := pos.ReadFrom(f); err != nil {
		return err
	}
	d.Logger.Printf("play: block_update at (%d,%d,%d)", pos.X, pos.Y, pos.Z)
	return nil
}

func (d *Dispatcher) handleChunkBatchFinished(f *protocol.Frame) error {
	var batchSize protocol.VarInt
	if _, err := batchSize.ReadFrom(f); err != nil {
		return err
	}
	return d.Actions.AckChunkBatch(chunksPerTick)
}

func (d *Dispatcher) handleDisconnect(f *protocol.Frame) error {
	reason, err := nbt.ReadNetworkCompound(f)
	if err != nil {
		return err
	}
	return &Disconnected{Phase: "play", Reason: reason.Strings["text"]}
}

func (d *Dispatcher) handleMoveEntity(f *protocol.Frame) error {
	var entityID protocol.VarInt
	var x, y, z, dx, dy, dz protocol.Double
	var yaw, pitch protocol.Float
	var onGround protocol.Boolean
	if _, err := entityID.ReadFrom(f); err != nil {
		return err
	}
	if _, err := x.ReadFrom(f); err != nil {
		return err
	}
	if _, err := y.ReadFrom(f); err != nil {
		return err
	}
	if _, err := z.ReadFrom(f); err != nil {
		return err
	}
	if _, err := dx.ReadFrom(f); err != nil {
		return err
	}
	if _, err := dy.ReadFrom(f); err != nil {
		return err
	}
	if _, err := dz.ReadFrom(f); err != nil {
		return err
	}
	if _, err := yaw.ReadFrom(f); err != nil {
		return err
	}
	if _, err := pitch.ReadFrom(f); err != nil {
		return err
	}
	if _, err := onGround.ReadFrom(f); err != nil {
		return err
	}
	return nil
}

func (d *Dispatcher) handleForgetLevelChunk(f *protocol.Frame) error {
	// Spec-mandated swapped order: z is read before x.
	var z, x protocol.Int
	if _, err := z.ReadFrom(f); err != nil {
		return err
	}
	if _, err := x.ReadFrom(f); err != nil {
		return err
	}
	d.Player.ForgetChunk(int32(x), int32(z))
	return nil
}

func (d *Dispatcher) handleKeepAlive(f *protocol.Frame) error {
	var id protocol.Long
	if _, err := id.ReadFrom(f); err != nil {
		return err
	}
	return d.Actions.EchoKeepAlive(int64(id))
}

func (d *Dispatcher) handleLevelChunkWithLight(f *protocol.Frame) error {
	var x, z protocol.Int
	if _, err := x.ReadFrom(f); err != nil {
		return err
	}
	if _, err := z.ReadFrom(f); err != nil {
		return err
	}

	remaining := make([]byte, f.Data.Len())
	if _, err := f.Read(remaining); err != nil {
		return err
	}

	col, err := chunk.DecodeColumn(int32(x), int32(z), remaining)
	if err != nil {
		return err
	}
	d.Player.StoreChunk(col)
	return nil
}

func (d *Dispatcher) handleEntityLogin(f *protocol.Frame) error {
	var entityID protocol.Int
	var hardcore protocol.Boolean
	var dimCount protocol.VarInt
	if _, err := entityID.ReadFrom(f); err != nil {
		return err
	}
	if _, err := hardcore.ReadFrom(f); err != nil {
		return err
	}
	if _, err := dimCount.ReadFrom(f); err != nil {
		return err
	}
	for i := protocol.VarInt(0); i < dimCount; i++ {
		var dim protocol.String
		if _, err := dim.ReadFrom(f); err != nil {
			return err
		}
	}
	var maxPlayers, viewDistance protocol.VarInt
	if _, err := maxPlayers.ReadFrom(f); err != nil {
		return err
	}
	if _, err := viewDistance.ReadFrom(f); err != nil {
		return err
	}

	d.Player.Mu.Lock()
	d.Player.EntityID = int32(entityID)
	d.Player.Mu.Unlock()
	return nil
}

func (d *Dispatcher) handleTeleportEntity(f *protocol.Frame) error {
	var x, y, z, dx, dy, dz protocol.Double
	var yaw, pitch protocol.Float
	var flags protocol.Int
	var teleportID protocol.VarInt

	if _, err := x.ReadFrom(f); err != nil {
		return err
	}
	if _, err := y.ReadFrom(f); err != nil {
		return err
	}
	if _, err := z.ReadFrom(f); err != nil {
		return err
	}
	if _, err := dx.ReadFrom(f); err != nil {
		return err
	}
	if _, err := dy.ReadFrom(f); err != nil {
		return err
	}
	if _, err := dz.ReadFrom(f); err != nil {
		return err
	}
	if _, err := yaw.ReadFrom(f); err != nil {
		return err
	}
	if _, err := pitch.ReadFrom(f); err != nil {
		return err
	}
	if _, err := flags.ReadFrom(f); err != nil {
		return err
	}
	if _, err := teleportID.ReadFrom(f); err != nil {
		return err
	}

	d.Player.Mu.Lock()
	d.Player.Position = player.Vector3{X: float64(x), Y: float64(y), Z: float64(z)}
	d.Player.Velocity = player.Vector3{X: float64(dx), Y: float64(dy), Z: float64(dz)}
	d.Player.Yaw = float32(yaw)
	d.Player.Pitch = float32(pitch)
	d.Player.Mu.Unlock()

	return d.Actions.ConfirmTeleport(int32(teleportID))
}

func (d *Dispatcher) handleSetChunkCacheCenter(f *protocol.Frame) error {
	var x, z protocol.VarInt
	if _, err := x.ReadFrom(f); err != nil {
		return err
	}
	if _, err := z.ReadFrom(f); err != nil {
		return err
	}
	return nil
}

func (d *Dispatcher) handleSetHealth(f *protocol.Frame) error {
	var health protocol.Float
	if _, err := health.ReadFrom(f); err != nil {
		return err
	}

	d.Player.Mu.Lock()
	d.Player.Health = float32(health)
	d.Player.Mu.Unlock()

	if health <= 0 {
		return d.Actions.Respawn()
	}
	return nil
}
