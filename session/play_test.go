package session

import (
	"bytes"
	"errors"
	"io"
	"log"
	"net"
	"sync"
	"testing"

	"github.com/voxelbot/headlessclient/chunk"
	"github.com/voxelbot/headlessclient/player"
	"github.com/voxelbot/headlessclient/protocol"
)

func newTestDispatcher(t *testing.T) (*Dispatcher, net.Conn) {
	t.Helper()
	client, server := net.Pipe()
	conn := protocol.NewConnFromNetConn(client)
	p := player.New("bot")
	return &Dispatcher{
		Player:  p,
		Actions: player.NewActions(conn, new(sync.Mutex)),
		Logger:  log.New(io.Discard, "", 0),
	}, server
}

func TestDispatchKeepAlive(t *testing.T) {
	d, server := newTestDispatcher(t)
	defer server.Close()

	f := protocol.NewFrame(playKeepAlive, protocol.Long(0x1122334455667788))

	done := make(chan error, 1)
	go func() { done <- d.Dispatch(f) }()

	reply, err := protocol.DecodeFrame(server)
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if reply.ID != 0x1a {
		t.Fatalf("reply ID = %#x, want 0x1a", reply.ID)
	}
	var id protocol.Long
	if _, err := id.ReadFrom(reply); err != nil {
		t.Fatal(err)
	}
	if int64(id) != 0x1122334455667788 {
		t.Errorf("echoed id = %#x", int64(id))
	}
	if err := <-done; err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
}

func TestDispatchTeleportEntityUpdatesPlayerAndConfirms(t *testing.T) {
	d, server := newTestDispatcher(t)
	defer server.Close()

	f := protocol.NewFrame(playTeleportEntity,
		protocol.Double(10), protocol.Double(64), protocol.Double(-5),
		protocol.Double(0), protocol.Double(0), protocol.Double(0),
		protocol.Float(90), protocol.Float(0),
		protocol.Int(0),
		protocol.VarInt(42),
	)

	done := make(chan error, 1)
	go func() { done <- d.Dispatch(f) }()

	reply, err := protocol.DecodeFrame(server)
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if reply.ID != 0x00 {
		t.Fatalf("reply ID = %#x, want 0x00", reply.ID)
	}
	var teleportID protocol.VarInt
	if _, err := teleportID.ReadFrom(reply); err != nil {
		t.Fatal(err)
	}
	if teleportID != 42 {
		t.Errorf("teleport id = %d, want 42", teleportID)
	}
	if err := <-done; err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	if d.Player.Position.X != 10 || d.Player.Position.Y != 64 || d.Player.Position.Z != -5 {
		t.Errorf("player position = %+v", d.Player.Position)
	}
}

func TestDispatchForgetLevelChunkSwappedOrder(t *testing.T) {
	d, server := newTestDispatcher(t)
	defer server.Close()

	d.Player.StoreChunk(&chunk.Column{X: 3, Z: 7})

	// Wire order is z then x.
	f := protocol.NewFrame(playForgetLevelChunk, protocol.Int(7), protocol.Int(3))
	if err := d.Dispatch(f); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	if _, ok := d.Player.Chunk(3, 7); ok {
		t.Fatal("chunk (3,7) still present after forget_level_chunk")
	}
}

func TestDispatchSetHealthTriggersRespawn(t *testing.T) {
	d, server := newTestDispatcher(t)
	defer server.Close()

	f := protocol.NewFrame(playSetHealth, protocol.Float(0))
	done := make(chan error, 1)
	go func() { done <- d.Dispatch(f) }()

	reply, err := protocol.DecodeFrame(server)
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if reply.ID != 0x0a {
		t.Fatalf("reply ID = %#x, want 0x0a (client_command)", reply.ID)
	}
	if err := <-done; err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
}

func TestDispatchDisconnect(t *testing.T) {
	d, server := newTestDispatcher(t)
	defer server.Close()

	var body bytes.Buffer
	body.WriteByte(0x0a) // TAG_Compound
	body.WriteByte(0x08) // TAG_String
	body.WriteByte(0x00)
	body.WriteByte(0x04)
	body.WriteString("text")
	writeUTF(&body, "kicked for idling")
	body.WriteByte(0x00) // TAG_End

	f := &protocol.Frame{ID: playDisconnect}
	f.Data = *bytes.NewBuffer(body.Bytes())

	err := d.Dispatch(f)
	var disc *Disconnected
	if !errors.As(err, &disc) {
		t.Fatalf("Dispatch(disconnect) = %v, want *Disconnected", err)
	}
	if disc.Reason != "kicked for idling" {
		t.Errorf("Disconnected.Reason = %q", disc.Reason)
	}
}

func writeUTF(buf *bytes.Buffer, s string) {
	b := []byte(s)
	u := uint32(len(b))
	for {
		bb := byte(u & 0x7f)
		u >>= 7
		if u != 0 {
			bb |= 0x80
		}
		buf.WriteByte(bb)
		if u == 0 {
			break
		}
	}
	buf.Write(b)
}
