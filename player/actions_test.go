package player

import (
	"net"
	"sync"
	"testing"

	"github.com/voxelbot/headlessclient/protocol"
)

// newPipeActions wraps one end of a net.Pipe as a *protocol.Conn for tests,
// bypassing Dial's TCP_NODELAY setup which net.Pipe doesn't support, and
// returns Actions bound to it together with the other end of the pipe.
func newPipeActions(t *testing.T) (*Actions, net.Conn) {
	t.Helper()
	client, server := net.Pipe()
	conn := protocol.NewConnFromNetConn(client)
	return NewActions(conn, new(sync.Mutex)), server
}

func TestActionsKeepAliveEcho(t *testing.T) {
	actions, server := newPipeActions(t)
	defer server.Close()

	done := make(chan error, 1)
	go func() { done <- actions.EchoKeepAlive(0x1122334455667788) }()

	f, err := protocol.DecodeFrame(server)
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if f.ID != 0x1a {
		t.Fatalf("frame ID = %#x, want 0x1a", f.ID)
	}
	var id protocol.Long
	if _, err := id.ReadFrom(f); err != nil {
		t.Fatal(err)
	}
	if int64(id) != 0x1122334455667788 {
		t.Errorf("echoed id = %#x, want 0x1122334455667788", int64(id))
	}
	if err := <-done; err != nil {
		t.Fatalf("EchoKeepAlive: %v", err)
	}
}

func TestActionsConfirmTeleport(t *testing.T) {
	actions, server := newPipeActions(t)
	defer server.Close()

	done := make(chan error, 1)
	go func() { done <- actions.ConfirmTeleport(7) }()

	f, err := protocol.DecodeFrame(server)
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if f.ID != 0x00 {
		t.Fatalf("frame ID = %#x, want 0x00", f.ID)
	}
	var id protocol.VarInt
	if _, err := id.ReadFrom(f); err != nil {
		t.Fatal(err)
	}
	if id != 7 {
		t.Errorf("teleport id = %d, want 7", id)
	}
	if err := <-done; err != nil {
		t.Fatalf("ConfirmTeleport: %v", err)
	}
}
