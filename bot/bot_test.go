package bot

import (
	"context"
	"io"
	"log"
	"net"
	"testing"
	"time"

	"github.com/voxelbot/headlessclient/protocol"
)

// fakeServer drives one connection through handshake, login, configuration,
// then play, exercising Dial and Run against a real TCP loopback connection
// rather than a mocked transport.
func fakeServer(t *testing.T, ln net.Listener) {
	t.Helper()
	nc, err := ln.Accept()
	if err != nil {
		return
	}
	defer nc.Close()
	conn := protocol.NewConnFromNetConn(nc)

	// Handshake (no reply expected).
	if _, err := conn.ReadFrame(); err != nil {
		t.Errorf("server: read handshake: %v", err)
		return
	}

	// Login Start -> Login Success.
	if _, err := conn.ReadFrame(); err != nil {
		t.Errorf("server: read login start: %v", err)
		return
	}
	success := protocol.NewFrame(0x02, protocol.UUID{}, protocol.String("bot"))
	if err := conn.WriteFrame(success); err != nil {
		t.Errorf("server: write login success: %v", err)
		return
	}

	// Login Acknowledged.
	if _, err := conn.ReadFrame(); err != nil {
		t.Errorf("server: read login ack: %v", err)
		return
	}

	// Configuration: Finish immediately.
	finish := protocol.NewFrame(0x03)
	if err := conn.WriteFrame(finish); err != nil {
		t.Errorf("server: write finish: %v", err)
		return
	}
	if _, err := conn.ReadFrame(); err != nil {
		t.Errorf("server: read finish ack: %v", err)
		return
	}

	// Play: keep-alive round trip, then disconnect.
	keepAlive := protocol.NewFrame(0x27, protocol.Long(42))
	if err := conn.WriteFrame(keepAlive); err != nil {
		t.Errorf("server: write keep_alive: %v", err)
		return
	}
	reply, err := conn.ReadFrame()
	if err != nil {
		t.Errorf("server: read keep_alive reply: %v", err)
		return
	}
	if reply.ID != 0x1a {
		t.Errorf("server: keep_alive reply ID = %#x, want 0x1a", reply.ID)
	}

	disconnect := protocol.NewFrame(0x1d)
	_, _ = disconnect.Data.Write([]byte{0x0a, 0x00}) // empty compound
	if err := conn.WriteFrame(disconnect); err != nil {
		t.Errorf("server: write disconnect: %v", err)
	}
}

func TestDialRunDisconnect(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	go fakeServer(t, ln)

	logger := log.New(io.Discard, "", 0)
	b, err := Dial(ln.Addr().String(), "bot", nil, nil, logger)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer b.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = b.Run(ctx)
	if err == nil {
		t.Fatal("Run: want *session.Disconnected, got nil")
	}
}
