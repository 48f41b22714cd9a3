// Package bot ties the protocol, session, and player packages together
// into a single connected client: dial, complete the login/configuration
// handoff, then pump play-phase frames until disconnect or error.
package bot

import (
	"context"
	"fmt"
	"log"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/voxelbot/headlessclient/player"
	"github.com/voxelbot/headlessclient/protocol"
	"github.com/voxelbot/headlessclient/registry"
	"github.com/voxelbot/headlessclient/session"
)

// writerTickInterval is the cadence of the writer task's periodic
// position re-assertion, the same anti-idle role go-mclib-client's
// afkbot/periodic_chatter examples exist to fill for a client that
// otherwise never sends an unprompted C->S packet.
const writerTickInterval = 10 * time.Second

// Bot is one connected, logged-in client sitting in the play phase.
type Bot struct {
	conn    *protocol.Conn
	writeMu sync.Mutex

	Player  *player.Player
	Actions *player.Actions
	Logger  *log.Logger

	dispatcher *session.Dispatcher
}

// Dial opens a TCP connection to addr and drives it synchronously through
// handshake, login, and configuration, returning a Bot positioned to enter
// the play phase. blocks and packets may be nil; a nil registry resolves
// every lookup to its id's decimal or hex string form.
func Dial(addr, name string, blocks *registry.Blocks, packets *registry.Packets, logger *log.Logger) (*Bot, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, fmt.Errorf("bot: invalid address %q: %w", addr, err)
	}
	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return nil, fmt.Errorf("bot: invalid port in %q: %w", addr, err)
	}

	conn, err := protocol.Dial(addr)
	if err != nil {
		return nil, err
	}

	if err := session.Handshake(conn, host, uint16(port)); err != nil {
		conn.Close()
		return nil, err
	}
	if err := session.Login(conn, name); err != nil {
		conn.Close()
		return nil, err
	}
	if err := session.Configuration(conn, logger); err != nil {
		conn.Close()
		return nil, err
	}

	b := &Bot{
		conn:   conn,
		Player: player.New(name),
		Logger: logger,
	}
	b.Actions = player.NewActions(conn, &b.writeMu)
	b.dispatcher = &session.Dispatcher{
		Player:  b.Player,
		Actions: b.Actions,
		Blocks:  blocks,
		Packets: packets,
		Logger:  logger,
	}

	return b, nil
}

// Close releases the underlying connection.
func (b *Bot) Close() error {
	return b.conn.Close()
}

// Run pumps play-phase frames until the context is cancelled, the server
// disconnects, or an I/O or protocol error occurs. A clean server-initiated
// disconnect is returned as a *session.Disconnected, not wrapped.
//
// Two cooperative tasks run for the lifetime of the call: the reader below,
// draining and dispatching every S->C frame, and runWriter, issuing
// periodic C->S traffic of its own. Cancelling writerCtx when either the
// reader finishes or the caller's ctx is done stops the writer task
// alongside the reader, so neither outlives the connection it writes to.
func (b *Bot) Run(ctx context.Context) error {
	writerCtx, cancelWriter := context.WithCancel(ctx)
	defer cancelWriter()
	go b.runWriter(writerCtx)

	type result struct {
		err error
	}
	frames := make(chan result, 1)

	go func() {
		for {
			f, err := b.conn.ReadFrame()
			if err != nil {
				frames <- result{err: err}
				return
			}
			if err := b.dispatcher.Dispatch(f); err != nil {
				frames <- result{err: err}
				return
			}
		}
	}()

	select {
	case <-ctx.Done():
		b.conn.Close()
		return ctx.Err()
	case r := <-frames:
		return r.err
	}
}

// runWriter is the writer task: the cooperative counterpart to Run's reader
// goroutine. It ticks at writerTickInterval and re-sends the player's
// current position, the periodic client-initiated traffic the connection's
// concurrency model requires alongside the reader - every write goes
// through Actions, serialized by the same writeMu every reader-triggered
// reply (keep-alive echo, teleport confirm, chunk-batch ack) uses, so
// ordering against those inline replies is preserved. It returns when ctx
// is cancelled, or after logging a failed write, leaving error reporting to
// the reader side of Run.
func (b *Bot) runWriter(ctx context.Context) {
	ticker := time.NewTicker(writerTickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.Player.Mu.Lock()
			pos, yaw, pitch := b.Player.Position, b.Player.Yaw, b.Player.Pitch
			b.Player.Mu.Unlock()

			if err := b.Actions.Move(pos, yaw, pitch, true); err != nil {
				if b.Logger != nil {
					b.Logger.Printf("writer: position tick failed: %v", err)
				}
				return
			}
		}
	}
}

// AddrWithDefaultPort fills in the default port 25565 when addr names only
// a host, matching the launcher's documented default.
func AddrWithDefaultPort(addr string) string {
	if !strings.Contains(addr, ":") {
		return addr + ":25565"
	}
	return addr
}
