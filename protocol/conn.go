package protocol

import (
	"io"
	"net"
)

// Conn wraps a dialed TCP connection with the frame-level read/write
// operations the session state machine and player actions build on. A
// single Conn is shared by the reader task and the writer task; callers
// that need write exclusivity across several packets hold their own lock
// around WriteFrame (see the bot package).
type Conn struct {
	nc net.Conn
}

// Dial opens a TCP connection to addr and enables TCP_NODELAY, matching the
// low-latency framing the protocol assumes (every frame is a small,
// latency-sensitive message, not a bulk transfer).
func Dial(addr string) (*Conn, error) {
	nc, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}
	if tc, ok := nc.(*net.TCPConn); ok {
		_ = tc.SetNoDelay(true)
	}
	return &Conn{nc: nc}, nil
}

// NewConnFromNetConn wraps an already-established net.Conn, skipping the
// TCP_NODELAY setup Dial performs. Intended for tests that substitute a
// net.Pipe or other in-memory net.Conn for a real socket.
func NewConnFromNetConn(nc net.Conn) *Conn {
	return &Conn{nc: nc}
}

// Close shuts down both halves of the connection and releases the socket.
func (c *Conn) Close() error {
	if tc, ok := c.nc.(*net.TCPConn); ok {
		_ = tc.CloseRead()
		_ = tc.CloseWrite()
	}
	return c.nc.Close()
}

// ReadFrame blocks until one full frame has arrived or the connection
// fails. A clean peer close surfaces as ErrPeerClosed.
func (c *Conn) ReadFrame() (*Frame, error) {
	f, err := DecodeFrame(c.nc)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return nil, ErrPeerClosed
	}
	return f, err
}

// WriteFrame encodes and sends f in one logical write; partial writes are
// retried internally by net.Conn.Write's contract (it either writes all of
// p or returns an error).
func (c *Conn) WriteFrame(f *Frame) error {
	return f.Encode(c.nc)
}
