package conn

import (
	"github.com/rs/zerolog"

	"display/internal/display"
	"display/internal/protocol"
	"display/internal/window"
)

const initialSendCap = 4096

// Connection is one client's protocol state: its receive framing, its
// outgoing ring buffer, and its own window table (spec §4.2, §4.3).
// Dispatch of decoded messages needs the Display, which it receives as
// an explicit parameter rather than storing — there is exactly one
// Display and many Connections, and nothing here should reach for
// global state (spec §9 "Global mutable state").
type Connection struct {
	ID  uint32
	log zerolog.Logger

	sock Socket

	windows [window.MaxWindows]*window.Window

	haveHeader bool
	headerBuf  [protocol.HeaderSize]byte
	headerLen  int
	header     protocol.Header
	body       []byte
	bodyLen    int

	// send is a ring buffer: occupied bytes run from off, wrapping at
	// len(send), for sendUsed bytes (spec §4.2 send path).
	send     []byte
	off      int
	sendUsed int

	// Dead is set once the connection must be destroyed: a hard I/O
	// error, a clean disconnect (zero-byte read), or an oversize packet
	// (spec §8 scenario 5).
	Dead bool
}

// New returns a Connection wrapping sock, identified by id within the
// server's connection table.
func New(id uint32, sock Socket, log zerolog.Logger) *Connection {
	return &Connection{
		ID:   id,
		sock: sock,
		log:  log,
		send: make([]byte, initialSendCap),
	}
}

// Window returns the connection-local window with client id wid, or nil
// if wid is out of range or was never created.
func (c *Connection) Window(wid uint32) *window.Window {
	if wid >= window.MaxWindows {
		return nil
	}
	return c.windows[wid]
}

// PollOutInterest reports whether the outgoing ring has bytes pending,
// the POLLOUT interest computation of spec §4.6 step 2.
func (c *Connection) PollOutInterest() bool { return c.sendUsed > 0 }

// fdSocket is implemented by real, fd-backed Socket implementations.
type fdSocket interface {
	Fd() int
}

// Fd returns the underlying socket's file descriptor, or -1 if sock
// does not expose one (e.g. a fake Socket used in tests). The real
// Poller uses this to build its poll-descriptor array.
func (c *Connection) Fd() int {
	if s, ok := c.sock.(fdSocket); ok {
		return s.Fd()
	}
	return -1
}

// Close releases the underlying socket.
func (c *Connection) Close() error { return c.sock.Close() }

// DestroyAll unlinks and forgets every window this connection owns,
// the effect of a client disconnect (spec §5 "synchronously destroys
// all that client's windows").
func (c *Connection) DestroyAll(d *display.Display) {
	for i, w := range c.windows {
		if w == nil {
			continue
		}
		d.UnlinkForRemoval(display.Handle{ConnID: c.ID, WindowID: w.ID})
		c.windows[i] = nil
	}
	d.Redraw = true
}
