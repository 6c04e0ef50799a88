// Package conn implements the per-client Connection: the receive state
// machine (header, then body, then dispatch), the outgoing ring buffer,
// and the per-connection window table (spec §4.2, §4.3, §5). It talks to
// internal/display through the display.WindowSource and display.EventSink
// interfaces, and to internal/protocol for wire encode/decode; it performs
// no device or compositor work of its own.
package conn

import "errors"

// ErrWouldBlock is returned by Socket.Recv/Send in place of EAGAIN/
// EWOULDBLOCK: no data is available right now, and no error occurred.
var ErrWouldBlock = errors.New("conn: would block")

// Socket is the non-blocking byte-stream abstraction a Connection reads
// and writes through. The real implementation wraps a unix.Accept4'd
// SOCK_NONBLOCK file descriptor (spec §6); tests use an in-memory fake
// that can simulate partial reads/writes and EWOULDBLOCK (spec §8
// scenario 6).
type Socket interface {
	// Recv behaves like read(2): n>0 is data, n==0 with a nil error is
	// a clean disconnect (EOF), and ErrWouldBlock means try later.
	Recv(buf []byte) (n int, err error)
	// Send behaves like write(2): a partial write is normal; ErrWouldBlock
	// means the socket's send buffer is full for now.
	Send(buf []byte) (n int, err error)
	Close() error
}
