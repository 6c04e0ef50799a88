package conn

import (
	"display/internal/display"
	"display/internal/protocol"
)

// Ingest performs at most one non-blocking read for the header and,
// once the header is complete, at most one for the body in the same
// call; if that completes a packet, it dispatches it. It returns (true, nil) when a packet was
// dispatched, (false, nil) when more data is needed or none was
// available (ErrWouldBlock), and a non-nil error when the connection
// must be destroyed — a hard I/O error, a clean disconnect, or an
// oversize packet (spec §4.2, §8 scenario 5).
func (c *Connection) Ingest(d *display.Display, src display.WindowSource, sink display.EventSink) (bool, error) {
	if !c.haveHeader {
		n, err := c.sock.Recv(c.headerBuf[c.headerLen:])
		if err == ErrWouldBlock {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		if n == 0 {
			return false, errDisconnected
		}
		c.headerLen += n
		if c.headerLen < protocol.HeaderSize {
			return false, nil
		}
		c.header = protocol.DecodeHeader(c.headerBuf[:])
		if c.header.Size > protocol.MaxPacketSize {
			return false, errOversizePacket
		}
		c.body = make([]byte, c.header.Size)
		c.bodyLen = 0
		c.haveHeader = true
	}

	if c.bodyLen < len(c.body) {
		n, err := c.sock.Recv(c.body[c.bodyLen:])
		if err == ErrWouldBlock {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		if n == 0 {
			return false, errDisconnected
		}
		c.bodyLen += n
		if c.bodyLen < len(c.body) {
			return false, nil
		}
	}

	body := c.body
	header := c.header
	c.haveHeader = false
	c.headerLen = 0
	c.body = nil
	c.bodyLen = 0

	c.dispatch(header, body, d, src, sink)
	return true, nil
}
