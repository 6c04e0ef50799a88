package conn

import "display/internal/protocol"

// sendEvent schedules id/payload as an outbound packet.
func (c *Connection) sendEvent(id uint32, payload []byte) {
	h := protocol.Header{ID: id, Size: uint32(len(payload))}
	enc := h.Encode()
	c.ScheduleTransmit(enc[:])
	c.ScheduleTransmit(payload)
}

func (c *Connection) sendAck(id uint32, code protocol.ErrCode) {
	c.sendEvent(protocol.EventAck, protocol.Ack{ID: id, Error: code}.Encode())
}

// EmitResize, EmitKeyboard, and EmitQuit schedule the corresponding
// server→client event. They are called by the server package, which
// implements display.EventSink by resolving a Handle's ConnID to the
// owning Connection and forwarding here (spec §9 "model back-pointers
// as indices... resolve at point of use").
func (c *Connection) EmitResize(windowID uint32, width, height int) {
	c.sendEvent(protocol.EventResize, protocol.Resize{WindowID: windowID, Width: uint32(width), Height: uint32(height)}.Encode())
}

func (c *Connection) EmitKeyboard(windowID uint32, codepoint int32) {
	c.sendEvent(protocol.EventKeyboard, protocol.Keyboard{WindowID: windowID, Codepoint: codepoint}.Encode())
}

func (c *Connection) EmitQuit(windowID uint32) {
	c.sendEvent(protocol.EventQuit, protocol.Quit{WindowID: windowID}.Encode())
}

// ScheduleTransmit appends data to the outgoing ring buffer (spec
// §4.2 connection_schedule_transmit). When free space is insufficient,
// the occupied region is linearized into a fresh buffer sized exactly
// used+len(data), matching the source's growth policy verbatim.
func (c *Connection) ScheduleTransmit(data []byte) {
	if len(data) == 0 {
		return
	}
	free := len(c.send) - c.sendUsed
	if free < len(data) {
		next := make([]byte, c.sendUsed+len(data))
		c.linearizeInto(next)
		c.send = next
		c.off = 0
	}
	end := (c.off + c.sendUsed) % len(c.send)
	n := copy(c.send[end:], data)
	if n < len(data) {
		copy(c.send, data[n:])
	}
	c.sendUsed += len(data)
}

// linearizeInto copies the occupied region, starting at off and
// wrapping, into the front of dst.
func (c *Connection) linearizeInto(dst []byte) {
	if c.sendUsed == 0 {
		return
	}
	n := copy(dst, c.send[c.off:])
	if n < c.sendUsed {
		copy(dst[n:], c.send[:c.sendUsed-n])
	}
}

// Drain sends the occupied region to the socket, from off up to the
// wrap and then from 0, advancing off/sendUsed by however much was
// actually written. It stops when the ring is empty, when a Send call
// accepts only part of its chunk, or when the socket would block (spec
// §4.2 "drain from offset up to wrap, then from 0"; §8 scenario 6).
// It returns a non-nil error only on a hard socket error.
func (c *Connection) Drain() error {
	for c.sendUsed > 0 {
		end := (c.off + c.sendUsed) % len(c.send)
		var chunk []byte
		if end > c.off {
			chunk = c.send[c.off:end]
		} else {
			chunk = c.send[c.off:]
		}
		n, err := c.sock.Send(chunk)
		if err == ErrWouldBlock {
			return nil
		}
		if err != nil {
			return err
		}
		c.off = (c.off + n) % len(c.send)
		c.sendUsed -= n
		if n < len(chunk) {
			// Socket accepted a partial write; poll interest remains
			// registered and the caller will retry on the next POLLOUT.
			return nil
		}
	}
	return nil
}
