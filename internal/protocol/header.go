// Package protocol implements the wire codec: the packet header, the
// per-message fixed-struct layouts, and their Encode/Decode pairs
// (spec §4.2, §6). It performs no I/O; internal/conn owns framing and
// socket I/O and calls into this package to interpret bytes.
package protocol

import "encoding/binary"

// HeaderSize is the encoded size of Header in bytes.
const HeaderSize = 8

// MaxPacketSize is the implementation limit on header.Size beyond which
// a packet is rejected outright (spec §4.2 "≈64 KiB").
const MaxPacketSize = 64 * 1024

// Header is the 8-byte frame header present on every packet in both
// directions: a little-endian {id, size} pair.
type Header struct {
	ID   uint32
	Size uint32
}

// Encode writes h in wire format.
func (h Header) Encode() [HeaderSize]byte {
	var b [HeaderSize]byte
	binary.LittleEndian.PutUint32(b[0:4], h.ID)
	binary.LittleEndian.PutUint32(b[4:8], h.Size)
	return b
}

// DecodeHeader parses the first HeaderSize bytes of b as a Header.
// Callers must ensure len(b) >= HeaderSize.
func DecodeHeader(b []byte) Header {
	return Header{
		ID:   binary.LittleEndian.Uint32(b[0:4]),
		Size: binary.LittleEndian.Uint32(b[4:8]),
	}
}

// Client→server message ids, assigned densely starting at 0 (spec §4.2).
const (
	MsgCreateWindow = iota
	MsgDestroyWindow
	MsgResizeWindow
	MsgRenderWindow
	MsgTitleWindow
	MsgShowWindow
	MsgHideWindow
	MsgShutdown
	MsgChkBLayout
	MsgRequestDisplays
	MsgRequestDisplayModes
	MsgRequestDisplayMode
	MsgSetDisplayMode
	msgCount
)

// Server→client event ids.
const (
	EventAck = iota
	EventDisplays
	EventDisplayMode
	EventDisplayModes
	EventResize
	EventKeyboard
	EventQuit
)

// IsKnownClientMessage reports whether id is within the client-message
// table. Unknown ids are silently consumed by the dispatcher for
// forward compatibility (spec §4.2).
func IsKnownClientMessage(id uint32) bool {
	return id < uint32(msgCount)
}

// ErrCode is the error taxonomy carried in an Ack event.
type ErrCode int32

const (
	ErrNone ErrCode = iota
	ErrMalformed
	ErrUnknownWindow
	ErrAuxSizeMismatch
	ErrNoSuchDisplay
)
