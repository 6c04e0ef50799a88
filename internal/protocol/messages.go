package protocol

import (
	"encoding/binary"
	"errors"
)

// ErrShortBuffer is returned by a Decode function when the fixed
// portion of a message is shorter than its declared struct size (spec
// §4.2: "Structural errors: size smaller than fixed struct").
var ErrShortBuffer = errors.New("protocol: fixed struct truncated")

// ErrAuxMismatch is returned when a message's aux payload length
// doesn't match what the fixed fields declare (spec §9 open question
// (ii), resolved as: reject).
var ErrAuxMismatch = errors.New("protocol: auxiliary payload size mismatch")

func getU32(b []byte, off int) uint32 { return binary.LittleEndian.Uint32(b[off : off+4]) }
func putU32(b []byte, off int, v uint32) { binary.LittleEndian.PutUint32(b[off:off+4], v) }

// WindowIDMessage is the shared fixed layout of create_window,
// destroy_window, show_window, and hide_window: a single window id.
type WindowIDMessage struct {
	WindowID uint32
}

const windowIDMessageSize = 4

func DecodeWindowIDMessage(b []byte) (WindowIDMessage, error) {
	if len(b) < windowIDMessageSize {
		return WindowIDMessage{}, ErrShortBuffer
	}
	return WindowIDMessage{WindowID: getU32(b, 0)}, nil
}

func (m WindowIDMessage) Encode() []byte {
	b := make([]byte, windowIDMessageSize)
	putU32(b, 0, m.WindowID)
	return b
}

// ResizeWindow is resize_window's fixed layout.
type ResizeWindow struct {
	WindowID      uint32
	Width, Height uint32
}

const resizeWindowSize = 12

func DecodeResizeWindow(b []byte) (ResizeWindow, error) {
	if len(b) < resizeWindowSize {
		return ResizeWindow{}, ErrShortBuffer
	}
	return ResizeWindow{WindowID: getU32(b, 0), Width: getU32(b, 4), Height: getU32(b, 8)}, nil
}

func (m ResizeWindow) Encode() []byte {
	b := make([]byte, resizeWindowSize)
	putU32(b, 0, m.WindowID)
	putU32(b, 4, m.Width)
	putU32(b, 8, m.Height)
	return b
}

// RenderWindow is render_window's fixed layout; its aux payload is
// Width*Height 32-bit pixels, which the caller must validate against
// len(aux) (spec §9 open question (ii)).
type RenderWindow struct {
	WindowID            uint32
	Left, Top           uint32
	Width, Height       uint32
}

const renderWindowSize = 20

func DecodeRenderWindow(b []byte) (RenderWindow, error) {
	if len(b) < renderWindowSize {
		return RenderWindow{}, ErrShortBuffer
	}
	return RenderWindow{
		WindowID: getU32(b, 0),
		Left:     getU32(b, 4),
		Top:      getU32(b, 8),
		Width:    getU32(b, 12),
		Height:   getU32(b, 16),
	}, nil
}

func (m RenderWindow) Encode() []byte {
	b := make([]byte, renderWindowSize)
	putU32(b, 0, m.WindowID)
	putU32(b, 4, m.Left)
	putU32(b, 8, m.Top)
	putU32(b, 12, m.Width)
	putU32(b, 16, m.Height)
	return b
}

// ValidateRenderAux reports whether aux's length matches exactly
// Width*Height 32-bit pixels.
func (m RenderWindow) ValidateRenderAux(aux []byte) error {
	want := uint64(m.Width) * uint64(m.Height) * 4
	if uint64(len(aux)) != want {
		return ErrAuxMismatch
	}
	return nil
}

// RenderPixels decodes aux (already length-validated) into little-endian
// 32-bit pixel words.
func RenderPixels(aux []byte) []uint32 {
	n := len(aux) / 4
	out := make([]uint32, n)
	for i := 0; i < n; i++ {
		out[i] = binary.LittleEndian.Uint32(aux[i*4 : i*4+4])
	}
	return out
}

// TitleWindow is title_window's fixed layout; aux is the UTF-8 title.
type TitleWindow struct {
	WindowID uint32
}

const titleWindowSize = 4

func DecodeTitleWindow(b []byte) (TitleWindow, error) {
	if len(b) < titleWindowSize {
		return TitleWindow{}, ErrShortBuffer
	}
	return TitleWindow{WindowID: getU32(b, 0)}, nil
}

func (m TitleWindow) Encode() []byte {
	b := make([]byte, titleWindowSize)
	putU32(b, 0, m.WindowID)
	return b
}

// Shutdown is shutdown's fixed layout.
type Shutdown struct {
	Code uint32
}

const shutdownSize = 4

func DecodeShutdown(b []byte) (Shutdown, error) {
	if len(b) < shutdownSize {
		return Shutdown{}, ErrShortBuffer
	}
	return Shutdown{Code: getU32(b, 0)}, nil
}

func (m Shutdown) Encode() []byte {
	b := make([]byte, shutdownSize)
	putU32(b, 0, m.Code)
	return b
}

// ChkBLayout is chkblayout's fixed layout; aux is an opaque layout
// blob (spec §6) that this package does not decode.
type ChkBLayout struct {
	ID uint32
}

const chkbLayoutSize = 4

func DecodeChkBLayout(b []byte) (ChkBLayout, error) {
	if len(b) < chkbLayoutSize {
		return ChkBLayout{}, ErrShortBuffer
	}
	return ChkBLayout{ID: getU32(b, 0)}, nil
}

func (m ChkBLayout) Encode() []byte {
	b := make([]byte, chkbLayoutSize)
	putU32(b, 0, m.ID)
	return b
}

// RequestDisplays is request_displays's fixed layout.
type RequestDisplays struct {
	ID uint32
}

const requestDisplaysSize = 4

func DecodeRequestDisplays(b []byte) (RequestDisplays, error) {
	if len(b) < requestDisplaysSize {
		return RequestDisplays{}, ErrShortBuffer
	}
	return RequestDisplays{ID: getU32(b, 0)}, nil
}

func (m RequestDisplays) Encode() []byte {
	b := make([]byte, requestDisplaysSize)
	putU32(b, 0, m.ID)
	return b
}

// DisplayIDMessage is the shared fixed layout of request_display_modes
// and request_display_mode.
type DisplayIDMessage struct {
	ID        uint32
	DisplayID uint32
}

const displayIDMessageSize = 8

func DecodeDisplayIDMessage(b []byte) (DisplayIDMessage, error) {
	if len(b) < displayIDMessageSize {
		return DisplayIDMessage{}, ErrShortBuffer
	}
	return DisplayIDMessage{ID: getU32(b, 0), DisplayID: getU32(b, 4)}, nil
}

func (m DisplayIDMessage) Encode() []byte {
	b := make([]byte, displayIDMessageSize)
	putU32(b, 0, m.ID)
	putU32(b, 4, m.DisplayID)
	return b
}

// Mode is a display mode: resolution and refresh rate.
type Mode struct {
	Width, Height uint32
	RefreshHz     uint32
}

const modeSize = 12

func decodeMode(b []byte) Mode {
	return Mode{Width: getU32(b, 0), Height: getU32(b, 4), RefreshHz: getU32(b, 8)}
}

func (m Mode) encode(b []byte) {
	putU32(b, 0, m.Width)
	putU32(b, 4, m.Height)
	putU32(b, 8, m.RefreshHz)
}

// SetDisplayMode is set_display_mode's fixed layout.
type SetDisplayMode struct {
	ID        uint32
	DisplayID uint32
	Mode      Mode
}

const setDisplayModeSize = 8 + modeSize

func DecodeSetDisplayMode(b []byte) (SetDisplayMode, error) {
	if len(b) < setDisplayModeSize {
		return SetDisplayMode{}, ErrShortBuffer
	}
	return SetDisplayMode{
		ID:        getU32(b, 0),
		DisplayID: getU32(b, 4),
		Mode:      decodeMode(b[8:]),
	}, nil
}

func (m SetDisplayMode) Encode() []byte {
	b := make([]byte, setDisplayModeSize)
	putU32(b, 0, m.ID)
	putU32(b, 4, m.DisplayID)
	m.Mode.encode(b[8:])
	return b
}

// --- Server -> client events ---

// Ack carries a structural-error result back to the client, keyed by
// the client-supplied request id (spec §4.2).
type Ack struct {
	ID    uint32
	Error ErrCode
}

const ackSize = 8

func (e Ack) Encode() []byte {
	b := make([]byte, ackSize)
	putU32(b, 0, e.ID)
	putU32(b, 4, uint32(e.Error))
	return b
}

func DecodeAck(b []byte) (Ack, error) {
	if len(b) < ackSize {
		return Ack{}, ErrShortBuffer
	}
	return Ack{ID: getU32(b, 0), Error: ErrCode(getU32(b, 4))}, nil
}

// Resize reports a window's new size after client_resize (spec §4.3).
type Resize struct {
	WindowID      uint32
	Width, Height uint32
}

const resizeEventSize = 12

func (e Resize) Encode() []byte {
	b := make([]byte, resizeEventSize)
	putU32(b, 0, e.WindowID)
	putU32(b, 4, e.Width)
	putU32(b, 8, e.Height)
	return b
}

func DecodeResize(b []byte) (Resize, error) {
	if len(b) < resizeEventSize {
		return Resize{}, ErrShortBuffer
	}
	return Resize{WindowID: getU32(b, 0), Width: getU32(b, 4), Height: getU32(b, 8)}, nil
}

// Keyboard forwards a codepoint to the focused window (spec §4.4).
type Keyboard struct {
	WindowID  uint32
	Codepoint int32
}

const keyboardEventSize = 8

func (e Keyboard) Encode() []byte {
	b := make([]byte, keyboardEventSize)
	putU32(b, 0, e.WindowID)
	putU32(b, 4, uint32(e.Codepoint))
	return b
}

func DecodeKeyboard(b []byte) (Keyboard, error) {
	if len(b) < keyboardEventSize {
		return Keyboard{}, ErrShortBuffer
	}
	return Keyboard{WindowID: getU32(b, 0), Codepoint: int32(getU32(b, 4))}, nil
}

// Quit asks the client to close a window (spec §4.4 "quit-window"
// button action); the client's acknowledgement is destroy_window.
type Quit struct {
	WindowID uint32
}

const quitEventSize = 4

func (e Quit) Encode() []byte {
	b := make([]byte, quitEventSize)
	putU32(b, 0, e.WindowID)
	return b
}

func DecodeQuit(b []byte) (Quit, error) {
	if len(b) < quitEventSize {
		return Quit{}, ErrShortBuffer
	}
	return Quit{WindowID: getU32(b, 0)}, nil
}

// Displays is the info event enumerating known display ids. This
// server always reports a single display, id 0 (SPEC_FULL.md §6
// "Display enumeration").
type Displays struct {
	IDs []uint32
}

func (e Displays) Encode() []byte {
	b := make([]byte, 4*len(e.IDs))
	for i, id := range e.IDs {
		putU32(b, i*4, id)
	}
	return b
}

// DisplayModeEvent reports a single display's current mode.
type DisplayModeEvent struct {
	DisplayID uint32
	Mode      Mode
}

const displayModeEventSize = 4 + modeSize

func (e DisplayModeEvent) Encode() []byte {
	b := make([]byte, displayModeEventSize)
	putU32(b, 0, e.DisplayID)
	e.Mode.encode(b[4:])
	return b
}

// DisplayModesEvent reports every mode a display supports.
type DisplayModesEvent struct {
	DisplayID uint32
	Modes     []Mode
}

func (e DisplayModesEvent) Encode() []byte {
	b := make([]byte, 4+modeSize*len(e.Modes))
	putU32(b, 0, e.DisplayID)
	for i, m := range e.Modes {
		m.encode(b[4+i*modeSize:])
	}
	return b
}

// EncodeCodepoint packs a key event into the 32-bit wire codepoint:
// the low 21 bits hold the Unicode rune, the sign of the value marks
// key-up (negative) vs key-down (non-negative), and bits 21-30 hold
// the scan code, stored for every key whether or not it has a rune (spec §6,
// §4.4: "encodes both a Unicode code point and a signed scan-code").
func EncodeCodepoint(code int, r rune, down bool) int32 {
	v := int32(code)<<21 | int32(r)&0x1FFFFF
	if !down {
		v = -v
	}
	return v
}

// DecodeCodepoint reverses EncodeCodepoint.
func DecodeCodepoint(v int32) (code int, r rune, down bool) {
	down = v >= 0
	if !down {
		v = -v
	}
	code = int(v >> 21)
	r = rune(v & 0x1FFFFF)
	return
}
