package devinput

import (
	"encoding/binary"

	"display/internal/display"
	"display/internal/protocol"
)

// KeyboardDevice decodes the keyboard TTY's stream of signed 32-bit
// codepoints into display.KeyEvent values, buffering any trailing
// partial codepoint across reads.
type KeyboardDevice struct {
	r   Reader
	buf []byte
}

func NewKeyboardDevice(r Reader) *KeyboardDevice {
	return &KeyboardDevice{r: r}
}

// ReadEvents performs one non-blocking read and returns every complete
// codepoint it has accumulated so far, decoded (spec §4.6 step 5: "read
// as many 32-bit codepoints as non-blocking reads will return").
func (k *KeyboardDevice) ReadEvents() ([]display.KeyEvent, error) {
	chunk := make([]byte, 256)
	n, err := k.r.Read(chunk)
	if err == ErrWouldBlock {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	k.buf = append(k.buf, chunk[:n]...)

	var events []display.KeyEvent
	for len(k.buf) >= 4 {
		v := int32(binary.LittleEndian.Uint32(k.buf[:4]))
		k.buf = k.buf[4:]
		code, r, down := protocol.DecodeCodepoint(v)
		events = append(events, display.KeyEvent{Code: code, Rune: r, Down: down})
	}
	return events, nil
}
