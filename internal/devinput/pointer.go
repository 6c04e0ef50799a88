package devinput

// PointerDevice reads raw bytes from the pointer device file. Decoding
// the 3-byte PS/2-style packet (button bits, signed deltas, the
// always-1 resync bit) is display.Display.FeedMousePacketByte's job;
// this type only owns the non-blocking read (spec §4.6 step 6: "read
// up to 64 bytes; for each, feed the pointer state machine").
type PointerDevice struct {
	r Reader
}

func NewPointerDevice(r Reader) *PointerDevice {
	return &PointerDevice{r: r}
}

// ReadBytes performs one non-blocking read of up to 64 bytes.
func (p *PointerDevice) ReadBytes() ([]byte, error) {
	buf := make([]byte, 64)
	n, err := p.r.Read(buf)
	if err == ErrWouldBlock {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}
