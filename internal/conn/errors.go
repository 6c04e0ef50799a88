package conn

import "errors"

// errDisconnected signals a clean client disconnect (zero-byte read).
var errDisconnected = errors.New("conn: client disconnected")

// errOversizePacket signals a header declaring a body larger than
// protocol.MaxPacketSize; the connection must be dropped (spec §4.2,
// §8 scenario 5).
var errOversizePacket = errors.New("conn: oversize packet rejected")
