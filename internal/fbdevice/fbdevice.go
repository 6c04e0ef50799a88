// Package fbdevice wraps the single device-ioctl-equivalent call the
// output device exposes: submit a linear 32-bit-per-pixel framebuffer
// in one shot, given (device id, offset, size, source pointer) (spec
// §6). The real implementation and an in-memory test fake both
// satisfy Device, the same narrow-interface-plus-fake split gio uses
// for its GL context (app/headless/headless.go's context interface).
package fbdevice

import "display/internal/pixel"

// Device submits a frame to the output. offset and size are byte
// offsets/lengths into the device's linear framebuffer; pixels is the
// source, row-major, Width*Height entries.
type Device interface {
	Submit(id uint32, offset, size int, pixels []pixel.Pixel) error
}
