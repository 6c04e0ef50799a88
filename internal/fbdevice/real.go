package fbdevice

import (
	"unsafe"

	"golang.org/x/sys/unix"

	"display/internal/pixel"
)

// ioctlSubmitFrame is the device's single submit request number. The
// device accepts one ioctl carrying (id, offset, size, pointer); there
// is no read path and no further command set.
const ioctlSubmitFrame = 0x4600

type submitArgs struct {
	ID     uint32
	_      uint32 // padding to align Offset on an 8-byte boundary
	Offset uint64
	Size   uint64
	Ptr    uint64
}

// RealDevice submits frames through a real device node opened with
// O_RDWR, via a single ioctl carrying a submitArgs struct by pointer.
type RealDevice struct {
	fd int
}

// Open opens the device node at path.
func Open(path string) (*RealDevice, error) {
	fd, err := unix.Open(path, unix.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	return &RealDevice{fd: fd}, nil
}

// Submit issues the device's single ioctl to push pixels starting at
// byte offset, sized size bytes (spec §6).
func (d *RealDevice) Submit(id uint32, offset, size int, pixels []pixel.Pixel) error {
	var ptr uintptr
	if len(pixels) > 0 {
		ptr = uintptr(unsafe.Pointer(&pixels[0]))
	}
	args := submitArgs{
		ID:     id,
		Offset: uint64(offset),
		Size:   uint64(size),
		Ptr:    uint64(ptr),
	}
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(d.fd), uintptr(ioctlSubmitFrame), uintptr(unsafe.Pointer(&args)))
	if errno != 0 {
		return errno
	}
	return nil
}

// Close releases the device node.
func (d *RealDevice) Close() error {
	return unix.Close(d.fd)
}
