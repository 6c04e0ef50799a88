package bootstrap

import (
	"golang.org/x/sys/unix"

	"display/internal/devinput"
	"display/internal/fbdevice"
	"display/internal/server"
)

// OpenSocket binds and listens on path, removing a stale socket file
// from a prior run (spec.md §6 "one local-stream listening socket").
func OpenSocket(path string) (*server.UnixListener, error) {
	return server.ListenUnix(path, 16)
}

// OpenKeyboard opens path as a TTY, puts it in raw mode, and wraps it
// in a non-blocking codepoint reader (spec.md §6 "Input devices").
func OpenKeyboard(path string) (*devinput.KeyboardDevice, int, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, -1, err
	}
	if err := devinput.SetRawMode(fd); err != nil {
		unix.Close(fd)
		return nil, -1, err
	}
	return devinput.NewKeyboardDevice(devinput.FDReader{Fd: fd}), fd, nil
}

// OpenPointer opens path as the pointer device file, non-blocking.
func OpenPointer(path string) (*devinput.PointerDevice, int, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, -1, err
	}
	return devinput.NewPointerDevice(devinput.FDReader{Fd: fd}), fd, nil
}

// OpenFramebuffer opens the output device node.
func OpenFramebuffer(path string) (fbdevice.Device, error) {
	return fbdevice.Open(path)
}
