package devinput

import "golang.org/x/sys/unix"

// FDReader reads from a raw, non-blocking file descriptor, translating
// EAGAIN into ErrWouldBlock the way internal/conn's Socket does for the
// listening connections (spec §6 "non-blocking mode so no ... read can
// stall the loop").
type FDReader struct {
	Fd int
}

func (r FDReader) Read(buf []byte) (int, error) {
	n, err := unix.Read(r.Fd, buf)
	if err == unix.EAGAIN {
		return 0, ErrWouldBlock
	}
	return n, err
}

// SetRawMode puts fd — expected to be a TTY — into raw mode: no echo,
// no canonical line buffering, no signal-generating keys, so every
// byte the kernel delivers reaches us immediately as a codepoint (spec
// §6 "TTY opened in a raw mode").
func SetRawMode(fd int) error {
	t, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return err
	}
	raw := *t
	raw.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP | unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
	raw.Oflag &^= unix.OPOST
	raw.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	raw.Cflag &^= unix.CSIZE | unix.PARENB
	raw.Cflag |= unix.CS8
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0
	return unix.IoctlSetTermios(fd, unix.TCSETS, &raw)
}
