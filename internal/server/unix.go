package server

import (
	"golang.org/x/sys/unix"

	"display/internal/conn"
)

// UnixListener wraps a SOCK_STREAM/SOCK_NONBLOCK listening fd bound to
// a filesystem path (spec §6 "one local-stream listening socket at a
// filesystem path").
type UnixListener struct {
	fd int
}

// ListenUnix creates, binds, and listens on path, removing any stale
// socket file left behind by a previous run.
func ListenUnix(path string, backlog int) (*UnixListener, error) {
	unix.Unlink(path)
	fd, err := unix.Socket(unix.AF_UNIX, unix.SOCK_STREAM|unix.SOCK_NONBLOCK, 0)
	if err != nil {
		return nil, err
	}
	addr := &unix.SockaddrUnix{Name: path}
	if err := unix.Bind(fd, addr); err != nil {
		unix.Close(fd)
		return nil, err
	}
	if err := unix.Listen(fd, backlog); err != nil {
		unix.Close(fd)
		return nil, err
	}
	return &UnixListener{fd: fd}, nil
}

func (l *UnixListener) Fd() int { return l.fd }

// Accept implements Listener.
func (l *UnixListener) Accept() (conn.Socket, error) {
	fd, _, err := unix.Accept4(l.fd, unix.SOCK_NONBLOCK)
	if err == unix.EAGAIN {
		return nil, conn.ErrWouldBlock
	}
	if err != nil {
		return nil, err
	}
	return &unixSocket{fd: fd}, nil
}

func (l *UnixListener) Close() error { return unix.Close(l.fd) }

// unixSocket adapts a raw non-blocking fd to conn.Socket.
type unixSocket struct {
	fd int
}

func (s *unixSocket) Recv(buf []byte) (int, error) {
	n, err := unix.Read(s.fd, buf)
	if err == unix.EAGAIN {
		return 0, conn.ErrWouldBlock
	}
	return n, err
}

func (s *unixSocket) Send(buf []byte) (int, error) {
	n, err := unix.Write(s.fd, buf)
	if err == unix.EAGAIN {
		return 0, conn.ErrWouldBlock
	}
	return n, err
}

func (s *unixSocket) Close() error { return unix.Close(s.fd) }
func (s *unixSocket) Fd() int      { return s.fd }
