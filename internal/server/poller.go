package server

import (
	"golang.org/x/sys/unix"

	"display/internal/conn"
)

// fdent is anything exposing the raw fd a UnixPoller needs to watch.
type fdent interface {
	Fd() int
}

// UnixPoller rebuilds a unix.PollFd array from the listening socket,
// the keyboard and pointer device fds, and the current connection
// vector every call, then blocks in a single syscall.Poll-equivalent
// wait (spec §4.6 step 2, grounded on
// app/internal/window/os_x11.go's syscall.Poll(fds, -1) call).
type UnixPoller struct {
	listenFd, keyboardFd, pointerFd int
}

func NewUnixPoller(listener fdent, keyboardFd, pointerFd int) *UnixPoller {
	return &UnixPoller{
		listenFd:   listener.Fd(),
		keyboardFd: keyboardFd,
		pointerFd:  pointerFd,
	}
}

const (
	slotListen = iota
	slotKeyboard
	slotPointer
	fixedSlots
)

// Poll implements Poller.
func (p *UnixPoller) Poll(conns []*conn.Connection) (Readiness, error) {
	fds := make([]unix.PollFd, fixedSlots+len(conns))
	fds[slotListen] = unix.PollFd{Fd: int32(p.listenFd), Events: unix.POLLIN}
	fds[slotKeyboard] = unix.PollFd{Fd: int32(p.keyboardFd), Events: unix.POLLIN}
	fds[slotPointer] = unix.PollFd{Fd: int32(p.pointerFd), Events: unix.POLLIN}

	for i, c := range conns {
		var events int16 = unix.POLLIN
		if c.PollOutInterest() {
			events |= unix.POLLOUT
		}
		fds[fixedSlots+i] = unix.PollFd{Fd: int32(c.Fd()), Events: events}
	}

	_, err := unix.Poll(fds, -1)
	if err == unix.EINTR {
		return Readiness{}, nil
	}
	if err != nil {
		return Readiness{}, err
	}

	r := Readiness{
		Listen:   fds[slotListen].Revents&unix.POLLIN != 0,
		Keyboard: fds[slotKeyboard].Revents&unix.POLLIN != 0,
		Pointer:  fds[slotPointer].Revents&unix.POLLIN != 0,
		Conns:    make([]ConnReadiness, len(conns)),
	}
	for i := range conns {
		rev := fds[fixedSlots+i].Revents
		r.Conns[i] = ConnReadiness{
			In:        rev&unix.POLLIN != 0,
			Out:       rev&unix.POLLOUT != 0,
			ErrHangup: rev&(unix.POLLERR|unix.POLLHUP|unix.POLLNVAL) != 0,
		}
	}
	return r, nil
}
