// Package server implements the event loop: accept new connections,
// multiplex-wait on listen/keyboard/pointer/connection fds, dispatch
// readiness to the right subsystem, and compact the connection vector
// (spec §4.6). The blocking wait itself is abstracted behind Poller so
// the iteration logic — the part with actual branching to get right —
// can run against a scripted fake, the same split
// app/internal/window/os_x11.go draws between its XPending()-driven
// decode and the syscall.Poll call that wakes it.
package server

import (
	"time"

	"github.com/rs/zerolog"

	"display/internal/conn"
	"display/internal/devinput"
	"display/internal/display"
	"display/internal/fbdevice"
	"display/internal/window"
)

// Listener accepts new client connections, non-blockingly.
type Listener interface {
	// Accept returns a freshly accepted Socket, or conn.ErrWouldBlock
	// if none is pending, or a hard error.
	Accept() (conn.Socket, error)
}

// Readiness is what one Poll call reports: which fixed slots woke the
// loop, and which connections (by index into the Server's current
// connection vector, matching Poll's input order) are readable/
// writable/errored (spec §4.6 step 2-3).
type Readiness struct {
	Listen, Keyboard, Pointer bool
	Conns                     []ConnReadiness
}

// ConnReadiness is the per-connection subset of spec §4.6 step 7.
type ConnReadiness struct {
	In, Out, ErrHangup bool
}

// Poller performs the multiplexed wait. conns is passed so the real
// implementation can rebuild its poll-descriptor array from each
// connection's fd and POLLOUT interest (spec §4.6 step 2); it returns
// readiness indexed the same way conns was ordered.
type Poller interface {
	Poll(conns []*conn.Connection) (Readiness, error)
}

// Server owns the connection vector and device readers, and implements
// display.WindowSource/display.EventSink by resolving a Handle's ConnID
// against that vector — the concrete form of spec §9's "model
// back-pointers as indices ... resolve at point of use".
type Server struct {
	Display *display.Display

	listener Listener
	keyboard *devinput.KeyboardDevice
	pointer  *devinput.PointerDevice
	fb       fbdevice.Device
	poller   Poller
	log      zerolog.Logger
	now      func() time.Time

	conns      []*conn.Connection
	nextConnID uint32
}

// New returns a Server ready to run. now defaults to time.Now if nil
// (tests inject a fixed clock for deterministic double-click timing).
func New(d *display.Display, listener Listener, keyboard *devinput.KeyboardDevice, pointer *devinput.PointerDevice, fb fbdevice.Device, poller Poller, log zerolog.Logger, now func() time.Time) *Server {
	if now == nil {
		now = time.Now
	}
	return &Server{
		Display:  d,
		listener: listener,
		keyboard: keyboard,
		pointer:  pointer,
		fb:       fb,
		poller:   poller,
		log:      log,
		now:      now,
	}
}

func (s *Server) connByID(id uint32) *conn.Connection {
	for _, c := range s.conns {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// Lookup implements display.WindowSource.
func (s *Server) Lookup(h display.Handle) *window.Window {
	c := s.connByID(h.ConnID)
	if c == nil {
		return nil
	}
	return c.Window(h.WindowID)
}

// SendResize implements display.EventSink.
func (s *Server) SendResize(h display.Handle, width, height int) {
	if c := s.connByID(h.ConnID); c != nil {
		c.EmitResize(h.WindowID, width, height)
	}
}

// SendKeyboard implements display.EventSink.
func (s *Server) SendKeyboard(h display.Handle, ev display.KeyEvent) {
	if c := s.connByID(h.ConnID); c != nil {
		c.EmitKeyboard(h.WindowID, codepointOf(ev))
	}
}

// SendQuit implements display.EventSink.
func (s *Server) SendQuit(h display.Handle) {
	if c := s.connByID(h.ConnID); c != nil {
		c.EmitQuit(h.WindowID)
	}
}
