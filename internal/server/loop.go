package server

import (
	"display/internal/conn"
	"display/internal/display"
	"display/internal/protocol"
)

// Tick runs exactly one iteration of the event loop (spec §4.6). A
// non-nil error means a device I/O failure on the framebuffer,
// keyboard, or pointer, which spec §7 treats as fatal: the caller must
// stop ticking and exit with a nonzero code.
func (s *Server) Tick() error {
	if s.Display.Redraw {
		if err := s.submitFrame(); err != nil {
			return err
		}
	}

	readiness, err := s.poller.Poll(s.conns)
	if err != nil {
		return err
	}

	if readiness.Listen {
		s.acceptOne()
	}
	if readiness.Keyboard {
		if err := s.pumpKeyboard(); err != nil {
			return err
		}
	}
	if readiness.Pointer {
		if err := s.pumpPointer(); err != nil {
			return err
		}
	}

	for i, c := range s.conns {
		if i >= len(readiness.Conns) {
			break
		}
		r := readiness.Conns[i]
		if r.ErrHangup {
			c.DestroyAll(s.Display)
			c.Close()
			c.Dead = true
			continue
		}
		if r.Out {
			if err := c.Drain(); err != nil {
				c.DestroyAll(s.Display)
				c.Close()
				c.Dead = true
				continue
			}
		}
		if r.In {
			if err := s.safeIngest(c); err != nil {
				c.DestroyAll(s.Display)
				c.Close()
				c.Dead = true
			}
		}
	}

	s.compact()
	return nil
}

func (s *Server) acceptOne() {
	sock, err := s.listener.Accept()
	if err == conn.ErrWouldBlock {
		return
	}
	if err != nil {
		s.log.Warn().Err(err).Msg("accept failed")
		return
	}
	id := s.nextConnID
	s.nextConnID++
	s.conns = append(s.conns, conn.New(id, sock, s.log))
}

// pumpKeyboard drains every buffered keyboard event. KeyboardDevice
// already swallows ErrWouldBlock into a (nil, nil) return, so any error
// reaching here is a real device failure, fatal per spec §7 ("device
// I/O failure on the framebuffer or input devices ... the server
// cannot continue").
func (s *Server) pumpKeyboard() error {
	for {
		events, err := s.keyboard.ReadEvents()
		if err != nil {
			return err
		}
		if len(events) == 0 {
			return nil
		}
		for _, ev := range events {
			s.Display.HandleKeyEvent(ev, s, s)
		}
	}
}

// pumpPointer drains every buffered pointer byte; see pumpKeyboard.
func (s *Server) pumpPointer() error {
	for {
		b, err := s.pointer.ReadBytes()
		if err != nil {
			return err
		}
		if len(b) == 0 {
			return nil
		}
		for _, by := range b {
			s.Display.FeedMousePacketByte(by, s.now(), s, s)
		}
	}
}

// safeIngest runs one connection's Ingest, converting a panic from an
// allocation path (the body/ring-buffer grows in internal/conn use a
// plain Go make, which panics rather than returning an error on
// failure) into the same connection-drop outcome a returned error
// produces, matching spec §7's "allocation failure: connection-local:
// drop the connection" policy even though Go has no fallible-alloc API
// to check explicitly.
func (s *Server) safeIngest(c *conn.Connection) (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Uint32("conn", c.ID).Msg("ingest panicked, dropping connection")
			err = errIngestPanicked
		}
	}()
	_, err = c.Ingest(s.Display, s, s)
	return err
}

// compact removes destroyed connections, preserving order (spec §4.6 step 8).
func (s *Server) compact() {
	live := s.conns[:0]
	for _, c := range s.conns {
		if !c.Dead {
			live = append(live, c)
		}
	}
	s.conns = live
}

func (s *Server) submitFrame() error {
	s.Display.Render(s)
	pixels := s.Display.Output.Buf
	return s.fb.Submit(0, 0, len(pixels)*4, pixels)
}

// FinalRender performs the one extra render+submit spec.md §6/§141
// requires after display_exit sets the shutdown announcement: the Tick
// that called Exit already rendered and submitted before Exit ran, so
// the announcement frame would otherwise never reach the framebuffer.
// Callers run this once after the Tick loop stops, before exiting.
func (s *Server) FinalRender() error {
	if !s.Display.Redraw {
		return nil
	}
	return s.submitFrame()
}

func codepointOf(ev display.KeyEvent) int32 {
	return protocol.EncodeCodepoint(ev.Code, ev.Rune, ev.Down)
}
