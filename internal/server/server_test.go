package server

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"display/internal/conn"
	"display/internal/devinput"
	"display/internal/display"
	"display/internal/fbdevice"
	"display/internal/protocol"
)

func discardLogger() zerolog.Logger { return zerolog.Nop() }

// fakeSocket is the same scriptable in-memory Socket the conn package
// tests against, duplicated here since it is unexported there.
type fakeSocket struct {
	reads   [][]byte
	written []byte
	closed  bool
}

func (s *fakeSocket) queueRead(b []byte) { s.reads = append(s.reads, append([]byte{}, b...)) }

func (s *fakeSocket) Recv(buf []byte) (int, error) {
	if len(s.reads) == 0 {
		return 0, conn.ErrWouldBlock
	}
	next := s.reads[0]
	if next == nil {
		s.reads = s.reads[1:]
		return 0, nil
	}
	n := copy(buf, next)
	if n < len(next) {
		s.reads[0] = next[n:]
	} else {
		s.reads = s.reads[1:]
	}
	return n, nil
}

func (s *fakeSocket) Send(buf []byte) (int, error) {
	s.written = append(s.written, buf...)
	return len(buf), nil
}

func (s *fakeSocket) Close() error { s.closed = true; return nil }

// fakeListener hands out at most one queued socket per Accept call.
type fakeListener struct {
	pending []conn.Socket
}

func (l *fakeListener) Accept() (conn.Socket, error) {
	if len(l.pending) == 0 {
		return nil, conn.ErrWouldBlock
	}
	s := l.pending[0]
	l.pending = l.pending[1:]
	return s, nil
}

// scriptedPoller returns each scripted Readiness once, in order, then
// idle Readiness (nothing ready) on every subsequent call, letting a
// test drive a fixed sequence of interesting Ticks.
type scriptedPoller struct {
	script []Readiness
}

func (p *scriptedPoller) Poll(conns []*conn.Connection) (Readiness, error) {
	if len(p.script) == 0 {
		return Readiness{Conns: make([]ConnReadiness, len(conns))}, nil
	}
	r := p.script[0]
	p.script = p.script[1:]
	return r, nil
}

type fakeKeyboardReader struct {
	chunks [][]byte
	// err, if set, is returned once chunks is exhausted instead of
	// ErrWouldBlock, standing in for a real device read failure.
	err error
}

func (r *fakeKeyboardReader) Read(buf []byte) (int, error) {
	if len(r.chunks) == 0 {
		if r.err != nil {
			return 0, r.err
		}
		return 0, devinput.ErrWouldBlock
	}
	next := r.chunks[0]
	r.chunks = r.chunks[1:]
	return copy(buf, next), nil
}

func newServerForTest(listener Listener, poller Poller) (*Server, *display.Display) {
	return newServerForTestWithDevices(listener, poller, &fakeKeyboardReader{}, &fakeKeyboardReader{}, &fbdevice.FakeDevice{})
}

func newServerForTestWithDevices(listener Listener, poller Poller, kbReader, ptrReader devinput.Reader, fb fbdevice.Device) (*Server, *display.Display) {
	d := display.New(800, 600, display.Hooks{}, discardLogger())
	kb := devinput.NewKeyboardDevice(kbReader)
	ptr := devinput.NewPointerDevice(ptrReader)
	now := func() time.Time { return time.Unix(0, 0) }
	s := New(d, listener, kb, ptr, fb, poller, discardLogger(), now)
	return s, d
}

func encodePacket(id uint32, fixed, aux []byte) []byte {
	body := append(append([]byte{}, fixed...), aux...)
	h := protocol.Header{ID: id, Size: uint32(len(body))}
	enc := h.Encode()
	return append(append([]byte{}, enc[:]...), body...)
}

func TestTickAcceptsNewConnection(t *testing.T) {
	sock := &fakeSocket{}
	listener := &fakeListener{pending: []conn.Socket{sock}}
	poller := &scriptedPoller{script: []Readiness{{Listen: true}}}
	s, _ := newServerForTest(listener, poller)

	if err := s.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if len(s.conns) != 1 {
		t.Fatalf("conns = %d, want 1", len(s.conns))
	}
	if s.conns[0].ID != 0 {
		t.Fatalf("first connection id = %d, want 0", s.conns[0].ID)
	}
}

func TestTickIngestsCreateWindow(t *testing.T) {
	sock := &fakeSocket{}
	pkt := encodePacket(protocol.MsgCreateWindow, protocol.WindowIDMessage{WindowID: 5}.Encode(), nil)
	sock.queueRead(pkt)

	listener := &fakeListener{pending: []conn.Socket{sock}}
	poller := &scriptedPoller{script: []Readiness{
		{Listen: true},
		{Conns: []ConnReadiness{{In: true}}},
	}}
	s, d := newServerForTest(listener, poller)

	if err := s.Tick(); err != nil {
		t.Fatalf("accept Tick: %v", err)
	}
	if err := s.Tick(); err != nil {
		t.Fatalf("ingest Tick: %v", err)
	}

	w := s.conns[0].Window(5)
	if w == nil || !w.Created {
		t.Fatal("window 5 was not created")
	}
	active, ok := d.Active()
	if !ok || active != (display.Handle{ConnID: 0, WindowID: 5}) {
		t.Fatal("new window did not become active")
	}
}

func TestTickOversizePacketDestroysOnlyThatConnection(t *testing.T) {
	bad := &fakeSocket{}
	oversizeHeader := protocol.Header{ID: protocol.MsgRenderWindow, Size: protocol.MaxPacketSize + 1}.Encode()
	bad.queueRead(oversizeHeader[:])

	good := &fakeSocket{}
	goodPkt := encodePacket(protocol.MsgCreateWindow, protocol.WindowIDMessage{WindowID: 1}.Encode(), nil)
	good.queueRead(goodPkt)

	listener := &fakeListener{pending: []conn.Socket{bad, good}}
	poller := &scriptedPoller{script: []Readiness{
		{Listen: true},
		{Listen: true},
		{Conns: []ConnReadiness{{In: true}, {In: true}}},
	}}
	s, _ := newServerForTest(listener, poller)

	if err := s.Tick(); err != nil {
		t.Fatalf("tick1: %v", err)
	}
	if err := s.Tick(); err != nil {
		t.Fatalf("tick2: %v", err)
	}
	if err := s.Tick(); err != nil {
		t.Fatalf("tick3: %v", err)
	}

	if len(s.conns) != 1 {
		t.Fatalf("conns = %d, want 1 (oversize connection destroyed)", len(s.conns))
	}
	if !bad.closed {
		t.Fatal("oversize connection was not closed")
	}
	if good.closed {
		t.Fatal("healthy connection must not be closed")
	}
	if s.conns[0].Window(1) == nil {
		t.Fatal("surviving connection's window was not created")
	}
}

func TestTickHangupDestroysConnection(t *testing.T) {
	sock := &fakeSocket{}
	listener := &fakeListener{pending: []conn.Socket{sock}}
	poller := &scriptedPoller{script: []Readiness{
		{Listen: true},
		{Conns: []ConnReadiness{{ErrHangup: true}}},
	}}
	s, _ := newServerForTest(listener, poller)

	if err := s.Tick(); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if err := s.Tick(); err != nil {
		t.Fatalf("hangup: %v", err)
	}
	if len(s.conns) != 0 {
		t.Fatalf("conns = %d, want 0 after hangup", len(s.conns))
	}
	if !sock.closed {
		t.Fatal("hung-up connection was not closed")
	}
}

func TestTickRendersAndSubmitsWhenRedrawSet(t *testing.T) {
	listener := &fakeListener{}
	poller := &scriptedPoller{}
	s, d := newServerForTest(listener, poller)
	fb := s.fb.(*fbdevice.FakeDevice)

	d.Redraw = true
	if err := s.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if len(fb.Calls) != 1 {
		t.Fatalf("fb submit calls = %d, want 1", len(fb.Calls))
	}
	if fb.Calls[0].Size != len(d.Output.Buf)*4 {
		t.Fatalf("submit size = %d, want %d", fb.Calls[0].Size, len(d.Output.Buf)*4)
	}
}

// panickingSocket panics on Recv, standing in for an allocation
// failure deep in a connection's receive path.
type panickingSocket struct{ fakeSocket }

func (s *panickingSocket) Recv(buf []byte) (int, error) {
	panic("simulated allocation failure")
}

func TestTickRecoversFromIngestPanicAndDropsOnlyThatConnection(t *testing.T) {
	bad := &panickingSocket{}
	good := &fakeSocket{}
	good.queueRead(encodePacket(protocol.MsgCreateWindow, protocol.WindowIDMessage{WindowID: 2}.Encode(), nil))

	listener := &fakeListener{pending: []conn.Socket{bad, good}}
	poller := &scriptedPoller{script: []Readiness{
		{Listen: true},
		{Listen: true},
		{Conns: []ConnReadiness{{In: true}, {In: true}}},
	}}
	s, _ := newServerForTest(listener, poller)

	if err := s.Tick(); err != nil {
		t.Fatalf("tick1: %v", err)
	}
	if err := s.Tick(); err != nil {
		t.Fatalf("tick2: %v", err)
	}
	if err := s.Tick(); err != nil {
		t.Fatalf("tick3 (must not propagate the panic): %v", err)
	}

	if len(s.conns) != 1 {
		t.Fatalf("conns = %d, want 1 (panicking connection dropped)", len(s.conns))
	}
	if s.conns[0].Window(2) == nil {
		t.Fatal("surviving connection's window was not created")
	}
}

func TestTickSkipsSubmitWhenNoRedraw(t *testing.T) {
	listener := &fakeListener{}
	poller := &scriptedPoller{}
	s, d := newServerForTest(listener, poller)
	fb := s.fb.(*fbdevice.FakeDevice)

	d.Redraw = false
	if err := s.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if len(fb.Calls) != 0 {
		t.Fatalf("fb submit calls = %d, want 0", len(fb.Calls))
	}
}

var errDeviceFailure = errors.New("simulated device failure")

func TestTickPropagatesFramebufferSubmitFailure(t *testing.T) {
	listener := &fakeListener{}
	poller := &scriptedPoller{}
	fb := &fbdevice.FakeDevice{Err: errDeviceFailure}
	s, d := newServerForTestWithDevices(listener, poller, &fakeKeyboardReader{}, &fakeKeyboardReader{}, fb)

	d.Redraw = true
	if err := s.Tick(); !errors.Is(err, errDeviceFailure) {
		t.Fatalf("Tick error = %v, want %v", err, errDeviceFailure)
	}
}

func TestTickPropagatesKeyboardReadFailure(t *testing.T) {
	listener := &fakeListener{}
	poller := &scriptedPoller{script: []Readiness{{Keyboard: true}}}
	kbReader := &fakeKeyboardReader{err: errDeviceFailure}
	s, _ := newServerForTestWithDevices(listener, poller, kbReader, &fakeKeyboardReader{}, &fbdevice.FakeDevice{})

	if err := s.Tick(); !errors.Is(err, errDeviceFailure) {
		t.Fatalf("Tick error = %v, want %v", err, errDeviceFailure)
	}
}

func TestTickPropagatesPointerReadFailure(t *testing.T) {
	listener := &fakeListener{}
	poller := &scriptedPoller{script: []Readiness{{Pointer: true}}}
	ptrReader := &fakeKeyboardReader{err: errDeviceFailure}
	s, _ := newServerForTestWithDevices(listener, poller, &fakeKeyboardReader{}, ptrReader, &fbdevice.FakeDevice{})

	if err := s.Tick(); !errors.Is(err, errDeviceFailure) {
		t.Fatalf("Tick error = %v, want %v", err, errDeviceFailure)
	}
}

func TestFinalRenderSubmitsShutdownAnnouncement(t *testing.T) {
	listener := &fakeListener{}
	poller := &scriptedPoller{}
	s, d := newServerForTest(listener, poller)
	fb := s.fb.(*fbdevice.FakeDevice)

	d.Redraw = false
	d.Exit(0)
	if !d.Redraw {
		t.Fatal("Exit did not set Redraw")
	}

	if err := s.FinalRender(); err != nil {
		t.Fatalf("FinalRender: %v", err)
	}
	if len(fb.Calls) != 1 {
		t.Fatalf("fb submit calls = %d, want 1", len(fb.Calls))
	}
	if d.Redraw {
		t.Fatal("FinalRender left Redraw set")
	}
}

func TestFinalRenderNoopWithoutPendingRedraw(t *testing.T) {
	listener := &fakeListener{}
	poller := &scriptedPoller{}
	s, d := newServerForTest(listener, poller)
	fb := s.fb.(*fbdevice.FakeDevice)

	d.Redraw = false
	if err := s.FinalRender(); err != nil {
		t.Fatalf("FinalRender: %v", err)
	}
	if len(fb.Calls) != 0 {
		t.Fatalf("fb submit calls = %d, want 0", len(fb.Calls))
	}
}
