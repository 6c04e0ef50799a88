package conn

import (
	"display/internal/display"
	"display/internal/pixel"
	"display/internal/protocol"
	"display/internal/window"
)

// dispatch resolves header.ID against the client-message table (spec
// §4.2). Unknown ids are silently consumed; structural errors send an
// ack carrying the request id and a non-zero error code without
// dropping the connection.
func (c *Connection) dispatch(header protocol.Header, body []byte, d *display.Display, src display.WindowSource, sink display.EventSink) {
	if !protocol.IsKnownClientMessage(header.ID) {
		return
	}
	fixedSize, _ := protocol.FixedSize(header.ID)
	if len(body) < fixedSize {
		c.sendAck(0, protocol.ErrMalformed)
		return
	}
	fixed, aux := body[:fixedSize], body[fixedSize:]

	switch header.ID {
	case protocol.MsgCreateWindow:
		c.handleCreateWindow(fixed, d, src, sink)
	case protocol.MsgDestroyWindow:
		c.handleDestroyWindow(fixed, d)
	case protocol.MsgResizeWindow:
		c.handleResizeWindow(fixed, d, sink)
	case protocol.MsgRenderWindow:
		c.handleRenderWindow(fixed, aux, d)
	case protocol.MsgTitleWindow:
		c.handleTitleWindow(fixed, aux, d)
	case protocol.MsgShowWindow:
		c.handleShowWindow(fixed, d)
	case protocol.MsgHideWindow:
		c.handleHideWindow(fixed, d)
	case protocol.MsgShutdown:
		c.handleShutdown(fixed, d)
	case protocol.MsgChkBLayout:
		c.handleChkBLayout(fixed, aux)
	case protocol.MsgRequestDisplays:
		c.handleRequestDisplays(fixed)
	case protocol.MsgRequestDisplayModes:
		c.handleRequestDisplayModes(fixed, d)
	case protocol.MsgRequestDisplayMode:
		c.handleRequestDisplayMode(fixed, d)
	case protocol.MsgSetDisplayMode:
		c.handleSetDisplayMode(fixed, d, src)
	}
}

func (c *Connection) handleCreateWindow(fixed []byte, d *display.Display, src display.WindowSource, sink display.EventSink) {
	m, err := protocol.DecodeWindowIDMessage(fixed)
	if err != nil {
		c.sendAck(0, protocol.ErrMalformed)
		return
	}
	if m.WindowID >= window.MaxWindows {
		c.sendAck(m.WindowID, protocol.ErrMalformed)
		return
	}
	w := window.New(c.ID, m.WindowID)
	x, y := d.NextCascadePosition()
	w.Geometry.Left, w.Geometry.Top = x, y
	c.windows[m.WindowID] = w
	h := display.Handle{ConnID: c.ID, WindowID: m.WindowID}
	d.LinkAtTop(h)
	d.SetActive(h, src, sink)
	d.Redraw = true
}

func (c *Connection) handleDestroyWindow(fixed []byte, d *display.Display) {
	m, err := protocol.DecodeWindowIDMessage(fixed)
	if err != nil {
		c.sendAck(0, protocol.ErrMalformed)
		return
	}
	w := c.Window(m.WindowID)
	if w == nil {
		c.sendAck(m.WindowID, protocol.ErrUnknownWindow)
		return
	}
	d.UnlinkForRemoval(display.Handle{ConnID: c.ID, WindowID: m.WindowID})
	c.windows[m.WindowID] = nil
	d.Redraw = true
}

func (c *Connection) handleResizeWindow(fixed []byte, d *display.Display, sink display.EventSink) {
	m, err := protocol.DecodeResizeWindow(fixed)
	if err != nil {
		c.sendAck(0, protocol.ErrMalformed)
		return
	}
	w := c.Window(m.WindowID)
	if w == nil {
		c.sendAck(m.WindowID, protocol.ErrUnknownWindow)
		return
	}
	w.ClientResize(int(m.Width), int(m.Height))
	h := display.Handle{ConnID: c.ID, WindowID: m.WindowID}
	sink.SendResize(h, w.ClientW, w.ClientH)
	d.Redraw = true
}

func (c *Connection) handleRenderWindow(fixed, aux []byte, d *display.Display) {
	m, err := protocol.DecodeRenderWindow(fixed)
	if err != nil {
		c.sendAck(0, protocol.ErrMalformed)
		return
	}
	w := c.Window(m.WindowID)
	if w == nil {
		c.sendAck(m.WindowID, protocol.ErrUnknownWindow)
		return
	}
	if err := m.ValidateRenderAux(aux); err != nil {
		c.sendAck(m.WindowID, protocol.ErrAuxSizeMismatch)
		return
	}
	words := protocol.RenderPixels(aux)
	pixels := make([]pixel.Pixel, len(words))
	for i, v := range words {
		pixels[i] = pixel.Pixel(v)
	}
	w.SubmitPixels(int(m.Left), int(m.Top), int(m.Width), int(m.Height), pixels)
	d.Redraw = true
}

func (c *Connection) handleTitleWindow(fixed, aux []byte, d *display.Display) {
	m, err := protocol.DecodeTitleWindow(fixed)
	if err != nil {
		c.sendAck(0, protocol.ErrMalformed)
		return
	}
	w := c.Window(m.WindowID)
	if w == nil {
		c.sendAck(m.WindowID, protocol.ErrUnknownWindow)
		return
	}
	w.Decoration.Title = string(aux)
	w.Render()
	d.Redraw = true
}

func (c *Connection) handleShowWindow(fixed []byte, d *display.Display) {
	m, err := protocol.DecodeWindowIDMessage(fixed)
	if err != nil {
		c.sendAck(0, protocol.ErrMalformed)
		return
	}
	w := c.Window(m.WindowID)
	if w == nil {
		c.sendAck(m.WindowID, protocol.ErrUnknownWindow)
		return
	}
	w.Decoration.Show = true
	d.Redraw = true
}

func (c *Connection) handleHideWindow(fixed []byte, d *display.Display) {
	m, err := protocol.DecodeWindowIDMessage(fixed)
	if err != nil {
		c.sendAck(0, protocol.ErrMalformed)
		return
	}
	w := c.Window(m.WindowID)
	if w == nil {
		c.sendAck(m.WindowID, protocol.ErrUnknownWindow)
		return
	}
	w.Decoration.Show = false
	d.Redraw = true
}

func (c *Connection) handleShutdown(fixed []byte, d *display.Display) {
	m, err := protocol.DecodeShutdown(fixed)
	if err != nil {
		c.sendAck(0, protocol.ErrMalformed)
		return
	}
	d.Exit(int(m.Code))
}

func (c *Connection) handleChkBLayout(fixed, aux []byte) {
	m, err := protocol.DecodeChkBLayout(fixed)
	if err != nil {
		c.sendAck(0, protocol.ErrMalformed)
		return
	}
	// The layout blob in aux is neither interpreted nor forwarded: this
	// server has no keyboard-layout consumer of its own, so chkblayout
	// is simply acknowledged.
	c.sendAck(m.ID, protocol.ErrNone)
}

func (c *Connection) handleRequestDisplays(fixed []byte) {
	m, err := protocol.DecodeRequestDisplays(fixed)
	if err != nil {
		c.sendAck(0, protocol.ErrMalformed)
		return
	}
	c.sendEvent(protocol.EventDisplays, protocol.Displays{IDs: []uint32{0}}.Encode())
	c.sendAck(m.ID, protocol.ErrNone)
}

func (c *Connection) handleRequestDisplayModes(fixed []byte, d *display.Display) {
	m, err := protocol.DecodeDisplayIDMessage(fixed)
	if err != nil {
		c.sendAck(0, protocol.ErrMalformed)
		return
	}
	if m.DisplayID != 0 {
		c.sendAck(m.ID, protocol.ErrNoSuchDisplay)
		return
	}
	mode := currentMode(d)
	c.sendEvent(protocol.EventDisplayModes, protocol.DisplayModesEvent{DisplayID: 0, Modes: []protocol.Mode{mode}}.Encode())
	c.sendAck(m.ID, protocol.ErrNone)
}

func (c *Connection) handleRequestDisplayMode(fixed []byte, d *display.Display) {
	m, err := protocol.DecodeDisplayIDMessage(fixed)
	if err != nil {
		c.sendAck(0, protocol.ErrMalformed)
		return
	}
	if m.DisplayID != 0 {
		c.sendAck(m.ID, protocol.ErrNoSuchDisplay)
		return
	}
	c.sendEvent(protocol.EventDisplayMode, protocol.DisplayModeEvent{DisplayID: 0, Mode: currentMode(d)}.Encode())
	c.sendAck(m.ID, protocol.ErrNone)
}

func (c *Connection) handleSetDisplayMode(fixed []byte, d *display.Display, src display.WindowSource) {
	m, err := protocol.DecodeSetDisplayMode(fixed)
	if err != nil {
		c.sendAck(0, protocol.ErrMalformed)
		return
	}
	if m.DisplayID != 0 {
		c.sendAck(m.ID, protocol.ErrNoSuchDisplay)
		return
	}
	d.ApplyResolutionChange(int(m.Mode.Width), int(m.Mode.Height), src)
	c.sendAck(m.ID, protocol.ErrNone)
}

func currentMode(d *display.Display) protocol.Mode {
	return protocol.Mode{Width: uint32(d.ScreenW), Height: uint32(d.ScreenH), RefreshHz: 60}
}
