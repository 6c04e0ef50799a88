package protocol

// FixedSize returns the byte length of the fixed portion of the
// client message identified by id, and whether id is known. conn
// uses this to split an incoming packet's body into (fixed, aux)
// before dispatching (spec §4.2).
func FixedSize(id uint32) (size int, ok bool) {
	switch id {
	case MsgCreateWindow, MsgDestroyWindow, MsgShowWindow, MsgHideWindow:
		return windowIDMessageSize, true
	case MsgResizeWindow:
		return resizeWindowSize, true
	case MsgRenderWindow:
		return renderWindowSize, true
	case MsgTitleWindow:
		return titleWindowSize, true
	case MsgShutdown:
		return shutdownSize, true
	case MsgChkBLayout:
		return chkbLayoutSize, true
	case MsgRequestDisplays:
		return requestDisplaysSize, true
	case MsgRequestDisplayModes, MsgRequestDisplayMode:
		return displayIDMessageSize, true
	case MsgSetDisplayMode:
		return setDisplayModeSize, true
	default:
		return 0, false
	}
}

// HasAux reports whether the client message identified by id carries
// a variable-length auxiliary payload beyond its fixed struct (spec
// §4.2: render_window, title_window, chkblayout).
func HasAux(id uint32) bool {
	switch id {
	case MsgRenderWindow, MsgTitleWindow, MsgChkBLayout:
		return true
	default:
		return false
	}
}
