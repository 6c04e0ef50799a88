// Package bootstrap implements the server's startup sequence: flag/rc
// parsing, device opening, process-group enforcement, READYFD
// signaling, and spawning the session child (spec.md §6 "CLI",
// "Environment"). None of it is on the per-frame hot path, so it is
// kept out of internal/server, which owns only the event loop itself.
package bootstrap

import (
	"os"
	"path/filepath"
)

const (
	// DefaultSocketPath is used when -s/--socket is not given.
	DefaultSocketPath = "/run/display"
	// DefaultFramebufferDevice is the output device node; spec.md §6
	// names no CLI flag for it, so it is fixed, matching a kernel
	// framebuffer's conventional single well-known path.
	DefaultFramebufferDevice = "/dev/fb0"

	socketEnvVar  = "DISPLAY_SOCKET"
	readyFDEnvVar = "READYFD"
)

// Config is the parsed command line (spec.md §6 "CLI").
type Config struct {
	MouseDevice string
	SocketPath  string
	TTYDevice   string
	ScreenW     int
	ScreenH     int
	SessionArgv []string
}

// ResolveSessionArgv returns the argv to spawn as the session child: the
// trailing CLI arguments if any were given, otherwise the first
// existing rc file among ~/.displayrc, /etc/displayrc,
// /etc/default/displayrc, run with /bin/sh (spec.md §6 "With no
// trailing arguments...").
func (c *Config) ResolveSessionArgv(home string) ([]string, error) {
	if len(c.SessionArgv) > 0 {
		return c.SessionArgv, nil
	}
	candidates := []string{
		filepath.Join(home, ".displayrc"),
		"/etc/displayrc",
		"/etc/default/displayrc",
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return []string{"/bin/sh", path}, nil
		}
	}
	return nil, errNoSessionFile
}
