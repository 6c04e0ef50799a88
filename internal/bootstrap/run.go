package bootstrap

import (
	"os"
	"os/exec"

	"github.com/rs/zerolog"

	"display/internal/display"
	"display/internal/server"
)

const defaultTerminal = "/bin/sh"

// Run performs the full startup sequence and then drives the event loop
// until Display.Running goes false, returning the exit code recorded by
// display_exit (spec.md §6 "Exit codes").
func Run(cfg Config, log zerolog.Logger) (int, error) {
	if err := EnforceOwnProcessGroup(); err != nil {
		return 1, err
	}

	listener, err := OpenSocket(cfg.SocketPath)
	if err != nil {
		return 1, err
	}
	defer listener.Close()

	keyboard, keyboardFd, err := OpenKeyboard(cfg.TTYDevice)
	if err != nil {
		return 1, err
	}
	pointer, pointerFd, err := OpenPointer(cfg.MouseDevice)
	if err != nil {
		return 1, err
	}
	fb, err := OpenFramebuffer(DefaultFramebufferDevice)
	if err != nil {
		return 1, err
	}

	hooks := display.Hooks{
		SpawnTerminal: func() error {
			cmd := exec.Command(defaultTerminal)
			cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
			return cmd.Start()
		},
	}
	d := display.New(cfg.ScreenW, cfg.ScreenH, hooks, log)

	poller := server.NewUnixPoller(listener, keyboardFd, pointerFd)
	srv := server.New(d, listener, keyboard, pointer, fb, poller, log, nil)

	home := os.Getenv("HOME")
	argv, err := cfg.ResolveSessionArgv(home)
	if err != nil {
		return 1, err
	}
	if _, err := SpawnSession(argv, cfg.SocketPath, log); err != nil {
		return 1, err
	}

	if err := SignalReady(); err != nil {
		log.Warn().Err(err).Msg("READYFD signal failed")
	}

	for d.Running {
		if err := srv.Tick(); err != nil {
			log.Error().Err(err).Msg("event loop tick failed")
			return 1, err
		}
	}

	// display_exit sets Redraw within the same Tick that noticed the
	// shutdown request, after that Tick's own render already ran; render
	// once more so the shutdown announcement is actually visible before
	// the process exits (spec.md §4 "the event loop performs one final
	// render so the message is visible, then terminates").
	if err := srv.FinalRender(); err != nil {
		log.Error().Err(err).Msg("final render failed")
		return 1, err
	}
	return d.ExitCode, nil
}
