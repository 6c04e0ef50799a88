// Command display is the compositing display server: it owns the
// framebuffer, keyboard, and pointer devices, accepts client
// connections on a local socket, and runs the windowing event loop
// described by the wire protocol in internal/protocol (spec.md §6).
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"display/internal/bootstrap"
)

const (
	defaultScreenW = 1920
	defaultScreenH = 1080
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := bootstrap.Config{
		MouseDevice: "/dev/input/mice",
		SocketPath:  bootstrap.DefaultSocketPath,
		TTYDevice:   "/dev/tty0",
		ScreenW:     defaultScreenW,
		ScreenH:     defaultScreenH,
	}

	cmd := &cobra.Command{
		Use:   "display [session-argv...]",
		Short: "Single-seat compositing display server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.SessionArgv = args
			log := newLogger()
			code, err := bootstrap.Run(cfg, log)
			if err != nil {
				log.Error().Err(err).Msg("server exited with error")
			}
			os.Exit(code)
			return nil
		},
	}

	cmd.Flags().StringVarP(&cfg.MouseDevice, "mouse", "m", cfg.MouseDevice, "pointer device path")
	cmd.Flags().StringVarP(&cfg.SocketPath, "socket", "s", cfg.SocketPath, "listening socket path")
	cmd.Flags().StringVarP(&cfg.TTYDevice, "tty", "t", cfg.TTYDevice, "keyboard TTY device path")

	return cmd
}

func newLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}
