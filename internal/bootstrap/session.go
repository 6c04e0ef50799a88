package bootstrap

import (
	"os"
	"os/exec"
	"syscall"

	"github.com/rs/zerolog"
)

// SpawnSession starts argv as the session child, exporting socketPath
// via DISPLAY_SOCKET (spec.md §6 "The path is exported to the child
// session process via an environment variable") and inheriting the
// server's stdio so session output reaches the same terminal/log.
func SpawnSession(argv []string, socketPath string, log zerolog.Logger) (*exec.Cmd, error) {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Env = append(os.Environ(), socketEnvVar+"="+socketPath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := cmd.Start(); err != nil {
		return nil, err
	}
	log.Info().Strs("argv", argv).Int("pid", cmd.Process.Pid).Msg("spawned session")
	return cmd, nil
}
