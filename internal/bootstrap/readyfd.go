package bootstrap

import (
	"os"
	"strconv"
)

// SignalReady writes a single newline to the fd named by the READYFD
// environment variable, if set, and closes it (spec.md §6
// "Environment"). It is a no-op if READYFD is absent or not a valid fd
// number — a caller with nothing watching readiness should not fail.
func SignalReady() error {
	v, ok := os.LookupEnv(readyFDEnvVar)
	if !ok {
		return nil
	}
	fdNum, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	f := os.NewFile(uintptr(fdNum), "readyfd")
	if f == nil {
		return nil
	}
	defer f.Close()
	_, err = f.Write([]byte("\n"))
	return err
}
