package bootstrap

import "errors"

var errNoSessionFile = errors.New("bootstrap: no session argv and no displayrc found")
