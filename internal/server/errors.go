package server

import "errors"

var errIngestPanicked = errors.New("server: connection ingest panicked")
