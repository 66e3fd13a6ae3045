package client

import "errors"

var (
	// ErrClosed is returned when a request is issued after Close.
	ErrClosed = errors.New("client closed")
)
