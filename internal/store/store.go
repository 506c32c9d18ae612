// Package store holds the in-memory state of the server: chat sessions and
// watched video jobs. Nothing here survives a restart.
package store

import "errors"

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")
