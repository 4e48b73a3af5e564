package tracker

import (
	"errors"

	"github.com/expire-issues/expire-issues/internal/timeparsing"
)

// Error kinds surfaced by a run. Use errors.Is to classify.
var (
	// ErrNotFound is returned when the API has no issue at a URL.
	ErrNotFound = errors.New("could not find issue")

	// ErrRemote wraps transport and protocol failures talking to the API.
	ErrRemote = errors.New("remote request failed")

	// ErrCloseFailed is returned when a close mutation did not leave the
	// issue closed.
	ErrCloseFailed = errors.New("failed to close issue")

	// ErrParse is returned when an issue's creation timestamp is malformed.
	ErrParse = timeparsing.ErrParse
)
