package parser

import (
	"errors"
	"logsreact/internal/types"
)

var (
	// ErrInvalidInput is returned when the input is not usable as text at all
	ErrInvalidInput = errors.New("invalid input: not valid UTF-8 text")

	// ErrUnknownFormat is returned when no matcher is registered under a name
	ErrUnknownFormat = errors.New("unknown log format")
)

// Matcher applies one log grammar to a single line
type Matcher interface {
	// Name is the identifier used in configuration and flags
	Name() string

	// Description is a constant, human-readable rendering of the grammar
	Description() string

	// Match returns the captures of a conforming line, or false when the
	// line does not fit. A non-match is an expected outcome, not an error.
	Match(line string) (types.CaptureSet, bool)
}
