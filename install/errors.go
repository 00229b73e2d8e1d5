package install

import "errors"

// Usage errors abort the whole pass; they indicate a broken build
// description, not a filesystem failure.
var (
	// ErrNoFiles is returned when a file install is requested without files.
	ErrNoFiles = errors.New("install: no files given")

	// ErrMissingDestination is returned when an install operation is missing
	// a required destination.
	ErrMissingDestination = errors.New("install: missing destination")

	// ErrUnknownPluginType is returned for a type filter value outside the
	// fixed plugin-type vocabulary.
	ErrUnknownPluginType = errors.New("install: unknown plugin type")

	// ErrMissingShaderDest is returned when graphics plugins are in scope
	// but no shader destination was given.
	ErrMissingShaderDest = errors.New("install: missing shader destination")
)
