package interchange

import "errors"

var (
	// ErrFormat marks input that is not parseable as an envelope document.
	ErrFormat = errors.New("unreadable import format")
	// ErrUnknownType marks a declared content type outside the registry.
	ErrUnknownType = errors.New("unknown content type")
	// ErrUnsupportedVersion marks a schema version newer than this build understands.
	ErrUnsupportedVersion = errors.New("unsupported schema version")
	// ErrCreation marks a domain manager failure while applying a batch.
	ErrCreation = errors.New("creation failed")
	// ErrCancelled marks an import abandoned at the correction step.
	ErrCancelled = errors.New("import cancelled")
)
