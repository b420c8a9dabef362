package block

import "errors"

// Sentinel errors for error classification.
var (
	// ErrConfiguration indicates an invalid configuration.
	ErrConfiguration = errors.New("configuration error")

	// ErrUnsupportedOperation indicates a request this adapter never serves,
	// such as starting a session.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrFilesystem indicates a scratch-directory operation failed: creating
	// or writing an artifact, or removing a stale one.
	ErrFilesystem = errors.New("filesystem error")
)
