package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidHandle is returned when an operation targets a nil or destroyed session.
	ErrInvalidHandle = zerr.New("invalid handle")

	// ErrScanFailed is returned when no cache root could be read at all.
	ErrScanFailed = zerr.New("scan failed")

	// ErrPrewarmFailed is returned when a prewarm batch could not be started.
	ErrPrewarmFailed = zerr.New("prewarm failed")

	// ErrNotAvailable is returned when the shader replay tool is not installed.
	ErrNotAvailable = zerr.New("shader replay tool not available")

	// ErrGameNotFound is returned when no cache entry matches the requested game id.
	ErrGameNotFound = zerr.New("game not found")

	// ErrInvalidParam is returned when an argument is out of range or malformed.
	ErrInvalidParam = zerr.New("invalid parameter")

	// ErrOutOfMemory is returned when an allocation bound is exceeded.
	ErrOutOfMemory = zerr.New("out of memory")

	// ErrUnknown is returned for failures that fit no other kind.
	ErrUnknown = zerr.New("unknown error")

	// ErrPartialFailure is returned by commands whose batch ran to the end but
	// left some cache units unprocessed. It has no result code of its own.
	ErrPartialFailure = zerr.New("some cache units failed")

	// ErrRemoveFailed is returned when a cache unit cannot be deleted from disk.
	ErrRemoveFailed = zerr.New("failed to remove cache unit")

	// ErrUnitTimeout is returned when measuring or replaying a single unit exceeds its time budget.
	ErrUnitTimeout = zerr.New("unit timed out")

	// ErrHomeNotFound is returned when the user's home directory cannot be determined.
	ErrHomeNotFound = zerr.New("could not determine home directory")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigInvalid is returned when a config value fails validation.
	ErrConfigInvalid = zerr.New("invalid configuration")

	// ErrConfigWriteFailed is returned when the config file cannot be written.
	ErrConfigWriteFailed = zerr.New("failed to write config file")

	// ErrStoreCreateFailed is returned when the state directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create state directory")

	// ErrStoreReadFailed is returned when a prewarm record cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read prewarm record")

	// ErrStoreUnmarshalFailed is returned when a prewarm record cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal prewarm record")

	// ErrStoreMarshalFailed is returned when a prewarm record cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal prewarm record")

	// ErrStoreWriteFailed is returned when a prewarm record cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write prewarm record")

	// ErrMetricsWriteFailed is returned when the metrics textfile cannot be written.
	ErrMetricsWriteFailed = zerr.New("failed to write metrics file")

	// ErrWatcherFailed is returned when the file system watcher cannot be started.
	ErrWatcherFailed = zerr.New("failed to start watcher")
)
