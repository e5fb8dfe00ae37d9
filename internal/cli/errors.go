// Package cli implements the command-line interface.
package cli

// Error codes for structured error responses.
// These codes are stable and can be relied upon by agents.
const (
	// Zone and precision errors
	ErrOffsetInvalid    = "OFFSET_INVALID"
	ErrPrecisionUnknown = "PRECISION_UNKNOWN"

	// Base instant errors
	ErrPresetUnknown = "PRESET_UNKNOWN"
	ErrDateInvalid   = "DATE_INVALID"
	ErrTimeInvalid   = "TIME_INVALID"

	// Timestamp errors
	ErrTimestampInvalid = "TIMESTAMP_INVALID"

	// Delta errors
	ErrDeltaInvalid   = "DELTA_INVALID"
	ErrUnitNotFound   = "UNIT_NOT_FOUND"
	ErrUnitAmbiguous  = "UNIT_AMBIGUOUS"
	ErrDateOutOfRange = "DATE_OUT_OF_RANGE"

	// Config errors
	ErrConfigInvalid = "CONFIG_INVALID"

	// File errors
	ErrFileNotFound   = "FILE_NOT_FOUND"
	ErrFileReadError  = "FILE_READ_ERROR"
	ErrFileWriteError = "FILE_WRITE_ERROR"

	// Input errors
	ErrInvalidInput    = "INVALID_INPUT"
	ErrMissingArgument = "MISSING_ARGUMENT"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)

// Warning codes for non-fatal issues.
const (
	WarnOffsetIgnored = "OFFSET_IGNORED"
)
