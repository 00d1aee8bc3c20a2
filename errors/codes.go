package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Resolution errors — the container must not start the server.
const (
	// ErrCodeModuleUnresolved indicates no application module reference
	// could be determined from the environment or the filesystem.
	ErrCodeModuleUnresolved ErrorCode = "MODULE_UNRESOLVED"
	// ErrCodeCertMissing indicates zero filesystem matches for a required
	// certificate or key pattern.
	ErrCodeCertMissing ErrorCode = "CERT_MISSING"
	// ErrCodeCertAmbiguous indicates more than one filesystem match for a
	// required certificate or key pattern.
	ErrCodeCertAmbiguous ErrorCode = "CERT_AMBIGUOUS"
	// ErrCodeCertInvalid indicates a resolved certificate or key path does
	// not exist or is not a readable regular file.
	ErrCodeCertInvalid ErrorCode = "CERT_INVALID"
	// ErrCodeInvalidInput indicates a malformed environment value.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required configuration field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	// ErrCodeInvalidFormat indicates a field has an invalid format.
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
)

// Supervision errors.
const (
	// ErrCodeChildStartFailed indicates the server process could not be spawned.
	ErrCodeChildStartFailed ErrorCode = "CHILD_START_FAILED"
	// ErrCodeChildCrashed indicates the server process exited non-zero
	// without a preceding termination signal.
	ErrCodeChildCrashed ErrorCode = "CHILD_CRASHED"
)

// Process exit codes reported by the entrypoint. Configuration failures use
// sysexits EX_CONFIG so they are distinguishable from child exit codes in
// orchestrator logs.
const (
	// ExitOK is a clean shutdown: signal-initiated, or child self-exit 0.
	ExitOK = 0
	// ExitConfig is any resolution or validation failure before spawn.
	ExitConfig = 78
	// ExitSpawn means the child process could not be started at all.
	ExitSpawn = 125
)

var exitCodes = map[ErrorCode]int{
	ErrCodeModuleUnresolved: ExitConfig,
	ErrCodeCertMissing:      ExitConfig,
	ErrCodeCertAmbiguous:    ExitConfig,
	ErrCodeCertInvalid:      ExitConfig,
	ErrCodeInvalidInput:     ExitConfig,
	ErrCodeMissingField:     ExitConfig,
	ErrCodeInvalidFormat:    ExitConfig,
	ErrCodeChildStartFailed: ExitSpawn,
}

// ExitCodeFor returns the process exit code for an error code. Unknown codes
// map to ExitConfig: no child has been started yet, so configuration failure
// is the only honest report.
func ExitCodeFor(code ErrorCode) int {
	if c, ok := exitCodes[code]; ok {
		return c
	}
	return ExitConfig
}
