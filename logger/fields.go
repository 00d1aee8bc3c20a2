package logger

// Standard field names used across the entrypoint's log records.
const (
	FieldComponent = "component"
	FieldService   = "service"
	FieldLaunchID  = "launch_id"
	FieldPID       = "pid"
	FieldSignal    = "signal"
	FieldExitCode  = "exit_code"
)
