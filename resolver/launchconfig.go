package resolver

import (
	"time"

	"github.com/Grupo-MACC/entrypoint/validation"
)

// LaunchConfig is the immutable, fully-validated set of parameters required
// to start the server. It is constructed once per container start; either
// every field is valid and launch-ready, or resolution fails before a
// LaunchConfig is ever observable.
type LaunchConfig struct {
	// AppModule is the module:attribute reference of the ASGI application,
	// e.g. "main:app" or "billing.main:app".
	AppModule string `validate:"required"`
	// Host is the bind address.
	Host string `validate:"required"`
	// Port is the bind port.
	Port int `validate:"min=1,max=65535"`
	// CertFile and KeyFile are paths to the PEM certificate and private key.
	// There is no plaintext fallback; both are mandatory.
	CertFile string `validate:"required"`
	KeyFile  string `validate:"required"`
	// Reload enables the server's source watcher (developer-only mode).
	Reload bool
	// ExtraArgs are opaque pass-through arguments appended verbatim to the
	// launch command.
	ExtraArgs []string
	// ServiceName is cosmetic and only logged.
	ServiceName string
	// GracePeriod is how long the supervisor waits after forwarding a
	// termination signal before killing the child's process group.
	GracePeriod time.Duration
}

// Validate checks the finished LaunchConfig against its struct tags.
func (lc *LaunchConfig) Validate() error {
	return validation.Validate(lc)
}
