// Package resolver derives a validated LaunchConfig from an environment
// snapshot and a filesystem scan. It fails loudly rather than guessing
// silently: every ambiguity and every missing input is a fatal,
// operator-diagnosable error, and resolution is attempted exactly once per
// container start.
package resolver

import (
	"strconv"
	"strings"
	"time"

	"github.com/Grupo-MACC/entrypoint/config"
	"github.com/Grupo-MACC/entrypoint/errors"
	"github.com/Grupo-MACC/entrypoint/logger"
)

// Resolver turns a raw Config into a LaunchConfig.
type Resolver struct {
	cfg *config.Config
	log *logger.Logger

	searchDepth int
}

// New creates a Resolver for the given raw configuration.
func New(cfg *config.Config, log *logger.Logger) *Resolver {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Resolver{
		cfg: cfg,
		log: log.WithComponent("resolver"),
	}
}

// Resolve produces the LaunchConfig, or the first fatal resolution error.
// The result is deterministic and idempotent for an unchanged snapshot and
// filesystem; the caller is expected to call it once and exit on failure —
// operators fix configuration and restart the container.
func (r *Resolver) Resolve() (*LaunchConfig, error) {
	port, err := parsePort(r.cfg.Port)
	if err != nil {
		return nil, err
	}

	grace, err := parseGracePeriod(r.cfg.GracePeriod)
	if err != nil {
		return nil, err
	}

	r.searchDepth, err = parseSearchDepth(r.cfg.SearchDepth)
	if err != nil {
		return nil, err
	}

	module, err := r.resolveModule()
	if err != nil {
		return nil, err
	}

	certFile, keyFile, err := r.resolveTLS()
	if err != nil {
		return nil, err
	}

	lc := &LaunchConfig{
		AppModule:   module,
		Host:        r.cfg.Host,
		Port:        port,
		CertFile:    certFile,
		KeyFile:     keyFile,
		Reload:      r.cfg.Reload == "1",
		ExtraArgs:   splitExtraArgs(r.cfg.ExtraArgs),
		ServiceName: r.cfg.ServiceName,
		GracePeriod: grace,
	}

	if err := lc.Validate(); err != nil {
		return nil, err
	}

	r.log.Info("launch configuration resolved", map[string]interface{}{
		"module":    lc.AppModule,
		"host":      lc.Host,
		"port":      lc.Port,
		"cert_file": lc.CertFile,
		"key_file":  lc.KeyFile,
		"reload":    lc.Reload,
	})
	return lc, nil
}

// parsePort parses the PORT value, failing fast on malformed input instead
// of silently coercing.
func parsePort(raw string) (int, error) {
	port, err := strconv.Atoi(raw)
	if err != nil || port < 1 || port > 65535 {
		return 0, errors.InvalidFormat(config.EnvPort, "integer between 1 and 65535")
	}
	return port, nil
}

func parseGracePeriod(raw string) (time.Duration, error) {
	grace, err := time.ParseDuration(raw)
	if err != nil || grace <= 0 {
		return 0, errors.InvalidFormat(config.EnvGracePeriod, "positive duration such as 10s")
	}
	return grace, nil
}

func parseSearchDepth(raw string) (int, error) {
	depth, err := strconv.Atoi(raw)
	if err != nil || depth < 1 {
		return 0, errors.InvalidFormat(config.EnvSearchDepth, "positive integer")
	}
	return depth, nil
}

// splitExtraArgs word-splits the opaque pass-through arguments. The args
// are appended verbatim to the launch command; shell quoting is
// deliberately not interpreted.
func splitExtraArgs(raw string) []string {
	return strings.Fields(raw)
}
