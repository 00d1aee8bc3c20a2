// The entrypoint binary boots one HTTPS microservice container: it resolves
// a launch configuration from the environment and the mounted filesystem,
// spawns the web server as its only child, and supervises that child until
// it exits, translating host termination signals into a graceful shutdown.
package main

import (
	"context"
	"os"

	"github.com/google/uuid"

	"github.com/Grupo-MACC/entrypoint/config"
	"github.com/Grupo-MACC/entrypoint/errors"
	"github.com/Grupo-MACC/entrypoint/logger"
	"github.com/Grupo-MACC/entrypoint/resolver"
	"github.com/Grupo-MACC/entrypoint/supervisor"
	"github.com/Grupo-MACC/entrypoint/version"
)

const dotenvPath = "/app/.env"

// launchIDEnv is exported to the child so its log records can be correlated
// with this container start.
const launchIDEnv = "ENTRYPOINT_LAUNCH_ID"

func main() {
	os.Exit(run())
}

func run() int {
	// Merge a mounted dotenv file before the snapshot; real environment
	// variables win over file values.
	if err := config.LoadDotenv(dotenvPath); err != nil {
		logger.GetGlobalLogger().WithError(err).Error("failed to load dotenv file")
		return errors.ExitConfig
	}

	env := config.Snapshot()
	cfg, err := config.Load(env)
	if err != nil {
		logger.GetGlobalLogger().WithError(err).Error("failed to load configuration")
		return errors.ExitConfig
	}
	if err := cfg.Validate(); err != nil {
		logger.GetGlobalLogger().WithError(err).Error("invalid configuration")
		return errors.ExitConfig
	}

	logger.Init(cfg.Logging)
	launchID := uuid.NewString()
	log := logger.GetGlobalLogger().WithFields(map[string]interface{}{
		logger.FieldLaunchID: launchID,
	})
	logger.SetGlobalLogger(log)

	log.Info("entrypoint starting", map[string]interface{}{
		"version": version.Get().String(),
		"service": cfg.ServiceName,
	})

	lc, err := resolver.New(cfg, log).Resolve()
	if err != nil {
		log.WithError(err).Error("configuration resolution failed")
		return exitCode(err, errors.ExitConfig)
	}

	sup := supervisor.New(
		cfg.ServerBin,
		supervisor.BuildArgs(lc),
		supervisor.WithGracePeriod(lc.GracePeriod),
		supervisor.WithChildEnv(launchIDEnv+"="+launchID),
		supervisor.WithLogger(log),
	)

	code, err := sup.Run(context.Background())
	if err != nil {
		log.WithError(err).Error("server process did not shut down cleanly")
	}
	return code
}

// exitCode extracts the exit code from a typed error, falling back when the
// error carries none.
func exitCode(err error, fallback int) int {
	if eerr, ok := err.(*errors.EntrypointError); ok {
		return eerr.ExitCode
	}
	return fallback
}
