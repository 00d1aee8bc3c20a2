package supervisor

import (
	"strconv"

	"github.com/Grupo-MACC/entrypoint/resolver"
)

// BuildArgs constructs the server's argument vector from a resolved
// LaunchConfig. Extra pass-through arguments are always appended last so
// they can override earlier flags if the operator wants that.
func BuildArgs(lc *resolver.LaunchConfig) []string {
	args := []string{
		lc.AppModule,
		"--host", lc.Host,
		"--port", strconv.Itoa(lc.Port),
		"--ssl-certfile", lc.CertFile,
		"--ssl-keyfile", lc.KeyFile,
	}
	if lc.Reload {
		args = append(args, "--reload")
	}
	args = append(args, lc.ExtraArgs...)
	return args
}
