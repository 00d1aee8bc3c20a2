package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environ is an immutable snapshot of the process environment. It is taken
// once at startup and injected into every component that needs configuration;
// nothing reads os.Getenv ad hoc, so tests can run against synthetic maps.
type Environ map[string]string

// Snapshot captures the current process environment.
func Snapshot() Environ {
	env := make(Environ)
	for _, kv := range os.Environ() {
		pair := strings.SplitN(kv, "=", 2)
		if len(pair) != 2 {
			continue
		}
		env[pair[0]] = pair[1]
	}
	return env
}

// Get returns the value for key, or empty string if unset.
func (e Environ) Get(key string) string {
	return e[key]
}

// Lookup returns the value for key and whether it is set.
func (e Environ) Lookup(key string) (string, bool) {
	v, ok := e[key]
	return v, ok
}

// LoadDotenv merges a mounted dotenv file into the process environment
// before the snapshot is taken. godotenv never overrides variables already
// set, so the real environment wins over file values. A missing file is not
// an error: most deployments configure through the orchestrator alone.
func LoadDotenv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	return godotenv.Load(path)
}
