// Package config loads the generation settings of a loom project from
// a loom.yaml file, environment variables, and command-line flags.
package config

import (
	"time"

	"github.com/loomstack/loom/compiler/gen"
)

// Default configuration values.
const (
	DefaultDialect      = "postgres"
	DefaultOutput       = "schema.prisma"
	DefaultEnvKey       = "DATABASE_URL"
	DefaultFormat       = "pretty"
	DefaultReadyTimeout = 30 * time.Second
)

// Config holds the settings of one generation run, as authored in
// loom.yaml and overridden by environment variables and flags.
type Config struct {
	// Dialect is the target database engine family.
	Dialect string `koanf:"dialect"`
	// Output is the path of the generated schema document.
	Output string `koanf:"output"`
	// Baseline is an optional pre-existing schema document whose
	// hand-authored blocks are carried over.
	Baseline string `koanf:"baseline"`
	// DatasourceEnv is the environment variable the datasource url
	// directive references.
	DatasourceEnv string `koanf:"datasource_env"`
	// IncludeAuditFields appends the standard bookkeeping fields to
	// every model that does not declare them.
	IncludeAuditFields bool `koanf:"include_audit_fields"`
	// IncludeIndexes emits derived index directives for foreign keys.
	IncludeIndexes bool `koanf:"include_indexes"`
	// Format selects pretty or compact rendering.
	Format string `koanf:"format"`
	// ReadyTimeout bounds the wait for asynchronous model registration.
	ReadyTimeout time.Duration `koanf:"ready_timeout"`
	// Verbose enables debug-level logging.
	Verbose bool `koanf:"verbose"`
}

// Options converts the loaded configuration into compiler options.
func (c *Config) Options() []gen.Option {
	return []gen.Option{
		gen.WithDialectName(c.Dialect),
		gen.WithOutput(c.Output),
		gen.WithBaseline(c.Baseline),
		gen.WithEnvKey(c.DatasourceEnv),
		gen.WithAuditFields(c.IncludeAuditFields),
		gen.WithIndexes(c.IncludeIndexes),
		gen.WithFormatName(c.Format),
	}
}
