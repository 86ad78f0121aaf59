package gen

import (
	"github.com/rs/zerolog"
)

// Config holds the options of one generation run. It is owned by the
// embedding application and read-only for the compiler.
type Config struct {
	// Dialect is the target database engine family.
	Dialect Dialect
	// EnvKey is the environment variable the datasource url directive
	// references. The connection string is never embedded.
	EnvKey string
	// Output is the output file path, used by GenerateFile.
	Output string
	// Baseline is an optional pre-existing schema document whose
	// hand-authored model blocks are carried over (minus any model the
	// compiler produces itself).
	Baseline string
	// IncludeAuditFields appends the standard bookkeeping fields to
	// every model that does not declare them.
	IncludeAuditFields bool
	// IncludeIndexes emits derived index directives.
	IncludeIndexes bool
	// Format selects pretty or compact rendering.
	Format Format
	// Logger receives per-model warnings. Defaults to a no-op logger.
	Logger zerolog.Logger
}

// Option configures a generation run.
type Option func(*Config) error

// WithDialect sets the target dialect.
func WithDialect(d Dialect) Option {
	return func(c *Config) error {
		if !d.Valid() {
			return NewConfigError("Dialect", string(d), "unsupported dialect; use postgres, mysql, or sqlite")
		}
		c.Dialect = d
		return nil
	}
}

// WithDialectName sets the target dialect from a name, accepting the
// usual aliases (postgresql, sqlite3, ...).
func WithDialectName(name string) Option {
	return func(c *Config) error {
		d, err := ParseDialect(name)
		if err != nil {
			return err
		}
		c.Dialect = d
		return nil
	}
}

// WithEnvKey sets the environment variable referenced by the datasource
// url directive.
func WithEnvKey(key string) Option {
	return func(c *Config) error {
		if key == "" {
			return NewConfigError("EnvKey", nil, "env key cannot be empty")
		}
		c.EnvKey = key
		return nil
	}
}

// WithOutput sets the output file path.
func WithOutput(path string) Option {
	return func(c *Config) error {
		if path == "" {
			return NewConfigError("Output", nil, "output path cannot be empty")
		}
		c.Output = path
		return nil
	}
}

// WithBaseline sets the legacy baseline document path.
func WithBaseline(path string) Option {
	return func(c *Config) error {
		c.Baseline = path
		return nil
	}
}

// WithAuditFields toggles the standard bookkeeping fields.
func WithAuditFields(enabled bool) Option {
	return func(c *Config) error {
		c.IncludeAuditFields = enabled
		return nil
	}
}

// WithIndexes toggles derived index directives.
func WithIndexes(enabled bool) Option {
	return func(c *Config) error {
		c.IncludeIndexes = enabled
		return nil
	}
}

// WithFormat sets the output rendering mode.
func WithFormat(f Format) Option {
	return func(c *Config) error {
		c.Format = f
		return nil
	}
}

// WithFormatName sets the output rendering mode from its name.
func WithFormatName(name string) Option {
	return func(c *Config) error {
		f, err := ParseFormat(name)
		if err != nil {
			return err
		}
		c.Format = f
		return nil
	}
}

// WithLogger sets the logger receiving per-model warnings.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Config) error {
		c.Logger = l
		return nil
	}
}

// Apply applies options to the config. It returns the first error
// encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// NewConfig creates a Config with defaults applied, then the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{
		Dialect: Postgres,
		EnvKey:  defaultEnvKey,
		Format:  FormatPretty,
		Logger:  zerolog.Nop(),
	}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}
