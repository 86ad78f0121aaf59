package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomstack/loom/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "loom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	require.Error(t, err, "an explicit config file must exist")

	cfg, err = config.Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultDialect, cfg.Dialect)
	assert.Equal(t, config.DefaultOutput, cfg.Output)
	assert.Equal(t, config.DefaultEnvKey, cfg.DatasourceEnv)
	assert.Equal(t, config.DefaultFormat, cfg.Format)
	assert.Equal(t, config.DefaultReadyTimeout, cfg.ReadyTimeout)
	assert.False(t, cfg.IncludeAuditFields)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
dialect: mysql
output: db/schema.prisma
datasource_env: APP_DB_URL
include_audit_fields: true
include_indexes: true
format: compact
ready_timeout: 5s
`)
	cfg, err := config.Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "mysql", cfg.Dialect)
	assert.Equal(t, "db/schema.prisma", cfg.Output)
	assert.Equal(t, "APP_DB_URL", cfg.DatasourceEnv)
	assert.True(t, cfg.IncludeAuditFields)
	assert.True(t, cfg.IncludeIndexes)
	assert.Equal(t, "compact", cfg.Format)
	assert.Equal(t, 5*time.Second, cfg.ReadyTimeout)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "dialect: mysql\n")
	t.Setenv("LOOM_DIALECT", "sqlite")
	t.Setenv("LOOM_OUTPUT", "env/schema.prisma")

	cfg, err := config.Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Dialect)
	assert.Equal(t, "env/schema.prisma", cfg.Output)
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	t.Setenv("LOOM_DIALECT", "sqlite")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("dialect", "", "")
	flags.Bool("include-indexes", false, "")
	require.NoError(t, flags.Parse([]string{"--dialect", "postgres", "--include-indexes"}))

	cfg, err := config.Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Dialect, "flags win over env vars")
	assert.True(t, cfg.IncludeIndexes, "kebab-case flags map to snake_case keys")
}

func TestLoadUnchangedFlagsIgnored(t *testing.T) {
	path := writeConfig(t, "dialect: mysql\n")
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("dialect", "", "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := config.Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "mysql", cfg.Dialect, "an unset flag must not mask the config file")
}

func TestOptions(t *testing.T) {
	cfg, err := config.Load("", nil)
	require.NoError(t, err)
	assert.Len(t, cfg.Options(), 7)
}
