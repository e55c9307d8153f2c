package config

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mrz1836/plock/internal/errors"
)

// clearEnv blanks every variable Load consults so the host environment
// cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PLOCK_CONFIG", "PLOCK_VERBOSE", "PLOCK_QUIET", "PLOCK_MODE",
		"PLOCK_LOG_FILE", "PLOCK_LOG_MAX_SIZE_MB", "PLOCK_LOG_MAX_BACKUPS",
		"PLOCK_LOG_MAX_AGE", "PLOCK_LOG_COMPRESS",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_DefaultsWithoutConfigFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(context.Background(), "", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_ConfigFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "plock.yaml", `
mode: bsd
verbose: true
log:
  file: /var/log/plock.log
  max_size_mb: 5
  max_age: 48h
  compress: false
`)

	cfg, err := Load(context.Background(), path, nil)
	require.NoError(t, err)
	assert.Equal(t, "bsd", cfg.Mode)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "/var/log/plock.log", cfg.Log.File)
	assert.Equal(t, 5, cfg.Log.MaxSizeMB)
	assert.Equal(t, 3, cfg.Log.MaxBackups, "unset keys keep defaults")
	assert.Equal(t, 48*time.Hour, cfg.Log.MaxAge)
	assert.False(t, cfg.Log.Compress)
}

// TestLoad_MarshaledConfig checks that a file produced from Config's yaml
// tags is read back through the mapstructure tags unchanged.
func TestLoad_MarshaledConfig(t *testing.T) {
	clearEnv(t)

	want := DefaultConfig()
	want.Mode = "bsd"
	want.Quiet = true
	want.Log.File = "/var/log/plock.log"
	want.Log.MaxBackups = 9
	want.Log.MaxAge = 36 * time.Hour

	data, err := yaml.Marshal(want)
	require.NoError(t, err)
	path := writeConfig(t, "plock.yaml", string(data))

	got, err := Load(context.Background(), path, nil)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoad_ConfigFileWithoutExtensionIsYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "plockrc", "mode: bsd\n")

	cfg, err := Load(context.Background(), path, nil)
	require.NoError(t, err)
	assert.Equal(t, "bsd", cfg.Mode)
}

func TestLoad_ConfigFileFromEnvironment(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "plock.yaml", "quiet: true\n")
	t.Setenv("PLOCK_CONFIG", path)

	cfg, err := Load(context.Background(), "", nil)
	require.NoError(t, err)
	assert.True(t, cfg.Quiet)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "absent.yaml"), nil)
	require.ErrorIs(t, err, errors.ErrConfigNotFound)
}

func TestLoad_MalformedConfigFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "plock.yaml", "mode: [posix\n")

	_, err := Load(context.Background(), path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "plock.yaml", "mode: bsd\nlog:\n  max_age: 48h\n")
	t.Setenv("PLOCK_MODE", "posix")
	t.Setenv("PLOCK_LOG_MAX_AGE", "72h")
	t.Setenv("PLOCK_LOG_FILE", "/tmp/plock.log")

	cfg, err := Load(context.Background(), path, nil)
	require.NoError(t, err)
	assert.Equal(t, "posix", cfg.Mode)
	assert.Equal(t, 72*time.Hour, cfg.Log.MaxAge)
	assert.Equal(t, "/tmp/plock.log", cfg.Log.File)
}

func TestLoad_FlagsOverrideEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PLOCK_MODE", "bsd")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("mode", "posix", "")
	require.NoError(t, fs.Parse([]string{"--mode", "posix"}))

	cfg, err := Load(context.Background(), "", func(v *viper.Viper) error {
		return v.BindPFlag("mode", fs.Lookup("mode"))
	})
	require.NoError(t, err)
	assert.Equal(t, "posix", cfg.Mode)
}

func TestLoad_UnchangedFlagDoesNotMaskEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PLOCK_MODE", "bsd")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("mode", "posix", "")
	require.NoError(t, fs.Parse(nil))

	cfg, err := Load(context.Background(), "", func(v *viper.Viper) error {
		return v.BindPFlag("mode", fs.Lookup("mode"))
	})
	require.NoError(t, err)
	assert.Equal(t, "bsd", cfg.Mode)
}

func TestLoad_BindError(t *testing.T) {
	clearEnv(t)
	bindErr := stderrors.New("bind failed")

	_, err := Load(context.Background(), "", func(*viper.Viper) error { return bindErr })
	require.ErrorIs(t, err, bindErr)
}

func TestLoad_InvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("PLOCK_MODE", "lockf")

	_, err := Load(context.Background(), "", nil)
	require.ErrorIs(t, err, errors.ErrInvalidMode)
}
