package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/plock/internal/errors"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	assert.False(t, cfg.Verbose)
	assert.False(t, cfg.Quiet)
	assert.Equal(t, "posix", cfg.Mode)
	assert.Empty(t, cfg.Log.File, "file logging must be opt-in")
	assert.Equal(t, 10, cfg.Log.MaxSizeMB)
	assert.Equal(t, 3, cfg.Log.MaxBackups)
	assert.Equal(t, 7*24*time.Hour, cfg.Log.MaxAge)
	assert.True(t, cfg.Log.Compress)
	require.NoError(t, Validate(cfg))
}

func TestLogConfig_MaxAgeDays(t *testing.T) {
	t.Parallel()

	tests := []struct {
		age  time.Duration
		want int
	}{
		{age: 0, want: 0},
		{age: -time.Hour, want: 0},
		{age: time.Hour, want: 1},
		{age: 24 * time.Hour, want: 1},
		{age: 25 * time.Hour, want: 2},
		{age: 7 * 24 * time.Hour, want: 7},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.age.String(), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, LogConfig{MaxAge: tc.age}.MaxAgeDays())
		})
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "bsd mode", mutate: func(c *Config) { c.Mode = "bsd" }},
		{name: "mode is case insensitive", mutate: func(c *Config) { c.Mode = "POSIX" }},
		{name: "unknown mode", mutate: func(c *Config) { c.Mode = "lockf" }, wantErr: errors.ErrInvalidMode},
		{name: "verbose and quiet", mutate: func(c *Config) { c.Verbose, c.Quiet = true, true }, wantErr: errors.ErrInvalidConfig},
		{name: "negative size", mutate: func(c *Config) { c.Log.MaxSizeMB = -1 }, wantErr: errors.ErrInvalidConfig},
		{name: "negative backups", mutate: func(c *Config) { c.Log.MaxBackups = -1 }, wantErr: errors.ErrInvalidConfig},
		{name: "negative age", mutate: func(c *Config) { c.Log.MaxAge = -time.Second }, wantErr: errors.ErrInvalidConfig},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tc.mutate(cfg)

			err := Validate(cfg)
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.wantErr)
			require.ErrorIs(t, err, errors.ErrInvalidConfig)
		})
	}
}

func TestValidate_Nil(t *testing.T) {
	t.Parallel()
	require.ErrorIs(t, Validate(nil), errors.ErrInvalidConfig)
}
