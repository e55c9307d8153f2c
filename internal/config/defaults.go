package config

import (
	"github.com/spf13/viper"

	"github.com/mrz1836/plock/internal/constants"
)

// DefaultConfig returns a Config populated with built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Mode: constants.DefaultLockMode,
		Log: LogConfig{
			MaxSizeMB:  constants.LogMaxSizeMB,
			MaxBackups: constants.LogMaxBackups,
			MaxAge:     constants.LogMaxAge,
			Compress:   constants.LogCompress,
		},
	}
}

// setDefaults registers every key with viper. Registering each key is what
// lets AutomaticEnv resolve PLOCK_* variables during Unmarshal.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("verbose", d.Verbose)
	v.SetDefault("quiet", d.Quiet)
	v.SetDefault("mode", d.Mode)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age", d.Log.MaxAge)
	v.SetDefault("log.compress", d.Log.Compress)
}
