package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/mrz1836/plock/internal/constants"
	"github.com/mrz1836/plock/internal/errors"
)

// BindFunc binds additional sources, typically CLI flags, into the Viper instance.
type BindFunc func(v *viper.Viper) error

// newViperInstance creates a new Viper instance with the PLOCK_ environment
// prefix, key replacer, and defaults.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads configuration from all available sources with proper precedence.
//
// configFile may be empty, in which case PLOCK_CONFIG is consulted. When
// neither names a file no config file is read. A named file that does not
// exist is an error wrapping errors.ErrConfigNotFound.
//
// bind may be nil. It runs after the config file is read so that values it
// binds (CLI flags) take precedence over the file.
func Load(ctx context.Context, configFile string, bind BindFunc) (*Config, error) {
	v := newViperInstance()

	if err := readConfigFile(v, configFile); err != nil {
		return nil, err
	}

	if bind != nil {
		if err := bind(v); err != nil {
			return nil, errors.Wrap(err, "failed to bind flags")
		}
	}

	cfg, err := unmarshalAndValidate(v)
	if err != nil {
		return nil, err
	}

	logger := zerolog.Ctx(ctx).With().Str("component", "config").Logger()
	logger.Debug().
		Str("config_file", v.ConfigFileUsed()).
		Str("mode", cfg.Mode).
		Str("log.file", cfg.Log.File).
		Msg("configuration loaded")

	return cfg, nil
}

// readConfigFile reads the explicitly requested config file, if any.
func readConfigFile(v *viper.Viper, configFile string) error {
	if configFile == "" {
		configFile = os.Getenv(constants.ConfigEnvVar)
	}
	if configFile == "" {
		return nil
	}

	if _, err := os.Stat(configFile); err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(errors.ErrConfigNotFound, "%s", configFile)
		}
		return errors.Wrap(err, "failed to read config file")
	}

	v.SetConfigFile(configFile)
	if filepath.Ext(configFile) == "" {
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		return errors.Wrap(err, "failed to read config file")
	}
	return nil
}

// unmarshalAndValidate unmarshals viper config into Config struct and validates it.
func unmarshalAndValidate(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// viperDecoderOption returns the decoder options for Viper unmarshal.
// This configures mapstructure to handle time.Duration conversion from strings.
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	)
}
