package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// viperKeys defines the mapping between config keys and their Viper counterparts.
const (
	keyServerBaseURL        = "server.base_url"
	keyServerTimeout        = "server.request_timeout"
	keyServerStreamTimeout  = "server.stream_timeout"
	keyRestSeconds          = "timers.rest_seconds"
	keyPrepCountdownSeconds = "timers.prep_countdown_seconds"
	keyRestAdjustSeconds    = "timers.rest_adjust_seconds"
	keyNotificationsEnabled = "notifications.enabled"
	keySessionCmd           = "settings.cmd"
)

// WithViperConfig returns an Option that loads configuration from Viper,
// writing a default config file on first run.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setViperDefaults(v)

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("reading config file failed: %w", err)
		}

		if err := v.WriteConfig(); err != nil {
			return fmt.Errorf("writing default config failed: %w", err)
		}

		return loadViperConfig(v, c)
	}
}

func setViperDefaults(v *viper.Viper) {
	v.SetDefault(keyServerBaseURL, "http://localhost:8000")
	v.SetDefault(keyServerTimeout, "30s")
	v.SetDefault(keyServerStreamTimeout, "60s")
	v.SetDefault(keyRestSeconds, 90)
	v.SetDefault(keyPrepCountdownSeconds, 5)
	v.SetDefault(keyRestAdjustSeconds, 15)
	v.SetDefault(keyNotificationsEnabled, true)
	v.SetDefault(keySessionCmd, "")
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config) error {
	requestTimeout, err := time.ParseDuration(v.GetString(keyServerTimeout))
	if err != nil {
		return fmt.Errorf("invalid request timeout: %w", err)
	}

	streamTimeout, err := time.ParseDuration(v.GetString(keyServerStreamTimeout))
	if err != nil {
		return fmt.Errorf("invalid stream timeout: %w", err)
	}

	c.Server = ServerConfig{
		BaseURL:        v.GetString(keyServerBaseURL),
		RequestTimeout: requestTimeout,
		StreamTimeout:  streamTimeout,
	}

	c.Timers = TimerDefaults{
		RestSeconds:          v.GetInt(keyRestSeconds),
		PrepCountdownSeconds: v.GetInt(keyPrepCountdownSeconds),
		RestAdjustSeconds:    v.GetInt(keyRestAdjustSeconds),
	}

	c.Notify = NotifyConfig{
		Enabled: v.GetBool(keyNotificationsEnabled),
	}

	c.System.SessionCmd = v.GetString(keySessionCmd)

	return nil
}
