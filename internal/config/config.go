// Package config loads and provides access to Spotter's configuration
// settings.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/pterm/pterm"
)

type (
	// Config holds all configuration settings.
	Config struct {
		Server ServerConfig
		Timers TimerDefaults
		Notify NotifyConfig
		System SystemConfig
	}

	// ServerConfig holds backend connection settings.
	ServerConfig struct {
		BaseURL        string
		RequestTimeout time.Duration
		StreamTimeout  time.Duration
	}

	// TimerDefaults holds fallback durations applied when a group's
	// timer config omits a value.
	TimerDefaults struct {
		RestSeconds          int
		PrepCountdownSeconds int
		RestAdjustSeconds    int
	}

	// NotifyConfig holds desktop notification settings.
	NotifyConfig struct {
		Enabled bool
	}

	// SystemConfig holds system-related settings.
	SystemConfig struct {
		ConfigPath string
		DBPath     string
		SessionCmd string
	}

	// Option is a function that modifies Config.
	Option func(*Config) error
)

const Version = "v0.3.1"

var (
	configDir      = "spotter"
	configFileName = "config.yml"
	dbFileName     = "spotter.db"
	logFileName    = "spotter.log"
	dbFilePath     string
	configFilePath string
	logFilePath    string
)

var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

func Dir() string {
	return configDir
}

func DBFilePath() string {
	return dbFilePath
}

func LogFilePath() string {
	return logFilePath
}

func ConfigFilePath() string {
	return configFilePath
}

func InitializePaths() {
	spotterEnv := strings.TrimSpace(os.Getenv("SPOTTER_ENV"))
	if spotterEnv != "" {
		configFileName = fmt.Sprintf("config_%s.yml", spotterEnv)
		dbFileName = fmt.Sprintf("spotter_%s.db", spotterEnv)
		logFileName = fmt.Sprintf("spotter_%s.log", spotterEnv)
	}

	var err error

	relPath := filepath.Join(configDir, configFileName)

	configFilePath, err = xdg.ConfigFile(relPath)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	dataDir, err := xdg.DataFile(configDir)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	dbFilePath = filepath.Join(dataDir, dbFileName)

	logFilePath = filepath.Join(dataDir, "log", logFileName)
}

// New creates a new Config with default values and applies options.
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("config option error: %w", err)
		}
	}

	cfg.System.ConfigPath = configFilePath
	cfg.System.DBPath = dbFilePath

	return cfg, nil
}
